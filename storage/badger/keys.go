package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/poiesic/mailsift/core"
)

// Key prefixes for different data types
const (
	emailRecordPrefix     = "emlrec"
	emailRecordDatePrefix = "emlrecd"
	emailRecordHashPrefix = "emlrech"
	emailRecordIDSeq      = "emlrecseq"
)

// makeEmailRecordKey generates a key for an email record by ID.
func makeEmailRecordKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", emailRecordPrefix, id))
}

// makeEmailDateKey generates a composite key for the date index.
// Format: prefix:timestamp:id
func makeEmailDateKey(timestamp time.Time, id core.ID) []byte {
	prefix := emailRecordDatePrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+16) // 8 bytes timestamp + 8 bytes ID
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialEmailDateKey generates a partial key for date range queries.
// Format: prefix:timestamp
func makePartialEmailDateKey(timestamp time.Time) []byte {
	prefix := emailRecordDatePrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}

// makeEmailHashKey generates a composite key for the content-hash index.
// Format: prefix:hash:id
func makeEmailHashKey(hash, id core.ID) []byte {
	prefix := emailRecordHashPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+16)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(hash))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialEmailHashKey generates a partial key for content-hash lookups.
// Format: prefix:hash
func makePartialEmailHashKey(hash core.ID) []byte {
	prefix := emailRecordHashPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(hash))
	return buf
}
