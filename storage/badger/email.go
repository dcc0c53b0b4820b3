package badger

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/mailsift/core"
	"github.com/poiesic/mailsift/storage"
)

// EmailRepository implements storage.EmailRepository for BadgerDB.
type EmailRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.EmailRepository = (*EmailRepository)(nil)

// NewEmailRepository creates a new EmailRepository.
func NewEmailRepository(backend *Backend) (*EmailRepository, error) {
	idSeq, err := backend.GetSequence(emailRecordIDSeq)
	if err != nil {
		return nil, err
	}

	return &EmailRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *EmailRepository) Close() error {
	return r.idSeq.Release()
}

// FindSimilar delegates to the backend.
func (r *EmailRepository) FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SearchResult, error) {
	return r.backend.FindSimilar(ctx, vector, minSimilarity, limit)
}

// WithTransaction delegates to the backend.
func (r *EmailRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddEmailRecords appends one or more email records to storage.
// Records are validated before the transaction opens; an invalid record
// fails the whole batch and nothing is written.
func (r *EmailRepository) AddEmailRecords(ctx context.Context, records ...*core.EmailRecord) ([]*core.EmailRecord, error) {
	for _, record := range records {
		if err := core.ValidateEmailRecord(record); err != nil {
			return nil, err
		}
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			// Always generate a new ID from the sequence
			nextID, err := r.idSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				nextID, err = r.idSeq.Next()
				if err != nil {
					return err
				}
			}
			record.Id = core.ID(nextID)

			record.InsertedAt = time.Now().UTC()
			record.UpdatedAt = record.InsertedAt
			if record.CreatedAt.IsZero() {
				record.CreatedAt = record.InsertedAt
			}

			// Store primary record
			key := makeEmailRecordKey(record.Id)
			value := storage.MarshalEmailRecord(record)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update date index
			dateKey := makeEmailDateKey(record.CreatedAt, record.Id)
			if err := tx.Set(dateKey, storage.MarshalID(record.Id)); err != nil {
				return err
			}

			// Update content-hash index
			if record.ContentHash != 0 {
				hashKey := makeEmailHashKey(record.ContentHash, record.Id)
				if err := tx.Set(hashKey, storage.MarshalID(record.Id)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return records, err
}

// UpdateEmailRecords rewrites existing records in place, refreshing their
// UpdatedAt timestamps. Records must already carry IDs; an unknown ID fails
// the whole batch with ErrNotFound. CreatedAt and ContentHash are treated as
// immutable, so the date and content-hash indexes stay valid.
func (r *EmailRepository) UpdateEmailRecords(ctx context.Context, records ...*core.EmailRecord) ([]*core.EmailRecord, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			key := makeEmailRecordKey(record.Id)
			if record.Id == 0 {
				return storage.ErrNotFound
			}
			if _, err := tx.Get(key); err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					return storage.ErrNotFound
				}
				return err
			}

			record.UpdatedAt = time.Now().UTC()
			if err := tx.Set(key, storage.MarshalEmailRecord(record)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return records, err
}

// GetEmailRecord retrieves a single email record by ID.
func (r *EmailRepository) GetEmailRecord(ctx context.Context, id core.ID) (*core.EmailRecord, error) {
	var result *core.EmailRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeEmailRecordKey(id)
		var err error
		result, err = r.readEmailRecord(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetEmailRecords retrieves multiple email records by their IDs.
func (r *EmailRepository) GetEmailRecords(ctx context.Context, ids ...core.ID) ([]*core.EmailRecord, error) {
	var result []*core.EmailRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeEmailRecordKey(id)
			record, err := r.readEmailRecord(tx, key)
			if err != nil {
				return err
			}
			if record != nil {
				result = append(result, record)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetEmailRecordsByDateRange retrieves email records within a time range.
func (r *EmailRepository) GetEmailRecordsByDateRange(ctx context.Context, start, end time.Time) ([]*core.EmailRecord, error) {
	if start.Equal(end) {
		end = start.Add(1 * time.Microsecond)
	}

	var results []*core.EmailRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialEmailDateKey(start)
		endKey := makePartialEmailDateKey(end)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if slices.Compare(key, endKey) > 0 {
				break
			}

			var recordID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				recordID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			recordKey := makeEmailRecordKey(recordID)
			record, err := r.readEmailRecord(tx, recordKey)
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
			}
		}
		return nil
	}, false)

	return results, err
}

// GetRecentEmailRecords retrieves the N most recent records, newest first.
func (r *EmailRepository) GetRecentEmailRecords(ctx context.Context, limit int) ([]*core.EmailRecord, error) {
	var results []*core.EmailRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek to the last possible key in the date index
		startKey := makePartialEmailDateKey(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))
		prefix := []byte(emailRecordDatePrefix + ":")

		count := 0
		for iter.Seek(startKey); iter.Valid() && count < limit; iter.Next() {
			key := iter.Item().Key()

			if len(key) < len(prefix) || slices.Compare(key[:len(prefix)], prefix) != 0 {
				break
			}

			var recordID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				recordID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			recordKey := makeEmailRecordKey(recordID)
			record, err := r.readEmailRecord(tx, recordKey)
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
				count++
			}
		}
		return nil
	}, false)

	return results, err
}

// CountEmailRecords returns the total number of stored records.
func (r *EmailRepository) CountEmailRecords(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(emailRecordDatePrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// FindByContentHash retrieves the IDs of records with the given content hash.
func (r *EmailRepository) FindByContentHash(ctx context.Context, hash core.ID) ([]core.ID, error) {
	var ids []core.ID
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialEmailHashKey(hash)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var recordID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				recordID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}
			ids = append(ids, recordID)
		}
		return nil
	}, false)
	return ids, err
}

// readEmailRecord reads a record by key within a transaction.
// Returns nil (no error) when the key does not exist.
func (r *EmailRepository) readEmailRecord(tx *badger.Txn, key []byte) (*core.EmailRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var record *core.EmailRecord
	err = item.Value(func(val []byte) error {
		var err error
		record, err = storage.UnmarshalEmailRecord(val)
		return err
	})
	return record, err
}
