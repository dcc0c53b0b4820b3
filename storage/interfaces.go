package storage

import (
	"context"
	"time"

	"github.com/poiesic/mailsift/core"
)

// EmailRepository provides operations for managing stored email records.
// Implementations must be thread-safe and support concurrent access.
// The core processing flow is append-only: records are inserted once and
// never updated or deleted.
type EmailRepository interface {
	// AddEmailRecords appends one or more email records to storage.
	// Generates new IDs from sequence and sets InsertedAt timestamps.
	// Returns the records with generated IDs and timestamps populated.
	AddEmailRecords(ctx context.Context, records ...*core.EmailRecord) ([]*core.EmailRecord, error)

	// UpdateEmailRecords rewrites existing records in place and refreshes
	// their UpdatedAt timestamps. Used by maintenance jobs such as
	// reembedding; the core processing flow never calls it.
	// Returns ErrNotFound if any record's ID is unknown.
	UpdateEmailRecords(ctx context.Context, records ...*core.EmailRecord) ([]*core.EmailRecord, error)

	// GetEmailRecord retrieves a single email record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetEmailRecord(ctx context.Context, id core.ID) (*core.EmailRecord, error)

	// GetEmailRecords retrieves multiple email records by their IDs.
	// Returns only the records that exist (no error for missing records).
	GetEmailRecords(ctx context.Context, ids ...core.ID) ([]*core.EmailRecord, error)

	// GetRecentEmailRecords retrieves the N most recent records, ordered by
	// CreatedAt descending. Returns up to limit records.
	GetRecentEmailRecords(ctx context.Context, limit int) ([]*core.EmailRecord, error)

	// GetEmailRecordsByDateRange retrieves records within a time range.
	// Returns records where start <= CreatedAt < end, ordered by CreatedAt.
	GetEmailRecordsByDateRange(ctx context.Context, start, end time.Time) ([]*core.EmailRecord, error)

	// CountEmailRecords returns the total number of stored records.
	CountEmailRecords(ctx context.Context) (int, error)

	// FindByContentHash retrieves the IDs of records whose contents hash to the
	// given value. Returns an empty slice when no record matches.
	FindByContentHash(ctx context.Context, hash core.ID) ([]core.ID, error)

	// FindSimilar finds email records similar to the given vector.
	// Returns records with similarity >= minSimilarity, up to limit results,
	// ordered by similarity score (highest first). Records without embeddings
	// are skipped.
	FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SearchResult, error)

	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the repository and releases resources.
	Close() error
}
