package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs. It is used for
// content-hash duplicate detection on stored emails.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// RequestIntent is one of the classifier's ranked guesses at what the sender
// is asking for. ConfidenceScore is whatever the model returned; values outside
// [0,1] are passed through unmodified.
type RequestIntent struct {
	Intent          string  `json:"intent"`
	Reasoning       string  `json:"reasoning"`
	ConfidenceScore float64 `json:"confidence_score"`
}

// SubRequest is a secondary request type (feature) the classifier found in the email.
type SubRequest struct {
	SubRequest string `json:"sub_request"`
	Reasoning  string `json:"reasoning"`
}

// ClassificationResult is the structured output of the classification engine.
// The JSON tags match the assistant's wire format; the payload is stored and
// returned to API clients verbatim.
type ClassificationResult struct {
	RequestIntents []RequestIntent `json:"request_intents"`
	SubRequests    []SubRequest    `json:"sub_requests"`
}

// SimilarEmail is a prior stored email matched by vector similarity.
type SimilarEmail struct {
	Contents string  `json:"email"`
	Score    float32 `json:"score"`
}

// EmailRecord represents one processed inbound email: the aggregate extracted
// text plus everything the pipeline derived from it. Records are append-only;
// the core flow never updates or deletes them.
type EmailRecord struct {
	Id              ID
	Contents        string               // Aggregate extracted text (body + attachments)
	Classification  ClassificationResult // Classifier output, stored verbatim
	SimilarEmails   []SimilarEmail       // Top matches at processing time
	ReceiverAddress string               // Synthetic receiver address
	AttachmentNames []string             // Every attachment seen, in processing order
	Vector          []float32            // Embedding of Contents (populated by the pipeline)
	ContentHash     ID                   // IDFromContent(Contents), for duplicate detection
	CreatedAt       time.Time            // When the email was processed
	InsertedAt      time.Time            // When the record was inserted into the database
	UpdatedAt       time.Time            // When the record was last updated
}

// SearchResult represents a similarity search result with the full record and score.
type SearchResult struct {
	Record *EmailRecord
	Score  float32
}
