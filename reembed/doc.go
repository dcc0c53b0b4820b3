// Package reembed provides functionality for reembedding existing email records
// with new or updated embedding models.
//
// This package supports batch processing of email records, progress tracking,
// retry logic with exponential backoff, and vector normalization to ensure
// compatibility with cosine similarity search.
package reembed
