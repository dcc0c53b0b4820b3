// Package ingest provides pipeline orchestration for processing inbound emails.
//
// The Pipeline type manages the full processing workflow for an email:
//   - Aggregating text from the body, the uploaded email file, and attachments
//   - Classifying request intents through the AI provider
//   - Generating an embedding and finding similar stored emails
//   - Persisting the resulting record with a generated receiver address
//
// Attachment text extraction runs concurrently on a worker pool. Attachments
// whose content cannot be read are annotated in the aggregate text instead of
// failing the request.
package ingest
