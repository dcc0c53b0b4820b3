package ingest

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/mailsift/ai"
	"github.com/poiesic/mailsift/ai/mock"
	"github.com/poiesic/mailsift/core"
	"github.com/poiesic/mailsift/extract"
	"github.com/poiesic/mailsift/search"
	"github.com/poiesic/mailsift/storage"
	"github.com/poiesic/mailsift/storage/badger"
)

func setupPipeline(t *testing.T) (*Pipeline, storage.EmailRepository, *mock.MockProvider) {
	t.Helper()

	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	provider := mock.NewMockProvider().(*mock.MockProvider)

	searcher, err := search.NewSearcher(repo, provider)
	require.NoError(t, err)

	pipeline, err := NewPipeline(repo, provider, searcher, WithPoolSize(2))
	require.NoError(t, err)
	t.Cleanup(pipeline.Release)

	return pipeline, repo, provider
}

func emlWithAttachment(filename, contentType, body string) []byte {
	return []byte(strings.Join([]string{
		"From: borrower@example.com",
		"To: servicing@loanservice.com",
		"Subject: Request with attachment",
		"Date: Mon, 02 Jun 2025 10:00:00 +0000",
		"MIME-Version: 1.0",
		`Content-Type: multipart/mixed; boundary="frontier"`,
		"",
		"--frontier",
		"Content-Type: text/plain; charset=utf-8",
		"",
		"Please review the attached document.",
		"--frontier",
		"Content-Type: " + contentType,
		`Content-Disposition: attachment; filename="` + filename + `"`,
		"",
		body,
		"--frontier--",
		"",
	}, "\r\n"))
}

func TestProcess_BodyOnly(t *testing.T) {
	pipeline, _, _ := setupPipeline(t)

	result, err := pipeline.Process(context.Background(), &Request{
		Body: "I would like to defer my next two mortgage payments.",
	})
	require.NoError(t, err)

	record := result.Record
	assert.NotZero(t, record.Id)
	assert.Equal(t, "I would like to defer my next two mortgage payments.", record.Contents)
	assert.Len(t, record.Vector, 384)
	assert.NotZero(t, record.ContentHash)
	assert.False(t, result.Duplicate)
	assert.Empty(t, record.AttachmentNames)

	// Mock classifier returns a single fixed intent
	require.Len(t, record.Classification.RequestIntents, 1)
	assert.Equal(t, "General Inquiry", record.Classification.RequestIntents[0].Intent)

	// Receiver address has the expected shape
	at := strings.Split(record.ReceiverAddress, "@")
	require.Len(t, at, 2)
	assert.Contains(t, core.ReceiverDomains, at[1])
}

func TestProcess_NoContent(t *testing.T) {
	pipeline, _, _ := setupPipeline(t)

	_, err := pipeline.Process(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestProcess_UnsupportedPrimary(t *testing.T) {
	pipeline, _, _ := setupPipeline(t)

	_, err := pipeline.Process(context.Background(), &Request{
		Primary: &extract.Artifact{Name: "email.zip", Data: []byte("x")},
	})
	assert.ErrorIs(t, err, extract.ErrUnsupportedFormat)
}

func TestProcess_EmlWithEmbeddedAttachment(t *testing.T) {
	pipeline, _, _ := setupPipeline(t)

	result, err := pipeline.Process(context.Background(), &Request{
		Primary: &extract.Artifact{
			Name: "request.eml",
			Data: emlWithAttachment("notes.txt", "text/plain", "statement balance details"),
		},
	})
	require.NoError(t, err)

	record := result.Record
	assert.Contains(t, record.Contents, "Please review the attached document.")
	assert.Contains(t, record.Contents, "[Attachment: notes.txt]\nstatement balance details")
	assert.Equal(t, []string{"notes.txt"}, record.AttachmentNames)
}

func TestProcess_EmlWithUnextractableAttachment(t *testing.T) {
	pipeline, _, _ := setupPipeline(t)

	result, err := pipeline.Process(context.Background(), &Request{
		Primary: &extract.Artifact{
			Name: "request.eml",
			Data: emlWithAttachment("data.xyz", "application/octet-stream", "binary stuff"),
		},
	})
	require.NoError(t, err)

	record := result.Record
	assert.Contains(t, record.Contents, "[Attachment: data.xyz - Could not extract text]")
	assert.Equal(t, []string{"data.xyz"}, record.AttachmentNames)
}

func TestProcess_SectionOrdering(t *testing.T) {
	pipeline, _, _ := setupPipeline(t)

	result, err := pipeline.Process(context.Background(), &Request{
		Body:    "direct body text",
		Primary: &extract.Artifact{Name: "letter.txt", Data: []byte("primary file text")},
		Attachments: []*extract.Artifact{
			{Name: "first.txt", Data: []byte("first attachment")},
			{Name: "second.txt", Data: []byte("second attachment")},
		},
	})
	require.NoError(t, err)

	contents := result.Record.Contents
	bodyIdx := strings.Index(contents, "direct body text")
	primaryIdx := strings.Index(contents, "primary file text")
	firstIdx := strings.Index(contents, "[Attachment: first.txt]")
	secondIdx := strings.Index(contents, "[Attachment: second.txt]")

	require.GreaterOrEqual(t, bodyIdx, 0)
	assert.Less(t, bodyIdx, primaryIdx)
	assert.Less(t, primaryIdx, firstIdx)
	assert.Less(t, firstIdx, secondIdx)
	assert.Equal(t, []string{"first.txt", "second.txt"}, result.Record.AttachmentNames)

	// Sections are blank-line separated
	assert.Contains(t, contents, "direct body text\n\nprimary file text")
}

func TestProcess_DuplicateDetection(t *testing.T) {
	pipeline, _, _ := setupPipeline(t)

	req := &Request{Body: "identical escrow question"}

	first, err := pipeline.Process(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, first.Duplicate)

	second, err := pipeline.Process(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, second.Duplicate)
	assert.NotEqual(t, first.Record.Id, second.Record.Id)
}

func TestProcess_SimilarEmails(t *testing.T) {
	pipeline, _, _ := setupPipeline(t)

	_, err := pipeline.Process(context.Background(), &Request{
		Body: "please pause my mortgage payments for three months",
	})
	require.NoError(t, err)

	result, err := pipeline.Process(context.Background(), &Request{
		Body: "requesting a payment pause on my mortgage",
	})
	require.NoError(t, err)

	require.NotEmpty(t, result.Record.SimilarEmails)
	assert.Equal(t, "please pause my mortgage payments for three months",
		result.Record.SimilarEmails[0].Contents)
	assert.Greater(t, result.Record.SimilarEmails[0].Score, float32(0))
}

func TestProcess_ClassifierFailure(t *testing.T) {
	pipeline, _, provider := setupPipeline(t)

	provider.GetMockClassifier().ClassifyEmailFunc = func(ctx context.Context, text string) (*core.ClassificationResult, error) {
		return nil, ai.ErrBackendFailure
	}

	_, err := pipeline.Process(context.Background(), &Request{Body: "some email"})
	assert.ErrorIs(t, err, ai.ErrBackendFailure)
}

func TestProcess_OutOfRangeConfidencePassesThrough(t *testing.T) {
	pipeline, _, provider := setupPipeline(t)

	provider.GetMockClassifier().ClassifyEmailFunc = func(ctx context.Context, text string) (*core.ClassificationResult, error) {
		return &core.ClassificationResult{
			RequestIntents: []core.RequestIntent{
				{Intent: "Payment Deferral", Reasoning: "overconfident model", ConfidenceScore: 1.7},
			},
			SubRequests: []core.SubRequest{},
		}, nil
	}

	result, err := pipeline.Process(context.Background(), &Request{Body: "some email"})
	require.NoError(t, err)

	require.Len(t, result.Record.Classification.RequestIntents, 1)
	assert.InDelta(t, 1.7, result.Record.Classification.RequestIntents[0].ConfidenceScore, 1e-9)
}
