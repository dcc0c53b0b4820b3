package reembed

import (
	"bytes"
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/mailsift/ai/mock"
	"github.com/poiesic/mailsift/core"
)

func TestReembedder_Run(t *testing.T) {
	repo := setupIteratorRepo(t, 12)
	embedder := mock.NewMockEmbedder()

	var out bytes.Buffer
	config := &Config{
		BatchSize:      5,
		ReportInterval: 5,
		MaxRetries:     3,
		RetryDelay:     time.Millisecond,
	}

	r := NewReembedder(repo, embedder, config, &out)
	err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Starting reembedding of 12 emails")
	assert.Contains(t, out.String(), "Reembedding complete")

	// Every record should now carry a unit-length vector.
	start := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2100, 12, 31, 23, 59, 59, 0, time.UTC)
	records, err := repo.GetEmailRecordsByDateRange(context.Background(), start, end)
	require.NoError(t, err)
	require.Len(t, records, 12)
	for _, record := range records {
		require.NotEmpty(t, record.Vector)
		var magnitude float64
		for _, v := range record.Vector {
			magnitude += float64(v) * float64(v)
		}
		assert.InDelta(t, 1.0, math.Sqrt(magnitude), 1e-4)
	}
}

func TestReembedder_RunEmptyDatabase(t *testing.T) {
	repo := setupIteratorRepo(t, 0)
	embedder := mock.NewMockEmbedder()

	var out bytes.Buffer
	r := NewReembedder(repo, embedder, nil, &out)
	err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "No records found")
	assert.Zero(t, embedder.CallCount())
}

func TestReembedder_EmbedderFailurePropagates(t *testing.T) {
	repo := setupIteratorRepo(t, 3)
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("embedding backend down")
	}

	var out bytes.Buffer
	config := &Config{
		BatchSize:      2,
		ReportInterval: 2,
		MaxRetries:     2,
		RetryDelay:     time.Millisecond,
	}

	r := NewReembedder(repo, embedder, config, &out)
	err := r.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to process batch")
}

func TestBatchProcessor_CountMismatch(t *testing.T) {
	repo := setupIteratorRepo(t, 2)
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return [][]float32{{1, 0}}, nil
	}

	start := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2100, 12, 31, 23, 59, 59, 0, time.UTC)
	records, err := repo.GetEmailRecordsByDateRange(context.Background(), start, end)
	require.NoError(t, err)
	require.Len(t, records, 2)

	bp := NewBatchProcessor(repo, embedder, 1, time.Millisecond)
	err = bp.Process(context.Background(), records)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedding count mismatch")
}

func TestBatchProcessor_EmptyBatch(t *testing.T) {
	repo := setupIteratorRepo(t, 0)
	embedder := mock.NewMockEmbedder()

	bp := NewBatchProcessor(repo, embedder, 1, time.Millisecond)
	err := bp.Process(context.Background(), []*core.EmailRecord{})
	require.NoError(t, err)
	assert.Zero(t, embedder.CallCount())
}
