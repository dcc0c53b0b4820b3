package mailsift

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/mailsift/ai/mock"
	"github.com/poiesic/mailsift/ingest"
)

func TestNewService(t *testing.T) {
	t.Run("create new service", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		svc, err := NewService(tmpDir, WithAIProvider(mock.NewMockProvider()))
		require.NoError(t, err)
		require.NotNil(t, svc)
		defer svc.Close()

		assert.NotNil(t, svc.EmailRepository())
		assert.NotNil(t, svc.Provider())
		assert.NotNil(t, svc.backend)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// A file where the database directory should be
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		require.NoError(t, os.WriteFile(tmpFile, []byte("test"), 0644))

		svc, err := NewService(tmpFile, WithAIProvider(mock.NewMockProvider()))
		assert.Error(t, err)
		assert.Nil(t, svc)
	})

	t.Run("error without credentials", func(t *testing.T) {
		// Default AI config has no API key or assistant ID
		svc, err := NewService(filepath.Join(t.TempDir(), "db"))
		assert.Error(t, err)
		assert.Nil(t, svc)
	})
}

func TestService_Close(t *testing.T) {
	svc, err := NewService(t.TempDir(), WithAIProvider(mock.NewMockProvider()))
	require.NoError(t, err)

	assert.NoError(t, svc.Close())
}

func TestService_FactoryMethods(t *testing.T) {
	svc, err := NewService("", WithInMemoryStorage(), WithAIProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	defer svc.Close()

	searcher, err := svc.NewSearcher()
	require.NoError(t, err)
	require.NotNil(t, searcher)

	pipeline, err := svc.NewPipeline(ingest.WithPoolSize(1))
	require.NoError(t, err)
	require.NotNil(t, pipeline)
	defer pipeline.Release()

	result, err := pipeline.Process(context.Background(), &ingest.Request{
		Body: "service level smoke test",
	})
	require.NoError(t, err)
	assert.NotZero(t, result.Record.Id)
}
