package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "https://api.openai.com/v1", cfg.APIHost)
	assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
	assert.Equal(t, 2*time.Second, cfg.PollInterval)
	assert.Equal(t, 2*time.Minute, cfg.PollTimeout)
	assert.Empty(t, cfg.APIKey)
	assert.Empty(t, cfg.AssistantID)
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "https://api.openai.com/v1", cfg.APIHost)
		assert.Equal(t, 2*time.Second, cfg.PollInterval)
	})

	t.Run("with credentials", func(t *testing.T) {
		cfg := NewConfig(
			WithAPIKey("sk-test"),
			WithAssistantID("asst_abc123"),
		)

		assert.Equal(t, "sk-test", cfg.APIKey)
		assert.Equal(t, "asst_abc123", cfg.AssistantID)
	})

	t.Run("with custom hosts", func(t *testing.T) {
		cfg := NewConfig(
			WithAPIHost("http://localhost:9100/v1"),
			WithEmbeddingHost("http://localhost:11434/v1"),
		)

		assert.Equal(t, "http://localhost:9100/v1", cfg.APIHost)
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	})

	t.Run("with custom polling", func(t *testing.T) {
		cfg := NewConfig(
			WithPollInterval(100*time.Millisecond),
			WithPollTimeout(5*time.Second),
		)

		assert.Equal(t, 100*time.Millisecond, cfg.PollInterval)
		assert.Equal(t, 5*time.Second, cfg.PollTimeout)
	})
}

func TestNormalize(t *testing.T) {
	t.Run("adds v1 suffix", func(t *testing.T) {
		cfg := &Config{APIHost: "http://localhost:9100"}
		cfg.Normalize()
		assert.Equal(t, "http://localhost:9100/v1", cfg.APIHost)
	})

	t.Run("strips trailing slash before adding v1", func(t *testing.T) {
		cfg := &Config{APIHost: "http://localhost:9100/"}
		cfg.Normalize()
		assert.Equal(t, "http://localhost:9100/v1", cfg.APIHost)
	})

	t.Run("leaves canonical host alone", func(t *testing.T) {
		cfg := &Config{APIHost: "https://api.openai.com/v1"}
		cfg.Normalize()
		assert.Equal(t, "https://api.openai.com/v1", cfg.APIHost)
	})

	t.Run("embedding host defaults to api host", func(t *testing.T) {
		cfg := &Config{APIHost: "http://localhost:9100"}
		cfg.Normalize()
		assert.Equal(t, "http://localhost:9100/v1", cfg.EmbeddingHost)
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return NewConfig(
			WithAPIKey("sk-test"),
			WithAssistantID("asst_abc123"),
		)
	}

	t.Run("valid config", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	t.Run("missing api key", func(t *testing.T) {
		cfg := valid()
		cfg.APIKey = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing assistant id", func(t *testing.T) {
		cfg := valid()
		cfg.AssistantID = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing embedding model", func(t *testing.T) {
		cfg := valid()
		cfg.EmbeddingModel = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("nonpositive poll interval", func(t *testing.T) {
		cfg := valid()
		cfg.PollInterval = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("nonpositive poll timeout", func(t *testing.T) {
		cfg := valid()
		cfg.PollTimeout = -time.Second
		assert.Error(t, cfg.Validate())
	})
}
