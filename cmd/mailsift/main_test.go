package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestSetupLogger(t *testing.T) {
	newApp := func(action cli.ActionFunc) *cli.App {
		return &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "log-level",
					Aliases: []string{"l"},
					Value:   "info",
				},
			},
			Before: setupLogger,
			Action: action,
		}
	}

	t.Run("valid levels accepted", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "DEBUG", "Info"} {
			app := newApp(func(c *cli.Context) error { return nil })
			err := app.Run([]string{"test", "--log-level", level})
			assert.NoError(t, err, "level %q", level)
		}
	})

	t.Run("invalid level rejected", func(t *testing.T) {
		app := newApp(func(c *cli.Context) error { return nil })
		err := app.Run([]string{"test", "--log-level", "verbose"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("log-level flag has alias -l", func(t *testing.T) {
		app := newApp(func(c *cli.Context) error {
			assert.Equal(t, "debug", c.String("log-level"))
			return nil
		})
		require.NoError(t, app.Run([]string{"test", "-l", "debug"}))
	})
}

func TestAIConfigFromFlags(t *testing.T) {
	app := &cli.App{
		Name:  "test",
		Flags: dbAndAIFlags(),
		Action: func(c *cli.Context) error {
			cfg := aiConfigFromFlags(c)
			assert.Equal(t, "http://localhost:9100/v1", cfg.APIHost)
			assert.Equal(t, "sk-test", cfg.APIKey)
			assert.Equal(t, "asst_abc", cfg.AssistantID)
			assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
			assert.Equal(t, 500*time.Millisecond, cfg.PollInterval)
			return nil
		},
	}

	err := app.Run([]string{
		"test",
		"--db", t.TempDir(),
		"--api-host", "http://localhost:9100/v1",
		"--api-key", "sk-test",
		"--assistant-id", "asst_abc",
		"--poll-interval", "500ms",
	})
	require.NoError(t, err)
}

func TestServeCommand_DBFlagRequired(t *testing.T) {
	app := &cli.App{
		Name: "mailsift",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Action: serveCommand,
				Flags:  dbAndAIFlags(),
			},
		},
	}

	err := app.Run([]string{"mailsift", "serve"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db")
}
