package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func findStringFlag(flags []cli.Flag, name string) *cli.StringFlag {
	for _, flag := range flags {
		if f, ok := flag.(*cli.StringFlag); ok && f.Name == name {
			return f
		}
	}
	return nil
}

func findIntFlag(flags []cli.Flag, name string) *cli.IntFlag {
	for _, flag := range flags {
		if f, ok := flag.(*cli.IntFlag); ok && f.Name == name {
			return f
		}
	}
	return nil
}

func TestStoreFlags(t *testing.T) {
	flags := storeFlags()

	t.Run("corpus-dir reads CORPUS_DIR", func(t *testing.T) {
		f := findStringFlag(flags, "corpus-dir")
		require.NotNil(t, f)
		assert.Equal(t, []string{"CORPUS_DIR"}, f.EnvVars)
		assert.False(t, f.Required, "store can come from --db instead")
	})

	t.Run("db has alias -d", func(t *testing.T) {
		f := findStringFlag(flags, "db")
		require.NotNil(t, f)
		assert.Equal(t, []string{"d"}, f.Aliases)
		assert.False(t, f.Required)
	})
}

func TestAIFlags(t *testing.T) {
	flags := aiFlags()

	t.Run("ai-host has OpenAI default", func(t *testing.T) {
		f := findStringFlag(flags, "ai-host")
		require.NotNil(t, f)
		assert.Equal(t, "https://api.openai.com/v1", f.Value)
		assert.Equal(t, []string{"AI_HOST"}, f.EnvVars)
	})

	t.Run("api-key reads OPENAI_API_KEY", func(t *testing.T) {
		f := findStringFlag(flags, "api-key")
		require.NotNil(t, f)
		assert.Equal(t, []string{"OPENAI_API_KEY"}, f.EnvVars)
	})

	t.Run("model has default", func(t *testing.T) {
		f := findStringFlag(flags, "model")
		require.NotNil(t, f)
		assert.Equal(t, "gpt-5-nano", f.Value)
	})

	t.Run("max-in-flight defaults to 4", func(t *testing.T) {
		f := findIntFlag(flags, "max-in-flight")
		require.NotNil(t, f)
		assert.Equal(t, 4, f.Value)
	})
}

func TestOpenLibraryRequiresStoreFlag(t *testing.T) {
	app := &cli.App{
		Name:  "refsearch",
		Flags: append(storeFlags(), aiFlags()...),
		Action: func(c *cli.Context) error {
			_, err := openLibrary(c)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "--corpus-dir or --db")
			return nil
		},
	}

	require.NoError(t, app.Run([]string{"refsearch"}))
}

func TestSearchCommandRequiresCondition(t *testing.T) {
	app := &cli.App{
		Name: "refsearch",
		Commands: []*cli.Command{
			{
				Name:   "search",
				Action: searchCommand,
				Flags:  append(storeFlags(), aiFlags()...),
			},
		},
	}

	err := app.Run([]string{"refsearch", "search"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "condition")
}

func TestSetupLogger(t *testing.T) {
	newApp := func() *cli.App {
		return &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "log-level",
					Value: "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error { return nil },
		}
	}

	t.Run("valid log levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error"} {
			t.Run(level, func(t *testing.T) {
				require.NoError(t, newApp().Run([]string{"test", "--log-level", level}))
			})
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		for _, level := range []string{"DEBUG", "Info", "WaRn"} {
			t.Run(level, func(t *testing.T) {
				require.NoError(t, newApp().Run([]string{"test", "--log-level", level}))
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		err := newApp().Run([]string{"test", "--log-level", "loud"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}
