// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/poiesic/refsearch"
	"github.com/poiesic/refsearch/ai"
	"github.com/poiesic/refsearch/bot"
	badgerstore "github.com/poiesic/refsearch/corpus/badger"
	"github.com/poiesic/refsearch/corpus/fsdir"
	"github.com/poiesic/refsearch/corpus/seed"
	"github.com/poiesic/refsearch/search"
	"github.com/poiesic/refsearch/server"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:   "refsearch",
		Usage:  "LLM-assisted search over a reference article corpus",
		Before: setupLogger,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Run one search against the corpus and print the results",
				ArgsUsage: "<condition description>",
				Action:    searchCommand,
				Flags:     append(storeFlags(), aiFlags()...),
			},
			{
				Name:   "bot",
				Usage:  "Run the Telegram bot",
				Action: botCommand,
				Flags: append(append(storeFlags(), aiFlags()...),
					&cli.StringFlag{
						Name:     "token",
						Usage:    "Telegram bot token",
						EnvVars:  []string{"TELEGRAM_BOT_TOKEN"},
						Required: true,
					}),
			},
			{
				Name:   "serve",
				Usage:  "Run the HTTP API",
				Action: serveCommand,
				Flags: append(append(storeFlags(), aiFlags()...),
					&cli.StringFlag{
						Name:  "listen",
						Usage: "Listen address",
						Value: ":8080",
					}),
			},
			{
				Name:   "seed",
				Usage:  "Import a markdown corpus directory into a BadgerDB store",
				Action: seedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "corpus-dir",
						Usage:    "Path to the markdown corpus directory",
						EnvVars:  []string{"CORPUS_DIR"},
						Required: true,
					},
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "readers",
						Usage: "Number of concurrent source reads",
						Value: 8,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func storeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "corpus-dir",
			Usage:   "Path to the markdown corpus directory",
			EnvVars: []string{"CORPUS_DIR"},
		},
		&cli.StringFlag{
			Name:    "db",
			Aliases: []string{"d"},
			Usage:   "Path to a BadgerDB corpus (alternative to --corpus-dir)",
		},
	}
}

func aiFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "ai-host",
			Usage:   "OpenAI-compatible chat API base URL",
			EnvVars: []string{"AI_HOST"},
			Value:   "https://api.openai.com/v1",
		},
		&cli.StringFlag{
			Name:    "api-key",
			Usage:   "Chat API key",
			EnvVars: []string{"OPENAI_API_KEY"},
		},
		&cli.StringFlag{
			Name:    "model",
			Usage:   "Model used for both selection and extraction",
			EnvVars: []string{"AI_MODEL"},
			Value:   "gpt-5-nano",
		},
		&cli.IntFlag{
			Name:  "max-in-flight",
			Usage: "Maximum concurrent extraction calls",
			Value: 4,
		},
		&cli.DurationFlag{
			Name:  "call-timeout",
			Usage: "Per-model-call timeout",
			Value: 90 * time.Second,
		},
	}
}

// openLibrary builds a Library from the shared store and AI flags.
func openLibrary(c *cli.Context) (*refsearch.Library, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("ai-host")),
		ai.WithAPIKey(c.String("api-key")),
		ai.WithModel(c.String("model")),
	)

	switch {
	case c.String("corpus-dir") != "":
		return refsearch.OpenDir(c.String("corpus-dir"), refsearch.WithAIConfig(aiConfig))
	case c.String("db") != "":
		return refsearch.OpenDB(c.String("db"), refsearch.WithAIConfig(aiConfig))
	default:
		return nil, fmt.Errorf("either --corpus-dir or --db is required")
	}
}

func newSearcher(c *cli.Context, lib *refsearch.Library) (*search.Searcher, error) {
	return lib.NewSearcher(
		search.WithMaxInFlight(c.Int("max-in-flight")),
		search.WithCallTimeout(c.Duration("call-timeout")),
	)
}

func searchCommand(c *cli.Context) error {
	condition := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if condition == "" {
		return fmt.Errorf("condition description is required")
	}

	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	searcher, err := newSearcher(c, lib)
	if err != nil {
		return err
	}
	defer searcher.Release()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := searcher.SearchWithMonitor(ctx, condition, search.NewLogMonitor(nil))
	if err != nil {
		return err
	}

	fmt.Printf("Found %d relevant articles\n", len(results))
	for _, r := range results {
		fmt.Printf("\n%d. %s\n", r.Header.Number, r.Header.Title)
		if r.URL != "" {
			fmt.Printf("   %s\n", r.URL)
		}
		if len(r.Quotes) > 0 && r.Quotes[0].Rationale != "" {
			fmt.Printf("   %s\n", r.Quotes[0].Rationale)
		}
		for _, q := range r.Quotes {
			fmt.Printf("   > %s\n", q.Text)
		}
	}
	return nil
}

func botCommand(c *cli.Context) error {
	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	searcher, err := newSearcher(c, lib)
	if err != nil {
		return err
	}
	defer searcher.Release()

	b, err := bot.New(c.String("token"), lib.Store(), searcher)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := b.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func serveCommand(c *cli.Context) error {
	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	searcher, err := newSearcher(c, lib)
	if err != nil {
		return err
	}
	defer searcher.Release()

	srv, err := server.New(lib.Store(), searcher)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx, c.String("listen"))
}

func seedCommand(c *cli.Context) error {
	source, err := fsdir.Open(c.String("corpus-dir"))
	if err != nil {
		return fmt.Errorf("failed to open corpus directory: %w", err)
	}
	defer source.Close()

	dest, err := badgerstore.Open(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer dest.Close()

	importer, err := seed.NewImporter(source, dest, seed.WithReaders(c.Int("readers")))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stats, err := importer.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Imported: %d, skipped (unchanged): %d, missing: %d\n",
		stats.Imported, stats.Skipped, stats.Missing)
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
