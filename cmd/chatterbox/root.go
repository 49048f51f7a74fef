package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/CTAG07/chatterbox/internal/corpus"
)

// app bundles the state every subcommand needs: loaded config, logger,
// database connection, and the corpus store.
type app struct {
	config *Config
	logger *slog.Logger
	db     *sql.DB
	store  *corpus.Store
}

func openApp(cfgPath string) (*app, error) {
	config, err := LoadConfig(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	var logLevel slog.Level
	switch strings.ToLower(config.LogLevel) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	db, err := initDB(config.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err = corpus.Setup(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set up corpus schema: %w", err)
	}

	store, err := corpus.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create corpus store: %w", err)
	}
	store.SetLogger(logger)

	return &app{
		config: config,
		logger: logger,
		db:     db,
		store:  store,
	}, nil
}

func (a *app) Close() {
	a.store.Close()
	if err := a.db.Close(); err != nil {
		a.logger.Error("Failed to close database", "error", err)
	}
}

// NewRootCmd builds the chatterbox command tree.
func NewRootCmd() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:   "chatterbox",
		Short: "Markov chain text generator",
		Long: `Chatterbox builds Markov chain models of word sequences from stored
corpora or files and generates pseudo-random text resembling the source.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&cfgPath, "config", "./chatterbox.json", "path to the config file")

	cmd.AddCommand(
		newCorpusCmd(&cfgPath),
		newGenerateCmd(&cfgPath),
		newStatsCmd(&cfgPath),
	)

	return cmd
}
