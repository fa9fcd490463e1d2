package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/vmunix/admit/internal/config"
	"github.com/vmunix/admit/internal/library"
	"github.com/vmunix/admit/internal/migrations"
)

var version = "dev"

// app carries global flags and the state loaded from them.
type app struct {
	configPath string
	jsonOutput bool
	logLevel   string

	cfg *config.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "admit",
		Short: "Decide whether media files should be imported",
		Long: `admit - media import decisions

Parses the quality of movie and music files, probes their streams with
ffprobe, and decides per file whether it should be imported into a
library item: already imported, playable, good enough, an upgrade.`,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return a.load(cmd) },
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to config file (default: discovered)")
	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "Output as JSON")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	root.Version = version
	root.SetVersionTemplate("admit {{.Version}}\n")

	root.AddCommand(
		newScanCmd(a),
		newParseCmd(a),
		newCompareCmd(a),
		newQualitiesCmd(a),
		newItemsCmd(a),
		newConfigCmd(a),
	)
	return root
}

// load resolves the config file and builds the logger. Without an explicit
// path and with nothing discovered, defaults are used.
func (a *app) load(cmd *cobra.Command) error {
	path := a.configPath
	if path == "" {
		found, err := config.Discover()
		switch {
		case errors.Is(err, config.ErrNotFound):
			// defaults
		case err != nil:
			return err
		default:
			path = found
		}
	}

	if path == "" {
		a.cfg = config.Default()
	} else {
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}

	level := a.cfg.Log.Level
	if a.logLevel != "" {
		level = a.logLevel
	}
	a.log = newLogger(cmd.ErrOrStderr(), level, a.cfg.Log.Format)
	if path != "" {
		a.log.Debug("config loaded", "path", path)
	}
	for _, w := range a.cfg.Warnings() {
		a.log.Warn("config", "warning", w)
	}
	return nil
}

func newLogger(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(level)}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// openStore opens the library database, creating it and applying the
// schema as needed. The caller closes the returned DB.
func (a *app) openStore(ctx context.Context) (*library.Store, *sql.DB, error) {
	path := a.cfg.Database.Path
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, nil, fmt.Errorf("open db: %w", err)
	}
	if err := migrations.Apply(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return library.NewStore(db), db, nil
}
