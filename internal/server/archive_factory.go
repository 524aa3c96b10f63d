package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/preston-bernstein/fantasy-league-service/internal/app/league"
	"github.com/preston-bernstein/fantasy-league-service/internal/archivefs"
	"github.com/preston-bernstein/fantasy-league-service/internal/config"
	"github.com/preston-bernstein/fantasy-league-service/internal/store"
	"github.com/preston-bernstein/fantasy-league-service/internal/store/sqlite"
)

// openArchive selects the season archive backend. The returned close func is
// never nil.
func openArchive(ctx context.Context, cfg config.ArchiveConfig, logger *slog.Logger) (league.Archive, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Backend {
	case config.ArchiveSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, noop, fmt.Errorf("create archive directory: %w", err)
			}
		}
		s, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		logArchive(logger, cfg.Backend, cfg.SQLitePath)
		return s, s.Close, nil
	case config.ArchiveFS:
		s, err := archivefs.New(cfg.Dir, logger)
		if err != nil {
			return nil, noop, err
		}
		logArchive(logger, cfg.Backend, cfg.Dir)
		return s, noop, nil
	default:
		logArchive(logger, config.ArchiveMemory, "")
		return store.NewMemoryArchive(), noop, nil
	}
}

func logArchive(logger *slog.Logger, backend, location string) {
	if logger == nil {
		return
	}
	logger.Info("season archive ready", slog.String("backend", backend), slog.String("location", location))
}
