// Package archivefs stores settled seasons as JSON files:
// {base}/seasons/{id}.json plus a manifest.json index.
package archivefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/preston-bernstein/fantasy-league-service/internal/domain/league"
	"github.com/preston-bernstein/fantasy-league-service/internal/logging"
)

// Store is a filesystem-backed season archive.
type Store struct {
	mu       sync.RWMutex
	basePath string
	now      func() time.Time
	logger   *slog.Logger
}

// New constructs a Store rooted at basePath, creating the directory layout.
// logger may be nil.
func New(basePath string, logger *slog.Logger) (*Store, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, errors.New("archive directory is required")
	}
	if err := os.MkdirAll(filepath.Join(basePath, seasonsDir), 0o755); err != nil {
		return nil, fmt.Errorf("create archive directory: %w", err)
	}
	return &Store{
		basePath: basePath,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   logger,
	}, nil
}

// BasePath exposes the archive root.
func (s *Store) BasePath() string {
	if s == nil {
		return ""
	}
	return s.basePath
}

// AppendSeason writes the season file atomically and refreshes the manifest.
// An existing season file is never replaced. Once the season file is in place
// the append has succeeded; a manifest failure is only logged.
func (s *Store) AppendSeason(ctx context.Context, season league.ArchivedSeason) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	target := SeasonPath(s.basePath, season.SeasonID)
	if _, err := os.Stat(target); err == nil {
		return &league.FieldError{Err: league.ErrAlreadyExists, Field: "seasonId", Value: strconv.FormatInt(season.SeasonID, 10)}
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	data, err := json.MarshalIndent(season, "", "  ")
	if err != nil {
		return fmt.Errorf("encode season %d: %w", season.SeasonID, err)
	}
	if err := writeAtomic(target, data); err != nil {
		return fmt.Errorf("write season %d: %w", season.SeasonID, err)
	}

	if err := s.refreshManifest(season.SettledAt); err != nil {
		logging.Warn(s.logger, "archive manifest not updated",
			logging.FieldSeasonID, season.SeasonID,
			"error", err,
		)
	}
	return nil
}

func (s *Store) refreshManifest(lastSettled time.Time) error {
	ids, err := s.listIDs()
	if err != nil {
		return err
	}
	m, _ := ReadManifest(s.basePath)
	m.Seasons.IDs = ids
	m.Seasons.LastSettled = lastSettled
	return writeManifest(s.basePath, m, s.now())
}

// Season reads an archived season.
func (s *Store) Season(ctx context.Context, id int64) (league.ArchivedSeason, error) {
	if err := ctx.Err(); err != nil {
		return league.ArchivedSeason{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, err := os.Open(SeasonPath(s.basePath, id))
	if errors.Is(err, os.ErrNotExist) {
		return league.ArchivedSeason{}, &league.NotFoundError{Entity: "season", Key: strconv.FormatInt(id, 10)}
	}
	if err != nil {
		return league.ArchivedSeason{}, err
	}
	defer f.Close()

	var season league.ArchivedSeason
	if err := json.NewDecoder(f).Decode(&season); err != nil {
		return league.ArchivedSeason{}, fmt.Errorf("decode season %d: %w", id, err)
	}
	return season, nil
}

// SeasonIDs lists archived season ids in ascending order. The season files
// are authoritative; the manifest is only an index for other readers.
func (s *Store) SeasonIDs(ctx context.Context) ([]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listIDs()
}

func (s *Store) listIDs() ([]int64, error) {
	entries, err := os.ReadDir(filepath.Join(s.basePath, seasonsDir))
	if err != nil {
		if os.IsNotExist(err) {
			return []int64{}, nil
		}
		return nil, err
	}
	ids := []int64{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		id, err := strconv.ParseInt(strings.TrimSuffix(name, ".json"), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
