package store

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/preston-bernstein/fantasy-league-service/internal/domain/league"
)

// MemoryArchive keeps settled seasons in memory. Records are copied on the
// way in and on the way out.
type MemoryArchive struct {
	mu      sync.RWMutex
	seasons map[int64]league.ArchivedSeason
}

// NewMemoryArchive constructs an empty MemoryArchive.
func NewMemoryArchive() *MemoryArchive {
	return &MemoryArchive{seasons: make(map[int64]league.ArchivedSeason)}
}

// AppendSeason stores a settled season. Existing ids are never overwritten.
func (a *MemoryArchive) AppendSeason(ctx context.Context, season league.ArchivedSeason) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.seasons[season.SeasonID]; exists {
		return &league.FieldError{Err: league.ErrAlreadyExists, Field: "seasonId", Value: strconv.FormatInt(season.SeasonID, 10)}
	}
	a.seasons[season.SeasonID] = season.Clone()
	return nil
}

// Season returns the archived season with the given id.
func (a *MemoryArchive) Season(ctx context.Context, id int64) (league.ArchivedSeason, error) {
	if err := ctx.Err(); err != nil {
		return league.ArchivedSeason{}, err
	}
	a.mu.RLock()
	defer a.mu.RUnlock()

	s, ok := a.seasons[id]
	if !ok {
		return league.ArchivedSeason{}, &league.NotFoundError{Entity: "season", Key: strconv.FormatInt(id, 10)}
	}
	return s.Clone(), nil
}

// SeasonIDs lists archived ids in ascending order.
func (a *MemoryArchive) SeasonIDs(ctx context.Context) ([]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a.mu.RLock()
	defer a.mu.RUnlock()

	ids := make([]int64, 0, len(a.seasons))
	for id := range a.seasons {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
