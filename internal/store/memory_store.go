package store

import (
	"sort"
	"sync"

	"github.com/preston-bernstein/fantasy-league-service/internal/domain/players"
)

// MemoryStore keeps a thread-safe player registry in memory.
type MemoryStore struct {
	mu      sync.RWMutex
	players map[players.ID]players.Player
	byKey   map[string]players.ID
	nextID  players.ID
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		players: make(map[players.ID]players.Player),
		byKey:   make(map[string]players.ID),
		nextID:  1,
	}
}

// UpsertPlayer stores p under p.Key. A new key gets the next id; an existing
// key keeps its id and has name, price, stats and timestamp replaced.
func (s *MemoryStore) UpsertPlayer(p players.Player) (players.Player, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, exists := s.byKey[p.Key]
	if !exists {
		id = s.nextID
		s.nextID++
		s.byKey[p.Key] = id
	}
	p.ID = id
	p = p.Clone()
	s.players[id] = p
	return p.Clone(), !exists
}

// Player retrieves a player by id.
func (s *MemoryStore) Player(id players.ID) (players.Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.players[id]
	if !ok {
		return players.Player{}, false
	}
	return p.Clone(), true
}

// PlayerByKey retrieves a player by identity key.
func (s *MemoryStore) PlayerByKey(key string) (players.Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byKey[key]
	if !ok {
		return players.Player{}, false
	}
	return s.players[id].Clone(), true
}

// PlayerIDs returns every id in ascending order.
func (s *MemoryStore) PlayerIDs() []players.ID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]players.ID, 0, len(s.players))
	for id := range s.players {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
