package players

import (
	"errors"
	"strings"
	"time"

	"github.com/gosimple/slug"
)

// ID identifies a player for the lifetime of the registry. IDs are assigned
// sequentially from 1 and never reused.
type ID int64

// Player is the canonical registry entry for a real-world player.
type Player struct {
	ID        ID        `json:"id"`
	Key       string    `json:"key"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	Stats     Stats     `json:"stats"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ErrInvalidName is returned when a player name does not yield an identity key.
var ErrInvalidName = errors.New("player name must contain at least one letter or digit")

// KeyFromName derives the identity key used to match upserts to an existing
// player. Case, spacing and diacritics do not change the key.
func KeyFromName(name string) (string, error) {
	key := slug.Make(strings.TrimSpace(name))
	if key == "" {
		return "", ErrInvalidName
	}
	return key, nil
}

// Points returns the player's current-season total points, or 0 when the
// statistic is absent or unusable.
func (p Player) Points() int64 {
	return p.Stats.Points(ViewCurrent, StatTotalPoints)
}

// Clone returns a copy that shares no mutable state with p.
func (p Player) Clone() Player {
	p.Stats = p.Stats.Clone()
	return p
}
