// Package league runs the season lifecycle: player registry mutations,
// enrollment, fee collection, team submission, settlement and archive
// lookups. A single Engine owns all mutable state; mutations are serialized
// behind its write lock and queries share the read lock.
package league

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/fantasy-league-service/internal/app/roster"
	domainleague "github.com/preston-bernstein/fantasy-league-service/internal/domain/league"
	"github.com/preston-bernstein/fantasy-league-service/internal/domain/players"
	"github.com/preston-bernstein/fantasy-league-service/internal/logging"
)

// PlayerStore persists the player registry.
type PlayerStore interface {
	UpsertPlayer(p players.Player) (players.Player, bool)
	Player(id players.ID) (players.Player, bool)
	PlayerByKey(key string) (players.Player, bool)
	PlayerIDs() []players.ID
}

// Archive persists settled seasons. Implementations must refuse to overwrite
// an existing season id and must return copies.
type Archive interface {
	AppendSeason(ctx context.Context, season domainleague.ArchivedSeason) error
	Season(ctx context.Context, id int64) (domainleague.ArchivedSeason, error)
	SeasonIDs(ctx context.Context) ([]int64, error)
}

// Metrics receives operation outcomes. *metrics.Recorder satisfies it.
type Metrics interface {
	RecordLeagueOp(op, outcome string)
	RecordSettlement(participants int, prize, houseCut int64)
}

// Options configures an Engine.
type Options struct {
	Rules       roster.Rules
	EntryFee    domainleague.Amount
	HouseCutBPS int64
	Operator    domainleague.Address
	Now         func() time.Time
	NewID       func() string
	Logger      *slog.Logger
	Metrics     Metrics
}

// ErrInvalidOptions is returned by New for unusable rules.
var ErrInvalidOptions = errors.New("league: invalid engine options")

// Engine is the authoritative league state.
type Engine struct {
	mu      sync.RWMutex
	players PlayerStore
	archive Archive
	opts    Options
	season  *Season
}

// now returns the engine clock in UTC at millisecond precision, the finest
// precision every archive backend keeps.
func (e *Engine) now() time.Time {
	return e.opts.Now().UTC().Truncate(time.Millisecond)
}

// New builds an Engine. The current season id continues after the highest
// archived season.
func New(ctx context.Context, players PlayerStore, archive Archive, opts Options) (*Engine, error) {
	if players == nil || archive == nil {
		return nil, fmt.Errorf("%w: player store and archive are required", ErrInvalidOptions)
	}
	if err := validateOptions(opts); err != nil {
		return nil, err
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}

	ids, err := archive.SeasonIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load archived seasons: %w", err)
	}
	next := int64(1)
	for _, id := range ids {
		if id >= next {
			next = id + 1
		}
	}

	e := &Engine{
		players: players,
		archive: archive,
		opts:    opts,
		season:  newSeason(next),
	}
	logging.Info(opts.Logger, "league engine ready",
		logging.FieldSeasonID, next,
		"entry_fee", int64(opts.EntryFee),
		"budget", opts.Rules.Budget,
		"house_cut_bps", opts.HouseCutBPS,
	)
	return e, nil
}

func validateOptions(opts Options) error {
	switch {
	case opts.EntryFee < 0:
		return fmt.Errorf("%w: entry fee must not be negative", ErrInvalidOptions)
	case opts.Rules.Budget < 0:
		return fmt.Errorf("%w: budget must not be negative", ErrInvalidOptions)
	case opts.Rules.MaxUsername <= 0 || opts.Rules.MaxTeamName <= 0:
		return fmt.Errorf("%w: name length limits must be positive", ErrInvalidOptions)
	case opts.HouseCutBPS < 0 || opts.HouseCutBPS > domainleague.BasisPointsDenominator:
		return fmt.Errorf("%w: house cut must be within 0..10000 basis points", ErrInvalidOptions)
	case opts.HouseCutBPS > 0 && opts.Operator == "":
		return fmt.Errorf("%w: house cut requires an operator address", ErrInvalidOptions)
	}
	return nil
}

// Rules exposes the configured roster rules.
func (e *Engine) Rules() roster.Rules {
	return e.opts.Rules
}

// EntryFee exposes the configured entry fee.
func (e *Engine) EntryFee() domainleague.Amount {
	return e.opts.EntryFee
}

// observe records the outcome of an operation and logs failures other than
// caller mistakes at warn level.
func (e *Engine) observe(ctx context.Context, op string, err error, args ...any) {
	outcome := "ok"
	if err != nil {
		outcome = domainleague.Kind(err)
	}
	if e.opts.Metrics != nil {
		e.opts.Metrics.RecordLeagueOp(op, outcome)
	}
	logger := logging.FromContext(ctx, e.opts.Logger)
	if logger == nil {
		return
	}
	args = append(args, logging.FieldOperation, op)
	switch {
	case err == nil:
		logger.Debug("league operation applied", args...)
	case outcome == "internal":
		logging.Error(logger, "league operation failed", err, args...)
	default:
		logger.Info("league operation rejected", append(args, logging.FieldKind, outcome)...)
	}
}
