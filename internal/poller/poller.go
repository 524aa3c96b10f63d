package poller

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/preston-bernstein/fantasy-league-service/internal/domain/players"
	"github.com/preston-bernstein/fantasy-league-service/internal/feed"
	"github.com/preston-bernstein/fantasy-league-service/internal/logging"
	"github.com/preston-bernstein/fantasy-league-service/internal/metrics"
)

const defaultInterval = 5 * time.Minute

// Registry receives player upserts from the feed.
type Registry interface {
	UpsertPlayer(ctx context.Context, name string, rawStats []byte, price int64) (players.Player, bool, error)
}

// Poller syncs the player registry from a feed on a schedule.
type Poller struct {
	feed     feed.PlayerFeed
	registry Registry
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration

	startMu   sync.Mutex
	scheduler gocron.Scheduler
	cancel    context.CancelFunc
	stopped   bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the sync loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
	LastUpserted        int
	LastSkipped         int
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// Result summarizes one sync cycle.
type Result struct {
	Created int
	Updated int
	Skipped int
}

// Upserted is the number of players written in the cycle.
func (r Result) Upserted() int {
	return r.Created + r.Updated
}

// New constructs a Poller with sane defaults.
func New(source feed.PlayerFeed, registry Registry, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		feed:     source,
		registry: registry,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
	}
}

// Start schedules a sync immediately and then every interval until the
// context is cancelled or Stop is called. Overlapping runs are skipped.
func (p *Poller) Start(ctx context.Context) error {
	p.startMu.Lock()
	defer p.startMu.Unlock()
	if p.scheduler != nil || p.stopped {
		return nil
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}
	runCtx, cancel := context.WithCancel(ctx)
	_, err = s.NewJob(
		gocron.DurationJob(p.interval),
		gocron.NewTask(func() {
			_, _ = p.SyncOnce(runCtx)
		}),
		gocron.WithName("player-sync"),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		cancel()
		_ = s.Shutdown()
		return fmt.Errorf("schedule player sync: %w", err)
	}

	p.scheduler = s
	p.cancel = cancel
	s.Start()
	p.logInfo("poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))

	go func() {
		<-runCtx.Done()
		_ = p.Stop(context.Background())
	}()
	return nil
}

// Stop halts the schedule and waits for a running sync to finish.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.startMu.Lock()
	defer p.startMu.Unlock()
	if p.stopped {
		return nil
	}
	p.stopped = true
	if p.cancel != nil {
		p.cancel()
	}
	if p.scheduler == nil {
		return nil
	}
	err := p.scheduler.Shutdown()
	p.logInfo("poller stopped")
	return err
}

// SyncOnce fetches the feed and upserts every record. A record the registry
// rejects is logged and counted as skipped without aborting the batch.
func (p *Poller) SyncOnce(ctx context.Context) (Result, error) {
	start := time.Now()
	p.recordAttempt(start)

	var res Result
	if p.feed == nil || p.registry == nil {
		err := feed.ErrFeedUnavailable
		p.recordFailure(err, start)
		return res, err
	}

	batch, err := p.feed.FetchPlayers(ctx)
	if err != nil {
		if p.metrics != nil {
			p.metrics.RecordSyncCycle(time.Since(start), 0, 0, err)
		}
		p.logError("player sync fetch failed", err, slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()))
		p.recordFailure(err, start)
		return res, err
	}

	for _, skip := range batch.Skipped {
		res.Skipped++
		p.logWarn("player record skipped", "index", skip.Index, "name", skip.Name, "reason", skip.Reason)
	}
	for _, rec := range batch.Records {
		if err := ctx.Err(); err != nil {
			p.recordFailure(err, start)
			return res, err
		}
		_, created, err := p.registry.UpsertPlayer(ctx, rec.Name, rec.Stats, rec.Price)
		if err != nil {
			res.Skipped++
			p.logWarn("player upsert rejected", "name", rec.Name, "error", err)
			continue
		}
		if created {
			res.Created++
		} else {
			res.Updated++
		}
	}

	if p.metrics != nil {
		p.metrics.RecordSyncCycle(time.Since(start), res.Upserted(), res.Skipped, nil)
	}
	p.recordSuccess(start, res)
	p.logInfo("player sync complete",
		logging.FieldCount, res.Upserted(),
		"created", res.Created,
		"skipped", res.Skipped,
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return res, nil
}

func (p *Poller) logInfo(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Poller) logWarn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}

func (p *Poller) logError(msg string, err error, attrs ...any) {
	if p.logger != nil {
		p.logger.Error(msg, append(attrs, "error", err)...)
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time, res Result) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
	p.status.LastUpserted = res.Upserted()
	p.status.LastSkipped = res.Skipped
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}

// Feed exposes the underlying feed.
func (p *Poller) Feed() feed.PlayerFeed {
	return p.feed
}
