package metrics

import (
	"sync"
	"time"
)

type feedStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type opKey struct {
	op      string
	outcome string
}

// Recorder captures lightweight, in-memory metrics about feed calls and
// league operations, mirrored to OpenTelemetry when configured.
type Recorder struct {
	mu          sync.Mutex
	stats       map[string]*feedStats
	ops         map[opKey]int
	settlements int
	prizePaid   int64
	syncUpserts int
	syncSkips   int
	otel        *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*feedStats),
		ops:   make(map[opKey]int),
		otel:  otel,
	}
}

// RecordFeedAttempt increments counters for a feed call and stores the last observed latency.
func (r *Recorder) RecordFeedAttempt(feed string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(feed)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordFeedAttempt(feed, duration, err)
	}
}

// RecordRateLimit tracks that a feed response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(feed string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(feed)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordRateLimit(feed, retryAfter)
	}
}

// RecordLeagueOp counts a league operation by name and outcome kind
// ("ok" or an error kind such as "over_budget").
func (r *Recorder) RecordLeagueOp(op, outcome string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.ops[opKey{op: op, outcome: outcome}]++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordLeagueOp(op, outcome)
	}
}

// RecordSettlement tracks a completed season settlement and the amount paid out.
func (r *Recorder) RecordSettlement(participants int, prize, houseCut int64) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.settlements++
	r.prizePaid += prize
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordSettlement(participants, prize, houseCut)
	}
}

// RecordSyncCycle tracks one player feed sync.
func (r *Recorder) RecordSyncCycle(duration time.Duration, upserted, skipped int, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.syncUpserts += upserted
	r.syncSkips += skipped
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordSync(duration, upserted, skipped, err)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// FeedCalls returns the total attempts recorded for a feed.
func (r *Recorder) FeedCalls(feed string) int {
	return r.Snapshot(feed).Calls
}

// FeedErrors returns the total failed attempts recorded for a feed.
func (r *Recorder) FeedErrors(feed string) int {
	return r.Snapshot(feed).Errors
}

// RateLimitHits returns the number of rate limit events seen for a feed.
func (r *Recorder) RateLimitHits(feed string) int {
	return r.Snapshot(feed).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for a feed.
func (r *Recorder) LastRetryAfter(feed string) time.Duration {
	return r.Snapshot(feed).LastRetryAfter
}

// LeagueOps returns how many times op finished with outcome.
func (r *Recorder) LeagueOps(op, outcome string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ops[opKey{op: op, outcome: outcome}]
}

// Settlements returns the number of settled seasons and the total prize paid.
func (r *Recorder) Settlements() (count int, prizePaid int64) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.settlements, r.prizePaid
}

// SyncTotals returns the cumulative upserted and skipped record counts.
func (r *Recorder) SyncTotals() (upserted, skipped int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.syncUpserts, r.syncSkips
}

// Snapshot returns a copy of the current stats for the feed.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(feed string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[feed]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// ensureStats must be called with r.mu held.
func (r *Recorder) ensureStats(feed string) *feedStats {
	stats, ok := r.stats[feed]
	if !ok {
		stats = &feedStats{}
		r.stats[feed] = stats
	}
	return stats
}
