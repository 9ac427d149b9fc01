package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	applogger "trade_analytics/internal/infra/logger"
)

// Ticker is the part of the heartbeat tracker the scheduler drives.
type Ticker interface {
	Accounts() []string
	Tick(ctx context.Context, accountID string) error
}

// HeartbeatScheduler runs one tick job per account. A job never overlaps itself, jobs of
// different accounts run concurrently. Accounts first seen after Start get their job on the
// next reconcile.
type HeartbeatScheduler struct {
	scheduler gocron.Scheduler
	ticker    Ticker
	interval  time.Duration

	// ctx is handed to every tick and cancelled on Shutdown.
	ctx    context.Context
	cancel context.CancelFunc

	mu   sync.Mutex
	jobs map[string]gocron.Job
}

func NewHeartbeatScheduler(ticker Ticker, interval time.Duration, opts ...gocron.SchedulerOption) (*HeartbeatScheduler, error) {
	if ticker == nil {
		return nil, errors.New("heartbeat ticker required")
	}
	if interval <= 0 {
		return nil, fmt.Errorf("heartbeat interval must be positive, got %s", interval)
	}

	s, err := gocron.NewScheduler(opts...)
	if err != nil {
		return nil, fmt.Errorf("init scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &HeartbeatScheduler{
		scheduler: s,
		ticker:    ticker,
		interval:  interval,
		ctx:       ctx,
		cancel:    cancel,
		jobs:      make(map[string]gocron.Job),
	}, nil
}

// Start registers jobs for the accounts known so far plus the reconcile job, then starts the
// scheduler.
func (h *HeartbeatScheduler) Start() error {
	if _, err := h.Reconcile(); err != nil {
		return err
	}

	_, err := h.scheduler.NewJob(
		gocron.DurationJob(h.interval),
		gocron.NewTask(func() {
			if added, err := h.Reconcile(); err != nil {
				applogger.Logger.Error().Err(err).Msg("heartbeat reconcile error")
			} else if added > 0 {
				applogger.Logger.Info().Int("added", added).Msg("heartbeat jobs added")
			}
		}),
		gocron.WithName("heartbeat-reconcile"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("schedule reconcile job: %w", err)
	}

	h.scheduler.Start()
	return nil
}

// Reconcile adds a tick job for every tracker account that has none and returns how many
// were added.
func (h *HeartbeatScheduler) Reconcile() (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	added := 0
	for _, accountID := range h.ticker.Accounts() {
		if _, ok := h.jobs[accountID]; ok {
			continue
		}
		job, err := h.newTickJob(accountID)
		if err != nil {
			return added, err
		}
		h.jobs[accountID] = job
		added++
	}
	return added, nil
}

func (h *HeartbeatScheduler) newTickJob(accountID string) (gocron.Job, error) {
	job, err := h.scheduler.NewJob(
		gocron.DurationJob(h.interval),
		gocron.NewTask(h.tick, accountID),
		gocron.WithName("heartbeat-"+accountID),
		gocron.WithTags("heartbeat", accountID),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, fmt.Errorf("schedule heartbeat for %s: %w", accountID, err)
	}
	applogger.Logger.Info().Str("account", accountID).Dur("interval", h.interval).Msg("heartbeat job scheduled")
	return job, nil
}

func (h *HeartbeatScheduler) tick(accountID string) {
	if err := h.ticker.Tick(h.ctx, accountID); err != nil {
		applogger.Logger.Error().Err(err).Str("account", accountID).Msg("heartbeat tick error")
	}
}

// Accounts lists the accounts that currently have a tick job.
func (h *HeartbeatScheduler) Accounts() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, 0, len(h.jobs))
	for accountID := range h.jobs {
		out = append(out, accountID)
	}
	return out
}

// Shutdown cancels in-flight ticks and stops the scheduler.
func (h *HeartbeatScheduler) Shutdown() error {
	h.cancel()
	return h.scheduler.Shutdown()
}
