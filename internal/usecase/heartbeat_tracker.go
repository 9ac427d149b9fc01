package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"trade_analytics/internal/domain"
	applogger "trade_analytics/internal/infra/logger"
	"trade_analytics/internal/metrics"
)

const DefaultMaxHeartbeatFails = 5

// ErrPersistOrder marks a failed write of an unknown-status promotion. The caller may retry.
var ErrPersistOrder = errors.New("persist order status change")

type heartbeatEntry struct {
	order     domain.Order
	remaining int
}

type accountHeartbeats struct {
	mu      sync.Mutex
	entries map[domain.OrderKey]*heartbeatEntry
}

// HeartbeatTracker counts missed broker confirmations per open order. Each account has its own
// lock so ticks for different accounts never wait on each other.
type HeartbeatTracker struct {
	repo     domain.OrderRepository
	maxFails int
	accounts sync.Map // accountID -> *accountHeartbeats
	now      func() time.Time
}

func NewHeartbeatTracker(repo domain.OrderRepository, maxFails int) (*HeartbeatTracker, error) {
	if repo == nil {
		return nil, errors.New("order repository required")
	}
	if maxFails <= 0 {
		maxFails = DefaultMaxHeartbeatFails
	}
	return &HeartbeatTracker{
		repo:     repo,
		maxFails: maxFails,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

func (t *HeartbeatTracker) MaxFails() int {
	return t.maxFails
}

// Seed registers every account and starts tracking the orders still open in storage.
func (t *HeartbeatTracker) Seed(ctx context.Context) error {
	accounts, err := t.repo.ListAccounts(ctx)
	if err != nil {
		return fmt.Errorf("list accounts: %w", err)
	}

	for _, account := range accounts {
		t.account(account.AccountID)

		orders, err := t.repo.FindOrdersOpenFor(ctx, account.AccountID)
		if err != nil {
			return fmt.Errorf("open orders for %s: %w", account.AccountID, err)
		}
		for _, order := range orders {
			t.InitHeartbeat(order)
		}
		applogger.Logger.Info().
			Str("account", account.AccountID).
			Int("orders", len(orders)).
			Msg("heartbeats seeded")
	}
	return nil
}

// InitHeartbeat starts tracking the order or resets its budget if already tracked.
func (t *HeartbeatTracker) InitHeartbeat(order domain.Order) {
	hb := t.account(order.AccountID)

	hb.mu.Lock()
	hb.entries[order.Key()] = &heartbeatEntry{order: order.Clone(), remaining: t.maxFails}
	n := len(hb.entries)
	hb.mu.Unlock()

	metrics.SetTrackedOrders(order.AccountID, n)
}

func (t *HeartbeatTracker) RemoveHeartbeat(order domain.Order) {
	t.RemoveHeartbeatKey(order.Key())
}

func (t *HeartbeatTracker) RemoveHeartbeatKey(key domain.OrderKey) {
	value, ok := t.accounts.Load(key.AccountID)
	if !ok {
		return
	}
	hb := value.(*accountHeartbeats)

	hb.mu.Lock()
	delete(hb.entries, key)
	n := len(hb.entries)
	hb.mu.Unlock()

	metrics.SetTrackedOrders(key.AccountID, n)
}

// Tick runs one heartbeat cycle for the account. Keys are snapshotted first and every entry is
// re-read under the lock, so concurrent init/remove calls are neither lost nor processed twice.
// Exhausted orders are removed even when persisting their unknown status fails; those failures
// are returned joined.
func (t *HeartbeatTracker) Tick(ctx context.Context, accountID string) error {
	value, ok := t.accounts.Load(accountID)
	if !ok {
		return nil
	}
	hb := value.(*accountHeartbeats)
	metrics.RecordHeartbeatTick(accountID)

	hb.mu.Lock()
	keys := make([]domain.OrderKey, 0, len(hb.entries))
	for key := range hb.entries {
		keys = append(keys, key)
	}
	hb.mu.Unlock()

	var errs []error
	for _, key := range keys {
		hb.mu.Lock()
		entry, tracked := hb.entries[key]
		if !tracked {
			hb.mu.Unlock()
			continue
		}
		if entry.remaining > 0 {
			entry.remaining--
			hb.mu.Unlock()
			continue
		}
		delete(hb.entries, key)
		order := entry.order
		hb.mu.Unlock()

		if err := t.promote(ctx, order); err != nil {
			errs = append(errs, err)
		}
	}

	hb.mu.Lock()
	n := len(hb.entries)
	hb.mu.Unlock()
	metrics.SetTrackedOrders(accountID, n)

	return errors.Join(errs...)
}

func (t *HeartbeatTracker) promote(ctx context.Context, order domain.Order) error {
	if order.Status == domain.OrderStatusUnknown {
		return nil
	}

	event := domain.OrderEvent{EventDate: t.now(), Status: domain.OrderStatusUnknown}
	err := t.repo.AppendOrderEvent(ctx, order.Key(), event)
	metrics.RecordPromotion(order.AccountID, err)
	if err != nil {
		applogger.Logger.Error().Err(err).
			Str("account", order.AccountID).
			Int64("perm_id", order.PermID).
			Msg("persist unknown status failed")
		return fmt.Errorf("%w %s: %w", ErrPersistOrder, order.Key(), err)
	}

	applogger.Logger.Warn().
		Str("account", order.AccountID).
		Int64("perm_id", order.PermID).
		Str("symbol", order.Symbol).
		Msg("order heartbeat exhausted, status set to unknown")
	return nil
}

// HeartbeatCount returns the remaining budget of a tracked order.
func (t *HeartbeatTracker) HeartbeatCount(key domain.OrderKey) (int, bool) {
	value, ok := t.accounts.Load(key.AccountID)
	if !ok {
		return 0, false
	}
	hb := value.(*accountHeartbeats)

	hb.mu.Lock()
	defer hb.mu.Unlock()
	entry, ok := hb.entries[key]
	if !ok {
		return 0, false
	}
	return entry.remaining, true
}

// Heartbeats returns a snapshot of perm id -> remaining budget for the account.
func (t *HeartbeatTracker) Heartbeats(accountID string) map[int64]int {
	out := make(map[int64]int)
	value, ok := t.accounts.Load(accountID)
	if !ok {
		return out
	}
	hb := value.(*accountHeartbeats)

	hb.mu.Lock()
	defer hb.mu.Unlock()
	for key, entry := range hb.entries {
		out[key.PermID] = entry.remaining
	}
	return out
}

// RegisterAccount makes the account visible to the scheduler before it has any order.
func (t *HeartbeatTracker) RegisterAccount(accountID string) {
	t.account(accountID)
}

func (t *HeartbeatTracker) Accounts() []string {
	var accounts []string
	t.accounts.Range(func(key, _ any) bool {
		accounts = append(accounts, key.(string))
		return true
	})
	sort.Strings(accounts)
	return accounts
}

func (t *HeartbeatTracker) account(accountID string) *accountHeartbeats {
	if value, ok := t.accounts.Load(accountID); ok {
		return value.(*accountHeartbeats)
	}
	value, _ := t.accounts.LoadOrStore(accountID, &accountHeartbeats{
		entries: make(map[domain.OrderKey]*heartbeatEntry),
	})
	return value.(*accountHeartbeats)
}
