package notify

import (
	"context"
	"errors"
	"fmt"

	"trade_analytics/internal/domain"
	applogger "trade_analytics/internal/infra/logger"
)

// Multi delivers a notification to every sink and reports all failures.
type Multi struct {
	sinks []domain.Notifier
}

func NewMulti(sinks ...domain.Notifier) *Multi {
	out := make([]domain.Notifier, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return &Multi{sinks: out}
}

func (m *Multi) Notify(ctx context.Context, n domain.Notification) error {
	var errs []error
	for i, sink := range m.sinks {
		if err := sink.Notify(ctx, n); err != nil {
			errs = append(errs, fmt.Errorf("sink %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func (m *Multi) Len() int {
	return len(m.sinks)
}

// Log writes notifications to the application log.
type Log struct{}

func (Log) Notify(_ context.Context, n domain.Notification) error {
	applogger.Logger.Info().
		Str("topic", n.Topic).
		Int64("report_id", n.ReportID).
		Str("key", n.Key).
		Msg(n.Message)
	return nil
}
