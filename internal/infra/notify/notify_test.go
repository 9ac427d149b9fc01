package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trade_analytics/internal/domain"
)

type recordingNotifier struct {
	got []domain.Notification
	err error
}

func (r *recordingNotifier) Notify(_ context.Context, n domain.Notification) error {
	r.got = append(r.got, n)
	return r.err
}

type fakePublisher struct {
	channel string
	message interface{}
	err     error
}

func (f *fakePublisher) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	f.channel = channel
	f.message = message
	cmd := redis.NewIntCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
	} else {
		cmd.SetVal(1)
	}
	return cmd
}

func sample() domain.Notification {
	return domain.Notification{
		Topic:     domain.TopicReport,
		ReportID:  12,
		Key:       "12_MONTH_ALL_ALL_ALL_ALL",
		Message:   "statistics calculated for report 12",
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestMultiDeliversToEverySink(t *testing.T) {
	a := &recordingNotifier{}
	b := &recordingNotifier{err: errors.New("webhook down")}
	c := &recordingNotifier{}
	multi := NewMulti(a, nil, b, c)
	assert.Equal(t, 3, multi.Len())

	err := multi.Notify(context.Background(), sample())
	require.Error(t, err)
	assert.ErrorContains(t, err, "webhook down")

	assert.Len(t, a.got, 1)
	assert.Len(t, b.got, 1)
	assert.Len(t, c.got, 1, "a failing sink does not stop delivery")
}

func TestMultiWithoutSinks(t *testing.T) {
	assert.NoError(t, NewMulti().Notify(context.Background(), sample()))
}

func TestLogNotifier(t *testing.T) {
	assert.NoError(t, Log{}.Notify(context.Background(), sample()))
}

func TestRedisPublishesJSON(t *testing.T) {
	pub := &fakePublisher{}
	notifier, err := NewRedis(pub, "trade_analytics:")
	require.NoError(t, err)

	require.NoError(t, notifier.Notify(context.Background(), sample()))
	assert.Equal(t, "trade_analytics:report", pub.channel)

	payload, ok := pub.message.([]byte)
	require.True(t, ok)
	var decoded domain.Notification
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, int64(12), decoded.ReportID)
	assert.Equal(t, "12_MONTH_ALL_ALL_ALL_ALL", decoded.Key)
}

func TestRedisPublishError(t *testing.T) {
	notifier, err := NewRedis(&fakePublisher{err: errors.New("READONLY")}, "")
	require.NoError(t, err)

	err = notifier.Notify(context.Background(), sample())
	assert.ErrorContains(t, err, "publish report")
}

func TestNewRedisRequiresClient(t *testing.T) {
	_, err := NewRedis(nil, "x")
	assert.Error(t, err)
}
