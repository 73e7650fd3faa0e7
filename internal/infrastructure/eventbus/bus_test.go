package eventbus

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikiasgoitom/Coursely/internal/domain/entity"
)

type captureLogger struct {
	mu     sync.Mutex
	errors []string
}

func (l *captureLogger) Debugf(string, ...interface{}) {}
func (l *captureLogger) Infof(string, ...interface{})  {}
func (l *captureLogger) Warnf(string, ...interface{})  {}
func (l *captureLogger) Errorf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, format)
}
func (l *captureLogger) Fatalf(string, ...interface{}) {}

func (l *captureLogger) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.errors)
}

func TestBus_DeliversTypedEvents(t *testing.T) {
	bus := New(&captureLogger{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan entity.ProfileStatusChanged, 1)
	require.NoError(t, Subscribe(ctx, bus, entity.TopicProfileStatusChanged, func(_ context.Context, e entity.ProfileStatusChanged) error {
		received <- e
		return nil
	}))

	require.NoError(t, bus.Publish(ctx, entity.TopicProfileStatusChanged, entity.ProfileStatusChanged{
		ProfileID: "user-1",
		Status:    entity.ProfileStatusSuspended,
		ChangedBy: "admin-1",
	}))

	select {
	case e := <-received:
		assert.Equal(t, "user-1", e.ProfileID)
		assert.Equal(t, entity.ProfileStatusSuspended, e.Status)
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered")
	}
	require.NoError(t, bus.Close())
}

func TestBus_SeparateInstancesDoNotShareSubscribers(t *testing.T) {
	a := New(&captureLogger{})
	b := New(&captureLogger{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan struct{}, 1)
	require.NoError(t, Subscribe(ctx, a, "topic", func(context.Context, map[string]string) error {
		got <- struct{}{}
		return nil
	}))
	require.NoError(t, b.Publish(ctx, "topic", map[string]string{"k": "v"}))

	select {
	case <-got:
		t.Fatal("event crossed bus instances")
	case <-time.After(100 * time.Millisecond):
	}
	require.NoError(t, a.Close())
	require.NoError(t, b.Close())
}

func TestBus_HandlerErrorIsLoggedAndNextMessageDelivered(t *testing.T) {
	logger := &captureLogger{}
	bus := New(logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var seen []int
	done := make(chan struct{})
	require.NoError(t, Subscribe(ctx, bus, "numbers", func(_ context.Context, n int) error {
		mu.Lock()
		seen = append(seen, n)
		count := len(seen)
		mu.Unlock()
		if count == 2 {
			close(done)
		}
		if n == 1 {
			return errors.New("boom")
		}
		return nil
	}))

	require.NoError(t, bus.Publish(ctx, "numbers", 1))
	require.NoError(t, bus.Publish(ctx, "numbers", 2))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("second message not delivered")
	}
	require.NoError(t, bus.Close())
	assert.GreaterOrEqual(t, logger.count(), 1)
}

func TestWatermillLogger_WithKeepsFields(t *testing.T) {
	logger := &captureLogger{}
	l := NewWatermillLogger(logger).With(watermill.LogFields{"topic": "x"})
	l.Error("failed", errors.New("boom"), watermill.LogFields{"attempt": 2})
	assert.Equal(t, 1, logger.count())
	assert.Equal(t, " attempt=2 topic=x", formatFields(watermill.LogFields{"topic": "x"}.Add(watermill.LogFields{"attempt": 2})))
}
