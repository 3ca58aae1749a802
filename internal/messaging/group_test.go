package messaging_test

import (
	"context"
	"errors"
	"testing"

	"github.com/serroba/shortlink-go/internal/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubRunnable struct {
	startErr    error
	shutdownErr error
	started     bool
	stopped     bool
}

func (r *stubRunnable) Start(_ context.Context) error {
	if r.startErr != nil {
		return r.startErr
	}

	r.started = true

	return nil
}

func (r *stubRunnable) Shutdown() error {
	r.stopped = true

	return r.shutdownErr
}

func TestConsumerGroup_Start(t *testing.T) {
	t.Run("starts every consumer", func(t *testing.T) {
		group := messaging.NewConsumerGroup(newStubSubscriber(), zap.NewNop())

		first := &stubRunnable{}
		second := &stubRunnable{}
		group.Add(first, second)

		require.NoError(t, group.Start(context.Background()))
		assert.True(t, first.started)
		assert.True(t, second.started)
	})

	t.Run("rolls back started consumers when a later one fails", func(t *testing.T) {
		group := messaging.NewConsumerGroup(newStubSubscriber(), zap.NewNop())

		first := &stubRunnable{}
		failing := &stubRunnable{startErr: errors.New("subscribe failed")}
		group.Add(first, failing)

		err := group.Start(context.Background())

		require.Error(t, err)
		assert.True(t, first.stopped)
	})
}

func TestConsumerGroup_Shutdown(t *testing.T) {
	t.Run("stops every consumer and the subscriber", func(t *testing.T) {
		sub := newStubSubscriber()
		group := messaging.NewConsumerGroup(sub, zap.NewNop())

		first := &stubRunnable{}
		group.Add(first)

		require.NoError(t, group.Start(context.Background()))

		require.NoError(t, group.Shutdown())
		assert.True(t, first.stopped)
		assert.True(t, sub.closed)
	})

	t.Run("reports every teardown failure", func(t *testing.T) {
		group := messaging.NewConsumerGroup(newStubSubscriber(), zap.NewNop())

		group.Add(
			&stubRunnable{shutdownErr: errors.New("first teardown failed")},
			&stubRunnable{shutdownErr: errors.New("second teardown failed")},
		)

		require.NoError(t, group.Start(context.Background()))

		err := group.Shutdown()

		require.Error(t, err)
		assert.ErrorContains(t, err, "first teardown failed")
		assert.ErrorContains(t, err, "second teardown failed")
	})
}
