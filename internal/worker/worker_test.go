package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	calls   atomic.Int32
	deleted int64
	err     error
	before  time.Time
}

func (f *fakeStore) DeleteStalePending(_ context.Context, before time.Time) (int64, error) {
	f.calls.Add(1)
	f.before = before
	return f.deleted, f.err
}

func TestSweeper_Sweep(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("uses ttl cutoff", func(t *testing.T) {
		store := &fakeStore{deleted: 3}
		s := NewSweeper(store, 24*time.Hour, time.Minute)
		s.now = func() time.Time { return now }

		n, err := s.Sweep(context.Background())

		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
		assert.Equal(t, now.Add(-24*time.Hour), store.before)
	})

	t.Run("store error", func(t *testing.T) {
		store := &fakeStore{err: errors.New("delete stale payment methods: db down")}
		s := NewSweeper(store, time.Hour, time.Minute)

		_, err := s.Sweep(context.Background())

		assert.Error(t, err)
	})
}

func TestSweeper_StartStop(t *testing.T) {
	store := &fakeStore{}
	s := NewSweeper(store, time.Hour, 5*time.Millisecond)

	s.Start(context.Background())
	assert.Eventually(t, func() bool { return store.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	s.Stop()

	calls := store.calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, calls, store.calls.Load())
}

func TestSweeper_SweepsOnStart(t *testing.T) {
	store := &fakeStore{}
	s := NewSweeper(store, time.Hour, time.Hour)

	s.Start(context.Background())
	assert.Eventually(t, func() bool { return store.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	s.Stop()

	assert.Equal(t, int32(1), store.calls.Load())
}
