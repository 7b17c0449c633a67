package expiry

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
	orders   int64
	trips    int64
	orderErr error
	tripErr  error
	sweeps   atomic.Int64
}

func (f *fakeStore) DeactivateExpiredOrders(context.Context, time.Time) (int64, error) {
	f.sweeps.Add(1)
	return f.orders, f.orderErr
}

func (f *fakeStore) DeactivateExpiredTrips(context.Context, time.Time) (int64, error) {
	return f.trips, f.tripErr
}

func TestSweepOnceCounts(t *testing.T) {
	store := &fakeStore{orders: 3, trips: 2}
	s := NewSweeper(store, time.Hour, time.Minute)

	orders, trips, err := s.SweepOnce(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 3, orders)
	assert.EqualValues(t, 2, trips)
}

func TestSweepOnceSweepsBothKindsDespiteError(t *testing.T) {
	store := &fakeStore{orders: 1, trips: 4, orderErr: errors.New("orders table locked")}
	s := NewSweeper(store, time.Hour, time.Minute)

	_, trips, err := s.SweepOnce(context.Background())
	assert.Error(t, err)
	assert.EqualValues(t, 4, trips, "trip sweep must still run when order sweep fails")
}

func TestRunRetriesAfterFailureWithBackoff(t *testing.T) {
	store := &fakeStore{orderErr: errors.New("down")}
	s := NewSweeper(store, time.Hour, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()
	<-done

	// One immediate sweep plus several backoff retries within 100ms; the
	// hourly interval alone would have allowed only the first one.
	assert.Greater(t, store.sweeps.Load(), int64(2))
}

func TestRunStopsOnCancel(t *testing.T) {
	store := &fakeStore{}
	s := NewSweeper(store, time.Hour, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
	assert.EqualValues(t, 1, store.sweeps.Load(), "only the startup sweep should have run")
}

func TestNewSweeperDefaults(t *testing.T) {
	s := NewSweeper(&fakeStore{}, 0, 0)
	assert.Equal(t, 24*time.Hour, s.interval)
	assert.Equal(t, time.Hour, s.backoff)
}
