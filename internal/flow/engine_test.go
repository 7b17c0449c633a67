package flow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var frozen = time.Date(2025, 9, 10, 12, 0, 0, 0, time.UTC)

func newTestEnv() (*Manager, *memStates, *memListings) {
	states := newMemStates()
	mgr := NewManager(states)
	mgr.now = func() time.Time { return frozen }
	return mgr, states, &memListings{}
}

// answer feeds one message through the user's current step.
func answer(t *testing.T, mux *Mux, mgr *Manager, tgID int64, input string) Outcome {
	t.Helper()
	ctx := context.Background()
	step, data, found, err := mgr.Current(ctx, tgID)
	require.NoError(t, err)
	require.True(t, found, "expected an active dialog")
	out, ok, err := mux.Handle(ctx, tgID, step, data, input)
	require.NoError(t, err)
	require.True(t, ok, "step %q not routed", step)
	return out
}

func TestOrderFlowRoundTrip(t *testing.T) {
	ctx := context.Background()
	mgr, _, listings := newTestEnv()
	mux := NewMux()
	NewOrderFlow(mgr, listings).Bind(mux)

	promptKey, err := NewOrderFlow(mgr, listings).Start(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, "ask_product", promptKey)

	assert.Equal(t, "ask_weight", answer(t, mux, mgr, 100, "Cable").ReplyKey)
	assert.Equal(t, "ask_from", answer(t, mux, mgr, 100, "0.3").ReplyKey)
	assert.Equal(t, "ask_to", answer(t, mux, mgr, 100, "Istanbul").ReplyKey)
	assert.Equal(t, "ask_price", answer(t, mux, mgr, 100, "Lefkosa").ReplyKey)
	assert.Equal(t, "ask_expiry", answer(t, mux, mgr, 100, "10€").ReplyKey)

	out := answer(t, mux, mgr, 100, "7")
	assert.True(t, out.Done)
	assert.Equal(t, "order_posted", out.ReplyKey)

	require.Len(t, listings.orders, 1)
	o := listings.orders[0]
	assert.Equal(t, int64(100), o.TgID)
	assert.Equal(t, "Cable", o.Product)
	assert.Equal(t, 0.3, o.Weight)
	assert.Equal(t, "Istanbul", o.FromCity)
	assert.Equal(t, "Lefkosa", o.ToCity)
	assert.Equal(t, "10€", o.Price)
	assert.True(t, o.IsActive)
	assert.Equal(t, frozen, o.CreatedAt)
	assert.Equal(t, frozen.AddDate(0, 0, 7), o.ExpiresAt)
	assert.True(t, o.ExpiresAt.After(o.CreatedAt))

	_, _, found, err := mgr.Current(ctx, 100)
	require.NoError(t, err)
	assert.False(t, found, "state must be cleared after completion")
}

func TestOrderFlowWeightCoercedToZero(t *testing.T) {
	ctx := context.Background()
	mgr, _, listings := newTestEnv()
	mux := NewMux()
	f := NewOrderFlow(mgr, listings)
	f.Bind(mux)

	_, err := f.Start(ctx, 7)
	require.NoError(t, err)

	answer(t, mux, mgr, 7, "a phone")
	answer(t, mux, mgr, 7, "pretty heavy")
	answer(t, mux, mgr, 7, "Ankara")
	answer(t, mux, mgr, 7, "Girne")
	answer(t, mux, mgr, 7, "5€")
	answer(t, mux, mgr, 7, "3")

	require.Len(t, listings.orders, 1)
	assert.Equal(t, 0.0, listings.orders[0].Weight)
}

func TestOrderFlowMalformedExpiryReprompts(t *testing.T) {
	ctx := context.Background()
	mgr, _, listings := newTestEnv()
	mux := NewMux()
	f := NewOrderFlow(mgr, listings)
	f.Bind(mux)

	_, err := f.Start(ctx, 8)
	require.NoError(t, err)
	for _, in := range []string{"Cable", "0.3", "Istanbul", "Lefkosa", "10€"} {
		answer(t, mux, mgr, 8, in)
	}

	for _, bad := range []string{"abc", "0", "-2", "2020-01-01"} {
		out := answer(t, mux, mgr, 8, bad)
		assert.False(t, out.Done)
		assert.Equal(t, "invalid_expiry", out.ReplyKey, "input %q", bad)

		step, _, found, err := mgr.Current(ctx, 8)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, StepOrderExpiry, step, "state must not advance on %q", bad)
	}
	assert.Empty(t, listings.orders)

	out := answer(t, mux, mgr, 8, "2025-09-20")
	assert.True(t, out.Done)
	require.Len(t, listings.orders, 1)
	assert.Equal(t, time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC), listings.orders[0].ExpiresAt)
}

func TestTripFlowRoundTrip(t *testing.T) {
	ctx := context.Background()
	mgr, _, listings := newTestEnv()
	mux := NewMux()
	f := NewTripFlow(mgr, listings, 7)
	f.Bind(mux)

	promptKey, err := f.Start(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, "ask_trip_from", promptKey)

	assert.Equal(t, "ask_trip_to", answer(t, mux, mgr, 9, "Istanbul").ReplyKey)
	assert.Equal(t, "ask_trip_date", answer(t, mux, mgr, 9, "Lefkosa").ReplyKey)

	// Past and malformed dates re-prompt without advancing.
	assert.Equal(t, "invalid_date", answer(t, mux, mgr, 9, "2024-01-01").ReplyKey)
	assert.Equal(t, "invalid_date", answer(t, mux, mgr, 9, "soon").ReplyKey)
	step, _, _, err := mgr.Current(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, StepTripDate, step)

	assert.Equal(t, "ask_trip_capacity", answer(t, mux, mgr, 9, "2025-10-15").ReplyKey)
	assert.Equal(t, "ask_trip_price", answer(t, mux, mgr, 9, "12").ReplyKey)

	out := answer(t, mux, mgr, 9, "2€/kg")
	assert.True(t, out.Done)
	assert.Equal(t, "trip_posted", out.ReplyKey)

	require.Len(t, listings.trips, 1)
	tr := listings.trips[0]
	assert.Equal(t, "2025-10-15", tr.Date)
	assert.Equal(t, 12.0, tr.CapacityKG)
	// Trips disappear the day after travel.
	assert.Equal(t, time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC), tr.ExpiresAt)
}

func TestStartDiscardsPreviousDialog(t *testing.T) {
	ctx := context.Background()
	mgr, _, listings := newTestEnv()
	mux := NewMux()
	orderFlow := NewOrderFlow(mgr, listings)
	tripFlow := NewTripFlow(mgr, listings, 7)
	orderFlow.Bind(mux)
	tripFlow.Bind(mux)

	_, err := orderFlow.Start(ctx, 5)
	require.NoError(t, err)
	answer(t, mux, mgr, 5, "Cable")

	// Entering the trip flow silently drops the half-finished order.
	_, err = tripFlow.Start(ctx, 5)
	require.NoError(t, err)

	step, data, found, err := mgr.Current(ctx, 5)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, StepTripFrom, step)
	assert.NotContains(t, data, "Cable")
}

func TestAbortClearsState(t *testing.T) {
	ctx := context.Background()
	mgr, _, listings := newTestEnv()
	f := NewOrderFlow(mgr, listings)

	_, err := f.Start(ctx, 3)
	require.NoError(t, err)
	require.NoError(t, f.Abort(ctx, 3))

	_, _, found, err := mgr.Current(ctx, 3)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, listings.orders, "the aborting message must not become an answer")
}

func TestMuxUnknownStep(t *testing.T) {
	mux := NewMux()
	_, ok, err := mux.Handle(context.Background(), 1, "waiting_nothing", "", "hi")
	require.NoError(t, err)
	assert.False(t, ok)
}
