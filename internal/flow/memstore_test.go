package flow

import (
	"context"
	"sync"
	"time"

	"github.com/kananguluzade/CantaOrtak-TgBot/internal/domain"
	"github.com/kananguluzade/CantaOrtak-TgBot/internal/repo"
)

// memStates is an in-memory StateStore for engine tests.
type memStates struct {
	mu     sync.Mutex
	states map[int64]domain.ConversationState
}

func newMemStates() *memStates {
	return &memStates{states: make(map[int64]domain.ConversationState)}
}

func (m *memStates) Set(_ context.Context, tgID int64, step, data string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[tgID] = domain.ConversationState{TgID: tgID, Step: step, Data: data, UpdatedAt: now}
	return nil
}

func (m *memStates) Get(_ context.Context, tgID int64) (domain.ConversationState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.states[tgID]
	if !ok {
		return domain.ConversationState{}, repo.ErrNotFound
	}
	return st, nil
}

func (m *memStates) Clear(_ context.Context, tgID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, tgID)
	return nil
}

type memListings struct {
	mu     sync.Mutex
	orders []domain.Order
	trips  []domain.Trip
}

func (m *memListings) InsertOrder(_ context.Context, o domain.Order) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o.ID = int64(len(m.orders) + 1)
	m.orders = append(m.orders, o)
	return o.ID, nil
}

func (m *memListings) InsertTrip(_ context.Context, t domain.Trip) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.ID = int64(len(m.trips) + 1)
	m.trips = append(m.trips, t)
	return t.ID, nil
}
