package audit

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiissal/take-a-chef/internal/db/dbtest"
	"github.com/wiissal/take-a-chef/internal/models"
)

type memSink struct {
	mu     sync.Mutex
	events []Event
	fail   bool
}

func (s *memSink) Log(_ context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("boom")
	}
	s.events = append(s.events, ev)
	return nil
}

func TestDispatcherDeliversInOrder(t *testing.T) {
	s := &memSink{}
	d := newDispatcher(s, zerolog.Nop())

	d.Dispatch(Event{Action: ActionBookingCreated})
	d.Dispatch(Event{Action: ActionBookingCancelled})
	d.Close()

	require.Len(t, s.events, 2)
	assert.Equal(t, ActionBookingCreated, s.events[0].Action)
	assert.Equal(t, ActionBookingCancelled, s.events[1].Action)
}

func TestDispatcherSurvivesSinkErrors(t *testing.T) {
	s := &memSink{fail: true}
	d := newDispatcher(s, zerolog.Nop())
	d.Dispatch(Event{Action: ActionReviewCreated})
	assert.NotPanics(t, d.Close)
}

func TestDispatchAfterCloseIsDropped(t *testing.T) {
	s := &memSink{}
	d := newDispatcher(s, zerolog.Nop())

	d.Dispatch(Event{Action: ActionBookingCreated})
	d.Close()

	assert.NotPanics(t, func() {
		d.Dispatch(Event{Action: ActionReviewCreated})
		d.Close()
	})
	require.Len(t, s.events, 1)
	assert.Equal(t, ActionBookingCreated, s.events[0].Action)
}

func TestDispatchRacesClose(t *testing.T) {
	d := newDispatcher(&memSink{}, zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				d.Dispatch(Event{Action: ActionBookingStatusUpdated})
			}
		}()
	}

	assert.NotPanics(t, d.Close)
	wg.Wait()
}

func TestNilDispatcher(t *testing.T) {
	var d *Dispatcher
	assert.NotPanics(t, func() {
		d.Dispatch(Event{Action: ActionReviewCreated})
		d.Close()
	})
}

func TestLoggerPersists(t *testing.T) {
	gdb := dbtest.New(t)
	d := NewDispatcher(New(gdb), zerolog.Nop())

	d.Dispatch(Event{
		ActorUserID: Uint(7),
		Action:      ActionReviewCreated,
		Entity:      "review",
		EntityID:    Uint(3),
		Metadata:    map[string]any{"rating": 5},
	})
	d.Close()

	var rows []models.AuditLog
	require.NoError(t, gdb.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, ActionReviewCreated, rows[0].Action)
	assert.Equal(t, uint(7), *rows[0].ActorUserID)
	assert.JSONEq(t, `{"rating":5}`, rows[0].Metadata)
}

func TestLoggerListIsScopedToActor(t *testing.T) {
	gdb := dbtest.New(t)
	l := New(gdb)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, l.Log(ctx, Event{ActorUserID: Uint(1), Action: ActionBookingCreated, Entity: "booking", EntityID: Uint(uint(i + 1))}))
	}
	require.NoError(t, l.Log(ctx, Event{ActorUserID: Uint(1), Action: ActionReviewCreated, Entity: "review"}))
	require.NoError(t, l.Log(ctx, Event{ActorUserID: Uint(2), Action: ActionBookingCreated, Entity: "booking"}))

	logs, total, err := l.List(ctx, Filter{ActorUserID: 1, Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	require.Len(t, logs, 2)
	assert.Equal(t, ActionReviewCreated, logs[0].Action)

	logs, total, err = l.List(ctx, Filter{ActorUserID: 1, Action: ActionBookingCreated, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	for _, row := range logs {
		assert.Equal(t, uint(1), *row.ActorUserID)
	}

	_, total, err = l.List(ctx, Filter{ActorUserID: 3, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
}
