package services

import (
	"context"
	"testing"
	"time"

	"eventbooking/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventService_CreateEvent(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2025, 7, 1, 19, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		event   *domain.Event
		wantErr bool
	}{
		{
			name:  "success",
			event: domain.NewEvent("Concert", "Main Hall", date, 100, time.Time{}),
		},
		{
			name:  "zero capacity allowed",
			event: domain.NewEvent("Private Show", "Annex", date, 0, time.Time{}),
		},
		{
			name:    "missing name",
			event:   domain.NewEvent("  ", "Main Hall", date, 100, time.Time{}),
			wantErr: true,
		},
		{
			name:    "negative capacity",
			event:   domain.NewEvent("Concert", "Main Hall", date, -1, time.Time{}),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := newFakeEventRepo()
			svc := NewEventService(events, newFakeLedger(), time.Second)
			err := svc.CreateEvent(ctx, tt.event)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, tt.event.ID)
			assert.False(t, tt.event.CreatedAt.IsZero())
		})
	}
}

func TestEventService_GetEventByID(t *testing.T) {
	ctx := context.Background()
	events := newFakeEventRepo()
	events.byID[1] = &domain.Event{ID: 1, Name: "Concert", TotalCapacity: 10}
	ledger := newFakeLedger()
	ledger.addEvent(1, 10)
	svc := NewEventService(events, ledger, time.Second)

	_, err := ledger.Reserve(ctx, 1, 100, 4)
	require.NoError(t, err)

	got, err := svc.GetEventByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Concert", got.Event.Name)
	assert.Equal(t, 4, got.SeatsBooked)
	assert.Equal(t, 6, got.Remaining)
}

func TestEventService_GetEventByID_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewEventService(newFakeEventRepo(), newFakeLedger(), time.Second)

	got, err := svc.GetEventByID(ctx, 42)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, got)
}

func TestEventService_ListEvents_EmptyIsNotNil(t *testing.T) {
	ctx := context.Background()
	svc := NewEventService(newFakeEventRepo(), newFakeLedger(), time.Second)

	got, err := svc.ListEvents(ctx, domain.EventFilter{})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got)
}
