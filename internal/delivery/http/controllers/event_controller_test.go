package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"eventbooking/internal/delivery/http/helpers"
	"eventbooking/internal/domain"
)

type mockEventService struct {
	events []*domain.Event
	detail *domain.EventWithAvailability
	err    error

	gotFilter domain.EventFilter
	created   *domain.Event
}

func (m *mockEventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	if m.err != nil {
		return m.err
	}
	event.ID = 1
	m.created = event
	return nil
}

func (m *mockEventService) ListEvents(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	m.gotFilter = filter
	if m.err != nil {
		return nil, m.err
	}
	return m.events, nil
}

func (m *mockEventService) GetEventByID(ctx context.Context, eventID int64) (*domain.EventWithAvailability, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.detail, nil
}

func TestEventController_CreateEvent_Success(t *testing.T) {
	svc := &mockEventService{}
	ctrl := NewEventController(testLogger(), svc)

	body := `{"name": "Concert", "venue": "Arena", "date": "2026-10-01T20:00:00Z", "total_capacity": 100}`
	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(body))
	w := httptest.NewRecorder()
	ctrl.CreateEvent(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, w.Code)
	}
	if svc.created == nil || svc.created.Name != "Concert" || svc.created.TotalCapacity != 100 {
		t.Fatalf("unexpected created event: %+v", svc.created)
	}
}

func TestEventController_CreateEvent_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing name", body: `{"venue": "Arena", "date": "2026-10-01T20:00:00Z", "total_capacity": 100}`},
		{name: "missing venue", body: `{"name": "Concert", "date": "2026-10-01T20:00:00Z", "total_capacity": 100}`},
		{name: "missing date", body: `{"name": "Concert", "venue": "Arena", "total_capacity": 100}`},
		{name: "negative capacity", body: `{"name": "Concert", "venue": "Arena", "date": "2026-10-01T20:00:00Z", "total_capacity": -1}`},
		{name: "unknown field", body: `{"name": "Concert", "venue": "Arena", "date": "2026-10-01T20:00:00Z", "total_capacity": 1, "price": 10}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockEventService{}
			ctrl := NewEventController(testLogger(), svc)

			req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			ctrl.CreateEvent(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
			}
			if svc.created != nil {
				t.Fatal("service must not be called for invalid input")
			}
		})
	}
}

func TestEventController_ListEvents_PassesFilter(t *testing.T) {
	svc := &mockEventService{
		events: []*domain.Event{{ID: 1, Name: "Concert", Venue: "Arena"}},
	}
	ctrl := NewEventController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodGet, "/events?name=con&venue=are", nil)
	w := httptest.NewRecorder()
	ctrl.ListEvents(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if svc.gotFilter.Name != "con" || svc.gotFilter.Venue != "are" {
		t.Fatalf("unexpected filter: %+v", svc.gotFilter)
	}
}

func TestEventController_GetEventByID(t *testing.T) {
	svc := &mockEventService{
		detail: &domain.EventWithAvailability{
			Event:       &domain.Event{ID: 7, Name: "Concert", Venue: "Arena", Date: time.Now(), TotalCapacity: 100},
			SeatsBooked: 40,
			Remaining:   60,
		},
	}
	ctrl := NewEventController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodGet, "/events/7", nil)
	req.SetPathValue("eventID", "7")
	w := httptest.NewRecorder()
	ctrl.GetEventByID(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp struct {
		Data  domain.EventWithAvailability `json:"data"`
		Error *helpers.APIError            `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Data.SeatsBooked != 40 || resp.Data.Remaining != 60 {
		t.Fatalf("unexpected availability: %+v", resp.Data)
	}
}

func TestEventController_GetEventByID_NotFound(t *testing.T) {
	svc := &mockEventService{err: domain.ErrNotFound}
	ctrl := NewEventController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodGet, "/events/99", nil)
	req.SetPathValue("eventID", "99")
	w := httptest.NewRecorder()
	ctrl.GetEventByID(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestEventController_GetEventByID_BadID(t *testing.T) {
	for _, raw := range []string{"abc", "0", "-5"} {
		svc := &mockEventService{err: errors.New("must not be called")}
		ctrl := NewEventController(testLogger(), svc)

		req := httptest.NewRequest(http.MethodGet, "/events/"+raw, nil)
		req.SetPathValue("eventID", raw)
		w := httptest.NewRecorder()
		ctrl.GetEventByID(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("eventID %q: expected status %d, got %d", raw, http.StatusBadRequest, w.Code)
		}
	}
}
