package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	calendar "google.golang.org/api/calendar/v3"
)

func TestInWindow(t *testing.T) {
	t1 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	t2 := time.Date(2026, 3, 1, 17, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start time.Time
		want  bool
	}{
		{name: "before window", start: t1.Add(-time.Minute), want: false},
		{name: "exactly at lower bound", start: t1, want: true},
		{name: "inside window", start: t1.Add(3 * time.Hour), want: true},
		{name: "exactly at upper bound", start: t2, want: false},
		{name: "after window", start: t2.Add(time.Minute), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inWindow(tt.start, t1, t2))
		})
	}
}

func TestInWindowOpenBounds(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, inWindow(start, time.Time{}, time.Time{}))
	assert.True(t, inWindow(start, time.Time{}, start.Add(time.Hour)))
	assert.True(t, inWindow(start, start, time.Time{}))
}

func TestToEvent(t *testing.T) {
	ev := toEvent(&calendar.Event{
		Id:          "ev-1",
		Summary:     "Standup",
		Location:    "Room 4",
		Status:      "confirmed",
		Organizer:   &calendar.EventOrganizer{Email: "boss@example.com"},
		Start:       &calendar.EventDateTime{DateTime: "2026-03-01T09:00:00Z"},
		End:         &calendar.EventDateTime{DateTime: "2026-03-01T09:15:00Z"},
		Attendees: []*calendar.EventAttendee{
			{Email: "dev@example.com", ResponseStatus: "accepted"},
		},
	})

	assert.Equal(t, "ev-1", ev.ID)
	assert.Equal(t, "Standup", ev.Summary)
	assert.Equal(t, "boss@example.com", ev.Organizer)
	assert.Equal(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), ev.Start)
	assert.Equal(t, time.Date(2026, 3, 1, 9, 15, 0, 0, time.UTC), ev.End)
	assert.False(t, ev.AllDay)
	assert.Len(t, ev.Attendees, 1)
	assert.Equal(t, "accepted", ev.Attendees[0].ResponseStatus)
}

func TestToEventAllDay(t *testing.T) {
	ev := toEvent(&calendar.Event{
		Id:    "ev-2",
		Start: &calendar.EventDateTime{Date: "2026-03-02"},
		End:   &calendar.EventDateTime{Date: "2026-03-03"},
	})

	assert.True(t, ev.AllDay)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), ev.Start)
}

func TestPatchToEvent(t *testing.T) {
	summary := "Renamed"
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	ev := patchToEvent(EventPatch{Summary: &summary, Start: &start}, "UTC")

	assert.Equal(t, "Renamed", ev.Summary)
	assert.Equal(t, "", ev.Description, "unset fields stay empty in the patch")
	assert.Nil(t, ev.End, "unset times are omitted entirely")
	assert.Equal(t, "2026-03-01T10:00:00Z", ev.Start.DateTime)
	assert.Equal(t, "UTC", ev.Start.TimeZone)
	assert.Nil(t, ev.Attendees)
}

func TestPatchToEventClearsAttendees(t *testing.T) {
	empty := []string{}
	ev := patchToEvent(EventPatch{Attendees: &empty}, "UTC")
	assert.NotNil(t, ev.Attendees)
	assert.Empty(t, ev.Attendees)
}

func TestPatchToEventTimeZoneOverride(t *testing.T) {
	tz := "Europe/Berlin"
	end := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)

	ev := patchToEvent(EventPatch{End: &end, TimeZone: &tz}, "UTC")

	assert.Equal(t, "Europe/Berlin", ev.End.TimeZone)
}
