package calendar

import (
	"time"

	calendar "google.golang.org/api/calendar/v3"
)

// Event is the toolbox view of a calendar event.
type Event struct {
	ID          string     `json:"id"`
	Summary     string     `json:"summary"`
	Description string     `json:"description,omitempty"`
	Location    string     `json:"location,omitempty"`
	Start       time.Time  `json:"start"`
	End         time.Time  `json:"end"`
	AllDay      bool       `json:"all_day,omitempty"`
	Status      string     `json:"status,omitempty"`
	Organizer   string     `json:"organizer,omitempty"`
	Attendees   []Attendee `json:"attendees,omitempty"`
	HTMLLink    string     `json:"html_link,omitempty"`
}

// Attendee is one invitee of an event.
type Attendee struct {
	Email          string `json:"email"`
	DisplayName    string `json:"display_name,omitempty"`
	ResponseStatus string `json:"response_status,omitempty"`
}

// EventInput is the full set of fields for creating an event.
type EventInput struct {
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	TimeZone    string
	Attendees   []string
}

// EventPatch holds the fields of a merge-patch update. Nil fields are
// omitted from the request and keep their current value upstream.
type EventPatch struct {
	Summary     *string
	Description *string
	Location    *string
	Start       *time.Time
	End         *time.Time
	TimeZone    *string
	Attendees   *[]string
}

// toEvent converts an API event into the toolbox view. Date-only bounds
// mark the event as all-day.
func toEvent(ev *calendar.Event) Event {
	out := Event{
		ID:          ev.Id,
		Summary:     ev.Summary,
		Description: ev.Description,
		Location:    ev.Location,
		Status:      ev.Status,
		HTMLLink:    ev.HtmlLink,
	}

	out.Start, out.AllDay = parseEventTime(ev.Start)
	out.End, _ = parseEventTime(ev.End)

	if ev.Organizer != nil {
		out.Organizer = ev.Organizer.Email
	}
	for _, att := range ev.Attendees {
		out.Attendees = append(out.Attendees, Attendee{
			Email:          att.Email,
			DisplayName:    att.DisplayName,
			ResponseStatus: att.ResponseStatus,
		})
	}

	return out
}

// parseEventTime reads an event boundary, reporting whether it was a
// date-only (all-day) value.
func parseEventTime(edt *calendar.EventDateTime) (time.Time, bool) {
	if edt == nil {
		return time.Time{}, false
	}
	if edt.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, edt.DateTime); err == nil {
			return t, false
		}
		return time.Time{}, false
	}
	if edt.Date != "" {
		if t, err := time.Parse("2006-01-02", edt.Date); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
