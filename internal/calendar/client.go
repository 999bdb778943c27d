package calendar

import (
	"context"
	"fmt"
	"net/http"
	"time"

	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// primaryCalendar is the calendar all operations address.
const primaryCalendar = "primary"

// Client wraps the Google Calendar service for the primary calendar.
type Client struct {
	svc *calendar.Service

	// timeZone is applied to event times that arrive without a zone.
	timeZone string
}

// NewClient creates a Calendar client over the given authenticated HTTP
// client. timeZone defaults to UTC when empty.
func NewClient(ctx context.Context, httpClient *http.Client, timeZone string) (*Client, error) {
	svc, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}
	if timeZone == "" {
		timeZone = "UTC"
	}
	return &Client{svc: svc, timeZone: timeZone}, nil
}

// ListEvents returns up to maxResults events whose start time falls in
// the half-open window [timeMin, timeMax). Recurring events are expanded
// into their instances. A zero bound leaves that side of the window open.
func (c *Client) ListEvents(ctx context.Context, timeMin, timeMax time.Time, maxResults int64) ([]Event, error) {
	call := c.svc.Events.List(primaryCalendar).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(maxResults)

	if !timeMin.IsZero() {
		call = call.TimeMin(timeMin.Format(time.RFC3339))
	}
	if !timeMax.IsZero() {
		call = call.TimeMax(timeMax.Format(time.RFC3339))
	}

	res, err := call.Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	// The API includes events that merely overlap the window; keep only
	// those that start inside it.
	events := make([]Event, 0, len(res.Items))
	for _, item := range res.Items {
		ev := toEvent(item)
		if !inWindow(ev.Start, timeMin, timeMax) {
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

// CreateEvent creates an event on the primary calendar and returns it as
// stored upstream.
func (c *Client) CreateEvent(ctx context.Context, input EventInput) (*Event, error) {
	tz := input.TimeZone
	if tz == "" {
		tz = c.timeZone
	}

	ev := &calendar.Event{
		Summary:     input.Summary,
		Description: input.Description,
		Location:    input.Location,
		Start: &calendar.EventDateTime{
			DateTime: input.Start.Format(time.RFC3339),
			TimeZone: tz,
		},
		End: &calendar.EventDateTime{
			DateTime: input.End.Format(time.RFC3339),
			TimeZone: tz,
		},
	}
	for _, email := range input.Attendees {
		ev.Attendees = append(ev.Attendees, &calendar.EventAttendee{Email: email})
	}

	created, err := c.svc.Events.Insert(primaryCalendar, ev).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	out := toEvent(created)
	return &out, nil
}

// UpdateEvent applies a merge-patch to an existing event. Only fields
// set in the patch are sent; the rest keep their stored values.
func (c *Client) UpdateEvent(ctx context.Context, eventID string, patch EventPatch) (*Event, error) {
	ev := patchToEvent(patch, c.timeZone)

	updated, err := c.svc.Events.Patch(primaryCalendar, eventID, ev).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	out := toEvent(updated)
	return &out, nil
}

// DeleteEvent removes an event from the primary calendar.
func (c *Client) DeleteEvent(ctx context.Context, eventID string) error {
	return c.svc.Events.Delete(primaryCalendar, eventID).Context(ctx).Do()
}

// inWindow reports whether start lies in [timeMin, timeMax), with zero
// bounds treated as open.
func inWindow(start, timeMin, timeMax time.Time) bool {
	if !timeMin.IsZero() && start.Before(timeMin) {
		return false
	}
	if !timeMax.IsZero() && !start.Before(timeMax) {
		return false
	}
	return true
}

// patchToEvent builds the sparse API event a merge-patch sends.
func patchToEvent(patch EventPatch, defaultTZ string) *calendar.Event {
	ev := &calendar.Event{}

	if patch.Summary != nil {
		ev.Summary = *patch.Summary
	}
	if patch.Description != nil {
		ev.Description = *patch.Description
	}
	if patch.Location != nil {
		ev.Location = *patch.Location
	}

	tz := defaultTZ
	if patch.TimeZone != nil {
		tz = *patch.TimeZone
	}
	if patch.Start != nil {
		ev.Start = &calendar.EventDateTime{
			DateTime: patch.Start.Format(time.RFC3339),
			TimeZone: tz,
		}
	}
	if patch.End != nil {
		ev.End = &calendar.EventDateTime{
			DateTime: patch.End.Format(time.RFC3339),
			TimeZone: tz,
		}
	}
	if patch.Attendees != nil {
		// An explicitly empty list clears the attendees.
		ev.Attendees = []*calendar.EventAttendee{}
		for _, email := range *patch.Attendees {
			ev.Attendees = append(ev.Attendees, &calendar.EventAttendee{Email: email})
		}
	}

	return ev
}
