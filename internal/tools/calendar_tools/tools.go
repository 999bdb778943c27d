package calendar_tools

import (
	"context"
	"time"

	"github.com/mcptools/google-toolbox/internal/calendar"
	"github.com/mcptools/google-toolbox/internal/toolbox"
)

// Service is the Calendar surface the tools call. Implemented by
// calendar.Client; tests substitute a fake.
type Service interface {
	ListEvents(ctx context.Context, timeMin, timeMax time.Time, maxResults int64) ([]calendar.Event, error)
	CreateEvent(ctx context.Context, input calendar.EventInput) (*calendar.Event, error)
	UpdateEvent(ctx context.Context, eventID string, patch calendar.EventPatch) (*calendar.Event, error)
	DeleteEvent(ctx context.Context, eventID string) error
}

// Provider yields the Calendar service when a tool actually runs.
type Provider func(ctx context.Context) (Service, error)

// Definitions returns the Calendar tool set.
func Definitions(provide Provider) []toolbox.Definition {
	return []toolbox.Definition{
		{
			Name:         "list_events",
			Description:  "List upcoming calendar events whose start falls in the given time window",
			Service:      "calendar",
			Operation:    "list",
			RequiresAuth: true,
			Schema: toolbox.Schema{
				{Name: "time_min", Type: toolbox.TypeTime, Description: "Window start (RFC3339 or YYYY-MM-DD), inclusive"},
				{Name: "time_max", Type: toolbox.TypeTime, Description: "Window end (RFC3339 or YYYY-MM-DD), exclusive"},
				{Name: "max_results", Type: toolbox.TypeInt, Default: int64(10), Description: "Maximum number of events to return"},
			},
			Handler: func(ctx context.Context, args toolbox.Args) (any, error) {
				svc, err := provide(ctx)
				if err != nil {
					return nil, err
				}
				return svc.ListEvents(ctx, args.Time("time_min"), args.Time("time_max"), args.Int("max_results"))
			},
		},
		{
			Name:         "create_event",
			Description:  "Create a calendar event on the primary calendar",
			Service:      "calendar",
			Operation:    "create",
			Mutating:     true,
			RequiresAuth: true,
			Schema: toolbox.Schema{
				{Name: "summary", Type: toolbox.TypeString, Required: true, Description: "Event title"},
				{Name: "start", Type: toolbox.TypeTime, Required: true, Description: "Event start (RFC3339)"},
				{Name: "end", Type: toolbox.TypeTime, Required: true, Description: "Event end (RFC3339)"},
				{Name: "location", Type: toolbox.TypeString, Description: "Event location"},
				{Name: "description", Type: toolbox.TypeString, Description: "Event description"},
				{Name: "attendees", Type: toolbox.TypeStringList, Description: "Attendee email addresses"},
			},
			Handler: func(ctx context.Context, args toolbox.Args) (any, error) {
				start := args.Time("start")
				end := args.Time("end")
				if !end.After(start) {
					return nil, toolbox.Errorf(toolbox.KindValidation, "end must be after start")
				}
				svc, err := provide(ctx)
				if err != nil {
					return nil, err
				}
				return svc.CreateEvent(ctx, calendar.EventInput{
					Summary:     args.String("summary"),
					Description: args.String("description"),
					Location:    args.String("location"),
					Start:       start,
					End:         end,
					Attendees:   args.StringList("attendees"),
				})
			},
		},
		{
			Name:         "update_event",
			Description:  "Update fields of an existing calendar event; unspecified fields are left unchanged",
			Service:      "calendar",
			Operation:    "update",
			Mutating:     true,
			RequiresAuth: true,
			Schema: toolbox.Schema{
				{Name: "event_id", Type: toolbox.TypeString, Required: true, Description: "Event ID to update"},
				{Name: "summary", Type: toolbox.TypeString, Description: "New event title"},
				{Name: "start", Type: toolbox.TypeTime, Description: "New start (RFC3339)"},
				{Name: "end", Type: toolbox.TypeTime, Description: "New end (RFC3339)"},
				{Name: "location", Type: toolbox.TypeString, Description: "New location"},
				{Name: "description", Type: toolbox.TypeString, Description: "New description"},
				{Name: "attendees", Type: toolbox.TypeStringList, Description: "Replacement attendee list"},
			},
			Handler: func(ctx context.Context, args toolbox.Args) (any, error) {
				patch := buildPatch(args)
				if patch == (calendar.EventPatch{}) {
					return nil, toolbox.Errorf(toolbox.KindValidation, "no fields to update")
				}
				svc, err := provide(ctx)
				if err != nil {
					return nil, err
				}
				return svc.UpdateEvent(ctx, args.String("event_id"), patch)
			},
		},
		{
			Name:         "delete_event",
			Description:  "Delete a calendar event from the primary calendar",
			Service:      "calendar",
			Operation:    "delete",
			Mutating:     true,
			RequiresAuth: true,
			Schema: toolbox.Schema{
				{Name: "event_id", Type: toolbox.TypeString, Required: true, Description: "Event ID to delete"},
			},
			Handler: func(ctx context.Context, args toolbox.Args) (any, error) {
				svc, err := provide(ctx)
				if err != nil {
					return nil, err
				}
				eventID := args.String("event_id")
				if err := svc.DeleteEvent(ctx, eventID); err != nil {
					return nil, err
				}
				return map[string]string{"deleted": eventID}, nil
			},
		},
	}
}

// buildPatch lifts the provided arguments into a merge-patch, leaving
// absent fields nil.
func buildPatch(args toolbox.Args) calendar.EventPatch {
	var patch calendar.EventPatch

	if args.Has("summary") {
		s := args.String("summary")
		patch.Summary = &s
	}
	if args.Has("description") {
		s := args.String("description")
		patch.Description = &s
	}
	if args.Has("location") {
		s := args.String("location")
		patch.Location = &s
	}
	if args.Has("start") {
		t := args.Time("start")
		patch.Start = &t
	}
	if args.Has("end") {
		t := args.Time("end")
		patch.End = &t
	}
	if args.Has("attendees") {
		a := args.StringList("attendees")
		patch.Attendees = &a
	}

	return patch
}
