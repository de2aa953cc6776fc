package chat

import (
	"context"
	"encoding/json"
	"strings"

	"clubhouse/internal/apperr"
	"clubhouse/internal/event"
	"clubhouse/internal/member"
)

// ToolKind enumerates the dispatchable tools. Dispatch switches on the
// enum, never on the raw name string.
type ToolKind int

const (
	ToolUnknown ToolKind = iota
	ToolGetUpcomingEvents
	ToolRsvpToEvent
	ToolGetMyRsvps
	ToolCancelRsvp
)

const (
	toolNameGetUpcomingEvents = "get_upcoming_events"
	toolNameRsvpToEvent       = "rsvp_to_event"
	toolNameGetMyRsvps        = "get_my_rsvps"
	toolNameCancelRsvp        = "cancel_rsvp"
)

func ToolKindFromName(name string) ToolKind {
	switch name {
	case toolNameGetUpcomingEvents:
		return ToolGetUpcomingEvents
	case toolNameRsvpToEvent:
		return ToolRsvpToEvent
	case toolNameGetMyRsvps:
		return ToolGetMyRsvps
	case toolNameCancelRsvp:
		return ToolCancelRsvp
	default:
		return ToolUnknown
	}
}

func (k ToolKind) Name() string {
	switch k {
	case ToolGetUpcomingEvents:
		return toolNameGetUpcomingEvents
	case ToolRsvpToEvent:
		return toolNameRsvpToEvent
	case ToolGetMyRsvps:
		return toolNameGetMyRsvps
	case ToolCancelRsvp:
		return toolNameCancelRsvp
	default:
		return "unknown"
	}
}

func eventTitleSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"event_title": map[string]interface{}{
				"type":        "string",
				"description": "Full or partial title of the event",
			},
		},
		"required": []string{"event_title"},
	}
}

func toolDefinitions() []Tool {
	return []Tool{
		{
			Name:        toolNameGetUpcomingEvents,
			Description: "List the club's upcoming published events with dates, capacity and the member's RSVP status.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        toolNameRsvpToEvent,
			Description: "RSVP the member as attending an upcoming event, matched by title.",
			InputSchema: eventTitleSchema(),
		},
		{
			Name:        toolNameGetMyRsvps,
			Description: "List the events the member currently has an active RSVP for.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        toolNameCancelRsvp,
			Description: "Cancel the member's RSVP for an upcoming event, matched by title among their active RSVPs.",
			InputSchema: eventTitleSchema(),
		},
	}
}

// EventAttachment is the structured card data handed back to the client so
// it can render events without parsing the assistant's prose.
type EventAttachment struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Description    *string `json:"description,omitempty"`
	Location       *string `json:"location,omitempty"`
	StartDate      string  `json:"start_date"`
	EndDate        *string `json:"end_date,omitempty"`
	Capacity       *int    `json:"capacity,omitempty"`
	PriceCents     *int64  `json:"price_cents,omitempty"`
	RsvpCount      int     `json:"rsvp_count"`
	UserRsvpStatus *string `json:"user_rsvp_status,omitempty"`
}

type toolOutcome struct {
	result      string
	attachments []EventAttachment
}

type titleArgs struct {
	EventTitle string `json:"event_title"`
}

type dispatcher struct {
	events event.Service
}

// friendlyError surfaces classified rejection messages (capacity, not
// accepting RSVPs) to the model; anything else gets the fallback text.
func friendlyError(err error, fallback string) string {
	if apperr.KindOf(err) != apperr.KindUnknown {
		return apperr.MessageOf(err)
	}
	return fallback
}

func errorResult(msg string) string {
	out, _ := json.Marshal(map[string]string{"error": msg})
	return string(out)
}

func attachmentFromEvent(e event.Event, rsvpCount int, myStatus *event.RsvpStatus) EventAttachment {
	a := EventAttachment{
		ID:         e.ID.String(),
		Title:      e.Title,
		StartDate:  e.StartDate.Format("2006-01-02T15:04:05Z07:00"),
		Capacity:   e.Capacity,
		PriceCents: e.PriceCents,
		RsvpCount:  rsvpCount,
	}
	a.Description = e.Description
	a.Location = e.Location
	if e.EndDate != nil {
		end := e.EndDate.Format("2006-01-02T15:04:05Z07:00")
		a.EndDate = &end
	}
	if myStatus != nil {
		s := string(*myStatus)
		a.UserRsvpStatus = &s
	}
	return a
}

func (d *dispatcher) dispatch(ctx context.Context, mc *member.MemberWithTier, kind ToolKind, input json.RawMessage) toolOutcome {
	switch kind {
	case ToolGetUpcomingEvents:
		return d.getUpcomingEvents(ctx, mc)
	case ToolRsvpToEvent:
		var args titleArgs
		if err := json.Unmarshal(input, &args); err != nil || args.EventTitle == "" {
			return toolOutcome{result: errorResult("event_title is required")}
		}
		return d.rsvpToEvent(ctx, mc, args.EventTitle)
	case ToolGetMyRsvps:
		return d.getMyRsvps(ctx, mc)
	case ToolCancelRsvp:
		var args titleArgs
		if err := json.Unmarshal(input, &args); err != nil || args.EventTitle == "" {
			return toolOutcome{result: errorResult("event_title is required")}
		}
		return d.cancelRsvp(ctx, mc, args.EventTitle)
	default:
		return toolOutcome{result: errorResult("unknown tool")}
	}
}

func (d *dispatcher) getUpcomingEvents(ctx context.Context, mc *member.MemberWithTier) toolOutcome {
	events, err := d.events.ListUpcoming(ctx, mc)
	if err != nil {
		return toolOutcome{result: errorResult("Failed to load events. Please try again.")}
	}

	attachments := make([]EventAttachment, 0, len(events))
	for _, e := range events {
		attachments = append(attachments, attachmentFromEvent(e.Event, e.AttendingCount, e.MyRsvpStatus))
	}

	result, _ := json.Marshal(attachments)
	return toolOutcome{result: string(result), attachments: attachments}
}

// matchByTitle picks the event a fuzzy title refers to. An exact
// case-insensitive match wins outright; otherwise more than one candidate
// is ambiguous and the member has to choose.
func matchByTitle(candidates []event.Event, title string) (*event.Event, []string) {
	if len(candidates) == 0 {
		return nil, nil
	}
	for i := range candidates {
		if strings.EqualFold(candidates[i].Title, title) {
			return &candidates[i], nil
		}
	}
	if len(candidates) == 1 {
		return &candidates[0], nil
	}
	titles := make([]string, 0, len(candidates))
	for _, c := range candidates {
		titles = append(titles, c.Title)
	}
	return nil, titles
}

func disambiguationResult(titles []string) string {
	out, _ := json.Marshal(map[string]interface{}{
		"disambiguation": true,
		"message":        "Multiple events match that title. Ask the member which one they mean.",
		"candidates":     titles,
	})
	return string(out)
}

func (d *dispatcher) rsvpToEvent(ctx context.Context, mc *member.MemberWithTier, title string) toolOutcome {
	candidates, err := d.events.SearchUpcoming(ctx, mc, title)
	if err != nil {
		return toolOutcome{result: errorResult("Failed to search events. Please try again.")}
	}

	matched, ambiguous := matchByTitle(candidates, title)
	if ambiguous != nil {
		return toolOutcome{result: disambiguationResult(ambiguous)}
	}
	if matched == nil {
		return toolOutcome{result: errorResult(`No upcoming event found matching "` + title + `".`)}
	}

	rsvp, err := d.events.UpsertRsvp(ctx, mc, event.UpsertRsvpRequest{
		EventID: matched.ID,
		Status:  event.RsvpAttending,
	})
	if err != nil {
		return toolOutcome{result: errorResult(friendlyError(err, `"`+matched.Title+`" could not be booked.`))}
	}

	status := rsvp.Status
	attachment := attachmentFromEvent(*matched, 0, &status)
	result, _ := json.Marshal(map[string]interface{}{
		"success":     true,
		"event_title": matched.Title,
		"status":      rsvp.Status,
	})
	return toolOutcome{result: string(result), attachments: []EventAttachment{attachment}}
}

func (d *dispatcher) getMyRsvps(ctx context.Context, mc *member.MemberWithTier) toolOutcome {
	rsvps, err := d.events.MyRsvps(ctx, mc)
	if err != nil {
		return toolOutcome{result: errorResult("Failed to load RSVPs. Please try again.")}
	}

	type rsvpSummary struct {
		EventTitle string `json:"event_title"`
		StartDate  string `json:"start_date"`
		Status     string `json:"status"`
		GuestCount int    `json:"guest_count"`
	}
	summaries := make([]rsvpSummary, 0, len(rsvps))
	for _, r := range rsvps {
		summaries = append(summaries, rsvpSummary{
			EventTitle: r.EventTitle,
			StartDate:  r.EventStartDate.Format("2006-01-02T15:04:05Z07:00"),
			Status:     string(r.Status),
			GuestCount: r.GuestCount,
		})
	}

	result, _ := json.Marshal(summaries)
	return toolOutcome{result: string(result)}
}

func (d *dispatcher) cancelRsvp(ctx context.Context, mc *member.MemberWithTier, title string) toolOutcome {
	rsvps, err := d.events.MyRsvps(ctx, mc)
	if err != nil {
		return toolOutcome{result: errorResult("Failed to load RSVPs. Please try again.")}
	}
	if len(rsvps) == 0 {
		return toolOutcome{result: errorResult("You don't have any active RSVPs.")}
	}

	var matches []event.RsvpWithEvent
	for _, r := range rsvps {
		if strings.EqualFold(r.EventTitle, title) {
			matches = []event.RsvpWithEvent{r}
			break
		}
		if strings.Contains(strings.ToLower(r.EventTitle), strings.ToLower(title)) {
			matches = append(matches, r)
		}
	}
	if len(matches) == 0 {
		return toolOutcome{result: errorResult(`No active RSVP found matching "` + title + `".`)}
	}
	if len(matches) > 1 {
		titles := make([]string, 0, len(matches))
		for _, m := range matches {
			titles = append(titles, m.EventTitle)
		}
		return toolOutcome{result: disambiguationResult(titles)}
	}

	cancelled, err := d.events.CancelRsvp(ctx, mc, matches[0].EventID)
	if err != nil {
		return toolOutcome{result: errorResult("Failed to cancel the RSVP. Please try again.")}
	}

	result, _ := json.Marshal(map[string]interface{}{
		"success":     true,
		"event_title": matches[0].EventTitle,
		"status":      cancelled.Status,
	})
	return toolOutcome{result: string(result)}
}
