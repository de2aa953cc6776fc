package chat

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"clubhouse/internal/apperr"
	"clubhouse/internal/event"
	"clubhouse/internal/logger"
	"clubhouse/internal/member"
)

func TestMain(m *testing.M) {
	logger.Init()

	code := m.Run()
	os.Exit(code)
}

// scriptedProvider отдает заранее заданные ответы по одному за раунд
type scriptedProvider struct {
	responses []MessagesResponse
	calls     int
	requests  []MessagesRequest
}

func (p *scriptedProvider) CreateMessage(ctx context.Context, req MessagesRequest) (*MessagesResponse, error) {
	p.requests = append(p.requests, req)
	if p.calls >= len(p.responses) {
		return nil, errors.New("no scripted response left")
	}
	resp := p.responses[p.calls]
	p.calls++
	return &resp, nil
}

type failingProvider struct{}

func (p *failingProvider) CreateMessage(ctx context.Context, req MessagesRequest) (*MessagesResponse, error) {
	return nil, apperr.Upstream("Model provider unreachable", errors.New("dial tcp: connection refused"))
}

type MockEventService struct{ mock.Mock }

func (m *MockEventService) ListUpcoming(ctx context.Context, mc *member.MemberWithTier) ([]event.EventWithRsvp, error) {
	args := m.Called(ctx, mc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]event.EventWithRsvp), args.Error(1)
}

func (m *MockEventService) SearchUpcoming(ctx context.Context, mc *member.MemberWithTier, query string) ([]event.Event, error) {
	args := m.Called(ctx, mc, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]event.Event), args.Error(1)
}

func (m *MockEventService) Create(ctx context.Context, mc *member.MemberWithTier, req event.CreateEventRequest) (*event.Event, error) {
	args := m.Called(ctx, mc, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*event.Event), args.Error(1)
}

func (m *MockEventService) UpsertRsvp(ctx context.Context, mc *member.MemberWithTier, req event.UpsertRsvpRequest) (*event.Rsvp, error) {
	args := m.Called(ctx, mc, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*event.Rsvp), args.Error(1)
}

func (m *MockEventService) MyRsvps(ctx context.Context, mc *member.MemberWithTier) ([]event.RsvpWithEvent, error) {
	args := m.Called(ctx, mc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]event.RsvpWithEvent), args.Error(1)
}

func (m *MockEventService) CancelRsvp(ctx context.Context, mc *member.MemberWithTier, eventID uuid.UUID) (*event.Rsvp, error) {
	args := m.Called(ctx, mc, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*event.Rsvp), args.Error(1)
}

func testMember() *member.MemberWithTier {
	return &member.MemberWithTier{
		Member: member.Member{
			ID:     uuid.New(),
			ClubID: uuid.New(),
			Email:  "pat@example.com",
			Role:   member.RoleMember,
			Status: member.StatusActive,
		},
	}
}

func textResponse(text string) MessagesResponse {
	return MessagesResponse{
		Content:    []ContentBlock{{Type: "text", Text: text}},
		StopReason: "end_turn",
	}
}

func toolUseResponse(id, name, input string) MessagesResponse {
	return MessagesResponse{
		Content:    []ContentBlock{{Type: "tool_use", ID: id, Name: name, Input: json.RawMessage(input)}},
		StopReason: "tool_use",
	}
}

func history(content string) []ChatMessage {
	return []ChatMessage{{Role: "user", Content: content}}
}

func TestRunTurn_PlainText(t *testing.T) {
	provider := &scriptedProvider{responses: []MessagesResponse{
		textResponse("The pool opens at 7am."),
	}}
	svc := NewService(provider, new(MockEventService))

	result, err := svc.RunTurn(context.Background(), testMember(), history("When does the pool open?"))

	assert.NoError(t, err)
	assert.Equal(t, "The pool opens at 7am.", result.Message)
	assert.Empty(t, result.Attachments)
	assert.Equal(t, 1, provider.calls)

	// Инструменты предлагаются на каждом раунде
	assert.Len(t, provider.requests[0].Tools, 4)
}

func TestRunTurn_ToolCallThenAnswer(t *testing.T) {
	events := new(MockEventService)
	mc := testMember()
	status := event.RsvpAttending
	events.On("ListUpcoming", mock.Anything, mc).Return([]event.EventWithRsvp{
		{
			Event: event.Event{
				ID:        uuid.New(),
				Title:     "Summer Gala",
				StartDate: time.Now().Add(7 * 24 * time.Hour),
				Status:    event.StatusPublished,
			},
			AttendingCount: 12,
			MyRsvpStatus:   &status,
		},
	}, nil)

	provider := &scriptedProvider{responses: []MessagesResponse{
		toolUseResponse("tc_1", "get_upcoming_events", `{}`),
		textResponse("There is one upcoming event: the Summer Gala."),
	}}
	svc := NewService(provider, events)

	result, err := svc.RunTurn(context.Background(), mc, history("What's coming up?"))

	assert.NoError(t, err)
	assert.Equal(t, "There is one upcoming event: the Summer Gala.", result.Message)
	assert.Len(t, result.Attachments, 1)
	assert.Equal(t, "Summer Gala", result.Attachments[0].Title)
	assert.Equal(t, 12, result.Attachments[0].RsvpCount)
	assert.Equal(t, 2, provider.calls)

	// Второй запрос несет ответ ассистента и tool_result
	second := provider.requests[1]
	assert.Len(t, second.Messages, 3)
	blocks, ok := second.Messages[2].Content.([]ContentBlock)
	assert.True(t, ok)
	assert.Equal(t, "tool_result", blocks[0].Type)
	assert.Equal(t, "tc_1", blocks[0].ToolUseID)
}

func TestRunTurn_RoundLimitFallback(t *testing.T) {
	events := new(MockEventService)
	events.On("ListUpcoming", mock.Anything, mock.Anything).Return([]event.EventWithRsvp{}, nil)

	provider := &scriptedProvider{responses: []MessagesResponse{
		toolUseResponse("tc_1", "get_upcoming_events", `{}`),
		toolUseResponse("tc_2", "get_upcoming_events", `{}`),
		toolUseResponse("tc_3", "get_upcoming_events", `{}`),
		textResponse("never reached"),
	}}
	svc := NewService(provider, events)

	result, err := svc.RunTurn(context.Background(), testMember(), history("loop forever"))

	assert.NoError(t, err)
	assert.Equal(t, fallbackMessage, result.Message)
	assert.Equal(t, 3, provider.calls)
}

func TestRunTurn_ProviderError(t *testing.T) {
	svc := NewService(&failingProvider{}, new(MockEventService))

	_, err := svc.RunTurn(context.Background(), testMember(), history("hello"))

	assert.True(t, apperr.IsKind(err, apperr.KindUpstream))
}

func TestRunTurn_UnknownToolDegradesGracefully(t *testing.T) {
	provider := &scriptedProvider{responses: []MessagesResponse{
		toolUseResponse("tc_1", "build_time_machine", `{}`),
		textResponse("I can't do that."),
	}}
	svc := NewService(provider, new(MockEventService))

	result, err := svc.RunTurn(context.Background(), testMember(), history("go back in time"))

	assert.NoError(t, err)
	assert.Equal(t, "I can't do that.", result.Message)
}

func TestToolKindFromName(t *testing.T) {
	assert.Equal(t, ToolGetUpcomingEvents, ToolKindFromName("get_upcoming_events"))
	assert.Equal(t, ToolRsvpToEvent, ToolKindFromName("rsvp_to_event"))
	assert.Equal(t, ToolGetMyRsvps, ToolKindFromName("get_my_rsvps"))
	assert.Equal(t, ToolCancelRsvp, ToolKindFromName("cancel_rsvp"))
	assert.Equal(t, ToolUnknown, ToolKindFromName("launch_missiles"))
}

func TestMatchByTitle(t *testing.T) {
	gala := event.Event{ID: uuid.New(), Title: "Summer Gala"}
	galaDinner := event.Event{ID: uuid.New(), Title: "Summer Gala Dinner"}

	t.Run("single candidate wins", func(t *testing.T) {
		matched, ambiguous := matchByTitle([]event.Event{gala}, "gala")
		assert.Nil(t, ambiguous)
		assert.Equal(t, gala.ID, matched.ID)
	})

	t.Run("exact match short-circuits ambiguity", func(t *testing.T) {
		matched, ambiguous := matchByTitle([]event.Event{gala, galaDinner}, "summer gala")
		assert.Nil(t, ambiguous)
		assert.Equal(t, gala.ID, matched.ID)
	})

	t.Run("several partial matches are ambiguous", func(t *testing.T) {
		matched, ambiguous := matchByTitle([]event.Event{gala, galaDinner}, "summer")
		assert.Nil(t, matched)
		assert.Equal(t, []string{"Summer Gala", "Summer Gala Dinner"}, ambiguous)
	})

	t.Run("no candidates", func(t *testing.T) {
		matched, ambiguous := matchByTitle(nil, "gala")
		assert.Nil(t, matched)
		assert.Nil(t, ambiguous)
	})
}

func TestDispatch_RsvpDisambiguation(t *testing.T) {
	events := new(MockEventService)
	mc := testMember()
	events.On("SearchUpcoming", mock.Anything, mc, "summer").Return([]event.Event{
		{ID: uuid.New(), Title: "Summer Gala", StartDate: time.Now().Add(24 * time.Hour)},
		{ID: uuid.New(), Title: "Summer Regatta", StartDate: time.Now().Add(48 * time.Hour)},
	}, nil)

	d := &dispatcher{events: events}
	outcome := d.dispatch(context.Background(), mc, ToolRsvpToEvent, json.RawMessage(`{"event_title":"summer"}`))

	var parsed map[string]interface{}
	assert.NoError(t, json.Unmarshal([]byte(outcome.result), &parsed))
	assert.Equal(t, true, parsed["disambiguation"])
	events.AssertNotCalled(t, "UpsertRsvp", mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatch_RsvpAtCapacity(t *testing.T) {
	events := new(MockEventService)
	mc := testMember()
	eventID := uuid.New()
	events.On("SearchUpcoming", mock.Anything, mc, "gala").Return([]event.Event{
		{ID: eventID, Title: "Summer Gala", StartDate: time.Now().Add(24 * time.Hour)},
	}, nil)
	events.On("UpsertRsvp", mock.Anything, mc, mock.Anything).Return(nil, apperr.Conflict("This event is at capacity"))

	d := &dispatcher{events: events}
	outcome := d.dispatch(context.Background(), mc, ToolRsvpToEvent, json.RawMessage(`{"event_title":"gala"}`))

	var parsed map[string]string
	assert.NoError(t, json.Unmarshal([]byte(outcome.result), &parsed))
	assert.Equal(t, "This event is at capacity", parsed["error"])
}

func TestDispatch_CancelRsvp(t *testing.T) {
	events := new(MockEventService)
	mc := testMember()
	eventID := uuid.New()
	events.On("MyRsvps", mock.Anything, mc).Return([]event.RsvpWithEvent{
		{
			Rsvp:           event.Rsvp{ID: uuid.New(), EventID: eventID, MemberID: mc.ID, Status: event.RsvpAttending},
			EventTitle:     "Summer Gala",
			EventStartDate: time.Now().Add(24 * time.Hour),
		},
	}, nil)
	events.On("CancelRsvp", mock.Anything, mc, eventID).Return(&event.Rsvp{Status: event.RsvpDeclined}, nil)

	d := &dispatcher{events: events}
	outcome := d.dispatch(context.Background(), mc, ToolCancelRsvp, json.RawMessage(`{"event_title":"gala"}`))

	var parsed map[string]interface{}
	assert.NoError(t, json.Unmarshal([]byte(outcome.result), &parsed))
	assert.Equal(t, true, parsed["success"])
	assert.Equal(t, "declined", parsed["status"])
}
