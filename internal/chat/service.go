package chat

import (
	"context"

	"clubhouse/internal/event"
	"clubhouse/internal/logger"
	"clubhouse/internal/member"
	"clubhouse/internal/metrics"
)

const (
	maxRounds       = 3
	maxTokens       = 1024
	fallbackMessage = "I'm having trouble completing that request."
)

const systemPrompt = `You are the Clubhouse Assistant, an AI helper for country club members and staff. You help with:
- Finding information about upcoming club events
- RSVPing to events and managing existing RSVPs
- Answering general questions about the club

Be friendly, concise, and helpful. Use the available tools to look up real data instead of guessing. If a tool reports that multiple events match, ask the member which one they mean.`

type ChatMessage struct {
	Role    string `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content" binding:"required"`
}

type TurnResult struct {
	Message     string            `json:"message"`
	Attachments []EventAttachment `json:"attachments"`
}

type Service interface {
	RunTurn(ctx context.Context, mc *member.MemberWithTier, history []ChatMessage) (*TurnResult, error)
}

type service struct {
	provider Provider
	tools    *dispatcher
}

func NewService(provider Provider, events event.Service) Service {
	return &service{
		provider: provider,
		tools:    &dispatcher{events: events},
	}
}

// RunTurn drives the tool loop: ask the model, dispatch any tool calls,
// feed the results back, and stop on the first plain-text answer. The loop
// is bounded; a model that keeps calling tools gets cut off with a fixed
// fallback message instead of an error.
func (s *service) RunTurn(ctx context.Context, mc *member.MemberWithTier, history []ChatMessage) (*TurnResult, error) {
	messages := make([]Message, 0, len(history))
	for _, m := range history {
		messages = append(messages, Message{Role: m.Role, Content: m.Content})
	}

	var attachments []EventAttachment

	for round := 0; round < maxRounds; round++ {
		resp, err := s.provider.CreateMessage(ctx, MessagesRequest{
			MaxTokens: maxTokens,
			System:    systemPrompt,
			Messages:  messages,
			Tools:     toolDefinitions(),
		})
		if err != nil {
			return nil, err
		}
		metrics.RecordChatRound()

		var text string
		var toolCalls []ContentBlock
		for _, block := range resp.Content {
			switch block.Type {
			case "text":
				if text == "" {
					text = block.Text
				}
			case "tool_use":
				toolCalls = append(toolCalls, block)
			}
		}

		if len(toolCalls) == 0 {
			if text == "" {
				text = fallbackMessage
			}
			return &TurnResult{Message: text, Attachments: emptyIfNil(attachments)}, nil
		}

		messages = append(messages, Message{Role: "assistant", Content: resp.Content})

		results := make([]ContentBlock, 0, len(toolCalls))
		for _, call := range toolCalls {
			kind := ToolKindFromName(call.Name)
			metrics.RecordChatToolCall(kind.Name())
			logger.Infof("Chat tool dispatch: %s", kind.Name())

			outcome := s.tools.dispatch(ctx, mc, kind, call.Input)
			attachments = append(attachments, outcome.attachments...)
			results = append(results, ContentBlock{
				Type:      "tool_result",
				ToolUseID: call.ID,
				Content:   outcome.result,
			})
		}
		messages = append(messages, Message{Role: "user", Content: results})
	}

	return &TurnResult{Message: fallbackMessage, Attachments: emptyIfNil(attachments)}, nil
}

func emptyIfNil(attachments []EventAttachment) []EventAttachment {
	if attachments == nil {
		return []EventAttachment{}
	}
	return attachments
}
