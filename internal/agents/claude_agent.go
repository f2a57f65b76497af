package agents

import (
	"context"
	"fmt"

	anthropic "github.com/liushuangls/go-anthropic/v2"
	"go.uber.org/zap"

	"tripflow/internal/models/trip_models"
	"tripflow/pkg/utils"
)

// ClaudeAgent is the Anthropic-backed travel agent.
type ClaudeAgent struct {
	agentCore
	client *anthropic.Client
	model  string
}

func NewClaudeAgent(apiKey, model string, sink utils.DebugSink, logger *zap.Logger) *ClaudeAgent {
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}
	return &ClaudeAgent{
		agentCore: agentCore{language: "English", sink: sink, logger: logger},
		client:    anthropic.NewClient(apiKey),
		model:     model,
	}
}

func (a *ClaudeAgent) Name() string    { return "Claude" }
func (a *ClaudeAgent) ModelID() string { return a.model }

func (a *ClaudeAgent) buildMessages(message string, history []trip_models.ChatMessage) []anthropic.Message {
	var messages []anthropic.Message
	for _, msg := range history {
		if msg.Role == "assistant" {
			messages = append(messages, anthropic.NewAssistantTextMessage(msg.Content))
		} else {
			messages = append(messages, anthropic.NewUserTextMessage(msg.Content))
		}
	}
	return append(messages, anthropic.NewUserTextMessage(message))
}

func (a *ClaudeAgent) StreamChat(ctx context.Context, message string, history []trip_models.ChatMessage) (<-chan string, error) {
	out := make(chan string)
	go func() {
		defer close(out)
		_, err := a.client.CreateMessagesStream(ctx, anthropic.MessagesStreamRequest{
			MessagesRequest: anthropic.MessagesRequest{
				Model:     anthropic.Model(a.model),
				System:    a.systemPrompt(),
				Messages:  a.buildMessages(message, history),
				MaxTokens: 4096,
			},
			OnContentBlockDelta: func(data anthropic.MessagesEventContentBlockDeltaData) {
				if data.Delta.Text == nil || *data.Delta.Text == "" {
					return
				}
				select {
				case out <- *data.Delta.Text:
				case <-ctx.Done():
				}
			},
		})
		if err != nil {
			a.logger.Warn("claude stream interrupted", zap.Error(err))
		}
	}()
	return out, nil
}

func (a *ClaudeAgent) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := a.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(a.model),
		System:    a.systemPrompt(),
		Messages:  []anthropic.Message{anthropic.NewUserTextMessage(prompt)},
		MaxTokens: 8192,
	})
	if err != nil {
		return "", fmt.Errorf("claude completion: %w", err)
	}
	text := resp.GetFirstContentText()
	if text == "" {
		return "", utils.ErrEmptyResponse
	}
	return text, nil
}

func (a *ClaudeAgent) GenerateItinerary(ctx context.Context, requirements string, current *trip_models.Itinerary, language string) (*trip_models.Itinerary, error) {
	raw, err := a.complete(ctx, buildFullItineraryPrompt(requirements, current, language))
	if err != nil {
		return nil, err
	}
	a.saveDebug("itinerary", raw)
	return decodeItinerary(raw)
}

func (a *ClaudeAgent) GenerateMetadata(ctx context.Context, requirements string, language string) (*trip_models.ItineraryMetadata, error) {
	raw, err := a.complete(ctx, buildMetadataPrompt(requirements, language))
	if err != nil {
		return nil, err
	}
	a.saveDebug("metadata", raw)
	return decodeMetadata(raw)
}

func (a *ClaudeAgent) GenerateDayBlock(ctx context.Context, req DayBlockRequest) ([]trip_models.DayPlan, error) {
	raw, err := a.complete(ctx, buildDayBlockPrompt(req))
	if err != nil {
		return nil, err
	}
	a.saveDebug(dayBlockDebugKind(req.StartDay, req.EndDay), raw)
	return decodeDayBlock(raw)
}
