package agents

import (
	"context"
	"errors"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"tripflow/internal/models/trip_models"
	"tripflow/pkg/utils"
)

// OpenAIAgent is the GPT-backed travel agent.
type OpenAIAgent struct {
	agentCore
	client *openai.Client
	model  string
}

func NewOpenAIAgent(apiKey, model string, sink utils.DebugSink, logger *zap.Logger) *OpenAIAgent {
	if model == "" {
		model = "gpt-4o"
	}
	return &OpenAIAgent{
		agentCore: agentCore{language: "English", sink: sink, logger: logger},
		client:    openai.NewClient(apiKey),
		model:     model,
	}
}

func (a *OpenAIAgent) Name() string    { return "OpenAI" }
func (a *OpenAIAgent) ModelID() string { return a.model }

func (a *OpenAIAgent) buildMessages(message string, history []trip_models.ChatMessage) []openai.ChatCompletionMessage {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: a.systemPrompt()},
	}
	for _, msg := range history {
		role := openai.ChatMessageRoleUser
		if msg.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: msg.Content})
	}
	return append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: message})
}

func (a *OpenAIAgent) StreamChat(ctx context.Context, message string, history []trip_models.ChatMessage) (<-chan string, error) {
	stream, err := a.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:    a.model,
		Messages: a.buildMessages(message, history),
		Stream:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("openai stream: %w", err)
	}

	out := make(chan string)
	go func() {
		defer close(out)
		defer stream.Close()
		for {
			resp, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				a.logger.Warn("openai stream interrupted", zap.Error(err))
				return
			}
			if len(resp.Choices) == 0 {
				continue
			}
			chunk := resp.Choices[0].Delta.Content
			if chunk == "" {
				continue
			}
			select {
			case out <- chunk:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (a *OpenAIAgent) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: a.systemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", utils.ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

func (a *OpenAIAgent) GenerateItinerary(ctx context.Context, requirements string, current *trip_models.Itinerary, language string) (*trip_models.Itinerary, error) {
	raw, err := a.complete(ctx, buildFullItineraryPrompt(requirements, current, language))
	if err != nil {
		return nil, err
	}
	a.saveDebug("itinerary", raw)
	return decodeItinerary(raw)
}

func (a *OpenAIAgent) GenerateMetadata(ctx context.Context, requirements string, language string) (*trip_models.ItineraryMetadata, error) {
	raw, err := a.complete(ctx, buildMetadataPrompt(requirements, language))
	if err != nil {
		return nil, err
	}
	a.saveDebug("metadata", raw)
	return decodeMetadata(raw)
}

func (a *OpenAIAgent) GenerateDayBlock(ctx context.Context, req DayBlockRequest) ([]trip_models.DayPlan, error) {
	raw, err := a.complete(ctx, buildDayBlockPrompt(req))
	if err != nil {
		return nil, err
	}
	a.saveDebug(dayBlockDebugKind(req.StartDay, req.EndDay), raw)
	return decodeDayBlock(raw)
}
