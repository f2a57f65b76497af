package agents

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"tripflow/internal/models/trip_models"
	"tripflow/pkg/utils"
)

// GeminiAgent is the Gemini-backed travel agent.
type GeminiAgent struct {
	agentCore
	client *genai.Client
	model  string
}

func NewGeminiAgent(apiKey, model string, sink utils.DebugSink, logger *zap.Logger) (*GeminiAgent, error) {
	if model == "" {
		model = "gemini-2.0-flash"
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiAgent{
		agentCore: agentCore{language: "English", sink: sink, logger: logger},
		client:    client,
		model:     model,
	}, nil
}

func (a *GeminiAgent) Name() string    { return "Gemini" }
func (a *GeminiAgent) ModelID() string { return a.model }

func (a *GeminiAgent) Close() error { return a.client.Close() }

// generativeModel returns a model handle with the system prompt rebuilt from
// the current destination and language context.
func (a *GeminiAgent) generativeModel() *genai.GenerativeModel {
	m := a.client.GenerativeModel(a.model)
	m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(a.systemPrompt())}}
	return m
}

func (a *GeminiAgent) StreamChat(ctx context.Context, message string, history []trip_models.ChatMessage) (<-chan string, error) {
	m := a.generativeModel()
	cs := m.StartChat()
	for _, msg := range history {
		role := "user"
		if msg.Role == "assistant" {
			role = "model"
		}
		cs.History = append(cs.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}

	iter := cs.SendMessageStream(ctx, genai.Text(message))

	out := make(chan string)
	go func() {
		defer close(out)
		for {
			resp, err := iter.Next()
			if errors.Is(err, iterator.Done) {
				return
			}
			if err != nil {
				a.logger.Warn("gemini stream interrupted", zap.Error(err))
				return
			}
			chunk := collectText(resp)
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

func (a *GeminiAgent) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := a.generativeModel().GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation: %w", err)
	}
	text := collectText(resp)
	if text == "" {
		return "", utils.ErrEmptyResponse
	}
	return text, nil
}

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return b.String()
}

func (a *GeminiAgent) GenerateItinerary(ctx context.Context, requirements string, current *trip_models.Itinerary, language string) (*trip_models.Itinerary, error) {
	raw, err := a.complete(ctx, buildFullItineraryPrompt(requirements, current, language))
	if err != nil {
		return nil, err
	}
	a.saveDebug("itinerary", raw)
	return decodeItinerary(raw)
}

func (a *GeminiAgent) GenerateMetadata(ctx context.Context, requirements string, language string) (*trip_models.ItineraryMetadata, error) {
	raw, err := a.complete(ctx, buildMetadataPrompt(requirements, language))
	if err != nil {
		return nil, err
	}
	a.saveDebug("metadata", raw)
	return decodeMetadata(raw)
}

func (a *GeminiAgent) GenerateDayBlock(ctx context.Context, req DayBlockRequest) ([]trip_models.DayPlan, error) {
	raw, err := a.complete(ctx, buildDayBlockPrompt(req))
	if err != nil {
		return nil, err
	}
	a.saveDebug(dayBlockDebugKind(req.StartDay, req.EndDay), raw)
	return decodeDayBlock(raw)
}
