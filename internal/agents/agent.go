package agents

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"tripflow/internal/config"
	"tripflow/internal/models/trip_models"
	"tripflow/pkg/utils"
)

// TravelAgent is the provider-agnostic capability contract. All three
// adapters implement it identically at the contract level; wire-level
// request handling belongs to the provider SDKs.
type TravelAgent interface {
	Name() string
	ModelID() string

	// SetDestinations and SetLanguage change the context from which the
	// system prompt is rebuilt before every request.
	SetDestinations(d *trip_models.TripDestinations)
	SetLanguage(language string)

	// StreamChat sends a message and returns a finite, single-consumer
	// sequence of response chunks. The channel is closed when the provider
	// ends the stream; cancellation is cooperative via ctx.
	StreamChat(ctx context.Context, message string, history []trip_models.ChatMessage) (<-chan string, error)

	// GenerateItinerary produces a complete itinerary in one call,
	// optionally updating an existing one.
	GenerateItinerary(ctx context.Context, requirements string, current *trip_models.Itinerary, language string) (*trip_models.Itinerary, error)

	// GenerateMetadata produces the trip shell; the model infers total_days
	// from conversational cues.
	GenerateMetadata(ctx context.Context, requirements string, language string) (*trip_models.ItineraryMetadata, error)

	// GenerateDayBlock produces day plans for an inclusive day range.
	GenerateDayBlock(ctx context.Context, req DayBlockRequest) ([]trip_models.DayPlan, error)
}

type DayBlockRequest struct {
	Requirements string
	Metadata     *trip_models.ItineraryMetadata
	StartDay     int
	EndDay       int
	TotalDays    int
	PreviousDays []trip_models.DayPlan
	Language     string
}

// agentCore carries the state shared by every adapter: prompt context and the
// debug sink every raw response is handed to before parsing.
type agentCore struct {
	destinations *trip_models.TripDestinations
	language     string
	sink         utils.DebugSink
	logger       *zap.Logger
}

func (c *agentCore) SetDestinations(d *trip_models.TripDestinations) {
	c.destinations = d
}

func (c *agentCore) SetLanguage(language string) {
	c.language = language
}

func (c *agentCore) systemPrompt() string {
	return BuildSystemPrompt(c.destinations, c.language)
}

// saveDebug is fire-and-forget: the sink swallows its own failures and a
// missing sink never fails a generation call.
func (c *agentCore) saveDebug(kind, raw string) {
	if c.sink != nil {
		c.sink.Write(kind, raw)
	}
}

func decodeItinerary(raw string) (*trip_models.Itinerary, error) {
	var it trip_models.Itinerary
	if err := utils.DecodeModelJSON(raw, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

func decodeMetadata(raw string) (*trip_models.ItineraryMetadata, error) {
	var m trip_models.ItineraryMetadata
	if err := utils.DecodeModelJSON(raw, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// decodeDayBlock accepts the day-range response in either a wrapped
// {"days": [...]} shape or a bare array shape.
func decodeDayBlock(raw string) ([]trip_models.DayPlan, error) {
	var wrapped struct {
		Days []trip_models.DayPlan `json:"days"`
	}
	if err := utils.DecodeModelJSON(raw, &wrapped); err == nil && wrapped.Days != nil {
		return wrapped.Days, nil
	}

	var days []trip_models.DayPlan
	if err := utils.DecodeModelJSON(raw, &days); err != nil {
		return nil, err
	}
	return days, nil
}

func dayBlockDebugKind(start, end int) string {
	return fmt.Sprintf("days_%d_%d", start, end)
}

// AgentFactory builds provider adapters with the process-wide config, debug
// sink and credential source already bound.
type AgentFactory struct {
	cfg    config.Config
	creds  config.CredentialSource
	sink   utils.DebugSink
	logger *zap.Logger
}

func NewAgentFactory(cfg config.Config, creds config.CredentialSource, sink utils.DebugSink, logger *zap.Logger) *AgentFactory {
	return &AgentFactory{cfg: cfg, creds: creds, sink: sink, logger: logger}
}

// Create builds an agent for the provider, falling back to the configured
// default when provider is empty.
func (f *AgentFactory) Create(provider string) (TravelAgent, error) {
	if provider == "" {
		provider = f.cfg.Providers.DefaultProvider
	}
	return NewAgent(provider, f.cfg, f.creds, f.sink, f.logger)
}

// NewAgent creates the adapter for the requested provider.
func NewAgent(provider string, cfg config.Config, creds config.CredentialSource, sink utils.DebugSink, logger *zap.Logger) (TravelAgent, error) {
	switch strings.ToLower(provider) {
	case "openai":
		return NewOpenAIAgent(creds.Get("openai"), cfg.Providers.OpenAIModel, sink, logger), nil
	case "gemini":
		return NewGeminiAgent(creds.Get("gemini"), cfg.Providers.GeminiModel, sink, logger)
	case "claude", "anthropic":
		return NewClaudeAgent(creds.Get("claude"), cfg.Providers.ClaudeModel, sink, logger), nil
	default:
		return nil, fmt.Errorf("%w: %s", utils.ErrUnsupportedProvider, provider)
	}
}
