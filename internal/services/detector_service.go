package services

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"tripflow/internal/agents"
	"tripflow/internal/models/trip_models"
	"tripflow/pkg/utils"
)

const destinationExtractionPrompt = `Analyze this conversation and extract the travel destination(s) being discussed.

Return a JSON object with this structure:
{
    "primary_destination": {
        "name": "Main destination name (city or country)",
        "country": "Country name",
        "region": "Geographic region (e.g., Asia, Europe, Americas)",
        "key_attractions": ["attraction1", "attraction2"],
        "local_cuisine": "Brief description of local food",
        "best_time_to_visit": "Best season/months"
    },
    "secondary_destinations": [
        {"name": "...", "country": "...", "region": "..."}
    ],
    "confidence": 0.0-1.0
}

If no destination is mentioned or clear, return:
{"primary_destination": null, "secondary_destinations": [], "confidence": 0.0}

Conversation:
`

// destinationPatterns is the cheap pre-filter that decides whether an LLM
// round-trip is worth making at all.
var destinationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:trip|travel(?:l?ing)?|go(?:ing)?|visit(?:ing)?|vacation|holiday|journey) to ([A-Z][a-zA-Z]+(?:\s+[A-Z][a-zA-Z]+)*)`),
	regexp.MustCompile(`(?i)(?:trip|travel(?:l?ing)?|go(?:ing)?|visit(?:ing)?|vacation|holiday|journey) in ([A-Z][a-zA-Z]+(?:\s+[A-Z][a-zA-Z]+)*)`),
	regexp.MustCompile(`(?i)(?:plan(?:ning)?|book(?:ing)?) (?:a )?(?:trip|travel|vacation|holiday) to ([A-Z][a-zA-Z]+(?:\s+[A-Z][a-zA-Z]+)*)`),
	regexp.MustCompile(`(?i)(?:want|like|love) to (?:go|visit|travel|see) ([A-Z][a-zA-Z]+(?:\s+[A-Z][a-zA-Z]+)*)`),
	regexp.MustCompile(`(?i)trip to (\w+(?:\s+\w+)?)`),
	regexp.MustCompile(`(?i)visit(?:ing)? (\w+(?:\s+\w+)?)`),
	regexp.MustCompile(`(?i)travel(?:ing)? to (\w+(?:\s+\w+)?)`),
	regexp.MustCompile(`(?i)going to (\w+(?:\s+\w+)?)`),
	regexp.MustCompile(`(?i)vacation in (\w+(?:\s+\w+)?)`),
	regexp.MustCompile(`(?i)holiday in (\w+(?:\s+\w+)?)`),
}

var destinationStopwords = map[string]bool{
	"the": true, "a": true, "an": true, "my": true, "our": true,
	"your": true, "their": true, "be": true, "go": true, "see": true,
	"do": true, "have": true, "there": true, "here": true,
	"somewhere": true, "anywhere": true,
}

type DetectorServiceInterface interface {
	ExtractFromText(text string) []string
	ExtractFromConversation(ctx context.Context, history []trip_models.ChatMessage, agent agents.TravelAgent) trip_models.TripDestinations
}

type DetectorService struct {
	logger *zap.Logger
}

func NewDetectorService(logger *zap.Logger) DetectorServiceInterface {
	return &DetectorService{logger: logger}
}

// ExtractFromText is the rule-based pre-filter: candidate destination phrases
// from one message, stopwords removed, order-preserving deduplication.
func (d *DetectorService) ExtractFromText(text string) []string {
	var candidates []string
	for _, re := range destinationPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if len(m) > 1 {
				candidate := strings.TrimSpace(m[1])
				if candidate == "" || destinationStopwords[strings.ToLower(candidate)] {
					continue
				}
				candidates = append(candidates, candidate)
			}
		}
	}

	seen := make(map[string]bool)
	var unique []string
	for _, c := range candidates {
		key := strings.ToLower(c)
		if !seen[key] {
			seen[key] = true
			unique = append(unique, c)
		}
	}
	return unique
}

// ExtractFromConversation sends the last 10 messages through the agent's chat
// operation with a structured-extraction prompt. The regex pre-filter gates
// the call: no candidate in any recent user message means no LLM round-trip.
// Single-shot parse: a malformed response yields an empty result, never an
// error.
func (d *DetectorService) ExtractFromConversation(ctx context.Context, history []trip_models.ChatMessage, agent agents.TravelAgent) trip_models.TripDestinations {
	if len(history) == 0 {
		return trip_models.TripDestinations{}
	}

	recent := history
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}

	if !d.mentionsDestination(recent) {
		return trip_models.TripDestinations{}
	}
	var convo strings.Builder
	for _, msg := range recent {
		convo.WriteString(msg.Role)
		convo.WriteString(": ")
		convo.WriteString(msg.Content)
		convo.WriteString("\n")
	}

	stream, err := agent.StreamChat(ctx, destinationExtractionPrompt+convo.String(), nil)
	if err != nil {
		d.logger.Warn("destination extraction chat failed", zap.Error(err))
		return trip_models.TripDestinations{}
	}
	var full strings.Builder
	for chunk := range stream {
		full.WriteString(chunk)
	}

	var payload struct {
		Primary    *destinationPayload  `json:"primary_destination"`
		Secondary  []destinationPayload `json:"secondary_destinations"`
		Confidence float64              `json:"confidence"`
	}
	raw := utils.ExtractJSON(full.String())
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		d.logger.Debug("destination extraction returned unparseable JSON", zap.Error(err))
		return trip_models.TripDestinations{}
	}

	var result trip_models.TripDestinations
	if payload.Primary != nil && payload.Primary.Name != "" {
		result.Primary = payload.Primary.toDestination(payload.Confidence)
	}
	for _, sd := range payload.Secondary {
		if sd.Name == "" {
			continue
		}
		result.Secondary = append(result.Secondary, *sd.toDestination(1.0))
	}
	return result
}

// mentionsDestination is the cheap gate in front of the LLM call: at least one
// recent user message must trip the regex pre-filter.
func (d *DetectorService) mentionsDestination(messages []trip_models.ChatMessage) bool {
	for _, msg := range messages {
		if msg.Role != "user" {
			continue
		}
		if len(d.ExtractFromText(msg.Content)) > 0 {
			return true
		}
	}
	return false
}

type destinationPayload struct {
	Name            string   `json:"name"`
	Country         string   `json:"country"`
	Region          string   `json:"region"`
	KeyAttractions  []string `json:"key_attractions"`
	LocalCuisine    string   `json:"local_cuisine"`
	BestTimeToVisit string   `json:"best_time_to_visit"`
}

func (p *destinationPayload) toDestination(confidence float64) *trip_models.Destination {
	return &trip_models.Destination{
		Name:            p.Name,
		Country:         p.Country,
		Region:          p.Region,
		Confidence:      confidence,
		KeyAttractions:  p.KeyAttractions,
		LocalCuisine:    p.LocalCuisine,
		BestTimeToVisit: p.BestTimeToVisit,
	}
}
