package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tripflow/internal/models/trip_models"
)

func TestExtractFromText(t *testing.T) {
	d := &DetectorService{logger: zap.NewNop()}

	t.Run("common phrasings", func(t *testing.T) {
		cases := map[string]string{
			"We're planning a trip to Japan next spring":   "Japan",
			"I want to visit New Zealand with the kids":    "New Zealand",
			"Thinking about a vacation in Costa Rica":      "Costa Rica",
			"We are going to Portugal for two weeks":       "Portugal",
			"Booking a holiday to Iceland this winter":     "Iceland",
		}
		for text, want := range cases {
			got := d.ExtractFromText(text)
			require.NotEmpty(t, got, text)
			assert.Contains(t, got, want, text)
		}
	})

	t.Run("stopwords filtered", func(t *testing.T) {
		assert.Empty(t, d.ExtractFromText("I just want to go somewhere"))
	})

	t.Run("no destination", func(t *testing.T) {
		assert.Empty(t, d.ExtractFromText("What should we pack for cold weather?"))
	})

	t.Run("duplicates collapse preserving order", func(t *testing.T) {
		got := d.ExtractFromText("A trip to Japan! Yes, we are going to Japan.")
		assert.Equal(t, []string{"Japan"}, got)
	})
}

func TestExtractFromConversation(t *testing.T) {
	svc := NewDetectorService(zap.NewNop())
	history := []trip_models.ChatMessage{
		{Role: "user", Content: "We're planning a trip to Borneo"},
		{Role: "assistant", Content: "Great choice! Sepilok is a must."},
	}

	t.Run("structured extraction", func(t *testing.T) {
		agent := &fakeAgent{chatResponse: `{
			"primary_destination": {
				"name": "Borneo",
				"country": "Malaysia",
				"region": "Asia",
				"key_attractions": ["Sepilok", "Kinabalu"]
			},
			"secondary_destinations": [{"name": "Kuala Lumpur", "country": "Malaysia"}],
			"confidence": 0.9
		}`}

		result := svc.ExtractFromConversation(context.Background(), history, agent)
		require.NotNil(t, result.Primary)
		assert.Equal(t, "Borneo", result.Primary.Name)
		assert.Equal(t, 0.9, result.Primary.Confidence)
		require.Len(t, result.Secondary, 1)
		assert.Equal(t, "Kuala Lumpur", result.Secondary[0].Name)

		require.Len(t, agent.chatPrompts, 1)
		assert.Contains(t, agent.chatPrompts[0], "user: We're planning a trip to Borneo")
	})

	t.Run("destination-free chatter skips the LLM entirely", func(t *testing.T) {
		agent := &fakeAgent{chatResponse: `{"primary_destination": null}`}
		result := svc.ExtractFromConversation(context.Background(), []trip_models.ChatMessage{
			{Role: "user", Content: "What should we pack for cold weather?"},
			{Role: "assistant", Content: "Layers, mostly."},
		}, agent)
		assert.Nil(t, result.Primary)
		assert.Empty(t, agent.chatPrompts, "pre-filter miss means no agent round-trip")
	})

	t.Run("assistant mentions alone do not open the gate", func(t *testing.T) {
		agent := &fakeAgent{}
		result := svc.ExtractFromConversation(context.Background(), []trip_models.ChatMessage{
			{Role: "user", Content: "Somewhere warm, surprise me"},
			{Role: "assistant", Content: "How about a trip to Portugal?"},
		}, agent)
		assert.Nil(t, result.Primary)
		assert.Empty(t, agent.chatPrompts)
	})

	t.Run("no destination in conversation", func(t *testing.T) {
		agent := &fakeAgent{chatResponse: `{"primary_destination": null, "secondary_destinations": [], "confidence": 0.0}`}
		result := svc.ExtractFromConversation(context.Background(), history, agent)
		assert.Nil(t, result.Primary)
		assert.Empty(t, result.Secondary)
	})

	t.Run("malformed response is empty not an error", func(t *testing.T) {
		agent := &fakeAgent{chatResponse: "I think you mean Borneo?"}
		result := svc.ExtractFromConversation(context.Background(), history, agent)
		assert.Nil(t, result.Primary)
	})

	t.Run("empty history short-circuits", func(t *testing.T) {
		agent := &fakeAgent{}
		result := svc.ExtractFromConversation(context.Background(), nil, agent)
		assert.Nil(t, result.Primary)
		assert.Empty(t, agent.chatPrompts, "no LLM round-trip without history")
	})
}
