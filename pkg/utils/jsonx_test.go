package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	t.Run("fenced block with language tag", func(t *testing.T) {
		raw := "Here is your itinerary:\n```json\n{\"title\": \"Tokyo\"}\n```\nEnjoy!"
		assert.Equal(t, `{"title": "Tokyo"}`, ExtractJSON(raw))
	})

	t.Run("fenced block without language tag", func(t *testing.T) {
		raw := "```\n[1, 2, 3]\n```"
		assert.Equal(t, "[1, 2, 3]", ExtractJSON(raw))
	})

	t.Run("bare object with surrounding prose", func(t *testing.T) {
		raw := "Sure! {\"a\": 1} Hope that helps."
		assert.Equal(t, `{"a": 1}`, ExtractJSON(raw))
	})

	t.Run("bare array with surrounding prose", func(t *testing.T) {
		raw := "The days are: [{\"day_number\": 1}] as requested."
		assert.Equal(t, `[{"day_number": 1}]`, ExtractJSON(raw))
	})

	t.Run("array containing objects keeps the array", func(t *testing.T) {
		raw := "result: [{\"day_number\": 1}, {\"day_number\": 2}]"
		assert.Equal(t, `[{"day_number": 1}, {"day_number": 2}]`, ExtractJSON(raw))
	})

	t.Run("already clean JSON passes through", func(t *testing.T) {
		assert.Equal(t, `{"a": 1}`, ExtractJSON(`  {"a": 1}  `))
	})

	t.Run("no JSON at all returns trimmed input", func(t *testing.T) {
		assert.Equal(t, "no json here", ExtractJSON("  no json here  "))
	})
}

func TestRepairJSON(t *testing.T) {
	t.Run("trailing comma in object", func(t *testing.T) {
		assert.Equal(t, `{"a": 1}`, RepairJSON(`{"a": 1,}`))
	})

	t.Run("trailing comma in array", func(t *testing.T) {
		assert.Equal(t, `[1, 2]`, RepairJSON(`[1, 2,]`))
	})

	t.Run("missing opening quote on key", func(t *testing.T) {
		in := "{\n  title\": \"Tokyo\"\n}"
		out := RepairJSON(in)
		assert.Contains(t, out, `"title": "Tokyo"`)
	})

	t.Run("valid JSON untouched", func(t *testing.T) {
		in := `{"a": [1, 2], "b": {"c": 3}}`
		assert.Equal(t, in, RepairJSON(in))
	})
}

func TestDecodeModelJSON(t *testing.T) {
	type payload struct {
		Title string `json:"title"`
		Days  []int  `json:"days"`
	}

	t.Run("clean response", func(t *testing.T) {
		var p payload
		require.NoError(t, DecodeModelJSON(`{"title": "Kyoto", "days": [1, 2]}`, &p))
		assert.Equal(t, "Kyoto", p.Title)
	})

	t.Run("fenced response with trailing comma parses after repair", func(t *testing.T) {
		raw := "```json\n{\"title\": \"Kyoto\", \"days\": [1, 2,],}\n```"
		var p payload
		require.NoError(t, DecodeModelJSON(raw, &p))
		assert.Equal(t, "Kyoto", p.Title)
		assert.Equal(t, []int{1, 2}, p.Days)
	})

	t.Run("unrepairable response returns malformed error with raw text", func(t *testing.T) {
		raw := "I could not produce an itinerary today."
		var p payload
		err := DecodeModelJSON(raw, &p)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedResponse)

		var malformed *MalformedResponseError
		require.True(t, errors.As(err, &malformed))
		assert.Equal(t, raw, malformed.Raw)
	})
}
