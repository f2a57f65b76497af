package trip_models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlexDate(t *testing.T) {
	t.Run("plain date", func(t *testing.T) {
		d := ParseFlexDate("2026-03-15")
		require.True(t, d.Valid)
		assert.Equal(t, "2026-03-15", d.String())
	})

	t.Run("rfc3339", func(t *testing.T) {
		d := ParseFlexDate("2026-03-15T09:30:00Z")
		require.True(t, d.Valid)
		assert.Equal(t, "2026-03-15", d.String())
	})

	t.Run("offset early in the local day keeps the written date", func(t *testing.T) {
		d := ParseFlexDate("2026-03-15T01:00:00+09:00")
		require.True(t, d.Valid)
		assert.Equal(t, "2026-03-15", d.String())
	})

	t.Run("garbage is absent not an error", func(t *testing.T) {
		assert.False(t, ParseFlexDate("next Tuesday").Valid)
		assert.False(t, ParseFlexDate("").Valid)
		assert.False(t, ParseFlexDate("null").Valid)
	})
}

func TestParseFlexTime(t *testing.T) {
	cases := map[string]string{
		"09:30":    "09:30",
		"14:05:30": "14:05:30",
		"9:30 AM":  "09:30",
		"2:15PM":   "14:15",
	}
	for in, want := range cases {
		ft := ParseFlexTime(in)
		require.True(t, ft.Valid, in)
		assert.Equal(t, want, ft.String(), in)
	}

	assert.False(t, ParseFlexTime("morning").Valid)
}

func TestFlexJSONRoundTrip(t *testing.T) {
	type wrapper struct {
		Date FlexDate `json:"date"`
		Time FlexTime `json:"time"`
	}

	t.Run("valid values", func(t *testing.T) {
		var w wrapper
		require.NoError(t, json.Unmarshal([]byte(`{"date": "2026-03-15", "time": "18:30"}`), &w))
		assert.True(t, w.Date.Valid)
		assert.True(t, w.Time.Valid)

		out, err := json.Marshal(w)
		require.NoError(t, err)
		assert.JSONEq(t, `{"date": "2026-03-15", "time": "18:30"}`, string(out))
	})

	t.Run("bad shapes never fail unmarshal", func(t *testing.T) {
		var w wrapper
		require.NoError(t, json.Unmarshal([]byte(`{"date": 42, "time": ["nope"]}`), &w))
		assert.False(t, w.Date.Valid)
		assert.False(t, w.Time.Valid)

		out, err := json.Marshal(w)
		require.NoError(t, err)
		assert.JSONEq(t, `{"date": null, "time": null}`, string(out))
	})
}
