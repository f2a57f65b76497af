package trip_models

import (
	"encoding/json"
	"time"
)

// Date and time fields in model output arrive in whatever shape the LLM felt
// like producing. FlexDate and FlexTime absorb the common shapes and coerce
// everything else to absent instead of failing the whole itinerary.

type FlexDate struct {
	time.Time
	Valid bool
}

func NewFlexDate(t time.Time) FlexDate {
	return FlexDate{Time: t, Valid: true}
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

func ParseFlexDate(s string) FlexDate {
	if s == "" || s == "null" {
		return FlexDate{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			// Keep the calendar date as written. Truncating in absolute time
			// would shift inputs carrying a non-UTC offset across midnight.
			return FlexDate{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), Valid: true}
		}
	}
	return FlexDate{}
}

func (d FlexDate) String() string {
	if !d.Valid {
		return ""
	}
	return d.Format("2006-01-02")
}

func (d FlexDate) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format("2006-01-02"))
}

func (d *FlexDate) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*d = FlexDate{}
		return nil
	}
	*d = ParseFlexDate(s)
	return nil
}

type FlexTime struct {
	Hour, Minute, Second int
	Valid                bool
}

var timeLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04PM",
}

func ParseFlexTime(s string) FlexTime {
	if s == "" || s == "null" {
		return FlexTime{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return FlexTime{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second(), Valid: true}
		}
	}
	return FlexTime{}
}

func (t FlexTime) String() string {
	if !t.Valid {
		return ""
	}
	if t.Second > 0 {
		return time.Date(0, 1, 1, t.Hour, t.Minute, t.Second, 0, time.UTC).Format("15:04:05")
	}
	return time.Date(0, 1, 1, t.Hour, t.Minute, 0, 0, time.UTC).Format("15:04")
}

func (t FlexTime) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(t.String())
}

func (t *FlexTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*t = FlexTime{}
		return nil
	}
	*t = ParseFlexTime(s)
	return nil
}
