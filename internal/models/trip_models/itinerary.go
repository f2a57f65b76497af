package trip_models

import (
	"encoding/json"
	"sort"
	"strings"
)

type ActivityType string

const (
	ActivitySightseeing   ActivityType = "sightseeing"
	ActivityAdventure     ActivityType = "adventure"
	ActivityDining        ActivityType = "dining"
	ActivityTransport     ActivityType = "transport"
	ActivityAccommodation ActivityType = "accommodation"
	ActivityRelaxation    ActivityType = "relaxation"
	ActivityWildlife      ActivityType = "wildlife"
	ActivityCultural      ActivityType = "cultural"
	ActivityShopping      ActivityType = "shopping"
	ActivityNature        ActivityType = "nature"
	ActivityBeach         ActivityType = "beach"
	ActivityFood          ActivityType = "food"
	ActivityOther         ActivityType = "other"
)

var validActivityTypes = map[ActivityType]bool{
	ActivitySightseeing:   true,
	ActivityAdventure:     true,
	ActivityDining:        true,
	ActivityTransport:     true,
	ActivityAccommodation: true,
	ActivityRelaxation:    true,
	ActivityWildlife:      true,
	ActivityCultural:      true,
	ActivityShopping:      true,
	ActivityNature:        true,
	ActivityBeach:         true,
	ActivityFood:          true,
	ActivityOther:         true,
}

// activityTypeAliases maps common model-generated variations onto the closed set.
var activityTypeAliases = map[string]ActivityType{
	"culture":    ActivityCultural,
	"restaurant": ActivityDining,
	"eating":     ActivityDining,
	"travel":     ActivityTransport,
	"flight":     ActivityTransport,
	"bus":        ActivityTransport,
	"train":      ActivityTransport,
	"taxi":       ActivityTransport,
	"hotel":      ActivityAccommodation,
	"stay":       ActivityAccommodation,
	"lodge":      ActivityAccommodation,
	"hostel":     ActivityAccommodation,
	"rest":       ActivityRelaxation,
	"spa":        ActivityRelaxation,
	"hike":       ActivityAdventure,
	"hiking":     ActivityAdventure,
	"trek":       ActivityAdventure,
	"trekking":   ActivityAdventure,
	"snorkeling": ActivityAdventure,
	"diving":     ActivityAdventure,
	"water":      ActivityAdventure,
	"tour":       ActivitySightseeing,
	"visit":      ActivitySightseeing,
	"explore":    ActivitySightseeing,
	"museum":     ActivityCultural,
	"temple":     ActivityCultural,
	"market":     ActivityShopping,
	"animals":    ActivityWildlife,
	"safari":     ActivityWildlife,
	"jungle":     ActivityWildlife,
	"rainforest": ActivityWildlife,
}

// NormalizeActivityType is total: any input string maps to a member of the
// closed set, defaulting to sightseeing. Rejecting an otherwise usable
// itinerary over one bad enum value is worse than defaulting the field.
func NormalizeActivityType(s string) ActivityType {
	v := strings.ToLower(strings.TrimSpace(s))
	if alias, ok := activityTypeAliases[v]; ok {
		return alias
	}
	if validActivityTypes[ActivityType(v)] {
		return ActivityType(v)
	}
	return ActivitySightseeing
}

func (a *ActivityType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*a = ActivitySightseeing
		return nil
	}
	*a = NormalizeActivityType(s)
	return nil
}

type TravelTip struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

type Activity struct {
	Name            string       `json:"name"`
	Description     string       `json:"description"`
	Location        string       `json:"location"`
	ActivityType    ActivityType `json:"activity_type"`
	StartTime       FlexTime     `json:"start_time"`
	EndTime         FlexTime     `json:"end_time"`
	CostEstimate    string       `json:"cost_estimate,omitempty"`
	BookingRequired bool         `json:"booking_required"`
	BookingLink     string       `json:"booking_link,omitempty"`
	Tips            []TravelTip  `json:"tips,omitempty"`
}

type DayPlan struct {
	DayNumber    int         `json:"day_number"`
	Date         FlexDate    `json:"date"`
	Title        string      `json:"title"`
	Location     string      `json:"location"`
	Summary      string      `json:"summary"`
	Activities   []Activity  `json:"activities"`
	Tips         []TravelTip `json:"tips,omitempty"`
	WeatherNote  string      `json:"weather_note,omitempty"`
	ImageQueries []string    `json:"image_queries,omitempty"`
	ImagePaths   []string    `json:"image_paths,omitempty"`
}

// ItineraryMetadata is the day-independent shell of a trip, generated before
// any day content. TotalDays is inferred by the model from conversational cues.
type ItineraryMetadata struct {
	Title             string            `json:"title"`
	Description       string            `json:"description"`
	TotalDays         int               `json:"total_days"`
	StartDate         FlexDate          `json:"start_date"`
	EndDate           FlexDate          `json:"end_date"`
	Travelers         int               `json:"travelers"`
	GeneralTips       []TravelTip       `json:"general_tips,omitempty"`
	PackingList       []string          `json:"packing_list,omitempty"`
	BudgetEstimate    string            `json:"budget_estimate,omitempty"`
	EmergencyContacts map[string]string `json:"emergency_contacts,omitempty"`
}

type Itinerary struct {
	Title             string            `json:"title"`
	Description       string            `json:"description"`
	StartDate         FlexDate          `json:"start_date"`
	EndDate           FlexDate          `json:"end_date"`
	Travelers         int               `json:"travelers"`
	Days              []DayPlan         `json:"days"`
	GeneralTips       []TravelTip       `json:"general_tips,omitempty"`
	PackingList       []string          `json:"packing_list,omitempty"`
	BudgetEstimate    string            `json:"budget_estimate,omitempty"`
	EmergencyContacts map[string]string `json:"emergency_contacts,omitempty"`
	BlogURLs          []string          `json:"blog_urls,omitempty"`
}

// FromMetadata builds an itinerary shell with no days yet.
func FromMetadata(m *ItineraryMetadata) *Itinerary {
	if m == nil {
		return &Itinerary{}
	}
	return &Itinerary{
		Title:             m.Title,
		Description:       m.Description,
		StartDate:         m.StartDate,
		EndDate:           m.EndDate,
		Travelers:         m.Travelers,
		GeneralTips:       m.GeneralTips,
		PackingList:       m.PackingList,
		BudgetEstimate:    m.BudgetEstimate,
		EmergencyContacts: m.EmergencyContacts,
	}
}

// AddDay appends a day and keeps the list sorted ascending by day number.
func (it *Itinerary) AddDay(day DayPlan) {
	it.Days = append(it.Days, day)
	SortDays(it.Days)
}

func (it *Itinerary) Day(dayNumber int) *DayPlan {
	for i := range it.Days {
		if it.Days[i].DayNumber == dayNumber {
			return &it.Days[i]
		}
	}
	return nil
}

// TotalDays is derived from the days list, never stored redundantly.
func (it *Itinerary) TotalDays() int {
	return len(it.Days)
}

// Clone returns a deep copy. Progress snapshots hand a clone to the consumer
// so the orchestrator can keep mutating its own copy.
func (it *Itinerary) Clone() *Itinerary {
	raw, err := json.Marshal(it)
	if err != nil {
		return &Itinerary{}
	}
	var out Itinerary
	if err := json.Unmarshal(raw, &out); err != nil {
		return &Itinerary{}
	}
	return &out
}

func SortDays(days []DayPlan) {
	sort.SliceStable(days, func(i, j int) bool {
		return days[i].DayNumber < days[j].DayNumber
	})
}
