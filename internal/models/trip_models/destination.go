package trip_models

import "strings"

// Destination is a travel destination detected from conversation.
type Destination struct {
	Name            string   `json:"name"`
	Country         string   `json:"country,omitempty"`
	Region          string   `json:"region,omitempty"`
	Confidence      float64  `json:"confidence"`
	KeyAttractions  []string `json:"key_attractions,omitempty"`
	LocalCuisine    string   `json:"local_cuisine,omitempty"`
	BestTimeToVisit string   `json:"best_time_to_visit,omitempty"`
}

// ImageQueries builds stock-photo search queries for this destination.
func (d *Destination) ImageQueries() []string {
	queries := []string{
		d.Name + " travel",
		d.Name + " landscape",
		d.Name + " landmarks",
	}
	if d.Country != "" && d.Country != d.Name {
		queries = append(queries, d.Country+" scenery")
	}
	return queries
}

// TripDestinations tracks the primary and secondary destinations of a trip.
type TripDestinations struct {
	Primary   *Destination  `json:"primary,omitempty"`
	Secondary []Destination `json:"secondary,omitempty"`
}

func (t *TripDestinations) AllDestinations() []Destination {
	var out []Destination
	if t.Primary != nil {
		out = append(out, *t.Primary)
	}
	out = append(out, t.Secondary...)
	return out
}

func (t *TripDestinations) DisplayName() string {
	if t == nil || t.Primary == nil {
		return "Your Trip"
	}
	if len(t.Secondary) == 0 {
		return t.Primary.Name
	}
	names := []string{t.Primary.Name}
	for i, d := range t.Secondary {
		if i >= 2 {
			break
		}
		names = append(names, d.Name)
	}
	return strings.Join(names, " & ")
}
