package agents

import (
	"encoding/json"
	"fmt"
	"strings"

	"tripflow/internal/models/trip_models"
)

const systemPromptTemplate = `You are an expert travel planner specializing in family trips.
You help families plan memorable, safe, and enriching travel experiences.

%s

When helping plan a trip:
1. Ask about travel dates, number of travelers (adults/children ages)
2. Understand interests (wildlife, beaches, adventure, culture)
3. Consider budget constraints
4. Suggest day-by-day itineraries with specific activities
5. Provide practical tips (what to pack, vaccinations, etc.)
6. Include restaurant and accommodation recommendations

Always be helpful, specific, and consider family-friendly options.
Format your responses clearly with headers and bullet points when listing activities or tips.%s`

const defaultExpertise = `Your expertise includes:
- Global destination knowledge
- Family-friendly activities and accommodations
- Local cuisine and dining recommendations
- Weather patterns and best times to visit
- Budget planning and cost estimates
- Safety tips and health precautions`

// BuildSystemPrompt renders the agent system prompt from destination context
// and output language. Pure: adapters call it before every request instead of
// caching shared mutable state.
func BuildSystemPrompt(destinations *trip_models.TripDestinations, language string) string {
	return fmt.Sprintf(systemPromptTemplate,
		buildDestinationExpertise(destinations),
		buildLanguageInstruction(language))
}

func buildDestinationExpertise(destinations *trip_models.TripDestinations) string {
	if destinations == nil || destinations.Primary == nil {
		return defaultExpertise
	}

	dest := destinations.Primary
	lines := []string{fmt.Sprintf("Your expertise includes planning trips to %s:", dest.Name)}

	if len(dest.KeyAttractions) > 0 {
		attractions := dest.KeyAttractions
		if len(attractions) > 5 {
			attractions = attractions[:5]
		}
		lines = append(lines, "- Key attractions: "+strings.Join(attractions, ", "))
	}
	if dest.LocalCuisine != "" {
		lines = append(lines, "- Local cuisine: "+dest.LocalCuisine)
	}
	if dest.BestTimeToVisit != "" {
		lines = append(lines, "- Best time to visit: "+dest.BestTimeToVisit)
	}

	lines = append(lines,
		"- Family-friendly activities and accommodations",
		"- Local customs and cultural considerations",
		"- Budget planning and cost estimates",
		"- Safety tips and health precautions",
	)

	if len(destinations.Secondary) > 0 {
		var names []string
		for i, d := range destinations.Secondary {
			if i >= 3 {
				break
			}
			names = append(names, d.Name)
		}
		lines = append(lines, "- Also familiar with: "+strings.Join(names, ", "))
	}

	return strings.Join(lines, "\n")
}

func buildLanguageInstruction(language string) string {
	if language == "" || strings.EqualFold(language, "english") {
		return ""
	}
	return fmt.Sprintf(`

IMPORTANT: Generate ALL content in %s. This includes activity names, descriptions, tips, day summaries, and packing list items. Keep proper names (places, restaurants) in their original form.`, language)
}

func languageNote(language string) string {
	if language == "" || strings.EqualFold(language, "english") {
		return ""
	}
	return fmt.Sprintf("\n\nIMPORTANT: Generate all text content in %s.\n", language)
}

const itineraryJSONPrompt = `Based on the conversation and requirements, generate a complete travel itinerary in JSON format.

The JSON should follow this exact structure:
{
    "title": "Trip title",
    "description": "Brief description",
    "start_date": "YYYY-MM-DD or null",
    "end_date": "YYYY-MM-DD or null",
    "travelers": 4,
    "days": [
        {
            "day_number": 1,
            "date": "YYYY-MM-DD or null",
            "title": "Day title",
            "location": "City/Area name",
            "summary": "Brief summary of the day",
            "activities": [
                {
                    "name": "Activity name",
                    "description": "What you'll do",
                    "location": "Specific location",
                    "activity_type": "sightseeing|adventure|dining|transport|accommodation|relaxation|wildlife|cultural|shopping",
                    "start_time": "HH:MM or null",
                    "end_time": "HH:MM or null",
                    "cost_estimate": "$XX or null",
                    "booking_required": true,
                    "booking_link": "URL or null",
                    "tips": [{"title": "Tip title", "content": "Tip content", "category": "general"}]
                }
            ],
            "tips": [{"title": "Day tip", "content": "Content", "category": "general"}],
            "weather_note": "Expected weather or null"
        }
    ],
    "general_tips": [{"title": "General tip", "content": "Content", "category": "packing|health|safety|money|culture"}],
    "packing_list": ["Item 1", "Item 2"],
    "budget_estimate": "Total estimate or null",
    "emergency_contacts": {"Police": "999", "Ambulance": "999"}
}

Return ONLY the JSON, no other text. Make it comprehensive based on all discussed plans.`

const metadataJSONPrompt = `Based on the conversation and requirements, generate the trip overview in JSON format.
Determine the total trip length yourself from the conversation (explicit day counts, date ranges, or phrases like "a week"). If nothing indicates a length, choose a sensible one for the destination.

The JSON should follow this exact structure:
{
    "title": "Trip title",
    "description": "Brief description of the trip",
    "total_days": 7,
    "start_date": "YYYY-MM-DD or null",
    "end_date": "YYYY-MM-DD or null",
    "travelers": 4,
    "general_tips": [{"title": "General tip", "content": "Content", "category": "packing|health|safety|money|culture"}],
    "packing_list": ["Item 1", "Item 2"],
    "budget_estimate": "Total estimate or null",
    "emergency_contacts": {"Police": "999", "Ambulance": "999"}
}

Do NOT include day-by-day plans here. Return ONLY the JSON, no other text.`

// buildFullItineraryPrompt embeds the requirements, the current itinerary as
// update context when present, and the fixed output-schema instruction.
func buildFullItineraryPrompt(requirements string, current *trip_models.Itinerary, language string) string {
	context := ""
	if current != nil {
		if raw, err := json.MarshalIndent(current, "", "  "); err == nil {
			context = "\n\nCurrent itinerary to update/expand:\n" + string(raw)
		}
	}
	return fmt.Sprintf("%s%s%s\n\n%s", requirements, context, languageNote(language), itineraryJSONPrompt)
}

func buildMetadataPrompt(requirements string, language string) string {
	return fmt.Sprintf("%s%s\n\n%s", requirements, languageNote(language), metadataJSONPrompt)
}

// buildDayBlockPrompt asks for one contiguous block of days, feeding back a
// digest of the already-generated days so the model does not repeat
// activities or locations.
func buildDayBlockPrompt(req DayBlockRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s%s\n\n", req.Requirements, languageNote(req.Language))

	if req.Metadata != nil {
		fmt.Fprintf(&b, "Trip overview: %s", req.Metadata.Title)
		if req.Metadata.Description != "" {
			fmt.Fprintf(&b, " - %s", req.Metadata.Description)
		}
		if req.Metadata.StartDate.Valid {
			fmt.Fprintf(&b, " (starting %s)", req.Metadata.StartDate)
		}
		b.WriteString("\n")
	}

	if summary := summarizePreviousDays(req.PreviousDays); summary != "" {
		b.WriteString("\nAlready planned (do not repeat these activities or locations unless it makes sense to return):\n")
		b.WriteString(summary)
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, `
Generate days %d through %d of this %d-day trip.

Return JSON with this exact structure:
{
    "days": [
        {
            "day_number": %d,
            "date": "YYYY-MM-DD or null",
            "title": "Day title",
            "location": "City/Area name",
            "summary": "Brief summary of the day",
            "activities": [
                {
                    "name": "Activity name",
                    "description": "What you'll do",
                    "location": "Specific location",
                    "activity_type": "sightseeing|adventure|dining|transport|accommodation|relaxation|wildlife|cultural|shopping",
                    "start_time": "HH:MM or null",
                    "end_time": "HH:MM or null",
                    "cost_estimate": "$XX or null",
                    "booking_required": false,
                    "booking_link": "URL or null",
                    "tips": [{"title": "Tip title", "content": "Tip content", "category": "general"}]
                }
            ],
            "tips": [{"title": "Day tip", "content": "Content", "category": "general"}],
            "weather_note": "Expected weather or null"
        }
    ]
}

Use day_number values %d through %d exactly. Return ONLY the JSON, no other text.`,
		req.StartDay, req.EndDay, req.TotalDays, req.StartDay, req.StartDay, req.EndDay)

	return b.String()
}

// summarizePreviousDays builds the continuity digest: location, title and up
// to three activity names per day, with a "+N more" suffix.
func summarizePreviousDays(days []trip_models.DayPlan) string {
	if len(days) == 0 {
		return ""
	}

	var lines []string
	for _, day := range days {
		var names []string
		for i, act := range day.Activities {
			if i >= 3 {
				break
			}
			names = append(names, act.Name)
		}
		line := fmt.Sprintf("Day %d (%s): %s", day.DayNumber, day.Location, day.Title)
		if len(names) > 0 {
			line += " - " + strings.Join(names, ", ")
			if extra := len(day.Activities) - len(names); extra > 0 {
				line += fmt.Sprintf(" (+%d more)", extra)
			}
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
