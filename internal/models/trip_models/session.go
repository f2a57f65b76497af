package trip_models

type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// SavedBlogContent is the persisted form of a scraped travel blog.
type SavedBlogContent struct {
	URL        string   `json:"url"`
	Title      string   `json:"title"`
	Summary    string   `json:"summary"`
	Tips       []string `json:"tips,omitempty"`
	Highlights []string `json:"highlights,omitempty"`
	Images     []string `json:"images,omitempty"`
	RawText    string   `json:"raw_text,omitempty"`
}

// PlannerSession is the full persisted session document: itinerary, chat
// history, provider choice, scraped blog content and destination state.
// Older documents may lack newer fields; they load with zero values.
type PlannerSession struct {
	Itinerary    Itinerary                   `json:"itinerary"`
	ChatHistory  []ChatMessage               `json:"chat_history"`
	Provider     string                      `json:"ai_provider"`
	Language     string                      `json:"language,omitempty"`
	BlogContent  map[string]SavedBlogContent `json:"blog_content,omitempty"`
	Destinations TripDestinations            `json:"destinations,omitempty"`
	Generation   *GenerationState            `json:"generation,omitempty"`
}
