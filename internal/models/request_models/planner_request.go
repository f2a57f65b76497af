package request_models

import "tripflow/internal/models/trip_models"

type GenerateItineraryRequest struct {
	Requirements string `json:"requirements" binding:"required"`
	Provider     string `json:"provider"`
	Language     string `json:"language"`
	BlockSize    int    `json:"block_size"`

	Destinations *trip_models.TripDestinations `json:"destinations"`
}

type ResumeItineraryRequest struct {
	Requirements string `json:"requirements" binding:"required"`
	Provider     string `json:"provider"`
	Language     string `json:"language"`
	BlockSize    int    `json:"block_size"`

	Metadata *trip_models.ItineraryMetadata `json:"metadata" binding:"required"`
	Existing *trip_models.Itinerary         `json:"existing" binding:"required"`

	Destinations *trip_models.TripDestinations `json:"destinations"`
}

// UpdateItineraryRequest is the single-shot path: one call, one full itinerary,
// optionally revising an existing one.
type UpdateItineraryRequest struct {
	Requirements string `json:"requirements" binding:"required"`
	Provider     string `json:"provider"`
	Language     string `json:"language"`

	Current      *trip_models.Itinerary        `json:"current"`
	Destinations *trip_models.TripDestinations `json:"destinations"`
}

type DetectDestinationsRequest struct {
	Provider string                    `json:"provider"`
	History  []trip_models.ChatMessage `json:"history" binding:"required"`
}

type ScrapeBlogRequest struct {
	URL string `json:"url" binding:"required,url"`
}

type DestinationImagesRequest struct {
	Destination *trip_models.Destination `json:"destination"`
	Queries     []string                 `json:"queries"`
	Max         int                      `json:"max"`
}

type RenderPDFRequest struct {
	Itinerary *trip_models.Itinerary `json:"itinerary" binding:"required"`
	Style     string                 `json:"style"`
}
