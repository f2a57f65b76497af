package request_models

import "tripflow/internal/models/trip_models"

type ChatRequest struct {
	Message  string                    `json:"message" binding:"required"`
	Provider string                    `json:"provider"`
	Language string                    `json:"language"`
	History  []trip_models.ChatMessage `json:"history"`

	// Destination context for the system prompt; optional.
	Destinations *trip_models.TripDestinations `json:"destinations"`
}
