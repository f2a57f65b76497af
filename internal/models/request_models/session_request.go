package request_models

import "tripflow/internal/models/trip_models"

type SaveSessionRequest struct {
	Session trip_models.PlannerSession `json:"session" binding:"required"`
}
