package trip_models

// Generation status values. "partial" is the resumable failure state: at least
// one block's days are already committed to the itinerary.
const (
	StatusGeneratingMetadata = "generating_metadata"
	StatusGeneratingDays     = "generating_days"
	StatusComplete           = "complete"
	StatusPartial            = "partial"
	StatusError              = "error"
)

// GenerationProgress is a pure snapshot of one generation run.
type GenerationProgress struct {
	TotalDays         int    `json:"total_days"`
	CompletedDays     int    `json:"completed_days"`
	CurrentBlockStart int    `json:"current_block_start"`
	CurrentBlockEnd   int    `json:"current_block_end"`
	Status            string `json:"status"`
	ErrorMessage      string `json:"error_message,omitempty"`
}

// GenerationState is the persistable snapshot that lets a later run resume a
// partially generated itinerary without regenerating metadata.
type GenerationState struct {
	Requirements string             `json:"requirements"`
	Language     string             `json:"language"`
	BlockSize    int                `json:"block_size"`
	Metadata     *ItineraryMetadata `json:"metadata,omitempty"`
	Progress     GenerationProgress `json:"progress"`
}

func (s *GenerationState) CanResume() bool {
	return s.Progress.Status == StatusPartial && s.Progress.CompletedDays > 0
}
