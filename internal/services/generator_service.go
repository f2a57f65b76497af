package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tripflow/internal/agents"
	"tripflow/internal/config"
	"tripflow/internal/models/trip_models"
)

const defaultBlockSize = 3

// GenerationUpdate is one yielded snapshot of an in-progress run. The
// itinerary is a clone; the orchestrator keeps exclusive ownership of its own
// copy until the run ends.
type GenerationUpdate struct {
	Progress  trip_models.GenerationProgress
	Itinerary *trip_models.Itinerary
	Metadata  *trip_models.ItineraryMetadata
}

type GenerateRequest struct {
	Requirements string
	Language     string
	BlockSize    int
}

type ResumeRequest struct {
	Requirements string
	Language     string
	BlockSize    int
	Metadata     *trip_models.ItineraryMetadata
	Existing     *trip_models.Itinerary
}

type GeneratorServiceInterface interface {
	Generate(ctx context.Context, agent agents.TravelAgent, req GenerateRequest) <-chan GenerationUpdate
	Resume(ctx context.Context, agent agents.TravelAgent, req ResumeRequest) <-chan GenerationUpdate
}

type GeneratorService struct {
	logger    *zap.Logger
	blockSize int
}

// NewGeneratorService uses the configured block size for requests that leave
// block_size unset.
func NewGeneratorService(cfg config.Config, logger *zap.Logger) GeneratorServiceInterface {
	blockSize := cfg.Generation.BlockSize
	if blockSize < 1 {
		blockSize = defaultBlockSize
	}
	return &GeneratorService{logger: logger, blockSize: blockSize}
}

func (s *GeneratorService) effectiveBlockSize(requested int) int {
	if requested < 1 {
		return s.blockSize
	}
	return requested
}

// Blocks partitions [1, totalDays] into consecutive inclusive ranges of at
// most blockSize days. Pure and total: Blocks(7, 3) = [(1,3),(4,6),(7,7)].
func Blocks(totalDays, blockSize int) [][2]int {
	return blocksFrom(1, totalDays, blockSize)
}

func blocksFrom(startDay, totalDays, blockSize int) [][2]int {
	if blockSize < 1 {
		blockSize = defaultBlockSize
	}
	var out [][2]int
	for start := startDay; start <= totalDays; start += blockSize {
		end := start + blockSize - 1
		if end > totalDays {
			end = totalDays
		}
		out = append(out, [2]int{start, end})
	}
	return out
}

// Generate runs a fresh generation: one metadata call, then day blocks. The
// returned channel is unbuffered, so the run suspends at every snapshot until
// the caller pulls it; the channel is closed when the run ends. Expected
// failures never escape as errors - they arrive as the final snapshot's
// status and error message.
func (s *GeneratorService) Generate(ctx context.Context, agent agents.TravelAgent, req GenerateRequest) <-chan GenerationUpdate {
	out := make(chan GenerationUpdate)

	go func() {
		defer close(out)

		progress := &trip_models.GenerationProgress{
			Status: trip_models.StatusGeneratingMetadata,
		}
		itinerary := &trip_models.Itinerary{}

		metadata, err := agent.GenerateMetadata(ctx, req.Requirements, req.Language)
		if err != nil {
			// Nothing committed yet, so metadata failure is not resumable.
			s.logger.Warn("metadata generation failed", zap.Error(err))
			progress.Status = trip_models.StatusError
			progress.ErrorMessage = fmt.Sprintf("Failed to generate metadata: %v", err)
			s.yield(ctx, out, progress, itinerary, nil)
			return
		}

		itinerary = trip_models.FromMetadata(metadata)
		totalDays := metadata.TotalDays
		if totalDays < 1 {
			totalDays = 1
		}
		progress.TotalDays = totalDays
		progress.Status = trip_models.StatusGeneratingDays
		if !s.yield(ctx, out, progress, itinerary, metadata) {
			return
		}

		s.generateDays(ctx, out, agent, req.Requirements, req.Language, s.effectiveBlockSize(req.BlockSize), metadata, itinerary, progress, nil)
	}()

	return out
}

// Resume re-enters the day loop from a saved partial state. Metadata is never
// regenerated; the existing days seed both the result and the continuity
// context, and the next block starts at completed_days + 1.
func (s *GeneratorService) Resume(ctx context.Context, agent agents.TravelAgent, req ResumeRequest) <-chan GenerationUpdate {
	out := make(chan GenerationUpdate)

	go func() {
		defer close(out)

		totalDays := 1
		if req.Metadata != nil && req.Metadata.TotalDays > 1 {
			totalDays = req.Metadata.TotalDays
		}

		itinerary := req.Existing.Clone()
		existingDays := make([]trip_models.DayPlan, len(itinerary.Days))
		copy(existingDays, itinerary.Days)
		completed := len(existingDays)

		progress := &trip_models.GenerationProgress{
			TotalDays:         totalDays,
			CompletedDays:     completed,
			CurrentBlockStart: completed + 1,
			Status:            trip_models.StatusGeneratingDays,
		}
		if !s.yield(ctx, out, progress, itinerary, req.Metadata) {
			return
		}

		s.generateDays(ctx, out, agent, req.Requirements, req.Language, s.effectiveBlockSize(req.BlockSize), req.Metadata, itinerary, progress, existingDays)
	}()

	return out
}

// generateDays drives the block loop shared by fresh runs and resumes.
func (s *GeneratorService) generateDays(
	ctx context.Context,
	out chan<- GenerationUpdate,
	agent agents.TravelAgent,
	requirements string,
	language string,
	blockSize int,
	metadata *trip_models.ItineraryMetadata,
	itinerary *trip_models.Itinerary,
	progress *trip_models.GenerationProgress,
	existingDays []trip_models.DayPlan,
) {
	totalDays := progress.TotalDays
	allDays := make([]trip_models.DayPlan, len(existingDays))
	copy(allDays, existingDays)

	blocks := blocksFrom(len(allDays)+1, totalDays, blockSize)
	if len(blocks) == 0 {
		progress.Status = trip_models.StatusComplete
		s.yield(ctx, out, progress, itinerary, metadata)
		return
	}

	for _, block := range blocks {
		startDay, endDay := block[0], block[1]
		progress.CurrentBlockStart = startDay
		progress.CurrentBlockEnd = endDay

		newDays, err := agent.GenerateDayBlock(ctx, agents.DayBlockRequest{
			Requirements: requirements,
			Metadata:     metadata,
			StartDay:     startDay,
			EndDay:       endDay,
			TotalDays:    totalDays,
			PreviousDays: allDays,
			Language:     language,
		})
		if err != nil {
			// Days already committed this run (or in a prior one) make the
			// failure resumable; with nothing committed it is a plain error.
			s.logger.Warn("day block generation failed",
				zap.Int("start_day", startDay),
				zap.Int("end_day", endDay),
				zap.Error(err))
			if progress.CompletedDays > 0 {
				progress.Status = trip_models.StatusPartial
			} else {
				progress.Status = trip_models.StatusError
			}
			progress.ErrorMessage = fmt.Sprintf("Failed to generate days %d-%d: %v", startDay, endDay, err)
			s.yield(ctx, out, progress, itinerary, metadata)
			return
		}

		allDays = append(allDays, newDays...)
		trip_models.SortDays(allDays)
		itinerary.Days = allDays
		progress.CompletedDays = len(allDays)

		if progress.CompletedDays >= totalDays {
			progress.Status = trip_models.StatusComplete
		}

		if !s.yield(ctx, out, progress, itinerary, metadata) {
			return
		}
	}

	// Defends against a day-count mismatch leaving the run unfinished.
	if progress.Status != trip_models.StatusError && progress.Status != trip_models.StatusPartial {
		progress.Status = trip_models.StatusComplete
		s.yield(ctx, out, progress, itinerary, metadata)
	}
}

func (s *GeneratorService) yield(
	ctx context.Context,
	out chan<- GenerationUpdate,
	progress *trip_models.GenerationProgress,
	itinerary *trip_models.Itinerary,
	metadata *trip_models.ItineraryMetadata,
) bool {
	select {
	case out <- GenerationUpdate{Progress: *progress, Itinerary: itinerary.Clone(), Metadata: metadata}:
		return true
	case <-ctx.Done():
		return false
	}
}
