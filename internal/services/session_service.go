package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	dbm "tripflow/internal/models/db_models"
	"tripflow/internal/models/trip_models"
	"tripflow/internal/repositories"
	"tripflow/pkg/utils"
)

type SessionSummary struct {
	Name     string `json:"name"`
	Provider string `json:"provider"`
	Language string `json:"language,omitempty"`
	SavedAt  int64  `json:"saved_at"`
}

type SessionServiceInterface interface {
	Save(ctx context.Context, name string, session *trip_models.PlannerSession) error
	Load(ctx context.Context, name string) (*trip_models.PlannerSession, error)
	List(ctx context.Context) ([]SessionSummary, error)
	Delete(ctx context.Context, name string) error
}

type SessionService struct {
	repo   repositories.SessionRepository
	logger *zap.Logger
}

func NewSessionService(repo repositories.SessionRepository, logger *zap.Logger) SessionServiceInterface {
	return &SessionService{repo: repo, logger: logger}
}

func (s *SessionService) Save(ctx context.Context, name string, session *trip_models.PlannerSession) error {
	name = sanitizeSessionName(name)
	if name == "" || session == nil {
		return utils.ErrInvalidInput
	}

	doc, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	record := &dbm.SessionRecord{
		Name:     name,
		Provider: session.Provider,
		Language: session.Language,
		Document: doc,
	}
	if err := s.repo.Upsert(ctx, record); err != nil {
		return err
	}
	s.logger.Info("session saved", zap.String("name", name), zap.Int("days", session.Itinerary.TotalDays()))
	return nil
}

// Load round-trips the stored JSON document. Documents written by older
// versions may lack newer fields; those load with zero values rather than
// failing.
func (s *SessionService) Load(ctx context.Context, name string) (*trip_models.PlannerSession, error) {
	record, err := s.repo.GetByName(ctx, sanitizeSessionName(name))
	if err != nil {
		return nil, err
	}

	var session trip_models.PlannerSession
	if err := json.Unmarshal(record.Document, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session %q: %w", name, err)
	}
	return &session, nil
}

func (s *SessionService) List(ctx context.Context) ([]SessionSummary, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]SessionSummary, 0, len(records))
	for _, r := range records {
		summaries = append(summaries, SessionSummary{
			Name:     r.Name,
			Provider: r.Provider,
			Language: r.Language,
			SavedAt:  r.UpdatedAt,
		})
	}
	return summaries, nil
}

func (s *SessionService) Delete(ctx context.Context, name string) error {
	return s.repo.Delete(ctx, sanitizeSessionName(name))
}

// sanitizeSessionName keeps names filesystem- and URL-safe.
func sanitizeSessionName(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
