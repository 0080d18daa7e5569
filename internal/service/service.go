// Package service is the operation facade the transport layer calls.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/flappykiro/leaderboard-service/internal/eventlog"
	"github.com/flappykiro/leaderboard-service/internal/leaderboard"
	"github.com/flappykiro/leaderboard-service/internal/models"
	"github.com/flappykiro/leaderboard-service/internal/validate"
)

// StorageError marks a submission that validated but could not be durably
// recorded. Handlers map it to a server error rather than a client one.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage failure: %v", e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }

// Service owns the two guarded collections and exposes the request-facing
// operations. It is constructed once in main and handed to the HTTP layer;
// there are no package-level singletons.
type Service struct {
	scores *leaderboard.Ledger
	events *eventlog.Log
	tracer trace.Tracer
	now    func() time.Time
}

// New builds the facade around an already-loaded ledger and event log.
func New(scores *leaderboard.Ledger, events *eventlog.Log) *Service {
	return &Service{
		scores: scores,
		events: events,
		tracer: otel.Tracer("service"),
		now:    time.Now,
	}
}

// SubmitScore validates and records a submission. Validation failures come
// back as *validate.Error untouched; persistence failures as *StorageError.
func (s *Service) SubmitScore(ctx context.Context, req models.SubmitScoreRequest) (models.ScoreEntry, error) {
	ctx, span := s.tracer.Start(ctx, "service.submit_score")
	defer span.End()

	username := strings.TrimSpace(req.Username)
	difficulty := validate.NormalizeDifficulty(req.Difficulty)

	if err := validate.Submission(username, req.Score, req.Difficulty); err != nil {
		span.RecordError(err)
		return models.ScoreEntry{}, err
	}

	entry, err := s.scores.Add(ctx, username, int(*req.Score), difficulty)
	if err != nil {
		span.RecordError(err)
		return models.ScoreEntry{}, &StorageError{Err: err}
	}
	return entry, nil
}

// Leaderboard returns the current top entries. It reads in-memory state only
// and cannot fail.
func (s *Service) Leaderboard(ctx context.Context, limit int) []models.ScoreEntry {
	_, span := s.tracer.Start(ctx, "service.get_leaderboard")
	defer span.End()
	return s.scores.Top(limit)
}

// LogEvent records a telemetry payload. It always succeeds from the
// caller's point of view; persistence problems are observability-only.
func (s *Service) LogEvent(ctx context.Context, payload map[string]any) {
	ctx, span := s.tracer.Start(ctx, "service.log_event")
	defer span.End()
	s.events.Append(ctx, payload)
}

// Health reports liveness plus the current ledger size.
func (s *Service) Health() models.HealthStatus {
	return models.HealthStatus{
		Status:      "healthy",
		Timestamp:   s.now().UTC(),
		ScoresCount: s.scores.Len(),
	}
}
