package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/zfit/zfit/internal/llm"
	"github.com/zfit/zfit/internal/models"
)

// historyLimit caps how many past workouts are fed into the analysis.
const historyLimit = 10

// HistoryReader reads the past sessions of one exercise.
type HistoryReader interface {
	ExerciseHistory(ctx context.Context, exercise string, before time.Time, limit int) ([]models.ExerciseSession, error)
}

// Service turns an exercise's history into training advice.
type Service struct {
	store HistoryReader
	gen   llm.Generator
	log   *slog.Logger
	now   func() time.Time
}

// NewService creates a Service that uses the wall clock for "today".
func NewService(store HistoryReader, gen llm.Generator, log *slog.Logger) *Service {
	return &Service{store: store, gen: gen, log: log, now: time.Now}
}

// PastExerciseData returns the most recent workouts before today that
// include exercise, newest first.
func (s *Service) PastExerciseData(ctx context.Context, exercise string) ([]models.ExerciseSession, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	sessions, err := s.store.ExerciseHistory(ctx, exercise, today, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("loading history for %s: %w", exercise, err)
	}
	return sessions, nil
}

// Generate returns the generator's analysis of exercise, or a fixed error
// message when there is no history or generation fails.
func (s *Service) Generate(ctx context.Context, exercise string) string {
	failed := "Error generating insights for " + exercise

	sessions, err := s.PastExerciseData(ctx, exercise)
	if err != nil {
		s.log.Error("failed to load exercise history", "exercise", exercise, "error", err)
		return failed
	}
	if len(sessions) == 0 {
		s.log.Warn("no exercise history", "exercise", exercise)
		return failed
	}

	history, err := json.Marshal(sessions)
	if err != nil {
		s.log.Error("failed to encode exercise history", "exercise", exercise, "error", err)
		return failed
	}

	text, err := s.gen.Generate(ctx, insightsPrompt(exercise, string(history)))
	if err != nil {
		s.log.Error("failed to generate actionable insights", "exercise", exercise, "error", err)
		return failed
	}
	s.log.Info("insights generated", "exercise", exercise, "sessions", len(sessions))
	return text
}
