package plan

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/zfit/zfit/internal/llm"
	"github.com/zfit/zfit/internal/models"
)

// Store is the database surface the plan pipeline needs.
type Store interface {
	HistoryStore
	Transactor
}

// Service runs the generate, clean, structure, edit and persist steps.
type Service struct {
	files         *FileStore
	generator     *Generator
	matcher       *Matcher
	cleaner       *Cleaner
	structurer    *Structurer
	editor        *Editor
	persister     *Persister
	keepArtifacts bool
	log           *slog.Logger
}

// NewService wires the pipeline components over one store, generator and file store.
func NewService(store Store, gen llm.Generator, files *FileStore, keepArtifacts bool, log *slog.Logger) *Service {
	matcher := NewMatcher(store, gen, log)
	return &Service{
		files:         files,
		generator:     NewGenerator(gen, files, log),
		matcher:       matcher,
		cleaner:       NewCleaner(files, matcher, log),
		structurer:    NewStructurer(files, log),
		editor:        NewEditor(gen, log),
		persister:     NewPersister(store, log),
		keepArtifacts: keepArtifacts,
		log:           log,
	}
}

// Matcher returns the exercise matcher used by the cleaner.
func (s *Service) Matcher() *Matcher {
	return s.matcher
}

// GenerateProgram drafts, cleans and structures a weekly plan. Any failure
// yields an empty plan.
func (s *Service) GenerateProgram(ctx context.Context, req models.ProgramRequest) []models.StructuredWorkout {
	session := NewSession()
	defer s.cleanup(session)

	if _, err := s.generator.Generate(ctx, session, req); err != nil {
		s.log.Error("failed to generate a workout plan", "session", session, "error", err)
		return []models.StructuredWorkout{}
	}
	s.cleaner.Clean(ctx, session)
	return s.structurer.Structure(session)
}

// StructureRaw cleans and structures a raw plan CSV supplied by the caller.
func (s *Service) StructureRaw(ctx context.Context, raw io.Reader) (Session, []models.StructuredWorkout, error) {
	data, err := io.ReadAll(raw)
	if err != nil {
		return "", nil, fmt.Errorf("reading raw plan: %w", err)
	}
	session := NewSession()
	if err := s.files.WriteRaw(session, string(data)); err != nil {
		return "", nil, err
	}
	defer s.cleanup(session)

	s.cleaner.Clean(ctx, session)
	return session, s.structurer.Structure(session), nil
}

// UpdateProgram applies free-text changes to a plan.
func (s *Service) UpdateProgram(ctx context.Context, program []models.StructuredWorkout, changes string) []models.StructuredWorkout {
	return s.editor.Alter(ctx, program, changes)
}

// InsertProgram persists an approved plan.
func (s *Service) InsertProgram(ctx context.Context, program []models.StructuredWorkout) InsertResult {
	res := s.persister.Insert(ctx, program)
	s.log.Info("program inserted",
		"workouts_inserted", res.WorkoutsInserted,
		"workouts_failed", res.WorkoutsFailed,
		"sets_inserted", res.SetsInserted,
		"sets_failed", res.SetsFailed,
	)
	return res
}

func (s *Service) cleanup(session Session) {
	if s.keepArtifacts {
		return
	}
	if err := s.files.Remove(session); err != nil {
		s.log.Warn("failed to remove plan artifacts", "session", session, "error", err)
	}
}
