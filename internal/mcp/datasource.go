package mcp

import (
	"context"
	"time"

	"github.com/zfit/zfit/internal/models"
	"github.com/zfit/zfit/internal/storage"
)

// DataSource abstracts the workout history read by MCP tools.
type DataSource interface {
	DistinctExercises(ctx context.Context) ([]string, error)
	ExerciseLoads(ctx context.Context, exercise string) ([]models.SetLoad, error)
	ExerciseHistory(ctx context.Context, exercise string, before time.Time, limit int) ([]models.ExerciseSession, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)

// Matcher resolves a new exercise name to a past one.
type Matcher interface {
	FindClosestExercise(ctx context.Context, exercise string) (string, bool)
}

// Insights produces training advice for an exercise.
type Insights interface {
	Generate(ctx context.Context, exercise string) string
}
