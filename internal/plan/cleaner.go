package plan

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/zfit/zfit/internal/models"
)

const defaultSetCount = 3

// ExerciseMatcher resolves a planned exercise to a past one and its best set.
type ExerciseMatcher interface {
	FindClosestExercise(ctx context.Context, exercise string) (string, bool)
	FindExerciseLbsReps(ctx context.Context, exercise string) models.BestSet
}

// Cleaner expands raw plan rows into one row per set with load defaults.
type Cleaner struct {
	files   *FileStore
	matcher ExerciseMatcher
	log     *slog.Logger
}

// NewCleaner creates a Cleaner.
func NewCleaner(files *FileStore, matcher ExerciseMatcher, log *slog.Logger) *Cleaner {
	return &Cleaner{files: files, matcher: matcher, log: log}
}

// match is the resolved history for one planned exercise name.
type match struct {
	closest string
	best    models.BestSet
}

// Clean reads the session's raw plan, expands it and writes the cleaned plan.
// Failures degrade to defaults and are logged; the rows written are returned.
func (c *Cleaner) Clean(ctx context.Context, session Session) []models.CleanedSetRow {
	raw, err := c.files.ReadRaw(session)
	if err != nil {
		c.log.Error("failed to read raw plan", "session", session, "error", err)
	}

	matches := make(map[string]match)
	rows := []models.CleanedSetRow{}
	for _, r := range raw {
		m, ok := matches[r.Exercise]
		if !ok {
			m = c.resolve(ctx, r.Exercise)
			matches[r.Exercise] = m
		}

		n := parseSetCount(r.SetCount)
		if n < 0 {
			c.log.Warn("invalid set count, using default",
				"exercise", r.Exercise, "sets", r.SetCount, "default", defaultSetCount)
			n = defaultSetCount
		}
		for i := 1; i <= n; i++ {
			rows = append(rows, models.CleanedSetRow{
				Title:        r.Title,
				Date:         r.Date,
				MuscleGroups: r.MuscleGroups,
				Exercise:     r.Exercise,
				SetNum:       i,
				Lbs:          m.best.Lbs,
				Reps:         m.best.Reps,
			})
		}
	}

	if err := c.files.WriteCleaned(session, rows); err != nil {
		c.log.Error("failed to write cleaned plan", "session", session, "error", err)
	} else {
		c.log.Info("cleaned plan written", "session", session, "rows", len(rows))
	}
	return rows
}

func (c *Cleaner) resolve(ctx context.Context, exercise string) match {
	closest, ok := c.matcher.FindClosestExercise(ctx, exercise)
	if !ok {
		c.log.Warn("could not find closest exercise", "exercise", exercise)
		return match{}
	}
	return match{closest: closest, best: c.matcher.FindExerciseLbsReps(ctx, closest)}
}

// parseSetCount returns the planned number of sets, or -1 when the text is
// not a positive integer.
func parseSetCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return -1
	}
	return n
}
