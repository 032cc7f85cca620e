package plan

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"github.com/zfit/zfit/internal/llm"
	"github.com/zfit/zfit/internal/models"
)

// HistoryStore reads past sets.
type HistoryStore interface {
	DistinctExercises(ctx context.Context) ([]string, error)
	ExerciseLoads(ctx context.Context, exercise string) ([]models.SetLoad, error)
}

// Matcher maps new exercise names onto past ones and their best sets.
type Matcher struct {
	store HistoryStore
	gen   llm.Generator
	log   *slog.Logger
}

// NewMatcher creates a Matcher.
func NewMatcher(store HistoryStore, gen llm.Generator, log *slog.Logger) *Matcher {
	return &Matcher{store: store, gen: gen, log: log}
}

// FindClosestExercise asks the generator which past exercise is closest in
// typical load to exercise. The reply must name one of the past exercises;
// anything else counts as no match.
func (m *Matcher) FindClosestExercise(ctx context.Context, exercise string) (string, bool) {
	candidates, err := m.store.DistinctExercises(ctx)
	if err != nil {
		m.log.Error("could not load past exercises", "exercise", exercise, "error", err)
		return "", false
	}
	if len(candidates) == 0 {
		m.log.Warn("there are no past exercises in the database")
		return "", false
	}

	reply, err := m.gen.Generate(ctx, closestExercisePrompt(exercise, candidates))
	if err != nil {
		m.log.Error("could not find the closest exercise", "exercise", exercise, "error", err)
		return "", false
	}

	name, ok := pickCandidate(reply, candidates)
	if !ok {
		m.log.Warn("closest exercise reply is not a past exercise", "exercise", exercise, "reply", reply)
		return "", false
	}
	m.log.Info("closest past exercise", "exercise", exercise, "match", name)
	return name, true
}

// pickCandidate resolves a generator reply to the canonical spelling of a
// candidate. Surrounding whitespace, quotes and trailing punctuation are ignored.
func pickCandidate(reply string, candidates []string) (string, bool) {
	reply = strings.Trim(reply, " \t\r\n\"'`*.,;:!")
	if reply == "" {
		return "", false
	}
	for _, c := range candidates {
		if c == reply {
			return c, true
		}
	}
	for _, c := range candidates {
		if strings.EqualFold(c, reply) {
			return c, true
		}
	}
	return "", false
}

// FindExerciseLbsReps returns the highest-volume past set of exercise, or
// {0,0} when there is none or the store fails.
func (m *Matcher) FindExerciseLbsReps(ctx context.Context, exercise string) models.BestSet {
	loads, err := m.store.ExerciseLoads(ctx, exercise)
	if err != nil {
		m.log.Error("failed to find lbs and reps for exercise", "exercise", exercise, "error", err)
		return models.BestSet{}
	}
	if len(loads) == 0 {
		m.log.Warn("there are no past sets of that exercise", "exercise", exercise)
	}
	return BestSet(loads)
}

// BestSet picks the load with the greatest lbs × reps. Loads with a missing
// or non-finite value are skipped. Among zero-volume loads the first one wins.
func BestSet(loads []models.SetLoad) models.BestSet {
	var best models.BestSet
	found := false
	for _, l := range loads {
		if l.Lbs == nil || l.Reps == nil || !finite(*l.Lbs) || !finite(*l.Reps) {
			continue
		}
		cur := models.BestSet{Lbs: *l.Lbs, Reps: *l.Reps}
		switch {
		case cur.Volume() > best.Volume():
			best, found = cur, true
		case !found && cur.Volume() == 0 && best.Volume() == 0:
			best, found = cur, true
		}
	}
	return best
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
