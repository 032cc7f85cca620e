package plan

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/zfit/zfit/internal/models"
	"github.com/zfit/zfit/internal/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeGen answers prompts with a function and records every prompt it saw.
type fakeGen struct {
	mu      sync.Mutex
	prompts []string
	reply   func(prompt string) (string, error)
}

func (g *fakeGen) Generate(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	g.prompts = append(g.prompts, prompt)
	g.mu.Unlock()
	return g.reply(prompt)
}

func constGen(reply string) *fakeGen {
	return &fakeGen{reply: func(string) (string, error) { return reply, nil }}
}

func errGen() *fakeGen {
	return &fakeGen{reply: func(string) (string, error) { return "", errors.New("connection refused") }}
}

// fakeHistory serves past exercises and loads from memory.
type fakeHistory struct {
	exercises    []string
	loads        map[string][]models.SetLoad
	exercisesErr error
	loadsErr     error
	loadCalls    []string
}

func (h *fakeHistory) DistinctExercises(context.Context) ([]string, error) {
	return h.exercises, h.exercisesErr
}

func (h *fakeHistory) ExerciseLoads(_ context.Context, exercise string) ([]models.SetLoad, error) {
	h.loadCalls = append(h.loadCalls, exercise)
	if h.loadsErr != nil {
		return nil, h.loadsErr
	}
	for name, l := range h.loads {
		if strings.EqualFold(name, exercise) {
			return l, nil
		}
	}
	return nil, nil
}

// fakeMatcher resolves exercises from fixed tables and counts lookups.
type fakeMatcher struct {
	closest      map[string]string
	best         map[string]models.BestSet
	closestCalls map[string]int
}

func (m *fakeMatcher) FindClosestExercise(_ context.Context, exercise string) (string, bool) {
	if m.closestCalls == nil {
		m.closestCalls = map[string]int{}
	}
	m.closestCalls[exercise]++
	name, ok := m.closest[exercise]
	return name, ok
}

func (m *fakeMatcher) FindExerciseLbsReps(_ context.Context, exercise string) models.BestSet {
	return m.best[exercise]
}

// fakeDB records committed workouts and sets. Writes inside a transaction are
// staged and only kept when the transaction function returns nil.
type fakeDB struct {
	nextID        int64
	failWorkout   func(models.WorkoutRow) bool
	failSet       func(models.SetRow) bool
	workouts      []models.WorkoutRow
	sets          []models.SetRow
	attemptedSets []models.SetRow
	rollbacks     int
}

type fakeTx struct {
	db       *fakeDB
	workouts []models.WorkoutRow
	sets     []models.SetRow
}

func (db *fakeDB) InTx(_ context.Context, fn func(storage.Writer) error) error {
	tx := &fakeTx{db: db}
	if err := fn(tx); err != nil {
		db.rollbacks++
		return err
	}
	db.workouts = append(db.workouts, tx.workouts...)
	db.sets = append(db.sets, tx.sets...)
	return nil
}

func (tx *fakeTx) InsertWorkout(_ context.Context, row models.WorkoutRow) (int64, error) {
	if tx.db.failWorkout != nil && tx.db.failWorkout(row) {
		return 0, errors.New("insert workout: constraint violation")
	}
	tx.db.nextID++
	row.ID = tx.db.nextID
	tx.workouts = append(tx.workouts, row)
	return row.ID, nil
}

func (tx *fakeTx) InsertSet(_ context.Context, row models.SetRow) error {
	tx.db.attemptedSets = append(tx.db.attemptedSets, row)
	if tx.db.failSet != nil && tx.db.failSet(row) {
		return errors.New("insert set: constraint violation")
	}
	tx.sets = append(tx.sets, row)
	return nil
}

// fakeStore joins fakeHistory and fakeDB into a Store.
type fakeStore struct {
	*fakeHistory
	*fakeDB
}

func ptr(v float64) *float64 { return &v }
