package plan

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/zfit/zfit/internal/models"
	"github.com/zfit/zfit/internal/storage"
)

// Transactor runs a unit of writes atomically.
type Transactor interface {
	InTx(ctx context.Context, fn func(storage.Writer) error) error
}

// InsertResult counts the outcome of persisting a plan.
type InsertResult struct {
	WorkoutsInserted int `json:"workouts_inserted"`
	WorkoutsFailed   int `json:"workouts_failed"`
	SetsInserted     int `json:"sets_inserted"`
	SetsFailed       int `json:"sets_failed"`
}

// Persister writes approved plans to the workout and set tables.
type Persister struct {
	db  Transactor
	log *slog.Logger
}

// NewPersister creates a Persister.
func NewPersister(db Transactor, log *slog.Logger) *Persister {
	return &Persister{db: db, log: log}
}

// Insert stores each workout and its sets in one transaction per workout.
// A workout that cannot be inserted gets no sets; a failed set is skipped.
func (p *Persister) Insert(ctx context.Context, plan []models.StructuredWorkout) InsertResult {
	var res InsertResult
	for _, w := range plan {
		inserted, failed, err := p.insertWorkout(ctx, w)
		if err != nil {
			p.log.Error("failed to insert workout", "title", w.Title, "date", w.Date, "error", err)
			res.WorkoutsFailed++
			continue
		}
		res.WorkoutsInserted++
		res.SetsInserted += inserted
		res.SetsFailed += failed
	}
	return res
}

func (p *Persister) insertWorkout(ctx context.Context, w models.StructuredWorkout) (inserted, failed int, err error) {
	date, err := time.Parse(isoDate, w.Date)
	if err != nil {
		return 0, 0, fmt.Errorf("parsing workout date: %w", err)
	}
	row := models.WorkoutRow{
		Title:        w.Title,
		InProgress:   true,
		Date:         date,
		MuscleGroups: strings.Join(w.MuscleGroups, ", "),
		Duration:     0,
	}

	err = p.db.InTx(ctx, func(tx storage.Writer) error {
		inserted, failed = 0, 0
		id, err := tx.InsertWorkout(ctx, row)
		if err != nil {
			return err
		}
		p.log.Info("workout inserted", "id", id, "title", w.Title, "date", w.Date)

		for _, s := range w.Sets {
			lbs, reps := s.Lbs, s.Reps
			set := models.SetRow{
				WorkoutID: id,
				Exercise:  s.Exercise,
				SetNum:    s.SetNum,
				Lbs:       &lbs,
				Reps:      &reps,
			}
			if err := tx.InsertSet(ctx, set); err != nil {
				p.log.Error("failed to insert set", "workout_id", id, "exercise", s.Exercise, "set_num", s.SetNum, "error", err)
				failed++
				continue
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return inserted, failed, nil
}
