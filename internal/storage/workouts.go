package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/zfit/zfit/internal/models"
)

// Writer inserts planned workouts and their sets.
type Writer interface {
	InsertWorkout(ctx context.Context, row models.WorkoutRow) (int64, error)
	InsertSet(ctx context.Context, row models.SetRow) error
}

// InsertWorkout inserts a workout row and returns its generated id.
func (w *txWriter) InsertWorkout(ctx context.Context, row models.WorkoutRow) (int64, error) {
	var id int64
	err := w.tx.QueryRow(ctx,
		`INSERT INTO workout (title, inprogress, date, musclegroups, duration)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		row.Title, row.InProgress, row.Date, row.MuscleGroups, row.Duration).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting workout: %w", err)
	}
	return id, nil
}

// InsertSet inserts a set row under a savepoint, so a failed set leaves the
// surrounding transaction usable.
func (w *txWriter) InsertSet(ctx context.Context, row models.SetRow) error {
	sp, err := w.tx.Begin(ctx)
	if err != nil {
		return fmt.Errorf("creating savepoint: %w", err)
	}
	_, err = sp.Exec(ctx,
		`INSERT INTO "set" (workout_id, exercise, set_num, lbs, reps)
		 VALUES ($1, $2, $3, $4, $5)`,
		row.WorkoutID, row.Exercise, row.SetNum, row.Lbs, row.Reps)
	if err != nil {
		_ = sp.Rollback(ctx)
		return fmt.Errorf("inserting set: %w", err)
	}
	if err := sp.Commit(ctx); err != nil {
		return fmt.Errorf("releasing savepoint: %w", err)
	}
	return nil
}

// exerciseHistorySQL caps the number of workouts in the recent CTE, so the
// rows read stay bounded however long the history grows. LIMIT NULL is no cap.
const exerciseHistorySQL = `
WITH recent AS (
	SELECT w.id
	FROM workout w
	WHERE w.date < $2
	  AND EXISTS (
		SELECT 1 FROM "set" s
		WHERE s.workout_id = w.id AND lower(s.exercise) = lower($1))
	ORDER BY w.date DESC, w.id DESC
	LIMIT $3
)
SELECT w.id, w.date, s.set_num, s.lbs, s.reps
FROM recent r
JOIN workout w ON w.id = r.id
JOIN "set" s ON s.workout_id = w.id
WHERE lower(s.exercise) = lower($1)
ORDER BY w.date DESC, w.id DESC, s.set_num ASC`

// ExerciseHistory returns the sets of one exercise grouped by workout, for
// workouts dated strictly before the given day, newest first. At most limit
// workouts are returned; limit <= 0 means no cap.
func (db *DB) ExerciseHistory(ctx context.Context, exercise string, before time.Time, limit int) ([]models.ExerciseSession, error) {
	rows, err := db.Pool.Query(ctx, exerciseHistorySQL, exercise, before, sqlLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("querying exercise history: %w", err)
	}
	defer rows.Close()

	var hist []historyRow
	for rows.Next() {
		var h historyRow
		if err := rows.Scan(&h.WorkoutID, &h.Date, &h.Set.SetNum, &h.Set.Lbs, &h.Set.Reps); err != nil {
			return nil, fmt.Errorf("scanning exercise history: %w", err)
		}
		hist = append(hist, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading exercise history: %w", err)
	}
	return groupSessions(hist, limit), nil
}

// sqlLimit maps a non-positive limit to NULL.
func sqlLimit(limit int) *int {
	if limit <= 0 {
		return nil
	}
	return &limit
}

// historyRow is one joined workout/set row, ordered newest workout first.
type historyRow struct {
	WorkoutID int64
	Date      time.Time
	Set       models.SessionSetRow
}

// groupSessions folds consecutive rows of the same workout into one session,
// keeping at most limit sessions.
func groupSessions(rows []historyRow, limit int) []models.ExerciseSession {
	sessions := []models.ExerciseSession{}
	var lastID int64
	for i, r := range rows {
		if i == 0 || r.WorkoutID != lastID {
			if limit > 0 && len(sessions) == limit {
				break
			}
			sessions = append(sessions, models.ExerciseSession{Date: r.Date.Format("2006-01-02")})
			lastID = r.WorkoutID
		}
		cur := &sessions[len(sessions)-1]
		cur.Sets = append(cur.Sets, r.Set)
	}
	return sessions
}
