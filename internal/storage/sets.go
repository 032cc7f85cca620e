package storage

import (
	"context"
	"fmt"

	"github.com/zfit/zfit/internal/models"
)

// DistinctExercises returns every exercise name seen in past sets, in order of first appearance.
func (db *DB) DistinctExercises(ctx context.Context) ([]string, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT exercise FROM "set" GROUP BY exercise ORDER BY MIN(id)`)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// ExerciseLoads returns the lbs/reps of every past set of an exercise, oldest first.
// The name is matched case-insensitively.
func (db *DB) ExerciseLoads(ctx context.Context, exercise string) ([]models.SetLoad, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT lbs, reps FROM "set" WHERE lower(exercise) = lower($1) ORDER BY id`,
		exercise)
	if err != nil {
		return nil, fmt.Errorf("querying exercise loads: %w", err)
	}
	defer rows.Close()

	var loads []models.SetLoad
	for rows.Next() {
		var l models.SetLoad
		if err := rows.Scan(&l.Lbs, &l.Reps); err != nil {
			return nil, fmt.Errorf("scanning exercise load: %w", err)
		}
		loads = append(loads, l)
	}
	return loads, rows.Err()
}
