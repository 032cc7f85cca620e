package models

import "time"

// WorkoutRow is a row for the workout table.
type WorkoutRow struct {
	ID           int64
	Title        string
	InProgress   bool
	Date         time.Time
	MuscleGroups string
	Duration     int
}

// SetRow is a row for the set table.
type SetRow struct {
	ID        int64
	WorkoutID int64
	Exercise  string
	SetNum    int
	Lbs       *float64
	Reps      *float64
}

// SetLoad is the load of one historical set. Nil means the column held no number.
type SetLoad struct {
	Lbs  *float64
	Reps *float64
}

// ExerciseSession is one past workout's sets for a single exercise.
type ExerciseSession struct {
	Date string          `json:"date"`
	Sets []SessionSetRow `json:"set"`
}

// SessionSetRow is a set inside an ExerciseSession.
type SessionSetRow struct {
	SetNum int      `json:"set_num"`
	Lbs    *float64 `json:"lbs"`
	Reps   *float64 `json:"reps"`
}
