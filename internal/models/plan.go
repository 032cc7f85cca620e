package models

// RawPlanRow is one exercise line of a generated weekly plan, as written by
// the text generator. SetCount stays unparsed until cleaning.
type RawPlanRow struct {
	Title        string
	Date         string
	MuscleGroups string
	Exercise     string
	SetCount     string
}

// CleanedSetRow is a single planned set with historical load defaults attached.
type CleanedSetRow struct {
	Title        string
	Date         string
	MuscleGroups string
	Exercise     string
	SetNum       int
	Lbs          float64
	Reps         float64
}

// BestSet is the historical set with the highest volume (lbs × reps).
type BestSet struct {
	Lbs  float64 `json:"lbs"`
	Reps float64 `json:"reps"`
}

// Volume returns lbs × reps.
func (b BestSet) Volume() float64 {
	return b.Lbs * b.Reps
}

// StructuredWorkout is one day of a plan, grouped for display and editing.
type StructuredWorkout struct {
	Title        string       `json:"title"`
	Date         string       `json:"date"`
	MuscleGroups []string     `json:"musclegroups"`
	Sets         []PlannedSet `json:"sets"`
}

// PlannedSet is a set inside a StructuredWorkout.
type PlannedSet struct {
	Exercise string  `json:"exercise"`
	SetNum   int     `json:"set_num"`
	Lbs      float64 `json:"lbs"`
	Reps     float64 `json:"reps"`
}

// ProgramRequest carries the user details used to generate a weekly plan.
type ProgramRequest struct {
	Age       string
	Gender    string
	Level     string
	Goal      string
	Days      []string
	StartDate string
	Equipment []string
}
