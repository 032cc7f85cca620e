package plan

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/zfit/zfit/internal/models"
)

// Structurer groups a session's cleaned plan into workouts.
type Structurer struct {
	files *FileStore
	log   *slog.Logger
}

// NewStructurer creates a Structurer.
func NewStructurer(files *FileStore, log *slog.Logger) *Structurer {
	return &Structurer{files: files, log: log}
}

// Structure reads the cleaned plan of session and groups it by date. A missing
// or malformed file yields an empty plan.
func (s *Structurer) Structure(session Session) []models.StructuredWorkout {
	rows, err := s.files.ReadCleaned(session)
	if err != nil {
		s.log.Error("failed to read cleaned plan", "session", session, "error", err)
		return []models.StructuredWorkout{}
	}
	return StructureRows(rows)
}

// StructureRows groups rows by date in ascending date order. Titles and muscle
// groups are deduplicated in first-seen order; sets keep row order.
func StructureRows(rows []models.CleanedSetRow) []models.StructuredWorkout {
	type group struct {
		titles  []string
		muscles []string
		seenT   map[string]bool
		seenM   map[string]bool
		sets    []models.PlannedSet
	}

	groups := make(map[string]*group)
	var dates []string
	for _, r := range rows {
		g, ok := groups[r.Date]
		if !ok {
			g = &group{seenT: map[string]bool{}, seenM: map[string]bool{}}
			groups[r.Date] = g
			dates = append(dates, r.Date)
		}
		if !g.seenT[r.Title] {
			g.seenT[r.Title] = true
			g.titles = append(g.titles, r.Title)
		}
		for _, m := range strings.Split(r.MuscleGroups, ";") {
			m = strings.TrimSpace(m)
			if m == "" || g.seenM[m] {
				continue
			}
			g.seenM[m] = true
			g.muscles = append(g.muscles, m)
		}
		g.sets = append(g.sets, models.PlannedSet{
			Exercise: r.Exercise,
			SetNum:   r.SetNum,
			Lbs:      r.Lbs,
			Reps:     r.Reps,
		})
	}

	sort.Strings(dates)
	workouts := make([]models.StructuredWorkout, 0, len(dates))
	for _, d := range dates {
		g := groups[d]
		muscles := g.muscles
		if muscles == nil {
			muscles = []string{}
		}
		workouts = append(workouts, models.StructuredWorkout{
			Title:        strings.Join(g.titles, "/"),
			Date:         d,
			MuscleGroups: muscles,
			Sets:         g.sets,
		})
	}
	return workouts
}
