package plan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/zfit/zfit/internal/llm"
	"github.com/zfit/zfit/internal/models"
)

// ErrNoJSONArray means a reply held no "[" followed later by "]".
var ErrNoJSONArray = errors.New("no JSON array in reply")

// Editor applies free-text changes to a plan through the generator.
type Editor struct {
	gen llm.Generator
	log *slog.Logger
}

// NewEditor creates an Editor.
func NewEditor(gen llm.Generator, log *slog.Logger) *Editor {
	return &Editor{gen: gen, log: log}
}

// Alter asks the generator to apply changes to past and parses the revised
// plan from its reply. Any failure yields an empty plan.
func (e *Editor) Alter(ctx context.Context, past []models.StructuredWorkout, changes string) []models.StructuredWorkout {
	program, err := json.Marshal(past)
	if err != nil {
		e.log.Error("failed to encode program", "error", err)
		return []models.StructuredWorkout{}
	}

	reply, err := e.gen.Generate(ctx, alterProgramPrompt(string(program), changes))
	if err != nil {
		e.log.Error("failed to alter program", "error", err)
		return []models.StructuredWorkout{}
	}

	altered, err := ParsePlan(reply)
	if err != nil {
		e.log.Error("failed to parse altered program", "error", err)
		return []models.StructuredWorkout{}
	}
	e.log.Info("program altered", "workouts", len(altered))
	return altered
}

// ExtractJSONArray returns the text from the first "[" through the last "]".
func ExtractJSONArray(text string) (string, error) {
	first := strings.Index(text, "[")
	last := strings.LastIndex(text, "]")
	if first < 0 || last < first {
		return "", ErrNoJSONArray
	}
	return text[first : last+1], nil
}

// ParsePlan extracts and decodes a plan from a generator reply. Any valid
// JSON array is accepted: non-object entries are skipped and loosely typed
// fields are coerced.
func ParsePlan(reply string) ([]models.StructuredWorkout, error) {
	raw, err := ExtractJSONArray(reply)
	if err != nil {
		return nil, err
	}
	items, err := models.ObjectElements([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("decoding plan: %w", err)
	}
	plan := make([]models.StructuredWorkout, 0, len(items))
	for _, item := range items {
		var w models.StructuredWorkout
		if err := json.Unmarshal(item, &w); err != nil {
			return nil, fmt.Errorf("decoding workout: %w", err)
		}
		plan = append(plan, w)
	}
	return plan, nil
}
