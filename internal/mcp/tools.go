package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/zfit/zfit/internal/models"
	"github.com/zfit/zfit/internal/plan"
)

const defaultHistoryLimit = 10

// --- Tool definitions ---

var toolGetExerciseHistory = mcp.NewTool("get_exercise_history",
	mcp.WithDescription("Past workouts (before today) containing an exercise, newest first. Each entry has the date and the sets (set_num, lbs, reps)."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name (case-insensitive, e.g. 'Bench Press')")),
	mcp.WithNumber("limit", mcp.Description("Maximum number of workouts. Defaults to 10.")),
)

var toolGetBestSet = mcp.NewTool("get_best_set",
	mcp.WithDescription("The past set of an exercise with the highest volume (lbs x reps). Returns lbs 0 and reps 0 when there is no history."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name")),
)

var toolMatchExercise = mcp.NewTool("match_exercise",
	mcp.WithDescription("Find the past exercise closest in typical load to a new exercise, and that exercise's best set."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("New exercise name")),
)

var toolGetExerciseInsights = mcp.NewTool("get_exercise_insights",
	mcp.WithDescription("Trend analysis, a next-session target and progression advice for an exercise, based on its last 10 workouts."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name")),
)

// --- Tool handlers ---

func (h *handlers) today() time.Time {
	now := h.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (h *handlers) getExerciseHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}
	limit := req.GetInt("limit", defaultHistoryLimit)
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	sessions, err := h.ds.ExerciseHistory(ctx, exercise, h.today(), limit)
	if err != nil {
		h.log.Error("mcp get_exercise_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(sessions)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getBestSet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	loads, err := h.ds.ExerciseLoads(ctx, exercise)
	if err != nil {
		h.log.Error("mcp get_best_set", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(plan.BestSet(loads))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

type matchResult struct {
	Exercise string          `json:"exercise"`
	Matched  bool            `json:"matched"`
	Match    string          `json:"match,omitempty"`
	BestSet  *models.BestSet `json:"best_set,omitempty"`
}

func (h *handlers) matchExercise(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	res := matchResult{Exercise: exercise}
	if name, ok := h.matcher.FindClosestExercise(ctx, exercise); ok {
		loads, err := h.ds.ExerciseLoads(ctx, name)
		if err != nil {
			h.log.Error("mcp match_exercise loads", "error", err)
			return mcp.NewToolResultError("query failed: " + err.Error()), nil
		}
		best := plan.BestSet(loads)
		res.Matched, res.Match, res.BestSet = true, name, &best
	}

	result, err := mcp.NewToolResultJSON(res)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getExerciseInsights(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}
	return mcp.NewToolResultText(h.insights.Generate(ctx, exercise)), nil
}
