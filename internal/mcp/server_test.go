package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/zfit/zfit/internal/models"
)

type fakeDS struct {
	exercises []string
	loads     map[string][]models.SetLoad
	sessions  []models.ExerciseSession
	err       error

	before time.Time
	limit  int
}

func (f *fakeDS) DistinctExercises(context.Context) ([]string, error) {
	return f.exercises, f.err
}

func (f *fakeDS) ExerciseLoads(_ context.Context, exercise string) ([]models.SetLoad, error) {
	return f.loads[exercise], f.err
}

func (f *fakeDS) ExerciseHistory(_ context.Context, _ string, before time.Time, limit int) ([]models.ExerciseSession, error) {
	f.before, f.limit = before, limit
	return f.sessions, f.err
}

type fakeMatcher map[string]string

func (m fakeMatcher) FindClosestExercise(_ context.Context, exercise string) (string, bool) {
	name, ok := m[exercise]
	return name, ok
}

type fakeInsights string

func (i fakeInsights) Generate(context.Context, string) string { return string(i) }

func testHandlers(ds *fakeDS, m fakeMatcher) *handlers {
	h := newHandlers(ds, m, fakeInsights("1. Add 5 lbs."), slog.New(slog.NewTextHandler(io.Discard, nil)))
	h.now = func() time.Time { return time.Date(2024, 5, 2, 14, 0, 0, 0, time.UTC) }
	return h
}

func callTool(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content type = %T, want TextContent", res.Content[0])
	}
	return tc.Text
}

func f64(v float64) *float64 { return &v }

// TestGetExerciseHistory verifies history is queried before today with the
// requested limit.
func TestGetExerciseHistory(t *testing.T) {
	ds := &fakeDS{sessions: []models.ExerciseSession{{Date: "2024-05-01"}}}
	h := testHandlers(ds, nil)

	res, err := h.getExerciseHistory(context.Background(), callTool(map[string]any{"exercise": "Squat", "limit": float64(3)}))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("tool error: %s", resultText(t, res))
	}
	if !strings.Contains(resultText(t, res), `"date":"2024-05-01"`) {
		t.Errorf("result = %s", resultText(t, res))
	}
	if ds.limit != 3 || !ds.before.Equal(time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("limit = %d, before = %v", ds.limit, ds.before)
	}
}

// TestGetExerciseHistoryDefaults verifies the default limit and the required
// exercise argument.
func TestGetExerciseHistoryDefaults(t *testing.T) {
	ds := &fakeDS{}
	h := testHandlers(ds, nil)

	if _, err := h.getExerciseHistory(context.Background(), callTool(map[string]any{"exercise": "Squat"})); err != nil {
		t.Fatal(err)
	}
	if ds.limit != 10 {
		t.Errorf("limit = %d, want 10", ds.limit)
	}

	res, _ := h.getExerciseHistory(context.Background(), callTool(map[string]any{}))
	if !res.IsError {
		t.Error("expected error without exercise")
	}
}

// TestGetBestSet verifies the highest-volume set is returned.
func TestGetBestSet(t *testing.T) {
	ds := &fakeDS{loads: map[string][]models.SetLoad{
		"Squat": {{Lbs: f64(225), Reps: f64(5)}, {Lbs: f64(135), Reps: f64(10)}},
	}}
	res, err := testHandlers(ds, nil).getBestSet(context.Background(), callTool(map[string]any{"exercise": "Squat"}))
	if err != nil {
		t.Fatal(err)
	}
	var best models.BestSet
	if err := json.Unmarshal([]byte(resultText(t, res)), &best); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if best != (models.BestSet{Lbs: 135, Reps: 10}) {
		t.Errorf("best = %+v, want 135 x 10", best)
	}
}

// TestGetBestSetQueryError verifies store failures become tool errors.
func TestGetBestSetQueryError(t *testing.T) {
	res, err := testHandlers(&fakeDS{err: errors.New("db down")}, nil).getBestSet(context.Background(), callTool(map[string]any{"exercise": "Squat"}))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Error("expected tool error")
	}
}

// TestMatchExercise verifies matched and unmatched exercises.
func TestMatchExercise(t *testing.T) {
	ds := &fakeDS{loads: map[string][]models.SetLoad{"Bench Press": {{Lbs: f64(135), Reps: f64(8)}}}}
	h := testHandlers(ds, fakeMatcher{"Incline Press": "Bench Press"})

	res, _ := h.matchExercise(context.Background(), callTool(map[string]any{"exercise": "Incline Press"}))
	var got matchResult
	if err := json.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.Matched || got.Match != "Bench Press" || got.BestSet == nil || got.BestSet.Lbs != 135 {
		t.Errorf("match = %+v", got)
	}

	res, _ = h.matchExercise(context.Background(), callTool(map[string]any{"exercise": "Sled Push"}))
	got = matchResult{}
	if err := json.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Matched || got.BestSet != nil {
		t.Errorf("unmatched = %+v", got)
	}
}

// TestGetExerciseInsights verifies the insight text is returned as-is.
func TestGetExerciseInsights(t *testing.T) {
	res, err := testHandlers(&fakeDS{}, nil).getExerciseInsights(context.Background(), callTool(map[string]any{"exercise": "Squat"}))
	if err != nil {
		t.Fatal(err)
	}
	if got := resultText(t, res); got != "1. Add 5 lbs." {
		t.Errorf("text = %q", got)
	}
}

// TestExercisesResource verifies the catalog resource lists exercise names.
func TestExercisesResource(t *testing.T) {
	h := testHandlers(&fakeDS{exercises: []string{"Bench Press", "Squat"}}, nil)
	var req mcp.ReadResourceRequest
	req.Params.URI = "zfit://exercises"

	contents, err := h.exercises(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("contents type = %T", contents[0])
	}
	if tc.Text != `["Bench Press","Squat"]` || tc.URI != "zfit://exercises" {
		t.Errorf("resource = %+v", tc)
	}
}

// TestNewRegistersTools verifies the server builds with its tools.
func TestNewRegistersTools(t *testing.T) {
	s := New(&fakeDS{}, fakeMatcher{}, fakeInsights(""), "test", slog.New(slog.NewTextHandler(io.Discard, nil)))
	if s == nil {
		t.Fatal("New returned nil")
	}
}
