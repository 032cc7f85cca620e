package plan

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zfit/zfit/internal/llm"
	"github.com/zfit/zfit/internal/models"
)

// Generator drafts a raw weekly plan with the text generator.
type Generator struct {
	gen   llm.Generator
	files *FileStore
	log   *slog.Logger
}

// NewGenerator creates a Generator.
func NewGenerator(gen llm.Generator, files *FileStore, log *slog.Logger) *Generator {
	return &Generator{gen: gen, files: files, log: log}
}

// Generate drafts a plan for req and stores the reply as the session's raw plan.
func (g *Generator) Generate(ctx context.Context, session Session, req models.ProgramRequest) (string, error) {
	dates := DatesInWindow(req.StartDate, req.Days)
	if len(dates) == 0 {
		g.log.Warn("no workout dates in window", "startdate", req.StartDate, "days", req.Days)
	}

	text, err := g.gen.Generate(ctx, generatePlanPrompt(req, dates))
	if err != nil {
		return "", fmt.Errorf("generating plan: %w", err)
	}
	if err := g.files.WriteRaw(session, text); err != nil {
		return "", fmt.Errorf("storing raw plan: %w", err)
	}
	g.log.Info("workout plan generated", "session", session, "dates", len(dates))
	return text, nil
}
