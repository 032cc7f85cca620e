package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/zfit/zfit/internal/config"
	"github.com/zfit/zfit/internal/insights"
	"github.com/zfit/zfit/internal/llm"
	zfitmcp "github.com/zfit/zfit/internal/mcp"
	"github.com/zfit/zfit/internal/plan"
	"github.com/zfit/zfit/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// stdout carries the MCP protocol; logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := storage.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	gen := llm.NewClient(cfg.LLM.BaseURL, cfg.LLM.Model, cfg.LLM.Timeout, cfg.LLM.MaxRetries)
	matcher := plan.NewMatcher(db, gen, log)
	advisor := insights.NewService(db, gen, log)

	s := zfitmcp.New(db, matcher, advisor, Version, log)
	log.Info("ZFit MCP server starting on stdio", "version", Version)
	if err := server.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
