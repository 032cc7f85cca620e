package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/zfit/zfit/internal/config"
	"github.com/zfit/zfit/internal/llm"
	"github.com/zfit/zfit/internal/plan"
	"github.com/zfit/zfit/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	rawPath := flag.String("raw", "", "path to a raw plan CSV (required)")
	insert := flag.Bool("insert", false, "insert the structured plan into the database")
	keep := flag.Bool("keep", false, "keep the session's CSV artifacts")
	flag.Parse()

	// stdout carries the plan JSON; logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *rawPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: zfit-plan -config config.yaml -raw plan.csv [-insert] [-keep]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	f, err := os.Open(*rawPath)
	if err != nil {
		log.Error("cannot open raw plan", "path", *rawPath, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dsn := cfg.Database.DSN()

	// Run migrations
	if err := storage.RunMigrations(dsn, "migrations"); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")

	ctx := context.Background()

	// Connect database
	db, err := storage.New(ctx, dsn)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("database connected")

	gen := llm.NewClient(cfg.LLM.BaseURL, cfg.LLM.Model, cfg.LLM.Timeout, cfg.LLM.MaxRetries)
	svc := plan.NewService(db, gen, plan.NewFileStore(cfg.Plans.Dir), *keep || cfg.Plans.KeepArtifacts, log)

	session, program, err := svc.StructureRaw(ctx, f)
	if err != nil {
		log.Error("structuring failed", "error", err)
		os.Exit(1)
	}
	log.Info("plan structured", "session", session, "workouts", len(program))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(program); err != nil {
		log.Error("failed to write plan", "error", err)
		os.Exit(1)
	}

	if *insert {
		res := svc.InsertProgram(ctx, program)
		if res.WorkoutsFailed > 0 || res.SetsFailed > 0 {
			log.Warn("plan partially inserted", "workouts_failed", res.WorkoutsFailed, "sets_failed", res.SetsFailed)
		}
	}
}
