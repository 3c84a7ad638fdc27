package main

// Seed the role corpus snapshot:
//   go run ./cmd/seedroles
//   go run ./cmd/seedroles --file roles.yaml --if-empty

import (
	"context"
	"os"

	"github.com/spf13/pflag"

	"resume-reviewer/internal/bootstrap"
	"resume-reviewer/internal/roles"
	"resume-reviewer/internal/shared/config"
	"resume-reviewer/internal/shared/telemetry"
)

func main() {
	file := pflag.StringP("file", "f", "", "YAML role file (defaults to the built-in corpus)")
	ifEmpty := pflag.Bool("if-empty", false, "only seed when no roles are indexed")
	pflag.Parse()

	cfg := config.Load()
	telemetry.Init(telemetry.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	ctx := context.Background()

	if err := run(ctx, cfg, *file, *ifEmpty); err != nil {
		telemetry.Error("seedroles.failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, file string, ifEmpty bool) error {
	store, err := bootstrap.BuildStore(ctx, cfg)
	if err != nil {
		return err
	}
	retriever := roles.New(ctx, roles.Options{
		Embedder: roles.EmbedderByName(cfg.RolesEmbedder),
		Store:    store,
		Prefix:   cfg.RolesSnapshotPrefix,
	})
	if ifEmpty && retriever.Len() > 0 {
		telemetry.Info("seedroles.skipped", map[string]any{"indexed": retriever.Len()})
		return nil
	}

	var batch []roles.Role
	if file != "" {
		batch, err = roles.LoadRolesFile(file)
	} else {
		batch, err = roles.SeedRoles()
	}
	if err != nil {
		return err
	}

	added := retriever.AddRoles(ctx, batch)
	telemetry.Info("seedroles.done", map[string]any{
		"added":    added,
		"indexed":  retriever.Len(),
		"embedder": retriever.Embedder(),
		"prefix":   cfg.RolesSnapshotPrefix,
	})
	return nil
}
