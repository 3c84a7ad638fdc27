package main

// Analyze a local resume and print the report as JSON:
//   go run ./cmd/analyze --file resume.pdf --role "Backend Developer"
//   go run ./cmd/analyze --file resume.docx --role "Data Engineer" --jd-file jd.txt

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"resume-reviewer/internal/analyses"
	"resume-reviewer/internal/bootstrap"
	"resume-reviewer/internal/extract"
	"resume-reviewer/internal/resume"
	"resume-reviewer/internal/roles"
	"resume-reviewer/internal/shared/config"
	"resume-reviewer/internal/shared/telemetry"
)

type options struct {
	file    string
	role    string
	jd      string
	jdFile  string
	compact bool
}

func main() {
	var opts options
	pflag.StringVarP(&opts.file, "file", "f", "", "resume file (pdf, docx or txt)")
	pflag.StringVarP(&opts.role, "role", "r", "", "target role")
	pflag.StringVar(&opts.jd, "jd", "", "job description text")
	pflag.StringVar(&opts.jdFile, "jd-file", "", "read the job description from a file")
	pflag.BoolVar(&opts.compact, "compact", false, "print compact JSON")
	pflag.Parse()

	// Logs go to stderr so stdout carries only the report.
	telemetry.SetOutput(os.Stderr, zerolog.WarnLevel)

	if err := run(context.Background(), opts, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "analyze:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, out io.Writer) error {
	if opts.file == "" || opts.role == "" {
		return fmt.Errorf("--file and --role are required")
	}
	jd := opts.jd
	if opts.jdFile != "" {
		raw, err := os.ReadFile(opts.jdFile)
		if err != nil {
			return fmt.Errorf("read job description: %w", err)
		}
		jd = string(raw)
	}

	data, err := os.ReadFile(opts.file)
	if err != nil {
		return fmt.Errorf("read resume: %w", err)
	}
	doc, err := resume.NewParser(extract.New()).ParseFile(ctx, data, "", filepath.Base(opts.file))
	if err != nil {
		return err
	}

	cfg := config.Load()
	// Reports are not persisted from the CLI.
	cfg.DatabaseURL = ""
	cfg.Env = "local"
	app, err := bootstrap.BuildCore(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	// Seeded roles live in memory only; the CLI never writes a snapshot.
	retriever := roles.New(ctx, roles.Options{Embedder: roles.EmbedderByName(cfg.RolesEmbedder)})
	if _, err := retriever.SeedIfEmpty(ctx); err != nil {
		return err
	}
	app.AnalysesService.Roles = retriever

	report, err := app.AnalysesService.Analyze(ctx, analyses.Request{
		Document:       &doc,
		TargetRole:     opts.role,
		JobDescription: jd,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	if !opts.compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(report)
}
