package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/arete/internal/db"
	"github.com/jonathan/arete/internal/export"
	"github.com/jonathan/arete/internal/fetch"
	"github.com/jonathan/arete/internal/github"
	"github.com/jonathan/arete/internal/jobs"
	"github.com/jonathan/arete/internal/optimization"
	"github.com/jonathan/arete/internal/parsing"
	"github.com/jonathan/arete/internal/server"
	"github.com/jonathan/arete/internal/skills"
	"github.com/spf13/cobra"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the upload, job analysis, optimization, export and GitHub endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if servePort != 0 {
		appConfig.Port = servePort
	}

	client, err := newLLMClient(ctx, appConfig)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	store, err := db.Open(ctx, appConfig.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	files, err := openFileStore(ctx, appConfig)
	if err != nil {
		_ = store.Close()
		return fmt.Errorf("failed to open file storage: %w", err)
	}

	fetchOpts := fetch.DefaultOptions()
	fetchOpts.UseBrowser = appConfig.UseBrowser
	fetchOpts.Logger = logger

	gh := github.NewClient(github.WithToken(appConfig.GitHubToken))
	categorizer := skills.NewCategorizer(skills.NewLLMClassifier(client), logger)

	srv, err := server.New(appConfig, server.Deps{
		Store:     store,
		Files:     files,
		Parser:    parsing.NewResumeParser(client, logger),
		Jobs:      jobs.NewAnalyzer(client, fetchOpts, logger),
		Optimizer: optimization.NewOptimizer(client, logger, appConfig.OptimizeStepDelay.Std()),
		Exporter:  export.NewExporter(categorizer),
		GitHub:    github.NewAnalyzer(gh, client, logger),
		Logger:    logger,
	})
	if err != nil {
		_ = store.Close()
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}
