package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jonathan/arete/internal/config"
	"github.com/jonathan/arete/internal/llm"
	"github.com/jonathan/arete/internal/storage"
	"github.com/jonathan/arete/internal/types"
	"github.com/spf13/cobra"
)

// newLLMClient builds the model client for the configured provider. Tests
// replace it with a scripted client.
var newLLMClient = func(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	apiKey := cfg.LLMAPIKey()
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required for provider %q (set ANTHROPIC_API_KEY or GEMINI_API_KEY)", cfg.LLMProvider)
	}
	return llm.NewClient(ctx, llm.ConfigFor(cfg.LLMProvider), apiKey)
}

// openFileStore returns S3 storage when a bucket is configured and an
// in-memory store otherwise.
func openFileStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	if cfg.Storage.Bucket == "" {
		logger.Warn("STORAGE_BUCKET not set, uploaded files are kept in memory")
		return storage.NewMemory(), nil
	}
	return storage.NewS3Store(ctx, storage.S3Config{
		Bucket:    cfg.Storage.Bucket,
		Endpoint:  cfg.Storage.Endpoint,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
	})
}

// readResumeFile loads resume JSON as written by parse-resume --out.
func readResumeFile(path string) (*types.ResumeData, error) {
	if path == "" {
		return nil, errors.New("--resume is required")
	}
	var data types.ResumeData
	if err := readJSON(path, &data); err != nil {
		return nil, fmt.Errorf("failed to read resume: %w", err)
	}
	return &data, nil
}

// writeJSONOutput writes v to path, or to the command's stdout when path is empty.
func writeJSONOutput(cmd *cobra.Command, path string, v any) error {
	data, err := marshalIndent(v)
	if err != nil {
		return err
	}
	if path == "" {
		_, err = cmd.OutOrStdout().Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
