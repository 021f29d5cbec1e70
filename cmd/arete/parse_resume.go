package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/arete/internal/ingestion"
	"github.com/jonathan/arete/internal/observability"
	"github.com/jonathan/arete/internal/parsing"
	"github.com/spf13/cobra"
)

var (
	parseResumeInput  string
	parseResumeGitHub string
	parseResumeOutput string
)

var parseResumeCmd = &cobra.Command{
	Use:   "parse-resume",
	Short: "Parse a PDF, DOCX or TXT resume into structured JSON",
	Long:  "Extract the text of a resume file and parse it into structured resume data with the configured model.",
	RunE:  runParseResume,
}

func init() {
	parseResumeCmd.Flags().StringVarP(&parseResumeInput, "in", "i", "", "Path to the resume file (required)")
	parseResumeCmd.Flags().StringVar(&parseResumeGitHub, "github", "", "GitHub profile URL to include in the parsed data")
	parseResumeCmd.Flags().StringVarP(&parseResumeOutput, "out", "o", "", "Path to write the parsed resume JSON")
	_ = parseResumeCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(parseResumeCmd)
}

func runParseResume(cmd *cobra.Command, _ []string) error {
	content, err := os.ReadFile(parseResumeInput)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	doc, err := ingestion.ExtractText(filepath.Base(parseResumeInput), content)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	client, err := newLLMClient(ctx, appConfig)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	data, err := parsing.NewResumeParser(client, logger).Parse(ctx, doc.Text, strings.TrimSpace(parseResumeGitHub))
	if err != nil {
		return fmt.Errorf("failed to parse resume: %w", err)
	}

	if parseResumeOutput != "" {
		if err := writeJSONOutput(cmd, parseResumeOutput, data); err != nil {
			return err
		}
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintResume(data)
	return nil
}
