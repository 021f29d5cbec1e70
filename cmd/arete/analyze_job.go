package main

import (
	"fmt"
	"os"

	"github.com/jonathan/arete/internal/fetch"
	"github.com/jonathan/arete/internal/jobs"
	"github.com/jonathan/arete/internal/observability"
	"github.com/jonathan/arete/internal/types"
	"github.com/spf13/cobra"
)

var (
	analyzeJobInput  string
	analyzeJobURL    string
	analyzeJobOutput string
)

var analyzeJobCmd = &cobra.Command{
	Use:   "analyze-job",
	Short: "Extract skills and requirements from a job posting",
	Long:  "Analyse a job posting from a text file (--in) or a URL (--url) and print the structured analysis.",
	RunE:  runAnalyzeJob,
}

func init() {
	analyzeJobCmd.Flags().StringVarP(&analyzeJobInput, "in", "i", "", "Path to a text file with the posting")
	analyzeJobCmd.Flags().StringVar(&analyzeJobURL, "url", "", "URL of the posting to fetch")
	analyzeJobCmd.Flags().StringVarP(&analyzeJobOutput, "out", "o", "", "Path to write the analysis JSON")
	analyzeJobCmd.MarkFlagsMutuallyExclusive("in", "url")
	rootCmd.AddCommand(analyzeJobCmd)
}

func runAnalyzeJob(cmd *cobra.Command, _ []string) error {
	req := &types.JobAnalysisRequest{JobURL: analyzeJobURL}
	if analyzeJobInput != "" {
		content, err := os.ReadFile(analyzeJobInput)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}
		req.JobText = string(content)
	}

	ctx := cmd.Context()
	client, err := newLLMClient(ctx, appConfig)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	fetchOpts := fetch.DefaultOptions()
	fetchOpts.UseBrowser = appConfig.UseBrowser
	analyzer := jobs.NewAnalyzer(client, fetchOpts, logger)

	text, err := analyzer.JobText(ctx, req)
	if err != nil {
		return err
	}
	analysis, err := analyzer.Analyze(ctx, text)
	if err != nil {
		return fmt.Errorf("failed to analyze job: %w", err)
	}

	if analyzeJobOutput != "" {
		if err := writeJSONOutput(cmd, analyzeJobOutput, analysis); err != nil {
			return err
		}
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintJobAnalysis(analysis)
	return nil
}
