package main

import (
	"errors"
	"fmt"

	"github.com/jonathan/arete/internal/ats"
	"github.com/jonathan/arete/internal/observability"
	"github.com/jonathan/arete/internal/types"
	"github.com/spf13/cobra"
)

var (
	scoreResume string
	scoreJob    string
	scoreJSON   bool
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Compute the ATS score of a resume against a job analysis",
	Long:  "Score a parsed resume against an analysed job posting. No model calls are made.",
	RunE:  runScore,
}

func init() {
	scoreCmd.Flags().StringVar(&scoreResume, "resume", "", "Path to parsed resume JSON (required)")
	scoreCmd.Flags().StringVar(&scoreJob, "job", "", "Path to job analysis JSON (required)")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "Print the score as JSON")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	resume, err := readResumeFile(scoreResume)
	if err != nil {
		return err
	}
	if scoreJob == "" {
		return errors.New("--job is required")
	}
	var job types.JobAnalysis
	if err := readJSON(scoreJob, &job); err != nil {
		return fmt.Errorf("failed to read job analysis: %w", err)
	}

	score := ats.Calculate(resume, &job)
	if scoreJSON {
		return writeJSONOutput(cmd, "", score)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintATSScore(&score)
	return nil
}
