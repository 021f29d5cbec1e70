package main

import (
	"fmt"

	"github.com/jonathan/arete/internal/github"
	"github.com/jonathan/arete/internal/observability"
	"github.com/spf13/cobra"
)

var (
	githubBaseURL string
	githubJSON    bool
)

var githubCmd = &cobra.Command{
	Use:   "github <username>",
	Short: "Summarize a GitHub profile for a resume",
	Long:  "Fetch a GitHub user's public repositories and derive metrics, the tech stack, highlights and resume bullet points.",
	Args:  cobra.ExactArgs(1),
	RunE:  runGitHub,
}

func init() {
	githubCmd.Flags().StringVar(&githubBaseURL, "api-url", github.DefaultBaseURL, "GitHub API base URL")
	githubCmd.Flags().BoolVar(&githubJSON, "json", false, "Print the analysis as JSON")
	rootCmd.AddCommand(githubCmd)
}

func runGitHub(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	client, err := newLLMClient(ctx, appConfig)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	gh := github.NewClient(github.WithBaseURL(githubBaseURL), github.WithToken(appConfig.GitHubToken))
	analysis, err := github.NewAnalyzer(gh, client, logger).Analyze(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to analyze GitHub profile: %w", err)
	}

	if githubJSON {
		return writeJSONOutput(cmd, "", analysis)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintGitHubAnalysis(analysis)
	return nil
}
