package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/arete/internal/observability"
	"github.com/jonathan/arete/internal/skills"
	"github.com/spf13/cobra"
)

var (
	categorizeResume  string
	categorizeOffline bool
	categorizeJSON    bool
)

var categorizeCmd = &cobra.Command{
	Use:   "categorize [skill...]",
	Short: "Group skills into resume display categories",
	Long: `Group skills into the categories used on exported resumes.

Skills come from the arguments, from a parsed resume (--resume), or both.
Known skills are placed by the built-in tables; the rest go to the model in
one batch unless --offline is set, in which case they land in Other.`,
	RunE: runCategorize,
}

func init() {
	categorizeCmd.Flags().StringVar(&categorizeResume, "resume", "", "Path to parsed resume JSON")
	categorizeCmd.Flags().BoolVar(&categorizeOffline, "offline", false, "Do not call the model for unknown skills")
	categorizeCmd.Flags().BoolVar(&categorizeJSON, "json", false, "Print the categories as JSON")
	rootCmd.AddCommand(categorizeCmd)
}

func runCategorize(cmd *cobra.Command, args []string) error {
	groups := make(map[string][]string)
	if categorizeResume != "" {
		data, err := readResumeFile(categorizeResume)
		if err != nil {
			return err
		}
		groups = data.Skills.Groups()
	}
	if len(args) > 0 {
		groups["arguments"] = args
	}
	if len(groups) == 0 {
		return errors.New("provide skills as arguments or use --resume")
	}

	ctx := cmd.Context()
	categorizer, release, err := newCategorizer(ctx, categorizeOffline)
	if err != nil {
		return err
	}
	defer release()

	buckets, err := categorizer.Categorize(ctx, groups)
	if err != nil {
		return fmt.Errorf("failed to categorize skills: %w", err)
	}

	if categorizeJSON {
		return writeJSONOutput(cmd, "", buckets)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintSkillCategories(buckets)
	return nil
}

// newCategorizer returns a categorizer backed by the configured model, or a
// table-only one when offline. release closes the model client.
func newCategorizer(ctx context.Context, offline bool) (*skills.Categorizer, func(), error) {
	if offline {
		return skills.NewCategorizer(nil, logger), func() {}, nil
	}
	client, err := newLLMClient(ctx, appConfig)
	if err != nil {
		return nil, nil, err
	}
	release := func() { _ = client.Close() }
	return skills.NewCategorizer(skills.NewLLMClassifier(client), logger), release, nil
}
