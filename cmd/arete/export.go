package main

import (
	"fmt"
	"os"

	"github.com/jonathan/arete/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportResume   string
	exportFormat   string
	exportTemplate string
	exportOutput   string
	exportOffline  bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render a parsed resume as PDF, DOCX or HTML",
	Long:  "Render a parsed resume with one of the built-in templates. The output file defaults to <Name>_resume.<format>.",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportResume, "resume", "", "Path to parsed resume JSON (required)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", export.FormatPDF, "Output format: pdf, docx or html")
	exportCmd.Flags().StringVarP(&exportTemplate, "template", "t", "", "Template ID (default classic)")
	exportCmd.Flags().StringVarP(&exportOutput, "out", "o", "", "Output path")
	exportCmd.Flags().BoolVar(&exportOffline, "offline", false, "Categorize skills without calling the model")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	if err := export.ValidateFormat(exportFormat); err != nil {
		return err
	}
	if _, err := export.LookupTemplate(exportTemplate); err != nil {
		return err
	}
	data, err := readResumeFile(exportResume)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	categorizer, release, err := newCategorizer(ctx, exportOffline)
	if err != nil {
		return err
	}
	defer release()

	file, err := export.NewExporter(categorizer).Export(ctx, data, exportFormat, exportTemplate)
	if err != nil {
		return err
	}

	out := exportOutput
	if out == "" {
		out = file.Filename
	}
	if err := os.WriteFile(out, file.Content, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", out, len(file.Content))
	return nil
}
