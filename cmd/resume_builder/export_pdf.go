package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/rendering"
)

var exportPDFCmd = &cobra.Command{
	Use:   "export-pdf",
	Short: "Print a resume to PDF with headless Chrome",
	Long:  "Renders a resume document or saved snapshot with its template and prints it to an A4 PDF using a local Chrome or Chromium.",
	RunE:  runExportPDF,
}

var (
	exportPDFInput    string
	exportPDFOutput   string
	exportPDFTemplate string
	exportPDFTimeout  time.Duration
	exportPDFVerbose  bool
)

func init() {
	exportPDFCmd.Flags().StringVarP(&exportPDFInput, "in", "i", "", "Path to resume or snapshot JSON file (required)")
	exportPDFCmd.Flags().StringVarP(&exportPDFOutput, "out", "o", "", "Path to output PDF file (defaults to \"<name> - Resume.pdf\")")
	exportPDFCmd.Flags().StringVarP(&exportPDFTemplate, "template", "t", "", "Template id (defaults to the document's template)")
	exportPDFCmd.Flags().DurationVar(&exportPDFTimeout, "timeout", 30*time.Second, "Browser timeout")
	exportPDFCmd.Flags().BoolVarP(&exportPDFVerbose, "verbose", "v", false, "Log browser activity")

	if err := exportPDFCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(exportPDFCmd)
}

func runExportPDF(cmd *cobra.Command, _ []string) error {
	st, err := loadState(exportPDFInput)
	if err != nil {
		return err
	}
	registry, err := rendering.Builtin()
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	id := st.Resume.TemplateID
	if exportPDFTemplate != "" {
		id = exportPDFTemplate
	}
	html, err := renderOne(registry, st, id, false)
	if err != nil {
		return err
	}

	exporter := export.NewExporter(&export.ChromePrinter{Timeout: exportPDFTimeout, Verbose: exportPDFVerbose}, true)
	res, err := exporter.ExportDocument(cmd.Context(), html, rendering.DocumentTitle(st.Resume.PersonalInfo))
	if err != nil {
		return fmt.Errorf("failed to export PDF: %w", err)
	}

	out := exportPDFOutput
	if out == "" {
		out = res.Filename
	}
	if err := writeOutput(out, res.PDF); err != nil {
		return err
	}
	if exportPDFVerbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintResume(st)
		printer.PrintExport(out, res.Pages, len(res.PDF))
		return nil
	}
	_, _ = fmt.Fprintf(os.Stdout, "Wrote %s (%d pages, %d bytes)\n", out, res.Pages, len(res.PDF))
	return nil
}

