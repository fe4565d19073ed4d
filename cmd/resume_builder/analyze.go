package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/aiclient"
	"github.com/jonathan/resume-builder/internal/analysis"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/observability"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Send a resume to the AI backend for analysis",
	Long:  "Sends a resume document or saved snapshot, with an optional job description, to the AI backend and prints the analysis. The full plain-text report can be written with --report.",
	RunE:  runAnalyze,
}

var (
	analyzeInput   string
	analyzeJob     string
	analyzeJobFile string
	analyzeReport  string
	analyzeURL     string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeInput, "in", "i", "", "Path to resume or snapshot JSON file (required)")
	analyzeCmd.Flags().StringVar(&analyzeJob, "job", "", "Job description text")
	analyzeCmd.Flags().StringVar(&analyzeJobFile, "job-file", "", "Path to a file holding the job description")
	analyzeCmd.Flags().StringVarP(&analyzeReport, "report", "r", "", "Write the plain-text report to this path")
	analyzeCmd.Flags().StringVar(&analyzeURL, "url", "", "AI backend URL (overrides config and AI_SERVICE_URL)")

	if err := analyzeCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}
	analyzeCmd.MarkFlagsMutuallyExclusive("job", "job-file")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if analyzeURL != "" {
		cfg.AI.URL = analyzeURL
	}

	st, err := loadState(analyzeInput)
	if err != nil {
		return err
	}
	if !st.Resume.HasContent() {
		return fmt.Errorf("resume has no content to analyse: %s", analyzeInput)
	}

	jd := analyzeJob
	if analyzeJobFile != "" {
		data, err := os.ReadFile(analyzeJobFile)
		if err != nil {
			return fmt.Errorf("failed to read job description: %w", err)
		}
		jd = strings.TrimSpace(string(data))
	}

	timeout := cfg.AI.Timeout.Std()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	result, err := aiclient.New(cfg.AI.URL, timeout).Analyze(ctx, st.Resume, jd)
	if err != nil {
		return fmt.Errorf("analysis failed: %s", aiclient.DisplayMessage(err, aiclient.FallbackAnalyze))
	}
	observability.NewPrinter(os.Stdout).PrintAnalysis(result)

	if analyzeReport == "" {
		return nil
	}
	report, err := analysis.FormatReport(*result, time.Now())
	if err != nil {
		return err
	}
	if err := writeOutput(analyzeReport, []byte(report)); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(os.Stdout, "Report: %s\n", analyzeReport)
	return nil
}
