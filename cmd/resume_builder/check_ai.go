package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/aiclient"
	"github.com/jonathan/resume-builder/internal/config"
)

var checkAICmd = &cobra.Command{
	Use:   "check-ai",
	Short: "Check that the AI backend is reachable",
	RunE:  runCheckAI,
}

var (
	checkAIURL     string
	checkAITimeout time.Duration
)

func init() {
	checkAICmd.Flags().StringVar(&checkAIURL, "url", "", "AI backend URL (overrides config and AI_SERVICE_URL)")
	checkAICmd.Flags().DurationVar(&checkAITimeout, "timeout", 5*time.Second, "Request timeout")
	rootCmd.AddCommand(checkAICmd)
}

func runCheckAI(_ *cobra.Command, _ []string) error {
	url := checkAIURL
	if url == "" {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		url = cfg.AI.URL
	}

	ctx, cancel := context.WithTimeout(context.Background(), checkAITimeout)
	defer cancel()

	payload, err := aiclient.New(url, checkAITimeout).Health(ctx)
	if err != nil {
		return fmt.Errorf("AI service at %s is unhealthy: %s", url, aiclient.DisplayMessage(err, "unhealthy"))
	}
	_, _ = fmt.Fprintf(os.Stdout, "AI service at %s is healthy\n%s\n", url, payload)
	return nil
}
