package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/rendering"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the available resume templates",
	RunE:  runTemplates,
}

var templatesJSON bool

func init() {
	templatesCmd.Flags().BoolVar(&templatesJSON, "json", false, "Print templates as JSON")
	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(_ *cobra.Command, _ []string) error {
	registry, err := rendering.Builtin()
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}
	return printTemplates(os.Stdout, registry, templatesJSON)
}

func printTemplates(w io.Writer, registry *rendering.Registry, asJSON bool) error {
	styles := registry.Styles()
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(styles)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tDESCRIPTION")
	for _, s := range styles {
		id := s.ID
		if id == registry.DefaultID() {
			id += " (default)"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", id, s.Name, s.Category, s.Description)
	}
	return tw.Flush()
}
