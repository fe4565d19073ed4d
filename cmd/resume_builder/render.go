package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/store"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a resume to HTML",
	Long:  "Renders a resume document or saved snapshot to a standalone HTML print document with one template, or with every template when --all is set.",
	RunE:  runRender,
}

var (
	renderInput    string
	renderTemplate string
	renderOutput   string
	renderAll      bool
	renderFragment bool
	renderVerbose  bool
)

func init() {
	renderCmd.Flags().StringVarP(&renderInput, "in", "i", "", "Path to resume or snapshot JSON file (required)")
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", "", "Template id (defaults to the document's template)")
	renderCmd.Flags().StringVarP(&renderOutput, "out", "o", "", "Output HTML file, or output directory with --all (required)")
	renderCmd.Flags().BoolVar(&renderAll, "all", false, "Render every registered template into the output directory")
	renderCmd.Flags().BoolVar(&renderFragment, "fragment", false, "Write the bare resume fragment instead of a print document")
	renderCmd.Flags().BoolVarP(&renderVerbose, "verbose", "v", false, "Print a summary of the resume")

	if err := renderCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}
	if err := renderCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(renderCmd)
}

func runRender(_ *cobra.Command, _ []string) error {
	st, err := loadState(renderInput)
	if err != nil {
		return err
	}
	if renderVerbose {
		observability.NewPrinter(os.Stdout).PrintResume(st)
	}
	registry, err := rendering.Builtin()
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	if renderAll {
		paths, err := renderAllTemplates(registry, st, renderOutput, renderFragment)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(os.Stdout, "Rendered %d templates into %s\n", len(paths), renderOutput)
		return nil
	}

	id := st.Resume.TemplateID
	if renderTemplate != "" {
		id = renderTemplate
	}
	if !registry.Has(id) {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: unknown template %q, using %q\n", id, registry.ResolveID(id))
	}
	html, err := renderOne(registry, st, id, renderFragment)
	if err != nil {
		return err
	}
	if err := writeOutput(renderOutput, []byte(html)); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(os.Stdout, "Rendered %s template to %s\n", registry.ResolveID(id), renderOutput)
	return nil
}

// renderOne renders st with the template id (resolved through the registry).
func renderOne(registry *rendering.Registry, st store.State, id string, fragment bool) (string, error) {
	doc := st.Resume
	doc.TemplateID = registry.ResolveID(id)
	if fragment {
		return registry.Resolve(doc.TemplateID).Render(doc, st.Formatting, st.SectionOrder)
	}
	return registry.RenderPrintable(doc, st.Formatting, st.SectionOrder)
}

// renderAllTemplates writes <dir>/<id>.html for every registered template,
// rendering in parallel. It returns the written paths in registry order.
func renderAllTemplates(registry *rendering.Registry, st store.State, dir string, fragment bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	styles := registry.Styles()
	paths := make([]string, len(styles))

	var g errgroup.Group
	g.SetLimit(4)
	for i, style := range styles {
		g.Go(func() error {
			html, err := renderOne(registry, st, style.ID, fragment)
			if err != nil {
				return fmt.Errorf("render %s: %w", style.ID, err)
			}
			path := filepath.Join(dir, style.ID+".html")
			if err := os.WriteFile(path, []byte(html), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

func writeOutput(path string, data []byte) error {
	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
