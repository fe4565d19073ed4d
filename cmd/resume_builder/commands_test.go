package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/snapshot"
)

func TestRenderAllTemplates(t *testing.T) {
	registry, err := rendering.Builtin()
	require.NoError(t, err)
	st, err := loadState(writeFile(t, "resume.json", sampleResume))
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "out")
	paths, err := renderAllTemplates(registry, st, dir, false)
	require.NoError(t, err)
	require.Len(t, paths, len(registry.Styles()))

	for i, style := range registry.Styles() {
		assert.Equal(t, filepath.Join(dir, style.ID+".html"), paths[i])

		f, err := os.Open(paths[i])
		require.NoError(t, err)
		doc, err := goquery.NewDocumentFromReader(f)
		f.Close()
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe - Resume", doc.Find("title").Text(), style.ID)
		assert.Contains(t, doc.Text(), "Acme", style.ID)
	}
}

func TestRenderOne_UnknownTemplateFallsBack(t *testing.T) {
	registry, err := rendering.Builtin()
	require.NoError(t, err)
	st, err := loadState(writeFile(t, "resume.json", sampleResume))
	require.NoError(t, err)

	unknown, err := renderOne(registry, st, "no-such-template", true)
	require.NoError(t, err)
	def, err := renderOne(registry, st, registry.DefaultID(), true)
	require.NoError(t, err)
	assert.Equal(t, def, unknown)
}

func TestPrintTemplates(t *testing.T) {
	registry, err := rendering.Builtin()
	require.NoError(t, err)

	var table bytes.Buffer
	require.NoError(t, printTemplates(&table, registry, false))
	assert.Contains(t, table.String(), "modern (default)")
	assert.Contains(t, table.String(), "Two Column")

	var out bytes.Buffer
	require.NoError(t, printTemplates(&out, registry, true))
	var styles []rendering.Style
	require.NoError(t, json.Unmarshal(out.Bytes(), &styles))
	assert.Len(t, styles, 18)
}

func TestOpenRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		repo, closeRepo, err := openRepository(ctx, config.StorageConfig{Driver: config.DriverMemory})
		require.NoError(t, err)
		defer closeRepo()
		assert.IsType(t, &snapshot.MemoryRepository{}, repo)
	})

	t.Run("sqlite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "snapshots.db")
		repo, closeRepo, err := openRepository(ctx, config.StorageConfig{Driver: config.DriverSQLite, SQLitePath: path})
		require.NoError(t, err)
		defer closeRepo()

		require.NoError(t, repo.Save(ctx, "k", []byte(`{"version":1}`)))
		data, err := repo.Load(ctx, "k")
		require.NoError(t, err)
		assert.JSONEq(t, `{"version":1}`, string(data))
	})

	t.Run("unknown", func(t *testing.T) {
		_, _, err := openRepository(ctx, config.StorageConfig{Driver: "etcd"})
		assert.Error(t, err)
	})
}

func TestValidateCommand_Binary(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "validate")
	output, err := cmd.CombinedOutput()
	assert.Error(t, err)
	assert.Contains(t, string(output), "required flag(s) \"in\" not set")

	cmd = exec.Command(binaryPath, "validate", "--in", writeFile(t, "resume.json", sampleResume))
	output, err = cmd.CombinedOutput()
	require.NoError(t, err, string(output))
	assert.Contains(t, string(output), "Validation passed")

	cmd = exec.Command(binaryPath, "validate", "--in", writeFile(t, "bad.json", `{"skills":{"technical":["Go","Go"]}}`))
	output, err = cmd.CombinedOutput()
	assert.Error(t, err)
	assert.Contains(t, string(output), "skills.technical")
}

func TestRenderCommand_Binary(t *testing.T) {
	binaryPath := getBinaryPath(t)
	out := filepath.Join(t.TempDir(), "resume.html")

	cmd := exec.Command(binaryPath, "render", "--in", writeFile(t, "resume.json", sampleResume), "--out", out)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, string(output))
	assert.Contains(t, string(output), "Rendered classic template")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<!DOCTYPE html>")
}
