package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"color_robotics_site/services/contactform"
	"color_robotics_site/services/variants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

const validVariants = `
variants:
  - key: plain
    title: Plain
    theme: {scroll_start: "#000000", scroll_end: "rgb(255,255,255)"}
    form:
      token: abc123
      fields:
        - {name: name, label: Name, kind: text, required: true}
        - {name: email, label: Email, kind: email, required: true}
`

func TestVariantsCheck(t *testing.T) {
	dir := t.TempDir()

	t.Run("Valid file", func(t *testing.T) {
		path := filepath.Join(dir, "ok.yaml")
		require.NoError(t, os.WriteFile(path, []byte(validVariants), 0644))

		out, err := runCommand(t, "variants", "check", "--file", path)
		require.NoError(t, err)
		assert.Contains(t, out, "plain")
		assert.Contains(t, out, "rgb(0,0,0) -> rgb(255,255,255)")
		assert.Contains(t, out, "1 variants OK")
	})

	t.Run("Invalid file", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("variants: []\n"), 0644))

		_, err := runCommand(t, "variants", "check", "--file", path)
		assert.Error(t, err)
	})

	t.Run("Missing flag", func(t *testing.T) {
		_, err := runCommand(t, "variants", "check")
		assert.Error(t, err)
	})
}

func TestExportLeadsRequiresDestination(t *testing.T) {
	_, err := runCommand(t, "export-leads")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--out or --upload")
}

func TestSmokeSubmissionPassesValidation(t *testing.T) {
	registry, err := variants.NewRegistry("", "color-robotics")
	require.NoError(t, err)

	for _, key := range registry.Keys() {
		v, err := registry.Get(key)
		require.NoError(t, err)
		form := smokeSubmission(v)
		assert.Empty(t, contactform.Check(v.FieldSet(), form), key)
	}
}

func TestExportsCommands(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("EXPORT_DIR", dir)
	t.Setenv("R2_ACCOUNT_ID", "")

	key := "exports/leads/2026/10/leads_20261018T090000Z.xlsx"
	stored := filepath.Join(dir, key)
	require.NoError(t, os.MkdirAll(filepath.Dir(stored), 0755))
	require.NoError(t, os.WriteFile(stored, []byte("workbook"), 0644))

	t.Run("Link", func(t *testing.T) {
		out, err := runCommand(t, "exports", "link", key)
		require.NoError(t, err)
		assert.Contains(t, out, stored)
	})

	t.Run("Fetch", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "leads.xlsx")
		out, err := runCommand(t, "exports", "fetch", key, "--out", dest)
		require.NoError(t, err)
		assert.Contains(t, out, "Wrote 8 bytes")

		got, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Equal(t, "workbook", string(got))
	})

	t.Run("Fetch missing key", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "missing.xlsx")
		_, err := runCommand(t, "exports", "fetch", "exports/leads/nope.xlsx", "-o", dest)
		assert.Error(t, err)
		_, statErr := os.Stat(dest)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("Delete", func(t *testing.T) {
		out, err := runCommand(t, "exports", "delete", key)
		require.NoError(t, err)
		assert.Contains(t, out, "Deleted "+key)
		_, statErr := os.Stat(stored)
		assert.True(t, os.IsNotExist(statErr))
	})
}
