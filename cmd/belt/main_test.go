package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"utilitybelt/internal/logging"
	"utilitybelt/pkg/belt"
)

// run executes the belt command tree with args and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		belt.SetByReferenceKeys()
		logging.Reset()
	})

	if !containsFlag(args, "-c", "--config") {
		args = append([]string{"--config", filepath.Join(t.TempDir(), "absent.yaml")}, args...)
	}

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func containsFlag(args []string, names ...string) bool {
	for _, a := range args {
		for _, n := range names {
			if a == n {
				return true
			}
		}
	}
	return false
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const sampleYAML = `
name: report
count: 3
ratio: 0.5
active: true
missing: null
created: 2021-01-04
quoted: "2021-01-04"
tags: [a, 1]
owner:
  email: a@b.com
`

func TestKindCmd(t *testing.T) {
	path := writeFile(t, "doc.yaml", sampleYAML)

	out, err := run(t, "", "kind", path)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))

	fields := got["plain-record"].(map[string]any)
	assert.Equal(t, "string", fields["name"])
	assert.Equal(t, "number", fields["count"])
	assert.Equal(t, "number", fields["ratio"])
	assert.Equal(t, "boolean", fields["active"])
	assert.Equal(t, "null", fields["missing"])
	assert.Equal(t, "date", fields["created"])
	assert.Equal(t, "string", fields["quoted"])
	assert.Equal(t, map[string]any{"array": []any{"string", "number"}}, fields["tags"])
	assert.Equal(t, map[string]any{"plain-record": map[string]any{"email": "string"}}, fields["owner"])
}

func TestKindCmd_JSONFromStdin(t *testing.T) {
	out, err := run(t, `[1, "x", {"a": []}]`, "kind", "-")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, []any{"number", "string", map[string]any{"plain-record": map[string]any{"a": map[string]any{"array": []any{}}}}}, got["array"])
}

func TestKindCmd_MissingFile(t *testing.T) {
	_, err := run(t, "", "kind", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

const cloneYAML = `
name: report
tags: [a, 1, [b, {c: null}]]
owner:
  email: a@b.com
  roles: [admin]
`

func TestCloneCmd(t *testing.T) {
	path := writeFile(t, "doc.yaml", cloneYAML)

	out, err := run(t, "", "clone", path)
	require.NoError(t, err)

	var got, want map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.NoError(t, yaml.Unmarshal([]byte(cloneYAML), &want))
	assert.Equal(t, want, got)
}

func TestCloneCmd_UsesConfiguredKeys(t *testing.T) {
	cfg := writeFile(t, "belt.yaml", "clone:\n  by_reference_keys: [owner]\n")
	doc := writeFile(t, "doc.yaml", sampleYAML)

	_, err := run(t, "", "--config", cfg, "clone", doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"owner"}, belt.ByReferenceKeys())
}

func TestCheckCmd(t *testing.T) {
	out, err := run(t, "", "check", "2.34", "a@b.com", "/Date(0)/")
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Len(t, got, 3)
	assert.Equal(t, true, got[0]["numeric"])
	assert.Equal(t, false, got[0]["email"])
	assert.Equal(t, true, got[1]["email"])
	assert.Equal(t, true, got[2]["msdate"])
	assert.Equal(t, false, got[2]["empty"])
}

func TestWeekCmd(t *testing.T) {
	out, err := run(t, "", "week", "2021-01-01", "2021-01-04T09:00:00Z", "not-a-date")
	require.NoError(t, err)
	assert.Equal(t, "2021-01-01\t53\n2021-01-04T09:00:00Z\t1\nnot-a-date\t-1\n", out)
}

func TestMatchCmd(t *testing.T) {
	out, err := run(t, "", "match", "email", "a@b.com", "not-an-email")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com\ttrue\nnot-an-email\tfalse\n", out)

	_, err = run(t, "", "match", "nonexistent", "x")
	require.ErrorIs(t, err, belt.ErrNotFound)
}

func TestPatternsCmd_WithConfig(t *testing.T) {
	cfg := writeFile(t, "belt.yaml", "patterns:\n  zip: '^\\d{5}$'\n")

	out, err := run(t, "", "--config", cfg, "patterns")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "email\t"))
	assert.Equal(t, "zip\t^\\d{5}$", lines[1])

	out, err = run(t, "", "--config", cfg, "match", "zip", "12345")
	require.NoError(t, err)
	assert.Equal(t, "12345\ttrue\n", out)
}

func TestInvalidConfig(t *testing.T) {
	cfg := writeFile(t, "belt.yaml", "logging:\n  level: loud\n")
	_, err := run(t, "", "--config", cfg, "patterns")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestHTMLCmd(t *testing.T) {
	page := writeFile(t, "page.html", "<p>hi <b>there</b></p>\n")

	out, err := run(t, "", "html", "--skip-whitespace", page)
	require.NoError(t, err)
	assert.Contains(t, out, "\n      element p\n")
	assert.Contains(t, out, "\n        text-node \"hi \"\n")
	assert.Contains(t, out, "# text-node: 2\n")
	assert.NotContains(t, out, "whitespace-text-node")
}

func TestCommandsLogThroughCLICategory(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "belt.log")
	cfg := writeFile(t, "belt.yaml", "logging:\n  debug_mode: true\n  level: debug\n  file: "+logFile+"\n")
	doc := writeFile(t, "doc.yaml", sampleYAML)

	_, err := run(t, "", "--config", cfg, "kind", doc)
	require.NoError(t, err)
	_, err = run(t, "", "--config", cfg, "match", "nonexistent", "x")
	require.ErrorIs(t, err, belt.ErrNotFound)

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	log := string(data)
	assert.Contains(t, log, "Running belt kind")
	assert.Contains(t, log, "Document root is plain-record")
	assert.Contains(t, log, doc)
	assert.Contains(t, log, "Unknown pattern")
}
