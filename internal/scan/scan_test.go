// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/agent-catalog/pkg/types"
)

func writeAsset(t *testing.T, root, section, name, content string) {
	t.Helper()
	dir := filepath.Join(root, ".github", section)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, filepath.Dir(name)), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func testScanConfig(root string) types.ScanConfig {
	return types.ScanConfig{
		Root:      root,
		AssetsDir: ".github",
		OutFile:   "build/agent_metadata.json",
	}
}

func TestScanAll(t *testing.T) {
	root := t.TempDir()
	writeAsset(t, root, "prompts", "review.md", "# Code Review\n\nChecks a diff for defects.")
	writeAsset(t, root, "prompts", "nested/deep.md", "# Deep Prompt\n\nLives in a subdirectory.")
	writeAsset(t, root, "chatmodes", "planner.md", "Planner mode only")
	// No toolsets directory at all.

	records, summary, err := ScanAll(testScanConfig(root))
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, 3, summary.Scanned)
	assert.Equal(t, 0, summary.Skipped)

	// Per-section sorted path order, sections in declared order.
	assert.Equal(t, ".github/prompts/nested/deep.md", records[0].Path)
	assert.Equal(t, ".github/prompts/review.md", records[1].Path)
	assert.Equal(t, ".github/chatmodes/planner.md", records[2].Path)

	assert.Equal(t, "prompts", records[0].Type)
	assert.Equal(t, "chatmodes", records[2].Type)
	assert.Equal(t, "review.md", records[1].Filename)
	assert.Equal(t, "Code Review", records[1].Title)
	assert.Equal(t, "Checks a diff for defects.", records[1].Description)
	assert.Equal(t, "Planner mode only", records[2].Title)
	assert.Equal(t, "Planner mode only", records[2].Description)
}

func TestScanAllSkipsBinaryFiles(t *testing.T) {
	root := t.TempDir()
	writeAsset(t, root, "prompts", "good.md", "# Good\n\nReadable.")

	binPath := filepath.Join(root, ".github", "prompts", "image.png")
	require.NoError(t, os.WriteFile(binPath, []byte{0x89, 0x50, 0x4e, 0x47, 0xff, 0xfe}, 0o644))

	records, summary, err := ScanAll(testScanConfig(root))
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "good.md", records[0].Filename)
	assert.Equal(t, 1, summary.Skipped)
}

func TestScanAllIncludesEmptyFiles(t *testing.T) {
	root := t.TempDir()
	writeAsset(t, root, "toolsets", "empty.md", "")

	records, summary, err := ScanAll(testScanConfig(root))
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "", records[0].Title)
	assert.Equal(t, "", records[0].Description)
	assert.Equal(t, 0, summary.Skipped)
}

func TestScanAllMissingSectionsYieldNoRecords(t *testing.T) {
	root := t.TempDir()

	records, summary, err := ScanAll(testScanConfig(root))
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, 0, summary.Total())
}

func TestScanAllDeterministicOrdering(t *testing.T) {
	root := t.TempDir()
	writeAsset(t, root, "prompts", "b.md", "# B")
	writeAsset(t, root, "prompts", "a.md", "# A")
	writeAsset(t, root, "toolsets", "t.md", "# T")
	writeAsset(t, root, "chatmodes", "c.md", "# C")

	first, _, err := ScanAll(testScanConfig(root))
	require.NoError(t, err)
	second, _, err := ScanAll(testScanConfig(root))
	require.NoError(t, err)

	assert.Equal(t, first, second)

	titles := make([]string, len(first))
	for i, r := range first {
		titles[i] = r.Title
	}
	assert.Equal(t, []string{"A", "B", "T", "C"}, titles)
}

func TestRunWritesManifest(t *testing.T) {
	fixed := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return fixed }
	t.Cleanup(func() { timeNow = time.Now })

	root := t.TempDir()
	writeAsset(t, root, "prompts", "résumé.md", "# Résumé — écriture\n\nRédige un <résumé>.")

	var out bytes.Buffer
	summary, err := Run(testScanConfig(root), &out)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Scanned)
	assert.Contains(t, out.String(), "with 1 entries")

	path := filepath.Join(root, "build", "agent_metadata.json")
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var manifest types.Manifest
	require.NoError(t, json.Unmarshal(data, &manifest))
	assert.Equal(t, "2026-08-30T12:00:00Z", manifest.GeneratedAt)
	require.Len(t, manifest.Items, 1)
	assert.Equal(t, "Résumé — écriture", manifest.Items[0].Title)

	// Non-ASCII and HTML characters are written as-is.
	raw := string(data)
	assert.Contains(t, raw, "Résumé")
	assert.Contains(t, raw, "<résumé>")
	assert.NotContains(t, raw, `\u`)
}

func TestRunEmptyTreeWritesEmptyItems(t *testing.T) {
	root := t.TempDir()

	var out bytes.Buffer
	summary, err := Run(testScanConfig(root), &out)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Total())

	data, err := os.ReadFile(filepath.Join(root, "build", "agent_metadata.json"))
	require.NoError(t, err)

	// items is an array even when no section directory exists.
	raw := string(data)
	assert.Contains(t, raw, `"items": []`)
	assert.NotContains(t, raw, `"items": null`)

	var manifest types.Manifest
	require.NoError(t, json.Unmarshal(data, &manifest))
	assert.NotNil(t, manifest.Items)
	assert.Empty(t, manifest.Items)
}

func TestScanAllCountsUnreadableSubtree(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}

	root := t.TempDir()
	writeAsset(t, root, "prompts", "good.md", "# Good\n\nReadable.")
	writeAsset(t, root, "prompts", "locked/hidden.md", "# Hidden")

	lockedDir := filepath.Join(root, ".github", "prompts", "locked")
	require.NoError(t, os.Chmod(lockedDir, 0o000))
	t.Cleanup(func() { os.Chmod(lockedDir, 0o755) })

	records, summary, err := ScanAll(testScanConfig(root))
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "good.md", records[0].Filename)
	assert.Equal(t, 1, summary.Skipped)
}

func TestRunCreatesOutputDirectory(t *testing.T) {
	root := t.TempDir()
	writeAsset(t, root, "prompts", "p.md", "# P")

	cfg := testScanConfig(root)
	cfg.OutFile = "build/nested/agent_metadata.json"

	var out bytes.Buffer
	_, err := Run(cfg, &out)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(root, "build", "nested", "agent_metadata.json"))
	assert.NoError(t, err)
}

func TestReadManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "manifest.json")

	want := types.Manifest{
		GeneratedAt: "2026-08-30T12:00:00Z",
		Items: []types.MetadataRecord{
			{Path: ".github/prompts/a.md", Type: "prompts", Filename: "a.md", Title: "A", Description: "Alpha."},
		},
	}
	require.NoError(t, WriteManifest(path, want))

	got, err := ReadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReadManifestMissingFile(t *testing.T) {
	_, err := ReadManifest(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "reading manifest"))
}
