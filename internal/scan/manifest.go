// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/agent-catalog/pkg/types"
)

// timeNow is overridden in tests for a deterministic generated_at.
var timeNow = time.Now

// Run scans all sections and writes the metadata manifest to cfg.OutFile.
// Progress is reported to w. A write failure is fatal; unreadable input
// files are not.
func Run(cfg types.ScanConfig, w io.Writer) (Summary, error) {
	records, summary, err := ScanAll(cfg)
	if err != nil {
		return Summary{}, err
	}
	if records == nil {
		// items must serialize as an array even when the tree is empty.
		records = []types.MetadataRecord{}
	}

	manifest := types.Manifest{
		GeneratedAt: timeNow().UTC().Format(time.RFC3339),
		Items:       records,
	}

	outPath := filepath.Join(cfg.Root, cfg.OutFile)
	if err := WriteManifest(outPath, manifest); err != nil {
		return Summary{}, err
	}

	fmt.Fprintf(w, "Wrote %s with %d entries\n", outPath, len(manifest.Items))
	if summary.Skipped > 0 {
		fmt.Fprintf(w, "skipped %d unreadable path(s)\n", summary.Skipped)
	}
	return summary, nil
}

// WriteManifest serializes the manifest to path as indented JSON,
// creating the destination directory if needed. Non-ASCII and HTML
// characters are written as-is rather than escaped.
func WriteManifest(path string, manifest types.Manifest) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(manifest); err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}

	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// ReadManifest loads a manifest previously written by WriteManifest.
func ReadManifest(path string) (types.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Manifest{}, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	var manifest types.Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return types.Manifest{}, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return manifest, nil
}
