// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"github.com/pdiddy/agent-catalog/pkg/types"
)

// Summary holds counts from a scan run. Skipped counts files whose
// contents could not be read plus directory subtrees that could not be
// listed; the individual files inside a pruned subtree are unknowable
// and are not counted.
type Summary struct {
	Scanned int
	Skipped int
}

// Total returns the number of files visited.
func (s Summary) Total() int {
	return s.Scanned + s.Skipped
}

// ScanAll enumerates every section directory in declared order and builds
// one MetadataRecord per readable text file. A missing section directory
// contributes no records. Files that cannot be read, or whose contents
// are not valid UTF-8, are counted as skipped and excluded from the
// result without any per-file diagnostics.
func ScanAll(cfg types.ScanConfig) ([]types.MetadataRecord, Summary, error) {
	var (
		records []types.MetadataRecord
		summary Summary
	)

	for _, section := range types.Sections {
		dir := filepath.Join(cfg.Root, cfg.AssetsDir, string(section))
		recs, skipped, err := scanSection(cfg.Root, string(section), dir)
		if err != nil {
			return nil, Summary{}, err
		}
		records = append(records, recs...)
		summary.Scanned += len(recs)
		summary.Skipped += skipped
	}

	return records, summary, nil
}

// scanSection walks dir recursively and extracts metadata from each file,
// in sorted path order. Record paths are relative to root, slash-separated.
func scanSection(root, section, dir string) ([]types.MetadataRecord, int, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, 0, nil
	}

	var (
		paths   []string
		skipped int
	)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees contribute no records; each counts
			// once toward the skip total.
			skipped++
			return nil
		}
		if d.IsDir() {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	sort.Strings(paths)

	var records []types.MetadataRecord
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil || !utf8.Valid(data) {
			skipped++
			continue
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}

		title, description := Extract(string(data))
		records = append(records, types.MetadataRecord{
			Path:        filepath.ToSlash(rel),
			Type:        section,
			Filename:    filepath.Base(path),
			Title:       title,
			Description: description,
		})
	}

	return records, skipped, nil
}
