// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/agent-catalog/pkg/types"
)

// QueryOptions holds parameters for catalog queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string over title, description,
	// and filename.
	Query string

	// Type filters by section: prompts, toolsets, or chatmodes.
	Type string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Type == ""
}

// Retrieve queries the catalog with optional full-text search and a
// section filter. Full-text results are ranked by relevance; filter-only
// results keep the manifest ordering (section declaration order, then path).
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]types.MetadataRecord, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT r.path, r.type, r.filename, r.title, r.description
			FROM records_fts
			JOIN records r ON r.rowid = records_fts.rowid
			WHERE records_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT r.path, r.type, r.filename, r.title, r.description
			FROM records r
			WHERE 1=1`)
	}

	if opts.Type != "" {
		qb.WriteString(` AND r.type = ?`)
		args = append(args, opts.Type)
	}

	if useFTS {
		qb.WriteString(` ORDER BY records_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY ` + sectionOrderExpr() + `, r.path`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var results []types.MetadataRecord
	for rows.Next() {
		var rec types.MetadataRecord
		if err := rows.Scan(&rec.Path, &rec.Type, &rec.Filename, &rec.Title, &rec.Description); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		results = append(results, rec)
	}

	return results, rows.Err()
}

// sectionOrderExpr builds a CASE expression ranking types by their
// declared section order, so filter-only queries preserve manifest order.
func sectionOrderExpr() string {
	var b strings.Builder
	b.WriteString(`CASE r.type`)
	for i, section := range types.Sections {
		fmt.Fprintf(&b, ` WHEN '%s' THEN %d`, section, i)
	}
	fmt.Fprintf(&b, ` ELSE %d END`, len(types.Sections))
	return b.String()
}
