package pgx

import (
	"context"
	"fmt"
	"strings"

	"github.com/parallax-vis/parallax/pkg/common"
)

const (
	searchEventLimit    = 20
	searchDocumentLimit = 10
	searchActorLimit    = 15
	searchExcerptLimit  = 8
	excerptWindow       = 240
)

// DeepSearch runs a full-text lookup for one term across events,
// documents and actor names. With thorough set it additionally scans
// document bodies and extracts matching excerpts, which is the slow path.
func (s *DatasetDBStorage) DeepSearch(ctx context.Context, term string, thorough bool) (common.SearchResult, error) {
	result := common.SearchResult{Query: term}
	pattern := "%" + term + "%"

	rows, err := s.conn.Query(ctx, `
		SELECT id, actor, action, target
		FROM relationships
		WHERE actor ILIKE $1 OR action ILIKE $1 OR target ILIKE $1
		ORDER BY id
		LIMIT $2`,
		pattern, searchEventLimit,
	)
	if err != nil {
		return result, fmt.Errorf("failed to search events: %w", err)
	}
	for rows.Next() {
		var id int64
		var actor, action, target string
		if err := rows.Scan(&id, &actor, &action, &target); err != nil {
			rows.Close()
			return result, fmt.Errorf("failed to scan event hit: %w", err)
		}
		result.Events = append(result.Events, common.EventHit{
			ID:      id,
			Summary: fmt.Sprintf("%s %s %s", actor, action, target),
		})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return result, fmt.Errorf("failed to read event hits: %w", err)
	}

	rows, err = s.conn.Query(ctx, `
		SELECT doc_id, summary
		FROM documents
		WHERE summary ILIKE $1
		ORDER BY doc_id
		LIMIT $2`,
		pattern, searchDocumentLimit,
	)
	if err != nil {
		return result, fmt.Errorf("failed to search documents: %w", err)
	}
	for rows.Next() {
		var hit common.DocumentHit
		if err := rows.Scan(&hit.ID, &hit.Summary); err != nil {
			rows.Close()
			return result, fmt.Errorf("failed to scan document hit: %w", err)
		}
		result.Documents = append(result.Documents, hit)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return result, fmt.Errorf("failed to read document hits: %w", err)
	}

	rows, err = s.conn.Query(ctx, `
		SELECT DISTINCT name FROM (
			SELECT actor AS name FROM relationships
			UNION
			SELECT target AS name FROM relationships
		) names
		WHERE name ILIKE $1
		ORDER BY name
		LIMIT $2`,
		pattern, searchActorLimit,
	)
	if err != nil {
		return result, fmt.Errorf("failed to search actors: %w", err)
	}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return result, fmt.Errorf("failed to scan actor hit: %w", err)
		}
		result.Actors = append(result.Actors, name)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return result, fmt.Errorf("failed to read actor hits: %w", err)
	}

	if thorough {
		if err := s.searchExcerpts(ctx, term, &result); err != nil {
			return result, err
		}
	}

	return result, nil
}

// searchExcerpts scans document bodies and cuts a bounded window of text
// around each match.
func (s *DatasetDBStorage) searchExcerpts(ctx context.Context, term string, result *common.SearchResult) error {
	pattern := "%" + term + "%"
	rows, err := s.conn.Query(ctx, `
		SELECT doc_id, full_text, (SELECT count(*) FROM documents WHERE full_text ILIKE $1)
		FROM documents
		WHERE full_text ILIKE $1
		ORDER BY doc_id
		LIMIT $2`,
		pattern, searchExcerptLimit,
	)
	if err != nil {
		return fmt.Errorf("failed to search excerpts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var docID int64
		var text string
		if err := rows.Scan(&docID, &text, &result.TotalExcerpts); err != nil {
			return fmt.Errorf("failed to scan excerpt: %w", err)
		}
		result.Excerpts = append(result.Excerpts, common.Excerpt{
			DocID: docID,
			Text:  cutExcerpt(text, term),
		})
	}
	return rows.Err()
}

// cutExcerpt returns a window of text centered on the first
// case-insensitive occurrence of term.
func cutExcerpt(text, term string) string {
	idx := strings.Index(strings.ToLower(text), strings.ToLower(term))
	if idx < 0 {
		idx = 0
	}
	start := idx - excerptWindow/2
	if start < 0 {
		start = 0
	}
	end := start + excerptWindow
	if end > len(text) {
		end = len(text)
	}
	return strings.TrimSpace(text[start:end])
}
