package pgx

import (
	"context"
	"fmt"

	"github.com/parallax-vis/parallax/pkg/common"
)

// FetchRelationships returns the filtered record set. An empty cluster or
// category selection means the user deselected everything, which is a
// valid empty result rather than an error.
func (s *DatasetDBStorage) FetchRelationships(ctx context.Context, filter common.FilterState) ([]common.Relationship, error) {
	if len(filter.ClusterIDs) == 0 || len(filter.Categories) == 0 {
		return []common.Relationship{}, nil
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 5000
	}

	query := `
		SELECT r.id, r.actor, r.action, r.target, r.ts, r.location, r.doc_id, r.tags, r.topic
		FROM relationships r
		JOIN documents d ON d.doc_id = r.doc_id
		WHERE r.cluster_id = ANY($1)
		  AND d.category = ANY($2)
		  AND (
			(r.ts IS NOT NULL AND substring(r.ts from 1 for 4)::int BETWEEN $3 AND $4)
			OR (r.ts IS NULL AND $5)
		  )`
	args := []any{filter.ClusterIDs, filter.Categories, filter.YearMin, filter.YearMax, filter.IncludeUndated}

	if filter.Keyword != "" {
		query += fmt.Sprintf(`
		  AND (r.actor ILIKE $%d OR r.action ILIKE $%d OR r.target ILIKE $%d OR r.location ILIKE $%d)`,
			len(args)+1, len(args)+1, len(args)+1, len(args)+1)
		args = append(args, "%"+filter.Keyword+"%")
	}

	query += fmt.Sprintf(`
		ORDER BY r.id
		LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch relationships: %w", err)
	}
	defer rows.Close()

	rels := make([]common.Relationship, 0)
	for rows.Next() {
		var rel common.Relationship
		if err := rows.Scan(
			&rel.ID, &rel.Actor, &rel.Action, &rel.Target,
			&rel.Timestamp, &rel.Location, &rel.DocID, &rel.Tags, &rel.Topic,
		); err != nil {
			return nil, fmt.Errorf("failed to scan relationship: %w", err)
		}
		rels = append(rels, rel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read relationships: %w", err)
	}
	return rels, nil
}

// SearchActors matches distinct actor and target names by substring.
func (s *DatasetDBStorage) SearchActors(ctx context.Context, query string) ([]common.Entity, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT name, count(*) AS connections
		FROM (
			SELECT actor AS name FROM relationships
			UNION ALL
			SELECT target AS name FROM relationships
		) names
		WHERE name ILIKE $1
		GROUP BY name
		ORDER BY connections DESC, name
		LIMIT 50`,
		"%"+query+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search actors: %w", err)
	}
	defer rows.Close()

	entities := make([]common.Entity, 0)
	for rows.Next() {
		var e common.Entity
		if err := rows.Scan(&e.Name, &e.Connections); err != nil {
			return nil, fmt.Errorf("failed to scan actor: %w", err)
		}
		entities = append(entities, e)
	}
	return entities, rows.Err()
}

// ListTagClusters returns the id to name mapping of the dataset's tag
// clusters.
func (s *DatasetDBStorage) ListTagClusters(ctx context.Context) (map[int64]string, error) {
	rows, err := s.conn.Query(ctx, `SELECT id, name FROM tag_clusters ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tag clusters: %w", err)
	}
	defer rows.Close()

	clusters := make(map[int64]string)
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("failed to scan tag cluster: %w", err)
		}
		clusters[id] = name
	}
	return clusters, rows.Err()
}

// ListCategories returns the distinct document categories.
func (s *DatasetDBStorage) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := s.conn.Query(ctx, `SELECT DISTINCT category FROM documents ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]string, 0)
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}
