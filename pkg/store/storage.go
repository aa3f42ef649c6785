package store

import (
	"context"

	"github.com/parallax-vis/parallax/pkg/common"
)

// DatasetStorage is the contract to the pre-extracted relationship
// dataset. The engine treats the store as an external collaborator:
// results are read-only snapshots, and every failure is contained at this
// boundary rather than propagated into the aggregation pipeline.
type DatasetStorage interface {
	// FetchRelationships returns the record set matching the filter. An
	// empty cluster or category set yields an empty result, not an error.
	// The MaxHops filter field is applied downstream after hop distances
	// are known; the store does not interpret it.
	FetchRelationships(ctx context.Context, filter common.FilterState) ([]common.Relationship, error)

	// SearchActors matches actor names by case-insensitive substring.
	// Minimum query length is enforced by the caller, not here.
	SearchActors(ctx context.Context, query string) ([]common.Entity, error)

	// GetDocument returns the metadata of one source document.
	GetDocument(ctx context.Context, docID int64) (common.Document, error)

	// GetDocumentText returns a document's full extracted text.
	GetDocumentText(ctx context.Context, docID int64) (string, error)

	// DeepSearch runs a full-text lookup for term across events,
	// documents, actors and document text. thorough widens the search to
	// document bodies at the cost of latency.
	DeepSearch(ctx context.Context, term string, thorough bool) (common.SearchResult, error)

	// ListTagClusters and ListCategories feed the filter controls.
	ListTagClusters(ctx context.Context) (map[int64]string, error)
	ListCategories(ctx context.Context) ([]string, error)
}
