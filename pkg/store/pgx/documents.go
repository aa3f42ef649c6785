package pgx

import (
	"context"
	"fmt"

	"github.com/parallax-vis/parallax/pkg/common"
)

// GetDocument returns one document's metadata.
func (s *DatasetDBStorage) GetDocument(ctx context.Context, docID int64) (common.Document, error) {
	var doc common.Document
	err := s.conn.QueryRow(ctx, `
		SELECT doc_id, category, summary
		FROM documents
		WHERE doc_id = $1`,
		docID,
	).Scan(&doc.ID, &doc.Category, &doc.Summary)
	if err != nil {
		return common.Document{}, fmt.Errorf("failed to get document %d: %w", docID, err)
	}
	return doc, nil
}

// GetDocumentText returns a document's full extracted text.
func (s *DatasetDBStorage) GetDocumentText(ctx context.Context, docID int64) (string, error) {
	var text string
	err := s.conn.QueryRow(ctx, `
		SELECT full_text
		FROM documents
		WHERE doc_id = $1`,
		docID,
	).Scan(&text)
	if err != nil {
		return "", fmt.Errorf("failed to get document text %d: %w", docID, err)
	}
	return text, nil
}
