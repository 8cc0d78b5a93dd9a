package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/healthassistant/hub/internal/models"
)

// DocumentsRepository handles data access for the documents table: the
// embedded medical corpus chunks that similarity search runs over.
type DocumentsRepository struct {
	db *pgxpool.Pool
}

// NewDocumentsRepository creates a new documents repository.
func NewDocumentsRepository(db *pgxpool.Pool) *DocumentsRepository {
	return &DocumentsRepository{db: db}
}

// Insert stores one embedded corpus chunk. sourceID names the originating
// document, chunkIndex its position within that document.
func (r *DocumentsRepository) Insert(
	ctx context.Context, sourceID string, chunkIndex int, content string, embedding []float32,
) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO documents (id, source_id, chunk_index, content, embedding)
		VALUES ($1, $2, $3, $4, $5)`,
		uuid.Must(uuid.NewV7()), sourceID, chunkIndex, content, pgvector.NewVector(embedding),
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}

	return nil
}

// DeleteBySourceID removes all chunks of one source document, so a corpus
// file can be re-ingested without duplicates.
func (r *DocumentsRepository) DeleteBySourceID(ctx context.Context, sourceID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM documents WHERE source_id = $1`, sourceID)
	if err != nil {
		return fmt.Errorf("delete documents by source: %w", err)
	}

	return nil
}

// NearestByEmbedding returns the k corpus passages closest to the query
// embedding by cosine distance, most relevant first. Rank mirrors the result
// position: 0-based, relevance-descending.
func (r *DocumentsRepository) NearestByEmbedding(
	ctx context.Context, queryEmbedding []float32, k int,
) ([]models.RetrievedPassage, error) {
	rows, err := r.db.Query(ctx, `
		SELECT content, source_id
		FROM documents
		ORDER BY embedding <=> $1
		LIMIT $2`,
		pgvector.NewVector(queryEmbedding), k,
	)
	if err != nil {
		return nil, fmt.Errorf("nearest documents: %w", err)
	}
	defer rows.Close()

	var passages []models.RetrievedPassage

	for rows.Next() {
		var p models.RetrievedPassage
		if err := rows.Scan(&p.Text, &p.SourceID); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}

		p.Rank = len(passages)
		passages = append(passages, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return passages, nil
}
