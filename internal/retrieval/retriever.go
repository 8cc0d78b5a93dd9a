// Package retrieval implements similarity search over the embedded medical
// corpus: embed the query once, then nearest-neighbour search in Postgres.
package retrieval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/healthassistant/hub/internal/models"
)

// ErrEmptyQuery is returned when Search is called with an empty query.
var ErrEmptyQuery = errors.New("query is required and must be non-empty")

// EmbeddingClient produces the query embedding.
type EmbeddingClient interface {
	CreateEmbedding(ctx context.Context, input string) ([]float32, error)
}

// DocumentsStore provides the nearest-neighbour lookup over corpus chunks.
type DocumentsStore interface {
	NearestByEmbedding(ctx context.Context, queryEmbedding []float32, k int) ([]models.RetrievedPassage, error)
}

// Retriever turns a free-text query into the top-K most relevant corpus
// passages, most relevant first. A single attempt per collaborator, no
// retries; failures propagate to the caller.
type Retriever struct {
	embeddingClient EmbeddingClient
	documents       DocumentsStore
	queryCache      *lru.Cache[string, []float32]
	queryLoadGroup  singleflight.Group
	logger          *slog.Logger
}

// RetrieverParams configures Retriever. QueryCache may be nil (no caching).
type RetrieverParams struct {
	EmbeddingClient EmbeddingClient
	Documents       DocumentsStore
	QueryCache      *lru.Cache[string, []float32]
	Logger          *slog.Logger
}

// NewRetriever creates a Retriever.
func NewRetriever(p RetrieverParams) *Retriever {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Retriever{
		embeddingClient: p.EmbeddingClient,
		documents:       p.Documents,
		queryCache:      p.QueryCache,
		logger:          logger,
	}
}

// Search returns the k passages most relevant to the query, rank order
// preserved from the index. An empty result is not an error; callers decide
// how to handle zero passages.
func (r *Retriever) Search(ctx context.Context, query string, k int) ([]models.RetrievedPassage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	var (
		embedding []float32
		err       error
	)

	if r.queryCache != nil {
		embedding, err = r.getQueryEmbeddingCached(ctx, query)
	} else {
		embedding, err = r.embeddingClient.CreateEmbedding(ctx, query)
	}

	if err != nil {
		r.logger.Error("retrieval: create embedding failed", "error", err, "topK", k)

		return nil, fmt.Errorf("create embedding: %w", err)
	}

	passages, err := r.documents.NearestByEmbedding(ctx, embedding, k)
	if err != nil {
		r.logger.Error("retrieval: nearest failed", "error", err, "topK", k)

		return nil, fmt.Errorf("nearest documents: %w", err)
	}

	return passages, nil
}

func (r *Retriever) getQueryEmbeddingCached(ctx context.Context, query string) ([]float32, error) {
	if vec, ok := r.queryCache.Get(query); ok {
		return vec, nil
	}

	val, err, _ := r.queryLoadGroup.Do(query, func() (any, error) {
		vec, loadErr := r.embeddingClient.CreateEmbedding(ctx, query)
		if loadErr != nil {
			return nil, fmt.Errorf("create embedding: %w", loadErr)
		}

		r.queryCache.Add(query, vec)

		return vec, nil
	})
	if err != nil {
		return nil, fmt.Errorf("query embedding: %w", err)
	}

	return val.([]float32), nil
}
