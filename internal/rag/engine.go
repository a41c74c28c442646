// Package rag ranks indexed journal chunks against a question and
// assembles the answer prompt.
package rag

import (
	"context"
	"fmt"
	"sort"

	"github.com/journal-ai/cli/internal/db"
	"github.com/journal-ai/cli/internal/logger"
	"github.com/journal-ai/cli/internal/vector"
)

// ScoredResult is one ranked chunk from a similarity search.
type ScoredResult struct {
	Filename   string
	Date       string
	Content    string
	Similarity float64
}

// Engine scores every stored chunk against a query vector with an
// exhaustive cosine-similarity scan.
type Engine struct {
	store *db.Store
}

// NewEngine creates an engine over store.
func NewEngine(store *db.Store) *Engine {
	return &Engine{store: store}
}

// Search decodes every stored embedding, scores it against query, and
// returns the topK best matches in descending similarity order, fewer
// when the store is smaller. Ties keep their scan order. A stored
// vector whose length differs from the query is an error: the index
// was built with a different embedding model.
func (e *Engine) Search(ctx context.Context, query []float32, topK int) ([]ScoredResult, error) {
	records, err := e.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]ScoredResult, 0, len(records))
	for _, rec := range records {
		stored, err := vector.Decode(rec.Embedding)
		if err != nil {
			return nil, fmt.Errorf("bad embedding for %s chunk %d: %w", rec.Filename, rec.ChunkIndex, err)
		}
		sim, err := vector.CosineSimilarity(query, stored)
		if err != nil {
			return nil, fmt.Errorf("cannot score %s chunk %d: %w", rec.Filename, rec.ChunkIndex, err)
		}
		results = append(results, ScoredResult{
			Filename:   rec.Filename,
			Date:       rec.Date,
			Content:    rec.Content,
			Similarity: sim,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if topK > 0 && len(results) > topK {
		results = results[:topK]
	}

	logger.Debug("scored %d chunks, returning %d", len(records), len(results))
	return results, nil
}
