package rag

import (
	"context"
	"fmt"

	"github.com/journal-ai/cli/internal/db"
	"github.com/journal-ai/cli/internal/logger"
)

// NoEntriesMessage is returned when the search finds nothing to answer
// from. No generation call is made in that case.
const NoEntriesMessage = "No relevant journal entries found."

// Embedder produces the query vector for a question.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Model() string
}

// Generator produces the final answer text from a prompt.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// Searcher finds the stored chunks most similar to a query vector.
type Searcher interface {
	Search(ctx context.Context, query []float32, topK int) ([]ScoredResult, error)
}

// MetaReader exposes the parameters the index was built with.
type MetaReader interface {
	Meta(ctx context.Context) (*db.IndexMeta, error)
}

// Orchestrator answers questions over the indexed journal: embed the
// question, rank stored chunks, assemble the prompt, generate.
type Orchestrator struct {
	embedder  Embedder
	generator Generator
	searcher  Searcher
	meta      MetaReader
	model     string
	topK      int
}

// NewOrchestrator wires the query pipeline. model is the generation
// model; topK defaults to 5.
func NewOrchestrator(embedder Embedder, generator Generator, searcher Searcher, meta MetaReader, model string, topK int) *Orchestrator {
	if topK <= 0 {
		topK = 5 // Default
	}
	return &Orchestrator{
		embedder:  embedder,
		generator: generator,
		searcher:  searcher,
		meta:      meta,
		model:     model,
		topK:      topK,
	}
}

// Answer runs one question through the retrieval pipeline and returns
// the generated text. An empty search result returns NoEntriesMessage
// without calling the generation model. A generation failure degrades
// to an "Error querying Ollama" result string instead of an error.
// Errors are reserved for a stale or mismatched index and for failures
// before retrieval completes.
func (o *Orchestrator) Answer(ctx context.Context, question string) (string, error) {
	meta, err := o.meta.Meta(ctx)
	if err != nil {
		return "", err
	}
	if meta != nil && meta.Model != o.embedder.Model() {
		return "", fmt.Errorf("index was built with embedding model %q but %q is configured; rebuild with --force",
			meta.Model, o.embedder.Model())
	}

	queryVec, err := o.embedder.Embed(ctx, question)
	if err != nil {
		return "", fmt.Errorf("failed to embed question: %w", err)
	}
	if meta != nil && meta.Dimensions != len(queryVec) {
		return "", fmt.Errorf("index embeddings have %d dimensions but the query has %d; rebuild with --force",
			meta.Dimensions, len(queryVec))
	}

	logger.Debug("searching for relevant journal entries")
	results, err := o.searcher.Search(ctx, queryVec, o.topK)
	if err != nil {
		return "", err
	}

	if len(results) == 0 {
		return NoEntriesMessage, nil
	}

	prompt := BuildPrompt(BuildContext(results), question)
	logger.Debug("sending %d context entries to %s", len(results), o.model)

	answer, err := o.generator.Generate(ctx, o.model, prompt)
	if err != nil {
		return fmt.Sprintf("Error querying Ollama: %v", err), nil
	}
	return answer, nil
}
