// Package index builds the persistent embedding index from journal files.
package index

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/journal-ai/cli/internal/chunker"
	"github.com/journal-ai/cli/internal/db"
	"github.com/journal-ai/cli/internal/journal"
	"github.com/journal-ai/cli/internal/logger"
	"github.com/journal-ai/cli/internal/vector"
)

// Embedder produces a fixed-length vector for a piece of text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Model() string
}

// Collector yields the journal documents to index.
type Collector interface {
	Collect() ([]journal.Document, error)
}

// Builder runs the indexing pipeline: collect files, chunk their text,
// embed every chunk, and persist the results.
type Builder struct {
	collector Collector
	chunker   *chunker.Chunker
	embedder  Embedder
	store     *db.Store
	out       io.Writer
}

// NewBuilder creates a builder over the given collaborators. Progress
// messages are written to out.
func NewBuilder(collector Collector, ck *chunker.Chunker, embedder Embedder, store *db.Store, out io.Writer) *Builder {
	if out == nil {
		out = io.Discard
	}
	return &Builder{
		collector: collector,
		chunker:   ck,
		embedder:  embedder,
		store:     store,
		out:       out,
	}
}

// Build indexes the journal directory. An existing index is left alone
// unless force is set, which discards it first, so accidental re-runs
// never re-embed anything. A chunk that fails to embed aborts the whole
// build.
func (b *Builder) Build(ctx context.Context, force bool) error {
	if err := b.store.Init(ctx); err != nil {
		return err
	}

	if force {
		if err := b.store.Clear(ctx); err != nil {
			return err
		}
	}

	existing, err := b.store.Count(ctx)
	if err != nil {
		return err
	}
	if existing > 0 {
		fmt.Fprintf(b.out, "Index already exists with %d entries. Use --force to rebuild.\n", existing)
		return nil
	}

	fmt.Fprintln(b.out, "Building embedding index...")

	docs, err := b.collector.Collect()
	if err != nil {
		return err
	}

	dimensions := 0
	for _, doc := range docs {
		fmt.Fprintf(b.out, "Processing %s...\n", doc.Filename)

		chunks := b.chunker.Chunk(doc.Content)
		if len(chunks) == 0 {
			logger.Warn("no text in %s, skipping", doc.Filename)
			continue
		}

		for i, chunk := range chunks {
			emb, err := b.embedder.Embed(ctx, chunk)
			if err != nil {
				return fmt.Errorf("failed to embed chunk %d of %s: %w", i, doc.Filename, err)
			}
			if dimensions == 0 {
				dimensions = len(emb)
			} else if len(emb) != dimensions {
				return fmt.Errorf("embedding dimension changed from %d to %d at chunk %d of %s",
					dimensions, len(emb), i, doc.Filename)
			}

			rec := &db.EmbeddingRecord{
				Filename:   doc.Filename,
				Date:       doc.Date,
				Content:    chunk,
				Embedding:  vector.Encode(emb),
				ChunkIndex: i,
			}
			if err := b.store.InsertChunk(ctx, rec); err != nil {
				return err
			}
		}
		logger.Debug("added %d chunks from %s", len(chunks), doc.Filename)
	}

	if dimensions > 0 {
		meta := &db.IndexMeta{
			Model:        b.embedder.Model(),
			Dimensions:   dimensions,
			ChunkWindow:  b.chunker.Window(),
			ChunkOverlap: b.chunker.Overlap(),
			BuiltAt:      time.Now(),
		}
		if err := b.store.SaveMeta(ctx, meta); err != nil {
			return err
		}
	}

	fmt.Fprintf(b.out, "Index built successfully with %d journal entries!\n", len(docs))
	return nil
}
