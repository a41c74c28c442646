package db

import "time"

// EmbeddingRecord is one persisted chunk: its source file, date label,
// chunk text, and the embedding serialized as little-endian float32
// bytes.
type EmbeddingRecord struct {
	ID         int64
	Filename   string
	Date       string
	Content    string
	Embedding  []byte
	ChunkIndex int
}

// EntryInfo is one (filename, date) pair from the entry listing.
type EntryInfo struct {
	Filename string
	Date     string
}

// IndexMeta records the parameters an index was built with. It is
// written once per build and checked before queries, so an index built
// with a different embedding model or chunking setup is reported
// instead of silently searched.
type IndexMeta struct {
	Model        string
	Dimensions   int
	ChunkWindow  int
	ChunkOverlap int
	BuiltAt      time.Time
}
