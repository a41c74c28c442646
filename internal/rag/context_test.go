package rag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildContext(t *testing.T) {
	results := []ScoredResult{
		{Filename: "2024-01-01.txt", Date: "2024-01-01", Content: "went hiking today", Similarity: 0.98765},
		{Filename: "notes.txt", Date: "Unknown", Content: "quiet evening at home", Similarity: 0.5},
	}

	want := "Based on these journal entries:\n\n" +
		"Entry 1 (from 2024-01-01.txt, 2024-01-01, similarity: 0.988):\n" +
		"went hiking today\n\n" +
		"Entry 2 (from notes.txt, Unknown, similarity: 0.500):\n" +
		"quiet evening at home\n\n"

	assert.Equal(t, want, BuildContext(results))
}

func TestBuildContextEmpty(t *testing.T) {
	assert.Equal(t, "Based on these journal entries:\n\n", BuildContext(nil))
}

func TestBuildPrompt(t *testing.T) {
	got := BuildPrompt("CONTEXT-BLOCK", "What did I do in January?")

	want := `Context from journal entries:
CONTEXT-BLOCK

Question: What did I do in January?

Please answer the question based on the journal entries provided above.
Be specific and reference the relevant diary entries when possible.
If the diary entries don't contain enough information to answer the question, please say so.

Answer:`

	assert.Equal(t, want, got)
}
