package rag

import (
	"fmt"
	"strings"
)

// BuildContext formats ranked results into the context block of the
// generation prompt: 1-based rank, source file, date label, similarity
// to three decimals, then the chunk text.
func BuildContext(results []ScoredResult) string {
	var sb strings.Builder
	sb.WriteString("Based on these journal entries:\n\n")
	for i, r := range results {
		fmt.Fprintf(&sb, "Entry %d (from %s, %s, similarity: %.3f):\n", i+1, r.Filename, r.Date, r.Similarity)
		sb.WriteString(r.Content)
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// BuildPrompt wraps the context block and the literal question with the
// fixed instructions for the generation model.
func BuildPrompt(context, question string) string {
	return fmt.Sprintf(`Context from journal entries:
%s

Question: %s

Please answer the question based on the journal entries provided above.
Be specific and reference the relevant diary entries when possible.
If the diary entries don't contain enough information to answer the question, please say so.

Answer:`, context, question)
}
