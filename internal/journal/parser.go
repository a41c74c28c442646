package journal

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// ParsePDF extracts the text of a PDF journal file, page by page.
// Pages whose extraction fails or that hold no text are skipped.
func ParsePDF(path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var parts []string
	for i := 0; i < doc.NumPage(); i++ {
		text, err := doc.Text(i)
		if err == nil && strings.TrimSpace(text) != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, "\n\n"), nil
}
