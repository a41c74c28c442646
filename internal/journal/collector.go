// Package journal reads dated entry files from a journal directory.
package journal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/journal-ai/cli/internal/logger"
)

// Document is one journal source file: its name, a best-effort date
// label, and the full raw text. Documents are built once per scan and
// never mutated.
type Document struct {
	Filename string
	Date     string
	Content  string
}

// Collector scans a journal directory for entry files.
type Collector struct {
	dir        string
	extensions map[string]bool
	includePDF bool
}

// NewCollector creates a collector for dir. Extensions are matched
// case-insensitively; PDF files are only picked up when includePDF is
// set, since they need text extraction.
func NewCollector(dir string, extensions []string, includePDF bool) *Collector {
	exts := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		exts[strings.ToLower(ext)] = true
	}
	return &Collector{
		dir:        dir,
		extensions: exts,
		includePDF: includePDF,
	}
}

// Collect reads every matching file directly under the journal
// directory (non-recursive) and returns one Document per file, in
// directory enumeration order. Files that cannot be read are skipped
// with a warning; a missing directory is an error.
func (c *Collector) Collect() ([]Document, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read journal directory: %w", err)
	}

	var docs []Document
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		path := filepath.Join(c.dir, name)

		var content string
		switch {
		case ext == ".pdf" && c.includePDF:
			content, err = ParsePDF(path)
			if err != nil {
				logger.Warn("skipping %s: %v", name, err)
				continue
			}
		case c.extensions[ext]:
			data, err := os.ReadFile(path)
			if err != nil {
				logger.Warn("skipping %s: %v", name, err)
				continue
			}
			content = string(data)
		default:
			continue
		}

		docs = append(docs, Document{
			Filename: name,
			Date:     ExtractDate(name, content),
			Content:  content,
		})
	}

	logger.Debug("collected %d journal documents from %s", len(docs), c.dir)
	return docs, nil
}
