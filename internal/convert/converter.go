// Package convert rewrites org-journal files into org-roam-dailies
// format: YYYYMMDD journal files become YYYY-MM-DD.org notes with an
// :ID: property that org-roam can index.
package convert

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// ErrExists is returned when the target file already exists and
// overwriting is disabled.
var ErrExists = errors.New("target file already exists")

var (
	journalNamePattern = regexp.MustCompile(`^\d{8}$`)
	timeHeadingPattern = regexp.MustCompile(`^\*\* \d{2}:\d{2}`)
)

// Entry is one timestamped section of an org-journal file.
type Entry struct {
	Time string
	Body string
}

// Stats summarizes a bulk conversion.
type Stats struct {
	Total      int
	Successful int
	Failed     int
	Skipped    int
}

// Converter rewrites org-journal files from journalDir into
// org-roam-dailies files under roamDir.
type Converter struct {
	journalDir string
	roamDir    string
	overwrite  bool
	out        io.Writer
}

// NewConverter creates a converter and ensures roamDir exists. Progress
// messages are written to out.
func NewConverter(journalDir, roamDir string, overwrite bool, out io.Writer) (*Converter, error) {
	if out == nil {
		out = io.Discard
	}
	if err := os.MkdirAll(roamDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create roam directory: %w", err)
	}
	return &Converter{
		journalDir: journalDir,
		roamDir:    roamDir,
		overwrite:  overwrite,
		out:        out,
	}, nil
}

// DateFromFilename converts a YYYYMMDD journal filename (extension
// optional) to YYYY-MM-DD.
func DateFromFilename(filename string) (string, error) {
	base := strings.SplitN(filename, ".", 2)[0]
	if !journalNamePattern.MatchString(base) {
		return "", fmt.Errorf("filename %s doesn't match YYYYMMDD pattern", filename)
	}
	return base[:4] + "-" + base[4:6] + "-" + base[6:8], nil
}

// ParseContent extracts the date header and the timestamped entries
// from org-journal content. The date header is the `* ` heading; each
// `** HH:MM` heading starts an entry whose body runs until the next
// heading. Timestamped headings with no body are dropped.
func ParseContent(content string) (string, []Entry) {
	lines := strings.Split(strings.TrimSpace(content), "\n")

	var dateHeader string
	var entries []Entry
	var currentTime string
	var currentBody []string

	flush := func() {
		if currentTime != "" && len(currentBody) > 0 {
			entries = append(entries, Entry{
				Time: currentTime,
				Body: strings.TrimSpace(strings.Join(currentBody, "\n")),
			})
		}
	}

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "* ") && !timeHeadingPattern.MatchString(line):
			dateHeader = strings.TrimSpace(line[2:])
		case strings.HasPrefix(line, "** ") && timeHeadingPattern.MatchString(line):
			flush()
			currentTime = strings.TrimSpace(line[3:])
			currentBody = nil
		case currentTime != "":
			currentBody = append(currentBody, line)
		}
	}
	flush()

	return dateHeader, entries
}

// generateRoamContent renders the org-roam-dailies file body: a
// properties drawer with a fresh node ID, the date title, then one
// top-level heading per journal entry.
func generateRoamContent(date string, entries []Entry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, ":PROPERTIES:\n:ID:       %s\n:END:\n#+title: %s\n", uuid.New().String(), date)

	for _, e := range entries {
		fmt.Fprintf(&sb, "* %s\n", e.Time)
		if e.Body != "" {
			sb.WriteString(e.Body)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// ConvertFile converts one journal file. With dryRun set it prints a
// preview instead of writing. An existing target returns ErrExists
// unless the converter was created with overwrite.
func (c *Converter) ConvertFile(filename string, dryRun bool) error {
	date, err := DateFromFilename(filename)
	if err != nil {
		return err
	}
	roamName := date + ".org"
	roamPath := filepath.Join(c.roamDir, roamName)

	if !dryRun && !c.overwrite {
		if _, err := os.Stat(roamPath); err == nil {
			fmt.Fprintf(c.out, "Skipping %s: %s already exists\n", filename, roamName)
			return ErrExists
		}
	}

	data, err := os.ReadFile(filepath.Join(c.journalDir, filename))
	if err != nil {
		return fmt.Errorf("failed to read journal file: %w", err)
	}

	dateHeader, entries := ParseContent(string(data))
	roamContent := generateRoamContent(date, entries)

	if dryRun {
		fmt.Fprintf(c.out, "Would convert: %s -> %s\n", filename, roamName)
		fmt.Fprintf(c.out, "  Date header: %s\n", dateHeader)
		fmt.Fprintf(c.out, "  Entries: %d\n", len(entries))
		lines := strings.Split(roamContent, "\n")
		preview := lines
		if len(preview) > 10 {
			preview = preview[:10]
		}
		fmt.Fprintf(c.out, "  Preview:\n  %s\n", strings.Join(preview, "\n  "))
		if len(lines) > 10 {
			fmt.Fprintln(c.out, "  ...")
		}
		fmt.Fprintln(c.out)
		return nil
	}

	if err := os.WriteFile(roamPath, []byte(roamContent), 0644); err != nil {
		return fmt.Errorf("failed to write roam file: %w", err)
	}
	fmt.Fprintf(c.out, "Converted: %s -> %s\n", filename, roamName)
	return nil
}

// ConvertAll converts every convertible file in the journal directory
// and reports per-file outcomes in the returned stats.
func (c *Converter) ConvertAll(dryRun bool) (Stats, error) {
	var stats Stats

	files, err := c.ListFiles()
	if err != nil {
		return stats, err
	}
	stats.Total = len(files)

	if len(files) == 0 {
		fmt.Fprintln(c.out, "No org-journal files found matching YYYYMMDD pattern")
		return stats, nil
	}

	fmt.Fprintf(c.out, "Found %d journal files to convert\n", len(files))
	if dryRun {
		fmt.Fprintln(c.out, "DRY RUN - No files will be modified")
	}
	fmt.Fprintln(c.out)

	for _, name := range files {
		err := c.ConvertFile(name, dryRun)
		switch {
		case errors.Is(err, ErrExists):
			stats.Skipped++
		case err != nil:
			fmt.Fprintf(c.out, "ERROR converting %s: %v\n", name, err)
			stats.Failed++
		default:
			stats.Successful++
		}
	}

	return stats, nil
}

// ListFiles returns the journal filenames eligible for conversion,
// sorted by name.
func (c *Converter) ListFiles() ([]string, error) {
	entries, err := os.ReadDir(c.journalDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read journal directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		stem := strings.SplitN(entry.Name(), ".", 2)[0]
		if journalNamePattern.MatchString(stem) {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}
