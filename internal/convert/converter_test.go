package convert

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJournal = `* Friday, 4 June 2021
** 09:22 Morning pages
Slept well for once.
Coffee on the balcony.
** 14:30
Lunch was leftover pasta.
** 21:00 Evening
`

func TestDateFromFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
		wantErr  bool
	}{
		{"bare date", "20210604", "2021-06-04", false},
		{"with extension", "20210604.org", "2021-06-04", false},
		{"already dashed", "2021-06-04", "", true},
		{"not a date", "notes.org", "", true},
		{"too short", "2021064", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DateFromFilename(tt.filename)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseContent(t *testing.T) {
	dateHeader, entries := ParseContent(sampleJournal)

	assert.Equal(t, "Friday, 4 June 2021", dateHeader)
	// The 21:00 heading has no body and is dropped.
	require.Len(t, entries, 2)
	assert.Equal(t, "09:22 Morning pages", entries[0].Time)
	assert.Equal(t, "Slept well for once.\nCoffee on the balcony.", entries[0].Body)
	assert.Equal(t, "14:30", entries[1].Time)
	assert.Equal(t, "Lunch was leftover pasta.", entries[1].Body)
}

func TestParseContentEmpty(t *testing.T) {
	dateHeader, entries := ParseContent("")
	assert.Empty(t, dateHeader)
	assert.Empty(t, entries)
}

func TestGenerateRoamContent(t *testing.T) {
	entries := []Entry{
		{Time: "09:22 Morning pages", Body: "Slept well for once."},
		{Time: "14:30", Body: "Lunch was leftover pasta."},
	}

	content := generateRoamContent("2021-06-04", entries)
	lines := strings.Split(content, "\n")

	require.GreaterOrEqual(t, len(lines), 4)
	assert.Equal(t, ":PROPERTIES:", lines[0])
	assert.Regexp(t, regexp.MustCompile(`^:ID:       [0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`), lines[1])
	assert.Equal(t, ":END:", lines[2])
	assert.Equal(t, "#+title: 2021-06-04", lines[3])
	assert.Contains(t, content, "* 09:22 Morning pages\nSlept well for once.\n")
	assert.Contains(t, content, "* 14:30\nLunch was leftover pasta.")
	assert.True(t, strings.HasSuffix(content, "pasta.\n"), "content should end with a single newline")
	assert.False(t, strings.HasSuffix(content, "\n\n"))
}

func TestGenerateRoamContentUniqueIDs(t *testing.T) {
	a := generateRoamContent("2021-06-04", nil)
	b := generateRoamContent("2021-06-04", nil)
	assert.NotEqual(t, a, b)
}

func TestConvertFile(t *testing.T) {
	journalDir := t.TempDir()
	roamDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(journalDir, "20210604"), []byte(sampleJournal), 0644))

	var out bytes.Buffer
	conv, err := NewConverter(journalDir, roamDir, false, &out)
	require.NoError(t, err)

	require.NoError(t, conv.ConvertFile("20210604", false))

	data, err := os.ReadFile(filepath.Join(roamDir, "2021-06-04.org"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "#+title: 2021-06-04")
	assert.Contains(t, string(data), "* 09:22 Morning pages")
	assert.Contains(t, out.String(), "Converted: 20210604 -> 2021-06-04.org")
}

func TestConvertFileDryRun(t *testing.T) {
	journalDir := t.TempDir()
	roamDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(journalDir, "20210604"), []byte(sampleJournal), 0644))

	var out bytes.Buffer
	conv, err := NewConverter(journalDir, roamDir, false, &out)
	require.NoError(t, err)

	require.NoError(t, conv.ConvertFile("20210604", true))

	_, err = os.Stat(filepath.Join(roamDir, "2021-06-04.org"))
	assert.True(t, os.IsNotExist(err), "dry run must not write files")
	assert.Contains(t, out.String(), "Would convert: 20210604 -> 2021-06-04.org")
	assert.Contains(t, out.String(), "Date header: Friday, 4 June 2021")
	assert.Contains(t, out.String(), "Entries: 2")
	assert.Contains(t, out.String(), "Preview:")
}

func TestConvertFileSkipsExisting(t *testing.T) {
	journalDir := t.TempDir()
	roamDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(journalDir, "20210604"), []byte(sampleJournal), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(roamDir, "2021-06-04.org"), []byte("old"), 0644))

	var out bytes.Buffer
	conv, err := NewConverter(journalDir, roamDir, false, &out)
	require.NoError(t, err)

	err = conv.ConvertFile("20210604", false)
	assert.ErrorIs(t, err, ErrExists)

	data, err := os.ReadFile(filepath.Join(roamDir, "2021-06-04.org"))
	require.NoError(t, err)
	assert.Equal(t, "old", string(data), "existing file must be untouched")
}

func TestConvertFileOverwrite(t *testing.T) {
	journalDir := t.TempDir()
	roamDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(journalDir, "20210604"), []byte(sampleJournal), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(roamDir, "2021-06-04.org"), []byte("old"), 0644))

	conv, err := NewConverter(journalDir, roamDir, true, nil)
	require.NoError(t, err)

	require.NoError(t, conv.ConvertFile("20210604", false))

	data, err := os.ReadFile(filepath.Join(roamDir, "2021-06-04.org"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "#+title: 2021-06-04")
}

func TestConvertAll(t *testing.T) {
	journalDir := t.TempDir()
	roamDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(journalDir, "20210604"), []byte(sampleJournal), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(journalDir, "20210605.org"), []byte(sampleJournal), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(journalDir, "notes.org"), []byte("not a journal"), 0644))
	// Pre-existing target for the second file.
	require.NoError(t, os.WriteFile(filepath.Join(roamDir, "2021-06-05.org"), []byte("old"), 0644))

	var out bytes.Buffer
	conv, err := NewConverter(journalDir, roamDir, false, &out)
	require.NoError(t, err)

	stats, err := conv.ConvertAll(false)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Successful)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 0, stats.Failed)
	assert.Contains(t, out.String(), "Found 2 journal files to convert")
}

func TestConvertAllDryRun(t *testing.T) {
	journalDir := t.TempDir()
	roamDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(journalDir, "20210604"), []byte(sampleJournal), 0644))

	var out bytes.Buffer
	conv, err := NewConverter(journalDir, roamDir, false, &out)
	require.NoError(t, err)

	stats, err := conv.ConvertAll(true)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Successful)
	assert.Contains(t, out.String(), "DRY RUN - No files will be modified")

	entries, err := os.ReadDir(roamDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestConvertAllEmptyDir(t *testing.T) {
	var out bytes.Buffer
	conv, err := NewConverter(t.TempDir(), t.TempDir(), false, &out)
	require.NoError(t, err)

	stats, err := conv.ConvertAll(false)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Total)
	assert.Contains(t, out.String(), "No org-journal files found")
}

func TestListFiles(t *testing.T) {
	journalDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(journalDir, "20210605"), []byte("b"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(journalDir, "20210604"), []byte("a"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(journalDir, "readme.md"), []byte("x"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(journalDir, "20210606"), 0755))

	conv, err := NewConverter(journalDir, t.TempDir(), false, nil)
	require.NoError(t, err)

	files, err := conv.ListFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"20210604", "20210605"}, files)
}
