// package formatter converts movie collections to and from portable formats (CSV, JSON, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/watchlist/internal/models"
	"github.com/desertthunder/watchlist/internal/shared"
)

// Format names an export format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "txt"
)

// Formats lists the supported export formats.
var Formats = []Format{FormatJSON, FormatCSV, FormatMarkdown, FormatText}

var csvHeaders = []string{"ID", "Name", "Release Date", "Watched", "Created At"}

// ParseFormat resolves a format name; "md" and "text" are accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, s)
	}
}

// Ext returns the file extension used for f.
func (f Format) Ext() string {
	if f == FormatMarkdown {
		return ".md"
	}
	return "." + string(f)
}

// Export renders movies in format f.
func Export(f Format, movies []models.Movie) ([]byte, error) {
	switch f {
	case FormatJSON:
		return ExportToJSON(movies)
	case FormatCSV:
		return ExportToCSV(movies)
	case FormatMarkdown:
		return ExportToMarkdown(movies)
	case FormatText:
		return ExportToText(movies)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, f)
	}
}

// ExportToJSON renders movies as an indented JSON array using the backend field names.
func ExportToJSON(movies []models.Movie) ([]byte, error) {
	if movies == nil {
		movies = []models.Movie{}
	}
	data, err := json.MarshalIndent(movies, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// ExportToCSV converts movies to CSV format with columns: ID, Name, Release Date, Watched, Created At
//
// Release dates are written as YYYY-MM-DD so the file can be read back with [ReadCSV].
func ExportToCSV(movies []models.Movie) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, m := range movies {
		record := []string{
			strconv.FormatInt(m.ID, 10),
			m.Name,
			models.CalendarDate(m.ReleaseDate),
			strconv.FormatBool(m.IsWatched),
			m.CreatedAt,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown renders movies as a Markdown checklist, watched movies checked.
func ExportToMarkdown(movies []models.Movie) ([]byte, error) {
	var buf bytes.Buffer

	watched := countWatched(movies)
	buf.WriteString("# Movies to Watch\n\n")
	fmt.Fprintf(&buf, "**Movies**: %d\n", len(movies))
	fmt.Fprintf(&buf, "**Watched**: %d\n\n", watched)

	if len(movies) == 0 {
		buf.WriteString("_No movies to display._\n")
		return buf.Bytes(), nil
	}

	for _, m := range movies {
		box := " "
		if m.IsWatched {
			box = "x"
		}
		fmt.Fprintf(&buf, "- [%s] %s (%s)\n", box, m.Name, models.FormatDate(m.ReleaseDate))
	}

	return buf.Bytes(), nil
}

// ExportToText converts movies to plain text format
func ExportToText(movies []models.Movie) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Movies: %d (%d watched)\n\n", len(movies), countWatched(movies))
	for i, m := range movies {
		status := "to watch"
		if m.IsWatched {
			status = "watched"
		}
		fmt.Fprintf(&buf, "%d. %s - %s [%s]\n", i+1, m.Name, models.FormatDate(m.ReleaseDate), status)
	}

	return buf.Bytes(), nil
}

// WriteExport renders movies and writes them to path, creating parent directories.
func WriteExport(f Format, movies []models.Movie, path string) error {
	data, err := Export(f, movies)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}

// ImportRow is one parsed CSV record. Line is the 1-based file line the record starts on.
type ImportRow struct {
	Line    int
	Request models.NewMovieRequest
}

// ReadCSV parses movies to import.
//
// The header must name a "name" (or "movie_name") column and a "release date" (or
// "release_date") column, case-insensitive; other columns, including exported ID and watched
// columns, are ignored. Rows are returned unvalidated.
func ReadCSV(r io.Reader) ([]ImportRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty CSV", shared.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	nameCol, dateCol := -1, -1
	for i, h := range header {
		switch normalizeHeader(h) {
		case "name", "movie_name", "title":
			nameCol = i
		case "release_date", "date":
			dateCol = i
		}
	}
	if nameCol < 0 || dateCol < 0 {
		return nil, fmt.Errorf("%w: CSV header must include name and release date columns", shared.ErrInvalidInput)
	}

	var rows []ImportRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		if isBlank(record) {
			continue
		}

		line, _ := reader.FieldPos(0)
		rows = append(rows, ImportRow{
			Line:    line,
			Request: models.NewMovie(field(record, nameCol), models.CalendarDate(field(record, dateCol))),
		})
	}

	return rows, nil
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	return strings.ReplaceAll(h, " ", "_")
}

func field(record []string, i int) string {
	if i < len(record) {
		return record[i]
	}
	return ""
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func countWatched(movies []models.Movie) int {
	n := 0
	for _, m := range movies {
		if m.IsWatched {
			n++
		}
	}
	return n
}
