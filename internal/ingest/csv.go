package ingest

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// ErrLFSPointer reports a CSV path that holds a Git LFS pointer instead of
// the actual data file.
var ErrLFSPointer = errors.New("file is a Git LFS pointer, not data (run 'git lfs pull')")

const lfsPointerPrefix = "version https://git-lfs.github.com/spec/v1"

// openCSV opens path as a Latin-1 encoded CSV stream. The caller owns the
// returned closer.
func openCSV(path string) (*csv.Reader, io.Closer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open csv: %w", err)
	}

	buffered := bufio.NewReader(file)
	if peek, err := buffered.Peek(len(lfsPointerPrefix)); err == nil && string(peek) == lfsPointerPrefix {
		_ = file.Close()
		return nil, nil, fmt.Errorf("%s: %w", path, ErrLFSPointer)
	}

	reader := newCSVReader(transform.NewReader(buffered, charmap.ISO8859_1.NewDecoder()))
	return reader, file, nil
}

func newCSVReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	// Yearly exports occasionally carry ragged rows; column lookup is
	// positional against the header, so tolerate them.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader
}

// columnIndex locates required and optional columns in a header row.
// Matching is case-insensitive on trimmed names.
type columnIndex map[string]int

// indexColumns resolves each wanted column to its position using the
// provided matcher, which receives the lowercased trimmed header cell.
func indexColumns(header []string, wanted map[string]func(string) bool) columnIndex {
	cols := make(columnIndex, len(wanted))
	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		for key, matches := range wanted {
			if _, done := cols[key]; done {
				continue
			}
			if matches(name) {
				cols[key] = i
			}
		}
	}
	return cols
}

func (c columnIndex) missing(required ...string) []string {
	var missing []string
	for _, key := range required {
		if _, ok := c[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

// field returns the trimmed cell for a resolved column, or "" when the
// column is absent or the row is short.
func (c columnIndex) field(row []string, key string) string {
	i, ok := c[key]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func exactly(name string) func(string) bool {
	return func(cell string) bool { return cell == name }
}

func containsAll(fragments ...string) func(string) bool {
	return func(cell string) bool {
		for _, fragment := range fragments {
			if !strings.Contains(cell, fragment) {
				return false
			}
		}
		return true
	}
}

func anyOf(matchers ...func(string) bool) func(string) bool {
	return func(cell string) bool {
		for _, matches := range matchers {
			if matches(cell) {
				return true
			}
		}
		return false
	}
}
