package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"f1results/internal/extractor"
	"f1results/internal/formatter"
)

var segmentReplacer = strings.NewReplacer(" ", "_", "/", "-", `\`, "-")

// SafeSegment turns a race name into a single path segment:
// spaces become underscores and path separators become hyphens.
func SafeSegment(name string) string {
	return segmentReplacer.Replace(name)
}

// Writer persists result tables under root/{year}/{race}/{label}.{ext}.
type Writer struct {
	root   string
	format string
	ext    string
}

// NewWriter validates format and creates root.
func NewWriter(root, format string) (*Writer, error) {
	ext, err := formatter.Ext(format)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Writer{root: root, format: format, ext: ext}, nil
}

// Root returns the output root directory.
func (w *Writer) Root() string {
	return w.root
}

// RaceDir is the directory holding every session file of a race.
func (w *Writer) RaceDir(year int, raceName string) string {
	return filepath.Join(w.root, strconv.Itoa(year), SafeSegment(raceName))
}

// Path is the file a session table is written to.
func (w *Writer) Path(year int, raceName, label string) string {
	return filepath.Join(w.RaceDir(year, raceName), label+w.ext)
}

// Write encodes table and writes it to its session file, returning the path.
// Empty tables are skipped: no file is written and the returned path is empty.
func (w *Writer) Write(year int, raceName, label string, table *extractor.ResultTable) (string, error) {
	if table.Empty() {
		return "", nil
	}

	data, err := formatter.Format(table, w.format)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(w.RaceDir(year, raceName), 0755); err != nil {
		return "", fmt.Errorf("failed to create race directory: %w", err)
	}

	path := w.Path(year, raceName, label)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write to file: %w", err)
	}
	return path, nil
}
