package summarizer

import (
	"fmt"
	"path/filepath"

	"github.com/user/droneframes/pkg/ports"
)

// Writer writes formatted summaries to files.
type Writer struct {
	fs        ports.FileSystem
	formatter Formatter
}

// NewWriter creates a new Writer with the given Formatter.
func NewWriter(fs ports.FileSystem, formatter Formatter) *Writer {
	return &Writer{
		fs:        fs,
		formatter: formatter,
	}
}

// Write formats the summary and writes it to path.
// Creates parent directories if they don't exist.
func (w *Writer) Write(path string, summary *BatchSummary) error {
	content, err := w.formatter.Format(summary)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := w.fs.MkdirAll(dir); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	if err := w.fs.WriteFile(path, []byte(content)); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

// WriteJSON persists summary as FileName(summary.Timestamp) inside dir and
// returns the written path.
func WriteJSON(fs ports.FileSystem, dir string, summary *BatchSummary) (string, error) {
	path := filepath.Join(dir, FileName(summary.Timestamp))
	if err := NewWriter(fs, JSONFormatter()).Write(path, summary); err != nil {
		return "", err
	}
	return path, nil
}
