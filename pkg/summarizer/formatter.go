package summarizer

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// Formatter defines the interface for formatting a BatchSummary.
type Formatter interface {
	// Format converts a BatchSummary to a formatted string.
	Format(summary *BatchSummary) (string, error)
}

// FormatFunc is a function adapter for the Formatter interface.
type FormatFunc func(summary *BatchSummary) (string, error)

// Format implements the Formatter interface.
func (f FormatFunc) Format(summary *BatchSummary) (string, error) {
	return f(summary)
}

// JSONFormatter renders the persisted summary file.
func JSONFormatter() Formatter {
	return FormatFunc(func(summary *BatchSummary) (string, error) {
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal summary: %w", err)
		}
		return string(data) + "\n", nil
	})
}

// TextFormatter renders the console summary printed after a batch.
type TextFormatter struct {
	translate func(string) string
}

// NewTextFormatter creates a TextFormatter with untranslated labels.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{translate: func(s string) string { return s }}
}

// WithTranslator sets the function used to translate labels and format keys.
func (f *TextFormatter) WithTranslator(translate func(string) string) *TextFormatter {
	f.translate = translate
	return f
}

// Format implements the Formatter interface.
func (f *TextFormatter) Format(summary *BatchSummary) (string, error) {
	var b strings.Builder
	rule := strings.Repeat("=", 50)
	total := len(summary.Results)

	b.WriteString(rule + "\n")
	b.WriteString(f.translate("BATCH PROCESSING SUMMARY") + "\n")
	b.WriteString(rule + "\n\n")

	successful := summary.Successful()
	fmt.Fprintf(&b, f.translate("Successful: %d/%d")+"\n", len(successful), total)
	for _, r := range successful {
		fmt.Fprintf(&b, "   • "+f.translate("%s: %d frames")+"\n", filepath.Base(r.Video), r.Frames())
	}

	if failed := summary.Failed(); len(failed) > 0 {
		b.WriteString("\n")
		fmt.Fprintf(&b, f.translate("Failed: %d/%d")+"\n", len(failed), total)
		for _, r := range failed {
			fmt.Fprintf(&b, "   • %s: %s\n", filepath.Base(r.Video), r.Error)
		}
	}

	return b.String(), nil
}
