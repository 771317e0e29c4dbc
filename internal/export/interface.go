package export

import (
	"fmt"
	"io"
	"os"

	"github.com/iksnae/chatterbot/internal"
)

// Exporter defines the interface for all transcript formats
type Exporter interface {
	Export(transcript *internal.Transcript, w io.Writer) error
	Extension() string
}

// NewExporter creates a new exporter based on format
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "jsonl":
		return &JSONLExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	case "yaml":
		return &YAMLExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: jsonl, md, yaml, json)", format)
	}
}

// WriteFile exports a transcript to the given path in the given format.
func WriteFile(transcript *internal.Transcript, format, path string) error {
	exporter, err := NewExporter(format)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return &internal.ExportError{Format: format, Path: path, Err: err}
	}
	defer f.Close()

	if err := exporter.Export(transcript, f); err != nil {
		return &internal.ExportError{Format: format, Path: path, Err: err}
	}

	return nil
}
