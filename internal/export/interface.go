package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/iksnae/osa-monitor/internal"
)

// Exporter defines the interface for all export formats
type Exporter interface {
	Export(doc *internal.ExportDocument, w io.Writer) error
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

// FileName builds an export file name of the form <prefix>-<epoch-ms>.<ext>
func FileName(prefix, ext string, now time.Time) string {
	return fmt.Sprintf("%s-%d.%s", prefix, now.UnixMilli(), ext)
}

// WriteFile exports doc into dir and returns the written path
func WriteFile(exp Exporter, doc *internal.ExportDocument, dir, prefix string, now time.Time) (string, error) {
	path := filepath.Join(dir, FileName(prefix, exp.Extension(), now))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", &internal.ExportError{Format: exp.Extension(), Path: dir, Err: err}
	}

	f, err := os.Create(path)
	if err != nil {
		return "", &internal.ExportError{Format: exp.Extension(), Path: path, Err: err}
	}
	if err := exp.Export(doc, f); err != nil {
		_ = f.Close()
		return "", &internal.ExportError{Format: exp.Extension(), Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return "", &internal.ExportError{Format: exp.Extension(), Path: path, Err: err}
	}
	return path, nil
}
