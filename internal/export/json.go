package export

import (
	"encoding/json"
	"io"

	"github.com/iksnae/osa-monitor/internal"
)

// JSONExporter exports the document as pretty-printed JSON
type JSONExporter struct{}

// Export exports a document to JSON format
func (e *JSONExporter) Export(doc *internal.ExportDocument, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(doc)
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
