package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iksnae/osa-monitor/internal"
)

// JSONLExporter exports one log entry per line
type JSONLExporter struct{}

// Export exports the document's logs to JSONL format
func (e *JSONLExporter) Export(doc *internal.ExportDocument, w io.Writer) error {
	enc := json.NewEncoder(w)

	for _, entry := range doc.Logs {
		obj := map[string]interface{}{
			"id":        entry.ID,
			"category":  entry.Category,
			"message":   entry.Message,
			"timestamp": entry.Timestamp.Format(internal.TimestampLayout),
		}
		if len(entry.Metadata) > 0 {
			obj["metadata"] = entry.Metadata
		}

		if err := enc.Encode(obj); err != nil {
			return fmt.Errorf("failed to encode log entry: %w", err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
