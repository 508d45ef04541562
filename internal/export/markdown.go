package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/osa-monitor/internal"
)

// MarkdownExporter exports the document as a readable Markdown report
type MarkdownExporter struct{}

// Export exports a document to Markdown format
func (e *MarkdownExporter) Export(doc *internal.ExportDocument, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "# OSA Monitor Export\n\n")
	_, _ = fmt.Fprintf(w, "**Exported:** %s  \n", doc.Timestamp)
	_, _ = fmt.Fprintf(w, "**Logs:** %d\n\n", len(doc.Logs))

	m := doc.Metrics
	_, _ = fmt.Fprintf(w, "## Metrics\n\n")
	_, _ = fmt.Fprintf(w, "| Thoughts | Chains | Contexts | Blockers | Patterns | Efficiency |\n")
	_, _ = fmt.Fprintf(w, "|---|---|---|---|---|---|\n")
	_, _ = fmt.Fprintf(w, "| %d | %d | %d | %d | %d | %.0f%% |\n\n",
		m.Thoughts, m.Chains, m.Contexts, m.Blockers, m.Patterns, m.Efficiency)

	if len(doc.ThoughtNodes) > 0 {
		_, _ = fmt.Fprintf(w, "## Thoughts\n\n")
		for _, node := range doc.ThoughtNodes {
			_, _ = fmt.Fprintf(w, "- **%s** %s\n", node.Label, escapeMarkdown(node.Content))
		}
		_, _ = fmt.Fprintf(w, "\n")
	}

	_, _ = fmt.Fprintf(w, "---\n\n")
	_, _ = fmt.Fprintf(w, "## Logs\n\n")

	for _, entry := range doc.Logs {
		_, _ = fmt.Fprintf(w, "`%s` **%s** %s\n\n",
			entry.Timestamp.Format("15:04:05.000"),
			strings.ToUpper(entry.Category),
			escapeMarkdown(entry.Message))
	}

	return nil
}

// escapeMarkdown escapes markdown special characters
func escapeMarkdown(text string) string {
	lines := strings.Split(text, "\n")
	var result []string
	inCodeBlock := false

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			inCodeBlock = !inCodeBlock
			result = append(result, line)
		} else if inCodeBlock {
			result = append(result, line)
		} else {
			line = strings.ReplaceAll(line, "**", "\\*\\*")
			line = strings.ReplaceAll(line, "__", "\\_\\_")
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
