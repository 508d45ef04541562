package render

import (
	"regexp"
	"sort"
	"strings"
)

// SpanKind classifies a fragment of an enriched message
type SpanKind int

const (
	SpanPlain SpanKind = iota
	SpanKeyword
	SpanGlyph
)

// Span is one styled fragment of a rendered message
type Span struct {
	Kind SpanKind
	Text string
}

// Status glyphs, each followed by a space when inserted
const (
	GlyphSuccess = "✅"
	GlyphError   = "❌"
	GlyphWarning = "⚠️"
)

// Keywords is the vocabulary emphasised in log messages
var Keywords = []string{
	"thinking", "analyzing", "learning", "learned", "pattern", "decision",
	"confidence", "blocker", "alternative", "context", "chain", "reasoning",
	"executing", "delegating", "success", "insight", "strategy", "hypothesis",
	"evaluating", "optimizing",
}

var (
	keywordPattern = regexp.MustCompile(`(?i)\b(?:` + strings.Join(Keywords, "|") + `)\b`)
	statusPattern  = regexp.MustCompile(`(?i)success|error|warning`)
)

func statusGlyph(word string) string {
	switch strings.ToLower(word) {
	case "success":
		return GlyphSuccess
	case "error":
		return GlyphError
	default:
		return GlyphWarning
	}
}

// Enrich splits msg into spans: keywords are marked for emphasis and status
// words get a glyph prefix. An occurrence already preceded by its glyph is
// left alone, so enriching enriched text adds nothing.
func Enrich(msg string) []Span {
	glyphs := map[int]string{}
	cuts := map[int]bool{0: true, len(msg): true}

	for _, loc := range statusPattern.FindAllStringIndex(msg, -1) {
		glyph := statusGlyph(msg[loc[0]:loc[1]])
		prefix := strings.TrimRight(msg[:loc[0]], " ")
		if strings.HasSuffix(prefix, glyph) {
			continue
		}
		glyphs[loc[0]] = glyph
		cuts[loc[0]] = true
	}

	keywordAt := map[int]int{}
	for _, loc := range keywordPattern.FindAllStringIndex(msg, -1) {
		keywordAt[loc[0]] = loc[1]
		cuts[loc[0]] = true
		cuts[loc[1]] = true
	}

	points := make([]int, 0, len(cuts))
	for p := range cuts {
		points = append(points, p)
	}
	sort.Ints(points)

	var spans []Span
	keywordEnd := -1
	for i := 0; i < len(points)-1; i++ {
		start, end := points[i], points[i+1]
		if g, ok := glyphs[start]; ok {
			spans = append(spans, Span{Kind: SpanGlyph, Text: g + " "})
		}
		if e, ok := keywordAt[start]; ok {
			keywordEnd = e
		}
		kind := SpanPlain
		if start < keywordEnd {
			kind = SpanKeyword
		}
		spans = appendSpan(spans, Span{Kind: kind, Text: msg[start:end]})
	}
	return spans
}

// appendSpan merges adjacent spans of the same kind, except glyphs
func appendSpan(spans []Span, s Span) []Span {
	if s.Text == "" {
		return spans
	}
	if n := len(spans); n > 0 && spans[n-1].Kind == s.Kind && s.Kind != SpanGlyph {
		spans[n-1].Text += s.Text
		return spans
	}
	return append(spans, s)
}

// PlainText joins spans back into unstyled text
func PlainText(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}
