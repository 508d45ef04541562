package render

import "github.com/charmbracelet/lipgloss"

// palette holds the styles a Terminal renders with. Styles are bound to the
// terminal's renderer so colour is dropped on non-TTY output.
type palette struct {
	time      lipgloss.Style
	keyword   lipgloss.Style
	glyph     lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	muted     lipgloss.Style
	node      lipgloss.Style
	connected lipgloss.Style
	offline   lipgloss.Style
	notice    map[NoticeLevel]lipgloss.Style
	category  map[string]lipgloss.Style
}

func newPalette(r *lipgloss.Renderer) palette {
	bold := r.NewStyle().Bold(true)
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c)).Bold(true)
	}

	return palette{
		time:      r.NewStyle().Foreground(lipgloss.Color("244")),
		keyword:   bold,
		glyph:     r.NewStyle(),
		label:     r.NewStyle().Foreground(lipgloss.Color("245")),
		value:     fg("62"),
		muted:     r.NewStyle().Foreground(lipgloss.Color("240")),
		node:      r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")).Padding(0, 1),
		connected: fg("42"),
		offline:   fg("196"),
		notice: map[NoticeLevel]lipgloss.Style{
			NoticeInfo:    fg("62"),
			NoticeSuccess: fg("42"),
			NoticeWarning: fg("214"),
			NoticeError:   fg("196"),
		},
		category: map[string]lipgloss.Style{
			"THINKING":     fg("75"),
			"LEARNING":     fg("42"),
			"EXECUTING":    fg("220"),
			"DELEGATION":   fg("141"),
			"ERROR":        fg("196"),
			"SYSTEM":       fg("245"),
			"ARCHITECTURE": fg("39"),
			"PATTERN":      fg("213"),
			"BLOCKER":      fg("202"),
			"ALTERNATIVE":  fg("108"),
		},
	}
}

func (p palette) categoryStyle(category string) lipgloss.Style {
	if s, ok := p.category[category]; ok {
		return s
	}
	return p.label
}
