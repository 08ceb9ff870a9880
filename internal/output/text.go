package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/detent/triage/internal/errors"
	"github.com/detent/triage/internal/tui"
)

// dividerWidth is the standard width for section dividers
const dividerWidth = 60

// FormatText writes a human-readable summary of the groups, largest first.
// Colors are applied only when color is true.
func FormatText(w io.Writer, result *errors.Result, color bool) {
	p := tui.NewPalette(w, color)

	_, _ = fmt.Fprintln(w)

	if result.TotalErrors == 0 {
		_, _ = fmt.Fprintf(w, "%s %s\n", p.StatusIcon(true), p.Bold.Render("No errors found"))
		return
	}

	_, _ = fmt.Fprintf(w, "%s %s %s\n",
		p.StatusIcon(false),
		p.Bold.Render(fmt.Sprintf("%d error%s", result.TotalErrors, plural(result.TotalErrors))),
		p.Secondary.Render(fmt.Sprintf("in %d group%s", result.TotalGroups, plural(result.TotalGroups))))

	if hidden := result.TotalErrors - shownCount(result); hidden > 0 {
		_, _ = fmt.Fprintf(w, "  %s\n", p.Muted.Render(
			fmt.Sprintf("%d more not shown (group limit reached)", hidden)))
	}

	_, _ = fmt.Fprintf(w, "%s\n\n", p.Muted.Render(strings.Repeat("─", dividerWidth)))

	for _, g := range result.ErrorGroups {
		_, _ = fmt.Fprintf(w, "%s %s %s\n",
			p.Error.Render(g.ErrorCode),
			p.Accent.Render(g.Symbol),
			p.Muted.Render(fmt.Sprintf("×%d", g.Count)))

		for _, err := range g.Errors {
			formatError(w, p, err)
		}
		_, _ = fmt.Fprintln(w)
	}
}

// formatError writes a single error with its location to w.
func formatError(w io.Writer, p tui.Palette, err *errors.ExtractedError) {
	message := firstLine(err.Message)
	if loc := err.Location(); loc != "" {
		_, _ = fmt.Fprintf(w, "  %s %s %s\n", p.Bullet(), p.Secondary.Render(loc), message)
		return
	}
	_, _ = fmt.Fprintf(w, "  %s %s\n", p.Bullet(), message)
}

// firstLine keeps rendered messages on one line; rustc messages can be long.
func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx] + " …"
	}
	return s
}

func shownCount(result *errors.Result) int {
	n := 0
	for _, g := range result.ErrorGroups {
		n += g.Count
	}
	return n
}

// plural returns "s" if count != 1
func plural(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
