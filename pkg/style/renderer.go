package style

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/dotup/pkg/bootstrap"
)

// statusGlyphs maps stage outcomes to their report markers
var statusGlyphs = map[bootstrap.StageStatus]string{
	bootstrap.StatusSuccess: "✓",
	bootstrap.StatusSkipped: "-",
	bootstrap.StatusFailed:  "✗",
	bootstrap.StatusNotRun:  "·",
}

// RenderReport renders a run report, one line per stage
func RenderReport(report *bootstrap.Report, color bool) string {
	var b strings.Builder

	for _, res := range report.Results {
		glyph := statusGlyphs[res.Status]
		line := fmt.Sprintf("%s %-10s %s", glyph, res.Stage, res.Status)
		if res.Err != nil {
			line += ": " + res.Err.Error()
		}

		if color {
			switch res.Status {
			case bootstrap.StatusSuccess:
				line = SuccessStyle.Render(line)
			case bootstrap.StatusFailed:
				line = ErrorStyle.Render(line)
			default:
				line = MutedStyle.Render(line)
			}
		}

		b.WriteString(line)
		b.WriteByte('\n')
	}

	return b.String()
}

// RenderStatus renders the output of `dotup status`: per-stage
// satisfied/pending probes
func RenderStatus(names []string, satisfied map[string]bool, color bool) string {
	var b strings.Builder

	for _, name := range names {
		var line string
		if satisfied[name] {
			line = fmt.Sprintf("✓ %-10s satisfied", name)
			if color {
				line = SuccessStyle.Render(line)
			}
		} else {
			line = fmt.Sprintf("• %-10s pending", name)
			if color {
				line = WarningStyle.Render(line)
			}
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	return b.String()
}
