// Package agent layers rule-based report generation on top of the tools
// package. Each agent runs a fixed pipeline of tool calls, derives insights
// and recommendations from the numbers, and wraps everything in a report
// envelope with a stable ID and timestamp.
package agent

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"seo-audit-agent/tools"
)

// Focus areas accepted by the audit agent.
const (
	FocusTechnical   = "technical"
	FocusPerformance = "performance"
	FocusContent     = "content"
	FocusAll         = "all"
)

// Agent runs multi-step analysis workflows over the shared toolset.
type Agent struct {
	tools *tools.Tools
}

// New builds an Agent on top of the given toolset.
func New(t *tools.Tools) *Agent {
	return &Agent{tools: t}
}

// newReportID returns the identifier stamped on every generated report.
func newReportID() string { return uuid.NewString() }

func timestamp() string { return time.Now().Format(time.RFC3339) }

// resolveFocus normalizes the requested focus areas. Empty input, "all", or
// a list with no recognised area selects every section. Unknown entries are
// ignored rather than rejected, callers often send free-form strings.
func resolveFocus(areas []string) map[string]bool {
	selected := make(map[string]bool)
	for _, area := range areas {
		normalized := strings.ToLower(strings.TrimSpace(area))
		switch normalized {
		case FocusAll:
			return map[string]bool{FocusTechnical: true, FocusPerformance: true, FocusContent: true}
		case FocusTechnical, FocusPerformance, FocusContent:
			selected[normalized] = true
		}
	}
	if len(selected) == 0 {
		return map[string]bool{FocusTechnical: true, FocusPerformance: true, FocusContent: true}
	}
	return selected
}
