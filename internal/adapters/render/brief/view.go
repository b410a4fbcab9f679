package brief

import (
	"fmt"
	"sort"
	"strings"

	"github.com/RRRwang/vxtuisong/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

var fixedFieldOrder = []string{"date", "region", "weather", "temp", "wind_dir"}

// RenderPayload renders the composed briefing as a field list: the five
// fixed fields first, then the generated anniversary and birthday fields in
// index order. Each value is tinted with the field's own color.
func RenderPayload(payload domain.Payload) string {
	s := newStyles()

	lines := []string{
		s.title.Render("Daily briefing"),
		s.header.Render(fmt.Sprintf("fields: %d", len(payload))),
	}

	if len(payload) == 0 {
		lines = append(lines, s.empty.Render("No fields composed."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, key := range orderedKeys(payload) {
		field := payload[key]
		value := lipgloss.NewStyle().Foreground(lipgloss.Color(field.Color)).Render(field.Value)
		lines = append(lines, fmt.Sprintf("%s %s", s.fieldKey.Render(key+":"), value))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// RenderReport renders the dispatch result: per-recipient marks and the
// sent/failed totals.
func RenderReport(report domain.DeliveryReport) string {
	s := newStyles()

	lines := []string{s.title.Render("Delivery report")}
	for _, outcome := range report.Outcomes {
		mark := s.okMark.Render("✓")
		if !outcome.Succeeded {
			mark = s.failMark.Render("✗")
		}
		lines = append(lines, fmt.Sprintf("%s %s", mark, s.recipient.Render(outcome.Recipient)))
	}

	summary := fmt.Sprintf("%s sent, %s failed",
		s.okCount.Render(fmt.Sprintf("%d", report.Sent)),
		s.failCount.Render(fmt.Sprintf("%d", report.Failed)))
	lines = append(lines, s.summaryRow.Render(summary))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func orderedKeys(payload domain.Payload) []string {
	keys := make([]string, 0, len(payload))
	for _, key := range fixedFieldOrder {
		if _, ok := payload[key]; ok {
			keys = append(keys, key)
		}
	}

	var generated []string
	for key := range payload {
		if !isFixed(key) {
			generated = append(generated, key)
		}
	}
	sort.Slice(generated, func(i, j int) bool {
		// anniversary_* keys sort before birthday_*; within a category the
		// numeric suffix decides, so _10 lands after _9.
		pi, ni := splitKey(generated[i])
		pj, nj := splitKey(generated[j])
		if pi != pj {
			return pi < pj
		}
		return ni < nj
	})

	return append(keys, generated...)
}

func isFixed(key string) bool {
	for _, fixed := range fixedFieldOrder {
		if key == fixed {
			return true
		}
	}
	return false
}

func splitKey(key string) (string, int) {
	idx := strings.LastIndex(key, "_")
	if idx < 0 {
		return key, 0
	}

	var n int
	_, err := fmt.Sscanf(key[idx+1:], "%d", &n)
	if err != nil {
		return key, 0
	}
	return key[:idx], n
}
