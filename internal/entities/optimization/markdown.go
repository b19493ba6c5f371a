package optimization

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Cell values used in the Markdown tables
const (
	missingCell = "-"
	missedYes   = "YES"
	missedNo    = "NO"
)

// AsMarkdown renders the result as GitHub-flavoured Markdown: one section per
// category with a table of totals.
func (r *Result) AsMarkdown() string {
	sections := []struct {
		title string
		body  string
	}{
		{"Tier", strconv.Itoa(int(r.Tier))},
		{"Attributes", r.Attributes.AsMarkdown()},
		{"Skills", r.Skills.AsMarkdown()},
		{"Traits", r.Traits.AsMarkdown()},
		{"XPCost", r.XPCost.AsMarkdown()},
	}

	var sb strings.Builder
	for _, section := range sections {
		fmt.Fprintf(&sb, "\n## %s\n\n%s\n", section.title, section.body)
	}
	return sb.String()
}

// AsMarkdown renders the Name, Total, Target and Missed columns
func (p *PropertyResults) AsMarkdown() string {
	rows := make([][]string, 0, len(p.Names))
	for _, name := range p.Names {
		target, missed := p.targetCells(name)
		rows = append(rows, []string{name, strconv.Itoa(p.Total[name]), target, missed})
	}
	return markdownTable([]string{"Name", "Total", "Target", "Missed"}, rows)
}

// AsMarkdown renders the Name, Rank, Total, Target and Missed columns
func (s *SkillResults) AsMarkdown() string {
	rows := make([][]string, 0, len(s.Names))
	for _, name := range s.Names {
		target, missed := s.targetCells(name)
		rows = append(rows, []string{
			name,
			strconv.Itoa(s.Rank[name]),
			strconv.Itoa(s.Total[name]),
			target,
			missed,
		})
	}
	return markdownTable([]string{"Name", "Rank", "Total", "Target", "Missed"}, rows)
}

// AsMarkdown renders the cost per category and the total
func (c XPCost) AsMarkdown() string {
	return markdownTable([]string{"Name", "Cost"}, [][]string{
		{"Attributes", strconv.Itoa(c.Attributes)},
		{"Skills", strconv.Itoa(c.Skills)},
		{"Total", strconv.Itoa(c.Total())},
	})
}

func (p *PropertyResults) targetCells(name string) (string, string) {
	target, ok := p.Target[name]
	if !ok {
		return missingCell, missingCell
	}
	if p.IsMissed(name) {
		return strconv.Itoa(target), missedYes
	}
	return strconv.Itoa(target), missedNo
}

func markdownTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.MarkdownBorder()).
		BorderTop(false).
		BorderBottom(false).
		Headers(headers...).
		Rows(rows...).
		String()
}
