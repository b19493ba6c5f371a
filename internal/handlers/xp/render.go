package xp

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/KirkDiggler/xp-optimizer/internal/entities/wrathglory"
)

// AsText lists every accepted key with its bounds, one table per category
func (r *ListTargetValuesResponse) AsText() string {
	var sb strings.Builder
	sb.WriteString("The following target values are available:\n")

	sections := []struct {
		title string
		rows  []*TargetValueDescriptor
	}{
		{"TIER", []*TargetValueDescriptor{r.Tier}},
		{"ATTRIBUTES", r.Attributes},
		{"SKILLS", r.Skills},
		{"TRAITS", r.Traits},
	}
	for _, section := range sections {
		fmt.Fprintf(&sb, "\n%s\n%s\n", section.title, descriptorTable(section.rows))
	}
	return sb.String()
}

func descriptorTable(descriptors []*TargetValueDescriptor) string {
	rows := make([][]string, 0, len(descriptors))
	for _, d := range descriptors {
		if d == nil {
			continue
		}
		note := d.Attribute
		if d.Optional && d.Default != nil {
			note = fmt.Sprintf("optional, default %d", *d.Default)
		}
		rows = append(rows, []string{
			d.Name,
			strings.Join(d.Aliases, ", "),
			wrathglory.NewPartialRatingBounds(d.Min, d.Max).String(),
			note,
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		Headers("Name", "Aliases", "Bounds", "Notes").
		Rows(rows...).
		String()
}
