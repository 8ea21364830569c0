package controller

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	m "codepub.dev/pkg/codepub/internal/model"
)

type listingCounts struct {
	files       int
	directories int
	ignored     int
}

func countItems(items []m.Item) listingCounts {
	var counts listingCounts

	for _, item := range items {
		switch item.Kind {
		case m.KindDirectory:
			counts.directories++
		case m.KindIgnored:
			counts.ignored++
		default:
			counts.files++
		}
	}

	return counts
}

func renderListingTable(items []m.Item) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Kind", "Level"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, item := range items {
		table.Append([]string{string(item.Path), item.Kind.String(), fmt.Sprintf("%d", item.Level)})
	}

	counts := countItems(items)
	table.SetFooter([]string{
		fmt.Sprintf("Files %d", counts.files),
		fmt.Sprintf("Folders %d", counts.directories),
		fmt.Sprintf("Ignored %d", counts.ignored),
	})

	table.Render()

	return tableBuffer.String()
}

func renderListingYAML(items []m.Item) (string, error) {
	if items == nil {
		items = []m.Item{}
	}

	out, err := yaml.Marshal(struct {
		Items []m.Item `yaml:"items"`
	}{Items: items})
	if err != nil {
		return "", fmt.Errorf("marshal listing: %w", err)
	}

	return string(out), nil
}

func renderListing(items []m.Item, format ListFormat) (string, error) {
	if format == FormatYAML {
		return renderListingYAML(items)
	}

	return renderListingTable(items), nil
}
