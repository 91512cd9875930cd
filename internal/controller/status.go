package controller

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
	m "tagrade.dev/pkg/tagrade/internal/model"
)

// StatusFormat selects how DisplayStatus renders rows.
type StatusFormat string

// Supported status formats.
const (
	StatusTable StatusFormat = "table"
	StatusYAML  StatusFormat = "yaml"
)

// ParseStatusFormat validates a --format value.
func ParseStatusFormat(value string) (StatusFormat, error) {
	switch StatusFormat(strings.ToLower(strings.TrimSpace(value))) {
	case "", StatusTable:
		return StatusTable, nil
	case StatusYAML:
		return StatusYAML, nil
	}

	return "", fmt.Errorf("unknown status format %q (want %s or %s)", value, StatusTable, StatusYAML)
}

func renderStatus(w io.Writer, rows []m.StatusRow, format StatusFormat) error {
	switch format {
	case StatusYAML:
		return renderStatusYAML(w, rows)
	case StatusTable, "":
		_, err := io.WriteString(w, renderStatusTable(rows))
		return err
	}

	return fmt.Errorf("unknown status format %q", format)
}

func renderStatusYAML(w io.Writer, rows []m.StatusRow) error {
	if rows == nil {
		rows = []m.StatusRow{}
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(rows); err != nil {
		return fmt.Errorf("encode status: %w", err)
	}

	return encoder.Close()
}

func renderStatusTable(rows []m.StatusRow) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"NetID", "Submitted", "Graded", "Graded By", "Scoresheet", "Total", "Sources"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoFormatHeaders(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})

	submitted := 0
	graded := 0

	for _, row := range rows {
		if row.Submitted {
			submitted++
		}

		if row.Graded {
			graded++
		}

		table.Append([]string{
			row.NetID,
			yesNo(row.Submitted),
			yesNo(row.Graded),
			row.GradedBy,
			string(row.Scoresheet),
			formatTotal(row.StatedTotal),
			fmt.Sprintf("%d", row.SourceFiles),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Students %d", len(rows)),
		fmt.Sprintf("%d", submitted),
		fmt.Sprintf("%d", graded),
		"", "", "", "",
	})

	table.Render()

	return tableBuffer.String()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}

	return "no"
}

func formatTotal(total *int) string {
	if total == nil {
		return "-"
	}

	return fmt.Sprintf("%d", *total)
}
