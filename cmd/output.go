package cmd

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	labelStyle = lipgloss.NewStyle().Faint(true).Width(13)
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// detail renders label/value rows inside a box headed by title
type detail struct {
	title string
	rows  []string
}

func (d *detail) add(label, value string) {
	d.rows = append(d.rows, labelStyle.Render(label)+value)
}

func (d *detail) render() string {
	body := titleStyle.Render(d.title) + "\n\n" + strings.Join(d.rows, "\n")
	return boxStyle.Render(body)
}
