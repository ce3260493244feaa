package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds every style the views use. Views never build styles inline.
type Theme struct {
	Header          lipgloss.Style
	Muted           lipgloss.Style
	Title           lipgloss.Style
	Done            lipgloss.Style
	Cursor          lipgloss.Style
	Description     lipgloss.Style
	DoneDescription lipgloss.Style
	Created         lipgloss.Style
	Empty           lipgloss.Style
	FilterOn        lipgloss.Style
	FilterOff       lipgloss.Style
	Status          lipgloss.Style
	Error           lipgloss.Style
	Modal           lipgloss.Style
	ModalTitle      lipgloss.Style
	Label           lipgloss.Style
	CounterBase     lipgloss.Style
	GradientFrom    string
	GradientTo      string
}

func DefaultTheme() Theme {
	accent := lipgloss.Color("#7B5EA7")
	muted := lipgloss.Color("#757575")
	return Theme{
		Header:          lipgloss.NewStyle().Bold(true).Foreground(accent),
		Muted:           lipgloss.NewStyle().Foreground(muted),
		Title:           lipgloss.NewStyle(),
		Done:            lipgloss.NewStyle().Foreground(muted).Strikethrough(true),
		Cursor:          lipgloss.NewStyle().Foreground(accent).Bold(true),
		Description:     lipgloss.NewStyle().Foreground(muted).PaddingLeft(6),
		DoneDescription: lipgloss.NewStyle().Foreground(muted).PaddingLeft(6).Strikethrough(true),
		Created:         lipgloss.NewStyle().Foreground(muted).PaddingLeft(6),
		Empty:           lipgloss.NewStyle().Foreground(muted).Italic(true).Padding(1, 4),
		FilterOn:        lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(accent).Padding(0, 1),
		FilterOff:       lipgloss.NewStyle().Padding(0, 1),
		Status:          lipgloss.NewStyle().Foreground(lipgloss.Color("70")),
		Error:           lipgloss.NewStyle().Foreground(lipgloss.Color("#E53E3E")),
		Modal:           lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(1, 2),
		ModalTitle:      lipgloss.NewStyle().Bold(true).MarginBottom(1),
		Label:           lipgloss.NewStyle().Bold(true),
		CounterBase:     lipgloss.NewStyle(),
		GradientFrom:    "#9B79CF",
		GradientTo:      "#674C8C",
	}
}

// Counter renders "n/limit" in the colour counterColor picks for n.
func (t Theme) Counter(n, limit int, steps [3]int) string {
	return t.CounterBase.Foreground(counterColor(n, steps)).Render(fmt.Sprintf("%d/%d", n, limit))
}

// counterColor steps from grey through amber and orange to red as n passes
// each of the thresholds.
func counterColor(n int, steps [3]int) lipgloss.Color {
	switch {
	case n <= steps[0]:
		return lipgloss.Color("#757575")
	case n <= steps[1]:
		return lipgloss.Color("#D69E2E")
	case n <= steps[2]:
		return lipgloss.Color("#ED8936")
	default:
		return lipgloss.Color("#E53E3E")
	}
}

var (
	titleCounterSteps       = [3]int{20, 25, 28}
	descriptionCounterSteps = [3]int{100, 120, 140}
)
