package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Shared styles for the phase screens.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	dangerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))

	saboteurStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("13"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// gauge renders a labelled horizontal bar for a value in [0,1]. The bar
// turns yellow past the caution mark and red past the danger mark; pass
// marks above 1 to keep it green.
func gauge(label string, value01 float64, width int, caution, danger float64) string {
	if width < 10 {
		width = 10
	}
	if value01 < 0 {
		value01 = 0
	}
	if value01 > 1 {
		value01 = 1
	}

	filled := int(value01 * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	style := okStyle
	if value01 >= danger {
		style = dangerStyle
	} else if value01 >= caution {
		style = warnStyle
	}

	return fmt.Sprintf("%s [%s] %3.0f%%", label, style.Render(bar), value01*100)
}

// shipGauge renders the hull bar: red when the hull is nearly gone,
// yellow when it is wearing down.
func shipGauge(value01 float64, width int) string {
	if value01 < 0 {
		value01 = 0
	}
	if value01 > 1 {
		value01 = 1
	}

	filled := int(value01 * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	style := okStyle
	if value01 < 0.3 {
		style = dangerStyle
	} else if value01 < 0.6 {
		style = warnStyle
	}

	return fmt.Sprintf("hull [%s] %3.0f%%", style.Render(bar), value01*100)
}

// centerText centers a single line within the given width.
func centerText(text string, width int) string {
	pad := (width - lipgloss.Width(text)) / 2
	if pad <= 0 {
		return text
	}
	return strings.Repeat(" ", pad) + text
}
