package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).
			Width(44)
	graphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd75f")).Padding(1, 0)

	runningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#87d7ff"))
	pausedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff8700"))
	doneStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffff00"))

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8a8a8a")).Width(12)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5f5f87")).Italic(true).MarginTop(1)
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffff00")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#5f5f00"))
)

// Bar colors run from the core outward.
var depthColors = []lipgloss.Color{"#d70000", "#ff5f00", "#ffaf00", "#ffff00"}

// surfaceBar renders how far the leading photon has travelled toward the
// surface. frac is clamped to [0, 1]; the bar takes the color of the shell
// the photon has reached.
func surfaceBar(frac float64, width int) string {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(frac * float64(width))
	shell := int(frac * float64(len(depthColors)))
	if shell == len(depthColors) {
		shell--
	}
	bar := lipgloss.NewStyle().Foreground(depthColors[shell]).Render(strings.Repeat("█", filled))
	return bar + strings.Repeat("░", width-filled)
}

func statLine(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
}
