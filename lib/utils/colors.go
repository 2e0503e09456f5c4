package utils

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var Success = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
var Fail = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
var Warning = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff9300")) // yellow
var Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))       // gray
var Gray = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))          // gray
var Cyan = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
var Default = lipgloss.NewStyle()

var WarningWithBackground = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#000000")). // black text for contrast
	Background(lipgloss.Color("#ff9300")).
	Padding(0, 1)

var ErrorWithBackground = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#000000")). // black text for contrast
	Background(lipgloss.Color("196")).
	Padding(0, 1)

// Output receives progress lines and log records.
var Output io.Writer = os.Stderr

func LogWithColor(color lipgloss.Style, text string) {
	fmt.Fprintln(Output, color.Render(text))
}
