package style

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// --- Reusable Colors ---
var (
	colorPink      = lipgloss.Color("205")
	colorDarkGray  = lipgloss.Color("240")
	colorLightGray = lipgloss.Color("229")
	colorBlue      = lipgloss.Color("57")
	colorCyan      = lipgloss.Color("212")
	colorPurple    = lipgloss.Color("99")
	colorRed       = lipgloss.Color("196")
)

// --- General Purpose Styles ---
var (
	ErrorStyle         = lipgloss.NewStyle().Foreground(colorRed)
	BaseStyle          = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(colorDarkGray)
	HighlightFontStyle = lipgloss.NewStyle().Foreground(colorCyan)
	HelpStyle          = lipgloss.NewStyle().Faint(true)
)

// --- Picker Styles ---
var (
	TitleStyle      = lipgloss.NewStyle().Bold(true).Foreground(colorPink)
	CursorStyle     = lipgloss.NewStyle().Foreground(colorCyan).SetString("> ")
	SelectedStyle   = lipgloss.NewStyle().Foreground(colorPink).SetString("[x] ")
	DeselectedStyle = lipgloss.NewStyle().SetString("[ ] ")
	FolderStyle     = lipgloss.NewStyle().Foreground(colorPurple)
)

// --- Viewer Surface Styles ---
var (
	SurfaceStyle    = lipgloss.NewStyle().BorderStyle(lipgloss.DoubleBorder()).BorderForeground(colorBlue).Padding(1, 2)
	CurrentStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorLightGray)
	ThumbStyle      = lipgloss.NewStyle().Foreground(colorDarkGray)
	ActiveThumb     = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	BackgroundStyle = lipgloss.NewStyle().Foreground(colorPurple).Italic(true)
)

// NewSpinner creates a spinner with a consistent style.
func NewSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorPink)
	return s
}

// NewTableStyles returns the default styles for tables, with our custom selection style.
func NewTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Selected = styles.Selected.Foreground(colorLightGray).Background(colorBlue).Bold(false)
	return styles
}
