// Package tui is the interactive terminal dashboard.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/scopezero/scopezero/internal/engine"
)

// Layout defaults used until the first WindowSizeMsg arrives.
const (
	defaultWidth  = 100
	defaultHeight = 30

	// chromeHeight is the rows taken by header, tab bar and help line.
	chromeHeight  = 9
	minTableRows  = 3
	borderPadding = 2
	barWidth      = 30
)

// Shared styles.
//
//nolint:gochecknoglobals // lipgloss styles are immutable values.
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(engine.ColorLogistics))

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color(engine.ColorMaterials))

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color(engine.ColorOthers))

	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	ValueStyle = lipgloss.NewStyle().Bold(true)

	SubtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	TabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("245"))

	ActiveTabStyle = TabStyle.
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color(engine.ColorLogistics))

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				Padding(0, 1)

	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))
)

// Key bindings.
const (
	keyQuit     = "q"
	keyCtrlC    = "ctrl+c"
	keyReset    = "r"
	keyTab      = "tab"
	keyShiftTab = "shift+tab"
	keyRight    = "right"
	keyLeft     = "left"
)
