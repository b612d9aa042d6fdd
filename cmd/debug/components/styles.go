package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/VoidMesh/dungeon/internal/chunk"
	"github.com/VoidMesh/dungeon/internal/spawn"
)

// Color definitions
var (
	// Primary colors
	PrimaryColor   = lipgloss.Color("#7D56F4")
	SecondaryColor = lipgloss.Color("#04B575")
	DangerColor    = lipgloss.Color("#F25D94")

	// Grayscale
	LightGray = lipgloss.Color("#D9D9D9")
	Gray      = lipgloss.Color("#8B8B8B")
	DarkGray  = lipgloss.Color("#383838")

	// Terrain colors
	WallColor     = lipgloss.Color("#696969") // DimGray
	FloorColor    = lipgloss.Color("#C0C0C0") // Silver
	CorridorColor = lipgloss.Color("#8B4513") // SaddleBrown
	DoorColor     = lipgloss.Color("#FFA500") // Orange

	// Spawn colors
	MonsterColor = lipgloss.Color("#F25D94")
	ItemColor    = lipgloss.Color("#00FF00") // Lime
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Align(lipgloss.Center).
			Padding(1, 2)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true).
			Padding(0, 1)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Gray).
			Padding(1)

	FocusedBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(PrimaryColor).
				Padding(0, 1)

	// Menu styles
	MenuItemStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 2)

	SelectedMenuItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(PrimaryColor).
				Bold(true).
				Padding(0, 2)

	InfoPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SecondaryColor).
			Padding(1).
			Width(34)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(DarkGray).
			Padding(0, 1)

	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true).
				Padding(0, 1)

	TableCellStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(DangerColor).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(Gray).
			Italic(true).
			Padding(1)

	ViewerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(PrimaryColor).
			Bold(true)
)

// Map symbols
const (
	ViewerSymbol   = "@"
	UnloadedSymbol = " "
	SlimeSymbol    = "s"
	GhostSymbol    = "g"
	BottleSymbol   = "!"
	TeddySymbol    = "t"
)

// TileSymbol returns the map character for a terrain tile.
func TileSymbol(t chunk.Tile) string {
	return string(t.Glyph())
}

// TileColor returns the foreground used to draw a terrain tile.
func TileColor(t chunk.Tile) lipgloss.Color {
	switch t {
	case chunk.Wall:
		return WallColor
	case chunk.Floor:
		return FloorColor
	case chunk.Corridor:
		return CorridorColor
	case chunk.Door:
		return DoorColor
	default:
		return DarkGray
	}
}

// SpawnSymbol returns the map character for a spawn marker.
func SpawnSymbol(k spawn.Kind) string {
	switch k {
	case spawn.BabySlime:
		return SlimeSymbol
	case spawn.BabyGhost:
		return GhostSymbol
	case spawn.Bottle:
		return BottleSymbol
	case spawn.Teddy:
		return TeddySymbol
	default:
		return "?"
	}
}

// SpawnColor returns the foreground used to draw a spawn marker.
func SpawnColor(k spawn.Kind) lipgloss.Color {
	switch k {
	case spawn.BabySlime, spawn.BabyGhost:
		return MonsterColor
	default:
		return ItemColor
	}
}
