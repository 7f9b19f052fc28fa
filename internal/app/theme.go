package app

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// CytoSegTheme provides a custom theme for the viewer.
type CytoSegTheme struct{}

var _ fyne.Theme = (*CytoSegTheme)(nil)

func (t *CytoSegTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return color.NRGBA{R: 0x00, G: 0x69, B: 0x8C, A: 0xFF} // Cyan-blue, phase-contrast tint
	case theme.ColorNameSelection:
		return color.NRGBA{R: 0xE9, G: 0x4F, B: 0x64, A: 0x80} // Overlay accent
	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

func (t *CytoSegTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *CytoSegTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *CytoSegTheme) Size(name fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(name)
}
