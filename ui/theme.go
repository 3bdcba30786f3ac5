package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// AppTheme is the default theme with a navy accent.
type AppTheme struct{}

var _ fyne.Theme = (*AppTheme)(nil)

var (
	accentColor = color.NRGBA{R: 15, G: 43, B: 70, A: 255}
	accentLight = color.NRGBA{R: 80, G: 150, B: 220, A: 255}
)

func (t *AppTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	accent := accentColor
	if variant == theme.VariantDark {
		accent = accentLight
	}
	switch name {
	case theme.ColorNamePrimary, theme.ColorNameFocus:
		return accent
	case theme.ColorNameSelection:
		return color.NRGBA{R: accent.R, G: accent.G, B: accent.B, A: 64}
	}
	return theme.DefaultTheme().Color(name, variant)
}

func (t *AppTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *AppTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *AppTheme) Size(name fyne.ThemeSizeName) float32 {
	if name == theme.SizeNamePadding {
		return 6
	}
	return theme.DefaultTheme().Size(name)
}
