package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
)

// HorizontalSpacer creates a fixed-width horizontal spacer.
func HorizontalSpacer(width float32) fyne.CanvasObject {
	spacer := canvas.NewRectangle(nil) // Transparent
	spacer.SetMinSize(fyne.NewSize(width, 0))
	return spacer
}

// VerticalSpacer creates a fixed-height vertical spacer.
func VerticalSpacer(height float32) fyne.CanvasObject {
	spacer := canvas.NewRectangle(nil)
	spacer.SetMinSize(fyne.NewSize(0, height))
	return spacer
}

// rowTextScale shrinks row detail text for a compact listing.
const rowTextScale = 0.85

// createSizedText creates a canvas.Text with scaled font size for the
// size/date columns.
func createSizedText(content string, align fyne.TextAlign) *canvas.Text {
	text := canvas.NewText(content, theme.ForegroundColor())
	text.TextSize = theme.TextSize() * rowTextScale
	text.Alignment = align
	return text
}
