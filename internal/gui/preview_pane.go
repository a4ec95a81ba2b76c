package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/folderglance/folderglance/internal/preview"
)

// PreviewPane displays resolved preview content: a decoded image, rendered
// markup, or the large icon fallback with its message. All mutation happens
// on the Fyne main thread; the resolver hands content over via fyne.Do.
type PreviewPane struct {
	widget.BaseWidget

	iconSize float32

	content *fyne.Container // swapped between the three modes

	placeholder *widget.Label
}

// NewPreviewPane creates an empty pane. iconSize is the edge length of the
// large fallback icon in pixels.
func NewPreviewPane(iconSize int) *PreviewPane {
	p := &PreviewPane{iconSize: float32(iconSize)}
	p.placeholder = widget.NewLabel("Select an item to preview")
	p.placeholder.Alignment = fyne.TextAlignCenter
	p.content = container.NewStack(container.NewCenter(p.placeholder))
	p.ExtendBaseWidget(p)
	return p
}

// CreateRenderer implements fyne.Widget.
func (p *PreviewPane) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(p.content)
}

// Clear resets the pane to its placeholder state.
func (p *PreviewPane) Clear() {
	p.swap(container.NewCenter(p.placeholder))
}

// ShowContent renders resolved preview content.
func (p *PreviewPane) ShowContent(c *preview.Content) {
	switch c.Mode {
	case preview.ModeImage:
		img := canvas.NewImageFromImage(c.Image)
		img.FillMode = canvas.ImageFillContain
		img.SetMinSize(fyne.NewSize(200, 200))
		p.swap(img)

	case preview.ModeMarkup:
		rich := widget.NewRichTextFromMarkdown(c.Markdown)
		rich.Wrapping = fyne.TextWrapWord
		p.swap(container.NewVScroll(rich))

	default:
		icon := canvas.NewImageFromResource(c.Icon)
		icon.FillMode = canvas.ImageFillContain
		icon.SetMinSize(fyne.NewSize(p.iconSize, p.iconSize))

		msg := widget.NewLabel(c.Message)
		msg.Alignment = fyne.TextAlignCenter

		name := widget.NewLabel(c.Node.Name)
		name.Alignment = fyne.TextAlignCenter
		name.TextStyle = fyne.TextStyle{Bold: true}

		p.swap(container.NewCenter(container.NewVBox(icon, name, msg)))
	}
}

func (p *PreviewPane) swap(obj fyne.CanvasObject) {
	p.content.Objects = []fyne.CanvasObject{obj}
	p.content.Refresh()
}
