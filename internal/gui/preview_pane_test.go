package gui

import (
	"image"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"

	"github.com/folderglance/folderglance/internal/model"
	"github.com/folderglance/folderglance/internal/preview"
)

func TestPreviewPaneModes(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	pane := NewPreviewPane(192)
	win := test.NewWindow(pane)
	defer win.Close()

	node := model.NewEntry("/d/blob.bin", "blob.bin", false, 1, time.Now())

	// Icon fallback: the pane shows the entry name and the message.
	pane.ShowContent(&preview.Content{
		Node:    node,
		Mode:    preview.ModeIcon,
		Icon:    preview.ThemeIcon(node),
		Message: preview.MsgNoPreview,
	})
	if len(pane.content.Objects) != 1 {
		t.Fatalf("pane holds %d objects, want 1", len(pane.content.Objects))
	}

	// Markup mode scrolls rendered rich text.
	pane.ShowContent(&preview.Content{
		Node:     node,
		Mode:     preview.ModeMarkup,
		Markdown: "# Title",
	})
	if _, ok := pane.content.Objects[0].(*container.Scroll); !ok {
		t.Errorf("markup content = %T, want scroll container", pane.content.Objects[0])
	}

	// Image mode fills the pane with the decoded picture.
	pane.ShowContent(&preview.Content{
		Node:  node,
		Mode:  preview.ModeImage,
		Image: image.NewRGBA(image.Rect(0, 0, 4, 4)),
	})

	// Clear returns to the placeholder.
	pane.Clear()
	center, ok := pane.content.Objects[0].(*fyne.Container)
	if !ok {
		t.Fatalf("cleared content = %T", pane.content.Objects[0])
	}
	if _, ok := center.Objects[0].(*widget.Label); !ok {
		t.Errorf("placeholder = %T, want label", center.Objects[0])
	}
}
