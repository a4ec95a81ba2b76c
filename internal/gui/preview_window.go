// Package gui provides the interactive preview surface: the sortable,
// filterable outline and the live preview pane. It is a thin consumer of
// the tree source and the preview resolver; the hard invariants live there.
package gui

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/folderglance/folderglance/internal/events"
	"github.com/folderglance/folderglance/internal/host"
	"github.com/folderglance/folderglance/internal/logging"
	"github.com/folderglance/folderglance/internal/model"
	"github.com/folderglance/folderglance/internal/prefs"
	"github.com/folderglance/folderglance/internal/preview"
	"github.com/folderglance/folderglance/internal/tree"
)

// rowIconSize is the pixel edge of list-row icons and thumbnails.
const rowIconSize = 24

var sortHeaders = []struct {
	key   model.SortKey
	label string
}{
	{model.SortByName, "Name"},
	{model.SortByDate, "Date"},
	{model.SortBySize, "Size"},
	{model.SortByKind, "Kind"},
}

// PreviewWindow wires the tree source, resolver, and pane into one window.
type PreviewWindow struct {
	win     fyne.Window
	session *host.Session
	source  *tree.Source

	resolver *preview.Resolver
	icons    *preview.IconCache

	prefs     *prefs.Prefs
	prefsPath string
	bus       *events.EventBus
	logger    *logging.Logger

	outline     *widget.Tree
	pane        *PreviewPane
	headerLabel *widget.Label
	statusLabel *widget.Label
	sortButtons map[model.SortKey]*widget.Button
}

// NewPreviewWindow builds the window for a prepared session. Folder sessions
// get the outline plus pane; standalone file sessions get the pane alone,
// fed through the same resolution pipeline.
func NewPreviewWindow(a fyne.App, session *host.Session, p *prefs.Prefs, prefsPath string, bus *events.EventBus) *PreviewWindow {
	w := &PreviewWindow{
		win:       a.NewWindow(session.Path),
		session:   session,
		source:    session.Source,
		icons:     preview.NewIconCache(0),
		prefs:     p,
		prefsPath: prefsPath,
		bus:       bus,
		logger:    logging.NewLogger("gui"),
	}
	w.resolver = preview.NewResolver(
		w.icons,
		preview.WithDispatcher(fyne.Do),
		preview.WithBus(bus),
	)
	w.pane = NewPreviewPane(p.IconSize)
	w.resolver.OnDeliver = w.pane.ShowContent

	w.win.SetMaster()

	if session.IsDir {
		w.win.Resize(fyne.NewSize(920, 600))
		w.win.SetContent(w.buildFolderContent())
		w.watchBus()
	} else {
		w.win.Resize(fyne.NewSize(520, 480))
		w.win.SetContent(w.pane)
		w.resolver.Select(session.Node)
	}
	return w
}

// Show displays the window.
func (w *PreviewWindow) Show() {
	w.win.Show()
}

// Window exposes the underlying Fyne window.
func (w *PreviewWindow) Window() fyne.Window {
	return w.win
}

func (w *PreviewWindow) buildFolderContent() fyne.CanvasObject {
	w.headerLabel = widget.NewLabel(w.headerText())
	w.headerLabel.TextStyle = fyne.TextStyle{Bold: true}

	filterSel := widget.NewSelect(model.FilterDisplayNames, func(label string) {
		f := model.FilterFromDisplayName(label)
		if f == w.source.Filter() {
			return
		}
		w.source.SetFilter(f)
		w.prefs.Filter = f.String()
		w.savePrefs()
	})
	filterSel.SetSelected(w.source.Filter().DisplayName())

	w.sortButtons = make(map[model.SortKey]*widget.Button)
	headerRow := container.NewHBox(HorizontalSpacer(28))
	for _, h := range sortHeaders {
		key := h.key
		btn := widget.NewButton(h.label, func() { w.onSortHeader(key) })
		w.sortButtons[key] = btn
		headerRow.Add(btn)
	}
	w.refreshSortButtons()

	w.outline = w.buildOutline()
	w.source.OnNodeLoaded = func(n *model.EntryNode) {
		fyne.Do(func() { w.outline.Refresh() })
	}
	w.source.OnRefresh = func() {
		fyne.Do(func() { w.outline.Refresh() })
	}

	w.statusLabel = widget.NewLabel("")
	w.statusLabel.TextStyle = fyne.TextStyle{Italic: true}

	topBar := container.NewBorder(nil, nil, nil,
		container.NewHBox(widget.NewLabel("Show:"), filterSel, HorizontalSpacer(4)),
		w.headerLabel)

	left := container.NewBorder(headerRow, nil, nil, nil, w.outline)
	split := container.NewHSplit(left, w.pane)
	split.SetOffset(0.45)

	return container.NewBorder(topBar, w.statusLabel, nil, nil, split)
}

func (w *PreviewWindow) buildOutline() *widget.Tree {
	t := widget.NewTree(
		func(id widget.TreeNodeID) []widget.TreeNodeID {
			return w.source.ChildIDs(id)
		},
		func(id widget.TreeNodeID) bool {
			return w.source.IsBranch(id)
		},
		func(branch bool) fyne.CanvasObject {
			icon := widget.NewIcon(nil)
			name := widget.NewLabel("name")
			name.Truncation = fyne.TextTruncateEllipsis
			size := createSizedText("999.9 MB", fyne.TextAlignTrailing)
			date := createSizedText("2006-01-02 15:04", fyne.TextAlignTrailing)
			right := container.NewHBox(size, HorizontalSpacer(10), date, HorizontalSpacer(6))
			return container.NewBorder(nil, nil, icon, right, name)
		},
		func(id widget.TreeNodeID, branch bool, obj fyne.CanvasObject) {
			w.updateRow(id, obj)
		},
	)

	t.OnSelected = func(id widget.TreeNodeID) {
		if node := w.source.Node(id); node != nil {
			w.resolver.Select(node)
		}
	}
	t.OnBranchOpened = func(id widget.TreeNodeID) {
		if node := w.source.Node(id); node != nil {
			w.source.RequestExpansion(context.Background(), node)
		}
	}
	return t
}

// updateRow fills a recycled row. Border containers keep the center object
// first, then the non-nil edge objects in declaration order.
func (w *PreviewWindow) updateRow(id widget.TreeNodeID, obj fyne.CanvasObject) {
	node := w.source.Node(id)
	if node == nil {
		return
	}

	row := obj.(*fyne.Container)
	name := row.Objects[0].(*widget.Label)
	icon := row.Objects[1].(*widget.Icon)
	right := row.Objects[2].(*fyne.Container)
	size := right.Objects[0].(*canvas.Text)
	date := right.Objects[2].(*canvas.Text)

	name.SetText(node.Name)
	size.Text = node.SizeLabel()
	date.Text = node.DateLabel()
	size.Refresh()
	date.Refresh()

	// Rows are recycled while thumbnails decode, so delivery triggers a
	// whole-tree refresh instead of touching this icon directly.
	res, _ := w.icons.LoadIcon(node, rowIconSize, fyne.Do, func(fyne.Resource) {
		w.outline.Refresh()
	})
	icon.SetResource(res)
}

func (w *PreviewWindow) onSortHeader(key model.SortKey) {
	curKey, asc := w.source.Sort()
	if key == curKey {
		asc = !asc
	} else {
		asc = true
	}
	w.source.SetSort(key, asc)
	w.refreshSortButtons()

	w.prefs.SortKey = key.String()
	w.prefs.SortAscending = asc
	w.savePrefs()
}

func (w *PreviewWindow) refreshSortButtons() {
	curKey, asc := w.source.Sort()
	for _, h := range sortHeaders {
		btn := w.sortButtons[h.key]
		if h.key != curKey {
			btn.SetText(h.label)
			continue
		}
		arrow := " ▲"
		if !asc {
			arrow = " ▼"
		}
		btn.SetText(h.label + arrow)
	}
}

func (w *PreviewWindow) headerText() string {
	l := w.session.Listing
	if l == nil {
		return ""
	}
	text := fmt.Sprintf("%d folders, %d files, %s",
		l.FolderCount, l.FileCount, model.FormatFileSize(l.TotalFileBytes))
	if l.Truncated {
		text += fmt.Sprintf(" — showing first %d of %d", len(l.Entries), l.TotalFound)
	}
	return text
}

func (w *PreviewWindow) savePrefs() {
	if err := prefs.Save(w.prefs, w.prefsPath); err != nil {
		w.logger.Warnf("could not save preferences: %v", err)
	}
}

// watchBus mirrors bus traffic into the status bar.
func (w *PreviewWindow) watchBus() {
	ch := w.bus.SubscribeAll()
	go func() {
		for ev := range ch {
			text := statusText(ev)
			if text == "" {
				continue
			}
			fyne.Do(func() { w.statusLabel.SetText(text) })
		}
	}()
}

func statusText(ev events.Event) string {
	switch e := ev.(type) {
	case *events.ListingEvent:
		switch e.EventType {
		case events.EventListingFailed:
			return fmt.Sprintf("Could not read %s", e.Path)
		case events.EventListingTruncated:
			return fmt.Sprintf("%s: showing first %d of %d entries", e.Path, e.Count, e.TotalFound)
		default:
			return fmt.Sprintf("Loaded %d entries from %s", e.Count, e.Path)
		}
	case *events.PreviewEvent:
		if e.Err != nil {
			return fmt.Sprintf("Preview failed for %s", e.Path)
		}
		return ""
	}
	return ""
}
