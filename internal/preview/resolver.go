package preview

import (
	"image"
	"os"
	"sync"
	"time"

	"fyne.io/fyne/v2"

	"github.com/folderglance/folderglance/internal/events"
	"github.com/folderglance/folderglance/internal/logging"
	"github.com/folderglance/folderglance/internal/model"
)

// Mode is the rendering mode for a resolved preview. A pure function of the
// entry's content category; binary files never reach the image decoder.
type Mode int

const (
	ModeImage Mode = iota
	ModeMarkup
	ModeIcon
)

func (m Mode) String() string {
	switch m {
	case ModeImage:
		return "image"
	case ModeMarkup:
		return "markup"
	default:
		return "icon"
	}
}

// ModeFor decides the rendering mode from a content category.
func ModeFor(c model.Category) Mode {
	switch c {
	case model.CategoryImage:
		return ModeImage
	case model.CategoryText:
		return ModeMarkup
	default:
		return ModeIcon
	}
}

// Fixed fallback messages shown under the large icon.
const (
	MsgNoPreview    = "No preview available"
	MsgDecodeFailed = "Could not load image"
	MsgReadFailed   = "Could not read file"
	MsgFolder       = "Folder"
	MsgMedia        = "Audio/video file"
)

// Content is the resolved, renderable preview for one entry. Exactly one of
// the mode-specific fields is populated.
type Content struct {
	Node *model.EntryNode
	Mode Mode

	Image    image.Image   // ModeImage
	Markdown string        // ModeMarkup, fed to the rich text pane
	Icon     fyne.Resource // ModeIcon
	Message  string        // ModeIcon explanatory text

	// Err records the decode or read failure behind an icon fallback.
	// Nil for genuine icon-mode content (folders, media, binaries).
	Err error
}

// DefaultDebounce collapses rapid keyboard/mouse selection changes into a
// single resolution request.
const DefaultDebounce = 75 * time.Millisecond

// Resolver tracks the current selection and asynchronously produces preview
// content for it. Selecting a different node orphans the in-flight work: a
// completion is applied only if its selection generation is still current.
// Re-selecting the same node keeps the generation, so the pending load is
// reused and its delivery still applies — at most one load per selection.
type Resolver struct {
	mu       sync.Mutex
	current  *model.EntryNode
	debounce *time.Timer

	// gen advances whenever the selection moves to a different node, so a
	// completion is applied only if its generation is still current.
	// loadingGen marks the generation with a load in flight (0 = idle);
	// re-selecting the same node reuses that load instead of starting a
	// duplicate.
	gen        uint64
	loadingGen uint64

	interval time.Duration
	dispatch func(func())
	loader   func(*model.EntryNode) *Content
	icons    *IconCache
	logger   *logging.Logger
	bus      *events.EventBus

	// OnDeliver receives resolved content on the dispatch thread. Set once
	// before the first Select.
	OnDeliver func(*Content)
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithDispatcher sets the callback used to hand results to the UI thread
// (fyne.Do in the GUI). The default invokes inline.
func WithDispatcher(d func(func())) Option {
	return func(r *Resolver) { r.dispatch = d }
}

// WithDebounce overrides the selection debounce interval.
func WithDebounce(d time.Duration) Option {
	return func(r *Resolver) { r.interval = d }
}

// WithLoader replaces the content loader. Tests use this to control timing.
func WithLoader(loader func(*model.EntryNode) *Content) Option {
	return func(r *Resolver) { r.loader = loader }
}

// WithBus attaches an event bus for preview delivery events.
func WithBus(bus *events.EventBus) Option {
	return func(r *Resolver) { r.bus = bus }
}

// NewResolver creates a resolver backed by the given icon cache.
func NewResolver(icons *IconCache, opts ...Option) *Resolver {
	r := &Resolver{
		interval: DefaultDebounce,
		dispatch: func(f func()) { f() },
		icons:    icons,
		logger:   logging.NewLogger("preview"),
	}
	r.loader = r.buildContent
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Select records a new selection and restarts the debounce window. The
// generation advances immediately when the node changes, so an in-flight
// resolution for the previous node is already orphaned before its completion
// lands. A nil node clears the selection.
func (r *Resolver) Select(node *model.EntryNode) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if node != r.current {
		r.gen++
	}
	r.current = node
	if r.debounce != nil {
		r.debounce.Stop()
		r.debounce = nil
	}
	if node == nil {
		return
	}
	if r.loadingGen == r.gen {
		// This selection already has a load in flight; its completion
		// still applies, so a second load would only duplicate work.
		return
	}
	gen := r.gen
	r.debounce = time.AfterFunc(r.interval, func() {
		r.resolve(node, gen)
	})
}

// Cancel clears the selection and any pending debounce. Used on session end.
func (r *Resolver) Cancel() {
	r.Select(nil)
}

// Current returns the currently selected node.
func (r *Resolver) Current() *model.EntryNode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// resolve runs off the UI thread: loads content for node, then delivers on
// the dispatch thread if node is still the current selection.
func (r *Resolver) resolve(node *model.EntryNode, gen uint64) {
	r.mu.Lock()
	if r.gen != gen {
		// Selection moved on during the debounce window.
		r.mu.Unlock()
		return
	}
	r.loadingGen = gen
	r.mu.Unlock()

	content := r.loader(node)

	r.mu.Lock()
	if r.loadingGen == gen {
		r.loadingGen = 0
	}
	r.mu.Unlock()

	r.dispatch(func() {
		r.mu.Lock()
		stale := r.gen != gen
		r.mu.Unlock()
		if stale {
			// A newer selection owns the pane.
			return
		}
		if r.OnDeliver != nil {
			r.OnDeliver(content)
		}
		if r.bus != nil {
			r.bus.PublishPreview(node.Path, content.Mode.String(), content.Err)
		}
	})
}

// buildContent produces preview content for a node. Decode and read
// failures degrade to the icon fallback; they never propagate.
func (r *Resolver) buildContent(node *model.EntryNode) *Content {
	switch ModeFor(node.Category) {
	case ModeImage:
		img, err := DecodeImage(node.Path)
		if err != nil {
			r.logger.Warn().Str("path", node.Path).Err(err).Msg("image decode failed, falling back to icon")
			c := r.iconContent(node, MsgDecodeFailed)
			c.Err = err
			return c
		}
		return &Content{Node: node, Mode: ModeImage, Image: img}

	case ModeMarkup:
		data, err := os.ReadFile(node.Path)
		if err != nil {
			r.logger.Warn().Str("path", node.Path).Err(err).Msg("text read failed, falling back to icon")
			c := r.iconContent(node, MsgReadFailed)
			c.Err = err
			return c
		}
		return &Content{
			Node:     node,
			Mode:     ModeMarkup,
			Markdown: MarkdownForFile(node.Name, data),
		}

	default:
		msg := MsgNoPreview
		switch node.Category {
		case model.CategoryFolder:
			msg = MsgFolder
		case model.CategoryMedia:
			msg = MsgMedia
		}
		return r.iconContent(node, msg)
	}
}

func (r *Resolver) iconContent(node *model.EntryNode, msg string) *Content {
	return &Content{
		Node:    node,
		Mode:    ModeIcon,
		Icon:    ThemeIcon(node),
		Message: msg,
	}
}
