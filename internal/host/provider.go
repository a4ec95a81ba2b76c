// Package host implements the boundary with the preview subsystem: the
// prepare-preview entry point with its exactly-once completion contract,
// and the one-shot registration refresh.
package host

import (
	"context"
	"os"
	"sync/atomic"

	"github.com/folderglance/folderglance/internal/events"
	"github.com/folderglance/folderglance/internal/localfs"
	"github.com/folderglance/folderglance/internal/logging"
	"github.com/folderglance/folderglance/internal/model"
	"github.com/folderglance/folderglance/internal/prefs"
	"github.com/folderglance/folderglance/internal/tree"
)

// Session is a prepared preview: either a folder tree ready for the outline
// or a single standalone entry. Destroyed when the preview closes; nothing
// here persists.
type Session struct {
	Path  string
	IsDir bool

	// Folder previews
	Source  *tree.Source
	Listing *localfs.Listing

	// Single-item previews
	Node *model.EntryNode
}

// Provider prepares preview sessions for the host.
type Provider struct {
	prefs  *prefs.Prefs
	bus    *events.EventBus
	logger *logging.Logger
}

// NewProvider creates a provider using the given display preferences.
func NewProvider(p *prefs.Prefs, bus *events.EventBus) *Provider {
	if p == nil {
		p = prefs.Defaults()
	}
	return &Provider{
		prefs:  p,
		bus:    bus,
		logger: logging.NewLogger("host"),
	}
}

// PreparePreview resolves a path into a displayable session and invokes
// completion exactly once. A nil completion error means the view is ready
// to display; children of subfolders and preview content keep loading
// progressively afterwards. Only a failure to read the requested path
// itself produces a non-nil completion error; everything below the root
// degrades instead.
//
// Returns the session, or nil when completion received an error.
func (p *Provider) PreparePreview(ctx context.Context, path string, completion func(error)) *Session {
	// Exactly-once guard: the callback is consumed on first use no matter
	// which internal path reaches it.
	var done uint32
	complete := func(err error) {
		if atomic.CompareAndSwapUint32(&done, 0, 1) && completion != nil {
			completion(err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		p.logger.Error().Str("path", path).Err(err).Msg("preview target unreadable")
		complete(&localfs.IOError{Path: path, Err: err})
		return nil
	}

	if !info.IsDir() {
		// Alternate single-item path: the entry renders standalone through
		// the same resolution pipeline the pane uses.
		node := model.NewEntry(path, info.Name(), false, info.Size(), info.ModTime())
		complete(nil)
		return &Session{Path: path, Node: node}
	}

	source := tree.NewSource(
		localfs.ListOptions{IncludeHidden: p.prefs.ShowHidden},
		tree.WithBus(p.bus),
		tree.WithSort(model.ParseSortKey(p.prefs.SortKey), p.prefs.SortAscending),
		tree.WithFilter(model.ParseFilterCategory(p.prefs.Filter)),
	)

	listing, err := source.LoadRoot(ctx, path)
	if err != nil {
		// Root-level enumeration failure is the one error the host sees.
		p.logger.Error().Str("path", path).Err(err).Msg("root enumeration failed")
		complete(err)
		return nil
	}

	p.logger.Info().
		Str("path", path).
		Int("entries", len(listing.Entries)).
		Bool("truncated", listing.Truncated).
		Msg("preview ready")

	complete(nil)
	return &Session{
		Path:    path,
		IsDir:   true,
		Source:  source,
		Listing: listing,
	}
}
