// Package tree provides the lazy data source behind the outline control:
// synchronous queries over already-loaded, already-sorted, already-filtered
// state, and asynchronous load-once expansion of folder nodes.
package tree

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/folderglance/folderglance/internal/events"
	"github.com/folderglance/folderglance/internal/localfs"
	"github.com/folderglance/folderglance/internal/logging"
	"github.com/folderglance/folderglance/internal/model"
)

// Lister is the enumeration function a Source uses to load children.
// Injectable for tests; defaults to localfs.ListDirectory.
type Lister func(ctx context.Context, dir string, opts localfs.ListOptions) (*localfs.Listing, error)

// Source backs the outline widget. ChildIDs/Node/IsBranch are pure and
// synchronous; RequestExpansion triggers at most one enumeration per node.
// All tree mutation happens through SetChildren after background work
// completes, so the widget never observes a partially-populated node.
type Source struct {
	mu          sync.RWMutex
	root        *model.EntryNode
	rootListing *localfs.Listing
	nodesByID   map[string]*model.EntryNode

	filter  model.FilterCategory
	sortKey model.SortKey
	sortAsc bool

	listOpts localfs.ListOptions
	lister   Lister
	dispatch func(func())
	logger   *logging.Logger
	bus      *events.EventBus

	// OnNodeLoaded fires on the dispatch thread when a node's children
	// become available (or its enumeration failed and it loaded empty).
	OnNodeLoaded func(*model.EntryNode)

	// OnRefresh fires on the dispatch thread after a sort or filter change
	// has been applied to all loaded levels.
	OnRefresh func()
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithLister replaces the enumeration function.
func WithLister(l Lister) SourceOption {
	return func(s *Source) { s.lister = l }
}

// WithDispatcher sets the callback used to notify the UI thread.
func WithDispatcher(d func(func())) SourceOption {
	return func(s *Source) { s.dispatch = d }
}

// WithBus attaches an event bus for listing events.
func WithBus(bus *events.EventBus) SourceOption {
	return func(s *Source) { s.bus = bus }
}

// WithSort sets the initial sort key and direction.
func WithSort(key model.SortKey, asc bool) SourceOption {
	return func(s *Source) { s.sortKey = key; s.sortAsc = asc }
}

// WithFilter sets the initial filter category.
func WithFilter(f model.FilterCategory) SourceOption {
	return func(s *Source) { s.filter = f }
}

// NewSource creates a data source with the given listing options.
func NewSource(listOpts localfs.ListOptions, opts ...SourceOption) *Source {
	s := &Source{
		nodesByID: make(map[string]*model.EntryNode),
		listOpts:  listOpts,
		lister:    localfs.ListDirectory,
		dispatch:  func(f func()) { f() },
		logger:    logging.NewLogger("tree"),
		sortKey:   model.SortByName,
		sortAsc:   true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadRoot enumerates the top-level folder and attaches it as the tree
// root. This is the only enumeration whose failure propagates: the caller
// turns it into the host completion error.
func (s *Source) LoadRoot(ctx context.Context, path string) (*localfs.Listing, error) {
	listing, err := s.lister(ctx, path, s.listOpts)
	if err != nil {
		return nil, err
	}

	root := model.NewEntry(path, filepath.Base(path), true, 0, time.Time{})

	s.mu.Lock()
	key, asc := s.sortKey, s.sortAsc
	s.mu.Unlock()
	model.SortChildren(listing.Entries, key, asc)
	root.SetChildren(listing.Entries)

	s.mu.Lock()
	s.root = root
	s.rootListing = listing
	s.nodesByID = make(map[string]*model.EntryNode, len(listing.Entries)+1)
	s.registerLocked(root)
	for _, c := range listing.Entries {
		s.registerLocked(c)
	}
	s.mu.Unlock()

	if s.bus != nil {
		s.bus.PublishListing(path, len(listing.Entries), listing.TotalFound, listing.Truncated)
	}
	return listing, nil
}

func (s *Source) registerLocked(n *model.EntryNode) {
	s.nodesByID[n.Path] = n
}

// Root returns the root node (nil before LoadRoot).
func (s *Source) Root() *model.EntryNode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.root
}

// RootListing returns the root enumeration result for header display.
func (s *Source) RootListing() *localfs.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rootListing
}

// Node resolves an outline ID to its node. The empty ID is the root.
func (s *Source) Node(id string) *model.EntryNode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id == "" {
		return s.root
	}
	return s.nodesByID[id]
}

// visibleChildren applies the current filter to a node's loaded children.
// Children are kept sorted at attach time, and filtering preserves order,
// so the projection needs no re-sort.
func (s *Source) visibleChildren(n *model.EntryNode) []*model.EntryNode {
	if n == nil {
		return nil
	}
	s.mu.RLock()
	f := s.filter
	s.mu.RUnlock()
	return model.VisibleChildren(n.Children(), f)
}

// ChildIDs returns the outline IDs of a node's visible children.
func (s *Source) ChildIDs(id string) []string {
	children := s.visibleChildren(s.Node(id))
	ids := make([]string, len(children))
	for i, c := range children {
		ids[i] = c.Path
	}
	return ids
}

// ChildCount returns the number of visible children of a node.
func (s *Source) ChildCount(n *model.EntryNode) int {
	return len(s.visibleChildren(n))
}

// ChildAt returns the visible child at index i, or nil when out of range.
func (s *Source) ChildAt(n *model.EntryNode, i int) *model.EntryNode {
	children := s.visibleChildren(n)
	if i < 0 || i >= len(children) {
		return nil
	}
	return children[i]
}

// IsBranch reports whether an outline ID denotes an expandable node.
func (s *Source) IsBranch(id string) bool {
	n := s.Node(id)
	return n != nil && n.IsDir
}

// RequestExpansion ensures a folder node's children are loaded. Already
// loaded nodes complete synchronously. An unloaded node triggers exactly one
// enumeration no matter how many concurrent requests arrive; the load-once
// guard lives on the node itself. Enumeration failure degrades to zero
// children plus a logged diagnostic, never an error to the caller.
func (s *Source) RequestExpansion(ctx context.Context, n *model.EntryNode) {
	if n == nil || !n.IsDir {
		return
	}
	if n.ChildrenLoaded() {
		if s.OnNodeLoaded != nil {
			s.OnNodeLoaded(n)
		}
		return
	}
	if !n.BeginLoading() {
		// A concurrent request already owns the load.
		return
	}

	go func() {
		listing, err := s.lister(ctx, n.Path, s.listOpts)
		var children []*model.EntryNode
		if err != nil {
			s.logger.Warn().Str("path", n.Path).Err(err).Msg("expansion failed, showing empty folder")
			if s.bus != nil {
				s.bus.PublishListingError(n.Path, err)
			}
			children = []*model.EntryNode{}
		} else {
			children = listing.Entries
			s.mu.RLock()
			key, asc := s.sortKey, s.sortAsc
			s.mu.RUnlock()
			model.SortChildren(children, key, asc)
			if s.bus != nil {
				s.bus.PublishListing(n.Path, len(children), listing.TotalFound, listing.Truncated)
			}
		}

		n.SetChildren(children)

		s.mu.Lock()
		for _, c := range children {
			s.registerLocked(c)
		}
		s.mu.Unlock()

		s.dispatch(func() {
			if s.OnNodeLoaded != nil {
				s.OnNodeLoaded(n)
			}
		})
	}()
}

// Sort returns the current sort settings.
func (s *Source) Sort() (model.SortKey, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortKey, s.sortAsc
}

// SetSort changes the global sort key and direction, then re-sorts every
// already-loaded level recursively off the caller's thread, so cached
// subtrees stay consistent with the new order without a second fetch.
// OnRefresh fires once the whole tree is re-sorted.
func (s *Source) SetSort(key model.SortKey, asc bool) {
	s.mu.Lock()
	s.sortKey = key
	s.sortAsc = asc
	root := s.root
	s.mu.Unlock()

	go func() {
		model.SortTree(root, key, asc)
		s.dispatch(func() {
			if s.OnRefresh != nil {
				s.OnRefresh()
			}
		})
	}()
}

// Filter returns the current filter category.
func (s *Source) Filter() model.FilterCategory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// SetFilter changes the visible projection. Purely synchronous state: no
// enumeration is triggered or cancelled, loaded data is untouched.
func (s *Source) SetFilter(f model.FilterCategory) {
	s.mu.Lock()
	s.filter = f
	s.mu.Unlock()

	if s.OnRefresh != nil {
		s.OnRefresh()
	}
}
