// Package model defines the in-memory tree the preview renders: entry nodes,
// the sort engine, and the category filter engine.
package model

import (
	"fmt"
	"sync"
	"time"
)

// LoadState tracks child loading for a folder node.
// The only transitions are Unloaded -> Loading -> Loaded; the way back is an
// explicit ResetChildren, never an implicit invalidation.
type LoadState int

const (
	Unloaded LoadState = iota
	Loading
	Loaded
)

// EntryNode represents one filesystem entry within the preview tree.
// A folder node owns its children once they are attached; children hold a
// non-owning parent reference used only for path reconstruction.
type EntryNode struct {
	Path     string    // absolute location
	Name     string    // base name for display
	IsDir    bool      // true for folders
	Size     int64     // bytes; always 0 for folders
	ModTime  time.Time // last modification time
	Category Category  // computed once at construction

	sizeLabel string // cached derived display string
	dateLabel string

	mu       sync.RWMutex
	parent   *EntryNode
	children []*EntryNode
	state    LoadState
}

// NewEntry constructs an immutable-after-construction entry record.
// Folder sizes are forced to zero so the size invariant holds regardless of
// what the caller read from the filesystem.
func NewEntry(path, name string, isDir bool, size int64, modTime time.Time) *EntryNode {
	if isDir {
		size = 0
	}
	n := &EntryNode{
		Path:     path,
		Name:     name,
		IsDir:    isDir,
		Size:     size,
		ModTime:  modTime,
		Category: Classify(name, isDir),
	}
	if isDir {
		n.sizeLabel = "--"
	} else {
		n.sizeLabel = FormatFileSize(size)
	}
	if modTime.IsZero() {
		n.dateLabel = "--"
	} else {
		n.dateLabel = modTime.Format("2006-01-02 15:04")
	}
	return n
}

// SizeLabel returns the cached human-readable size ("--" for folders).
func (n *EntryNode) SizeLabel() string { return n.sizeLabel }

// DateLabel returns the cached formatted modification time.
func (n *EntryNode) DateLabel() string { return n.dateLabel }

// Parent returns the non-owning parent reference (nil for the root).
func (n *EntryNode) Parent() *EntryNode {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.parent
}

// State returns the current child-load state.
func (n *EntryNode) State() LoadState {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.state
}

// ChildrenLoaded reports whether children have been attached.
func (n *EntryNode) ChildrenLoaded() bool {
	return n.State() == Loaded
}

// BeginLoading transitions Unloaded -> Loading. Returns false if the node is
// already loading or loaded; this is the load-once guard that coalesces
// concurrent expansion requests into a single enumeration.
func (n *EntryNode) BeginLoading() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.state != Unloaded {
		return false
	}
	n.state = Loading
	return true
}

// SetChildren attaches the full child collection atomically and marks the
// node loaded. Parent back-references are set here so enumeration never has
// to know about the tree.
func (n *EntryNode) SetChildren(children []*EntryNode) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, c := range children {
		c.mu.Lock()
		c.parent = n
		c.mu.Unlock()
	}
	n.children = children
	n.state = Loaded
}

// ResetChildren discards loaded children and returns the node to Unloaded.
// This is the only way back from Loaded.
func (n *EntryNode) ResetChildren() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.children = nil
	n.state = Unloaded
}

// Children returns the loaded child collection (nil until loaded).
// The returned slice is shared; callers must not append to it.
func (n *EntryNode) Children() []*EntryNode {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.children
}

// ChildCount returns the number of loaded children.
func (n *EntryNode) ChildCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.children)
}

// FormatFileSize formats a byte count to a human-readable string.
func FormatFileSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
