package model

import (
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the primary comparison column.
type SortKey int

const (
	SortByName SortKey = iota
	SortByDate
	SortBySize
	SortByKind
)

func (k SortKey) String() string {
	switch k {
	case SortByDate:
		return "date"
	case SortBySize:
		return "size"
	case SortByKind:
		return "kind"
	default:
		return "name"
	}
}

// ParseSortKey maps a stored preference string back to a SortKey.
// Unknown values fall back to name order.
func ParseSortKey(s string) SortKey {
	switch s {
	case "date":
		return SortByDate
	case "size":
		return SortBySize
	case "kind":
		return SortByKind
	default:
		return SortByName
	}
}

// comparer bundles a collator with sort settings. Collators are not safe for
// concurrent use, so each sort operation builds its own.
type comparer struct {
	col *collate.Collator
	key SortKey
	asc bool
}

func newComparer(key SortKey, asc bool) *comparer {
	// Numeric gives "file2" before "file10"; IgnoreCase matches how file
	// browsers order names.
	return &comparer{
		col: collate.New(language.Und, collate.Numeric, collate.IgnoreCase),
		key: key,
		asc: asc,
	}
}

// kindOf returns the string compared under SortByKind: empty for folders so
// they group together, otherwise the lowercase extension.
func kindOf(n *EntryNode) string {
	if n.IsDir {
		return ""
	}
	return strings.ToLower(filepath.Ext(n.Name))
}

// primary compares the chosen key only, returning <0, 0, >0 in ascending
// terms. Direction is applied by the caller so ties stay direction-neutral.
func (c *comparer) primary(a, b *EntryNode) int {
	switch c.key {
	case SortByDate:
		if a.ModTime.Before(b.ModTime) {
			return -1
		}
		if a.ModTime.After(b.ModTime) {
			return 1
		}
		return 0
	case SortBySize:
		switch {
		case a.Size < b.Size:
			return -1
		case a.Size > b.Size:
			return 1
		}
		return 0
	case SortByKind:
		ka, kb := kindOf(a), kindOf(b)
		if ka != kb {
			return c.col.CompareString(ka, kb)
		}
		return 0
	default:
		return c.col.CompareString(a.Name, b.Name)
	}
}

// less applies the primary key with direction, then the fixed tie-break:
// folders before files, then collated name ascending. The tie-break never
// flips with direction, which is what makes the order total and stable
// re-sorts reproducible.
func (c *comparer) less(a, b *EntryNode) bool {
	if p := c.primary(a, b); p != 0 {
		if c.asc {
			return p < 0
		}
		return p > 0
	}
	if a.IsDir != b.IsDir {
		return a.IsDir
	}
	return c.col.CompareString(a.Name, b.Name) < 0
}

// Compare orders two entries by the given key and direction, including the
// tie-break. Returns <0, 0, >0. Zero only when name and folder flag both
// compare equal.
func Compare(a, b *EntryNode, key SortKey, asc bool) int {
	c := newComparer(key, asc)
	switch {
	case c.less(a, b):
		return -1
	case c.less(b, a):
		return 1
	}
	return 0
}

// SortChildren sorts one sibling slice in place.
func SortChildren(nodes []*EntryNode, key SortKey, asc bool) {
	c := newComparer(key, asc)
	sort.SliceStable(nodes, func(i, j int) bool {
		return c.less(nodes[i], nodes[j])
	})
}

// SortTree re-sorts every already-loaded level under root, depth first.
// Unloaded subtrees are untouched; they pick up the current order when first
// enumerated. Safe to run off the UI thread: each level is sorted into a
// fresh slice and swapped in whole through SetChildren, so readers holding
// the previous slice keep iterating an unchanging snapshot.
func SortTree(root *EntryNode, key SortKey, asc bool) {
	if root == nil {
		return
	}
	root.mu.RLock()
	loaded := root.state == Loaded
	children := root.children
	root.mu.RUnlock()

	if loaded && len(children) > 0 {
		sorted := make([]*EntryNode, len(children))
		copy(sorted, children)
		c := newComparer(key, asc)
		sort.SliceStable(sorted, func(i, j int) bool {
			return c.less(sorted[i], sorted[j])
		})
		root.SetChildren(sorted)
		children = sorted
	}

	for _, child := range children {
		if child.IsDir {
			SortTree(child, key, asc)
		}
	}
}
