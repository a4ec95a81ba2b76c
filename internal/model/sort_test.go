package model

import (
	"testing"
	"time"
)

// sampleFolder builds the canonical three-entry folder used across sort
// tests: a subfolder, a small old text file, and a large new image.
func sampleFolder() []*EntryNode {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return []*EntryNode{
		NewEntry("/d/sub", "sub", true, 0, base),
		NewEntry("/d/a.txt", "a.txt", false, 10, base.Add(-time.Hour)),
		NewEntry("/d/b.jpg", "b.jpg", false, 2000, base.Add(time.Hour)),
	}
}

func names(nodes []*EntryNode) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name
	}
	return out
}

func assertOrder(t *testing.T, nodes []*EntryNode, want ...string) {
	t.Helper()
	got := names(nodes)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestSortChildren(t *testing.T) {
	tests := []struct {
		name string
		key  SortKey
		asc  bool
		want []string
	}{
		{"name ascending", SortByName, true, []string{"a.txt", "b.jpg", "sub"}},
		{"name descending", SortByName, false, []string{"sub", "b.jpg", "a.txt"}},
		{"date ascending", SortByDate, true, []string{"a.txt", "sub", "b.jpg"}},
		{"date descending", SortByDate, false, []string{"b.jpg", "sub", "a.txt"}},
		// Folder size is locked to zero, so descending size drops "sub"
		// to the bottom even though directories often stat larger.
		{"size descending", SortBySize, false, []string{"b.jpg", "a.txt", "sub"}},
		{"size ascending", SortBySize, true, []string{"sub", "a.txt", "b.jpg"}},
		// Kind groups folders (empty kind) before extensions.
		{"kind ascending", SortByKind, true, []string{"sub", "b.jpg", "a.txt"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := sampleFolder()
			SortChildren(nodes, tt.key, tt.asc)
			assertOrder(t, nodes, tt.want...)
		})
	}
}

func TestSortNumericNames(t *testing.T) {
	base := time.Now()
	nodes := []*EntryNode{
		NewEntry("/d/file10.txt", "file10.txt", false, 1, base),
		NewEntry("/d/file2.txt", "file2.txt", false, 1, base),
		NewEntry("/d/file1.txt", "file1.txt", false, 1, base),
	}
	SortChildren(nodes, SortByName, true)
	assertOrder(t, nodes, "file1.txt", "file2.txt", "file10.txt")
}

func TestSortCaseInsensitiveNames(t *testing.T) {
	base := time.Now()
	nodes := []*EntryNode{
		NewEntry("/d/Zebra.txt", "Zebra.txt", false, 1, base),
		NewEntry("/d/apple.txt", "apple.txt", false, 1, base),
		NewEntry("/d/Mango.txt", "Mango.txt", false, 1, base),
	}
	SortChildren(nodes, SortByName, true)
	assertOrder(t, nodes, "apple.txt", "Mango.txt", "Zebra.txt")
}

// The tie-break is fixed: folders before files, then name ascending, and it
// never flips with the sort direction.
func TestSortTieBreakDirectionNeutral(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	build := func() []*EntryNode {
		return []*EntryNode{
			NewEntry("/d/z.txt", "z.txt", false, 0, base),
			NewEntry("/d/folder", "folder", true, 0, base),
			NewEntry("/d/a.txt", "a.txt", false, 0, base),
		}
	}

	asc := build()
	SortChildren(asc, SortBySize, true)
	assertOrder(t, asc, "folder", "a.txt", "z.txt")

	desc := build()
	SortChildren(desc, SortBySize, false)
	assertOrder(t, desc, "folder", "a.txt", "z.txt")
}

func TestSortIdempotent(t *testing.T) {
	nodes := sampleFolder()
	SortChildren(nodes, SortByName, true)
	first := names(nodes)

	SortChildren(nodes, SortByName, true)
	second := names(nodes)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("re-sort changed order: %v then %v", first, second)
		}
	}
}

func TestCompareTotalOrder(t *testing.T) {
	nodes := sampleFolder()
	for _, a := range nodes {
		for _, b := range nodes {
			ab := Compare(a, b, SortBySize, false)
			ba := Compare(b, a, SortBySize, false)
			if a == b {
				if ab != 0 {
					t.Errorf("Compare(%s, %s) = %d, want 0", a.Name, b.Name, ab)
				}
				continue
			}
			if ab == 0 || ab == ba {
				t.Errorf("Compare(%s, %s) = %d, reverse %d: not antisymmetric", a.Name, b.Name, ab, ba)
			}
		}
	}
}

func TestSortTreeRecursesLoadedLevels(t *testing.T) {
	root := NewEntry("/d", "d", true, 0, time.Now())
	sub := NewEntry("/d/sub", "sub", true, 0, time.Now())
	base := time.Now()

	root.SetChildren([]*EntryNode{
		NewEntry("/d/b.txt", "b.txt", false, 1, base),
		sub,
		NewEntry("/d/a.txt", "a.txt", false, 1, base),
	})
	sub.SetChildren([]*EntryNode{
		NewEntry("/d/sub/y.txt", "y.txt", false, 1, base),
		NewEntry("/d/sub/x.txt", "x.txt", false, 1, base),
	})

	unloaded := NewEntry("/d/sub/deep", "deep", true, 0, base)
	sub.SetChildren(append(sub.Children(), unloaded))

	SortTree(root, SortByName, true)

	assertOrder(t, root.Children(), "a.txt", "b.txt", "sub")
	assertOrder(t, sub.Children(), "deep", "x.txt", "y.txt")
	if unloaded.State() != Unloaded {
		t.Error("sort touched an unloaded subtree")
	}
}

// Re-sorting swaps in a new child slice; snapshots readers already hold
// are never mutated in place.
func TestSortTreeLeavesSnapshotsUntouched(t *testing.T) {
	base := time.Now()
	root := NewEntry("/d", "d", true, 0, base)
	b := NewEntry("/d/b.txt", "b.txt", false, 1, base)
	a := NewEntry("/d/a.txt", "a.txt", false, 1, base)
	root.SetChildren([]*EntryNode{b, a})

	snapshot := root.Children()
	SortTree(root, SortByName, true)

	if snapshot[0] != b || snapshot[1] != a {
		t.Errorf("snapshot mutated by re-sort: %v", names(snapshot))
	}
	assertOrder(t, root.Children(), "a.txt", "b.txt")
	if root.State() != Loaded {
		t.Errorf("state after re-sort = %v, want Loaded", root.State())
	}
}

func TestParseSortKeyRoundtrip(t *testing.T) {
	for _, key := range []SortKey{SortByName, SortByDate, SortBySize, SortByKind} {
		if got := ParseSortKey(key.String()); got != key {
			t.Errorf("ParseSortKey(%q) = %v, want %v", key.String(), got, key)
		}
	}
	if got := ParseSortKey("bogus"); got != SortByName {
		t.Errorf("ParseSortKey(bogus) = %v, want SortByName", got)
	}
}
