package model

import (
	"testing"
	"time"
)

func filterSample() []*EntryNode {
	base := time.Now()
	return []*EntryNode{
		NewEntry("/d/docs", "docs", true, 0, base),
		NewEntry("/d/photo.png", "photo.png", false, 100, base),
		NewEntry("/d/notes.md", "notes.md", false, 50, base),
		NewEntry("/d/song.mp3", "song.mp3", false, 900, base),
		NewEntry("/d/data.bin", "data.bin", false, 10, base),
	}
}

func TestFilterMatches(t *testing.T) {
	tests := []struct {
		filter FilterCategory
		want   []string
	}{
		{FilterAll, []string{"docs", "photo.png", "notes.md", "song.mp3", "data.bin"}},
		{FilterFolders, []string{"docs"}},
		{FilterImages, []string{"photo.png"}},
		// Documents is the residual bucket: text and unclassified files,
		// never folders, images, or media.
		{FilterDocuments, []string{"notes.md", "data.bin"}},
		{FilterMedia, []string{"song.mp3"}},
	}
	for _, tt := range tests {
		t.Run(tt.filter.String(), func(t *testing.T) {
			visible := VisibleChildren(filterSample(), tt.filter)
			got := names(visible)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestFilterNonDestructive(t *testing.T) {
	nodes := filterSample()
	SortChildren(nodes, SortByName, true)
	before := names(nodes)

	VisibleChildren(nodes, FilterImages)
	VisibleChildren(nodes, FilterMedia)

	after := names(nodes)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("filtering mutated the source slice: %v then %v", before, after)
		}
	}
}

func TestFilterAllReturnsInput(t *testing.T) {
	nodes := filterSample()
	visible := VisibleChildren(nodes, FilterAll)
	if len(visible) != len(nodes) {
		t.Fatalf("FilterAll dropped entries: %d of %d", len(visible), len(nodes))
	}
	for i := range nodes {
		if visible[i] != nodes[i] {
			t.Fatal("FilterAll reordered entries")
		}
	}
}

// Filtered projection preserves the sorted order of the source.
func TestFilterPreservesSortOrder(t *testing.T) {
	base := time.Now()
	nodes := []*EntryNode{
		NewEntry("/d/c.png", "c.png", false, 3, base),
		NewEntry("/d/a.png", "a.png", false, 1, base),
		NewEntry("/d/x.txt", "x.txt", false, 2, base),
		NewEntry("/d/b.png", "b.png", false, 2, base),
	}
	SortChildren(nodes, SortByName, true)

	visible := VisibleChildren(nodes, FilterImages)
	got := names(visible)
	want := []string{"a.png", "b.png", "c.png"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestFilterDisplayNameRoundtrip(t *testing.T) {
	for _, label := range FilterDisplayNames {
		f := FilterFromDisplayName(label)
		if f.DisplayName() != label {
			t.Errorf("display name roundtrip %q -> %v -> %q", label, f, f.DisplayName())
		}
	}
	for _, s := range []string{"all", "folders", "images", "documents", "media"} {
		if got := ParseFilterCategory(s).String(); got != s {
			t.Errorf("ParseFilterCategory roundtrip %q -> %q", s, got)
		}
	}
}
