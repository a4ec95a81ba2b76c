package model

import (
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		isDir bool
		want  Category
	}{
		{"Documents", true, CategoryFolder},
		{"photo.JPG", false, CategoryImage},
		{"photo.heic", false, CategoryImage},
		{"notes.md", false, CategoryText},
		{"main.go", false, CategoryText},
		{"song.mp3", false, CategoryMedia},
		{"clip.MOV", false, CategoryMedia},
		{"archive.zip", false, CategoryOther},
		{"no_extension", false, CategoryOther},
		{"weird.txt", true, CategoryFolder}, // directory wins over extension
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.name, tt.isDir); got != tt.want {
				t.Errorf("Classify(%q, %v) = %v, want %v", tt.name, tt.isDir, got, tt.want)
			}
		})
	}
}

func TestNewEntryFolderSizeForcedZero(t *testing.T) {
	n := NewEntry("/tmp/d", "d", true, 4096, time.Now())
	if n.Size != 0 {
		t.Errorf("folder size = %d, want 0", n.Size)
	}
	if n.SizeLabel() != "--" {
		t.Errorf("folder size label = %q, want --", n.SizeLabel())
	}
}

func TestNewEntryLabels(t *testing.T) {
	mod := time.Date(2024, 3, 15, 9, 30, 0, 0, time.Local)
	n := NewEntry("/tmp/a.txt", "a.txt", false, 2048, mod)
	if n.SizeLabel() != "2.0 KB" {
		t.Errorf("size label = %q, want 2.0 KB", n.SizeLabel())
	}
	if n.DateLabel() != "2024-03-15 09:30" {
		t.Errorf("date label = %q", n.DateLabel())
	}

	zero := NewEntry("/tmp/z", "z", true, 0, time.Time{})
	if zero.DateLabel() != "--" {
		t.Errorf("zero date label = %q, want --", zero.DateLabel())
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{2000, "2.0 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{3 * 1024 * 1024 * 1024, "3.0 GB"},
	}
	for _, tt := range tests {
		if got := FormatFileSize(tt.bytes); got != tt.want {
			t.Errorf("FormatFileSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}

func TestLoadStateTransitions(t *testing.T) {
	n := NewEntry("/tmp/d", "d", true, 0, time.Now())
	if n.State() != Unloaded {
		t.Fatalf("initial state = %v, want Unloaded", n.State())
	}

	if !n.BeginLoading() {
		t.Fatal("first BeginLoading returned false")
	}
	if n.State() != Loading {
		t.Fatalf("state after BeginLoading = %v, want Loading", n.State())
	}

	// Load-once guard: a second request must not win.
	if n.BeginLoading() {
		t.Error("BeginLoading succeeded while already Loading")
	}

	n.SetChildren([]*EntryNode{})
	if n.State() != Loaded {
		t.Fatalf("state after SetChildren = %v, want Loaded", n.State())
	}
	if !n.ChildrenLoaded() {
		t.Error("ChildrenLoaded = false after SetChildren")
	}
	if n.BeginLoading() {
		t.Error("BeginLoading succeeded while Loaded")
	}

	n.ResetChildren()
	if n.State() != Unloaded {
		t.Fatalf("state after ResetChildren = %v, want Unloaded", n.State())
	}
	if !n.BeginLoading() {
		t.Error("BeginLoading failed after ResetChildren")
	}
}

func TestSetChildrenParentBackrefs(t *testing.T) {
	parent := NewEntry("/tmp/d", "d", true, 0, time.Now())
	a := NewEntry("/tmp/d/a.txt", "a.txt", false, 1, time.Now())
	b := NewEntry("/tmp/d/sub", "sub", true, 0, time.Now())

	parent.SetChildren([]*EntryNode{a, b})

	if parent.ChildCount() != 2 {
		t.Fatalf("ChildCount = %d, want 2", parent.ChildCount())
	}
	for _, c := range parent.Children() {
		if c.Parent() != parent {
			t.Errorf("child %s parent not set", c.Name)
		}
	}
	if parent.Parent() != nil {
		t.Error("root parent should be nil")
	}

	parent.ResetChildren()
	if parent.Children() != nil {
		t.Error("children not cleared by ResetChildren")
	}
}
