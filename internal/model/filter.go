package model

// FilterCategory selects which entries are visible. Filtering is a projection
// over already-loaded data; it never mutates child collections and never
// triggers re-enumeration.
type FilterCategory int

const (
	FilterAll FilterCategory = iota
	FilterFolders
	FilterImages
	FilterDocuments
	FilterMedia
)

func (f FilterCategory) String() string {
	switch f {
	case FilterFolders:
		return "folders"
	case FilterImages:
		return "images"
	case FilterDocuments:
		return "documents"
	case FilterMedia:
		return "media"
	default:
		return "all"
	}
}

// ParseFilterCategory maps a stored preference string back to a category.
func ParseFilterCategory(s string) FilterCategory {
	switch s {
	case "folders":
		return FilterFolders
	case "images":
		return FilterImages
	case "documents":
		return FilterDocuments
	case "media":
		return FilterMedia
	default:
		return FilterAll
	}
}

// FilterDisplayNames lists the selectable categories in UI order.
var FilterDisplayNames = []string{"All", "Folders", "Images", "Documents", "Media"}

// FilterFromDisplayName maps a UI label back to a category.
func FilterFromDisplayName(label string) FilterCategory {
	switch label {
	case "Folders":
		return FilterFolders
	case "Images":
		return FilterImages
	case "Documents":
		return FilterDocuments
	case "Media":
		return FilterMedia
	default:
		return FilterAll
	}
}

// DisplayName returns the UI label for the category.
func (f FilterCategory) DisplayName() string {
	switch f {
	case FilterFolders:
		return "Folders"
	case FilterImages:
		return "Images"
	case FilterDocuments:
		return "Documents"
	case FilterMedia:
		return "Media"
	default:
		return "All"
	}
}

// Matches reports whether a single entry is visible under the category.
// Documents means anything that is not a folder, image, or media file, so
// markdown and plain text count as documents alongside PDFs and binaries
// with text-like extensions.
func (f FilterCategory) Matches(n *EntryNode) bool {
	switch f {
	case FilterAll:
		return true
	case FilterFolders:
		return n.IsDir
	case FilterImages:
		return n.Category == CategoryImage
	case FilterDocuments:
		return !n.IsDir && n.Category != CategoryImage && n.Category != CategoryMedia
	case FilterMedia:
		return n.Category == CategoryMedia
	default:
		return true
	}
}

// VisibleChildren computes the filtered projection of a sibling slice.
// The input order is preserved, so a slice that is already sorted stays
// sorted. FilterAll returns the input unchanged.
func VisibleChildren(nodes []*EntryNode, f FilterCategory) []*EntryNode {
	if f == FilterAll {
		return nodes
	}
	visible := make([]*EntryNode, 0, len(nodes))
	for _, n := range nodes {
		if f.Matches(n) {
			visible = append(visible, n)
		}
	}
	return visible
}
