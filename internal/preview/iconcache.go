package preview

import (
	"bytes"
	"container/list"
	"fmt"
	"image/png"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"github.com/disintegration/imaging"

	"github.com/folderglance/folderglance/internal/model"
)

// DefaultIconCacheCapacity bounds the icon cache entry count. Entries are
// never invalidated by filesystem change; a preview session is short-lived
// and staleness is acceptable.
const DefaultIconCacheCapacity = 256

type iconKey struct {
	path string
	size int
}

// IconCache maps (path, requested pixel size) to a ready-to-display icon
// resource with capacity-bounded recency eviction. Hits are synchronous;
// misses load on a background goroutine and populate the cache before
// delivering.
type IconCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[iconKey]*list.Element
	order    *list.List // front = most recently used
}

type iconEntry struct {
	key iconKey
	res fyne.Resource
}

// NewIconCache creates a cache holding at most capacity entries.
// Non-positive capacities use the default.
func NewIconCache(capacity int) *IconCache {
	if capacity <= 0 {
		capacity = DefaultIconCacheCapacity
	}
	return &IconCache{
		capacity: capacity,
		entries:  make(map[iconKey]*list.Element),
		order:    list.New(),
	}
}

// Get returns the cached icon for (path, size), marking it recently used.
func (c *IconCache) Get(path string, size int) (fyne.Resource, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.entries[iconKey{path, size}]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*iconEntry).res, true
}

// Put stores an icon, evicting the least recently used entry past capacity.
func (c *IconCache) Put(path string, size int, res fyne.Resource) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := iconKey{path, size}
	if el, ok := c.entries[key]; ok {
		el.Value.(*iconEntry).res = res
		c.order.MoveToFront(el)
		return
	}

	c.entries[key] = c.order.PushFront(&iconEntry{key: key, res: res})
	for len(c.entries) > c.capacity {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*iconEntry).key)
	}
}

// Len returns the current entry count.
func (c *IconCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// ThemeIcon returns the static theme icon for an entry's category. Cheap,
// never cached, always available as the final fallback.
func ThemeIcon(n *model.EntryNode) fyne.Resource {
	switch {
	case n.IsDir:
		return theme.FolderIcon()
	case n.Category == model.CategoryImage:
		return theme.FileImageIcon()
	case n.Category == model.CategoryText:
		return theme.FileTextIcon()
	case n.Category == model.CategoryMedia:
		return theme.FileVideoIcon()
	default:
		return theme.FileIcon()
	}
}

// LoadIcon returns the row icon for an entry at the requested pixel size.
// Image files get a decoded thumbnail; everything else gets the theme icon.
// Cache hits return synchronously with ready=true. On a miss the thumbnail
// is decoded on a background goroutine and handed to onReady (called via
// dispatch) after the cache is populated.
func (c *IconCache) LoadIcon(n *model.EntryNode, size int, dispatch func(func()), onReady func(fyne.Resource)) (fyne.Resource, bool) {
	if n.Category != model.CategoryImage {
		return ThemeIcon(n), true
	}
	if res, ok := c.Get(n.Path, size); ok {
		return res, true
	}

	go func() {
		res, err := thumbnailResource(n.Path, size)
		if err != nil {
			// Unreadable image: cache the theme icon so the row never
			// retries the decode.
			res = ThemeIcon(n)
		}
		c.Put(n.Path, size, res)
		if onReady != nil {
			dispatch(func() { onReady(res) })
		}
	}()

	return ThemeIcon(n), false
}

// thumbnailResource decodes an image and scales it into a square thumbnail
// encoded as an in-memory PNG resource.
func thumbnailResource(path string, size int) (fyne.Resource, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	thumb := imaging.Fit(img, size, size, imaging.Lanczos)

	var buf bytes.Buffer
	if err := png.Encode(&buf, thumb); err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	name := fmt.Sprintf("%s@%d", path, size)
	return fyne.NewStaticResource(name, buf.Bytes()), nil
}
