package localfs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/folderglance/folderglance/internal/model"
)

// DefaultMaxEntries caps how many entries a single listing materializes.
// The cap is the primary latency and memory control under the host's
// preview budget; everything past it is counted but not modeled.
const DefaultMaxEntries = 500

// ListOptions configures ListDirectory.
type ListOptions struct {
	// IncludeHidden includes hidden files (starting with .) in results.
	// Default is false (hidden files excluded).
	IncludeHidden bool

	// MaxEntries overrides the listing cap. Zero means DefaultMaxEntries.
	MaxEntries int
}

// Listing is the result of enumerating one directory level: the modeled
// entries plus the aggregate statistics computed in the same pass.
type Listing struct {
	Entries []*model.EntryNode

	// TotalFound counts all visible (non-hidden) entries, including those
	// past the cap. When Truncated, the UI shows "first N of TotalFound".
	TotalFound int
	Truncated  bool

	// Header aggregates, computed over all visible entries (not just the
	// modeled ones) so the header stays truthful under truncation.
	TotalFileBytes int64
	FolderCount    int
	FileCount      int
}

// ListDirectory enumerates the immediate children of dir, in filesystem
// order. Hidden entries are skipped unless opts.IncludeHidden. Metadata is
// fetched once per entry; entries whose metadata cannot be read (vanished
// mid-listing, dangling symlink) are dropped rather than failing the level.
//
// Only the top-level ReadDir can fail the call, with a typed AccessError or
// IOError. Runs on whatever goroutine calls it; callers keep it off the UI
// thread.
func ListDirectory(ctx context.Context, dir string, opts ListOptions) (*Listing, error) {
	maxEntries := opts.MaxEntries
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, classifyError(dir, err)
	}

	listing := &Listing{
		Entries: make([]*model.EntryNode, 0, min(len(dirEntries), maxEntries)),
	}

	for i, entry := range dirEntries {
		// Check cancellation periodically; large directories can take a
		// while to stat on network filesystems.
		if i%64 == 0 {
			select {
			case <-ctx.Done():
				return nil, &IOError{Path: dir, Err: ctx.Err()}
			default:
			}
		}

		name := entry.Name()
		if !opts.IncludeHidden && IsHiddenName(name) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			// Entry vanished between ReadDir and stat.
			continue
		}

		listing.TotalFound++
		if entry.IsDir() {
			listing.FolderCount++
		} else {
			listing.FileCount++
			listing.TotalFileBytes += info.Size()
		}

		if len(listing.Entries) >= maxEntries {
			listing.Truncated = true
			continue
		}

		listing.Entries = append(listing.Entries, model.NewEntry(
			filepath.Join(dir, name),
			name,
			entry.IsDir(),
			info.Size(),
			info.ModTime(),
		))
	}

	return listing, nil
}
