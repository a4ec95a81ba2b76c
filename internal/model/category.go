package model

import (
	"path/filepath"
	"strings"
)

// Category is the coarse content classification of an entry, computed once
// at construction. Preview mode and filter decisions key off this tag so the
// rest of the code never re-probes file types.
type Category int

const (
	CategoryFolder Category = iota
	CategoryImage
	CategoryText
	CategoryMedia
	CategoryOther
)

func (c Category) String() string {
	switch c {
	case CategoryFolder:
		return "folder"
	case CategoryImage:
		return "image"
	case CategoryText:
		return "text"
	case CategoryMedia:
		return "media"
	default:
		return "other"
	}
}

var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".bmp": true, ".tiff": true, ".tif": true, ".webp": true,
	".heic": true, ".ico": true, ".svg": true,
}

var textExts = map[string]bool{
	".txt": true, ".md": true, ".markdown": true, ".rst": true,
	".json": true, ".yaml": true, ".yml": true, ".toml": true,
	".xml": true, ".html": true, ".htm": true, ".css": true,
	".csv": true, ".log": true, ".sh": true, ".py": true,
	".go": true, ".js": true, ".ts": true, ".c": true, ".h": true,
	".cpp": true, ".rs": true, ".swift": true, ".java": true,
	".rb": true, ".sql": true, ".ini": true, ".conf": true,
}

var mediaExts = map[string]bool{
	".mp3": true, ".m4a": true, ".wav": true, ".flac": true,
	".aac": true, ".ogg": true, ".mp4": true, ".mov": true,
	".m4v": true, ".avi": true, ".mkv": true, ".webm": true,
}

// Classify maps an entry name to its content category.
// Directories are always CategoryFolder regardless of name.
func Classify(name string, isDir bool) Category {
	if isDir {
		return CategoryFolder
	}
	ext := strings.ToLower(filepath.Ext(name))
	switch {
	case imageExts[ext]:
		return CategoryImage
	case textExts[ext]:
		return CategoryText
	case mediaExts[ext]:
		return CategoryMedia
	default:
		return CategoryOther
	}
}
