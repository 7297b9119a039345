package file

import (
	"context"
	"path"
	"slices"
	"strings"
	"time"
)

// KeySeparator joins path segments inside storage keys.
const KeySeparator = ":"

// Metadata describes a stored template.
type Metadata struct {
	Key        string    `json:"key"`
	Size       int64     `json:"size"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

// Storage provides read access to template sources.
type Storage interface {
	// Keys returns all template keys, sorted.
	Keys(ctx context.Context) ([]string, error)
	// Content returns the source text stored under key.
	Content(ctx context.Context, key string) (string, error)
	// Metadata returns size and timestamps for key.
	Metadata(ctx context.Context, key string) (*Metadata, error)
}

// KeyFromPath converts a slash-separated relative path into a storage key.
func KeyFromPath(p string) string {
	p = strings.TrimPrefix(path.Clean("/"+p), "/")
	return strings.ReplaceAll(p, "/", KeySeparator)
}

// PathFromKey converts a storage key back into a slash-separated relative path.
func PathFromKey(key string) string {
	return strings.ReplaceAll(key, KeySeparator, "/")
}

// matchExtension reports whether name ends with one of exts. Empty exts match everything.
func matchExtension(name string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := strings.ToLower(path.Ext(name))
	return slices.Contains(exts, ext)
}

func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}
