package domain

import (
	"context"
	"encoding/json"
	"strings"
)

// MediaFile is an uploaded attachment before it reaches the media store
type MediaFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// MediaStore persists attachments and returns a stable reference path
type MediaStore interface {
	// Store writes the file under a unique name and returns its path or URL
	Store(ctx context.Context, file MediaFile) (string, error)

	// Remove deletes a previously stored file
	Remove(ctx context.Context, path string) error
}

// AcceptMedia reports whether a file may be passed to a MediaStore.
// Only non-empty images and videos are kept.
func AcceptMedia(f MediaFile) bool {
	if len(f.Data) == 0 {
		return false
	}
	ct := strings.ToLower(f.ContentType)
	return strings.HasPrefix(ct, "image/") || strings.HasPrefix(ct, "video/")
}

// MergeMedia appends newly stored paths to the retained ones, preserving order
// and dropping repeats and blanks.
func MergeMedia(existing, added []string) []string {
	merged := make([]string, 0, len(existing)+len(added))
	seen := make(map[string]struct{}, len(existing)+len(added))
	for _, group := range [][]string{existing, added} {
		for _, p := range group {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			merged = append(merged, p)
		}
	}
	return merged
}

// IsAbsoluteMediaURL reports whether a media reference already carries a scheme
func IsAbsoluteMediaURL(p string) bool {
	return strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") || strings.HasPrefix(p, "//")
}

// ResolveMediaURLs prefixes relative paths with the public base URL
func ResolveMediaURLs(baseURL string, paths []string) []string {
	base := strings.TrimRight(baseURL, "/")
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if IsAbsoluteMediaURL(p) {
			out = append(out, p)
			continue
		}
		if !strings.HasPrefix(p, "/") {
			p = "/" + p
		}
		out = append(out, base+p)
	}
	return out
}

// RelativeMediaPath undoes ResolveMediaURLs for paths under baseURL.
// Other values are returned unchanged.
func RelativeMediaPath(baseURL, p string) string {
	base := strings.TrimRight(baseURL, "/")
	if base == "" || !strings.HasPrefix(p, base+"/") {
		return p
	}
	return strings.TrimPrefix(p, base)
}

// DecodeLegacyMedia reads the single-column media encoding written by older
// releases: a JSON array, a JSON string, or a bare path. Anything else is no media.
func DecodeLegacyMedia(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return nil
	}

	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err == nil {
		return MergeMedia(list, nil)
	}

	var single string
	if err := json.Unmarshal([]byte(raw), &single); err == nil {
		return MergeMedia([]string{single}, nil)
	}

	if strings.ContainsAny(raw, "[]{}\"") {
		return nil
	}
	return []string{raw}
}
