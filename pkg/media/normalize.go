// Package media knows which files can go on the table: path canonicalization,
// the showable-format allow list, and folder enumeration.
package media

import (
	"strings"
)

// Formats the viewer can display. Short video formats are included because
// they render in the same surface as stills.
var showableExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".webp": {},
	".svg": {}, ".avif": {}, ".bmp": {}, ".tif": {}, ".tiff": {},
	".mp4": {}, ".webm": {}, ".m4v": {}, ".ogv": {},
}

// Normalize canonicalizes a media path: surrounding whitespace is dropped and
// backslashes become forward slashes. An optional "<source>:" storage selector
// prefix survives untouched. Reports false when nothing usable remains.
func Normalize(path string) (string, bool) {
	p := strings.TrimSpace(path)
	if p == "" {
		return "", false
	}
	return strings.ReplaceAll(p, "\\", "/"), true
}

// NormalizeAll normalizes every path in the slice, dropping blanks. Order is
// preserved; display order is significant.
func NormalizeAll(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if n, ok := Normalize(p); ok {
			out = append(out, n)
		}
	}
	return out
}

// SplitSource separates a storage selector ("s3:shared/map.png") from the
// path it prefixes. A selector followed by "//" is a URL scheme and stays
// attached to the path.
func SplitSource(path string) (source, rest string) {
	i := strings.Index(path, ":")
	if i <= 0 || strings.HasPrefix(path[i+1:], "//") {
		return "", path
	}
	return path[:i], path[i+1:]
}

// IsMedia reports whether the path names a showable format. The suffix is
// matched case-insensitively after normalization and after stripping any
// query or fragment. Unrecognized input is simply not media, never an error.
func IsMedia(path string) bool {
	p, ok := Normalize(path)
	if !ok {
		return false
	}
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	dot := strings.LastIndex(p, ".")
	if dot < 0 || strings.ContainsRune(p[dot:], '/') {
		return false
	}
	_, ok = showableExtensions[strings.ToLower(p[dot:])]
	return ok
}

// IsVideo reports whether the path names one of the short-video formats.
// Videos get no thumbnail preview.
func IsVideo(path string) bool {
	p, ok := Normalize(path)
	if !ok {
		return false
	}
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	dot := strings.LastIndex(p, ".")
	if dot < 0 {
		return false
	}
	switch strings.ToLower(p[dot+1:]) {
	case "mp4", "webm", "m4v", "ogv":
		return true
	}
	return false
}
