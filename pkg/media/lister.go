package media

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/maruel/natural"

	"github.com/rescp17/slideCaster/internal/util"
)

// Entry is one showable file inside a browsed folder. PreviewPath is empty
// for formats without an inline thumbnail (videos).
type Entry struct {
	Path        string `json:"path"`
	PreviewPath string `json:"previewPath,omitempty"`
	Size        int64  `json:"size,omitempty"`
}

// Lister enumerates the showable media inside a folder. Failures are returned
// to the caller for a user-facing warning; they never reach the sync core.
type Lister struct{}

// List returns the folder's media entries in natural order ("img2" before
// "img10"). Non-media files are skipped; extensionless files get one content
// sniff before being dropped.
func (l *Lister) List(folder string) ([]Entry, error) {
	exists, isDir, err := util.CheckDirectory(folder)
	if err != nil {
		return nil, fmt.Errorf("failed to stat folder %q: %w", folder, err)
	}
	if !exists || !isDir {
		return nil, fmt.Errorf("%q is not a browsable folder", folder)
	}

	items, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("failed to read folder %q: %w", folder, err)
	}

	var entries []Entry
	for _, item := range items {
		if item.IsDir() {
			continue
		}
		path := filepath.Join(folder, item.Name())
		if !IsMedia(path) && !sniffImage(path) {
			continue
		}
		norm, ok := Normalize(path)
		if !ok {
			continue
		}
		entry := Entry{Path: norm}
		if !IsVideo(norm) {
			entry.PreviewPath = norm
		}
		if info, err := item.Info(); err == nil {
			entry.Size = info.Size()
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return natural.Less(entries[i].Path, entries[j].Path)
	})
	return entries, nil
}

// sniffImage detects images that lack a usable extension. Only called for
// paths the allow list rejected, and only when there is no extension at all;
// a wrong extension stays rejected.
func sniffImage(path string) bool {
	if filepath.Ext(path) != "" {
		return false
	}
	mime, err := mimetype.DetectFile(path)
	if err != nil {
		slog.Debug("media sniff failed", "path", path, "error", err)
		return false
	}
	return strings.HasPrefix(mime.String(), "image/")
}
