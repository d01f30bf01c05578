package media

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n")

func writeFile(t *testing.T, dir, name string, content []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), content, 0644))
}

func TestListerFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "img10.png", pngHeader)
	writeFile(t, dir, "img2.png", pngHeader)
	writeFile(t, dir, "notes.txt", []byte("not media"))
	writeFile(t, dir, "intro.mp4", []byte("fake video"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0755))

	lister := &Lister{}
	entries, err := lister.List(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Natural order: img2 before img10.
	assert.Contains(t, entries[0].Path, "img2.png")
	assert.Contains(t, entries[1].Path, "img10.png")
	assert.Contains(t, entries[2].Path, "intro.mp4")
}

func TestListerVideoHasNoPreview(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "cave.png", pngHeader)
	writeFile(t, dir, "intro.mp4", []byte("fake video"))

	lister := &Lister{}
	entries, err := lister.List(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	for _, entry := range entries {
		if IsVideo(entry.Path) {
			assert.Empty(t, entry.PreviewPath)
		} else {
			assert.Equal(t, entry.Path, entry.PreviewPath)
		}
	}
}

func TestListerSniffsExtensionlessImages(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "snapshot", pngHeader)
	writeFile(t, dir, "README", []byte("plain text, stays out"))
	writeFile(t, dir, "cave.dat", pngHeader)

	lister := &Lister{}
	entries, err := lister.List(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "only the extensionless image is sniffed in; a wrong extension stays rejected")
	assert.Contains(t, entries[0].Path, "snapshot")
}

func TestListerRecordsSize(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "cave.png", pngHeader)

	lister := &Lister{}
	entries, err := lister.List(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(len(pngHeader)), entries[0].Size)
}

func TestListerRejectsBadFolder(t *testing.T) {
	lister := &Lister{}

	_, err := lister.List(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	dir := t.TempDir()
	writeFile(t, dir, "cave.png", pngHeader)
	_, err = lister.List(filepath.Join(dir, "cave.png"))
	assert.Error(t, err, "a file is not a browsable folder")
}
