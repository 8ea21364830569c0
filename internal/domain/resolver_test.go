package domain

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codepub.dev/pkg/codepub/internal/adapter"
	m "codepub.dev/pkg/codepub/internal/model"
)

func newTestResolver() Resolver {
	return NewResolver(adapter.NewLocalSourceFSAdapter(), m.DefaultProfile())
}

func TestResolver_Skips(t *testing.T) {
	t.Run("global only without skip file", func(t *testing.T) {
		dir := t.TempDir()

		skips, err := newTestResolver().Skips(context.Background(), m.Path(dir))
		require.NoError(t, err)

		for _, name := range m.DefaultProfile().Skip {
			assert.True(t, skips.Contains(name), name)
		}

		assert.Len(t, skips, len(m.DefaultProfile().Skip))
	})

	t.Run("unions trimmed skip file lines", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "skip.txt"), "  draft.cpp \n\nbuild\r\n\t\n")

		skips, err := newTestResolver().Skips(context.Background(), m.Path(dir))
		require.NoError(t, err)

		assert.True(t, skips.Contains("draft.cpp"))
		assert.True(t, skips.Contains("build"))
		assert.True(t, skips.Contains("out"))
		assert.False(t, skips.Contains(""))
	})

	t.Run("skip file is directory scoped", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "skip.txt"), "draft.cpp\n")
		mkdir(t, filepath.Join(dir, "child"))

		skips, err := newTestResolver().Skips(context.Background(), m.Path(filepath.Join(dir, "child")))
		require.NoError(t, err)

		assert.False(t, skips.Contains("draft.cpp"))
	})

	t.Run("unreadable skip marker is an error", func(t *testing.T) {
		dir := t.TempDir()
		mkdir(t, filepath.Join(dir, "skip.txt"))

		_, err := newTestResolver().Skips(context.Background(), m.Path(dir))
		assert.Error(t, err)
	})
}

func TestResolver_Manifest(t *testing.T) {
	t.Run("absent manifest is inactive", func(t *testing.T) {
		dir := t.TempDir()

		manifest, err := newTestResolver().Manifest(context.Background(), m.Path(dir))
		require.NoError(t, err)

		assert.False(t, manifest.Active)
		assert.Empty(t, manifest.Entries)
	})

	t.Run("drops missing entries and keeps order", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "a.cpp"), "a")
		writeFile(t, filepath.Join(dir, "b.cpp"), "b")
		writeFile(t, filepath.Join(dir, "publish.txt"), "b.cpp\nmissing.cpp\n\n  a.cpp  \n")

		manifest, err := newTestResolver().Manifest(context.Background(), m.Path(dir))
		require.NoError(t, err)

		assert.True(t, manifest.Active)
		assert.Equal(t, paths(dir, "b.cpp", "a.cpp"), manifest.Entries)
	})

	t.Run("empty manifest is still active", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "a.cpp"), "a")
		writeFile(t, filepath.Join(dir, "publish.txt"), "\n  \nghost.cpp\n")

		manifest, err := newTestResolver().Manifest(context.Background(), m.Path(dir))
		require.NoError(t, err)

		assert.True(t, manifest.Active)
		assert.Empty(t, manifest.Entries)
	})

	t.Run("entries may name subdirectories", func(t *testing.T) {
		dir := t.TempDir()
		mkdir(t, filepath.Join(dir, "part"))
		writeFile(t, filepath.Join(dir, "publish.txt"), "part\n")

		manifest, err := newTestResolver().Manifest(context.Background(), m.Path(dir))
		require.NoError(t, err)

		assert.Equal(t, paths(dir, "part"), manifest.Entries)
	})
}

func TestResolver_CustomMarkerNames(t *testing.T) {
	profile := m.DefaultProfile()
	profile.ManifestFile = "order.lst"
	profile.SkipFile = "ignore.lst"

	r := NewResolver(adapter.NewLocalSourceFSAdapter(), profile)

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.cpp"), "a")
	writeFile(t, filepath.Join(dir, "publish.txt"), "a.cpp\n")
	writeFile(t, filepath.Join(dir, "ignore.lst"), "a.cpp\n")

	manifest, err := r.Manifest(context.Background(), m.Path(dir))
	require.NoError(t, err)
	assert.False(t, manifest.Active)

	skips, err := r.Skips(context.Background(), m.Path(dir))
	require.NoError(t, err)
	assert.True(t, skips.Contains("a.cpp"))
}
