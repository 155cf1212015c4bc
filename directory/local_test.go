package directory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tessera-search/tessera/internal/fs"
)

func TestMmapDirectory_CreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "index")

	dir, err := NewMmapDirectory(root)
	require.NoError(t, err)
	require.Equal(t, root, dir.Root())

	fi, err := os.Stat(root)
	require.NoError(t, err)
	require.True(t, fi.IsDir())
}

func TestMmapDirectory_FilesOnDisk(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	dir, err := NewMmapDirectory(root)
	require.NoError(t, err)

	require.NoError(t, dir.AtomicWrite(ctx, "meta.json", []byte(`{"version":1}`)))

	data, err := os.ReadFile(filepath.Join(root, "meta.json"))
	require.NoError(t, err)
	require.Equal(t, `{"version":1}`, string(data))

	// Temp file from the atomic write must be gone.
	_, err = os.Stat(filepath.Join(root, "meta.json.tmp"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestMmapDirectory_ZeroCopyBytes(t *testing.T) {
	ctx := context.Background()

	dir, err := NewMmapDirectory(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, dir.AtomicWrite(ctx, "seg.store", []byte("stored docs")))

	src, err := dir.OpenRead(ctx, "seg.store")
	require.NoError(t, err)
	defer src.Close()

	b, ok := src.(Bytes)
	require.True(t, ok)

	data, err := b.Bytes()
	require.NoError(t, err)
	require.Equal(t, "stored docs", string(data))
}

func TestMmapDirectory_AtomicWriteFailedSyncKeepsOld(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	ffs := fs.NewFaultyFS(nil)

	dir, err := NewMmapDirectoryWithFS(ffs, root)
	require.NoError(t, err)

	require.NoError(t, dir.AtomicWrite(ctx, "meta.json", []byte("committed")))

	// The temp file's fsync fails before the rename: the crash window
	// between writing the temporary file and renaming it.
	ffs.AddRule(".tmp", fs.Fault{FailAfterBytes: -1, FailOnSync: true})

	err = dir.AtomicWrite(ctx, "meta.json", []byte("torn update"))
	require.ErrorIs(t, err, fs.ErrInjected)

	ffs.ClearRules()
	data, err := ReadAll(ctx, dir, "meta.json")
	require.NoError(t, err)
	require.Equal(t, "committed", string(data))

	// No stray temp file left behind.
	_, err = os.Stat(filepath.Join(root, "meta.json.tmp"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestMmapDirectory_AtomicWriteFailedRenameKeepsOld(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	ffs := fs.NewFaultyFS(nil)

	dir, err := NewMmapDirectoryWithFS(ffs, root)
	require.NoError(t, err)

	require.NoError(t, dir.AtomicWrite(ctx, "meta.json", []byte("committed")))

	ffs.AddRule(".tmp", fs.Fault{FailAfterBytes: -1, FailOnRename: true})

	err = dir.AtomicWrite(ctx, "meta.json", []byte("torn update"))
	require.ErrorIs(t, err, fs.ErrInjected)

	ffs.ClearRules()
	data, err := ReadAll(ctx, dir, "meta.json")
	require.NoError(t, err)
	require.Equal(t, "committed", string(data))
}

func TestMmapDirectory_AtomicWritePartialWriteKeepsOld(t *testing.T) {
	ctx := context.Background()
	ffs := fs.NewFaultyFS(nil)

	dir, err := NewMmapDirectoryWithFS(ffs, t.TempDir())
	require.NoError(t, err)

	require.NoError(t, dir.AtomicWrite(ctx, "meta.json", []byte("committed")))

	ffs.AddRule(".tmp", fs.Fault{FailAfterBytes: 4})

	err = dir.AtomicWrite(ctx, "meta.json", []byte("this write is cut short"))
	require.ErrorIs(t, err, fs.ErrInjected)

	ffs.ClearRules()
	data, err := ReadAll(ctx, dir, "meta.json")
	require.NoError(t, err)
	require.Equal(t, "committed", string(data))
}
