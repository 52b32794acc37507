package disk

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	return New(&Config{Dir: filepath.Join(t.TempDir(), "uploads")})
}

func TestSaveRoundTrip(t *testing.T) {
	store := newTestStore(t)
	content := []byte{0x89, 'P', 'N', 'G', 0x00, '\r', '\n', 0xFF}

	stored, err := store.Save(context.Background(), "photo.png", content)
	require.NoError(t, err)

	assert.Equal(t, "photo.png", stored.Name)
	assert.Equal(t, int64(len(content)), stored.Size)
	assert.Equal(t, filepath.Join(store.Dir(), "photo.png"), stored.Path)

	onDisk, err := os.ReadFile(stored.Path)
	require.NoError(t, err)
	assert.Equal(t, content, onDisk)
}

func TestSaveOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Save(ctx, "a.txt", []byte("first version"))
	require.NoError(t, err)

	stored, err := store.Save(ctx, "a.txt", []byte("v2"))
	require.NoError(t, err)

	onDisk, err := os.ReadFile(stored.Path)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(onDisk))
}

func TestSaveEmptyContent(t *testing.T) {
	store := newTestStore(t)

	stored, err := store.Save(context.Background(), "empty.bin", nil)
	require.NoError(t, err)

	info, err := os.Stat(stored.Path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestSaveSanitizesName(t *testing.T) {
	store := newTestStore(t)

	stored, err := store.Save(context.Background(), "../../etc/passwd", []byte("x"))
	require.NoError(t, err)

	assert.Equal(t, "passwd", stored.Name)
	assert.Equal(t, store.Dir(), filepath.Dir(stored.Path))
}

func TestSaveRejectsInvalidName(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Save(context.Background(), "..", []byte("x"))
	require.ErrorIs(t, err, ErrInvalidName)

	_, statErr := os.Stat(store.Dir())
	assert.True(t, os.IsNotExist(statErr), "nothing should be created for a rejected name")
}

func TestSaveCancelledContext(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Save(ctx, "late.png", []byte("data"))
	require.ErrorIs(t, err, ErrPersistence)
	require.ErrorIs(t, err, context.Canceled)

	names, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestSaveLeavesNoTempOnFailure(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.MkdirAll(store.Dir(), 0o755))

	// A directory in the way makes the final rename fail.
	require.NoError(t, os.Mkdir(filepath.Join(store.Dir(), "taken"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "taken", "child"), []byte("x"), 0o644))

	_, err := store.Save(context.Background(), "taken", []byte("data"))
	require.ErrorIs(t, err, ErrPersistence)

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "taken", entries[0].Name())
}

func TestConcurrentSameNameSaves(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	const writers = 16
	payloads := make([][]byte, writers)
	for i := range payloads {
		payloads[i] = bytes.Repeat([]byte{byte('a' + i)}, 64*1024)
	}

	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := range writers {
		wg.Add(1)
		go func(p []byte) {
			defer wg.Done()

			_, err := store.Save(ctx, "shared.bin", p)
			errs <- err
		}(payloads[i])
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	onDisk, err := os.ReadFile(filepath.Join(store.Dir(), "shared.bin"))
	require.NoError(t, err)
	assert.Contains(t, payloads, onDisk, "file must equal exactly one complete payload")

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"shared.bin"}, names)
}

func TestList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"b.gif", "a.png", "c.txt"} {
		_, err := store.Save(ctx, name, []byte(name))
		require.NoError(t, err)
	}

	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "index.html"), []byte("<html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), ".upload-123"), []byte("partial"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(store.Dir(), "nested"), 0o755))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.png", "b.gif", "c.txt"}, names)
}

func TestListMissingDir(t *testing.T) {
	store := newTestStore(t)

	names, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestRemove(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Save(ctx, "gone.png", []byte("x"))
	require.NoError(t, err)

	require.NoError(t, store.Remove(ctx, "gone.png"))
	require.ErrorIs(t, store.Remove(ctx, "gone.png"), ErrPersistence)
	require.ErrorIs(t, store.Remove(ctx, ""), ErrInvalidName)
}

func TestSaveLongName(t *testing.T) {
	store := newTestStore(t)

	// The longest basename most filesystems accept.
	name := strings.Repeat("n", 251) + ".png"

	stored, err := store.Save(context.Background(), name, []byte("long"))
	require.NoError(t, err)
	assert.Equal(t, name, stored.Name)

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, name, entries[0].Name())
}

func TestDigest(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Save(ctx, "cat.png", []byte("meow"))
	require.NoError(t, err)

	sum := sha256.Sum256([]byte("meow"))
	digest, err := store.Digest(ctx, "cat.png")
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(sum[:]), digest)

	_, err = store.Digest(ctx, "missing.png")
	require.ErrorIs(t, err, fs.ErrNotExist)
}
