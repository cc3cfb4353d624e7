package metadata_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/ocsm/internal/game/gamesystem"
	"github.com/cory-johannsen/ocsm/internal/metadata"
	"github.com/cory-johannsen/ocsm/internal/storage/filestore"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWatcher_ReloadsCurrentSystemOnChange(t *testing.T) {
	dir := t.TempDir()
	store := filestore.NewMetadataStore(dir)
	m := metadata.NewManager(store, zaptest.NewLogger(t))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, m.Select(ctx, gamesystem.Mortal))

	reloaded := make(chan struct{}, 8)
	m.Subscribe(func() {
		select {
		case reloaded <- struct{}{}:
		default:
		}
	})

	w, err := metadata.NewWatcher(dir, m, 20*time.Millisecond, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	// Another system's file is ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "DnD.Fifth.ocmd"), []byte(`{"races":[{"name":"Elf"}]}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "CoD.Mortal.ocmd"), []byte(`{"merits":[{"name":"Allies","dots":2}]}`), 0o644))

	select {
	case <-reloaded:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not reload metadata")
	}
	assert.Equal(t, []string{"Allies"}, m.Current().Container.Names(metadata.Merits))
	assert.Equal(t, gamesystem.Mortal, m.Current().System)
	assert.Eventually(t, func() bool { return w.Reloads() >= 1 }, time.Second, 10*time.Millisecond)
}

func TestWatcher_StopAfterFailedStart(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	m := metadata.NewManager(filestore.NewMetadataStore(t.TempDir()), nil)
	w, err := metadata.NewWatcher(file, m, 0, nil)
	require.NoError(t, err)
	require.Error(t, w.Start(context.Background()))

	stopped := make(chan struct{})
	go func() {
		w.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return after a failed Start")
	}
	assert.Zero(t, w.Reloads())
}

func TestWatcher_StopWithoutStart(t *testing.T) {
	m := metadata.NewManager(filestore.NewMetadataStore(t.TempDir()), nil)
	w, err := metadata.NewWatcher(t.TempDir(), m, 0, nil)
	require.NoError(t, err)
	w.Stop()
}
