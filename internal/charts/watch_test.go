package charts

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch_CallsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "draft_analysis_tdm.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	changed := make(chan struct{}, 16)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func() error {
			changed <- struct{}{}
			return errors.New("ignored")
		}, slog.New(slog.DiscardHandler))
	}()

	// the watcher registers asynchronously; keep writing until it reports
	seen := false
	deadline := time.After(5 * time.Second)
	for !seen {
		require.NoError(t, os.WriteFile(path, []byte(`{"mana_curve":{"1":1}}`), 0o644))
		select {
		case <-changed:
			seen = true
		case <-time.After(100 * time.Millisecond):
		case <-deadline:
			t.Fatal("onChange was not called")
		}
	}

	// other files in the directory are ignored
	time.Sleep(200 * time.Millisecond)
	for len(changed) > 0 {
		<-changed
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644))
	select {
	case <-changed:
		t.Error("onChange called for an unrelated file")
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatch_MissingDirectory(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "a.json"), func() error { return nil }, nil)
	assert.Error(t, err)
}
