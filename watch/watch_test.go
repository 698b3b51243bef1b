package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
)

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "live.clj")
	assert.NoError(t, os.WriteFile(path, []byte("(a)"), 0600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- File(ctx, path, func() { calls.Add(1) })
	}()

	// the watch is set up asynchronously, so keep writing until it fires
	deadline := time.Now().Add(5 * time.Second)
	for calls.Load() == 0 && time.Now().Before(deadline) {
		assert.NoError(t, os.WriteFile(path, []byte("(b)"), 0600))
		time.Sleep(3 * DebounceDelay)
	}
	assert.True(t, calls.Load() > 0, "change was not observed")

	cancel()
	assert.NoError(t, <-done)
}

func TestFileDebounces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "burst.clj")
	assert.NoError(t, os.WriteFile(path, []byte("(a)"), 0600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- File(ctx, path, func() { calls.Add(1) })
	}()

	// wait for the watch to be live
	deadline := time.Now().Add(5 * time.Second)
	for calls.Load() == 0 && time.Now().Before(deadline) {
		assert.NoError(t, os.WriteFile(path, []byte("(b)"), 0600))
		time.Sleep(3 * DebounceDelay)
	}
	before := calls.Load()

	for i := 0; i < 5; i++ {
		assert.NoError(t, os.WriteFile(path, []byte("(c)"), 0600))
	}
	time.Sleep(5 * DebounceDelay)
	assert.Equal(t, before+1, calls.Load())

	cancel()
	assert.NoError(t, <-done)
}

func TestFileMissing(t *testing.T) {
	err := File(context.Background(), filepath.Join(t.TempDir(), "nope.clj"), func() {})
	assert.Error(t, err)
}
