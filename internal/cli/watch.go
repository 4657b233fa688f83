package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rumsan/docsctl/internal/lifecycle"
	"github.com/rumsan/docsctl/internal/notify"
	"github.com/rumsan/docsctl/internal/quota"
)

// settleDelay is how long a file must go without writes before it is uploaded.
const settleDelay = 750 * time.Millisecond

// watchDirectory uploads files created in dir until interrupted.
func watchDirectory(ctx context.Context, ctrl *lifecycle.Controller, console *notify.Console, dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("stat watch dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintln(os.Stderr, hintStyle.Render(fmt.Sprintf("Watching %s for new files (Ctrl+C to stop)", dir)))
	logger.Info("watching directory", "dir", dir)

	d := newDebouncer(settleDelay)
	defer d.stop()
	ready := make(chan string)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if skipWatched(event.Name) {
				continue
			}
			d.touch(event.Name, func(path string) {
				select {
				case ready <- path:
				case <-ctx.Done():
				}
			})

		case path := <-ready:
			if !ctrl.CanUpload() {
				logger.Warn("skipping upload, quota reached", "file", path)
				console.Error("Upload failed", fmt.Sprintf("Personal workspaces can hold up to %d documents.", quota.MaxDemoDocuments))
				continue
			}
			if err := uploadWatched(ctx, ctrl, path); err != nil {
				logger.Error("watched upload failed", "file", path, "error", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "error", err)
		}
	}
}

func uploadWatched(ctx context.Context, ctrl *lifecycle.Controller, path string) error {
	req, err := lifecycle.NewUploadRequest(path, cfg.MaxUploadBytes)
	if err != nil {
		// Removed before it settled.
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	return ctrl.Upload(ctx, req, f)
}

// skipWatched ignores hidden, temporary and partial files.
func skipWatched(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") ||
		strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".tmp") ||
		strings.HasSuffix(base, ".part") ||
		strings.HasSuffix(base, ".crdownload")
}

// debouncer fires once per path after the path has been quiet for delay.
type debouncer struct {
	mu     sync.Mutex
	delay  time.Duration
	timers map[string]*time.Timer
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{delay: delay, timers: make(map[string]*time.Timer)}
}

func (d *debouncer) touch(path string, fire func(string)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t, ok := d.timers[path]; ok {
		t.Reset(d.delay)
		return
	}
	d.timers[path] = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		delete(d.timers, path)
		d.mu.Unlock()
		fire(path)
	})
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for path, t := range d.timers {
		t.Stop()
		delete(d.timers, path)
	}
}
