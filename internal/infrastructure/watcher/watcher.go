package watcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// EventHandler processes one newly created media file
type EventHandler func(ctx context.Context, filePath string) error

// Options configure a Watcher
type Options struct {
	// Extensions accepted without the leading dot, e.g. "mp3"
	Extensions    []string
	MaxConcurrent int
	// SettleDelay is how long to wait after a create event before processing
	SettleDelay time.Duration
}

// Watcher runs handler for every supported file created in a directory
type Watcher struct {
	inputDir    string
	handler     EventHandler
	logger      *zap.Logger
	watcher     *fsnotify.Watcher
	extensions  map[string]struct{}
	semaphore   chan struct{}
	settleDelay time.Duration
	wg          sync.WaitGroup
}

// New creates a watcher on inputDir with bounded concurrency (default 2)
func New(inputDir string, handler EventHandler, opts Options, logger *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fw.Add(inputDir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 2
	}
	if opts.SettleDelay < 0 {
		opts.SettleDelay = 0
	}

	exts := make(map[string]struct{}, len(opts.Extensions))
	for _, e := range opts.Extensions {
		exts["."+strings.TrimPrefix(strings.ToLower(e), ".")] = struct{}{}
	}

	return &Watcher{
		inputDir:    inputDir,
		handler:     handler,
		logger:      logger,
		watcher:     fw,
		extensions:  exts,
		semaphore:   make(chan struct{}, opts.MaxConcurrent),
		settleDelay: opts.SettleDelay,
	}, nil
}

// Start blocks until ctx is done, then waits for in-flight files
func (w *Watcher) Start(ctx context.Context) error {
	w.logger.Info("👀 Watch folder started",
		zap.String("dir", w.inputDir),
		zap.Int("max_concurrent", cap(w.semaphore)),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("⏳ Waiting for in-flight files to finish")
			w.wg.Wait()
			w.logger.Info("🛑 Watch folder stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if !w.isSupported(event.Name) {
				w.logger.Debug("Ignoring unsupported file", zap.String("file", event.Name))
				continue
			}

			w.logger.Info("📥 New media detected", zap.String("file", event.Name))

			select {
			case w.semaphore <- struct{}{}:
				w.wg.Add(1)
				go w.handle(ctx, event.Name)
			case <-ctx.Done():
				w.wg.Wait()
				return ctx.Err()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			w.logger.Error("❌ Watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handle(ctx context.Context, filePath string) {
	defer w.wg.Done()
	defer func() { <-w.semaphore }()

	// let the writer finish
	if w.settleDelay > 0 {
		select {
		case <-time.After(w.settleDelay):
		case <-ctx.Done():
			return
		}
	}

	if err := w.handler(ctx, filePath); err != nil {
		w.logger.Error("❌ Failed to process file", zap.String("file", filePath), zap.Error(err))
	}
}

// Stop closes the underlying fsnotify watcher
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

func (w *Watcher) isSupported(path string) bool {
	_, ok := w.extensions[strings.ToLower(filepath.Ext(path))]
	return ok
}
