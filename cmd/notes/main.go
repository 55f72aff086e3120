package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/lecture-notes/internal/bootstrap"
	"github.com/johnquangdev/lecture-notes/internal/domain/entities"
	"github.com/johnquangdev/lecture-notes/internal/infrastructure/export"
	"github.com/johnquangdev/lecture-notes/internal/infrastructure/source"
	"github.com/johnquangdev/lecture-notes/internal/infrastructure/watcher"
	"github.com/johnquangdev/lecture-notes/internal/usecase/media"
	"github.com/johnquangdev/lecture-notes/internal/usecase/pipeline"
	"github.com/johnquangdev/lecture-notes/pkg/config"
	"github.com/johnquangdev/lecture-notes/pkg/logger"
)

// defaultSettleDelay gives copy operations time to finish before a file is read
const defaultSettleDelay = 2 * time.Second

type cliOptions struct {
	input       string
	watchDir    string
	out         string
	language    string
	detail      string
	focus       string
	format      string
	concurrency int
}

func main() {
	var opts cliOptions
	flag.StringVar(&opts.input, "input", "", "media file path or URL")
	flag.StringVar(&opts.watchDir, "watch", "", "watch this directory for new media files")
	flag.StringVar(&opts.out, "out", "", "output file (single input) or directory (watch mode)")
	flag.StringVar(&opts.language, "language", "", "notes language: english or indonesian")
	flag.StringVar(&opts.detail, "detail", "", "detail level: concise, detailed or comprehensive")
	flag.StringVar(&opts.focus, "focus", "", "comma separated focus areas")
	flag.StringVar(&opts.format, "format", "json", "output format: json, yaml, markdown or docx")
	flag.IntVar(&opts.concurrency, "concurrency", 2, "files processed at once in watch mode")
	flag.Parse()

	if (opts.input == "") == (opts.watchDir == "") {
		fmt.Fprintln(os.Stderr, "exactly one of -input or -watch is required")
		flag.Usage()
		os.Exit(2)
	}

	format, err := export.ParseFormat(opts.format)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	processOpts, err := opts.processOptions(cfg.Summary.DefaultLanguage)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	zapLogger, err := logger.New(cfg.Server.Environment, cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.Build(ctx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize pipeline", zap.Error(err))
	}
	defer app.Close()

	if opts.watchDir != "" {
		err = runWatch(ctx, app, cfg, opts, format, processOpts, zapLogger)
	} else {
		err = runOnce(ctx, app, opts, format, processOpts, zapLogger)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		zapLogger.Error("❌ Failed", zap.Error(err))
		zapLogger.Sync()
		os.Exit(1)
	}
}

func (o cliOptions) processOptions(defaultLanguage string) (entities.ProcessOptions, error) {
	language := o.language
	if language == "" {
		language = defaultLanguage
	}
	var focus []string
	for _, f := range strings.Split(o.focus, ",") {
		if f = strings.TrimSpace(f); f != "" {
			focus = append(focus, f)
		}
	}
	opts := entities.ProcessOptions{
		Language:    language,
		DetailLevel: o.detail,
		FocusAreas:  focus,
	}.WithDefaults()
	if err := opts.Validate(); err != nil {
		return entities.ProcessOptions{}, err
	}
	return opts, nil
}

// runOnce processes a single file or URL and writes the notes to -out or stdout
func runOnce(ctx context.Context, app *bootstrap.App, opts cliOptions, format export.Format, processOpts entities.ProcessOptions, logger *zap.Logger) error {
	var asset *entities.MediaAsset
	if source.IsValidMediaURL(opts.input) {
		fetched, err := app.Fetcher.Fetch(ctx, opts.input)
		if err != nil {
			return err
		}
		asset = fetched
		processOpts.DeleteSource = true
	} else {
		local, err := localAsset(opts.input)
		if err != nil {
			return err
		}
		asset = local
	}

	res := pipeline.Run(ctx, app.Orchestrator, asset, processOpts)
	if !res.Success {
		return fmt.Errorf("%s (%s)", res.Error, res.Code)
	}

	out := opts.out
	if out == "" && format == export.FormatDocx {
		out = notesFilename(asset.DisplayName(), format)
	}
	if out == "" {
		data, err := export.Render(res.Data, format, os.TempDir())
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	if err := export.WriteFile(res.Data, format, out); err != nil {
		return err
	}
	logger.Info("✅ Notes written", zap.String("path", out))
	return nil
}

// defaultOutputDir is a sibling of the watched directory so written notes
// never produce events in it
func defaultOutputDir(watchDir string) string {
	dir := filepath.Clean(watchDir)
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return filepath.Join(filepath.Dir(dir), filepath.Base(dir)+"_notes")
}

// runWatch processes every new media file dropped into -watch until interrupted
func runWatch(ctx context.Context, app *bootstrap.App, cfg *config.Config, opts cliOptions, format export.Format, processOpts entities.ProcessOptions, logger *zap.Logger) error {
	outDir := opts.out
	if outDir == "" {
		outDir = defaultOutputDir(opts.watchDir)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	handle := func(ctx context.Context, path string) error {
		asset, err := localAsset(path)
		if err != nil {
			return err
		}

		res := pipeline.Run(ctx, app.Orchestrator, asset, processOpts)
		if !res.Success {
			errPath := filepath.Join(outDir, baseName(asset.DisplayName())+"_error.json")
			data, _ := json.MarshalIndent(res, "", "  ")
			if err := os.WriteFile(errPath, data, 0o644); err != nil {
				logger.Warn("⚠️ Failed to write error report", zap.Error(err))
			}
			return fmt.Errorf("%s (%s)", res.Error, res.Code)
		}

		out := filepath.Join(outDir, notesFilename(asset.DisplayName(), format))
		if err := export.WriteFile(res.Data, format, out); err != nil {
			return err
		}
		logger.Info("✅ Notes written", zap.String("source", path), zap.String("path", out))
		return nil
	}

	exts := append(append([]string{}, cfg.Media.AllowedAudioFormats...), cfg.Media.AllowedVideoFormats...)
	w, err := watcher.New(opts.watchDir, handle, watcher.Options{
		Extensions:    exts,
		MaxConcurrent: opts.concurrency,
		SettleDelay:   defaultSettleDelay,
	}, logger)
	if err != nil {
		return err
	}
	defer w.Stop()

	return w.Start(ctx)
}

// localAsset describes a file on disk, deriving the MIME type from its extension
func localAsset(path string) (*entities.MediaAsset, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	return entities.NewMediaAsset(path, filepath.Base(path), media.MimeTypeForExtension(ext), info.Size()), nil
}

func notesFilename(displayName string, format export.Format) string {
	return baseName(displayName) + "_notes." + format.Extension()
}

func baseName(displayName string) string {
	base := media.SanitizeFilename(strings.TrimSuffix(displayName, filepath.Ext(displayName)))
	if base == "" {
		return "lecture"
	}
	return base
}
