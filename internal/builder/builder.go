package builder

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/skratchdot/open-golang/open"

	"wikiparse/internal/config"
	"wikiparse/internal/includes"
	"wikiparse/internal/logging"
	"wikiparse/internal/processor"
	"wikiparse/internal/provider"
	"wikiparse/internal/types"
	"wikiparse/internal/watcher"
)

var logger = logging.New("builder")

// Builder handles the main build process
type Builder struct {
	config        config.Config
	processor     *processor.Processor
	out           io.Writer
	clipboardOnly bool // copy the preview URL instead of opening a browser

	mu sync.Mutex // serializes builds
}

// Summary describes one build
type Summary struct {
	Pages    int
	Skipped  int
	Includes int
	Warnings int
	Bytes    int64
	Duration time.Duration
}

// New creates a new Builder instance. Includes are read from the pages
// directory unless includer is given.
func New(cfg config.Config, includer includes.Includer) *Builder {
	if includer == nil {
		includer = provider.ForConfig(cfg)
	}

	return &Builder{
		config:    cfg,
		processor: processor.New(cfg.Settings, includer),
		out:       os.Stdout,
	}
}

// SetClipboardOnly makes serve mode copy its URL to the clipboard instead
// of opening a browser.
func (b *Builder) SetClipboardOnly(clipboardOnly bool) {
	b.clipboardOnly = clipboardOnly
}

// SetOutput redirects console messages, which go to stdout by default.
func (b *Builder) SetOutput(w io.Writer) {
	b.out = w
}

// Build performs the main build process, then keeps watching or serving
// until ctx is done when the configuration asks for it.
func (b *Builder) Build(ctx context.Context) error {
	green := color.New(color.FgGreen, color.Bold)
	cyan := color.New(color.FgCyan)

	if b.config.Serve {
		fmt.Fprintf(b.out, "%s is watching files in %s and serving at http://127.0.0.1:%d\n\n",
			green.Sprint("wikiparse"), cyan.Sprint(b.config.GetAbsoluteInputDir()), b.config.Port)
	} else if b.config.Watch {
		fmt.Fprintf(b.out, "%s is watching files in %s\n\n",
			green.Sprint("wikiparse"), cyan.Sprint(b.config.GetAbsoluteInputDir()))
	}

	if _, err := b.BuildOnce(ctx); err != nil {
		return err
	}

	if b.config.Serve {
		return b.hostAndWatch(ctx)
	} else if b.config.Watch {
		return b.watchFiles(ctx)
	}
	return nil
}

// BuildOnce processes every page in the input directory and writes the
// outputs.
func (b *Builder) BuildOnce(ctx context.Context) (Summary, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	started := time.Now()
	var summary Summary

	inputDir := b.config.GetAbsoluteInputDir()
	outputDir := b.config.GetAbsoluteOutputDir()

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return summary, fmt.Errorf("cannot create output directory: %w", err)
	}

	pages, err := getFileList(inputDir)
	if err != nil {
		return summary, fmt.Errorf("cannot get file list: %w", err)
	}
	logger.Info("loading pages", "count", len(pages), "dir", inputDir)

	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		result, err := b.processor.ProcessPage(ctx, page)
		if os.IsNotExist(err) || os.IsPermission(err) {
			logger.Warn("cannot read page", "path", page.InputPath, "error", err)
			summary.Skipped++
			continue
		}
		if err != nil {
			return summary, fmt.Errorf("processing %s: %w", page.InputPath, err)
		}

		written, err := processor.WriteOutputs(result, outputDir)
		if err != nil {
			return summary, fmt.Errorf("writing %s: %w", page.Filename, err)
		}

		summary.Pages++
		summary.Includes += len(result.Page.Includes)
		summary.Warnings += len(result.Warnings)
		summary.Bytes += written
	}

	summary.Duration = time.Since(started)
	b.printSummary(summary)
	return summary, nil
}

func (b *Builder) printSummary(s Summary) {
	green := color.New(color.FgGreen, color.Bold)
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)

	fmt.Fprintf(b.out, "%s %s pages (%s, %s includes) from %s to %s in %s\n",
		green.Sprint("Compiled"),
		humanize.Comma(int64(s.Pages)),
		humanize.Bytes(uint64(s.Bytes)),
		humanize.Comma(int64(s.Includes)),
		cyan.Sprint(b.config.GetAbsoluteInputDir()),
		cyan.Sprint(b.config.GetAbsoluteOutputDir()),
		s.Duration.Round(time.Millisecond))

	if s.Warnings > 0 {
		fmt.Fprintf(b.out, "%s\n", yellow.Sprintf("%s parse warnings", humanize.Comma(int64(s.Warnings))))
	}
	if s.Skipped > 0 {
		fmt.Fprintf(b.out, "%s\n", yellow.Sprintf("%d pages could not be read", s.Skipped))
	}
	if !b.config.Watch && !b.config.Serve {
		fmt.Fprintf(b.out, "%s\n", green.Sprint("Success!"))
	}
}

// getFileList returns the pages under sourceDir in walk order
func getFileList(sourceDir string) ([]*types.PageFile, error) {
	var pages []*types.PageFile

	err := filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !types.IsPageFile(d.Name()) {
			return nil
		}

		relPath, err := filepath.Rel(sourceDir, filepath.Dir(path))
		if err != nil {
			return err
		}
		if relPath == "." {
			relPath = ""
		}

		pages = append(pages, types.NewPageFile(path, d.Name(), relPath))
		return nil
	})

	return pages, err
}

func (b *Builder) watchDirs() []string {
	return []string{b.config.GetAbsoluteInputDir(), b.config.GetAbsolutePagesDir()}
}

func (b *Builder) rebuild(ctx context.Context, changed []string) {
	logger.Info("rebuilding", "changed", changed)
	if _, err := b.BuildOnce(ctx); err != nil {
		logger.Error("build failed", "error", err)
	}
}

func (b *Builder) watchFiles(ctx context.Context) error {
	m := watcher.NewManager(func(changed []string) { b.rebuild(ctx, changed) })
	if err := m.Start(b.watchDirs()...); err != nil {
		return fmt.Errorf("cannot create file watcher: %w", err)
	}
	defer m.Stop()

	fmt.Fprintf(b.out, "%s\n", color.New(color.FgYellow).Sprint("Press Ctrl+C to stop watching"))
	<-ctx.Done()
	return nil
}

// Handler serves the output directory.
func (b *Builder) Handler() http.Handler {
	fileServer := http.FileServer(http.Dir(b.config.GetAbsoluteOutputDir()))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("serving", "path", r.URL.Path)
		fileServer.ServeHTTP(w, r)
	})
}

// hostAndWatch starts both file watching and web server with graceful shutdown
func (b *Builder) hostAndWatch(ctx context.Context) error {
	m := watcher.NewManager(func(changed []string) { b.rebuild(ctx, changed) })
	if err := m.Start(b.watchDirs()...); err != nil {
		return fmt.Errorf("cannot create file watcher: %w", err)
	}
	defer m.Stop()

	server := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", b.config.Port),
		Handler: b.Handler(),
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
		close(serverErr)
	}()

	b.announce(fmt.Sprintf("http://127.0.0.1:%d", b.config.Port))
	fmt.Fprintf(b.out, "%s\n", color.New(color.FgYellow).Sprint("Press Ctrl+C to stop watching and server"))

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	green := color.New(color.FgGreen)
	fmt.Fprintf(b.out, "\n%s\n", green.Sprint("Stopping file watcher and web server..."))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	fmt.Fprintf(b.out, "%s\n", green.Sprint("Done!"))
	return nil
}

func (b *Builder) announce(serverURL string) {
	cyan := color.New(color.FgCyan)
	fmt.Fprintf(b.out, "Starting web server at %s\n", cyan.Sprint(serverURL))

	if err := clipboard.WriteAll(serverURL); err == nil {
		fmt.Fprintf(b.out, "✓ URL copied to clipboard\n")
	} else {
		fmt.Fprintf(b.out, "ℹ Copy this URL: %s\n", cyan.Sprint(serverURL))
	}

	if !b.clipboardOnly {
		if err := open.Run(serverURL); err == nil {
			fmt.Fprintf(b.out, "✓ Opening in your default browser...\n")
		} else {
			fmt.Fprintf(b.out, "ℹ Please open the URL above in your browser\n")
		}
	}
	fmt.Fprintln(b.out)
}
