package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"wikiparse/internal/config"
	"wikiparse/internal/includes"
	"wikiparse/internal/logging"
	"wikiparse/internal/parser"
	"wikiparse/internal/tree"
	"wikiparse/internal/types"
)

var logger = logging.New("processor")

const (
	// WikitextSuffix names the output holding a page with its includes resolved.
	WikitextSuffix = ".txt"
	// TreeSuffix names the output holding the syntax tree as JSON.
	TreeSuffix = ".tree.json"
)

// Processor handles page processing operations
type Processor struct {
	settings config.WikitextSettings
	includer includes.Includer
}

// New creates a new Processor instance
func New(settings config.WikitextSettings, includer includes.Includer) *Processor {
	return &Processor{settings: settings, includer: includer}
}

// Result is a processed page
type Result struct {
	Page     *types.PageFile
	Wikitext string
	Tree     *tree.SyntaxTree
	Warnings []parser.ParseWarning
}

// ProcessText resolves includes in text and parses the result.
func (p *Processor) ProcessText(ctx context.Context, text string) (*Result, error) {
	resolved, pages, err := includes.Include(ctx, text, p.settings, p.includer, nil)
	if err != nil {
		return nil, fmt.Errorf("resolving includes: %w", err)
	}

	// The page is shown on its own, so its noinclude sections stay.
	resolved = includes.RemoveNoIncludes(resolved)

	syntaxTree, warnings := parser.ParseText(resolved, p.settings)
	return &Result{
		Page:     &types.PageFile{Includes: pages},
		Wikitext: resolved,
		Tree:     syntaxTree,
		Warnings: warnings,
	}, nil
}

// ProcessPage loads a page from disk and processes it.
func (p *Processor) ProcessPage(ctx context.Context, page *types.PageFile) (*Result, error) {
	if err := page.Load(); err != nil {
		return nil, err
	}

	result, err := p.ProcessText(ctx, page.Content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", page.Filename, err)
	}
	page.Includes = result.Page.Includes
	result.Page = page

	logger.Info("processed page", "file", page.Filename, "title", page.Title(), "includes", len(page.Includes))

	for _, ref := range page.Includes {
		logger.Info("included page", "file", page.Filename, "page", ref.String())
	}
	for _, w := range result.Warnings {
		logger.Info("parse warning", "file", page.Filename, "warning", w.String())
	}
	return result, nil
}

// WriteOutputs writes the resolved wikitext and the syntax tree of result
// under outputDir and returns the number of bytes written.
func WriteOutputs(result *Result, outputDir string) (int64, error) {
	treeJSON, err := json.MarshalIndent(result.Tree, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("encoding tree: %w", err)
	}

	outputs := []struct {
		path string
		data []byte
	}{
		{result.Page.GetOutputPath(outputDir, WikitextSuffix), []byte(result.Wikitext)},
		{result.Page.GetOutputPath(outputDir, TreeSuffix), append(treeJSON, '\n')},
	}

	var written int64
	for _, out := range outputs {
		if err := os.MkdirAll(filepath.Dir(out.path), 0755); err != nil {
			return written, err
		}
		if err := os.WriteFile(out.path, out.data, 0644); err != nil {
			return written, err
		}
		written += int64(len(out.data))
		logger.Debug("wrote output", "path", out.path, "bytes", len(out.data))
	}
	return written, nil
}
