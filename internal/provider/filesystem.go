// Package provider supplies includers backed by page storage.
package provider

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"wikiparse/internal/config"
	"wikiparse/internal/includes"
	"wikiparse/internal/logging"
	"wikiparse/internal/pageref"
	"wikiparse/internal/types"
)

var logger = logging.New("provider")

// Extension is the file extension of stored pages
const Extension = ".ftml"

// DefaultMissingTemplate is rendered in place of pages that do not exist.
// "{page}" is replaced with the page reference.
const DefaultMissingTemplate = "[[div class=\"error-block\"]]\nPage to be included \"{page}\" cannot be found!\n[[/div]]"

// Filesystem reads included pages from a directory tree.
//
// A page "category:slug" on site "site" is stored at
// Root/site/category/slug.ftml. Pages in the default category live
// directly under the site directory, and local pages have no site
// directory.
type Filesystem struct {
	Root            string
	MissingTemplate string
}

// NewFilesystem creates a Filesystem includer rooted at root
func NewFilesystem(root string) *Filesystem {
	return &Filesystem{Root: root, MissingTemplate: DefaultMissingTemplate}
}

// ForConfig creates a Filesystem includer over the pages directory of cfg,
// using its missing page template when one is set.
func ForConfig(cfg config.Config) *Filesystem {
	f := NewFilesystem(cfg.GetAbsolutePagesDir())
	if cfg.MissingPage != "" {
		f.MissingTemplate = cfg.MissingPage
	}
	return f
}

// PathFor returns the file a page is stored in. It returns false for
// references that cannot name a file under Root.
func (f *Filesystem) PathFor(ref pageref.PageRef) (string, bool) {
	parts := []string{f.Root}
	if !ref.IsLocal() {
		parts = append(parts, ref.Site)
	}
	if category := ref.Category(); category != pageref.DefaultCategory {
		parts = append(parts, category)
	}
	parts = append(parts, ref.Slug()+Extension)

	for _, part := range parts[1:] {
		if part == "" || part == "." || part == ".." || strings.ContainsAny(part, `/\`) {
			return "", false
		}
	}
	return filepath.Join(parts...), true
}

func (f *Filesystem) IncludePages(ctx context.Context, refs []includes.IncludeRef) ([]includes.FetchedPage, error) {
	pages := make([]includes.FetchedPage, 0, len(refs))
	for _, include := range refs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, err := f.fetch(include.PageRef)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, nil
}

func (f *Filesystem) fetch(ref pageref.PageRef) (includes.FetchedPage, error) {
	path, ok := f.PathFor(ref)
	if !ok {
		logger.Warn("page reference does not map to a file", "page", ref.String())
		return includes.NotFound(ref), nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger.Debug("included page not found", "page", ref.String(), "path", path)
		return includes.NotFound(ref), nil
	}
	if err != nil {
		return includes.FetchedPage{}, fmt.Errorf("reading page %s: %w", ref, err)
	}

	content, _, err := types.ParseFrontMatter(string(data))
	if err != nil {
		return includes.FetchedPage{}, fmt.Errorf("reading page %s: %w", ref, err)
	}
	return includes.Found(ref, content), nil
}

func (f *Filesystem) NoSuchInclude(_ context.Context, ref pageref.PageRef) (string, error) {
	template := f.MissingTemplate
	if template == "" {
		template = DefaultMissingTemplate
	}
	return strings.ReplaceAll(template, "{page}", ref.String()), nil
}
