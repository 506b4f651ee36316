package provider

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wikiparse/internal/config"
	"wikiparse/internal/includes"
	"wikiparse/internal/pageref"
)

func writePage(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestPathFor(t *testing.T) {
	fs := NewFilesystem("pages")

	tests := []struct {
		ref  pageref.PageRef
		want string
		ok   bool
	}{
		{pageref.Local("start"), filepath.Join("pages", "start.ftml"), true},
		{pageref.Local("component:box"), filepath.Join("pages", "component", "box.ftml"), true},
		{pageref.OnSite("scp-wiki", "main"), filepath.Join("pages", "scp-wiki", "main.ftml"), true},
		{pageref.OnSite("other", "theme:dark"), filepath.Join("pages", "other", "theme", "dark.ftml"), true},
		{pageref.Local("../secret"), "", false},
		{pageref.OnSite("..", "x"), "", false},
		{pageref.Local("a/b"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.ref.String(), func(t *testing.T) {
			got, ok := fs.PathFor(tt.ref)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIncludePages(t *testing.T) {
	root := t.TempDir()
	writePage(t, root, "start.ftml", "Hello {$name}")
	writePage(t, root, "component/box.ftml", "---\ntitle: Box\n---\n[[div]]box[[/div]]")

	fs := NewFilesystem(root)
	refs := []includes.IncludeRef{
		{PageRef: pageref.Local("start")},
		{PageRef: pageref.Local("missing")},
		{PageRef: pageref.Local("component:box")},
	}

	pages, err := fs.IncludePages(context.Background(), refs)
	require.NoError(t, err)
	require.Len(t, pages, 3)

	assert.Equal(t, includes.Found(pageref.Local("start"), "Hello {$name}"), pages[0])
	assert.Equal(t, includes.NotFound(pageref.Local("missing")), pages[1])
	assert.Equal(t, includes.Found(pageref.Local("component:box"), "[[div]]box[[/div]]"), pages[2])
}

func TestIncludePagesCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFilesystem(t.TempDir()).IncludePages(ctx, []includes.IncludeRef{{PageRef: pageref.Local("a")}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIncludePagesBadFrontMatter(t *testing.T) {
	root := t.TempDir()
	writePage(t, root, "broken.ftml", "---\ntitle: [oops\n---\nbody")

	_, err := NewFilesystem(root).IncludePages(context.Background(), []includes.IncludeRef{{PageRef: pageref.Local("broken")}})
	assert.ErrorContains(t, err, "reading page broken")
}

func TestNoSuchInclude(t *testing.T) {
	fs := NewFilesystem(t.TempDir())

	text, err := fs.NoSuchInclude(context.Background(), pageref.OnSite("wiki", "gone"))
	require.NoError(t, err)
	assert.Equal(t, "[[div class=\"error-block\"]]\nPage to be included \":wiki:gone\" cannot be found!\n[[/div]]", text)

	fs.MissingTemplate = "<{page}>"
	text, err = fs.NoSuchInclude(context.Background(), pageref.Local("gone"))
	require.NoError(t, err)
	assert.Equal(t, "<gone>", text)
}

func TestFilesystemWithInclude(t *testing.T) {
	root := t.TempDir()
	writePage(t, root, "greeting.ftml", "Hi {$who}!\n[[noinclude]]\nhidden\n[[/noinclude]]")

	input := "[[include-messy greeting | who=there]]\n[[include-messy absent]]"
	output, pages, err := includes.Include(context.Background(), input, config.DefaultSettings(), NewFilesystem(root), nil)
	require.NoError(t, err)

	assert.Equal(t, "Hi there!\n\n[[div class=\"error-block\"]]\nPage to be included \"absent\" cannot be found!\n[[/div]]", output)
	assert.Equal(t, []pageref.PageRef{pageref.Local("greeting"), pageref.Local("absent")}, pages)
}

func TestForConfig(t *testing.T) {
	dir := t.TempDir()

	cfg := config.Default(dir)
	fs := ForConfig(cfg)
	assert.Equal(t, filepath.Join(dir, "src"), fs.Root)
	assert.Equal(t, DefaultMissingTemplate, fs.MissingTemplate)

	cfg.PagesDir = "pages"
	cfg.MissingPage = "(missing {page})"
	fs = ForConfig(cfg)
	assert.Equal(t, filepath.Join(dir, "pages"), fs.Root)
	assert.Equal(t, "(missing {page})", fs.MissingTemplate)
}
