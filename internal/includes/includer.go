package includes

import (
	"context"
	"fmt"

	"wikiparse/internal/pageref"
	"wikiparse/internal/tree"
)

// IncludeRef is a request to include a page with the given variables.
type IncludeRef struct {
	PageRef   pageref.PageRef
	Variables tree.VariableMap
}

// Into splits the include into its page and variables.
func (i IncludeRef) Into() (pageref.PageRef, tree.VariableMap) {
	return i.PageRef, i.Variables
}

// FetchedPage is the result of looking up an included page.
// Content is nil when the page could not be found.
type FetchedPage struct {
	PageRef pageref.PageRef
	Content *string
}

// Found returns a fetched page with the given content.
func Found(ref pageref.PageRef, content string) FetchedPage {
	return FetchedPage{PageRef: ref, Content: &content}
}

// NotFound returns a fetched page for a page that does not exist.
func NotFound(ref pageref.PageRef) FetchedPage {
	return FetchedPage{PageRef: ref}
}

// Includer retrieves the pages referenced by include blocks.
//
// IncludePages is called once per document with every include in the order
// they appear, and must return one FetchedPage per include in that same
// order. NoSuchInclude supplies the wikitext used in place of a page that
// could not be found.
type Includer interface {
	IncludePages(ctx context.Context, includes []IncludeRef) ([]FetchedPage, error)
	NoSuchInclude(ctx context.Context, ref pageref.PageRef) (string, error)
}

// Funcs adapts a pair of functions to the Includer interface.
type Funcs struct {
	Fetch    func(ctx context.Context, includes []IncludeRef) ([]FetchedPage, error)
	Fallback func(ctx context.Context, ref pageref.PageRef) (string, error)
}

func (f Funcs) IncludePages(ctx context.Context, includes []IncludeRef) ([]FetchedPage, error) {
	return f.Fetch(ctx, includes)
}

func (f Funcs) NoSuchInclude(ctx context.Context, ref pageref.PageRef) (string, error) {
	if f.Fallback == nil {
		return "", nil
	}
	return f.Fallback(ctx, ref)
}

// NullIncluder resolves every page to empty content.
type NullIncluder struct{}

func (NullIncluder) IncludePages(_ context.Context, includes []IncludeRef) ([]FetchedPage, error) {
	pages := make([]FetchedPage, 0, len(includes))
	for _, include := range includes {
		pages = append(pages, Found(include.PageRef, ""))
	}
	return pages, nil
}

func (NullIncluder) NoSuchInclude(context.Context, pageref.PageRef) (string, error) {
	return "", nil
}

// DebugIncluder resolves every page to a marker naming the page and its
// variables, which makes substitutions visible in output.
type DebugIncluder struct{}

func (DebugIncluder) IncludePages(_ context.Context, includes []IncludeRef) ([]FetchedPage, error) {
	pages := make([]FetchedPage, 0, len(includes))
	for _, include := range includes {
		pages = append(pages, Found(include.PageRef, fmt.Sprintf("<PAGE '%s' #%d>", include.PageRef, len(include.Variables))))
	}
	return pages, nil
}

func (DebugIncluder) NoSuchInclude(_ context.Context, ref pageref.PageRef) (string, error) {
	return fmt.Sprintf("<MISSING '%s'>", ref), nil
}
