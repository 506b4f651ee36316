package pageref

import (
	"errors"
	"strings"
)

var (
	ErrEmptyPageRef   = errors.New("page reference is empty")
	ErrInvalidPageRef = errors.New("page reference is invalid")
)

// DefaultCategory is the category of pages named without one.
const DefaultCategory = "_default"

// PageRef identifies a page, optionally on another site.
// Two references are equal when both fields are equal.
type PageRef struct {
	Site string
	Page string
}

// Local creates a reference to a page on the current site.
func Local(page string) PageRef {
	return PageRef{Page: page}
}

// OnSite creates a reference to a page on the given site.
func OnSite(site, page string) PageRef {
	return PageRef{Site: site, Page: page}
}

// Parse reads a reference of the form "page", "category:page" or ":site:page".
func Parse(s string) (PageRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return PageRef{}, ErrEmptyPageRef
	}
	if strings.ContainsAny(s, "[]|{} \t\r\n") {
		return PageRef{}, ErrInvalidPageRef
	}

	if !strings.HasPrefix(s, ":") {
		return PageRef{Page: strings.Clone(s)}, nil
	}

	site, page, ok := strings.Cut(s[1:], ":")
	if !ok || site == "" || page == "" {
		return PageRef{}, ErrInvalidPageRef
	}
	return PageRef{Site: strings.Clone(site), Page: strings.Clone(page)}, nil
}

// Category returns the page category, "_default" when there is none.
func (r PageRef) Category() string {
	if category, _, ok := strings.Cut(r.Page, ":"); ok && category != "" {
		return category
	}
	return DefaultCategory
}

// Slug returns the page name without its category.
func (r PageRef) Slug() string {
	if _, slug, ok := strings.Cut(r.Page, ":"); ok {
		return slug
	}
	return r.Page
}

func (r PageRef) IsLocal() bool {
	return r.Site == ""
}

func (r PageRef) String() string {
	if r.Site == "" {
		return r.Page
	}
	return ":" + r.Site + ":" + r.Page
}
