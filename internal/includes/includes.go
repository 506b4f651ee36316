// Package includes implements "messy includes", Wikidot's native includes.
//
// An [[include-messy]] block is replaced directly with the wikitext of the
// page it names before the document is parsed, with {$variables} in that
// page substituted from the block's arguments.
package includes

import (
	"context"

	"wikiparse/internal/config"
	"wikiparse/internal/logging"
	"wikiparse/internal/pageref"
)

var logger = logging.New("includes")

// span is a half-open byte range of the original document.
type span struct {
	start int
	end   int
}

// Include replaces every include block in input with the content of the
// page it references, fetched in one batch from includer. It returns the
// rewritten text and the included pages in document order.
//
// When the includer's results do not match the request, the error returned
// is invalid(), or a *ContractError when invalid is nil. Errors from the
// includer are returned as they are. No text is returned on error.
func Include(
	ctx context.Context,
	input string,
	settings config.WikitextSettings,
	includer Includer,
	invalid func() error,
) (string, []pageref.PageRef, error) {
	if !settings.EnablePageSyntax {
		logger.Info("includes are disabled for this input, skipping")
		return input, nil, nil
	}
	if invalid == nil {
		invalid = func() error { return nil }
	}

	logger.Info("finding and replacing all instances of include blocks in text")

	var (
		ranges   []span
		includes []IncludeRef
		lastEnd  int
	)

	for _, loc := range locate(input, settings) {
		logger.Debug("found include regex match", "start", loc.start, "slice", loc.slice)

		if loc.start < lastEnd {
			logger.Debug("include match lies inside a previous include block, skipping", "start", loc.start)
			continue
		}

		include, end, err := parseIncludeBlock(input[loc.start:], loc.start)
		if err != nil {
			logger.Warn("unable to parse include regex match", "start", loc.start, "error", err)
			continue
		}

		ranges = append(ranges, span{start: loc.start, end: end})
		includes = append(includes, include)
		lastEnd = end
	}

	if len(includes) == 0 {
		return input, nil, nil
	}

	fetched, err := includer.IncludePages(ctx, includes)
	if err != nil {
		return "", nil, err
	}

	if len(fetched) != len(includes) {
		return "", nil, contractError(invalid, &ContractError{
			Requested: len(includes),
			Returned:  len(fetched),
		})
	}

	// Walk the includes backwards so the pages are collected in the same
	// order the edits are applied.
	edits := make([]edit, 0, len(includes))
	pages := make([]pageref.PageRef, 0, len(includes))

	for i := len(includes) - 1; i >= 0; i-- {
		ref, variables := includes[i].Into()
		page := fetched[i]
		r := ranges[i]

		logger.Info("replacing range for included page", "start", r.start, "end", r.end, "page", ref.String())

		if ref != page.PageRef {
			return "", nil, contractError(invalid, &ContractError{
				Requested: len(includes),
				Returned:  len(fetched),
				Expected:  ref,
				Got:       page.PageRef,
			})
		}

		var replaceWith string
		if page.Content != nil {
			replaceWith = ReplaceVariables(StripNoIncludes(*page.Content), variables)
		} else {
			replaceWith, err = includer.NoSuchInclude(ctx, ref)
			if err != nil {
				return "", nil, err
			}
		}

		edits = append(edits, edit{start: r.start, end: r.end, text: replaceWith})
		pages = append(pages, ref)
	}

	output := applyEdits(input, edits)

	// Pages were collected last to first.
	for i, j := 0, len(pages)-1; i < j; i, j = i+1, j-1 {
		pages[i], pages[j] = pages[j], pages[i]
	}

	return output, pages, nil
}

func contractError(invalid func() error, fallback *ContractError) error {
	if err := invalid(); err != nil {
		return err
	}
	return fallback
}
