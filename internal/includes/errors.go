package includes

import (
	"fmt"

	"wikiparse/internal/pageref"
)

// DirectiveError describes an include block that could not be parsed.
// These are logged and skipped, never returned from Include.
type DirectiveError struct {
	Offset int
	Reason string
}

func (e *DirectiveError) Error() string {
	return fmt.Sprintf("include block at offset %d: %s", e.Offset, e.Reason)
}

// ContractError is returned when an Includer's results do not line up
// with the includes it was asked for.
type ContractError struct {
	Requested int
	Returned  int
	Expected  pageref.PageRef
	Got       pageref.PageRef
}

func (e *ContractError) Error() string {
	if e.Requested != e.Returned {
		return fmt.Sprintf("includer returned %d pages for %d includes", e.Returned, e.Requested)
	}
	return fmt.Sprintf("includer returned page %q for include of %q", e.Got, e.Expected)
}
