package parser

import (
	"errors"
	"fmt"
)

// ErrRuleFailed is returned by a rule that does not apply at the cursor.
// It is not an error in the document; the parser moves on to the next
// candidate rule.
var ErrRuleFailed = errors.New("rule does not apply")

func ruleFailed(rule Rule, token ExtractedToken) error {
	return fmt.Errorf("%w: %s at %s (offset %d)", ErrRuleFailed, rule.Name, token.Token, token.Span.Start)
}

// WarningKind classifies a ParseWarning
type WarningKind int

const (
	WarningUnterminatedContainer WarningKind = iota
	WarningNestingTooDeep
	WarningNoRulesMatch
)

func (k WarningKind) String() string {
	switch k {
	case WarningUnterminatedContainer:
		return "unterminated-container"
	case WarningNestingTooDeep:
		return "nesting-too-deep"
	case WarningNoRulesMatch:
		return "no-rules-match"
	default:
		return "unknown"
	}
}

// ParseWarning is a diagnostic about the document. Parsing always
// produces a tree; warnings describe where the input was not well formed.
type ParseWarning struct {
	Token Token
	Rule  string
	Span  Span
	Kind  WarningKind
}

func (w ParseWarning) String() string {
	return fmt.Sprintf("%s in rule %s at %s [%d, %d)", w.Kind, w.Rule, w.Token, w.Span.Start, w.Span.End)
}
