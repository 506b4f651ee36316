package includes

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"wikiparse/internal/pageref"
	"wikiparse/internal/tree"
)

// blockScanner walks an include block one rune at a time.
type blockScanner struct {
	text string
	pos  int
}

func (s *blockScanner) done() bool {
	return s.pos >= len(s.text)
}

func (s *blockScanner) hasPrefix(prefix string) bool {
	return strings.HasPrefix(s.text[s.pos:], prefix)
}

func (s *blockScanner) skipSpace() {
	for !s.done() {
		r, size := utf8.DecodeRuneInString(s.text[s.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		s.pos += size
	}
}

// readUntil consumes runes until stop reports true or the text ends.
func (s *blockScanner) readUntil(stop func(r rune) bool) string {
	start := s.pos
	for !s.done() {
		r, size := utf8.DecodeRuneInString(s.text[s.pos:])
		if stop(r) || s.hasPrefix("]]") {
			break
		}
		s.pos += size
	}
	return s.text[start:s.pos]
}

func isWordBreak(r rune) bool {
	return unicode.IsSpace(r) || r == '|' || r == ']'
}

// parseIncludeBlock parses the include block at the start of text, which
// begins at offset start of the whole document. It returns the include and
// the offset one past the closing "]]".
//
// The block has the form:
//
//	[[include-messy page-name var1=value1 | var2 = value2]]
//
// Values run until the next "|" or "]]" and may span lines.
func parseIncludeBlock(text string, start int) (IncludeRef, int, error) {
	s := &blockScanner{text: text}
	fail := func(reason string) (IncludeRef, int, error) {
		return IncludeRef{}, 0, &DirectiveError{Offset: start + s.pos, Reason: reason}
	}

	if !s.hasPrefix("[[") {
		return fail("missing opening brackets")
	}
	s.pos += 2
	s.skipSpace()

	keyword := strings.ToLower(s.readUntil(isWordBreak))
	if keyword != "include-messy" && keyword != "include" {
		return fail("not an include block")
	}
	s.skipSpace()

	target := s.readUntil(isWordBreak)
	if target == "" {
		return fail("missing page name")
	}
	page, err := pageref.Parse(target)
	if err != nil {
		return fail("invalid page name: " + err.Error())
	}

	variables := make(tree.VariableMap)
	for {
		s.skipSpace()
		if s.done() {
			return fail("unterminated include block")
		}
		if s.hasPrefix("]]") {
			s.pos += 2
			break
		}
		if s.hasPrefix("|") {
			s.pos++
			continue
		}

		name := s.readUntil(func(r rune) bool { return isWordBreak(r) || r == '=' })
		if name == "" {
			return fail("empty argument name")
		}
		s.skipSpace()
		if !s.hasPrefix("=") {
			return fail("argument " + name + " has no value")
		}
		s.pos++

		value := s.readUntil(func(r rune) bool { return r == '|' })
		if s.done() {
			return fail("unterminated include block")
		}
		variables[name] = strings.TrimSpace(value)
	}

	return IncludeRef{PageRef: page, Variables: variables}, start + s.pos, nil
}
