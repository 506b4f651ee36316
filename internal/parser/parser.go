// Package parser turns a token stream into a syntax tree.
//
// Each token has an ordered list of candidate rules. The parser tries them
// in order at the current position, rewinding after each failure, and
// falls back to plain text when none apply. Delimited inline constructs
// such as bold or strikethrough are all built with CollectContainer.
package parser

import (
	"wikiparse/internal/config"
	"wikiparse/internal/logging"
	"wikiparse/internal/tree"
)

var logger = logging.New("parser")

// Parser holds the cursor over a token stream.
// A Parser is used by a single parse and is not safe for concurrent use.
type Parser struct {
	tokens   []ExtractedToken
	current  int
	depth    int
	maxDepth int
	warnings []ParseWarning
}

// NewParser creates a parser over tokens. A TokenInputEnd is appended if
// the stream does not already end with one.
func NewParser(tokens []ExtractedToken, settings config.WikitextSettings) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Token != TokenInputEnd {
		end := 0
		if len(tokens) > 0 {
			end = tokens[len(tokens)-1].Span.End
		}
		tokens = append(tokens[:len(tokens):len(tokens)], ExtractedToken{
			Token: TokenInputEnd,
			Span:  Span{Start: end, End: end},
		})
	}

	maxDepth := settings.MaxNestingDepth
	if maxDepth <= 0 {
		maxDepth = config.DefaultSettings().MaxNestingDepth
	}

	return &Parser{
		tokens:   tokens,
		maxDepth: maxDepth,
	}
}

// Parse builds the syntax tree for a token stream.
func Parse(tokens []ExtractedToken, settings config.WikitextSettings) (*tree.SyntaxTree, []ParseWarning) {
	p := NewParser(tokens, settings)

	var elements []tree.Element
	for !p.Done() {
		elements = append(elements, p.ParseElement()...)
	}

	logger.Debug("finished parsing", "tokens", len(p.tokens), "warnings", len(p.warnings))
	return &tree.SyntaxTree{Elements: tree.MergeText(elements)}, p.warnings
}

// ParseText tokenizes and parses text.
func ParseText(text string, settings config.WikitextSettings) (*tree.SyntaxTree, []ParseWarning) {
	return Parse(Tokenize(text), settings)
}

func (p *Parser) Current() ExtractedToken {
	return p.tokens[p.current]
}

// LookAhead returns the token offset positions after the current one.
func (p *Parser) LookAhead(offset int) (ExtractedToken, bool) {
	i := p.current + offset
	if i < 0 || i >= len(p.tokens) {
		return ExtractedToken{}, false
	}
	return p.tokens[i], true
}

// Step advances the cursor by one token. It never moves past the final
// TokenInputEnd.
func (p *Parser) Step() {
	if p.current < len(p.tokens)-1 {
		p.current++
	}
}

func (p *Parser) StepN(n int) {
	for i := 0; i < n; i++ {
		p.Step()
	}
}

// Done reports whether the cursor is at the end of input.
func (p *Parser) Done() bool {
	return p.Current().Token == TokenInputEnd
}

// StartOfLine reports whether the current token begins a line.
func (p *Parser) StartOfLine() bool {
	if p.current == 0 {
		return true
	}
	switch p.tokens[p.current-1].Token {
	case TokenLineBreak, TokenParagraphBreak:
		return true
	}
	return false
}

// Warnings returns the warnings recorded so far.
func (p *Parser) Warnings() []ParseWarning {
	return p.warnings
}

func (p *Parser) warn(kind WarningKind, rule string) {
	token := p.Current()
	logger.Debug("parse warning", "kind", kind.String(), "rule", rule, "token", token.Token.String(), "start", token.Span.Start)
	p.warnings = append(p.warnings, ParseWarning{
		Token: token.Token,
		Rule:  rule,
		Span:  token.Span,
		Kind:  kind,
	})
}

type parserState struct {
	current  int
	depth    int
	warnings int
}

func (p *Parser) snapshot() parserState {
	return parserState{current: p.current, depth: p.depth, warnings: len(p.warnings)}
}

func (p *Parser) restore(state parserState) {
	p.current = state.current
	p.depth = state.depth
	p.warnings = p.warnings[:state.warnings]
}

// ParseElement parses the next element at the cursor, consuming at least
// one token unless the input is exhausted.
func (p *Parser) ParseElement() []tree.Element {
	current := p.Current()
	if current.Token == TokenInputEnd {
		return nil
	}

	candidates := rulesForToken(current.Token)
	for _, rule := range candidates {
		if !rule.Position.satisfied(p) {
			continue
		}

		state := p.snapshot()
		elements, err := rule.TryConsume(p, rule)
		if err == nil {
			return elements
		}

		logger.Debug("rule failed", "rule", rule.Name, "token", current.Token.String(), "start", current.Span.Start)
		p.restore(state)
	}

	if len(candidates) > 0 {
		p.warn(WarningNoRulesMatch, "fallback")
	}
	p.Step()
	return []tree.Element{tree.Text(current.Slice)}
}
