package parser

import "wikiparse/internal/tree"

var (
	RuleText = Rule{
		Name:       "text",
		Position:   LineAny,
		TryConsume: tryText,
	}

	RuleLineBreak = Rule{
		Name:       "line-break",
		Position:   LineAny,
		TryConsume: tryLineBreak,
	}

	RuleParagraphBreak = Rule{
		Name:       "paragraph-break",
		Position:   LineAny,
		TryConsume: tryParagraphBreak,
	}

	RuleHorizontalRule = Rule{
		Name:       "horizontal-rule",
		Position:   LineStart,
		TryConsume: tryHorizontalRule,
	}

	RuleStrikethrough = Rule{
		Name:       "strikethrough",
		Position:   LineAny,
		TryConsume: tryStrikethrough,
	}

	RuleBold = Rule{
		Name:       "bold",
		Position:   LineAny,
		TryConsume: symmetricContainer(TokenBold, tree.ContainerBold, blockInterrupts),
	}

	RuleItalics = Rule{
		Name:       "italics",
		Position:   LineAny,
		TryConsume: symmetricContainer(TokenItalics, tree.ContainerItalics, blockInterrupts),
	}

	RuleUnderline = Rule{
		Name:       "underline",
		Position:   LineAny,
		TryConsume: symmetricContainer(TokenUnderline, tree.ContainerUnderline, blockInterrupts),
	}

	RuleSuperscript = Rule{
		Name:       "superscript",
		Position:   LineAny,
		TryConsume: symmetricContainer(TokenSuperscript, tree.ContainerSuperscript, lineInterrupts),
	}

	RuleSubscript = Rule{
		Name:       "subscript",
		Position:   LineAny,
		TryConsume: symmetricContainer(TokenSubscript, tree.ContainerSubscript, lineInterrupts),
	}

	RuleMonospace = Rule{
		Name:       "monospace",
		Position:   LineAny,
		TryConsume: tryMonospace,
	}
)

var (
	blockInterrupts = []ParseCondition{
		CurrentToken(TokenParagraphBreak),
	}

	lineInterrupts = []ParseCondition{
		CurrentToken(TokenLineBreak),
		CurrentToken(TokenParagraphBreak),
	}
)

func tryText(p *Parser, _ Rule) ([]tree.Element, error) {
	text := p.Current().Slice
	p.Step()
	return []tree.Element{tree.Text(text)}, nil
}

func tryLineBreak(p *Parser, rule Rule) ([]tree.Element, error) {
	if !p.Evaluate(CurrentToken(TokenLineBreak)) {
		return nil, ruleFailed(rule, p.Current())
	}
	p.Step()
	return []tree.Element{tree.LineBreak{}}, nil
}

func tryParagraphBreak(p *Parser, rule Rule) ([]tree.Element, error) {
	if !p.Evaluate(CurrentToken(TokenParagraphBreak)) {
		return nil, ruleFailed(rule, p.Current())
	}
	p.Step()
	return []tree.Element{tree.ParagraphBreak{}}, nil
}

// tryHorizontalRule matches a line made only of dashes, at least four.
func tryHorizontalRule(p *Parser, rule Rule) ([]tree.Element, error) {
	if !p.Evaluate(TokenPair(TokenDoubleDash, TokenDoubleDash)) {
		return nil, ruleFailed(rule, p.Current())
	}
	for p.Evaluate(CurrentToken(TokenDoubleDash)) {
		p.Step()
	}

	switch p.Current().Token {
	case TokenLineBreak, TokenParagraphBreak, TokenInputEnd:
		return []tree.Element{tree.HorizontalRule{}}, nil
	}
	return nil, ruleFailed(rule, p.Current())
}

func tryStrikethrough(p *Parser, rule Rule) ([]tree.Element, error) {
	return collectElement(
		p,
		rule,
		tree.ContainerStrikethrough,
		tree.AttributeMap{},
		[]ParseCondition{CurrentToken(TokenDoubleDash)},
		[]ParseCondition{CurrentToken(TokenDoubleDash)},
		[]ParseCondition{
			CurrentToken(TokenLineBreak),
			CurrentToken(TokenParagraphBreak),
			TokenPair(TokenDoubleDash, TokenWhitespace),
			TokenPair(TokenWhitespace, TokenDoubleDash),
		},
	)
}

func tryMonospace(p *Parser, rule Rule) ([]tree.Element, error) {
	return collectElement(
		p,
		rule,
		tree.ContainerMonospace,
		tree.AttributeMap{},
		[]ParseCondition{CurrentToken(TokenLeftMonospace)},
		[]ParseCondition{CurrentToken(TokenRightMonospace)},
		blockInterrupts,
	)
}

// symmetricContainer builds a rule body for constructs opened and closed
// by the same token.
func symmetricContainer(token Token, ctype tree.ContainerType, interrupt []ParseCondition) TryConsumeFn {
	delimiter := []ParseCondition{CurrentToken(token)}
	return func(p *Parser, rule Rule) ([]tree.Element, error) {
		return collectElement(p, rule, ctype, tree.AttributeMap{}, delimiter, delimiter, interrupt)
	}
}

func collectElement(
	p *Parser,
	rule Rule,
	ctype tree.ContainerType,
	attributes tree.AttributeMap,
	start, end, interrupt []ParseCondition,
) ([]tree.Element, error) {
	container, _, err := CollectContainer(p, rule, ctype, attributes, start, end, interrupt)
	if err != nil {
		return nil, err
	}
	return []tree.Element{container}, nil
}
