package parser

import "wikiparse/internal/tree"

// LineRequirement restricts where in a line a rule may start
type LineRequirement int

const (
	LineAny LineRequirement = iota
	LineStart
)

func (r LineRequirement) satisfied(p *Parser) bool {
	return r == LineAny || p.StartOfLine()
}

// TryConsumeFn attempts to consume one construct at the cursor on behalf of
// rule. It returns an error wrapping ErrRuleFailed when the construct is
// not present.
type TryConsumeFn func(p *Parser, rule Rule) ([]tree.Element, error)

// Rule describes one syntax construct
type Rule struct {
	Name       string
	Position   LineRequirement
	TryConsume TryConsumeFn
}

// rulesByToken lists candidate rules per token, in the order they are tried.
// It is filled in init because rules parse their contents through it.
var rulesByToken map[Token][]Rule

func init() {
	rulesByToken = map[Token][]Rule{
		TokenText:           {RuleText},
		TokenOther:          {RuleText},
		TokenWhitespace:     {RuleText},
		TokenLineBreak:      {RuleLineBreak},
		TokenParagraphBreak: {RuleParagraphBreak},
		TokenBold:           {RuleBold},
		TokenItalics:        {RuleItalics},
		TokenUnderline:      {RuleUnderline},
		TokenSuperscript:    {RuleSuperscript},
		TokenSubscript:      {RuleSubscript},
		TokenDoubleDash:     {RuleHorizontalRule, RuleStrikethrough},
		TokenLeftMonospace:  {RuleMonospace},
	}
}

func rulesForToken(token Token) []Rule {
	return rulesByToken[token]
}
