package parser

// ParseCondition is a test against the tokens at the cursor
type ParseCondition struct {
	first  Token
	second Token
	pair   bool
}

// CurrentToken matches when the current token is t.
func CurrentToken(t Token) ParseCondition {
	return ParseCondition{first: t}
}

// TokenPair matches when the current token is first and the next one is second.
func TokenPair(first, second Token) ParseCondition {
	return ParseCondition{first: first, second: second, pair: true}
}

// Width is the number of tokens the condition covers.
func (c ParseCondition) Width() int {
	if c.pair {
		return 2
	}
	return 1
}

func (c ParseCondition) String() string {
	if c.pair {
		return "pair(" + c.first.String() + ", " + c.second.String() + ")"
	}
	return "current(" + c.first.String() + ")"
}

// Evaluate reports whether the condition holds at the cursor.
func (p *Parser) Evaluate(c ParseCondition) bool {
	if p.Current().Token != c.first {
		return false
	}
	if !c.pair {
		return true
	}
	next, ok := p.LookAhead(1)
	return ok && next.Token == c.second
}

// EvaluateAny returns the first of conditions that holds at the cursor.
func (p *Parser) EvaluateAny(conditions []ParseCondition) (ParseCondition, bool) {
	for _, c := range conditions {
		if p.Evaluate(c) {
			return c, true
		}
	}
	return ParseCondition{}, false
}
