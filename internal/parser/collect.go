package parser

import "wikiparse/internal/tree"

// Closing tells how a container ended
type Closing int

const (
	// Closed containers ended with one of their end conditions.
	Closed Closing = iota
	// Unterminated containers were cut off by an interrupt condition,
	// the end of input, or the nesting limit.
	Unterminated
)

func (c Closing) String() string {
	if c == Closed {
		return "closed"
	}
	return "unterminated"
}

// CollectContainer consumes a delimited construct into a container.
//
// One of start must hold at the cursor, otherwise an error wrapping
// ErrRuleFailed is returned and nothing is consumed. Elements are then
// parsed until one of end holds, which is consumed and closes the
// container, or one of interrupt holds, which is left for the caller and
// ends the container as unterminated. Running out of input also ends the
// container as unterminated.
func CollectContainer(
	p *Parser,
	rule Rule,
	ctype tree.ContainerType,
	attributes tree.AttributeMap,
	start []ParseCondition,
	end []ParseCondition,
	interrupt []ParseCondition,
) (*tree.Container, Closing, error) {
	logger.Debug("trying to collect container", "rule", rule.Name, "container", ctype.String())

	opening, ok := p.EvaluateAny(start)
	if !ok {
		return nil, Unterminated, ruleFailed(rule, p.Current())
	}
	p.StepN(opening.Width())

	if p.depth >= p.maxDepth {
		p.warn(WarningNestingTooDeep, rule.Name)
		return tree.NewContainer(ctype, []tree.Element{}, attributes), Unterminated, nil
	}
	p.depth++
	defer func() { p.depth-- }()

	var elements []tree.Element
	for {
		if closing, ok := p.EvaluateAny(end); ok {
			p.StepN(closing.Width())
			return tree.NewContainer(ctype, tree.MergeText(elements), attributes), Closed, nil
		}

		if _, ok := p.EvaluateAny(interrupt); ok || p.Done() {
			p.warn(WarningUnterminatedContainer, rule.Name)
			return tree.NewContainer(ctype, tree.MergeText(elements), attributes), Unterminated, nil
		}

		elements = append(elements, p.ParseElement()...)
	}
}
