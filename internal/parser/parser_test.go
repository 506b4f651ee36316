package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wikiparse/internal/config"
	"wikiparse/internal/tree"
)

func settings() config.WikitextSettings {
	return config.DefaultSettings()
}

func container(ctype tree.ContainerType, elements ...tree.Element) *tree.Container {
	if elements == nil {
		elements = []tree.Element{}
	}
	return tree.NewContainer(ctype, elements, nil)
}

func elements(elems ...tree.Element) []tree.Element {
	if elems == nil {
		return []tree.Element{}
	}
	return elems
}

func warningKinds(warnings []ParseWarning) []WarningKind {
	kinds := make([]WarningKind, 0, len(warnings))
	for _, w := range warnings {
		kinds = append(kinds, w.Kind)
	}
	return kinds
}

func TestCollectContainerClosed(t *testing.T) {
	tokens := []ExtractedToken{
		tok(TokenBold, "**", 0, 2),
		tok(TokenText, "a", 2, 3),
		tok(TokenBold, "**", 3, 5),
	}
	p := NewParser(tokens, settings())
	delimiter := []ParseCondition{CurrentToken(TokenBold)}

	c, closing, err := CollectContainer(p, RuleBold, tree.ContainerBold, nil, delimiter, delimiter, nil)
	require.NoError(t, err)

	assert.Equal(t, Closed, closing)
	assert.Equal(t, container(tree.ContainerBold, tree.Text("a")), c)
	assert.True(t, p.Done())
	assert.Empty(t, p.Warnings())
}

func TestCollectContainerInterrupted(t *testing.T) {
	tokens := []ExtractedToken{
		tok(TokenBold, "**", 0, 2),
		tok(TokenText, "a", 2, 3),
		tok(TokenLineBreak, "\n", 3, 4),
	}
	p := NewParser(tokens, settings())
	delimiter := []ParseCondition{CurrentToken(TokenBold)}
	interrupt := []ParseCondition{CurrentToken(TokenLineBreak)}

	c, closing, err := CollectContainer(p, RuleBold, tree.ContainerBold, nil, delimiter, delimiter, interrupt)
	require.NoError(t, err)

	assert.Equal(t, Unterminated, closing)
	assert.Equal(t, container(tree.ContainerBold, tree.Text("a")), c)

	// The interrupting token is left for the caller.
	assert.Equal(t, TokenLineBreak, p.Current().Token)

	require.Len(t, p.Warnings(), 1)
	assert.Equal(t, ParseWarning{
		Token: TokenLineBreak,
		Rule:  "bold",
		Span:  Span{Start: 3, End: 4},
		Kind:  WarningUnterminatedContainer,
	}, p.Warnings()[0])
}

func TestCollectContainerNoStart(t *testing.T) {
	tokens := []ExtractedToken{tok(TokenText, "a", 0, 1)}
	p := NewParser(tokens, settings())
	delimiter := []ParseCondition{CurrentToken(TokenBold)}

	c, _, err := CollectContainer(p, RuleBold, tree.ContainerBold, nil, delimiter, delimiter, nil)
	assert.Nil(t, c)
	assert.True(t, errors.Is(err, ErrRuleFailed))
	assert.Equal(t, TokenText, p.Current().Token)
}

func TestCollectContainerPairConditions(t *testing.T) {
	tokens := []ExtractedToken{
		tok(TokenOther, "[", 0, 1),
		tok(TokenOther, "[", 1, 2),
		tok(TokenText, "a", 2, 3),
		tok(TokenOther, "]", 3, 4),
		tok(TokenOther, "]", 4, 5),
		tok(TokenText, "b", 5, 6),
	}
	p := NewParser(tokens, settings())
	pair := []ParseCondition{TokenPair(TokenOther, TokenOther)}

	c, closing, err := CollectContainer(p, RuleMonospace, tree.ContainerMonospace, tree.AttributeMap{"class": "x"}, pair, pair, nil)
	require.NoError(t, err)

	assert.Equal(t, Closed, closing)
	assert.Equal(t, []tree.Element{tree.Text("a")}, c.Elements)
	assert.Equal(t, tree.AttributeMap{"class": "x"}, c.Attributes)
	assert.Equal(t, TokenText, p.Current().Token)
	assert.Equal(t, "b", p.Current().Slice)
}

func TestParseContainers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []tree.Element
	}{
		{
			name:  "bold",
			input: "**a**",
			want:  elements(container(tree.ContainerBold, tree.Text("a"))),
		},
		{
			name:  "italics inside bold",
			input: "**//a//**",
			want: elements(
				container(tree.ContainerBold, container(tree.ContainerItalics, tree.Text("a"))),
			),
		},
		{
			name:  "underline with surrounding text",
			input: "x __y z__ w",
			want: elements(
				tree.Text("x "),
				container(tree.ContainerUnderline, tree.Text("y z")),
				tree.Text(" w"),
			),
		},
		{
			name:  "superscript and subscript",
			input: "^^a^^,,b,,",
			want: elements(
				container(tree.ContainerSuperscript, tree.Text("a")),
				container(tree.ContainerSubscript, tree.Text("b")),
			),
		},
		{
			name:  "bold spans a line break",
			input: "**a\nb**",
			want: elements(
				container(tree.ContainerBold, tree.Text("a"), tree.LineBreak{}, tree.Text("b")),
			),
		},
		{
			name:  "monospace",
			input: "{{a **b**}}",
			want: elements(
				container(tree.ContainerMonospace, tree.Text("a "), container(tree.ContainerBold, tree.Text("b"))),
			),
		},
		{
			name:  "strikethrough",
			input: "a --b-- c",
			want: elements(
				tree.Text("a "),
				container(tree.ContainerStrikethrough, tree.Text("b")),
				tree.Text(" c"),
			),
		},
		{
			name:  "stray right monospace",
			input: "a}}",
			want:  elements(tree.Text("a}}")),
		},
		{
			name:  "paragraphs",
			input: "a\n\nb",
			want:  elements(tree.Text("a"), tree.ParagraphBreak{}, tree.Text("b")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			syntaxTree, warnings := ParseText(tt.input, settings())
			assert.Equal(t, tt.want, syntaxTree.Elements)
			assert.Empty(t, warnings)
		})
	}
}

func TestParseEmpty(t *testing.T) {
	syntaxTree, warnings := ParseText("", settings())
	assert.Empty(t, syntaxTree.Elements)
	assert.Empty(t, warnings)
}

func TestParseUnterminated(t *testing.T) {
	t.Run("interrupted by paragraph break", func(t *testing.T) {
		syntaxTree, warnings := ParseText("**a\n\nb", settings())
		assert.Equal(t, elements(
			container(tree.ContainerBold, tree.Text("a")),
			tree.ParagraphBreak{},
			tree.Text("b"),
		), syntaxTree.Elements)

		require.Len(t, warnings, 1)
		assert.Equal(t, WarningUnterminatedContainer, warnings[0].Kind)
		assert.Equal(t, TokenParagraphBreak, warnings[0].Token)
		assert.Equal(t, "bold", warnings[0].Rule)
	})

	t.Run("superscript interrupted by line break", func(t *testing.T) {
		syntaxTree, warnings := ParseText("^^a\nb", settings())
		assert.Equal(t, elements(
			container(tree.ContainerSuperscript, tree.Text("a")),
			tree.LineBreak{},
			tree.Text("b"),
		), syntaxTree.Elements)

		require.Len(t, warnings, 1)
		assert.Equal(t, "superscript", warnings[0].Rule)
	})

	t.Run("end of input", func(t *testing.T) {
		syntaxTree, warnings := ParseText("**a", settings())
		assert.Equal(t, elements(container(tree.ContainerBold, tree.Text("a"))), syntaxTree.Elements)

		require.Len(t, warnings, 1)
		assert.Equal(t, ParseWarning{
			Token: TokenInputEnd,
			Rule:  "bold",
			Span:  Span{Start: 3, End: 3},
			Kind:  WarningUnterminatedContainer,
		}, warnings[0])
	})

	t.Run("strikethrough before spaced dashes", func(t *testing.T) {
		syntaxTree, warnings := ParseText("--a --", settings())
		assert.Equal(t, elements(
			container(tree.ContainerStrikethrough, tree.Text("a")),
			tree.Text(" "),
			container(tree.ContainerStrikethrough),
		), syntaxTree.Elements)

		assert.Equal(t, []WarningKind{WarningUnterminatedContainer, WarningUnterminatedContainer}, warningKinds(warnings))
	})
}

func TestParseHorizontalRule(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []tree.Element
	}{
		{
			name:  "own line",
			input: "----\ntext",
			want:  elements(tree.HorizontalRule{}, tree.LineBreak{}, tree.Text("text")),
		},
		{
			name:  "long rule",
			input: "a\n------",
			want:  elements(tree.Text("a"), tree.LineBreak{}, tree.HorizontalRule{}),
		},
		{
			name:  "not at line start",
			input: "a ----",
			want: elements(
				tree.Text("a "),
				container(tree.ContainerStrikethrough),
			),
		},
		{
			name:  "followed by text",
			input: "----x",
			want: elements(
				container(tree.ContainerStrikethrough),
				tree.Text("x"),
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			syntaxTree, warnings := ParseText(tt.input, settings())
			assert.Equal(t, tt.want, syntaxTree.Elements)
			assert.Empty(t, warnings)
		})
	}
}

func TestParseNestingLimit(t *testing.T) {
	limited := settings()
	limited.MaxNestingDepth = 2

	syntaxTree, warnings := ParseText("**//__a__//**", limited)
	assert.Equal(t, elements(
		container(tree.ContainerBold,
			container(tree.ContainerItalics,
				container(tree.ContainerUnderline),
				tree.Text("a"),
				container(tree.ContainerUnderline),
			),
		),
	), syntaxTree.Elements)

	require.Len(t, warnings, 2)
	for _, w := range warnings {
		assert.Equal(t, WarningNestingTooDeep, w.Kind)
		assert.Equal(t, "underline", w.Rule)
	}
}

// chainDepth follows the first child of each container and counts the
// containers on the way.
func chainDepth(t *testing.T, elem tree.Element) int {
	t.Helper()
	depth := 0
	for {
		c, ok := elem.(*tree.Container)
		require.True(t, ok, "expected a container, got %T", elem)
		depth++
		if len(c.Elements) == 0 {
			return depth
		}
		require.Len(t, c.Elements, 1)
		elem = c.Elements[0]
	}
}

func countKind(warnings []ParseWarning, kind WarningKind) int {
	n := 0
	for _, w := range warnings {
		if w.Kind == kind {
			n++
		}
	}
	return n
}

func TestParseDeepNestingDefaultLimit(t *testing.T) {
	input := ""
	for i := 0; i < 150; i++ {
		input += "**//"
	}
	limit := settings().MaxNestingDepth

	syntaxTree, warnings := ParseText(input, settings())

	// The opener past the limit becomes an empty container. The delimiters
	// after it close the open containers one by one, and the rest start a
	// second nest that runs to the end of input.
	require.Len(t, syntaxTree.Elements, 2)
	assert.Equal(t, limit+1, chainDepth(t, syntaxTree.Elements[0]))
	assert.Equal(t, 300-2*limit-1, chainDepth(t, syntaxTree.Elements[1]))

	assert.Equal(t, 1, countKind(warnings, WarningNestingTooDeep))
	assert.Equal(t, 300-2*limit-1, countKind(warnings, WarningUnterminatedContainer))
}

func TestParseFallback(t *testing.T) {
	original := rulesByToken[TokenOther]
	t.Cleanup(func() { rulesByToken[TokenOther] = original })

	rulesByToken[TokenOther] = []Rule{{
		Name:     "greedy",
		Position: LineAny,
		TryConsume: func(p *Parser, rule Rule) ([]tree.Element, error) {
			p.StepN(2)
			p.warn(WarningUnterminatedContainer, rule.Name)
			return nil, ruleFailed(rule, p.Current())
		},
	}}

	syntaxTree, warnings := ParseText("a#b", settings())
	assert.Equal(t, elements(tree.Text("a#b")), syntaxTree.Elements)

	// The failed rule's warning is discarded along with its progress.
	require.Len(t, warnings, 1)
	assert.Equal(t, ParseWarning{
		Token: TokenOther,
		Rule:  "fallback",
		Span:  Span{Start: 1, End: 2},
		Kind:  WarningNoRulesMatch,
	}, warnings[0])
}

func TestParserCursor(t *testing.T) {
	p := NewParser(nil, settings())
	assert.True(t, p.Done())
	p.Step()
	assert.True(t, p.Done())

	p = NewParser([]ExtractedToken{tok(TokenText, "a", 0, 1), tok(TokenLineBreak, "\n", 1, 2)}, settings())
	assert.True(t, p.StartOfLine())

	next, ok := p.LookAhead(1)
	require.True(t, ok)
	assert.Equal(t, TokenLineBreak, next.Token)

	end, ok := p.LookAhead(2)
	require.True(t, ok)
	assert.Equal(t, TokenInputEnd, end.Token)
	assert.Equal(t, Span{Start: 2, End: 2}, end.Span)

	_, ok = p.LookAhead(3)
	assert.False(t, ok)

	p.StepN(2)
	assert.True(t, p.StartOfLine())
	assert.True(t, p.Done())
}

func TestConditions(t *testing.T) {
	p := NewParser(Tokenize("-- x"), settings())

	assert.True(t, p.Evaluate(CurrentToken(TokenDoubleDash)))
	assert.True(t, p.Evaluate(TokenPair(TokenDoubleDash, TokenWhitespace)))
	assert.False(t, p.Evaluate(TokenPair(TokenDoubleDash, TokenText)))

	c, ok := p.EvaluateAny([]ParseCondition{CurrentToken(TokenText), TokenPair(TokenDoubleDash, TokenWhitespace)})
	require.True(t, ok)
	assert.Equal(t, 2, c.Width())
	assert.Equal(t, "pair(double-dash, whitespace)", c.String())
	assert.Equal(t, "current(text)", CurrentToken(TokenText).String())
}

func TestParseWarningString(t *testing.T) {
	w := ParseWarning{
		Token: TokenInputEnd,
		Rule:  "bold",
		Span:  Span{Start: 3, End: 3},
		Kind:  WarningUnterminatedContainer,
	}
	assert.Equal(t, "unterminated-container in rule bold at input-end [3, 3)", w.String())
}
