package includes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wikiparse/internal/tree"
)

func TestReplaceVariables(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		variables tree.VariableMap
		want      string
	}{
		{
			name:      "no variables",
			content:   "{$a} stays",
			variables: nil,
			want:      "{$a} stays",
		},
		{
			name:      "simple",
			content:   "Hello {$name}!",
			variables: tree.VariableMap{"name": "world"},
			want:      "Hello world!",
		},
		{
			name:      "repeated and unknown",
			content:   "{$a}-{$b}-{$a}",
			variables: tree.VariableMap{"a": "1"},
			want:      "1-{$b}-1",
		},
		{
			name:      "name characters",
			content:   "{$with-dash_and_9}",
			variables: tree.VariableMap{"with-dash_and_9": "ok"},
			want:      "ok",
		},
		{
			name:      "not a reference",
			content:   "{$ spaced} {$} $a {a}",
			variables: tree.VariableMap{"a": "x", "spaced": "y"},
			want:      "{$ spaced} {$} $a {a}",
		},
		{
			name:      "single pass",
			content:   "{$outer}",
			variables: tree.VariableMap{"outer": "{$inner}", "inner": "deep"},
			want:      "{$inner}",
		},
		{
			name:      "lengths change",
			content:   "{$long} {$short} {$long}",
			variables: tree.VariableMap{"long": "", "short": "a much longer value"},
			want:      " a much longer value ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReplaceVariables(tt.content, tt.variables))
		})
	}
}

func TestNoIncludeTransforms(t *testing.T) {
	page := "A\n[[noinclude]]\nB\n[[/noinclude]]\nC"

	assert.Equal(t, "A\nB\nC", RemoveNoIncludes(page))
	assert.Equal(t, "A\n\nC", StripNoIncludes(page))
}

func TestNoIncludeMarkers(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		view   string
		stripd string
	}{
		{
			name:   "case and spacing",
			input:  "[[ NoInclude ]]\nhidden\n[[/ NOINCLUDE]]",
			view:   "hidden",
			stripd: "",
		},
		{
			name:   "multiple lines and sections",
			input:  "x\n[[noinclude]]\n1\n2\n[[/noinclude]]\ny\n[[noinclude]]\n3\n[[/noinclude]]",
			view:   "x\n1\n2\ny\n3",
			stripd: "x\n\ny\n",
		},
		{
			name:   "unterminated",
			input:  "x\n[[noinclude]]\nhidden",
			view:   "x\n[[noinclude]]\nhidden",
			stripd: "x\n[[noinclude]]\nhidden",
		},
		{
			name:   "closing marker not on its own line",
			input:  "[[noinclude]]\nhidden [[/noinclude]] tail",
			view:   "[[noinclude]]\nhidden [[/noinclude]] tail",
			stripd: "[[noinclude]]\nhidden [[/noinclude]] tail",
		},
		{
			name:   "dollar signs kept",
			input:  "[[noinclude]]\ncosts $1\n[[/noinclude]]",
			view:   "costs $1",
			stripd: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.view, RemoveNoIncludes(tt.input))
			assert.Equal(t, tt.stripd, StripNoIncludes(tt.input))
		})
	}
}

func TestApplyEdits(t *testing.T) {
	s := "0123456789"
	edits := []edit{
		{start: 1, end: 3, text: "ab"},
		{start: 8, end: 10, text: ""},
		{start: 5, end: 5, text: "INSERT"},
	}

	assert.Equal(t, "0ab34INSERT567", applyEdits(s, edits))
	assert.Equal(t, s, applyEdits(s, nil))
	assert.Equal(t, 1, edits[0].start, "edits slice is not reordered")
}
