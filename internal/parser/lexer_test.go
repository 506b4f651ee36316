package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tok(token Token, slice string, start, end int) ExtractedToken {
	return ExtractedToken{Token: token, Slice: slice, Span: Span{Start: start, End: end}}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []ExtractedToken
	}{
		{
			name:  "empty",
			input: "",
			want:  []ExtractedToken{tok(TokenInputEnd, "", 0, 0)},
		},
		{
			name:  "bold and text",
			input: "**bold** text",
			want: []ExtractedToken{
				tok(TokenBold, "**", 0, 2),
				tok(TokenText, "bold", 2, 6),
				tok(TokenBold, "**", 6, 8),
				tok(TokenWhitespace, " ", 8, 9),
				tok(TokenText, "text", 9, 13),
				tok(TokenInputEnd, "", 13, 13),
			},
		},
		{
			name:  "line and paragraph breaks",
			input: "a\nb\n\nc",
			want: []ExtractedToken{
				tok(TokenText, "a", 0, 1),
				tok(TokenLineBreak, "\n", 1, 2),
				tok(TokenText, "b", 2, 3),
				tok(TokenParagraphBreak, "\n\n", 3, 5),
				tok(TokenText, "c", 5, 6),
				tok(TokenInputEnd, "", 6, 6),
			},
		},
		{
			name:  "blank line with spaces",
			input: "a\n  \nb",
			want: []ExtractedToken{
				tok(TokenText, "a", 0, 1),
				tok(TokenParagraphBreak, "\n  \n", 1, 5),
				tok(TokenText, "b", 5, 6),
				tok(TokenInputEnd, "", 6, 6),
			},
		},
		{
			name:  "indented line",
			input: "a\n b",
			want: []ExtractedToken{
				tok(TokenText, "a", 0, 1),
				tok(TokenLineBreak, "\n", 1, 2),
				tok(TokenWhitespace, " ", 2, 3),
				tok(TokenText, "b", 3, 4),
				tok(TokenInputEnd, "", 4, 4),
			},
		},
		{
			name:  "crlf",
			input: "a\r\nb",
			want: []ExtractedToken{
				tok(TokenText, "a", 0, 1),
				tok(TokenLineBreak, "\r\n", 1, 3),
				tok(TokenText, "b", 3, 4),
				tok(TokenInputEnd, "", 4, 4),
			},
		},
		{
			name:  "other characters",
			input: "x-y",
			want: []ExtractedToken{
				tok(TokenText, "x", 0, 1),
				tok(TokenOther, "-", 1, 2),
				tok(TokenText, "y", 2, 3),
				tok(TokenInputEnd, "", 3, 3),
			},
		},
		{
			name:  "monospace and dashes",
			input: "{{a}}----",
			want: []ExtractedToken{
				tok(TokenLeftMonospace, "{{", 0, 2),
				tok(TokenText, "a", 2, 3),
				tok(TokenRightMonospace, "}}", 3, 5),
				tok(TokenDoubleDash, "--", 5, 7),
				tok(TokenDoubleDash, "--", 7, 9),
				tok(TokenInputEnd, "", 9, 9),
			},
		},
		{
			name:  "unicode letters",
			input: "héllo ,,",
			want: []ExtractedToken{
				tok(TokenText, "héllo", 0, 6),
				tok(TokenWhitespace, " ", 6, 7),
				tok(TokenSubscript, ",,", 7, 9),
				tok(TokenInputEnd, "", 9, 9),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.input))
		})
	}
}

func TestTokenString(t *testing.T) {
	assert.Equal(t, "double-dash", TokenDoubleDash.String())
	assert.Equal(t, "token(99)", Token(99).String())
}
