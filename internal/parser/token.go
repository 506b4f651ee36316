package parser

import "fmt"

// Token is the kind of a lexical token
type Token int

const (
	TokenInputEnd Token = iota
	TokenText
	TokenOther
	TokenWhitespace
	TokenLineBreak
	TokenParagraphBreak
	TokenBold
	TokenItalics
	TokenUnderline
	TokenSuperscript
	TokenSubscript
	TokenDoubleDash
	TokenLeftMonospace
	TokenRightMonospace
)

var tokenNames = map[Token]string{
	TokenInputEnd:       "input-end",
	TokenText:           "text",
	TokenOther:          "other",
	TokenWhitespace:     "whitespace",
	TokenLineBreak:      "line-break",
	TokenParagraphBreak: "paragraph-break",
	TokenBold:           "bold",
	TokenItalics:        "italics",
	TokenUnderline:      "underline",
	TokenSuperscript:    "superscript",
	TokenSubscript:      "subscript",
	TokenDoubleDash:     "double-dash",
	TokenLeftMonospace:  "left-monospace",
	TokenRightMonospace: "right-monospace",
}

func (t Token) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("token(%d)", int(t))
}

// Span is a half-open byte range of the source text.
type Span struct {
	Start int
	End   int
}

// ExtractedToken is a token together with the text it was read from.
type ExtractedToken struct {
	Token Token
	Slice string
	Span  Span
}
