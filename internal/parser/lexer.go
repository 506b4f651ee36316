package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// delimiters are matched in order at each position
var delimiters = []struct {
	text  string
	token Token
}{
	{"**", TokenBold},
	{"//", TokenItalics},
	{"__", TokenUnderline},
	{"^^", TokenSuperscript},
	{",,", TokenSubscript},
	{"--", TokenDoubleDash},
	{"{{", TokenLeftMonospace},
	{"}}", TokenRightMonospace},
}

// Tokenize splits text into tokens. The last token is always TokenInputEnd.
func Tokenize(text string) []ExtractedToken {
	var tokens []ExtractedToken
	emit := func(token Token, start, end int) {
		tokens = append(tokens, ExtractedToken{
			Token: token,
			Slice: text[start:end],
			Span:  Span{Start: start, End: end},
		})
	}

	pos := 0
	for pos < len(text) {
		if end, ok := scanNewlines(text, pos); ok {
			token := TokenLineBreak
			if strings.Count(text[pos:end], "\n") > 1 {
				token = TokenParagraphBreak
			}
			emit(token, pos, end)
			pos = end
			continue
		}

		if token, width, ok := scanDelimiter(text[pos:]); ok {
			emit(token, pos, pos+width)
			pos += width
			continue
		}

		r, size := utf8.DecodeRuneInString(text[pos:])
		switch {
		case r == ' ' || r == '\t':
			end := pos + size
			for end < len(text) && (text[end] == ' ' || text[end] == '\t') {
				end++
			}
			emit(TokenWhitespace, pos, end)
			pos = end
		case isTextRune(r):
			end := pos + size
			for end < len(text) {
				r, size := utf8.DecodeRuneInString(text[end:])
				if !isTextRune(r) {
					break
				}
				end += size
			}
			emit(TokenText, pos, end)
			pos = end
		default:
			emit(TokenOther, pos, pos+size)
			pos += size
		}
	}

	emit(TokenInputEnd, len(text), len(text))
	return tokens
}

func isTextRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func scanDelimiter(s string) (Token, int, bool) {
	for _, d := range delimiters {
		if strings.HasPrefix(s, d.text) {
			return d.token, len(d.text), true
		}
	}
	return 0, 0, false
}

// scanNewlines consumes a line ending plus any following blank lines.
func scanNewlines(text string, pos int) (int, bool) {
	end, ok := lineEnding(text, pos)
	if !ok {
		return pos, false
	}

	for {
		next := end
		for next < len(text) && (text[next] == ' ' || text[next] == '\t') {
			next++
		}
		after, ok := lineEnding(text, next)
		if !ok {
			return end, true
		}
		end = after
	}
}

func lineEnding(text string, pos int) (int, bool) {
	switch {
	case strings.HasPrefix(text[pos:], "\r\n"):
		return pos + 2, true
	case strings.HasPrefix(text[pos:], "\n"):
		return pos + 1, true
	}
	return pos, false
}
