package hintparse

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString
	tokNumber
	tokLBracket
	tokRBracket
	tokLParen
	tokRParen
	tokPipe
	tokComma
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

type lexer struct {
	src string
	pos int
}

func newLexer(src string) *lexer {
	return &lexer{src: src}
}

func (l *lexer) next() (token, error) {
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !unicode.IsSpace(r) {
			break
		}
		l.pos += size
	}
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, pos: l.pos}, nil
	}
	start := l.pos
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	switch r {
	case '[':
		l.pos += size
		return token{kind: tokLBracket, text: "[", pos: start}, nil
	case ']':
		l.pos += size
		return token{kind: tokRBracket, text: "]", pos: start}, nil
	case '(':
		l.pos += size
		return token{kind: tokLParen, text: "(", pos: start}, nil
	case ')':
		l.pos += size
		return token{kind: tokRParen, text: ")", pos: start}, nil
	case '|':
		l.pos += size
		return token{kind: tokPipe, text: "|", pos: start}, nil
	case ',':
		l.pos += size
		return token{kind: tokComma, text: ",", pos: start}, nil
	case '"':
		return l.lexString(start)
	}
	if r == '-' || unicode.IsDigit(r) {
		return l.lexNumber(start)
	}
	if unicode.IsLetter(r) || r == '_' {
		return l.lexIdent(start)
	}
	return token{}, fmt.Errorf("hintparse: unexpected character %q at offset %d", r, start)
}

func (l *lexer) lexString(start int) (token, error) {
	l.pos++ // opening quote
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		l.pos += size
		if r == '\\' {
			_, esc := utf8.DecodeRuneInString(l.src[l.pos:])
			l.pos += esc
			continue
		}
		if r == '"' {
			return token{kind: tokString, text: l.src[start:l.pos], pos: start}, nil
		}
	}
	return token{}, fmt.Errorf("hintparse: unterminated string at offset %d", start)
}

func (l *lexer) lexNumber(start int) (token, error) {
	if l.src[l.pos] == '-' {
		l.pos++
	}
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !unicode.IsDigit(r) {
			break
		}
		l.pos += size
	}
	if l.pos == start || l.src[start:l.pos] == "-" {
		return token{}, fmt.Errorf("hintparse: malformed number at offset %d", start)
	}
	return token{kind: tokNumber, text: l.src[start:l.pos], pos: start}, nil
}

func (l *lexer) lexIdent(start int) (token, error) {
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '.' {
			break
		}
		l.pos += size
	}
	return token{kind: tokIdent, text: l.src[start:l.pos], pos: start}, nil
}
