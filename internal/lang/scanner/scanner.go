// Package scanner implements a lazy, byte-oriented lexer for the language core.
//
// Scanner.Next returns one Token per call; it does not tokenize the whole
// source up front. Malformed input is reported via sentinel token kinds
// (token.UnterminatedString, token.UnexpectedCharacter) rather than an error
// return, matching the compiler's panic-mode recovery story.
package scanner

import (
	"github.com/glyphlang/glox/internal/lang/token"
)

// Scanner walks a source buffer one byte at a time.
type Scanner struct {
	source  string
	start   int
	current int
	line    int
}

// New returns a Scanner positioned at the beginning of source.
func New(source string) *Scanner {
	return &Scanner{source: source, start: 0, current: 0, line: 1}
}

// Next returns the next token in the source, advancing past it.
func (s *Scanner) Next() token.Token {
	s.skipWhitespace()
	s.start = s.current

	if s.atEnd() {
		return s.make(token.Eof)
	}

	c := s.advance()

	if isAlpha(c) {
		return s.identifier()
	}
	if isDigit(c) {
		return s.number()
	}

	switch c {
	case '(':
		return s.make(token.LeftParen)
	case ')':
		return s.make(token.RightParen)
	case '{':
		return s.make(token.LeftBrace)
	case '}':
		return s.make(token.RightBrace)
	case ',':
		return s.make(token.Comma)
	case '.':
		return s.make(token.Dot)
	case '-':
		return s.make(token.Minus)
	case '+':
		return s.make(token.Plus)
	case ';':
		return s.make(token.Semicolon)
	case '*':
		return s.make(token.Star)
	case '%':
		return s.make(token.Percent)
	case '/':
		return s.make(token.Slash)
	case '!':
		return s.make(s.twoChar('=', token.BangEqual, token.Bang))
	case '=':
		return s.make(s.twoChar('=', token.EqualEqual, token.Equal))
	case '<':
		return s.make(s.twoChar('=', token.LessEqual, token.Less))
	case '>':
		return s.make(s.twoChar('=', token.GreaterEqual, token.Greater))
	case '"':
		return s.string()
	}

	return s.make(token.UnexpectedCharacter)
}

func (s *Scanner) skipWhitespace() {
	for {
		if s.atEnd() {
			return
		}
		switch s.peek() {
		case ' ', '\r', '\t':
			s.current++
		case '\n':
			s.line++
			s.current++
		case '/':
			if s.peekNext() == '/' {
				for !s.atEnd() && s.peek() != '\n' {
					s.current++
				}
			} else {
				return
			}
		default:
			return
		}
	}
}

func (s *Scanner) string() token.Token {
	for !s.atEnd() && s.peek() != '"' {
		if s.peek() == '\n' {
			s.line++
		}
		if s.peek() == '\\' && !s.atEndAt(s.current+1) {
			s.current++
		}
		s.current++
	}
	if s.atEnd() {
		return s.make(token.UnterminatedString)
	}
	s.current++ // closing quote
	return s.make(token.String)
}

func (s *Scanner) number() token.Token {
	for isDigit(s.peek()) {
		s.current++
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.current++
		for isDigit(s.peek()) {
			s.current++
		}
	}
	return s.make(token.Number)
}

func (s *Scanner) identifier() token.Token {
	for isAlpha(s.peek()) || isDigit(s.peek()) {
		s.current++
	}
	lexeme := s.source[s.start:s.current]
	if kw, ok := token.Keywords[lexeme]; ok {
		return s.make(kw)
	}
	return s.make(token.Identifier)
}

func (s *Scanner) twoChar(next byte, matched, unmatched token.Kind) token.Kind {
	if !s.atEnd() && s.peek() == next {
		s.current++
		return matched
	}
	return unmatched
}

func (s *Scanner) make(kind token.Kind) token.Token {
	return token.Token{Kind: kind, Lexeme: s.source[s.start:s.current], Line: s.line}
}

func (s *Scanner) advance() byte {
	c := s.source[s.current]
	s.current++
	return c
}

func (s *Scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.source) {
		return 0
	}
	return s.source[s.current+1]
}

func (s *Scanner) atEnd() bool {
	return s.current >= len(s.source)
}

func (s *Scanner) atEndAt(pos int) bool {
	return pos >= len(s.source)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
