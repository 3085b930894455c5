package scanner

import (
	"testing"

	"github.com/glyphlang/glox/internal/lang/token"
	"github.com/stretchr/testify/assert"
)

func collect(src string) []token.Token {
	s := New(src)
	var out []token.Token
	for {
		tok := s.Next()
		out = append(out, tok)
		if tok.Kind == token.Eof {
			return out
		}
	}
}

func TestScanner_Punctuation(t *testing.T) {
	toks := collect("(){},.-+;*%/")
	kinds := make([]token.Kind, 0, len(toks))
	for _, tk := range toks {
		kinds = append(kinds, tk.Kind)
	}
	assert.Equal(t, []token.Kind{
		token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
		token.Comma, token.Dot, token.Minus, token.Plus, token.Semicolon,
		token.Star, token.Percent, token.Slash, token.Eof,
	}, kinds)
}

func TestScanner_TwoCharOperators(t *testing.T) {
	toks := collect("! != = == < <= > >=")
	var kinds []token.Kind
	for _, tk := range toks {
		kinds = append(kinds, tk.Kind)
	}
	assert.Equal(t, []token.Kind{
		token.Bang, token.BangEqual, token.Equal, token.EqualEqual,
		token.Less, token.LessEqual, token.Greater, token.GreaterEqual, token.Eof,
	}, kinds)
}

func TestScanner_NumberAndIdentifier(t *testing.T) {
	toks := collect("3.14 foo_bar and")
	assert.Equal(t, token.Number, toks[0].Kind)
	assert.Equal(t, "3.14", toks[0].Lexeme)
	assert.Equal(t, token.Identifier, toks[1].Kind)
	assert.Equal(t, token.And, toks[2].Kind)
}

func TestScanner_String(t *testing.T) {
	toks := collect(`"hello\nworld"`)
	assert.Equal(t, token.String, toks[0].Kind)
	assert.Equal(t, `"hello\nworld"`, toks[0].Lexeme)
}

func TestScanner_UnterminatedString(t *testing.T) {
	toks := collect(`"never closes`)
	assert.Equal(t, token.UnterminatedString, toks[0].Kind)
}

func TestScanner_UnexpectedCharacter(t *testing.T) {
	toks := collect("@")
	assert.Equal(t, token.UnexpectedCharacter, toks[0].Kind)
}

func TestScanner_CommentsAndWhitespaceTrackLines(t *testing.T) {
	toks := collect("var x = 1; // comment\nprint x;")
	var printTok token.Token
	for _, tk := range toks {
		if tk.Kind == token.Print {
			printTok = tk
		}
	}
	assert.Equal(t, 2, printTok.Line)
}
