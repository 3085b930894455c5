// Package compiler implements the single-pass Pratt-style parser that emits
// bytecode directly into a bytecode.Chunk as it parses, with panic-mode
// error recovery. Structurally grounded on a function-pointer ParseRule
// table, the idiomatic Go shape for this kind of dispatch.
package compiler

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/glyphlang/glox/internal/glxerrors"
	"github.com/glyphlang/glox/internal/lang/bytecode"
	"github.com/glyphlang/glox/internal/lang/scanner"
	"github.com/glyphlang/glox/internal/lang/token"
	"github.com/glyphlang/glox/internal/lang/value"
)

// ErrOutput is where compile diagnostics are written as they're discovered.
// Tests may redirect it to capture output.
var ErrOutput io.Writer = os.Stderr

func stderrTarget() io.Writer { return ErrOutput }

// Precedence levels, ascending.
type Precedence int

const (
	PrecNone Precedence = iota
	PrecAssignment
	PrecOr
	PrecAnd
	PrecEquality
	PrecComparison
	PrecTerm
	PrecFactor
	PrecUnary
	PrecCall
	PrecPrimary
)

type parseFn func(c *Compiler, canAssign bool)

type parseRule struct {
	prefix, infix parseFn
	prec          Precedence
}

var rules map[token.Kind]parseRule

func init() {
	rules = map[token.Kind]parseRule{
		token.LeftParen:    {(*Compiler).grouping, nil, PrecNone},
		token.Minus:        {(*Compiler).unary, (*Compiler).binary, PrecTerm},
		token.Plus:         {nil, (*Compiler).binary, PrecTerm},
		token.Slash:        {nil, (*Compiler).binary, PrecFactor},
		token.Star:         {nil, (*Compiler).binary, PrecFactor},
		token.Percent:      {nil, (*Compiler).binary, PrecFactor},
		token.Bang:         {(*Compiler).unary, nil, PrecNone},
		token.BangEqual:    {nil, (*Compiler).binary, PrecEquality},
		token.EqualEqual:   {nil, (*Compiler).binary, PrecEquality},
		token.Greater:      {nil, (*Compiler).binary, PrecComparison},
		token.GreaterEqual: {nil, (*Compiler).binary, PrecComparison},
		token.Less:         {nil, (*Compiler).binary, PrecComparison},
		token.LessEqual:    {nil, (*Compiler).binary, PrecComparison},
		token.Identifier:   {(*Compiler).variable, nil, PrecNone},
		token.String:       {(*Compiler).string, nil, PrecNone},
		token.Number:       {(*Compiler).number, nil, PrecNone},
		token.False:        {(*Compiler).literal, nil, PrecNone},
		token.Nil:          {(*Compiler).literal, nil, PrecNone},
		token.True:         {(*Compiler).literal, nil, PrecNone},
	}
}

func ruleFor(k token.Kind) parseRule {
	if r, ok := rules[k]; ok {
		return r
	}
	return parseRule{nil, nil, PrecNone}
}

// Compiler holds one single-pass compilation's parser state.
type Compiler struct {
	scanner *scanner.Scanner
	prev    token.Token
	curr    token.Token
	chunk   *bytecode.Chunk

	errs      *multierror.Error
	hadError  bool
	panicMode bool
}

// New returns a Compiler ready to compile source.
func New() *Compiler {
	return &Compiler{}
}

// Compile parses source and returns the resulting Chunk, or the accumulated
// compile errors if any diagnostic was reported.
func (c *Compiler) Compile(source string) (*bytecode.Chunk, error) {
	c.scanner = scanner.New(source)
	c.chunk = &bytecode.Chunk{}
	c.hadError = false
	c.panicMode = false
	c.errs = nil

	c.advance()
	for c.curr.Kind != token.Eof {
		c.declaration()
	}
	c.consume(token.Eof, "Expect end of expression.")

	if c.hadError {
		return nil, c.errs.ErrorOrNil()
	}
	c.emitOp(bytecode.OpReturn)
	return c.chunk, nil
}

/* --- token stream helpers --- */

func (c *Compiler) advance() {
	c.prev = c.curr
	for {
		c.curr = c.scanner.Next()
		if c.curr.Kind != token.UnterminatedString && c.curr.Kind != token.UnexpectedCharacter {
			break
		}
		if c.curr.Kind == token.UnterminatedString {
			c.errorAt(c.curr, "Unterminated string.")
		} else {
			c.errorAt(c.curr, fmt.Sprintf("Unexpected character '%s'.", c.curr.Lexeme))
		}
	}
}

func (c *Compiler) check(k token.Kind) bool { return c.curr.Kind == k }

func (c *Compiler) match(k token.Kind) bool {
	if !c.check(k) {
		return false
	}
	c.advance()
	return true
}

func (c *Compiler) consume(k token.Kind, message string) {
	if c.curr.Kind == k {
		c.advance()
		return
	}
	c.errorAtCurrent(message)
}

/* --- emission helpers --- */

func (c *Compiler) emitByte(b byte) { c.chunk.Write(b, c.prev.Line) }
func (c *Compiler) emitOp(op bytecode.OpCode) {
	c.chunk.WriteOp(op, c.prev.Line)
}
func (c *Compiler) emitOps(ops ...bytecode.OpCode) {
	for _, op := range ops {
		c.emitOp(op)
	}
}

func (c *Compiler) makeConstant(v value.Value) int {
	id := c.chunk.AddConstant(v)
	if id >= bytecode.MaxConstants {
		c.errorAt(c.prev, "Too many constants in one chunk.")
		return 0
	}
	return id
}

func (c *Compiler) emitConstant(v value.Value) {
	id := c.makeConstant(v)
	c.chunk.EmitConstantRef(id, c.prev.Line, bytecode.OpConstant, bytecode.OpLongConstant)
}

/* --- declarations and statements --- */

func (c *Compiler) declaration() {
	if c.match(token.Var) {
		c.varDeclaration()
	} else {
		c.statement()
	}
	if c.panicMode {
		c.synchronize()
	}
}

func (c *Compiler) varDeclaration() {
	global := c.parseVariable("Expect variable name.")

	if c.match(token.Equal) {
		c.expression()
	} else {
		c.emitOp(bytecode.OpNil)
	}
	c.consume(token.Semicolon, "Expect ';' after variable declaration.")
	c.defineVariable(global)
}

func (c *Compiler) parseVariable(errMsg string) int {
	c.consume(token.Identifier, errMsg)
	return c.identifierConstant(c.prev)
}

func (c *Compiler) identifierConstant(name token.Token) int {
	return c.makeConstant(value.String(name.Lexeme))
}

func (c *Compiler) defineVariable(global int) {
	c.chunk.EmitConstantRef(global, c.prev.Line, bytecode.OpDefineGlobal, bytecode.OpDefineLongGlobal)
}

func (c *Compiler) statement() {
	if c.match(token.Print) {
		c.printStatement()
	} else {
		c.expressionStatement()
	}
}

func (c *Compiler) printStatement() {
	c.expression()
	c.consume(token.Semicolon, "Expect ';' after value.")
	c.emitOp(bytecode.OpPrint)
}

func (c *Compiler) expressionStatement() {
	c.expression()
	c.consume(token.Semicolon, "Expect ';' after expression.")
	c.emitOp(bytecode.OpPop)
}

/* --- expressions --- */

func (c *Compiler) expression() {
	c.parsePrecedence(PrecAssignment)
}

func (c *Compiler) parsePrecedence(min Precedence) {
	c.advance()
	prefix := ruleFor(c.prev.Kind).prefix
	if prefix == nil {
		c.errorAt(c.prev, "Expect expression.")
		return
	}
	canAssign := min <= PrecAssignment
	prefix(c, canAssign)

	for min <= ruleFor(c.curr.Kind).prec {
		c.advance()
		infix := ruleFor(c.prev.Kind).infix
		infix(c, canAssign)
	}

	if canAssign && c.match(token.Equal) {
		c.errorAt(c.prev, "Invalid assignment target.")
	}
}

func (c *Compiler) number(_ bool) {
	v, err := strconv.ParseFloat(c.prev.Lexeme, 64)
	if err != nil {
		c.errorAt(c.prev, "Invalid number literal.")
		return
	}
	c.emitConstant(value.Number(v))
}

func (c *Compiler) grouping(_ bool) {
	c.expression()
	c.consume(token.RightParen, "Expect ')' after expression.")
}

func (c *Compiler) unary(_ bool) {
	opKind := c.prev.Kind
	c.parsePrecedence(PrecUnary)
	switch opKind {
	case token.Bang:
		c.emitOp(bytecode.OpNot)
	case token.Minus:
		c.emitOp(bytecode.OpNegate)
	}
}

func (c *Compiler) binary(_ bool) {
	opKind := c.prev.Kind
	rule := ruleFor(opKind)
	c.parsePrecedence(rule.prec + 1)

	switch opKind {
	case token.BangEqual:
		c.emitOps(bytecode.OpEqual, bytecode.OpNot)
	case token.EqualEqual:
		c.emitOp(bytecode.OpEqual)
	case token.Greater:
		c.emitOp(bytecode.OpGreater)
	case token.GreaterEqual:
		c.emitOps(bytecode.OpLess, bytecode.OpNot)
	case token.Less:
		c.emitOp(bytecode.OpLess)
	case token.LessEqual:
		c.emitOps(bytecode.OpGreater, bytecode.OpNot)
	case token.Plus:
		c.emitOp(bytecode.OpAdd)
	case token.Minus:
		c.emitOp(bytecode.OpSubtract)
	case token.Star:
		c.emitOp(bytecode.OpMultiply)
	case token.Slash:
		c.emitOp(bytecode.OpDivide)
	case token.Percent:
		c.emitOp(bytecode.OpRemainder)
	}
}

func (c *Compiler) literal(_ bool) {
	switch c.prev.Kind {
	case token.False:
		c.emitOp(bytecode.OpFalse)
	case token.Nil:
		c.emitOp(bytecode.OpNil)
	case token.True:
		c.emitOp(bytecode.OpTrue)
	}
}

func (c *Compiler) string(_ bool) {
	raw := c.prev.Lexeme
	unquoted := raw[1 : len(raw)-1]
	decoded, err := unescape(unquoted)
	if err != nil {
		c.errorAt(c.prev, err.Error())
		return
	}
	c.emitConstant(value.String(decoded))
}

func (c *Compiler) variable(canAssign bool) {
	c.namedVariable(c.prev, canAssign)
}

func (c *Compiler) namedVariable(name token.Token, canAssign bool) {
	id := c.identifierConstant(name)
	if canAssign && c.match(token.Equal) {
		c.expression()
		c.chunk.EmitConstantRef(id, name.Line, bytecode.OpSetGlobal, bytecode.OpSetLongGlobal)
		return
	}
	c.chunk.EmitConstantRef(id, name.Line, bytecode.OpGetGlobal, bytecode.OpGetLongGlobal)
}

/* --- string escapes --- */

func unescape(s string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch != '\\' {
			b.WriteByte(ch)
			continue
		}
		i++
		if i >= len(s) {
			return "", fmt.Errorf("Unterminated escape sequence.")
		}
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '\\':
			b.WriteByte('\\')
		case '0':
			b.WriteByte(0)
		case '\'':
			b.WriteByte('\'')
		case '"':
			b.WriteByte('"')
		case 'x':
			return "", fmt.Errorf("Hex escape sequences are not supported.")
		case 'u':
			return "", fmt.Errorf("Unicode escape sequences are not supported.")
		default:
			return "", fmt.Errorf("Unrecognized escape sequence '\\%c'.", s[i])
		}
	}
	return b.String(), nil
}

/* --- error handling --- */

func (c *Compiler) errorAtCurrent(msg string) { c.errorAt(c.curr, msg) }

func (c *Compiler) errorAt(tok token.Token, msg string) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	c.hadError = true

	var where string
	switch tok.Kind {
	case token.Eof:
		where = "at end"
	case token.UnterminatedString, token.UnexpectedCharacter:
		where = ""
	default:
		where = fmt.Sprintf("at `%s`", tok.Lexeme)
	}

	ce := &glxerrors.CompileError{Line: tok.Line, Where: where, Message: msg}
	fmt.Fprintln(stderrTarget(), ce.Error())
	c.errs = multierror.Append(c.errs, ce)
}

// synchronize implements panic-mode recovery: discard tokens until the next
// token is a statement-starting keyword or Eof.
func (c *Compiler) synchronize() {
	c.panicMode = false
	for c.curr.Kind != token.Eof {
		switch c.curr.Kind {
		case token.Class, token.Fun, token.Var, token.For,
			token.If, token.While, token.Print, token.Return:
			return
		}
		c.advance()
	}
}
