// Package compiler implements Vesper's single-pass compiler: a Pratt
// parser that emits bytecode directly into a chunk.Chunk as it parses,
// without ever building an intermediate parse tree.
package compiler

import (
	"fmt"
	"strconv"

	"github.com/vesper-lang/vesper/lang/chunk"
	"github.com/vesper-lang/vesper/lang/scanner"
	"github.com/vesper-lang/vesper/lang/token"
	"github.com/vesper-lang/vesper/lang/value"
)

// Error is a single diagnostic produced by the compiler, formatted the
// way a parser error is reported to stderr: "[line L] Error <context>: <msg>".
type Error struct {
	Line    int
	Where   string // "" for an ILLEGAL token, " at end", or " at '<lexeme>'"
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("[line %d] Error%s: %s", e.Line, e.Where, e.Message)
}

// precedence is the binding power of an infix operator, strictly
// increasing from loosest to tightest.
type precedence int

const (
	precNone       precedence = iota
	precAssignment            // =
	precOr                    // or
	precAnd                   // and
	precEquality              // == !=
	precComparison            // < > <= >=
	precTerm                  // + -
	precFactor                // * /
	precUnary                 // ! -
	precCall                  // . ()
	precPrimary
)

// parseFn names a parser action. Using a tagged enum dispatched through
// one switch, rather than a table of function values, sidesteps Go's
// awkwardness around mutually recursive top-level functions referencing
// a not-yet-initialized package-level table.
type parseFn int

const (
	fnNone parseFn = iota
	fnGrouping
	fnUnary
	fnBinary
	fnNumber
	fnString
	fnLiteral
)

type rule struct {
	prefix parseFn
	infix  parseFn
	prec   precedence
}

var rules = map[token.Type]rule{
	token.LPAREN:   {fnGrouping, fnNone, precNone},
	token.MINUS:    {fnUnary, fnBinary, precTerm},
	token.PLUS:     {fnNone, fnBinary, precTerm},
	token.SLASH:    {fnNone, fnBinary, precFactor},
	token.STAR:     {fnNone, fnBinary, precFactor},
	token.BANG:     {fnUnary, fnNone, precNone},
	token.BANG_EQ:  {fnNone, fnBinary, precEquality},
	token.EQ_EQ:    {fnNone, fnBinary, precEquality},
	token.GT:       {fnNone, fnBinary, precComparison},
	token.GT_EQ:    {fnNone, fnBinary, precComparison},
	token.LT:       {fnNone, fnBinary, precComparison},
	token.LT_EQ:    {fnNone, fnBinary, precComparison},
	token.NUMBER:   {fnNumber, fnNone, precNone},
	token.STRING:   {fnString, fnNone, precNone},
	token.TRUE:     {fnLiteral, fnNone, precNone},
	token.FALSE:    {fnLiteral, fnNone, precNone},
	token.NIL:      {fnLiteral, fnNone, precNone},
}

func ruleFor(t token.Type) rule {
	return rules[t]
}

// parser holds all per-compilation state: the scanner, the previous and
// current tokens, the chunk being emitted into, and error/panic-mode
// bookkeeping. It is constructed fresh for every call to Compile, never
// shared across compilations.
type parser struct {
	sc       *scanner.Scanner
	src      string
	interner *value.Interner
	chunk    *chunk.Chunk

	current  token.Token
	previous token.Token

	hadError  bool
	panicMode bool
	errs      []*Error
}

// Compile compiles source into ch, interning any string literals through
// interner. It reports whether compilation succeeded; on failure ch holds
// a partially-emitted, still-usable-for-inspection bytecode sequence and
// the returned error (of dynamic type *Errors) lists every diagnostic.
func Compile(source string, ch *chunk.Chunk, interner *value.Interner) (bool, error) {
	p := &parser{
		sc:       scanner.New([]byte(source)),
		src:      source,
		interner: interner,
		chunk:    ch,
	}

	p.advance()
	for !p.match(token.EOF) {
		p.statement()
	}
	p.endCompiler()

	if p.hadError {
		return false, &Errors{Errs: p.errs}
	}
	return true, nil
}

// Errors collects every diagnostic reported during one Compile call.
type Errors struct {
	Errs []*Error
}

func (e *Errors) Error() string {
	if len(e.Errs) == 1 {
		return e.Errs[0].Error()
	}
	s := fmt.Sprintf("%d compile errors:", len(e.Errs))
	for _, d := range e.Errs {
		s += "\n" + d.Error()
	}
	return s
}

func (p *parser) advance() {
	p.previous = p.current
	for {
		p.current = p.sc.Scan()
		if p.current.Type != token.ILLEGAL {
			break
		}
		p.errorAtCurrent(p.current.Message)
	}
}

func (p *parser) check(t token.Type) bool { return p.current.Type == t }

func (p *parser) match(t token.Type) bool {
	if !p.check(t) {
		return false
	}
	p.advance()
	return true
}

func (p *parser) consume(t token.Type, msg string) {
	if p.current.Type == t {
		p.advance()
		return
	}
	p.errorAtCurrent(msg)
}

func (p *parser) statement() {
	switch {
	case p.match(token.PRINT):
		p.printStatement()
	default:
		p.expressionStatement()
	}
	if p.panicMode {
		p.synchronize()
	}
}

func (p *parser) printStatement() {
	p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after value.")
	p.emit(byte(chunk.OpPrint))
}

func (p *parser) expressionStatement() {
	p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after expression.")
	p.emit(byte(chunk.OpPop))
}

func (p *parser) expression() {
	p.parsePrecedence(precAssignment)
}

func (p *parser) parsePrecedence(min precedence) {
	p.advance()
	prefix := ruleFor(p.previous.Type).prefix
	if prefix == fnNone {
		p.errorAtPrevious("Expect expression.")
		return
	}
	p.runAction(prefix)

	for min <= ruleFor(p.current.Type).prec {
		p.advance()
		p.runAction(ruleFor(p.previous.Type).infix)
	}
}

func (p *parser) runAction(fn parseFn) {
	switch fn {
	case fnGrouping:
		p.grouping()
	case fnUnary:
		p.unary()
	case fnBinary:
		p.binary()
	case fnNumber:
		p.number()
	case fnString:
		p.string()
	case fnLiteral:
		p.literal()
	}
}

func (p *parser) grouping() {
	p.expression()
	p.consume(token.RPAREN, "Expect ')' after expression.")
}

func (p *parser) unary() {
	opType := p.previous.Type
	p.parsePrecedence(precUnary)

	switch opType {
	case token.MINUS:
		p.emit(byte(chunk.OpNegate))
	case token.BANG:
		p.emit(byte(chunk.OpNot))
	}
}

func (p *parser) binary() {
	opType := p.previous.Type
	r := ruleFor(opType)
	p.parsePrecedence(r.prec + 1)

	switch opType {
	case token.PLUS:
		p.emit(byte(chunk.OpAdd))
	case token.MINUS:
		p.emit(byte(chunk.OpSubtract))
	case token.STAR:
		p.emit(byte(chunk.OpMultiply))
	case token.SLASH:
		p.emit(byte(chunk.OpDivide))
	case token.EQ_EQ:
		p.emit(byte(chunk.OpEqual))
	case token.BANG_EQ:
		p.emit(byte(chunk.OpEqual), byte(chunk.OpNot))
	case token.GT:
		p.emit(byte(chunk.OpGreater))
	case token.GT_EQ:
		p.emit(byte(chunk.OpLess), byte(chunk.OpNot))
	case token.LT:
		p.emit(byte(chunk.OpLess))
	case token.LT_EQ:
		p.emit(byte(chunk.OpGreater), byte(chunk.OpNot))
	}
}

func (p *parser) number() {
	lex := p.previous.Lexeme(p.src)
	f, err := strconv.ParseFloat(lex, 64)
	if err != nil {
		p.errorAtPrevious("Invalid number literal.")
		return
	}
	p.emitConstant(value.Number(f))
}

func (p *parser) string() {
	lex := p.previous.Lexeme(p.src)
	// Lexeme includes the surrounding double quotes.
	s := p.interner.CopyString(lex[1 : len(lex)-1])
	p.emitConstant(s)
}

func (p *parser) literal() {
	switch p.previous.Type {
	case token.TRUE:
		p.emit(byte(chunk.OpTrue))
	case token.FALSE:
		p.emit(byte(chunk.OpFalse))
	case token.NIL:
		p.emit(byte(chunk.OpNil))
	}
}

func (p *parser) emit(bytes ...byte) {
	for _, b := range bytes {
		p.chunk.Write(b, p.previous.Line)
	}
}

func (p *parser) emitConstant(v value.Value) {
	idx := p.chunk.AddConstant(v)
	if idx > 255 {
		p.errorAtPrevious("Too many constants in one chunk.")
		idx = 0
	}
	p.emit(byte(chunk.OpConstant), byte(idx))
}

func (p *parser) endCompiler() {
	p.emit(byte(chunk.OpReturn))
}

// synchronize skips tokens until it reaches a statement boundary, so that
// one parse error doesn't cascade into a flood of spurious ones. Only a
// preceding ';' and an upcoming 'print' keyword count as boundaries; the
// language has no declarations or control flow to extend this set to.
func (p *parser) synchronize() {
	p.panicMode = false
	for p.current.Type != token.EOF {
		if p.previous.Type == token.SEMICOLON {
			return
		}
		switch p.current.Type {
		case token.PRINT:
			return
		}
		p.advance()
	}
}

func (p *parser) errorAtCurrent(msg string) { p.errorAt(p.current, msg) }
func (p *parser) errorAtPrevious(msg string) { p.errorAt(p.previous, msg) }

func (p *parser) errorAt(t token.Token, msg string) {
	if p.panicMode {
		return
	}
	p.panicMode = true
	p.hadError = true

	where := ""
	switch {
	case t.Type == token.EOF:
		where = " at end"
	case t.Type == token.ILLEGAL:
		where = ""
	default:
		where = fmt.Sprintf(" at '%s'", t.Lexeme(p.src))
	}
	p.errs = append(p.errs, &Error{Line: t.Line, Where: where, Message: msg})
}
