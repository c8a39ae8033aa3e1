// Package scanner tokenizes Vesper source text for the compiler's Pratt
// parser. It is a standalone lexer: it holds no knowledge of the grammar and
// never reports a syntax error beyond the lexical level (unterminated
// strings, unrecognized characters) — those are
// surfaced to the caller as token.ILLEGAL tokens whose lexeme is the error
// message, exactly as Scan's caller expects.
package scanner

import (
	"unicode/utf8"

	"github.com/vesper-lang/vesper/lang/token"
)

// A Scanner tokenizes a single source buffer. The zero value is not usable;
// construct one with New.
type Scanner struct {
	src []byte

	start int // start offset of the token being scanned
	cur   int // offset of the next unread byte
	line  int
}

// New returns a Scanner ready to tokenize src.
func New(src []byte) *Scanner {
	return &Scanner{src: src, line: 1}
}

// Scan returns the next token in the source. Once the end of the source is
// reached, Scan returns token.EOF on every subsequent call.
func (s *Scanner) Scan() token.Token {
	s.skipIgnored()
	s.start = s.cur

	if s.atEnd() {
		return s.make(token.EOF)
	}

	c := s.advance()
	switch {
	case isAlpha(c):
		return s.identifier()
	case isDigit(c):
		return s.number()
	}

	switch c {
	case '(':
		return s.make(token.LPAREN)
	case ')':
		return s.make(token.RPAREN)
	case '{':
		return s.make(token.LBRACE)
	case '}':
		return s.make(token.RBRACE)
	case ',':
		return s.make(token.COMMA)
	case '.':
		return s.make(token.DOT)
	case '-':
		return s.make(token.MINUS)
	case '+':
		return s.make(token.PLUS)
	case ';':
		return s.make(token.SEMICOLON)
	case '*':
		return s.make(token.STAR)
	case '/':
		return s.make(token.SLASH)
	case '!':
		return s.makeIf('=', token.BANG_EQ, token.BANG)
	case '=':
		return s.makeIf('=', token.EQ_EQ, token.EQ)
	case '<':
		return s.makeIf('=', token.LT_EQ, token.LT)
	case '>':
		return s.makeIf('=', token.GT_EQ, token.GT)
	case '"':
		return s.string()
	}

	return s.errorf("Unexpected character.")
}

func (s *Scanner) atEnd() bool { return s.cur >= len(s.src) }

func (s *Scanner) advance() byte {
	c := s.src[s.cur]
	s.cur++
	return c
}

func (s *Scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.src[s.cur]
}

func (s *Scanner) peekNext() byte {
	if s.cur+1 >= len(s.src) {
		return 0
	}
	return s.src[s.cur+1]
}

// match consumes the current byte only if it equals want, and reports
// whether it did.
func (s *Scanner) match(want byte) bool {
	if s.atEnd() || s.src[s.cur] != want {
		return false
	}
	s.cur++
	return true
}

func (s *Scanner) makeIf(want byte, ifMatch, otherwise token.Type) token.Token {
	if s.match(want) {
		return s.make(ifMatch)
	}
	return s.make(otherwise)
}

func (s *Scanner) skipIgnored() {
	for {
		switch s.peek() {
		case ' ', '\r', '\t':
			s.cur++
		case '\n':
			s.line++
			s.cur++
		case '/':
			if s.peekNext() != '/' {
				return
			}
			for s.peek() != '\n' && !s.atEnd() {
				s.cur++
			}
		default:
			return
		}
	}
}

func (s *Scanner) string() token.Token {
	for s.peek() != '"' && !s.atEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		s.cur++
	}
	if s.atEnd() {
		return s.errorf("Unterminated string.")
	}
	s.cur++ // closing quote
	return s.make(token.STRING)
}

func (s *Scanner) number() token.Token {
	for isDigit(s.peek()) {
		s.cur++
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.cur++ // consume the '.'
		for isDigit(s.peek()) {
			s.cur++
		}
	}
	return s.make(token.NUMBER)
}

func (s *Scanner) identifier() token.Token {
	for isAlpha(s.peek()) || isDigit(s.peek()) {
		s.cur++
	}
	return s.make(token.Lookup(string(s.src[s.start:s.cur])))
}

func (s *Scanner) make(typ token.Type) token.Token {
	return token.Token{
		Type:   typ,
		Start:  s.start,
		Length: s.cur - s.start,
		Line:   s.line,
	}
}

// errorf returns a token.ILLEGAL token whose lexeme is the diagnostic
// message, so the compiler can surface it the same way it surfaces any
// other token's lexeme.
func (s *Scanner) errorf(msg string) token.Token {
	return token.Token{
		Type:    token.ILLEGAL,
		Line:    s.line,
		Message: msg,
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		c >= utf8.RuneSelf
}
