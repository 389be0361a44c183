// Package lexer turns a free-form arithmetic statement into tokens.
//
// Runs of word characters (letters, digits, underscore, and a decimal point
// inside or leading a number) coalesce into one operand token. Operator and
// parenthesis characters are always single-character tokens. Every other
// character is dropped and ends any open operand run. Lexing never fails.
package lexer

import (
	"errors"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/leapstack-labs/mathdaddy/pkg/token"
)

// eof marks the end of input.
const eof rune = -1

// Lexer tokenizes a statement.
type Lexer struct {
	input   string
	pos     int  // byte offset of ch
	readPos int  // byte offset after ch
	ch      rune // current rune under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based, runes)
}

// New creates a new Lexer for the given input.
func New(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
	}
	l.readChar()
	return l
}

// Tokenize returns every token in statement. The empty statement yields an
// empty sequence.
func Tokenize(statement string) token.Sequence {
	l := New(statement)
	var seq token.Sequence
	for {
		tok, ok := l.NextToken()
		if !ok {
			return seq
		}
		seq = append(seq, tok)
	}
}

// IsOperatorRune reports whether r is in the closed set of operator
// characters the lexer recognizes.
func IsOperatorRune(r rune) bool {
	switch r {
	case '+', '-', '*', '/', '^', '√':
		return true
	}
	return false
}

// readChar advances to the next rune.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}
	l.pos = l.readPos
	if l.readPos >= len(l.input) {
		l.ch = eof
		l.col++
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.readPos:])
	l.ch = r
	l.readPos += w
	l.col++
}

// peekChar returns the next rune without advancing.
func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

// currentPos returns the current position.
func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

// NextToken returns the next token, or false once the input is exhausted.
func (l *Lexer) NextToken() (token.Token, bool) {
	l.skipIgnored()

	if l.ch == eof {
		return token.Token{}, false
	}

	pos := l.currentPos()

	switch {
	case l.ch == '(':
		l.readChar()
		return token.Token{Type: token.LPAREN, Literal: "(", Pos: pos}, true
	case l.ch == ')':
		l.readChar()
		return token.Token{Type: token.RPAREN, Literal: ")", Pos: pos}, true
	case IsOperatorRune(l.ch):
		lit := string(l.ch)
		l.readChar()
		return token.Token{Type: token.OPERATOR, Literal: lit, Pos: pos}, true
	default:
		lit := l.readWord()
		return token.Token{Type: Classify(lit), Literal: lit, Pos: pos}, true
	}
}

// skipIgnored drops every rune that cannot start a token.
func (l *Lexer) skipIgnored() {
	for l.ch != eof && !l.startsToken() {
		l.readChar()
	}
}

func (l *Lexer) startsToken() bool {
	if l.ch == '(' || l.ch == ')' || IsOperatorRune(l.ch) || isWordChar(l.ch) {
		return true
	}
	// A leading decimal point opens a number run: .5
	return l.ch == '.' && isDigit(l.peekChar())
}

// readWord reads a run of word characters.
func (l *Lexer) readWord() string {
	start := l.pos
	for isWordChar(l.ch) || l.ch == '.' {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// Classify returns NUMBER when lit parses as a 64-bit float and SYMBOL
// otherwise. Literals that overflow to ±Inf still count as numbers.
func Classify(lit string) token.TokenType {
	if _, err := strconv.ParseFloat(lit, 64); err == nil || errors.Is(err, strconv.ErrRange) {
		return token.NUMBER
	}
	return token.SYMBOL
}

func isWordChar(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
