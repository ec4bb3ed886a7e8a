package parser

import "fmt"

// Lexer splits expression source into tokens. Whitespace between tokens is
// insignificant. Positions are byte based.
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int
	column       int
}

// NewLexer creates a lexer over input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input:  input,
		line:   1,
		column: 0,
	}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

func (l *Lexer) atEOF() bool {
	return l.position >= len(l.input)
}

// NextToken returns the next token. After the end of input it keeps
// returning EOF.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	tok := Token{
		Offset: l.position,
		Line:   l.line,
		Column: l.column,
	}

	if l.atEOF() {
		tok.Type = EOF
		return tok
	}

	switch l.ch {
	case '(':
		tok.Type, tok.Literal = LPAREN, "("
	case ')':
		tok.Type, tok.Literal = RPAREN, ")"
	case ',':
		tok.Type, tok.Literal = COMMA, ","
	case ':':
		tok.Type, tok.Literal = COLON, ":"
	case '/':
		tok.Type, tok.Literal = SLASH, "/"
	case '\'', '"':
		content, ok := l.readString()
		if !ok {
			tok.Type = ILLEGAL
			tok.Literal = fmt.Sprintf("unterminated string starting with %c", l.input[tok.Offset])
			return tok
		}
		tok.Type, tok.Literal = STRING, content
	default:
		if isWordChar(l.ch) {
			tok.Type = WORD
			tok.Literal = l.readWord()
			return tok
		}
		tok.Type = ILLEGAL
		tok.Literal = fmt.Sprintf("unexpected character %q", l.ch)
	}

	l.readChar()
	return tok
}

// Tokenize returns every token of input up to and including EOF or the
// first ILLEGAL token.
func Tokenize(input string) []Token {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == EOF || tok.Type == ILLEGAL {
			return tokens
		}
	}
}

func (l *Lexer) skipWhitespace() {
	for !l.atEOF() && (l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r') {
		l.readChar()
	}
}

// readWord consumes a maximal run of word characters and leaves the lexer on
// the first character after it.
func (l *Lexer) readWord() string {
	start := l.position
	for !l.atEOF() && isWordChar(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readString consumes a quoted string and leaves the lexer on the closing
// quote. Everything up to the matching quote is content; there are no escapes.
func (l *Lexer) readString() (string, bool) {
	quote := l.ch
	start := l.position + 1
	for {
		l.readChar()
		if l.atEOF() {
			return "", false
		}
		if l.ch == quote {
			return l.input[start:l.position], true
		}
	}
}

// IsBareIdentifier reports whether s can be written as a bare identifier,
// which is how the printer writes every identifier.
func IsBareIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isIdentChar(s[i]) {
			return false
		}
	}
	return true
}

// isIdentChar reports whether c may appear in a bare identifier.
func isIdentChar(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' ||
		c == '.' || c == '_' || c == '-' || c == '*'
}

// isWordChar also admits '+', which only numeric literals use.
func isWordChar(c byte) bool {
	return isIdentChar(c) || c == '+'
}
