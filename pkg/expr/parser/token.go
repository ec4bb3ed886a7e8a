package parser

import "fmt"

// TokenType identifies the lexical class of a token.
type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF

	// Literals
	WORD   // bare run of [A-Za-z0-9._*+-]: names, numbers, durations
	STRING // quoted with ' or ", quotes stripped

	// Delimiters
	LPAREN // (
	RPAREN // )
	COMMA  // ,
	COLON  // :
	SLASH  // /
)

var tokenNames = map[TokenType]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",
	WORD:    "WORD",
	STRING:  "STRING",
	LPAREN:  "(",
	RPAREN:  ")",
	COMMA:   ",",
	COLON:   ":",
	SLASH:   "/",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is a lexical token with its source position.
type Token struct {
	Type    TokenType
	Literal string
	Offset  int // byte offset of the first character
	Line    int
	Column  int
}

// Describe returns the token as it should appear in a syntax error message.
func (t Token) Describe() string {
	switch t.Type {
	case EOF:
		return "end of input"
	case WORD:
		return fmt.Sprintf("%q", t.Literal)
	case STRING:
		return fmt.Sprintf("quoted string %q", t.Literal)
	case ILLEGAL:
		return t.Literal
	default:
		return fmt.Sprintf("'%s'", t.Type)
	}
}
