package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLexer_NextToken(t *testing.T) {
	input := `host ( 'a', "b c" )`

	want := []Token{
		{Type: WORD, Literal: "host", Offset: 0, Line: 1, Column: 1},
		{Type: LPAREN, Literal: "(", Offset: 5, Line: 1, Column: 6},
		{Type: STRING, Literal: "a", Offset: 7, Line: 1, Column: 8},
		{Type: COMMA, Literal: ",", Offset: 10, Line: 1, Column: 11},
		{Type: STRING, Literal: "b c", Offset: 12, Line: 1, Column: 13},
		{Type: RPAREN, Literal: ")", Offset: 18, Line: 1, Column: 19},
		{Type: EOF, Literal: "", Offset: 19, Line: 1, Column: 20},
	}

	got := Tokenize(input)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Tokenize() mismatch (-want +got):\n%s", diff)
	}
}

func TestLexer_Multiline(t *testing.T) {
	input := "avg(\n  host(a, b)\n)"

	tokens := Tokenize(input)
	if len(tokens) < 3 {
		t.Fatalf("len(tokens) = %d, want at least 3", len(tokens))
	}

	host := tokens[2]
	if host.Literal != "host" {
		t.Fatalf("tokens[2].Literal = %q, want %q", host.Literal, "host")
	}
	if host.Line != 2 || host.Column != 3 {
		t.Errorf("host at %d:%d, want 2:3", host.Line, host.Column)
	}

	last := tokens[len(tokens)-2]
	if last.Type != RPAREN || last.Line != 3 || last.Column != 1 {
		t.Errorf("closing paren = %+v, want RPAREN at 3:1", last)
	}
}

func TestLexer_Words(t *testing.T) {
	tests := []struct {
		input string
		want  []TokenType
	}{
		{"memory.*", []TokenType{WORD, EOF}},
		{"custom.foo-bar_baz.*", []TokenType{WORD, EOF}},
		{"-31.4/6.25", []TokenType{WORD, SLASH, WORD, EOF}},
		{"1e+10", []TokenType{WORD, EOF}},
		{"Blog:db", []TokenType{WORD, COLON, WORD, EOF}},
		{"3mo", []TokenType{WORD, EOF}},
		{"  \t\r\n ", []TokenType{EOF}},
		{"", []TokenType{EOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var got []TokenType
			for _, tok := range Tokenize(tt.input) {
				got = append(got, tok.Type)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("token types mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLexer_QuotedContentIsLiteral(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`'Blog:  db'`, "Blog:  db"},
		{`"it's"`, "it's"},
		{`'say "hi"'`, `say "hi"`},
		{`'a\b'`, `a\b`},
		{`'(,)'`, "(,)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := NewLexer(tt.input).NextToken()
			if tok.Type != STRING {
				t.Fatalf("Type = %s, want STRING", tok.Type)
			}
			if tok.Literal != tt.want {
				t.Errorf("Literal = %q, want %q", tok.Literal, tt.want)
			}
		})
	}
}

func TestLexer_Illegal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"unterminated single", "'abc", "unterminated string starting with '"},
		{"unterminated double", `"abc`, `unterminated string starting with "`},
		{"unexpected character", "host(a; b)", "unexpected character ';'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Tokenize(tt.input)
			last := tokens[len(tokens)-1]
			if last.Type != ILLEGAL {
				t.Fatalf("last token = %s, want ILLEGAL", last.Type)
			}
			if last.Literal != tt.want {
				t.Errorf("Literal = %q, want %q", last.Literal, tt.want)
			}
		})
	}
}

func TestLexer_EOFRepeats(t *testing.T) {
	l := NewLexer("a")
	l.NextToken()
	for i := 0; i < 3; i++ {
		if tok := l.NextToken(); tok.Type != EOF {
			t.Fatalf("NextToken() #%d = %s, want EOF", i, tok.Type)
		}
	}
}

func TestToken_Describe(t *testing.T) {
	tests := []struct {
		tok  Token
		want string
	}{
		{Token{Type: EOF}, "end of input"},
		{Token{Type: WORD, Literal: "abc"}, `"abc"`},
		{Token{Type: STRING, Literal: "a b"}, `quoted string "a b"`},
		{Token{Type: RPAREN, Literal: ")"}, "')'"},
		{Token{Type: ILLEGAL, Literal: "unexpected character ';'"}, "unexpected character ';'"},
	}

	for _, tt := range tests {
		if got := tt.tok.Describe(); got != tt.want {
			t.Errorf("Describe(%+v) = %q, want %q", tt.tok, got, tt.want)
		}
	}
}
