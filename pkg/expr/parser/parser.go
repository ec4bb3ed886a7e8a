package parser

import (
	"strings"

	"mackerel-hq/mmpp/pkg/expr/ast"
	exprErrors "mackerel-hq/mmpp/pkg/expr/errors"
)

const (
	// DefaultMaxDepth is the default maximum nesting depth of function forms.
	DefaultMaxDepth = 128

	// DefaultMaxInputBytes is the default maximum size of an expression.
	DefaultMaxInputBytes = 1024 * 1024
)

// Parser parses metric expressions into parse trees and ASTs.
// A Parser holds only configuration, so one instance can be shared by
// concurrent callers.
type Parser struct {
	maxDepth      int    // Maximum nesting depth of function forms
	maxInputBytes int    // Maximum input size in bytes
	sourceName    string // Name used in error locations
}

// NewParser creates a new parser with default configuration.
func NewParser() *Parser {
	return &Parser{
		maxDepth:      DefaultMaxDepth,
		maxInputBytes: DefaultMaxInputBytes,
		sourceName:    "<input>",
	}
}

// WithMaxDepth sets the maximum nesting depth.
func (p *Parser) WithMaxDepth(depth int) *Parser {
	p.maxDepth = depth
	return p
}

// WithMaxInputBytes sets the maximum input size.
func (p *Parser) WithMaxInputBytes(size int) *Parser {
	p.maxInputBytes = size
	return p
}

// WithSourceName sets the source name reported in error locations.
func (p *Parser) WithSourceName(name string) *Parser {
	p.sourceName = name
	return p
}

// Parse parses src into a metric AST. It returns a syntax error if src does
// not match the grammar and a shape error if a literal argument is malformed.
func (p *Parser) Parse(src string) (ast.Metric, error) {
	tree, err := p.ParseTree(src)
	if err != nil {
		return nil, err
	}

	b := newBuilder()
	metric, err := b.build(tree)
	if err != nil {
		if e, ok := err.(*exprErrors.Error); ok {
			return nil, exprErrors.AddContextToError(e, src)
		}
		return nil, err
	}
	return metric, nil
}

// ParseTree parses src into a parse tree without building the AST.
// The whole input must be exactly one expression.
func (p *Parser) ParseTree(src string) (*Node, error) {
	if p.maxInputBytes > 0 && len(src) > p.maxInputBytes {
		return nil, exprErrors.New(exprErrors.ErrorTypeLimit, ast.Location{Source: p.sourceName},
			"input size %d exceeds maximum %d bytes", len(src), p.maxInputBytes)
	}

	s := &state{
		lexer:      NewLexer(src),
		maxDepth:   p.maxDepth,
		sourceName: p.sourceName,
	}
	s.next()

	tree, err := s.parseMetric(1)
	if err == nil {
		err = s.expectEOF()
	}
	if err != nil {
		if e, ok := err.(*exprErrors.Error); ok {
			return nil, exprErrors.AddContextToError(e, src)
		}
		return nil, err
	}
	return tree, nil
}

// state is the cursor of a single parse.
type state struct {
	lexer      *Lexer
	cur        Token
	maxDepth   int
	sourceName string
}

func (s *state) next() {
	s.cur = s.lexer.NextToken()
}

func (s *state) location(tok Token) ast.Location {
	return ast.Location{
		Source: s.sourceName,
		Offset: tok.Offset,
		Line:   tok.Line,
		Column: tok.Column,
	}
}

func (s *state) syntaxError(tok Token, format string, args ...any) *exprErrors.Error {
	return exprErrors.New(exprErrors.ErrorTypeSyntax, s.location(tok), format, args...)
}

// unexpected reports that want was expected at the current token.
func (s *state) unexpected(want string) *exprErrors.Error {
	if s.cur.Type == ILLEGAL {
		return s.syntaxError(s.cur, "expected %s, found %s", want, s.cur.Literal)
	}
	return s.syntaxError(s.cur, "expected %s, found %s", want, s.cur.Describe())
}

func (s *state) expect(t TokenType, want string) (Token, error) {
	if s.cur.Type != t {
		return Token{}, s.unexpected(want)
	}
	tok := s.cur
	s.next()
	return tok, nil
}

func (s *state) expectEOF() error {
	if s.cur.Type != EOF {
		return s.unexpected("end of input")
	}
	return nil
}

// parseMetric parses one function form at the given nesting depth.
func (s *state) parseMetric(depth int) (*Node, error) {
	if s.maxDepth > 0 && depth > s.maxDepth {
		return nil, exprErrors.New(exprErrors.ErrorTypeLimit, s.location(s.cur),
			"expression nesting exceeds maximum depth %d", s.maxDepth)
	}

	if s.cur.Type != WORD {
		return nil, s.unexpected("metric expression")
	}
	nameTok := s.cur
	sig, ok := Lookup(nameTok.Literal)
	if !ok {
		return nil, s.syntaxError(nameTok, "unknown function %q", nameTok.Literal).
			WithSuggestion(exprErrors.SuggestFunction(nameTok.Literal, Functions()))
	}
	s.next()

	if _, err := s.expect(LPAREN, "'(' after "+nameTok.Literal); err != nil {
		return nil, err
	}

	node := &Node{
		Rule:     sig.Rule,
		Text:     nameTok.Literal,
		Location: s.location(nameTok),
	}

	for i, kind := range sig.Args {
		if i > 0 {
			if s.cur.Type != COMMA {
				return nil, s.arityError(sig, i)
			}
			s.next()
		}
		arg, err := s.parseArg(kind, depth)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, arg)
	}

	if sig.Variadic {
		last := sig.Args[len(sig.Args)-1]
		for s.cur.Type == COMMA {
			s.next()
			arg, err := s.parseArg(last, depth)
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, arg)
		}
	}

	if s.cur.Type == COMMA {
		return nil, s.syntaxError(s.cur, "too many arguments to %s", sig.Func).
			WithSuggestion(exprErrors.SuggestArity(string(sig.Func), sig.ArgNames()))
	}
	if _, err := s.expect(RPAREN, "')' closing "+string(sig.Func)); err != nil {
		return nil, err
	}

	return node, nil
}

// arityError reports a missing argument at position i of sig.
func (s *state) arityError(sig Signature, i int) *exprErrors.Error {
	var err *exprErrors.Error
	if s.cur.Type == RPAREN {
		err = s.syntaxError(s.cur, "%s takes %d arguments, found %d", sig.Func, len(sig.Args), i)
	} else {
		err = s.unexpected("','")
	}
	return err.WithSuggestion(exprErrors.SuggestArity(string(sig.Func), sig.ArgNames()))
}

func (s *state) parseArg(kind ArgKind, depth int) (*Node, error) {
	switch kind {
	case ArgIdent:
		return s.parseIdentifier()
	case ArgRoleIdent:
		return s.parseRoleIdentifier()
	case ArgMetric:
		return s.parseMetric(depth + 1)
	case ArgFactor:
		return s.parseFactor()
	case ArgDouble, ArgDuration:
		return s.parseLiteral(kind)
	}
	return nil, exprErrors.New(exprErrors.ErrorTypeInternal, s.location(s.cur), "unknown argument kind %d", kind)
}

func (s *state) parseIdentifier() (*Node, error) {
	tok := s.cur
	switch tok.Type {
	case WORD:
		if strings.Contains(tok.Literal, "+") {
			return nil, s.syntaxError(tok, "invalid character '+' in identifier %q", tok.Literal)
		}
	case STRING:
		if tok.Literal == "" {
			return nil, s.syntaxError(tok, "empty identifier")
		}
	default:
		return nil, s.unexpected("identifier")
	}
	s.next()
	return &Node{Rule: RuleIdentifier, Text: tok.Literal, Location: s.location(tok)}, nil
}

// parseRoleIdentifier parses service:role, either bare or as one quoted
// string. Both parts are trimmed and must not be empty.
func (s *state) parseRoleIdentifier() (*Node, error) {
	tok := s.cur
	var service, role string

	switch tok.Type {
	case STRING:
		if strings.Count(tok.Literal, ":") != 1 {
			return nil, s.syntaxError(tok, "expected role identifier (service:role), found %s", tok.Describe())
		}
		service, role, _ = strings.Cut(tok.Literal, ":")
		s.next()
	case WORD:
		serviceNode, err := s.parseIdentifier()
		if err != nil {
			return nil, err
		}
		if s.cur.Type != COLON {
			return nil, s.syntaxError(tok, "expected role identifier (service:role), found %s", tok.Describe())
		}
		// A bare role identifier is one word: no blanks around the colon
		colon := s.cur
		if colon.Offset != tok.Offset+len(tok.Literal) {
			return nil, s.syntaxError(colon, "unexpected whitespace before ':' in role identifier")
		}
		s.next()
		if s.cur.Offset != colon.Offset+1 {
			return nil, s.syntaxError(s.cur, "unexpected whitespace after ':' in role identifier")
		}
		roleNode, err := s.parseIdentifier()
		if err != nil {
			return nil, err
		}
		service, role = serviceNode.Text, roleNode.Text
	default:
		return nil, s.unexpected("role identifier (service:role)")
	}

	service = strings.TrimSpace(service)
	role = strings.TrimSpace(role)
	if service == "" || role == "" {
		return nil, s.syntaxError(tok, "role identifier %q needs both a service and a role name", service+":"+role)
	}

	loc := s.location(tok)
	return &Node{
		Rule:     RuleRoleIdentifier,
		Text:     service + ":" + role,
		Location: loc,
		Children: []*Node{
			{Rule: RuleIdentifier, Text: service, Location: loc},
			{Rule: RuleIdentifier, Text: role, Location: loc},
		},
	}, nil
}

// parseLiteral accepts any bare word; its shape is checked by the builder.
func (s *state) parseLiteral(kind ArgKind) (*Node, error) {
	tok := s.cur
	if tok.Type != WORD {
		return nil, s.unexpected(kind.String())
	}
	s.next()
	return &Node{Rule: RuleLiteral, Text: tok.Literal, Location: s.location(tok)}, nil
}

func (s *state) parseFactor() (*Node, error) {
	num, err := s.parseLiteral(ArgFactor)
	if err != nil {
		return nil, err
	}
	if s.cur.Type != SLASH {
		return num, nil
	}
	s.next()

	den, err := s.parseLiteral(ArgFactor)
	if err != nil {
		return nil, err
	}
	return &Node{
		Rule:     RuleFraction,
		Text:     num.Text + "/" + den.Text,
		Children: []*Node{num, den},
		Location: num.Location,
	}, nil
}
