// Package parser turns a token stream into the rlox AST by recursive
// descent. A syntax error discards tokens up to the next statement boundary
// and parsing continues, so one pass over a file reports every error in it.
package parser

import (
	"fmt"

	"github.com/suryamajhi/rlox/pkg/ast"
	"github.com/suryamajhi/rlox/pkg/token"
)

// MaxArguments caps call argument and function parameter lists.
const MaxArguments = 255

// SyntaxError reports an unexpected token and the construct expected instead.
type SyntaxError struct {
	Token   token.Token
	Message string
}

func (e *SyntaxError) Error() string {
	if e.Token.Type == token.EOF {
		return fmt.Sprintf("[line %d] Error at end: %s", e.Token.Line, e.Message)
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s", e.Token.Line, e.Token.Lexeme, e.Message)
}

// Line implements the diagnostics source-location contract.
func (e *SyntaxError) Line() int { return e.Token.Line }

// Parser consumes a scanned token stream, which must end with an EOF token.
type Parser struct {
	tokens  []token.Token
	current int
	errors  []*SyntaxError
}

func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse recognizes a whole program. The returned statements omit any
// declaration that failed to parse; callers must treat a non-empty error
// slice as fatal and never execute the partial program.
func (p *Parser) Parse() ([]ast.Stmt, []*SyntaxError) {
	var statements []ast.Stmt
	for !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			p.record(err)
			p.synchronize()
			continue
		}
		statements = append(statements, stmt)
	}
	return statements, p.errors
}

func (p *Parser) record(err error) {
	if se, ok := err.(*SyntaxError); ok {
		p.errors = append(p.errors, se)
		return
	}
	p.errors = append(p.errors, &SyntaxError{Token: p.peek(), Message: err.Error()})
}

// synchronize skips tokens until a likely statement boundary: just past a
// semicolon, or just before a statement-starting keyword.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Type == token.Semicolon {
			return
		}
		switch p.peek().Type {
		case token.Class, token.Fun, token.Var, token.For,
			token.If, token.While, token.Print, token.Return:
			return
		}
		p.advance()
	}
}

//-----------------------------------------------------------------------------
// Token stream helpers
//-----------------------------------------------------------------------------

func (p *Parser) match(types ...token.Type) bool {
	for _, tokenType := range types {
		if p.check(tokenType) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(tokenType token.Type, message string) (token.Token, error) {
	if p.check(tokenType) {
		return p.advance(), nil
	}
	return token.Token{}, p.errorAt(p.peek(), message)
}

func (p *Parser) check(tokenType token.Type) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == tokenType
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == token.EOF
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) errorAt(tok token.Token, message string) *SyntaxError {
	return &SyntaxError{Token: tok, Message: message}
}
