package scanner

import (
	"testing"

	"github.com/suryamajhi/rlox/pkg/token"
)

func scanAll(t *testing.T, source string) []token.Token {
	t.Helper()
	tokens, errs := New(source).Scan()
	if len(errs) > 0 {
		t.Fatalf("unexpected scan errors: %v", errs)
	}
	return tokens
}

func TestScanOperatorsAndPunctuation(t *testing.T) {
	tokens := scanAll(t, "(){},.-+;*/ ! != = == > >= < <=")
	want := []token.Type{
		token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
		token.Comma, token.Dot, token.Minus, token.Plus, token.Semicolon,
		token.Star, token.Slash, token.Bang, token.BangEqual, token.Equal,
		token.EqualEqual, token.Greater, token.GreaterEqual, token.Less,
		token.LessEqual, token.EOF,
	}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(tokens), tokens)
	}
	for idx, tokenType := range want {
		if tokens[idx].Type != tokenType {
			t.Fatalf("token %d: expected %s, got %s", idx, tokenType, tokens[idx].Type)
		}
	}
}

func TestScanKeywordsVersusIdentifiers(t *testing.T) {
	tokens := scanAll(t, "class classy var varnish or orchid")
	want := []token.Type{
		token.Class, token.Identifier, token.Var, token.Identifier,
		token.Or, token.Identifier, token.EOF,
	}
	for idx, tokenType := range want {
		if tokens[idx].Type != tokenType {
			t.Fatalf("token %d (%q): expected %s, got %s", idx, tokens[idx].Lexeme, tokenType, tokens[idx].Type)
		}
	}
}

func TestScanNumberLiterals(t *testing.T) {
	tokens := scanAll(t, "123 45.67")
	if tokens[0].Literal != 123.0 {
		t.Fatalf("expected 123, got %v", tokens[0].Literal)
	}
	if tokens[1].Literal != 45.67 {
		t.Fatalf("expected 45.67, got %v", tokens[1].Literal)
	}
}

func TestScanDotIsNotPartOfTrailingNumber(t *testing.T) {
	// "123." scans as NUMBER then DOT; the fraction needs a following digit.
	tokens := scanAll(t, "123.sqrt")
	want := []token.Type{token.Number, token.Dot, token.Identifier, token.EOF}
	for idx, tokenType := range want {
		if tokens[idx].Type != tokenType {
			t.Fatalf("token %d: expected %s, got %s", idx, tokenType, tokens[idx].Type)
		}
	}
}

func TestScanStringLiteral(t *testing.T) {
	tokens := scanAll(t, `"hello world"`)
	if tokens[0].Type != token.String || tokens[0].Literal != "hello world" {
		t.Fatalf("unexpected string token: %v", tokens[0])
	}
}

func TestScanMultilineStringTracksLines(t *testing.T) {
	tokens := scanAll(t, "\"a\nb\"\nx")
	if tokens[0].Type != token.String {
		t.Fatalf("expected string, got %s", tokens[0].Type)
	}
	// x follows the two-line string and one newline.
	if tokens[1].Lexeme != "x" || tokens[1].Line != 3 {
		t.Fatalf("expected identifier x on line 3, got %q on line %d", tokens[1].Lexeme, tokens[1].Line)
	}
}

func TestScanLineComments(t *testing.T) {
	tokens := scanAll(t, "a // the rest is ignored\nb")
	if len(tokens) != 3 {
		t.Fatalf("expected a, b, EOF; got %v", tokens)
	}
	if tokens[1].Lexeme != "b" || tokens[1].Line != 2 {
		t.Fatalf("unexpected second token %v", tokens[1])
	}
}

func TestScanUnterminatedString(t *testing.T) {
	_, errs := New("var s = \"oops;\nprint s;").Scan()
	if len(errs) != 1 {
		t.Fatalf("expected one lexical error, got %v", errs)
	}
	if errs[0].Message != "Unterminated string." {
		t.Fatalf("unexpected message %q", errs[0].Message)
	}
	if errs[0].Line() != 1 {
		t.Fatalf("error should carry the opening quote line, got %d", errs[0].Line())
	}
}

func TestScanUnexpectedCharacterDoesNotAbort(t *testing.T) {
	tokens, errs := New("var a = 1; @ var b = 2;").Scan()
	if len(errs) != 1 {
		t.Fatalf("expected one lexical error, got %v", errs)
	}
	// The scan keeps going past the bad character.
	last := tokens[len(tokens)-2]
	if last.Type != token.Semicolon {
		t.Fatalf("expected scan to continue to the final semicolon, got %v", last)
	}
}

func TestEOFCarriesLastLine(t *testing.T) {
	tokens := scanAll(t, "a;\nb;\n")
	eof := tokens[len(tokens)-1]
	if eof.Type != token.EOF || eof.Line != 3 {
		t.Fatalf("unexpected EOF token %v", eof)
	}
}
