// Package diagnostics renders the core's structured errors as source
// snippets. Every phase error (lexical, syntax, static, runtime) carries a
// 1-based line; the renderer shows that line with one line of context either
// side and a marker on the offending line. Output is plain text so the CLI
// can layer color on top.
package diagnostics

import (
	"fmt"
	"strings"
)

// SourceError is an error anchored to a source line.
type SourceError interface {
	error
	Line() int
}

// Severity labels the error taxonomy for report headers.
type Severity string

const (
	SeverityLexical Severity = "lexical error"
	SeveritySyntax  Severity = "syntax error"
	SeverityStatic  Severity = "static error"
	SeverityRuntime Severity = "runtime error"
)

// Render formats one error against its source. When the line is out of range
// (empty source, synthetic tokens) only the header is returned.
func Render(severity Severity, err SourceError, source string) string {
	header := fmt.Sprintf("%s: %s", severity, err.Error())

	lines := strings.Split(source, "\n")
	line := err.Line()
	if line < 1 || line > len(lines) {
		return header
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteByte('\n')

	width := len(fmt.Sprintf("%d", min(line+1, len(lines))))
	for n := line - 1; n <= line+1; n++ {
		if n < 1 || n > len(lines) {
			continue
		}
		marker := "  "
		if n == line {
			marker = "> "
		}
		fmt.Fprintf(&b, "%s%*d | %s\n", marker, width, n, lines[n-1])
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderAll formats a batch of same-severity errors, one snippet per error,
// in input order. The parser and resolver report in batch; this keeps their
// output shape uniform with single runtime errors.
func RenderAll[E SourceError](severity Severity, errs []E, source string) string {
	parts := make([]string, 0, len(errs))
	for _, err := range errs {
		parts = append(parts, Render(severity, err, source))
	}
	return strings.Join(parts, "\n")
}
