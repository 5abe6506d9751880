// Package token defines the token representation produced by the lexkit
// rule-table lexer. The pie family is the one family that lexes into
// tokens and owns a Kind constant space (see piediagram/lexer.go); the
// flowchart, sequence, class and state parsers read source lines directly.
// Kind here is an opaque small integer so the Token struct carries no
// family-specific knowledge.
package token

import "github.com/probelabs/mermaid-lint/internal/source"

// Kind identifies a token's grammatical category within whichever family
// lexer produced it.
type Kind int

// Token is a single lexeme with enough position information to
// reconstruct diagnostics and to drive the parser's recovery logic.
type Token struct {
	Kind   Kind
	Lexeme string
	Start  source.Position
	End    source.Position
}

// Span returns the token's half-open source.Span.
func (t Token) Span() source.Span {
	return source.Span{Start: t.Start, End: t.End}
}

// Is reports whether the token has the given kind.
func (t Token) Is(k Kind) bool { return t.Kind == k }
