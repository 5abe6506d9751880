package piediagram

import (
	"github.com/probelabs/mermaid-lint/internal/lexkit"
	"github.com/probelabs/mermaid-lint/internal/source"
	"github.com/probelabs/mermaid-lint/internal/token"
)

// Token kinds for the pie family. Kind 0 is reserved for EOF, the kind
// lexkit's Next yields at end of input. Pie's grammar has no nested
// structure, so the rule table only needs to find statement boundaries
// (keywords and newlines); slice/title bodies are read as raw line text
// via lexkit.Lexer.RestOfLine, lexkit's contextual catch-all for free
// text.
const (
	KEOF token.Kind = iota
	KNewline
	KPie
	KShowData
	KTitle
)

var rules = lexkit.Compile([]lexkit.Rule{
	{Kind: 0, Pattern: `%%[^\n]*`, Skip: true},
	{Kind: 0, Pattern: `[ \t\r]+`, Skip: true},
	{Kind: KNewline, Pattern: `\n`},
	{Kind: KPie, Pattern: `pie\b`},
	{Kind: KShowData, Pattern: `(?i:showData)\b`},
	{Kind: KTitle, Pattern: `(?i:title)\b`},
})

// newLexer builds the pie tokenizer over text. One lexer per Parse call,
// never reused across calls.
func newLexer(text *source.Text) *lexkit.Lexer {
	return lexkit.New(text, rules)
}
