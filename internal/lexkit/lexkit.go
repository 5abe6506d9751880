// Package lexkit is a small regex-rule-table tokenizer. The pie family is
// its one user (piediagram/lexer.go); the flowchart, sequence, class and
// state parsers read source lines directly. The caller supplies an
// ordered rule table; lexkit applies longest-match,
// first-rule-wins-on-tie scanning, drops trivia (comments/whitespace) from
// the emitted stream, and tracks line/column/offset for every token.
//
// Longer arrow/operator lexemes are listed so they win over their own
// prefixes ("-->>" beats "->>" beats "->") purely by match length.
// Keywords are written with a trailing word-boundary assertion so
// "loopStart" lexes as one identifier rather than keyword "loop" plus
// trailing garbage. Free-text bodies (titles, message/label text) are
// never part of the main rule table at all — a rule greedy enough to
// capture a whole label would also out-match every structural token
// before it on the same line, so parsers read those bodies contextually
// via RestOfLine instead.
package lexkit

import (
	"regexp"

	"github.com/probelabs/mermaid-lint/internal/source"
	"github.com/probelabs/mermaid-lint/internal/token"
)

// Invalid is the token kind assigned to a byte no rule matches. It is a
// package-wide sentinel distinct from the EOF kind (the zero value, which
// a rule table reserves for its EOF constant) so All's termination check never
// confuses "ran off the end" with "hit garbage input."
const Invalid token.Kind = -1

// Rule describes one lexical alternative. Pattern is matched anchored at
// the current cursor (lexkit wraps it with "^(?:...)" once at registration
// time). Skip marks trivia that is consumed but never emitted as a token.
type Rule struct {
	Kind    token.Kind
	Pattern string
	Skip    bool

	re *regexp.Regexp
}

// Compile prepares a rule table for use, anchoring every pattern. Panics
// on a malformed pattern since rule tables are static, compile-time data.
func Compile(rules []Rule) []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		r.re = regexp.MustCompile(`\A(?:` + r.Pattern + `)`)
		out[i] = r
	}
	return out
}

// Lexer scans a Text against a compiled rule table.
type Lexer struct {
	text   *source.Text
	rules  []Rule
	offset int
}

// New creates a Lexer over text using rules (already passed through
// Compile). Lexer instances are cheap values: callers create one per call
// and discard it, never reusing state across calls.
func New(text *source.Text, rules []Rule) *Lexer {
	return &Lexer{text: text, rules: rules}
}

// Eof reports whether the cursor has reached the end of input.
func (l *Lexer) Eof() bool { return l.offset >= len(l.text.Raw()) }

// Next scans and returns the next significant token, skipping trivia.
// Once Eof, it keeps yielding a synthetic EOF token forever with Kind 0,
// the value a rule table reserves for its EOF constant.
func (l *Lexer) Next() token.Token {
	for {
		if l.Eof() {
			p := l.text.LineCol(l.offset)
			return token.Token{Kind: 0, Start: p, End: p}
		}
		rest := l.text.Raw()[l.offset:]
		bestLen := -1
		var bestRule *Rule
		for i := range l.rules {
			loc := l.rules[i].re.FindStringIndex(rest)
			if loc == nil || loc[1] == 0 {
				continue
			}
			if loc[1] > bestLen {
				bestLen = loc[1]
				bestRule = &l.rules[i]
			}
		}
		if bestRule == nil {
			// Unrecognized byte: emit it as a single-byte Invalid token so
			// callers can report a lexical error and still make forward
			// progress instead of looping forever.
			startPos := l.text.LineCol(l.offset)
			lexeme := rest[:1]
			l.offset++
			endPos := l.text.LineCol(l.offset)
			return token.Token{Kind: Invalid, Lexeme: lexeme, Start: startPos, End: endPos}
		}
		startOffset := l.offset
		startPos := l.text.LineCol(startOffset)
		lexeme := rest[:bestLen]
		l.offset += bestLen
		endPos := l.text.LineCol(l.offset)
		if bestRule.Skip {
			continue
		}
		return token.Token{Kind: bestRule.Kind, Lexeme: lexeme, Start: startPos, End: endPos}
	}
}

// All scans the entire input into a token slice, always terminated by a
// single EOF-kind (zero value) token.
func (l *Lexer) All(eofKind token.Kind) []token.Token {
	var toks []token.Token
	for {
		t := l.Next()
		toks = append(toks, t)
		if t.Kind == eofKind {
			return toks
		}
	}
}

// RestOfLine consumes raw text from the current cursor to the end of the
// current line (excluding the newline itself), without running it through
// the rule table. Parsers call this for contextual catch-all bodies
// (message/label/title text) instead of letting a generic free-text rule
// compete with structural tokens in the main dispatch table.
func (l *Lexer) RestOfLine() (string, token.Token) {
	raw := l.text.Raw()
	start := l.offset
	end := start
	for end < len(raw) && raw[end] != '\n' {
		end++
	}
	startPos := l.text.LineCol(start)
	l.offset = end
	endPos := l.text.LineCol(end)
	lexeme := raw[start:end]
	for len(lexeme) > 0 && lexeme[len(lexeme)-1] == '\r' {
		lexeme = lexeme[:len(lexeme)-1]
	}
	return lexeme, token.Token{Kind: 0, Lexeme: lexeme, Start: startPos, End: endPos}
}

// Reposition moves the cursor to an absolute byte offset, clearing any
// buffered lookahead state (there is none in this lexer, but callers that
// wrap Lexer with lookahead should reset there too).
func (l *Lexer) Reposition(offset int) { l.offset = offset }

// Offset returns the current byte cursor.
func (l *Lexer) Offset() int { return l.offset }
