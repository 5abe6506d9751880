package classdiagram

import (
	"regexp"
	"strings"

	"github.com/probelabs/mermaid-lint/internal/blockfix"
	"github.com/probelabs/mermaid-lint/internal/diag"
	"github.com/probelabs/mermaid-lint/internal/source"
)

var (
	directionRe  = regexp.MustCompile(`(?i)^direction\s+(\S+)\s*$`)
	classDeclRe  = regexp.MustCompile(`^class\s+([A-Za-z_][\w]*)\s*(?:<<([^>]+)>>)?\s*(?:as\s+(\S+))?\s*(\{)?\s*$`)
	memberLineRe = regexp.MustCompile(`^(\S+)\s*:\s*(.+)$`)
	stereoOnlyRe = regexp.MustCompile(`^<<([^>]+)>>$`)
	relationOpRe = regexp.MustCompile(`(<\|--|\.\.\|>|\*--|o--|\.\.>|--|->)`)
	leftCardRe   = regexp.MustCompile(`^(\S+)(?:\s+"([^"]*)")?$`)
	rightCardRe  = regexp.MustCompile(`^(?:"([^"]*)"\s+)?(\S+)$`)
)

type classFrame struct {
	id      string
	startLn int
	indent  int
}

type parserState struct {
	d     *Diagram
	bag   *diag.Bag
	text  *source.Text
	stack []classFrame
}

// Parse builds a Diagram from class diagram source text.
func Parse(text *source.Text) (*Diagram, *diag.Bag) {
	bag := diag.NewBag(0)
	d := &Diagram{}
	p := &parserState{d: d, bag: bag, text: text}

	lineCount := text.LineCount()
	line := 1
	for line <= lineCount && isBlankOrComment(text.Line(line)) {
		line++
	}
	line++ // skip the classDiagram header line itself

	for ; line <= lineCount; line++ {
		raw := text.Line(line)
		body := strings.TrimSpace(raw)
		if body == "" || strings.HasPrefix(body, "%%") {
			continue
		}
		indent := len(raw) - len(strings.TrimLeft(raw, " \t"))
		col := indent + 1
		p.statement(line, col, indent, body)
	}

	for i := len(p.stack) - 1; i >= 0; i-- {
		f := p.stack[i]
		edit := blockfix.ClosingEdit(text, f.startLn, f.indent, "}")
		bag.Add(diag.NewError(diag.ClBlockMissingRBrace, source.Pos(edit.Span.Start.Line, 1),
			"class block for '"+f.id+"' is missing its closing '}'").
			WithHint("insert '}' at the opener's indentation").
			WithFix("Insert '}'", edit))
	}
	return d, bag
}

func isBlankOrComment(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || strings.HasPrefix(trimmed, "%%")
}

func (p *parserState) statement(line, col, indent int, body string) {
	if len(p.stack) > 0 {
		p.memberBlockLine(line, col, body)
		return
	}
	switch {
	case body == "}":
		// stray closer with nothing open; ignore rather than crash recovery.
	case directionRe.MatchString(body):
		m := directionRe.FindStringSubmatch(body)
		if validDir[strings.ToUpper(m[1])] {
			p.d.Direction = strings.ToUpper(m[1])
		}
	case classDeclRe.MatchString(body):
		p.classDecl(line, indent, classDeclRe.FindStringSubmatch(body))
	case p.relationStatement(line, col, body):
		// handled
	case memberLineRe.MatchString(body):
		m := memberLineRe.FindStringSubmatch(body)
		cls := p.ensureClass(m[1])
		p.addMember(cls, m[2])
	default:
		p.bag.Add(diag.NewError(diag.ClUnexpectedToken, source.Pos(line, col),
			"unrecognized class diagram statement"))
	}
}

func (p *parserState) memberBlockLine(line, col int, body string) {
	if body == "}" {
		p.stack = p.stack[:len(p.stack)-1]
		return
	}
	if m := stereoOnlyRe.FindStringSubmatch(body); m != nil {
		p.d.Classes[p.d.ClassIndex(p.stack[len(p.stack)-1].id)].Stereotype = m[1]
		return
	}
	cls := &p.d.Classes[p.d.ClassIndex(p.stack[len(p.stack)-1].id)]
	p.addMember(cls, body)
}

func (p *parserState) classDecl(line, indent int, m []string) {
	id, stereotype, alias, brace := m[1], m[2], m[3], m[4]
	cls := p.ensureClass(id)
	if stereotype != "" {
		cls.Stereotype = stereotype
	}
	if alias != "" {
		cls.Display = alias
	}
	if brace == "{" {
		p.stack = append(p.stack, classFrame{id: id, startLn: line, indent: indent})
	}
}

func (p *parserState) addMember(cls *Class, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if strings.Contains(text, "(") {
		cls.Methods = append(cls.Methods, Member{Text: text})
	} else {
		cls.Attributes = append(cls.Attributes, Member{Text: text})
	}
}

// ensureClass returns the class named id, auto-creating it: every
// relation endpoint resolves to a class even when it was never declared.
func (p *parserState) ensureClass(id string) *Class {
	if i := p.d.ClassIndex(id); i >= 0 {
		return &p.d.Classes[i]
	}
	p.d.Classes = append(p.d.Classes, Class{ID: id, Display: id})
	return &p.d.Classes[len(p.d.Classes)-1]
}

// relationStatement tries to parse body as a relation line, reporting
// CL-REL-INVALID for a bare '->' and CL-REL-MALFORMED for a missing
// target. It reports false when body does not contain a relation operator
// at all, letting the caller try other statement shapes.
func (p *parserState) relationStatement(line, col int, body string) bool {
	loc := relationOpRe.FindStringIndex(body)
	if loc == nil {
		return false
	}
	left := strings.TrimSpace(body[:loc[0]])
	lm := leftCardRe.FindStringSubmatch(left)
	if lm == nil || lm[1] == "" {
		return false
	}
	op := body[loc[0]:loc[1]]
	if op == "->" {
		p.bag.Add(diag.NewError(diag.ClRelInvalid, source.Pos(line, col+loc[0]).WithLength(len(op)),
			"'->' is not a valid class diagram relation operator").
			WithHint("use one of <|--, *--, o--, ..>, ..|>, or --"))
		op = "--"
	}

	right := body[loc[1]:]
	label := ""
	rest := right
	if idx := strings.Index(right, ":"); idx >= 0 {
		label = strings.TrimSpace(right[idx+1:])
		rest = right[:idx]
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		p.bag.Add(diag.NewError(diag.ClRelMalformed, source.Pos(line, col+loc[1]),
			"relation is missing its target class").
			WithHint("add a target class after the relation operator"))
		return true
	}
	rm := rightCardRe.FindStringSubmatch(rest)
	if rm == nil || rm[2] == "" {
		p.bag.Add(diag.NewError(diag.ClRelMalformed, source.Pos(line, col+loc[1]),
			"relation target is malformed").
			WithHint("use a single class identifier as the target"))
		return true
	}

	srcID, srcCard := lm[1], lm[2]
	tgtID, tgtCard := rm[2], rm[1]
	p.ensureClass(srcID)
	p.ensureClass(tgtID)
	p.d.Relations = append(p.d.Relations, Relation{
		Source: srcID, Target: tgtID, Kind: kindFor(op), Label: label,
		SourceCard: srcCard, TargetCard: tgtCard,
	})
	return true
}

func kindFor(op string) RelationKind {
	switch op {
	case "<|--":
		return RelExtends
	case "*--":
		return RelComposition
	case "o--":
		return RelAggregation
	case "..>":
		return RelDependency
	case "..|>":
		return RelRealization
	default: // "--"
		return RelAssociation
	}
}
