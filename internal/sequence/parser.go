package sequence

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/probelabs/mermaid-lint/internal/blockfix"
	"github.com/probelabs/mermaid-lint/internal/diag"
	"github.com/probelabs/mermaid-lint/internal/source"
)

var (
	participantRe = regexp.MustCompile(`(?i)^(participant|actor)\s+(\S+)(?:\s+as\s+(.+))?$`)
	autonumberRe  = regexp.MustCompile(`(?i)^autonumber\b\s*(.*)$`)
	noteRe        = regexp.MustCompile(`(?i)^note\s+(left of|right of|over)\s+([^:]+?)\s*(?::\s*(.*))?$`)
	activateRe    = regexp.MustCompile(`(?i)^(activate|deactivate)\s+(\S+)$`)
	createDestRe  = regexp.MustCompile(`(?i)^(create|destroy)\s+(?:participant\s+|actor\s+)?(\S+)$`)
	linkRe        = regexp.MustCompile(`(?i)^links?\b`)
	blockOpenRe   = regexp.MustCompile(`(?i)^(alt|opt|loop|par|critical|break|rect|box)\b\s*(.*)$`)
	elseRe        = regexp.MustCompile(`(?i)^else\b\s*(.*)$`)
	andRe         = regexp.MustCompile(`(?i)^and\b\s*(.*)$`)
	optionRe      = regexp.MustCompile(`(?i)^option\b\s*(.*)$`)
	endRe         = regexp.MustCompile(`(?i)^end\s*$`)
	titleRe       = regexp.MustCompile(`(?i)^title\b\s*(.*)$`)
	accTitleRe    = regexp.MustCompile(`(?i)^accTitle\s*:?\s*(.*)$`)
	accDescrRe    = regexp.MustCompile(`(?i)^accDescr\s*:?\s*(.*)$`)
	propertiesRe  = regexp.MustCompile(`(?i)^properties\b\s*(.*)$`)
	detailsRe     = regexp.MustCompile(`(?i)^details\b\s*(.*)$`)
	// The source id class excludes '-' (and the arrow glyphs) so a
	// double-dash arrow written without spaces still lexes longest-first:
	// a greedy \S+ would split "A-->>B" as "A-" + "->>".
	messageRe     = regexp.MustCompile(`^([^\s:<>+-]+)\s*(<<-->>|<<->>|-->>|->>|-->|->|--x|-x|--\)|-\))\s*([+-])?\s*([^\s:]+)(.*)$`)
)

type blockFrame struct {
	kind    string
	startLn int
	indent  int
}

type parserState struct {
	d         *Diagram
	bag       *diag.Bag
	text      *source.Text
	stack     []blockFrame
	active    map[string]int
	pendingID string
	pendingLn int
	seen      map[string]bool
}

// Parse builds a Diagram from sequence diagram source text, recording a
// diagnostic for every grammar violation it finds.
func Parse(text *source.Text) (*Diagram, *diag.Bag) {
	bag := diag.NewBag(0)
	d := &Diagram{Autonumber: Autonumber{Start: 1, Step: 1}}
	p := &parserState{d: d, bag: bag, text: text, active: map[string]int{}, seen: map[string]bool{}}

	lineCount := text.LineCount()
	line := 1
	for line <= lineCount && isBlankOrComment(text.Line(line)) {
		line++
	}
	line++ // skip the sequenceDiagram header line itself

	for ; line <= lineCount; line++ {
		raw := text.Line(line)
		body := strings.TrimSpace(raw)
		if body == "" || strings.HasPrefix(body, "%%") {
			continue
		}
		col := len(raw) - len(strings.TrimLeft(raw, " \t")) + 1
		p.resolvePendingCreate(line, body)
		p.statement(line, col, body)
	}

	for i := len(p.stack) - 1; i >= 0; i-- {
		f := p.stack[i]
		edit := blockfix.ClosingEdit(text, f.startLn, f.indent, "end")
		bag.Add(diag.NewError(diag.SeBlockMissingEnd, source.Pos(edit.Span.Start.Line, 1),
			"missing 'end' for "+f.kind+" block opened on line "+strconv.Itoa(f.startLn)).
			WithHint("insert 'end' at the opener's indentation").
			WithFix("Insert 'end'", edit))
	}
	if p.pendingID != "" {
		bag.Add(diag.NewError(diag.SeCreateNoCreatingMsg, source.Pos(p.pendingLn, 1),
			"create statement for '"+p.pendingID+"' is not immediately followed by a message involving it"))
	}
	for id, count := range p.active {
		if count > 0 {
			bag.Add(diag.NewError(diag.SeActivationUnbalanced, source.Pos(max(lineCount, 1), 1),
				"activation of '"+id+"' is never deactivated"))
		}
	}
	return d, bag
}

func isBlankOrComment(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || strings.HasPrefix(trimmed, "%%")
}

// resolvePendingCreate closes out a prior create statement's pending state.
// A create is only satisfied by the very next statement when that
// statement is a message naming the created participant.
func (p *parserState) resolvePendingCreate(line int, body string) {
	if p.pendingID == "" {
		return
	}
	if m := messageRe.FindStringSubmatch(body); m != nil {
		from, to := m[1], m[4]
		if from == p.pendingID || to == p.pendingID {
			p.pendingID = ""
			return
		}
	}
	p.bag.Add(diag.NewError(diag.SeCreateNoCreatingMsg, source.Pos(p.pendingLn, 1),
		"create statement for '"+p.pendingID+"' is not immediately followed by a message involving it"))
	p.pendingID = ""
}

func (p *parserState) statement(line, col int, body string) {
	switch {
	case participantRe.MatchString(body):
		m := participantRe.FindStringSubmatch(body)
		p.declareParticipant(m[2], strings.TrimSpace(m[3]))
	case autonumberRe.MatchString(body):
		idx := autonumberRe.FindSubmatchIndex([]byte(body))
		p.autonumber(line, col-1, col+idx[2], body[idx[2]:idx[3]])
	case noteRe.MatchString(body):
		p.note(line, col, noteRe.FindStringSubmatch(body))
	case activateRe.MatchString(body):
		m := activateRe.FindStringSubmatch(body)
		p.activation(line, strings.ToLower(m[1]) == "activate", m[2])
	case createDestRe.MatchString(body):
		m := createDestRe.FindStringSubmatch(body)
		p.createDestroy(line, strings.ToLower(m[1]) == "create", m[2])
	case linkRe.MatchString(body):
		// link/links declare participant hyperlinks; nothing to validate here.
	case blockOpenRe.MatchString(body):
		m := blockOpenRe.FindStringSubmatch(body)
		kind := strings.ToLower(m[1])
		p.stack = append(p.stack, blockFrame{kind: kind, startLn: line, indent: col - 1})
		p.d.Events = append(p.d.Events, Event{Kind: EventBlockStart, BlockKind: kind, BlockTitle: strings.TrimSpace(m[2])})
	case elseRe.MatchString(body):
		p.branch(line, col, "else", elseRe.FindStringSubmatch(body)[1], "alt")
	case andRe.MatchString(body):
		p.branch(line, col, "and", andRe.FindStringSubmatch(body)[1], "par")
	case optionRe.MatchString(body):
		p.branch(line, col, "option", optionRe.FindStringSubmatch(body)[1], "critical")
	case endRe.MatchString(body):
		p.endBlock()
	case titleRe.MatchString(body):
		m := titleRe.FindStringSubmatch(body)
		p.d.HasTitle = true
		p.d.Title = m[1]
		p.bag.Add(diag.NewWarning(diag.SeTitleUnsupported, source.Pos(line, col), "title is parsed but not yet rendered"))
	case accTitleRe.MatchString(body):
		p.bag.Add(diag.NewWarning(diag.SeAccTitleUnsupported, source.Pos(line, col), "accTitle is not yet supported"))
	case accDescrRe.MatchString(body):
		p.bag.Add(diag.NewWarning(diag.SeAccDescrUnsupported, source.Pos(line, col), "accDescr is not yet supported"))
	case propertiesRe.MatchString(body):
		p.bag.Add(diag.NewWarning(diag.SePropertiesUnsupported, source.Pos(line, col), "properties is not yet supported"))
	case detailsRe.MatchString(body):
		p.bag.Add(diag.NewWarning(diag.SeDetailsUnsupported, source.Pos(line, col), "details is not yet supported"))
	case messageRe.MatchString(body):
		p.message(line, col, body)
	default:
		p.bag.Add(diag.NewError(diag.SeUnexpectedToken, source.Pos(line, col), "unrecognized sequence diagram statement"))
	}
}

func (p *parserState) declareParticipant(id, alias string) {
	if p.seen[id] {
		return
	}
	p.seen[id] = true
	display := id
	if alias != "" {
		display = alias
	}
	p.d.Participants = append(p.d.Participants, Participant{ID: id, Display: display})
}

func (p *parserState) implicitParticipant(id string) {
	if id == "" || p.seen[id] {
		return
	}
	p.seen[id] = true
	p.d.Participants = append(p.d.Participants, Participant{ID: id, Display: id})
}

// autonumber parses the `autonumber [start [step] | off]` directive.
// lineIndent is the indentation of the "autonumber" keyword itself
// (used by the extraneous-text fix to indent the split-off line);
// restCol is the 1-based column rest begins at within the source line.
func (p *parserState) autonumber(line, lineIndent, restCol int, rest string) {
	fieldRe := regexp.MustCompile(`\S+`)
	trimmed := strings.TrimSpace(rest)
	switch {
	case trimmed == "":
		p.d.Autonumber = Autonumber{On: true, Start: 1, Step: 1}
	case strings.EqualFold(trimmed, "off"):
		p.d.Autonumber = Autonumber{On: false}
	default:
		locs := fieldRe.FindAllStringIndex(rest, -1)
		field := func(i int) (string, int, int) {
			s, e := locs[i][0], locs[i][1]
			return rest[s:e], restCol + s, restCol + e
		}
		startText, startAt, startEnd := field(0)
		start, err1 := strconv.Atoi(startText)
		if err1 != nil {
			p.bag.Add(diag.NewError(diag.SeAutonumberMalformed, source.Pos(line, startAt).WithLength(startEnd-startAt),
				"autonumber argument must be 'off' or a starting number").
				WithHint("remove the non-numeric autonumber argument").
				WithHeuristicFix("Remove non-numeric argument", diag.TextEdit{
					Span:    source.NewSpan(source.Pos(line, startAt), source.Pos(line, restCol+len(rest))),
					NewText: "",
				}))
			return
		}
		step := 1
		extraIdx := 1
		if len(locs) > 1 {
			stepText, stepAt, stepEnd := field(1)
			if s, err := strconv.Atoi(stepText); err == nil {
				step = s
				extraIdx = 2
			} else {
				p.bag.Add(diag.NewError(diag.SeAutonumberMalformed, source.Pos(line, stepAt).WithLength(stepEnd-stepAt),
					"autonumber step must be numeric").
					WithHint("remove the non-numeric autonumber step").
					WithHeuristicFix("Remove non-numeric step", diag.TextEdit{
						Span:    source.NewSpan(source.Pos(line, stepAt), source.Pos(line, restCol+len(rest))),
						NewText: "",
					}))
				return
			}
		}
		if extraIdx < len(locs) {
			_, extraAt, _ := field(extraIdx)
			p.bag.Add(diag.NewError(diag.SeAutonumberExtraneous, source.Pos(line, extraAt),
				"unexpected extra text after autonumber start/step").
				WithHint("move the extra text onto its own line").
				WithFix("Split onto a new line", diag.TextEdit{
					Span:    source.Point(source.Pos(line, extraAt)),
					NewText: "\n" + strings.Repeat(" ", lineIndent),
				}))
		}
		p.d.Autonumber = Autonumber{On: true, Start: start, Step: step}
	}
}

func (p *parserState) note(line, col int, m []string) {
	position := strings.ToLower(m[1])
	anchor := m[2]
	text := strings.TrimSpace(m[3])

	if !strings.Contains(m[0], ":") {
		// Without a ':' the anchor capture swallows the note text too;
		// split the anchor back off and offer the separator insertion.
		d := diag.NewError(diag.SeNoteMalformed, source.Pos(line, col),
			"note is missing its ':' text separator").
			WithHint("insert ' : ' between the note anchor and its text")
		if sp := strings.IndexAny(anchor, " \t"); sp >= 0 {
			at := col + strings.Index(m[0], anchor) + sp
			d = d.WithFix("Insert ':'", diag.TextEdit{
				Span:    source.Point(source.Pos(line, at)),
				NewText: " :",
			})
			text = strings.TrimSpace(anchor[sp:])
			anchor = anchor[:sp]
		}
		p.bag.Add(d)
	}

	targets := strings.Split(anchor, ",")
	for i := range targets {
		targets[i] = strings.TrimSpace(targets[i])
		p.implicitParticipant(targets[i])
	}
	p.d.Events = append(p.d.Events, Event{Kind: EventNote, Note: &Note{
		Position: position, Targets: targets, Text: text,
	}})
}

func (p *parserState) activation(line int, activate bool, id string) {
	p.implicitParticipant(id)
	if activate {
		if p.active[id] > 0 {
			p.bag.Add(diag.NewError(diag.SeActivationAlreadyActive, source.Pos(line, 1),
				"'"+id+"' is already active"))
			return
		}
		p.active[id]++
		p.d.Events = append(p.d.Events, Event{Kind: EventActivate, Participant: id})
		return
	}
	if p.active[id] <= 0 {
		p.bag.Add(diag.NewError(diag.SeDeactivateNoActive, source.Pos(line, 1),
			"'"+id+"' has no active activation to deactivate"))
		return
	}
	p.active[id]--
	p.d.Events = append(p.d.Events, Event{Kind: EventDeactivate, Participant: id})
}

func (p *parserState) createDestroy(line int, create bool, id string) {
	if create {
		p.pendingID = id
		p.pendingLn = line
		p.d.Events = append(p.d.Events, Event{Kind: EventCreate, Participant: id})
		return
	}
	p.implicitParticipant(id)
	delete(p.active, id)
	p.d.Events = append(p.d.Events, Event{Kind: EventDestroy, Participant: id})
}

func (p *parserState) branch(line, col int, tag, title, wantKind string) {
	if len(p.stack) == 0 || p.stack[len(p.stack)-1].kind != wantKind {
		switch tag {
		case "else":
			if len(p.stack) > 0 && p.stack[len(p.stack)-1].kind == "critical" {
				p.bag.Add(diag.NewError(diag.SeElseInCritical, source.Pos(line, col).WithLength(len("else")),
					"'else' inside a critical block; use 'option' instead").
					WithHint("replace else with option").
					WithFix("Replace with option", diag.TextEdit{
						Span:    source.NewSpan(source.Pos(line, col), source.Pos(line, col+len("else"))),
						NewText: "option",
					}))
				p.d.Events = append(p.d.Events, Event{Kind: EventBlockBranch, BranchTag: "option", BranchTitle: strings.TrimSpace(title)})
				return
			}
			p.bag.Add(diag.NewWarning(diag.SeElseOutsideAlt, source.Pos(line, col), "'else' outside an alt block"))
		case "and":
			p.bag.Add(diag.NewWarning(diag.SeAndOutsidePar, source.Pos(line, col), "'and' outside a par block"))
		case "option":
			p.bag.Add(diag.NewWarning(diag.SeOptionOutsideCritical, source.Pos(line, col), "'option' outside a critical block"))
		}
		return
	}
	p.d.Events = append(p.d.Events, Event{Kind: EventBlockBranch, BranchTag: tag, BranchTitle: strings.TrimSpace(title)})
}

func (p *parserState) endBlock() {
	if len(p.stack) == 0 {
		return
	}
	p.stack = p.stack[:len(p.stack)-1]
	p.d.Events = append(p.d.Events, Event{Kind: EventBlockEnd})
}

func (p *parserState) message(line, col int, body string) {
	m := messageRe.FindStringSubmatch(body)
	from, op, marker, to, rest := m[1], m[2], m[3], m[4], m[5]
	p.implicitParticipant(from)
	p.implicitParticipant(to)

	style, end, async := arrowKindFor(op)
	msg := &Message{From: from, To: to, Style: style, EndMarker: end, Async: async}

	rest = strings.TrimLeft(rest, " \t")
	textCol := col + len(body) - len(rest)
	switch {
	case strings.HasPrefix(rest, ":"):
		msg.Text = strings.TrimSpace(rest[1:])
	case rest == "":
		msg.Text = ""
	default:
		p.bag.Add(diag.NewError(diag.SeMsgColonMissing, source.Pos(line, textCol),
			"message text must follow a ':' separator").
			WithHint("insert ' : ' before the message text").
			WithFix("Insert ':'", diag.TextEdit{
				Span:    source.NewSpan(source.Pos(line, textCol), source.Pos(line, textCol)),
				NewText: " : ",
			}))
		msg.Text = strings.TrimSpace(rest)
	}

	switch marker {
	case "+":
		msg.Activates = true
		if p.active[to] > 0 {
			p.bag.Add(diag.NewError(diag.SeActivationAlreadyActive, source.Pos(line, col), "'"+to+"' is already active"))
		} else {
			p.active[to]++
		}
	case "-":
		msg.Deactivates = true
		if p.active[to] <= 0 {
			p.bag.Add(diag.NewError(diag.SeDeactivateNoActive, source.Pos(line, col), "'"+to+"' has no active activation to deactivate"))
		} else {
			p.active[to]--
		}
	}

	p.d.Events = append(p.d.Events, Event{Kind: EventMessage, Message: msg})
}

// arrowKindFor maps an arrow token to its rendering attributes. The
// catalog's dotted/solid distinction is the leading "--" vs "-"; its
// end-marker distinction is the trailing "x"/")"/">" shape; and ")"-ended
// arrows are the catalog's async forms.
func arrowKindFor(op string) (style LineStyle, end Marker, async bool) {
	style = LineSolid
	if strings.Contains(op, "--") {
		style = LineDotted
	}
	switch {
	case strings.HasSuffix(op, "x"):
		end = MarkerCross
	case strings.HasSuffix(op, ")"):
		end = MarkerOpen
		async = true
	case strings.HasSuffix(op, ">>") || strings.HasSuffix(op, ">"):
		end = MarkerArrow
	}
	return
}
