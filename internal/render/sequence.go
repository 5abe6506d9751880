package render

import (
	"github.com/probelabs/mermaid-lint/internal/sequence"
)

const (
	seqRowHeight   = 40.0
	seqTopBand     = 50.0
	seqColPadding  = 30.0
	seqMinColWidth = 80.0
)

// Sequence renders a parsed sequence diagram to an SVG document.
func Sequence(d *sequence.Diagram) string {
	colX, colWidth, order := sequenceColumns(d.Participants)

	rows, rowHints, activations, blocks := sequenceSchedule(d.Events)
	totalHeight := seqTopBand*2 + float64(rows)*seqRowHeight
	totalWidth := 0.0
	if len(order) > 0 {
		last := order[len(order)-1]
		totalWidth = colX[last] + colWidth[last]/2 + seqColPadding
	}

	doc := NewDoc()
	doc.Open(totalWidth, totalHeight)
	WriteDefs(doc)

	doc.Group("lifelines", func() {
		for _, id := range order {
			x := colX[id]
			doc.Elem("line", A("x1", ftoa(x)), A("y1", ftoa(seqTopBand)),
				A("x2", ftoa(x)), A("y2", ftoa(totalHeight-seqTopBand)), A("stroke", "#999"))
			doc.Text(displayOf(d.Participants, id), A("x", ftoa(x)), A("y", "20"),
				A("text-anchor", "middle"), A("font-size", "13"))
		}
	})

	doc.Group("blocks", func() {
		left, right := columnSpan(colX, colWidth, order)
		for _, b := range blocks {
			y0 := rowY(b.startRow)
			y1 := rowY(b.endRow) + seqRowHeight
			doc.Elem("rect", A("x", ftoa(left)), A("y", ftoa(y0)), A("width", ftoa(right-left)),
				A("height", ftoa(y1-y0)), A("fill", "none"), A("stroke", "#666"))
			doc.Text(b.kind+" "+b.title, A("x", ftoa(left+4)), A("y", ftoa(y0+14)), A("font-size", "11"))
			for _, br := range b.branches {
				y := rowY(br.row)
				doc.Elem("line", A("x1", ftoa(left)), A("y1", ftoa(y)), A("x2", ftoa(right)), A("y2", ftoa(y)),
					A("stroke", "#666"), A("stroke-dasharray", "4 2"))
				doc.Text(br.tag+" "+br.title, A("x", ftoa(left+4)), A("y", ftoa(y+14)), A("font-size", "11"))
			}
		}
	})

	doc.Group("activations", func() {
		for _, a := range activations {
			x := colX[a.participant]
			y0 := rowY(a.startRow)
			y1 := rowY(a.endRow) + seqRowHeight
			doc.Elem("rect", A("x", ftoa(x-5)), A("y", ftoa(y0)), A("width", "10"),
				A("height", ftoa(y1-y0)), A("fill", "#eef"), A("stroke", "#333"))
		}
	})

	doc.Group("messages", func() {
		for i, ev := range d.Events {
			if ev.Kind != sequence.EventMessage {
				continue
			}
			m := ev.Message
			y := rowY(rowHints[i])
			x0, x1 := colX[m.From], colX[m.To]
			marker := "url(#arrow)"
			switch m.EndMarker {
			case sequence.MarkerOpen:
				marker = "url(#circle)"
			case sequence.MarkerCross:
				marker = "url(#cross)"
			}
			dash := ""
			if m.Style == sequence.LineDotted {
				dash = "4 2"
			}
			attrs := []Attr{A("x1", ftoa(x0)), A("y1", ftoa(y)), A("x2", ftoa(x1)), A("y2", ftoa(y)),
				A("stroke", "#333"), A("marker-end", marker)}
			if dash != "" {
				attrs = append(attrs, A("stroke-dasharray", dash))
			}
			doc.Elem("line", attrs...)
			if m.Text != "" {
				doc.Text(m.Text, A("x", ftoa((x0+x1)/2)), A("y", ftoa(y-6)),
					A("text-anchor", "middle"), A("font-size", "12"))
			}
		}
	})

	doc.Group("notes", func() {
		for i, ev := range d.Events {
			if ev.Kind != sequence.EventNote {
				continue
			}
			n := ev.Note
			y := rowY(rowHints[i])
			x := noteX(colX, colWidth, n)
			w := float64(len(n.Text))*7 + 16
			doc.Elem("rect", A("x", ftoa(x-w/2)), A("y", ftoa(y-28)), A("width", ftoa(w)),
				A("height", "20"), A("rx", "4"), A("fill", "#ffd"), A("stroke", "#cc9"))
			doc.Text(n.Text, A("x", ftoa(x)), A("y", ftoa(y-14)), A("text-anchor", "middle"), A("font-size", "11"))
		}
	})

	doc.Close()
	return doc.String()
}

func rowY(row int) float64 { return seqTopBand + float64(row)*seqRowHeight }

func displayOf(ps []sequence.Participant, id string) string {
	for _, p := range ps {
		if p.ID == id {
			if p.Display != "" {
				return p.Display
			}
			return p.ID
		}
	}
	return id
}

func sequenceColumns(ps []sequence.Participant) (x map[string]float64, width map[string]float64, order []string) {
	x = make(map[string]float64, len(ps))
	width = make(map[string]float64, len(ps))
	cursor := seqColPadding
	for _, p := range ps {
		label := p.Display
		if label == "" {
			label = p.ID
		}
		w := float64(len(label))*8 + 2*seqColPadding
		if w < seqMinColWidth {
			w = seqMinColWidth
		}
		width[p.ID] = w
		x[p.ID] = cursor + w/2
		cursor += w
		order = append(order, p.ID)
	}
	return x, width, order
}

func columnSpan(x, width map[string]float64, order []string) (left, right float64) {
	if len(order) == 0 {
		return 0, 0
	}
	first, last := order[0], order[len(order)-1]
	return x[first] - width[first]/2 - 10, x[last] + width[last]/2 + 10
}

func noteX(x, width map[string]float64, n *sequence.Note) float64 {
	if len(n.Targets) == 0 {
		return 0
	}
	switch n.Position {
	case "left of":
		return x[n.Targets[0]] - width[n.Targets[0]]/2 - 20
	case "right of":
		return x[n.Targets[0]] + width[n.Targets[0]]/2 + 20
	default: // "over"
		if len(n.Targets) == 1 {
			return x[n.Targets[0]]
		}
		a, b := x[n.Targets[0]], x[n.Targets[len(n.Targets)-1]]
		return (a + b) / 2
	}
}

type activationSpan struct {
	participant        string
	startRow, endRow   int
}

type branchMark struct {
	row       int
	tag, title string
}

type blockSpan struct {
	kind, title        string
	startRow, endRow   int
	branches           []branchMark
}

// sequenceSchedule assigns a row to every row-consuming event
// (activate/deactivate do not consume one), returned as
// rowHints parallel to events, and collects activation and block spans
// for the activations/blocks groups.
func sequenceSchedule(events []sequence.Event) (rows int, rowHints []int, activations []activationSpan, blocks []blockSpan) {
	row := 0
	rowHints = make([]int, len(events))
	openActivation := map[string]int{}
	var blockStack []int // indices into `blocks`

	for i := range events {
		ev := &events[i]
		switch ev.Kind {
		case sequence.EventMessage, sequence.EventNote:
			rowHints[i] = row
			row++
		case sequence.EventBlockStart:
			rowHints[i] = row
			blocks = append(blocks, blockSpan{kind: ev.BlockKind, title: ev.BlockTitle, startRow: row, endRow: -1})
			blockStack = append(blockStack, len(blocks)-1)
			row++
		case sequence.EventBlockBranch:
			rowHints[i] = row
			if len(blockStack) > 0 {
				bi := blockStack[len(blockStack)-1]
				blocks[bi].branches = append(blocks[bi].branches, branchMark{row: row, tag: ev.BranchTag, title: ev.BranchTitle})
			}
			row++
		case sequence.EventBlockEnd:
			rowHints[i] = row
			if len(blockStack) > 0 {
				bi := blockStack[len(blockStack)-1]
				blockStack = blockStack[:len(blockStack)-1]
				blocks[bi].endRow = row
			}
			row++
		case sequence.EventActivate:
			openActivation[ev.Participant] = row
		case sequence.EventDeactivate:
			start, ok := openActivation[ev.Participant]
			if !ok {
				start = row
			}
			delete(openActivation, ev.Participant)
			end := row
			if end < start {
				end = start
			}
			activations = append(activations, activationSpan{participant: ev.Participant, startRow: start, endRow: end})
		}
	}
	lastRow := row - 1
	if lastRow < 0 {
		lastRow = 0
	}
	for p, start := range openActivation {
		activations = append(activations, activationSpan{participant: p, startRow: start, endRow: lastRow})
	}
	for i := range blocks {
		if blocks[i].endRow == -1 {
			blocks[i].endRow = lastRow
		}
	}
	return row, rowHints, activations, blocks
}
