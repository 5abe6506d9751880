package render

// WriteDefs emits the defs block that leads every flowchart, sequence,
// class and state document (pie documents carry none): arrow,
// circle, and cross markers used by flowchart and sequence
// edges/messages.
func WriteDefs(d *Doc) {
	d.Group("defs-wrapper", func() {
		d.Raw(`<defs>`)
		d.indent++
		d.Raw(`<marker id="arrow" viewBox="0 0 10 10" refX="9" refY="5" markerWidth="7" markerHeight="7" orient="auto-start-reverse"><path d="M 0 0 L 10 5 L 0 10 z" fill="#333"/></marker>`)
		d.Raw(`<marker id="circle" viewBox="0 0 10 10" refX="5" refY="5" markerWidth="6" markerHeight="6"><circle cx="5" cy="5" r="4" fill="none" stroke="#333"/></marker>`)
		d.Raw(`<marker id="cross" viewBox="0 0 10 10" refX="5" refY="5" markerWidth="6" markerHeight="6"><path d="M 1 1 L 9 9 M 9 1 L 1 9" stroke="#333"/></marker>`)
		d.indent--
		d.Raw(`</defs>`)
	})
}
