package layout

import (
	"fmt"
	"sort"
	"strings"
)

// Options tunes the spacing constants: rank separation
// (distance between layers along the direction axis), node separation
// (distance between nodes within a layer), and cluster padding.
type Options struct {
	RankSep        float64
	NodeSep        float64
	ClusterPadding float64
}

func (o Options) withDefaults() Options {
	if o.RankSep == 0 {
		o.RankSep = 60
	}
	if o.NodeSep == 0 {
		o.NodeSep = 40
	}
	if o.ClusterPadding == 0 {
		o.ClusterPadding = 30
	}
	return o
}

// Engine lays out graphs, memoizing by a cache key derived from the
// graph's content so the same diagram is never recomputed.
type Engine struct {
	cache map[string]Result
}

// New returns a ready-to-use Engine.
func New() *Engine {
	return &Engine{cache: make(map[string]Result)}
}

// Layout computes (or returns the cached) geometry for g using opt.
func (e *Engine) Layout(g Graph, opt Options) Result {
	opt = opt.withDefaults()
	key := cacheKey(g, opt)
	if e.cache == nil {
		e.cache = make(map[string]Result)
	}
	if r, ok := e.cache[key]; ok {
		return r
	}
	r := compute(g, opt)
	e.cache[key] = r
	return r
}

func cacheKey(g Graph, opt Options) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%.2f|%.2f|%.2f", g.Direction, opt.RankSep, opt.NodeSep, opt.ClusterPadding)
	for _, n := range g.Nodes {
		fmt.Fprintf(&b, "|N:%s:%.2f:%.2f", n.ID, n.Width, n.Height)
	}
	for _, e := range g.Edges {
		fmt.Fprintf(&b, "|E:%s>%s:%s", e.Source, e.Target, e.Label)
	}
	for _, s := range g.Subgraphs {
		fmt.Fprintf(&b, "|S:%s<%s:%s", s.ID, s.Parent, strings.Join(s.Members, ","))
	}
	return b.String()
}

// compute runs the pure layered layout: rank assignment, in-rank ordering
// by first appearance, coordinate assignment by direction, cluster
// bounds, and edge routing, structured as distinct passes.
func compute(g Graph, opt Options) Result {
	if len(g.Nodes) == 0 {
		return Result{}
	}
	ids := make([]string, len(g.Nodes))
	sizeOf := make(map[string][2]float64, len(g.Nodes))
	for i, n := range g.Nodes {
		ids[i] = n.ID
		sizeOf[n.ID] = [2]float64{n.Width, n.Height}
	}

	hasClusters := len(g.Subgraphs) > 0
	rankSep, nodeSep := opt.RankSep, opt.NodeSep
	if hasClusters {
		// Extra spacing leaves cluster padding room when subgraphs are
		// present.
		rankSep += 40
		nodeSep += 20
	}

	rg := buildRankGraph(ids, g.Edges)
	ranks := rg.ranks()

	byRank := map[int][]string{}
	maxRank := 0
	for i, id := range rg.nodes {
		r := ranks[i]
		byRank[r] = append(byRank[r], id)
		if r > maxRank {
			maxRank = r
		}
	}
	for r := range byRank {
		sort.SliceStable(byRank[r], func(a, b int) bool {
			return indexOf(ids, byRank[r][a]) < indexOf(ids, byRank[r][b])
		})
	}

	horizontal := g.Direction == "LR" || g.Direction == "RL"

	positions := make(map[string]Rect, len(ids))
	var rankExtent, crossExtent float64
	rankOffset := make([]float64, maxRank+2)
	for r := 0; r <= maxRank; r++ {
		members := byRank[r]
		var cross float64
		rankThickness := 0.0
		for _, id := range members {
			w, h := sizeOf[id][0], sizeOf[id][1]
			thickness, crossSize := h, w
			if horizontal {
				thickness, crossSize = w, h
			}
			if thickness > rankThickness {
				rankThickness = thickness
			}
			cross += crossSize + nodeSep
		}
		if cross > 0 {
			cross -= nodeSep
		}
		if cross > crossExtent {
			crossExtent = cross
		}
		rankOffset[r+1] = rankOffset[r] + rankThickness + rankSep
	}

	for r := 0; r <= maxRank; r++ {
		members := byRank[r]
		var cursor float64
		for _, id := range members {
			w, h := sizeOf[id][0], sizeOf[id][1]
			var rect Rect
			if horizontal {
				rect = Rect{X: rankOffset[r], Y: cursor, Width: w, Height: h}
				cursor += h + nodeSep
			} else {
				rect = Rect{X: cursor, Y: rankOffset[r], Width: w, Height: h}
				cursor += w + nodeSep
			}
			positions[id] = rect
		}
	}
	rankExtent = rankOffset[maxRank+1] - rankSep

	// RL/BT reverse the rank axis.
	if g.Direction == "RL" {
		for id, rc := range positions {
			rc.X = rankExtent - rc.X - rc.Width
			positions[id] = rc
		}
	} else if g.Direction == "BT" {
		for id, rc := range positions {
			rc.Y = rankExtent - rc.Y - rc.Height
			positions[id] = rc
		}
	}

	nodePositions := make([]NodePosition, 0, len(ids))
	for _, id := range ids {
		nodePositions = append(nodePositions, NodePosition{ID: id, Rect: positions[id]})
	}

	edgeRoutes := make([]EdgeRoute, 0, len(g.Edges))
	for _, e := range g.Edges {
		sr, sok := positions[e.Source]
		tr, tok := positions[e.Target]
		if !sok || !tok {
			continue
		}
		points, mode := routeEdge(sr, tr, horizontal)
		edgeRoutes = append(edgeRoutes, EdgeRoute{
			Source: e.Source, Target: e.Target, Label: e.Label,
			Points: points, Mode: mode,
		})
	}

	clusters := computeClusters(g, positions, opt.ClusterPadding)

	// Cluster padding and title bands extend above/left of the node grid;
	// shift everything back into the non-negative quadrant.
	var minX, minY float64
	for _, c := range clusters {
		if c.Rect.X < minX {
			minX = c.Rect.X
		}
		if c.Rect.Y-c.TitleBand < minY {
			minY = c.Rect.Y - c.TitleBand
		}
	}
	if minX < 0 || minY < 0 {
		dx, dy := -minX, -minY
		for i := range nodePositions {
			nodePositions[i].Rect.X += dx
			nodePositions[i].Rect.Y += dy
		}
		for i := range edgeRoutes {
			for j := range edgeRoutes[i].Points {
				edgeRoutes[i].Points[j].X += dx
				edgeRoutes[i].Points[j].Y += dy
			}
		}
		for i := range clusters {
			clusters[i].Rect.X += dx
			clusters[i].Rect.Y += dy
		}
	}

	width := crossExtent - minX
	height := rankExtent - minY
	if horizontal {
		width, height = rankExtent-minX, crossExtent-minY
	}
	for _, c := range clusters {
		if c.Rect.Right() > width {
			width = c.Rect.Right()
		}
		if c.Rect.Bottom() > height {
			height = c.Rect.Bottom()
		}
	}

	return Result{Width: width, Height: height, Nodes: nodePositions, Edges: edgeRoutes, Clusters: clusters}
}

// routeEdge produces the layout engine's polyline for one edge: a
// straight line when source and target are aligned on the cross axis, or
// a simple orthogonal two-elbow route otherwise (this engine does not
// model per-edge bend points the way a full Sugiyama router would).
func routeEdge(src, dst Rect, horizontal bool) ([]Point, string) {
	start := Point{X: src.CenterX(), Y: src.CenterY()}
	end := Point{X: dst.CenterX(), Y: dst.CenterY()}
	if horizontal {
		if src.Y == dst.Y {
			return []Point{start, end}, "smooth"
		}
		midX := (src.Right() + dst.X) / 2
		return []Point{start, {X: midX, Y: start.Y}, {X: midX, Y: end.Y}, end}, "orthogonal"
	}
	if src.X == dst.X {
		return []Point{start, end}, "smooth"
	}
	midY := (src.Bottom() + dst.Y) / 2
	return []Point{start, {X: start.X, Y: midY}, {X: end.X, Y: midY}, end}, "orthogonal"
}

func computeClusters(g Graph, positions map[string]Rect, padding float64) []ClusterBounds {
	depth := make(map[string]int, len(g.Subgraphs))
	var depthOf func(id string) int
	depthOf = func(id string) int {
		if d, ok := depth[id]; ok {
			return d
		}
		for _, s := range g.Subgraphs {
			if s.ID == id {
				if s.Parent == "" {
					depth[id] = 0
				} else {
					depth[id] = depthOf(s.Parent) + 1
				}
				return depth[id]
			}
		}
		return 0
	}

	bounds := make([]ClusterBounds, 0, len(g.Subgraphs))
	// Deepest subgraphs get their bounds from member nodes first; shallower
	// ones then absorb their children's bounds so each parent cluster
	// encloses its children.
	order := make([]Subgraph, len(g.Subgraphs))
	copy(order, g.Subgraphs)
	sort.SliceStable(order, func(i, j int) bool { return depthOf(order[i].ID) > depthOf(order[j].ID) })

	rectOf := make(map[string]Rect, len(order))
	hasRect := make(map[string]bool, len(order))
	for _, s := range order {
		var rc Rect
		first := true
		for _, m := range s.Members {
			mr, ok := positions[m]
			if !ok {
				continue
			}
			if first {
				rc = mr
				first = false
				continue
			}
			rc = union(rc, mr)
		}
		if !first {
			rc = Rect{X: rc.X - padding, Y: rc.Y - padding, Width: rc.Width + 2*padding, Height: rc.Height + 2*padding}
		}
		rectOf[s.ID] = rc
		hasRect[s.ID] = !first
	}
	// Membership only records nodes under their innermost subgraph, so a
	// parent whose content lives entirely in child subgraphs has no member
	// rect of its own; fold each child's rect (grown by padding) into its
	// parent, deepest first, so every parent encloses its children.
	for _, s := range order {
		if s.Parent == "" || !hasRect[s.ID] {
			continue
		}
		grown := rectOf[s.ID]
		grown = Rect{X: grown.X - padding, Y: grown.Y - padding, Width: grown.Width + 2*padding, Height: grown.Height + 2*padding}
		if hasRect[s.Parent] {
			rectOf[s.Parent] = union(rectOf[s.Parent], grown)
		} else {
			rectOf[s.Parent] = grown
			hasRect[s.Parent] = true
		}
	}
	for _, s := range order {
		bounds = append(bounds, ClusterBounds{ID: s.ID, Rect: rectOf[s.ID], TitleBand: 20, Depth: depthOf(s.ID)})
	}
	// Deepest drawn last: sort ascending by depth.
	sort.SliceStable(bounds, func(i, j int) bool { return bounds[i].Depth < bounds[j].Depth })
	return bounds
}

func union(a, b Rect) Rect {
	x0 := minF(a.X, b.X)
	y0 := minF(a.Y, b.Y)
	x1 := maxF(a.Right(), b.Right())
	y1 := maxF(a.Bottom(), b.Bottom())
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func indexOf(ss []string, s string) int {
	for i, v := range ss {
		if v == s {
			return i
		}
	}
	return -1
}
