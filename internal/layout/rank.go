package layout

// rankGraph assigns each node a rank (its layer along the direction axis)
// using a longest-path ranker over the DAG obtained by a greedy acyclic
// breaker: a depth-first walk in source order that drops any edge closing
// a cycle. Applied uniformly since flowchart input is not guaranteed
// acyclic in general.
type rankGraph struct {
	index   map[string]int
	nodes   []string
	adj     [][]int // acyclic forward edges, by node index
	indeg   []int
}

func buildRankGraph(nodeIDs []string, edges []Edge) *rankGraph {
	rg := &rankGraph{index: make(map[string]int, len(nodeIDs))}
	for _, id := range nodeIDs {
		if _, ok := rg.index[id]; ok {
			continue
		}
		rg.index[id] = len(rg.nodes)
		rg.nodes = append(rg.nodes, id)
	}
	rg.adj = make([][]int, len(rg.nodes))
	rg.indeg = make([]int, len(rg.nodes))

	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make([]int, len(rg.nodes))
	added := make(map[[2]int]bool)
	var dfs func(u int)
	dfs = func(u int) {
		color[u] = gray
		for _, e := range edges {
			ui, uok := rg.index[e.Source]
			if !uok || ui != u {
				continue
			}
			vi, vok := rg.index[e.Target]
			if !vok {
				continue
			}
			key := [2]int{u, vi}
			if added[key] {
				continue
			}
			if color[vi] == gray {
				// back edge: would close a cycle, drop it.
				continue
			}
			added[key] = true
			rg.adj[u] = append(rg.adj[u], vi)
			rg.indeg[vi]++
			if color[vi] == white {
				dfs(vi)
			}
		}
		color[u] = black
	}
	for i := range rg.nodes {
		if color[i] == white {
			dfs(i)
		}
	}
	return rg
}

// ranks returns each node's 0-based longest-path rank.
func (rg *rankGraph) ranks() []int {
	rank := make([]int, len(rg.nodes))
	order := topoOrder(rg)
	for _, u := range order {
		for _, v := range rg.adj[u] {
			if rank[u]+1 > rank[v] {
				rank[v] = rank[u] + 1
			}
		}
	}
	return rank
}

func topoOrder(rg *rankGraph) []int {
	indeg := append([]int(nil), rg.indeg...)
	queue := make([]int, 0, len(rg.nodes))
	for i, d := range indeg {
		if d == 0 {
			queue = append(queue, i)
		}
	}
	order := make([]int, 0, len(rg.nodes))
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		order = append(order, u)
		for _, v := range rg.adj[u] {
			indeg[v]--
			if indeg[v] == 0 {
				queue = append(queue, v)
			}
		}
	}
	return order
}
