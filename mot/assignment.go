package mot

// scoreTolerance absorbs float rounding when comparing assignment scores
const scoreTolerance = 1e-9

type residualEdge struct {
	from, to int
	cost     float64
}

// assignment matches rows (particles) to columns (detections) over gated pairs only
type assignment struct {
	scores   [][]float64
	gated    [][]bool
	rowMatch []int
	colMatch []int
}

func newAssignment(scores [][]float64, gated [][]bool, rows, cols int) *assignment {
	a := &assignment{
		scores:   scores,
		gated:    gated,
		rowMatch: make([]int, rows),
		colMatch: make([]int, cols),
	}
	for i := range a.rowMatch {
		a.rowMatch[i] = -1
	}
	for j := range a.colMatch {
		a.colMatch[j] = -1
	}
	return a
}

// seed takes pairs of an initial solution. Ungated and conflicting pairs are skipped.
func (a *assignment) seed(pairs map[int]map[int]float64) {
	for i, row := range pairs {
		for j := range row {
			if i >= len(a.rowMatch) || j >= len(a.colMatch) || !a.gated[i][j] {
				continue
			}
			if a.rowMatch[i] != -1 || a.colMatch[j] != -1 {
				continue
			}
			a.rowMatch[i] = j
			a.colMatch[j] = i
		}
	}
}

// score is the sum of scores of matched pairs
func (a *assignment) score() float64 {
	total := 0.0
	for i, j := range a.rowMatch {
		if j != -1 {
			total += a.scores[i][j]
		}
	}
	return total
}

// optimize improves the matching until it has the maximum total score.
// Matching is a flow source -> row -> column -> sink with return edge sink -> source;
// it is optimal iff the residual graph has no negative cycle (costs are negated scores).
func (a *assignment) optimize() {
	for {
		cycle := a.negativeCycle()
		if cycle == nil {
			return
		}
		a.apply(cycle)
	}
}

// Node numbering: 0 is source, 1 is sink, then rows, then columns
func (a *assignment) rowNode(i int) int { return 2 + i }
func (a *assignment) colNode(j int) int { return 2 + len(a.rowMatch) + j }

func (a *assignment) residual() []residualEdge {
	rows, cols := len(a.rowMatch), len(a.colMatch)
	edges := make([]residualEdge, 0, rows*cols+2*(rows+cols)+2)
	matched := 0
	for i := 0; i < rows; i++ {
		if a.rowMatch[i] == -1 {
			edges = append(edges, residualEdge{0, a.rowNode(i), 0})
		} else {
			edges = append(edges, residualEdge{a.rowNode(i), 0, 0})
			matched++
		}
		for j := 0; j < cols; j++ {
			if !a.gated[i][j] {
				continue
			}
			if a.rowMatch[i] == j {
				edges = append(edges, residualEdge{a.colNode(j), a.rowNode(i), a.scores[i][j]})
			} else {
				edges = append(edges, residualEdge{a.rowNode(i), a.colNode(j), -a.scores[i][j]})
			}
		}
	}
	for j := 0; j < cols; j++ {
		if a.colMatch[j] == -1 {
			edges = append(edges, residualEdge{a.colNode(j), 1, 0})
		} else {
			edges = append(edges, residualEdge{1, a.colNode(j), 0})
		}
	}
	edges = append(edges, residualEdge{1, 0, 0})
	if matched > 0 {
		edges = append(edges, residualEdge{0, 1, 0})
	}
	return edges
}

// negativeCycle runs Bellman-Ford from a virtual source and returns edges of a negative cycle, if any
func (a *assignment) negativeCycle() []residualEdge {
	edges := a.residual()
	n := 2 + len(a.rowMatch) + len(a.colMatch)
	dist := make([]float64, n)
	pred := make([]int, n)
	for v := range pred {
		pred[v] = -1
	}
	last := -1
	for iter := 0; iter < n; iter++ {
		last = -1
		for e, edge := range edges {
			if dist[edge.from]+edge.cost < dist[edge.to]-scoreTolerance {
				dist[edge.to] = dist[edge.from] + edge.cost
				pred[edge.to] = e
				last = edge.to
			}
		}
		if last == -1 {
			return nil
		}
	}
	// Step back n times to be sure we are on the cycle
	v := last
	for i := 0; i < n; i++ {
		if pred[v] == -1 {
			return nil
		}
		v = edges[pred[v]].from
	}
	cycle := make([]residualEdge, 0)
	for u := v; ; {
		if pred[u] == -1 {
			return nil
		}
		edge := edges[pred[u]]
		cycle = append(cycle, edge)
		u = edge.from
		if u == v {
			break
		}
	}
	return cycle
}

// apply pushes a unit of flow along the cycle: backward pairs are unmatched first, then forward pairs matched
func (a *assignment) apply(cycle []residualEdge) {
	first := 2
	firstCol := 2 + len(a.rowMatch)
	for _, edge := range cycle {
		if edge.from >= firstCol && edge.to >= first && edge.to < firstCol {
			i, j := edge.to-first, edge.from-firstCol
			a.rowMatch[i] = -1
			a.colMatch[j] = -1
		}
	}
	for _, edge := range cycle {
		if edge.from >= first && edge.from < firstCol && edge.to >= firstCol {
			i, j := edge.from-first, edge.to-firstCol
			a.rowMatch[i] = j
			a.colMatch[j] = i
		}
	}
}
