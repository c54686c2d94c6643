package quadtree

// Stats summarizes the shape of a built tree.
type Stats struct {
	Points   int // indexed points
	Nodes    int // all nodes
	Internal int // nodes with children
	Leaves   int // single point nodes
	Stopped  int // nodes left unsubdivided by the stop hook
	Depth    int // depth of the deepest node; the root is at depth 0
}

// Walk visits every node in pre-order, children in ascending orthant order.
// Returning false from fn skips the children of that node.
func (t *Tree) Walk(fn func(n Node, depth int) bool) {
	t.walk(t.root, 0, fn)
}

func (t *Tree) walk(id, depth int, fn func(Node, int) bool) {
	if !fn(Node{t: t, id: id}, depth) {
		return
	}
	nd := &t.nodes[id]
	if nd.slot < 0 {
		return
	}
	for _, c := range t.slots[nd.slot : nd.slot+t.nslots] {
		if c >= 0 {
			t.walk(c, depth+1, fn)
		}
	}
}

func (t *Tree) computeStats() Stats {
	st := Stats{Points: len(t.points), Nodes: len(t.nodes)}
	t.Walk(func(n Node, depth int) bool {
		switch n.Kind() {
		case KindLeaf:
			st.Leaves++
		case KindInternal:
			st.Internal++
		case KindStopped:
			st.Stopped++
		}
		st.Depth = max(st.Depth, depth)
		return true
	})
	return st
}
