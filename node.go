package quadtree

// NodeKind distinguishes the three node shapes a tree can hold.
type NodeKind uint8

const (
	// KindLeaf holds exactly one point.
	KindLeaf NodeKind = iota
	// KindInternal holds 2^dims child slots, at least two of them present.
	KindInternal
	// KindStopped holds neither a point nor children: the stop hook halted
	// subdivision while more than one point remained.
	KindStopped
)

func (k NodeKind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindInternal:
		return "internal"
	case KindStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

type node struct {
	radius float64
	point  int // leaf point index; -1 otherwise
	slot   int // first child slot of an internal node; -1 otherwise
	size   int // number of points beneath
}

func (n *node) kind() NodeKind {
	switch {
	case n.point >= 0:
		return KindLeaf
	case n.slot >= 0:
		return KindInternal
	default:
		return KindStopped
	}
}

func (t *Tree) mid(id int) []float64 {
	return t.mids[id*t.dims : (id+1)*t.dims]
}

// region returns a Region aliasing the arena; callers must not modify it.
func (t *Tree) region(id int) Region {
	return Region{Mid: t.mid(id), Radius: t.nodes[id].radius}
}

func (t *Tree) addNode(mid []float64, radius float64, point, slot, size int) int {
	id := len(t.nodes)
	t.nodes = append(t.nodes, node{radius: radius, point: point, slot: slot, size: size})
	t.mids = append(t.mids, mid...)
	return id
}

func (t *Tree) addLeaf(mid []float64, radius float64, point int) int {
	id := t.addNode(mid, radius, point, -1, 1)
	t.leafOf[point] = id
	return id
}

func (t *Tree) addStopped(mid []float64, radius float64, size int) int {
	return t.addNode(mid, radius, -1, -1, size)
}

// addInternal allocates an internal node whose present children are
// children[i] in orthant orthants[i].
func (t *Tree) addInternal(mid []float64, radius float64, orthants, children []int, size int) int {
	slot := len(t.slots)
	for i := 0; i < t.nslots; i++ {
		t.slots = append(t.slots, -1)
	}
	for i, o := range orthants {
		t.slots[slot+o] = children[i]
	}
	return t.addNode(mid, radius, -1, slot, size)
}

// Node is a read-only view of one node of a Tree. The zero Node is invalid.
type Node struct {
	t  *Tree
	id int
}

// Valid reports whether n refers to a node.
func (n Node) Valid() bool { return n.t != nil }

// ID returns the arena index of n, stable for the lifetime of the tree.
func (n Node) ID() int { return n.id }

// Kind returns the shape of n.
func (n Node) Kind() NodeKind { return n.t.nodes[n.id].kind() }

// IsLeaf reports whether n holds a single point.
func (n Node) IsLeaf() bool { return n.t.nodes[n.id].point >= 0 }

// Region returns a copy of the hypercube covered by n.
func (n Node) Region() Region {
	mid := make([]float64, n.t.dims)
	copy(mid, n.t.mid(n.id))
	return Region{Mid: mid, Radius: n.t.nodes[n.id].radius}
}

// Contains reports whether p lies inside the region of n, within LocateEpsilon.
func (n Node) Contains(p []float64) bool {
	if len(p) != n.t.dims {
		return false
	}
	return n.t.region(n.id).Contains(p)
}

// Point returns the index of the point held by a leaf, or -1.
func (n Node) Point() int { return n.t.nodes[n.id].point }

// Size returns the number of points beneath n.
func (n Node) Size() int { return n.t.nodes[n.id].size }

// NumSlots returns the number of child slots: 2^dims for internal nodes,
// 0 otherwise.
func (n Node) NumSlots() int {
	if n.t.nodes[n.id].slot < 0 {
		return 0
	}
	return n.t.nslots
}

// Child returns the child in the given orthant and whether it is present.
func (n Node) Child(orthant int) (Node, bool) {
	nd := &n.t.nodes[n.id]
	if nd.slot < 0 || orthant < 0 || orthant >= n.t.nslots {
		return Node{}, false
	}
	c := n.t.slots[nd.slot+orthant]
	if c < 0 {
		return Node{}, false
	}
	return Node{t: n.t, id: c}, true
}

// Children returns the present children of n in ascending orthant order.
func (n Node) Children() []Node {
	nd := &n.t.nodes[n.id]
	if nd.slot < 0 {
		return nil
	}
	var out []Node
	for _, c := range n.t.slots[nd.slot : nd.slot+n.t.nslots] {
		if c >= 0 {
			out = append(out, Node{t: n.t, id: c})
		}
	}
	return out
}
