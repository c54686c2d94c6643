package quadtree

import (
	"math/rand"
	"testing"
)

func TestNodeKind_String(t *testing.T) {
	tests := []struct {
		kind NodeKind
		want string
	}{
		{KindLeaf, "leaf"},
		{KindInternal, "internal"},
		{KindStopped, "stopped"},
		{NodeKind(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("NodeKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestNode_View(t *testing.T) {
	tree := mustBuild(t, scenarioPoints(), scenarioBounds, DefaultConfig())
	root := tree.Root()

	if !root.Valid() {
		t.Fatal("root should be valid")
	}
	if (Node{}).Valid() {
		t.Error("zero Node should be invalid")
	}
	if root.Point() != -1 {
		t.Errorf("internal node Point() = %d, want -1", root.Point())
	}
	if root.NumSlots() != 4 {
		t.Errorf("NumSlots() = %d, want 4", root.NumSlots())
	}

	for _, o := range []int{-1, 4, 100} {
		if _, ok := root.Child(o); ok {
			t.Errorf("Child(%d) should be absent", o)
		}
	}

	leaf, ok := tree.Leaf(3)
	if !ok {
		t.Fatal("Leaf(3) not found")
	}
	if leaf.NumSlots() != 0 || leaf.Children() != nil {
		t.Error("leaf should have no slots or children")
	}
	if _, ok := leaf.Child(0); ok {
		t.Error("leaf Child(0) should be absent")
	}
	if leaf.Contains([]float64{10}) {
		t.Error("Contains should reject a point of the wrong dimension")
	}
	if !leaf.Contains([]float64{10, 10}) {
		t.Error("leaf should contain its own point")
	}
}

func TestNode_RegionIsCopy(t *testing.T) {
	tree := mustBuild(t, scenarioPoints(), scenarioBounds, DefaultConfig())

	r := tree.Root().Region()
	r.Mid[0] = 1e9
	if got := tree.Root().Region().Mid[0]; got != 5 {
		t.Errorf("modifying a returned region changed the tree: mid[0] = %v", got)
	}
}

func TestTree_Leaf(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	pts := randomPoints(rng, 100, 3, 1)
	tree := mustNew(t, pts)

	for i := range pts {
		leaf, ok := tree.Leaf(i)
		if !ok {
			t.Fatalf("Leaf(%d) not found", i)
		}
		if leaf.Point() != i {
			t.Errorf("Leaf(%d).Point() = %d", i, leaf.Point())
		}
	}
	for _, i := range []int{-1, len(pts)} {
		if _, ok := tree.Leaf(i); ok {
			t.Errorf("Leaf(%d) should be absent", i)
		}
	}
}

func TestTree_LeafInsideStoppedNode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Stop = func(info NodeInfo, depth int) bool { return depth == 1 }
	tree := mustBuild(t, scenarioPoints(), scenarioBounds, cfg)

	// (0,0) and (5,5) share the stopped lower-left quadrant.
	for _, i := range []int{0, 4} {
		if _, ok := tree.Leaf(i); ok {
			t.Errorf("Leaf(%d) should be absent inside a stopped node", i)
		}
	}
	if _, ok := tree.Leaf(1); !ok {
		t.Error("Leaf(1) should be present")
	}
}

func TestWalk_PreOrderAndSkip(t *testing.T) {
	tree := mustBuild(t, scenarioPoints(), scenarioBounds, DefaultConfig())

	var order []int
	tree.Walk(func(n Node, depth int) bool {
		if n.IsLeaf() {
			order = append(order, n.Point())
		}
		return true
	})
	want := []int{0, 4, 1, 2, 3}
	if len(order) != len(want) {
		t.Fatalf("visited %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("visited %v, want %v", order, want)
		}
	}

	visited := 0
	tree.Walk(func(n Node, depth int) bool {
		visited++
		return depth == 0
	})
	if visited != 5 {
		t.Errorf("skipping below depth 1 visited %d nodes, want 5", visited)
	}
}
