package artifact

import "testing"

func coord(id string) Coordinate {
	return Coordinate{GroupID: "g", ArtifactID: id, Version: "1", Type: "jar"}
}

func TestWalkAndCount(t *testing.T) {
	root := NewNode(coord("root"),
		NewNode(coord("a"), NewNode(coord("c"))),
		NewNode(coord("b")),
	)

	var order []string
	Walk(root, func(n *Node) bool {
		order = append(order, n.Artifact.ArtifactID)
		return n.Artifact.ArtifactID != "a"
	})

	want := []string{"root", "a", "b"}
	if len(order) != len(want) {
		t.Fatalf("Walk visited %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("Walk[%d] = %s, want %s", i, order[i], want[i])
		}
	}

	if got := Count(root); got != 4 {
		t.Errorf("Count = %d, want 4", got)
	}
	if got := Count(nil); got != 0 {
		t.Errorf("Count(nil) = %d, want 0", got)
	}
}

func TestDirect(t *testing.T) {
	if Direct(nil) != nil {
		t.Error("Direct(nil) should be nil")
	}
	root := NewNode(coord("root"), NewNode(coord("a")), NewNode(coord("b")))
	if got := len(Direct(root)); got != 2 {
		t.Errorf("len(Direct) = %d, want 2", got)
	}
}

func TestPrune(t *testing.T) {
	root := NewNode(coord("root"),
		NewNode(coord("a"), NewNode(coord("drop"), NewNode(coord("hidden")))),
		NewNode(coord("drop")),
	)
	drop := Filter(func(n *Node) bool { return n.Artifact.ArtifactID == "drop" })

	pruned := Prune(root, drop)

	if got := Count(pruned); got != 2 {
		t.Errorf("Count(pruned) = %d, want 2", got)
	}
	if got := Count(root); got != 5 {
		t.Errorf("input tree modified: Count = %d, want 5", got)
	}

	var nilFilter Filter
	if nilFilter.Excluded(root) {
		t.Error("nil filter should exclude nothing")
	}
}
