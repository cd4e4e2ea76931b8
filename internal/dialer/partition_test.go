package dialer

import (
	"testing"

	"salesops-platform/internal/crm"
)

func prospectAt(id string, lat, lng float64) crm.Prospect {
	p := crm.Prospect{ID: id}
	p.SetCoordinates(lat, lng)
	return p
}

func TestPartition_ExactGroupCountAndNoLoss(t *testing.T) {
	in := []crm.Prospect{
		prospectAt("a", 10, 0),
		prospectAt("b", 20, 0),
		prospectAt("c", 30, 0),
		prospectAt("d", 40, 0),
		prospectAt("e", 50, 0),
		{ID: "f"}, // no coordinates, sorts as latitude 0
		prospectAt("g", 25, 0),
	}

	groups := Partition(in, 3)
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}

	seen := map[string]int{}
	total := 0
	for _, g := range groups {
		total += len(g)
		for _, p := range g {
			seen[p.ID]++
		}
	}
	if total != len(in) {
		t.Fatalf("expected total %d, got %d", len(in), total)
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("prospect %s appears %d times", id, n)
		}
	}
}

func TestPartition_RoundRobinByLatitude(t *testing.T) {
	in := []crm.Prospect{
		prospectAt("hi", 30, 0),
		prospectAt("lo", 10, 0),
		prospectAt("mid", 20, 0),
	}
	groups := Partition(in, 3)
	// sorted ascending by latitude: lo, mid, hi; dealt i mod 3
	if groups[0][0].ID != "lo" || groups[1][0].ID != "mid" || groups[2][0].ID != "hi" {
		t.Fatalf("unexpected assignment: %v %v %v", groups[0], groups[1], groups[2])
	}
}

func TestPartition_MoreGroupsThanInput(t *testing.T) {
	groups := Partition([]crm.Prospect{prospectAt("a", 1, 1)}, 3)
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	if len(groups[0]) != 1 || len(groups[1]) != 0 || len(groups[2]) != 0 {
		t.Fatalf("expected [1 0 0] sizes, got [%d %d %d]", len(groups[0]), len(groups[1]), len(groups[2]))
	}
}

func TestPartition_EmptyInput(t *testing.T) {
	groups := Partition(nil, 3)
	if len(groups) != 3 {
		t.Fatalf("expected 3 empty groups, got %d", len(groups))
	}
	for i, g := range groups {
		if len(g) != 0 {
			t.Fatalf("group %d not empty", i)
		}
	}
}

func TestPartition_InvalidGroupCount(t *testing.T) {
	if got := Partition([]crm.Prospect{{ID: "a"}}, 0); got != nil {
		t.Fatalf("expected nil for n=0")
	}
}
