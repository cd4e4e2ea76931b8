package dialer

import (
	"testing"

	"salesops-platform/internal/crm"
)

func TestSequence_EmptyAndSingleton(t *testing.T) {
	if got := Sequence(nil, 0, 0); len(got) != 0 {
		t.Fatalf("expected empty output")
	}
	one := []crm.Prospect{prospectAt("a", 5, 5)}
	got := Sequence(one, 0, 0)
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("expected singleton unchanged, got %v", got)
	}
}

func TestSequence_GreedyNearestNeighbor(t *testing.T) {
	in := []crm.Prospect{
		prospectAt("far", 10, 10),
		prospectAt("near", 1, 1),
		prospectAt("mid", 5, 5),
	}
	got := Sequence(in, 0, 0)
	if got[0].ID != "near" || got[1].ID != "mid" || got[2].ID != "far" {
		t.Fatalf("unexpected order: %s %s %s", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestSequence_TieFirstSeenWins(t *testing.T) {
	in := []crm.Prospect{
		prospectAt("first", 0, 3),
		prospectAt("second", 3, 0), // same distance from origin
	}
	got := Sequence(in, 0, 0)
	if got[0].ID != "first" {
		t.Fatalf("expected first-seen to win tie, got %s", got[0].ID)
	}
}

func TestSequence_IsPermutation(t *testing.T) {
	in := []crm.Prospect{
		prospectAt("a", 2, 2),
		{ID: "b"}, // no coordinates
		prospectAt("c", 1, 1),
		{ID: "d"}, // no coordinates
	}
	got := Sequence(in, 0, 0)
	if len(got) != len(in) {
		t.Fatalf("length changed: %d != %d", len(got), len(in))
	}
	seen := map[string]int{}
	for _, p := range got {
		seen[p.ID]++
	}
	for _, p := range in {
		if seen[p.ID] != 1 {
			t.Fatalf("prospect %s appears %d times", p.ID, seen[p.ID])
		}
	}
	// measurable prospects come first, unmeasurable keep input order at the tail
	if got[0].ID != "c" || got[1].ID != "a" || got[2].ID != "b" || got[3].ID != "d" {
		t.Fatalf("unexpected order: %s %s %s %s", got[0].ID, got[1].ID, got[2].ID, got[3].ID)
	}
}

func TestSequence_PositionAdvances(t *testing.T) {
	// "hook" is closer to "east" than to the origin; greedy should pick it
	// second even though "west" is nearer the origin than "hook".
	in := []crm.Prospect{
		prospectAt("west", 0, -4),
		prospectAt("east", 0, 3),
		prospectAt("hook", 0, 5),
	}
	got := Sequence(in, 0, 0)
	if got[0].ID != "east" || got[1].ID != "hook" || got[2].ID != "west" {
		t.Fatalf("unexpected order: %s %s %s", got[0].ID, got[1].ID, got[2].ID)
	}
}
