package dialer

import (
	"fmt"
	"testing"
	"time"

	"salesops-platform/internal/crm"
)

func TestGenerate_FiltersTerritoryAndCapsAtFifty(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	rep := crm.FieldRep{ID: "r1", Territory: "southeast"}

	var pool []crm.Prospect
	for i := 0; i < 70; i++ {
		pool = append(pool, crm.Prospect{ID: fmt.Sprintf("in-%d", i), Territory: "southeast"})
	}
	for i := 0; i < 20; i++ {
		pool = append(pool, crm.Prospect{ID: fmt.Sprintf("out-%d", i), Territory: "midwest"})
	}

	got := Generate(pool, rep, now)
	if len(got) != DefaultListSize {
		t.Fatalf("expected %d prospects, got %d", DefaultListSize, len(got))
	}
	for _, p := range got {
		if p.Territory != "southeast" {
			t.Fatalf("prospect %s from wrong territory %q", p.ID, p.Territory)
		}
	}
}

func TestGenerate_NoHomeCoordinatesKeepsPriorityOrder(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	rep := crm.FieldRep{ID: "r1", Territory: "t"}

	d10 := now.Add(-10 * 24 * time.Hour) // recency 20
	d5 := now.Add(-5 * 24 * time.Hour)   // recency 10
	pool := []crm.Prospect{
		// scores: 100+20+15=135, 100+10+15=125, 100+50+15=165
		{ID: "mid", Territory: "t", Specialty: "Other", LastContactAt: &d10},
		{ID: "low", Territory: "t", Specialty: "Other", LastContactAt: &d5},
		{ID: "high", Territory: "t", Specialty: "Other"},
	}

	got := Generate(pool, rep, now)
	if len(got) != 3 {
		t.Fatalf("expected 3, got %d", len(got))
	}
	if got[0].ID != "high" || got[1].ID != "mid" || got[2].ID != "low" {
		t.Fatalf("expected priority order high/mid/low, got %s/%s/%s", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestGenerate_StableOnScoreTies(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	rep := crm.FieldRep{ID: "r1", Territory: "t"}

	pool := []crm.Prospect{
		{ID: "a", Territory: "t", Specialty: "Dental"},
		{ID: "b", Territory: "t", Specialty: "Dental"},
		{ID: "c", Territory: "t", Specialty: "Dental"},
	}
	got := Generate(pool, rep, now)
	if got[0].ID != "a" || got[1].ID != "b" || got[2].ID != "c" {
		t.Fatalf("tie order not stable: %s %s %s", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestGenerate_RoutedGroupsConcatenateInPartitionOrder(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	homeLat, homeLng := 0.0, 0.0
	rep := crm.FieldRep{ID: "r1", Territory: "t", HomeLat: &homeLat, HomeLng: &homeLng}

	mk := func(id string, lat, lng float64) crm.Prospect {
		p := crm.Prospect{ID: id, Territory: "t", Specialty: "Dental"}
		p.SetCoordinates(lat, lng)
		return p
	}
	// Latitude sort: a(1) b(2) c(3) d(4) e(5) f(6)
	// Deal mod 3: group0={a,d} group1={b,e} group2={c,f}
	pool := []crm.Prospect{
		mk("d", 4, 0), mk("a", 1, 0), mk("f", 6, 0),
		mk("b", 2, 0), mk("e", 5, 0), mk("c", 3, 0),
	}

	got := Generate(pool, rep, now)
	want := []string{"a", "d", "b", "e", "c", "f"}
	if len(got) != len(want) {
		t.Fatalf("expected %d, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestGenerate_EmptyPool(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	got := Generate(nil, crm.FieldRep{ID: "r1", Territory: "t"}, now)
	if len(got) != 0 {
		t.Fatalf("expected empty list, got %d", len(got))
	}
}
