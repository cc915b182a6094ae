package hierarchy

import (
	"testing"

	"github.com/matzehuels/pathgraph/pkg/errors"
)

func sample() *Hierarchy {
	return &Hierarchy{
		RootLabel: "SWE",
		Tiers: []Tier{
			{ID: "tier-1", Label: "Must take"},
			{ID: "tier-2", Label: "Recommended"},
		},
		Leaves: []Leaf{
			{ID: "cse-12", Code: "CSE 12", Tier: 1},
			{ID: "cse-100", Code: "CSE 100", Tier: 2},
			{ID: "cse-15l", Code: "CSE 15L", Tier: 1},
			{ID: "cse-999", Code: "CSE 999", Tier: 7},
		},
	}
}

func TestNumberOf(t *testing.T) {
	h := &Hierarchy{Tiers: []Tier{
		{ID: "tier-3"},
		{ID: "electives"},
		{ID: "core", Number: 9},
		{ID: "tier-x"},
	}}

	want := []int{3, 2, 9, 4}
	for i, w := range want {
		if got := h.NumberOf(i); got != w {
			t.Errorf("NumberOf(%d) = %d, want %d", i, got, w)
		}
	}
}

func TestNumberOfSkipsClaimedNumbers(t *testing.T) {
	h := &Hierarchy{
		Tiers: []Tier{{ID: "core"}, {ID: "tier-1"}, {ID: "extras"}},
		Leaves: []Leaf{
			{ID: "a", Tier: 1},
			{ID: "b", Tier: 2},
		},
	}
	if err := h.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}

	want := []int{2, 1, 3}
	for i, w := range want {
		if got := h.NumberOf(i); got != w {
			t.Errorf("NumberOf(%d) = %d, want %d", i, got, w)
		}
	}
	if got := h.LeavesOf(1); len(got) != 1 || got[0].ID != "a" {
		t.Errorf("tier-1 leaves = %v, want [a]", got)
	}
	if got := h.LeavesOf(0); len(got) != 1 || got[0].ID != "b" {
		t.Errorf("core leaves = %v, want [b]", got)
	}
}

func TestLeavesOfPreservesCatalogOrder(t *testing.T) {
	h := sample()

	got := h.LeavesOf(0)
	if len(got) != 2 {
		t.Fatalf("LeavesOf(0) returned %d leaves, want 2", len(got))
	}
	if got[0].ID != "cse-12" || got[1].ID != "cse-15l" {
		t.Errorf("LeavesOf(0) = [%s %s], want [cse-12 cse-15l]", got[0].ID, got[1].ID)
	}

	if got := h.LeavesOf(1); len(got) != 1 || got[0].ID != "cse-100" {
		t.Errorf("LeavesOf(1) = %v, want [cse-100]", got)
	}
}

func TestOrphans(t *testing.T) {
	orphans := sample().Orphans()
	if len(orphans) != 1 || orphans[0].ID != "cse-999" {
		t.Errorf("Orphans() = %v, want [cse-999]", orphans)
	}

	h := sample()
	h.Leaves = h.Leaves[:3]
	if orphans := h.Orphans(); len(orphans) != 0 {
		t.Errorf("Orphans() = %v, want none", orphans)
	}
}

func TestTierLookups(t *testing.T) {
	h := sample()

	if i, ok := h.TierIndex("tier-2"); !ok || i != 1 {
		t.Errorf("TierIndex(tier-2) = %d, %v", i, ok)
	}
	if h.HasTier("tier-9") {
		t.Error("HasTier(tier-9) = true, want false")
	}
	ids := h.TierIDs()
	if len(ids) != 2 || ids[0] != "tier-1" || ids[1] != "tier-2" {
		t.Errorf("TierIDs() = %v", ids)
	}
	if l, ok := h.Leaf("cse-100"); !ok || l.Code != "CSE 100" {
		t.Errorf("Leaf(cse-100) = %v, %v", l, ok)
	}
	if _, ok := h.Leaf("nope"); ok {
		t.Error("Leaf(nope) should not be found")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(h *Hierarchy)
		wantCode errors.Code
	}{
		{"valid with orphan", func(h *Hierarchy) {}, ""},
		{"empty tier id", func(h *Hierarchy) { h.Tiers[0].ID = "" }, errors.ErrCodeInvalidID},
		{"duplicate tier id", func(h *Hierarchy) { h.Tiers[1].ID = "tier-1" }, errors.ErrCodeInvalidHierarchy},
		{"duplicate tier number", func(h *Hierarchy) { h.Tiers[1].Number = 1 }, errors.ErrCodeInvalidHierarchy},
		{"duplicate leaf id", func(h *Hierarchy) { h.Leaves[1].ID = "cse-12" }, errors.ErrCodeInvalidHierarchy},
		{"leaf id with space", func(h *Hierarchy) { h.Leaves[0].ID = "cse 12" }, errors.ErrCodeInvalidID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := sample()
			tt.mutate(h)
			err := h.Validate()
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("Validate() error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestDisplayTitle(t *testing.T) {
	l := Leaf{Title: "Data Structures"}
	if got := l.DisplayTitle(); got != "Data Structures" {
		t.Errorf("DisplayTitle() = %q", got)
	}
	l.FullName = "Basic Data Structures and Object-Oriented Design"
	if got := l.DisplayTitle(); got != l.FullName {
		t.Errorf("DisplayTitle() = %q, want full name", got)
	}
}
