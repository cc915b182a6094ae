package hierarchy

import (
	"regexp"
	"strconv"

	"github.com/matzehuels/pathgraph/pkg/errors"
)

// Hierarchy is the root -> tier -> leaf catalog a graph is drawn from.
type Hierarchy struct {
	RootLabel  string            `toml:"root_label" json:"root_label"`
	Tiers      []Tier            `toml:"tiers" json:"tiers"`
	Leaves     []Leaf            `toml:"leaves" json:"leaves"`
	TierIntros map[string]string `toml:"tier_intros,omitempty" json:"tier_intros,omitempty"`
}

// Tier is a top-level grouping directly under the root.
type Tier struct {
	ID     string `toml:"id" json:"id"`
	Label  string `toml:"label" json:"label"`
	Icon   string `toml:"icon,omitempty" json:"icon,omitempty"`
	Number int    `toml:"number,omitempty" json:"number,omitempty"` // 0 = derive from ID or position
}

// Leaf is one recommended item. Tier references a tier by number.
type Leaf struct {
	ID            string   `toml:"id" json:"id"`
	Code          string   `toml:"code" json:"code"`
	Title         string   `toml:"title" json:"title"`
	FullName      string   `toml:"full_name,omitempty" json:"full_name,omitempty"`
	Description   string   `toml:"description,omitempty" json:"description,omitempty"`
	Tier          int      `toml:"tier" json:"tier"`
	Resources     []string `toml:"resources,omitempty" json:"resources,omitempty"`
	Prerequisites []string `toml:"prerequisites,omitempty" json:"prerequisites,omitempty"`
	Details       *Details `toml:"details,omitempty" json:"details,omitempty"`
}

// Details is the optional long-form card shown for a selected leaf.
type Details struct {
	Credits          int      `toml:"credits,omitempty" json:"credits,omitempty"`
	Prerequisites    string   `toml:"prerequisites,omitempty" json:"prerequisites,omitempty"`
	LearningOutcomes []string `toml:"learning_outcomes,omitempty" json:"learning_outcomes,omitempty"`
	Topics           []string `toml:"topics,omitempty" json:"topics,omitempty"`
	CareerRelevance  string   `toml:"career_relevance,omitempty" json:"career_relevance,omitempty"`
	Applications     []string `toml:"applications,omitempty" json:"applications,omitempty"`
	Videos           []string `toml:"videos,omitempty" json:"videos,omitempty"`
	Websites         []string `toml:"websites,omitempty" json:"websites,omitempty"`
	Tools            []string `toml:"tools,omitempty" json:"tools,omitempty"`
	Notes            string   `toml:"notes,omitempty" json:"notes,omitempty"`
}

// DisplayTitle returns the full name if set, otherwise the short title.
func (l *Leaf) DisplayTitle() string {
	if l.FullName != "" {
		return l.FullName
	}
	return l.Title
}

var tierIDRe = regexp.MustCompile(`^tier-(\d+)$`)

// NumberOf returns the tier number of the tier at index i: its explicit
// number, else N from a "tier-N" id, else i+1 or the next number above it
// that no other tier claims.
func (h *Hierarchy) NumberOf(i int) int {
	return h.numbers()[i]
}

// claimedNumber returns the number a tier states or encodes in its id.
func claimedNumber(t Tier) (int, bool) {
	if t.Number > 0 {
		return t.Number, true
	}
	if m := tierIDRe.FindStringSubmatch(t.ID); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return n, true
		}
	}
	return 0, false
}

func (h *Hierarchy) numbers() []int {
	nums := make([]int, len(h.Tiers))
	used := make(map[int]bool, len(h.Tiers))
	for i, t := range h.Tiers {
		if n, ok := claimedNumber(t); ok {
			nums[i] = n
			used[n] = true
		}
	}
	for i := range h.Tiers {
		if nums[i] > 0 {
			continue
		}
		n := i + 1
		for used[n] {
			n++
		}
		nums[i] = n
		used[n] = true
	}
	return nums
}

// TierIndex returns the catalog position of the tier with the given id.
func (h *Hierarchy) TierIndex(id string) (int, bool) {
	for i := range h.Tiers {
		if h.Tiers[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

// HasTier reports whether id names a tier of h.
func (h *Hierarchy) HasTier(id string) bool {
	_, ok := h.TierIndex(id)
	return ok
}

// TierIDs returns the tier ids in catalog order.
func (h *Hierarchy) TierIDs() []string {
	ids := make([]string, len(h.Tiers))
	for i := range h.Tiers {
		ids[i] = h.Tiers[i].ID
	}
	return ids
}

// LeavesOf returns the leaves of the tier at index i in catalog order.
func (h *Hierarchy) LeavesOf(i int) []Leaf {
	n := h.NumberOf(i)
	var out []Leaf
	for _, l := range h.Leaves {
		if l.Tier == n {
			out = append(out, l)
		}
	}
	return out
}

// Leaf looks up a leaf by id.
func (h *Hierarchy) Leaf(id string) (Leaf, bool) {
	for _, l := range h.Leaves {
		if l.ID == id {
			return l, true
		}
	}
	return Leaf{}, false
}

// Orphans returns the leaves whose tier number matches no tier, in catalog order.
func (h *Hierarchy) Orphans() []Leaf {
	known := make(map[int]bool, len(h.Tiers))
	for _, n := range h.numbers() {
		known[n] = true
	}
	var out []Leaf
	for _, l := range h.Leaves {
		if !known[l.Tier] {
			out = append(out, l)
		}
	}
	return out
}

// Validate checks structural invariants: valid and unique tier ids, unique
// tier numbers, valid and unique leaf ids. Orphan leaves are not an error.
func (h *Hierarchy) Validate() error {
	seenTier := make(map[string]bool, len(h.Tiers))
	seenNum := make(map[int]string, len(h.Tiers))
	nums := h.numbers()
	for i, t := range h.Tiers {
		if err := errors.ValidateID("tier", t.ID); err != nil {
			return err
		}
		if seenTier[t.ID] {
			return errors.New(errors.ErrCodeInvalidHierarchy, "duplicate tier id %q", t.ID)
		}
		seenTier[t.ID] = true

		n := nums[i]
		if prev, ok := seenNum[n]; ok {
			return errors.New(errors.ErrCodeInvalidHierarchy, "tiers %q and %q share tier number %d", prev, t.ID, n)
		}
		seenNum[n] = t.ID
	}

	seenLeaf := make(map[string]bool, len(h.Leaves))
	for _, l := range h.Leaves {
		if err := errors.ValidateID("leaf", l.ID); err != nil {
			return err
		}
		if seenLeaf[l.ID] {
			return errors.New(errors.ErrCodeInvalidHierarchy, "duplicate leaf id %q", l.ID)
		}
		seenLeaf[l.ID] = true
	}
	return nil
}
