package view

// ExpansionSet is the set of expanded tier ids of one graph. Only tiers it
// was created with can be members.
type ExpansionSet struct {
	order []string
	known map[string]bool
	set   map[string]bool
}

// NewExpansionSet creates an empty set over the given tier ids.
func NewExpansionSet(tierIDs []string) *ExpansionSet {
	s := &ExpansionSet{
		order: append([]string(nil), tierIDs...),
		known: make(map[string]bool, len(tierIDs)),
		set:   make(map[string]bool),
	}
	for _, id := range tierIDs {
		s.known[id] = true
	}
	return s
}

// Toggle inserts id if absent and removes it if present. Unknown ids are
// ignored; ok reports whether id is a known tier.
func (s *ExpansionSet) Toggle(id string) (expanded, ok bool) {
	if !s.known[id] {
		return false, false
	}
	if s.set[id] {
		delete(s.set, id)
		return false, true
	}
	s.set[id] = true
	return true, true
}

// IsExpanded reports whether id is in the set.
func (s *ExpansionSet) IsExpanded(id string) bool {
	return s.set[id]
}

// IDs returns the members in tier catalog order.
func (s *ExpansionSet) IDs() []string {
	var out []string
	for _, id := range s.order {
		if s.set[id] {
			out = append(out, id)
		}
	}
	return out
}

// Len returns the number of expanded tiers.
func (s *ExpansionSet) Len() int { return len(s.set) }

// Clear collapses every tier.
func (s *ExpansionSet) Clear() {
	clear(s.set)
}
