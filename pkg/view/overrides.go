package view

import (
	"maps"

	"github.com/matzehuels/pathgraph/pkg/errors"
	"github.com/matzehuels/pathgraph/pkg/layout"
)

// Overrides maps node ids to explicit positions. Every stored position is
// finite.
type Overrides struct {
	m map[string]layout.Point
}

// NewOverrides creates an empty store.
func NewOverrides() *Overrides {
	return &Overrides{m: make(map[string]layout.Point)}
}

// Set stores p for id. Non-finite positions are rejected and the previous
// entry, if any, is kept.
func (o *Overrides) Set(id string, p layout.Point) error {
	if err := errors.ValidatePosition(p.X, p.Y); err != nil {
		return err
	}
	o.m[id] = p
	return nil
}

// Get returns the override for id.
func (o *Overrides) Get(id string) (layout.Point, bool) {
	p, ok := o.m[id]
	return p, ok
}

// Replace swaps the whole map for a copy of m. Nothing changes if any
// position in m is non-finite.
func (o *Overrides) Replace(m map[string]layout.Point) error {
	for id, p := range m {
		if err := errors.ValidatePosition(p.X, p.Y); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPosition, err, "override for %s", id)
		}
	}
	o.m = maps.Clone(m)
	if o.m == nil {
		o.m = make(map[string]layout.Point)
	}
	return nil
}

// Clear removes every override.
func (o *Overrides) Clear() { clear(o.m) }

// Len returns the number of overrides.
func (o *Overrides) Len() int { return len(o.m) }

// Snapshot returns a copy of the stored overrides.
func (o *Overrides) Snapshot() map[string]layout.Point {
	return maps.Clone(o.m)
}
