package pipeline

import (
	"github.com/matzehuels/pathgraph/pkg/errors"
	"github.com/matzehuels/pathgraph/pkg/hierarchy"
	"github.com/matzehuels/pathgraph/pkg/layout"
	"github.com/matzehuels/pathgraph/pkg/view"
)

// ExpandedTiers resolves Expand and ExpandAll against h, in catalog order.
// Unknown tier ids are an error here, unlike in interactive use, because they
// almost always mean a typo on the command line.
func ExpandedTiers(h *hierarchy.Hierarchy, opts Options) ([]string, error) {
	if opts.ExpandAll {
		return h.TierIDs(), nil
	}
	want := make(map[string]bool, len(opts.Expand))
	for _, id := range opts.Expand {
		if !h.HasTier(id) {
			return nil, errors.New(errors.ErrCodeNotFound, "unknown tier %q (have %v)", id, h.TierIDs())
		}
		want[id] = true
	}
	var out []string
	for _, id := range h.TierIDs() {
		if want[id] {
			out = append(out, id)
		}
	}
	return out, nil
}

// BuildLayout loads h into a fresh view model, expands the requested tiers,
// optionally formats, and returns what the graph displays.
func BuildLayout(h *hierarchy.Hierarchy, opts Options) (layout.Layout, error) {
	opts.SetDefaults()
	expanded, err := ExpandedTiers(h, opts)
	if err != nil {
		return layout.Layout{}, err
	}

	g, err := view.New(h, view.WithID(opts.GraphID), view.WithLogger(opts.Logger))
	if err != nil {
		return layout.Layout{}, err
	}
	for _, id := range expanded {
		g.Toggle(id)
	}
	if opts.Format {
		<-g.Format()
	}
	return g.Displayed(), nil
}
