package pipeline

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/matzehuels/pathgraph/pkg/cache"
	"github.com/matzehuels/pathgraph/pkg/errors"
	"github.com/matzehuels/pathgraph/pkg/hierarchy"
	"github.com/matzehuels/pathgraph/pkg/layout"
	"github.com/matzehuels/pathgraph/pkg/observability"
)

func testHierarchy() *hierarchy.Hierarchy {
	return &hierarchy.Hierarchy{
		RootLabel: "Software Engineering",
		Tiers: []hierarchy.Tier{
			{ID: "tier-1", Label: "Core"},
			{ID: "tier-2", Label: "Systems"},
			{ID: "tier-3", Label: "Electives"},
		},
		Leaves: []hierarchy.Leaf{
			{ID: "cs101", Code: "CS 101", Title: "Intro", Tier: 1},
			{ID: "cs102", Code: "CS 102", Title: "Data Structures", Tier: 1},
			{ID: "os", Code: "CS 301", Title: "Operating Systems", Tier: 2},
			{ID: "lost", Title: "Orphan", Tier: 9},
		},
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"dot", false},
		{"json", false},
		{"png", false},
		{"pdf", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"svg", []string{"svg"}},
		{"svg, JSON ,dot", []string{"svg", "json", "dot"}},
		{"svg,,svg", []string{"svg"}},
		{"", nil},
	}
	for _, tt := range tests {
		if got := ParseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	var o Options
	if err := o.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if o.GraphID != DefaultGraphID || o.Scale != DefaultScale || o.Logger == nil {
		t.Errorf("defaults not applied: %+v", o)
	}
	if !reflect.DeepEqual(o.Formats, []string{FormatSVG}) {
		t.Errorf("Formats = %v", o.Formats)
	}

	bad := Options{Formats: []string{"gif"}}
	if err := bad.Validate(); err == nil {
		t.Error("invalid format accepted")
	}
}

func TestOptionsKeyOpts(t *testing.T) {
	o := Options{Format: true, Scale: 3}
	o.SetDefaults()
	if k := o.LayoutKeyOpts([]string{"tier-1"}); k.Mode != "formatted" || k.GraphID != DefaultGraphID {
		t.Errorf("LayoutKeyOpts = %+v", k)
	}
	if k := o.ArtifactKeyOpts(FormatSVG); k.Scale != 0 {
		t.Errorf("svg key carries scale: %+v", k)
	}
	if k := o.ArtifactKeyOpts(FormatPNG); k.Scale != 3 {
		t.Errorf("png key scale = %v", k.Scale)
	}
}

func TestExpandedTiers(t *testing.T) {
	h := testHierarchy()
	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{"None", Options{}, nil},
		{"CatalogOrder", Options{Expand: []string{"tier-3", "tier-1"}}, []string{"tier-1", "tier-3"}},
		{"Duplicates", Options{Expand: []string{"tier-2", "tier-2"}}, []string{"tier-2"}},
		{"All", Options{ExpandAll: true, Expand: []string{"tier-1"}}, []string{"tier-1", "tier-2", "tier-3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandedTiers(h, tt.opts)
			if err != nil {
				t.Fatalf("ExpandedTiers: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := ExpandedTiers(h, Options{Expand: []string{"tier-7"}}); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("unknown tier err = %v", err)
	}
}

func TestBuildLayout(t *testing.T) {
	h := testHierarchy()

	l, err := BuildLayout(h, Options{Expand: []string{"tier-1"}})
	if err != nil {
		t.Fatalf("BuildLayout: %v", err)
	}
	want := layout.Compute(h, layout.Input{GraphID: DefaultGraphID, Expanded: map[string]bool{"tier-1": true}})
	if !reflect.DeepEqual(l, want) {
		t.Errorf("BuildLayout differs from Compute")
	}

	l, err = BuildLayout(h, Options{ExpandAll: true, Format: true, GraphID: "x"})
	if err != nil {
		t.Fatalf("BuildLayout: %v", err)
	}
	if l.Mode != layout.Formatted || l.GraphID != "x" {
		t.Errorf("mode %v, graph %q", l.Mode, l.GraphID)
	}
	if l.Count(layout.KindLeaf) != 3 {
		t.Errorf("leaves = %d, want 3 (orphan excluded)", l.Count(layout.KindLeaf))
	}
	tier := l.Nodes[1]
	if want := layout.TierSlot(0, 3, layout.Formatted.Spacing()); tier.Position != want {
		t.Errorf("tier-1 at %v, want %v", tier.Position, want)
	}
}

func TestRenderFromLayout(t *testing.T) {
	l, _ := BuildLayout(testHierarchy(), Options{Expand: []string{"tier-1"}})
	artifacts, err := RenderFromLayout(context.Background(), l, Options{Formats: []string{FormatJSON, FormatDOT, FormatSVG}})
	if err != nil {
		t.Fatalf("RenderFromLayout: %v", err)
	}
	if len(artifacts) != 3 {
		t.Fatalf("artifacts = %d", len(artifacts))
	}
	if _, err := layout.Unmarshal(artifacts[FormatJSON]); err != nil {
		t.Errorf("json artifact: %v", err)
	}
	if !strings.HasPrefix(string(artifacts[FormatDOT]), "digraph") {
		t.Errorf("dot artifact: %.40s", artifacts[FormatDOT])
	}
	if !bytes.Contains(artifacts[FormatSVG], []byte("<svg")) {
		t.Errorf("svg artifact: %.40s", artifacts[FormatSVG])
	}

	if _, err := RenderFromLayout(context.Background(), l, Options{Formats: []string{"gif"}}); err == nil {
		t.Error("invalid format rendered")
	}
}

type cacheCounter struct {
	observability.NoopCacheHooks
	mu                sync.Mutex
	hits, misses, set int
}

func (c *cacheCounter) OnCacheHit(context.Context, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hits++
}

func (c *cacheCounter) OnCacheMiss(context.Context, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.misses++
}

func (c *cacheCounter) OnCacheSet(context.Context, string, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set++
}

func TestRunnerCaching(t *testing.T) {
	counter := &cacheCounter{}
	observability.SetCacheHooks(counter)
	defer observability.Reset()

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	defer r.Close()

	ctx := context.Background()
	h := testHierarchy()
	opts := Options{Expand: []string{"tier-1"}, Formats: []string{FormatJSON, FormatDOT}}

	first, err := r.Execute(ctx, h, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Error("cold cache reported a hit")
	}
	if first.Stats.Tiers != 3 || first.Stats.Leaves != 2 || first.Stats.Orphans != 1 || first.Stats.Edges != 5 {
		t.Errorf("stats = %+v", first.Stats)
	}

	second, err := r.Execute(ctx, h, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("warm cache missed: %+v", second.CacheInfo)
	}
	if !reflect.DeepEqual(first.Layout, second.Layout) || !reflect.DeepEqual(first.Artifacts, second.Artifacts) {
		t.Error("cached results differ")
	}

	refreshed, err := r.Execute(ctx, h, Options{Expand: []string{"tier-1"}, Formats: []string{FormatJSON, FormatDOT}, Refresh: true})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if refreshed.CacheInfo.LayoutHit || refreshed.CacheInfo.RenderHit {
		t.Error("refresh read from cache")
	}

	counter.mu.Lock()
	defer counter.mu.Unlock()
	// run 1: layout miss, first artifact miss; run 2: layout hit, two artifact hits
	if counter.hits != 3 || counter.misses != 2 {
		t.Errorf("hits = %d, misses = %d", counter.hits, counter.misses)
	}
	// layout + two artifacts, written by runs 1 and 3
	if counter.set != 6 {
		t.Errorf("sets = %d, want 6", counter.set)
	}
}

func TestRunnerDifferentOptionsMiss(t *testing.T) {
	fc, _ := cache.NewFileCache(t.TempDir())
	r := NewRunner(fc, cache.NewScopedKeyer(nil, "test:"), nil)
	ctx := context.Background()
	h := testHierarchy()

	if _, err := r.Execute(ctx, h, Options{Formats: []string{FormatJSON}}); err != nil {
		t.Fatal(err)
	}
	res, err := r.Execute(ctx, h, Options{Format: true, Formats: []string{FormatJSON}})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.LayoutHit {
		t.Error("formatted layout served from compact cache entry")
	}
	if res.Layout.Mode != layout.Formatted {
		t.Errorf("mode = %v", res.Layout.Mode)
	}
}

func TestRunnerUnknownTier(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), testHierarchy(), Options{Expand: []string{"nope"}})
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}
