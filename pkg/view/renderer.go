package view

import "github.com/matzehuels/pathgraph/pkg/layout"

// Renderer draws layouts. Render receives a copy the renderer may keep.
type Renderer interface {
	Render(l layout.Layout)
	FitView(opts FitOptions)
}

// FitOptions controls a fit-to-view request. Padding is a fraction of the
// layout's extent added on each side.
type FitOptions struct {
	Padding float64
	MaxZoom float64
}

// Fit settings used by Reset and Format.
var (
	ResetFit  = FitOptions{Padding: 0.1, MaxZoom: 1.5}
	FormatFit = FitOptions{Padding: 0.15, MaxZoom: 1.5}
)

// Viewport forwards fit requests to a renderer. The zero value does nothing.
type Viewport struct {
	r Renderer
}

// Fit asks the renderer to fit the current layout into view.
func (v Viewport) Fit(opts FitOptions) {
	if v.r != nil {
		v.r.FitView(opts)
	}
}

// Scheduler runs continuations after state changes have been committed.
type Scheduler interface {
	Defer(fn func())
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func(fn func())

// Defer calls f(fn).
func (f SchedulerFunc) Defer(fn func()) { f(fn) }

// Immediate runs continuations synchronously. It is the default scheduler.
var Immediate Scheduler = SchedulerFunc(func(fn func()) { fn() })
