// Package hierarchy defines the static input of a career-path graph: a root
// label, an ordered list of tiers, and an ordered list of leaf items, each
// tagged with exactly one tier by tier number.
//
// # File Format
//
// Hierarchies are loaded from TOML or JSON, chosen by file extension:
//
//	root_label = "SWE"
//
//	[[tiers]]
//	id    = "tier-1"
//	label = "TIER 1: MUST-TAKE"
//	icon  = "🟢"
//
//	[[leaves]]
//	id    = "cse-12"
//	code  = "CSE 12"
//	title = "Basic Data Structures"
//	tier  = 1
//
// A tier's number is its explicit "number" field, else the N of an id of the
// form "tier-N", else its 1-based position in the tier list.
//
// # Orphans
//
// A leaf whose tier number matches no tier is an orphan. Orphans are not an
// error: they are reported by [Hierarchy.Orphans] and never rendered.
//
// # Concurrency
//
// A Hierarchy is immutable after [Load] or [Parse] and safe for concurrent reads.
package hierarchy
