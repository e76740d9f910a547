package render

import (
	"sort"

	"starsheet/internal/graph"
)

const (
	WarnDuplicateBlock = "duplicate_block"
)

// Report is the post-traversal integrity summary. Unreached entities and
// broken links are diagnostics, not failures: the document is complete and
// navigable, these just point at content nothing links to (or links that
// point outside the rendered set, typically test/debug events excluded
// from the entry points).
type Report struct {
	Unreached   []graph.Ref
	BrokenLinks []string
	Warnings    []graph.Warning
}

func (r *Renderer) report() *Report {
	report := &Report{Warnings: r.warnings}

	for name := range r.graph.Events {
		if graph.IsSynthetic(name) {
			// Synthetics orphaned by canonicalization are expected.
			continue
		}
		if _, ok := r.renderedEvents[name]; !ok {
			report.Unreached = append(report.Unreached, graph.Ref{Kind: graph.KindEvent, Name: name})
		}
	}
	for name := range r.graph.Groups {
		if _, ok := r.renderedGroups[name]; !ok {
			report.Unreached = append(report.Unreached, graph.Ref{Kind: graph.KindGroup, Name: name})
		}
	}
	for name := range r.graph.Ships {
		if _, ok := r.renderedShips[name]; !ok {
			report.Unreached = append(report.Unreached, graph.Ref{Kind: graph.KindShip, Name: name})
		}
	}
	sort.Slice(report.Unreached, func(i, j int) bool {
		if report.Unreached[i].Name != report.Unreached[j].Name {
			return report.Unreached[i].Name < report.Unreached[j].Name
		}
		return report.Unreached[i].Kind < report.Unreached[j].Kind
	})

	for anchor := range r.linkTargets {
		if _, ok := r.anchors[anchor]; !ok {
			report.BrokenLinks = append(report.BrokenLinks, anchor)
		}
	}
	sort.Strings(report.BrokenLinks)

	return report
}
