// Package index flattens a build result into rows for the persistent
// store: one entity row per event, group and ship, one edge row per
// textual reference. The rows are a queryable snapshot of a single run.
package index

import (
	"context"
	"sort"
	"strings"

	"starsheet/internal/graph"
	"starsheet/internal/pipeline"
	"starsheet/internal/render"
	"starsheet/internal/store"
)

// Snapshot is the flattened form of one build, ordered deterministically
// so repeated runs over the same data write identical rows.
type Snapshot struct {
	Entities []store.Entity
	Edges    []store.Edge
}

func Build(res *pipeline.Result) *Snapshot {
	g := res.Graph
	pinnedEvents, pinnedGroups := graph.Pinned(g, res.Roots)

	snap := &Snapshot{}

	for name, event := range g.Events {
		_, root := res.Roots[name]
		_, pinned := pinnedEvents[name]
		snap.Entities = append(snap.Entities, store.Entity{
			Name:      name,
			Kind:      graph.KindEvent.String(),
			Anchor:    render.AnchorID(graph.KindEvent, name),
			InDegree:  res.Counts.Events[name],
			Root:      root,
			Pinned:    pinned,
			Synthetic: graph.IsSynthetic(name),
			Body:      eventBody(event),
		})

		for _, choice := range event.Choices {
			if choice.Target == "" {
				continue
			}
			if ref, err := g.Resolve(choice.Target, graph.ContextTopLevel); err == nil {
				snap.Edges = append(snap.Edges, edge(graph.KindEvent, name, ref, "choice", 1))
			}
		}
		if event.Fight != "" {
			ref := graph.Ref{Kind: graph.KindShip, Name: event.Fight}
			snap.Edges = append(snap.Edges, edge(graph.KindEvent, name, ref, "fight", 1))
		}
		for _, outcome := range event.Outcomes {
			if outcome.Link == nil || outcome.Link.Kind == graph.KindShip {
				continue
			}
			snap.Edges = append(snap.Edges, edge(graph.KindEvent, name, *outcome.Link, "quest", 1))
		}
	}

	for name, group := range g.Groups {
		_, pinned := pinnedGroups[name]
		snap.Entities = append(snap.Entities, store.Entity{
			Name:     name,
			Kind:     graph.KindGroup.String(),
			Anchor:   render.AnchorID(graph.KindGroup, name),
			InDegree: res.Counts.Groups[name],
			Pinned:   pinned,
		})
		for _, c := range group.Cases {
			if ref, err := g.Resolve(c.Target, graph.ContextInsideGroup); err == nil {
				snap.Edges = append(snap.Edges, edge(graph.KindGroup, name, ref, "case", c.Weight))
			}
		}
	}

	for name, ship := range g.Ships {
		snap.Entities = append(snap.Entities, store.Entity{
			Name:     name,
			Kind:     graph.KindShip.String(),
			Anchor:   render.AnchorID(graph.KindShip, name),
			InDegree: res.Counts.Ships[name],
		})
		for _, slot := range ship.Slots() {
			if ref, err := g.Resolve(slot.Target, graph.ContextTopLevel); err == nil {
				snap.Edges = append(snap.Edges, edge(graph.KindShip, name, ref, "slot", 1))
			}
		}
	}

	sort.Slice(snap.Entities, func(i, j int) bool {
		a, b := snap.Entities[i], snap.Entities[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.Kind < b.Kind
	})
	sort.Slice(snap.Edges, func(i, j int) bool {
		a, b := snap.Edges[i], snap.Edges[j]
		if a.SrcName != b.SrcName {
			return a.SrcName < b.SrcName
		}
		if a.SrcKind != b.SrcKind {
			return a.SrcKind < b.SrcKind
		}
		if a.DstName != b.DstName {
			return a.DstName < b.DstName
		}
		return a.EdgeType < b.EdgeType
	})

	return snap
}

// Write replaces the store contents with the snapshot.
func Write(ctx context.Context, st store.Store, snap *Snapshot) error {
	if err := st.EnsureSchema(ctx); err != nil {
		return err
	}
	if err := st.Reset(ctx); err != nil {
		return err
	}
	for _, e := range snap.Entities {
		if err := st.UpsertEntity(ctx, e); err != nil {
			return err
		}
	}
	for _, e := range snap.Edges {
		if err := st.InsertEdge(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func edge(srcKind graph.Kind, srcName string, dst graph.Ref, edgeType string, weight int) store.Edge {
	return store.Edge{
		SrcKind:  srcKind.String(),
		SrcName:  srcName,
		DstKind:  dst.Kind.String(),
		DstName:  dst.Name,
		EdgeType: edgeType,
		Weight:   weight,
	}
}

// eventBody is the searchable text of an event: its narrative text, its
// effect lines, and its choice labels, with markup stripped.
func eventBody(e *graph.Event) string {
	var parts []string
	if e.Text != "" {
		parts = append(parts, stripTags(e.Text))
	}
	for _, outcome := range e.Outcomes {
		html := outcome.HTML
		if outcome.Link != nil {
			html = strings.Replace(html, "%s", outcome.Link.Name, 1)
		}
		parts = append(parts, stripTags(html))
	}
	for _, choice := range e.Choices {
		parts = append(parts, stripTags(choice.Label))
	}
	return strings.Join(parts, "\n")
}

func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
