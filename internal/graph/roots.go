package graph

import (
	"fmt"

	"starsheet/internal/parser"
)

// ResolveRoots marks the entry-point events. A name that already denotes
// an event becomes a root directly; a name that denotes a group marks the
// group's case targets instead, recursively; roots are always individual
// events, groups are only ever reached through their cases. Event priority
// here is deliberate: an entry point that exists as an event IS that
// event, whatever else shares the name.
func ResolveRoots(g *Graph, names []string) (map[string]struct{}, error) {
	roots := make(map[string]struct{})
	visitedGroups := make(map[string]struct{})

	var add func(name string) error
	add = func(name string) error {
		if _, ok := g.Events[name]; ok {
			roots[name] = struct{}{}
			return nil
		}
		if group, ok := g.Groups[name]; ok {
			if _, seen := visitedGroups[name]; seen {
				return nil
			}
			visitedGroups[name] = struct{}{}
			for _, c := range group.Cases {
				if err := add(c.Target); err != nil {
					return err
				}
			}
			return nil
		}
		return fmt.Errorf("entry point: %w: %q", ErrUnresolvable, name)
	}

	for _, name := range names {
		if err := add(name); err != nil {
			return nil, err
		}
	}
	return roots, nil
}

// Pinned returns the entities that must never be inlined regardless of
// in-degree: the roots plus every quest marker target.
func Pinned(g *Graph, roots map[string]struct{}) (events, groups map[string]struct{}) {
	events = make(map[string]struct{}, len(roots)+len(g.QuestEvents))
	for name := range roots {
		events[name] = struct{}{}
	}
	for name := range g.QuestEvents {
		events[name] = struct{}{}
	}
	groups = make(map[string]struct{}, len(g.QuestGroups))
	for name := range g.QuestGroups {
		groups[name] = struct{}{}
	}
	return events, groups
}

// SectorRoots extracts entry-point names from sector description files
// (per-sector start events and event pools) and boss data files (every
// top-level event). These join the config-declared entry points.
func SectorRoots(sectorDocs, bossDocs []*parser.Document) []string {
	var names []string
	for _, doc := range sectorDocs {
		for _, sector := range doc.TopLevel("sectorDescription") {
			if start := sector.Find("startEvent"); start != nil && start.Text != "" {
				names = append(names, start.Text)
			}
			for _, pool := range sector.FindAll("event") {
				if name := pool.Attr("name"); name != "" {
					names = append(names, name)
				}
			}
		}
	}
	for _, doc := range bossDocs {
		for _, event := range doc.TopLevel("event") {
			if name := event.Attr("name"); name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}
