package graph

import "fmt"

// Counts holds the in-degree of every entity: how many distinct edges in
// the whole graph reference it. Each textual edge is one increment, even
// when two edges from the same parent point at the same target.
type Counts struct {
	Events map[string]int
	Groups map[string]int
	Ships  map[string]int
}

func (c *Counts) bump(ref Ref) {
	switch ref.Kind {
	case KindEvent:
		c.Events[ref.Name]++
	case KindGroup:
		c.Groups[ref.Name]++
	case KindShip:
		c.Ships[ref.Name]++
	}
}

// CountRefs computes in-degrees over the built graph. Choice targets and
// ship outcome slots resolve top-level, group cases inside-group; a target
// that resolves to neither namespace is fatal, so rendering never meets a
// dangling reference.
func CountRefs(g *Graph) (*Counts, error) {
	counts := &Counts{
		Events: make(map[string]int, len(g.Events)),
		Groups: make(map[string]int, len(g.Groups)),
		Ships:  make(map[string]int, len(g.Ships)),
	}
	for name := range g.Events {
		counts.Events[name] = 0
	}
	for name := range g.Groups {
		counts.Groups[name] = 0
	}
	for name := range g.Ships {
		counts.Ships[name] = 0
	}

	for _, event := range g.Events {
		for _, choice := range event.Choices {
			if choice.Target == "" {
				continue
			}
			ref, err := g.Resolve(choice.Target, ContextTopLevel)
			if err != nil {
				return nil, fmt.Errorf("event %s choice: %w", event.Name, err)
			}
			counts.bump(ref)
		}
		if event.Fight != "" {
			if _, ok := g.Ships[event.Fight]; !ok {
				return nil, fmt.Errorf("event %s: %w: ship %q", event.Name, ErrUnresolvable, event.Fight)
			}
			counts.Ships[event.Fight]++
		}
	}

	for _, group := range g.Groups {
		for _, c := range group.Cases {
			ref, err := g.Resolve(c.Target, ContextInsideGroup)
			if err != nil {
				return nil, fmt.Errorf("eventList %s: %w", group.Name, err)
			}
			counts.bump(ref)
		}
	}

	for _, ship := range g.Ships {
		for _, slot := range ship.Slots() {
			ref, err := g.Resolve(slot.Target, ContextTopLevel)
			if err != nil {
				return nil, fmt.Errorf("ship %s: %w", ship.Name, err)
			}
			counts.bump(ref)
		}
	}

	return counts, nil
}
