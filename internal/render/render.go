// Package render turns the built entity graph into one cross-linked
// document. Every reference is either inlined in place or becomes a link
// to the target's single canonical anchor; the decision depends on
// in-degree and pinning, never on where the reference occurs.
package render

import (
	"fmt"
	"sort"

	"starsheet/internal/graph"
)

// Sink receives the ordered stream of block and link events. The HTML
// sink is the only implementation shipped, but nothing in the traversal
// knows about markup.
type Sink interface {
	Prologue()
	SectionHeading(title string)
	Anchor(kind graph.Kind, name string)
	BeginIndent()
	EndIndent()
	EventText(markup string, inner bool)
	BeginOutcomes()
	Outcome(markup string)
	EndOutcomes()
	BeginChoices()
	BeginChoice(label string, blue bool)
	EndChoice()
	EndChoices()
	BeginCases()
	Case(weight, total int)
	EndCases()
	BeginFight()
	BeginSlot(label string)
	EndSlot()
	EndFight()
	GoTo(kind graph.Kind, name string)
	InlineLink(kind graph.Kind, name string) string
	Epilogue()
}

// AnchorID is the canonical anchor for an entity. Groups keep the
// historical "list" prefix so existing bookmarks stay valid.
func AnchorID(kind graph.Kind, name string) string {
	prefix := "event"
	switch kind {
	case graph.KindGroup:
		prefix = "list"
	case graph.KindShip:
		prefix = "ship"
	}
	return prefix + "-" + name
}

type Renderer struct {
	graph        *graph.Graph
	counts       *graph.Counts
	roots        map[string]struct{}
	pinnedEvents map[string]struct{}
	pinnedGroups map[string]struct{}
	sink         Sink

	renderedEvents map[string]struct{}
	renderedGroups map[string]struct{}
	renderedShips  map[string]struct{}
	linkTargets    map[string]struct{}
	anchors        map[string]struct{}
	warnings       []graph.Warning
}

func New(g *graph.Graph, counts *graph.Counts, roots map[string]struct{}, sink Sink) *Renderer {
	pinnedEvents, pinnedGroups := graph.Pinned(g, roots)
	return &Renderer{
		graph:          g,
		counts:         counts,
		roots:          roots,
		pinnedEvents:   pinnedEvents,
		pinnedGroups:   pinnedGroups,
		sink:           sink,
		renderedEvents: make(map[string]struct{}),
		renderedGroups: make(map[string]struct{}),
		renderedShips:  make(map[string]struct{}),
		linkTargets:    make(map[string]struct{}),
		anchors:        make(map[string]struct{}),
	}
}

// canInlineEvent: inline when this is the only reference and nothing pins
// the event to a stable anchor. Synthetic events are always inlined; they
// exist only at their single use site and canonicalization may drop that
// site entirely.
func (r *Renderer) canInlineEvent(name string) bool {
	if graph.IsSynthetic(name) {
		return true
	}
	if _, pinned := r.pinnedEvents[name]; pinned {
		return false
	}
	return r.counts.Events[name] == 1
}

func (r *Renderer) canInlineGroup(name string) bool {
	if _, pinned := r.pinnedGroups[name]; pinned {
		return false
	}
	return r.counts.Groups[name] == 1
}

// Run performs the single render traversal and returns the integrity
// report. Top-level blocks come out in alphabetical order so the output
// is independent of input file ordering.
func (r *Renderer) Run() (*Report, error) {
	r.sink.Prologue()

	type item struct {
		name string
		kind graph.Kind
	}
	items := make([]item, 0, len(r.graph.Events)+len(r.graph.Groups))
	for name := range r.graph.Events {
		items = append(items, item{name, graph.KindEvent})
	}
	for name := range r.graph.Groups {
		items = append(items, item{name, graph.KindGroup})
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].name != items[j].name {
			return items[i].name < items[j].name
		}
		return items[i].kind < items[j].kind
	})

	r.sink.SectionHeading("Events")
	for _, it := range items {
		switch it.kind {
		case graph.KindEvent:
			if r.canInlineEvent(it.name) {
				continue
			}
			r.anchor(graph.KindEvent, it.name)
			r.sink.BeginIndent()
			if err := r.renderEvent(it.name); err != nil {
				return nil, err
			}
			r.sink.EndIndent()
		case graph.KindGroup:
			if r.canInlineGroup(it.name) {
				continue
			}
			r.anchor(graph.KindGroup, it.name)
			r.sink.BeginIndent()
			if err := r.renderGroup(it.name); err != nil {
				return nil, err
			}
			r.sink.EndIndent()
		}
	}

	ships := make([]string, 0, len(r.graph.Ships))
	for name := range r.graph.Ships {
		ships = append(ships, name)
	}
	sort.Strings(ships)

	r.sink.SectionHeading("Fights")
	for _, name := range ships {
		r.anchor(graph.KindShip, name)
		r.sink.BeginIndent()
		if err := r.renderShip(name); err != nil {
			return nil, err
		}
		r.sink.EndIndent()
	}

	r.sink.Epilogue()
	return r.report(), nil
}

func (r *Renderer) anchor(kind graph.Kind, name string) {
	r.anchors[AnchorID(kind, name)] = struct{}{}
	r.sink.Anchor(kind, name)
}

// link registers the target anchor and returns the markup fragment for an
// in-text reference.
func (r *Renderer) link(ref graph.Ref) string {
	r.linkTargets[AnchorID(ref.Kind, ref.Name)] = struct{}{}
	return r.sink.InlineLink(ref.Kind, ref.Name)
}

// goTo renders a reference: inline the target's full content when it is
// this reference's private subtree, otherwise emit a link and stop.
func (r *Renderer) goTo(name string, ctx graph.Context) error {
	ref, err := r.graph.Resolve(name, ctx)
	if err != nil {
		return err
	}
	switch ref.Kind {
	case graph.KindEvent:
		if r.canInlineEvent(ref.Name) {
			return r.renderEvent(ref.Name)
		}
	case graph.KindGroup:
		if r.canInlineGroup(ref.Name) {
			return r.renderGroup(ref.Name)
		}
	}
	r.linkTargets[AnchorID(ref.Kind, ref.Name)] = struct{}{}
	r.sink.GoTo(ref.Kind, ref.Name)
	return nil
}

func (r *Renderer) renderEvent(name string) error {
	event, ok := r.graph.Events[name]
	if !ok {
		return fmt.Errorf("render: %w: event %q", graph.ErrUnresolvable, name)
	}
	if _, dupe := r.renderedEvents[name]; dupe {
		r.warnings = append(r.warnings, graph.Warning{
			Code:    WarnDuplicateBlock,
			Message: fmt.Sprintf("event %s rendered more than once", name),
		})
	}
	r.renderedEvents[name] = struct{}{}

	if event.Text != "" {
		// Responses without a real decision hide their flavor text
		// behind the settings toggle to reduce clutter.
		_, isRoot := r.roots[name]
		inner := !isRoot && len(event.Choices) < 2
		r.sink.EventText(event.Text, inner)
	}

	if len(event.Outcomes) > 0 {
		r.sink.BeginOutcomes()
		for _, outcome := range event.Outcomes {
			markup := outcome.HTML
			if outcome.Link != nil {
				markup = fmt.Sprintf(outcome.HTML, r.link(*outcome.Link))
			}
			r.sink.Outcome(markup)
		}
		r.sink.EndOutcomes()
	}

	if len(event.Choices) > 0 {
		r.sink.BeginChoices()
		for _, choice := range event.Choices {
			r.sink.BeginChoice(choice.Label, choice.Blue)
			if choice.Target != "" {
				if err := r.goTo(choice.Target, graph.ContextTopLevel); err != nil {
					return err
				}
			}
			r.sink.EndChoice()
		}
		r.sink.EndChoices()
	}

	return nil
}

func (r *Renderer) renderGroup(name string) error {
	group, ok := r.graph.Groups[name]
	if !ok {
		return fmt.Errorf("render: %w: eventList %q", graph.ErrUnresolvable, name)
	}
	if _, dupe := r.renderedGroups[name]; dupe {
		r.warnings = append(r.warnings, graph.Warning{
			Code:    WarnDuplicateBlock,
			Message: fmt.Sprintf("eventList %s rendered more than once", name),
		})
	}
	r.renderedGroups[name] = struct{}{}

	// A single case is a certainty, not a roll; render it bare.
	if len(group.Cases) == 1 {
		return r.goTo(group.Cases[0].Target, graph.ContextInsideGroup)
	}

	total := group.TotalWeight()
	r.sink.BeginCases()
	for _, c := range group.Cases {
		r.sink.Case(c.Weight, total)
		if err := r.goTo(c.Target, graph.ContextInsideGroup); err != nil {
			return err
		}
	}
	r.sink.EndCases()
	return nil
}

func (r *Renderer) renderShip(name string) error {
	ship, ok := r.graph.Ships[name]
	if !ok {
		return fmt.Errorf("render: %w: ship %q", graph.ErrUnresolvable, name)
	}
	r.renderedShips[name] = struct{}{}

	r.sink.BeginFight()
	for _, slot := range ship.Slots() {
		r.sink.BeginSlot(slot.Label)
		if err := r.goTo(slot.Target, graph.ContextTopLevel); err != nil {
			return err
		}
		r.sink.EndSlot()
	}
	r.sink.EndFight()
	return nil
}
