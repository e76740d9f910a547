package graph

import (
	"errors"
	"fmt"
	"strings"
)

// SyntheticPrefix starts every generated name for unnamed nested events.
// Real content names are uppercase identifiers, so the namespaces cannot
// collide.
const SyntheticPrefix = "evt-"

var ErrDuplicateName = errors.New("duplicate name")

// Graph is the entity registry: three independent name→entity namespaces,
// the pre-scanned name sets used to classify references before every
// entity is built, and the quest-target sets collected while building.
// It is assembled once by the Builder and read-only afterwards.
type Graph struct {
	Events map[string]*Event
	Groups map[string]*Group
	Ships  map[string]*Ship

	// Declared names, collected ahead of building so a reference can be
	// classified even when its target has not been built yet.
	EventNames map[string]struct{}
	GroupNames map[string]struct{}
	ShipNames  map[string]struct{}

	// Names that appear as quest marker targets.
	QuestEvents map[string]struct{}
	QuestGroups map[string]struct{}

	anon int
}

func New() *Graph {
	return &Graph{
		Events:      make(map[string]*Event),
		Groups:      make(map[string]*Group),
		Ships:       make(map[string]*Ship),
		EventNames:  make(map[string]struct{}),
		GroupNames:  make(map[string]struct{}),
		ShipNames:   make(map[string]struct{}),
		QuestEvents: make(map[string]struct{}),
		QuestGroups: make(map[string]struct{}),
	}
}

// genEventName draws the next synthetic name for an unnamed nested event.
func (g *Graph) genEventName() string {
	g.anon++
	return fmt.Sprintf("%s%d", SyntheticPrefix, g.anon)
}

// IsSynthetic reports whether a name was generated for an unnamed event.
func IsSynthetic(name string) bool {
	return strings.HasPrefix(name, SyntheticPrefix)
}

func (g *Graph) addEvent(e *Event) error {
	if _, exists := g.Events[e.Name]; exists {
		return fmt.Errorf("%w: event %s", ErrDuplicateName, e.Name)
	}
	g.Events[e.Name] = e
	return nil
}

func (g *Graph) addGroup(grp *Group, replace bool) error {
	if _, exists := g.Groups[grp.Name]; exists && !replace {
		return fmt.Errorf("%w: eventList %s", ErrDuplicateName, grp.Name)
	}
	g.Groups[grp.Name] = grp
	return nil
}

func (g *Graph) addShip(s *Ship) error {
	if _, exists := g.Ships[s.Name]; exists {
		return fmt.Errorf("%w: ship %s", ErrDuplicateName, s.Name)
	}
	g.Ships[s.Name] = s
	return nil
}
