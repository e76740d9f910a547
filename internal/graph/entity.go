// Package graph builds and holds the entity graph: narrative events,
// weighted event groups, and ship outcome tables, cross-referenced by name
// across three independent namespaces.
package graph

type Kind int

const (
	KindEvent Kind = iota
	KindGroup
	KindShip
)

func (k Kind) String() string {
	switch k {
	case KindEvent:
		return "event"
	case KindGroup:
		return "group"
	case KindShip:
		return "ship"
	default:
		return "unknown"
	}
}

// Ref is a resolved reference: the namespace a name was disambiguated into.
// It is never a pointer; entities are always looked up by name at the use
// site, so the graph can be assembled in any parse order.
type Ref struct {
	Kind Kind
	Name string
}

// Context selects which namespace wins when a name exists both as an Event
// and as a Group. Entries of a group's case list prefer the Event
// namespace; everything else (quest markers, ship outcome slots, choice
// targets) prefers the Group namespace.
type Context int

const (
	ContextTopLevel Context = iota
	ContextInsideGroup
)

// Outcome is one effect line of an event. HTML is an opaque markup
// fragment; when Link is set the fragment contains a single %s slot where
// the renderer places a link to the referenced entity.
type Outcome struct {
	HTML string
	Link *Ref
}

func (o Outcome) equal(other Outcome) bool {
	if o.HTML != other.HTML {
		return false
	}
	if (o.Link == nil) != (other.Link == nil) {
		return false
	}
	if o.Link != nil && *o.Link != *other.Link {
		return false
	}
	return true
}

// Choice is one player option: a label, whether it is a highlighted (blue)
// option, and the name of the event or group it leads to. Target is empty
// for the rare data bug of a choice without a nested event.
type Choice struct {
	Label  string
	Blue   bool
	Target string
}

// Event is a narrative node.
type Event struct {
	Name     string
	Text     string
	Outcomes []Outcome
	Choices  []Choice
	Fight    string // ship name, "" when the event does not end in a fight
}

// StructurallyEqual reports whether two events have identical content,
// ignoring their names. References (choice targets, fight) are compared by
// target name only, not by recursively comparing the referenced entity;
// recursing would not terminate on mutually referencing events, and name
// equality is sufficient because names are unique per namespace.
func (e *Event) StructurallyEqual(other *Event) bool {
	if e == nil || other == nil {
		return false
	}
	if e.Text != other.Text || e.Fight != other.Fight {
		return false
	}
	if len(e.Outcomes) != len(other.Outcomes) || len(e.Choices) != len(other.Choices) {
		return false
	}
	for i := range e.Outcomes {
		if !e.Outcomes[i].equal(other.Outcomes[i]) {
			return false
		}
	}
	for i := range e.Choices {
		if e.Choices[i] != other.Choices[i] {
			return false
		}
	}
	return true
}

// Case is one weighted entry of a group.
type Case struct {
	Weight int
	Target string
}

// Group is a weighted random pool of event or group references.
type Group struct {
	Name  string
	Cases []Case
}

// TotalWeight is the probability denominator for the group's cases.
func (g *Group) TotalWeight() int {
	total := 0
	for _, c := range g.Cases {
		total += c.Weight
	}
	return total
}

// Ship is a combat encounter's fixed table of outcome slots. Each slot
// names an event or group, or is empty.
type Ship struct {
	Name      string
	Destroyed string
	DeadCrew  string
	Gotaway   string
	Surrender string
}

// Slot is a ship outcome slot paired with its display label.
type Slot struct {
	Label  string
	Target string
}

// Slots returns the non-empty outcome slots in their fixed display order.
func (s *Ship) Slots() []Slot {
	all := []Slot{
		{"You destroy the enemy ship", s.Destroyed},
		{"You kill the enemy crew", s.DeadCrew},
		{"The enemy ship escaped", s.Gotaway},
		{"The enemy ship offers to surrender", s.Surrender},
	}
	slots := make([]Slot, 0, len(all))
	for _, slot := range all {
		if slot.Target != "" {
			slots = append(slots, slot)
		}
	}
	return slots
}
