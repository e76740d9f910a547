package graph

import (
	"errors"
	"fmt"
)

var ErrUnresolvable = errors.New("name matches neither namespace")

// Resolve disambiguates a name shared between the Event and Group
// namespaces. Inside a group's case list the Event namespace has priority;
// everywhere else the Group namespace wins. This asymmetry is the load-
// bearing rule for the handful of names (e.g. NEBULA_PIRATE) declared as
// both.
func (g *Graph) Resolve(name string, ctx Context) (Ref, error) {
	switch ctx {
	case ContextInsideGroup:
		if _, ok := g.Events[name]; ok {
			return Ref{Kind: KindEvent, Name: name}, nil
		}
		if _, ok := g.Groups[name]; ok {
			return Ref{Kind: KindGroup, Name: name}, nil
		}
	case ContextTopLevel:
		if _, ok := g.Groups[name]; ok {
			return Ref{Kind: KindGroup, Name: name}, nil
		}
		if _, ok := g.Events[name]; ok {
			return Ref{Kind: KindEvent, Name: name}, nil
		}
	}
	return Ref{}, fmt.Errorf("%w: %q", ErrUnresolvable, name)
}

// ResolveDeclared applies the same priority rule against the pre-scanned
// name sets instead of the built entities. The builder needs it to
// classify quest targets that may not have been built yet.
func (g *Graph) ResolveDeclared(name string, ctx Context) (Ref, error) {
	switch ctx {
	case ContextInsideGroup:
		if _, ok := g.EventNames[name]; ok {
			return Ref{Kind: KindEvent, Name: name}, nil
		}
		if _, ok := g.GroupNames[name]; ok {
			return Ref{Kind: KindGroup, Name: name}, nil
		}
	case ContextTopLevel:
		if _, ok := g.GroupNames[name]; ok {
			return Ref{Kind: KindGroup, Name: name}, nil
		}
		if _, ok := g.EventNames[name]; ok {
			return Ref{Kind: KindEvent, Name: name}, nil
		}
	}
	return Ref{}, fmt.Errorf("%w: %q", ErrUnresolvable, name)
}
