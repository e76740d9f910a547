package graph

import (
	"errors"
	"reflect"
	"testing"
)

func TestResolveRoots(t *testing.T) {
	g := New()
	g.Events["START"] = &Event{Name: "START"}
	g.Events["POOLED_A"] = &Event{Name: "POOLED_A"}
	g.Events["POOLED_B"] = &Event{Name: "POOLED_B"}
	g.Groups["POOL"] = &Group{Name: "POOL", Cases: []Case{
		{Weight: 1, Target: "POOLED_A"},
		{Weight: 1, Target: "SUB"},
	}}
	g.Groups["SUB"] = &Group{Name: "SUB", Cases: []Case{
		{Weight: 1, Target: "POOLED_B"},
	}}

	roots, err := ResolveRoots(g, []string{"START", "POOL"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]struct{}{
		"START":    {},
		"POOLED_A": {},
		"POOLED_B": {},
	}
	if !reflect.DeepEqual(roots, want) {
		t.Fatalf("got %v, want %v", roots, want)
	}
}

func TestResolveRootsEventPriority(t *testing.T) {
	// An entry point declared as both event and group is the event.
	g := New()
	g.Events["BOTH"] = &Event{Name: "BOTH"}
	g.Groups["BOTH"] = &Group{Name: "BOTH", Cases: []Case{{Weight: 1, Target: "OTHER"}}}
	g.Events["OTHER"] = &Event{Name: "OTHER"}

	roots, err := ResolveRoots(g, []string{"BOTH"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := roots["BOTH"]; !ok {
		t.Fatalf("expected the event to be the root: %v", roots)
	}
	if _, ok := roots["OTHER"]; ok {
		t.Fatalf("group cases must not be expanded when the event wins: %v", roots)
	}
}

func TestResolveRootsCyclicGroups(t *testing.T) {
	g := New()
	g.Groups["A"] = &Group{Name: "A", Cases: []Case{{Weight: 1, Target: "B"}}}
	g.Groups["B"] = &Group{Name: "B", Cases: []Case{{Weight: 1, Target: "A"}, {Weight: 1, Target: "E"}}}
	g.Events["E"] = &Event{Name: "E"}

	roots, err := ResolveRoots(g, []string{"A"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(roots) != 1 {
		t.Fatalf("got %v, want just E", roots)
	}
}

func TestResolveRootsUnknownFatal(t *testing.T) {
	g := New()
	if _, err := ResolveRoots(g, []string{"NOWHERE"}); !errors.Is(err, ErrUnresolvable) {
		t.Fatalf("expected ErrUnresolvable, got %v", err)
	}
}

func TestPinned(t *testing.T) {
	g := New()
	g.QuestEvents["QE"] = struct{}{}
	g.QuestGroups["QG"] = struct{}{}
	roots := map[string]struct{}{"ROOT": {}}

	events, groups := Pinned(g, roots)
	for _, name := range []string{"ROOT", "QE"} {
		if _, ok := events[name]; !ok {
			t.Fatalf("expected %s pinned: %v", name, events)
		}
	}
	if _, ok := groups["QG"]; !ok {
		t.Fatalf("expected QG pinned: %v", groups)
	}
}

func TestSectorRoots(t *testing.T) {
	sector := parseDocs(t, `<FTL>
		<sectorDescription name="CIVILIAN">
			<startEvent>START_CIVILIAN</startEvent>
			<event name="POOL_ONE" min="1" max="3"/>
			<event name="POOL_TWO" min="0" max="2"/>
		</sectorDescription>
	</FTL>`)
	boss := parseDocs(t, `<FTL>
		<event name="BOSS_FIGHT"/>
	</FTL>`)

	names := SectorRoots(sector, boss)
	want := []string{"START_CIVILIAN", "POOL_ONE", "POOL_TWO", "BOSS_FIGHT"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("got %v, want %v", names, want)
	}
}
