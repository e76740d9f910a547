package graph

import (
	"errors"
	"strings"
	"testing"

	"starsheet/internal/lexicon"
	"starsheet/internal/parser"
)

func parseDocs(t *testing.T, contents ...string) []*parser.Document {
	t.Helper()
	docs := make([]*parser.Document, 0, len(contents))
	for _, content := range contents {
		doc, err := parser.Parse([]byte(content))
		if err != nil {
			t.Fatalf("parsing fixture: %v", err)
		}
		docs = append(docs, doc)
	}
	return docs
}

func build(t *testing.T, contents ...string) (*Graph, []Warning) {
	t.Helper()
	builder := NewBuilder(lexicon.NewTranslations())
	g, warnings, err := builder.Build(parseDocs(t, contents...))
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	return g, warnings
}

func buildErr(t *testing.T, contents ...string) error {
	t.Helper()
	builder := NewBuilder(lexicon.NewTranslations())
	_, _, err := builder.Build(parseDocs(t, contents...))
	if err == nil {
		t.Fatalf("expected build error")
	}
	return err
}

func hasWarning(warnings []Warning, code string) bool {
	for _, w := range warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}

func TestBuildEvent(t *testing.T) {
	g, _ := build(t, `<FTL>
		<event name="DERELICT">
			<text>A derelict drifts nearby.</text>
			<item_modify>
				<item type="scrap" min="10" max="20"/>
				<item type="fuel" min="-2" max="-1"/>
			</item_modify>
		</event>
	</FTL>`)

	event := g.Events["DERELICT"]
	if event == nil {
		t.Fatalf("event not built")
	}
	if event.Text != "<p>A derelict drifts nearby.</p>" {
		t.Fatalf("unexpected text: %q", event.Text)
	}
	if len(event.Outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %+v", event.Outcomes)
	}
	// Payments come first.
	if !strings.Contains(event.Outcomes[0].HTML, "Fuel") || !strings.HasPrefix(event.Outcomes[0].HTML, "−") {
		t.Fatalf("expected fuel payment first, got %q", event.Outcomes[0].HTML)
	}
	if !strings.Contains(event.Outcomes[1].HTML, "Scrap") {
		t.Fatalf("expected scrap reward, got %q", event.Outcomes[1].HTML)
	}
}

func TestBuildEmptyEventGetsDefaultOutcome(t *testing.T) {
	g, _ := build(t, `<FTL><event name="QUIET"/></FTL>`)
	event := g.Events["QUIET"]
	if len(event.Outcomes) != 1 || event.Outcomes[0].HTML != "Nothing happens" {
		t.Fatalf("unexpected outcomes: %+v", event.Outcomes)
	}
}

func TestBuildLoadIsAlias(t *testing.T) {
	g, _ := build(t, `<FTL>
		<event name="REAL"/>
		<eventList name="POOL">
			<event load="REAL"/>
		</eventList>
	</FTL>`)

	group := g.Groups["POOL"]
	if group == nil || len(group.Cases) != 1 {
		t.Fatalf("unexpected group: %+v", group)
	}
	if group.Cases[0] != (Case{Weight: 1, Target: "REAL"}) {
		t.Fatalf("unexpected case: %+v", group.Cases[0])
	}
	// The alias creates no entity of its own.
	if len(g.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(g.Events))
	}
}

func TestBuildSyntheticNames(t *testing.T) {
	g, _ := build(t, `<FTL>
		<eventList name="POOL">
			<event><text>Inline one.</text></event>
			<event><text>Inline two.</text></event>
		</eventList>
	</FTL>`)

	group := g.Groups["POOL"]
	if len(group.Cases) != 2 {
		t.Fatalf("unexpected cases: %+v", group.Cases)
	}
	for _, c := range group.Cases {
		if !IsSynthetic(c.Target) {
			t.Fatalf("expected synthetic target, got %q", c.Target)
		}
		if g.Events[c.Target] == nil {
			t.Fatalf("synthetic event %q not registered", c.Target)
		}
	}
	if group.Cases[0].Target == group.Cases[1].Target {
		t.Fatalf("synthetic names must be distinct")
	}
}

func TestBuildDuplicateEventFatal(t *testing.T) {
	err := buildErr(t, `<FTL>
		<event name="TWICE"/>
		<event name="TWICE"/>
	</FTL>`)
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}

func TestBuildDuplicateGroupAcrossFilesFatal(t *testing.T) {
	err := buildErr(t,
		`<FTL><eventList name="POOL"/></FTL>`,
		`<FTL><eventList name="POOL"/></FTL>`)
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}

func TestBuildOverrideReplacesGroup(t *testing.T) {
	g, _ := build(t, `<FTL>
		<event name="OLD"/>
		<event name="NEW"/>
		<eventList name="POOL">
			<event load="OLD"/>
		</eventList>
		<eventList name="OVERRIDE_POOL">
			<event load="NEW"/>
		</eventList>
	</FTL>`)

	group := g.Groups["POOL"]
	if len(group.Cases) != 1 || group.Cases[0].Target != "NEW" {
		t.Fatalf("override did not replace group: %+v", group)
	}
	if _, exists := g.Groups["OVERRIDE_POOL"]; exists {
		t.Fatalf("override prefix must not leak into the namespace")
	}
}

func TestBuildChoices(t *testing.T) {
	g, warnings := build(t, `<FTL>
		<event name="ENCOUNTER">
			<text>They hail you.</text>
			<choice hidden="true" req="weapons" lvl="3">
				<text>(Improved Weapons) Attack them. [ Missiles: -1 ]</text>
				<event name="ATTACK"/>
			</choice>
			<choice>
				<text>Leave.</text>
			</choice>
		</event>
	</FTL>`)

	event := g.Events["ENCOUNTER"]
	if len(event.Choices) != 2 {
		t.Fatalf("unexpected choices: %+v", event.Choices)
	}

	first := event.Choices[0]
	if !first.Blue {
		t.Fatalf("req+hidden choice should be blue")
	}
	if first.Label != "(weapons ≥ 3) Attack them." {
		t.Fatalf("unexpected label: %q", first.Label)
	}
	if first.Target != "ATTACK" {
		t.Fatalf("unexpected target: %q", first.Target)
	}

	second := event.Choices[1]
	if second.Blue || second.Target != "" {
		t.Fatalf("unexpected second choice: %+v", second)
	}
	if !hasWarning(warnings, WarnEmptyChoice) {
		t.Fatalf("expected empty choice warning")
	}
}

func TestBuildQuestPrefersGroup(t *testing.T) {
	g, _ := build(t, `<FTL>
		<event name="SHARED"/>
		<eventList name="SHARED_LIST">
			<event load="SHARED"/>
		</eventList>
		<eventList name="SHARED">
			<event load="SHARED"/>
		</eventList>
		<event name="GIVER">
			<quest event="SHARED"/>
		</event>
	</FTL>`)

	if _, ok := g.QuestGroups["SHARED"]; !ok {
		t.Fatalf("quest target should classify into the group namespace")
	}
	if _, ok := g.QuestEvents["SHARED"]; ok {
		t.Fatalf("quest target must not land in both namespaces")
	}

	giver := g.Events["GIVER"]
	if len(giver.Outcomes) != 1 {
		t.Fatalf("unexpected outcomes: %+v", giver.Outcomes)
	}
	link := giver.Outcomes[0].Link
	if link == nil || link.Kind != KindGroup || link.Name != "SHARED" {
		t.Fatalf("unexpected quest link: %+v", link)
	}
}

func TestBuildQuestUnresolvableFatal(t *testing.T) {
	err := buildErr(t, `<FTL>
		<event name="GIVER">
			<quest event="NOWHERE"/>
		</event>
	</FTL>`)
	if !errors.Is(err, ErrUnresolvable) {
		t.Fatalf("expected ErrUnresolvable, got %v", err)
	}
}

func TestBuildShip(t *testing.T) {
	g, _ := build(t, `<FTL>
		<ship name="PIRATE">
			<destroyed load="WIN"/>
			<surrender load="GIVE_UP"/>
		</ship>
		<event name="WIN"/>
		<event name="GIVE_UP"/>
	</FTL>`)

	ship := g.Ships["PIRATE"]
	if ship == nil {
		t.Fatalf("ship not built")
	}
	if ship.Destroyed != "WIN" || ship.Surrender != "GIVE_UP" || ship.DeadCrew != "" || ship.Gotaway != "" {
		t.Fatalf("unexpected slots: %+v", ship)
	}

	slots := ship.Slots()
	if len(slots) != 2 {
		t.Fatalf("unexpected slot count: %+v", slots)
	}
	if slots[0].Label != "You destroy the enemy ship" || slots[1].Label != "The enemy ship offers to surrender" {
		t.Fatalf("unexpected slot order: %+v", slots)
	}
}

func TestBuildEnemyShipInheritance(t *testing.T) {
	g, _ := build(t, `<FTL>
		<event name="AMBUSH">
			<ship load="PIRATE" hostile="true"/>
			<choice hidden="true">
				<text>Fight back.</text>
				<event name="FIGHT_BACK">
					<ship hostile="true"/>
				</event>
			</choice>
		</event>
	</FTL>`)

	nested := g.Events["FIGHT_BACK"]
	if nested == nil {
		t.Fatalf("nested event not built")
	}
	if nested.Fight != "PIRATE" {
		t.Fatalf("nested event did not inherit the enemy ship: %q", nested.Fight)
	}
}

func TestBuildChoicesAndFightWarning(t *testing.T) {
	_, warnings := build(t, `<FTL>
		<event name="ODD">
			<ship load="PIRATE" hostile="true"/>
			<choice hidden="true">
				<text>Run.</text>
				<event name="RUN"/>
			</choice>
		</event>
	</FTL>`)
	if !hasWarning(warnings, WarnChoicesAndFight) {
		t.Fatalf("expected choices-and-fight warning")
	}
}

func TestBuildUnknownTagWarnsOnce(t *testing.T) {
	_, warnings := build(t, `<FTL>
		<event name="A"><mystery/></event>
		<event name="B"><mystery/></event>
	</FTL>`)
	count := 0
	for _, w := range warnings {
		if w.Code == WarnUnknownTag {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one unknown-tag warning, got %d", count)
	}
}

func TestBuildTextListAlternatives(t *testing.T) {
	g, _ := build(t, `<FTL>
		<textList name="ARRIVALS">
			<text>First arrival.</text>
			<text>Second arrival.</text>
		</textList>
		<event name="VARIED">
			<text load="ARRIVALS"/>
		</event>
	</FTL>`)

	event := g.Events["VARIED"]
	want := `<ul class="texts"><li>First arrival.<li>Second arrival.</ul>`
	if event.Text != want {
		t.Fatalf("unexpected text:\n got %q\nwant %q", event.Text, want)
	}
}
