package index

import (
	"sort"
	"strings"
	"testing"

	"starsheet/internal/graph"
	"starsheet/internal/lexicon"
	"starsheet/internal/parser"
	"starsheet/internal/pipeline"
)

func buildResult(t *testing.T, content string, rootNames []string) *pipeline.Result {
	t.Helper()
	doc, err := parser.Parse([]byte(content))
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	builder := graph.NewBuilder(lexicon.NewTranslations())
	g, warnings, err := builder.Build([]*parser.Document{doc})
	if err != nil {
		t.Fatalf("building fixture: %v", err)
	}
	graph.Canonicalize(g)
	counts, err := graph.CountRefs(g)
	if err != nil {
		t.Fatalf("counting refs: %v", err)
	}
	roots, err := graph.ResolveRoots(g, rootNames)
	if err != nil {
		t.Fatalf("resolving roots: %v", err)
	}
	return &pipeline.Result{Graph: g, Counts: counts, Roots: roots, Warnings: warnings}
}

func TestBuildSnapshot(t *testing.T) {
	result := buildResult(t, `<FTL>
		<event name="START">
			<text>A ship hails you.</text>
			<choice hidden="true"><text>Answer.</text><event load="ANSWER"/></choice>
		</event>
		<event name="ANSWER"><text>They want fuel.</text></event>
		<eventList name="POOL">
			<event load="ANSWER"/>
			<event load="START"/>
		</eventList>
		<event name="AMBUSH"><ship load="PIRATE" hostile="true"/></event>
		<ship name="PIRATE">
			<destroyed load="ANSWER"/>
		</ship>
	</FTL>`, []string{"START"})

	snap := Build(result)

	if len(snap.Entities) != 5 {
		t.Fatalf("expected 5 entities, got %d", len(snap.Entities))
	}
	if !sort.SliceIsSorted(snap.Entities, func(i, j int) bool {
		a, b := snap.Entities[i], snap.Entities[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.Kind < b.Kind
	}) {
		t.Fatalf("entities not sorted")
	}

	byName := make(map[string]int)
	for i, e := range snap.Entities {
		byName[e.Kind+"/"+e.Name] = i
	}

	start := snap.Entities[byName["event/START"]]
	if !start.Root || !start.Pinned {
		t.Fatalf("START should be a pinned root: %+v", start)
	}
	if start.InDegree != 1 {
		t.Fatalf("START in-degree: got %d", start.InDegree)
	}
	if start.Anchor != "event-START" {
		t.Fatalf("unexpected anchor: %q", start.Anchor)
	}
	if start.Body == "" {
		t.Fatalf("event body should carry searchable text")
	}

	answer := snap.Entities[byName["event/ANSWER"]]
	// Choice, pool entry, ship slot.
	if answer.InDegree != 3 {
		t.Fatalf("ANSWER in-degree: got %d", answer.InDegree)
	}

	// choice + 2 cases + fight + slot.
	if len(snap.Edges) != 5 {
		t.Fatalf("expected 5 edges, got %+v", snap.Edges)
	}
	types := make(map[string]int)
	for _, e := range snap.Edges {
		types[e.EdgeType]++
	}
	if types["choice"] != 1 || types["case"] != 2 || types["fight"] != 1 || types["slot"] != 1 {
		t.Fatalf("unexpected edge types: %v", types)
	}
}

func TestBuildSnapshotBodyStripsMarkup(t *testing.T) {
	result := buildResult(t, `<FTL>
		<event name="LOOT">
			<text>Salvage ahead.</text>
			<item_modify><item type="scrap" min="10" max="20"/></item_modify>
		</event>
	</FTL>`, []string{"LOOT"})

	snap := Build(result)
	if len(snap.Entities) != 1 {
		t.Fatalf("unexpected entities: %+v", snap.Entities)
	}
	body := snap.Entities[0].Body
	if body == "" {
		t.Fatalf("body missing")
	}
	for _, tag := range []string{"<p>", "<strong>", "<li>"} {
		if strings.Contains(body, tag) {
			t.Fatalf("body should not contain %q: %q", tag, body)
		}
	}
	if !strings.Contains(body, "Salvage ahead.") || !strings.Contains(body, "Scrap") {
		t.Fatalf("body missing content: %q", body)
	}
}

func TestBuildSnapshotDeterministic(t *testing.T) {
	content := `<FTL>
		<event name="A"/>
		<event name="B"/>
		<eventList name="POOL">
			<event load="A"/>
			<event load="B"/>
		</eventList>
	</FTL>`
	first := Build(buildResult(t, content, []string{"A"}))
	second := Build(buildResult(t, content, []string{"A"}))

	if len(first.Entities) != len(second.Entities) || len(first.Edges) != len(second.Edges) {
		t.Fatalf("snapshot sizes differ")
	}
	for i := range first.Entities {
		if first.Entities[i] != second.Entities[i] {
			t.Fatalf("entity %d differs: %+v vs %+v", i, first.Entities[i], second.Entities[i])
		}
	}
	for i := range first.Edges {
		if first.Edges[i] != second.Edges[i] {
			t.Fatalf("edge %d differs: %+v vs %+v", i, first.Edges[i], second.Edges[i])
		}
	}
}
