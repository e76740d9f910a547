package graph

import (
	"fmt"
	"html"
	"strings"

	"starsheet/internal/lexicon"
	"starsheet/internal/parser"
)

// OverridePrefix marks an eventList that replaces the like-named group
// after all regular groups have been built.
const OverridePrefix = "OVERRIDE_"

// Builder assembles the entity graph from parsed documents in a single
// sequential pass. The graph is immutable once Build returns, apart from
// the canonicalization pass rewriting group case lists.
type Builder struct {
	graph    *Graph
	trans    *lexicon.Translations
	shapes   *shapeChecker
	warnings []Warning
}

func NewBuilder(trans *lexicon.Translations) *Builder {
	return &Builder{
		graph:  New(),
		trans:  trans,
		shapes: newShapeChecker(),
	}
}

func (b *Builder) warn(code, format string, args ...any) {
	b.warnings = append(b.warnings, warnf(code, format, args...))
}

func (b *Builder) checkShape(parentKind string, node *parser.Node, known shape) {
	b.warnings = append(b.warnings, b.shapes.check(parentKind, node, known)...)
}

// Build walks every document and populates the registry. The first pass
// collects declared names and text lists so that back-references and quest
// markers can be classified no matter which file defines their target.
func (b *Builder) Build(docs []*parser.Document) (*Graph, []Warning, error) {
	for _, doc := range docs {
		for _, node := range doc.TopLevel("event") {
			if name := node.Attr("name"); name != "" {
				b.graph.EventNames[name] = struct{}{}
			}
		}
		for _, node := range doc.TopLevel("eventList") {
			name := strings.TrimPrefix(node.Attr("name"), OverridePrefix)
			if name != "" {
				b.graph.GroupNames[name] = struct{}{}
			}
		}
		for _, node := range doc.TopLevel("ship") {
			if name := node.Attr("name"); name != "" {
				b.graph.ShipNames[name] = struct{}{}
			}
		}
		for _, node := range doc.TopLevel("textList") {
			if err := b.trans.AddTextList(node.Attr("name"), node.FindAll("text")); err != nil {
				return nil, nil, fmt.Errorf("%s: %w", doc.SourceFile, err)
			}
		}
	}

	var overrides []*parser.Node
	for _, doc := range docs {
		for _, node := range doc.TopLevel("event") {
			if _, err := b.buildEvent(node, ""); err != nil {
				return nil, nil, fmt.Errorf("%s: %w", doc.SourceFile, err)
			}
		}
		for _, node := range doc.TopLevel("eventList") {
			if strings.HasPrefix(node.Attr("name"), OverridePrefix) {
				overrides = append(overrides, node)
				continue
			}
			if err := b.buildGroup(node, false); err != nil {
				return nil, nil, fmt.Errorf("%s: %w", doc.SourceFile, err)
			}
		}
		for _, node := range doc.TopLevel("ship") {
			if err := b.buildShip(node); err != nil {
				return nil, nil, fmt.Errorf("%s: %w", doc.SourceFile, err)
			}
		}
	}

	// Overrides replace the group they shadow once everything else exists.
	for _, node := range overrides {
		if err := b.buildGroup(node, true); err != nil {
			return nil, nil, err
		}
	}

	return b.graph, b.warnings, nil
}

// buildEvent interprets one <event> node and returns the name the caller
// should reference. A load-only node is a pure alias: it resolves to the
// loaded name and creates no entity. Unnamed events get synthetic names.
// enemyShip carries the identity set by an enclosing <ship load=...> so
// that nested choice events can resolve their fight.
func (b *Builder) buildEvent(node *parser.Node, enemyShip string) (string, error) {
	b.checkShape("event", node, eventShape)

	if load := node.Attr("load"); load != "" {
		return load, nil
	}

	name := node.Attr("name")

	text, err := b.eventText(node)
	if err != nil {
		return "", fmt.Errorf("event %s: %w", name, err)
	}

	outcomes, enemyShip, endsWithFight, err := b.eventOutcomes(node, enemyShip)
	if err != nil {
		return "", fmt.Errorf("event %s: %w", name, err)
	}

	choices, err := b.eventChoices(node, name, enemyShip)
	if err != nil {
		return "", err
	}

	fight := ""
	if endsWithFight {
		fight = enemyShip
	}

	if len(outcomes) == 0 && len(choices) == 0 && fight == "" {
		outcomes = []Outcome{{HTML: "Nothing happens"}}
	}

	if len(choices) > 0 && fight != "" {
		b.warn(WarnChoicesAndFight, "event %s has both choices and a fight", name)
	}

	if name == "" {
		name = b.graph.genEventName()
	}
	event := &Event{
		Name:     name,
		Text:     text,
		Outcomes: outcomes,
		Choices:  choices,
		Fight:    fight,
	}
	if err := b.graph.addEvent(event); err != nil {
		return "", err
	}
	return name, nil
}

// eventText renders the arrival message. A text node loading a textList
// shows every alternative; a plain node shows the single resolved string.
func (b *Builder) eventText(node *parser.Node) (string, error) {
	textNode := node.Find("text")
	if textNode == nil {
		return "", nil
	}

	if listName := textNode.Attr("load"); listName != "" {
		texts, ok := b.trans.Alternatives(listName)
		if !ok {
			return "", fmt.Errorf("unknown textList %q", listName)
		}
		var out strings.Builder
		out.WriteString(`<ul class="texts">`)
		for _, alternative := range texts {
			msg, err := b.trans.Message(alternative)
			if err != nil {
				return "", err
			}
			out.WriteString("<li>" + html.EscapeString(msg))
		}
		out.WriteString("</ul>")
		return out.String(), nil
	}

	msg, err := b.trans.Message(textNode)
	if err != nil {
		return "", err
	}
	return "<p>" + html.EscapeString(msg) + "</p>", nil
}

// eventChoices parses the player options. Choices always live directly on
// an event, never in a group case list, so their targets resolve in
// top-level context later on.
func (b *Builder) eventChoices(node *parser.Node, eventName, enemyShip string) ([]Choice, error) {
	choiceNodes := node.FindAll("choice")
	if len(choiceNodes) == 0 {
		return nil, nil
	}

	choices := make([]Choice, 0, len(choiceNodes))
	for _, choiceNode := range choiceNodes {
		text, err := b.trans.Message(choiceNode.Find("text"))
		if err != nil {
			return nil, fmt.Errorf("event %s choice: %w", eventName, err)
		}
		text = strings.TrimSpace(text)

		// The missile cost also appears in the results; drop the
		// redundant suffix from the label.
		text = strings.TrimSpace(strings.TrimSuffix(text, "[ Missiles: -1 ]"))

		req := choiceNode.Attr("req")
		blue := choiceNode.Attr("blue")
		minLevel := choiceNode.Attr("lvl")
		if minLevel == "" {
			minLevel = choiceNode.Attr("min_level")
		}
		maxLevel := choiceNode.Attr("max_lvl")
		if maxLevel == "" {
			maxLevel = choiceNode.Attr("max_level")
		}
		hidden := strings.ToLower(choiceNode.Attr("hidden"))

		isBlue := req != "" && hidden == "true" && blue != "false"
		isComplex := maxLevel != "" || (minLevel != "" && minLevel != "1")

		reqMsg := ""
		if req != "" && isComplex {
			switch {
			case minLevel != "" && maxLevel != "":
				reqMsg = fmt.Sprintf("(%s ≤ %s ≤ %s) ", minLevel, html.EscapeString(req), maxLevel)
			case minLevel != "":
				reqMsg = fmt.Sprintf("(%s ≥ %s) ", html.EscapeString(req), minLevel)
			default:
				reqMsg = fmt.Sprintf("(%s ≤ %s) ", html.EscapeString(req), maxLevel)
			}
		}

		if reqMsg != "" && strings.HasPrefix(text, "(") {
			// The raw requirement is clearer than the fancy english
			// name, e.g. "weapons ≥ 6" instead of "Improved Weapons".
			if i := strings.Index(text, ")"); i >= 0 && i+2 <= len(text) {
				text = text[i+2:]
			}
		}

		target := ""
		if subEvent := choiceNode.Find("event"); subEvent != nil {
			target, err = b.buildEvent(subEvent, enemyShip)
			if err != nil {
				return nil, err
			}
		} else {
			b.warn(WarnEmptyChoice, "event %s has a choice with no nested event", eventName)
		}

		choices = append(choices, Choice{
			Label:  reqMsg + text,
			Blue:   isBlue,
			Target: target,
		})
	}
	return choices, nil
}

// buildShip interprets one <ship> node: up to four outcome slots, each an
// event reference. Crew composition and escape chatter are recognized but
// carry nothing the cheatsheet needs.
func (b *Builder) buildShip(node *parser.Node) error {
	b.checkShape("ship", node, shipShape)

	name := node.Attr("name")
	if name == "" {
		return fmt.Errorf("ship without a name")
	}

	slots := make(map[string]string, 4)
	for _, tag := range []string{"destroyed", "deadCrew", "gotaway", "surrender"} {
		slotNode := node.Find(tag)
		if slotNode == nil {
			continue
		}
		target, err := b.buildEvent(slotNode, "")
		if err != nil {
			return fmt.Errorf("ship %s: %w", name, err)
		}
		slots[tag] = target
	}

	return b.graph.addShip(&Ship{
		Name:      name,
		Destroyed: slots["destroyed"],
		DeadCrew:  slots["deadCrew"],
		Gotaway:   slots["gotaway"],
		Surrender: slots["surrender"],
	})
}

// buildGroup interprets one <eventList> node. Every entry starts with
// weight 1; canonicalization folds structurally equal entries later.
func (b *Builder) buildGroup(node *parser.Node, replace bool) error {
	b.checkShape("eventList", node, groupShape)

	name := strings.TrimPrefix(node.Attr("name"), OverridePrefix)
	if name == "" {
		return fmt.Errorf("eventList without a name")
	}

	entries := node.FindAll("event")
	cases := make([]Case, 0, len(entries))
	for _, entry := range entries {
		target, err := b.buildEvent(entry, "")
		if err != nil {
			return fmt.Errorf("eventList %s: %w", name, err)
		}
		cases = append(cases, Case{Weight: 1, Target: target})
	}

	return b.graph.addGroup(&Group{Name: name, Cases: cases}, replace)
}
