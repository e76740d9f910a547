package lexicon

import (
	"errors"
	"fmt"

	"starsheet/internal/parser"
)

var (
	ErrDuplicateTextKey   = errors.New("duplicate translation key")
	ErrDuplicateBlueprint = errors.New("duplicate blueprint")
)

// Translations resolves <text> nodes to English strings. Three shapes occur
// in the data: literal text, an id into the translation tables, and a load
// of a textList of interchangeable alternatives.
type Translations struct {
	messages   map[string]string
	lists      map[string][]*parser.Node
	blueprints map[string]string
}

func NewTranslations() *Translations {
	blueprints := make(map[string]string, len(blueprintListName))
	for key, value := range blueprintListName {
		blueprints[key] = value
	}
	return &Translations{
		messages:   make(map[string]string),
		lists:      make(map[string][]*parser.Node),
		blueprints: blueprints,
	}
}

// LoadMessages collects top-level <text name="..."> entries from the
// text_*.xml translation files. Duplicate keys are fatal.
func (t *Translations) LoadMessages(docs ...*parser.Document) error {
	for _, doc := range docs {
		for _, node := range doc.TopLevel("text") {
			key := node.Attr("name")
			if _, exists := t.messages[key]; exists {
				return fmt.Errorf("%w: %s", ErrDuplicateTextKey, key)
			}
			t.messages[key] = node.Text
		}
	}
	return nil
}

// AddTextList registers a <textList> discovered while walking event files.
func (t *Translations) AddTextList(name string, texts []*parser.Node) error {
	if _, exists := t.lists[name]; exists {
		return fmt.Errorf("%w: textList %s", ErrDuplicateTextKey, name)
	}
	t.lists[name] = texts
	return nil
}

// Alternatives returns the text nodes of a registered textList.
func (t *Translations) Alternatives(name string) ([]*parser.Node, bool) {
	texts, ok := t.lists[name]
	return texts, ok
}

// Message resolves a <text> node to its English string.
func (t *Translations) Message(node *parser.Node) (string, error) {
	if node == nil {
		return "(no text)", nil
	}

	// Hardcoded text
	if node.Text != "" {
		return node.Text, nil
	}

	// Regular translated string
	if id := node.Attr("id"); id != "" {
		msg, ok := t.messages[id]
		if !ok {
			return "", fmt.Errorf("unknown text id %q", id)
		}
		return msg, nil
	}

	// Multi-string: show just the first one, they should be
	// interchangeable anyway.
	if load := node.Attr("load"); load != "" {
		texts, ok := t.lists[load]
		if !ok || len(texts) == 0 {
			return "", fmt.Errorf("unknown textList %q", load)
		}
		return t.Message(texts[0])
	}

	return "(no text)", nil
}

// LoadBlueprints collects item titles from blueprints.xml so that reward
// lines can name the item instead of its internal id.
func (t *Translations) LoadBlueprints(doc *parser.Document) error {
	for _, tag := range []string{"augBlueprint", "droneBlueprint", "weaponBlueprint"} {
		for _, blueprint := range doc.TopLevel(tag) {
			id := blueprint.Attr("name")
			if _, exists := t.blueprints[id]; exists {
				return fmt.Errorf("%w: %s", ErrDuplicateBlueprint, id)
			}
			title, err := t.Message(blueprint.Find("title"))
			if err != nil {
				return fmt.Errorf("blueprint %s: %w", id, err)
			}
			t.blueprints[id] = title
		}
	}
	return nil
}

// Blueprint returns the display title for a blueprint id.
func (t *Translations) Blueprint(id string) (string, bool) {
	name, ok := t.blueprints[id]
	return name, ok
}
