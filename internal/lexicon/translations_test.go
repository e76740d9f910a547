package lexicon

import (
	"errors"
	"testing"

	"starsheet/internal/parser"
)

func mustParse(t *testing.T, content string) *parser.Document {
	t.Helper()
	doc, err := parser.Parse([]byte(content))
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	return doc
}

func TestMessage(t *testing.T) {
	trans := NewTranslations()
	doc := mustParse(t, `<textList>
		<text name="greeting">Hello there.</text>
	</textList>`)
	if err := trans.LoadMessages(doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	listDoc := mustParse(t, `<FTL><textList name="OPTIONS">
		<text>First option.</text>
		<text>Second option.</text>
	</textList></FTL>`)
	list := listDoc.TopLevel("textList")[0]
	if err := trans.AddTextList(list.Attr("name"), list.FindAll("text")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("nil node", func(t *testing.T) {
		msg, err := trans.Message(nil)
		if err != nil || msg != "(no text)" {
			t.Fatalf("got %q, %v", msg, err)
		}
	})

	t.Run("literal", func(t *testing.T) {
		node := &parser.Node{Tag: "text", Text: "Inline."}
		msg, err := trans.Message(node)
		if err != nil || msg != "Inline." {
			t.Fatalf("got %q, %v", msg, err)
		}
	})

	t.Run("id lookup", func(t *testing.T) {
		node := &parser.Node{Tag: "text", Attrs: map[string]string{"id": "greeting"}}
		msg, err := trans.Message(node)
		if err != nil || msg != "Hello there." {
			t.Fatalf("got %q, %v", msg, err)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		node := &parser.Node{Tag: "text", Attrs: map[string]string{"id": "nope"}}
		if _, err := trans.Message(node); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("load takes first alternative", func(t *testing.T) {
		node := &parser.Node{Tag: "text", Attrs: map[string]string{"load": "OPTIONS"}}
		msg, err := trans.Message(node)
		if err != nil || msg != "First option." {
			t.Fatalf("got %q, %v", msg, err)
		}
	})

	t.Run("empty node", func(t *testing.T) {
		node := &parser.Node{Tag: "text", Attrs: map[string]string{}}
		msg, err := trans.Message(node)
		if err != nil || msg != "(no text)" {
			t.Fatalf("got %q, %v", msg, err)
		}
	})
}

func TestLoadMessagesDuplicate(t *testing.T) {
	trans := NewTranslations()
	doc := mustParse(t, `<textList>
		<text name="key">One.</text>
		<text name="key">Two.</text>
	</textList>`)
	if err := trans.LoadMessages(doc); !errors.Is(err, ErrDuplicateTextKey) {
		t.Fatalf("expected ErrDuplicateTextKey, got %v", err)
	}
}

func TestAddTextListDuplicate(t *testing.T) {
	trans := NewTranslations()
	if err := trans.AddTextList("L", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := trans.AddTextList("L", nil); !errors.Is(err, ErrDuplicateTextKey) {
		t.Fatalf("expected ErrDuplicateTextKey, got %v", err)
	}
}

func TestLoadBlueprints(t *testing.T) {
	trans := NewTranslations()
	doc := mustParse(t, `<FTL>
		<weaponBlueprint name="LASER_BURST_1">
			<title>Burst Laser I</title>
		</weaponBlueprint>
		<augBlueprint name="AUTO_COOLANT">
			<title>Emergency Coolant</title>
		</augBlueprint>
	</FTL>`)
	if err := trans.LoadBlueprints(doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	name, ok := trans.Blueprint("LASER_BURST_1")
	if !ok || name != "Burst Laser I" {
		t.Fatalf("got %q, %v", name, ok)
	}
	if _, ok := trans.Blueprint("MISSING"); ok {
		t.Fatalf("expected miss")
	}
}

func TestBuiltinListNames(t *testing.T) {
	trans := NewTranslations()
	// Weapon pool ids resolve without loading blueprints.xml.
	if _, ok := trans.Blueprint("WEAPONS_CRYSTAL"); !ok {
		t.Fatalf("expected builtin list name")
	}
}
