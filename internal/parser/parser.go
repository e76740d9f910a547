package parser

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Node is a generic structured XML node: tag, attributes, the text that
// precedes the first child element, and ordered children. The graph builder
// consumes these without knowing anything about encoding/xml.
type Node struct {
	Tag      string
	Attrs    map[string]string
	Text     string
	Children []*Node
}

type Document struct {
	Nodes      []*Node
	SourceFile string
}

var ErrEmptyDocument = errors.New("document has no root element")

// Attr returns the value of the named attribute, or "" if absent.
func (n *Node) Attr(name string) string {
	if n == nil {
		return ""
	}
	return n.Attrs[name]
}

// HasAttr reports whether the attribute is present, even when empty.
func (n *Node) HasAttr(name string) bool {
	if n == nil {
		return false
	}
	_, ok := n.Attrs[name]
	return ok
}

// Find returns the first child with the given tag, or nil.
func (n *Node) Find(tag string) *Node {
	if n == nil {
		return nil
	}
	for _, child := range n.Children {
		if child.Tag == tag {
			return child
		}
	}
	return nil
}

// FindAll returns all children with the given tag, in document order.
func (n *Node) FindAll(tag string) []*Node {
	if n == nil {
		return nil
	}
	var nodes []*Node
	for _, child := range n.Children {
		if child.Tag == tag {
			nodes = append(nodes, child)
		}
	}
	return nodes
}

// TopLevel returns the document's top-level elements with the given tag.
// The root element itself is a container (<FTL> or similar) and is skipped.
func (d *Document) TopLevel(tag string) []*Node {
	var nodes []*Node
	for _, node := range d.Nodes {
		if node.Tag == tag {
			nodes = append(nodes, node)
		}
	}
	return nodes
}

func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	doc.SourceFile = path
	return doc, nil
}

func Parse(content []byte) (*Document, error) {
	decoder := xml.NewDecoder(strings.NewReader(string(content)))
	decoder.Strict = false

	var root *Node
	var stack []*Node
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch tok := token.(type) {
		case xml.StartElement:
			node := &Node{
				Tag:   tok.Name.Local,
				Attrs: make(map[string]string, len(tok.Attr)),
			}
			for _, attr := range tok.Attr {
				node.Attrs[attr.Name.Local] = attr.Value
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			} else if root == nil {
				root = node
			}
			stack = append(stack, node)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			current := stack[len(stack)-1]
			if len(current.Children) == 0 {
				current.Text += string(tok)
			}
		}
	}

	if root == nil {
		return nil, ErrEmptyDocument
	}

	for _, node := range allNodes(root) {
		node.Text = strings.TrimSpace(node.Text)
	}

	return &Document{Nodes: root.Children}, nil
}

func allNodes(root *Node) []*Node {
	nodes := []*Node{root}
	for i := 0; i < len(nodes); i++ {
		nodes = append(nodes, nodes[i].Children...)
	}
	return nodes
}

// LoadDir parses every .xml file directly under dir, sorted by filename so
// that downstream processing does not depend on directory iteration order.
func LoadDir(dir string) ([]*Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading data directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".xml") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	docs := make([]*Document, 0, len(names))
	for _, name := range names {
		doc, err := ParseFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
