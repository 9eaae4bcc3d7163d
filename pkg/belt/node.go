package belt

import (
	"slices"

	"golang.org/x/net/html"
)

// NodeType is the node-type marker carried by document nodes. The values
// follow the DOM numbering.
type NodeType int

const (
	ElementNode      NodeType = 1
	TextNode         NodeType = 3
	CommentNode      NodeType = 8
	DocumentNode     NodeType = 9
	DocumentTypeNode NodeType = 10
)

// Node is any value exposing a node-type marker. Text nodes report their
// character data from NodeValue; other nodes may return "".
type Node interface {
	NodeType() NodeType
	NodeValue() string
}

// NodeCloner is a Node that can duplicate itself. Clone delegates to
// CloneNode(true) for such values.
type NodeCloner interface {
	Node
	CloneNode(deep bool) Node
}

// htmlNode adapts *html.Node to Node.
type htmlNode struct {
	n *html.Node
}

func (h htmlNode) NodeType() NodeType {
	switch h.n.Type {
	case html.ElementNode:
		return ElementNode
	case html.TextNode:
		return TextNode
	case html.CommentNode:
		return CommentNode
	case html.DocumentNode:
		return DocumentNode
	case html.DoctypeNode:
		return DocumentTypeNode
	default:
		return 0
	}
}

func (h htmlNode) NodeValue() string {
	switch h.n.Type {
	case html.TextNode, html.CommentNode:
		return h.n.Data
	default:
		return ""
	}
}

// cloneHTML duplicates n and all of its descendants. The copy is detached:
// it has no parent or siblings.
func cloneHTML(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      slices.Clone(n.Attr),
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(cloneHTML(child))
	}
	return c
}
