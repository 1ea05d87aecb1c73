package payload

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

type Kind int

const (
	ElementNode Kind = iota
	TextNode
	CommentNode
	ProcInstNode
	DirectiveNode
)

type Attr struct {
	Name  string
	Value string
}

// Node is one entry of the document tree. Name holds the element name or the
// processing-instruction target; Text holds character data, comment,
// instruction or directive content.
type Node struct {
	Kind     Kind
	Name     string
	Attrs    []Attr
	Text     string
	Children []*Node
}

// Document is the parsed trailing payload.
type Document struct {
	// Source is the exact text handed to Parse.
	Source string
	// Declaration is the content of the leading <?xml ...?> instruction.
	Declaration string
	Prolog      []*Node
	Root        *Node
	Epilog      []*Node
}

// Parse checks that text is a well-formed markup document and builds its tree.
func Parse(text string) (*Document, error) {
	dec := xml.NewDecoder(strings.NewReader(text))
	dec.Strict = true
	// Input is already decoded to UTF-8 by Locate whatever the declaration says.
	dec.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	doc := &Document{Source: text}
	var stack []*Node
	for first := true; ; first = false {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, malformed(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Kind: ElementNode, Name: qualifiedName(t.Name)}
			if err := n.setAttrs(t.Attr); err != nil {
				return nil, err
			}
			if len(stack) == 0 {
				if doc.Root != nil {
					return nil, malformedf("second root element <%s> after <%s>", n.Name, doc.Root.Name)
				}
				doc.Root = n
			} else {
				top := stack[len(stack)-1]
				top.Children = append(top.Children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			name := qualifiedName(t.Name)
			if len(stack) == 0 {
				return nil, malformedf("unexpected end element </%s>", name)
			}
			if top := stack[len(stack)-1]; top.Name != name {
				return nil, malformedf("element <%s> closed by </%s>", top.Name, name)
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				if len(bytes.TrimSpace(t)) != 0 {
					return nil, malformedf("character data outside root element")
				}
				continue
			}
			stack[len(stack)-1].appendText(string(t))
		case xml.Comment:
			doc.attach(stack, &Node{Kind: CommentNode, Text: string(t)})
		case xml.ProcInst:
			if strings.EqualFold(t.Target, "xml") {
				if !first || t.Target != "xml" {
					return nil, malformedf("XML declaration not at start of document")
				}
				doc.Declaration = string(t.Inst)
				continue
			}
			doc.attach(stack, &Node{Kind: ProcInstNode, Name: t.Target, Text: string(t.Inst)})
		case xml.Directive:
			doc.attach(stack, &Node{Kind: DirectiveNode, Text: string(t)})
		}
	}

	if len(stack) > 0 {
		return nil, malformedf("unexpected EOF: element <%s> not closed", stack[len(stack)-1].Name)
	}
	if doc.Root == nil {
		return nil, malformedf("no root element")
	}
	return doc, nil
}

func (d *Document) attach(stack []*Node, n *Node) {
	switch {
	case len(stack) > 0:
		top := stack[len(stack)-1]
		top.Children = append(top.Children, n)
	case d.Root == nil:
		d.Prolog = append(d.Prolog, n)
	default:
		d.Epilog = append(d.Epilog, n)
	}
}

// Find returns the elements reached by following path from the root. The
// first step names the root itself.
func (d *Document) Find(path ...string) []*Node {
	if d.Root == nil || len(path) == 0 || d.Root.Name != path[0] {
		return nil
	}
	matches := []*Node{d.Root}
	for _, step := range path[1:] {
		var next []*Node
		for _, m := range matches {
			for _, c := range m.Elements() {
				if c.Name == step {
					next = append(next, c)
				}
			}
		}
		matches = next
	}
	return matches
}

func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Elements returns the element children of n.
func (n *Node) Elements() []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Kind == ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// InnerText concatenates all text below n.
func (n *Node) InnerText() string {
	var b strings.Builder
	var walk func(*Node)
	walk = func(cur *Node) {
		if cur.Kind == TextNode {
			b.WriteString(cur.Text)
			return
		}
		for _, c := range cur.Children {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func (n *Node) setAttrs(attrs []xml.Attr) error {
	if len(attrs) == 0 {
		return nil
	}
	n.Attrs = make([]Attr, 0, len(attrs))
	for _, a := range attrs {
		name := qualifiedName(a.Name)
		if _, dup := n.Attr(name); dup {
			return malformedf("duplicate attribute %q on <%s>", name, n.Name)
		}
		n.Attrs = append(n.Attrs, Attr{Name: name, Value: a.Value})
	}
	return nil
}

func (n *Node) appendText(s string) {
	if last := len(n.Children) - 1; last >= 0 && n.Children[last].Kind == TextNode {
		n.Children[last].Text += s
		return
	}
	n.Children = append(n.Children, &Node{Kind: TextNode, Text: s})
}

func qualifiedName(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return name.Space + ":" + name.Local
}
