package payload

import "strings"

const prettyDeclaration = `<?xml version="1.0" ?>`

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;",
		"\n", "&#10;", "\r", "&#13;", "\t", "&#9;")
)

// Pretty renders the document one node per line, nested levels prefixed by
// indent. Whitespace-only text is dropped; an element whose only content is
// text stays on one line.
func (d *Document) Pretty(indent string) string {
	var b strings.Builder
	b.WriteString(prettyDeclaration)
	b.WriteByte('\n')
	for _, n := range d.Prolog {
		writeNode(&b, n, indent, 0)
	}
	if d.Root != nil {
		writeNode(&b, d.Root, indent, 0)
	}
	for _, n := range d.Epilog {
		writeNode(&b, n, indent, 0)
	}
	return b.String()
}

func writeNode(b *strings.Builder, n *Node, indent string, depth int) {
	prefix := strings.Repeat(indent, depth)
	switch n.Kind {
	case TextNode:
		b.WriteString(prefix)
		b.WriteString(textEscaper.Replace(strings.TrimSpace(n.Text)))
		b.WriteByte('\n')
	case CommentNode:
		b.WriteString(prefix + "<!--" + n.Text + "-->\n")
	case ProcInstNode:
		b.WriteString(prefix + "<?" + n.Name)
		if n.Text != "" {
			b.WriteString(" " + n.Text)
		}
		b.WriteString("?>\n")
	case DirectiveNode:
		b.WriteString(prefix + "<!" + n.Text + ">\n")
	case ElementNode:
		writeElement(b, n, indent, depth, prefix)
	}
}

func writeElement(b *strings.Builder, n *Node, indent string, depth int, prefix string) {
	b.WriteString(prefix + "<" + n.Name)
	for _, a := range n.Attrs {
		b.WriteString(" " + a.Name + `="` + attrEscaper.Replace(a.Value) + `"`)
	}

	children := significant(n.Children)
	switch {
	case len(children) == 0:
		b.WriteString("/>\n")
	case len(children) == 1 && children[0].Kind == TextNode:
		b.WriteString(">" + textEscaper.Replace(children[0].Text) + "</" + n.Name + ">\n")
	default:
		b.WriteString(">\n")
		for _, c := range children {
			writeNode(b, c, indent, depth+1)
		}
		b.WriteString(prefix + "</" + n.Name + ">\n")
	}
}

func significant(nodes []*Node) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if n.Kind == TextNode && strings.TrimSpace(n.Text) == "" {
			continue
		}
		out = append(out, n)
	}
	return out
}
