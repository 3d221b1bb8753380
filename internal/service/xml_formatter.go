package service

import (
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
)

const (
	defaultIndent        = "\t"
	defaultLineSeparator = "\r\n"

	xmlNamespaceURI = "http://www.w3.org/XML/1998/namespace"
)

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

// XMLFormatter pretty-prints XML with one indent unit per nesting level.
// Every element, text run, comment and CDATA section gets its own line, except
// inside xml:space="preserve" elements, which are written verbatim on one line.
type XMLFormatter struct {
	indent        string
	lineSeparator string
}

// NewXMLFormatter creates a tab-indenting, CRLF-separated formatter
func NewXMLFormatter() *XMLFormatter {
	return &XMLFormatter{
		indent:        defaultIndent,
		lineSeparator: defaultLineSeparator,
	}
}

// Format parses text leniently and re-indents it.
func (f *XMLFormatter) Format(text string) (string, error) {
	doc, err := xmlquery.ParseWithOptions(strings.NewReader(text), xmlquery.ParserOptions{
		// Corrupted documents often carry unknown entities or mismatched end tags.
		Decoder: &xmlquery.DecoderOptions{Strict: false},
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse xml: %w", err)
	}

	// The parser invents an <?xml version="1.0"?> node when the input has none.
	declared := hasDeclaration(text)

	var lines []string
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.DeclarationNode && !declared {
			declared = true
			continue
		}
		lines = f.appendNode(lines, n, 0)
	}
	return strings.Join(lines, f.lineSeparator), nil
}

func hasDeclaration(text string) bool {
	return strings.HasPrefix(strings.TrimLeft(text, "\ufeff \t\r\n"), "<?xml")
}

func (f *XMLFormatter) appendNode(lines []string, n *xmlquery.Node, depth int) []string {
	pad := strings.Repeat(f.indent, depth)

	switch n.Type {
	case xmlquery.DeclarationNode:
		return append(lines, pad+"<?"+n.Data+formatAttrs(n.Attr)+"?>")

	case xmlquery.ProcessingInstruction:
		return append(lines, pad+formatProcInst(n))

	case xmlquery.ElementNode:
		if preservesSpace(n) {
			var sb strings.Builder
			writeInline(&sb, n)
			return append(lines, pad+sb.String())
		}
		name := qualifiedName(n.Prefix, n.Data)
		open := pad + "<" + name + formatAttrs(n.Attr)
		if !hasContent(n) {
			return append(lines, open+"/>")
		}
		lines = append(lines, open+">")
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			lines = f.appendNode(lines, c, depth+1)
		}
		return append(lines, pad+"</"+name+">")

	case xmlquery.TextNode:
		t := strings.TrimSpace(n.Data)
		if t == "" {
			return lines
		}
		return append(lines, pad+textEscaper.Replace(t))

	case xmlquery.CharDataNode:
		return append(lines, pad+"<![CDATA["+n.Data+"]]>")

	case xmlquery.CommentNode:
		return append(lines, pad+"<!--"+n.Data+"-->")

	case xmlquery.NotationNode:
		return append(lines, pad+"<!"+n.Data+">")
	}
	return lines
}

// writeInline serializes n and its subtree without adding or trimming whitespace.
func writeInline(sb *strings.Builder, n *xmlquery.Node) {
	switch n.Type {
	case xmlquery.ElementNode:
		name := qualifiedName(n.Prefix, n.Data)
		sb.WriteString("<" + name + formatAttrs(n.Attr))
		if n.FirstChild == nil {
			sb.WriteString("/>")
			return
		}
		sb.WriteByte('>')
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeInline(sb, c)
		}
		sb.WriteString("</" + name + ">")
	case xmlquery.TextNode:
		sb.WriteString(textEscaper.Replace(n.Data))
	case xmlquery.CharDataNode:
		sb.WriteString("<![CDATA[" + n.Data + "]]>")
	case xmlquery.CommentNode:
		sb.WriteString("<!--" + n.Data + "-->")
	case xmlquery.ProcessingInstruction:
		sb.WriteString(formatProcInst(n))
	}
}

func preservesSpace(n *xmlquery.Node) bool {
	for _, a := range n.Attr {
		if a.Name.Local == "space" && (a.Name.Space == "xml" || a.Name.Space == xmlNamespaceURI) {
			return a.Value == "preserve"
		}
	}
	return false
}

func formatProcInst(n *xmlquery.Node) string {
	if n.ProcInst == nil || n.ProcInst.Inst == "" {
		return "<?" + n.Data + "?>"
	}
	return "<?" + n.ProcInst.Target + " " + n.ProcInst.Inst + "?>"
}

// hasContent reports whether an element has anything besides whitespace.
func hasContent(n *xmlquery.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.TextNode && strings.TrimSpace(c.Data) == "" {
			continue
		}
		return true
	}
	return false
}

func formatAttrs(attrs []xmlquery.Attr) string {
	if len(attrs) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, a := range attrs {
		sb.WriteByte(' ')
		sb.WriteString(qualifiedName(a.Name.Space, a.Name.Local))
		sb.WriteString(`="`)
		sb.WriteString(attrEscaper.Replace(a.Value))
		sb.WriteByte('"')
	}
	return sb.String()
}

// qualifiedName drops a prefix that is really an unresolved namespace URI.
func qualifiedName(prefix, local string) string {
	if prefix == "" || strings.ContainsAny(prefix, ":/") {
		return local
	}
	return prefix + ":" + local
}
