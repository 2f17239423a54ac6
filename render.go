package stencil

import "fmt"

// Render renders the provided nodes, in order, into a single string.  Rendering has no side effects, so the same
// tree may be rendered any number of times, concurrently, with identical results.
func Render(nodes ...Node) string {
	return string(Append(make([]byte, 0, 1024), nodes...))
}

// Append appends the HTML for each of the provided nodes to the buffer.
func Append(buf []byte, nodes ...Node) []byte {
	for _, node := range nodes {
		buf = appendNode(buf, node)
	}
	return buf
}

func appendNode(buf []byte, node Node) []byte {
	switch node := node.(type) {
	case Element:
		return appendElement(buf, node)
	case Text:
		return append(buf, node.content...)
	case RawText:
		return append(buf, node...)
	case Declaration:
		return append(buf, node...)
	default:
		panic(fmt.Errorf(`unknown node type %T`, node))
	}
}

func appendElement(buf []byte, e Element) []byte {
	buf = append(buf, '<')
	buf = append(buf, e.tag...)
	if len(e.attrs.list) > 0 {
		buf = append(buf, ' ')
		buf = appendAttrs(buf, e.attrs.list)
	}
	buf = append(buf, '>')
	if e.void {
		return buf
	}
	for _, child := range e.children {
		buf = appendNode(buf, child)
	}
	buf = append(buf, '<', '/')
	buf = append(buf, e.tag...)
	return append(buf, '>')
}

// appendAttrs appends the attribute list separated by single spaces, with no leading or trailing space.
func appendAttrs(buf []byte, attrs []Attr) []byte {
	for i, attr := range attrs {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, attr.Name...)
		switch value := attr.Value.(type) {
		case flag:
		case String:
			// NOTE: attribute values are inserted verbatim; only Text is escaped.
			buf = append(buf, '=', '"')
			buf = append(buf, value...)
			buf = append(buf, '"')
		default:
			panic(fmt.Errorf(`unknown attribute value type %T for %q`, value, attr.Name))
		}
	}
	return buf
}
