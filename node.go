// Package stencil implements an immutable model of HTML documents that can be built programmatically and rendered
// deterministically to a string.
//
// A document is a tree of Node values.  There are exactly four kinds of node: Element, Text, RawText and
// Declaration.  Text is escaped when it is constructed, never when it is rendered, so rendering is a pure traversal.
// Attribute values are inserted verbatim; use Escape on untrusted values before handing them to an attribute.
package stencil

import "slices"

// A Node is one of Element, Text, RawText or Declaration.  The set is closed; no other package can add a kind.
type Node interface {
	node()
}

// An Element is an HTML tag with its attributes and content.  Elements are created with NewElement and cannot be
// changed afterwards.
type Element struct {
	tag      string
	attrs    Attrs
	children []Node
	void     bool
}

// NewElement constructs an element.  If the tag is a void element (see IsVoid), the children are dropped: a void
// element never has content and is rendered without a closing tag.
func NewElement(tag string, attrs Attrs, children ...Node) Element {
	e := Element{tag: tag, attrs: attrs, void: IsVoid(tag)}
	if !e.void && len(children) > 0 {
		e.children = slices.Clone(children)
	}
	return e
}

func (Element) node() {}

// Tag returns the tag name of the element.
func (e Element) Tag() string { return e.tag }

// Attrs returns the attributes of the element.
func (e Element) Attrs() Attrs { return e.attrs }

// Children returns a copy of the content of the element.
func (e Element) Children() []Node { return slices.Clone(e.children) }

// Void reports whether the element is rendered without content or a closing tag.
func (e Element) Void() bool { return e.void }

// ID returns the value of the id attribute, or an empty string if the element has none or it is a Flag.
func (e Element) ID() string {
	if v, ok := e.attrs.Get(`id`); ok {
		if s, ok := v.(String); ok {
			return string(s)
		}
	}
	return ``
}

// String implements fmt.Stringer by rendering the element.
func (e Element) String() string { return Render(e) }

// Text is character data found outside of an HTML tag.  Its content is escaped when the Text is constructed.
type Text struct {
	content string
}

// NewText escapes the provided string and wraps it as a Text node.
func NewText(text string) Text { return Text{Escape(text)} }

func (Text) node() {}

// Content returns the escaped content of the text node.
func (t Text) Content() string { return t.content }

// RawText is content that is rendered verbatim.  The caller is responsible for ensuring that it is safe, which makes
// RawText appropriate for the body of a script or style tag, and for pre-rendered content produced by Static.
type RawText string

func (RawText) node() {}

// Declaration is a literal preamble, such as a doctype, that is rendered verbatim.
type Declaration string

func (Declaration) node() {}

// HTML5 is the most frequently used doctype.
const HTML5 = Declaration(`<!DOCTYPE html>`)

// Document returns a declaration followed by the root of a document, ready to be passed to Render.
func Document(decl Declaration, root Node) []Node {
	return []Node{decl, root}
}

// Static renders the provided nodes once into RawText, speeding up subsequent rendering of content that never
// changes.
func Static(nodes ...Node) RawText {
	return RawText(Append(make([]byte, 0, 1024), nodes...))
}
