package stencil

import (
	"slices"
	"strings"
)

// An AttrValue is either a String or Flag.
type AttrValue interface {
	attrValue()
}

// String is an attribute value that is rendered as name="value".  The value is not escaped.
type String string

func (String) attrValue() {}

type flag bool

func (flag) attrValue() {}

// Flag is the value of a boolean attribute, such as required or checked, which is rendered as its bare name.
const Flag flag = true

// Attr is a single attribute of an element.
type Attr struct {
	Name  string
	Value AttrValue
}

// Set returns an attribute with a string value.
func Set(name, value string) Attr { return Attr{name, String(value)} }

// Bool returns a boolean attribute.
func Bool(name string) Attr { return Attr{name, Flag} }

// Attrs is an ordered collection of attributes with unique names.  The zero value is an empty collection.  Attrs
// are never modified in place; With returns a new collection.
type Attrs struct {
	list []Attr
}

// NewAttrs merges the provided attributes, in order, into a new collection.  See With for how duplicate names are
// handled.
func NewAttrs(attrs ...Attr) Attrs {
	return Attrs{}.With(attrs...)
}

// With returns a copy of the collection with the provided attributes merged in order.  When a name is already
// present, its value is replaced but it keeps the position where it was first seen.  Attributes with a blank name
// (empty or only whitespace) or a nil value are ignored.
func (a Attrs) With(attrs ...Attr) Attrs {
	if len(attrs) == 0 {
		return a
	}
	list := slices.Grow(slices.Clone(a.list), len(attrs))
	for _, attr := range attrs {
		if strings.TrimSpace(attr.Name) == `` || attr.Value == nil {
			continue
		}
		ix := slices.IndexFunc(list, func(prev Attr) bool { return prev.Name == attr.Name })
		if ix < 0 {
			list = append(list, attr)
		} else {
			list[ix].Value = attr.Value
		}
	}
	return Attrs{list}
}

// Len returns the number of attributes in the collection.
func (a Attrs) Len() int { return len(a.list) }

// Get returns the value of the named attribute, if present.
func (a Attrs) Get(name string) (AttrValue, bool) {
	for _, attr := range a.list {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return nil, false
}

// All returns a copy of the attributes in the order they will be rendered.
func (a Attrs) All() []Attr { return slices.Clone(a.list) }
