// Package tag provides a system of functional options that build stencil elements programmatically.
package tag

import (
	"strings"

	"github.com/swdunlop/stencil"
)

// Draft is an element under construction.  Options modify a Draft, which New and Factory then freeze into an
// immutable stencil.Element.
type Draft struct {
	Name    string
	Attrs   []stencil.Attr
	Content []stencil.Node
}

// Element freezes the draft into an element.  Content given to a void element is dropped.
func (d Draft) Element() stencil.Element {
	return stencil.NewElement(d.Name, stencil.NewAttrs(d.Attrs...), d.Content...)
}

// New constructs a new element and applies the provided options.  The name may carry a shorthand selector, so
// New(`div#main.wide`) is a div with the id "main" and the class "wide".  An empty name, as in New(`#main`), is a div.
func New(name string, options ...Option) stencil.Element {
	draft := newDraft(name)
	for _, option := range options {
		option(&draft)
	}
	return draft.Element()
}

// Factory constructs an element factory using functional options.  This is generally used to stamp out basic
// HTML element functions, applying some basic options as a template.
func Factory(name string, options ...Option) func(...Option) stencil.Element {
	base := newDraft(name)
	for _, option := range options {
		option(&base)
	}
	return func(options ...Option) stencil.Element {
		draft := base.clone()
		for _, option := range options {
			option(&draft)
		}
		return draft.Element()
	}
}

func newDraft(name string) Draft {
	var draft Draft
	if ofs := strings.IndexAny(name, `#.`); ofs < 0 {
		draft.Name = name
	} else {
		draft.Name, draft.Attrs = name[:ofs], stencil.ParseShorthand(name[ofs:]).All()
	}
	if draft.Name == `` {
		draft.Name = `div`
	}
	return draft
}

func (d Draft) clone() Draft {
	d.Attrs = append([]stencil.Attr(nil), d.Attrs...)
	d.Content = append([]stencil.Node(nil), d.Content...)
	return d
}

// Static renders its contents once and appends the result inside the tag.
func Static(contents ...stencil.Node) Option {
	return Content(stencil.Static(contents...))
}

// Text appends escaped text content inside the tag.
func Text(text string) Option {
	return Content(stencil.NewText(text))
}

// Raw appends text inside the tag without escaping it.  This is appropriate for script and style bodies.
func Raw(text string) Option {
	return Content(stencil.RawText(text))
}

// Content appends content inside the tag.
func Content(contents ...stencil.Node) Option {
	return func(draft *Draft) {
		draft.Content = append(draft.Content, contents...)
	}
}

// ID sets the id attribute on the tag.
func ID(id string) Option {
	return Attr(`id`, id)
}

// Class sets the class attribute on the tag, replacing any classes set before.
func Class(classes ...string) Option {
	return Attr(`class`, strings.Join(classes, ` `))
}

// Select applies the id and classes in a shorthand selector like "#main.wide" to the tag.
func Select(shorthand string) Option {
	attrs := stencil.ParseShorthand(shorthand).All()
	return func(draft *Draft) {
		draft.Attrs = append(draft.Attrs, attrs...)
	}
}

// Attr sets an attribute on the tag.  If the attribute was already set, its value is replaced.
func Attr(name, value string) Option {
	return func(draft *Draft) {
		draft.Attrs = append(draft.Attrs, stencil.Set(name, value))
	}
}

// Flag sets a boolean attribute, such as required, on the tag.
func Flag(name string) Option {
	return func(draft *Draft) {
		draft.Attrs = append(draft.Attrs, stencil.Bool(name))
	}
}

// Apply applies a series of options as an option.
func Apply(options ...Option) Option {
	return func(draft *Draft) {
		for _, option := range options {
			option(draft)
		}
	}
}

// An Option affects an element under construction.
type Option func(*Draft)
