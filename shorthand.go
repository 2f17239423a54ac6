package stencil

import "strings"

// ParseShorthand converts a selector-style shorthand such as "#main-title.big-title" into id and class attributes.
//
// The shorthand is split on ".".  If the first segment starts with "#", the rest of it becomes the id; otherwise the
// first segment is a class.  Every later segment is a class, even if it starts with "#".  Empty segments are
// ignored, and an attribute is omitted if it would be empty, so ParseShorthand never fails.
func ParseShorthand(shorthand string) Attrs {
	if shorthand == `` {
		return Attrs{}
	}
	segments := strings.Split(shorthand, `.`)
	var id string
	classes := make([]string, 0, len(segments))
	for i, segment := range segments {
		switch {
		case segment == ``:
		case i == 0 && strings.HasPrefix(segment, `#`):
			id = segment[1:]
		default:
			classes = append(classes, segment)
		}
	}

	attrs := make([]Attr, 0, 2)
	if id != `` {
		attrs = append(attrs, Set(`id`, id))
	}
	if len(classes) > 0 {
		attrs = append(attrs, Set(`class`, strings.Join(classes, ` `)))
	}
	return NewAttrs(attrs...)
}
