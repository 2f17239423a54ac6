// Package htmx adds helper functions for HTMX applications.
package htmx

import (
	"net/http"

	"github.com/swdunlop/stencil"
)

// RenderPage renders a full page if the HX-Target header is not present, otherwise, it uses Render to
// render the targeted part of the page.
func RenderPage(r *http.Request, page func(PartMap) []stencil.Node, parts ...stencil.Element) []stencil.Node {
	if h := r.Header.Get(`HX-Target`); h != `` {
		return render(h, parts...)
	}
	table := make(PartMap, len(parts))
	for _, part := range parts {
		table[part.ID()] = part
	}
	return page(table)
}

// Render parses the HX-Target header and returns the part with a matching id.  This will return nothing if no parts
// match.
//
// Parts with an empty ID will not be included in the output.
func Render(r *http.Request, parts ...stencil.Element) []stencil.Node {
	return render(r.Header.Get(`HX-Target`), parts...)
}

func render(target string, parts ...stencil.Element) []stencil.Node {
	if target == `` {
		return nil
	}
	for _, part := range parts {
		if part.ID() == target {
			return []stencil.Node{part}
		}
	}
	return nil
}

// Target returns the element in the document named by the HX-Target header, or the whole document if the header is
// not present.  The second result is false if the header names an element that is not in the document.
func Target(r *http.Request, doc ...stencil.Node) ([]stencil.Node, bool) {
	target := r.Header.Get(`HX-Target`)
	if target == `` {
		return doc, true
	}
	if e, ok := Find(target, doc...); ok {
		return []stencil.Node{e}, true
	}
	return nil, false
}

// Find searches the nodes depth first for an element with the provided id.
func Find(id string, nodes ...stencil.Node) (stencil.Element, bool) {
	for _, node := range nodes {
		e, ok := node.(stencil.Element)
		if !ok {
			continue
		}
		if e.ID() == id {
			return e, true
		}
		if found, ok := Find(id, e.Children()...); ok {
			return found, true
		}
	}
	return stencil.Element{}, false
}

// PartMap is a map of parts by ID provided to a page function by RenderPage.
type PartMap map[string]stencil.Element
