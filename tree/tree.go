// Package tree decodes documents described in JSON into stencil nodes, so documents can be kept in files and
// rendered by the stencil command or the preview server.
//
// Each node is one of the following JSON values:
//
//   - "text": a string is escaped text.
//   - {"text": "..."}: escaped text.
//   - {"raw": "..."}: text that is rendered verbatim.
//   - {"doctype": "<!DOCTYPE html>"}: a declaration that is rendered verbatim.
//   - {"tag": "div", "sel": "#id.class", "attrs": {...}, "children": [...]}: an element.
//   - [...]: a fragment of nodes, spliced into its parent.
//
// Attributes keep the order of the JSON object.  A string or number is a value, true is a boolean attribute, and
// false or null omits the attribute.  Attributes from "sel" come first and may be overridden by "attrs".
package tree

import (
	"fmt"
	"os"
	"strconv"

	"github.com/swdunlop/stencil"
	"github.com/tidwall/gjson"
)

// ParseFile reads and parses a JSON document from a file.
func ParseFile(path string) ([]stencil.Node, error) {
	js, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	nodes, err := Parse(js)
	if err != nil {
		return nil, fmt.Errorf(`%w in %v`, err, path)
	}
	return nodes, nil
}

// Parse parses a JSON document into a list of nodes.  A document that is not a fragment produces a single node.
func Parse(js []byte) ([]stencil.Node, error) {
	if !gjson.ValidBytes(js) {
		return nil, fmt.Errorf(`invalid JSON`)
	}
	return appendNodes(nil, gjson.ParseBytes(js), ``)
}

// An Error describes a JSON value that could not be converted into a node.
type Error struct {
	Path string // Path is a GJSON-style path to the value, such as .children.0.attrs.
	Msg  string
}

func (err *Error) Error() string {
	if err.Path == `` {
		return err.Msg + ` at the document root`
	}
	return err.Msg + ` at ` + err.Path
}

func fail(path string, format string, args ...any) error {
	return &Error{Path: path, Msg: fmt.Sprintf(format, args...)}
}

func appendNodes(nodes []stencil.Node, data gjson.Result, path string) ([]stencil.Node, error) {
	switch {
	case data.IsArray():
		for ix, value := range data.Array() {
			var err error
			nodes, err = appendNodes(nodes, value, path+`.`+strconv.Itoa(ix))
			if err != nil {
				return nodes, err
			}
		}
		return nodes, nil
	case data.Type == gjson.String:
		return append(nodes, stencil.NewText(data.Str)), nil
	case data.IsObject():
		node, err := parseObject(data, path)
		if err != nil {
			return nodes, err
		}
		return append(nodes, node), nil
	default:
		return nodes, fail(path, `expected a string, object or array, not %v`, data.Type)
	}
}

func parseObject(data gjson.Result, path string) (stencil.Node, error) {
	switch {
	case data.Get(`tag`).Exists():
		return parseElement(data, path)
	case data.Get(`text`).Exists():
		text, err := str(data.Get(`text`), path+`.text`)
		return stencil.NewText(text), err
	case data.Get(`raw`).Exists():
		raw, err := str(data.Get(`raw`), path+`.raw`)
		return stencil.RawText(raw), err
	case data.Get(`doctype`).Exists():
		decl, err := str(data.Get(`doctype`), path+`.doctype`)
		return stencil.Declaration(decl), err
	default:
		return nil, fail(path, `expected one of tag, text, raw or doctype`)
	}
}

func parseElement(data gjson.Result, path string) (stencil.Node, error) {
	name, err := str(data.Get(`tag`), path+`.tag`)
	if err != nil {
		return nil, err
	}
	if name == `` {
		return nil, fail(path+`.tag`, `empty tag name`)
	}

	var attrs stencil.Attrs
	if sel := data.Get(`sel`); sel.Exists() {
		shorthand, err := str(sel, path+`.sel`)
		if err != nil {
			return nil, err
		}
		attrs = stencil.ParseShorthand(shorthand)
	}
	if data := data.Get(`attrs`); data.Exists() {
		list, err := parseAttrs(data, path+`.attrs`)
		if err != nil {
			return nil, err
		}
		attrs = attrs.With(list...)
	}

	var children []stencil.Node
	if data := data.Get(`children`); data.Exists() {
		if !data.IsArray() {
			return nil, fail(path+`.children`, `expected an array, not %v`, data.Type)
		}
		children, err = appendNodes(nil, data, path+`.children`)
		if err != nil {
			return nil, err
		}
	}
	return stencil.NewElement(name, attrs, children...), nil
}

func parseAttrs(data gjson.Result, path string) ([]stencil.Attr, error) {
	if !data.IsObject() {
		return nil, fail(path, `expected an object, not %v`, data.Type)
	}
	var (
		attrs []stencil.Attr
		err   error
	)
	data.ForEach(func(key, value gjson.Result) bool {
		switch value.Type {
		case gjson.String:
			attrs = append(attrs, stencil.Set(key.Str, value.Str))
		case gjson.Number:
			attrs = append(attrs, stencil.Set(key.Str, value.Raw))
		case gjson.True:
			attrs = append(attrs, stencil.Bool(key.Str))
		case gjson.False, gjson.Null:
		default:
			err = fail(path+`.`+key.Str, `unsupported attribute value %v`, value.Type)
		}
		return err == nil
	})
	return attrs, err
}

func str(data gjson.Result, path string) (string, error) {
	if data.Type != gjson.String {
		return ``, fail(path, `expected a string, not %v`, data.Type)
	}
	return data.Str, nil
}

// Count returns the number of nodes in a node list, including the descendants of elements.
func Count(nodes []stencil.Node) int {
	n := len(nodes)
	for _, node := range nodes {
		if e, ok := node.(stencil.Element); ok {
			n += Count(e.Children())
		}
	}
	return n
}
