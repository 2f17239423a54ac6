// Package dataview provides a way to view Go values as tabular HTML if the values can be represented as JSON.
package dataview

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"

	"github.com/swdunlop/stencil"
	"github.com/swdunlop/stencil/tag"
	"github.com/tidwall/gjson"
)

// Stylesheet will return the structural CSS needed to render the dataview.  The options are currently ignored, but are
// present in case we need to add options like a class prefix in the future.
func Stylesheet(options ...Option) string {
	return stylesheet
}

const stylesheet = `
.object, .array, .table { display: grid; width: fit-content; }
.row { display: contents; }
.object { grid-template-columns: minmax(min-content, max-content) 1fr; }
`

// From converts a Go value into HTML, converting it into JSON first and parsing it with GJSON.
func From(data any, options ...Option) (stencil.Node, error) {
	js, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf(`could not encode %T as JSON: %w`, data, err)
	}
	return FromJSON(js, options...)
}

// FromJSON converts a JSON document into HTML, parsing it with GJSON.
func FromJSON(js []byte, options ...Option) (stencil.Node, error) {
	if !gjson.ValidBytes(js) {
		return nil, fmt.Errorf(`invalid JSON`)
	}
	return FromGJSON(gjson.ParseBytes(js), options...), nil
}

// FromGJSON converts a GJSON result into HTML.  This is the most efficient way to use dataview if you already
// have a GJSON result.
func FromGJSON(data gjson.Result, options ...Option) stencil.Node {
	cfg := &config{}
	for _, option := range options {
		option(cfg)
	}
	return cfg.asNode(data, ``)
}

// Hook registers a function that replaces how a value is rendered if the path to the value matches the provided
// pattern.
//
// Patterns are regex patterns that match paths like .persons.0.name or .persons.0.address.city.
// If a hook returns nil, the default rendering is used.
func Hook(rx *regexp.Regexp, hookFn func(path string, data gjson.Result) stencil.Node) Option {
	return func(cfg *config) {
		cfg.hooks = append(cfg.hooks, hook{rx, hookFn})
	}
}

// TableHook registers a function that converts an array containing at least one object into some other GJSON result
// if the path to the array matches the provided pattern.  TableHooks are applied before Hooks and use the same path
// syntax.
func TableHook(rx *regexp.Regexp, hookFn func(path string, data gjson.Result) gjson.Result) Option {
	return func(cfg *config) {
		cfg.tableHooks = append(cfg.tableHooks, tableHook{rx, hookFn})
	}
}

type Option func(*config)

type config struct {
	hooks      []hook
	tableHooks []tableHook
}

type hook struct {
	rx   *regexp.Regexp
	hook func(path string, data gjson.Result) stencil.Node
}

type tableHook struct {
	rx   *regexp.Regexp
	hook func(path string, data gjson.Result) gjson.Result
}

var (
	div    = tag.Factory(`div`)
	span   = tag.Factory(`span`)
	na     = div(tag.Class(`value`, `na`), tag.Text(`N/A`))
	null   = span(tag.Class(`null`), tag.Text(`null`))
	falsy  = span(tag.Class(`bool`), tag.Text(`false`))
	truthy = span(tag.Class(`bool`), tag.Text(`true`))
	empty  = div(tag.Class(`array`, `empty`), tag.Text(`[]`))
)

func (cfg *config) asNode(data gjson.Result, path string) stencil.Node {
	if isTabular(data) {
		for _, hook := range cfg.tableHooks {
			if hook.rx.MatchString(path) {
				data = hook.hook(path, data)
			}
		}
		if isTabular(data) {
			if node := cfg.applyHooks(data, path); node != nil {
				return node
			}
			return cfg.tableAsNode(data, path)
		}
	}
	if node := cfg.applyHooks(data, path); node != nil {
		return node
	}
	return cfg.render(data, path)
}

func (cfg *config) applyHooks(data gjson.Result, path string) stencil.Node {
	for _, hook := range cfg.hooks {
		if hook.rx.MatchString(path) {
			if node := hook.hook(path, data); node != nil {
				return node
			}
		}
	}
	return nil
}

func (cfg *config) render(data gjson.Result, path string) stencil.Node {
	switch data.Type {
	case gjson.Null:
		return null
	case gjson.False:
		return falsy
	case gjson.True:
		return truthy
	case gjson.Number:
		if len(data.Raw) > 0 {
			return stencil.NewText(data.Raw)
		}
		return stencil.NewText(data.String())
	case gjson.String:
		return stencil.NewText(data.String())
	default:
		switch {
		case data.IsArray():
			return cfg.arrayAsNode(data, path)
		case data.IsObject():
			return cfg.objectAsNode(data, path)
		default:
			panic(fmt.Errorf(`unknown gjson type %v at %q`, data.Type, path))
		}
	}
}

func (cfg *config) arrayAsNode(data gjson.Result, path string) stencil.Node {
	seq := data.Array()
	if len(seq) == 0 {
		return empty
	}
	items := make([]stencil.Node, 0, len(seq))
	path += "."
	for ix, value := range seq {
		items = append(items, div(tag.Class(`value`), tag.Content(cfg.asNode(value, path+strconv.Itoa(ix)))))
	}
	return div(tag.Class(`array`), tag.Content(items...))
}

func (cfg *config) tableAsNode(data gjson.Result, path string) stencil.Node {
	seq := data.Array()
	// We do two passes, one to identify all of the keys of any embedded objects, and another to build a table where
	// each item has a row.
	//
	// This must tolerate mixtures of objects and slices or literals.
	var columns = struct {
		labels []string
		index  map[string]int
	}{
		make([]string, 0, 32),
		make(map[string]int, 32),
	}

	for _, value := range seq {
		if value.IsObject() {
			value.ForEach(func(key, _ gjson.Result) bool {
				if _, ok := columns.index[key.Str]; !ok {
					columns.index[key.Str] = len(columns.labels)
					columns.labels = append(columns.labels, key.Str)
				}
				return true
			})
		}
	}

	table := make([]stencil.Node, 0, len(columns.labels)+len(seq))
	for _, label := range columns.labels {
		table = append(table, div(tag.Class(`header`, `label`), tag.Text(label)))
	}
	path += "."
	for ix, value := range seq {
		var row []stencil.Node
		rowPath := path + strconv.Itoa(ix)
		if value.IsObject() {
			fields := make(map[string]gjson.Result, len(columns.labels))
			value.ForEach(func(key, value gjson.Result) bool {
				fields[key.Str] = value
				return true
			})
			row = make([]stencil.Node, 0, len(columns.labels))
			for _, label := range columns.labels {
				if data, ok := fields[label]; ok {
					row = append(row, div(tag.Class(`value`), tag.Content(cfg.asNode(data, rowPath+"."+label))))
				} else {
					row = append(row, na)
				}
			}
		} else {
			row = []stencil.Node{div(
				tag.Class(`value`),
				tag.Attr(`style`, `grid-column: 1/-1;`), // full width
				tag.Content(cfg.asNode(value, rowPath)),
			)}
		}
		table = append(table, div(tag.Class(`row`), tag.Content(row...)))
	}

	return div(
		tag.Class(`table`),
		tag.Attr(`style`, fmt.Sprint(
			`grid-template-columns: repeat(`, len(columns.labels), `, minmax(min-content, max-content));`,
		)),
		tag.Content(table...),
	)
}

func (cfg *config) objectAsNode(data gjson.Result, path string) stencil.Node {
	// We show objects as a table with two columns, one for the keys, and one for the values.
	rows := make([]stencil.Node, 0, 2*data.Get(`#`).Int())
	path += "."
	data.ForEach(func(key, value gjson.Result) bool {
		rows = append(rows,
			div(tag.Class(`key`, `label`), tag.Text(key.Str)),
			div(tag.Class(`value`), tag.Content(cfg.asNode(value, path+key.Str))),
		)
		return true
	})
	return div(tag.Class(`object`), tag.Content(rows...))
}

func isTabular(data gjson.Result) bool {
	if !data.IsArray() {
		return false
	}
	tabular := false
	data.ForEach(func(_, value gjson.Result) bool {
		if value.IsObject() {
			tabular = true
			return false
		}
		return true
	})
	return tabular
}
