package dataview

import (
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/swdunlop/stencil"
	"github.com/swdunlop/stencil/tag"
	"github.com/tidwall/gjson"
)

func TestFromJSON(t *testing.T) {
	tests := []struct {
		name    string
		js      string
		options []Option
		expect  string
	}{
		{`Null`, `null`, nil, `<span class="null">null</span>`},
		{`True`, `true`, nil, `<span class="bool">true</span>`},
		{`Number`, `42.5`, nil, `42.5`},
		{`String`, `"a < b"`, nil, `a &#60; b`},
		{`EmptyArray`, `[]`, nil, `<div class="array empty">[]</div>`},
		{
			`Array`, `[1,"two"]`, nil,
			`<div class="array"><div class="value">1</div><div class="value">two</div></div>`,
		},
		{
			`Object`, `{"name":"Ada","age":36}`, nil,
			`<div class="object"><div class="key label">name</div><div class="value">Ada</div>` +
				`<div class="key label">age</div><div class="value">36</div></div>`,
		},
		{
			`Table`, `[{"a":1},{"b":2},3]`, nil,
			`<div class="table" style="grid-template-columns: repeat(2, minmax(min-content, max-content));">` +
				`<div class="header label">a</div><div class="header label">b</div>` +
				`<div class="row"><div class="value">1</div><div class="value na">N/A</div></div>` +
				`<div class="row"><div class="value na">N/A</div><div class="value">2</div></div>` +
				`<div class="row"><div class="value" style="grid-column: 1/-1;">3</div></div></div>`,
		},
		{
			`Hook`, `{"secret":"x","name":"y"}`,
			[]Option{Hook(regexp.MustCompile(`\.secret$`), func(path string, data gjson.Result) stencil.Node {
				return tag.New(`i`, tag.Text(`hidden`))
			})},
			`<div class="object"><div class="key label">secret</div><div class="value"><i>hidden</i></div>` +
				`<div class="key label">name</div><div class="value">y</div></div>`,
		},
		{
			`TableCellHook`, `{"persons":[{"name":"a"},{"name":"b"}]}`,
			[]Option{Hook(regexp.MustCompile(`^\.persons\.0\.name$`), func(path string, data gjson.Result) stencil.Node {
				return tag.New(`b`, tag.Text(`first`))
			})},
			`<div class="object"><div class="key label">persons</div><div class="value">` +
				`<div class="table" style="grid-template-columns: repeat(1, minmax(min-content, max-content));">` +
				`<div class="header label">name</div>` +
				`<div class="row"><div class="value"><b>first</b></div></div>` +
				`<div class="row"><div class="value">b</div></div></div></div></div>`,
		},
		{
			`NilHook`, `"kept"`,
			[]Option{Hook(regexp.MustCompile(`.*`), func(path string, data gjson.Result) stencil.Node {
				return nil
			})},
			`kept`,
		},
		{
			`TableHook`, `[{"a":1}]`,
			[]Option{TableHook(regexp.MustCompile(`^$`), func(path string, data gjson.Result) gjson.Result {
				return data.Get(`#.a`)
			})},
			`<div class="array"><div class="value">1</div></div>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := FromJSON([]byte(tt.js), tt.options...)
			if err != nil {
				t.Fatal(err)
			}
			got := stencil.Render(node)
			t.Log(`generated:`, got)
			if got != tt.expect {
				t.Error(` expected:`, tt.expect)
			}
		})
	}
}

func TestFromJSONInvalid(t *testing.T) {
	if _, err := FromJSON([]byte(`{invalid`)); err == nil {
		t.Error(`expected an error for invalid JSON`)
	}
}

func TestFrom(t *testing.T) {
	node, err := From(struct {
		Name string `json:"name"`
	}{`Zoë`})
	if err != nil {
		t.Fatal(err)
	}
	expect := `<div class="object"><div class="key label">name</div><div class="value">Zo&#235;</div></div>`
	if got := stencil.Render(node); got != expect {
		t.Errorf("expected %s\n     got %s", expect, got)
	}
	if _, err := From(make(chan int)); err == nil {
		t.Error(`expected an error for a channel`)
	}
}

func TestHookPaths(t *testing.T) {
	var paths []string
	record := Hook(regexp.MustCompile(`.`), func(path string, data gjson.Result) stencil.Node {
		paths = append(paths, path)
		return nil
	})
	_, err := FromJSON([]byte(`{"persons":[{"name":"a","tags":["x"]},{"name":"b"},7]}`), record)
	if err != nil {
		t.Fatal(err)
	}
	expect := []string{
		`.persons`,
		`.persons.0.name`, `.persons.0.tags`, `.persons.0.tags.0`,
		`.persons.1.name`,
		`.persons.2`,
	}
	if diff := cmp.Diff(expect, paths); diff != `` {
		t.Errorf("unexpected hook paths (-want +got):\n%s", diff)
	}
}
