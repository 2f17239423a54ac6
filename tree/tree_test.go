package tree

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/swdunlop/stencil"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		js     string
		expect string
	}{
		{`String`, `"a & b"`, `a &#38; b`},
		{`Text`, `{"text":"<b>"}`, `&#60;b&#62;`},
		{`Raw`, `{"raw":"<b>"}`, `<b>`},
		{`Doctype`, `[{"doctype":"<!DOCTYPE html>"},{"tag":"html"}]`, `<!DOCTYPE html><html></html>`},
		{`Element`, `{"tag":"div"}`, `<div></div>`},
		{
			`Attrs`,
			`{"tag":"input","attrs":{"type":"text","required":true,"disabled":false,"size":20,"name":null}}`,
			`<input type="text" required size="20">`,
		},
		{
			`SelWithOverride`,
			`{"tag":"h1","sel":"#main.big","attrs":{"title":"t","id":"other"},"children":["Hi"]}`,
			`<h1 id="other" class="big" title="t">Hi</h1>`,
		},
		{
			`DuplicateAttrs`,
			`{"tag":"a","attrs":{"href":"/one","class":"x","href":"/two"}}`,
			`<a href="/two" class="x"></a>`,
		},
		{
			`Nested`,
			`{"tag":"ul","children":[{"tag":"li","children":["a"]},[{"tag":"li","children":["b"]}]]}`,
			`<ul><li>a</li><li>b</li></ul>`,
		},
		{`VoidChildren`, `{"tag":"br","children":["dropped"]}`, `<br>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, err := Parse([]byte(tt.js))
			if err != nil {
				t.Fatal(err)
			}
			got := stencil.Render(nodes...)
			t.Log(`generated:`, got)
			if got != tt.expect {
				t.Error(` expected:`, tt.expect)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		js   string
		path string
	}{
		{`Number`, `42`, ``},
		{`UnknownObject`, `{"span":"x"}`, ``},
		{`TagNotString`, `{"tag":1}`, `.tag`},
		{`EmptyTag`, `{"tag":""}`, `.tag`},
		{`ChildrenNotArray`, `{"tag":"p","children":"x"}`, `.children`},
		{`BadChild`, `{"tag":"p","children":["ok",{"tag":"b","children":[null]}]}`, `.children.1.children.0`},
		{`AttrsNotObject`, `{"tag":"p","attrs":["id","x"]}`, `.attrs`},
		{`BadAttr`, `{"tag":"p","attrs":{"data":{"a":1}}}`, `.attrs.data`},
		{`RawNotString`, `{"raw":true}`, `.raw`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.js))
			var terr *Error
			if !errors.As(err, &terr) {
				t.Fatalf(`expected an *Error, got %v`, err)
			}
			if terr.Path != tt.path {
				t.Errorf(`expected path %q, got %q (%v)`, tt.path, terr.Path, err)
			}
		})
	}
	if _, err := Parse([]byte(`{"tag":`)); err == nil {
		t.Error(`expected an error for invalid JSON`)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), `doc.json`)
	if err := os.WriteFile(path, []byte(`{"tag":"p","children":["hi"]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	nodes, err := ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := stencil.Render(nodes...); got != `<p>hi</p>` {
		t.Errorf(`unexpected render %s`, got)
	}
	if Count(nodes) != 2 {
		t.Errorf(`expected 2 nodes, got %d`, Count(nodes))
	}
	if _, err := ParseFile(filepath.Join(t.TempDir(), `missing.json`)); err == nil {
		t.Error(`expected an error for a missing file`)
	}
}
