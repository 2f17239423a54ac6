package stencil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestAttrs(t *testing.T) {
	tests := []struct {
		name   string
		attrs  Attrs
		expect []Attr
	}{
		{`Empty`, NewAttrs(), nil},
		{`Order`, NewAttrs(Set(`b`, `1`), Set(`a`, `2`)), []Attr{Set(`b`, `1`), Set(`a`, `2`)}},
		{
			`DuplicateKeepsFirstPosition`,
			NewAttrs(Set(`id`, `one`), Set(`class`, `x`), Set(`id`, `two`)),
			[]Attr{Set(`id`, `two`), Set(`class`, `x`)},
		},
		{
			`FlagReplacedByValue`,
			NewAttrs(Bool(`checked`), Set(`name`, `n`), Set(`checked`, `checked`)),
			[]Attr{Set(`checked`, `checked`), Set(`name`, `n`)},
		},
		{
			`ValueReplacedByFlag`,
			NewAttrs(Set(`required`, `false`), Bool(`required`)),
			[]Attr{Bool(`required`)},
		},
		{`IgnoresNil`, NewAttrs(Attr{Name: `a`}, Set(`b`, `1`)), []Attr{Set(`b`, `1`)}},
		{`IgnoresUnnamed`, NewAttrs(Bool(``), Set(``, `x`)), nil},
		{`IgnoresBlankNames`, NewAttrs(Set(` `, `x`), Bool("\t\n"), Set(`b`, `y`)), []Attr{Set(`b`, `y`)}},
		{
			`With`,
			ParseShorthand(`#main.wide`).With(Set(`id`, `other`), Set(`role`, `main`)),
			[]Attr{Set(`id`, `other`), Set(`class`, `wide`), Set(`role`, `main`)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.expect, tt.attrs.All(), cmpopts.EquateEmpty()); diff != `` {
				t.Errorf("unexpected attributes (-want +got):\n%s", diff)
			}
			if got := tt.attrs.Len(); got != len(tt.expect) {
				t.Errorf(`expected %d attributes, got %d`, len(tt.expect), got)
			}
		})
	}
}

func TestAttrsWithDoesNotModify(t *testing.T) {
	base := NewAttrs(Set(`id`, `one`))
	next := base.With(Set(`id`, `two`), Set(`class`, `x`))
	if v, _ := base.Get(`id`); v != String(`one`) {
		t.Errorf(`expected base id to remain one, got %v`, v)
	}
	if v, _ := next.Get(`id`); v != String(`two`) {
		t.Errorf(`expected next id to be two, got %v`, v)
	}
	if _, ok := base.Get(`class`); ok {
		t.Error(`expected base to have no class`)
	}
}

func TestAttrsGet(t *testing.T) {
	attrs := NewAttrs(Bool(`required`), Set(`type`, `text`))
	if v, ok := attrs.Get(`required`); !ok || v != Flag {
		t.Errorf(`expected required to be a flag, got %v, %v`, v, ok)
	}
	if v, ok := attrs.Get(`type`); !ok || v != String(`text`) {
		t.Errorf(`expected type to be text, got %v, %v`, v, ok)
	}
	if _, ok := attrs.Get(`name`); ok {
		t.Error(`expected name to be missing`)
	}
}

func TestAttrsFlag(t *testing.T) {
	var v AttrValue = Flag
	if _, ok := v.(String); ok {
		t.Error(`expected Flag not to be a String`)
	}
	attrs := NewAttrs(Attr{`checked`, Flag}, Attr{`disabled`, v})
	if attrs.Len() != 2 {
		t.Fatalf(`expected both flags to be kept, got %v`, attrs.All())
	}
	for _, attr := range attrs.All() {
		if attr.Value != Flag {
			t.Errorf(`expected %s to be a flag, got %v`, attr.Name, attr.Value)
		}
	}
}
