package stencil

import (
	"strings"
	"testing"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{`Plain`, `hello, world`, `hello, world`},
		{`Empty`, ``, ``},
		{`Reserved`, `"'<>&`, `&#34;&#39;&#60;&#62;&#38;`},
		{`Latin1`, `Ça`, `&#199;a`},
		{`Astral`, "\U0001F600", `&#128512;`},
		{`Mixed`, `a < b 😀!`, `a &#60; b &#128512;!`},
		{`Control`, "a\tb\n", "a\tb\n"},
		{`Delete`, "\x7f", "\x7f"},
		{`InvalidUTF8`, "a\xffb", `a&#65533;b`},
		{`EscapedAgain`, `&#38;`, `&#38;#38;`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Escape(tt.input); got != tt.expect {
				t.Errorf(`Escape(%q) = %q, expected %q`, tt.input, got, tt.expect)
			}
		})
	}
}

func TestEscapeIsNotIdempotent(t *testing.T) {
	once := Escape(`a & b`)
	twice := Escape(once)
	if once == twice {
		t.Fatalf(`expected re-escaping %q to change it`, once)
	}
	if twice != `a &#38;#38; b` {
		t.Errorf(`unexpected double escape %q`, twice)
	}
	if Escape(`plain`) != Escape(Escape(`plain`)) {
		t.Error(`expected escaping to be idempotent without trigger characters`)
	}
}

func TestNewTextEscapes(t *testing.T) {
	if got := NewText(`<b>`).Content(); got != `&#60;b&#62;` {
		t.Errorf(`unexpected content %q`, got)
	}
}

func FuzzEscape(f *testing.F) {
	for _, seed := range []string{``, `a & b`, `"'<>&`, `Ça`, "\U0001F600", "\xff\xfe", `&#38;`} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, input string) {
		got := Escape(input)
		if strings.ContainsAny(got, `"'<>`) {
			t.Fatalf(`Escape(%q) = %q contains a reserved character`, input, got)
		}
		for i := 0; i < len(got); i++ {
			if got[i] > 127 {
				t.Fatalf(`Escape(%q) = %q contains byte %#x`, input, got, got[i])
			}
			if got[i] == '&' && !strings.HasPrefix(got[i:], `&#`) {
				t.Fatalf(`Escape(%q) = %q contains a bare ampersand`, input, got)
			}
		}
	})
}
