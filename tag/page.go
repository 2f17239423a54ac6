package tag

import (
	"fmt"
	"strings"

	"github.com/swdunlop/stencil"
)

// Page returns an HTML5 document with a head and body.  The title is escaped.
func Page(title string, head []stencil.Node, body ...Option) []stencil.Node {
	return stencil.Document(stencil.HTML5, New(`html`,
		Content(New(`head`,
			Content(New(`meta`, Attr(`charset`, `utf-8`))),
			Content(New(`title`, Text(title))),
			Content(head...),
		)),
		Content(New(`body`, body...)),
	))
}

// Script returns a script tag with an unescaped body.  Beware embedding "</script>" in the body, since there is no
// way to escape it according to HTML5; this will cause a panic.
func Script(body string, options ...Option) stencil.Element {
	return New(`script`, Apply(options...), Raw(checkContent(body, `</script>`)))
}

// Style returns a style tag with an unescaped body.  Beware embedding "</style>" in the stylesheet, this will also
// cause a panic.
func Style(body string, options ...Option) stencil.Element {
	return New(`style`, Apply(options...), Raw(checkContent(body, `</style>`)))
}

func checkContent(content, end string) string {
	if strings.Contains(content, end) {
		panic(fmt.Errorf(`content contains %q`, end))
	}
	return content
}
