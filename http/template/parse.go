package template

import (
	"fmt"
	html "html/template"
	"net/url"
	"path"
)

// Parser parses the layout, page, and partials composing one response.
type Parser interface {
	Parse(fps ...string) (*html.Template, error)
}

// Parse implements Parser over a layeredFS.
// Its function map is fixed at construction, so a *Parse is safe for concurrent use.
type Parse struct {
	fs   layeredFS
	fns  html.FuncMap
	root *url.URL
}

// NewParser constructs a *Parse.
// Without WithFS, only the embedded templates are found.
func NewParser(opts ...ParserOptFn) *Parse {
	p := new(Parse)
	for _, opt := range opts {
		opt(p)
	}
	p.fns = pageFuncs(p.root)

	return p
}

// Parse parses fps, skipping empty names.
// The first file names the returned *html.Template.
func (p *Parse) Parse(fps ...string) (*html.Template, error) {
	files := make([]string, 0, len(fps))
	for _, fp := range fps {
		if fp != "" {
			files = append(files, fp)
		}
	}

	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	tmpl, err := html.New(path.Base(files[0])).Funcs(p.fns).ParseFS(p.fs, files...)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", files[0], err)
	}

	return tmpl, nil
}
