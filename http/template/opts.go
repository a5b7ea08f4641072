package template

import (
	"io/fs"
	"net/url"
)

type ParserOptFn func(*Parse)

// WithFS layers pages over the embedded templates.
func WithFS(pages fs.FS) ParserOptFn {
	return func(p *Parse) { p.fs.pages = pages }
}

// WithRootURL is what rootUrl returns in a page.
func WithRootURL(u *url.URL) ParserOptFn {
	return func(p *Parse) { p.root = u }
}
