package template

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
)

// ErrorTmpl is the embedded page rendered when no other page can be.
const ErrorTmpl = "tmpl/error.tmpl"

//go:embed tmpl/*
var embedded embed.FS

// layeredFS serves a file from pages when pages has it,
// otherwise from the templates embedded in this package.
type layeredFS struct {
	pages fs.FS
}

func (l layeredFS) Open(name string) (fs.File, error) {
	if l.pages != nil {
		f, err := l.pages.Open(name)
		switch {
		case err == nil:
			return f, nil
		case !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, fs.ErrInvalid):
			return nil, fmt.Errorf("opening %s: %w", name, err)
		}
	}

	f, err := embedded.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	return f, nil
}
