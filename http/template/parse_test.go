package template_test

import (
	"bytes"
	html "html/template"
	"net/url"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/trailhead/http/template"
)

type testFn func(*testing.T, *html.Template, error)

func pages(files map[string]string) fstest.MapFS {
	m := make(fstest.MapFS, len(files))
	for name, body := range files {
		m[name] = &fstest.MapFile{Data: []byte(body)}
	}

	return m
}

func TestParse(t *testing.T) {
	stub := "<!DOCTYPE html>\n<html></html>"
	tcs := []struct {
		name   string
		parser *template.Parse
		fps    []string
		assert testFn
	}{
		{
			name:   "Zero-Value",
			parser: template.NewParser(),
			fps:    []string{},
			assert: func(t *testing.T, tmpl *html.Template, err error) {
				require.ErrorIs(t, err, template.ErrNoFiles)
				require.Nil(t, tmpl)
			},
		},
		{
			name:   "Empty-String",
			parser: template.NewParser(template.WithFS(pages(nil))),
			fps:    []string{""},
			assert: func(t *testing.T, tmpl *html.Template, err error) {
				require.ErrorIs(t, err, template.ErrNoFiles)
				require.Nil(t, tmpl)
			},
		},
		{
			name:   "No-File",
			parser: template.NewParser(template.WithFS(pages(nil))),
			fps:    []string{"dashboard.tmpl"},
			assert: func(t *testing.T, tmpl *html.Template, err error) {
				require.NotNil(t, err)
				require.Nil(t, tmpl)
			},
		},
		{
			name:   "One-Page",
			parser: template.NewParser(template.WithFS(pages(map[string]string{"dashboard.tmpl": stub}))),
			fps:    []string{"dashboard.tmpl"},
			assert: func(t *testing.T, tmpl *html.Template, err error) {
				require.Nil(t, err)
				require.Equal(t, "dashboard.tmpl", tmpl.Name())

				b := new(bytes.Buffer)
				require.Nil(t, tmpl.Execute(b, nil))
				require.Equal(t, stub, b.String())
			},
		},
		{
			name: "Layout-And-Page",
			parser: template.NewParser(template.WithFS(pages(map[string]string{
				"layout/authed.tmpl": `<main>{{ template "content" }}</main>`,
				"profile.tmpl":       `{{ define "content" }}<p>Ada</p>{{ end }}`,
			}))),
			fps: []string{"layout/authed.tmpl", "", "profile.tmpl"},
			assert: func(t *testing.T, tmpl *html.Template, err error) {
				require.Nil(t, err)
				require.Equal(t, "authed.tmpl", tmpl.Name())

				b := new(bytes.Buffer)
				require.Nil(t, tmpl.ExecuteTemplate(b, "authed.tmpl", nil))
				require.Equal(t, "<main><p>Ada</p></main>", b.String())
			},
		},
		{
			name:   "Embedded-Error-Page",
			parser: template.NewParser(template.WithFS(pages(nil))),
			fps:    []string{template.ErrorTmpl},
			assert: func(t *testing.T, tmpl *html.Template, err error) {
				require.Nil(t, err)

				b := new(bytes.Buffer)
				require.Nil(t, tmpl.Execute(b, map[string]any{"Contact": "Email us."}))
				require.Contains(t, b.String(), "Email us.")
				require.NotContains(t, b.String(), "Return home")
			},
		},
		{
			name: "Pages-Shadow-Embedded",
			parser: template.NewParser(template.WithFS(pages(map[string]string{
				template.ErrorTmpl: `oops`,
			}))),
			fps: []string{template.ErrorTmpl},
			assert: func(t *testing.T, tmpl *html.Template, err error) {
				require.Nil(t, err)

				b := new(bytes.Buffer)
				require.Nil(t, tmpl.Execute(b, nil))
				require.Equal(t, "oops", b.String())
			},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			tmpl, err := tc.parser.Parse(tc.fps...)

			// Assert
			tc.assert(t, tmpl, err)
		})
	}
}

func TestPageFuncs(t *testing.T) {
	// Arrange
	root, err := url.Parse("https://app.example.com/")
	require.Nil(t, err)

	p := template.NewParser(
		template.WithFS(pages(map[string]string{
			"funcs.tmpl": `{{ rootUrl }}|{{ with currentUser }}{{ . }}{{ else }}nobody{{ end }}|{{ nonce }}`,
		})),
		template.WithRootURL(root),
	)

	// Act
	anon, err := p.Parse("funcs.tmpl")
	require.Nil(t, err)

	known, err := p.Parse("funcs.tmpl")
	require.Nil(t, err)
	known = template.WithUser(known, "Ada")

	// Assert
	b := new(bytes.Buffer)
	require.Nil(t, anon.Execute(b, nil))
	require.Regexp(t, `^https://app.example.com/\|nobody\|[0-9a-f-]{36}$`, b.String())

	first := b.String()
	b.Reset()
	require.Nil(t, known.Execute(b, nil))
	require.Regexp(t, `^https://app.example.com/\|Ada\|`, b.String())
	require.NotEqual(t, first[len(first)-36:], b.String()[b.Len()-36:])
}

func TestParseConcurrent(t *testing.T) {
	// Arrange
	p := template.NewParser(template.WithFS(pages(map[string]string{"dashboard.tmpl": `ok`})))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			// Act
			tmpl, err := p.Parse("dashboard.tmpl")

			// Assert
			require.Nil(t, err)
			require.Nil(t, template.WithUser(tmpl, "Ada").Execute(new(bytes.Buffer), nil))
		}()
	}

	wg.Wait()
}
