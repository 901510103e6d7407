package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/eringen/docshell/theme"
)

// NotFound renders the 404 page inside the regular layout.
func NotFound(site Site, cfg *theme.SiteConfiguration) templ.Component {
	return errorPage(site, cfg, "404", "Page not found", "This page could not be found.")
}

// ServerError renders the 500 page inside the regular layout.
func ServerError(site Site, cfg *theme.SiteConfiguration) templ.Component {
	return errorPage(site, cfg, "500", "Something went wrong", "An error occurred while rendering this page.")
}

func errorPage(site Site, cfg *theme.SiteConfiguration, code, title, message string) templ.Component {
	if cfg == nil {
		cfg = &theme.SiteConfiguration{}
	}
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHTMLWriter(w)
		hw.raw(`<h1>`)
		hw.text(code + " · " + title)
		hw.raw(`</h1><p>`)
		hw.text(message)
		hw.raw(`</p><p><a`)
		hw.attr("href", site.Href("/"))
		hw.raw(`>Back to start</a></p>`)
		return hw.err
	})
	return Layout(site, cfg, Page{Title: title, Route: "/" + code + "/"}, body)
}
