package views

import (
	"context"
	"io"
	"net/url"

	"github.com/a-h/templ"
)

const gtmScriptURL = "https://www.googletagmanager.com/gtm.js"

// Shell wraps a page with the analytics tag. The tag is written first, then
// the page renders unchanged. An empty id renders the page alone.
func Shell(analyticsID string, page templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := GoogleTagManager(analyticsID).Render(ctx, w); err != nil {
			return err
		}
		if page == nil {
			return nil
		}
		return page.Render(ctx, w)
	})
}

// GoogleTagManager renders the dataLayer bootstrap and the async loader for id.
// The id is not validated; a bad id only fails inside the browser.
func GoogleTagManager(id string) templ.Component {
	if id == "" {
		return templ.NopComponent
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHTMLWriter(w)
		hw.raw(`<script>window.dataLayer=window.dataLayer||[];window.dataLayer.push({'gtm.start':new Date().getTime(),event:'gtm.js'});</script>`)
		hw.raw(`<script async src="`)
		hw.text(gtmScriptURL + "?id=" + url.QueryEscape(id))
		hw.raw(`"></script>`)
		return hw.err
	})
}
