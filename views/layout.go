package views

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/eringen/docshell/theme"
)

// Layout renders a full documentation page: head metadata, the navbar with the
// branding slot and project link, the sidebar, the body, the last-modified
// and edit links, and the footer.
func Layout(site Site, cfg *theme.SiteConfiguration, page Page, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHTMLWriter(w)
		head(ctx, hw, site, cfg, page)
		hw.raw(`<body><div class="docs">`)
		navbar(ctx, hw, site, cfg)
		sidebar(hw, page.Nav)
		hw.raw(`<main class="content"><article>`)
		hw.component(ctx, body)
		hw.raw(`</article>`)
		pageMeta(hw, cfg, page)
		hw.raw(`</main>`)
		footer(ctx, hw, cfg)
		hw.raw(`</div></body></html>`)
		return hw.err
	})
}

func head(ctx context.Context, hw *htmlWriter, site Site, cfg *theme.SiteConfiguration, page Page) {
	hw.raw(`<!doctype html><html lang="en"><head><meta charset="utf-8">`)
	hw.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	hw.raw(`<title>`)
	hw.text(pageTitle(site, page))
	hw.raw(`</title>`)
	// page metadata wins over a head tag of the same name
	written := map[string]bool{"viewport": true}
	if page.Description != "" {
		hw.raw(`<meta`)
		hw.attr("name", "description")
		hw.attr("content", page.Description)
		hw.raw(`>`)
		written["description"] = true
	}
	for _, tag := range cfg.MetaTags() {
		if written[strings.ToLower(tag.Name)] {
			continue
		}
		hw.raw(`<meta`)
		hw.attr("name", tag.Name)
		hw.attr("content", tag.Content)
		hw.raw(`>`)
	}
	if site.URL != "" {
		hw.raw(`<link rel="canonical"`)
		hw.attr("href", buildURL(site.URL, site.BasePath, page.Route))
		hw.raw(`>`)
	}
	hw.raw(`<link rel="icon" type="image/svg+xml"`)
	hw.attr("href", site.Asset("favicon.svg"))
	hw.raw(`><link rel="icon" type="image/png"`)
	hw.attr("href", site.Asset("favicon.png"))
	hw.raw(`><link rel="apple-touch-icon"`)
	hw.attr("href", site.Asset("apple-touch-icon.png"))
	hw.raw(`><link rel="alternate" type="application/rss+xml"`)
	hw.attr("title", site.Name)
	hw.attr("href", site.Href("/feed.xml"))
	hw.raw(`>`)
	if page.Route == "/" {
		hw.raw(`<script type="application/ld+json">` + WebsiteJsonLD(site) + `</script>`)
	} else {
		hw.raw(`<script type="application/ld+json">` + ArticleJsonLD(site, page) + `</script>`)
	}
	hw.raw(`</head>`)
}

func pageTitle(site Site, page Page) string {
	switch {
	case page.Title == "":
		return site.Name
	case site.Name == "" || page.Title == site.Name:
		return page.Title
	default:
		return page.Title + " – " + site.Name
	}
}

func navbar(ctx context.Context, hw *htmlWriter, site Site, cfg *theme.SiteConfiguration) {
	hw.raw(`<header class="navbar"><a class="brand"`)
	hw.attr("href", site.Href("/"))
	hw.raw(`>`)
	if cfg.Logo.Set && cfg.Logo.Value != nil {
		hw.component(ctx, cfg.Logo.Value)
	} else {
		hw.text(site.Name)
	}
	hw.raw(`</a>`)
	if cfg.ProjectLink != "" {
		hw.raw(`<a class="project" target="_blank" rel="noreferrer"`)
		hw.attr("href", cfg.ProjectLink)
		hw.raw(`>Project</a>`)
	}
	hw.raw(`</header>`)
}

func sidebar(hw *htmlWriter, nav []NavItem) {
	if len(nav) == 0 {
		return
	}
	hw.raw(`<nav class="sidebar"><ul>`)
	for _, item := range nav {
		hw.raw(`<li><a`)
		hw.attr("href", item.Href)
		if item.Active {
			hw.raw(` aria-current="page"`)
		}
		hw.raw(`>`)
		hw.text(item.Title)
		hw.raw(`</a></li>`)
	}
	hw.raw(`</ul></nav>`)
}

func pageMeta(hw *htmlWriter, cfg *theme.SiteConfiguration, page Page) {
	label, show := cfg.TimestampLabel()
	show = show && !page.LastModified.IsZero()
	if !show && page.EditURL == "" {
		return
	}
	hw.raw(`<div class="page-meta">`)
	if show {
		hw.raw(`<span class="last-updated">`)
		hw.text(label + " ")
		hw.raw(`<time`)
		hw.attr("datetime", page.LastModified.UTC().Format(time.RFC3339))
		hw.raw(`>`)
		hw.text(FormatDate(page.LastModified))
		hw.raw(`</time></span>`)
	}
	if page.EditURL != "" {
		hw.raw(`<a class="edit-link" target="_blank" rel="noreferrer"`)
		hw.attr("href", page.EditURL)
		hw.raw(`>Edit this page</a>`)
	}
	hw.raw(`</div>`)
}

func footer(ctx context.Context, hw *htmlWriter, cfg *theme.SiteConfiguration) {
	if !cfg.FooterText.Set || cfg.FooterText.Value.IsZero() {
		return
	}
	hw.raw(`<footer class="footer">`)
	hw.component(ctx, cfg.FooterText.Value)
	hw.raw(`</footer>`)
}
