package views

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"
	"time"
)

// buildURL joins path segments onto a base URL, ensuring a trailing slash.
func buildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// href returns the site-relative link for a route.
func (s Site) Href(route string) string {
	p := path.Join("/", s.BasePath, route)
	if strings.HasSuffix(route, "/") && p != "/" {
		p += "/"
	}
	return p
}

func (s Site) Asset(name string) string {
	return strings.TrimSuffix(s.AssetPrefix, "/") + "/" + name
}

// FormatDate renders a last-modified date the way the docs theme shows it.
func FormatDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

// WebsiteJsonLD produces a Schema.org WebSite JSON-LD block.
func WebsiteJsonLD(site Site) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     site.Name,
		"url":      buildURL(site.URL, site.BasePath),
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// ArticleJsonLD produces a Schema.org TechArticle JSON-LD block for a page.
func ArticleJsonLD(site Site, page Page) string {
	pageURL := buildURL(site.URL, site.BasePath, page.Route)
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "TechArticle",
		"headline": page.Title,
		"url":      pageURL,
		"isPartOf": map[string]string{
			"@type": "WebSite",
			"name":  site.Name,
		},
	}
	if page.Description != "" {
		data["description"] = page.Description
	}
	if !page.LastModified.IsZero() {
		data["dateModified"] = page.LastModified.UTC().Format(time.RFC3339)
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
