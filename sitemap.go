package docshell

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"time"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// sitemap encodes every page as an absolute URL below the base path.
func (a *App) sitemap(pages []Page) ([]byte, error) {
	urls := make([]sitemapURL, 0, len(pages))
	for _, p := range pages {
		u := sitemapURL{Loc: a.pageURL(p.Route)}
		if !p.LastModified.IsZero() {
			u.LastMod = p.LastModified.UTC().Format(time.DateOnly)
		}
		urls = append(urls, u)
	}
	set := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(set); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (a *App) robots() []byte {
	return []byte(fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s\n", BuildURL(a.Config.URL, a.Config.BasePath, "sitemap.xml")))
}

func (a *App) pageURL(route string) string {
	return BuildURL(a.Config.URL, a.Config.BasePath, route)
}
