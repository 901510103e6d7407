package docshell

import (
	"bytes"
	"encoding/xml"
	"sort"
	"time"
)

// feedLimit caps the number of items in feed.xml.
const feedLimit = 20

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description,omitempty"`
	PubDate     string `xml:"pubDate,omitempty"`
	GUID        string `xml:"guid"`
}

// feed encodes the most recently modified pages as RSS 2.0.
func (a *App) feed(pages []Page) ([]byte, error) {
	recent := make([]Page, len(pages))
	copy(recent, pages)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].LastModified.After(recent[j].LastModified)
	})
	if len(recent) > feedLimit {
		recent = recent[:feedLimit]
	}

	items := make([]rssItem, 0, len(recent))
	for _, p := range recent {
		link := a.pageURL(p.Route)
		item := rssItem{
			Title:       p.Title,
			Link:        link,
			Description: p.Description,
			GUID:        link,
		}
		if !p.LastModified.IsZero() {
			item.PubDate = p.LastModified.UTC().Format(time.RFC1123Z)
		}
		items = append(items, item)
	}
	doc := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.Name,
			Link:        a.pageURL("/"),
			Description: "Recently updated pages of " + a.Config.Name,
			Items:       items,
		},
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
