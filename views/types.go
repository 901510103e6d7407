package views

import "time"

// Site holds the ambient site settings every layout needs.
type Site struct {
	Name        string // <title> suffix and fallback brand
	URL         string // canonical origin, no trailing slash
	BasePath    string // route prefix, e.g. "/notes"; "" for root
	AssetPrefix string // prefix for icons and other assets
}

// NavItem is one sidebar entry.
type NavItem struct {
	Title  string
	Href   string
	Active bool
}

// Page is the view model of a single documentation page.
type Page struct {
	Title        string
	Description  string
	Route        string // path below BasePath, e.g. "/guide/intro/"
	EditURL      string
	LastModified time.Time
	Nav          []NavItem
}
