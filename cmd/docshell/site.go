package main

import (
	"github.com/a-h/templ"

	"github.com/eringen/docshell/theme"
	"github.com/eringen/docshell/views"
)

// siteFragment is the notes site's own theme. Fragment files listed in the
// config are applied on top of it.
func siteFragment() theme.Fragment {
	return theme.Fragment{
		Source:             "built-in",
		Logo:               theme.Set[templ.Component](views.DefaultLogo),
		ProjectLink:        theme.Set("https://github.com/GeorgII-web/notes"),
		DocsRepositoryBase: theme.Set("https://github.com/GeorgII-web/notes/blob/master/"),
		FooterText:         theme.Set(theme.Text("github.com/GeorgII-web | t.me/GeorgiiW")),
		GitTimestamp:       theme.Set(theme.TimestampDisabled()),
	}
}

func siteLogos() theme.Logos {
	return theme.Logos{
		"default": views.DefaultLogo,
	}
}
