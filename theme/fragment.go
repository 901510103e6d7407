// Package theme resolves a site's theme configuration from an ordered list of
// partial configuration fragments.
//
// Fragments are folded left to right. A key set by a later fragment replaces
// the value accumulated so far; a key the later fragment leaves unset keeps
// the earlier value. List and markup values (head, footer.text) are replaced
// as a whole, never merged.
package theme

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// Fragment keys, in schema order.
const (
	KeyLogo               = "logo"
	KeyProjectLink        = "project.link"
	KeyDocsRepositoryBase = "docsRepositoryBase"
	KeyFooterText         = "footer.text"
	KeyHead               = "head"
	KeyGitTimestamp       = "gitTimestamp"
)

// Keys lists every fragment key in schema order.
var Keys = []string{
	KeyLogo,
	KeyProjectLink,
	KeyDocsRepositoryBase,
	KeyFooterText,
	KeyHead,
	KeyGitTimestamp,
}

// Field is a fragment value together with whether the fragment set it.
// The zero Field is unset. A set Field holding the zero value is an explicit
// empty value and still overrides earlier fragments.
type Field[T any] struct {
	Value T
	Set   bool
}

// Set returns a Field explicitly set to v.
func Set[T any](v T) Field[T] {
	return Field[T]{Value: v, Set: true}
}

// HeadTag is a <meta name content> declaration.
type HeadTag struct {
	Name    string `yaml:"name" json:"name"`
	Content string `yaml:"content" json:"content"`
}

// Markup is footer content: plain text, or a trusted HTML fragment.
// When both are empty the markup renders nothing.
type Markup struct {
	Text string `json:"text,omitempty"`
	HTML string `json:"html,omitempty"`
}

// Text returns plain-text markup. It is escaped when rendered.
func Text(s string) Markup { return Markup{Text: s} }

// HTML returns markup rendered verbatim.
func HTML(s string) Markup { return Markup{HTML: s} }

// IsZero reports whether m renders nothing.
func (m Markup) IsZero() bool { return m.Text == "" && m.HTML == "" }

// Render writes the markup, implementing templ.Component.
func (m Markup) Render(ctx context.Context, w io.Writer) error {
	if m.HTML != "" {
		return templ.Raw(m.HTML).Render(ctx, w)
	}
	_, err := io.WriteString(w, templ.EscapeString(m.Text))
	return err
}

// GitTimestamp controls the "last modified" line under each page.
// Disabled hides it; otherwise Label prefixes the date, falling back to
// DefaultTimestampLabel when empty.
type GitTimestamp struct {
	Disabled bool   `json:"disabled,omitempty"`
	Label    string `json:"label,omitempty"`
}

// DefaultTimestampLabel prefixes the last-modified date when no label is configured.
const DefaultTimestampLabel = "Last updated on"

// TimestampDisabled hides the last-modified line.
func TimestampDisabled() GitTimestamp { return GitTimestamp{Disabled: true} }

// TimestampLabel shows the last-modified line with the given prefix.
// An empty label disables the line, matching `gitTimestamp: ''`.
func TimestampLabel(label string) GitTimestamp {
	if label == "" {
		return TimestampDisabled()
	}
	return GitTimestamp{Label: label}
}

// Fragment is one partial theme configuration as authored.
type Fragment struct {
	// Source names the fragment in error messages, e.g. a file path.
	Source string

	Logo               Field[templ.Component]
	ProjectLink        Field[string]
	DocsRepositoryBase Field[string]
	FooterText         Field[Markup]
	Head               Field[[]HeadTag]
	GitTimestamp       Field[GitTimestamp]
}

// Keys returns the keys f sets, in schema order.
func (f Fragment) Keys() []string {
	set := []bool{
		f.Logo.Set,
		f.ProjectLink.Set,
		f.DocsRepositoryBase.Set,
		f.FooterText.Set,
		f.Head.Set,
		f.GitTimestamp.Set,
	}
	var keys []string
	for i, ok := range set {
		if ok {
			keys = append(keys, Keys[i])
		}
	}
	return keys
}

func (f Fragment) name(index int) string {
	if f.Source == "" {
		return "fragment " + strconv.Itoa(index)
	}
	return "fragment " + strconv.Itoa(index) + " (" + f.Source + ")"
}
