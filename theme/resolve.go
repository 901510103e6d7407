package theme

import (
	"errors"
	"net/url"
	"slices"
	"strings"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/log"
)

// SiteConfiguration is the resolved theme configuration. It is produced once
// per build by Resolve and never mutated afterwards.
type SiteConfiguration struct {
	Logo               Field[templ.Component]
	ProjectLink        string
	DocsRepositoryBase string // always ends in "/"
	FooterText         Field[Markup]
	Head               Field[[]HeadTag]
	GitTimestamp       Field[GitTimestamp]

	// Provenance maps each set key to the index of the fragment that won it.
	Provenance map[string]int
}

// Resolve folds fragments in order into one SiteConfiguration.
//
// Keys a fragment sets overwrite the accumulated value, keys it leaves unset
// are kept. It fails with *ValidationErrors when project.link or
// docsRepositoryBase is missing or not an absolute URL.
func Resolve(fragments ...Fragment) (*SiteConfiguration, error) {
	var acc Fragment
	prov := make(map[string]int)

	for i, f := range fragments {
		overlay(&acc.Logo, f.Logo, KeyLogo, i, prov)
		overlay(&acc.ProjectLink, f.ProjectLink, KeyProjectLink, i, prov)
		overlay(&acc.DocsRepositoryBase, f.DocsRepositoryBase, KeyDocsRepositoryBase, i, prov)
		overlay(&acc.FooterText, f.FooterText, KeyFooterText, i, prov)
		overlay(&acc.Head, f.Head, KeyHead, i, prov)
		overlay(&acc.GitTimestamp, f.GitTimestamp, KeyGitTimestamp, i, prov)
	}

	var verr ValidationErrors
	link := requireURL(&verr, KeyProjectLink, acc.ProjectLink, fragments, prov, checkAbsoluteURL)
	base := requireURL(&verr, KeyDocsRepositoryBase, acc.DocsRepositoryBase, fragments, prov, checkPathBase)
	if verr.HasErrors() {
		return nil, &verr
	}

	cfg := &SiteConfiguration{
		Logo:               acc.Logo,
		ProjectLink:        link,
		DocsRepositoryBase: withTrailingSlash(base),
		FooterText:         acc.FooterText,
		Head:               acc.Head,
		GitTimestamp:       acc.GitTimestamp,
		Provenance:         prov,
	}
	if cfg.Head.Set {
		// head is replaced as a whole; copy so later edits to a fragment
		// cannot reach the resolved configuration.
		cfg.Head.Value = slices.Clone(cfg.Head.Value)
		if cfg.Head.Value == nil {
			cfg.Head.Value = []HeadTag{}
		}
	}
	log.Debug().
		Int("fragments", len(fragments)).
		Interface("provenance", prov).
		Msg("theme resolved")
	return cfg, nil
}

func overlay[T any](dst *Field[T], src Field[T], key string, index int, prov map[string]int) {
	if !src.Set {
		return
	}
	*dst = src
	prov[key] = index
}

func requireURL(v *ValidationErrors, key string, f Field[string], fragments []Fragment, prov map[string]int, check func(string) error) string {
	value := strings.TrimSpace(f.Value)
	if !f.Set || value == "" {
		err := &MissingFieldError{Key: key}
		logKeyError(key, -1, f.Value, err)
		v.Add(err)
		return ""
	}
	idx := prov[key]
	if err := check(value); err != nil {
		uerr := &MalformedURLError{
			Key:      key,
			Value:    f.Value,
			Fragment: fragments[idx].name(idx),
			Err:      err,
		}
		logKeyError(key, idx, f.Value, uerr)
		v.Add(uerr)
		return ""
	}
	logKeyOK(key, idx, value)
	return value
}

func checkAbsoluteURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if !u.IsAbs() {
		return errors.New("scheme missing")
	}
	if u.Host == "" {
		return errors.New("host missing")
	}
	return nil
}

// checkPathBase accepts an absolute URL that source paths can be appended to.
func checkPathBase(raw string) error {
	if err := checkAbsoluteURL(raw); err != nil {
		return err
	}
	u, _ := url.Parse(raw)
	if u.RawQuery != "" || u.ForceQuery {
		return errors.New("query not allowed")
	}
	if u.Fragment != "" || strings.Contains(raw, "#") {
		return errors.New("fragment not allowed")
	}
	return nil
}

func withTrailingSlash(s string) string {
	if s == "" || strings.HasSuffix(s, "/") {
		return s
	}
	return s + "/"
}

func logKeyOK(key string, fragment int, value any) {
	log.Debug().
		Str("config", key).
		Int("fragment", fragment).
		Interface("value", value).
		Msg("theme key set")
}

func logKeyError(key string, fragment int, value any, err error) {
	log.Error().
		Str("config", key).
		Int("fragment", fragment).
		Interface("value", value).
		Err(err).
		Msg("invalid theme key")
}

// EditURL returns the "edit this page" link for a source file, given as a
// slash-separated path relative to the repository root.
func (c *SiteConfiguration) EditURL(sourcePath string) string {
	if c.DocsRepositoryBase == "" || sourcePath == "" {
		return ""
	}
	segs := strings.Split(strings.TrimLeft(sourcePath, "/"), "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return c.DocsRepositoryBase + strings.Join(segs, "/")
}

// MetaTags returns the configured head tags, or nil when none are set.
func (c *SiteConfiguration) MetaTags() []HeadTag {
	if !c.Head.Set {
		return nil
	}
	return c.Head.Value
}

// TimestampLabel returns the prefix for the last-modified line and whether
// the line is shown at all.
func (c *SiteConfiguration) TimestampLabel() (string, bool) {
	if !c.GitTimestamp.Set {
		return DefaultTimestampLabel, true
	}
	ts := c.GitTimestamp.Value
	if ts.Disabled {
		return "", false
	}
	if ts.Label == "" {
		return DefaultTimestampLabel, true
	}
	return ts.Label, true
}
