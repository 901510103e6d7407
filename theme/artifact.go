package theme

import (
	"encoding/json"
	"fmt"
)

type artifact struct {
	Logo               string         `json:"logo,omitempty"`
	ProjectLink        string         `json:"projectLink"`
	DocsRepositoryBase string         `json:"docsRepositoryBase"`
	FooterText         *Markup        `json:"footerText,omitempty"`
	Head               []HeadTag      `json:"head,omitempty"`
	GitTimestamp       *GitTimestamp  `json:"gitTimestamp,omitempty"`
	Provenance         map[string]int `json:"provenance"`
}

// MarshalJSON encodes the configuration as the build artifact. The logo is
// recorded by its Go type; unset keys are omitted.
func (c *SiteConfiguration) MarshalJSON() ([]byte, error) {
	a := artifact{
		ProjectLink:        c.ProjectLink,
		DocsRepositoryBase: c.DocsRepositoryBase,
		Head:               c.MetaTags(),
		Provenance:         c.Provenance,
	}
	if c.Logo.Set && c.Logo.Value != nil {
		a.Logo = fmt.Sprintf("%T", c.Logo.Value)
	}
	if c.FooterText.Set {
		a.FooterText = &c.FooterText.Value
	}
	if c.GitTimestamp.Set {
		a.GitTimestamp = &c.GitTimestamp.Value
	}
	return json.Marshal(a)
}
