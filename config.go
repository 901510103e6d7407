package docshell

import (
	"io/fs"
	"strings"
	"time"

	"github.com/eringen/docshell/theme"
)

// SiteConfig holds the ambient configuration of a docshell site. Theme keys
// (logo, links, footer, head, timestamps) are not here; they come from
// fragments.
type SiteConfig struct {
	Name string `mapstructure:"name"` // Site name (default "Notes")
	URL  string `mapstructure:"url"`  // Canonical origin (default "http://localhost:3000")

	Addr        string `mapstructure:"addr"`         // Preview listen address (default ":3000")
	BasePath    string `mapstructure:"base_path"`    // Route prefix (default "/notes")
	AssetPrefix string `mapstructure:"asset_prefix"` // Asset URL prefix (default BasePath)

	ContentDir     string `mapstructure:"content_dir"`      // Pre-rendered pages (default "pages")
	OutputDir      string `mapstructure:"output_dir"`       // Static export target (default "out")
	EditPathPrefix string `mapstructure:"edit_path_prefix"` // Repository path of ContentDir (default "pages/")

	Fragments []string `mapstructure:"fragments"` // Theme fragment files, applied in order

	// The tag manager snippet is injected unless DisableAnalytics is set, so
	// New(SiteConfig{}) and the CLI agree.
	DisableAnalytics bool   `mapstructure:"disable_analytics"`
	AnalyticsID      string `mapstructure:"analytics_id"` // Tag manager id (default "G-YJNFH344GM")

	PageCacheTTL time.Duration `mapstructure:"page_cache_ttl"` // Page cache TTL (default 1min)

	Watch         bool          `mapstructure:"watch"`          // Reload fragments and content on change while serving
	WatchDebounce time.Duration `mapstructure:"watch_debounce"` // Quiet period before a reload (default 200ms)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Notes"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = strings.TrimSuffix(c.URL, "/")
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.BasePath == "" {
		c.BasePath = "/notes"
	}
	c.BasePath = normalizeBasePath(c.BasePath)
	if c.AssetPrefix == "" {
		c.AssetPrefix = c.BasePath
	}
	if c.ContentDir == "" {
		c.ContentDir = "pages"
	}
	if c.OutputDir == "" {
		c.OutputDir = "out"
	}
	if c.EditPathPrefix == "" {
		c.EditPathPrefix = "pages/"
	}
	if c.AnalyticsID == "" {
		c.AnalyticsID = "G-YJNFH344GM"
	}
	if c.PageCacheTTL == 0 {
		c.PageCacheTTL = time.Minute
	}
	if c.WatchDebounce == 0 {
		c.WatchDebounce = 200 * time.Millisecond
	}
}

// normalizeBasePath returns "" for the root, otherwise "/segment" without a
// trailing slash.
func normalizeBasePath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	return "/" + p
}

// RootBasePath is the BasePath value that serves the site from "/".
const RootBasePath = "/"

// Option configures additional App behavior.
type Option func(*App)

// WithFragments prepends Go-authored theme fragments. They are applied before
// the fragment files listed in SiteConfig.Fragments.
func WithFragments(fragments ...theme.Fragment) Option {
	return func(a *App) {
		a.builtin = append(a.builtin, fragments...)
	}
}

// WithLogos registers logo components that fragment files may name.
func WithLogos(logos theme.Logos) Option {
	return func(a *App) {
		for name, logo := range logos {
			a.logos[name] = logo
		}
	}
}

// WithContentFS serves pages from fsys instead of SiteConfig.ContentDir.
// Content served this way is not watched.
func WithContentFS(fsys fs.FS) Option {
	return func(a *App) {
		a.contentFS = fsys
	}
}

// WithProtectedDirs names directories Build must never use as, or place
// inside, its output directory.
func WithProtectedDirs(dirs ...string) Option {
	return func(a *App) {
		a.protected = append(a.protected, dirs...)
	}
}

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback runs after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}
