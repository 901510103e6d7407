// Package docshell serves and exports a documentation site whose branding and
// navigation shell come from a resolved theme configuration.
//
// Pages are pre-rendered HTML fragments read from a content directory. The
// theme (logo, project link, repository base, footer, head tags, timestamp
// label) is resolved from Go-authored fragments registered with
// WithFragments, followed by the YAML fragment files listed in
// SiteConfig.Fragments.
package docshell

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"sync/atomic"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/eringen/docshell/theme"
	"github.com/eringen/docshell/views"
)

const shutdownTimeout = 10 * time.Second

// App is the central docshell application. It wires together the content
// store, page cache, theme configuration, handlers and middleware.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *PageCache

	builtin      []theme.Fragment
	logos        theme.Logos
	current      atomic.Pointer[theme.SiteConfiguration]
	customRoutes []func(*App)
	contentFS    fs.FS
	protected    []string
	initialized  bool
}

// New creates a docshell App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	a := &App{
		Config: cfg,
		Echo:   e,
		logos:  theme.Logos{"default": views.DefaultLogo},
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Init opens the content store, resolves the theme and registers middleware
// and routes. It is called by Start; tests call it directly before
// driving Echo with httptest.
func (a *App) Init(ctx context.Context) error {
	if a.initialized {
		return nil
	}

	if err := a.initStore(); err != nil {
		return err
	}
	if err := a.Reload(ctx); err != nil {
		return err
	}

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}

	a.initialized = true
	return nil
}

func (a *App) initStore() error {
	if a.Store != nil {
		return nil
	}
	if a.contentFS != nil {
		a.Store = NewStore(a.contentFS, a.Config.Name)
	} else {
		store, err := NewDirStore(a.Config.ContentDir, a.Config.Name)
		if err != nil {
			return fmt.Errorf("docshell: init store: %w", err)
		}
		a.Store = store
	}
	a.Cache = NewPageCache(a.Store, a.Config.PageCacheTTL)
	return nil
}

// Start initializes the app and serves the preview site until ctx is
// cancelled, then shuts the server down gracefully.
func (a *App) Start(ctx context.Context) error {
	if err := a.Init(ctx); err != nil {
		return err
	}

	if a.Config.Watch {
		w, err := a.Watch(ctx)
		if err != nil {
			return err
		}
		defer w.Close()
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", a.Config.Addr).
			Str("base_path", a.site().Href("/")).
			Msg("serving docs")
		errCh <- a.Echo.Start(a.Config.Addr)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.Echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("docshell: shutdown: %w", err)
	}
	return nil
}

// Reload re-reads the fragment files and resolves the theme. On success the
// new configuration replaces the active one and the page cache is dropped;
// on failure the active configuration is left untouched.
func (a *App) Reload(ctx context.Context) error {
	cfg, err := a.Resolve(ctx)
	if err != nil {
		return err
	}
	a.current.Store(cfg)
	if a.Cache != nil {
		a.Cache.Invalidate()
	}
	log.Info().
		Int("fragments", len(a.builtin)+len(a.Config.Fragments)).
		Msg("theme resolved")
	return nil
}

// Resolve loads the fragment files and resolves them after the built-in
// fragments, then probe-renders the logo. The result is not activated.
func (a *App) Resolve(ctx context.Context) (*theme.SiteConfiguration, error) {
	files, err := theme.LoadFragments(a.logos, a.Config.Fragments...)
	if err != nil {
		return nil, fmt.Errorf("docshell: load fragments: %w", err)
	}
	fragments := make([]theme.Fragment, 0, len(a.builtin)+len(files))
	fragments = append(fragments, a.builtin...)
	fragments = append(fragments, files...)

	cfg, err := theme.Resolve(fragments...)
	if err != nil {
		return nil, fmt.Errorf("docshell: %w", err)
	}
	if err := theme.CheckLogo(ctx, cfg.Logo.Value); err != nil {
		return nil, fmt.Errorf("docshell: %w", err)
	}
	return cfg, nil
}

// Sources names every fragment in resolution order; indexes match
// SiteConfiguration.Provenance.
func (a *App) Sources() []string {
	out := make([]string, 0, len(a.builtin)+len(a.Config.Fragments))
	for _, f := range a.builtin {
		if f.Source != "" {
			out = append(out, f.Source)
		} else {
			out = append(out, "built-in")
		}
	}
	return append(out, a.Config.Fragments...)
}

// Theme returns the active theme configuration, or nil before Init.
func (a *App) Theme() *theme.SiteConfiguration {
	return a.current.Load()
}

// Close releases resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Cache != nil {
		a.Cache.Invalidate()
	}
	return a.Echo.Close()
}

func (a *App) site() views.Site {
	return views.Site{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		BasePath:    a.Config.BasePath,
		AssetPrefix: a.Config.AssetPrefix,
	}
}

func (a *App) analyticsID() string {
	if a.Config.DisableAnalytics {
		return ""
	}
	return a.Config.AnalyticsID
}

// pageComponent renders page in the docs layout, with the page body wrapped
// in the analytics shell.
func (a *App) pageComponent(cfg *theme.SiteConfiguration, page Page, pages []Page) templ.Component {
	site := a.site()
	vp := views.Page{
		Title:        page.Title,
		Description:  page.Description,
		Route:        page.Route,
		EditURL:      cfg.EditURL(path.Join(a.Config.EditPathPrefix, page.SourcePath)),
		LastModified: page.LastModified,
		Nav:          a.nav(page.Route, pages),
	}
	return views.Layout(site, cfg, vp, views.Shell(a.analyticsID(), templ.Raw(page.Body)))
}

func (a *App) nav(active string, pages []Page) []views.NavItem {
	site := a.site()
	items := make([]views.NavItem, 0, len(pages))
	for _, p := range pages {
		items = append(items, views.NavItem{
			Title:  p.Title,
			Href:   site.Href(p.Route),
			Active: p.Route == active,
		})
	}
	return items
}
