package docshell

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/eringen/docshell/views"
)

func (a *App) setupRoutes() {
	e := a.Echo
	base := a.Config.BasePath

	e.GET("/robots.txt", a.handleRobots)
	if base != "" {
		e.GET(base, handleBaseRedirect(base+"/"))
	}

	g := e.Group(base)
	g.GET("/sitemap.xml", a.handleSitemap)
	g.GET("/feed.xml", a.handleFeed)
	g.GET("/favicon.svg", a.handleFaviconSVG)
	g.GET("/favicon.png", a.handleIconPNG(faviconSize))
	g.GET("/apple-touch-icon.png", a.handleIconPNG(appleTouchIconSize))
	g.GET("/theme.json", a.handleTheme)
	g.GET("/*", a.handlePage)
}

func (a *App) handlePage(c echo.Context) error {
	page, err := a.Cache.Get("/" + c.Param("*"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.ErrNotFound
		}
		return err
	}
	pages, err := a.Cache.List()
	if err != nil {
		return err
	}
	return Render(c, a.pageComponent(a.Theme(), page, pages))
}

func handleBaseRedirect(target string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Redirect(http.StatusMovedPermanently, target)
	}
}

func (a *App) handleSitemap(c echo.Context) error {
	pages, err := a.Cache.List()
	if err != nil {
		return err
	}
	body, err := a.sitemap(pages)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/xml; charset=utf-8", body)
}

func (a *App) handleFeed(c echo.Context) error {
	pages, err := a.Cache.List()
	if err != nil {
		return err
	}
	body, err := a.feed(pages)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/rss+xml; charset=utf-8", body)
}

func (a *App) handleRobots(c echo.Context) error {
	return c.Blob(http.StatusOK, echo.MIMETextPlainCharsetUTF8, a.robots())
}

func (a *App) handleFaviconSVG(c echo.Context) error {
	logo, ok := iconLogo(a.Theme())
	if !ok {
		return echo.ErrNotFound
	}
	return c.Blob(http.StatusOK, "image/svg+xml", []byte(logo.GlyphSVG()))
}

func (a *App) handleIconPNG(size int) echo.HandlerFunc {
	return func(c echo.Context) error {
		logo, ok := iconLogo(a.Theme())
		if !ok {
			return echo.ErrNotFound
		}
		body, err := RenderIconPNG(logo, size)
		if err != nil {
			return err
		}
		return c.Blob(http.StatusOK, "image/png", body)
	}
}

func (a *App) handleTheme(c echo.Context) error {
	return c.JSONPretty(http.StatusOK, a.Theme(), "  ")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, views.NotFound(a.site(), a.Theme()))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		log.Error().Err(err).
			Str("method", c.Request().Method).
			Str("uri", c.Request().RequestURI).
			Msg("server error")
		_ = RenderStatus(c, code, views.ServerError(a.site(), a.Theme()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
