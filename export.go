package docshell

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/log"

	"github.com/eringen/docshell/views"
)

// Build resolves the theme from scratch and writes the static site to
// SiteConfig.OutputDir. Pages go to <out>/<base path>/<route>/index.html;
// 404.html and robots.txt go to the output root.
//
// The logo is probe-rendered before any file is written, so an unrenderable
// logo leaves the previous export in place.
func (a *App) Build(ctx context.Context) (*BuildReport, error) {
	start := time.Now()

	if err := a.initStore(); err != nil {
		return nil, err
	}
	cfg, err := a.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	a.current.Store(cfg)
	a.Cache.Invalidate()

	pages, err := a.Cache.List()
	if err != nil {
		return nil, fmt.Errorf("docshell: load pages: %w", err)
	}

	out := filepath.Clean(a.Config.OutputDir)
	if err := a.checkOutputDir(out); err != nil {
		return nil, err
	}
	if err := os.RemoveAll(out); err != nil {
		return nil, fmt.Errorf("docshell: clean output: %w", err)
	}

	w := &exportWriter{root: out}
	base := strings.TrimPrefix(a.Config.BasePath, "/")

	for _, p := range pages {
		name := path.Join(base, strings.Trim(p.Route, "/"), "index.html")
		if err := w.component(ctx, name, a.pageComponent(cfg, p, pages)); err != nil {
			return nil, err
		}
	}
	if err := w.component(ctx, "404.html", views.NotFound(a.site(), cfg)); err != nil {
		return nil, err
	}

	sitemap, err := a.sitemap(pages)
	if err != nil {
		return nil, fmt.Errorf("docshell: sitemap: %w", err)
	}
	w.file(path.Join(base, "sitemap.xml"), sitemap)
	feed, err := a.feed(pages)
	if err != nil {
		return nil, fmt.Errorf("docshell: feed: %w", err)
	}
	w.file(path.Join(base, "feed.xml"), feed)
	w.file("robots.txt", a.robots())

	if logo, ok := iconLogo(cfg); ok {
		w.file(path.Join(base, "favicon.svg"), []byte(logo.GlyphSVG()))
		for _, icon := range []struct {
			name string
			size int
		}{
			{"favicon.png", faviconSize},
			{"apple-touch-icon.png", appleTouchIconSize},
		} {
			body, err := RenderIconPNG(logo, icon.size)
			if err != nil {
				return nil, fmt.Errorf("docshell: %s: %w", icon.name, err)
			}
			w.file(path.Join(base, icon.name), body)
		}
	}

	artifact, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("docshell: theme.json: %w", err)
	}
	w.file(path.Join(base, "theme.json"), artifact)

	if w.err != nil {
		return nil, w.err
	}

	report := &BuildReport{
		OutputDir: out,
		Pages:     len(pages),
		Files:     w.written,
		Duration:  time.Since(start),
	}
	log.Info().
		Str("output", out).
		Int("pages", report.Pages).
		Int("files", len(report.Files)).
		Dur("duration", report.Duration).
		Msg("site exported")
	return report, nil
}

// checkOutputDir refuses an output directory that Build's clean step would
// take sources with: the working directory, a protected directory, or any
// directory holding the content tree or a fragment file.
func (a *App) checkOutputDir(out string) error {
	abs, err := absPath(out)
	if err != nil {
		return fmt.Errorf("docshell: output directory: %w", err)
	}
	if abs == filepath.Dir(abs) {
		return fmt.Errorf("docshell: refusing to export into %q: filesystem root", out)
	}
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("docshell: output directory: %w", err)
	}

	type guard struct{ what, path string }
	guarded := []guard{{"working directory", wd}}
	for _, dir := range a.protected {
		guarded = append(guarded, guard{"directory " + dir, dir})
	}
	if a.contentFS == nil {
		guarded = append(guarded, guard{"content directory " + a.Config.ContentDir, a.Config.ContentDir})
	}
	for _, f := range a.Config.Fragments {
		guarded = append(guarded, guard{"fragment " + f, f})
	}

	for _, g := range guarded {
		target, err := absPath(g.path)
		if err != nil {
			continue
		}
		if within(abs, target) {
			return fmt.Errorf("docshell: refusing to export into %q: it would delete the %s", out, g.what)
		}
	}
	return nil
}

// absPath returns p as an absolute path with symlinks resolved where it
// exists.
func absPath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real, nil
	}
	if dir, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		return filepath.Join(dir, filepath.Base(abs)), nil
	}
	return abs, nil
}

// exportWriter writes files below root and keeps the first error.
type exportWriter struct {
	root    string
	written []string
	err     error
}

func (w *exportWriter) file(name string, data []byte) {
	if w.err != nil {
		return
	}
	dst := filepath.Join(w.root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		w.err = fmt.Errorf("docshell: write %s: %w", name, err)
		return
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		w.err = fmt.Errorf("docshell: write %s: %w", name, err)
		return
	}
	w.written = append(w.written, name)
}

func (w *exportWriter) component(ctx context.Context, name string, c templ.Component) error {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return fmt.Errorf("docshell: render %s: %w", name, err)
	}
	w.file(name, buf.Bytes())
	return w.err
}
