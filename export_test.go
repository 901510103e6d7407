package docshell

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/docshell/theme"
)

func readOut(t *testing.T, root, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(name)))
	require.NoError(t, err, name)
	return string(data)
}

func TestBuild(t *testing.T) {
	cfg := testSiteConfig(t)
	a := New(cfg, WithContentFS(testContent()), WithFragments(baseFragment()))

	// stale output from an earlier export must be removed
	writeFile(t, filepath.Join(cfg.OutputDir, "notes", "old", "index.html"), "old")

	report, err := a.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, report.Pages)
	assert.Equal(t, cfg.OutputDir, report.OutputDir)
	assert.Contains(t, report.Files, "notes/index.html")
	assert.Contains(t, report.Files, "notes/guide/intro-notes/index.html")
	assert.Contains(t, report.Files, "404.html")
	assert.Contains(t, report.Files, "robots.txt")
	assert.Contains(t, report.Files, "notes/favicon.png")

	out := cfg.OutputDir
	_, err = os.Stat(filepath.Join(out, "notes", "old"))
	assert.True(t, os.IsNotExist(err), "stale output must be removed")

	home := readOut(t, out, "notes/index.html")
	assert.True(t, strings.HasPrefix(home, "<!doctype html>"))
	assert.Contains(t, home, "<p>home</p>")
	assert.Contains(t, home, "gtm.js?id=G-YJNFH344GM")

	intro := readOut(t, out, "notes/guide/intro-notes/index.html")
	assert.Contains(t, intro, "Edit this page")
	assert.Contains(t, intro, "<title>Intro Notes – Notes</title>")

	assert.Contains(t, readOut(t, out, "404.html"), "404 · Page not found")
	assert.Contains(t, readOut(t, out, "notes/sitemap.xml"), "<loc>https://example.com/notes/</loc>")
	assert.Contains(t, readOut(t, out, "robots.txt"), "Sitemap: https://example.com/notes/sitemap.xml")
	assert.Contains(t, readOut(t, out, "notes/favicon.svg"), `viewBox="0 0 10 10"`)
	assert.True(t, strings.HasPrefix(readOut(t, out, "notes/apple-touch-icon.png"), "\x89PNG"))

	var artifact map[string]any
	require.NoError(t, json.Unmarshal([]byte(readOut(t, out, "notes/theme.json")), &artifact))
	assert.Equal(t, "https://github.com/GeorgII-web/notes", artifact["projectLink"])
	assert.Equal(t, "https://github.com/GeorgII-web/notes/blob/master/", artifact["docsRepositoryBase"])
	assert.Equal(t, "views.Logo", artifact["logo"])

	require.NotNil(t, a.Theme())
}

func TestBuildFeedOrdersByLastModified(t *testing.T) {
	cfg := testSiteConfig(t)
	a := New(cfg, WithContentFS(testContent()), WithFragments(baseFragment()))
	_, err := a.Build(context.Background())
	require.NoError(t, err)

	feed := readOut(t, cfg.OutputDir, "notes/feed.xml")
	intro := strings.Index(feed, "<item><title>Intro Notes</title>")
	home := strings.Index(feed, "<item><title>Notes</title>")
	require.GreaterOrEqual(t, intro, 0, feed)
	require.GreaterOrEqual(t, home, 0, feed)
	assert.Less(t, intro, home, "newest page first")
}

func TestBuildUnrenderableLogoWritesNothing(t *testing.T) {
	cfg := testSiteConfig(t)
	marker := filepath.Join(cfg.OutputDir, "keep.txt")
	writeFile(t, marker, "previous export")

	a := New(cfg,
		WithContentFS(testContent()),
		WithFragments(baseFragment(), theme.Fragment{Logo: theme.Set[templ.Component](failingLogo{})}),
	)
	_, err := a.Build(context.Background())
	var logoErr *theme.UnrenderableLogoError
	require.ErrorAs(t, err, &logoErr)

	_, err = os.Stat(marker)
	assert.NoError(t, err, "previous export must be left in place")
	_, err = os.Stat(filepath.Join(cfg.OutputDir, "notes"))
	assert.True(t, os.IsNotExist(err))
}

func TestBuildRejectsWorkingDirectoryAsOutput(t *testing.T) {
	cfg := testSiteConfig(t)
	cfg.OutputDir = "."
	a := New(cfg, WithContentFS(testContent()), WithFragments(baseFragment()))
	_, err := a.Build(context.Background())
	require.ErrorContains(t, err, "refusing to export")
}

func TestBuildRefusesOutputHoldingSources(t *testing.T) {
	site := t.TempDir()
	pages := filepath.Join(site, "pages")
	fragment := filepath.Join(site, "theme", "site.yaml")
	writeFile(t, filepath.Join(pages, "index.html"), "<p>home</p>")
	writeFile(t, fragment, "footer:\n  text: hi\n")

	tests := []struct {
		name string
		out  string
		opts []Option
		want string
	}{
		{"ancestor of content", site, nil, "content directory"},
		{"content itself", pages, nil, "content directory"},
		{"fragment directory", filepath.Join(site, "theme"), nil, "fragment"},
		{"protected directory", filepath.Join(site, "conf"), []Option{WithProtectedDirs(filepath.Join(site, "conf"))}, "directory"},
		{"filesystem root", string(filepath.Separator), nil, "filesystem root"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testSiteConfig(t)
			cfg.ContentDir = pages
			cfg.OutputDir = tt.out
			cfg.Fragments = []string{fragment}
			opts := append([]Option{WithFragments(baseFragment())}, tt.opts...)
			a := New(cfg, opts...)

			_, err := a.Build(context.Background())
			require.ErrorContains(t, err, "refusing to export")
			assert.ErrorContains(t, err, tt.want)

			_, err = os.Stat(filepath.Join(pages, "index.html"))
			require.NoError(t, err, "sources must survive")
			_, err = os.Stat(fragment)
			require.NoError(t, err, "sources must survive")
		})
	}
}

func TestBuildNextToSources(t *testing.T) {
	site := t.TempDir()
	pages := filepath.Join(site, "pages")
	writeFile(t, filepath.Join(pages, "index.html"), "<p>home</p>")

	cfg := testSiteConfig(t)
	cfg.ContentDir = pages
	cfg.OutputDir = filepath.Join(site, "out")
	a := New(cfg, WithFragments(baseFragment()), WithProtectedDirs(site))

	report, err := a.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Pages)
	assert.Contains(t, readOut(t, cfg.OutputDir, "notes/index.html"), "<p>home</p>")
}

func TestBuildWithoutIconLogoSkipsIcons(t *testing.T) {
	cfg := testSiteConfig(t)
	cfg.BasePath = RootBasePath
	a := New(cfg,
		WithContentFS(testContent()),
		WithFragments(baseFragment(), theme.Fragment{Logo: theme.Set[templ.Component](nil)}),
	)
	report, err := a.Build(context.Background())
	require.NoError(t, err)
	assert.Contains(t, report.Files, "index.html")
	assert.NotContains(t, report.Files, "favicon.png")
	assert.Contains(t, readOut(t, cfg.OutputDir, "index.html"), `<a class="brand" href="/">Notes</a>`)
}
