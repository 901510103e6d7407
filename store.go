package docshell

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrNotFound is returned when a requested page does not exist.
var ErrNotFound = errors.New("docshell: page not found")

// pageExt is the extension of pre-rendered page files.
const pageExt = ".html"

// Store reads pre-rendered pages from a content tree. Each page is an HTML
// fragment with optional YAML front matter:
//
//	---
//	title: Getting started
//	description: First steps
//	weight: 10
//	---
//	<p>...</p>
type Store struct {
	fsys     fs.FS
	siteName string
}

type pageMeta struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Weight      int    `yaml:"weight"`
}

// NewStore creates a Store over fsys. siteName titles the root index page
// when its front matter has no title.
func NewStore(fsys fs.FS, siteName string) *Store {
	return &Store{fsys: fsys, siteName: siteName}
}

// NewDirStore creates a Store over a directory on disk.
func NewDirStore(dir, siteName string) (*Store, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("content directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content directory %s is not a directory", dir)
	}
	return NewStore(os.DirFS(dir), siteName), nil
}

// ListPages returns every page ordered by weight, then route.
func (s *Store) ListPages() ([]Page, error) {
	var pages []Page
	seen := make(map[string]string)
	err := fs.WalkDir(s.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if p != "." && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.EqualFold(path.Ext(name), pageExt) {
			return nil
		}
		page, err := s.readPage(p)
		if err != nil {
			return fmt.Errorf("read page %s: %w", p, err)
		}
		if other, dup := seen[page.Route]; dup {
			return fmt.Errorf("pages %s and %s both map to route %s", other, p, page.Route)
		}
		seen[page.Route] = p
		pages = append(pages, page)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(pages, func(i, j int) bool {
		if pages[i].Weight != pages[j].Weight {
			return pages[i].Weight < pages[j].Weight
		}
		return pages[i].Route < pages[j].Route
	})
	return pages, nil
}

// GetPage returns the page served at route.
func (s *Store) GetPage(route string) (Page, error) {
	pages, err := s.ListPages()
	if err != nil {
		return Page{}, err
	}
	route = normalizeRoute(route)
	for _, p := range pages {
		if p.Route == route {
			return p, nil
		}
	}
	return Page{}, ErrNotFound
}

func (s *Store) readPage(p string) (Page, error) {
	data, err := fs.ReadFile(s.fsys, p)
	if err != nil {
		return Page{}, err
	}
	var meta pageMeta
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		return Page{}, fmt.Errorf("front matter: %w", err)
	}
	info, err := fs.Stat(s.fsys, p)
	if err != nil {
		return Page{}, err
	}
	route := routeFor(p)
	title := meta.Title
	if title == "" {
		title = s.titleFor(route)
	}
	return Page{
		Route:        route,
		Title:        title,
		Description:  meta.Description,
		Weight:       meta.Weight,
		SourcePath:   p,
		Body:         string(body),
		LastModified: info.ModTime(),
	}, nil
}

// routeFor maps "index.html" to "/", "guide/index.html" to "/guide/" and
// "Guide/Intro Notes.html" to "/guide/intro-notes/".
func routeFor(p string) string {
	p = strings.TrimSuffix(p, path.Ext(p))
	if path.Base(p) == "index" {
		p = path.Dir(p)
	}
	if p == "." || p == "" {
		return "/"
	}
	segs := strings.Split(p, "/")
	for i, seg := range segs {
		if slug := Slugify(seg); slug != "" {
			segs[i] = slug
		}
	}
	return "/" + strings.Join(segs, "/") + "/"
}

func normalizeRoute(route string) string {
	route = "/" + strings.Trim(route, "/")
	if route != "/" {
		route += "/"
	}
	return route
}

func (s *Store) titleFor(route string) string {
	if route == "/" && s.siteName != "" {
		return s.siteName
	}
	name := path.Base(strings.TrimSuffix(route, "/"))
	if name == "/" || name == "." {
		return s.siteName
	}
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return cases.Title(language.English).String(name)
}
