package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Logo is the branding mark shown in the navbar: a filled circular glyph in a
// square viewport, followed by a text label. It has no inputs besides its own
// fields and renders identically every time.
type Logo struct {
	Size   int    // glyph width and height in px
	CX, CY int    // circle centre
	Radius int
	Fill   string // CSS colour name or #rrggbb
	Label  string
}

// DefaultLogo is the site's mark. The circle is centred on the glyph's
// bottom-right corner, so only its upper-left quarter is visible.
var DefaultLogo = Logo{
	Size:   10,
	CX:     10,
	CY:     10,
	Radius: 8,
	Fill:   "red",
	Label:  "GeorgII-web",
}

// Render implements templ.Component.
func (l Logo) Render(ctx context.Context, w io.Writer) error {
	_, err := io.WriteString(w, "<div>"+l.glyph("")+"<span>"+templ.EscapeString(l.Label)+"</span></div>")
	return err
}

// GlyphSVG returns the glyph as a standalone SVG document, used as favicon.
func (l Logo) GlyphSVG() string {
	return l.glyph(fmt.Sprintf(` xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d"`, l.Size, l.Size))
}

func (l Logo) glyph(extra string) string {
	return fmt.Sprintf(`<svg%s height="%d" width="%d"><circle cx="%d" cy="%d" r="%d" fill="%s"></circle></svg>`,
		extra, l.Size, l.Size, l.CX, l.CY, l.Radius, templ.EscapeString(l.Fill))
}
