package theme

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/a-h/templ"
)

// Logos maps logo names used in fragment files to components.
type Logos map[string]templ.Component

// CheckLogo renders logo once and fails with *UnrenderableLogoError if it
// returns an error, panics or writes nothing. A nil logo is not checked.
func CheckLogo(ctx context.Context, logo templ.Component) (err error) {
	if logo == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = &UnrenderableLogoError{Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	var buf bytes.Buffer
	if rerr := logo.Render(ctx, &buf); rerr != nil {
		return &UnrenderableLogoError{Err: rerr}
	}
	if strings.TrimSpace(buf.String()) == "" {
		return &UnrenderableLogoError{Err: errors.New("empty output")}
	}
	return nil
}
