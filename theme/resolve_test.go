package theme

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/a-h/templ"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLogo struct {
	Label string
}

func (l stubLogo) Render(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, "<span>"+l.Label+"</span>")
	return err
}

var ignoreProvenance = cmpopts.IgnoreFields(SiteConfiguration{}, "Provenance")

func required() Fragment {
	return Fragment{
		ProjectLink:        Set("https://x"),
		DocsRepositoryBase: Set("https://x/blob/"),
	}
}

func TestResolveEndToEnd(t *testing.T) {
	logo := stubLogo{Label: "L"}
	fragments := []Fragment{
		{
			Logo:               Set[templ.Component](logo),
			ProjectLink:        Set("https://x"),
			DocsRepositoryBase: Set("https://x/blob/"),
		},
		{FooterText: Set(Text("A"))},
		{
			FooterText: Set(Text("B")),
			Head:       Set([]HeadTag{{Name: "description", Content: "d"}}),
		},
	}

	got, err := Resolve(fragments...)
	require.NoError(t, err)

	want := &SiteConfiguration{
		Logo:               Set[templ.Component](logo),
		ProjectLink:        "https://x",
		DocsRepositoryBase: "https://x/blob/",
		FooterText:         Set(Text("B")),
		Head:               Set([]HeadTag{{Name: "description", Content: "d"}}),
	}
	if diff := cmp.Diff(want, got, ignoreProvenance); diff != "" {
		t.Fatalf("Resolve() mismatch (-want +got):\n%s", diff)
	}
	assert.False(t, got.GitTimestamp.Set, "gitTimestamp should stay unset")
	assert.Equal(t, map[string]int{
		KeyLogo:               0,
		KeyProjectLink:        0,
		KeyDocsRepositoryBase: 0,
		KeyFooterText:         2,
		KeyHead:               2,
	}, got.Provenance)
}

func TestResolveDisjointFragmentsCommute(t *testing.T) {
	a := Fragment{ProjectLink: Set("https://example.com/repo")}
	b := Fragment{DocsRepositoryBase: Set("https://example.com/repo/blob/main/")}
	c := Fragment{FooterText: Set(Text("footer")), GitTimestamp: Set(TimestampDisabled())}
	d := Fragment{Head: Set([]HeadTag{{Name: "robots", Content: "index"}})}

	orders := [][]Fragment{
		{a, b, c, d},
		{d, c, b, a},
		{b, d, a, c},
		{c, a, d, b},
	}
	first, err := Resolve(orders[0]...)
	require.NoError(t, err)
	for _, order := range orders[1:] {
		got, err := Resolve(order...)
		require.NoError(t, err)
		if diff := cmp.Diff(first, got, ignoreProvenance); diff != "" {
			t.Errorf("order changed the result (-first +got):\n%s", diff)
		}
	}
}

func TestResolveFooterLastWins(t *testing.T) {
	got, err := Resolve(required(),
		Fragment{FooterText: Set(HTML("<b>one</b>"))},
		Fragment{FooterText: Set(Text("two"))},
	)
	require.NoError(t, err)
	assert.Equal(t, Set(Text("two")), got.FooterText)
	assert.Equal(t, 2, got.Provenance[KeyFooterText])
}

func TestResolveOmissionKeepsEarlierValue(t *testing.T) {
	head := []HeadTag{{Name: "description", Content: "d"}, {Name: "author", Content: "a"}}
	f1 := required()
	f1.Head = Set(head)

	got, err := Resolve(f1, Fragment{FooterText: Set(Text("x"))})
	require.NoError(t, err)
	assert.Equal(t, head, got.Head.Value)
	assert.True(t, got.Head.Set)
}

func TestResolveExplicitEmptyHeadOverrides(t *testing.T) {
	f1 := required()
	f1.Head = Set([]HeadTag{{Name: "description", Content: "d"}})

	t.Run("empty list", func(t *testing.T) {
		got, err := Resolve(f1, Fragment{Head: Set([]HeadTag{})})
		require.NoError(t, err)
		assert.True(t, got.Head.Set)
		assert.Equal(t, []HeadTag{}, got.Head.Value)
		assert.Empty(t, got.MetaTags())
	})

	t.Run("nil list", func(t *testing.T) {
		got, err := Resolve(f1, Fragment{Head: Set[[]HeadTag](nil)})
		require.NoError(t, err)
		assert.Equal(t, []HeadTag{}, got.Head.Value)
	})
}

func TestResolveShorterHeadReplacesWholesale(t *testing.T) {
	f1 := required()
	f1.Head = Set([]HeadTag{{Name: "description", Content: "d"}, {Name: "keywords", Content: "k"}})
	f2 := Fragment{Head: Set([]HeadTag{{Name: "author", Content: "a"}})}

	got, err := Resolve(f1, f2)
	require.NoError(t, err)
	assert.Equal(t, []HeadTag{{Name: "author", Content: "a"}}, got.Head.Value)
}

func TestResolveHeadIsCopied(t *testing.T) {
	head := []HeadTag{{Name: "description", Content: "d"}}
	f := required()
	f.Head = Set(head)

	got, err := Resolve(f)
	require.NoError(t, err)
	head[0].Content = "changed"
	assert.Equal(t, "d", got.Head.Value[0].Content)
}

func TestResolveMissingProjectLink(t *testing.T) {
	_, err := Resolve(
		Fragment{DocsRepositoryBase: Set("https://x/blob/")},
		Fragment{FooterText: Set(Text("A"))},
	)
	require.Error(t, err)

	var missing *MissingFieldError
	require.True(t, errors.As(err, &missing), "expected MissingFieldError, got %v", err)
	assert.Equal(t, KeyProjectLink, missing.Key)
	assert.Contains(t, err.Error(), "project.link is required")
}

func TestResolveExplicitEmptyErasesRequiredKey(t *testing.T) {
	_, err := Resolve(required(), Fragment{ProjectLink: Set("")})

	var missing *MissingFieldError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, KeyProjectLink, missing.Key)
}

func TestResolveNoFragments(t *testing.T) {
	_, err := Resolve()

	var verr *ValidationErrors
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Errors(), 2)
	var keys []string
	for _, e := range verr.Errors() {
		var m *MissingFieldError
		require.True(t, errors.As(e, &m))
		keys = append(keys, m.Key)
	}
	assert.Equal(t, []string{KeyProjectLink, KeyDocsRepositoryBase}, keys)
}

func TestResolveMalformedURL(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"relative", "github.com/org/repo"},
		{"no host", "https:///path"},
		{"bad escape", "https://x/%zz"},
		{"query", "https://x/blob?ref=main"},
		{"empty query", "https://x/blob?"},
		{"fragment", "https://x/blob#main"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(required(), Fragment{
				Source:             "theme.override.yaml",
				DocsRepositoryBase: Set(tt.value),
			})
			var bad *MalformedURLError
			require.True(t, errors.As(err, &bad), "expected MalformedURLError, got %v", err)
			assert.Equal(t, KeyDocsRepositoryBase, bad.Key)
			assert.Equal(t, tt.value, bad.Value)
			assert.Contains(t, err.Error(), "fragment 1 (theme.override.yaml)")
		})
	}
}

func TestResolveAddsTrailingSlashToRepositoryBase(t *testing.T) {
	got, err := Resolve(Fragment{
		ProjectLink:        Set("https://github.com/org/repo"),
		DocsRepositoryBase: Set("https://github.com/org/repo/blob/master"),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/org/repo/blob/master/", got.DocsRepositoryBase)
}

func TestResolveProjectLinkMayCarryQuery(t *testing.T) {
	got, err := Resolve(Fragment{
		ProjectLink:        Set("https://x/repo?tab=readme"),
		DocsRepositoryBase: Set("https://x/blob"),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://x/repo?tab=readme", got.ProjectLink)
	assert.Equal(t, "https://x/blob/pages/a.html", got.EditURL("pages/a.html"))
}

func TestEditURL(t *testing.T) {
	cfg, err := Resolve(required())
	require.NoError(t, err)

	assert.Equal(t, "https://x/blob/pages/guide/intro.html", cfg.EditURL("pages/guide/intro.html"))
	assert.Equal(t, "https://x/blob/pages/a%20b.html", cfg.EditURL("/pages/a b.html"))
	assert.Equal(t, "", cfg.EditURL(""))
}

func TestTimestampLabel(t *testing.T) {
	tests := []struct {
		name      string
		field     Field[GitTimestamp]
		wantLabel string
		wantShow  bool
	}{
		{"unset", Field[GitTimestamp]{}, DefaultTimestampLabel, true},
		{"disabled", Set(TimestampDisabled()), "", false},
		{"empty label disables", Set(TimestampLabel("")), "", false},
		{"enabled default", Set(GitTimestamp{}), DefaultTimestampLabel, true},
		{"custom", Set(TimestampLabel("Edited")), "Edited", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &SiteConfiguration{GitTimestamp: tt.field}
			label, show := cfg.TimestampLabel()
			assert.Equal(t, tt.wantLabel, label)
			assert.Equal(t, tt.wantShow, show)
		})
	}
}

func TestFragmentKeys(t *testing.T) {
	f := Fragment{
		FooterText:   Set(Text("x")),
		ProjectLink:  Set("https://x"),
		GitTimestamp: Set(TimestampDisabled()),
	}
	assert.Equal(t, []string{KeyProjectLink, KeyFooterText, KeyGitTimestamp}, f.Keys())
	assert.Empty(t, Fragment{}.Keys())
}
