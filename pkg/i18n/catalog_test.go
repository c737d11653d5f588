package i18n_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/i18n"
)

func testSegments() map[string]i18n.Segments {
	return map[string]i18n.Segments{
		"en-US": {
			"greeting": {First: "Hello", Middle: "Hi again", Last: "Bye for now"},
			"closing":  {First: "Thanks", Middle: "Cheers", Last: "Goodbye"},
		},
		"fr-FR": {
			"greeting": {First: "Bonjour", Middle: "Rebonjour", Last: "A bientot"},
		},
	}
}

func TestNewCatalog(t *testing.T) {
	t.Parallel()

	t.Run("loads map data", func(t *testing.T) {
		cat, err := i18n.NewCatalog(context.Background(), &i18n.MapAdapter{Data: testSegments()})
		require.NoError(t, err)
		assert.Equal(t, []string{"en-US", "fr-FR"}, cat.Locales())
		assert.Equal(t, "en-US", cat.DefaultLocale())
	})

	t.Run("nil adapter", func(t *testing.T) {
		_, err := i18n.NewCatalog(context.Background(), nil)
		require.ErrorIs(t, err, i18n.ErrNilAdapter)
	})

	t.Run("empty data", func(t *testing.T) {
		_, err := i18n.NewCatalog(context.Background(), &i18n.MapAdapter{})
		require.ErrorIs(t, err, i18n.ErrNoSegments)
	})

	t.Run("default locale must exist", func(t *testing.T) {
		_, err := i18n.NewCatalog(context.Background(), &i18n.MapAdapter{Data: testSegments()},
			i18n.WithDefaultLocale("de-DE"))
		require.ErrorIs(t, err, i18n.ErrDefaultLocaleMissing)
	})

	t.Run("invalid locale", func(t *testing.T) {
		data := map[string]i18n.Segments{"not a locale!": {}}
		_, err := i18n.NewCatalog(context.Background(), &i18n.MapAdapter{Data: data})
		require.ErrorIs(t, err, i18n.ErrInvalidLocale)
	})
}

func TestCatalogMatch(t *testing.T) {
	t.Parallel()

	cat, err := i18n.NewCatalog(context.Background(), &i18n.MapAdapter{Data: testSegments()})
	require.NoError(t, err)

	tests := []struct {
		name  string
		hints []string
		want  string
	}{
		{name: "exact", hints: []string{"fr-FR"}, want: "fr-FR"},
		{name: "base language", hints: []string{"fr"}, want: "fr-FR"},
		{name: "regional variant", hints: []string{"fr-CA"}, want: "fr-FR"},
		{name: "accept-language header", hints: []string{"ja;q=0.9, fr;q=0.8"}, want: "fr-FR"},
		{name: "unsupported falls back", hints: []string{"ja-JP"}, want: "en-US"},
		{name: "no hints", hints: nil, want: "en-US"},
		{name: "blank hints are skipped", hints: []string{"", " ", "fr"}, want: "fr-FR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cat.Match(tt.hints...))
		})
	}
}

func TestCatalogSegment(t *testing.T) {
	t.Parallel()

	cat, err := i18n.NewCatalog(context.Background(), &i18n.MapAdapter{Data: testSegments()})
	require.NoError(t, err)

	seg, ok := cat.Segment("en-US", " greeting ")
	require.True(t, ok)
	assert.Equal(t, "Hello", seg.First)

	seg, ok = cat.Segment("fr-FR", "greeting")
	require.True(t, ok)
	assert.Equal(t, "Bonjour", seg.First)

	_, ok = cat.Segment("fr-FR", "closing")
	assert.False(t, ok)
	assert.Equal(t, map[string]int{"fr-FR/closing": 1}, cat.Misses())

	assert.Equal(t, []string{"closing", "greeting"}, cat.Keys("en-US"))
}

func TestSegmentAt(t *testing.T) {
	t.Parallel()

	seg := i18n.Segment{First: "f", Middle: "m", Last: "l"}
	assert.Equal(t, "f", seg.At(0, 1))
	assert.Equal(t, "f", seg.At(0, 3))
	assert.Equal(t, "m", seg.At(1, 3))
	assert.Equal(t, "l", seg.At(2, 3))
}

func TestFSAdapter(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"prompts/a.yaml": {Data: []byte("en-US:\n  greeting:\n    first: A\n    middle: B\n    last: C\n")},
		"prompts/b.yml":  {Data: []byte("en-US:\n  greeting:\n    first: X\n    middle: Y\n    last: Z\n")},
		"prompts/c.txt":  {Data: []byte("ignored")},
	}

	t.Run("later files override", func(t *testing.T) {
		data, err := i18n.NewFSAdapter(i18n.NewYAMLParser(), fsys, "prompts").Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "X", data["en-US"]["greeting"].First)
	})

	t.Run("no supported files", func(t *testing.T) {
		_, err := i18n.NewFSAdapter(i18n.NewYAMLParser(), fstest.MapFS{"x.txt": {}}, ".").Load(context.Background())
		require.ErrorIs(t, err, i18n.ErrNoSegmentFiles)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := i18n.NewFSAdapter(i18n.NewYAMLParser(), fsys, "prompts").Load(ctx)
		require.ErrorIs(t, err, i18n.ErrLoadingCancelled)
	})

	t.Run("nil parser", func(t *testing.T) {
		assert.Nil(t, i18n.NewFSAdapter(nil, fsys, "prompts"))
	})
}

func TestYAMLParser(t *testing.T) {
	t.Parallel()

	p := i18n.NewYAMLParser()

	t.Run("incomplete segment", func(t *testing.T) {
		_, err := p.Parse(context.Background(), []byte("en-US:\n  greeting:\n    first: A\n"))
		require.ErrorIs(t, err, i18n.ErrInvalidSegment)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := p.Parse(context.Background(), []byte("en-US:\n  greeting:\n    first: A\n    middle: B\n    last: C\n    extra: D\n"))
		require.ErrorIs(t, err, i18n.ErrFailedToParseYAML)
	})

	t.Run("extensions", func(t *testing.T) {
		assert.True(t, p.SupportsFileExtension(".yaml"))
		assert.True(t, p.SupportsFileExtension("YML"))
		assert.False(t, p.SupportsFileExtension("json"))
	})
}

func TestDefaultCatalog(t *testing.T) {
	t.Parallel()

	cat := i18n.Default()
	assert.Equal(t, []string{"en-US", "es-US"}, cat.Locales())
	for _, locale := range cat.Locales() {
		assert.Equal(t, []string{"authentication", "balance", "closing", "greeting"}, cat.Keys(locale))
	}

	seg, ok := cat.Segment("en-US", "greeting")
	require.True(t, ok)
	assert.Equal(t, "Hello and welcome", seg.First)
}
