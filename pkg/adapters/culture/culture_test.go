package culture_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/aretw0/weave"
	"github.com/aretw0/weave/pkg/adapters/culture"
	"github.com/aretw0/weave/pkg/encoders"
	"github.com/aretw0/weave/pkg/ports"
)

func TestProvider_Sprintf(t *testing.T) {
	en := culture.New(language.English)
	assert.Equal(t, "1,234,567", en.Sprintf("%d", 1234567))

	br := culture.New(language.BrazilianPortuguese)
	assert.Equal(t, "1.234.567", br.Sprintf("%d", 1234567))
}

func TestParse(t *testing.T) {
	p, err := culture.Parse("en-US")
	require.NoError(t, err)
	assert.Equal(t, language.MustParse("en-US"), p.Tag())

	_, err = culture.Parse("!!invalid!!")
	assert.Error(t, err)
}

func TestProvider_FormatterHook(t *testing.T) {
	hook := ports.FormatterFunc(func(spec string, v any) (string, bool) {
		if spec == "shout" {
			return "LOUD", true
		}
		return "", false
	})

	p := culture.New(language.English, culture.WithFormatter(hook))
	require.NotNil(t, p.Formatter())

	s, ok := p.Formatter().Format("shout", "x")
	assert.True(t, ok)
	assert.Equal(t, "LOUD", s)

	_, ok = p.Formatter().Format("other", "x")
	assert.False(t, ok)
}

func TestProvider_DefaultNumberHook(t *testing.T) {
	en := culture.New(language.English)
	require.NotNil(t, en.Formatter())

	s, ok := en.Formatter().Format("n", 1234567)
	assert.True(t, ok)
	assert.Equal(t, "1,234,567", s)

	br := culture.New(language.BrazilianPortuguese)
	s, ok = br.Formatter().Format("n", 1234567)
	assert.True(t, ok)
	assert.Equal(t, "1.234.567", s)

	// Other specs and non-numeric values fall through to the next layer.
	_, ok = en.Formatter().Format("d", 1234567)
	assert.False(t, ok)
	_, ok = en.Formatter().Format("n", "not a number")
	assert.False(t, ok)

	b := weave.New().AppendFormatWith(en, "Count: {0:n}", 1234567)
	got, err := b.Render(encoders.HTML)
	require.NoError(t, err)
	assert.Equal(t, "Count: 1,234,567", got)
}

func TestNumber(t *testing.T) {
	en := culture.New(language.English)

	assert.Equal(t, "1,234,567", culture.Number{Value: 1234567}.Format("d", en))
	assert.Equal(t, "1234567", culture.Number{Value: 1234567}.Format("d", nil))
}

func TestDate(t *testing.T) {
	ts := time.Date(2026, time.March, 14, 15, 9, 0, 0, time.UTC)

	assert.Equal(t, "2026-03-14", culture.Date{Value: ts}.Format("2006-01-02", nil))
	assert.Equal(t, "2026-03-14T15:09:00Z", culture.Date{Value: ts}.Format("", nil))
}

func TestProvider_InFormatExpression(t *testing.T) {
	en := culture.New(language.English)

	b := weave.New().AppendFormatWith(en, "Total: {0:d}", culture.Number{Value: 1234567})
	got, err := b.Render(encoders.HTML)
	require.NoError(t, err)
	assert.Equal(t, "Total: 1,234,567", got)
}
