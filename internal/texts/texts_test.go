package texts

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubLangs struct {
	lang string
	err  error
}

func (s stubLangs) Lang(context.Context, int64) (string, error) { return s.lang, s.err }

func TestGetFallbackChain(t *testing.T) {
	assert.Equal(t, messages["order_posted"]["ru"], Get("order_posted", "ru", "tr", "en"))
	// Unknown language falls through to the next one in the chain.
	assert.Equal(t, messages["order_posted"]["tr"], Get("order_posted", "de", "tr", "en"))
	assert.Equal(t, "", Get("no_such_key", "en"))
}

func TestResolverUserLang(t *testing.T) {
	r := NewResolver(stubLangs{lang: "ru"}, "tr", "en")
	assert.Equal(t, "ru", r.UserLang(context.Background(), 1))

	// No stored preference: fixed fallback.
	r = NewResolver(stubLangs{}, "tr", "en")
	assert.Equal(t, "tr", r.UserLang(context.Background(), 1))

	// Lookup error behaves like no preference.
	r = NewResolver(stubLangs{err: errors.New("db down")}, "tr", "en")
	assert.Equal(t, "tr", r.UserLang(context.Background(), 1))
}

func TestResolverText(t *testing.T) {
	r := NewResolver(stubLangs{lang: "en"}, "tr", "en")
	assert.Equal(t, messages["list_header"]["en"], r.Text(context.Background(), "list_header", 1))

	// A language with no translation for the key uses the fallback text.
	r = NewResolver(stubLangs{lang: "de"}, "tr", "en")
	assert.Equal(t, messages["list_header"]["tr"], r.Text(context.Background(), "list_header", 1))
}

func TestEveryKeyHasAllLanguages(t *testing.T) {
	for key, byLang := range messages {
		for _, lang := range []string{"en", "tr", "ru"} {
			if byLang[lang] == "" {
				t.Fatalf("key %s missing %s translation", key, lang)
			}
		}
	}
}
