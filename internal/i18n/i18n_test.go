// internal/i18n/i18n_test.go
package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestI18n(t *testing.T) *I18n {
	i := &I18n{
		translations: make(map[string]map[string]string),
		defaultLang:  "pt_BR",
	}
	require.NoError(t, i.LoadTranslations("./locales"))
	return i
}

func TestTranslationLookup(t *testing.T) {
	i := newTestI18n(t)

	assert.Equal(t, "Proposta não encontrada", i.T("pt_BR", KeyProposalNotFound))
	assert.Equal(t, "Proposal not found", i.T("en", KeyProposalNotFound))
}

func TestFallbackToDefaultLanguage(t *testing.T) {
	i := newTestI18n(t)

	// Unknown language falls back to pt_BR
	assert.Equal(t, "Proposta não encontrada", i.T("fr", KeyProposalNotFound))
}

func TestUnknownKeyReturnsKey(t *testing.T) {
	i := newTestI18n(t)

	assert.Equal(t, "nope.missing", i.T("pt_BR", "nope.missing"))
}

func TestFormattedTranslation(t *testing.T) {
	i := newTestI18n(t)

	assert.Equal(t, "Field email is required", i.T("en", KeyValidationRequired, "email"))
}

func TestLocalesHaveSameKeys(t *testing.T) {
	i := newTestI18n(t)

	for key := range i.translations["pt_BR"] {
		_, ok := i.translations["en"][key]
		assert.True(t, ok, "missing en translation for %s", key)
	}
	for key := range i.translations["en"] {
		_, ok := i.translations["pt_BR"][key]
		assert.True(t, ok, "missing pt_BR translation for %s", key)
	}
}
