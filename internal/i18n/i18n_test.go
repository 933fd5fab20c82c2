// internal/i18n/i18n_test.go
package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeLocales(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	en := `{"company.status.approved": "Company approved", "common.greeting": "Hello %s"}`
	it := `{"company.status.approved": "Azienda approvata"}`
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "en.json"), []byte(en), 0644))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "it.json"), []byte(it), 0644))

	return dir
}

func newTestI18n(t *testing.T, defaultLang string) *I18n {
	t.Helper()
	i := &I18n{
		translations: make(map[string]map[string]string),
		defaultLang:  defaultLang,
	}
	assert.NoError(t, i.LoadTranslations(writeLocales(t)))
	return i
}

func TestLoadTranslationsFromConfiguredPath(t *testing.T) {
	i := newTestI18n(t, "en")

	assert.Equal(t, "Company approved", i.T("en", "company.status.approved"))
	assert.Equal(t, "Azienda approvata", i.T("it", "company.status.approved"))
}

func TestTranslationFallsBackToDefaultLanguage(t *testing.T) {
	i := newTestI18n(t, "en")

	assert.Equal(t, "Hello Welo", i.T("it", "common.greeting", "Welo"))
}

func TestUnknownKeyReturnsKey(t *testing.T) {
	i := newTestI18n(t, "en")

	assert.Equal(t, "missing.key", i.T("en", "missing.key"))
}

func TestLoadTranslationsFailsOnMissingPath(t *testing.T) {
	i := &I18n{translations: make(map[string]map[string]string), defaultLang: "en"}

	assert.Error(t, i.LoadTranslations(filepath.Join(t.TempDir(), "nope")))
}
