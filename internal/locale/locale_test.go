package locale

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailableLanguages(t *testing.T) {
	assert.Equal(t, []string{"de", "en", "tr"}, Available())
}

func TestEveryOfferedLanguageHasCompleteBundle(t *testing.T) {
	require.NoError(t, Validate())

	for _, code := range Available() {
		b, ok := Lookup(code)
		require.True(t, ok, code)
		assert.NotEmpty(t, b.Nav.Next, code)
		assert.NotEqual(t, code, Name(code), "missing display name for %s", code)
	}
}

func TestLookupUnknownLanguage(t *testing.T) {
	b, ok := Lookup("xx")
	assert.False(t, ok)
	assert.Nil(t, b)
	assert.False(t, Has("xx"))
}

func TestBundlesDiffer(t *testing.T) {
	en, _ := Lookup("en")
	tr, _ := Lookup("tr")
	assert.Equal(t, "Next", en.Nav.Next)
	assert.Equal(t, "İleri", tr.Nav.Next)
	assert.Equal(t, "Ready ✓", en.Ready.ReadyStatus)
}

func TestCategoryFallsBackToKey(t *testing.T) {
	en, _ := Lookup("en")
	assert.Equal(t, "Development", en.Category("development"))
	assert.Equal(t, "games", en.Category("games"))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"tr_TR.UTF-8", "tr"},
		{"en_US", "en"},
		{"de", "de"},
		{" DE-at ", "de"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), tt.in)
	}
}

func TestCollectEmptyReportsPaths(t *testing.T) {
	var b Bundle
	b.Nav.Back = "Back"

	var missing []string
	collectEmpty(reflect.ValueOf(b), "", &missing)

	assert.Contains(t, missing, "nav.next")
	assert.Contains(t, missing, "welcome.features")
	assert.NotContains(t, missing, "nav.back")
}
