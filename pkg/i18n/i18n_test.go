package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestMatch(t *testing.T) {
	tr := MustNew()

	tests := []struct {
		code string
		want language.Tag
	}{
		{"en", language.English},
		{"en-US", language.English},
		{"pt", language.Portuguese},
		{"pt-BR", language.Portuguese},
		{"", language.English},
		{"xx-invalid-code!", language.English},
		{"ja", language.English},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.Match(tt.code))
		})
	}
}

func TestTranslate(t *testing.T) {
	tr, err := New()
	require.NoError(t, err)

	assert.Equal(t, "Choose a root note to jam", tr.T(language.English, ChooseRoot))
	assert.Equal(t, "Escolha uma tônica para improvisar", tr.T(language.Portuguese, ChooseRoot))
	assert.Equal(t, "Root note C chosen! ✅\nChoose the chord quality:", tr.T(language.English, RootChosen, "C"))
	assert.Contains(t, tr.T(language.Portuguese, RootChosen, "D"), "Tônica D")
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	en := texts[language.English]
	pt := texts[language.Portuguese]
	require.Len(t, pt, len(en))
	for key := range en {
		_, ok := pt[key]
		assert.True(t, ok, "missing pt text for %q", key)
	}
}
