// Package i18n holds the English and Portuguese texts of the chord
// conversation and picks the language for a client.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys
const (
	Welcome       = "welcome"
	ChooseRoot    = "choose_root"
	RootChosen    = "root_chosen"
	QualityChosen = "quality_chosen"
	AccidentalSet = "accidental_set"
	Calculating   = "calculating"
	Result        = "result"
	BaseChord     = "base_chord"
	ImprovChord   = "improv_chord"
	Help          = "help"
	Cancelled     = "cancelled"
	NoSession     = "no_session"
	Expired       = "session_expired"
	Failed        = "failed"
	None          = "none"

	ButtonMajor      = "major"
	ButtonMinor      = "minor"
	ButtonDominant   = "dominant"
	ButtonHalfDim    = "half_dim"
	ButtonDiminished = "diminished"
	ButtonBack       = "back"
	ButtonNewChord   = "new_chord"
	ButtonHelp       = "help_button"
	ButtonCancel     = "cancel_button"
)

// Supported lists the catalog languages; the first one is the fallback.
var Supported = []language.Tag{language.English, language.Portuguese}

var texts = map[language.Tag]map[string]string{
	language.English: {
		Welcome:       "🎷 Welcome to Jazz Impro!\n\nPick a root note to jam.",
		ChooseRoot:    "Choose a root note to jam",
		RootChosen:    "Root note %s chosen! ✅\nChoose the chord quality:",
		QualityChosen: "Quality %s selected! ✅\nAdd an accidental if needed:",
		AccidentalSet: "Accidental %s set! ✅",
		Calculating:   "Calculating…",
		Result:        "🎼 Result",
		BaseChord:     "Base chord",
		ImprovChord:   "Improv. chord",
		Help: "How to jam with Jazz Impro 🎶\n" +
			"1. Pick a root note.\n" +
			"2. Choose the chord quality and an accidental if needed.\n" +
			"3. You get a chord a fifth above to inspire your solo.",
		Cancelled: "🚫 Session cancelled. Start again when you're ready to jam.",
		NoSession: "No active session. Start one to begin.",
		Expired:   "⚠️ Session expired. Start again to pick a new chord.",
		Failed:    "⚠️ Could not build that chord: %s",
		None:      "none",

		ButtonMajor:      "Major (maj7)",
		ButtonMinor:      "Minor (m7)",
		ButtonDominant:   "Dominant (7)",
		ButtonHalfDim:    "Half-diminished (m7b5)",
		ButtonDiminished: "Diminished (dim7)",
		ButtonBack:       "⬅️ Back",
		ButtonNewChord:   "🔁 New chord",
		ButtonHelp:       "📖 Help",
		ButtonCancel:     "❌ Cancel",
	},
	language.Portuguese: {
		Welcome:       "🎷 Bem-vindo ao Jazz Impro!\n\nEscolha uma tônica para improvisar.",
		ChooseRoot:    "Escolha uma tônica para improvisar",
		RootChosen:    "Tônica %s escolhida! ✅\nEscolha o tipo de acorde:",
		QualityChosen: "Tipo %s selecionado! ✅\nAdicione um acidente se precisar:",
		AccidentalSet: "Acidente %s definido! ✅",
		Calculating:   "Calculando…",
		Result:        "🎼 Resultado",
		BaseChord:     "Acorde base",
		ImprovChord:   "Acorde de impro.",
		Help: "Como improvisar com o Jazz Impro 🎶\n" +
			"1. Escolha uma tônica.\n" +
			"2. Escolha o tipo de acorde e um acidente se precisar.\n" +
			"3. Você recebe um acorde uma quinta acima para inspirar o solo.",
		Cancelled: "❌ Sessão cancelada. Comece de novo quando quiser.",
		NoSession: "Nenhuma sessão ativa. Comece uma para iniciar.",
		Expired:   "⚠️ Sessão expirada. Comece de novo para escolher outro acorde.",
		Failed:    "⚠️ Não foi possível montar esse acorde: %s",
		None:      "nenhum",

		ButtonMajor:      "Maior (maj7)",
		ButtonMinor:      "Menor (m7)",
		ButtonDominant:   "Dominante (7)",
		ButtonHalfDim:    "Meio diminuto (m7b5)",
		ButtonDiminished: "Diminuto (dim7)",
		ButtonBack:       "⬅️ Voltar",
		ButtonNewChord:   "🔁 Novo acorde",
		ButtonHelp:       "📖 Ajuda",
		ButtonCancel:     "❌ Cancelar",
	},
}

// Translator renders message keys in a supported language
type Translator struct {
	cat     *catalog.Builder
	matcher language.Matcher
}

// New builds the catalogs for every supported language
func New() (*Translator, error) {
	cat := catalog.NewBuilder(catalog.Fallback(Supported[0]))
	for tag, msgs := range texts {
		for key, msg := range msgs {
			if err := cat.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("i18n: %s/%s: %w", tag, key, err)
			}
		}
	}
	return &Translator{cat: cat, matcher: language.NewMatcher(Supported)}, nil
}

// MustNew is like New but panics on error
func MustNew() *Translator {
	tr, err := New()
	if err != nil {
		panic(err)
	}
	return tr
}

// Match picks the supported language closest to a client language code
// such as "pt-BR"; unknown or empty codes fall back to English.
func (tr *Translator) Match(code string) language.Tag {
	tag, err := language.Parse(code)
	if err != nil {
		return Supported[0]
	}
	_, idx, conf := tr.matcher.Match(tag)
	if conf == language.No {
		return Supported[0]
	}
	return Supported[idx]
}

// T renders key in lang, formatting args into it
func (tr *Translator) T(lang language.Tag, key string, args ...interface{}) string {
	p := message.NewPrinter(lang, message.Catalog(tr.cat))
	return p.Sprintf(key, args...)
}
