package flow

import (
	"github.com/james-see/jazzimpro/pkg/i18n"
	"github.com/james-see/jazzimpro/pkg/theory"
	"golang.org/x/text/language"
)

// Action data carried by buttons
const (
	ActionRestart     = "restart"
	ActionShowHelp    = "show_help"
	ActionQuickCancel = "quick_cancel"
	ActionBackRoot    = "back:root"
	ActionBackType    = "back:type"

	prefixRoot = "root"
	prefixType = "type"
	prefixAcc  = "acc"
)

// Roots are the root letters offered, in button order
var Roots = []string{"C", "D", "E", "F", "G", "A", "B"}

// Button is a labelled action
type Button struct {
	Text string `json:"text"`
	Data string `json:"data"`
}

// Keyboard is rows of buttons
type Keyboard [][]Button

var typeButtons = []struct {
	label   string
	quality theory.Quality
}{
	{i18n.ButtonMajor, theory.Major7},
	{i18n.ButtonMinor, theory.Minor7},
	{i18n.ButtonDominant, theory.Dominant7},
	{i18n.ButtonHalfDim, theory.HalfDiminished7},
	{i18n.ButtonDiminished, theory.Diminished7},
}

var accButtons = []Button{
	{Text: "♮", Data: prefixAcc + ":"},
	{Text: "♭", Data: prefixAcc + ":b"},
	{Text: "♯", Data: prefixAcc + ":#"},
}

// twoColumn lays buttons out two per row
func twoColumn(buttons []Button) Keyboard {
	var kb Keyboard
	for i := 0; i < len(buttons); i += 2 {
		row := []Button{buttons[i]}
		if i+1 < len(buttons) {
			row = append(row, buttons[i+1])
		}
		kb = append(kb, row)
	}
	return kb
}

func rootKeyboard(tr *i18n.Translator, lang language.Tag, quick bool) Keyboard {
	buttons := make([]Button, len(Roots))
	for i, r := range Roots {
		buttons[i] = Button{Text: r, Data: prefixRoot + ":" + r}
	}
	kb := twoColumn(buttons)
	if quick {
		quickRow := []Button{
			{Text: tr.T(lang, i18n.ButtonHelp), Data: ActionShowHelp},
			{Text: tr.T(lang, i18n.ButtonCancel), Data: ActionQuickCancel},
		}
		kb = append(Keyboard{quickRow}, kb...)
	}
	return kb
}

func typeKeyboard(tr *i18n.Translator, lang language.Tag) Keyboard {
	kb := Keyboard{{{Text: tr.T(lang, i18n.ButtonBack), Data: ActionBackRoot}}}
	for _, b := range typeButtons {
		kb = append(kb, []Button{{Text: tr.T(lang, b.label), Data: prefixType + ":" + b.quality.Token()}})
	}
	return kb
}

func accKeyboard(tr *i18n.Translator, lang language.Tag) Keyboard {
	kb := Keyboard{{{Text: tr.T(lang, i18n.ButtonBack), Data: ActionBackType}}}
	for _, b := range accButtons {
		kb = append(kb, []Button{b})
	}
	return kb
}

func resultKeyboard(tr *i18n.Translator, lang language.Tag) Keyboard {
	return Keyboard{{{Text: tr.T(lang, i18n.ButtonNewChord), Data: ActionRestart}}}
}
