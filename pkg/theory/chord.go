package theory

import (
	"fmt"
	"strings"
)

// Chord is a parsed chord symbol. It is immutable; notes are derived on demand.
type Chord struct {
	root       Note // as typed, supplies the reference letter for spelling
	quality    Quality
	normalized Note // conventional spelling, used for arithmetic
}

// Parse reads a chord symbol such as "C#maj7", "Dbm7" or "G7". Whitespace
// anywhere is ignored. The root is a letter A-G in either case with at
// most one '#' or 'b'; the rest is the quality token, Major7 when empty.
func Parse(text string) (Chord, error) {
	clean := strings.Join(strings.Fields(text), "")
	if clean == "" || letterIndex(upper(clean[0])) < 0 {
		return Chord{}, &FormatError{Input: text}
	}

	root := Note{Letter: upper(clean[0])}
	rest := clean[1:]
	if rest != "" {
		switch rest[0] {
		case '#':
			root.Alter = 1
			rest = rest[1:]
		case 'b', 'B':
			root.Alter = -1
			rest = rest[1:]
		}
	}

	q, err := ParseQuality(rest)
	if err != nil {
		return Chord{}, err
	}
	return newChord(root, q), nil
}

// MustParse is like Parse but panics on error.
func MustParse(text string) Chord {
	c, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return c
}

func newChord(root Note, q Quality) Chord {
	return Chord{root: root, quality: q, normalized: Normalize(root, q)}
}

// Root is the root as written in the symbol.
func (c Chord) Root() Note { return c.root }

// NormalizedRoot is the root after enharmonic canonicalization.
func (c Chord) NormalizedRoot() Note { return c.normalized }

// Quality returns the chord quality.
func (c Chord) Quality() Quality { return c.quality }

// Symbol renders the chord with its canonical quality token, e.g. "Dbmaj7".
func (c Chord) Symbol() string {
	return c.root.String() + c.quality.Token()
}

// Intervals returns the quality's formula.
func (c Chord) Intervals() []Interval {
	return c.quality.Formula()
}

// Notes spells root, third, fifth and seventh in that order.
func (c Chord) Notes() ([]Note, error) {
	if !c.quality.Valid() {
		return nil, &UnsupportedQualityError{Quality: c.quality}
	}
	base := int(c.normalized.PitchClass())
	formula := c.quality.Formula()
	notes := make([]Note, 0, len(formula))
	for _, iv := range formula {
		n, err := Spell(wrap(base+iv.Semitones), iv.Degree, c.root.Letter)
		if err != nil {
			return nil, fmt.Errorf("spell %s: %w", c.Symbol(), err)
		}
		notes = append(notes, n)
	}
	return notes, nil
}

// NoteNames is Notes rendered as strings.
func (c Chord) NoteNames() ([]string, error) {
	notes, err := c.Notes()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(notes))
	for i, n := range notes {
		names[i] = n.String()
	}
	return names, nil
}

// String renders "<symbol>: n1, n2, n3, n4". When the chord cannot be
// spelled the error text takes the place of the notes.
func (c Chord) String() string {
	names, err := c.NoteNames()
	if err != nil {
		return fmt.Sprintf("%s: %v", c.Symbol(), err)
	}
	return fmt.Sprintf("%s: %s", c.Symbol(), strings.Join(names, ", "))
}
