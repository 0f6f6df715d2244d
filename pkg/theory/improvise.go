package theory

import "fmt"

// Rule is the interval to shift by and the quality of the resulting chord.
type Rule struct {
	Shift  Interval
	Target Quality
}

var rules = [numQualities]Rule{
	Major7:          {Shift: PerfectFifth, Target: Major7},
	Minor7:          {Shift: PerfectFifth, Target: Minor7},
	Dominant7:       {Shift: PerfectFifth, Target: Minor7},
	HalfDiminished7: {Shift: DiminishedFifth, Target: Major7},
	Diminished7:     {Shift: DiminishedFifth, Target: Diminished7},
}

// RuleFor returns the improvisation rule for q.
func RuleFor(q Quality) (Rule, error) {
	if !q.Valid() {
		return Rule{}, &UnsupportedQualityError{Quality: q}
	}
	return rules[q], nil
}

// Improvise derives the chord to solo over for c. The new root is always
// spelled as the fifth of c's written root, even when the shift is a
// diminished fifth, so Bm7b5 yields Fmaj7 and not E#maj7. The spelled root
// and the target token are parsed as a new symbol; a root that needs a
// double accidental does not parse (Dbm7b5 spells Abb, read as Ab plus the
// quality "bmaj7") and the error is returned wrapped.
func Improvise(c Chord) (Chord, error) {
	rule, err := RuleFor(c.quality)
	if err != nil {
		return Chord{}, err
	}
	target := wrap(int(c.normalized.PitchClass()) + rule.Shift.Semitones)
	root, err := Spell(target, PerfectFifth.Degree, c.root.Letter)
	if err != nil {
		return Chord{}, fmt.Errorf("improvise %s: %w", c.Symbol(), err)
	}
	next, err := Parse(root.String() + rule.Target.Token())
	if err != nil {
		return Chord{}, fmt.Errorf("improvise %s: %w: %w", c.Symbol(), ErrImprovisation, err)
	}
	return next, nil
}

// ImproviseSymbol parses text and derives its improvisation chord.
func ImproviseSymbol(text string) (Chord, error) {
	c, err := Parse(text)
	if err != nil {
		return Chord{}, err
	}
	return Improvise(c)
}
