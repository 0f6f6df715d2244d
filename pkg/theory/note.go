// Package theory spells the notes of four-note jazz chords from a chord
// symbol and derives the chord to improvise over, a fixed interval above.
//
// Everything here is a pure function over immutable values and static
// tables, so it is safe for concurrent use without synchronization.
package theory

import (
	"fmt"
	"strings"
)

// PitchClass is a semitone distance from C, always in [0, 11].
type PitchClass int

// letters is the diatonic letter cycle starting at C.
const letters = "CDEFGAB"

// naturals holds the pitch class of each letter in letters, without accidentals.
var naturals = [7]PitchClass{0, 2, 4, 5, 7, 9, 11}

// degreeSteps maps a chord degree to the number of letters it sits above the root.
var degreeSteps = map[int]int{1: 0, 3: 2, 5: 4, 7: 6}

// maxAlter is the largest accidental the speller will write (## or bb).
const maxAlter = 2

// Note is a written note: a letter A-G and a signed accidental count,
// +1 per sharp and -1 per flat.
type Note struct {
	Letter byte
	Alter  int
}

func letterIndex(l byte) int {
	return strings.IndexByte(letters, l)
}

func wrap(v int) PitchClass {
	return PitchClass((v%12 + 12) % 12)
}

// ParseNote reads a letter followed by any number of '#' or 'b'
// characters. Letter and flat sign are case-insensitive.
func ParseNote(s string) (Note, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Note{}, &FormatError{Input: s}
	}
	n := Note{Letter: upper(s[0])}
	if letterIndex(n.Letter) < 0 {
		return Note{}, &FormatError{Input: s}
	}
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '#':
			n.Alter++
		case 'b', 'B':
			n.Alter--
		default:
			return Note{}, &FormatError{Input: s}
		}
	}
	return n, nil
}

// MustParseNote is like ParseNote but panics on error. For tables and tests.
func MustParseNote(s string) Note {
	n, err := ParseNote(s)
	if err != nil {
		panic(err)
	}
	return n
}

// PitchClass returns the semitone distance of n from C, modulo 12.
func (n Note) PitchClass() PitchClass {
	return wrap(int(naturals[letterIndex(n.Letter)]) + n.Alter)
}

// Semitones is the distance of n from the C written in the same octave,
// without wrapping: Cb is -1 and B# is 12.
func (n Note) Semitones() int {
	return int(naturals[letterIndex(n.Letter)]) + n.Alter
}

func (n Note) String() string {
	sign, count := "#", n.Alter
	if count < 0 {
		sign, count = "b", -count
	}
	return string(n.Letter) + strings.Repeat(sign, count)
}

// Spell names the note with pitch class target that sits on the given
// chord degree (1, 3, 5 or 7) above a root written with letter ref.
// The letter is fixed by stacking thirds over the letter cycle; only the
// accidental is chosen, and it may not exceed a double sharp or flat.
func Spell(target PitchClass, degree int, ref byte) (Note, error) {
	step, ok := degreeSteps[degree]
	if !ok {
		return Note{}, fmt.Errorf("theory: %d is not a chord degree", degree)
	}
	idx := letterIndex(upper(ref))
	if idx < 0 {
		return Note{}, fmt.Errorf("theory: %q is not a note letter", ref)
	}
	idx = (idx + step) % 7

	diff := int(wrap(int(target) - int(naturals[idx])))
	if diff > 6 {
		diff -= 12
	}
	if diff > maxAlter || diff < -maxAlter {
		return Note{}, &SpellingError{Degree: degree, Letter: letters[idx], Diff: diff}
	}
	return Note{Letter: letters[idx], Alter: diff}, nil
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}
