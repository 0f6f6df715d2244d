package converter

import (
	"errors"
	"fmt"

	"github.com/james-see/jazzimpro/pkg/theory"
)

// Octave bounds accepted by Voice
const (
	MinOctave = -1
	MaxOctave = 8
)

// ErrOutOfRange is wrapped by errors for voicings outside the MIDI key range
var ErrOutOfRange = errors.New("out of MIDI range")

// DefaultVelocity is used for voicings without an explicit velocity
const DefaultVelocity uint8 = 90

// Voice places chord in close root position. The octave belongs to the
// written letter, so C4 is key 60, Cb4 is 59 and B#4 is 72.
func Voice(chord theory.Chord, octave int) (Voicing, error) {
	if octave < MinOctave || octave > MaxOctave {
		return Voicing{}, fmt.Errorf("%w: octave %d not in [%d, %d]", ErrOutOfRange, octave, MinOctave, MaxOctave)
	}

	root := 12*(octave+1) + chord.Root().Semitones()
	v := Voicing{Symbol: chord.Symbol()}
	for _, iv := range chord.Intervals() {
		key := root + iv.Semitones
		if key < 0 || key > 127 {
			return Voicing{}, fmt.Errorf("%w: %s in octave %d", ErrOutOfRange, chord.Symbol(), octave)
		}
		v.Keys = append(v.Keys, uint8(key))
	}
	return v, nil
}

// Progression voices each analysis followed by its improvisation chord
func (c *Converter) Progression(name string, analyses []theory.Analysis) (*Progression, error) {
	p := &Progression{
		Name:          name,
		Tempo:         c.opts.Tempo,
		BeatsPerChord: c.opts.BeatsPerChord,
	}
	for _, a := range analyses {
		for _, chord := range []theory.Chord{a.Chord, a.Improvisation} {
			v, err := Voice(chord, c.opts.Octave)
			if err != nil {
				return nil, err
			}
			p.Chords = append(p.Chords, v)
		}
	}
	return p, nil
}
