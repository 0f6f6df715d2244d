// Package converter turns analysed chords into MIDI voicings and renders
// them as Standard MIDI Files, JSON, YAML or plain text.
package converter

import "github.com/james-see/jazzimpro/pkg/theory"

// Voicing is one chord struck as a block
type Voicing struct {
	Symbol   string
	Keys     []uint8 // MIDI key numbers, ascending
	Velocity uint8   // 0 means the converter default
}

// Progression is a sequence of voicings played one after another
type Progression struct {
	Name          string
	Chords        []Voicing
	Tempo         float64
	BeatsPerChord int
}

// Report is the serializable view of an analysed chord
type Report struct {
	Symbol         string   `json:"symbol" yaml:"symbol"`
	Root           string   `json:"root" yaml:"root"`
	NormalizedRoot string   `json:"normalized_root" yaml:"normalized_root"`
	Quality        string   `json:"quality" yaml:"quality"`
	QualityName    string   `json:"quality_name" yaml:"quality_name"`
	Intervals      []string `json:"intervals" yaml:"intervals"`
	Notes          []string `json:"notes" yaml:"notes"`
	Improvisation  *Report  `json:"improvisation,omitempty" yaml:"improvisation,omitempty"`
}

// NewReport builds the report for an analysis, improvisation chord nested
func NewReport(a theory.Analysis) Report {
	r := ChordReport(a.Chord, a.Notes)
	impro := ChordReport(a.Improvisation, a.ImprovisationNotes)
	r.Improvisation = &impro
	return r
}

// ChordReport builds the report for a single chord and its spelled notes
func ChordReport(c theory.Chord, notes []theory.Note) Report {
	r := Report{
		Symbol:         c.Symbol(),
		Root:           c.Root().String(),
		NormalizedRoot: c.NormalizedRoot().String(),
		Quality:        c.Quality().Token(),
		QualityName:    c.Quality().Name(),
		Intervals:      make([]string, 0, 4),
		Notes:          make([]string, 0, len(notes)),
	}
	for _, iv := range c.Intervals() {
		r.Intervals = append(r.Intervals, iv.Token)
	}
	for _, n := range notes {
		r.Notes = append(r.Notes, n.String())
	}
	return r
}

// Options configures a Converter
type Options struct {
	Octave        int     // octave of the chord roots, 4 puts C on key 60
	Tempo         float64 // beats per minute
	BeatsPerChord int
}

// DefaultOptions returns the options used when a field is left zero
func DefaultOptions() Options {
	return Options{Octave: 4, Tempo: 120.0, BeatsPerChord: 4}
}

// Converter handles format conversions
type Converter struct {
	opts Options
}

// New creates a new Converter; zero tempo and beats fall back to the defaults
func New(opts Options) *Converter {
	def := DefaultOptions()
	if opts.Tempo <= 0 {
		opts.Tempo = def.Tempo
	}
	if opts.BeatsPerChord <= 0 {
		opts.BeatsPerChord = def.BeatsPerChord
	}
	return &Converter{opts: opts}
}

// GetOptions returns the current options
func (c *Converter) GetOptions() Options {
	return c.opts
}

// SetOctave sets the octave used for voicings
func (c *Converter) SetOctave(octave int) {
	c.opts.Octave = octave
}
