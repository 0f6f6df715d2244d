package converter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/james-see/jazzimpro/pkg/theory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		filename string
		expected Format
	}{
		{"out.mid", FormatMIDI},
		{"out.MIDI", FormatMIDI},
		{"out.json", FormatJSON},
		{"out.yaml", FormatYAML},
		{"out.yml", FormatYAML},
		{"out.txt", FormatText},
		{"out.seq", FormatUnknown},
		{"out", FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectFormat(tt.filename))
		})
	}
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatText, ParseFormat(""))
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatYAML, ParseFormat("yml"))
	assert.Equal(t, FormatMIDI, ParseFormat("mid"))
	assert.Equal(t, FormatUnknown, ParseFormat("wav"))
}

func TestNewDefaults(t *testing.T) {
	conv := New(Options{Octave: 3})
	opts := conv.GetOptions()
	assert.Equal(t, 3, opts.Octave)
	assert.Equal(t, 120.0, opts.Tempo)
	assert.Equal(t, 4, opts.BeatsPerChord)

	conv.SetOctave(5)
	assert.Equal(t, 5, conv.GetOptions().Octave)
}

func TestVoice(t *testing.T) {
	tests := []struct {
		symbol string
		octave int
		keys   []uint8
	}{
		{"Cmaj7", 4, []uint8{60, 64, 67, 71}},
		{"Am7", 3, []uint8{57, 60, 64, 67}},
		{"G7", 4, []uint8{67, 71, 74, 77}},
		{"Bm7b5", 2, []uint8{47, 50, 53, 57}},
		{"Cdim7", 4, []uint8{60, 63, 66, 69}},
		{"B#maj7", 4, []uint8{72, 76, 79, 83}},
		{"Cbmaj7", 4, []uint8{59, 63, 66, 70}},
		{"Fb7", 3, []uint8{52, 56, 59, 62}},
		{"E#m7", 3, []uint8{53, 56, 60, 63}},
	}

	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			v, err := Voice(theory.MustParse(tt.symbol), tt.octave)
			require.NoError(t, err)
			assert.Equal(t, tt.keys, v.Keys)
			assert.Equal(t, theory.MustParse(tt.symbol).Symbol(), v.Symbol)
		})
	}
}

func TestVoiceRange(t *testing.T) {
	_, err := Voice(theory.MustParse("C"), 9)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = Voice(theory.MustParse("B"), MaxOctave)
	assert.ErrorIs(t, err, ErrOutOfRange, "B8 major seventh runs past key 127")

	_, err = Voice(theory.MustParse("C"), MaxOctave)
	assert.NoError(t, err)

	_, err = Voice(theory.MustParse("Cb"), MinOctave)
	assert.ErrorIs(t, err, ErrOutOfRange, "Cb-1 sits below key 0")

	v, err := Voice(theory.MustParse("C"), MinOctave)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 4, 7}, v.Keys)
}

func TestMIDIRoundTrip(t *testing.T) {
	conv := New(Options{Octave: 4, Tempo: 100, BeatsPerChord: 2})
	analyses, err := conv.Analyze([]string{"Dm7", "G7"})
	require.NoError(t, err)

	data, err := conv.Render(analyses, FormatMIDI)
	require.NoError(t, err)
	require.True(t, len(data) > 14)
	assert.Equal(t, "MThd", string(data[:4]))

	p, err := NewMIDIConverter().ParseMIDI(data)
	require.NoError(t, err)
	assert.Equal(t, "Dm7 G7", p.Name)
	assert.InDelta(t, 100.0, p.Tempo, 0.01)
	assert.Equal(t, 2, p.BeatsPerChord)

	// Dm7, Am7, G7, Dm7
	require.Len(t, p.Chords, 4)
	assert.Equal(t, []uint8{62, 65, 69, 72}, p.Chords[0].Keys)
	assert.Equal(t, []uint8{69, 72, 76, 79}, p.Chords[1].Keys)
	assert.Equal(t, []uint8{67, 71, 74, 77}, p.Chords[2].Keys)
	assert.Equal(t, []uint8{62, 65, 69, 72}, p.Chords[3].Keys)
	assert.Equal(t, DefaultVelocity, p.Chords[0].Velocity)
}

func TestGenerateMIDIErrors(t *testing.T) {
	m := NewMIDIConverter()
	_, err := m.GenerateMIDI(nil)
	assert.Error(t, err)

	_, err = m.GenerateMIDI(&Progression{})
	assert.Error(t, err)

	chords := []Voicing{{Symbol: "C", Keys: []uint8{60, 64, 67}}}
	for _, tempo := range []float64{3, 1, 0.5, 1e9} {
		_, err = m.GenerateMIDI(&Progression{Tempo: tempo, Chords: chords})
		assert.ErrorIs(t, err, ErrOutOfRange, "tempo %v", tempo)
	}

	data, err := m.GenerateMIDI(&Progression{Tempo: 3.6, Chords: chords})
	require.NoError(t, err)
	p, err := m.ParseMIDI(data)
	require.NoError(t, err)
	assert.InDelta(t, 3.6, p.Tempo, 0.01)
}

func TestRenderJSON(t *testing.T) {
	conv := New(DefaultOptions())
	analyses, err := conv.Analyze([]string{"Bm7b5"})
	require.NoError(t, err)

	data, err := conv.Render(analyses, FormatJSON)
	require.NoError(t, err)

	var got []Report
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Bm7b5", got[0].Symbol)
	assert.Equal(t, []string{"B", "D", "F", "A"}, got[0].Notes)
	assert.Equal(t, []string{"1", "3m", "5b", "7m"}, got[0].Intervals)
	require.NotNil(t, got[0].Improvisation)
	assert.Equal(t, "Fmaj7", got[0].Improvisation.Symbol)
}

func TestRenderYAML(t *testing.T) {
	conv := New(DefaultOptions())
	analyses, err := conv.Analyze([]string{"Gbmaj7"})
	require.NoError(t, err)

	data, err := conv.Render(analyses, FormatYAML)
	require.NoError(t, err)

	var got []Report
	require.NoError(t, yaml.Unmarshal(data, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Gb", got[0].Root)
	assert.Equal(t, "F#", got[0].NormalizedRoot)
	assert.Equal(t, "major seventh", got[0].QualityName)
}

func TestRenderText(t *testing.T) {
	conv := New(DefaultOptions())
	analyses, err := conv.Analyze([]string{"Cmaj7"})
	require.NoError(t, err)

	data, err := conv.Render(analyses, FormatText)
	require.NoError(t, err)
	assert.Equal(t, "Cmaj7: C, E, G, B\n  improvise: Gmaj7: G, B, D, F#\n", string(data))

	_, err = conv.Render(analyses, FormatUnknown)
	assert.Error(t, err)
}

func TestAnalyzeErrors(t *testing.T) {
	conv := New(DefaultOptions())

	_, err := conv.Analyze(nil)
	assert.Error(t, err)

	_, err = conv.Analyze([]string{"Cmaj7", "Hm7"})
	require.Error(t, err)
	assert.ErrorIs(t, err, theory.ErrInvalidFormat)
	assert.True(t, strings.HasPrefix(err.Error(), "Hm7:"))
}

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	conv := New(DefaultOptions())

	out := filepath.Join(dir, "tune.mid")
	require.NoError(t, conv.ConvertFile([]string{"Cmaj7", "A7"}, out))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "MThd", string(data[:4]))

	err = conv.ConvertFile([]string{"Cmaj7"}, filepath.Join(dir, "tune.wav"))
	assert.Error(t, err)
}

func TestGetSupportedFormats(t *testing.T) {
	assert.Equal(t, []string{"text", "json", "yaml", "midi"}, GetSupportedFormats())
}

func TestSymbolsFromText(t *testing.T) {
	text := "// ii-V-I in C\nDm7 | G7 | Cmaj7\n\nF#m7b5, B7\tEm7\r\n"
	assert.Equal(t, []string{"Dm7", "G7", "Cmaj7", "F#m7b5", "B7", "Em7"}, SymbolsFromText(text))
	assert.Empty(t, SymbolsFromText("// nothing\n  \n"))
}

func TestReadSymbolsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tune.txt")
	require.NoError(t, os.WriteFile(path, []byte("Cmaj7 A7\nDm7 G7\n"), 0644))

	symbols, err := ReadSymbolsFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cmaj7", "A7", "Dm7", "G7"}, symbols)

	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("// todo\n"), 0644))
	_, err = ReadSymbolsFile(empty)
	assert.Error(t, err)

	_, err = ReadSymbolsFile(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}
