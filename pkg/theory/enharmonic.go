package theory

// spellingTable maps a non-preferred root spelling to the preferred one.
type spellingTable map[string]string

// commonSpellings apply whatever the quality.
var commonSpellings = spellingTable{
	"Gb": "F#",
	"A#": "Bb",
	"E#": "F",
	"Fb": "E",
	"B#": "C",
	"Cb": "B",
}

// qualitySpellings override commonSpellings for a given quality.
// Diminished7 has no overrides.
var qualitySpellings = map[Quality]spellingTable{
	Major7: {
		"C#": "Db",
		"D#": "Eb",
		"G#": "Ab",
	},
	Minor7: {
		"Db": "C#",
		"D#": "Eb",
		"Ab": "G#",
	},
	Dominant7: {
		"Db": "C#",
		"D#": "Eb",
		"G#": "Ab",
	},
	HalfDiminished7: {
		"Db": "C#",
		"Ab": "G#",
		"Eb": "D#",
	},
}

// Normalize returns the conventional spelling of root for a chord of
// quality q. The quality table is consulted first, then the common table;
// a root found in neither is returned unchanged. The result always has
// the same pitch class as root.
func Normalize(root Note, q Quality) Note {
	key := root.String()
	if s, ok := qualitySpellings[q][key]; ok {
		return MustParseNote(s)
	}
	if s, ok := commonSpellings[key]; ok {
		return MustParseNote(s)
	}
	return root
}
