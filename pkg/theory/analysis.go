package theory

// Analysis bundles a chord, its notes, and its improvisation chord with notes.
type Analysis struct {
	Chord              Chord
	Notes              []Note
	Improvisation      Chord
	ImprovisationNotes []Note
}

// Analyze parses symbol and derives everything the presentation layers show.
func Analyze(symbol string) (Analysis, error) {
	c, err := Parse(symbol)
	if err != nil {
		return Analysis{}, err
	}
	return AnalyzeChord(c)
}

// AnalyzeChord is Analyze for an already parsed chord.
func AnalyzeChord(c Chord) (Analysis, error) {
	notes, err := c.Notes()
	if err != nil {
		return Analysis{}, err
	}
	impro, err := Improvise(c)
	if err != nil {
		return Analysis{}, err
	}
	impNotes, err := impro.Notes()
	if err != nil {
		return Analysis{}, err
	}
	return Analysis{
		Chord:              c,
		Notes:              notes,
		Improvisation:      impro,
		ImprovisationNotes: impNotes,
	}, nil
}
