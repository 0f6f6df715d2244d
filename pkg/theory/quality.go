package theory

import "fmt"

// Quality is one of the five seventh-chord qualities.
type Quality int

const (
	Major7 Quality = iota
	Minor7
	Dominant7
	HalfDiminished7
	Diminished7

	numQualities
)

var qualityTokens = [numQualities]string{
	Major7:          "maj7",
	Minor7:          "m7",
	Dominant7:       "7",
	HalfDiminished7: "m7b5",
	Diminished7:     "dim7",
}

var qualityNames = [numQualities]string{
	Major7:          "major seventh",
	Minor7:          "minor seventh",
	Dominant7:       "dominant seventh",
	HalfDiminished7: "half-diminished seventh",
	Diminished7:     "diminished seventh",
}

// formulas lists root, third, fifth and seventh for each quality.
var formulas = [numQualities][4]Interval{
	Major7:          {Unison, MajorThird, PerfectFifth, MajorSeventh},
	Minor7:          {Unison, MinorThird, PerfectFifth, MinorSeventh},
	Dominant7:       {Unison, MajorThird, PerfectFifth, MinorSeventh},
	HalfDiminished7: {Unison, MinorThird, DiminishedFifth, MinorSeventh},
	Diminished7:     {Unison, MinorThird, DiminishedFifth, DiminishedSeventh},
}

// qualityAliases is the accepted token set in display order. Matching is
// case-sensitive: "M" is major and "m" is minor.
var qualityAliases = []struct {
	token   string
	quality Quality
}{
	{"M", Major7},
	{"maj7", Major7},
	{"m", Minor7},
	{"m7", Minor7},
	{"min7", Minor7},
	{"7", Dominant7},
	{"dom7", Dominant7},
	{"-7b5", HalfDiminished7},
	{"m7b5", HalfDiminished7},
	{"dim", Diminished7},
	{"dim7", Diminished7},
}

// Qualities returns all qualities in declaration order.
func Qualities() []Quality {
	qs := make([]Quality, 0, numQualities)
	for q := Quality(0); q < numQualities; q++ {
		qs = append(qs, q)
	}
	return qs
}

// ParseQuality resolves a quality token or synonym. The empty token is Major7.
func ParseQuality(token string) (Quality, error) {
	if token == "" {
		return Major7, nil
	}
	for _, a := range qualityAliases {
		if a.token == token {
			return a.quality, nil
		}
	}
	return 0, &QualityError{Token: token, Valid: ValidTokens()}
}

// ValidTokens lists every accepted quality token, canonical and synonym.
func ValidTokens() []string {
	tokens := make([]string, len(qualityAliases))
	for i, a := range qualityAliases {
		tokens[i] = a.token
	}
	return tokens
}

// Valid reports whether q is one of the five known qualities.
func (q Quality) Valid() bool {
	return q >= 0 && q < numQualities
}

// Token is the canonical symbol suffix, e.g. "m7b5".
func (q Quality) Token() string {
	if !q.Valid() {
		return ""
	}
	return qualityTokens[q]
}

// Name is the long English name.
func (q Quality) Name() string {
	if !q.Valid() {
		return ""
	}
	return qualityNames[q]
}

// Formula returns the quality's four intervals, or nil for an unknown quality.
func (q Quality) Formula() []Interval {
	if !q.Valid() {
		return nil
	}
	f := formulas[q]
	return f[:]
}

// Aliases lists every token that resolves to q, canonical token included.
func (q Quality) Aliases() []string {
	var out []string
	for _, a := range qualityAliases {
		if a.quality == q {
			out = append(out, a.token)
		}
	}
	return out
}

func (q Quality) String() string {
	if !q.Valid() {
		return fmt.Sprintf("Quality(%d)", int(q))
	}
	return qualityTokens[q]
}
