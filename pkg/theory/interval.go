package theory

// Interval is a chord degree with its quality, named by a short token
// such as "3M" or "7d".
type Interval struct {
	Token     string
	Degree    int
	Semitones int
}

// The intervals used by the chord formulas.
var (
	Unison            = Interval{Token: "1", Degree: 1, Semitones: 0}
	MajorThird        = Interval{Token: "3M", Degree: 3, Semitones: 4}
	MinorThird        = Interval{Token: "3m", Degree: 3, Semitones: 3}
	PerfectFifth      = Interval{Token: "5J", Degree: 5, Semitones: 7}
	DiminishedFifth   = Interval{Token: "5b", Degree: 5, Semitones: 6}
	MajorSeventh      = Interval{Token: "7M", Degree: 7, Semitones: 11}
	MinorSeventh      = Interval{Token: "7m", Degree: 7, Semitones: 10}
	DiminishedSeventh = Interval{Token: "7d", Degree: 7, Semitones: 9}
)

var intervals = map[string]Interval{
	Unison.Token:            Unison,
	MajorThird.Token:        MajorThird,
	MinorThird.Token:        MinorThird,
	PerfectFifth.Token:      PerfectFifth,
	DiminishedFifth.Token:   DiminishedFifth,
	MajorSeventh.Token:      MajorSeventh,
	MinorSeventh.Token:      MinorSeventh,
	DiminishedSeventh.Token: DiminishedSeventh,
}

// IntervalByToken looks up an interval by its token.
func IntervalByToken(token string) (Interval, bool) {
	i, ok := intervals[token]
	return i, ok
}

func (i Interval) String() string { return i.Token }
