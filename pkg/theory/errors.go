package theory

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Errors caused by chord input wrap one of these.
var (
	ErrInvalidFormat      = errors.New("invalid chord format")
	ErrInvalidQuality     = errors.New("invalid chord quality")
	ErrUnsupportedQuality = errors.New("unsupported chord quality")
	ErrSpellingOverflow   = errors.New("spelling overflow")

	// ErrImprovisation is wrapped, alongside the parse error, when the
	// improvisation root of a valid chord cannot be written as a symbol.
	ErrImprovisation = errors.New("no improvisation chord")
)

// FormatError reports input that is not letter[accidental]quality.
type FormatError struct {
	Input string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid chord format: %q", e.Input)
}

func (e *FormatError) Unwrap() error { return ErrInvalidFormat }

// QualityError reports a quality token outside the accepted set.
type QualityError struct {
	Token string
	Valid []string
}

func (e *QualityError) Error() string {
	return fmt.Sprintf("invalid chord quality: %q. Valid qualities: %s", e.Token, strings.Join(e.Valid, ", "))
}

func (e *QualityError) Unwrap() error { return ErrInvalidQuality }

// UnsupportedQualityError reports a Quality value outside the five known variants.
type UnsupportedQualityError struct {
	Quality Quality
}

func (e *UnsupportedQualityError) Error() string {
	return fmt.Sprintf("unsupported chord quality: %v", e.Quality)
}

func (e *UnsupportedQualityError) Unwrap() error { return ErrUnsupportedQuality }

// SpellingError reports a chord tone that would need more than two
// accidentals on the diatonic letter it must use.
type SpellingError struct {
	Degree int
	Letter byte
	Diff   int
}

func (e *SpellingError) Error() string {
	return fmt.Sprintf("cannot spell degree %d on %c: %+d semitones", e.Degree, e.Letter, e.Diff)
}

func (e *SpellingError) Unwrap() error { return ErrSpellingOverflow }
