package converter

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/james-see/jazzimpro/pkg/theory"
	"gopkg.in/yaml.v3"
)

// Format represents an output format
type Format string

const (
	FormatMIDI    Format = "midi"
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatText    Format = "text"
	FormatUnknown Format = "unknown"
)

// DetectFormat detects the output format from a file extension
func DetectFormat(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".mid", ".midi":
		return FormatMIDI
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".txt":
		return FormatText
	default:
		return FormatUnknown
	}
}

// ParseFormat resolves a format name as given on the command line
func ParseFormat(name string) Format {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "midi", "mid":
		return FormatMIDI
	case "json":
		return FormatJSON
	case "yaml", "yml":
		return FormatYAML
	case "text", "txt", "":
		return FormatText
	default:
		return FormatUnknown
	}
}

// Analyze analyses every symbol, stopping at the first failure
func (c *Converter) Analyze(symbols []string) ([]theory.Analysis, error) {
	if len(symbols) == 0 {
		return nil, errors.New("no chord symbols given")
	}
	out := make([]theory.Analysis, 0, len(symbols))
	for _, s := range symbols {
		a, err := theory.Analyze(s)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s, err)
		}
		out = append(out, a)
	}
	return out, nil
}

// Render encodes analyses in the given format
func (c *Converter) Render(analyses []theory.Analysis, format Format) ([]byte, error) {
	switch format {
	case FormatMIDI:
		p, err := c.Progression(progressionName(analyses), analyses)
		if err != nil {
			return nil, err
		}
		midiConv := NewMIDIConverter()
		return midiConv.GenerateMIDI(p)
	case FormatJSON:
		return json.MarshalIndent(reports(analyses), "", "  ")
	case FormatYAML:
		return yaml.Marshal(reports(analyses))
	case FormatText:
		return []byte(Text(analyses)), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// ConvertFile analyses symbols and writes them to outputPath, picking
// the format from its extension
func (c *Converter) ConvertFile(symbols []string, outputPath string) error {
	format := DetectFormat(outputPath)
	if format == FormatUnknown {
		return errors.New("cannot determine output format from filename")
	}

	analyses, err := c.Analyze(symbols)
	if err != nil {
		return err
	}

	data, err := c.Render(analyses, format)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// SymbolsFromText splits a progression written as chord symbols separated
// by whitespace, commas or bar lines. Lines starting with "//" are skipped.
func SymbolsFromText(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "//") {
			continue
		}
		out = append(out, strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == '|' || r == ' ' || r == '\t' || r == '\r'
		})...)
	}
	return out
}

// ReadSymbolsFile reads a progression file, see SymbolsFromText
func ReadSymbolsFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	symbols := SymbolsFromText(string(data))
	if len(symbols) == 0 {
		return nil, fmt.Errorf("%s: no chord symbols found", filepath.Base(path))
	}
	return symbols, nil
}

// Text renders each analysis as two lines, base chord and improvisation chord
func Text(analyses []theory.Analysis) string {
	var b strings.Builder
	for _, a := range analyses {
		fmt.Fprintf(&b, "%s\n", chordLine(a.Chord, a.Notes))
		fmt.Fprintf(&b, "  improvise: %s\n", chordLine(a.Improvisation, a.ImprovisationNotes))
	}
	return b.String()
}

func chordLine(c theory.Chord, notes []theory.Note) string {
	names := make([]string, len(notes))
	for i, n := range notes {
		names[i] = n.String()
	}
	return fmt.Sprintf("%s: %s", c.Symbol(), strings.Join(names, ", "))
}

func reports(analyses []theory.Analysis) []Report {
	out := make([]Report, len(analyses))
	for i, a := range analyses {
		out[i] = NewReport(a)
	}
	return out
}

func progressionName(analyses []theory.Analysis) string {
	symbols := make([]string, len(analyses))
	for i, a := range analyses {
		symbols[i] = a.Chord.Symbol()
	}
	return strings.Join(symbols, " ")
}

// GetSupportedFormats returns the output formats by name
func GetSupportedFormats() []string {
	return []string{
		string(FormatText),
		string(FormatJSON),
		string(FormatYAML),
		string(FormatMIDI),
	}
}
