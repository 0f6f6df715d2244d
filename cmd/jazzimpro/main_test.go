package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/james-see/jazzimpro/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfg = config.Load()
	outputFormat, outputFile, inputFile = "text", "", ""

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestChordCommand(t *testing.T) {
	out, err := execute(t, "chord", "Dm7", "G7")
	require.NoError(t, err)
	assert.Equal(t,
		"Dm7: D, F, A, C\n  improvise: Am7: A, C, E, G\n"+
			"G7: G, B, D, F\n  improvise: Dm7: D, F, A, C\n", out)

	out, err = execute(t, "chord", "Cmaj7", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "symbol: Cmaj7")

	_, err = execute(t, "chord", "Cmaj7", "--format", "midi")
	assert.Error(t, err)

	_, err = execute(t, "chord", "Hmaj7")
	assert.Error(t, err)
}

func TestImproviseCommand(t *testing.T) {
	out, err := execute(t, "improvise", "Cmaj7", "Bm7b5")
	require.NoError(t, err)
	assert.Equal(t, "Cmaj7 → Gmaj7: G, B, D, F#\nBm7b5 → Fmaj7: F, A, C, E\n", out)
}

func TestTableCommand(t *testing.T) {
	out, err := execute(t, "table")
	require.NoError(t, err)
	assert.Contains(t, out, "Gmaj7")
	assert.Contains(t, out, "dim7")
	// header, 21 roots, borders
	assert.GreaterOrEqual(t, strings.Count(out, "\n"), 22)
}

func TestTableHelpers(t *testing.T) {
	roots := tableRoots()
	require.Len(t, roots, 21)
	assert.Equal(t, []string{"Cb", "C", "C#"}, roots[:3])

	assert.Equal(t, "Am7", tableCell("Dm7"))
	assert.Equal(t, "-", tableCell("Fdim7"))
	assert.Equal(t, "-", tableCell("Dbm7b5"))
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()

	out := filepath.Join(dir, "tune.json")
	msg, err := execute(t, "export", "Dm7", "G7", "-o", out)
	require.NoError(t, err)
	assert.Contains(t, msg, "Wrote 2 chords")
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"symbol": "Dm7"`)

	in := filepath.Join(dir, "tune.txt")
	require.NoError(t, os.WriteFile(in, []byte("Dm7 | G7 | Cmaj7\n"), 0644))
	mid := filepath.Join(dir, "tune.mid")
	_, err = execute(t, "export", "-i", in, "-o", mid)
	require.NoError(t, err)
	info, err := os.Stat(mid)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	_, err = execute(t, "export", "-o", mid)
	assert.Error(t, err)
}
