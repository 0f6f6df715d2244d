// Package main is the entry point for the jazzimpro CLI
package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/getsentry/sentry-go"
	"github.com/james-see/jazzimpro/internal/config"
	"github.com/james-see/jazzimpro/internal/logger"
	"github.com/james-see/jazzimpro/pkg/api"
	"github.com/james-see/jazzimpro/pkg/converter"
	"github.com/james-see/jazzimpro/pkg/flow"
	"github.com/james-see/jazzimpro/pkg/i18n"
	"github.com/james-see/jazzimpro/pkg/mcpserver"
	"github.com/james-see/jazzimpro/pkg/theory"
	"github.com/james-see/jazzimpro/pkg/tui"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const sentryFlushTimeout = 2 * time.Second

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	cfg *config.Config

	outputFormat  string
	outputFile    string
	inputFile     string
	octave        int
	tempo         float64
	beatsPerChord int
	serverPort    string
	lang          string
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg = config.Load()

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.Environment,
			Release:     "jazzimpro@" + version,
		}); err != nil {
			log.Printf("Failed to initialize Sentry: %v", err)
		} else {
			defer sentry.Flush(sentryFlushTimeout)
		}
	}

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		sentry.Flush(sentryFlushTimeout)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	if cfg == nil {
		cfg = config.Load()
	}

	rootCmd := &cobra.Command{
		Use:   "jazzimpro",
		Short: "Spell seventh chords and find the chord to improvise over",
		Long: `jazzimpro spells seventh chords (maj7, m7, 7, m7b5, dim7) and derives
the chord to improvise over for each one.

Examples:
  jazzimpro chord Dm7 G7 Cmaj7
  jazzimpro chord Bm7b5 --format json
  jazzimpro improvise C#maj7
  jazzimpro export Dm7 G7 Cmaj7 -o ii-V-I.mid
  jazzimpro tui
  jazzimpro serve --port 8080`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	chordCmd := &cobra.Command{
		Use:   "chord <symbol>...",
		Short: "Spell chords and their improvisation chords",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runChord,
	}
	chordCmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format (text, json, yaml)")

	improviseCmd := &cobra.Command{
		Use:   "improvise <symbol>...",
		Short: "Print the chord to improvise over",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runImprovise,
	}

	tableCmd := &cobra.Command{
		Use:   "table",
		Short: "Print the improvisation chord for every root and quality",
		Args:  cobra.NoArgs,
		RunE:  runTable,
	}

	exportCmd := &cobra.Command{
		Use:   "export [symbol]...",
		Short: "Write chords to a MIDI, JSON, YAML or text file",
		Long:  `Writes the chords, each followed by its improvisation chord. The output format is picked from the file extension.`,
		RunE:  runExport,
	}
	exportCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path (required)")
	exportCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Read chord symbols from a text file")
	exportCmd.Flags().IntVar(&octave, "octave", cfg.Octave, "Octave of the chord roots (4 puts C on key 60)")
	exportCmd.Flags().Float64Var(&tempo, "tempo", cfg.Tempo, "Tempo in beats per minute")
	exportCmd.Flags().IntVar(&beatsPerChord, "beats", cfg.BeatsPerChord, "Beats each chord is held")
	_ = exportCmd.MarkFlagRequired("output")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "Launch interactive terminal UI",
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&lang, "lang", cfg.DefaultLang, "Interface language (en, pt)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVarP(&serverPort, "port", "p", cfg.Port, "Server port")

	mcpCmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the chord tools over MCP stdio",
		RunE:  runMCP,
	}

	rootCmd.AddCommand(chordCmd)
	rootCmd.AddCommand(improviseCmd)
	rootCmd.AddCommand(tableCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	return rootCmd
}

func newConverter() *converter.Converter {
	return converter.New(converter.Options{
		Octave:        cfg.Octave,
		Tempo:         cfg.Tempo,
		BeatsPerChord: cfg.BeatsPerChord,
	})
}

func runChord(cmd *cobra.Command, args []string) error {
	format := converter.ParseFormat(outputFormat)
	if format == converter.FormatMIDI || format == converter.FormatUnknown {
		return fmt.Errorf("unsupported format %q: use text, json or yaml", outputFormat)
	}

	conv := newConverter()
	analyses, err := conv.Analyze(args)
	if err != nil {
		return err
	}
	out, err := conv.Render(analyses, format)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func runImprovise(cmd *cobra.Command, args []string) error {
	for _, symbol := range args {
		c, err := theory.ImproviseSymbol(symbol)
		if err != nil {
			return fmt.Errorf("%s: %w", symbol, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s → %s\n", symbol, c)
	}
	return nil
}

func runTable(cmd *cobra.Command, args []string) error {
	headers := []string{"root"}
	for _, q := range theory.Qualities() {
		headers = append(headers, q.Token())
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
	for _, root := range tableRoots() {
		row := []string{root}
		for _, q := range theory.Qualities() {
			row = append(row, tableCell(root+q.Token()))
		}
		t.Row(row...)
	}

	fmt.Fprintln(cmd.OutOrStdout(), t.Render())
	return nil
}

// tableRoots lists every letter flat, natural and sharp
func tableRoots() []string {
	var roots []string
	for _, l := range flow.Roots {
		roots = append(roots, l+"b", l, l+"#")
	}
	return roots
}

// tableCell is the improvisation chord of symbol, or why there is none
func tableCell(symbol string) string {
	a, err := theory.Analyze(symbol)
	if err != nil {
		return "-"
	}
	return a.Improvisation.Symbol()
}

func runExport(cmd *cobra.Command, args []string) error {
	symbols := args
	if inputFile != "" {
		fromFile, err := converter.ReadSymbolsFile(inputFile)
		if err != nil {
			return err
		}
		symbols = append(fromFile, symbols...)
	}
	if len(symbols) == 0 {
		return fmt.Errorf("no chord symbols: pass them as arguments or with --input")
	}

	conv := converter.New(converter.Options{Octave: octave, Tempo: tempo, BeatsPerChord: beatsPerChord})
	if err := conv.ConvertFile(symbols, outputFile); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d chords to %s\n", len(symbols), outputFile)
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	store := flow.NewStore(i18n.MustNew(), cfg.SessionTTL, cfg.DefaultLang, nil)
	defer store.Close()
	return tui.Run(store, newConverter(), lang)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg.Port = strings.TrimPrefix(serverPort, ":")
	fmt.Fprintf(cmd.OutOrStdout(), "Swagger docs available at http://localhost:%s/swagger/index.html\n", cfg.Port)
	return api.StartServer(cfg)
}

func runMCP(cmd *cobra.Command, args []string) error {
	logger.Info("Serving MCP over stdio", logger.Fields{"version": version})
	return mcpserver.ServeStdio(version, newConverter())
}
