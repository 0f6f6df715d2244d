package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/james-see/jazzimpro/pkg/converter"
	"github.com/james-see/jazzimpro/pkg/theory"
	"github.com/mark3labs/mcp-go/mcp"
)

// ChordNotesTool handles the chord_notes MCP tool.
type ChordNotesTool struct {
	conv *converter.Converter
}

// NewChordNotesTool creates a ChordNotesTool.
func NewChordNotesTool(conv *converter.Converter) *ChordNotesTool {
	return &ChordNotesTool{conv: conv}
}

// Definition returns the MCP tool definition for chord_notes.
func (t *ChordNotesTool) Definition() mcp.Tool {
	return mcp.NewTool("chord_notes",
		mcp.WithDescription(
			"Spell seventh chords and the chord to improvise over for each. "+
				"Accepts one symbol or a progression such as \"Dm7 | G7 | Cmaj7\".",
		),
		mcp.WithString("symbols",
			mcp.Required(),
			mcp.Description("Chord symbols separated by spaces, commas or bar lines"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: text (default), json or yaml"),
		),
	)
}

// Handle processes the chord_notes tool call.
func (t *ChordNotesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	symbols := converter.SymbolsFromText(req.GetString("symbols", ""))
	if len(symbols) == 0 {
		return mcp.NewToolResultError("'symbols' is required"), nil
	}

	format := converter.ParseFormat(req.GetString("format", "text"))
	if format != converter.FormatText && format != converter.FormatJSON && format != converter.FormatYAML {
		return mcp.NewToolResultError(fmt.Sprintf("unsupported format %q: use text, json or yaml", req.GetString("format", ""))), nil
	}

	analyses, err := t.conv.Analyze(symbols)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := t.conv.Render(analyses, format)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("render failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

// ImproviseTool handles the improvise MCP tool.
type ImproviseTool struct{}

// NewImproviseTool creates an ImproviseTool.
func NewImproviseTool() *ImproviseTool {
	return &ImproviseTool{}
}

// Definition returns the MCP tool definition for improvise.
func (t *ImproviseTool) Definition() mcp.Tool {
	return mcp.NewTool("improvise",
		mcp.WithDescription("Return the chord to improvise over for a seventh chord, with its notes."),
		mcp.WithString("symbol",
			mcp.Required(),
			mcp.Description("Chord symbol, e.g. Bm7b5"),
		),
	)
}

// Handle processes the improvise tool call.
func (t *ImproviseTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	symbol := strings.TrimSpace(req.GetString("symbol", ""))
	if symbol == "" {
		return mcp.NewToolResultError("'symbol' is required"), nil
	}

	c, err := theory.ImproviseSymbol(symbol)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	names, err := c.NoteNames()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s → %s: %s", symbol, c.Symbol(), strings.Join(names, ", "))), nil
}

// QualitiesTool handles the chord_qualities MCP tool.
type QualitiesTool struct{}

// NewQualitiesTool creates a QualitiesTool.
func NewQualitiesTool() *QualitiesTool {
	return &QualitiesTool{}
}

// Definition returns the MCP tool definition for chord_qualities.
func (t *QualitiesTool) Definition() mcp.Tool {
	return mcp.NewTool("chord_qualities",
		mcp.WithDescription("List the supported chord qualities, their accepted spellings, interval formulas and improvisation rules."),
	)
}

// Handle processes the chord_qualities tool call.
func (t *QualitiesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var b strings.Builder
	for _, q := range theory.Qualities() {
		formula := make([]string, 0, 4)
		for _, iv := range q.Formula() {
			formula = append(formula, iv.Token)
		}
		rule, err := theory.RuleFor(q)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		fmt.Fprintf(&b, "%s (%s)\n  spellings: %s\n  formula: %s\n  improvise: up %s, %s\n",
			q.Token(), q.Name(),
			strings.Join(q.Aliases(), ", "),
			strings.Join(formula, " "),
			rule.Shift.Token, rule.Target.Token(),
		)
	}
	return mcp.NewToolResultText(b.String()), nil
}
