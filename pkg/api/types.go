package api

import (
	"github.com/james-see/jazzimpro/pkg/converter"
	"github.com/james-see/jazzimpro/pkg/flow"
)

// ErrorResponse is returned with every 4xx and 5xx status
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// QualityInfo describes one supported chord quality
type QualityInfo struct {
	Token     string   `json:"token"`
	Name      string   `json:"name"`
	Aliases   []string `json:"aliases"`
	Intervals []string `json:"intervals"`
}

// ChordsRequest asks for the analysis of several symbols
type ChordsRequest struct {
	Symbols []string `json:"symbols" binding:"required,min=1"`
}

// ChordsResponse holds one report per requested symbol
type ChordsResponse struct {
	Chords []converter.Report `json:"chords"`
}

// ImproviseRequest asks for the improvisation chord of a symbol
type ImproviseRequest struct {
	Symbol string `json:"symbol" binding:"required"`
}

// ImproviseResponse pairs the input chord with its improvisation chord
type ImproviseResponse struct {
	Chord         converter.Report `json:"chord"`
	Improvisation converter.Report `json:"improvisation"`
}

// ExportRequest describes a MIDI export. Zero fields use the server defaults.
type ExportRequest struct {
	Symbols       []string `json:"symbols" binding:"required,min=1"`
	Octave        *int     `json:"octave,omitempty"`
	Tempo         float64  `json:"tempo,omitempty"`
	BeatsPerChord int      `json:"beats_per_chord,omitempty"`
}

// SessionRequest starts a chat session
type SessionRequest struct {
	Lang string `json:"lang"`
}

// ActionRequest carries the data of a pressed button
type ActionRequest struct {
	Data string `json:"data" binding:"required"`
}

// SessionResponse is the state shown to a chat client after each step
type SessionResponse struct {
	ID       string         `json:"id"`
	Text     string         `json:"text"`
	Keyboard flow.Keyboard  `json:"keyboard,omitempty"`
	Result   *SessionResult `json:"result,omitempty"`
	Closed   bool           `json:"closed"`
}

// SessionResult is the chord picked in a session and what to play over it
type SessionResult struct {
	Base   string           `json:"base"`
	Improv string           `json:"improv"`
	Chord  converter.Report `json:"chord"`
}

func newSessionResponse(id string, r flow.Reply) SessionResponse {
	resp := SessionResponse{ID: id, Text: r.Text, Keyboard: r.Keyboard, Closed: r.Closed}
	if r.Result != nil {
		resp.Result = &SessionResult{
			Base:   r.Result.Base,
			Improv: r.Result.Improv,
			Chord:  converter.NewReport(r.Result.Analysis),
		}
	}
	return resp
}
