package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/james-see/jazzimpro/internal/logger"
	"github.com/james-see/jazzimpro/pkg/converter"
	"github.com/james-see/jazzimpro/pkg/theory"
)

// healthCheck godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "jazzimpro",
	})
}

// listQualities godoc
// @Summary List chord qualities
// @Description Returns the supported seventh-chord qualities and output formats
// @Tags info
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /qualities [get]
func listQualities(c *gin.Context) {
	qualities := make([]QualityInfo, 0, len(theory.Qualities()))
	for _, q := range theory.Qualities() {
		info := QualityInfo{Token: q.Token(), Name: q.Name(), Aliases: q.Aliases()}
		for _, iv := range q.Formula() {
			info.Intervals = append(info.Intervals, iv.Token)
		}
		qualities = append(qualities, info)
	}
	c.JSON(http.StatusOK, gin.H{
		"qualities": qualities,
		"formats":   converter.GetSupportedFormats(),
	})
}

// getChord godoc
// @Summary Analyse one chord
// @Description Spells a chord symbol and its improvisation chord
// @Tags chords
// @Produce json
// @Param symbol query string true "Chord symbol, e.g. Dm7"
// @Success 200 {object} converter.Report
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /chords [get]
func (h *Handler) getChord(c *gin.Context) {
	symbol := c.Query("symbol")
	a, err := theory.Analyze(symbol)
	if err != nil {
		fail(c, err, logger.Fields{"symbol": symbol})
		return
	}
	c.JSON(http.StatusOK, converter.NewReport(a))
}

// analyzeChords godoc
// @Summary Analyse a progression
// @Description Spells every chord symbol and its improvisation chord
// @Tags chords
// @Accept json
// @Produce json
// @Param request body ChordsRequest true "Chord symbols"
// @Success 200 {object} ChordsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /chords [post]
func (h *Handler) analyzeChords(c *gin.Context) {
	var req ChordsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), RequestID: c.GetString("request_id")})
		return
	}

	analyses, err := h.converter().Analyze(req.Symbols)
	if err != nil {
		fail(c, err, logger.Fields{"symbols": req.Symbols})
		return
	}

	resp := ChordsResponse{Chords: make([]converter.Report, len(analyses))}
	for i, a := range analyses {
		resp.Chords[i] = converter.NewReport(a)
	}
	c.JSON(http.StatusOK, resp)
}

// improvise godoc
// @Summary Improvisation chord
// @Description Returns the chord to improvise over for a chord symbol
// @Tags chords
// @Accept json
// @Produce json
// @Param request body ImproviseRequest true "Chord symbol"
// @Success 200 {object} ImproviseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /improvise [post]
func (h *Handler) improvise(c *gin.Context) {
	var req ImproviseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), RequestID: c.GetString("request_id")})
		return
	}

	a, err := theory.Analyze(req.Symbol)
	if err != nil {
		fail(c, err, logger.Fields{"symbol": req.Symbol})
		return
	}
	c.JSON(http.StatusOK, ImproviseResponse{
		Chord:         converter.ChordReport(a.Chord, a.Notes),
		Improvisation: converter.ChordReport(a.Improvisation, a.ImprovisationNotes),
	})
}

// exportMIDI godoc
// @Summary Export a progression as MIDI
// @Description Voices each chord followed by its improvisation chord and returns a Standard MIDI File
// @Tags export
// @Accept json
// @Produce audio/midi
// @Param request body ExportRequest true "Chord symbols and voicing options"
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /export/midi [post]
func (h *Handler) exportMIDI(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), RequestID: c.GetString("request_id")})
		return
	}

	opts := h.converter().GetOptions()
	if req.Octave != nil {
		opts.Octave = *req.Octave
	}
	if req.Tempo > 0 {
		opts.Tempo = req.Tempo
	}
	if req.BeatsPerChord > 0 {
		opts.BeatsPerChord = req.BeatsPerChord
	}
	conv := converter.New(opts)

	analyses, err := conv.Analyze(req.Symbols)
	if err != nil {
		fail(c, err, logger.Fields{"symbols": req.Symbols})
		return
	}
	data, err := conv.Render(analyses, converter.FormatMIDI)
	if err != nil {
		fail(c, err, logger.Fields{"symbols": req.Symbols, "octave": opts.Octave})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", "progression.mid"))
	c.Data(http.StatusOK, "audio/midi", data)
}

func (h *Handler) converter() *converter.Converter {
	return converter.New(converter.Options{
		Octave:        h.cfg.Octave,
		Tempo:         h.cfg.Tempo,
		BeatsPerChord: h.cfg.BeatsPerChord,
	})
}
