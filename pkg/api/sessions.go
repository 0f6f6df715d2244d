package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/james-see/jazzimpro/internal/logger"
)

// createSession godoc
// @Summary Start a chord session
// @Description Starts the button conversation. The language comes from the body or Accept-Language.
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body SessionRequest false "Session language"
// @Success 201 {object} SessionResponse
// @Failure 400 {object} ErrorResponse
// @Router /sessions [post]
func (h *Handler) createSession(c *gin.Context) {
	var req SessionRequest
	// the body is optional; only an empty one may be skipped
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), RequestID: c.GetString("request_id")})
		return
	}
	if req.Lang == "" {
		req.Lang = c.GetHeader("Accept-Language")
	}

	id, reply := h.store.New(req.Lang)
	logger.Info("Session started", logger.Fields{
		"request_id": c.GetString("request_id"),
		"session_id": id,
	})
	c.JSON(http.StatusCreated, newSessionResponse(id, reply))
}

// sessionAction godoc
// @Summary Press a button
// @Description Applies the data of a pressed button to a session
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body ActionRequest true "Button data, e.g. root:C"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} ErrorResponse
// @Router /sessions/{id}/actions [post]
func (h *Handler) sessionAction(c *gin.Context) {
	id := c.Param("id")

	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), RequestID: c.GetString("request_id")})
		return
	}

	reply, err := h.store.Handle(id, req.Data)
	if err != nil {
		fail(c, err, logger.Fields{"session_id": id, "data": req.Data})
		return
	}
	c.JSON(http.StatusOK, newSessionResponse(id, reply))
}

// deleteSession godoc
// @Summary Cancel a session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SessionResponse
// @Router /sessions/{id} [delete]
func (h *Handler) deleteSession(c *gin.Context) {
	id := c.Param("id")
	c.JSON(http.StatusOK, newSessionResponse(id, h.store.Cancel(id)))
}
