// Package api provides the REST API server for jazzimpro
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/james-see/jazzimpro/internal/config"
	"github.com/james-see/jazzimpro/internal/logger"
	"github.com/james-see/jazzimpro/pkg/converter"
	"github.com/james-see/jazzimpro/pkg/flow"
	"github.com/james-see/jazzimpro/pkg/i18n"
	"github.com/james-see/jazzimpro/pkg/theory"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Jazz Impro API
// @version 1.0
// @description Seventh-chord spelling and improvisation chords for jazz practice
// @host localhost:8080
// @BasePath /api/v1

// Handler serves the API endpoints
type Handler struct {
	cfg   *config.Config
	store *flow.Store
}

// NewRouter builds the gin engine with middleware and routes. Chat
// sessions live in store.
func NewRouter(cfg *config.Config, store *flow.Store) *gin.Engine {
	h := &Handler{cfg: cfg, store: store}

	r := gin.New()
	r.Use(recoverWithSentry())
	r.Use(sentryMiddleware())
	r.Use(requestTracking())
	r.Use(corsMiddleware())

	// Health check
	r.GET("/health", healthCheck)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.GET("/qualities", listQualities)
		v1.GET("/chords", h.getChord)
		v1.POST("/chords", h.analyzeChords)
		v1.POST("/improvise", h.improvise)
		v1.POST("/export/midi", h.exportMIDI)

		v1.POST("/sessions", h.createSession)
		v1.POST("/sessions/:id/actions", h.sessionAction)
		v1.DELETE("/sessions/:id", h.deleteSession)
	}

	// Swagger docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// StartServer starts the API server on cfg.Port
func StartServer(cfg *config.Config) error {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	store := flow.NewStore(i18n.MustNew(), cfg.SessionTTL, cfg.DefaultLang, func(id, _ string) {
		logger.Info("Session expired", logger.Fields{"session_id": id})
	})
	defer store.Close()

	logger.Info("Starting server", logger.Fields{"port": cfg.Port, "environment": cfg.Environment})
	return NewRouter(cfg, store).Run(":" + cfg.Port)
}

// statusFor maps chord and voicing errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, theory.ErrImprovisation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, theory.ErrInvalidFormat),
		errors.Is(err, theory.ErrInvalidQuality),
		errors.Is(err, flow.ErrInvalidAction):
		return http.StatusBadRequest
	case errors.Is(err, theory.ErrUnsupportedQuality),
		errors.Is(err, theory.ErrSpellingOverflow),
		errors.Is(err, converter.ErrOutOfRange):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// fail writes an error response, reporting server errors
func fail(c *gin.Context, err error, fields logger.Fields) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		all := logger.WithContext(c)
		for k, v := range fields {
			all[k] = v
		}
		logger.Error("Request failed", err, all)
	}
	c.JSON(status, ErrorResponse{Error: err.Error(), RequestID: c.GetString("request_id")})
}
