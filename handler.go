package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"lg/tdee-wizard/internal/apperr"
	"lg/tdee-wizard/internal/logger"
	"lg/tdee-wizard/internal/session"
)

// Handler holds shared dependencies (session store, logger) for all route handlers.
type Handler struct {
	sessions *session.Store
	log      *zap.Logger
}

func newHandler(sessions *session.Store, log *zap.Logger) *Handler {
	return &Handler{sessions: sessions, log: log}
}

/* ─── Error helpers ───────────────────────────────────────────────────── */

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// apiAppError answers with the status for err's code and the body
// {"error": "...", "code": "...", "field": "..."}. Errors without a code are
// logged and reported as a generic 500.
func (h *Handler) apiAppError(c *gin.Context, err error) {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		h.log.Error("unexpected error", zap.String("path", c.FullPath()), zap.Error(err))
		apiError(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(apperr.HTTPStatus(ae.Code), ae)
}

/* ─── Server setup ────────────────────────────────────────────────────── */

// newRouter builds the gin engine with logging, recovery and all routes.
func (h *Handler) newRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), logger.GinMiddleware(h.log))
	router.SetTrustedProxies(nil)
	h.registerRoutes(router)
	return router
}

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	router.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.GET("/activity-levels", h.listActivityLevels)
	api.POST("/tdee", h.calculateTDEE)

	api.POST("/wizard", h.createWizard)
	api.GET("/wizard/:id", h.getWizard)
	api.DELETE("/wizard/:id", h.deleteWizard)
	api.POST("/wizard/:id/start", h.startWizard)
	api.PUT("/wizard/:id/fields/:field", h.setWizardField)
	api.POST("/wizard/:id/next", h.nextWizard)
	api.POST("/wizard/:id/submit", h.submitWizard)
}
