// Package httpapi serves the optimizer over HTTP with gin
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/KirkDiggler/xp-optimizer/internal/errors"
	"github.com/KirkDiggler/xp-optimizer/internal/handlers/xp"
	"github.com/KirkDiggler/xp-optimizer/internal/orchestrators/optimizer"
)

// targetValuesParam is the only query parameter of the legacy endpoint
const targetValuesParam = "target_values"

// HandlerConfig holds dependencies for the HTTP handlers
type HandlerConfig struct {
	OptimizerService optimizer.Service
	// Gatherer backs /metrics. Nil disables the route.
	Gatherer prometheus.Gatherer
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.OptimizerService == nil {
		vb.RequiredField("OptimizerService")
	}
	return vb.Build()
}

// Handler serves the optimizer routes
type Handler struct {
	optimizerService optimizer.Service
	gatherer         prometheus.Gatherer
}

// NewHandler creates the HTTP handlers
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Handler{optimizerService: cfg.OptimizerService, gatherer: cfg.Gatherer}, nil
}

// NewRouter builds a gin engine with logging, recovery and every route
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(requestLogger(), gin.Recovery())
	h.RegisterRoutes(router)
	return router
}

// RegisterRoutes mounts the optimizer routes
//
//	GET  /optimize_xp?target_values=<json>
//	POST /v1/optimize
//	POST /v1/validate
//	GET  /v1/targets
//	GET  /healthz
//	GET  /metrics
func (h *Handler) RegisterRoutes(router gin.IRouter) {
	router.GET("/optimize_xp", h.HandleOptimizeXPQuery)
	router.GET("/healthz", h.HandleHealth)
	if h.gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})))
	}

	v1 := router.Group("/v1")
	{
		v1.POST("/optimize", h.HandleOptimize)
		v1.POST("/validate", h.HandleValidate)
		v1.GET("/targets", h.HandleListTargets)
	}
}

// HandleOptimizeXPQuery answers with the bare result document. Anything
// wrong with the request is a 400, anything else a 500.
func (h *Handler) HandleOptimizeXPQuery(c *gin.Context) {
	query := c.Request.URL.Query()
	raw, ok := query[targetValuesParam]
	if !ok || len(query) != 1 || len(raw) != 1 {
		c.JSON(http.StatusBadRequest, xp.NewErrorResponse(
			errors.InvalidArgument("exactly one target_values query parameter is required")))
		return
	}

	values, err := xp.DecodeTargetValuesString(raw[0])
	if err != nil {
		c.JSON(http.StatusBadRequest, xp.NewErrorResponse(err))
		return
	}

	out, err := h.optimizerService.OptimizeXP(c.Request.Context(), &optimizer.OptimizeXPInput{TargetValues: values})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.IsInvalidArgument(err) {
			status = http.StatusBadRequest
		}
		c.JSON(status, xp.NewErrorResponse(err))
		return
	}

	body, err := out.Result.MarshalJSON()
	if err != nil {
		c.JSON(http.StatusInternalServerError, xp.NewErrorResponse(err))
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// HandleOptimize solves an optimize request body
func (h *Handler) HandleOptimize(c *gin.Context) {
	req, err := xp.DecodeOptimizeXPRequest(c.Request.Body)
	if err != nil {
		writeError(c, err)
		return
	}

	out, err := h.optimizerService.OptimizeXP(c.Request.Context(), req.Input())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, xp.NewOptimizeXPResponse(out))
}

// HandleValidate checks a target-values body without solving
func (h *Handler) HandleValidate(c *gin.Context) {
	values, err := xp.DecodeTargetValues(c.Request.Body)
	if err != nil {
		writeError(c, err)
		return
	}

	out, err := h.optimizerService.ValidateTargetValues(c.Request.Context(),
		&optimizer.ValidateTargetValuesInput{TargetValues: values})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, xp.NewValidateTargetValuesResponse(out))
}

// HandleListTargets describes every accepted target-values key
func (h *Handler) HandleListTargets(c *gin.Context) {
	out, err := h.optimizerService.ListTargetValues(c.Request.Context(), &optimizer.ListTargetValuesInput{})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, xp.NewListTargetValuesResponse(out))
}

// HandleHealth reports liveness
func (h *Handler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func writeError(c *gin.Context, err error) {
	c.JSON(errors.GetCode(err).HTTPStatus(), xp.NewErrorResponse(err))
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		level := slog.LevelInfo
		if c.Writer.Status() >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		slog.Log(c.Request.Context(), level, "HTTP request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}
