package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/johnquangdev/lecture-notes/internal/adapter/dto/common"
	"github.com/johnquangdev/lecture-notes/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/lecture-notes/pkg/config"
	"github.com/johnquangdev/lecture-notes/pkg/jwt"
)

// Router holds all handlers
type Router struct {
	cfg          *config.Config
	notesHandler *Notes
	jwtManager   *jwt.Manager // nil disables auth on /v1
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, notesHandler *Notes, jwtManager *jwt.Manager) *Router {
	return &Router{
		cfg:          cfg,
		notesHandler: notesHandler,
		jwtManager:   jwtManager,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/v1")
	if rt.jwtManager != nil {
		v1.Use(middleware.EchoAuth(rt.jwtManager))
	}

	rt.setupNotesRoutes(v1)
}

// setupNotesRoutes configures notes generation routes
func (rt *Router) setupNotesRoutes(g *echo.Group) {
	if rt.notesHandler == nil {
		g.POST("/notes", rt.notImplemented)
		g.POST("/notes/url", rt.notImplemented)
		g.POST("/files/validate", rt.notImplemented)
		return
	}

	g.POST("/notes", rt.notesHandler.Create)
	g.POST("/notes/url", rt.notesHandler.CreateFromURL)
	g.POST("/files/validate", rt.notesHandler.ValidateFile)
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":  "This endpoint is not yet implemented",
		"path":   c.Request().URL.Path,
		"method": c.Request().Method,
	})
}

// healthCheck returns health status
// @Summary      Health check
// @Tags         System
// @Produce      json
// @Success      200  {object}  common.HealthResponse
// @Router       /health [get]
func (rt *Router) healthCheck(c echo.Context) error {
	resp := common.HealthResponse{Status: "ok"}
	if rt.cfg != nil {
		p := rt.cfg.Providers()
		resp.Environment = rt.cfg.Server.Environment
		resp.Provider = string(p.Provider)
		resp.ChatBackend = string(p.ChatProvider)
	}
	return c.JSON(http.StatusOK, resp)
}
