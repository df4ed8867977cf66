// Package server exposes the launcher backend to a host UI as an HTTP
// JSON API.
package server

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"appdeck/internal/icon"
	"appdeck/internal/launcher"
	"appdeck/internal/models"
	"appdeck/internal/overrides"
	"appdeck/internal/scanner"
)

// Server wires the core packages behind an Echo instance. Handlers follow
// the backend's failure policy: the mutating operations always succeed from
// the caller's point of view; only a malformed request body is an error.
type Server struct {
	echo    *echo.Echo
	scanner *scanner.Scanner
	store   *overrides.Store

	// Injectable for tests.
	extractIcon func(string) (string, bool)
	launch      func(string)
}

// Option configures a Server.
type Option func(*Server)

// WithLaunchFunc replaces the OS launch mechanism.
func WithLaunchFunc(fn func(string)) Option {
	return func(s *Server) { s.launch = fn }
}

// WithIconFunc replaces the icon extractor.
func WithIconFunc(fn func(string) (string, bool)) Option {
	return func(s *Server) { s.extractIcon = fn }
}

// New creates the API server around a scanner and an override store.
func New(sc *scanner.Scanner, store *overrides.Store, opts ...Option) *Server {
	s := &Server{
		echo:        echo.New(),
		scanner:     sc,
		store:       store,
		extractIcon: icon.Extract,
		launch:      launcher.Open,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.Use(echomw.Recover())
	// The host UI is a local web view on a different origin.
	s.echo.Use(echomw.CORS())

	s.initRoutes()
	return s
}

func (s *Server) initRoutes() {
	g := s.echo.Group("/api/v1")
	g.GET("/apps", s.getInstalledApps)
	g.GET("/apps/icon", s.getAppIcon)
	g.POST("/apps/config", s.saveAppConfig)
	g.POST("/apps/launch", s.launchApp)
}

// Start blocks serving HTTP on addr.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// iconResponse carries the optional data URI; a null icon means the bundle
// has none the caller can use.
type iconResponse struct {
	Icon *string `json:"icon"`
}

type configRequest struct {
	Path     string `json:"path"`
	Category string `json:"category"`
}

type launchRequest struct {
	Path string `json:"path"`
}

// getInstalledApps handles GET /api/v1/apps.
func (s *Server) getInstalledApps(c echo.Context) error {
	apps := s.scanner.Scan()
	if apps == nil {
		apps = []models.AppRecord{}
	}
	return c.JSON(http.StatusOK, apps)
}

// getAppIcon handles GET /api/v1/apps/icon?path=<bundle>.
func (s *Server) getAppIcon(c echo.Context) error {
	path := c.QueryParam("path")
	if path == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "path query parameter is required")
	}

	var resp iconResponse
	if uri, ok := s.extractIcon(path); ok {
		resp.Icon = &uri
	}
	return c.JSON(http.StatusOK, resp)
}

// saveAppConfig handles POST /api/v1/apps/config. Save failures are
// swallowed by the store, so this reports success unconditionally.
func (s *Server) saveAppConfig(c echo.Context) error {
	var req configRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Path == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "path is required")
	}

	s.store.Save(req.Path, req.Category)
	return c.NoContent(http.StatusNoContent)
}

// launchApp handles POST /api/v1/apps/launch. Fire-and-forget; spawn
// failures are not observable here.
func (s *Server) launchApp(c echo.Context) error {
	var req launchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Path == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "path is required")
	}

	s.launch(req.Path)
	return c.NoContent(http.StatusNoContent)
}
