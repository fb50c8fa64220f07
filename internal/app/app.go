package app

import (
	"context"
	"net/http"
	"time"

	"github.com/kegliz/qtranslate/internal/config"
	"github.com/kegliz/qtranslate/internal/logger"
	"github.com/kegliz/qtranslate/internal/router"
	"github.com/kegliz/qtranslate/internal/tservice"
	"github.com/kegliz/qtranslate/qc/equiv"
)

type (
	ServerOptions struct {
		C       *config.Config
		Version string
	}

	// Server is the runnable application surface.
	Server interface {
		Listen(port int, localOnly bool) error
		Shutdown(ctx context.Context) error
	}

	appServer struct {
		logger  *logger.Logger
		router  *router.Router
		ts      tservice.Service
		version string
	}
)

// NewServer wires logger, router and the translation service from
// configuration.
func NewServer(options ServerOptions) (Server, error) {
	l := logger.NewLogger(logger.LoggerOptions{
		Debug: options.C.GetBool("debug"),
	})
	timeout, err := time.ParseDuration(options.C.GetString("planner.timeout"))
	if err != nil {
		return nil, err
	}
	a := &appServer{
		logger: l,
		router: router.NewRouter(l),
		ts: tservice.NewService(tservice.ServiceOptions{
			Logger:        l.SpawnForService("tservice"),
			Library:       equiv.Session(),
			MaxIterations: options.C.GetInt("planner.max_iterations"),
			Timeout:       timeout,
		}),
		version: options.Version,
	}
	a.registerRoutes()
	return a, nil
}

// Listen implements Server.
func (a *appServer) Listen(port int, localOnly bool) error {
	a.logger.Info().
		Int("port", port).
		Bool("localOnly", localOnly).
		Str("version", a.version).
		Msg("Starting basis translation service")
	return a.router.Start(port, localOnly)
}

// Shutdown implements Server.
func (a *appServer) Shutdown(ctx context.Context) error {
	return a.router.Shutdown(ctx)
}

func (a *appServer) registerRoutes() {
	a.router.Handle(http.MethodGet, "/healthz", a.handleHealth)
	a.router.Handle(http.MethodPost, "/api/v1/translate", a.handleTranslate)
	a.router.Handle(http.MethodGet, "/api/v1/library", a.handleLibrary)
	a.router.Handle(http.MethodPost, "/api/v1/render", a.handleRender)
}
