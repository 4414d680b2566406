// @title           WHOIS Lookup API
// @version         1.0
// @description     Domain and contact WHOIS lookups backed by the WhoisXML API, with optional lookup logging.

// @license.name  MIT

// @BasePath  /api
// @schemes   http https
package main

import (
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/tlv300/whois-lookup/config"
	"github.com/tlv300/whois-lookup/db"
	_ "github.com/tlv300/whois-lookup/docs" // Swagger docs
	"github.com/tlv300/whois-lookup/handlers"
	"github.com/tlv300/whois-lookup/pkg/whois"
)

// App encapsulates all the components of the application
type App struct {
	Router        *gin.Engine
	WhoisHandlers *handlers.WhoisHandlers
	HealthHandler *handlers.HealthHandler
	distDir       string
}

// NewApp creates and initializes a new application instance
func NewApp(logger *slog.Logger, cfg config.Config, store db.LookupStore) (*App, error) {
	client := whois.NewClient(cfg.Whois.APIURL)
	whoisHandlers := handlers.NewWhoisHandlers(logger, client, store, cfg.Whois)
	healthHandler := handlers.NewHealthHandler()

	router := gin.Default()

	app := &App{
		Router:        router,
		WhoisHandlers: whoisHandlers,
		HealthHandler: healthHandler,
		distDir:       cfg.Frontend.DistDir,
	}

	app.setupRoutes()
	return app, nil
}

// setupRoutes defines all the application routes
func (app *App) setupRoutes() {
	api := app.Router.Group("/api")
	{
		api.POST("/whois", app.WhoisHandlers.Lookup)
		api.GET("/health", app.HealthHandler.HealthCheckHandler)
	}

	app.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	// Everything unmatched falls through to the built frontend, with
	// index.html as the catch-all so client-side routes resolve.
	app.Router.NoRoute(app.serveFrontend)
}

func (app *App) serveFrontend(c *gin.Context) {
	reqPath := strings.TrimPrefix(path.Clean(c.Request.URL.Path), "/")
	if reqPath != "" {
		candidate := filepath.Join(app.distDir, filepath.FromSlash(reqPath))
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			c.File(candidate)
			return
		}
	}
	c.File(filepath.Join(app.distDir, "index.html"))
}

// Start runs the Gin HTTP server
func (app *App) Start(addr string) error {
	return app.Router.Run(addr)
}
