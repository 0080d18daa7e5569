package httpserver

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/flappykiro/leaderboard-service/internal/config"
	"github.com/flappykiro/leaderboard-service/internal/handlers"
	"github.com/flappykiro/leaderboard-service/internal/service"
)

// ServiceName identifies this process in traces and request logs.
const ServiceName = "leaderboard-service"

// NewRouter wires the API endpoints and, when configured, the static
// frontend. The game client is served cross-origin during development, so
// CORS is open to all origins like the original deployment.
func NewRouter(cfg config.Config, svc *service.Service) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(ServiceName))
	r.Use(RequestID(), RequestLogger())
	r.Use(cors.Default())

	handlers.RegisterScoreRoutes(r, svc)
	handlers.RegisterTelemetryRoutes(r, svc)
	handlers.RegisterHealthRoutes(r, svc)

	if cfg.StaticDir != "" {
		r.NoRoute(serveFrontend(cfg.StaticDir))
	}

	return r
}

// serveFrontend serves the game bundle: index.html at the root, files
// elsewhere. Registered as the NoRoute handler so /api keeps priority.
// Directory paths 404 rather than listing their contents.
func serveFrontend(dir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Status(http.StatusNotFound)
			return
		}
		p := c.Request.URL.Path
		if p == "/" {
			p = "/index.html"
		}
		full := filepath.Join(dir, filepath.Clean("/"+p))
		info, err := os.Stat(full)
		if err != nil || info.IsDir() {
			c.Status(http.StatusNotFound)
			return
		}
		c.File(full)
	}
}
