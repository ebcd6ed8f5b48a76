package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	config "github.com/phillip/crowdcube-go/config"
	middleware "github.com/phillip/crowdcube-go/middleware"
)

// NewEngine builds the gin engine with the shared middleware stack and
// every route registered.
func NewEngine(cfg *config.Config, ext Integrations) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, middleware.RequestIDHeader, "If-None-Match")
	corsCfg.ExposeHeaders = []string{middleware.RequestIDHeader, "ETag"}
	r.Use(cors.New(corsCfg))

	SetupRoutes(r, cfg, ext)
	return r
}
