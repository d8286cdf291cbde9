package http

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nurpe/billboards/internal/http/middleware"
)

type RouterConfig struct {
	Environment    string
	AllowedOrigins []string
}

func NewRouter(handler *Handler, authMiddleware gin.HandlerFunc, cfg RouterConfig, log zerolog.Logger) *gin.Engine {
	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handler.Register(router, authMiddleware)
	return router
}

func corsConfig(origins []string) cors.Config {
	corsCfg := cors.DefaultConfig()
	allowAll := len(origins) == 0
	for _, origin := range origins {
		if origin == "*" {
			allowAll = true
		}
	}
	if allowAll {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
		corsCfg.AllowCredentials = true
	}
	corsCfg.AddAllowHeaders("Authorization")
	corsCfg.AddExposeHeaders("Content-Disposition", "Content-Length")
	return corsCfg
}
