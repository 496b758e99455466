package middleware

import (
	"slices"

	"station-booking/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware exposes X-Request-ID to browsers. An origin list of "*"
// allows every origin and drops credentials, which browsers refuse to combine.
func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	c := cors.Config{
		AllowMethods:  cfg.AllowMethods,
		AllowHeaders:  cfg.AllowHeaders,
		ExposeHeaders: cfg.ExposeHeaders,
		MaxAge:        cfg.MaxAge,
	}
	if !slices.Contains(c.ExposeHeaders, requestIDHeader) {
		c.ExposeHeaders = append(slices.Clone(c.ExposeHeaders), requestIDHeader)
	}

	if slices.Contains(cfg.AllowOrigins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.AllowOrigins
		c.AllowCredentials = cfg.AllowCredentials
	}
	return cors.New(c)
}
