package middleware

import (
	"log/slog"
	"slices"
	"strings"

	"gestion-turnos/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware lets the booking front end call the API. A "*" origin opens
// every origin and turns credentials off, since browsers reject that pair.
func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:  cfg.AllowMethods,
		AllowHeaders:  withAuthorization(cfg.AllowHeaders),
		ExposeHeaders: cfg.ExposeHeaders,
		MaxAge:        cfg.MaxAge,
	}
	if slices.Contains(cfg.AllowOrigins, "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowOrigins
		corsCfg.AllowCredentials = cfg.AllowCredentials
	}

	slog.Info("CORS middleware initialized",
		"allow_origins", cfg.AllowOrigins,
		"allow_credentials", corsCfg.AllowCredentials,
	)
	return cors.New(corsCfg)
}

// bearer tokens travel in Authorization
func withAuthorization(headers []string) []string {
	for _, h := range headers {
		if strings.EqualFold(strings.TrimSpace(h), "Authorization") {
			return headers
		}
	}
	return append(slices.Clone(headers), "Authorization")
}
