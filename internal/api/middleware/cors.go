package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func ConfigCORS(allowedDomains []string) gin.HandlerFunc {
	conf := cors.DefaultConfig()
	conf.AllowOrigins = allowedDomains
	conf.AllowHeaders = append(conf.AllowHeaders, "Authorization")
	conf.AllowCredentials = true

	return cors.New(conf)
}
