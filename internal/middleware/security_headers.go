package middleware

import (
	"github.com/gin-gonic/gin"
)

// SecurityHeadersMiddleware adds security headers to all HTTP responses
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Prevents clickjacking
		c.Header("X-Frame-Options", "DENY")

		// Prevents MIME type sniffing
		c.Header("X-Content-Type-Options", "nosniff")

		// Legacy browser XSS filter
		c.Header("X-XSS-Protection", "1; mode=block")

		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Permissions-Policy", "camera=(), microphone=(), geolocation=(), interest-cohort=()")
		c.Header("X-Permitted-Cross-Domain-Policies", "none")

		// API responses carry form data and session state; never cache them
		c.Header("Cache-Control", "no-store, no-cache, must-revalidate, private")
		c.Header("Pragma", "no-cache")

		c.Next()
	}
}
