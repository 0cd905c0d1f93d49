package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// ContentSecurityPolicy sets the CSP header allowing the app itself plus the
// identity provider's script and token endpoints.
func ContentSecurityPolicy(imageHosts ...string) gin.HandlerFunc {
	imgSrc := "img-src 'self' data:"
	if len(imageHosts) > 0 {
		imgSrc += " " + strings.Join(imageHosts, " ")
	}

	policy := strings.Join([]string{
		"default-src 'self'",
		"script-src 'self' https://www.gstatic.com https://apis.google.com 'unsafe-inline'",
		"style-src 'self' 'unsafe-inline'",
		"connect-src 'self' https://identitytoolkit.googleapis.com https://www.googleapis.com",
		imgSrc,
	}, "; ")

	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Security-Policy", policy)
		c.Next()
	}
}
