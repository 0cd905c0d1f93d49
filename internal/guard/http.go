package guard

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	guard *Guard
}

func NewHandler(g *Guard) *Handler {
	return &Handler{guard: g}
}

// CheckAccess serves GET /check-access?email=&path=&admin= and answers with
// the guard decision. Blocked and unverified map to 403 with the distinct
// signal in the body so the client can pick its redirect target.
func (h *Handler) CheckAccess(c *gin.Context) {
	email := c.Query("email")
	path := c.Query("path")
	adminOnly := c.Query("admin") == "true"

	d, err := h.guard.Evaluate(c.Request.Context(), email, path, adminOnly)
	if err != nil {
		log.Printf("[guard] access check failed for %s: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Access check failed"})
		return
	}

	switch d.Outcome {
	case Blocked:
		c.JSON(http.StatusForbidden, gin.H{"error": "blocked", "decision": d})
	case NeedsVerification:
		c.JSON(http.StatusForbidden, gin.H{"error": "unverified", "decision": d})
	default:
		c.JSON(http.StatusOK, gin.H{"decision": d, "role": d.Role})
	}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/check-access", h.CheckAccess)
}

// RequireAdmin gates admin routes server-side. The caller's email is taken
// from the X-User-Email header (set by the front end after login). When the
// header is absent the request is rejected unless enforcement is off, which
// keeps the API drop-in compatible with clients that predate the header.
func RequireAdmin(g *Guard, enforce bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := strings.TrimSpace(c.GetHeader("X-User-Email"))
		if email == "" {
			if enforce {
				c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
				c.Abort()
			}
			return
		}

		d, err := g.Evaluate(c.Request.Context(), email, c.Request.URL.Path, true)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Access check failed"})
			c.Abort()
			return
		}
		if d.Outcome != Allow {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}
