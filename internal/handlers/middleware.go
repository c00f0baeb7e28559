package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskmate/internal/session"
)

const ctxUserID = "userId"

type authPolicy int

const (
	redirectToLogin authPolicy = iota
	rejectUnauthorized
)

// requireUser resolves the session user or stops the request according to policy.
func (h *Handler) requireUser(policy authPolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := h.gate.RequireUserID(c.Request, "")
		if err != nil {
			var unauth *session.UnauthenticatedError
			if policy == redirectToLogin && errors.As(err, &unauth) {
				c.Redirect(http.StatusFound, unauth.LoginURL())
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		// store in Gin context
		c.Set(ctxUserID, userID)
		c.Next()
	}
}

func userID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()

	if h.log == nil {
		return
	}
	h.log.Infow("http_request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"duration", time.Since(start),
		"client_ip", c.ClientIP(),
	)
}
