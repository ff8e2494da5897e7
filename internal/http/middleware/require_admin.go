// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file gates admin-only endpoints (the manual generation trigger)
// behind a shared token. With no token configured, requests pass; that
// keeps local development friction-free while production deployments set
// ADMIN_TOKEN.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// readToken extracts the presented credential: a Bearer Authorization
// header or the X-Admin-Token header.
func readToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(h), "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return strings.TrimSpace(c.GetHeader("X-Admin-Token"))
}

// RequireAdmin only permits requests presenting the configured token.
// An empty configured token disables the gate.
func RequireAdmin(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token != "" && readToken(c) != token {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"request_id": RequestIDFrom(c),
				"code":       "forbidden",
				"message":    "admin credentials required",
			})
			return
		}
		c.Next()
	}
}
