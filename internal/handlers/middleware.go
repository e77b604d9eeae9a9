package handlers

import (
	"cafeteria/internal/auth"
	"cafeteria/internal/models"
	"cafeteria/internal/session"
	"errors"
	"log"
	"net/http"
	"strings"

	"cafeteria/pkg/resp"

	"github.com/gin-gonic/gin"
)

const (
	ctxClaims  = "claims"
	ctxSession = "session"
)

// AuthMiddleware checks the bearer token and loads the session it points to.
func AuthMiddleware(tokens *auth.TokenIssuer, sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			resp.Unauthorized(c, "missing or invalid token")
			return
		}

		claims, err := tokens.Parse(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			resp.Unauthorized(c, "invalid token")
			return
		}

		sess, err := sessions.Load(c.Request.Context(), claims.SessionID)
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				resp.Unauthorized(c, "session expired, please log in again")
				return
			}
			log.Printf("Failed to load session %s: %v", claims.SessionID, err)
			resp.Error(c, http.StatusServiceUnavailable, "session storage unavailable")
			return
		}
		if sess.Username != claims.Username {
			resp.Unauthorized(c, "invalid session")
			return
		}

		c.Set(ctxClaims, claims)
		c.Set(ctxSession, sess)
		c.Next()
	}
}

func RequireRole(role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		if sess == nil || sess.Role != string(role) {
			resp.Forbidden(c, "forbidden")
			return
		}
		c.Next()
	}
}

func currentSession(c *gin.Context) *session.Session {
	v, ok := c.Get(ctxSession)
	if !ok {
		return nil
	}
	sess, _ := v.(*session.Session)
	return sess
}

func isAdmin(c *gin.Context) bool {
	sess := currentSession(c)
	return sess != nil && sess.Role == string(models.RoleAdmin)
}
