package handlers

import (
	"cafeteria/internal/services"
	"cafeteria/internal/session"
	"log"
	"net/http"

	"cafeteria/pkg/resp"

	"github.com/gin-gonic/gin"
)

func (h *APIHandler) Register(c *gin.Context) {
	var req services.Registration
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Invalid request format")
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.Created(c, user)
}

func (h *APIHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "username and password are required")
		return
	}

	user, err := h.userService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	sess := session.New(user.Username, user.Role)
	if err := h.sessions.Save(c.Request.Context(), sess); err != nil {
		log.Printf("Failed to create session for %s: %v", user.Username, err)
		resp.Error(c, http.StatusServiceUnavailable, "session storage unavailable")
		return
	}

	token, err := h.tokens.Issue(user.Username, user.Role, sess.ID)
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	log.Printf("User %s logged in", user.Username)
	resp.OK(c, gin.H{
		"token":    token,
		"username": user.Username,
		"role":     user.Role,
	})
}

func (h *APIHandler) Logout(c *gin.Context) {
	sess := currentSession(c)
	if err := h.sessions.Delete(c.Request.Context(), sess.ID); err != nil {
		log.Printf("Failed to delete session %s: %v", sess.ID, err)
	}
	resp.Message(c, "logged out")
}
