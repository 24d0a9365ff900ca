package handlers

import (
	"net/http"
	"time"

	"github.com/Philip2024394/website-massage--sub045/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// tokenTTL is the lifetime of issued access tokens.
const tokenTTL = 24 * time.Hour

var allowedRoles = map[string]bool{
	"provider": true,
	"admin":    true,
	"service":  true,
}

// AuthHandler issues and revokes the JWTs consumed by the role middleware.
// Issuance is gated on the shared service API key; the provider and admin
// dashboards exchange it for role-scoped tokens through their backends.
type AuthHandler struct {
	Sessions *redis.Client
	APIKey   string
}

// NewAuthHandler builds an AuthHandler backed by the auth session store.
func NewAuthHandler(sessions *redis.Client, apiKey string) *AuthHandler {
	return &AuthHandler{Sessions: sessions, APIKey: apiKey}
}

type tokenInput struct {
	SubjectID string `json:"subjectId" binding:"required"`
	Role      string `json:"role" binding:"required"`
	APIKey    string `json:"apiKey" binding:"required"`
}

// IssueTokenHandler exchanges the service API key for a role-scoped JWT and
// records the session so it shows up in the auth session store.
func (h *AuthHandler) IssueTokenHandler(c *gin.Context) {
	var input tokenInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if input.APIKey != h.APIKey {
		utils.JSONError(c, http.StatusUnauthorized, "invalid api key", "")
		return
	}
	if !allowedRoles[input.Role] {
		utils.JSONError(c, http.StatusBadRequest, "unknown role", input.Role)
		return
	}

	token, err := utils.GenerateToken(input.SubjectID, input.Role, tokenTTL)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to issue token", err.Error())
		return
	}
	session := utils.AuthSession{
		UserID:    input.SubjectID,
		Role:      input.Role,
		Status:    "active",
		CreatedAt: time.Now(),
		Token:     utils.HashToken(token),
	}
	if err := utils.SaveAuthSession(h.Sessions, input.SubjectID, session); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to save session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"expiresIn": int(tokenTTL.Seconds()),
	})
}

// LogoutHandler revokes the caller's session. The subject comes from the
// validated token, set by the auth middleware.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	subject := c.GetString("subject")
	if subject == "" {
		utils.JSONError(c, http.StatusUnauthorized, "missing token subject", "")
		return
	}
	if _, err := utils.GetAuthSession(h.Sessions, subject); err != nil {
		utils.JSONError(c, http.StatusNotFound, "no active session", subject)
		return
	}
	if err := utils.DeleteAuthSession(h.Sessions, subject); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to revoke session", err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}
