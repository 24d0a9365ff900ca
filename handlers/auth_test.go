package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Philip2024394/website-massage--sub045/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func newAuthTestRouter(t *testing.T) (*gin.Engine, *redis.Client) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	ah := NewAuthHandler(client, "test-key")
	router := gin.New()
	router.POST("/api/auth/token", ah.IssueTokenHandler)
	router.POST("/api/auth/logout", func(c *gin.Context) {
		// Stands in for the JWT middleware, which sets the token subject.
		c.Set("subject", c.GetHeader("X-Test-Subject"))
		ah.LogoutHandler(c)
	})
	return router, client
}

func postJSON(router *gin.Engine, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIssueTokenCreatesSession(t *testing.T) {
	router, client := newAuthTestRouter(t)

	w := postJSON(router, "/api/auth/token", gin.H{
		"subjectId": "prov-1",
		"role":      "provider",
		"apiKey":    "test-key",
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var payload struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil || payload.Token == "" {
		t.Fatalf("no token in response: %v (%s)", err, w.Body.String())
	}

	token, err := utils.ValidateToken(payload.Token)
	if err != nil || !token.Valid {
		t.Fatalf("issued token does not validate: %v", err)
	}
	claims, _ := utils.TokenClaims(token)
	if claims["role"] != "provider" || claims["sub"] != "prov-1" {
		t.Fatalf("claims = %v", claims)
	}

	session, err := utils.GetAuthSession(client, "prov-1")
	if err != nil {
		t.Fatalf("session not stored: %v", err)
	}
	if session.Token != utils.HashToken(payload.Token) {
		t.Fatal("stored session does not reference the issued token hash")
	}
}

func TestIssueTokenRejectsBadKeyAndRole(t *testing.T) {
	router, _ := newAuthTestRouter(t)

	w := postJSON(router, "/api/auth/token", gin.H{
		"subjectId": "prov-1", "role": "provider", "apiKey": "wrong",
	}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong key status = %d, want 401", w.Code)
	}

	w = postJSON(router, "/api/auth/token", gin.H{
		"subjectId": "prov-1", "role": "superuser", "apiKey": "test-key",
	}, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad role status = %d, want 400", w.Code)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	router, client := newAuthTestRouter(t)

	if err := utils.SaveAuthSession(client, "prov-1", utils.AuthSession{UserID: "prov-1", Role: "provider"}); err != nil {
		t.Fatalf("SaveAuthSession: %v", err)
	}

	w := postJSON(router, "/api/auth/logout", gin.H{}, map[string]string{"X-Test-Subject": "prov-1"})
	if w.Code != http.StatusNoContent {
		t.Fatalf("logout status = %d, body = %s", w.Code, w.Body.String())
	}
	if _, err := utils.GetAuthSession(client, "prov-1"); err == nil {
		t.Fatal("session still present after logout")
	}

	w = postJSON(router, "/api/auth/logout", gin.H{}, map[string]string{"X-Test-Subject": "prov-1"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("second logout status = %d, want 404", w.Code)
	}
}
