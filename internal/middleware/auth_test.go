package middleware

import (
	"cyberlearn_backend/internal/util"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret-test-secret-test-secret"

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TryAuth(secret))
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, util.UserID(c, ""))
	})
	return r
}

func TestTryAuth(t *testing.T) {
	r := newRouter()
	token, err := util.GenerateJWT("learner-42", secret, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		query  string
		code   int
		body   string
	}{
		{"anonymous", "", "", http.StatusOK, util.AnonymousUser},
		{"bearer header", "Bearer " + token, "", http.StatusOK, "learner-42"},
		{"query token", "", "?token=" + token, http.StatusOK, "learner-42"},
		{"bad token", "Bearer garbage", "", http.StatusUnauthorized, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.code, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}

func TestTryAuth_ExpiredToken(t *testing.T) {
	r := newRouter()
	token, err := util.GenerateJWT("learner-42", secret, -time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
