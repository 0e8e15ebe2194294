package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"store_manager/internal/apperrors"
	"store_manager/internal/authz"
	"store_manager/internal/logger"
	"store_manager/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTokens map[string]*services.Claims

func (f fakeTokens) ValidateAccessToken(token string) (*services.Claims, error) {
	if claims, ok := f[token]; ok {
		return claims, nil
	}
	return nil, apperrors.ErrInvalidToken
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	policy, err := authz.NewPolicy()
	require.NoError(t, err)

	tokens := fakeTokens{"good": {UserID: 1, Username: "admin", TokenType: services.AccessTokenType}}
	r := gin.New()
	r.Use(RequestID(), RequestLogger(logger.Nop()))
	api := r.Group("/api", Authenticate(tokens, policy, logger.Nop()))
	ok := func(c *gin.Context) {
		claims, _ := GetClaims(c)
		user := ""
		if claims != nil {
			user = claims.Username
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
	api.GET("/products/", ok)
	api.POST("/products/", ok)
	api.GET("/orders/", ok)
	return r
}

func TestAuthenticate(t *testing.T) {
	r := newTestRouter(t)

	cases := []struct {
		name   string
		method string
		path   string
		header string
		status int
		body   string
	}{
		{"anonymous read of products", "GET", "/api/products/", "", http.StatusOK, `{"user":""}`},
		{"anonymous write of products", "POST", "/api/products/", "", http.StatusUnauthorized, `{"detail":"Authentication credentials were not provided."}`},
		{"anonymous orders", "GET", "/api/orders/", "", http.StatusUnauthorized, `{"detail":"Authentication credentials were not provided."}`},
		{"staff orders", "GET", "/api/orders/", "Bearer good", http.StatusOK, `{"user":"admin"}`},
		{"staff write", "POST", "/api/products/", "Bearer good", http.StatusOK, `{"user":"admin"}`},
		{"bad token on public route", "GET", "/api/products/", "Bearer bad", http.StatusUnauthorized, `{"detail":"Given token not valid for any token type","code":"token_not_valid"}`},
		{"malformed header", "GET", "/api/orders/", "Token good", http.StatusUnauthorized, `{"detail":"Authorization header must contain two space-delimited values","code":"bad_authorization_header"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			assert.JSONEq(t, tc.body, w.Body.String())
		})
	}
}

func TestRequestIDPropagates(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest("GET", "/api/products/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/products/", nil))
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173"}))
	r.GET("/api/orders/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("OPTIONS", "/api/orders/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "GET")
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}
