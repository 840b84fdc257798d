package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/session"
	"github.com/storefront/backend/internal/infrastructure/sessionstore"
)

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(mw...)
	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	return engine
}

func get(engine *gin.Engine, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	engine := newEngine(RequestID())

	t.Run("generates an ID when none supplied", func(t *testing.T) {
		w := get(engine, nil)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("honors a caller-supplied ID", func(t *testing.T) {
		w := get(engine, map[string]string{"X-Request-ID": "trace-42"})
		assert.Equal(t, "trace-42", w.Header().Get("X-Request-ID"))
	})
}

func TestCORS(t *testing.T) {
	engine := newEngine(CORS(CORSConfig{
		AllowOrigins: []string{"https://shop.example.com"},
	}))

	t.Run("allowed origin gets credentialed headers", func(t *testing.T) {
		w := get(engine, map[string]string{"Origin": "https://shop.example.com"})
		assert.Equal(t, "https://shop.example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("unknown origin gets nothing", func(t *testing.T) {
		w := get(engine, map[string]string{"Origin": "https://evil.example.com"})
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight is answered without hitting the handler", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
		req.Header.Set("Origin", "https://shop.example.com")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestRateLimit(t *testing.T) {
	limiter := NewRateLimiter(2, time.Minute)
	engine := newEngine(RateLimit(limiter))

	assert.Equal(t, http.StatusOK, get(engine, nil).Code)
	assert.Equal(t, http.StatusOK, get(engine, nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, get(engine, nil).Code)
}

func TestBodyLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(BodyLimit(16))
	engine.POST("/echo", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(strings.Repeat("x", 64)))
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestSessionMiddleware_SameSiteParsing(t *testing.T) {
	assert.Equal(t, http.SameSiteStrictMode, parseSameSite("strict"))
	assert.Equal(t, http.SameSiteNoneMode, parseSameSite("none"))
	assert.Equal(t, http.SameSiteLaxMode, parseSameSite("lax"))
	assert.Equal(t, http.SameSiteLaxMode, parseSameSite(""))
}

func TestSessionMiddleware_ResolvesStoredSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := sessionstore.NewInMemoryStore(time.Hour)

	stored := session.New()
	require.NoError(t, repo.Save(context.Background(), stored))

	engine := gin.New()
	engine.Use(Session(repo, SessionConfig{
		CookieName:     "storefront_session",
		CookiePath:     "/",
		CookieSameSite: "lax",
		TTL:            time.Hour,
	}, zap.NewNop()))
	engine.GET("/whoami", func(c *gin.Context) {
		sess := GetSession(c)
		require.NotNil(t, sess)
		c.JSON(http.StatusOK, gin.H{"id": sess.ID.String()})
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "storefront_session", Value: stored.ID.String()})
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), stored.ID.String())
	// No replacement cookie for a known session
	assert.Empty(t, w.Result().Cookies())
}
