package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/session"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// SessionKey is the gin context key holding the resolved *session.Session
const SessionKey = "session"

// SessionConfig holds the session cookie settings
type SessionConfig struct {
	CookieName     string
	CookieDomain   string
	CookiePath     string
	CookieSecure   bool
	CookieSameSite string
	TTL            time.Duration
}

// Session resolves the browser session for every request. A valid cookie
// loads the stored session; anything else (no cookie, bad value, expired
// session) transparently starts a fresh guest session and sets the
// cookie. Handlers can therefore always assume a session is present.
func Session(repo session.Repository, cfg SessionConfig, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, created, err := resolveSession(c, repo, cfg)
		if err != nil {
			logger.Error("session resolution failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeInternal, "Session could not be resolved", GetRequestID(c)))
			return
		}
		if created {
			setSessionCookie(c, cfg, sess.ID)
		}

		c.Set(SessionKey, sess)
		c.Next()
	}
}

func resolveSession(c *gin.Context, repo session.Repository, cfg SessionConfig) (*session.Session, bool, error) {
	if raw, err := c.Cookie(cfg.CookieName); err == nil {
		if id, parseErr := uuid.Parse(raw); parseErr == nil {
			sess, findErr := repo.FindByID(c.Request.Context(), id)
			if findErr == nil {
				return sess, false, nil
			}
			if !errors.Is(findErr, shared.ErrNotFound) {
				return nil, false, findErr
			}
		}
	}

	sess := session.New()
	if err := repo.Save(c.Request.Context(), sess); err != nil {
		return nil, false, err
	}
	return sess, true, nil
}

func setSessionCookie(c *gin.Context, cfg SessionConfig, id uuid.UUID) {
	c.SetSameSite(parseSameSite(cfg.CookieSameSite))
	c.SetCookie(
		cfg.CookieName,
		id.String(),
		int(cfg.TTL.Seconds()),
		cfg.CookiePath,
		cfg.CookieDomain,
		cfg.CookieSecure,
		true, // httpOnly, the frontend never reads the session ID
	)
}

func parseSameSite(mode string) http.SameSite {
	switch mode {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// GetSession returns the session resolved by the Session middleware
func GetSession(c *gin.Context) *session.Session {
	if value, exists := c.Get(SessionKey); exists {
		if sess, ok := value.(*session.Session); ok {
			return sess
		}
	}
	return nil
}
