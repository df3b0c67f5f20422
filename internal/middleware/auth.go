package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskdeck/backend/domain"
)

// SessionValidator resolves a session id to a live session. Implemented by
// the auth use case.
type SessionValidator interface {
	Session(ctx context.Context, sessionID string) (*domain.Session, error)
}

// Guard authenticates requests from the session cookie. Page requests
// without a valid session are redirected to /login; API requests get a 401.
type Guard struct {
	secret     string
	cookieName string
	sessions   SessionValidator
	logger     *zap.Logger
}

func NewGuard(secret, cookieName string, sessions SessionValidator, logger *zap.Logger) *Guard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Guard{
		secret:     secret,
		cookieName: cookieName,
		sessions:   sessions,
		logger:     logger,
	}
}

// RequireSession wraps a handler that needs a signed-in user.
func (g *Guard) RequireSession(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		session := g.resolve(ctx)
		if session == nil {
			g.reject(ctx)
			return
		}
		ctx.Request.Header.Set("X-User-ID", session.UserID)
		ctx.Request.Header.Set("X-User-Email", session.Email)
		ctx.Request.Header.Set("X-Session-ID", session.ID)
		next(ctx)
	}
}

// RedirectAuthenticated keeps signed-in users away from the login and
// registration pages.
func (g *Guard) RedirectAuthenticated(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if g.resolve(ctx) != nil {
			ctx.Redirect("/dashboard", fasthttp.StatusSeeOther)
			return
		}
		next(ctx)
	}
}

// Resolve returns the live session for a request, or nil. Exposed for the
// redirect hub, which branches on session presence without requiring one.
func (g *Guard) Resolve(ctx *fasthttp.RequestCtx) *domain.Session {
	return g.resolve(ctx)
}

func (g *Guard) resolve(ctx *fasthttp.RequestCtx) *domain.Session {
	cookie := string(ctx.Request.Header.Cookie(g.cookieName))
	if cookie == "" {
		return nil
	}

	token, err := jwt.Parse(cookie, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(g.secret), nil
	})
	if err != nil || !token.Valid {
		g.logger.Debug("invalid session token", zap.Error(err))
		return nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	sessionID, _ := claims["session_id"].(string)
	if sessionID == "" {
		return nil
	}

	stdCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	session, err := g.sessions.Session(stdCtx, sessionID)
	if err != nil {
		if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
			g.logger.Warn("session lookup failed", zap.Error(err))
		}
		return nil
	}
	return session
}

func (g *Guard) reject(ctx *fasthttp.RequestCtx) {
	if isAPIPath(string(ctx.Path())) {
		ctx.SetStatusCode(fasthttp.StatusUnauthorized)
		return
	}
	ctx.Redirect("/login", fasthttp.StatusSeeOther)
}

func isAPIPath(path string) bool {
	return strings.HasPrefix(path, "/api/")
}
