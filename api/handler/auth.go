package handler

import (
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskdeck/backend/api/transport"
	"github.com/taskdeck/backend/api/view"
	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/pkg/httpcontext"
	authUC "github.com/taskdeck/backend/usecase/auth"
)

// Message shown for every sign-in failure, matching the login page copy.
const loginFailedMessage = "Seu email ou sua senha estão errados!"

// CookieConfig carries the session cookie settings.
type CookieConfig struct {
	Name   string
	Secure bool
}

type AuthHandler struct {
	baseHandler
	uc            *authUC.UseCase
	cookie        CookieConfig
	githubEnabled bool
}

func NewAuthHandler(uc *authUC.UseCase, cookie CookieConfig, githubEnabled bool, adapter *httpcontext.Adapter, renderer *view.Renderer, logger *zap.Logger) *AuthHandler {
	if cookie.Name == "" {
		cookie.Name = "taskdeck_session"
	}
	return &AuthHandler{
		baseHandler:   newBaseHandler(adapter, renderer, logger),
		uc:            uc,
		cookie:        cookie,
		githubEnabled: githubEnabled,
	}
}

// LoginPage renders the sign-in form.
func (h *AuthHandler) LoginPage(ctx *fasthttp.RequestCtx) {
	h.render(ctx, "login", view.LoginData{
		Flash:         transport.QueryString(ctx, "flash"),
		Error:         transport.QueryString(ctx, "error"),
		GitHubEnabled: h.githubEnabled,
	})
}

// Login handles the credentials form post.
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	email := transport.FormString(ctx, "email")
	password := transport.FormString(ctx, "password")

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	session, token, err := h.uc.SignIn(stdCtx, domain.WithCredentials(email, password))
	if err != nil {
		// One message for every failure mode; the log keeps the detail.
		h.logger.Info("sign-in rejected", zap.Error(err))
		h.redirectFlash(ctx, "/login", "error", loginFailedMessage)
		return
	}

	h.setSessionCookie(ctx, token, session.ExpiresAt)
	ctx.Redirect("/dashboard", fasthttp.StatusSeeOther)
}

// RegisterPage renders the account creation form.
func (h *AuthHandler) RegisterPage(ctx *fasthttp.RequestCtx) {
	h.render(ctx, "register", view.RegisterData{
		Error: transport.QueryString(ctx, "error"),
	})
}

// Register creates a credentials account and sends the user to the login page.
func (h *AuthHandler) Register(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	_, err := h.uc.Register(stdCtx,
		transport.FormString(ctx, "email"),
		transport.FormString(ctx, "password"),
		transport.FormString(ctx, "name"),
	)
	switch {
	case err == nil:
		h.redirectFlash(ctx, "/login", "flash", "Conta criada! Faça login para continuar.")
	case domain.IsDomainError(err, domain.ErrCodeConflict):
		h.redirectFlash(ctx, "/register", "error", "Este email já está registrado.")
	case domain.IsDomainError(err, domain.ErrCodeInvalid):
		h.redirectFlash(ctx, "/register", "error", "Preencha email e senha.")
	default:
		h.logger.Error("registration failed", zap.Error(err))
		h.redirectFlash(ctx, "/register", "error", "Não foi possível criar a conta.")
	}
}

// GitHubStart begins the provider handshake.
func (h *AuthHandler) GitHubStart(ctx *fasthttp.RequestCtx) {
	authorizeURL, err := h.uc.BeginProviderSignIn(domain.ProviderGitHub)
	if err != nil {
		h.logger.Error("provider handshake start failed", zap.Error(err))
		h.redirectFlash(ctx, "/login", "error", loginFailedMessage)
		return
	}
	ctx.Redirect(authorizeURL, fasthttp.StatusSeeOther)
}

// GitHubCallback finishes the provider handshake.
func (h *AuthHandler) GitHubCallback(ctx *fasthttp.RequestCtx) {
	state := transport.QueryString(ctx, "state")
	code := transport.QueryString(ctx, "code")

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	session, token, err := h.uc.CompleteProviderSignIn(stdCtx, domain.ProviderGitHub, state, code)
	if err != nil {
		h.logger.Info("provider sign-in rejected", zap.Error(err))
		h.redirectFlash(ctx, "/login", "error", loginFailedMessage)
		return
	}

	h.setSessionCookie(ctx, token, session.ExpiresAt)
	ctx.Redirect("/dashboard", fasthttp.StatusSeeOther)
}

// Logout revokes the session and clears the cookie.
func (h *AuthHandler) Logout(ctx *fasthttp.RequestCtx) {
	sessionID := string(ctx.Request.Header.Peek("X-Session-ID"))

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.SignOut(stdCtx, sessionID); err != nil {
		h.logger.Warn("session revoke failed", zap.Error(err))
	}

	h.clearSessionCookie(ctx)
	ctx.Redirect("/login", fasthttp.StatusSeeOther)
}

func (h *AuthHandler) setSessionCookie(ctx *fasthttp.RequestCtx, token string, expiresAt time.Time) {
	cookie := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(cookie)

	cookie.SetKey(h.cookie.Name)
	cookie.SetValue(token)
	cookie.SetPath("/")
	cookie.SetExpire(expiresAt)
	cookie.SetHTTPOnly(true)
	cookie.SetSecure(h.cookie.Secure)
	cookie.SetSameSite(fasthttp.CookieSameSiteLaxMode)
	ctx.Response.Header.SetCookie(cookie)
}

func (h *AuthHandler) clearSessionCookie(ctx *fasthttp.RequestCtx) {
	cookie := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(cookie)

	cookie.SetKey(h.cookie.Name)
	cookie.SetValue("")
	cookie.SetPath("/")
	cookie.SetExpire(fasthttp.CookieExpireDelete)
	ctx.Response.Header.SetCookie(cookie)
}
