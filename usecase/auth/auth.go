package auth

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/repository"
	"github.com/taskdeck/backend/usecase"
)

// Config carries the session-token settings.
type Config struct {
	JWTSecret  string
	JWTIssuer  string
	SessionTTL time.Duration
	StateTTL   time.Duration
}

type UseCase struct {
	users     repository.UserRepository
	sessions  repository.SessionRepository
	providers map[string]usecase.IdentityProvider
	states    usecase.HandshakeStates
	cfg       Config
	logger    *zap.Logger
}

func New(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	providers []usecase.IdentityProvider,
	states usecase.HandshakeStates,
	cfg Config,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	if cfg.StateTTL <= 0 {
		cfg.StateTTL = 10 * time.Minute
	}
	byName := make(map[string]usecase.IdentityProvider, len(providers))
	for _, p := range providers {
		if p != nil {
			byName[p.Name()] = p
		}
	}
	return &UseCase{
		users:     users,
		sessions:  sessions,
		providers: byName,
		states:    states,
		cfg:       cfg,
		logger:    logger,
	}
}

// Register creates a credentials account. The email must be unused.
func (uc *UseCase) Register(ctx context.Context, email, password, displayName string) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "email and password are required")
	}

	if _, err := uc.users.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "password hashing failed", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  strings.TrimSpace(displayName),
		PasswordHash: string(hash),
		Provider:     domain.ProviderCredentials,
	}
	if err := uc.users.Upsert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SignIn dispatches on the sign-in method and returns a fresh session plus
// its signed token. Every credential failure, whatever its real cause,
// comes back as the same generic error.
func (uc *UseCase) SignIn(ctx context.Context, method domain.SignInMethod) (*domain.Session, string, error) {
	switch {
	case method.Credentials != nil:
		return uc.signInCredentials(ctx, *method.Credentials)
	case method.Provider != nil:
		return uc.signInProvider(ctx, *method.Provider)
	default:
		return nil, "", domain.ErrInvalidPayload
	}
}

func (uc *UseCase) signInCredentials(ctx context.Context, creds domain.CredentialsSignIn) (*domain.Session, string, error) {
	user, err := uc.users.GetByEmail(ctx, normalizeEmail(creds.Email))
	if err != nil {
		uc.logger.Debug("credential lookup failed", zap.Error(err))
		return nil, "", domain.ErrAuthFailed
	}
	if user.PasswordHash == "" {
		// Provider-only account; it has no password to check.
		return nil, "", domain.ErrAuthFailed
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, "", domain.ErrAuthFailed
	}
	return uc.createSession(ctx, user)
}

func (uc *UseCase) signInProvider(ctx context.Context, identity domain.ProviderSignIn) (*domain.Session, string, error) {
	email := normalizeEmail(identity.Email)
	if email == "" {
		return nil, "", domain.ErrAuthFailed
	}

	user, err := uc.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
	case domain.IsDomainError(err, domain.ErrCodeNotFound):
		user = &domain.User{
			ID:          uuid.NewString(),
			Email:       email,
			DisplayName: identity.DisplayName,
			Provider:    identity.Name,
		}
	default:
		uc.logger.Debug("provider account lookup failed", zap.Error(err))
		return nil, "", domain.ErrAuthFailed
	}

	if identity.DisplayName != "" {
		user.DisplayName = identity.DisplayName
	}
	if err := uc.users.Upsert(ctx, user); err != nil {
		uc.logger.Error("provider account upsert failed", zap.Error(err))
		return nil, "", domain.ErrAuthFailed
	}
	return uc.createSession(ctx, user)
}

// BeginProviderSignIn records a single-use handshake state and returns the
// provider's authorization URL.
func (uc *UseCase) BeginProviderSignIn(providerName string) (string, error) {
	provider, ok := uc.providers[providerName]
	if !ok {
		return "", domain.NewError(domain.ErrCodeInvalid, "unknown sign-in provider")
	}
	state := uuid.NewString()
	if err := uc.states.Put(state, time.Now().Add(uc.cfg.StateTTL)); err != nil {
		return "", domain.StoreError("save handshake state", err)
	}
	return provider.AuthorizeURL(state), nil
}

// CompleteProviderSignIn consumes the callback state, exchanges the code
// and signs the verified identity in.
func (uc *UseCase) CompleteProviderSignIn(ctx context.Context, providerName, state, code string) (*domain.Session, string, error) {
	provider, ok := uc.providers[providerName]
	if !ok {
		return nil, "", domain.NewError(domain.ErrCodeInvalid, "unknown sign-in provider")
	}

	found, err := uc.states.Take(state)
	if err != nil {
		uc.logger.Error("handshake state lookup failed", zap.Error(err))
		return nil, "", domain.ErrAuthFailed
	}
	if !found {
		return nil, "", domain.ErrAuthFailed
	}

	identity, err := provider.Exchange(ctx, code)
	if err != nil {
		uc.logger.Warn("provider code exchange failed",
			zap.String("provider", providerName), zap.Error(err))
		return nil, "", domain.ErrAuthFailed
	}
	return uc.SignIn(ctx, domain.WithProvider(identity))
}

// Session returns the live session or a not-found error; expired sessions
// are deleted on sight.
func (uc *UseCase) Session(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsExpired(time.Now()) {
		_ = uc.sessions.Delete(ctx, sessionID)
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// SignOut revokes the session.
func (uc *UseCase) SignOut(ctx context.Context, sessionID string) error {
	return uc.sessions.Delete(ctx, sessionID)
}

func (uc *UseCase) createSession(ctx context.Context, user *domain.User) (*domain.Session, string, error) {
	now := time.Now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Email:     user.Email,
		CreatedAt: now,
		ExpiresAt: now.Add(uc.cfg.SessionTTL),
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, "", err
	}

	token, err := uc.signToken(session)
	if err != nil {
		_ = uc.sessions.Delete(ctx, session.ID)
		return nil, "", domain.WrapError(domain.ErrCodeInternal, "token signing failed", err)
	}
	return session, token, nil
}

func (uc *UseCase) signToken(session *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"session_id": session.ID,
		"user_id":    session.UserID,
		"iss":        uc.cfg.JWTIssuer,
		"exp":        session.ExpiresAt.Unix(),
		"iat":        session.CreatedAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(uc.cfg.JWTSecret))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
