package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/taskdeck/backend/domain"
)

const (
	githubAuthorizeURL = "https://github.com/login/oauth/authorize"
	githubTokenURL     = "https://github.com/login/oauth/access_token"
	githubUserURL      = "https://api.github.com/user"
	githubEmailsURL    = "https://api.github.com/user/emails"
)

// GitHubConfig carries the OAuth application settings.
type GitHubConfig struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
	Timeout      time.Duration
}

// GitHub exchanges OAuth authorization codes against the GitHub API.
type GitHub struct {
	cfg    GitHubConfig
	client *fasthttp.Client
}

func NewGitHub(cfg GitHubConfig) *GitHub {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &GitHub{
		cfg: cfg,
		client: &fasthttp.Client{
			ReadTimeout:  cfg.Timeout,
			WriteTimeout: cfg.Timeout,
		},
	}
}

func (g *GitHub) Name() string {
	return domain.ProviderGitHub
}

// AuthorizeURL builds the redirect target that starts the handshake.
func (g *GitHub) AuthorizeURL(state string) string {
	params := url.Values{}
	params.Set("client_id", g.cfg.ClientID)
	params.Set("redirect_uri", g.cfg.CallbackURL)
	params.Set("scope", "read:user user:email")
	params.Set("state", state)
	return githubAuthorizeURL + "?" + params.Encode()
}

// Exchange turns the callback code into a verified identity. Every failure
// mode is reported as a plain error; the auth use case flattens it into the
// generic credential failure.
func (g *GitHub) Exchange(ctx context.Context, code string) (domain.ProviderSignIn, error) {
	token, err := g.fetchToken(ctx, code)
	if err != nil {
		return domain.ProviderSignIn{}, err
	}

	profile, err := g.fetchProfile(ctx, token)
	if err != nil {
		return domain.ProviderSignIn{}, err
	}
	if profile.Email == "" {
		profile.Email, err = g.fetchPrimaryEmail(ctx, token)
		if err != nil {
			return domain.ProviderSignIn{}, err
		}
	}

	name := profile.Name
	if name == "" {
		name = profile.Login
	}
	return domain.ProviderSignIn{
		Name:        domain.ProviderGitHub,
		ExternalID:  fmt.Sprintf("%d", profile.ID),
		Email:       profile.Email,
		DisplayName: name,
	}, nil
}

func (g *GitHub) fetchToken(ctx context.Context, code string) (string, error) {
	form := url.Values{}
	form.Set("client_id", g.cfg.ClientID)
	form.Set("client_secret", g.cfg.ClientSecret)
	form.Set("code", code)
	form.Set("redirect_uri", g.cfg.CallbackURL)

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(githubTokenURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.SetBodyString(form.Encode())

	if err := g.do(ctx, req, resp); err != nil {
		return "", err
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return "", fmt.Errorf("token endpoint returned %d", resp.StatusCode())
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		Error       string `json:"error"`
	}
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return "", err
	}
	if payload.Error != "" || payload.AccessToken == "" {
		return "", fmt.Errorf("token exchange rejected: %s", payload.Error)
	}
	return payload.AccessToken, nil
}

type githubProfile struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (g *GitHub) fetchProfile(ctx context.Context, token string) (githubProfile, error) {
	var profile githubProfile
	if err := g.getJSON(ctx, githubUserURL, token, &profile); err != nil {
		return githubProfile{}, err
	}
	if profile.ID == 0 {
		return githubProfile{}, fmt.Errorf("profile response missing id")
	}
	return profile, nil
}

func (g *GitHub) fetchPrimaryEmail(ctx context.Context, token string) (string, error) {
	var emails []struct {
		Email    string `json:"email"`
		Primary  bool   `json:"primary"`
		Verified bool   `json:"verified"`
	}
	if err := g.getJSON(ctx, githubEmailsURL, token, &emails); err != nil {
		return "", err
	}
	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email, nil
		}
	}
	return "", fmt.Errorf("no verified primary email")
}

func (g *GitHub) getJSON(ctx context.Context, uri, token string, out interface{}) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(uri)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+token)

	if err := g.do(ctx, req, resp); err != nil {
		return err
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return fmt.Errorf("%s returned %d", uri, resp.StatusCode())
	}
	return json.Unmarshal(resp.Body(), out)
}

func (g *GitHub) do(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error {
	deadline := time.Now().Add(g.cfg.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	return g.client.DoDeadline(req, resp, deadline)
}
