// Package clerk verifies Clerk session tokens, fetches Clerk user profiles and
// authenticates Clerk webhook deliveries.
package clerk

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"midatopay/config"
	"midatopay/internal/domain/entity"
	domainerrors "midatopay/internal/domain/errors"
	"midatopay/internal/domain/service"
	"midatopay/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/fx"
)

const (
	tokenLeeway      = 30 * time.Second
	maxProfileBodyKB = 512
)

// Client talks to the Clerk Backend API. It is safe for concurrent use.
type Client struct {
	apiURL            string
	secretKey         string
	authorizedParties []string
	httpClient        *http.Client
	keys              *keySet
	parser            *jwt.Parser
	cache             service.ProfileCache
	logger            *slog.Logger
}

// ClientParams holds dependencies for Client, injected by Fx
type ClientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
	Cache  service.ProfileCache `optional:"true"`
}

// NewClient builds the Clerk client from configuration. A client without a
// secret key reports Enabled() == false and rejects every token.
func NewClient(params ClientParams) *Client {
	cfg := params.Config.Clerk
	if cfg == nil {
		cfg = &config.ClerkConfig{}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	httpClient := &http.Client{Timeout: timeout}
	apiURL := strings.TrimRight(cfg.APIURL, "/")
	secretKey := strings.TrimSpace(cfg.SecretKey)

	return &Client{
		apiURL:            apiURL,
		secretKey:         secretKey,
		authorizedParties: cfg.AuthorizedParties,
		httpClient:        httpClient,
		keys:              newKeySet(apiURL+"/jwks", secretKey, httpClient, cfg.JWKSCacheTTL),
		parser:            jwt.NewParser(jwt.WithValidMethods([]string{"RS256"}), jwt.WithLeeway(tokenLeeway)),
		cache:             params.Cache,
		logger:            params.Logger,
	}
}

// Enabled reports whether a secret key is configured.
func (c *Client) Enabled() bool {
	return c.secretKey != ""
}

// VerifyToken validates a Clerk session token against the instance JWKS.
func (c *Client) VerifyToken(ctx context.Context, token string) (*entity.ExternalIdentity, error) {
	if !c.Enabled() {
		return nil, domainerrors.ErrInvalidExternalCredential.WrapMessage("clerk is not configured")
	}

	claims := jwt.MapClaims{}
	parsed, err := c.parser.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		kid, ok := t.Header["kid"].(string)
		if !ok || strings.TrimSpace(kid) == "" {
			return nil, errors.New("missing kid in token")
		}

		return c.keys.publicKey(ctx, kid)
	})
	if err != nil || !parsed.Valid {
		return nil, domainerrors.ErrInvalidExternalCredential.WrapMessage("token validation failed")
	}

	if !c.authorizedParty(claims) {
		return nil, domainerrors.ErrInvalidExternalCredential.WrapMessage("unauthorized party")
	}

	sub, _ := claims["sub"].(string)
	if strings.TrimSpace(sub) == "" {
		return nil, domainerrors.ErrInvalidExternalCredential.WrapMessage("subject claim missing")
	}
	sid, _ := claims["sid"].(string)

	return &entity.ExternalIdentity{SubjectID: sub, SessionID: sid}, nil
}

// authorizedParty checks azp when authorized parties are configured. Tokens
// without azp are accepted, matching Clerk's own verification.
func (c *Client) authorizedParty(claims jwt.MapClaims) bool {
	if len(c.authorizedParties) == 0 {
		return true
	}

	azp, _ := claims["azp"].(string)
	if azp == "" {
		return true
	}
	for _, party := range c.authorizedParties {
		if strings.TrimRight(party, "/") == strings.TrimRight(azp, "/") {
			return true
		}
	}

	return false
}

// FetchProfile loads a user from the Backend API, consulting the profile cache first.
func (c *Client) FetchProfile(ctx context.Context, subjectID string) (*entity.ExternalProfile, error) {
	if !c.Enabled() {
		return nil, domainerrors.ErrInvalidExternalCredential.WrapMessage("clerk is not configured")
	}

	if c.cache != nil {
		if profile, ok := c.cache.Get(ctx, subjectID); ok {
			return profile, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/users/"+url.PathEscape(subjectID), nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domainerrors.ErrInvalidExternalCredential.WrapMessage("fetch user: " + err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.WarnContext(ctx, "Clerk user lookup failed",
			slog.String("subject_id", subjectID),
			slog.Int("status", resp.StatusCode),
		)

		return nil, domainerrors.ErrInvalidExternalCredential.WrapMessage("fetch user: unexpected status " + resp.Status)
	}

	profile := &entity.ExternalProfile{}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxProfileBodyKB<<10)).Decode(profile); err != nil {
		return nil, domainerrors.ErrInvalidExternalCredential.WrapMessage("decode user: " + err.Error())
	}
	if profile.ID == "" {
		profile.ID = subjectID
	}

	if c.cache != nil {
		c.cache.Set(ctx, profile)
	}

	return profile, nil
}

// RefreshKeys reloads the JWKS. Used by the background refresher.
func (c *Client) RefreshKeys(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}

	return c.keys.refresh(ctx)
}
