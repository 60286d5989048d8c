package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"consultation-booking/config"
	"consultation-booking/internal/delivery/dto"
	"consultation-booking/internal/infrastructure/cache"
	"consultation-booking/pkg/validator"

	"github.com/sirupsen/logrus"
)

// ErrUnauthorized is the uniform rejection for every remote
// verification failure. The auth service's own error detail is never
// surfaced to callers.
var ErrUnauthorized = errors.New("unauthorized")

// TokenVerifier validates a bearer credential and returns its claim set.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*dto.ClaimSet, error)
}

// AuthClient delegates credential verification to the identity service
// and caches verified claim sets keyed by the literal token string.
// Staleness bound: a token revoked at the identity service may still
// verify here for up to one cache TTL window.
type AuthClient struct {
	baseURL   string
	client    *http.Client
	cache     cache.Store
	validator *validator.CustomValidator
	log       *logrus.Logger
}

func NewAuthClient(cfg config.AuthConfig, cacheStore cache.Store, v *validator.CustomValidator, log *logrus.Logger) *AuthClient {
	return &AuthClient{
		baseURL: cfg.ServiceURL,
		client: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		cache:     cacheStore,
		validator: v,
		log:       log,
	}
}

func (c *AuthClient) Verify(ctx context.Context, token string) (*dto.ClaimSet, error) {
	cacheKey := cache.TokenKey(token)

	var cached dto.ClaimSet
	if c.cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/internal/validate-token", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Warnf("Token validation request failed: %+v", err)
		return nil, ErrUnauthorized
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, ErrUnauthorized
	}

	// A 2xx with a malformed claim set is still a rejection: the body
	// must match the expected shape exactly.
	var claims dto.ClaimSet
	if err := json.NewDecoder(resp.Body).Decode(&claims); err != nil {
		c.log.Warnf("Auth service returned unparseable claim set: %+v", err)
		return nil, ErrUnauthorized
	}
	if err := c.validator.Validate(&claims); err != nil {
		c.log.Warnf("Auth service returned malformed claim set: %+v", err)
		return nil, ErrUnauthorized
	}

	if err := c.cache.Set(ctx, cacheKey, &claims); err != nil {
		return nil, err
	}

	return &claims, nil
}
