// Package alma implements the outbound client for the Alma identity service,
// which owns profile and credential data for every Wophi user.
package alma

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/wophi/wophi-api/internal/api/metrics"
	"github.com/wophi/wophi-api/internal/core/domain"
	"github.com/wophi/wophi-api/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Config holds the endpoint URLs and timeout for the Alma identity service.
// It is validated at startup; the client never reads the environment.
type Config struct {
	SignupURL     string
	GetUserURL    string
	UpdateUserURL string
	DeleteUserURL string
	Timeout       time.Duration
}

// Client issues authenticated HTTP calls to Alma. Each call is a single
// attempt with an explicit timeout; no retries.
type Client struct {
	cfg    Config
	client *http.Client
	log    zerolog.Logger
}

var _ ports.AlmaClient = (*Client)(nil)

func NewClient(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

// CreateProfile registers a new profile. Signup is unauthenticated; no
// bearer token is sent.
func (c *Client) CreateProfile(ctx context.Context, input ports.CreateProfileInput) (*domain.AlmaProfile, error) {
	return c.request(ctx, http.MethodPost, c.cfg.SignupURL, "", input)
}

// GetProfile fetches the live profile of the token's owner.
func (c *Client) GetProfile(ctx context.Context, accessToken string) (*domain.AlmaProfile, error) {
	return c.request(ctx, http.MethodGet, c.cfg.GetUserURL, accessToken, nil)
}

// UpdateProfile sends a partial update; nil fields are omitted from the body.
func (c *Client) UpdateProfile(ctx context.Context, accessToken string, input ports.UpdateProfileInput) (*domain.AlmaProfile, error) {
	return c.request(ctx, http.MethodPatch, c.cfg.UpdateUserURL, accessToken, input)
}

// DeleteProfile removes the token owner's profile.
func (c *Client) DeleteProfile(ctx context.Context, accessToken string) error {
	_, err := c.request(ctx, http.MethodDelete, c.cfg.DeleteUserURL, accessToken, nil)
	return err
}

// request performs one HTTP call and normalizes failures: a parseable remote
// error payload becomes *domain.RemoteError, everything else a generic
// internal AppError.
func (c *Client) request(ctx context.Context, method, url, accessToken string, body any) (*domain.AlmaProfile, error) {
	const op = "alma-client.request"

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, domain.NewInternalError(op, "alma request failed")
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, domain.NewInternalError(op, "alma request failed")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		metrics.AlmaRequestsTotal.WithLabelValues(method, "transport_error").Inc()
		c.log.Error().Err(err).Str("method", method).Msg("alma request failed")
		return nil, domain.NewInternalError(op, "alma request failed")
	}
	defer resp.Body.Close()
	metrics.AlmaRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.AlmaRequestsTotal.WithLabelValues(method, "remote_error").Inc()
		return nil, decodeRemoteError(op, resp)
	}
	metrics.AlmaRequestsTotal.WithLabelValues(method, "ok").Inc()

	// Delete answers with an empty body; treat it as an empty profile.
	var profile domain.AlmaProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil && !errors.Is(err, io.EOF) {
		c.log.Error().Err(err).Str("method", method).Msg("alma response decoding failed")
		return nil, domain.NewInternalError(op, "invalid alma response")
	}
	return &profile, nil
}

// decodeRemoteError parses Alma's error convention
// {error: {status, code, message}}; an unparseable body collapses to a
// generic internal error.
func decodeRemoteError(op string, resp *http.Response) error {
	var payload struct {
		Error struct {
			Status  int    `json:"status"`
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.Error.Message == "" {
		return domain.NewInternalError(op, "alma request failed")
	}
	return &domain.RemoteError{
		Status:  payload.Error.Status,
		Code:    payload.Error.Code,
		Message: payload.Error.Message,
	}
}
