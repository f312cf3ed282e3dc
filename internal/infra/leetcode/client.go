package leetcode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yanqian/leetlens/internal/domain/profile"
	apperrors "github.com/yanqian/leetlens/pkg/errors"
)

const (
	defaultEndpoint  = "https://leetcode.com/graphql"
	defaultReferer   = "https://leetcode.com"
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"
	defaultTimeout   = 10 * time.Second
)

// Config tunes the GraphQL client. Zero values select the public endpoint.
type Config struct {
	Endpoint  string
	Referer   string
	UserAgent string
	Timeout   time.Duration
}

// Client fetches profile payloads from the LeetCode GraphQL API.
type Client struct {
	endpoint   string
	referer    string
	userAgent  string
	httpClient *http.Client
}

// NewClient builds a GraphQL client.
func NewClient(cfg Config) *Client {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	referer := strings.TrimSpace(cfg.Referer)
	if referer == "" {
		referer = defaultReferer
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		endpoint:  endpoint,
		referer:   referer,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLResponse struct {
	Data   *profile.RawPayload `json:"data"`
	Errors []graphQLError      `json:"errors"`
}

type graphQLError struct {
	Message string `json:"message"`
}

// Fetch retrieves the raw profile payload for username.
func (c *Client) Fetch(ctx context.Context, username string) (profile.RawPayload, error) {
	payload, err := json.Marshal(graphQLRequest{
		Query:     profileQuery,
		Variables: map[string]any{"username": strings.TrimSpace(username)},
	})
	if err != nil {
		return profile.RawPayload{}, fmt.Errorf("encode graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return profile.RawPayload{}, fmt.Errorf("build graphql request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Referer", c.referer)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return profile.RawPayload{}, unavailable(fmt.Errorf("graphql request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return profile.RawPayload{}, unavailable(fmt.Errorf("graphql request error: status=%d body=%s", resp.StatusCode, string(body)))
	}

	var out graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return profile.RawPayload{}, unavailable(fmt.Errorf("decode graphql response: %w", err))
	}

	if len(out.Errors) > 0 || out.Data == nil || out.Data.MatchedUser == nil {
		return profile.RawPayload{}, apperrors.Wrap(profile.CodeUserNotFound, "username not found", firstError(out.Errors))
	}
	return *out.Data, nil
}

func unavailable(err error) error {
	return apperrors.Wrap(profile.CodeUpstreamUnavailable, "failed to fetch data from leetcode", err)
}

func firstError(errs []graphQLError) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("graphql: %s", errs[0].Message)
}
