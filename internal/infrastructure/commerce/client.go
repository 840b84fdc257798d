package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const maxResponseSize = 2 << 20 // 2MB

// Config holds commerce API connection settings
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the upstream commerce REST API. It only carries calls
// that need no bearer token; WithCredentials wraps it for the rest.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a commerce API client
func NewClient(cfg Config, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// do performs one request against the commerce API. A non-empty token is
// attached as a bearer credential. Non-2xx responses come back as *APIError.
func (c *Client) do(ctx context.Context, method, path string, body any, token string, out any) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil && resp.StatusCode < 400 {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			if env.Error.Message != "" {
				apiErr.Message = env.Error.Message
			}
		}
		c.logger.Debug("commerce api error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("code", apiErr.Code))
		return apiErr
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response data: %w", err)
		}
	}
	return nil
}

// Login exchanges credentials for an account and token pair
func (c *Client) Login(ctx context.Context, email, password string) (*AccountPayload, error) {
	body := map[string]string{"email": email, "password": password}
	var account AccountPayload
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, "", &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// Register creates an account and returns it with a token pair
func (c *Client) Register(ctx context.Context, input RegisterInput) (*AccountPayload, error) {
	var account AccountPayload
	if err := c.do(ctx, http.MethodPost, "/auth/register", input, "", &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// RefreshToken exchanges a refresh token for a fresh token pair
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*TokenPayload, error) {
	body := map[string]string{"refresh_token": refreshToken}
	var pair TokenPayload
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", body, "", &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

// ListProducts fetches a catalog page
func (c *Client) ListProducts(ctx context.Context, query ProductQuery) ([]Product, error) {
	var products []Product
	if err := c.do(ctx, http.MethodGet, "/products"+encodeQuery(query), nil, "", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches one catalog entry
func (c *Client) GetProduct(ctx context.Context, productID string) (*Product, error) {
	var product Product
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(productID), nil, "", &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func encodeQuery(query ProductQuery) string {
	values := url.Values{}
	if query.Search != "" {
		values.Set("search", query.Search)
	}
	if query.Category != "" {
		values.Set("category", query.Category)
	}
	if query.VendorID != "" {
		values.Set("vendor_id", query.VendorID)
	}
	if query.Page > 0 {
		values.Set("page", strconv.Itoa(query.Page))
	}
	if query.PageSize > 0 {
		values.Set("page_size", strconv.Itoa(query.PageSize))
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}
