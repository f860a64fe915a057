package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"johar-connect/internal/storage"
)

const (
	DefaultBaseURL   = "http://localhost:8000/api"
	DefaultLoginPath = "/login"
)

// Client es el transporte único hacia el backend. Adjunta el bearer token
// persistido a cada request y cierra la sesión ante un 401.
type Client struct {
	baseURL   string
	store     storage.KeyValueStore
	http      *http.Client
	logger    *zap.Logger
	loginPath string
	timeout   *time.Duration

	mu       sync.RWMutex
	handlers []UnauthorizedHandler

	Analytics   *AnalyticsService
	Sentiment   *SentimentService
	Blockchain  *BlockchainService
	Providers   *ProvidersService
	Marketplace *MarketplaceService
	Feedback    *FeedbackService
	Governance  *GovernanceService
	Auth        *AuthService
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithLoginPath(path string) Option {
	return func(c *Client) {
		if path != "" {
			c.loginPath = path
		}
	}
}

// WithTimeout fija un timeout por request; cero significa sin límite.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = &d
	}
}

// NewClient construye el cliente apuntando a baseURL (DefaultBaseURL si está vacío).
func NewClient(baseURL string, store storage.KeyValueStore, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		store:     store,
		http:      &http.Client{},
		logger:    zap.NewNop(),
		loginPath: DefaultLoginPath,
	}
	for _, opt := range opts {
		opt(c)
	}
	// El timeout se aplica sobre una copia: el *http.Client del caller no se toca.
	if c.timeout != nil {
		hc := *c.http
		hc.Timeout = *c.timeout
		c.http = &hc
	}

	c.Analytics = &AnalyticsService{c: c}
	c.Sentiment = &SentimentService{c: c}
	c.Blockchain = &BlockchainService{c: c}
	c.Providers = &ProvidersService{c: c}
	c.Marketplace = &MarketplaceService{c: c}
	c.Feedback = &FeedbackService{c: c}
	c.Governance = &GovernanceService{c: c}
	c.Auth = &AuthService{c: c}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do ejecuta un único request. body se codifica como JSON si no es nil y la
// respuesta se decodifica en out si out no es nil. No hay reintentos.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// El token se lee en cada dispatch; el header queda fijo para este request.
	token, ok, err := c.store.Get(ctx, storage.AuthTokenKey)
	if err != nil {
		return fmt.Errorf("read auth token: %w", err)
	}
	if ok && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.handleUnauthorized(ctx, method, path)
		return &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: respBody}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Debug("api error response",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: respBody}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}
