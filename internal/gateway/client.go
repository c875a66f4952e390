package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"finnadmin/internal/logging"
	"finnadmin/internal/session"
	"finnadmin/internal/types"
)

// Client issues authenticated JSON requests against the backend base
// URL. One Client is shared by all resources; it is safe for the
// sequential use the wizard makes of it.
type Client struct {
	baseURL    string
	tokens     session.TokenSource
	httpClient *http.Client
	log        *zap.Logger
}

// Option customises client construction.
type Option func(*Client)

// WithHTTPClient substitutes the underlying http.Client, mainly for
// tests with httptest servers.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// New creates a gateway client for the given base URL.
func New(baseURL string, tokens session.TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: logging.L(logging.CategoryGateway),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do performs one request. in (when non-nil) is marshalled as the JSON
// body; out (when non-nil) receives the decoded 2xx response body.
// Exactly one network request per invocation.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.tokens.Token()
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	c.log.Debug("request", zap.String("method", method), zap.String("path", path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("transport failure", zap.String("path", path), zap.Error(err))
		return transportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		ge := classify(resp.StatusCode, respBody)
		c.log.Warn("backend error",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("kind", ge.Kind.String()))
		return ge
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response from %s: %w", path, err)
		}
	}
	return nil
}

// Resource scopes the client to one REST resource, e.g. /agence.
type Resource struct {
	c    *Client
	kind types.EntityKind
}

// For returns the resource accessor for an entity kind.
func (c *Client) For(kind types.EntityKind) Resource {
	return Resource{c: c, kind: kind}
}

// Convenience accessors for the administered resources.

func (c *Client) Agence() Resource { return c.For(types.KindAgence) }
func (c *Client) TCC() Resource    { return c.For(types.KindTCC) }
func (c *Client) Clients() Resource {
	return c.For(types.KindClient)
}
func (c *Client) IOB() Resource { return c.For(types.KindIOB) }
func (c *Client) FinancialInstitutions() Resource {
	return c.For(types.KindFinancialInstitution)
}
func (c *Client) Issuers() Resource { return c.For(types.KindIssuer) }

// CreateOrUpdate persists the entity payload. Without an existing id it
// POSTs to the collection; with one it PUTs to the element. Returns the
// persisted id (the existing one for updates when the backend omits it).
// No idempotency key is attached: a retry after a transport failure may
// create a duplicate remote entity.
func (r Resource) CreateOrUpdate(ctx context.Context, payload map[string]any, existingID string) (string, error) {
	var resp idResponse
	if existingID == "" {
		if err := r.c.do(ctx, http.MethodPost, r.kind.Path(), payload, &resp); err != nil {
			return "", err
		}
		if resp.ID == "" {
			return "", fmt.Errorf("create %s: backend returned no id", r.kind)
		}
		return resp.ID, nil
	}

	if err := r.c.do(ctx, http.MethodPut, r.kind.Path()+"/"+existingID, payload, &resp); err != nil {
		return "", err
	}
	if resp.ID != "" {
		return resp.ID, nil
	}
	return existingID, nil
}

// FetchOne retrieves a single entity with its nested users.
func (r Resource) FetchOne(ctx context.Context, id string) (*WireEntity, error) {
	var entity WireEntity
	if err := r.c.do(ctx, http.MethodGet, r.kind.Path()+"/"+id, nil, &entity); err != nil {
		return nil, err
	}
	return &entity, nil
}

// FetchAll lists the resource collection.
func (r Resource) FetchAll(ctx context.Context) ([]WireEntity, error) {
	var entities []WireEntity
	if err := r.c.do(ctx, http.MethodGet, r.kind.Path(), nil, &entities); err != nil {
		return nil, err
	}
	return entities, nil
}

// CreateUser provisions a related user under an entity and returns the
// new user's backend id.
func (r Resource) CreateUser(ctx context.Context, entityID string, user UserPayload) (string, error) {
	var resp idResponse
	path := fmt.Sprintf("%s/%s/users", r.kind.Path(), entityID)
	if err := r.c.do(ctx, http.MethodPost, path, user, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// UpdateUser rewrites a related user's attributes.
func (r Resource) UpdateUser(ctx context.Context, entityID, userID string, user UserPayload) error {
	path := fmt.Sprintf("%s/%s/users/%s", r.kind.Path(), entityID, userID)
	return r.c.do(ctx, http.MethodPut, path, user, nil)
}

// UpdateUserRole replaces a related user's role set.
func (r Resource) UpdateUserRole(ctx context.Context, entityID, userID string, roles []string) error {
	path := fmt.Sprintf("%s/%s/users/%s/role", r.kind.Path(), entityID, userID)
	return r.c.do(ctx, http.MethodPut, path, RolePayload{Roles: roles}, nil)
}
