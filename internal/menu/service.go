package menu

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"finnadmin/internal/logging"
	"finnadmin/internal/session"
)

// fetchTimeout bounds the menu request. The menu is decoration, not a
// blocking dependency, so it gets a short leash independent of the
// configured gateway timeout.
const fetchTimeout = 5 * time.Second

// cacheFile is the on-disk analogue of the browser session cache.
const cacheFile = "finnbourse-menu.json"

// Service fetches the navigation menu, caching successful fetches for
// the life of the session and falling back to the hardcoded menu on any
// failure.
type Service struct {
	baseURL    string
	tokens     session.TokenSource
	httpClient *http.Client
	cachePath  string
	log        *zap.Logger

	cached *Menu
}

// Option configures a Service.
type Option func(*Service)

// WithHTTPClient substitutes the transport, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *Service) { s.httpClient = hc }
}

// WithCachePath overrides the cache file location.
func WithCachePath(path string) Option {
	return func(s *Service) { s.cachePath = path }
}

// NewService creates a menu service against baseURL.
func NewService(baseURL string, tokens session.TokenSource, opts ...Option) *Service {
	s := &Service{
		baseURL:    baseURL,
		tokens:     tokens,
		httpClient: &http.Client{Timeout: fetchTimeout},
		cachePath:  DefaultCachePath(),
		log:        logging.L(logging.CategoryMenu),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultCachePath returns the cache file location under the user cache
// dir, or a path in the temp dir when no cache dir is resolvable.
func DefaultCachePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), cacheFile)
	}
	return filepath.Join(dir, "finnadmin", cacheFile)
}

// Get returns the menu. Resolution order: in-memory copy, cache file,
// remote fetch. Every failure path lands on the hardcoded fallback, so
// Get never returns an error.
func (s *Service) Get(ctx context.Context) Menu {
	if s.cached != nil {
		return *s.cached
	}
	if m, err := s.readCache(); err == nil {
		s.cached = m
		return *m
	}
	return s.Refresh(ctx)
}

// Refresh bypasses the caches and fetches the menu from the backend.
// On success the result is cached; on any failure the hardcoded
// fallback is returned and nothing is cached.
func (s *Service) Refresh(ctx context.Context) Menu {
	m, err := s.fetch(ctx)
	if err != nil {
		s.log.Warn("menu fetch failed, using fallback", zap.Error(err))
		return Fallback()
	}
	s.cached = m
	if err := s.writeCache(m); err != nil {
		s.log.Warn("menu cache write failed", zap.String("path", s.cachePath), zap.Error(err))
	}
	return *m
}

func (s *Service) fetch(ctx context.Context) (*Menu, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/menu/list", nil)
	if err != nil {
		return nil, err
	}
	if s.tokens != nil {
		token, err := s.tokens.Token()
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("menu endpoint returned %d", resp.StatusCode)
	}

	var m Menu
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode menu: %w", err)
	}
	if len(m.Items) == 0 {
		return nil, fmt.Errorf("menu payload is empty")
	}
	return &m, nil
}

func (s *Service) readCache() (*Menu, error) {
	data, err := os.ReadFile(s.cachePath)
	if err != nil {
		return nil, err
	}
	var m Menu
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if len(m.Items) == 0 {
		return nil, fmt.Errorf("cached menu is empty")
	}
	return &m, nil
}

func (s *Service) writeCache(m *Menu) error {
	if err := os.MkdirAll(filepath.Dir(s.cachePath), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.cachePath, data, 0o644)
}
