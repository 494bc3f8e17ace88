package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
)

// Auth is how a single outgoing request authenticates. It is decided once per
// request build.
type Auth interface {
	Apply(header http.Header)
}

// Anonymous requests carry no Authorization header.
type Anonymous struct{}

func (Anonymous) Apply(http.Header) {}

// Bearer requests carry "Authorization: Bearer <token>".
type Bearer string

func (b Bearer) Apply(header http.Header) {
	header.Set("Authorization", "Bearer "+string(b))
}

// Holder keeps the one live access token of the process.
type Holder struct {
	mu           sync.RWMutex
	token        string
	refreshToken string
}

func NewHolder() *Holder {
	return &Holder{}
}

// Set replaces the held access token unconditionally.
func (h *Holder) Set(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = token
}

func (h *Holder) Get() (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token, h.token != ""
}

func (h *Holder) Has() bool {
	_, ok := h.Get()
	return ok
}

func (h *Holder) SetRefresh(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.refreshToken = token
}

func (h *Holder) Refresh() (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.refreshToken, h.refreshToken != ""
}

func (h *Holder) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = ""
	h.refreshToken = ""
}

// Auth snapshots the current token as the authentication for one request.
func (h *Holder) Auth() Auth {
	if token, ok := h.Get(); ok {
		return Bearer(token)
	}
	return Anonymous{}
}

// Claims is what the access token says about itself. Nothing is verified;
// it is for display only.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

var ErrNoToken = errors.New("no access token")

func (h *Holder) Claims() (*Claims, error) {
	token, ok := h.Get()
	if !ok {
		return nil, ErrNoToken
	}
	mapClaims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, mapClaims); err != nil {
		return nil, errors.Wrap(err, "parsing access token")
	}
	claims := &Claims{}
	if sub, ok := mapClaims["sub"].(string); ok {
		claims.Subject = sub
	}
	if exp, ok := mapClaims["exp"].(float64); ok {
		claims.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return claims, nil
}
