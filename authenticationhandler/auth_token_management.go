// authenticationhandler/auth_token_management.go
package authenticationhandler

import (
	"fmt"

	"github.com/deploymenttheory/go-jamfpro-mdm-client/apierrors"
	"go.uber.org/zap"
)

var (
	// ErrNoToken is returned by ValidToken before the first successful Authenticate and after Clear.
	ErrNoToken = fmt.Errorf("%w: no auth token, authenticate first", apierrors.ErrUnauthenticated)
	// ErrTokenExpired is returned by ValidToken once the token's expiry has passed.
	ErrTokenExpired = fmt.Errorf("%w: auth token expired", apierrors.ErrUnauthenticated)
)

// Configure replaces the stored credentials. Any existing token is kept; the caller re-authenticates explicitly.
// Suspicious values are logged as warnings but never rejected.
func (h *AuthTokenHandler) Configure(username, password, baseURL string) {
	if ok, msg := IsValidUsername(username); !ok {
		h.Logger.Warn("Configured username looks invalid", zap.String("reason", msg))
	}
	if ok, msg := IsValidPassword(password); !ok {
		h.Logger.Warn("Configured password looks invalid", zap.String("reason", msg))
	}
	if ok, msg := IsValidBaseURL(baseURL); !ok {
		h.Logger.Warn("Configured Jamf URL looks invalid", zap.String("reason", msg))
	}

	h.tokenLock.Lock()
	h.credentials = ClientCredentials{BaseURL: baseURL, Username: username, Password: password}
	h.tokenLock.Unlock()
}

// Credentials returns a copy of the stored credentials.
func (h *AuthTokenHandler) Credentials() ClientCredentials {
	h.tokenLock.RLock()
	defer h.tokenLock.RUnlock()
	return h.credentials
}

// ValidToken returns the stored token, or ErrNoToken / ErrTokenExpired.
// Expiry is only checked here: the token is never refreshed in the background.
func (h *AuthTokenHandler) ValidToken() (Token, error) {
	h.tokenLock.RLock()
	token := h.token
	h.tokenLock.RUnlock()

	if token.IsZero() {
		return Token{}, ErrNoToken
	}
	if token.ExpiredAt(h.now()) {
		h.Logger.Debug("Auth token expired", zap.Time("expires", token.ExpiresAt))
		return Token{}, ErrTokenExpired
	}
	return token, nil
}

// Clear drops the token locally.
func (h *AuthTokenHandler) Clear() {
	h.tokenLock.Lock()
	h.token = Token{}
	h.tokenLock.Unlock()
}

func (h *AuthTokenHandler) setToken(token Token) {
	h.tokenLock.Lock()
	h.token = token
	h.tokenLock.Unlock()
}
