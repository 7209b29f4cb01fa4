// authenticationhandler/auth_bearer_token.go
/* The authenticationhandler package obtains and drops the Jamf Pro bearer token.
A token is requested with HTTP Basic credentials, held in memory and sent with every
inventory and command request until it expires or the user logs out. */

package authenticationhandler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deploymenttheory/go-jamfpro-mdm-client/apierrors"
	"github.com/deploymenttheory/go-jamfpro-mdm-client/apiintegrations/jamfpro"
	"github.com/deploymenttheory/go-jamfpro-mdm-client/headers"
	"github.com/deploymenttheory/go-jamfpro-mdm-client/response"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	opAuthenticate = "Authenticate"
	opInvalidate   = "Logout"
)

// Authenticate exchanges the configured credentials for a bearer token.
// Success is exactly HTTP 200 with a {token, expires} body. On failure the previous token is left untouched.
// The request is made once; there is no retry.
func (h *AuthTokenHandler) Authenticate(httpClient *http.Client) (Token, error) {
	creds := h.Credentials()

	authenticationEndpoint, err := h.apiHandler.ConstructAPIAuthEndpoint(creds.BaseURL, jamfpro.BearerTokenEndpoint)
	if err != nil {
		h.Logger.LogAuthTokenError("token_url_error", http.MethodPost, creds.BaseURL, 0, err)
		return Token{}, apierrors.New(opAuthenticate, apierrors.ErrInvalidURL, err)
	}

	h.Logger.Debug("Attempting to obtain token for user", zap.String("Username", creds.Username))

	req, err := http.NewRequest(http.MethodPost, authenticationEndpoint, nil)
	if err != nil {
		h.Logger.LogAuthTokenError("authentication_request_creation_error", http.MethodPost, authenticationEndpoint, 0, err)
		return Token{}, apierrors.New(opAuthenticate, apierrors.ErrInvalidURL, err).WithURL(authenticationEndpoint)
	}

	headerHandler := headers.NewHeaderHandler(req, h.Logger)
	headerHandler.SetBasicAuthorization(creds.Username, creds.Password)
	headerHandler.SetRequestHeaders(jamfpro.AcceptJSON, "")

	resp, body, err := h.do(httpClient, req, headerHandler)
	if err != nil {
		h.Logger.LogAuthTokenError("authentication_request_error", http.MethodPost, authenticationEndpoint, 0, err)
		return Token{}, apierrors.New(opAuthenticate, apierrors.ErrTransport, err).WithURL(authenticationEndpoint)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := response.HandleAPIErrorResponse(resp, body, h.Logger)
		h.Logger.LogAuthTokenError("token_authentication_failed", http.MethodPost, authenticationEndpoint, resp.StatusCode, apiErr)
		return Token{}, apierrors.New(opAuthenticate, apierrors.ErrAuthFailed, apiErr).
			WithURL(authenticationEndpoint).
			WithStatus(resp.StatusCode)
	}

	value, expires, err := jamfpro.ParseTokenResponse(body)
	if err != nil {
		h.Logger.LogAuthTokenError("token_response_decode_error", http.MethodPost, authenticationEndpoint, resp.StatusCode, err)
		return Token{}, apierrors.New(opAuthenticate, apierrors.ErrAuthFailed, fmt.Errorf("decoding token response: %w", err)).
			WithURL(authenticationEndpoint).
			WithStatus(resp.StatusCode)
	}

	token := Token{Value: value, ExpiresAt: expires}
	h.setToken(token)

	h.Logger.Info("Token obtained successfully", zap.Time("Expiry", expires), zap.Duration("Duration", expires.Sub(h.now())))
	return token, nil
}

// Invalidate logs out: the token is invalidated on the server and cleared locally whatever the server answered.
// Without a token nothing is sent and ErrNoToken is returned; an expired token is only cleared locally.
func (h *AuthTokenHandler) Invalidate(httpClient *http.Client) error {
	token, err := h.ValidToken()
	if err != nil {
		h.Clear()
		if errors.Is(err, ErrTokenExpired) {
			return nil
		}
		return apierrors.New(opInvalidate, apierrors.ErrUnauthenticated, err)
	}
	defer h.Clear()

	creds := h.Credentials()
	invalidateEndpoint, err := h.apiHandler.ConstructAPIAuthEndpoint(creds.BaseURL, jamfpro.TokenInvalidateEndpoint)
	if err != nil {
		return apierrors.New(opInvalidate, apierrors.ErrInvalidURL, err)
	}

	req, err := http.NewRequest(http.MethodPost, invalidateEndpoint, nil)
	if err != nil {
		return apierrors.New(opInvalidate, apierrors.ErrInvalidURL, err).WithURL(invalidateEndpoint)
	}

	headerHandler := headers.NewHeaderHandler(req, h.Logger)
	headerHandler.SetRequestHeaders(jamfpro.AcceptJSON, token.Value)

	resp, body, err := h.do(httpClient, req, headerHandler)
	if err != nil {
		h.Logger.LogAuthTokenError("token_invalidation_request_error", http.MethodPost, invalidateEndpoint, 0, err)
		return apierrors.New(opInvalidate, apierrors.ErrTransport, err).WithURL(invalidateEndpoint)
	}

	if resp.StatusCode != http.StatusNoContent {
		apiErr := response.HandleAPIErrorResponse(resp, body, h.Logger)
		h.Logger.LogAuthTokenError("token_invalidation_failed", http.MethodPost, invalidateEndpoint, resp.StatusCode, apiErr)
		return apierrors.New(opInvalidate, apierrors.ErrUnexpectedStatus, apiErr).
			WithURL(invalidateEndpoint).
			WithStatus(resp.StatusCode)
	}

	h.Logger.Info("Token invalidated successfully")
	return nil
}

// do sends req once and reads the whole body.
func (h *AuthTokenHandler) do(httpClient *http.Client, req *http.Request, headerHandler *headers.HeaderHandler) (*http.Response, []byte, error) {
	requestID := uuid.NewString()
	start := time.Now()

	headerHandler.LogHeaders(h.HideSensitiveData)
	h.Logger.LogRequestStart("auth_request_start", requestID, req.Method, req.URL.String(), headerHandler.RedactedHeaders(true))

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}

	body, err := response.ReadBody(resp, h.Logger)
	if err != nil {
		return nil, nil, err
	}

	h.Logger.LogRequestEnd("auth_request_end", requestID, req.Method, req.URL.String(), resp.StatusCode, time.Since(start))
	return resp, body, nil
}
