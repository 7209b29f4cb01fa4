// authenticationhandler/authenticationhandler.go

package authenticationhandler

import (
	"sync"
	"time"

	"github.com/deploymenttheory/go-jamfpro-mdm-client/apiintegrations/jamfpro"
	"github.com/deploymenttheory/go-jamfpro-mdm-client/logger"
)

// AuthTokenHandler holds the server credentials and the current bearer token.
// Credentials and token are replaced as a whole under tokenLock, so concurrent
// operations always read a consistent snapshot.
type AuthTokenHandler struct {
	Logger            logger.Logger           // Logger provides structured logging capabilities for logging information, warnings, and errors.
	HideSensitiveData bool                    // HideSensitiveData redacts credentials from logged headers.
	apiHandler        *jamfpro.JamfAPIHandler // apiHandler builds the auth endpoint URLs.
	credentials       ClientCredentials       // credentials holds the authentication credentials.
	token             Token                   // token holds the current bearer token, zero when logged out.
	tokenLock         sync.RWMutex            // tokenLock guards credentials and token.
	now               func() time.Time        // now is the clock used for expiry checks.
}

// ClientCredentials holds the credentials necessary for authentication.
type ClientCredentials struct {
	BaseURL  string
	Username string
	Password string
}

// Token is a bearer token issued by the server. It lives in memory only.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// IsZero reports whether the token is unset.
func (t Token) IsZero() bool {
	return t.Value == ""
}

// ExpiredAt reports whether the token has expired at now.
func (t Token) ExpiredAt(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// NewAuthTokenHandler creates a new instance of AuthTokenHandler without credentials or token.
func NewAuthTokenHandler(log logger.Logger, hideSensitiveData bool) *AuthTokenHandler {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &AuthTokenHandler{
		Logger:            log,
		HideSensitiveData: hideSensitiveData,
		apiHandler:        jamfpro.NewJamfAPIHandler(log),
		now:               time.Now,
	}
}
