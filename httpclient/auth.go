// httpclient/auth.go
package httpclient

import (
	"errors"
	"fmt"

	"github.com/deploymenttheory/go-jamfpro-mdm-client/apierrors"
	"github.com/deploymenttheory/go-jamfpro-mdm-client/authenticationhandler"
	"github.com/deploymenttheory/go-jamfpro-mdm-client/credentials"
	"go.uber.org/zap"
)

// Configure replaces the server URL and credentials. An existing token is kept until the next
// Authenticate or Logout.
func (c *Client) Configure(username, password, baseURL string) {
	c.auth.Configure(username, password, baseURL)
}

// ConfigureFromStore loads the credentials from store and configures the client with them.
// Missing keys are configured as empty values.
func (c *Client) ConfigureFromStore(store credentials.Store) error {
	creds, err := credentials.LoadAll(store)
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}
	c.Configure(creds.Username, creds.Password, creds.JamfURL)
	return nil
}

// Authenticate obtains a bearer token with the configured credentials.
func (c *Client) Authenticate() (authenticationhandler.Token, error) {
	token, err := c.auth.Authenticate(c.http)
	if err != nil {
		c.Logger.Warn("Authentication failed", zap.String("reason", apierrors.UserMessage(err)), zap.Error(err))
		return authenticationhandler.Token{}, err
	}
	return token, nil
}

// Logout invalidates the token on the server and drops it locally.
func (c *Client) Logout() error {
	return c.auth.Invalidate(c.http)
}

// IsAuthenticated reports whether the client holds a token that has not expired.
func (c *Client) IsAuthenticated() bool {
	_, err := c.auth.ValidToken()
	return err == nil
}

// TokenExpired reports whether the client holds a token that has expired.
func (c *Client) TokenExpired() bool {
	_, err := c.auth.ValidToken()
	return errors.Is(err, authenticationhandler.ErrTokenExpired)
}
