// jamfpro_api_url.go
package jamfpro

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/deploymenttheory/go-jamfpro-mdm-client/apierrors"
	"go.uber.org/zap"
)

// ParseBaseURL validates a server base URL such as https://example.jamfcloud.com.
// The URL must be absolute http(s) with a host; a path prefix is kept, query and fragment are dropped.
func ParseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: base url is empty", apierrors.ErrInvalidURL)
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apierrors.ErrInvalidURL, err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return nil, fmt.Errorf("%w: unsupported scheme %q in %q", apierrors.ErrInvalidURL, u.Scheme, raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: no host in %q", apierrors.ErrInvalidURL, raw)
	}

	return &url.URL{
		Scheme: u.Scheme,
		User:   u.User,
		Host:   u.Host,
		Path:   strings.TrimRight(u.Path, "/"),
	}, nil
}

// ConstructAPIResourceEndpoint constructs the full URL for a Jamf API resource endpoint path and logs the URL.
func (j *JamfAPIHandler) ConstructAPIResourceEndpoint(baseURL string, endpointPath string) (string, error) {
	fullURL, err := joinEndpoint(baseURL, endpointPath)
	if err != nil {
		return "", err
	}
	j.Logger.Debug(fmt.Sprintf("Constructed %s API resource endpoint URL", APIName), zap.String("URL", fullURL))
	return fullURL, nil
}

// ConstructAPIAuthEndpoint constructs the full URL for a Jamf API auth endpoint path and logs the URL.
func (j *JamfAPIHandler) ConstructAPIAuthEndpoint(baseURL string, endpointPath string) (string, error) {
	fullURL, err := joinEndpoint(baseURL, endpointPath)
	if err != nil {
		return "", err
	}
	j.Logger.Debug(fmt.Sprintf("Constructed %s API authentication URL", APIName), zap.String("URL", fullURL))
	return fullURL, nil
}

func joinEndpoint(baseURL, endpointPath string) (string, error) {
	base, err := ParseBaseURL(baseURL)
	if err != nil {
		return "", err
	}
	return base.String() + endpointPath, nil
}

// MobileDeviceEndpoint returns the path of a single mobile device.
func MobileDeviceEndpoint(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("%w: empty device id", apierrors.ErrInvalidURL)
	}
	return fmt.Sprintf(MobileDeviceByIDEndpoint, url.PathEscape(id)), nil
}

// MobileDeviceCommandPath returns the path that issues command to the mobile device id.
func MobileDeviceCommandPath(command, id string) (string, error) {
	command = strings.TrimSpace(command)
	id = strings.TrimSpace(id)
	if command == "" {
		return "", fmt.Errorf("%w: empty command name", apierrors.ErrInvalidURL)
	}
	if id == "" {
		return "", fmt.Errorf("%w: empty device id", apierrors.ErrInvalidURL)
	}
	return fmt.Sprintf(MobileDeviceCommandEndpoint, url.PathEscape(command), url.PathEscape(id)), nil
}
