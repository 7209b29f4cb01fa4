// proxy.go

package proxy

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/deploymenttheory/go-jamfpro-mdm-client/logger"
	"go.uber.org/zap"
)

var supportedSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"socks5": true,
}

// SetupProxy routes every request of httpClient through proxyURL. An empty proxyURL leaves the client alone.
// When proxyUsername is set the credentials are sent as Proxy-Authorization (Basic).
func SetupProxy(httpClient *http.Client, proxyURL, proxyUsername, proxyPassword string, log logger.Logger) error {
	if proxyURL == "" {
		return nil
	}

	parsedProxyURL, err := url.Parse(proxyURL)
	if err != nil {
		log.Error("Failed to parse proxy URL", zap.Error(err))
		return fmt.Errorf("invalid proxy url: %w", err)
	}
	if !supportedSchemes[parsedProxyURL.Scheme] || parsedProxyURL.Host == "" {
		return log.Error("Unsupported proxy URL", zap.String("ProxyURL", parsedProxyURL.Redacted()))
	}

	if proxyUsername != "" {
		parsedProxyURL.User = url.UserPassword(proxyUsername, proxyPassword)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = http.ProxyURL(parsedProxyURL)
	httpClient.Transport = transport

	log.Info("Proxy configured", zap.String("ProxyURL", parsedProxyURL.Redacted()))
	return nil
}
