// cookiejar/cookiejar.go

/* The cookiejar package gives the Jamf client an optional cookie jar. Jamf Cloud sits behind a
load balancer that pins a session to one node through a cookie, so keeping cookies between the
token request and the Classic API calls keeps every request on the node that issued the token. */

package cookiejar

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"

	"github.com/deploymenttheory/go-jamfpro-mdm-client/logger"
	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"
)

// sensitiveCookieNames are redacted before cookies are logged.
var sensitiveCookieNames = map[string]bool{
	"APBALANCEID": true,
	"JSESSIONID":  true,
	"SessionID":   true,
}

// SetupCookieJar initializes the HTTP client with a cookie jar if enabled in the configuration.
func SetupCookieJar(client *http.Client, enableCookieJar bool, log logger.Logger) error {
	if !enableCookieJar {
		return nil
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		log.Error("Failed to create cookie jar", zap.Error(err))
		return fmt.Errorf("setupCookieJar failed: %w", err)
	}
	client.Jar = jar
	log.Debug("Cookie jar enabled")
	return nil
}

// RedactSensitiveCookies returns copies of the cookies with sensitive values replaced.
func RedactSensitiveCookies(cookies []*http.Cookie) []*http.Cookie {
	redacted := make([]*http.Cookie, 0, len(cookies))
	for _, cookie := range cookies {
		c := *cookie
		if sensitiveCookieNames[c.Name] {
			c.Value = "REDACTED"
		}
		redacted = append(redacted, &c)
	}
	return redacted
}

// CookiesFromHeader converts the Set-Cookie lines of a response header to []*http.Cookie.
func CookiesFromHeader(header http.Header) []*http.Cookie {
	return (&http.Response{Header: header}).Cookies()
}

// LogResponseCookies logs the (redacted) cookies a response sets, at debug level.
func LogResponseCookies(resp *http.Response, log logger.Logger) {
	if log.GetLogLevel() > logger.LogLevelDebug {
		return
	}
	cookies := RedactSensitiveCookies(resp.Cookies())
	if len(cookies) == 0 {
		return
	}
	names := make([]string, 0, len(cookies))
	for _, c := range cookies {
		names = append(names, c.Name+"="+c.Value)
	}
	log.Debug("Response cookies", zap.Strings("cookies", names))
}
