// jamfpro_api_headers.go
package jamfpro

import (
	"strings"

	"go.uber.org/zap"
)

// GetAcceptHeader returns the Accept header for an endpoint:
// - "/JSSResource" endpoints default to "application/xml" for the Classic API.
// - "/api" endpoints use "application/json" for the Jamf Pro API.
// Classic endpoints can be asked for JSON explicitly, see GetAcceptHeaderFor.
func (j *JamfAPIHandler) GetAcceptHeader(endpoint string) string {
	if strings.HasPrefix(endpoint, "/JSSResource") {
		return AcceptXML
	}
	if strings.HasPrefix(endpoint, "/api") {
		return AcceptJSON
	}
	j.Logger.Debug("Accept header for endpoint not matched, using default XML", zap.String("endpoint", endpoint))
	return AcceptXML
}

// GetAcceptHeaderFor returns AcceptJSON when wantJSON is set, otherwise the endpoint default.
func (j *JamfAPIHandler) GetAcceptHeaderFor(endpoint string, wantJSON bool) string {
	if wantJSON {
		return AcceptJSON
	}
	return j.GetAcceptHeader(endpoint)
}
