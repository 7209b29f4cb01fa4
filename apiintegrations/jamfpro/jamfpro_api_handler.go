// jamfpro_api_handler.go

package jamfpro

import (
	"github.com/deploymenttheory/go-jamfpro-mdm-client/logger"
)

// JamfAPIHandler builds the URLs and negotiation headers for one Jamf Pro server.
type JamfAPIHandler struct {
	Logger logger.Logger // Logger is the structured logger used for logging.
}

// NewJamfAPIHandler returns a handler logging to log.
func NewJamfAPIHandler(log logger.Logger) *JamfAPIHandler {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &JamfAPIHandler{Logger: log}
}
