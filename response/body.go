// response/body.go
package response

import (
	"io"
	"net/http"

	"github.com/deploymenttheory/go-jamfpro-mdm-client/logger"
	"go.uber.org/zap"
)

// ReadBody reads the whole response body and closes it. Decoding only ever starts on a fully read body.
func ReadBody(resp *http.Response, log logger.Logger) ([]byte, error) {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn("Failed to read response body", zap.Int("status_code", resp.StatusCode), zap.Error(err))
		return nil, err
	}

	if log.GetLogLevel() <= logger.LogLevelDebug {
		mimeType, _ := ParseContentTypeHeader(resp.Header.Get("Content-Type"))
		log.Debug("Raw HTTP Response",
			zap.Int("status_code", resp.StatusCode),
			zap.String("content_type", mimeType),
			zap.Int("bytes", len(bodyBytes)),
		)
	}

	return bodyBytes, nil
}
