// httpclient/request.go
package httpclient

import (
	"net/http"
	"time"

	"github.com/deploymenttheory/go-jamfpro-mdm-client/apierrors"
	"github.com/deploymenttheory/go-jamfpro-mdm-client/cookiejar"
	"github.com/deploymenttheory/go-jamfpro-mdm-client/headers"
	"github.com/deploymenttheory/go-jamfpro-mdm-client/response"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// request describes one call against the Jamf API.
type request struct {
	op             string // operation name carried by returned errors
	method         string
	path           string // endpoint path relative to the base URL
	pathErr        error  // set when path could not be built from the caller's arguments
	accept         string
	expectedStatus int
	failureKind    error // kind reported when the server answers with another status
}

// doRequest sends r once and reads the whole body.
// A valid token is required before anything else is checked; without one no request is issued.
// The returned response always has a fully read, closed body.
func (c *Client) doRequest(r request) (*http.Response, []byte, error) {
	log := c.Logger.With(zap.String("operation", r.op))

	token, err := c.auth.ValidToken()
	if err != nil {
		log.Warn("Request refused without a valid token", zap.Error(err))
		return nil, nil, apierrors.New(r.op, apierrors.ErrUnauthenticated, err)
	}

	if r.pathErr != nil {
		return nil, nil, apierrors.New(r.op, apierrors.ErrInvalidURL, r.pathErr)
	}

	url, err := c.apiHandler.ConstructAPIResourceEndpoint(c.auth.Credentials().BaseURL, r.path)
	if err != nil {
		return nil, nil, apierrors.New(r.op, apierrors.ErrInvalidURL, err)
	}

	req, err := http.NewRequest(r.method, url, nil)
	if err != nil {
		return nil, nil, apierrors.New(r.op, apierrors.ErrInvalidURL, err).WithURL(url)
	}

	headerHandler := headers.NewHeaderHandler(req, log)
	headerHandler.SetRequestHeaders(r.accept, token.Value)
	headerHandler.LogHeaders(c.config.ClientOptions.Logging.HideSensitiveData)

	requestID := uuid.NewString()
	startTime := time.Now()
	log.LogRequestStart("request_start", requestID, r.method, url, headerHandler.RedactedHeaders(true))

	resp, err := c.http.Do(req)
	if err != nil {
		log.LogError("request_error", r.method, url, 0, "", err, "")
		return nil, nil, apierrors.New(r.op, apierrors.ErrTransport, err).WithURL(url)
	}

	body, err := response.ReadBody(resp, log)
	if err != nil {
		log.LogError("response_read_error", r.method, url, resp.StatusCode, resp.Status, err, "")
		return nil, nil, apierrors.New(r.op, apierrors.ErrTransport, err).WithURL(url).WithStatus(resp.StatusCode)
	}

	log.LogRequestEnd("request_end", requestID, r.method, url, resp.StatusCode, time.Since(startTime))
	headers.CheckDeprecationHeader(resp, log)
	cookiejar.LogResponseCookies(resp, log)

	if resp.StatusCode != r.expectedStatus {
		apiErr := response.HandleAPIErrorResponse(resp, body, log)
		return resp, body, apierrors.New(r.op, r.failureKind, apiErr).WithURL(url).WithStatus(resp.StatusCode)
	}

	return resp, body, nil
}

// requestURL returns the URL resp was fetched from.
func requestURL(resp *http.Response) string {
	if resp == nil || resp.Request == nil || resp.Request.URL == nil {
		return ""
	}
	return resp.Request.URL.String()
}
