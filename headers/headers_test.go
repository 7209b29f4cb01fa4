// headers/headers_test.go
package headers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deploymenttheory/go-jamfpro-mdm-client/logger"
	"github.com/deploymenttheory/go-jamfpro-mdm-client/mocklogger"
	"github.com/deploymenttheory/go-jamfpro-mdm-client/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestSetAuthorization(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected string
	}{
		{"raw token", "abc", "Bearer abc"},
		{"already prefixed", "Bearer abc", "Bearer abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
			NewHeaderHandler(req, mocklogger.NewMockLogger()).SetAuthorization(tt.token)
			assert.Equal(t, tt.expected, req.Header.Get("Authorization"), "Authorization header should be correctly set")
		})
	}
}

func TestSetBasicAuthorization(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "http://example.com/api/v1/auth/token", nil)
	NewHeaderHandler(req, mocklogger.NewMockLogger()).SetBasicAuthorization("user", "pass")

	assert.Equal(t, "Basic dXNlcjpwYXNz", req.Header.Get("Authorization"))
	user, pass, ok := req.BasicAuth()
	assert.True(t, ok)
	assert.Equal(t, "user", user)
	assert.Equal(t, "pass", pass)
}

func TestSetRequestHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	NewHeaderHandler(req, mocklogger.NewMockLogger()).SetRequestHeaders("application/xml", "tok")

	assert.Equal(t, "application/xml", req.Header.Get("Accept"))
	assert.Equal(t, version.GetUserAgentHeader(), req.Header.Get("User-Agent"))
	assert.Equal(t, "Bearer tok", req.Header.Get("Authorization"))

	anon := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	NewHeaderHandler(anon, mocklogger.NewMockLogger()).SetRequestHeaders("application/json", "")
	assert.Empty(t, anon.Header.Get("Authorization"))
}

func TestLogHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	req.Header.Set("Authorization", "Bearer secret")

	mockLog := mocklogger.NewMockLogger()
	mockLog.On("GetLogLevel").Return(logger.LogLevelDebug)
	mockLog.On("Debug", "HTTP Request Headers", mock.Anything).Run(func(args mock.Arguments) {
		fields := args.Get(1).([]zap.Field)
		assert.Len(t, fields, 1)
		assert.Contains(t, fields[0].String, "Authorization: REDACTED")
		assert.NotContains(t, fields[0].String, "secret")
	}).Once()

	NewHeaderHandler(req, mockLog).LogHeaders(true)

	mockLog.AssertExpectations(t)
}

func TestLogHeaders_SkippedAboveDebug(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	mockLog := mocklogger.NewMockLogger()
	mockLog.On("GetLogLevel").Return(logger.LogLevelInfo)

	NewHeaderHandler(req, mockLog).LogHeaders(true)

	mockLog.AssertNotCalled(t, "Debug", mock.Anything, mock.Anything)
}

func TestHeadersToString(t *testing.T) {
	h := http.Header{}
	h.Set("User-Agent", "ua")
	h.Add("Accept", "application/xml")
	h.Add("Accept", "text/xml")

	assert.Equal(t, "Accept: application/xml, text/xml\nUser-Agent: ua", HeadersToString(h))
}

func TestCheckDeprecationHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com/JSSResource/computers", nil)
	resp := &http.Response{Header: http.Header{}, Request: req}

	mockLog := mocklogger.NewMockLogger()
	CheckDeprecationHeader(resp, mockLog)
	mockLog.AssertNotCalled(t, "Warn", mock.Anything, mock.Anything)

	resp.Header.Set("Deprecation", "2025-06-01")
	mockLog.On("Warn", "API endpoint is deprecated", mock.Anything).Once()
	CheckDeprecationHeader(resp, mockLog)
	mockLog.AssertExpectations(t)
}
