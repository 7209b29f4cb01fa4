// cookiejar/cookiejar_test.go
package cookiejar

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deploymenttheory/go-jamfpro-mdm-client/logger"
	"github.com/deploymenttheory/go-jamfpro-mdm-client/mocklogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TestRedactSensitiveCookies tests the RedactSensitiveCookies function to ensure it correctly redacts sensitive cookies.
func TestRedactSensitiveCookies(t *testing.T) {
	cookies := []*http.Cookie{
		{Name: "APBALANCEID", Value: "aws.usw2.node1"},
		{Name: "NonSensitiveCookie", Value: "non-sensitive-value"},
	}

	redactedCookies := RedactSensitiveCookies(cookies)

	expectedValues := map[string]string{
		"APBALANCEID":        "REDACTED",
		"NonSensitiveCookie": "non-sensitive-value",
	}

	for _, cookie := range redactedCookies {
		assert.Equal(t, expectedValues[cookie.Name], cookie.Value, "Cookie value should match expected redaction outcome")
	}
	assert.Equal(t, "aws.usw2.node1", cookies[0].Value, "input cookies must not be modified")
}

// TestCookiesFromHeader tests the CookiesFromHeader function to ensure it can correctly parse cookies from HTTP headers.
func TestCookiesFromHeader(t *testing.T) {
	header := http.Header{
		"Set-Cookie": []string{
			"APBALANCEID=aws.usw2.node1; Path=/; HttpOnly",
			"Other=value; Path=/",
		},
	}

	cookies := CookiesFromHeader(header)

	require.Len(t, cookies, 2)
	assert.Equal(t, "APBALANCEID", cookies[0].Name)
	assert.Equal(t, "aws.usw2.node1", cookies[0].Value)
	assert.Equal(t, "Other", cookies[1].Name)
}

func TestSetupCookieJar(t *testing.T) {
	client := &http.Client{}
	require.NoError(t, SetupCookieJar(client, false, logger.NewNopLogger()))
	assert.Nil(t, client.Jar)

	require.NoError(t, SetupCookieJar(client, true, logger.NewNopLogger()))
	assert.NotNil(t, client.Jar)
}

func TestSetupCookieJar_StickySession(t *testing.T) {
	var seen string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("APBALANCEID"); err == nil {
			seen = c.Value
		}
		http.SetCookie(w, &http.Cookie{Name: "APBALANCEID", Value: "node1", Path: "/"})
	}))
	defer srv.Close()

	client := &http.Client{}
	require.NoError(t, SetupCookieJar(client, true, logger.NewNopLogger()))

	for i := 0; i < 2; i++ {
		resp, err := client.Get(srv.URL)
		require.NoError(t, err)
		resp.Body.Close()
	}

	assert.Equal(t, "node1", seen)
}

func TestLogResponseCookies(t *testing.T) {
	resp := &http.Response{Header: http.Header{"Set-Cookie": []string{"APBALANCEID=node1; Path=/"}}}

	mockLog := mocklogger.NewMockLogger()
	mockLog.On("GetLogLevel").Return(logger.LogLevelDebug)
	mockLog.On("Debug", "Response cookies", mock.Anything).Run(func(args mock.Arguments) {
		fields := args.Get(1).([]zap.Field)
		require.Len(t, fields, 1)
		assert.Equal(t, "cookies", fields[0].Key)
	}).Once()

	LogResponseCookies(resp, mockLog)
	mockLog.AssertExpectations(t)
}
