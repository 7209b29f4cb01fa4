// httpclient/config_test.go
package httpclient

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/deploymenttheory/go-jamfpro-mdm-client/apierrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	configJSON := `{
		"Environment": {
			"BaseURL": "https://example.jamfcloud.com"
		},
		"Auth": {
			"Username": "admin",
			"Password": "secret"
		},
		"ClientOptions": {
			"Logging": {
				"LogLevel": "LogLevelDebug",
				"LogOutputFormat": "json",
				"HideSensitiveData": true
			},
			"Cookies": {
				"CookieJarEnabled": true
			},
			"Redirect": {
				"FollowRedirects": true,
				"MaxRedirects": 3
			},
			"Timeout": {
				"CustomTimeout": 10000000000
			},
			"Decoding": {
				"StrictDecoding": true
			}
		}
	}`
	require.NoError(t, os.WriteFile(path, []byte(configJSON), 0o600))

	config, err := LoadConfigFromFile(path)

	require.NoError(t, err)
	assert.Equal(t, "https://example.jamfcloud.com", config.Environment.BaseURL)
	assert.Equal(t, "admin", config.Auth.Username)
	assert.Equal(t, "secret", config.Auth.Password)
	assert.Equal(t, "LogLevelDebug", config.ClientOptions.Logging.LogLevel)
	assert.Equal(t, "json", config.ClientOptions.Logging.LogOutputFormat)
	assert.Equal(t, DefaultLogConsoleSeparator, config.ClientOptions.Logging.LogConsoleSeparator)
	assert.True(t, config.ClientOptions.Logging.HideSensitiveData)
	assert.True(t, config.ClientOptions.Cookies.CookieJarEnabled)
	assert.True(t, config.ClientOptions.Redirect.FollowRedirects)
	assert.Equal(t, 3, config.ClientOptions.Redirect.MaxRedirects)
	assert.Equal(t, 10*time.Second, config.ClientOptions.Timeout.CustomTimeout)
	assert.True(t, config.ClientOptions.Decoding.StrictDecoding)
}

func TestLoadConfigFromFile_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfigFromFile(filepath.Join(dir, "missing.json"))
		assert.ErrorContains(t, err, "invalid file path")
	})

	t.Run("wrong extension", func(t *testing.T) {
		path := filepath.Join(dir, "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))
		_, err := LoadConfigFromFile(path)
		assert.ErrorContains(t, err, "expected .json")
	})

	t.Run("invalid json", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
		_, err := LoadConfigFromFile(path)
		assert.ErrorContains(t, err, "could not unmarshal JSON")
	})
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("JAMF_URL", "https://example.jamfcloud.com")
	t.Setenv("JAMF_USERNAME", "admin")
	t.Setenv("JAMF_PASSWORD", "secret")
	t.Setenv("LOG_LEVEL", "LogLevelWarn")
	t.Setenv("LOG_OUTPUT_FORMAT", "json")
	t.Setenv("HIDE_SENSITIVE_DATA", "true")
	t.Setenv("COOKIE_JAR_ENABLED", "true")
	t.Setenv("FOLLOW_REDIRECTS", "true")
	t.Setenv("MAX_REDIRECTS", "2")
	t.Setenv("CUSTOM_TIMEOUT", "30s")
	t.Setenv("STRICT_DECODING", "not-a-bool")
	t.Setenv("PROXY_URL", "http://proxy.example.com:3128")

	config, err := LoadConfigFromEnv()

	require.NoError(t, err)
	assert.Equal(t, "https://example.jamfcloud.com", config.Environment.BaseURL)
	assert.Equal(t, "admin", config.Auth.Username)
	assert.Equal(t, "secret", config.Auth.Password)
	assert.Equal(t, "LogLevelWarn", config.ClientOptions.Logging.LogLevel)
	assert.Equal(t, "json", config.ClientOptions.Logging.LogOutputFormat)
	assert.Equal(t, DefaultLogConsoleSeparator, config.ClientOptions.Logging.LogConsoleSeparator)
	assert.True(t, config.ClientOptions.Logging.HideSensitiveData)
	assert.True(t, config.ClientOptions.Cookies.CookieJarEnabled)
	assert.True(t, config.ClientOptions.Redirect.FollowRedirects)
	assert.Equal(t, 2, config.ClientOptions.Redirect.MaxRedirects)
	assert.Equal(t, 30*time.Second, config.ClientOptions.Timeout.CustomTimeout)
	assert.Equal(t, DefaultStrictDecoding, config.ClientOptions.Decoding.StrictDecoding)
	assert.Equal(t, "http://proxy.example.com:3128", config.ClientOptions.Proxy.ProxyURL)
	assert.Empty(t, config.ClientOptions.Proxy.ProxyUsername)
}

func TestSetDefaultValuesClientConfig(t *testing.T) {
	var config ClientConfig
	config.ClientOptions.Redirect.MaxRedirects = -1

	SetDefaultValuesClientConfig(&config)

	assert.Equal(t, DefaultLogLevelString, config.ClientOptions.Logging.LogLevel)
	assert.Equal(t, DefaultLogOutputFormatString, config.ClientOptions.Logging.LogOutputFormat)
	assert.Equal(t, DefaultLogConsoleSeparator, config.ClientOptions.Logging.LogConsoleSeparator)
	assert.Equal(t, DefaultMaxRedirects, config.ClientOptions.Redirect.MaxRedirects)
	assert.Equal(t, DefaultCustomTimeout, config.ClientOptions.Timeout.CustomTimeout)
}

func TestValidateClientConfig(t *testing.T) {
	notADir := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(notADir, nil, 0o600))

	valid := func() ClientConfig {
		var config ClientConfig
		SetDefaultValuesClientConfig(&config)
		return config
	}

	tests := []struct {
		name    string
		mutate  func(*ClientConfig)
		wantErr string
	}{
		{"defaults", func(*ClientConfig) {}, ""},
		{"invalid log level", func(c *ClientConfig) { c.ClientOptions.Logging.LogLevel = "LogLevelTrace" }, "invalid log level: LogLevelTrace"},
		{"invalid log format", func(c *ClientConfig) { c.ClientOptions.Logging.LogOutputFormat = "xml" }, "invalid log output format: xml"},
		{"negative timeout", func(c *ClientConfig) { c.ClientOptions.Timeout.CustomTimeout = -time.Second }, "timeout cannot be less than 0 seconds"},
		{"log export path below a file", func(c *ClientConfig) {
			c.ClientOptions.Logging.LogExportPath = filepath.Join(notADir, "sub", "logs")
		}, "invalid log export path"},
		{"follow without redirects", func(c *ClientConfig) {
			c.ClientOptions.Redirect.FollowRedirects = true
			c.ClientOptions.Redirect.MaxRedirects = 0
		}, "max redirects cannot be less than 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid()
			tt.mutate(&config)
			err := validateClientConfig(config, false)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateClientConfig_BaseURL(t *testing.T) {
	var config ClientConfig
	config.Environment.BaseURL = "ftp://example.jamfcloud.com"

	err := validateClientConfig(config, true)

	assert.ErrorIs(t, err, apierrors.ErrInvalidURL)
}

func TestValidateClientConfig_LogExportPathCreated(t *testing.T) {
	var config ClientConfig
	config.ClientOptions.Logging.LogExportPath = filepath.Join(t.TempDir(), "logs")

	require.NoError(t, validateClientConfig(config, true))
	assert.DirExists(t, config.ClientOptions.Logging.LogExportPath)
}
