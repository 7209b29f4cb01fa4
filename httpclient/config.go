// httpclient/config.go
// Description: This file contains functions to load and validate configuration values from a JSON file or environment variables.
package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultLogLevelString        = "LogLevelInfo"
	DefaultLogOutputFormatString = "pretty"
	DefaultLogConsoleSeparator   = "	"
	DefaultLogExportPath         = ""
	DefaultHideSensitiveData     = false
	DefaultCookieJarEnabled      = false
	DefaultFollowRedirects       = false
	DefaultMaxRedirects          = 5
	DefaultCustomTimeout         = time.Duration(0)
	DefaultStrictDecoding        = false
)

const ConfigFileExtension = ".json"

// ClientConfig holds the configuration for the Jamf client.
type ClientConfig struct {
	Environment   EnvironmentConfig
	Auth          AuthConfig
	ClientOptions ClientOptions
}

// EnvironmentConfig holds the Jamf Pro server the client talks to.
type EnvironmentConfig struct {
	BaseURL string `json:"BaseURL"` // e.g. https://example.jamfcloud.com
}

// AuthConfig holds the credentials exchanged for a bearer token.
type AuthConfig struct {
	Username string `json:"Username,omitempty"`
	Password string `json:"Password,omitempty"`
}

// ClientOptions holds optional configuration options for the client.
type ClientOptions struct {
	Logging  LoggingConfig
	Cookies  CookieConfig
	Redirect RedirectConfig
	Timeout  TimeoutConfig
	Decoding DecodingConfig
	Proxy    ProxyConfig
}

// LoggingConfig holds the logger settings.
type LoggingConfig struct {
	LogLevel            string `json:"LogLevel,omitempty"`            // Debug, Info, Warn, Error, DPanic, Panic, Fatal
	LogOutputFormat     string `json:"LogOutputFormat,omitempty"`     // "pretty" or "json"
	LogConsoleSeparator string `json:"LogConsoleSeparator,omitempty"` // separator between fields in pretty output
	LogExportPath       string `json:"LogExportPath,omitempty"`       // directory or file for log output, empty for stdout only
	HideSensitiveData   bool   `json:"HideSensitiveData,omitempty"`   // redact credentials in logged headers
}

// CookieConfig holds the cookie jar setting.
type CookieConfig struct {
	CookieJarEnabled bool `json:"CookieJarEnabled,omitempty"`
}

// RedirectConfig holds the redirect policy.
type RedirectConfig struct {
	FollowRedirects bool `json:"FollowRedirects,omitempty"`
	MaxRedirects    int  `json:"MaxRedirects,omitempty"`
}

// TimeoutConfig holds the request timeout. Zero means no timeout.
type TimeoutConfig struct {
	CustomTimeout time.Duration `json:"CustomTimeout,omitempty"`
}

// DecodingConfig selects the decoder's malformed input policy.
type DecodingConfig struct {
	StrictDecoding bool `json:"StrictDecoding,omitempty"`
}

// ProxyConfig routes requests through an outbound proxy. An empty ProxyURL disables it.
type ProxyConfig struct {
	ProxyURL      string `json:"ProxyURL,omitempty"`
	ProxyUsername string `json:"ProxyUsername,omitempty"`
	ProxyPassword string `json:"ProxyPassword,omitempty"`
}

// LoadConfigFromFile loads http client configuration settings from a JSON file.
func LoadConfigFromFile(filepath string) (*ClientConfig, error) {
	absPath, err := validateFilePath(filepath)
	if err != nil {
		return nil, fmt.Errorf("invalid file path: %w", err)
	}

	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("could not open file: %w", err)
	}
	defer file.Close()

	byteValue, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("could not read file: %w", err)
	}

	var config ClientConfig
	if err := json.Unmarshal(byteValue, &config); err != nil {
		return nil, fmt.Errorf("could not unmarshal JSON: %w", err)
	}

	SetDefaultValuesClientConfig(&config)

	return &config, nil
}

// LoadConfigFromEnv loads HTTP client configuration settings from environment variables.
// If any environment variables are not set, the default values defined in the constants are used instead.
func LoadConfigFromEnv() (*ClientConfig, error) {
	config := &ClientConfig{
		Environment: EnvironmentConfig{
			BaseURL: getEnvAsString("JAMF_URL", ""),
		},
		Auth: AuthConfig{
			Username: getEnvAsString("JAMF_USERNAME", ""),
			Password: getEnvAsString("JAMF_PASSWORD", ""),
		},
		ClientOptions: ClientOptions{
			Logging: LoggingConfig{
				LogLevel:            getEnvAsString("LOG_LEVEL", DefaultLogLevelString),
				LogOutputFormat:     getEnvAsString("LOG_OUTPUT_FORMAT", DefaultLogOutputFormatString),
				LogConsoleSeparator: getEnvAsString("LOG_CONSOLE_SEPARATOR", DefaultLogConsoleSeparator),
				LogExportPath:       getEnvAsString("LOG_EXPORT_PATH", DefaultLogExportPath),
				HideSensitiveData:   getEnvAsBool("HIDE_SENSITIVE_DATA", DefaultHideSensitiveData),
			},
			Cookies: CookieConfig{
				CookieJarEnabled: getEnvAsBool("COOKIE_JAR_ENABLED", DefaultCookieJarEnabled),
			},
			Redirect: RedirectConfig{
				FollowRedirects: getEnvAsBool("FOLLOW_REDIRECTS", DefaultFollowRedirects),
				MaxRedirects:    getEnvAsInt("MAX_REDIRECTS", DefaultMaxRedirects),
			},
			Timeout: TimeoutConfig{
				CustomTimeout: getEnvAsDuration("CUSTOM_TIMEOUT", DefaultCustomTimeout),
			},
			Decoding: DecodingConfig{
				StrictDecoding: getEnvAsBool("STRICT_DECODING", DefaultStrictDecoding),
			},
			Proxy: ProxyConfig{
				ProxyURL:      getEnvAsString("PROXY_URL", ""),
				ProxyUsername: getEnvAsString("PROXY_USERNAME", ""),
				ProxyPassword: getEnvAsString("PROXY_PASSWORD", ""),
			},
		},
	}

	return config, nil
}

// validateFilePath cleans path and checks it names an existing .json file.
func validateFilePath(path string) (string, error) {
	cleanPath := filepath.Clean(path)

	absPath, err := filepath.EvalSymlinks(cleanPath)
	if err != nil {
		return "", fmt.Errorf("unable to resolve the absolute path of the configuration file: %s, error: %w", path, err)
	}

	if strings.Contains(absPath, "..") {
		return "", fmt.Errorf("invalid path, path traversal patterns detected: %s", path)
	}

	if filepath.Ext(absPath) != ConfigFileExtension {
		return "", fmt.Errorf("invalid file extension for configuration file: %s, expected .json", path)
	}

	return absPath, nil
}

func getEnvAsString(name string, defaultVal string) string {
	if value, exists := os.LookupEnv(name); exists {
		return value
	}
	return defaultVal
}

func getEnvAsBool(name string, defaultVal bool) bool {
	if value, exists := os.LookupEnv(name); exists {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvAsInt(name string, defaultVal int) int {
	if value, exists := os.LookupEnv(name); exists {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	if value, exists := os.LookupEnv(name); exists {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultVal
}
