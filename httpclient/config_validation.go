// httpclient/config_validation.go
package httpclient

import (
	"errors"
	"fmt"
	"slices"

	"github.com/deploymenttheory/go-jamfpro-mdm-client/apiintegrations/jamfpro"
	"github.com/deploymenttheory/go-jamfpro-mdm-client/logger"
)

var validLogLevels = []string{
	"LogLevelDebug",
	"LogLevelInfo",
	"LogLevelWarn",
	"LogLevelError",
	"LogLevelDPanic",
	"LogLevelPanic",
	"LogLevelFatal",
}

var validLogFormats = []string{
	"json",
	"pretty",
	"console",
}

// validateClientConfig checks config for values the client cannot be built with.
// Credentials are optional here; they can be supplied later through Configure.
func validateClientConfig(config ClientConfig, populateDefaults bool) error {
	if populateDefaults {
		SetDefaultValuesClientConfig(&config)
	}

	logging := config.ClientOptions.Logging

	if !slices.Contains(validLogLevels, logging.LogLevel) {
		return fmt.Errorf("invalid log level: %s", logging.LogLevel)
	}

	if !slices.Contains(validLogFormats, logging.LogOutputFormat) {
		return fmt.Errorf("invalid log output format: %s", logging.LogOutputFormat)
	}

	if logging.LogExportPath != "" {
		if _, err := logger.EnsureLogFilePath(logging.LogExportPath); err != nil {
			return fmt.Errorf("invalid log export path: %w", err)
		}
	}

	if config.Environment.BaseURL != "" {
		if _, err := jamfpro.ParseBaseURL(config.Environment.BaseURL); err != nil {
			return err
		}
	}

	if config.ClientOptions.Timeout.CustomTimeout < 0 {
		return errors.New("timeout cannot be less than 0 seconds")
	}

	if config.ClientOptions.Redirect.FollowRedirects && config.ClientOptions.Redirect.MaxRedirects < 1 {
		return errors.New("max redirects cannot be less than 1")
	}

	return nil
}

// SetDefaultValuesClientConfig sets default values for the client configuration. Ensuring that all fields have a valid or minimum value.
func SetDefaultValuesClientConfig(config *ClientConfig) {
	logging := &config.ClientOptions.Logging
	setDefaultString(&logging.LogLevel, DefaultLogLevelString)
	setDefaultString(&logging.LogOutputFormat, DefaultLogOutputFormatString)
	setDefaultString(&logging.LogConsoleSeparator, DefaultLogConsoleSeparator)
	setDefaultInt(&config.ClientOptions.Redirect.MaxRedirects, DefaultMaxRedirects, 1)
}

func setDefaultString(field *string, defaultValue string) {
	if *field == "" {
		*field = defaultValue
	}
}

// setDefaultInt replaces values below minValue with defaultValue.
func setDefaultInt(field *int, defaultValue, minValue int) {
	if *field < minValue {
		*field = defaultValue
	}
}
