// httpclient/client.go
/* The httpclient package is the Jamf Pro MDM client. It holds the configured http.Client, the bearer
token handler and the response decoder, runs the inventory and command operations against the Classic
API and publishes the decoded inventory through a Store. Each operation sends exactly one request;
there is no retry, request queue or background polling. */
package httpclient

import (
	"net/http"

	"github.com/deploymenttheory/go-jamfpro-mdm-client/apiintegrations/jamfpro"
	"github.com/deploymenttheory/go-jamfpro-mdm-client/authenticationhandler"
	"github.com/deploymenttheory/go-jamfpro-mdm-client/cookiejar"
	"github.com/deploymenttheory/go-jamfpro-mdm-client/decoder"
	"github.com/deploymenttheory/go-jamfpro-mdm-client/logger"
	"github.com/deploymenttheory/go-jamfpro-mdm-client/proxy"
	"github.com/deploymenttheory/go-jamfpro-mdm-client/redirecthandler"
	"github.com/deploymenttheory/go-jamfpro-mdm-client/store"
	"go.uber.org/zap"
)

// Client talks to a single Jamf Pro server.
type Client struct {
	config     ClientConfig                            // config is the validated configuration the client was built with.
	http       *http.Client                            // http is the underlying transport.
	auth       *authenticationhandler.AuthTokenHandler // auth holds credentials and the bearer token.
	apiHandler *jamfpro.JamfAPIHandler                 // apiHandler builds endpoint URLs and Accept headers.
	decoder    *decoder.Decoder                        // decoder turns response bodies into records.
	Store      *store.Store                            // Store publishes the last fetched inventory.
	Logger     logger.Logger                           // Logger provides structured logging for every operation.
}

// BuildClient creates a new Jamf client with the provided configuration.
func BuildClient(config ClientConfig, populateDefaultValues bool) (*Client, error) {
	return BuildClientWithLogger(config, populateDefaultValues, nil)
}

// BuildClientWithLogger is BuildClient with a caller supplied logger. A nil log builds one from the
// logging configuration.
func BuildClientWithLogger(config ClientConfig, populateDefaultValues bool, log logger.Logger) (*Client, error) {
	if populateDefaultValues {
		SetDefaultValuesClientConfig(&config)
	}

	if err := validateClientConfig(config, populateDefaultValues); err != nil {
		return nil, err
	}

	// region Logging
	if log == nil {
		logging := config.ClientOptions.Logging
		log = logger.BuildLogger(
			logger.ParseLogLevelFromString(logging.LogLevel),
			logging.LogOutputFormat,
			logging.LogConsoleSeparator,
			logging.LogExportPath,
		)
	}
	log.Info("Building new Jamf client")
	// endregion

	// region Transport
	httpClient := &http.Client{
		Timeout: config.ClientOptions.Timeout.CustomTimeout,
	}

	redirect := config.ClientOptions.Redirect
	if err := redirecthandler.SetupRedirectHandler(httpClient, redirect.FollowRedirects, redirect.MaxRedirects, log); err != nil {
		return nil, err
	}

	proxyConfig := config.ClientOptions.Proxy
	if err := proxy.SetupProxy(httpClient, proxyConfig.ProxyURL, proxyConfig.ProxyUsername, proxyConfig.ProxyPassword, log); err != nil {
		return nil, err
	}

	if err := cookiejar.SetupCookieJar(httpClient, config.ClientOptions.Cookies.CookieJarEnabled, log); err != nil {
		return nil, err
	}
	// endregion

	// region Session
	auth := authenticationhandler.NewAuthTokenHandler(log, config.ClientOptions.Logging.HideSensitiveData)
	if config.Environment.BaseURL != "" || config.Auth.Username != "" || config.Auth.Password != "" {
		auth.Configure(config.Auth.Username, config.Auth.Password, config.Environment.BaseURL)
	}
	// endregion

	client := &Client{
		config:     config,
		http:       httpClient,
		auth:       auth,
		apiHandler: jamfpro.NewJamfAPIHandler(log),
		decoder:    decoder.New(decoder.Options{Strict: config.ClientOptions.Decoding.StrictDecoding}, log),
		Store:      store.New(log),
		Logger:     log,
	}

	log.Debug(
		"New Jamf client created",
		zap.String("BaseURL", config.Environment.BaseURL),
		zap.String("LogLevel", config.ClientOptions.Logging.LogLevel),
		zap.String("LogOutputFormat", config.ClientOptions.Logging.LogOutputFormat),
		zap.Bool("HideSensitiveData", config.ClientOptions.Logging.HideSensitiveData),
		zap.Bool("CookieJarEnabled", config.ClientOptions.Cookies.CookieJarEnabled),
		zap.Bool("FollowRedirects", redirect.FollowRedirects),
		zap.Int("MaxRedirects", redirect.MaxRedirects),
		zap.Duration("CustomTimeout", config.ClientOptions.Timeout.CustomTimeout),
		zap.Bool("StrictDecoding", config.ClientOptions.Decoding.StrictDecoding),
		zap.Bool("ProxyEnabled", proxyConfig.ProxyURL != ""),
	)

	return client, nil
}

// Config returns the configuration the client was built with.
func (c *Client) Config() ClientConfig {
	return c.config
}
