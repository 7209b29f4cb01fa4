// zaplogger_logfields.go
package logger

import (
	"time"

	"go.uber.org/zap"
)

// LogRequestStart logs the initiation of an HTTP request, including the HTTP method, URL, and headers.
// Headers are expected to be redacted by the caller.
func (d *defaultLogger) LogRequestStart(event string, requestID string, method string, url string, headers map[string][]string) {
	if d.logLevel <= LogLevelDebug {
		fields := []zap.Field{
			zap.String("event", event),
			zap.String("method", method),
			zap.String("url", url),
			zap.Any("headers", headers),
			zap.String("request_id", requestID),
		}
		d.logger.Debug("HTTP request started", fields...)
	}
}

// LogRequestEnd logs the completion of an HTTP request, including the status code and duration.
func (d *defaultLogger) LogRequestEnd(event string, requestID string, method string, url string, statusCode int, duration time.Duration) {
	if d.logLevel <= LogLevelInfo {
		fields := []zap.Field{
			zap.String("event", event),
			zap.String("method", method),
			zap.String("url", url),
			zap.Int("status_code", statusCode),
			zap.Duration("duration", duration),
			zap.String("request_id", requestID),
		}
		d.logger.Info("HTTP request completed", fields...)
	}
}

// LogError logs an error that occurs during the processing of an HTTP request.
func (d *defaultLogger) LogError(event string, method string, url string, statusCode int, serverStatusMessage string, err error, rawResponse string) {
	if d.logLevel <= LogLevelError {
		errorMessage := ""
		if err != nil {
			errorMessage = err.Error()
		}

		fields := []zap.Field{
			zap.String("event", event),
			zap.String("method", method),
			zap.String("url", url),
			zap.Int("status_code", statusCode),
			zap.String("status_message", serverStatusMessage),
			zap.String("error_message", errorMessage),
			zap.String("raw_response", rawResponse),
		}
		d.logger.Error("Error during HTTP request", fields...)
	}
}

// LogAuthTokenError logs a failed token acquisition or invalidation.
func (d *defaultLogger) LogAuthTokenError(event string, method string, url string, statusCode int, err error) {
	if d.logLevel <= LogLevelError {
		fields := []zap.Field{
			zap.String("event", event),
			zap.String("method", method),
			zap.String("url", url),
			zap.Int("status_code", statusCode),
			zap.Error(err),
		}
		d.logger.Error("Error obtaining authentication token", fields...)
	}
}

// LogDecode logs the outcome of turning a response body into device records.
// A nil err is logged at debug level, a decode failure as a warning.
func (d *defaultLogger) LogDecode(event string, kind string, records int, err error) {
	fields := []zap.Field{
		zap.String("event", event),
		zap.String("kind", kind),
		zap.Int("records", records),
	}
	if err != nil {
		if d.logLevel <= LogLevelWarn {
			d.logger.Warn("Response decode failed", append(fields, zap.Error(err))...)
		}
		return
	}
	if d.logLevel <= LogLevelDebug {
		d.logger.Debug("Response decoded", fields...)
	}
}

// LogCommand logs the result of a remote management command.
func (d *defaultLogger) LogCommand(event string, deviceID string, command string, statusCode int, success bool) {
	fields := []zap.Field{
		zap.String("event", event),
		zap.String("device_id", deviceID),
		zap.String("command", command),
		zap.Int("status_code", statusCode),
		zap.Bool("success", success),
	}
	if success {
		if d.logLevel <= LogLevelInfo {
			d.logger.Info("Device command accepted", fields...)
		}
		return
	}
	if d.logLevel <= LogLevelWarn {
		d.logger.Warn("Device command rejected", fields...)
	}
}
