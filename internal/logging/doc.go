// Package logging provides structured logging for the Dial-A-Charmer tools.
//
// This package wraps a global zap logger. Logging is silent unless a level is
// passed to Initialize or set in CHARMER_LOG_LEVEL, because the panel draws on
// the terminal and stray output would corrupt it. Use InitializeWithOutput to
// send logs to a file while the panel runs.
//
// # Specialized Logging
//
//	logging.LogAPICall("get settings", "GET", "/api/settings", 200, d, nil)
//	logging.LogRender("configuration", visitID)
//	logging.LogStaleResult("get logs", visitID)
//
// The simulator uses LogHTTPRequest, LogConnection and LogWebSocketMessage.
package logging
