package store

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"syscall"
)

// ErrorKind is the category of a transport failure.
type ErrorKind int

const (
	// KindNetwork is a generic network-level failure
	KindNetwork ErrorKind = iota
	// KindTimeout means the request deadline passed
	KindTimeout
	// KindConnectionRefused means nothing listens on the device port
	KindConnectionRefused
	// KindDNS means the device hostname did not resolve
	KindDNS
	// KindHTTP means the device answered with a non-2xx status
	KindHTTP
	// KindParse means the response body could not be decoded
	KindParse
)

// String returns a human-readable name for the error kind
func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "Network Error"
	case KindTimeout:
		return "Timeout"
	case KindConnectionRefused:
		return "Connection Refused"
	case KindDNS:
		return "DNS Error"
	case KindHTTP:
		return "HTTP Error"
	case KindParse:
		return "Parse Error"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// TransportError is returned by every Client operation that fails.
type TransportError struct {
	Kind       ErrorKind // Category of failure
	Op         string    // Operation name, e.g. "get settings"
	Message    string    // Human-readable message
	StatusCode int       // HTTP status code (KindHTTP only)
	Err        error     // Underlying error (if any)
}

// Error implements the error interface
func (e *TransportError) Error() string {
	msg := fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Message)
	if e.Err != nil {
		msg += fmt.Sprintf(" (caused by: %v)", e.Err)
	}
	return msg
}

// Unwrap returns the underlying error for error chain inspection
func (e *TransportError) Unwrap() error {
	return e.Err
}

// classifyNetworkError maps a failed round trip onto an error kind.
func classifyNetworkError(op string, err error) *TransportError {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return &TransportError{Kind: KindTimeout, Op: op, Message: "request timed out", Err: err}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &TransportError{Kind: KindDNS, Op: op, Message: fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name), Err: err}
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return &TransportError{Kind: KindConnectionRefused, Op: op, Message: "device refused connection", Err: err}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return &TransportError{Kind: KindTimeout, Op: op, Message: "request timed out", Err: err}
	}

	return &TransportError{Kind: KindNetwork, Op: op, Message: "network error occurred", Err: err}
}

func newHTTPError(op string, status int, body string) *TransportError {
	msg := fmt.Sprintf("unexpected status code: %d", status)
	if body = strings.TrimSpace(body); body != "" {
		msg += ": " + body
	}
	return &TransportError{Kind: KindHTTP, Op: op, Message: msg, StatusCode: status}
}

func newParseError(op string, err error) *TransportError {
	return &TransportError{Kind: KindParse, Op: op, Message: "failed to parse response", Err: err}
}

// AsTransportError extracts a *TransportError from err's chain.
func AsTransportError(err error) (*TransportError, bool) {
	var te *TransportError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}

// IsTransportError reports whether err came from the store client
func IsTransportError(err error) bool {
	_, ok := AsTransportError(err)
	return ok
}

// IsNetworkError checks if an error is a network error (including timeout, connection refused, DNS)
func IsNetworkError(err error) bool {
	te, ok := AsTransportError(err)
	if !ok {
		return false
	}
	switch te.Kind {
	case KindNetwork, KindTimeout, KindConnectionRefused, KindDNS:
		return true
	}
	return false
}

// IsTimeout checks if an error is a request timeout
func IsTimeout(err error) bool {
	te, ok := AsTransportError(err)
	return ok && te.Kind == KindTimeout
}

// IsHTTPError checks if an error is a non-2xx response
func IsHTTPError(err error) bool {
	te, ok := AsTransportError(err)
	return ok && te.Kind == KindHTTP
}

// IsParseError checks if an error is a decoding failure
func IsParseError(err error) bool {
	te, ok := AsTransportError(err)
	return ok && te.Kind == KindParse
}

// ShortMessage returns a concise, user-friendly error message
func ShortMessage(err error) string {
	te, ok := AsTransportError(err)
	if !ok {
		return err.Error()
	}

	switch te.Kind {
	case KindTimeout:
		return "Device not responding (timeout)"
	case KindConnectionRefused:
		return "Device refused connection"
	case KindDNS:
		return "Cannot resolve device hostname"
	case KindHTTP:
		return fmt.Sprintf("Device error (HTTP %d)", te.StatusCode)
	case KindParse:
		return "Failed to parse device response"
	default:
		return "Network error - check connection"
	}
}

// TroubleshootingHint returns user-friendly troubleshooting advice for an error
func TroubleshootingHint(err error) string {
	te, ok := AsTransportError(err)
	if !ok {
		return "An unexpected error occurred. Please try again."
	}

	switch te.Kind {
	case KindTimeout:
		return strings.Join([]string{
			"The device did not respond in time.",
			"Troubleshooting:",
			"  • Check that the device is powered on",
			"  • Verify you're on the same network as the device",
			"  • Try a longer --timeout",
		}, "\n")

	case KindConnectionRefused:
		return strings.Join([]string{
			"The device refused the connection.",
			"Troubleshooting:",
			"  • The web server may still be starting - wait a few seconds",
			"  • Verify the port number (default is 80)",
		}, "\n")

	case KindDNS:
		return strings.Join([]string{
			"Could not resolve the device hostname.",
			"Troubleshooting:",
			"  • Use the IP address instead of dial-a-charmer.local",
			"  • Run 'charmer-cfg scan' to discover the device",
			"  • In setup mode, join the device hotspot and use 192.168.4.1",
		}, "\n")

	case KindHTTP:
		if te.StatusCode == 404 {
			return "The device does not know this endpoint or file. Check the firmware version and the file name."
		}
		if te.StatusCode >= 500 {
			return strings.Join([]string{
				fmt.Sprintf("The device returned an error (HTTP %d).", te.StatusCode),
				"Troubleshooting:",
				"  • Try rebooting the device",
				"  • Check the device log with 'charmer-cfg logs'",
			}, "\n")
		}
		return fmt.Sprintf("The device returned HTTP error %d. Check the request parameters.", te.StatusCode)

	case KindParse:
		return strings.Join([]string{
			"Failed to parse the device's response.",
			"This may indicate a firmware incompatibility.",
		}, "\n")

	default:
		return strings.Join([]string{
			"Network communication failed.",
			"Troubleshooting:",
			"  • Check your network connection",
			"  • Verify the device is powered on",
		}, "\n")
	}
}
