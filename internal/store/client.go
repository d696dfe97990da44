package store

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/dial-a-charmer/charmer/internal/logging"
	"github.com/dial-a-charmer/charmer/internal/phonebook"
)

const (
	// DefaultHost is the mDNS name the device advertises once on a home network
	DefaultHost = "dial-a-charmer.local"

	// AccessPointAddress is the device address while it runs its setup hotspot
	AccessPointAddress = "192.168.4.1"

	// DefaultPort is the device web server port
	DefaultPort = 80

	// maxErrorBody caps how much of an error response is kept in the message
	maxErrorBody = 512
)

// API paths
const (
	PathStatus    = "/api/status"
	PathSettings  = "/api/settings"
	PathPhonebook = "/api/phonebook"
	PathWifiScan  = "/api/wifi/scan"
	PathRingtones = "/api/ringtones"
	PathLogs      = "/api/logs"
	PathTime      = "/api/time"
	PathPreview   = "/api/preview"
)

// Client talks to one device. It holds no state besides its address, so it
// is safe for concurrent use.
type Client struct {
	// BaseURL is the base URL for the device (e.g., "http://192.168.4.1:80")
	BaseURL string

	// HTTPClient is the underlying HTTP client. It has no timeout; pass a
	// context with a deadline where one is wanted.
	HTTPClient *http.Client
}

// NewClient creates a client for the device at host:port
func NewClient(host string, port int) *Client {
	if port == 0 {
		port = DefaultPort
	}
	return NewClientWithURL("http://" + net.JoinHostPort(host, strconv.Itoa(port)))
}

// NewClientWithURL creates a client with a full base URL
func NewClientWithURL(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{},
	}
}

// Host returns the host part of the base URL, without port.
func (c *Client) Host() string {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// GetStatus fetches the device mode.
func (c *Client) GetStatus(ctx context.Context) (*Status, error) {
	const op = "get status"
	var st Status
	if err := c.getJSON(ctx, op, PathStatus, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// GetSettings fetches and decodes the settings snapshot.
func (c *Client) GetSettings(ctx context.Context) (*Settings, error) {
	const op = "get settings"
	body, err := c.do(ctx, op, http.MethodGet, PathSettings, nil)
	if err != nil {
		return nil, err
	}
	s, err := DecodeSettings(body)
	if err != nil {
		return nil, newParseError(op, err)
	}
	if gaps := s.Gaps(); len(gaps) > 0 {
		logging.Debug("Settings fields defaulted", zap.Strings("fields", gaps))
	}
	return s, nil
}

// SaveSettings posts only the fields present in patch.
func (c *Client) SaveSettings(ctx context.Context, patch SettingsPatch) error {
	_, err := c.do(ctx, "save settings", http.MethodPost, PathSettings, patch)
	return err
}

// GetPhonebook fetches the dial-code mapping, keeping the device's key order.
func (c *Client) GetPhonebook(ctx context.Context) (*phonebook.Book, error) {
	const op = "get phonebook"
	book := phonebook.NewBook()
	if err := c.getJSON(ctx, op, PathPhonebook, book); err != nil {
		return nil, err
	}
	return book, nil
}

// SavePhonebook replaces the device phonebook with book.
func (c *Client) SavePhonebook(ctx context.Context, book *phonebook.Book) error {
	if book == nil {
		book = phonebook.NewBook()
	}
	_, err := c.do(ctx, "save phonebook", http.MethodPost, PathPhonebook, book)
	return err
}

// ScanWifi asks the device to scan for networks. The call blocks for the
// duration of the radio scan.
func (c *Client) ScanWifi(ctx context.Context) ([]WifiNetwork, error) {
	var networks []WifiNetwork
	if err := c.getJSON(ctx, "scan wifi", PathWifiScan, &networks); err != nil {
		return nil, err
	}
	return networks, nil
}

// GetRingtones lists the ringtone file names on the device SD card.
func (c *Client) GetRingtones(ctx context.Context) ([]string, error) {
	var names []string
	if err := c.getJSON(ctx, "get ringtones", PathRingtones, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// GetLogs fetches the device log tail.
func (c *Client) GetLogs(ctx context.Context) (*LogTail, error) {
	var tail LogTail
	if err := c.getJSON(ctx, "get logs", PathLogs, &tail); err != nil {
		return nil, err
	}
	return &tail, nil
}

// GetTime fetches the device clock.
func (c *Client) GetTime(ctx context.Context) (*DeviceTime, error) {
	var t DeviceTime
	if err := c.getJSON(ctx, "get time", PathTime, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// PreviewSound asks the device to play a ringtone. The response body is
// ignored; only transport failures and non-2xx statuses are reported.
func (c *Client) PreviewSound(ctx context.Context, file string) error {
	path := PathPreview + "?" + url.Values{"file": {file}}.Encode()
	_, err := c.do(ctx, "preview sound", http.MethodGet, path, nil)
	return err
}

func (c *Client) getJSON(ctx context.Context, op, path string, out any) error {
	body, err := c.do(ctx, op, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return newParseError(op, err)
	}
	return nil
}

// do performs exactly one request and returns the response body of a 2xx
// answer. payload, when non-nil, is sent as JSON.
func (c *Client) do(ctx context.Context, op, method, path string, payload any) (body []byte, err error) {
	start := time.Now()
	status := 0
	defer func() {
		logging.LogAPICall(op, method, path, status, time.Since(start), err)
	}()

	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, &TransportError{Kind: KindParse, Op: op, Message: "failed to encode request", Err: err}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, &TransportError{Kind: KindNetwork, Op: op, Message: "failed to create request", Err: err}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, classifyNetworkError(op, err)
	}
	defer func() { _ = resp.Body.Close() }()
	status = resp.StatusCode

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, newHTTPError(op, resp.StatusCode, string(snippet))
	}

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyNetworkError(op, err)
	}
	return body, nil
}
