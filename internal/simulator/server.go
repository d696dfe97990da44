package simulator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dial-a-charmer/charmer/internal/logging"
	"github.com/dial-a-charmer/charmer/internal/phonebook"
	"github.com/dial-a-charmer/charmer/internal/store"
)

// PathEvents is the websocket feed of handled API requests.
const PathEvents = "/sim/events"

// maxBody caps request bodies, like the firmware's receive buffer.
const maxBody = 16 << 10

// Server serves the device HTTP API from an in-memory Device and pushes
// every handled request to the event feed.
type Server struct {
	device *Device
	hub    *Hub
	mux    *http.ServeMux

	mu       sync.Mutex
	failures map[string]int
}

// New creates a simulator seeded from opts.
func New(opts Options) *Server {
	s := &Server{
		device:   NewDevice(opts),
		hub:      NewHub(),
		failures: make(map[string]int),
	}

	api := http.NewServeMux()
	api.HandleFunc("GET "+store.PathStatus, s.handleStatus)
	api.HandleFunc("GET "+store.PathSettings, s.handleGetSettings)
	api.HandleFunc("POST "+store.PathSettings, s.handlePostSettings)
	api.HandleFunc("GET "+store.PathPhonebook, s.handleGetPhonebook)
	api.HandleFunc("POST "+store.PathPhonebook, s.handlePostPhonebook)
	api.HandleFunc("GET "+store.PathWifiScan, s.handleScan)
	api.HandleFunc("GET "+store.PathRingtones, s.handleRingtones)
	api.HandleFunc("GET "+store.PathPreview, s.handlePreview)
	api.HandleFunc("GET "+store.PathLogs, s.handleLogs)
	api.HandleFunc("GET "+store.PathTime, s.handleTime)

	// The event feed is mounted outside the recording middleware, which
	// cannot hijack connections.
	s.mux = http.NewServeMux()
	s.mux.Handle(PathEvents, s.hub)
	s.mux.Handle("/", s.record(s.injectFailures(api)))
	return s
}

// Device returns the simulated device state.
func (s *Server) Device() *Device {
	return s.device
}

// Hub returns the event feed.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Fail makes every request to path answer status until cleared with 0.
func (s *Server) Fail(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.failures, path)
		return
	}
	s.failures[path] = status
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully. ready, when non-nil, receives the bound address.
func (s *Server) ListenAndServe(ctx context.Context, addr string, ready func(net.Addr)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	if ready != nil {
		ready(ln.Addr())
	}
	logging.Info("Simulator listening", zap.String("addr", ln.Addr().String()), zap.String("mode", s.device.Mode()))

	srv := &http.Server{Handler: s, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logging.Info("Shutting down simulator")
	s.hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

// statusRecorder remembers the status written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}

		logging.LogHTTPRequest(r.RemoteAddr, r.Method, r.URL.Path, rec.status)
		s.hub.Publish(Event{
			Time:     start,
			Method:   r.Method,
			Path:     r.URL.Path,
			Query:    r.URL.RawQuery,
			Status:   rec.status,
			Duration: time.Since(start),
		})
	})
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		status, failing := s.failures[r.URL.Path]
		s.mu.Unlock()
		if failing {
			http.Error(w, http.StatusText(status), status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
		return nil, false
	}
	return body, true
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.device.Status())
}

func (s *Server) handleGetSettings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.device.Settings())
}

func (s *Server) handlePostSettings(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	var patch store.SettingsPatch
	if err := json.Unmarshal(body, &patch); err != nil {
		http.Error(w, "invalid JSON", http.StatusInternalServerError)
		return
	}
	s.device.ApplySettings(patch)
	writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) handleGetPhonebook(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.device.Phonebook())
}

func (s *Server) handlePostPhonebook(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	book := phonebook.NewBook()
	if err := json.Unmarshal(body, book); err != nil {
		http.Error(w, "invalid phonebook", http.StatusBadRequest)
		return
	}
	s.device.ReplacePhonebook(book)
	writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) handleScan(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.device.Scan())
}

func (s *Server) handleRingtones(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.device.Ringtones())
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	file := r.URL.Query().Get("file")
	if err := store.ValidatePreviewFile(file); err != nil {
		http.NotFound(w, r)
		return
	}
	s.device.Preview(file)
	_, _ = io.WriteString(w, "OK")
}

func (s *Server) handleLogs(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.device.Logs())
}

func (s *Server) handleTime(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.device.Time())
}
