package web

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/log"
	"github.com/skip2/go-qrcode"
)

const (
	timeout         = 10 * time.Second
	shutdownTimeout = 5 * time.Second
	qrSize          = 320
)

var (
	ErrNilConfig    = errors.New("config cannot be nil")
	ErrNilWebsocket = errors.New("websocket handler cannot be nil")
	ErrInvalidPort  = errors.New("port must be between 1 and 65535")
)

// ConnectionCounter reports open websocket connections
type ConnectionCounter interface {
	Connected() int64
}

// WriteStats reports persistence health
type WriteStats interface {
	Dropped() int64
	Failures() int64
}

// Config holds configuration for the HTTP server
type Config struct {
	Bind string
	Port int

	// PublicURL is the externally visible base URL used in join links.
	// When empty the request's scheme and host are used.
	PublicURL string

	Version string

	// Websocket serves /ws
	Websocket httprouter.Handle

	// Optional health sources
	Connections ConnectionCounter
	Writes      WriteStats
}

// Server is the HTTP boundary: websocket upgrade, health and join QR codes
type Server struct {
	cfg    *Config
	router *httprouter.Router
}

type healthResponse struct {
	Status        string `json:"status"`
	Connections   int64  `json:"connections"`
	DroppedWrites int64  `json:"droppedWrites"`
	FailedWrites  int64  `json:"failedWrites"`
}

// New creates a server and registers its routes
func New(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Websocket == nil {
		return nil, ErrNilWebsocket
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, ErrInvalidPort
	}

	s := &Server{
		cfg:    cfg,
		router: httprouter.New(),
	}

	s.router.PanicHandler = func(w http.ResponseWriter, r *http.Request, i any) {
		log.Error().Interface("panic", i).Str("path", r.URL.Path).Msg("web: handler panicked")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}

	s.router.GET("/ws", cfg.Websocket)
	s.router.GET("/healthz", s.serveHealth)
	s.router.GET("/version", s.serveVersion)
	s.router.GET("/p/:name/qr", s.serveJoinQR)

	return s, nil
}

// Handler returns the routed handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is done, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              net.JoinHostPort(s.cfg.Bind, strconv.Itoa(s.cfg.Port)),
		Handler:           s.router,
		IdleTimeout:       10 * time.Minute,
		ReadHeaderTimeout: timeout,
	}

	errs := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("web: listening")
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func securityHeaders(w http.ResponseWriter) {
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
	w.Header().Set("X-Content-Type-Options", "nosniff")
}

func realIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" && net.ParseIP(ip) != nil {
		host = ip
	}
	return host
}

func (s *Server) serveHealth(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	resp := healthResponse{Status: "ok"}
	if s.cfg.Connections != nil {
		resp.Connections = s.cfg.Connections.Connected()
	}
	if s.cfg.Writes != nil {
		resp.DroppedWrites = s.cfg.Writes.Dropped()
		resp.FailedWrites = s.cfg.Writes.Failures()
	}

	w.Header().Set("Content-Type", "application/json")
	securityHeaders(w)
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Debug().Err(err).Msg("web: failed to write health response")
	}
}

func (s *Server) serveVersion(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	securityHeaders(w)
	w.WriteHeader(http.StatusOK)

	_, _ = w.Write([]byte("quizhost v" + s.cfg.Version + "\n"))
}

// serveJoinQR renders the join link of one player as a PNG
func (s *Server) serveJoinQR(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	name := strings.TrimSpace(p.ByName("name"))
	if name == "" {
		http.Error(w, "missing player name", http.StatusBadRequest)
		return
	}

	link := s.joinURL(r, name)

	png, err := qrcode.Encode(link, qrcode.Medium, qrSize)
	if err != nil {
		log.Warn().Err(err).Str("player", name).Msg("web: qr generation failed")
		http.Error(w, "qr generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	securityHeaders(w)
	_, _ = w.Write(png)

	log.Debug().Str("player", name).Str("client", realIP(r)).Msg("web: served join qr")
}

// joinURL is <base>/p/<name>
func (s *Server) joinURL(r *http.Request, name string) string {
	base := strings.TrimSuffix(s.cfg.PublicURL, "/")
	if base == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			scheme = proto
		}
		base = scheme + "://" + r.Host
	}

	return base + "/p/" + url.PathEscape(name)
}
