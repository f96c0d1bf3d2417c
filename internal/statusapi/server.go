package statusapi

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config: конфигурация Server.
type Config struct {
	// Addr: адрес для прослушивания, например ":9090".
	Addr string

	Tracker  *Tracker
	Gatherer prometheus.Gatherer // по умолчанию prometheus.DefaultGatherer
	Logger   *slog.Logger
}

// Server: HTTP-сервер состояния.
type Server struct {
	tracker  *Tracker
	gatherer prometheus.Gatherer
	logger   *slog.Logger
	srv      *http.Server
}

// New создаёт Server.
func New(cfg Config) *Server {
	s := &Server{
		tracker:  cfg.Tracker,
		gatherer: cfg.Gatherer,
		logger:   cfg.Logger,
	}
	if s.tracker == nil {
		s.tracker = NewTracker()
	}
	if s.gatherer == nil {
		s.gatherer = prometheus.DefaultGatherer
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	s.srv = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Routes возвращает chi router со всеми маршрутами.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(Recovery(s.logger), Logging(s.logger))

	r.Get("/healthz", s.Health)
	r.Get("/status", s.Status)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	return r
}

// Health: проверка живости.
func (s *Server) Health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// Status отдаёт снимок текущего run'а.
func (s *Server) Status(w http.ResponseWriter, _ *http.Request) {
	snapshot, ok := s.tracker.Snapshot()
	if !ok {
		NotFound(w, "no run started yet")
		return
	}
	Success(w, snapshot)
}

// Start начинает слушать адрес в фоне. Ошибка привязки возвращается сразу.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}

	s.logger.Info("status server listening", "addr", ln.Addr().String())

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("status server error", "error", err)
		}
	}()
	return nil
}

// Shutdown останавливает сервер.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
