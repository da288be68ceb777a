package gateway

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"sealgate/internal/domain"
	"sealgate/internal/services/exchange"
)

// Server is the HTTP surface over the stateless exchange service.
type Server struct {
	exchanger *exchange.Service
	publicPEM string
	log       *logrus.Logger
}

// NewServer builds a Server. publicPEM is served to clients for session
// bootstrap; log may be nil for the standard logger.
func NewServer(exchanger *exchange.Service, publicPEM string, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{exchanger: exchanger, publicPEM: publicPEM, log: log}
}

// Router assembles the chi router with the full middleware stack.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type", "X-Request-Id"},
	}))

	r.Post("/v1/exchange", s.handleExchange)
	r.Get("/v1/pubkey", s.handlePubkey)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func (s *Server) handleExchange(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer r.Body.Close()

	var reqEnv domain.RequestEnvelope
	if err := json.NewDecoder(r.Body).Decode(&reqEnv); err != nil {
		s.fail(w, r, http.StatusBadRequest, "bad request envelope", err)
		return
	}
	p, err := domain.DecodePacket(reqEnv.Payload)
	if err != nil {
		s.fail(w, r, statusFor(err), publicError(err), err)
		return
	}

	out, err := s.exchanger.Handle(reqEnv.WrappedKeyB64, p)
	if err != nil {
		s.fail(w, r, statusFor(err), publicError(err), err)
		return
	}
	exchangeDuration.Observe(time.Since(start).Seconds())
	exchangesTotal.WithLabelValues("ok").Inc()

	payload, err := out.Encode()
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, "encoding response", err)
		return
	}
	writeJSON(w, http.StatusOK, domain.ResponseEnvelope{OK: true, Payload: payload})
}

func (s *Server) handlePubkey(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/x-pem-file")
	_, _ = w.Write([]byte(s.publicPEM))
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, msg string, err error) {
	exchangesTotal.WithLabelValues("error").Inc()
	s.log.WithFields(logrus.Fields{
		"request_id": chimiddleware.GetReqID(r.Context()),
		"status":     status,
	}).WithError(err).Warn(msg)
	writeJSON(w, status, domain.ResponseEnvelope{OK: false, Error: msg})
}

// statusFor maps taxonomy errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnsupportedVersion):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUnwrap), errors.Is(err, domain.ErrTamper):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrKeyFormat):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// publicError reduces an internal error to the taxonomy message the wire may
// carry. Anything outside the taxonomy stays inside.
func publicError(err error) string {
	for _, sentinel := range []error{
		domain.ErrUnsupportedVersion,
		domain.ErrUnwrap,
		domain.ErrTamper,
		domain.ErrKeyFormat,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "exchange failed"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
