package server

import (
	"context"
	goerrors "errors"
	"log/slog"
	"net/http"
	"time"

	"support-chat/auth"
	"support-chat/contract"
	"support-chat/observability"
	"support-chat/services"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Version is reported by /health and /api.
const Version = "2.0.0"

type Options struct {
	Address         string
	CorsOrigins     []string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	TokenDuration   time.Duration
}

// Dependencies are the services the REST surface talks to.
// Socket is optional and mounted on GET /socket when set.
type Dependencies struct {
	Messages services.IMessageService
	Users    services.IUserService
	Auth     services.IAuthService
	Chat     services.IChatService
	Relay    contract.IRelay
	Issuer   auth.TokenIssuer
	Monitor  *observability.Monitor
	Socket   http.Handler
}

type HTTPServer struct {
	options Options
	handler http.Handler
	log     *slog.Logger
}

func New(options Options, deps Dependencies, log *slog.Logger) *HTTPServer {
	h := &handlers{deps: deps, options: options, log: log}
	router := mux.NewRouter()
	h.register(router)

	var handler http.Handler = router
	handler = auth.Authenticate(deps.Issuer, log)(handler)
	handler = bodyLimitMiddleware(MaxBodyBytes)(handler)
	handler = corsMiddleware(options.CorsOrigins)(handler)
	handler = recoveryMiddleware(log)(handler)
	handler = loggingMiddleware(router, log)(handler)

	return &HTTPServer{options: options, handler: handler, log: log}
}

func (s *HTTPServer) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then drains within ShutdownTimeout.
func (s *HTTPServer) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:           s.options.Address,
		Handler:        s.handler,
		ReadTimeout:    s.options.ReadTimeout,
		WriteTimeout:   s.options.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("HTTP server listening", "address", s.options.Address)
		if err := server.ListenAndServe(); err != nil && !goerrors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		s.log.Info("Shutting down HTTP server")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.options.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func (h *handlers) register(router *mux.Router) {
	router.HandleFunc("/send", h.sendMessage).Methods(http.MethodPost)

	messages := router.PathPrefix("/messages").Subrouter()
	messages.HandleFunc("", h.getAllMessages).Methods(http.MethodGet)
	messages.HandleFunc("/send", h.sendMessage).Methods(http.MethodPost)
	messages.HandleFunc("/{userKey}", h.getMessages).Methods(http.MethodGet)
	messages.HandleFunc("/{userKey}/summary", h.getConversationSummary).Methods(http.MethodGet)
	messages.HandleFunc("/{messageId}", h.deleteMessage).Methods(http.MethodDelete)

	router.HandleFunc("/validate-email", h.validateEmail).Methods(http.MethodPost)
	users := router.PathPrefix("/users").Subrouter()
	users.HandleFunc("", h.getUsers).Methods(http.MethodGet)
	users.HandleFunc("/conversations", h.getUsersWithConversationInfo).Methods(http.MethodGet)
	users.HandleFunc("/connected", h.getConnectedUsers).Methods(http.MethodGet)
	users.HandleFunc("/validate-email", h.validateEmail).Methods(http.MethodPost)
	users.HandleFunc("/{userKey}/info", h.getUserInfo).Methods(http.MethodGet)
	users.HandleFunc("/{userKey}/exists", h.userExists).Methods(http.MethodGet)

	router.HandleFunc("/login", h.login).Methods(http.MethodPost)
	router.HandleFunc("/auth/login", h.login).Methods(http.MethodPost)
	router.HandleFunc("/auth/logout", h.logout).Methods(http.MethodPost)
	router.HandleFunc("/auth/check", h.checkAuth).Methods(http.MethodGet)

	router.HandleFunc("/status", h.status).Methods(http.MethodGet)
	router.HandleFunc("/health", h.health).Methods(http.MethodGet)
	router.HandleFunc("/api", h.apiInfo).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	if h.deps.Socket != nil {
		router.Handle("/socket", h.deps.Socket).Methods(http.MethodGet)
	}

	router.NotFoundHandler = http.HandlerFunc(h.notFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(h.notFound)
}
