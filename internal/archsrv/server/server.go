// Package server assembles the HTTP surface of the service: middleware, CORS, the help
// endpoint, preflight routes and the architecture handlers.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/tansive/archsrv/internal/archsrv/architecture"
	"github.com/tansive/archsrv/internal/archsrv/config"
	"github.com/tansive/archsrv/internal/archsrv/db/dbmanager"
	"github.com/tansive/archsrv/internal/common/httpx"
	commonmiddleware "github.com/tansive/archsrv/internal/common/middleware"
)

const helpText = "Use the following endpoints to work with the service API: /init /create /update /delete /architectures"

const (
	corsAllowOrigin  = "*"
	corsAllowMethods = "GET, POST, OPTIONS"
	corsAllowHeaders = "api,Keep-Alive,User-Agent,Content-Type"
)

type ArchServer struct {
	Router *chi.Mux
	cfg    *config.ConfigParam
	pool   dbmanager.Pool
}

func CreateNewServer(cfg *config.ConfigParam, pool dbmanager.Pool) (*ArchServer, error) {
	if cfg == nil {
		return nil, httpx.ErrApplicationError("server configuration not provided")
	}
	s := &ArchServer{
		Router: chi.NewRouter(),
		cfg:    cfg,
		pool:   pool,
	}
	return s, nil
}

func (s *ArchServer) MountHandlers() {
	s.Router.Use(commonmiddleware.RequestLogger)
	s.Router.Use(commonmiddleware.PanicHandler)
	if s.cfg.HandleCORS {
		s.Router.Use(s.HandleCORS)
	}
	s.Router.NotFound(notFound)
	s.Router.MethodNotAllowed(notFound)
	s.mountResourceHandlers(s.Router)

	walkFunc := func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
		log.Trace().Str("method", method).Str("route", route).Msg("route")
		return nil
	}
	if err := chi.Walk(s.Router, walkFunc); err != nil {
		log.Error().Err(err).Msg("unable to walk routes")
	}
}

func (s *ArchServer) mountResourceHandlers(r chi.Router) {
	r.Method(http.MethodGet, "/", httpx.WrapHttpRsp(s.getHelp))
	for _, path := range architecture.Paths {
		r.Options(path, preflight)
	}
	architecture.Router(r, architecture.NewHandlers(s.pool, s.cfg.MaxRequestBodySize))
}

// Serve runs the server until ctx is canceled, then shuts it down, waiting up to
// shutdownTimeout for in-flight requests.
func (s *ArchServer) Serve(ctx context.Context, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:    s.cfg.Address(),
		Handler: s.Router,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("address", srv.Addr).Msg("archsrv listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down archsrv")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *ArchServer) getHelp(r *http.Request) (*httpx.Response, error) {
	return &httpx.Response{
		StatusCode:  http.StatusOK,
		Response:    helpText,
		ContentType: "text/plain",
	}, nil
}

func preflight(w http.ResponseWriter, r *http.Request) {
	log.Ctx(r.Context()).Debug().Msg("OPTIONS request")
	w.WriteHeader(http.StatusOK)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
}

// HandleCORS sets the CORS headers on every response, including errors and 404s.
func (s *ArchServer) HandleCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", corsAllowOrigin)
		w.Header().Set("Access-Control-Allow-Methods", corsAllowMethods)
		w.Header().Set("Access-Control-Allow-Headers", corsAllowHeaders)
		next.ServeHTTP(w, r)
	})
}
