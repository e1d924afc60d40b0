package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/sync/errgroup"

	config "github.com/xilidan/meeting-summary/config/summary"
	"github.com/xilidan/meeting-summary/pkg/logger"
	"github.com/xilidan/meeting-summary/services/summary/handler"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	cfg     *config.Config
	log     *slog.Logger
	handler *handler.Handler
}

func New(cfg *config.Config, h *handler.Handler, log *slog.Logger) *Server {
	log.Debug("creating summary server",
		slog.Int("port", cfg.Port),
		slog.String("static_dir", cfg.StaticDir))
	return &Server{
		cfg:     cfg,
		log:     log,
		handler: h,
	}
}

// Router builds the chi router with middleware, API routes and optional static files.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.Middleware(s.log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Link"},
		MaxAge:         300,
	}))

	s.handler.RegisterRoutes(r)

	if s.cfg.StaticDir != "" {
		s.log.Info("serving static files", slog.String("dir", s.cfg.StaticDir))
		r.Handle("/*", http.FileServer(http.Dir(s.cfg.StaticDir)))
	}
	return r
}

// Start serves until ctx is cancelled or SIGINT/SIGTERM arrives, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("summary service started", slog.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		s.log.Info("start shutdown")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Error("graceful shutdown failed", slog.String("error", err.Error()))
			srv.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		s.log.Info("server stopped gracefully")
		return nil
	})

	return g.Wait()
}
