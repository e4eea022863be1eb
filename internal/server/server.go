package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter returns the HTTP handler for site. An empty assetsDir disables
// the /assets/ route.
func NewRouter(site *Site, assetsDir string, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	page := func(w http.ResponseWriter, _ *http.Request) {
		p := site.Current()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Last-Modified", p.RenderedAt.Format(http.TimeFormat))
		_, _ = w.Write(p.HTML)
	}
	r.Get("/", page)
	r.Get("/index.html", page)

	if assetsDir != "" {
		fileServer := http.FileServer(http.Dir(assetsDir))
		r.Handle("/assets/*", http.StripPrefix("/assets", fileServer))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/portfolio", func(w http.ResponseWriter, _ *http.Request) {
			respondJSON(w, logger, http.StatusOK, site.Current().Portfolio)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		p := site.Current()
		respondJSON(w, logger, http.StatusOK, map[string]any{
			"status":     "ok",
			"entries":    p.Result.Total(),
			"skipped":    p.Result.Skipped,
			"renderedAt": p.RenderedAt,
			"reloads":    site.Reloads(),
		})
	})

	return r
}

// ListenAndServe serves handler on addr until ctx is cancelled, then shuts
// down gracefully within shutdownTimeout.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, shutdownTimeout time.Duration, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

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

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Debug("request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration", time.Since(start),
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

func respondJSON(w http.ResponseWriter, logger *slog.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Warn("failed to encode JSON response", "error", err)
	}
}
