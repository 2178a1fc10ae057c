// Package server exposes strip generation over HTTP.
//
// Routes:
//
//	GET  /healthz                        liveness probe
//	POST /strips                         generate and archive a strip
//	GET  /strips/{id}                    archived record as JSON
//	GET  /strips/{id}/render.{format}    rendered artifact (svg, json, png, pdf)
//
// Errors are JSON objects {"code": ..., "message": ...}.
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/bingocards/pkg/errors"
	"github.com/matzehuels/bingocards/pkg/layout"
	"github.com/matzehuels/bingocards/pkg/pipeline"
	"github.com/matzehuels/bingocards/pkg/render"
	"github.com/matzehuels/bingocards/pkg/ticket"
)

// maxBodyBytes bounds POST /strips request bodies.
const maxBodyBytes = 1 << 20

// Server serves the HTTP API.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New builds the router. The runner must have an archive store, since
// every generated strip is addressed by its record ID.
func New(runner *pipeline.Runner, logger *log.Logger) (*Server, error) {
	if runner == nil || runner.Store == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "server requires a runner with an archive store")
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/strips", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Get("/{id}", s.handleGet)
		r.Get("/{id}/render.{format}", s.handleRender)
	})
	s.router = r
	return s, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}

type createResponse struct {
	ID         string          `json:"id"`
	Seed       uint64          `json:"seed,string"`
	Tickets    ticket.Strip    `json:"tickets"`
	Placements []layout.Rect   `json:"placements"`
	Page       layout.Geometry `json:"page"`
	Unplaced   int             `json:"unplaced,omitempty"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil && !stderrors.Is(err, io.EOF) {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	opts.Logger = s.requestLog(r)

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, createResponse{
		ID:         res.ID,
		Seed:       res.Seed,
		Tickets:    res.Strip,
		Placements: res.Page.Rects,
		Page:       res.Page.Geometry,
		Unplaced:   res.Unplaced(),
	})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateStripID(id); err != nil {
		s.writeError(w, err)
		return
	}
	rec, err := s.runner.Store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	format := chi.URLParam(r, "format")
	if err := errors.ValidateStripID(id); err != nil {
		s.writeError(w, err)
		return
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, err)
		return
	}

	opts := pipeline.Options{Formats: []string{format}, Logger: s.requestLog(r)}
	if v := r.URL.Query().Get("dpi"); v != "" {
		dpi, err := strconv.ParseFloat(v, 64)
		if err != nil {
			s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid dpi %q", v))
			return
		}
		if err := render.ValidateDPI(dpi); err != nil {
			s.writeError(w, err)
			return
		}
		opts.DPI = dpi
	}

	res, err := s.runner.Reprint(r.Context(), id, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// =============================================================================
// Responses
// =============================================================================

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusFor(code)
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "code", code, "err", err)
	}
	s.writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// requestLog returns the server logger tagged with the request ID.
func (s *Server) requestLog(r *http.Request) *log.Logger {
	return s.logger.With("request_id", middleware.GetReqID(r.Context()))
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
