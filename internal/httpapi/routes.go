package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/oisee/gridbridge/internal/completion"
	"github.com/oisee/gridbridge/pkg/grid"
)

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(hlog.NewHandler(s.logger))
	r.Use(requestIDLogger)
	r.Use(hlog.AccessHandler(accessLog))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Get("/bases", endpoint(http.StatusOK, noRequest, func(ctx context.Context, _ struct{}) ([]grid.Base, error) {
		return s.grid.ListBases(ctx)
	}))

	r.Route("/bases/{baseId}", func(r chi.Router) {
		r.Get("/tables", endpoint(http.StatusOK, decodeListTables, s.grid.ListTables))

		r.Route("/tables/{table}", func(r chi.Router) {
			r.Get("/schema", endpoint(http.StatusOK, decodeTableSchema, s.grid.GetTableSchema))
			r.Get("/records", endpoint(http.StatusOK, decodeListRecords, s.grid.ListRecords))
			r.Post("/records", endpoint(http.StatusCreated, decodeCreateRecord, s.grid.CreateRecord))
			r.Get("/records/{recordId}", endpoint(http.StatusOK, decodeGetRecord, s.grid.GetRecord))
			r.Patch("/records/{recordId}", endpoint(http.StatusOK, decodeUpdateRecord, s.grid.UpdateRecord))
			r.Delete("/records/{recordId}", endpoint(http.StatusOK, decodeDeleteRecord, s.grid.DeleteRecord))
			r.Post("/search", endpoint(http.StatusOK, decodeSearch, s.grid.SearchRecords))
		})
	})

	if s.completer != nil {
		r.Post("/completions", endpoint(http.StatusOK, decodeBody[completion.Request], s.completer.Complete))
	} else {
		s.logger.Warn().Msg("no completion API key configured, /completions is disabled")
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// requestIDLogger tags the request logger with chi's request id.
func requestIDLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := middleware.GetReqID(r.Context()); id != "" {
			zerolog.Ctx(r.Context()).UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("req_id", id)
			})
		}
		next.ServeHTTP(w, r)
	})
}

func accessLog(r *http.Request, status, size int, took time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("took", took).
		Msg("request")
}
