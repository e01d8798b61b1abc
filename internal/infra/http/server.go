package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	srv *http.Server
}

// New: /health всегда, /metrics — если включены метрики. Каталог можно
// скачать по /catalog.xlsx, если передан catalogXLSX.
func New(addr string, exposeMetrics bool, catalogXLSX func() ([]byte, error)) *Server {
	return &Server{srv: &http.Server{
		Addr:              addr,
		Handler:           newMux(exposeMetrics, catalogXLSX),
		ReadHeaderTimeout: 5 * time.Second,
	}}
}

func newMux(exposeMetrics bool, catalogXLSX func() ([]byte, error)) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	if exposeMetrics {
		mux.Handle("/metrics", promhttp.Handler())
	}

	if catalogXLSX != nil {
		mux.HandleFunc("/catalog.xlsx", func(w http.ResponseWriter, _ *http.Request) {
			data, err := catalogXLSX()
			if err != nil {
				http.Error(w, "failed to build catalog", http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			w.Header().Set("Content-Disposition", `attachment; filename="catalog.xlsx"`)
			_, _ = w.Write(data)
		})
	}

	return mux
}

// Start блокирует до остановки; штатная остановка не считается ошибкой.
func (s *Server) Start() error {
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
