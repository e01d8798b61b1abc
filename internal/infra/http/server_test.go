package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	newMux(false, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "OK", rec.Body.String())
}

func TestMetricsToggle(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	newMux(false, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	newMux(true, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCatalogDownload(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	mux := newMux(false, func() ([]byte, error) { return []byte("xlsx"), nil })
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/catalog.xlsx", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "xlsx", rec.Body.String())
	require.Contains(t, rec.Header().Get("Content-Disposition"), "catalog.xlsx")

	rec = httptest.NewRecorder()
	mux = newMux(false, func() ([]byte, error) { return nil, errors.New("boom") })
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/catalog.xlsx", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
