package weatherapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/couchcryptid/forecast-download-wizard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(baseURL string) *Client {
	return NewClient(baseURL, 5*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testRequest() domain.DownloadRequest {
	return domain.DownloadRequest{
		City:      "서울특별시",
		District:  "중구",
		Town:      "명동",
		Variables: []string{"1시간기온", "풍속"},
		Start:     domain.DownloadStart,
		End:       domain.DownloadEnd,
	}
}

func TestClient_Fetch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/weather/csv", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "서울특별시", q.Get("city"))
		assert.Equal(t, "중구", q.Get("district"))
		assert.Equal(t, "명동", q.Get("town"))
		assert.Equal(t, []string{"1시간기온", "풍속"}, q["variable"])
		assert.Equal(t, "20240101", q.Get("start"))
		assert.Equal(t, "20240131", q.Get("end"))

		w.Header().Set("Content-Type", "application/zip")
		_, _ = w.Write([]byte("PK\x03\x04archive"))
	}))
	defer srv.Close()

	body, err := testClient(srv.URL).Fetch(context.Background(), testRequest())
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "PK\x03\x04archive", string(data))
}

func TestClient_Fetch_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"No files found"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Fetch(context.Background(), testRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
	assert.Contains(t, err.Error(), "No files found")
}

func TestClient_Fetch_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := testClient(url).Fetch(context.Background(), testRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weather csv request")
}

func TestClient_Fetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(srv.URL, 50*time.Millisecond, slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := c.Fetch(context.Background(), testRequest())
	require.Error(t, err)
}
