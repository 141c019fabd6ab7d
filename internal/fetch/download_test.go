package fetch

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMaxDownloadBytes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int64
	}{
		{name: "unset", raw: "", want: defaultMaxDownloadBytes},
		{name: "valid", raw: "1024", want: 1024},
		{name: "padded", raw: " 2048 ", want: 2048},
		{name: "invalid", raw: "lots", want: defaultMaxDownloadBytes},
		{name: "negative", raw: "-1", want: defaultMaxDownloadBytes},
		{name: "zero", raw: "0", want: defaultMaxDownloadBytes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := maxDownloadBytes(func(key string) string {
				require.Equal(t, EnvMaxDownloadBytes, key)
				return tt.raw
			})
			require.Equal(t, tt.want, got)
		})
	}
}

func TestHumanizeBytes(t *testing.T) {
	require.Equal(t, "512 B", humanizeBytes(512))
	require.Equal(t, "1.0 KiB", humanizeBytes(1024))
	require.Equal(t, "24.5 MiB", humanizeBytes(24*1024*1024+512*1024))
}

func TestDownloadToFile_SendsUserAgent(t *testing.T) {
	var method, userAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		userAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("payload"))
	}))
	defer server.Close()

	var buf bytes.Buffer
	require.NoError(t, downloadToFile(context.Background(), server.URL, &buf, 1024, nil))
	require.Equal(t, "payload", buf.String())
	require.Equal(t, http.MethodGet, method)
	require.Equal(t, "ucrtfix", userAgent)
}

func TestDownloadToFile_StreamedBodyOverLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Flushing before writing forces chunked encoding, so no Content-Length is known up front.
		w.(http.Flusher).Flush()
		_, _ = w.Write([]byte("0123456789"))
	}))
	defer server.Close()

	var buf bytes.Buffer
	err := downloadToFile(context.Background(), server.URL, &buf, 5, nil)
	require.ErrorContains(t, err, "response too large (6 bytes > limit 5 bytes)")
}

func TestDownloadToFile_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	err := downloadToFile(context.Background(), url, &bytes.Buffer{}, 1024, nil)
	require.ErrorContains(t, err, "download "+url)
}

func TestDownloadToFile_BadURL(t *testing.T) {
	err := downloadToFile(context.Background(), "://bad", &bytes.Buffer{}, 1024, nil)
	require.ErrorContains(t, err, "create request for ://bad")
}
