package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGzipMiddleware(t *testing.T) {
	tests := []struct {
		name               string
		acceptEncoding     string
		statusCode         int
		body               string
		expectedCompressed bool
	}{
		{
			name:               "Compress response when client supports gzip",
			acceptEncoding:     "gzip, deflate",
			statusCode:         http.StatusOK,
			body:               `[{"short":"gh","long":"https://github.com"}]`,
			expectedCompressed: true,
		},
		{
			name:               "Do not compress when client does not support gzip",
			acceptEncoding:     "",
			statusCode:         http.StatusOK,
			body:               `[]`,
			expectedCompressed: false,
		},
		{
			name:               "Compress error body with its status",
			acceptEncoding:     "gzip",
			statusCode:         http.StatusNotFound,
			body:               "not found\n",
			expectedCompressed: true,
		},
		{
			name:               "Response without body is not compressed",
			acceptEncoding:     "gzip",
			statusCode:         http.StatusNoContent,
			body:               "",
			expectedCompressed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/plain")
				w.WriteHeader(tt.statusCode)
				if tt.body != "" {
					_, _ = w.Write([]byte(tt.body))
				}
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			w := httptest.NewRecorder()

			GzipMiddleware(handler).ServeHTTP(w, req)

			assert.Equal(t, tt.statusCode, w.Code)
			assert.Equal(t, "text/plain", w.Header().Get("Content-Type"))

			if !tt.expectedCompressed {
				assert.Empty(t, w.Header().Get("Content-Encoding"))
				assert.Equal(t, tt.body, w.Body.String())
				return
			}

			assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
			gz, err := gzip.NewReader(w.Body)
			require.NoError(t, err)
			defer gz.Close()

			body, err := io.ReadAll(gz)
			require.NoError(t, err)
			assert.Equal(t, tt.body, string(body))
		})
	}
}

func TestGzipMiddleware_ImplicitStatus(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()

	GzipMiddleware(handler).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
	assert.Equal(t, "Accept-Encoding", w.Header().Get("Vary"))
}
