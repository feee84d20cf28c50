package requestid

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cadastro/pkg/requestcontext"
)

func captureID(t *testing.T, incoming string) (seen string, echoed string) {
	t.Helper()
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestcontext.RequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if incoming != "" {
		req.Header.Set(Header, incoming)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return seen, w.Header().Get(Header)
}

func TestMiddleware(t *testing.T) {
	t.Run("generates a uuid when absent", func(t *testing.T) {
		seen, echoed := captureID(t, "")
		_, err := uuid.Parse(seen)
		require.NoError(t, err)
		assert.Equal(t, seen, echoed)
	})

	t.Run("keeps a caller supplied id", func(t *testing.T) {
		seen, echoed := captureID(t, "trace-abc")
		assert.Equal(t, "trace-abc", seen)
		assert.Equal(t, "trace-abc", echoed)
	})

	t.Run("replaces an oversized id", func(t *testing.T) {
		seen, _ := captureID(t, strings.Repeat("x", maxLength+1))
		_, err := uuid.Parse(seen)
		assert.NoError(t, err)
	})
}
