package testutils

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/shoplane-labs/catalog-discovery/internal/api/middleware"
)

// NewTestRequest builds a request carrying path parameters and a discarding
// request-scoped logger, mirroring what the logging middleware provides.
func NewTestRequest(method, target string, body io.Reader, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := middleware.WithLogger(req.Context(), logger)

	return req.WithContext(ctx)
}
