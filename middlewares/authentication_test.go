// SPDX-License-Identifier: GPL-3.0-only

package middlewares

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
)

func unauthorizedCode(t *testing.T, err error) {
	t.Helper()
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Errorf("Expected *echo.HTTPError, got %T: %v", err, err)
		return
	}
	if httpErr.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", httpErr.Code)
	}
}

func TestVerifyAuthMiddlewareDefaultsToSessionOnly(t *testing.T) {
	e := echo.New()
	handler := VerifyAuthMiddleware()(func(c echo.Context) error {
		t.Error("Handler should not run without valid credentials")
		return nil
	})

	// An API key credential must not be accepted when no methods were
	// named, since the default is session-only.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "ApiKey pk_12345678.whatever")
	rec := httptest.NewRecorder()

	unauthorizedCode(t, handler(e.NewContext(req, rec)))
}

func TestVerifyAuthMiddlewareConcurrentFirstRequests(t *testing.T) {
	e := echo.New()
	handler := VerifyAuthMiddleware()(func(c echo.Context) error {
		t.Error("Handler should not run without valid credentials")
		return nil
	})

	// The default method list is fixed when the middleware is built,
	// so simultaneous first requests share it safely.
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			unauthorizedCode(t, handler(e.NewContext(req, rec)))
		}()
	}
	wg.Wait()
}
