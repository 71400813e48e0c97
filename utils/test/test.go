package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

// PerformRequest performs a request against the router and records the
// response. A non-nil body is JSON-encoded.
func PerformRequest(t *testing.T, method, path string, body interface{}, headers map[string]string, router *gin.Engine) (*httptest.ResponseRecorder, error) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequest(method, path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res, nil
}
