package utils

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestParseJSONResponse(t *testing.T) {
	t.Run("decodes a success body", func(t *testing.T) {
		data, err := ParseJSONResponse(jsonResponse(200, `{"applicant_id": "a_1"}`))
		assert.NoError(t, err)
		assert.Equal(t, "a_1", data["applicant_id"])
	})

	t.Run("returns the decoded body alongside the error status", func(t *testing.T) {
		data, err := ParseJSONResponse(jsonResponse(404, `{"error": {"message": "not found"}}`))
		assert.Error(t, err)
		errBody := data["error"].(map[string]interface{})
		assert.Equal(t, "not found", errBody["message"])
	})

	t.Run("tolerates an empty body", func(t *testing.T) {
		data, err := ParseJSONResponse(jsonResponse(204, ""))
		assert.NoError(t, err)
		assert.Nil(t, data)
	})
}

func TestGetErrorData(t *testing.T) {
	type payload struct {
		Mode string `json:"mode" binding:"required"`
	}

	t.Run("maps validation failures to fields", func(t *testing.T) {
		var p payload
		ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
		ctx.Request, _ = http.NewRequest("POST", "/", strings.NewReader(`{}`))
		ctx.Request.Header.Set("Content-Type", "application/json")

		err := ctx.ShouldBindJSON(&p)
		assert.Error(t, err)

		data := GetErrorData(err)
		assert.Len(t, data, 1)
		assert.Equal(t, "Mode", data[0].Field)
	})

	t.Run("wraps non-validation errors", func(t *testing.T) {
		data := GetErrorData(assert.AnError)
		assert.Len(t, data, 1)
		assert.Equal(t, "payload", data[0].Field)
	})
}
