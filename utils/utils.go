package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/kycflow/gateway/types"
)

// Response is the generic API response shape.
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// APIResponse writes the response with the given status code, status
// string ("success" or "error"), message and optional data payload.
func APIResponse(ctx *gin.Context, httpCode int, status string, message string, data interface{}) {
	ctx.JSON(httpCode, Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// ErrorBody is the error payload returned when the provider could not be
// reached or its response could not be relayed.
type ErrorBody struct {
	Error ErrorMessage `json:"error"`
}

type ErrorMessage struct {
	Message string `json:"message"`
}

// NewErrorBody builds a generic error payload.
func NewErrorBody(message string) ErrorBody {
	return ErrorBody{Error: ErrorMessage{Message: message}}
}

// GetErrorData extracts field-level validation errors from a binding error.
func GetErrorData(err error) []types.ErrorData {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []types.ErrorData{{Field: "payload", Message: err.Error()}}
	}

	data := make([]types.ErrorData, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		message := fmt.Sprintf("%s is required", fieldError.Field())
		if fieldError.Tag() != "required" {
			message = fmt.Sprintf("%s failed on the %s rule", fieldError.Field(), fieldError.Tag())
		}
		data = append(data, types.ErrorData{
			Field:   fieldError.Field(),
			Message: message,
		})
	}
	return data
}

// ParseJSONResponse reads and unmarshals an HTTP response body into a
// map. Returns an error for non-2xx status codes, with the decoded body
// still returned so callers can relay the provider's error payload.
func ParseJSONResponse(res *http.Response) (map[string]interface{}, error) {
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var data map[string]interface{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, fmt.Errorf("failed to decode response body: %w", err)
		}
	}

	if res.StatusCode >= 400 {
		return data, fmt.Errorf("API error: %d", res.StatusCode)
	}

	return data, nil
}
