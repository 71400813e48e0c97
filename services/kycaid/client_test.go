package kycaid

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"

	"github.com/kycflow/gateway/config"
	"github.com/kycflow/gateway/types"
)

func newTestClient() *Client {
	return NewClient(NewModeStore(&config.KycaidConfiguration{
		DefaultMode: types.ModeTest,
		TestAPIKey:  "test-key",
		ProdAPIKey:  "prod-key",
	}))
}

func TestClient(t *testing.T) {
	// activate httpmock
	httpmock.Activate()
	defer httpmock.Deactivate()

	client := newTestClient()
	baseURL := config.KycaidConfig().BaseURL
	ctx := context.Background()

	t.Run("create applicant relays the provider body", func(t *testing.T) {
		var gotAuth string
		httpmock.RegisterResponder("POST", baseURL+"/applicants",
			func(r *http.Request) (*http.Response, error) {
				gotAuth = r.Header.Get("Authorization")
				return httpmock.NewJsonResponse(201, map[string]interface{}{
					"applicant_id": "a_1",
				})
			},
		)

		data, err := client.CreateApplicant(ctx, types.ApplicantPayload{
			Type:      "PERSON",
			FirstName: "John",
			LastName:  "Smith",
		})
		assert.NoError(t, err)
		assert.Equal(t, "a_1", data["applicant_id"])
		assert.Equal(t, "Token test-key", gotAuth)
	})

	t.Run("mode switch changes the outgoing credential", func(t *testing.T) {
		var gotAuth string
		httpmock.RegisterResponder("GET", baseURL+"/countries",
			func(r *http.Request) (*http.Response, error) {
				gotAuth = r.Header.Get("Authorization")
				return httpmock.NewJsonResponse(200, map[string]interface{}{"countries": []string{}})
			},
		)

		assert.NoError(t, client.Modes().SetMode(types.ModeProd))
		_, err := client.ListCountries(ctx)
		assert.NoError(t, err)
		assert.Equal(t, "Token prod-key", gotAuth)

		assert.NoError(t, client.Modes().SetMode(types.ModeTest))
	})

	t.Run("provider rejection keeps its status and body", func(t *testing.T) {
		httpmock.RegisterResponder("GET", baseURL+"/applicants/missing",
			httpmock.NewJsonResponderOrPanic(404, map[string]interface{}{
				"error": map[string]interface{}{"message": "applicant not found"},
			}),
		)

		_, err := client.GetApplicant(ctx, "missing")

		var apiErr *APIError
		assert.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 404, apiErr.StatusCode)
		errBody := apiErr.Body["error"].(map[string]interface{})
		assert.Equal(t, "applicant not found", errBody["message"])
	})

	t.Run("pending verification snapshot is not terminal", func(t *testing.T) {
		httpmock.RegisterResponder("GET", baseURL+"/verifications/v_1",
			httpmock.NewJsonResponderOrPanic(200, map[string]interface{}{
				"verification_id": "v_1",
				"status":          "pending",
				"verified":        nil,
			}),
		)

		snapshot, err := client.GetVerificationSnapshot(ctx, "v_1")
		assert.NoError(t, err)
		assert.False(t, snapshot.Terminal())
		assert.Nil(t, snapshot.Verified)
	})

	t.Run("decided verification snapshot is terminal", func(t *testing.T) {
		httpmock.RegisterResponder("GET", baseURL+"/verifications/v_2",
			httpmock.NewJsonResponderOrPanic(200, map[string]interface{}{
				"verification_id": "v_2",
				"status":          "completed",
				"verified":        false,
				"decline_reasons": []string{"document unreadable"},
			}),
		)

		snapshot, err := client.GetVerificationSnapshot(ctx, "v_2")
		assert.NoError(t, err)
		assert.True(t, snapshot.Terminal())
		assert.NotNil(t, snapshot.Verified)
		assert.False(t, *snapshot.Verified)
		assert.Equal(t, []string{"document unreadable"}, snapshot.DeclineReasons)
	})

	t.Run("transport failure maps to a provider unreachable error", func(t *testing.T) {
		httpmock.RegisterResponder("GET", baseURL+"/verifications/v_down",
			httpmock.NewErrorResponder(assert.AnError),
		)

		_, err := client.GetVerification(ctx, "v_down")

		var unreachable ErrProviderUnreachable
		assert.ErrorAs(t, err, &unreachable)
	})
}
