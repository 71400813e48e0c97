package wizard

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	svc "github.com/kycflow/gateway/services/wizard"
	"github.com/kycflow/gateway/utils/test"
)

func newTestRouter() *gin.Engine {
	ctrl := NewWizardController(svc.NewStore())

	router := gin.New()
	sessions := router.Group("/wizard/sessions")
	sessions.POST("", ctrl.CreateSession)
	sessions.GET("/:id", ctrl.GetSession)
	sessions.POST("/:id/advance", ctrl.Advance)
	sessions.POST("/:id/back", ctrl.Back)
	sessions.POST("/:id/skip", ctrl.Skip)
	sessions.POST("/:id/reset", ctrl.Reset)
	return router
}

func TestWizardSessions(t *testing.T) {
	router := newTestRouter()

	createSession := func(t *testing.T) svc.Session {
		t.Helper()
		res, err := test.PerformRequest(t, "POST", "/wizard/sessions", nil, nil, router)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, res.Code)

		var session svc.Session
		assert.NoError(t, json.Unmarshal(res.Body.Bytes(), &session))
		return session
	}

	t.Run("new sessions start at upload-id", func(t *testing.T) {
		session := createSession(t)
		assert.Equal(t, svc.StepUploadID, session.Step)

		res, err := test.PerformRequest(t, "GET", fmt.Sprintf("/wizard/sessions/%s", session.ID), nil, nil, router)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.Code)
	})

	t.Run("unknown session id", func(t *testing.T) {
		res, err := test.PerformRequest(t, "GET", "/wizard/sessions/nope", nil, nil, router)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, res.Code)
	})

	t.Run("advancing without the required context conflicts", func(t *testing.T) {
		session := createSession(t)

		res, err := test.PerformRequest(t, "POST",
			fmt.Sprintf("/wizard/sessions/%s/advance", session.ID),
			map[string]interface{}{}, nil, router)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusConflict, res.Code)
	})

	t.Run("full run through the wizard", func(t *testing.T) {
		session := createSession(t)
		advance := func(t *testing.T, body interface{}) svc.Session {
			t.Helper()
			res, err := test.PerformRequest(t, "POST",
				fmt.Sprintf("/wizard/sessions/%s/advance", session.ID), body, nil, router)
			assert.NoError(t, err)
			assert.Equal(t, http.StatusOK, res.Code)

			var current svc.Session
			assert.NoError(t, json.Unmarshal(res.Body.Bytes(), &current))
			return current
		}

		current := advance(t, svc.ContextUpdate{IDFileID: "file_1", DocumentType: "DRIVERS_LICENSE"})
		assert.Equal(t, svc.StepCaptureSelfie, current.Step)

		current = advance(t, svc.ContextUpdate{SelfieFileID: "file_2"})
		assert.Equal(t, svc.StepReviewAndSubmit, current.Step)

		current = advance(t, svc.ContextUpdate{ApplicantID: "applicant_1"})
		assert.Equal(t, svc.StepAdditionalDocuments, current.Step)

		// Back keeps everything gathered so far.
		res, err := test.PerformRequest(t, "POST",
			fmt.Sprintf("/wizard/sessions/%s/back", session.ID), nil, nil, router)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.Code)
		assert.NoError(t, json.Unmarshal(res.Body.Bytes(), &current))
		assert.Equal(t, svc.StepReviewAndSubmit, current.Step)
		assert.Equal(t, "applicant_1", current.Context.ApplicantID)

		current = advance(t, svc.ContextUpdate{})
		assert.Equal(t, svc.StepAdditionalDocuments, current.Step)

		// The optional step may be skipped.
		res, err = test.PerformRequest(t, "POST",
			fmt.Sprintf("/wizard/sessions/%s/skip", session.ID), nil, nil, router)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.Code)
		assert.NoError(t, json.Unmarshal(res.Body.Bytes(), &current))
		assert.Equal(t, svc.StepVerify, current.Step)

		// No step follows verify.
		res, err = test.PerformRequest(t, "POST",
			fmt.Sprintf("/wizard/sessions/%s/advance", session.ID),
			map[string]interface{}{}, nil, router)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusConflict, res.Code)
	})

	t.Run("skip is rejected on required steps", func(t *testing.T) {
		session := createSession(t)

		res, err := test.PerformRequest(t, "POST",
			fmt.Sprintf("/wizard/sessions/%s/skip", session.ID), nil, nil, router)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusConflict, res.Code)
	})

	t.Run("reset returns to the first step with a clean context", func(t *testing.T) {
		session := createSession(t)

		_, err := test.PerformRequest(t, "POST",
			fmt.Sprintf("/wizard/sessions/%s/advance", session.ID),
			svc.ContextUpdate{IDFileID: "file_1"}, nil, router)
		assert.NoError(t, err)

		res, err := test.PerformRequest(t, "POST",
			fmt.Sprintf("/wizard/sessions/%s/reset", session.ID), nil, nil, router)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.Code)

		var current svc.Session
		assert.NoError(t, json.Unmarshal(res.Body.Bytes(), &current))
		assert.Equal(t, svc.StepUploadID, current.Step)
		assert.Empty(t, current.Context.IDFileID)
	})
}
