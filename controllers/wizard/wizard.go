package wizard

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	svc "github.com/kycflow/gateway/services/wizard"
	u "github.com/kycflow/gateway/utils"
)

// WizardController exposes the step machine over HTTP sessions.
type WizardController struct {
	store *svc.Store
}

// NewWizardController creates a new instance of WizardController
func NewWizardController(store *svc.Store) *WizardController {
	return &WizardController{store: store}
}

// CreateSession controller opens a new session at the first step
func (ctrl *WizardController) CreateSession(ctx *gin.Context) {
	session := ctrl.store.Create()
	ctx.JSON(http.StatusCreated, session)
}

// GetSession controller returns the session's current step and context
func (ctrl *WizardController) GetSession(ctx *gin.Context) {
	session, err := ctrl.store.Get(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, u.NewErrorBody("Session not found"))
		return
	}

	ctx.JSON(http.StatusOK, session)
}

// Advance controller merges the step payload into the session context and
// moves to the next step. The move is rejected when the current step's
// required context is still missing.
func (ctrl *WizardController) Advance(ctx *gin.Context) {
	var update svc.ContextUpdate

	if err := ctx.ShouldBindJSON(&update); err != nil {
		u.APIResponse(ctx, http.StatusBadRequest, "error",
			"Failed to validate payload", u.GetErrorData(err))
		return
	}

	session, err := ctrl.store.Advance(ctx.Param("id"), update)
	if err != nil {
		respondTransitionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, session)
}

// Back controller moves the session one step back, keeping its context
func (ctrl *WizardController) Back(ctx *gin.Context) {
	session, err := ctrl.store.Back(ctx.Param("id"))
	if err != nil {
		respondTransitionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, session)
}

// Skip controller skips the current step without providing its context
func (ctrl *WizardController) Skip(ctx *gin.Context) {
	session, err := ctrl.store.Skip(ctx.Param("id"))
	if err != nil {
		respondTransitionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, session)
}

// Reset controller returns the session to the first step with an empty
// context
func (ctrl *WizardController) Reset(ctx *gin.Context) {
	session, err := ctrl.store.Reset(ctx.Param("id"))
	if err != nil {
		respondTransitionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, session)
}

func respondTransitionError(ctx *gin.Context, err error) {
	var notFound svc.ErrSessionNotFound
	var missing svc.ErrMissingContext
	var notSkippable svc.ErrStepNotSkippable
	var atFinal svc.ErrAtFinalStep
	var atFirst svc.ErrAtFirstStep

	switch {
	case errors.As(err, &notFound):
		ctx.JSON(http.StatusNotFound, u.NewErrorBody("Session not found"))
	case errors.As(err, &missing), errors.As(err, &notSkippable),
		errors.As(err, &atFinal), errors.As(err, &atFirst):
		ctx.JSON(http.StatusConflict, u.NewErrorBody(err.Error()))
	default:
		ctx.JSON(http.StatusInternalServerError, u.NewErrorBody(err.Error()))
	}
}
