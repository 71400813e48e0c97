package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/kycflow/gateway/config"
	"github.com/kycflow/gateway/services/kycaid"
	"github.com/kycflow/gateway/services/ocr"
	"github.com/kycflow/gateway/services/poller"
	"github.com/kycflow/gateway/services/recognition"
	"github.com/kycflow/gateway/types"
	u "github.com/kycflow/gateway/utils"
	"github.com/kycflow/gateway/utils/logger"
)

var serverConf = config.ServerConfig()
var kycaidConf = config.KycaidConfig()

// Controller is the default controller for the gateway endpoints
type Controller struct {
	client             *kycaid.Client
	recognitionService *recognition.Service
	watcher            *poller.Watcher
	registry           *config.DocumentTypeRegistry
	countriesCache     *cache.Cache
}

// NewController creates a new instance of Controller with injected services
func NewController(client *kycaid.Client, watcher *poller.Watcher) (*Controller, error) {
	recognitionService, err := recognition.NewService(client)
	if err != nil {
		return nil, err
	}

	registry, err := config.DocumentTypes()
	if err != nil {
		return nil, err
	}

	return &Controller{
		client:             client,
		recognitionService: recognitionService,
		watcher:            watcher,
		registry:           registry,
		countriesCache:     cache.New(kycaidConf.CountriesCacheTTL, 2*kycaidConf.CountriesCacheTTL),
	}, nil
}

// relayError maps a provider call failure onto the outgoing response.
// Provider rejections keep their original status code and body so the
// caller sees exactly what KYCAID said.
func relayError(ctx *gin.Context, action string, err error) {
	var apiErr *kycaid.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Body != nil {
			ctx.JSON(apiErr.StatusCode, apiErr.Body)
			return
		}
		ctx.JSON(apiErr.StatusCode, u.NewErrorBody(fmt.Sprintf("Failed to %s", action)))
		return
	}

	logger.Errorf("Failed to %s: %v", action, err)
	ctx.JSON(http.StatusInternalServerError, u.NewErrorBody(fmt.Sprintf("Failed to %s", action)))
}

// GetConfig controller reports the active mode and whether a credential is
// configured for it. The credential itself is never included.
func (ctrl *Controller) GetConfig(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, types.ConfigResponse{
		Mode:      ctrl.client.Modes().Mode(),
		APIKeySet: ctrl.client.Modes().APIKeySet(),
	})
}

// SetMode controller switches the gateway between test and prod
// credentials. An unknown mode is rejected and the active mode is
// left unchanged.
func (ctrl *Controller) SetMode(ctx *gin.Context) {
	var payload types.SetModeRequest

	if err := ctx.ShouldBindJSON(&payload); err != nil {
		u.APIResponse(ctx, http.StatusBadRequest, "error",
			"Failed to validate payload", u.GetErrorData(err))
		return
	}

	if err := ctrl.client.Modes().SetMode(payload.Mode); err != nil {
		ctx.JSON(http.StatusBadRequest, u.NewErrorBody(err.Error()))
		return
	}

	logger.Infof("API mode switched to %s", payload.Mode)
	ctx.JSON(http.StatusOK, types.SetModeResponse{Success: true, Mode: payload.Mode})
}

// Health controller reports liveness and the active mode.
func (ctrl *Controller) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, types.HealthResponse{
		Status: "ok",
		Mode:   ctrl.client.Modes().Mode(),
	})
}

// CreateApplicant controller creates a KYCAID applicant
func (ctrl *Controller) CreateApplicant(ctx *gin.Context) {
	var payload types.ApplicantPayload

	if err := ctx.ShouldBindJSON(&payload); err != nil {
		u.APIResponse(ctx, http.StatusBadRequest, "error",
			"Failed to validate payload", u.GetErrorData(err))
		return
	}

	data, err := ctrl.client.CreateApplicant(ctx, payload)
	if err != nil {
		relayError(ctx, "create applicant", err)
		return
	}

	ctx.JSON(http.StatusCreated, data)
}

// GetApplicant controller fetches a KYCAID applicant by ID
func (ctrl *Controller) GetApplicant(ctx *gin.Context) {
	data, err := ctrl.client.GetApplicant(ctx, ctx.Param("id"))
	if err != nil {
		relayError(ctx, "fetch applicant", err)
		return
	}

	ctx.JSON(http.StatusOK, data)
}

// CreateDocument controller attaches an uploaded file to an applicant as a
// typed document
func (ctrl *Controller) CreateDocument(ctx *gin.Context) {
	var payload types.DocumentPayload

	if err := ctx.ShouldBindJSON(&payload); err != nil {
		u.APIResponse(ctx, http.StatusBadRequest, "error",
			"Failed to validate payload", u.GetErrorData(err))
		return
	}

	payload.Type = ctrl.registry.ResolveDocumentType(payload.Type)

	data, err := ctrl.client.CreateDocument(ctx, payload)
	if err != nil {
		relayError(ctx, "create document", err)
		return
	}

	ctx.JSON(http.StatusCreated, data)
}

// GetDocument controller fetches a document by ID
func (ctrl *Controller) GetDocument(ctx *gin.Context) {
	data, err := ctrl.client.GetDocument(ctx, ctx.Param("id"))
	if err != nil {
		relayError(ctx, "fetch document", err)
		return
	}

	ctx.JSON(http.StatusOK, data)
}

// CreateAddress controller creates an address record for an applicant
func (ctrl *Controller) CreateAddress(ctx *gin.Context) {
	var payload types.AddressPayload

	if err := ctx.ShouldBindJSON(&payload); err != nil {
		u.APIResponse(ctx, http.StatusBadRequest, "error",
			"Failed to validate payload", u.GetErrorData(err))
		return
	}

	data, err := ctrl.client.CreateAddress(ctx, payload)
	if err != nil {
		relayError(ctx, "create address", err)
		return
	}

	ctx.JSON(http.StatusCreated, data)
}

// CreateVerification controller submits an applicant for verification
func (ctrl *Controller) CreateVerification(ctx *gin.Context) {
	var payload types.VerificationPayload

	if err := ctx.ShouldBindJSON(&payload); err != nil {
		u.APIResponse(ctx, http.StatusBadRequest, "error",
			"Failed to validate payload", u.GetErrorData(err))
		return
	}

	data, err := ctrl.client.CreateVerification(ctx, payload)
	if err != nil {
		relayError(ctx, "create verification", err)
		return
	}

	ctx.JSON(http.StatusCreated, data)
}

// GetVerification controller fetches the current state of a verification
func (ctrl *Controller) GetVerification(ctx *gin.Context) {
	data, err := ctrl.client.GetVerification(ctx, ctx.Param("id"))
	if err != nil {
		relayError(ctx, "fetch verification", err)
		return
	}

	ctx.JSON(http.StatusOK, data)
}

// ListCountries controller fetches the provider's country list. Responses
// are cached per mode since the list changes rarely.
func (ctrl *Controller) ListCountries(ctx *gin.Context) {
	cacheKey := "countries_" + ctrl.client.Modes().Mode()
	if cached, found := ctrl.countriesCache.Get(cacheKey); found {
		ctx.JSON(http.StatusOK, cached)
		return
	}

	data, err := ctrl.client.ListCountries(ctx)
	if err != nil {
		relayError(ctx, "fetch countries", err)
		return
	}

	ctrl.countriesCache.Set(cacheKey, data, cache.DefaultExpiration)
	ctx.JSON(http.StatusOK, data)
}

// UploadFile controller accepts a multipart image under the "file" field,
// forwards it to the provider and returns the provider's file record. The
// temporary local copy is removed whether the forward succeeds or not.
func (ctrl *Controller) UploadFile(ctx *gin.Context) {
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, kycaidConf.MaxUploadSize)

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			ctx.JSON(http.StatusRequestEntityTooLarge, u.NewErrorBody("File exceeds the upload size limit"))
			return
		}
		ctx.JSON(http.StatusBadRequest, u.NewErrorBody("No file uploaded"))
		return
	}

	localPath := filepath.Join(serverConf.UploadDir, uuid.New().String()+filepath.Ext(fileHeader.Filename))
	if err := ctx.SaveUploadedFile(fileHeader, localPath); err != nil {
		logger.Errorf("Failed to save uploaded file: %v", err)
		ctx.JSON(http.StatusInternalServerError, u.NewErrorBody("Failed to save uploaded file"))
		return
	}
	defer func() {
		if err := os.Remove(localPath); err != nil {
			logger.Warnf("Failed to remove temp upload %s: %v", localPath, err)
		}
	}()

	contentType := fileHeader.Header.Get("Content-Type")
	data, err := ctrl.client.UploadFile(ctx, localPath, fileHeader.Filename, contentType)
	if err != nil {
		relayError(ctx, "upload file", err)
		return
	}

	ctx.JSON(http.StatusCreated, data)
}

// RecognizeDocument controller extracts structured fields from an already
// uploaded document image. Extraction failures degrade to an empty record
// with a note, never to an error status.
func (ctrl *Controller) RecognizeDocument(ctx *gin.Context) {
	var payload types.RecognitionRequest

	if err := ctx.ShouldBindJSON(&payload); err != nil {
		u.APIResponse(ctx, http.StatusBadRequest, "error",
			"Failed to validate payload", u.GetErrorData(err))
		return
	}

	record := ctrl.recognitionService.Recognize(ctx, payload.FileID, payload.DocumentType)
	ctx.JSON(http.StatusOK, record)
}

// ExtractOCR controller runs the heuristic field extractor over raw
// recognized text
func (ctrl *Controller) ExtractOCR(ctx *gin.Context) {
	var payload types.OCRExtractionRequest

	if err := ctx.ShouldBindJSON(&payload); err != nil {
		u.APIResponse(ctx, http.StatusBadRequest, "error",
			"Failed to validate payload", u.GetErrorData(err))
		return
	}

	documentType := ctrl.registry.ResolveDocumentType(payload.DocumentType)
	ctx.JSON(http.StatusOK, ocr.Extract(payload.Text, documentType))
}

// WatchVerification controller starts a background poll of a verification
func (ctrl *Controller) WatchVerification(ctx *gin.Context) {
	status := ctrl.watcher.Watch(ctx.Param("id"))
	ctx.JSON(http.StatusCreated, status)
}

// GetWatch controller returns the latest snapshot of a watch
func (ctrl *Controller) GetWatch(ctx *gin.Context) {
	status, err := ctrl.watcher.Get(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, u.NewErrorBody("Watch not found"))
		return
	}

	ctx.JSON(http.StatusOK, status)
}

// CancelWatch controller stops a watch before it reaches a terminal state
func (ctrl *Controller) CancelWatch(ctx *gin.Context) {
	if err := ctrl.watcher.Cancel(ctx.Param("id")); err != nil {
		ctx.JSON(http.StatusNotFound, u.NewErrorBody("Watch not found"))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
