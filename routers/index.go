package routers

import (
	"github.com/gin-gonic/gin"

	"github.com/kycflow/gateway/controllers"
	wizardCtrl "github.com/kycflow/gateway/controllers/wizard"
	"github.com/kycflow/gateway/routers/middleware"
	"github.com/kycflow/gateway/services/wizard"
)

// Routes builds the gin engine with all middleware and endpoints wired in.
func Routes(ctrl *controllers.Controller, store *wizard.Store) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RateLimitMiddleware())

	router.GET("/health", ctrl.Health)

	RegisterRoutes(router, ctrl, store)

	return router
}

// RegisterRoutes adds the API endpoints to the router.
func RegisterRoutes(router *gin.Engine, ctrl *controllers.Controller, store *wizard.Store) {
	wizCtrl := wizardCtrl.NewWizardController(store)

	v1 := router.Group("/api")

	v1.GET("/config", ctrl.GetConfig)
	v1.POST("/config/mode", ctrl.SetMode)

	v1.POST("/applicants", ctrl.CreateApplicant)
	v1.GET("/applicants/:id", ctrl.GetApplicant)
	v1.POST("/documents", ctrl.CreateDocument)
	v1.GET("/documents/:id", ctrl.GetDocument)
	v1.POST("/addresses", ctrl.CreateAddress)
	v1.POST("/verifications", ctrl.CreateVerification)
	v1.GET("/verifications/:id", ctrl.GetVerification)
	v1.GET("/countries", ctrl.ListCountries)
	v1.POST("/files", ctrl.UploadFile)

	v1.POST("/services/document-recognition", ctrl.RecognizeDocument)
	v1.POST("/services/ocr-extraction", ctrl.ExtractOCR)

	v1.POST("/verifications/:id/watch", ctrl.WatchVerification)
	v1.GET("/watches/:id", ctrl.GetWatch)
	v1.DELETE("/watches/:id", ctrl.CancelWatch)

	sessions := v1.Group("/wizard/sessions")
	sessions.POST("", wizCtrl.CreateSession)
	sessions.GET("/:id", wizCtrl.GetSession)
	sessions.POST("/:id/advance", wizCtrl.Advance)
	sessions.POST("/:id/back", wizCtrl.Back)
	sessions.POST("/:id/skip", wizCtrl.Skip)
	sessions.POST("/:id/reset", wizCtrl.Reset)
}
