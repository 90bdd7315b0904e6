package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"tripwise/internal/api/controllers"
	"tripwise/internal/config"
	"tripwise/pkg/middleware"
	"tripwise/pkg/utils"
)

func NewRouter(
	cfg config.Config,
	logger *zap.Logger,
	tokens *utils.TokenManager,
	accountController *controllers.AccountController,
	preferencesController *controllers.PreferencesController) *gin.Engine {

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(logger))
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	RegisterRoutes(r, tokens, accountController, preferencesController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	tokens *utils.TokenManager,
	accountController *controllers.AccountController,
	preferencesController *controllers.PreferencesController) {

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	accountGroup := r.Group("/accounts")
	accountGroup.POST("/register", accountController.Register)
	accountGroup.POST("/login", accountController.Login)
	accountGroup.GET("/me", middleware.JWTAuthMiddleware(tokens), accountController.Me)

	r.GET("/preferences/defaults", preferencesController.GetDefaults)

	prefGroup := r.Group("/preferences")
	prefGroup.Use(middleware.JWTAuthMiddleware(tokens))
	prefGroup.GET("", preferencesController.GetPreferences)
	prefGroup.PUT("", preferencesController.ReplacePreferences)
	prefGroup.DELETE("", preferencesController.DeletePreferences)
	prefGroup.POST("/draft", preferencesController.SaveDraft)
	prefGroup.GET("/draft", preferencesController.GetDraft)
	prefGroup.POST("/validate", preferencesController.ValidatePreferences)
	prefGroup.PATCH("/:section", preferencesController.UpdateSection)
}
