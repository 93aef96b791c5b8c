package router

import (
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"trustsitter/internal/config"
	"trustsitter/internal/controllers"
	"trustsitter/internal/middleware"
	"trustsitter/internal/utils"
)

// New builds the engine with all middleware and routes wired. Tests call it
// directly with their own database instance.
func New(db *gorm.DB, logger *zap.Logger, cfg config.Config, email *utils.SMTPClient) *gin.Engine {
	r := gin.New()
	r.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(logger, true))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))

	authCtrl := controllers.NewAuthController(db, logger, cfg, email)
	profileCtrl := controllers.NewProfileController(db, logger)
	sitterCtrl := controllers.NewSitterController(db, logger)

	api := r.Group("/api")
	{
		api.POST("/register", authCtrl.Register)
		api.POST("/login", authCtrl.Login)
	}

	protected := r.Group("/api")
	protected.Use(middleware.Auth(cfg.JWTSecret))
	{
		protected.GET("/profile", profileCtrl.Get)
		protected.PUT("/profile", profileCtrl.Update)
		protected.POST("/sitter/request-verification", sitterCtrl.RequestVerification)
		protected.POST("/sitter/availability", sitterCtrl.AddAvailability)
		protected.DELETE("/sitter/availability/:id", sitterCtrl.DeleteAvailability)
		protected.POST("/sitter/publish-profile", sitterCtrl.PublishProfile)
		protected.GET("/sitters", sitterCtrl.Search)
	}

	return r
}
