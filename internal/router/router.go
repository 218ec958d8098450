package router

import (
	"net/http"
	"time"

	"jogoo/config"
	"jogoo/internal/handler"
	"jogoo/internal/middleware"
	"jogoo/internal/repository"
	"jogoo/internal/service"
	"jogoo/pkg/payment"
	"jogoo/pkg/sms"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Setup wires repositories, services and handlers onto a gin engine.
// Provider and sender are injected so tests can substitute fakes.
func Setup(cfg *config.Config, db *gorm.DB, provider payment.Provider, sender sms.Sender) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	donationRepo := repository.NewDonationRepository(db)
	notifSvc := service.NewNotificationService(sender)

	donationHandler := handler.NewDonationHandler(donationRepo, provider)
	webhookHandler := handler.NewMpesaWebhookHandler(donationRepo, notifSvc)
	authHandler := handler.NewAuthHandler(cfg)
	adminHandler := handler.NewAdminHandler(donationRepo)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to Jogoo CBO M-Pesa Donation API"})
	})
	r.POST("/donate", donationHandler.Donate)
	r.POST("/mpesa-callback", webhookHandler.Handle)

	admin := r.Group("/admin")
	{
		admin.POST("/login", authHandler.Login)
		authed := admin.Group("")
		authed.Use(middleware.AuthRequired(&cfg.JWT))
		{
			authed.GET("/donations", adminHandler.ListDonations)
			authed.GET("/donations/totals", adminHandler.Totals)
			authed.GET("/donations/:id", adminHandler.GetDonation)
		}
	}

	return r
}
