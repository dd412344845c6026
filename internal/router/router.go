// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Field-devs/portal-do-cliente-sub001/internal/config"
	"github.com/Field-devs/portal-do-cliente-sub001/internal/handlers"
	"github.com/Field-devs/portal-do-cliente-sub001/internal/middleware"
	"github.com/Field-devs/portal-do-cliente-sub001/internal/permissions"
	"github.com/Field-devs/portal-do-cliente-sub001/internal/services"
	"github.com/Field-devs/portal-do-cliente-sub001/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	notificationService := services.NewNotificationService(db, cfg)
	storageService, _ := services.NewStorageService(cfg)

	authService := services.NewAuthService(db, cfg, notificationService)
	userService := services.NewUserService(db, cfg)
	partnerService := services.NewPartnerService(db, cfg, storageService)
	planService := services.NewPlanService(db, cfg)
	proposalService := services.NewProposalService(db, cfg, partnerService, notificationService)
	dashboardService := services.NewDashboardService(db, cfg)
	paymentService := services.NewPaymentService(db, cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	partnerHandler := handlers.NewPartnerHandler(partnerService)
	planHandler := handlers.NewPlanHandler(planService)
	proposalHandler := handlers.NewProposalHandler(proposalService)
	confirmationHandler := handlers.NewConfirmationHandler(proposalService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
			auth.POST("/reset-password", authHandler.ResetPassword)
			auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
		}

		// Public confirmation pages, no auth, tighter rate limit
		confirmation := v1.Group("/confirmation")
		confirmation.Use(middleware.PublicRateLimit())
		{
			confirmation.GET("/:id", confirmationHandler.GetConfirmation)
			confirmation.POST("/:id", confirmationHandler.Confirm)
		}

		// Everything below requires a session
		protected := v1.Group("")
		protected.Use(middleware.AuthRequired())
		{
			// Self-service profile
			profile := protected.Group("/profile")
			{
				profile.PUT("", userHandler.UpdateProfile)
				profile.GET("/permissions", userHandler.GetPermissions)
				profile.PUT("/theme", userHandler.UpdateTheme)
			}

			protected.GET("/dashboard",
				middleware.ModuleAccess(permissions.ModuleDashboard, "view"),
				dashboardHandler.GetStats)

			// Accounts
			accounts := protected.Group("/accounts")
			{
				accounts.GET("", middleware.ModuleAccess(permissions.ModuleAccounts, "view"), userHandler.ListAccounts)
				accounts.POST("", middleware.ModuleAccess(permissions.ModuleAccounts, "create"), userHandler.CreateAccount)
				accounts.GET("/:id", middleware.ModuleAccess(permissions.ModuleAccounts, "view"), userHandler.GetAccount)
				accounts.PUT("/:id", middleware.ModuleAccess(permissions.ModuleAccounts, "edit"), userHandler.UpdateAccount)
				accounts.DELETE("/:id", middleware.ModuleAccess(permissions.ModuleAccounts, "delete"), userHandler.DeleteAccount)
				accounts.POST("/:id/lock", middleware.ModuleAccess(permissions.ModuleAccounts, "edit"), userHandler.LockAccount)
				accounts.POST("/:id/unlock", middleware.ModuleAccess(permissions.ModuleAccounts, "edit"), userHandler.UnlockAccount)
			}

			// Partners
			partners := protected.Group("/partners")
			{
				partners.GET("", middleware.ModuleAccess(permissions.ModulePartners, "view"), partnerHandler.ListPartners)
				partners.POST("", middleware.ModuleAccess(permissions.ModulePartners, "create"), partnerHandler.CreatePartner)
				partners.GET("/coupon/:code", middleware.ModuleAccess(permissions.ModuleProposals, "view"), partnerHandler.LookupCoupon)
				partners.GET("/:id", middleware.ModuleAccess(permissions.ModulePartners, "view"), partnerHandler.GetPartner)
				partners.PUT("/:id", middleware.ModuleAccess(permissions.ModulePartners, "edit"), partnerHandler.UpdatePartner)
				partners.DELETE("/:id", middleware.ModuleAccess(permissions.ModulePartners, "delete"), partnerHandler.DeletePartner)
				partners.POST("/:id/logo", middleware.ModuleAccess(permissions.ModulePartners, "edit"),
					middleware.UploadRateLimit(), partnerHandler.UploadLogo)
			}

			// Plan catalog
			plans := protected.Group("/plans")
			{
				plans.GET("", middleware.ModuleAccess(permissions.ModulePlans, "view"), planHandler.ListPlans)
				plans.GET("/filter", middleware.ModuleAccess(permissions.ModulePlans, "view"), planHandler.FilterPlans)
				plans.POST("", middleware.ModuleAccess(permissions.ModulePlans, "create"), planHandler.CreatePlan)
				plans.GET("/:id", middleware.ModuleAccess(permissions.ModulePlans, "view"), planHandler.GetPlan)
				plans.PUT("/:id", middleware.ModuleAccess(permissions.ModulePlans, "edit"), planHandler.UpdatePlan)
				plans.DELETE("/:id", middleware.ModuleAccess(permissions.ModulePlans, "delete"), planHandler.DeletePlan)
			}

			addons := protected.Group("/addons")
			{
				addons.GET("", middleware.ModuleAccess(permissions.ModulePlans, "view"), planHandler.ListAddons)
				addons.POST("", middleware.ModuleAccess(permissions.ModulePlans, "create"), planHandler.CreateAddon)
				addons.PUT("/:id", middleware.ModuleAccess(permissions.ModulePlans, "edit"), planHandler.UpdateAddon)
				addons.DELETE("/:id", middleware.ModuleAccess(permissions.ModulePlans, "delete"), planHandler.DeleteAddon)
			}

			// Proposal wizard
			proposals := protected.Group("/proposals")
			{
				proposals.GET("", middleware.ModuleAccess(permissions.ModuleProposals, "view"), proposalHandler.ListProposals)
				proposals.POST("", middleware.ModuleAccess(permissions.ModuleProposals, "create"), proposalHandler.SaveProposal)
				proposals.POST("/quote", middleware.ModuleAccess(permissions.ModuleProposals, "view"), proposalHandler.Quote)
				proposals.GET("/:id", middleware.ModuleAccess(permissions.ModuleProposals, "view"), proposalHandler.GetProposal)
				proposals.DELETE("/:id", middleware.ModuleAccess(permissions.ModuleProposals, "delete"), proposalHandler.DeleteProposal)
				proposals.PATCH("/:id/status", middleware.ModuleAccess(permissions.ModuleProposals, "edit"), proposalHandler.UpdateStatus)
				proposals.GET("/:id/link", middleware.ModuleAccess(permissions.ModuleProposals, "view"), proposalHandler.GetConfirmationLink)
				proposals.POST("/:id/send", middleware.ModuleAccess(permissions.ModuleProposals, "edit"), proposalHandler.SendProposal)
			}

			// Financial
			protected.GET("/contracts",
				middleware.ModuleAccess(permissions.ModuleFinancial, "view"),
				paymentHandler.ListContracts)

			payments := protected.Group("/payments")
			{
				payments.GET("", middleware.ModuleAccess(permissions.ModuleFinancial, "view"), paymentHandler.ListPayments)
				payments.POST("/intent", middleware.ModuleAccess(permissions.ModuleFinancial, "create"), paymentHandler.CreatePaymentIntent)
				payments.POST("/confirm", middleware.ModuleAccess(permissions.ModuleFinancial, "create"), paymentHandler.ConfirmPayment)
			}
		}
	}

	return r
}
