package router

import (
	"github.com/gin-gonic/gin"
	"github.com/ikkim/backoffice-backend/config"
	"github.com/ikkim/backoffice-backend/internal/app/controller"
	"github.com/ikkim/backoffice-backend/internal/middleware"
)

type Router struct {
	authController        *controller.AuthController
	productController     *controller.ProductController
	bankAccountController *controller.BankAccountController
	rewardController      *controller.RewardController
	voucherController     *controller.VoucherController
	reportController      *controller.ReportController
	alertController       *controller.AlertController
	uploadController      *controller.UploadController
	authMiddleware        *middleware.AuthMiddleware
	config                *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	productController *controller.ProductController,
	bankAccountController *controller.BankAccountController,
	rewardController *controller.RewardController,
	voucherController *controller.VoucherController,
	reportController *controller.ReportController,
	alertController *controller.AlertController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:        authController,
		productController:     productController,
		bankAccountController: bankAccountController,
		rewardController:      rewardController,
		voucherController:     voucherController,
		reportController:      reportController,
		alertController:       alertController,
		uploadController:      uploadController,
		authMiddleware:        authMiddleware,
		config:                cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Backoffice API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", r.authController.Login)
			auth.POST("/register",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.authController.Register,
			)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)
			auth.PUT("/me", r.authMiddleware.Authenticate(), r.authController.UpdateProfile)
		}

		users := v1.Group("/users")
		users.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole("admin"))
		{
			users.GET("", r.authController.ListUsers)
			users.DELETE("/:id", r.authController.DeleteUser)
		}

		products := v1.Group("/products")
		products.Use(r.authMiddleware.Authenticate())
		{
			products.GET("", r.productController.ListProducts)
			products.GET("/categories", r.productController.ListCategories)
			products.GET("/:id", r.productController.GetProductByID)
			products.POST("", r.productController.CreateProduct)
			products.PUT("/:id", r.productController.UpdateProduct)
			products.DELETE("/:id", r.productController.DeleteProduct)

			products.POST("/:id/variants", r.productController.CreateVariant)
			products.PUT("/:id/variants/:variantId", r.productController.UpdateVariant)
			products.DELETE("/:id/variants/:variantId", r.productController.DeleteVariant)
			products.POST("/:id/variants/:variantId/stock", r.productController.AdjustStock)
		}

		bankAccounts := v1.Group("/bank-accounts")
		bankAccounts.Use(r.authMiddleware.Authenticate())
		{
			bankAccounts.GET("", r.bankAccountController.ListBankAccounts)
			bankAccounts.GET("/:id", r.bankAccountController.GetBankAccountByID)

			bankAccounts.POST("",
				r.authMiddleware.RequireRole("admin"),
				r.bankAccountController.CreateBankAccount,
			)
			bankAccounts.PUT("/:id",
				r.authMiddleware.RequireRole("admin"),
				r.bankAccountController.UpdateBankAccount,
			)
			bankAccounts.DELETE("/:id",
				r.authMiddleware.RequireRole("admin"),
				r.bankAccountController.DeleteBankAccount,
			)
		}

		rewards := v1.Group("/rewards")
		rewards.Use(r.authMiddleware.Authenticate())
		{
			rewards.GET("", r.rewardController.ListRewards)
			rewards.GET("/:id", r.rewardController.GetRewardByID)

			rewards.POST("",
				r.authMiddleware.RequireRole("admin"),
				r.rewardController.CreateReward,
			)
			rewards.PUT("/:id",
				r.authMiddleware.RequireRole("admin"),
				r.rewardController.UpdateReward,
			)
			rewards.DELETE("/:id",
				r.authMiddleware.RequireRole("admin"),
				r.rewardController.DeleteReward,
			)
		}

		vouchers := v1.Group("/vouchers")
		vouchers.Use(r.authMiddleware.Authenticate())
		{
			vouchers.GET("", r.voucherController.ListVouchers)
			vouchers.GET("/:id", r.voucherController.GetVoucherByID)
			vouchers.POST("", r.voucherController.CreateVoucher)
			vouchers.PUT("/:id", r.voucherController.UpdateVoucher)
			vouchers.DELETE("/:id", r.voucherController.DeleteVoucher)
			vouchers.POST("/redeem-check", r.voucherController.RedeemCheck)
		}

		reports := v1.Group("/reports")
		reports.Use(r.authMiddleware.Authenticate())
		{
			reports.GET("/sales", r.reportController.GetSalesReport)
			reports.GET("/sales/export", r.reportController.ExportSalesReport)
		}

		orders := v1.Group("/orders")
		orders.Use(r.authMiddleware.Authenticate())
		{
			orders.GET("", r.reportController.ListOrders)
			orders.GET("/:id", r.reportController.GetOrderByID)
			orders.PUT("/:id/status", r.reportController.UpdateOrderStatus)
		}

		alerts := v1.Group("/alerts")
		alerts.Use(r.authMiddleware.Authenticate())
		{
			alerts.GET("", r.alertController.ListAlerts)
			alerts.PUT("/:id/read", r.alertController.MarkRead)
			alerts.PUT("/read-all", r.alertController.MarkAllRead)
			alerts.GET("/settings", r.alertController.GetSettings)
			alerts.PUT("/settings", r.alertController.UpdateSettings)
		}

		upload := v1.Group("/upload")
		upload.Use(r.authMiddleware.Authenticate())
		{
			upload.POST("/presign", r.uploadController.PresignUpload)
		}

		// Live stock alert stream for the dashboard.
		v1.GET("/ws/alerts", r.authMiddleware.Authenticate(), r.alertController.StreamAlerts)
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
