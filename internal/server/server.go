package server

import (
	"context"
	"net/http"

	"reviewpay/internal/admin"
	"reviewpay/internal/auth"
	"reviewpay/internal/business"
	"reviewpay/internal/config"
	"reviewpay/internal/contact"
	"reviewpay/internal/dashboard"
	"reviewpay/internal/email"
	"reviewpay/internal/notice"
	"reviewpay/internal/review"
	"reviewpay/internal/transfer"
	"reviewpay/internal/user"
	"reviewpay/internal/wallet"
	"reviewpay/internal/withdraw"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
	email  *email.Service
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(20, 40))

	adminHandler := admin.NewHandler(db, cfg.JWTSecret)
	userHandler := user.NewHandler(db, emailService)
	walletHandler := wallet.NewHandler(db)
	withdrawHandler := withdraw.NewHandler(db, emailService)
	transferHandler := transfer.NewHandler(db)
	reviewHandler := review.NewHandler(db)
	businessHandler := business.NewHandler(db, cfg.UploadDir)
	noticeHandler := notice.NewHandler(db, cfg.UploadDir)
	contactHandler := contact.NewHandler(db, emailService)
	dashboardHandler := dashboard.NewHandler(db)

	public := router.Group("/admin/auth")
	{
		public.POST("/login", adminHandler.Login)
		public.POST("/refresh", adminHandler.RefreshToken)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/admin")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", adminHandler.GetMe)

		protected.GET("/dashboard", dashboardHandler.GetSummary)
		protected.GET("/dashboard/monthly-income", dashboardHandler.GetMonthlyIncome)
		protected.GET("/dashboard/daily-income", dashboardHandler.GetDailyIncome)

		protected.GET("/users", userHandler.List)
		protected.GET("/users/:id", userHandler.Get)
		protected.PUT("/users/:id", userHandler.Update)
		protected.POST("/users/:id/block", userHandler.Block)
		protected.POST("/users/:id/unblock", userHandler.Unblock)
		protected.POST("/users/:id/password", userHandler.ResetPassword)

		protected.GET("/wallet/:userID/wallet", walletHandler.GetUserWallet)
		protected.POST("/wallet/:userID/wallet-adjustment", walletHandler.CreateAdjustment)
		protected.GET("/wallet/:userID/wallet-adjustments", walletHandler.ListUserAdjustments)
		protected.GET("/wallet-adjustments", walletHandler.ListAdjustments)
		protected.GET("/wallet/:userID/transfers", transferHandler.ListForUser)

		protected.GET("/withdraws", withdrawHandler.List)
		protected.POST("/withdraws/:id/status", withdrawHandler.SetStatus)

		protected.GET("/transfers", transferHandler.List)

		protected.GET("/reviews", reviewHandler.List)
		protected.POST("/reviews/:id/approve", reviewHandler.Approve)
		protected.POST("/reviews/:id/reject", reviewHandler.Reject)
		protected.POST("/reviews/:id/status", reviewHandler.SetStatus)

		protected.GET("/businesses", businessHandler.List)
		protected.GET("/businesses/:id", businessHandler.Get)
		protected.POST("/businesses", businessHandler.Create)
		protected.PUT("/businesses/:id", businessHandler.Update)
		protected.DELETE("/businesses/:id", businessHandler.Delete)
		protected.POST("/businesses/:id/images", businessHandler.UploadImage)
		protected.PUT("/business-images/:imageID", businessHandler.UpdateImage)
		protected.DELETE("/business-images/:imageID", businessHandler.DeleteImage)

		protected.GET("/notices", noticeHandler.List)
		protected.GET("/notices/:id", noticeHandler.Get)
		protected.POST("/notices", noticeHandler.Create)
		protected.PUT("/notices/:id", noticeHandler.Update)
		protected.POST("/notices/:id/active", noticeHandler.SetActive)
		protected.DELETE("/notices/:id", noticeHandler.Delete)

		protected.GET("/contacts", contactHandler.List)
		protected.GET("/contacts/:id", contactHandler.Get)
		protected.POST("/contacts/:id/reply", contactHandler.Reply)
		protected.POST("/contacts/:id/status", contactHandler.SetStatus)
	}

	superadmin := router.Group("/admin/admins")
	superadmin.Use(authMiddleware, auth.RequireRole(admin.RoleSuperadmin))
	{
		superadmin.POST("", adminHandler.Create)
		superadmin.GET("", adminHandler.List)
		superadmin.POST("/:id/status", adminHandler.SetStatus)
		superadmin.POST("/:id/change-password", adminHandler.ChangePassword)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	router.GET("/test-email", TestEmail(emailService))
	router.Static("/uploads", cfg.UploadDir)
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
		email:  emailService,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
