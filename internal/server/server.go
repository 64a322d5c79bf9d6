package server

import (
	"context"
	"net/http"

	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/analytics"
	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/attendance"
	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/auth"
	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/config"
	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/gym"
	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/member"
	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/notification"
	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/owner"
	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/payment"
	"github.com/Vikas07-unfiltered/fit-lynk-v2/internal/plan"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
	sms    *notification.Service
}

func New(db *sqlx.DB, cfg *config.Config, smsService *notification.Service) *Server {
	router := gin.Default()
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())

	ownerHandler := owner.NewHandler(db, cfg.JWTSecret)
	gymHandler := gym.NewHandler(db, cfg.PublicBaseURL)
	planHandler := plan.NewHandler(db)
	memberHandler := member.NewHandler(db, smsService)
	paymentHandler := payment.NewHandler(db)
	attendanceHandler := attendance.NewHandler(db)
	analyticsHandler := analytics.NewHandler(db)
	notificationHandler := notification.NewHandler(smsService, member.NewRepository(db), cfg.ExpiryReminderDays)

	public := router.Group("/auth")
	{
		public.POST("/register", ownerHandler.Register)
		public.POST("/login", ownerHandler.Login)
		public.POST("/refresh", ownerHandler.Refresh)
	}

	// The QR code on the gym floor points here; no JWT, so keep it
	// rate limited.
	scan := router.Group("/scan-attendance")
	scan.Use(RateLimitMiddleware(5, 10))
	{
		scan.GET("/status", attendanceHandler.ScanStatus)
		scan.POST("/check-in", attendanceHandler.ScanCheckIn)
		scan.POST("/check-out", attendanceHandler.ScanCheckOut)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", ownerHandler.GetMe)

		protected.GET("/gym", gymHandler.GetProfile)
		protected.PUT("/gym", gymHandler.UpdateProfile)
		protected.GET("/gym/scan-url", gymHandler.GetScanURL)

		protected.GET("/plans", planHandler.ListPlans)
		protected.POST("/plans", planHandler.CreatePlan)
		protected.PUT("/plans/:planID", planHandler.UpdatePlan)
		protected.DELETE("/plans/:planID", planHandler.DeactivatePlan)

		protected.GET("/members", memberHandler.ListMembers)
		protected.POST("/members", memberHandler.CreateMember)
		protected.GET("/members/expired", memberHandler.ExpiredMembersReport)
		protected.GET("/members/:ref", memberHandler.GetMember)
		protected.PUT("/members/:memberID", memberHandler.UpdateMember)
		protected.DELETE("/members/:memberID", memberHandler.DeleteMember)
		protected.POST("/members/:memberID/extend", memberHandler.ExtendMembership)

		protected.POST("/payments", paymentHandler.ProcessPayment)
		protected.GET("/payments", paymentHandler.ListPayments)

		protected.POST("/attendance/check-in", attendanceHandler.CheckIn)
		protected.POST("/attendance/check-out", attendanceHandler.CheckOut)
		protected.GET("/attendance/today", attendanceHandler.Today)
		protected.GET("/attendance/open", attendanceHandler.Open)

		protected.GET("/analytics/advanced", analyticsHandler.Advanced)
		protected.GET("/analytics/dashboard", analyticsHandler.Dashboard)

		protected.POST("/notifications/expiry-reminder", notificationHandler.SendExpiryReminder)
		protected.POST("/notifications/expiry-reminders/bulk", notificationHandler.SendBulkExpiryReminders)
		protected.POST("/notifications/test", notificationHandler.SendTestSMS)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
		sms:    smsService,
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
