// internal/router/router.go
package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/netflix100plus/admin-console/internal/config"
	"github.com/netflix100plus/admin-console/internal/handlers"
	"github.com/netflix100plus/admin-console/internal/middleware"
	"github.com/netflix100plus/admin-console/internal/services"
)

const version = "1.0.0"

// login attempts refill one per loginRefill
const loginRefill = 12 * time.Second

// Services is everything the console routes need, built once in cmd/server.
type Services struct {
	APIClient     *services.APIClient
	Auth          *services.AuthService
	Notifications *services.NotificationService
	Realtime      *services.RealtimeChannel
	Users         *services.UserService
	Verifications *services.VerificationService
	Submissions   *services.SubmissionService
	Leaderboard   *services.LeaderboardService
	Stats         *services.StatsService
	Settings      *services.SettingsService
	Reports       *services.ReportService
	Exports       *services.ExportService
}

func Initialize(ctx context.Context, cfg *config.Config, svc *Services, log *logrus.Entry) *gin.Engine {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(svc.Auth, svc.APIClient, svc.Realtime)
	notificationHandler := handlers.NewNotificationHandler(svc.Notifications)
	userHandler := handlers.NewUserHandler(svc.Users, svc.Stats)
	verificationHandler := handlers.NewVerificationHandler(svc.Verifications, svc.Submissions, svc.Stats)
	leaderboardHandler := handlers.NewLeaderboardHandler(svc.Leaderboard, svc.Reports)
	adminHandler := handlers.NewAdminHandler(svc.Stats, svc.Settings)
	reportHandler := handlers.NewReportHandler(svc.Reports)
	exportHandler := handlers.NewExportHandler(svc.Exports)

	generalLimiter := middleware.NewRateLimiter(ctx, rateOf(cfg.Console.RateLimit), cfg.Console.RateBurst)
	loginLimiter := middleware.NewRateLimiter(ctx, rate.Every(loginRefill), cfg.Console.LoginRateBurst)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS(cfg.Console.AllowedOrigins))
	r.Use(middleware.I18nMiddleware())
	r.Use(generalLimiter.Middleware())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": version,
			"session": svc.Auth.State().Status,
		})
	})

	// Session routes
	session := r.Group("/session")
	{
		session.GET("", authHandler.GetSession)
		session.POST("/login", loginLimiter.Middleware(), authHandler.Login)
		session.POST("/logout", authHandler.Logout)
	}

	// Everything below needs an authenticated admin session
	protected := r.Group("")
	protected.Use(middleware.SessionRequired(svc.Auth))
	{
		notifications := protected.Group("/notifications")
		{
			notifications.GET("", notificationHandler.GetNotifications)
			notifications.GET("/unread-count", notificationHandler.GetUnreadCount)
			notifications.POST("/:id/read", notificationHandler.MarkRead)
		}

		users := protected.Group("/users")
		{
			users.GET("", userHandler.GetUsers)
			users.GET("/:id", userHandler.GetUser)
			users.GET("/:id/activity-history", userHandler.GetActivityHistory)
			users.PATCH("/:id/ban", userHandler.BanUser)
			users.PATCH("/:id/unban", userHandler.UnbanUser)
		}

		verifications := protected.Group("/verifications")
		{
			verifications.GET("", verificationHandler.GetVerifications)
			verifications.PATCH("/:id/approve", verificationHandler.ApproveVerification)
			verifications.PATCH("/:id/reject", verificationHandler.RejectVerification)
		}

		submissions := protected.Group("/submissions")
		{
			submissions.GET("", verificationHandler.GetSubmissions)
			submissions.PATCH("/:id/approve", verificationHandler.ApproveSubmission)
			submissions.PATCH("/:id/reject", verificationHandler.RejectSubmission)
		}

		leaderboard := protected.Group("/leaderboard")
		{
			leaderboard.GET("", leaderboardHandler.GetLeaderboard)
			leaderboard.GET("/activity", leaderboardHandler.GetActivityLeaderboard)
		}

		stats := protected.Group("/stats")
		{
			stats.GET("", adminHandler.GetDashboardStats)
			stats.GET("/user-growth", adminHandler.GetUserGrowth)
			stats.GET("/activity-growth", adminHandler.GetActivityGrowth)
		}

		settings := protected.Group("/settings")
		{
			settings.GET("/registration", adminHandler.GetRegistrationSettings)
			settings.PUT("/registration", adminHandler.UpdateRegistrationSettings)
			settings.GET("/winner-recipients", adminHandler.GetWinnerRecipients)
			settings.PUT("/winner-recipients", adminHandler.UpdateWinnerRecipients)
		}

		reports := protected.Group("/reports")
		{
			reports.GET("/weekly-winners", reportHandler.GetWeeklyWinners)
			reports.GET("/monthly-winners", reportHandler.GetMonthlyWinners)
			reports.GET("/schedules", reportHandler.GetWeeklySchedules)
			reports.GET("/monthly-schedules", reportHandler.GetMonthlySchedules)
			reports.POST("/notify-single-winner", reportHandler.NotifySingleWinner)
		}

		protected.POST("/exports", exportHandler.RequestExport)
	}

	return r
}

func rateOf(perSecond float64) rate.Limit {
	if perSecond <= 0 {
		return rate.Inf
	}
	return rate.Limit(perSecond)
}
