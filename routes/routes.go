package routes

import (
	"civireport/configs"
	"civireport/controllers"
	"civireport/middlewares"
	"civireport/repository"
	"civireport/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	userRepo := repository.NewUserRepository(db)
	adminRepo := repository.NewAdministratorRepository(db)
	reportRepo := repository.NewReportRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	pinRepo := repository.NewPinnedReportRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	// Services
	adminSvc := services.NewAdministratorService(adminRepo, userRepo)
	reportSvc := services.NewReportService(db, reportRepo, adminSvc)
	ratingSvc := services.NewRatingService(db, ratingRepo, reportSvc)
	userSvc := services.NewUserService(db, userRepo, adminRepo)
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	locationSvc := services.NewLocationService(locationRepo)
	pinSvc := services.NewPinnedReportService(pinRepo, reportSvc, userRepo)
	statsSvc := services.NewStatsService(statsRepo)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	userCtrl := controllers.NewUserController(userSvc)
	reportCtrl := controllers.NewReportController(reportSvc, ratingSvc)
	adminCtrl := controllers.NewAdministratorController(adminSvc)
	locationCtrl := controllers.NewLocationController(locationSvc)
	pinCtrl := controllers.NewPinnedReportController(pinSvc)
	statsCtrl := controllers.NewStatsController(statsSvc)
	uploadCtrl := controllers.NewUploadController("uploads")

	authed := middlewares.AuthMiddleware(cfg.JWTSecret)
	adminOnly := middlewares.AuthMiddleware(cfg.JWTSecret, "admin")

	// Auth
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
		a.POST("/logout", authed, authCtrl.Logout)
		a.GET("/me", authed, authCtrl.Me)
	}

	// Reports
	reports := r.Group("/reports", authed)
	{
		reports.POST("", reportCtrl.Create)
		reports.GET("", reportCtrl.List)
		reports.GET("/search", reportCtrl.Search)
		reports.GET("/status-options", reportCtrl.StatusOptions)
		reports.GET("/pending", reportCtrl.Pending)
		reports.GET("/assigned", adminOnly, reportCtrl.Assigned)
		reports.GET("/user/:id", reportCtrl.ByUser)
		reports.GET("/:id", reportCtrl.Get)
		reports.PATCH("/:id", reportCtrl.Update)
		reports.DELETE("/:id", adminOnly, reportCtrl.Delete)
		reports.PATCH("/:id/validate", adminOnly, reportCtrl.Validate)
		reports.PATCH("/:id/resolve", adminOnly, reportCtrl.Resolve)
		reports.PATCH("/:id/status", adminOnly, reportCtrl.ChangeStatus)
		reports.POST("/:id/rate", reportCtrl.ToggleRate)
		reports.DELETE("/:id/rate", reportCtrl.Unrate)
		reports.GET("/:id/rate", reportCtrl.RatingStatus)
	}

	// Users
	users := r.Group("/users", authed)
	{
		users.POST("/redeem-code", userCtrl.RedeemCode)
		users.GET("", adminOnly, userCtrl.List)
		users.GET("/:id", userCtrl.Get)
		users.GET("/:id/stats", userCtrl.Stats)
		users.PATCH("/:id", adminOnly, userCtrl.Update)
		users.DELETE("/:id", adminOnly, userCtrl.Delete)
		users.PATCH("/:id/suspend", adminOnly, userCtrl.Suspend)
		users.PATCH("/:id/unsuspend", adminOnly, userCtrl.Unsuspend)
		users.PATCH("/:id/pin", adminOnly, userCtrl.Pin)
		users.PATCH("/:id/unpin", adminOnly, userCtrl.Unpin)
	}

	// Administrators
	admins := r.Group("/administrators", authed)
	{
		admins.GET("/me", adminCtrl.Me)
		admins.GET("", adminOnly, adminCtrl.List)
		admins.GET("/available", adminOnly, adminCtrl.Available)
		admins.GET("/department/:department", adminOnly, adminCtrl.ByDepartment)
		admins.GET("/:id", adminOnly, adminCtrl.Get)
		admins.PATCH("/:id", adminOnly, adminCtrl.UpdateDepartment)
		admins.DELETE("/:id", adminOnly, adminCtrl.Delete)
	}

	// Locations
	locations := r.Group("/locations", authed)
	{
		locations.POST("", locationCtrl.Create)
		locations.GET("", locationCtrl.List)
		locations.GET("/nearby", locationCtrl.Nearby)
		locations.GET("/with-reports", locationCtrl.WithReports)
		locations.GET("/stats", locationCtrl.UsageStats)
		locations.GET("/:id", locationCtrl.Get)
		locations.PATCH("/:id", adminOnly, locationCtrl.Update)
		locations.DELETE("/:id", adminOnly, locationCtrl.Delete)
	}

	// Pinned reports
	pins := r.Group("/pinned-reports", authed)
	{
		pins.GET("", pinCtrl.List)
		pins.POST("/:id", pinCtrl.Pin)
		pins.GET("/:id", pinCtrl.Detail)
		pins.DELETE("/:id", pinCtrl.Unpin)
		pins.GET("/:id/status", pinCtrl.Status)
	}

	// Stats (admin only)
	stats := r.Group("/stats", adminOnly)
	{
		stats.GET("/overview", statsCtrl.Overview)
		stats.GET("/resolution-rate", statsCtrl.ResolutionRate)
		stats.GET("/resolution-time", statsCtrl.ResolutionTime)
		stats.GET("/monthly-volume", statsCtrl.MonthlyVolume)
		stats.GET("/top-categories", statsCtrl.TopCategories)
		stats.GET("/admin-performance", statsCtrl.AdminPerformance)
		stats.GET("/top-validators", statsCtrl.TopValidators)
		stats.GET("/top-resolvers", statsCtrl.TopResolvers)
		stats.GET("/top-reporters", statsCtrl.TopReporters)
		stats.GET("/department/:department", statsCtrl.Department)
	}

	// Admin dashboard
	admin := r.Group("/admin", adminOnly)
	{
		admin.GET("/dashboard", statsCtrl.Dashboard)
		admin.GET("/activity", statsCtrl.MyActivity)
		admin.GET("/workloads", statsCtrl.Workloads)
	}

	// Uploads
	r.POST("/upload", authed, uploadCtrl.Image)
}
