package app

import (
	"learnai_backend/docs"
	"learnai_backend/internal/middleware"
	"learnai_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")

	// 1. 公共路由(无需登录)
	api.GET("/health", c.health.HealthCheck)
	api.POST("/register", c.auth.Register)
	api.POST("/login", c.auth.Login)
	api.GET("/courses", c.course.ListCourses)
	api.GET("/courses/:id", c.course.GetCourse)

	// 2. 可选登录：匿名访问返回空结果
	optional := api.Group("")
	optional.Use(middleware.OptionalAuthMiddleware(a.services.auth))
	{
		optional.GET("/recommendations", c.recommendation.GetRecommendations)
		optional.GET("/feedback", c.recommendation.GetFeedback)
	}

	// 3. 需要登录
	authGroup := api.Group("")
	authGroup.Use(middleware.AuthMiddleware(a.services.auth))
	{
		authGroup.POST("/logout", c.auth.Logout)
		authGroup.GET("/profile", c.auth.GetProfile)
		authGroup.PUT("/user/profile", c.profile.UpdateProfile)
		authGroup.POST("/profile/adapt", c.profile.AdaptProfile)
		authGroup.POST("/profile/refresh", c.profile.RefreshProfile)
		authGroup.GET("/profile/insights", c.profile.Insights)

		authGroup.POST("/activities", c.activity.RecordActivity)
		authGroup.GET("/activities/recent", c.activity.RecentActivities)
		authGroup.POST("/courses/:id/enroll", c.course.Enroll)
		authGroup.GET("/progress", c.activity.GetProgress)
		authGroup.GET("/progress/weekly", c.activity.WeeklyProgress)
	}
}
