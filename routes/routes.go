package routes

import (
	"thevoices-backend/config"
	"thevoices-backend/controllers"
	"thevoices-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"https://thevoices.netlify.app",
			"https://thevoices-gamma.vercel.app",
			"http://localhost:5173",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/api/auth")
	{
		auth.POST("/signup", controllers.Signup)
		auth.POST("/login", controllers.Login)
		auth.POST("/logout", controllers.Logout)
		auth.POST("/forgot-password", controllers.ForgotPassword)
		auth.POST("/reset-password", controllers.ResetPassword)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)

		profile := auth.Group("/profile")
		{
			profile.GET("", controllers.GetProfile)
			profile.PUT("", controllers.UpdateProfile)
		}
	}

	writingPlan := r.Group("/api/writingPlan")
	writingPlan.Use(utils.AuthMiddleware())
	{
		writingPlan.GET("", controllers.FetchWritingPlan)
		writingPlan.POST("/createPlan", controllers.CreateWritingPlan)
		writingPlan.POST("/:planId/updatePlan", controllers.UpdateWritingPlan)
	}

	notifications := r.Group("/api/notifications")
	notifications.Use(utils.AuthMiddleware())
	{
		notifications.GET("", controllers.GetNotifications)
		notifications.POST("/save-subscription", controllers.SaveSubscription)
		notifications.POST("/:id/read", controllers.MarkNotificationRead)
	}

	return r
}
