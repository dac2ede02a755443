package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/CircleTalk/controllers"
	"github.com/CircleTalk/initializers"
	"github.com/CircleTalk/middlewares"
	"github.com/CircleTalk/services"
)

func init() {
	initializers.LoadEnv()
	initializers.ConnectDB()
	services.InitPushNotificationService()
	services.InitEmailService()
}

func main() {
	router := gin.Default()
	router.Use(middlewares.RequestID)

	getKey := func(c *gin.Context) string {
		if gin.Mode() == gin.DebugMode {
			return c.FullPath()
		}
		return c.ClientIP()
	}

	router.POST("/login", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.UserLogin)
	router.POST("/signup", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.UserSignup)
	router.GET("/ping", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.Ping)

	auth := router.Group("/")
	auth.Use(middlewares.CheckAuth)
	auth.Use(middlewares.RateLimitMiddleware(10, 10, getKey))
	{
		// user routes
		auth.GET("/users/me", controllers.GetUserProfile)
		auth.POST("/users/push-token", controllers.StorePushToken)

		// feed routes
		auth.GET("/feed", controllers.GetFeed)
		auth.POST("/feed/posts", controllers.CreateFeedPost)

		// comment routes
		auth.POST("/posts/:post_id/replies", controllers.CreateReply)
		auth.PUT("/comments/:comment_id", controllers.UpdateComment)
		auth.DELETE("/comments/:comment_id", controllers.DeleteComment)
		auth.POST("/comments/:comment_id/report", controllers.ReportComment)

		// group routes
		auth.POST("/groups", controllers.CreateGroup)
		auth.GET("/groups/:group_profile_id", controllers.GetGroup)
		auth.GET("/groups/:group_profile_id/feed", controllers.GetGroupFeed)
		auth.POST("/groups/:group_profile_id/posts", controllers.CreateGroupPost)
		auth.POST("/groups/:group_profile_id/join", controllers.JoinGroup)
		auth.GET("/groups/:group_profile_id/members", controllers.GetGroupMembers)

		// admin only routes
		admin := auth.Group("/")
		admin.Use(middlewares.CheckAdmin)
		admin.Use(middlewares.RateLimitMiddleware(5, 5, getKey))
		{
			admin.GET("/groups", controllers.GetAllGroups)
			admin.PATCH("/groups/:group_profile_id/active", controllers.ToggleGroupActive)
			admin.PATCH("/users/:user_profile_id/admin", controllers.ToggleUserAdmin)
			admin.GET("/settings", controllers.GetSettings)
			admin.PUT("/settings/feature-slot", controllers.AssignFeatureSlot)
		}
	}

	if err := router.Run(); err != nil {
		log.Fatal(err)
	}
}
