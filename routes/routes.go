package routes

import (
	"github.com/food-calorie-vision/food-calorie-vision-backend-sub000/controllers"
	"github.com/food-calorie-vision/food-calorie-vision-backend-sub000/middlewares"

	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Food     *controllers.FoodController
	Meal     *controllers.MealController
	Device   *controllers.DeviceController
	Realtime *controllers.RealtimeController
	Dev      *controllers.DevController
}

func SetupRouter(ctl Controllers) *gin.Engine {
	r := gin.Default()

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/verify-mfa", controllers.VerifyMFA)
	}

	// Protected user routes
	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", controllers.GetProfile)
		user.PUT("/profile", controllers.UpdateProfile)
	}

	// Food identification and scoring
	food := r.Group("/food")
	food.Use(middlewares.AuthMiddleware())
	{
		food.GET("/search", ctl.Food.Search)
		food.POST("/identify", ctl.Food.Identify)
		food.POST("/recognize", ctl.Food.Recognize)
		food.POST("/score", ctl.Food.Score)
		food.GET("/advice", ctl.Food.Advice)
	}

	// Meal logging
	meals := r.Group("/meals")
	meals.Use(middlewares.AuthMiddleware())
	{
		meals.POST("", ctl.Meal.LogMeal)
		meals.GET("", ctl.Meal.ListMeals)
		meals.GET("/recent", ctl.Meal.RecentItems)
		meals.GET("/:id", ctl.Meal.GetMeal)
		meals.PUT("/:id", ctl.Meal.UpdateMeal)
		meals.DELETE("/:id", ctl.Meal.DeleteMeal)
	}

	// Push device registration
	devices := r.Group("/devices")
	devices.Use(middlewares.AuthMiddleware())
	{
		devices.POST("/register", ctl.Device.Register)
		devices.POST("/notifications/toggle", ctl.Device.ToggleNotifications)
	}

	// Alert history
	alerts := r.Group("/alerts")
	alerts.Use(middlewares.AuthMiddleware())
	{
		alerts.GET("", controllers.ListAlerts)
		alerts.POST("/:id/read", controllers.MarkAlertRead)
	}

	// Realtime alerts over websocket
	ws := r.Group("/ws")
	ws.Use(middlewares.AuthMiddleware())
	{
		ws.GET("/alerts", ctl.Realtime.AlertsWS)
	}

	// Dev helpers: catalog seeding, push test, image upload
	dev := r.Group("/dev")
	dev.Use(middlewares.AuthMiddleware())
	{
		dev.POST("/catalog/import", ctl.Dev.ImportCatalog)
		dev.POST("/push-test", ctl.Dev.PushTest)
		dev.POST("/upload-image", controllers.DevUploadImage)
	}

	return r
}
