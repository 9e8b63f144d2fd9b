package main

import (
	"log"

	"github.com/food-calorie-vision/food-calorie-vision-backend-sub000/config"
	"github.com/food-calorie-vision/food-calorie-vision-backend-sub000/controllers"
	"github.com/food-calorie-vision/food-calorie-vision-backend-sub000/foodid"
	"github.com/food-calorie-vision/food-calorie-vision-backend-sub000/routes"
	"github.com/food-calorie-vision/food-calorie-vision-backend-sub000/services"
	"github.com/food-calorie-vision/food-calorie-vision-backend-sub000/utils"
)

func main() {
	config.InitDB()
	utils.InitS3()

	catalog := services.NewCatalogStore(config.DB)
	contributed := services.NewContributedStore(config.DB)
	llm := services.NewLLMService()

	rek, err := services.NewRekognitionService()
	if err != nil {
		log.Fatalf("rekognition init failed: %v", err)
	}

	resolver := foodid.NewResolver(catalog, contributed, llm.Arbitrate)
	identity := foodid.NewFoodIdentityService(resolver)

	foodSvc := services.NewFoodService(identity, catalog, contributed, llm, rek)
	mealSvc := services.NewMealService(foodSvc)

	hub := services.NewRealtimeHub()
	push, err := services.NewPushService(config.DB)
	if err != nil {
		log.Fatalf("push service init failed: %v", err)
	}
	services.InitAlertDeps(config.DB, hub, push)

	r := routes.SetupRouter(routes.Controllers{
		Food:     controllers.NewFoodController(foodSvc, llm),
		Meal:     controllers.NewMealController(mealSvc),
		Device:   controllers.NewDeviceController(push),
		Realtime: controllers.NewRealtimeController(hub),
		Dev:      controllers.NewDevController(catalog, push),
	})
	r.Run(":8080")
}
