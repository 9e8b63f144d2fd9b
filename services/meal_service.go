// services/meal_service.go
package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/food-calorie-vision/food-calorie-vision-backend-sub000/config"
	"github.com/food-calorie-vision/food-calorie-vision-backend-sub000/foodid"
	"github.com/food-calorie-vision/food-calorie-vision-backend-sub000/models"
	"github.com/food-calorie-vision/food-calorie-vision-backend-sub000/utils"
)

type MealService struct {
	foodSvc *FoodService
}

func NewMealService(fs *FoodService) *MealService {
	return &MealService{foodSvc: fs}
}

type MealItemRequest struct {
	Name         string   `json:"name"`
	Ingredients  []string `json:"ingredients"`
	CategoryHint string   `json:"category_hint"`
	ServingGrams float64  `json:"serving_grams"`
	PhotoBase64  string   `json:"photo_base64,omitempty"`
}

func (s *MealService) AddMeal(
	ctx context.Context,
	userID uint,
	mealType string,
	ateAt time.Time,
	items []MealItemRequest,
) (*models.Meal, error) {
	// create the parent meal
	meal := &models.Meal{UserID: userID, Type: mealType, AteAt: ateAt}
	if err := config.DB.Create(meal).Error; err != nil {
		return nil, err
	}

	for _, it := range items {
		mi, err := s.buildItem(ctx, userID, meal.ID, it)
		if err != nil {
			return nil, err
		}
		if err := config.DB.Create(mi).Error; err != nil {
			return nil, err
		}
		if mi.Grade == string(foodid.GradePoor) {
			EmitAlert(userID, "grade", fmt.Sprintf("%s scored %d (%s). Consider a richer alternative.",
				mi.FoodName, mi.FinalScore, mi.Grade))
		}
	}

	// reload with items
	var populated models.Meal
	if err := config.DB.Preload("Items").First(&populated, meal.ID).Error; err != nil {
		return nil, err
	}
	return &populated, nil
}

// buildItem resolves and scores one requested food and snapshots the result.
func (s *MealService) buildItem(ctx context.Context, userID, mealID uint, it MealItemRequest) (*models.MealItem, error) {
	serving := it.ServingGrams
	if serving <= 0 {
		serving = 100
	}

	res, err := s.foodSvc.Identify(ctx, userID, IdentifyRequest{
		Name:         it.Name,
		Ingredients:  it.Ingredients,
		CategoryHint: it.CategoryHint,
		ServingGrams: serving,
	})
	if err != nil {
		return nil, err
	}

	mi := &models.MealItem{
		MealID:         mealID,
		FoodName:       it.Name,
		ServingGrams:   serving,
		MatchedVia:     string(res.MatchedVia),
		Confidence:     string(res.Confidence),
		ReferenceValue: int(math.Round(serving)),
		Kcal:           int(math.Round(res.Kcal)),
	}
	if res.Score != nil {
		mi.PositiveScore = int(math.Round(res.Score.PositiveScore))
		mi.NegativeScore = int(math.Round(res.Score.NegativeScore))
		mi.FinalScore = res.Score.FinalScore
		mi.Grade = string(res.Score.Grade)
		mi.CalcMethod = res.Score.CalcMethod
	}
	mi.CatalogEntryID = res.CatalogEntryID
	mi.ContributedFoodID = res.ContributedFoodID

	if it.PhotoBase64 != "" {
		url, err := utils.UploadBase64ImageToS3(it.PhotoBase64, fmt.Sprintf("meals/%d", userID))
		if err != nil {
			return nil, err
		}
		mi.PhotoURL = url
	}
	return mi, nil
}

func (s *MealService) ListMeals(userID uint) ([]models.Meal, error) {
	var meals []models.Meal
	err := config.DB.
		Preload("Items").
		Where("user_id = ?", userID).
		Order("ate_at DESC").
		Find(&meals).Error
	return meals, err
}

func (s *MealService) GetMeal(userID, mealID uint) (*models.Meal, error) {
	var meal models.Meal
	err := config.DB.
		Preload("Items").
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&meal).Error
	if err != nil {
		return nil, err // could be ErrRecordNotFound
	}
	return &meal, nil
}

func (s *MealService) UpdateMeal(
	ctx context.Context,
	userID, mealID uint,
	mealType string,
	ateAt time.Time,
	items []MealItemRequest,
) (*models.Meal, error) {
	var meal models.Meal
	if err := config.DB.
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&meal).Error; err != nil {
		return nil, err
	}
	meal.Type = mealType
	meal.AteAt = ateAt
	if err := config.DB.Save(&meal).Error; err != nil {
		return nil, err
	}

	// delete old items, re-resolve the new list
	if err := config.DB.
		Where("meal_id = ?", meal.ID).
		Delete(&models.MealItem{}).Error; err != nil {
		return nil, err
	}
	for _, it := range items {
		mi, err := s.buildItem(ctx, userID, meal.ID, it)
		if err != nil {
			return nil, err
		}
		if err := config.DB.Create(mi).Error; err != nil {
			return nil, err
		}
	}

	var updated models.Meal
	if err := config.DB.Preload("Items").First(&updated, meal.ID).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *MealService) DeleteMeal(userID, mealID uint) error {
	// ownership check must precede the item delete; meal_id alone would
	// let any caller wipe another user's snapshots
	var meal models.Meal
	if err := config.DB.
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&meal).Error; err != nil {
		return err // could be ErrRecordNotFound
	}
	if err := config.DB.
		Where("meal_id = ?", meal.ID).
		Delete(&models.MealItem{}).Error; err != nil {
		return err
	}
	return config.DB.Delete(&meal).Error
}

func (s *MealService) ListMealsByDateRange(userID uint, from, to time.Time) ([]models.Meal, error) {
	var meals []models.Meal
	err := config.DB.
		Preload("Items").
		Where("user_id = ? AND ate_at >= ? AND ate_at < ?", userID, from, to).
		Order("ate_at DESC").
		Find(&meals).Error
	return meals, err
}

// “Recent meal items” (flat list) – handy for a simple card UI
type RecentMealItem struct {
	ID         uint      `json:"id"`
	MealID     uint      `json:"meal_id"`
	FoodName   string    `json:"food_name"`
	Kcal       int       `json:"kcal"`
	FinalScore int       `json:"final_score"`
	Grade      string    `json:"grade"`
	AteAt      time.Time `json:"ate_at"`
}

func (s *MealService) ListRecentMealItems(userID uint, limit int) ([]RecentMealItem, error) {
	if limit <= 0 {
		limit = 3
	}
	var rows []RecentMealItem
	err := config.DB.
		Table("meal_items").
		Select("meal_items.id, meal_items.meal_id, meal_items.food_name, meal_items.kcal, meal_items.final_score, meal_items.grade, meals.ate_at").
		Joins("JOIN meals ON meals.id = meal_items.meal_id").
		Where("meals.user_id = ?", userID).
		Order("meals.ate_at DESC, meal_items.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
