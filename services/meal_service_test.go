package services

import (
	"testing"

	"github.com/food-calorie-vision/food-calorie-vision-backend-sub000/config"
	"github.com/food-calorie-vision/food-calorie-vision-backend-sub000/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Meal{}, &models.MealItem{}))
	config.DB = db
	return db
}

func seedMeal(t *testing.T, db *gorm.DB, userID uint) *models.Meal {
	t.Helper()
	meal := &models.Meal{UserID: userID, Type: "Lunch"}
	require.NoError(t, db.Create(meal).Error)
	item := &models.MealItem{MealID: meal.ID, FoodName: "lentil soup", FinalScore: 82, Grade: "good"}
	require.NoError(t, db.Create(item).Error)
	return meal
}

func countItems(t *testing.T, db *gorm.DB, mealID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.MealItem{}).Where("meal_id = ?", mealID).Count(&n).Error)
	return n
}

func TestDeleteMealRejectsNonOwner(t *testing.T) {
	db := newTestDB(t)
	meal := seedMeal(t, db, 1)

	svc := NewMealService(nil)

	err := svc.DeleteMeal(2, meal.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// neither the meal nor its item snapshots may be touched
	assert.EqualValues(t, 1, countItems(t, db, meal.ID))
	var meals int64
	require.NoError(t, db.Model(&models.Meal{}).Where("id = ?", meal.ID).Count(&meals).Error)
	assert.EqualValues(t, 1, meals)
}

func TestDeleteMealRemovesMealAndItems(t *testing.T) {
	db := newTestDB(t)
	meal := seedMeal(t, db, 7)

	svc := NewMealService(nil)
	require.NoError(t, svc.DeleteMeal(7, meal.ID))

	assert.Zero(t, countItems(t, db, meal.ID))
	var meals int64
	require.NoError(t, db.Model(&models.Meal{}).Where("id = ?", meal.ID).Count(&meals).Error)
	assert.Zero(t, meals)
}
