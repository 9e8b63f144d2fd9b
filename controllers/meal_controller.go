package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/food-calorie-vision/food-calorie-vision-backend-sub000/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MealController struct {
	Meals *services.MealService
}

// constructor
func NewMealController(ms *services.MealService) *MealController {
	return &MealController{Meals: ms}
}

type mealBody struct {
	Type  string                     `json:"type"`
	AteAt time.Time                  `json:"ate_at"`
	Items []services.MealItemRequest `json:"items"`
}

func (mc *MealController) LogMeal(c *gin.Context) {
	uid := c.GetUint("userID")

	var body mealBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.AteAt.IsZero() {
		body.AteAt = time.Now()
	}

	meal, err := mc.Meals.AddMeal(c.Request.Context(), uid, body.Type, body.AteAt, body.Items)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, meal)
}

// GET /meals?from=2026-08-01&to=2026-08-31 (range optional)
func (mc *MealController) ListMeals(c *gin.Context) {
	uid := c.GetUint("userID")

	fromStr, toStr := c.Query("from"), c.Query("to")
	if fromStr != "" && toStr != "" {
		from, err1 := time.Parse("2006-01-02", fromStr)
		to, err2 := time.Parse("2006-01-02", toStr)
		if err1 != nil || err2 != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date range, want YYYY-MM-DD"})
			return
		}
		meals, err := mc.Meals.ListMealsByDateRange(uid, from, to.AddDate(0, 0, 1))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, meals)
		return
	}

	meals, err := mc.Meals.ListMeals(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meals)
}

func (mc *MealController) GetMeal(c *gin.Context) {
	uid := c.GetUint("userID")
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	meal, err := mc.Meals.GetMeal(uid, uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (mc *MealController) UpdateMeal(c *gin.Context) {
	uid := c.GetUint("userID")
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	var body mealBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.AteAt.IsZero() {
		body.AteAt = time.Now()
	}

	meal, err := mc.Meals.UpdateMeal(c.Request.Context(), uid, uint(id), body.Type, body.AteAt, body.Items)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (mc *MealController) DeleteMeal(c *gin.Context) {
	uid := c.GetUint("userID")
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	if err := mc.Meals.DeleteMeal(uid, uint(id)); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "meal deleted"})
}

// GET /meals/recent?limit=10
func (mc *MealController) RecentItems(c *gin.Context) {
	uid := c.GetUint("userID")

	limit := 10
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	items, err := mc.Meals.ListRecentMealItems(uid, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}
