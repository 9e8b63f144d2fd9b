package controllers

import (
	"net/http"

	"github.com/food-calorie-vision/food-calorie-vision-backend-sub000/foodid"
	"github.com/food-calorie-vision/food-calorie-vision-backend-sub000/services"

	"github.com/gin-gonic/gin"
)

type FoodController struct {
	Food *services.FoodService
	LLM  *services.LLMService
}

// constructor
func NewFoodController(fs *services.FoodService, llm *services.LLMService) *FoodController {
	return &FoodController{Food: fs, LLM: llm}
}

// GET /food/search?q=apple
func (fc *FoodController) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing q"})
		return
	}
	out, err := fc.Food.Search(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": out})
}

// POST /food/identify  { "name": "...", "ingredients": [...], "serving_grams": 250 }
func (fc *FoodController) Identify(c *gin.Context) {
	uid := c.GetUint("userID")

	var req services.IdentifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := fc.Food.Identify(c.Request.Context(), uid, req)
	if err != nil {
		if err == foodid.ErrInvalidInput {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /food/recognize  { "image_base64": "data:…", "serving_grams": 250 }
func (fc *FoodController) Recognize(c *gin.Context) {
	uid := c.GetUint("userID")

	var req struct {
		ImageBase64  string  `json:"image_base64" binding:"required"`
		ServingGrams float64 `json:"serving_grams"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	out, err := fc.Food.RecognizeAndIdentify(c.Request.Context(), uid, req.ImageBase64, req.ServingGrams)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

type ScoreRequest struct {
	ReferenceWeightGrams float64 `json:"reference_weight_grams"`
	ServingGrams         float64 `json:"serving_grams" binding:"required"`

	Protein      float64 `json:"protein_g"`
	Carbohydrate float64 `json:"carbohydrate_g"`
	Fat          float64 `json:"fat_g"`
	Fiber        float64 `json:"fiber_g"`

	VitaminA  float64 `json:"vitamin_a_ug"`
	VitaminC  float64 `json:"vitamin_c_mg"`
	VitaminE  float64 `json:"vitamin_e_mg"`
	Calcium   float64 `json:"calcium_mg"`
	Iron      float64 `json:"iron_mg"`
	Potassium float64 `json:"potassium_mg"`
	Magnesium float64 `json:"magnesium_mg"`

	SaturatedFat float64 `json:"saturated_fat_g"`
	AddedSugar   float64 `json:"added_sugar_g"`
	Sodium       float64 `json:"sodium_mg"`
}

// POST /food/score scores a nutrient profile without touching the catalog.
func (fc *FoodController) Score(c *gin.Context) {
	var req ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile := foodid.NutrientProfile{
		ReferenceWeightGrams: req.ReferenceWeightGrams,
		Protein:              req.Protein,
		Carbohydrate:         req.Carbohydrate,
		Fat:                  req.Fat,
		Fiber:                req.Fiber,
		VitaminA:             req.VitaminA,
		VitaminC:             req.VitaminC,
		VitaminE:             req.VitaminE,
		Calcium:              req.Calcium,
		Iron:                 req.Iron,
		Potassium:            req.Potassium,
		Magnesium:            req.Magnesium,
		SaturatedFat:         req.SaturatedFat,
		AddedSugar:           req.AddedSugar,
		Sodium:               req.Sodium,
	}
	if profile.ReferenceWeightGrams == 0 {
		profile.ReferenceWeightGrams = 100
	}

	result, err := fc.Food.ScoreProfile(profile, req.ServingGrams)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GET /food/advice summarizes today's logged meals via the LLM.
func (fc *FoodController) Advice(c *gin.Context) {
	uid := c.GetUint("userID")

	tips, err := fc.LLM.Advice(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"advice": tips})
}
