package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/food-calorie-vision/food-calorie-vision-backend-sub000/config"
	"github.com/food-calorie-vision/food-calorie-vision-backend-sub000/foodid"
	"github.com/food-calorie-vision/food-calorie-vision-backend-sub000/models"
)

// LLMService wraps the HF Inference API for the three language-model jobs in
// this backend: nutrient estimation for unresolved foods, candidate
// arbitration for the resolver, and daily diet advice.
type LLMService struct {
	client *http.Client
	token  string
	model  string
}

func NewLLMService() *LLMService {
	model := os.Getenv("HUGGINGFACE_MODEL")
	if model == "" {
		model = "google/flan-t5-small"
	}
	return &LLMService{
		client: &http.Client{Timeout: 20 * time.Second},
		token:  os.Getenv("HUGGINGFACE_TOKEN"),
		model:  model,
	}
}

func (l *LLMService) generate(ctx context.Context, prompt string) (string, error) {
	if l.token == "" {
		return "", fmt.Errorf("HUGGINGFACE_TOKEN not set")
	}

	body := map[string]any{
		"inputs": prompt,
		"parameters": map[string]any{
			"max_new_tokens": 256,
			"temperature":    0.2,
		},
	}
	b, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, "POST",
		fmt.Sprintf("https://api-inference.huggingface.co/models/%s", l.model),
		bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+l.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("inference API returned %d: %s", resp.StatusCode, string(raw))
	}

	var out []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(raw, &out); err != nil || len(out) == 0 {
		return "", fmt.Errorf("unexpected inference response: %s", string(raw))
	}
	return out[0].GeneratedText, nil
}

// EstimateNutrients asks the model for a per-100g nutrient estimate of a
// food the catalogs could not resolve. The caller decides whether to persist
// it as a contributed entry.
func (l *LLMService) EstimateNutrients(ctx context.Context, name string, ingredients []string) (foodid.NutrientProfile, float64, error) {
	var sb bytes.Buffer
	sb.WriteString("Estimate the nutrition of the following food per 100 grams.\n")
	fmt.Fprintf(&sb, "Food: %s\n", name)
	if len(ingredients) > 0 {
		fmt.Fprintf(&sb, "Ingredients: %s\n", strings.Join(ingredients, ", "))
	}
	sb.WriteString("Answer with only a JSON object with numeric fields: " +
		"kcal, protein_g, carbohydrate_g, fat_g, fiber_g, vitamin_a_ug, vitamin_c_mg, " +
		"vitamin_e_mg, calcium_mg, iron_mg, potassium_mg, magnesium_mg, " +
		"saturated_fat_g, added_sugar_g, sodium_mg.")

	text, err := l.generate(ctx, sb.String())
	if err != nil {
		return foodid.NutrientProfile{}, 0, err
	}
	return parseNutrientEstimate(text)
}

type nutrientEstimate struct {
	Kcal         float64 `json:"kcal"`
	Protein      float64 `json:"protein_g"`
	Carbohydrate float64 `json:"carbohydrate_g"`
	Fat          float64 `json:"fat_g"`
	Fiber        float64 `json:"fiber_g"`
	VitaminA     float64 `json:"vitamin_a_ug"`
	VitaminC     float64 `json:"vitamin_c_mg"`
	VitaminE     float64 `json:"vitamin_e_mg"`
	Calcium      float64 `json:"calcium_mg"`
	Iron         float64 `json:"iron_mg"`
	Potassium    float64 `json:"potassium_mg"`
	Magnesium    float64 `json:"magnesium_mg"`
	SaturatedFat float64 `json:"saturated_fat_g"`
	AddedSugar   float64 `json:"added_sugar_g"`
	Sodium       float64 `json:"sodium_mg"`
}

// parseNutrientEstimate pulls the first JSON object out of the model reply;
// models routinely wrap it in prose.
func parseNutrientEstimate(text string) (foodid.NutrientProfile, float64, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return foodid.NutrientProfile{}, 0, fmt.Errorf("no JSON object in model reply")
	}

	var est nutrientEstimate
	if err := json.Unmarshal([]byte(text[start:end+1]), &est); err != nil {
		return foodid.NutrientProfile{}, 0, fmt.Errorf("bad nutrient estimate: %w", err)
	}

	p := foodid.NutrientProfile{
		ReferenceWeightGrams: 100,
		Protein:              est.Protein,
		Carbohydrate:         est.Carbohydrate,
		Fat:                  est.Fat,
		Fiber:                est.Fiber,
		VitaminA:             est.VitaminA,
		VitaminC:             est.VitaminC,
		VitaminE:             est.VitaminE,
		Calcium:              est.Calcium,
		Iron:                 est.Iron,
		Potassium:            est.Potassium,
		Magnesium:            est.Magnesium,
		SaturatedFat:         est.SaturatedFat,
		AddedSugar:           est.AddedSugar,
		Sodium:               est.Sodium,
	}
	return p, est.Kcal, nil
}

// Arbitrate is a foodid.Arbitrator: it shows the model the bounded candidate
// list and asks for the best code, or NONE.
func (l *LLMService) Arbitrate(ctx context.Context, q foodid.Query, candidates []foodid.CatalogEntry) (uint, bool, error) {
	var sb bytes.Buffer
	fmt.Fprintf(&sb, "A user ate %q", q.Name)
	if len(q.Ingredients) > 0 {
		fmt.Fprintf(&sb, " (ingredients: %s)", strings.Join(q.Ingredients, ", "))
	}
	sb.WriteString(". Which catalog entry matches best?\n")
	for _, c := range candidates {
		fmt.Fprintf(&sb, "%d: %s (%s)\n", c.ID, c.Name, c.Category)
	}
	sb.WriteString("Answer with only the number, or NONE if nothing matches.")

	text, err := l.generate(ctx, sb.String())
	if err != nil {
		return 0, false, err
	}
	return parseArbitration(text, candidates)
}

func parseArbitration(text string, candidates []foodid.CatalogEntry) (uint, bool, error) {
	answer := strings.TrimSpace(text)
	if strings.EqualFold(answer, "none") {
		return 0, false, nil
	}
	// keep only the leading digits, models love trailing punctuation
	digits := answer
	for i, r := range answer {
		if r < '0' || r > '9' {
			digits = answer[:i]
			break
		}
	}
	id, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, false, nil
	}
	for _, c := range candidates {
		if c.ID == uint(id) {
			return uint(id), true, nil
		}
	}
	return 0, false, nil
}

// Advice summarizes today's logged meals and their grades into 3–5 concrete
// suggestions.
func (l *LLMService) Advice(ctx context.Context, userID uint) ([]string, error) {
	var items []models.MealItem
	today := time.Now().Format("2006-01-02")
	if err := config.DB.WithContext(ctx).
		Table("meal_items mi").
		Joins("JOIN meals m ON m.id = mi.meal_id").
		Where("m.user_id = ? AND DATE(m.ate_at) = ?", userID, today).
		Select("mi.food_name, mi.serving_grams, mi.kcal, mi.final_score, mi.grade").
		Scan(&items).Error; err != nil {
		return nil, fmt.Errorf("db error fetching meals: %w", err)
	}

	var sb bytes.Buffer
	sb.WriteString("Today's meals with nutrient-richness grades:\n")
	if len(items) == 0 {
		sb.WriteString("- (no meals logged yet)\n")
	} else {
		for _, it := range items {
			fmt.Fprintf(&sb, "- %s: %.0fg, %d kcal, score %d (%s)\n",
				it.FoodName, it.ServingGrams, it.Kcal, it.FinalScore, it.Grade)
		}
	}
	sb.WriteString("\nSuggest 3-5 practical adjustments to raise the low-graded items, " +
		"focusing on fiber, micronutrients, and less added sugar/sodium. Return plain bullet points.")

	text, err := l.generate(ctx, sb.String())
	if err != nil {
		return nil, err
	}

	var recs []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "-*• "))
		if line != "" {
			recs = append(recs, line)
		}
	}
	return recs, nil
}
