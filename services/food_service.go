package services

import (
	"context"
	"fmt"

	"github.com/food-calorie-vision/food-calorie-vision-backend-sub000/foodid"
	"github.com/food-calorie-vision/food-calorie-vision-backend-sub000/models"
)

const searchResultLimit = 25

// FoodService orchestrates the identity core: search, identify+score, photo
// recognition, and the unresolved path (LLM nutrient estimate → contributed
// entry).
type FoodService struct {
	identity    *foodid.FoodIdentityService
	catalog     *CatalogStore
	contributed *ContributedStore
	llm         *LLMService
	rek         *RekognitionService
}

func NewFoodService(identity *foodid.FoodIdentityService, catalog *CatalogStore, contributed *ContributedStore, llm *LLMService, rek *RekognitionService) *FoodService {
	return &FoodService{
		identity:    identity,
		catalog:     catalog,
		contributed: contributed,
		llm:         llm,
		rek:         rek,
	}
}

// Search is the manual catalog lookup behind /food/search.
func (s *FoodService) Search(ctx context.Context, q string) ([]models.FoodCatalogEntry, error) {
	return s.catalog.SearchEntries(ctx, q, searchResultLimit)
}

// IdentifyRequest carries one food description to resolve and score.
type IdentifyRequest struct {
	Name         string   `json:"name" binding:"required"`
	Ingredients  []string `json:"ingredients"`
	CategoryHint string   `json:"category_hint"`
	ServingGrams float64  `json:"serving_grams"`
}

type IdentifyResponse struct {
	FoodName   string              `json:"food_name"`
	Resolved   bool                `json:"resolved"`
	MatchedVia foodid.MatchTier    `json:"matched_via,omitempty"`
	Confidence foodid.Confidence   `json:"confidence,omitempty"`
	Reason     string              `json:"reason,omitempty"`
	Score      *foodid.ScoreResult `json:"score,omitempty"`
	Kcal       float64             `json:"kcal"` // scaled to the serving

	CatalogEntryID    *uint `json:"catalog_entry_id,omitempty"`
	ContributedFoodID *uint `json:"contributed_food_id,omitempty"`
}

// Identify resolves and scores one food. When every tier misses it falls
// back to an LLM nutrient estimate, registers the result as a contributed
// entry for the user, and scores that.
func (s *FoodService) Identify(ctx context.Context, userID uint, req IdentifyRequest) (*IdentifyResponse, error) {
	serving := req.ServingGrams
	if serving <= 0 {
		serving = 100
	}

	res, err := s.identity.IdentifyAndScore(ctx, foodid.Query{
		Name:         req.Name,
		Ingredients:  req.Ingredients,
		CategoryHint: req.CategoryHint,
		UserID:       userID,
	}, serving)
	if err != nil {
		return nil, err
	}

	if res.Match.Resolved() {
		return identifyResponse(req.Name, serving, res), nil
	}

	// Unresolved: estimate, register, score. The core never does this
	// itself; the decision to create catalog data belongs here.
	entry, err := s.registerEstimated(ctx, userID, req)
	if err != nil {
		return nil, err
	}
	score, err := foodid.ComputeScore(entry.Profile, serving)
	if err != nil {
		return nil, err
	}
	return &IdentifyResponse{
		FoodName:          req.Name,
		Resolved:          true,
		MatchedVia:        foodid.TierContributed,
		Confidence:        foodid.ConfidenceLow,
		Score:             &score,
		Kcal:              entry.Kcal * serving / entry.Profile.ReferenceWeightGrams,
		ContributedFoodID: &entry.ID,
	}, nil
}

func (s *FoodService) registerEstimated(ctx context.Context, userID uint, req IdentifyRequest) (*foodid.ContributedEntry, error) {
	profile, kcal, err := s.llm.EstimateNutrients(ctx, req.Name, req.Ingredients)
	if err != nil {
		return nil, fmt.Errorf("nutrient estimate failed: %w", err)
	}

	entry := &foodid.ContributedEntry{
		UserID:   userID,
		Name:     req.Name,
		Category: req.CategoryHint,
		Kcal:     kcal,
		Profile:  profile,
	}
	if err := s.contributed.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// RecognizeAndIdentify turns a meal photo into labels and feeds the top
// label (plus the rest as ingredient hints) through Identify.
func (s *FoodService) RecognizeAndIdentify(ctx context.Context, userID uint, base64Img string, servingGrams float64) (*IdentifyResponse, error) {
	name, ingredients, err := s.rek.RecognizeFood(ctx, base64Img)
	if err != nil {
		return nil, err
	}
	return s.Identify(ctx, userID, IdentifyRequest{
		Name:         name,
		Ingredients:  ingredients,
		ServingGrams: servingGrams,
	})
}

// ScoreProfile scores a manually-entered nutrient profile without running
// matching at all.
func (s *FoodService) ScoreProfile(profile foodid.NutrientProfile, servingGrams float64) (foodid.ScoreResult, error) {
	return foodid.ComputeScore(profile, servingGrams)
}

func identifyResponse(name string, serving float64, res foodid.IdentifyResult) *IdentifyResponse {
	out := &IdentifyResponse{
		FoodName:   name,
		Resolved:   true,
		MatchedVia: res.Match.MatchedVia,
		Confidence: res.Match.Confidence,
		Score:      res.Score,
	}
	if profile, ok := res.Match.Profile(); ok && profile.ReferenceWeightGrams > 0 {
		out.Kcal = res.Match.Kcal() * serving / profile.ReferenceWeightGrams
	}
	if res.Match.Catalog != nil {
		id := res.Match.Catalog.ID
		out.CatalogEntryID = &id
	}
	if res.Match.Contributed != nil {
		id := res.Match.Contributed.ID
		out.ContributedFoodID = &id
	}
	return out
}
