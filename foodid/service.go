package foodid

import "context"

// FoodIdentityService is the public façade: resolve a food description, then
// score the matched nutrient profile. Creation of contributed entries for
// unresolved foods is deliberately left to the orchestration layer, which may
// first obtain an external nutrient estimate.
type FoodIdentityService struct {
	resolver *Resolver
}

func NewFoodIdentityService(r *Resolver) *FoodIdentityService {
	return &FoodIdentityService{resolver: r}
}

// IdentifyResult pairs the match with its score; Score is nil when the food
// was not resolved.
type IdentifyResult struct {
	Match MatchResult
	Score *ScoreResult
}

func (s *FoodIdentityService) IdentifyAndScore(ctx context.Context, q Query, servingGrams float64) (IdentifyResult, error) {
	if servingGrams <= 0 {
		return IdentifyResult{}, ErrInvalidInput
	}

	match, err := s.resolver.Resolve(ctx, q)
	if err != nil {
		return IdentifyResult{}, err
	}
	if !match.Resolved() {
		return IdentifyResult{Match: match}, nil
	}

	profile, _ := match.Profile()
	score, err := ComputeScore(profile, servingGrams)
	if err != nil {
		return IdentifyResult{}, err
	}
	return IdentifyResult{Match: match, Score: &score}, nil
}
