package foodid

import (
	"errors"
	"math"
)

// ErrInvalidInput flags a programming-contract violation (non-positive
// serving or reference weight). Callers must reject the computation instead
// of falling back to a zero score.
var ErrInvalidInput = errors.New("foodid: invalid input")

// CalcMethodNRF labels the scoring formula version persisted alongside each
// stored score, so historical records survive future formula revisions.
const CalcMethodNRF = "nrf-v1"

type Grade string

const (
	GradeExcellent        Grade = "excellent"
	GradeGood             Grade = "good"
	GradeFair             Grade = "fair"
	GradeNeedsImprovement Grade = "needs improvement"
	GradePoor             Grade = "poor"
)

// ScoreResult is the output of ComputeScore. Breakdown maps each scored
// nutrient to its percent-of-daily-value, capped at 100.
type ScoreResult struct {
	PositiveScore float64            `json:"positive_score"`
	NegativeScore float64            `json:"negative_score"`
	FinalScore    int                `json:"final_score"`
	Grade         Grade              `json:"grade"`
	Breakdown     map[string]float64 `json:"breakdown"`
	CalcMethod    string             `json:"calc_method"`
}

// ComputeScore converts a nutrient profile into a 0–100 nutrient-richness
// score with a letter-grade band. The computation always normalizes the
// profile to 100g of food using the profile's own reference weight;
// servingGrams is validated here but only used by callers that scale the
// stored result to an actual intake.
//
// The floor rules and cap values below are behavior contracts: grade-based
// UI thresholds depend on them, and the rules are evaluated in order with
// the first match winning.
func ComputeScore(p NutrientProfile, servingGrams float64) (ScoreResult, error) {
	if servingGrams <= 0 || p.ReferenceWeightGrams <= 0 {
		return ScoreResult{}, ErrInvalidInput
	}

	scale := 100.0 / p.ReferenceWeightGrams
	pct := func(amount, dv float64) float64 {
		return math.Min(100, amount*scale/dv*100)
	}

	breakdown := make(map[string]float64, 12)

	proteinPct := pct(p.Protein, dvProtein)
	fiberPct := pct(p.Fiber, dvFiber)
	breakdown[NutrientProtein] = proteinPct
	breakdown[NutrientFiber] = fiberPct

	// Base score: protein and fiber are the primary quality signals.
	base := math.Min(60, proteinPct*0.6) + math.Min(40, fiberPct*0.4)

	// Secondary score: average DV% of the present vitamins/minerals,
	// weighted by how many of the 7 are present at all.
	var secondarySum float64
	secondaryCount := 0
	for _, n := range p.secondaryNutrients() {
		v := pct(n.amount, n.dv)
		breakdown[n.key] = v
		if n.amount > 0 {
			secondarySum += v
			secondaryCount++
		}
	}
	var secondaryAvg float64
	if secondaryCount > 0 {
		secondaryAvg = secondarySum / float64(secondaryCount)
	}
	coverage := float64(secondaryCount) / 7.0
	secondary := math.Min(50, secondaryAvg*coverage)

	positive := math.Min(100, base+secondary)

	// Penalty: mean of the present limiting nutrients, 15%-weighted so
	// typical sodium/sugar content does not sink otherwise healthy foods.
	var limitingSum float64
	limitingCount := 0
	for _, n := range p.limitingNutrients() {
		v := pct(n.amount, n.dv)
		breakdown[n.key] = v
		if n.amount > 0 {
			limitingSum += v
			limitingCount++
		}
	}
	var negative float64
	if limitingCount > 0 {
		negative = limitingSum / float64(limitingCount)
	}

	raw := positive - negative*0.15

	// Floor rules, first match wins. They guarantee whole foods with high
	// fiber or broad micronutrient coverage never fall below a usable
	// threshold.
	var floor float64
	switch {
	case base >= 50:
		floor = 80
	case base >= 30:
		floor = 70
	case fiberPct >= 20 || secondaryCount >= 4:
		floor = 80
	case fiberPct >= 15 || secondaryCount >= 3:
		floor = 75
	case base > 0:
		floor = 60
	}
	score := math.Max(raw, floor)

	// Vitamin/mineral bonus, same shape as the secondary score but capped
	// at 30 so full coverage at full DV earns exactly the cap.
	score += math.Min(30, secondaryAvg*coverage*0.3)

	// Distinct reward for high-protein foods.
	if proteinPct >= 30 {
		score += math.Min(20, proteinPct/2.5)
	}

	final := math.Max(0, math.Min(100, score))
	rounded := int(math.Round(final))

	return ScoreResult{
		PositiveScore: positive,
		NegativeScore: negative,
		FinalScore:    rounded,
		Grade:         gradeFor(rounded),
		Breakdown:     breakdown,
		CalcMethod:    CalcMethodNRF,
	}, nil
}

func gradeFor(score int) Grade {
	switch {
	case score >= 90:
		return GradeExcellent
	case score >= 75:
		return GradeGood
	case score >= 50:
		return GradeFair
	case score >= 25:
		return GradeNeedsImprovement
	default:
		return GradePoor
	}
}
