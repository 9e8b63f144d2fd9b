package foodid

import "context"

// Query describes one food to resolve. Ingredients and CategoryHint are
// optional; UserID enables the contributed-catalog tier.
type Query struct {
	Name         string
	Ingredients  []string
	CategoryHint string
	UserID       uint
}

// MatchTier records which resolution tier produced the match.
type MatchTier string

const (
	TierExactName   MatchTier = "exact-name"
	TierContributed MatchTier = "contributed"
	TierScored      MatchTier = "scored"
	TierArbitrated  MatchTier = "arbitrated"
	TierCategory    MatchTier = "category-fallback"
)

// Confidence is surfaced to callers so low-confidence fallbacks can carry a
// disclaimer in the product UI.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

const ReasonNoCandidate = "no-candidate"

// MatchResult references exactly one catalog or contributed entry when
// resolved; Reason is set instead when unresolved.
type MatchResult struct {
	Catalog     *CatalogEntry
	Contributed *ContributedEntry
	MatchedVia  MatchTier
	Confidence  Confidence
	Reason      string
}

func (m MatchResult) Resolved() bool {
	return m.Catalog != nil || m.Contributed != nil
}

// Profile returns the matched entry's nutrient profile.
func (m MatchResult) Profile() (NutrientProfile, bool) {
	switch {
	case m.Catalog != nil:
		return m.Catalog.Profile, true
	case m.Contributed != nil:
		return m.Contributed.Profile, true
	default:
		return NutrientProfile{}, false
	}
}

func (m MatchResult) DisplayName() string {
	switch {
	case m.Catalog != nil:
		return m.Catalog.Name
	case m.Contributed != nil:
		return m.Contributed.Name
	default:
		return ""
	}
}

// Kcal returns the matched entry's energy per its reference weight.
func (m MatchResult) Kcal() float64 {
	switch {
	case m.Catalog != nil:
		return m.Catalog.Kcal
	case m.Contributed != nil:
		return m.Contributed.Kcal
	default:
		return 0
	}
}

func unresolved(reason string) MatchResult {
	return MatchResult{Reason: reason}
}

// Arbitrator is an optional caller-supplied fallback (e.g. an LLM-backed
// chooser) consulted when weighted scoring finds no acceptable candidate.
// It receives a bounded candidate list and returns the chosen entry ID, or
// ok=false for "none".
type Arbitrator func(ctx context.Context, query Query, candidates []CatalogEntry) (chosenID uint, ok bool, err error)
