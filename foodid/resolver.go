package foodid

import (
	"context"
	"strings"
)

// NameSeparator joins the category segment and the descriptor segment of a
// composite catalog name ("stew_pork-head").
const NameSeparator = "_"

// candidateLimit caps every catalog search issued by the resolver so tail
// latency stays bounded regardless of catalog size.
const candidateLimit = 30

// acceptScore is the minimum weighted-match score Tier 3 accepts.
const acceptScore = 20

// popularUsageMin gates the shared contributed-food pool: entries used fewer
// times are visible only to their owner.
const popularUsageMin = 3

// foodTypeKeywords is the fixed vocabulary of preparation/dish keywords
// extracted from query names for Tier 3 search and scoring.
var foodTypeKeywords = []string{
	"stew", "soup", "salad", "grilled", "fried", "roasted", "steamed",
	"braised", "stir-fried", "baked", "boiled", "smoked", "pickled",
	"porridge", "noodle", "rice", "curry", "sandwich", "dumpling",
	"pancake", "smoothie", "pizza", "burger", "wrap",
}

// ingredientCategories maps single ingredients to the coarse catalog
// category most likely to contain them.
var ingredientCategories = map[string]string{
	"pork": "meat", "beef": "meat", "chicken": "meat", "duck": "meat",
	"lamb": "meat", "ham": "meat", "bacon": "meat", "sausage": "meat",
	"salmon": "seafood", "tuna": "seafood", "shrimp": "seafood",
	"squid": "seafood", "anchovy": "seafood", "crab": "seafood",
	"mackerel": "seafood", "clam": "seafood",
	"tofu": "legume", "soybean": "legume", "bean": "legume",
	"lentil": "legume", "chickpea": "legume",
	"egg":  "egg",
	"milk": "dairy", "cheese": "dairy", "butter": "dairy",
	"yogurt": "dairy", "cream": "dairy",
	"onion": "vegetable", "garlic": "vegetable", "carrot": "vegetable",
	"spinach": "vegetable", "cabbage": "vegetable", "lettuce": "vegetable",
	"tomato": "vegetable", "potato": "vegetable", "mushroom": "vegetable",
	"pepper": "vegetable", "cucumber": "vegetable", "broccoli": "vegetable",
	"zucchini": "vegetable", "radish": "vegetable", "pumpkin": "vegetable",
	"apple": "fruit", "banana": "fruit", "strawberry": "fruit",
	"grape": "fruit", "orange": "fruit", "pear": "fruit", "peach": "fruit",
	"rice": "grain", "wheat": "grain", "flour": "grain", "noodle": "grain",
	"bread": "grain", "oat": "grain", "barley": "grain", "corn": "grain",
}

// genericDescriptors are placeholder descriptor values imported catalogs use
// for "no particular variant"; descriptor-equality scoring skips them.
var genericDescriptors = map[string]struct{}{
	"general": {}, "generic": {}, "none": {}, "other": {}, "-": {}, "etc": {},
}

// Resolver drives the tiered food-identity matching algorithm over the
// reference catalog and the user-submitted catalog. The arbitrator is
// optional and may be nil.
type Resolver struct {
	catalog     CatalogQuery
	contributed ContributedFoodStore
	arbiter     Arbitrator
}

func NewResolver(catalog CatalogQuery, contributed ContributedFoodStore, arbiter Arbitrator) *Resolver {
	return &Resolver{catalog: catalog, contributed: contributed, arbiter: arbiter}
}

// Resolve runs the tiers in order, short-circuiting on the first success:
// exact name, contributed catalog, weighted attribute scoring, caller
// arbitration, category fallback. A miss on every tier is not an error; it
// returns an unresolved result the caller is expected to branch on.
func (r *Resolver) Resolve(ctx context.Context, q Query) (MatchResult, error) {
	name := normalizeName(q.Name)
	if name == "" {
		return MatchResult{}, ErrInvalidInput
	}

	// Tier 1: exact canonical/representative name.
	if entry, err := r.catalog.FindByExactName(ctx, name); err != nil {
		return MatchResult{}, err
	} else if entry != nil {
		return MatchResult{Catalog: entry, MatchedVia: TierExactName, Confidence: ConfidenceHigh}, nil
	}

	// Tier 2: the user's own submissions, then popular shared ones.
	if q.UserID != 0 {
		m, err := r.resolveContributed(ctx, q.UserID, name)
		if err != nil {
			return MatchResult{}, err
		}
		if m.Resolved() {
			return m, nil
		}
	}

	// Tier 3: weighted attribute/ingredient scoring over a bounded
	// candidate set.
	candidates, err := r.searchCandidates(ctx, q, name)
	if err != nil {
		return MatchResult{}, err
	}
	if best, bestScore := pickBest(q, name, candidates); best != nil && bestScore >= acceptScore {
		return MatchResult{Catalog: best, MatchedVia: TierScored, Confidence: ConfidenceMedium}, nil
	}

	// Tier 4: caller-supplied arbitration over the same bounded list.
	if r.arbiter != nil && len(candidates) > 0 {
		id, ok, err := r.arbiter(ctx, q, candidates)
		if err != nil {
			return MatchResult{}, err
		}
		if ok {
			for i := range candidates {
				if candidates[i].ID == id {
					return MatchResult{Catalog: &candidates[i], MatchedVia: TierArbitrated, Confidence: ConfidenceMedium}, nil
				}
			}
		}
	}

	// Tier 5: most generic entry of the known category.
	if m, err := r.resolveByCategory(ctx, q, name); err != nil {
		return MatchResult{}, err
	} else if m.Resolved() {
		return m, nil
	}

	return unresolved(ReasonNoCandidate), nil
}

func (r *Resolver) resolveContributed(ctx context.Context, userID uint, name string) (MatchResult, error) {
	own, err := r.contributed.SearchByOwnerAndName(ctx, userID, name, 1)
	if err != nil {
		return MatchResult{}, err
	}
	entry := firstContributed(own)
	if entry == nil {
		popular, err := r.contributed.SearchPopularByName(ctx, name, popularUsageMin, 1)
		if err != nil {
			return MatchResult{}, err
		}
		entry = firstContributed(popular)
	}
	if entry == nil {
		return MatchResult{}, nil
	}
	// The increment is a legitimate "food was matched" signal, committed
	// immediately; later failures never roll it back.
	if err := r.contributed.IncrementUsage(ctx, entry.ID); err != nil {
		return MatchResult{}, err
	}
	entry.UsageCount++
	return MatchResult{Contributed: entry, MatchedVia: TierContributed, Confidence: ConfidenceHigh}, nil
}

func firstContributed(entries []ContributedEntry) *ContributedEntry {
	if len(entries) == 0 {
		return nil
	}
	e := entries[0]
	return &e
}

// searchCandidates tries search patterns in priority order and stops at the
// first one that yields anything: food-type keywords, the raw normalized
// name, ingredient-derived categories, the first ingredient.
func (r *Resolver) searchCandidates(ctx context.Context, q Query, name string) ([]CatalogEntry, error) {
	patterns := extractKeywords(name)
	patterns = append(patterns, name)
	patterns = append(patterns, ingredientDerivedCategories(q.Ingredients)...)
	if len(q.Ingredients) > 0 {
		if first := normalizeName(q.Ingredients[0]); first != "" {
			patterns = append(patterns, first)
		}
	}

	for _, p := range patterns {
		found, err := r.catalog.SearchByText(ctx, p, candidateLimit)
		if err != nil {
			return nil, err
		}
		if len(found) > 0 {
			return found, nil
		}
	}
	return nil, nil
}

func (r *Resolver) resolveByCategory(ctx context.Context, q Query, name string) (MatchResult, error) {
	category := normalizeName(q.CategoryHint)
	if category == "" {
		// Last whitespace-delimited token is the best category guess
		// ("kimchi stew" → "stew").
		if fields := strings.Fields(name); len(fields) > 0 {
			category = fields[len(fields)-1]
		}
	}
	if category == "" {
		return MatchResult{}, nil
	}

	entries, err := r.catalog.FindByCategory(ctx, category, candidateLimit)
	if err != nil {
		return MatchResult{}, err
	}
	// Shortest canonical name is the most generic representative of the
	// category; first hit wins a length tie.
	var best *CatalogEntry
	for i := range entries {
		if best == nil || len(entries[i].Name) < len(best.Name) {
			best = &entries[i]
		}
	}
	if best == nil {
		return MatchResult{}, nil
	}
	return MatchResult{Catalog: best, MatchedVia: TierCategory, Confidence: ConfidenceLow}, nil
}

// pickBest scores every candidate and keeps the highest; earlier candidates
// win ties so the result is stable across runs.
func pickBest(q Query, name string, candidates []CatalogEntry) (*CatalogEntry, int) {
	keywords := extractKeywords(name)
	ingredients := normalizeAll(q.Ingredients)
	derived := ingredientDerivedCategories(q.Ingredients)

	var best *CatalogEntry
	bestScore := 0
	for i := range candidates {
		s := scoreCandidate(q, name, keywords, ingredients, derived, &candidates[i])
		if s > bestScore {
			best = &candidates[i]
			bestScore = s
		}
	}
	return best, bestScore
}

// scoreCandidate accumulates the independent additive match rules. Rule
// weights are relative: exact identity beats representative-name identity
// beats segment matches beats containment beats per-ingredient hits.
func scoreCandidate(q Query, name string, keywords, ingredients, derived []string, c *CatalogEntry) int {
	cName := normalizeName(c.Name)
	cRep := normalizeName(c.RepresentativeName)
	cDesc := normalizeName(c.Descriptor)
	prefix, suffix := splitComposite(cName)
	categoryHint := normalizeName(q.CategoryHint)

	score := 0

	if cName == name {
		score += 100
	}
	if categoryHint != "" && cName == categoryHint {
		score += 50
	}
	if prefix != "" && prefix == name {
		score += 80
	}
	if suffix != "" && suffix == name {
		score += 70
	}
	switch {
	case cName != name && strings.Contains(cName, name):
		score += 40
	case cName != name && strings.Contains(name, cName):
		score += 30
	case prefix != "" && (strings.Contains(prefix, name) || strings.Contains(name, prefix)):
		score += 10
	}

	if cRep != "" {
		if cRep == name {
			score += 90
		} else if strings.Contains(cRep, name) || strings.Contains(name, cRep) {
			score += 45
		}
	}

	if _, generic := genericDescriptors[cDesc]; cDesc != "" && !generic {
		if cDesc == name {
			score += 50
		} else if strings.Contains(cDesc, name) || strings.Contains(name, cDesc) {
			score += 35
		}
	}

	for _, ing := range ingredients {
		if cDesc != "" && strings.Contains(cDesc, ing) {
			score += 15
		}
		if suffix != "" && strings.Contains(suffix, ing) {
			score += 18
		}
		if strings.Contains(cName, ing) {
			score += 12
		}
		if cRep != "" && strings.Contains(cRep, ing) {
			score += 10
		}
	}

	for _, kw := range keywords {
		if strings.Contains(cName, kw) {
			score += 30
			break // counted once, not per keyword
		}
	}

	for _, cat := range derived {
		if cDesc == cat {
			score += 25
			break
		}
		if cDesc != "" && strings.Contains(cDesc, cat) {
			score += 15
			break
		}
	}

	return score
}

// normalizeName lowercases, trims and collapses inner whitespace.
func normalizeName(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func normalizeAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if n := normalizeName(it); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func extractKeywords(name string) []string {
	var out []string
	for _, kw := range foodTypeKeywords {
		if strings.Contains(name, kw) {
			out = append(out, kw)
		}
	}
	return out
}

func ingredientDerivedCategories(ingredients []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, ing := range ingredients {
		if cat, ok := ingredientCategories[normalizeName(ing)]; ok {
			if _, dup := seen[cat]; !dup {
				seen[cat] = struct{}{}
				out = append(out, cat)
			}
		}
	}
	return out
}

func splitComposite(name string) (prefix, suffix string) {
	if i := strings.Index(name, NameSeparator); i >= 0 {
		return name[:i], name[i+len(NameSeparator):]
	}
	return "", ""
}
