package foodid

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCatalog is an in-memory CatalogQuery over a fixed entry slice.
type fakeCatalog struct {
	entries []CatalogEntry
}

func (f *fakeCatalog) FindByExactName(_ context.Context, name string) (*CatalogEntry, error) {
	for i := range f.entries {
		e := &f.entries[i]
		if normalizeName(e.Name) == name || (e.RepresentativeName != "" && normalizeName(e.RepresentativeName) == name) {
			return e, nil
		}
	}
	return nil, nil
}

func (f *fakeCatalog) SearchByText(_ context.Context, pattern string, limit int) ([]CatalogEntry, error) {
	var out []CatalogEntry
	for _, e := range f.entries {
		if len(out) >= limit {
			break
		}
		hay := normalizeName(e.Name) + " " + normalizeName(e.RepresentativeName) + " " + normalizeName(e.Descriptor)
		if strings.Contains(hay, pattern) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeCatalog) FindByCategory(_ context.Context, category string, limit int) ([]CatalogEntry, error) {
	var out []CatalogEntry
	for _, e := range f.entries {
		if len(out) >= limit {
			break
		}
		if normalizeName(e.Category) == category {
			out = append(out, e)
		}
	}
	return out, nil
}

// fakeContributedStore mimics the store contract, including the atomicity of
// IncrementUsage (guarded by a mutex so concurrent resolutions cannot lose
// updates).
type fakeContributedStore struct {
	mu      sync.Mutex
	entries []ContributedEntry
}

func (f *fakeContributedStore) SearchByOwnerAndName(_ context.Context, userID uint, namePattern string, limit int) ([]ContributedEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filter(limit, func(e ContributedEntry) bool {
		return e.UserID == userID && strings.Contains(normalizeName(e.Name), namePattern)
	}), nil
}

func (f *fakeContributedStore) SearchPopularByName(_ context.Context, namePattern string, minUsage, limit int) ([]ContributedEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filter(limit, func(e ContributedEntry) bool {
		return e.UsageCount >= minUsage && strings.Contains(normalizeName(e.Name), namePattern)
	}), nil
}

func (f *fakeContributedStore) filter(limit int, keep func(ContributedEntry) bool) []ContributedEntry {
	var out []ContributedEntry
	for _, e := range f.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	// usage desc, stable
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].UsageCount > out[j-1].UsageCount; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (f *fakeContributedStore) IncrementUsage(_ context.Context, entryID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.entries {
		if f.entries[i].ID == entryID {
			f.entries[i].UsageCount++
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeContributedStore) Create(_ context.Context, entry *ContributedEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry.ID = uint(len(f.entries) + 1)
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeContributedStore) usage(id uint) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.ID == id {
			return e.UsageCount
		}
	}
	return -1
}

func catalogEntry(id uint, name, category, descriptor, rep string) CatalogEntry {
	return CatalogEntry{
		ID: id, Name: name, Category: category, Descriptor: descriptor,
		RepresentativeName: rep, Unit: "g",
		Profile: NutrientProfile{ReferenceWeightGrams: 100, Protein: 5},
	}
}

func TestResolveExactNameBeatsPartialMatches(t *testing.T) {
	catalog := &fakeCatalog{entries: []CatalogEntry{
		catalogEntry(1, "cheese pizza", "pizza", "cheese", ""),
		catalogEntry(2, "pepperoni pizza", "pizza", "pepperoni", ""),
	}}
	r := NewResolver(catalog, &fakeContributedStore{}, nil)

	m, err := r.Resolve(context.Background(), Query{Name: "  Pepperoni   Pizza "})
	require.NoError(t, err)
	require.True(t, m.Resolved())
	assert.Equal(t, TierExactName, m.MatchedVia)
	assert.Equal(t, ConfidenceHigh, m.Confidence)
	assert.Equal(t, uint(2), m.Catalog.ID)
}

func TestResolveMatchesRepresentativeName(t *testing.T) {
	catalog := &fakeCatalog{entries: []CatalogEntry{
		catalogEntry(7, "stew_pork-head", "stew", "pork-head", "pork stew"),
	}}
	r := NewResolver(catalog, &fakeContributedStore{}, nil)

	m, err := r.Resolve(context.Background(), Query{Name: "pork stew"})
	require.NoError(t, err)
	require.True(t, m.Resolved())
	assert.Equal(t, TierExactName, m.MatchedVia)
}

func TestResolveEmptyNameIsInvalid(t *testing.T) {
	r := NewResolver(&fakeCatalog{}, &fakeContributedStore{}, nil)
	_, err := r.Resolve(context.Background(), Query{Name: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestResolveContributedOwnerMatch(t *testing.T) {
	store := &fakeContributedStore{entries: []ContributedEntry{
		{ID: 1, UserID: 7, Name: "grandma kimchi stew", UsageCount: 1,
			Profile: NutrientProfile{ReferenceWeightGrams: 100}},
		{ID: 2, UserID: 7, Name: "kimchi stew deluxe", UsageCount: 5,
			Profile: NutrientProfile{ReferenceWeightGrams: 100}},
	}}
	r := NewResolver(&fakeCatalog{}, store, nil)

	m, err := r.Resolve(context.Background(), Query{Name: "kimchi stew", UserID: 7})
	require.NoError(t, err)
	require.True(t, m.Resolved())
	assert.Equal(t, TierContributed, m.MatchedVia)
	// highest usage wins, and the match increments it
	assert.Equal(t, uint(2), m.Contributed.ID)
	assert.Equal(t, 6, m.Contributed.UsageCount)
	assert.Equal(t, 6, store.usage(2))
}

func TestResolveContributedPopularFallback(t *testing.T) {
	store := &fakeContributedStore{entries: []ContributedEntry{
		// someone else's, popular enough to be shared
		{ID: 1, UserID: 3, Name: "homemade acai bowl", UsageCount: 3,
			Profile: NutrientProfile{ReferenceWeightGrams: 100}},
		// someone else's single-use entry must stay private
		{ID: 2, UserID: 4, Name: "acai bowl special", UsageCount: 1,
			Profile: NutrientProfile{ReferenceWeightGrams: 100}},
	}}
	r := NewResolver(&fakeCatalog{}, store, nil)

	m, err := r.Resolve(context.Background(), Query{Name: "acai bowl", UserID: 9})
	require.NoError(t, err)
	require.True(t, m.Resolved())
	assert.Equal(t, uint(1), m.Contributed.ID)
	assert.Equal(t, 4, store.usage(1))
}

func TestResolveContributedSkippedWithoutUser(t *testing.T) {
	store := &fakeContributedStore{entries: []ContributedEntry{
		{ID: 1, UserID: 3, Name: "acai bowl", UsageCount: 10,
			Profile: NutrientProfile{ReferenceWeightGrams: 100}},
	}}
	r := NewResolver(&fakeCatalog{}, store, nil)

	m, err := r.Resolve(context.Background(), Query{Name: "acai bowl"})
	require.NoError(t, err)
	assert.False(t, m.Resolved())
	assert.Equal(t, 10, store.usage(1))
}

func TestResolveUsageIncrementSurvivesConcurrency(t *testing.T) {
	store := &fakeContributedStore{entries: []ContributedEntry{
		{ID: 1, UserID: 3, Name: "protein shake", UsageCount: 3,
			Profile: NutrientProfile{ReferenceWeightGrams: 100}},
	}}
	r := NewResolver(&fakeCatalog{}, store, nil)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Resolve(context.Background(), Query{Name: "protein shake", UserID: 9})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 5, store.usage(1))
}

func TestResolveScoredMatch(t *testing.T) {
	catalog := &fakeCatalog{entries: []CatalogEntry{
		catalogEntry(1, "stew_beef", "stew", "beef", ""),
		catalogEntry(2, "stew_pork-head", "stew", "pork", ""),
		catalogEntry(3, "salad_green", "salad", "general", ""),
	}}
	r := NewResolver(catalog, &fakeContributedStore{}, nil)

	m, err := r.Resolve(context.Background(), Query{
		Name:        "spicy pork stew",
		Ingredients: []string{"pork", "onion"},
	})
	require.NoError(t, err)
	require.True(t, m.Resolved())
	assert.Equal(t, TierScored, m.MatchedVia)
	assert.Equal(t, ConfidenceMedium, m.Confidence)
	assert.Equal(t, uint(2), m.Catalog.ID)
}

func TestResolveScoreThreshold(t *testing.T) {
	t.Run("below threshold stays unresolved", func(t *testing.T) {
		// a single descriptor hit is worth 15, the highest total the
		// rule weights can produce below the acceptance score of 20
		catalog := &fakeCatalog{entries: []CatalogEntry{
			catalogEntry(1, "abc", "abc", "tofu-based", ""),
		}}
		r := NewResolver(catalog, &fakeContributedStore{}, nil)

		m, err := r.Resolve(context.Background(), Query{
			Name:        "zzz",
			Ingredients: []string{"tofu"},
		})
		require.NoError(t, err)
		assert.False(t, m.Resolved())
		assert.Equal(t, ReasonNoCandidate, m.Reason)
	})

	t.Run("threshold score is accepted", func(t *testing.T) {
		// two ingredient hits in the representative name, 10 each = 20
		catalog := &fakeCatalog{entries: []CatalogEntry{
			catalogEntry(1, "abc", "abc", "", "milk cream mix"),
		}}
		r := NewResolver(catalog, &fakeContributedStore{}, nil)

		m, err := r.Resolve(context.Background(), Query{
			Name:        "zzz",
			Ingredients: []string{"milk", "cream"},
		})
		require.NoError(t, err)
		require.True(t, m.Resolved())
		assert.Equal(t, TierScored, m.MatchedVia)
	})
}

func TestResolveGenericDescriptorNotScored(t *testing.T) {
	t.Run("placeholder descriptor earns nothing", func(t *testing.T) {
		// descriptor "general" equals the query name, but placeholder
		// descriptors are excluded from descriptor scoring
		catalog := &fakeCatalog{entries: []CatalogEntry{
			catalogEntry(1, "rice_white", "grain", "general", ""),
		}}
		r := NewResolver(catalog, &fakeContributedStore{}, nil)

		m, err := r.Resolve(context.Background(), Query{Name: "general"})
		require.NoError(t, err)
		assert.False(t, m.Resolved())
		assert.Equal(t, ReasonNoCandidate, m.Reason)
	})

	t.Run("ordinary descriptor scores", func(t *testing.T) {
		// same shape with a real descriptor: equality is worth 50
		catalog := &fakeCatalog{entries: []CatalogEntry{
			catalogEntry(1, "rice_white", "grain", "casserole", ""),
		}}
		r := NewResolver(catalog, &fakeContributedStore{}, nil)

		m, err := r.Resolve(context.Background(), Query{Name: "casserole"})
		require.NoError(t, err)
		require.True(t, m.Resolved())
		assert.Equal(t, TierScored, m.MatchedVia)
	})
}

func TestResolveStableTieBreak(t *testing.T) {
	// identical entries: the first in search order must win
	catalog := &fakeCatalog{entries: []CatalogEntry{
		catalogEntry(1, "grilled chicken breast", "meat", "chicken", ""),
		catalogEntry(2, "grilled chicken breast", "meat", "chicken", ""),
	}}
	r := NewResolver(catalog, &fakeContributedStore{}, nil)

	for i := 0; i < 5; i++ {
		m, err := r.Resolve(context.Background(), Query{Name: "grilled chicken strips"})
		require.NoError(t, err)
		require.True(t, m.Resolved())
		assert.Equal(t, uint(1), m.Catalog.ID)
	}
}

func TestResolveArbitratorFallback(t *testing.T) {
	catalog := &fakeCatalog{entries: []CatalogEntry{
		catalogEntry(1, "abc", "abc", "tofu-based", ""),
		catalogEntry(2, "def", "def", "tofu-free", ""),
	}}

	t.Run("arbitrator choice is honored", func(t *testing.T) {
		arbiter := func(_ context.Context, _ Query, candidates []CatalogEntry) (uint, bool, error) {
			require.NotEmpty(t, candidates)
			return 2, true, nil
		}
		r := NewResolver(catalog, &fakeContributedStore{}, arbiter)

		m, err := r.Resolve(context.Background(), Query{Name: "zzz", Ingredients: []string{"tofu"}})
		require.NoError(t, err)
		require.True(t, m.Resolved())
		assert.Equal(t, TierArbitrated, m.MatchedVia)
		assert.Equal(t, uint(2), m.Catalog.ID)
	})

	t.Run("arbitrator none falls through", func(t *testing.T) {
		arbiter := func(_ context.Context, _ Query, _ []CatalogEntry) (uint, bool, error) {
			return 0, false, nil
		}
		r := NewResolver(catalog, &fakeContributedStore{}, arbiter)

		m, err := r.Resolve(context.Background(), Query{Name: "zzz", Ingredients: []string{"tofu"}})
		require.NoError(t, err)
		assert.False(t, m.Resolved())
	})

	t.Run("arbitrator error propagates", func(t *testing.T) {
		boom := errors.New("arbiter down")
		arbiter := func(_ context.Context, _ Query, _ []CatalogEntry) (uint, bool, error) {
			return 0, false, boom
		}
		r := NewResolver(catalog, &fakeContributedStore{}, arbiter)

		_, err := r.Resolve(context.Background(), Query{Name: "zzz", Ingredients: []string{"tofu"}})
		assert.ErrorIs(t, err, boom)
	})
}

func TestResolveCategoryFallbackPicksShortestName(t *testing.T) {
	catalog := &fakeCatalog{entries: []CatalogEntry{
		catalogEntry(1, "beef bone soup", "soup", "", ""),
		catalogEntry(2, "potage", "soup", "", ""),
		catalogEntry(3, "chicken potage soup", "soup", "", ""),
	}}
	r := NewResolver(catalog, &fakeContributedStore{}, nil)

	m, err := r.Resolve(context.Background(), Query{Name: "mystery dish", CategoryHint: "soup"})
	require.NoError(t, err)
	require.True(t, m.Resolved())
	assert.Equal(t, TierCategory, m.MatchedVia)
	assert.Equal(t, ConfidenceLow, m.Confidence)
	assert.Equal(t, uint(2), m.Catalog.ID)
}

func TestResolveCategoryInferredFromLastToken(t *testing.T) {
	catalog := &fakeCatalog{entries: []CatalogEntry{
		catalogEntry(1, "plain gruel", "gruel", "", ""),
		catalogEntry(2, "seafood gruels", "gruel", "", ""),
	}}
	r := NewResolver(catalog, &fakeContributedStore{}, nil)

	m, err := r.Resolve(context.Background(), Query{Name: "unknown gruel"})
	require.NoError(t, err)
	require.True(t, m.Resolved())
	assert.Equal(t, TierCategory, m.MatchedVia)
	assert.Equal(t, uint(1), m.Catalog.ID)
}

func TestResolveNothingAnywhere(t *testing.T) {
	r := NewResolver(&fakeCatalog{}, &fakeContributedStore{}, nil)

	m, err := r.Resolve(context.Background(), Query{Name: "completely unknown"})
	require.NoError(t, err)
	assert.False(t, m.Resolved())
	assert.Equal(t, ReasonNoCandidate, m.Reason)
	assert.Nil(t, m.Catalog)
	assert.Nil(t, m.Contributed)
}
