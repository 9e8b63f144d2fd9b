package foodid

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(entries []CatalogEntry) *FoodIdentityService {
	r := NewResolver(&fakeCatalog{entries: entries}, &fakeContributedStore{}, nil)
	return NewFoodIdentityService(r)
}

func TestIdentifyAndScoreResolvedFood(t *testing.T) {
	svc := newTestService([]CatalogEntry{{
		ID: 1, Name: "lentil soup", Category: "soup", Unit: "g", Kcal: 116,
		Profile: NutrientProfile{
			ReferenceWeightGrams: 100,
			Protein:              9, Fiber: 8, Iron: 3.3, Potassium: 369,
			Sodium: 238,
		},
	}})

	res, err := svc.IdentifyAndScore(context.Background(), Query{Name: "lentil soup"}, 250)
	require.NoError(t, err)
	require.True(t, res.Match.Resolved())
	require.NotNil(t, res.Score)
	assert.Equal(t, TierExactName, res.Match.MatchedVia)
	// 8g fiber per 100g floors the score at 80
	assert.GreaterOrEqual(t, res.Score.FinalScore, 80)
	assert.Equal(t, CalcMethodNRF, res.Score.CalcMethod)
}

func TestIdentifyAndScoreUnresolvedReturnsNilScore(t *testing.T) {
	svc := newTestService(nil)

	res, err := svc.IdentifyAndScore(context.Background(), Query{Name: "moon cheese"}, 100)
	require.NoError(t, err)
	assert.False(t, res.Match.Resolved())
	assert.Equal(t, ReasonNoCandidate, res.Match.Reason)
	assert.Nil(t, res.Score)
}

func TestIdentifyAndScoreRejectsBadServing(t *testing.T) {
	svc := newTestService(nil)

	_, err := svc.IdentifyAndScore(context.Background(), Query{Name: "toast"}, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.IdentifyAndScore(context.Background(), Query{Name: "toast"}, -1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
