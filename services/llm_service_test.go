package services

import (
	"testing"

	"github.com/food-calorie-vision/food-calorie-vision-backend-sub000/foodid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNutrientEstimate(t *testing.T) {
	reply := `Sure! Here is the estimate:
{"kcal": 215, "protein_g": 9.5, "carbohydrate_g": 30, "fat_g": 6,
 "fiber_g": 7.2, "vitamin_c_mg": 4, "iron_mg": 3.1, "sodium_mg": 420}
Hope that helps.`

	p, kcal, err := parseNutrientEstimate(reply)
	require.NoError(t, err)

	assert.Equal(t, 215.0, kcal)
	assert.Equal(t, 100.0, p.ReferenceWeightGrams)
	assert.Equal(t, 9.5, p.Protein)
	assert.Equal(t, 7.2, p.Fiber)
	assert.Equal(t, 3.1, p.Iron)
	assert.Equal(t, 420.0, p.Sodium)
	assert.Zero(t, p.VitaminA)
}

func TestParseNutrientEstimateNoJSON(t *testing.T) {
	_, _, err := parseNutrientEstimate("I cannot estimate that.")
	assert.Error(t, err)
}

func TestParseNutrientEstimateMalformedJSON(t *testing.T) {
	_, _, err := parseNutrientEstimate(`{"kcal": "lots"}`)
	assert.Error(t, err)
}

func TestParseArbitration(t *testing.T) {
	candidates := []foodid.CatalogEntry{
		{ID: 3, Name: "kimchi stew"},
		{ID: 7, Name: "soybean paste stew"},
	}

	cases := []struct {
		name   string
		reply  string
		wantID uint
		wantOK bool
	}{
		{"plain number", "7", 7, true},
		{"trailing punctuation", "3.", 3, true},
		{"number with prose", "7 is the best match", 7, true},
		{"none", "NONE", 0, false},
		{"none lowercase", "none", 0, false},
		{"unknown id", "42", 0, false},
		{"garbage", "the stew one", 0, false},
		{"empty", "", 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, ok, err := parseArbitration(tc.reply, candidates)
			require.NoError(t, err)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantID, id)
		})
	}
}
