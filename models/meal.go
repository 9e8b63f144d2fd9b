package models

import (
	"time"

	"gorm.io/gorm"
)

// One Meal (breakfast/lunch/…)
type Meal struct {
	gorm.Model
	UserID uint      `gorm:"index"` // FK → users.id
	Type   string    // "Breakfast"|"Lunch"|…
	AteAt  time.Time // timestamp of the meal
	Items  []MealItem
}

// MealItem snapshots what was eaten plus the identity match and the
// nutrient-richness score computed at log time. CalcMethod pins the formula
// version so old rows stay interpretable after scoring revisions.
type MealItem struct {
	gorm.Model
	MealID uint `gorm:"index"`

	FoodName     string // what the user said they ate
	ServingGrams float64
	PhotoURL     string

	// exactly one of these is set when the food was resolved
	CatalogEntryID    *uint
	ContributedFoodID *uint
	MatchedVia        string `gorm:"size:32"`
	Confidence        string `gorm:"size:16"`

	ReferenceValue int // grams the score was computed against
	Kcal           int
	PositiveScore  int
	NegativeScore  int
	FinalScore     int
	Grade          string `gorm:"size:32"`
	CalcMethod     string `gorm:"size:32"`
}
