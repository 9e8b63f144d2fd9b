package models

import (
	"gorm.io/gorm"

	"github.com/food-calorie-vision/food-calorie-vision-backend-sub000/foodid"
)

// ContributedFood is a user-submitted food created when the reference
// catalog had no match. UsageCount starts at 1 and is bumped atomically each
// time the entry is re-selected. Approved is a moderation hook; unapproved
// entries still serve their owner and, once popular enough, other users.
type ContributedFood struct {
	gorm.Model
	UserID     uint   `gorm:"index;not null"`
	Code       string `gorm:"type:varchar(64);uniqueIndex"`
	Name       string `gorm:"index;not null"`
	Category   string
	Descriptor string

	ReferenceWeightGrams float64
	Kcal                 float64
	Protein              float64
	Carbohydrate         float64
	Fat                  float64
	Fiber                float64
	VitaminA             float64
	VitaminC             float64
	VitaminE             float64
	Calcium              float64
	Iron                 float64
	Potassium            float64
	Magnesium            float64
	SaturatedFat         float64
	AddedSugar           float64
	Sodium               float64

	UsageCount int  `gorm:"default:1;index"`
	Approved   bool `gorm:"default:false"`
}

func (f *ContributedFood) Core() foodid.ContributedEntry {
	return foodid.ContributedEntry{
		ID:         f.ID,
		UserID:     f.UserID,
		Name:       f.Name,
		Category:   f.Category,
		Descriptor: f.Descriptor,
		Kcal:       f.Kcal,
		Profile: foodid.NutrientProfile{
			ReferenceWeightGrams: f.ReferenceWeightGrams,
			Protein:              f.Protein,
			Carbohydrate:         f.Carbohydrate,
			Fat:                  f.Fat,
			Fiber:                f.Fiber,
			VitaminA:             f.VitaminA,
			VitaminC:             f.VitaminC,
			VitaminE:             f.VitaminE,
			Calcium:              f.Calcium,
			Iron:                 f.Iron,
			Potassium:            f.Potassium,
			Magnesium:            f.Magnesium,
			SaturatedFat:         f.SaturatedFat,
			AddedSugar:           f.AddedSugar,
			Sodium:               f.Sodium,
		},
		UsageCount: f.UsageCount,
		Approved:   f.Approved,
	}
}

// FromProfile copies nutrient amounts from a core profile into the row.
func (f *ContributedFood) FromProfile(p foodid.NutrientProfile) {
	f.ReferenceWeightGrams = p.ReferenceWeightGrams
	f.Protein = p.Protein
	f.Carbohydrate = p.Carbohydrate
	f.Fat = p.Fat
	f.Fiber = p.Fiber
	f.VitaminA = p.VitaminA
	f.VitaminC = p.VitaminC
	f.VitaminE = p.VitaminE
	f.Calcium = p.Calcium
	f.Iron = p.Iron
	f.Potassium = p.Potassium
	f.Magnesium = p.Magnesium
	f.SaturatedFat = p.SaturatedFat
	f.AddedSugar = p.AddedSugar
	f.Sodium = p.Sodium
}
