package models

import (
	"gorm.io/gorm"

	"github.com/food-calorie-vision/food-calorie-vision-backend-sub000/foodid"
)

// FoodCatalogEntry is one record of the reference nutrition catalog, seeded
// by data import and read-only at runtime. Name may be composite:
// "<category>_<descriptor>". Nutrient columns are per ReferenceWeightGrams.
type FoodCatalogEntry struct {
	gorm.Model
	Code               string `gorm:"type:varchar(64);uniqueIndex;not null"`
	Name               string `gorm:"index;not null"`
	Category           string `gorm:"index"`
	Descriptor         string
	RepresentativeName string `gorm:"index"`
	Unit               string `gorm:"size:16;default:g"`

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
}

// Core converts the row into the resolver's catalog record.
func (e *FoodCatalogEntry) Core() foodid.CatalogEntry {
	return foodid.CatalogEntry{
		ID:                 e.ID,
		Code:               e.Code,
		Name:               e.Name,
		Category:           e.Category,
		Descriptor:         e.Descriptor,
		RepresentativeName: e.RepresentativeName,
		Unit:               e.Unit,
		Kcal:               e.Kcal,
		Profile:            e.Profile(),
	}
}

func (e *FoodCatalogEntry) Profile() foodid.NutrientProfile {
	return foodid.NutrientProfile{
		ReferenceWeightGrams: e.ReferenceWeightGrams,
		Protein:              e.Protein,
		Carbohydrate:         e.Carbohydrate,
		Fat:                  e.Fat,
		Fiber:                e.Fiber,
		VitaminA:             e.VitaminA,
		VitaminC:             e.VitaminC,
		VitaminE:             e.VitaminE,
		Calcium:              e.Calcium,
		Iron:                 e.Iron,
		Potassium:            e.Potassium,
		Magnesium:            e.Magnesium,
		SaturatedFat:         e.SaturatedFat,
		AddedSugar:           e.AddedSugar,
		Sodium:               e.Sodium,
	}
}
