package foodid

// NutrientProfile holds nutrient amounts for a food, all expressed per
// ReferenceWeightGrams of the food (catalog entries commonly use 100g but
// are allowed to differ). Amounts are grams unless noted otherwise.
type NutrientProfile struct {
	ReferenceWeightGrams float64

	Protein      float64
	Carbohydrate float64
	Fat          float64
	Fiber        float64

	VitaminA float64 // µg RAE
	VitaminC float64 // mg
	VitaminE float64 // mg
	Calcium  float64 // mg
	Iron     float64 // mg
	Potassium float64 // mg
	Magnesium float64 // mg

	SaturatedFat float64
	AddedSugar   float64
	Sodium       float64 // mg
}

// Daily values for the 12 scored nutrients (KDRI-aligned adult figures).
// Protein and fiber carry the base score; the 7 remaining beneficial
// nutrients feed the secondary score; the 3 limiting nutrients feed the
// penalty.
const (
	dvProtein   = 55.0   // g
	dvFiber     = 25.0   // g
	dvVitaminA  = 700.0  // µg RAE
	dvVitaminC  = 100.0  // mg
	dvVitaminE  = 12.0   // mg
	dvCalcium   = 700.0  // mg
	dvIron      = 12.0   // mg
	dvPotassium = 3500.0 // mg
	dvMagnesium = 315.0  // mg

	dvSaturatedFat = 15.0   // g
	dvAddedSugar   = 50.0   // g
	dvSodium       = 2000.0 // mg
)

// Breakdown keys, also used as column labels by callers.
const (
	NutrientProtein      = "protein"
	NutrientFiber        = "fiber"
	NutrientVitaminA     = "vitamin_a"
	NutrientVitaminC     = "vitamin_c"
	NutrientVitaminE     = "vitamin_e"
	NutrientCalcium      = "calcium"
	NutrientIron         = "iron"
	NutrientPotassium    = "potassium"
	NutrientMagnesium    = "magnesium"
	NutrientSaturatedFat = "saturated_fat"
	NutrientAddedSugar   = "added_sugar"
	NutrientSodium       = "sodium"
)

// secondaryNutrients are the beneficial nutrients outside the protein/fiber
// base, in breakdown order.
func (p NutrientProfile) secondaryNutrients() [7]struct {
	key    string
	amount float64
	dv     float64
} {
	return [7]struct {
		key    string
		amount float64
		dv     float64
	}{
		{NutrientVitaminA, p.VitaminA, dvVitaminA},
		{NutrientVitaminC, p.VitaminC, dvVitaminC},
		{NutrientVitaminE, p.VitaminE, dvVitaminE},
		{NutrientCalcium, p.Calcium, dvCalcium},
		{NutrientIron, p.Iron, dvIron},
		{NutrientPotassium, p.Potassium, dvPotassium},
		{NutrientMagnesium, p.Magnesium, dvMagnesium},
	}
}

func (p NutrientProfile) limitingNutrients() [3]struct {
	key    string
	amount float64
	dv     float64
} {
	return [3]struct {
		key    string
		amount float64
		dv     float64
	}{
		{NutrientSaturatedFat, p.SaturatedFat, dvSaturatedFat},
		{NutrientAddedSugar, p.AddedSugar, dvAddedSugar},
		{NutrientSodium, p.Sodium, dvSodium},
	}
}
