package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Meal slots recognized by the daily menu. At most one entry exists per
// (user, date, slot).
const (
	MealTypeBreakfast      = "breakfast"
	MealTypeSnackMorning   = "snack_morning"
	MealTypeLunch          = "lunch"
	MealTypeSnackAfternoon = "snack_afternoon"
	MealTypeDinner         = "dinner"
)

// ValidMealType reports whether s names one of the five daily menu slots.
func ValidMealType(s string) bool {
	switch s {
	case MealTypeBreakfast, MealTypeSnackMorning, MealTypeLunch, MealTypeSnackAfternoon, MealTypeDinner:
		return true
	}
	return false
}

// Portion units accepted on a line item.
var portionUnits = map[string]bool{
	"g": true, "ml": true, "piece": true, "spoon": true,
	"cup": true, "package": true, "slice": true,
}

// ValidPortionUnit reports whether u is an accepted portion unit.
func ValidPortionUnit(u string) bool {
	return portionUnits[u]
}

// SavedMeal is a reusable meal template. Stored totals are a cache of the
// aggregated item values and are recomputed whenever items change.
type SavedMeal struct {
	ID            uuid.UUID       `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	UserID        uuid.UUID       `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	Description   string          `gorm:"type:text" json:"description"`
	TotalCalories float64         `gorm:"type:float" json:"total_calories"`
	TotalProtein  float64         `gorm:"type:float" json:"total_protein"`
	TotalCarbs    float64         `gorm:"type:float" json:"total_carbs"`
	TotalFat      float64         `gorm:"type:float" json:"total_fat"`
	Items         []SavedMealItem `gorm:"foreignKey:MealID;constraint:OnDelete:CASCADE" json:"items"`
}

func (m *SavedMeal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// SavedMealItem is immutable once attached to its template. Nutrition values
// were scaled from per-100 figures at creation time.
type SavedMealItem struct {
	ID          uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	MealID      uuid.UUID `gorm:"type:varchar(36);not null;index" json:"meal_id"`
	ProductName string    `gorm:"size:255;not null" json:"product_name"`
	Barcode     string    `gorm:"size:64" json:"barcode"`
	PortionSize float64   `gorm:"not null" json:"portion_size"`
	PortionUnit string    `gorm:"size:16;not null" json:"portion_unit"`
	Calories    float64   `gorm:"type:float" json:"calories"`
	Protein     float64   `gorm:"type:float" json:"protein"`
	Carbs       float64   `gorm:"type:float" json:"carbs"`
	Fat         float64   `gorm:"type:float" json:"fat"`
}

func (i *SavedMealItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// DailyMenuEntry is the unique slot for one meal type on one calendar date.
// The composite unique index is authoritative for find-or-create.
type DailyMenuEntry struct {
	ID        uuid.UUID       `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	UserID    uuid.UUID       `gorm:"type:varchar(36);not null;uniqueIndex:idx_daily_menu_slot" json:"user_id"`
	MenuDate  string          `gorm:"size:10;not null;uniqueIndex:idx_daily_menu_slot" json:"menu_date"`
	MealType  string          `gorm:"size:32;not null;uniqueIndex:idx_daily_menu_slot" json:"meal_type"`
	Items     []DailyMenuItem `gorm:"foreignKey:DailyMenuID;constraint:OnDelete:CASCADE" json:"items"`
}

func (e *DailyMenuEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// DailyMenuItem is an independent copy of its source: SavedMealID is a
// non-owning back-reference and deleting the template never removes the item.
type DailyMenuItem struct {
	ID          uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	DailyMenuID uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"daily_menu_id"`
	SavedMealID *uuid.UUID `gorm:"type:varchar(36);index" json:"saved_meal_id"`
	ProductName string     `gorm:"size:255;not null" json:"product_name"`
	Barcode     string     `gorm:"size:64" json:"barcode"`
	PortionSize float64    `gorm:"not null" json:"portion_size"`
	PortionUnit string     `gorm:"size:16;not null" json:"portion_unit"`
	Calories    float64    `gorm:"type:float" json:"calories"`
	Protein     float64    `gorm:"type:float" json:"protein"`
	Carbs       float64    `gorm:"type:float" json:"carbs"`
	Fat         float64    `gorm:"type:float" json:"fat"`
}

func (i *DailyMenuItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// NutritionGoals holds one row per user, upserted in place.
type NutritionGoals struct {
	ID               uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	UserID           uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	DailyCalorieGoal float64   `gorm:"type:float;not null" json:"daily_calorie_goal"`
	DailyProteinGoal float64   `gorm:"type:float;not null" json:"daily_protein_goal"`
	DailyCarbsGoal   float64   `gorm:"type:float;not null" json:"daily_carbs_goal"`
	DailyFatGoal     float64   `gorm:"type:float;not null" json:"daily_fat_goal"`
}

func (g *NutritionGoals) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
