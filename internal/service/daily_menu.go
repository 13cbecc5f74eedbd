package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gleviosaa/expireTrack/internal/models"
	"github.com/gleviosaa/expireTrack/internal/nutrition"
)

const menuDateLayout = "2006-01-02"

// DailyMenuService owns the per-day meal-slot entries and their items.
type DailyMenuService struct {
	db         *gorm.DB
	savedMeals *SavedMealService
}

func NewDailyMenuService(db *gorm.DB, savedMeals *SavedMealService) *DailyMenuService {
	return &DailyMenuService{db: db, savedMeals: savedMeals}
}

func validateMenuDate(date string) error {
	if _, err := time.Parse(menuDateLayout, date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	return nil
}

// GetDay returns the entries present for a date, items included. Absent meal
// types are simply absent; empty rows are never materialized.
func (s *DailyMenuService) GetDay(ctx context.Context, userID uuid.UUID, date string) ([]models.DailyMenuEntry, error) {
	if err := validateMenuDate(date); err != nil {
		return nil, err
	}
	var entries []models.DailyMenuEntry
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ? AND menu_date = ?", userID, date).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return entries, nil
}

// AddItems appends items to the unique (user, date, mealType) entry,
// creating it when missing. The insert uses ON CONFLICT DO NOTHING against
// the composite unique index, so a concurrent create of the same slot leaves
// exactly one row and both callers attach to it.
func (s *DailyMenuService) AddItems(ctx context.Context, userID uuid.UUID, date, mealType string, items []LineItemInput) (*models.DailyMenuEntry, []models.DailyMenuItem, error) {
	if err := validateMenuDate(date); err != nil {
		return nil, nil, err
	}
	if !models.ValidMealType(mealType) {
		return nil, nil, fmt.Errorf("%w: invalid meal type %q", ErrValidation, mealType)
	}
	if err := validateLineItems(items); err != nil {
		return nil, nil, err
	}

	var entry models.DailyMenuEntry
	var created []models.DailyMenuItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		candidate := models.DailyMenuEntry{UserID: userID, MenuDate: date, MealType: mealType}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "menu_date"}, {Name: "meal_type"}},
			DoNothing: true,
		}).Create(&candidate)
		if res.Error != nil {
			return res.Error
		}
		// On conflict nothing was inserted; the existing row is authoritative.
		if err := tx.Where("user_id = ? AND menu_date = ? AND meal_type = ?", userID, date, mealType).
			First(&entry).Error; err != nil {
			return err
		}

		for _, it := range items {
			item := models.DailyMenuItem{
				DailyMenuID: entry.ID,
				SavedMealID: it.SavedMealID,
				ProductName: it.ProductName,
				Barcode:     it.Barcode,
				PortionSize: it.PortionSize,
				PortionUnit: it.PortionUnit,
				Calories:    it.Calories,
				Protein:     it.Protein,
				Carbs:       it.Carbs,
				Fat:         it.Fat,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			created = append(created, item)
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return &entry, created, nil
}

// AddFromSavedMeal copies a template's items by value into the slot. The
// copies keep a back-reference to the template but never track it: later
// edits or deletion of the template leave them untouched.
func (s *DailyMenuService) AddFromSavedMeal(ctx context.Context, userID uuid.UUID, date, mealType string, savedMealID uuid.UUID) (*models.DailyMenuEntry, []models.DailyMenuItem, error) {
	meal, err := s.savedMeals.Get(ctx, userID, savedMealID)
	if err != nil {
		return nil, nil, err
	}

	items := make([]LineItemInput, len(meal.Items))
	for i, it := range meal.Items {
		ref := meal.ID
		items[i] = LineItemInput{
			ProductName: it.ProductName,
			Barcode:     it.Barcode,
			PortionSize: it.PortionSize,
			PortionUnit: it.PortionUnit,
			Calories:    it.Calories,
			Protein:     it.Protein,
			Carbs:       it.Carbs,
			Fat:         it.Fat,
			SavedMealID: &ref,
		}
	}
	return s.AddItems(ctx, userID, date, mealType, items)
}

// DeleteItem removes one item. Ownership is checked through the parent
// entry; the entry itself stays even when it becomes empty.
func (s *DailyMenuService) DeleteItem(ctx context.Context, userID, itemID uuid.UUID) error {
	var item models.DailyMenuItem
	if err := s.db.WithContext(ctx).First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: menu item", ErrNotFound)
		}
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	var entry models.DailyMenuEntry
	if err := s.db.WithContext(ctx).First(&entry, "id = ?", item.DailyMenuID).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if entry.UserID != userID {
		return fmt.Errorf("%w: menu item belongs to another user", ErrForbidden)
	}

	if err := s.db.WithContext(ctx).Delete(&models.DailyMenuItem{}, "id = ?", itemID).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

// DayTotals re-derives the day's totals from the raw items on every call.
// Stored numbers are never trusted as the source of truth.
func (s *DailyMenuService) DayTotals(ctx context.Context, userID uuid.UUID, date string) (nutrition.Totals, error) {
	entries, err := s.GetDay(ctx, userID, date)
	if err != nil {
		return nutrition.Totals{}, err
	}
	var vals []nutrition.Item
	for _, e := range entries {
		for _, it := range e.Items {
			vals = append(vals, nutrition.Item{Calories: it.Calories, Protein: it.Protein, Carbs: it.Carbs, Fat: it.Fat})
		}
	}
	return nutrition.Sum(vals), nil
}

// Ring is one progress-ring segment: consumed vs goal, percent clamped to
// [0, 1] for rendering.
type Ring struct {
	Consumed float64 `json:"consumed"`
	Goal     float64 `json:"goal"`
	Percent  float64 `json:"percent"`
}

// DayProgress is the day's consumption measured against the user's goals.
type DayProgress struct {
	Totals   nutrition.Totals `json:"totals"`
	Calories Ring             `json:"calories"`
	Protein  Ring             `json:"protein"`
	Carbs    Ring             `json:"carbs"`
	Fat      Ring             `json:"fat"`
}

func ring(consumed, goal float64) Ring {
	r := Ring{Consumed: consumed, Goal: goal}
	if goal > 0 {
		r.Percent = consumed / goal
		if r.Percent > 1 {
			r.Percent = 1
		}
	}
	return r
}

// GoalProgress divides the day's totals by the user's goals, falling back to
// the default goals when none are set.
func (s *DailyMenuService) GoalProgress(ctx context.Context, userID uuid.UUID, date string) (*DayProgress, error) {
	totals, err := s.DayTotals(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	goals, err := NewGoalsService(s.db).Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &DayProgress{
		Totals:   totals,
		Calories: ring(totals.Calories, goals.DailyCalorieGoal),
		Protein:  ring(totals.Protein, goals.DailyProteinGoal),
		Carbs:    ring(totals.Carbs, goals.DailyCarbsGoal),
		Fat:      ring(totals.Fat, goals.DailyFatGoal),
	}, nil
}
