package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gleviosaa/expireTrack/internal/models"
	"github.com/gleviosaa/expireTrack/internal/nutrition"
)

// MaxSavedMeals is the per-user cap on reusable meal templates.
const MaxSavedMeals = 5

// LineItemInput is a portion-scaled nutrition record supplied by the caller.
// SavedMealID is only meaningful for daily menu items, where it records the
// template the item was copied from.
type LineItemInput struct {
	ProductName string     `json:"productName"`
	Barcode     string     `json:"barcode"`
	PortionSize float64    `json:"portionSize"`
	PortionUnit string     `json:"portionUnit"`
	Calories    float64    `json:"calories"`
	Protein     float64    `json:"protein"`
	Carbs       float64    `json:"carbs"`
	Fat         float64    `json:"fat"`
	SavedMealID *uuid.UUID `json:"savedMealId,omitempty"`
}

func validateLineItems(items []LineItemInput) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: at least one item is required", ErrValidation)
	}
	for _, it := range items {
		if strings.TrimSpace(it.ProductName) == "" {
			return fmt.Errorf("%w: item product name is required", ErrValidation)
		}
		if it.PortionSize <= 0 {
			return fmt.Errorf("%w: portion size must be positive", ErrValidation)
		}
		if !models.ValidPortionUnit(it.PortionUnit) {
			return fmt.Errorf("%w: invalid portion unit %q", ErrValidation, it.PortionUnit)
		}
		if it.Calories < 0 || it.Protein < 0 || it.Carbs < 0 || it.Fat < 0 {
			return fmt.Errorf("%w: nutrition values cannot be negative", ErrValidation)
		}
	}
	return nil
}

func aggregateInputs(items []LineItemInput) nutrition.Totals {
	vals := make([]nutrition.Item, len(items))
	for i, it := range items {
		vals[i] = nutrition.Item{Calories: it.Calories, Protein: it.Protein, Carbs: it.Carbs, Fat: it.Fat}
	}
	return nutrition.Sum(vals)
}

// lockSavedMealOwner serializes template creation per owner for the rest of
// the transaction. Postgres needs the explicit transaction-scoped advisory
// lock; sqlite allows only one writer at a time.
func lockSavedMealOwner(tx *gorm.DB, userID uuid.UUID) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	return tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", userID.String()).Error
}

// SavedMealService owns the bounded collection of meal templates.
type SavedMealService struct {
	db *gorm.DB
}

func NewSavedMealService(db *gorm.DB) *SavedMealService {
	return &SavedMealService{db: db}
}

// Create stores a new template with totals aggregated from its items. The
// cap check and the insert run in one transaction so two concurrent creates
// cannot both slip under the limit.
func (s *SavedMealService) Create(ctx context.Context, userID uuid.UUID, name, description string, items []LineItemInput) (*models.SavedMeal, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: meal name is required", ErrValidation)
	}
	if err := validateLineItems(items); err != nil {
		return nil, err
	}

	totals := aggregateInputs(items)
	meal := models.SavedMeal{
		UserID:        userID,
		Name:          name,
		Description:   description,
		TotalCalories: totals.Calories,
		TotalProtein:  totals.Protein,
		TotalCarbs:    totals.Carbs,
		TotalFat:      totals.Fat,
	}
	for _, it := range items {
		meal.Items = append(meal.Items, models.SavedMealItem{
			ProductName: it.ProductName,
			Barcode:     it.Barcode,
			PortionSize: it.PortionSize,
			PortionUnit: it.PortionUnit,
			Calories:    it.Calories,
			Protein:     it.Protein,
			Carbs:       it.Carbs,
			Fat:         it.Fat,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// READ COMMITTED does not serialize count-then-insert across
		// transactions, so the owner is locked before counting.
		if err := lockSavedMealOwner(tx, userID); err != nil {
			return fmt.Errorf("%w: %v", ErrStorage, err)
		}
		var count int64
		if err := tx.Model(&models.SavedMeal{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrStorage, err)
		}
		if count >= MaxSavedMeals {
			return fmt.Errorf("%w: maximum %d saved meals allowed per user", ErrLimitExceeded, MaxSavedMeals)
		}
		if err := tx.Create(&meal).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrStorage, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &meal, nil
}

// List returns the user's templates newest-first, items included.
func (s *SavedMealService) List(ctx context.Context, userID uuid.UUID) ([]models.SavedMeal, error) {
	var meals []models.SavedMeal
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&meals).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return meals, nil
}

// Get loads one template with ownership enforced.
func (s *SavedMealService) Get(ctx context.Context, userID, mealID uuid.UUID) (*models.SavedMeal, error) {
	var meal models.SavedMeal
	err := s.db.WithContext(ctx).Preload("Items").First(&meal, "id = ?", mealID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: saved meal", ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if meal.UserID != userID {
		return nil, fmt.Errorf("%w: saved meal belongs to another user", ErrForbidden)
	}
	return &meal, nil
}

// Delete removes a template and its items. Daily menu items copied from the
// template keep their values; only the back-reference is cleared.
func (s *SavedMealService) Delete(ctx context.Context, userID, mealID uuid.UUID) error {
	var meal models.SavedMeal
	if err := s.db.WithContext(ctx).First(&meal, "id = ?", mealID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: saved meal", ErrNotFound)
		}
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if meal.UserID != userID {
		return fmt.Errorf("%w: saved meal belongs to another user", ErrForbidden)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.DailyMenuItem{}).
			Where("saved_meal_id = ?", mealID).
			Update("saved_meal_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("meal_id = ?", mealID).Delete(&models.SavedMealItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.SavedMeal{}, "id = ?", mealID).Error
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}
