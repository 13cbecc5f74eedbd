package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gleviosaa/expireTrack/internal/models"
)

// Default daily goals used when a user has never set their own.
const (
	DefaultCalorieGoal = 2000
	DefaultProteinGoal = 150
	DefaultCarbsGoal   = 250
	DefaultFatGoal     = 65
)

// GoalsService owns the single nutrition-goals row per user.
type GoalsService struct {
	db *gorm.DB
}

func NewGoalsService(db *gorm.DB) *GoalsService {
	return &GoalsService{db: db}
}

// Get returns the user's goals, or the defaults when none are stored. The
// defaults are not persisted; only an explicit upsert writes a row.
func (s *GoalsService) Get(ctx context.Context, userID uuid.UUID) (*models.NutritionGoals, error) {
	var goals models.NutritionGoals
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&goals).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.NutritionGoals{
			UserID:           userID,
			DailyCalorieGoal: DefaultCalorieGoal,
			DailyProteinGoal: DefaultProteinGoal,
			DailyCarbsGoal:   DefaultCarbsGoal,
			DailyFatGoal:     DefaultFatGoal,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return &goals, nil
}

// Upsert creates or replaces the user's goals row. The user_id unique index
// guarantees the row is never duplicated.
func (s *GoalsService) Upsert(ctx context.Context, userID uuid.UUID, calories, protein, carbs, fat float64) (*models.NutritionGoals, error) {
	if calories <= 0 || protein <= 0 || carbs <= 0 || fat <= 0 {
		return nil, fmt.Errorf("%w: goals must be positive", ErrValidation)
	}
	goals := models.NutritionGoals{
		UserID:           userID,
		DailyCalorieGoal: calories,
		DailyProteinGoal: protein,
		DailyCarbsGoal:   carbs,
		DailyFatGoal:     fat,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"daily_calorie_goal", "daily_protein_goal", "daily_carbs_goal", "daily_fat_goal", "updated_at",
		}),
	}).Create(&goals).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	// Re-read so the caller sees the row that actually won the upsert.
	var stored models.NutritionGoals
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&stored).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return &stored, nil
}
