package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gleviosaa/expireTrack/internal/models"
)

func TestAddItemsFindsOrCreatesSlot(t *testing.T) {
	db := newTestDB(t)
	menu := NewDailyMenuService(db, NewSavedMealService(db))
	userID := uuid.New()

	entry1, items1, err := menu.AddItems(context.Background(), userID, "2025-03-10", models.MealTypeBreakfast, testItems())
	require.NoError(t, err)
	require.Len(t, items1, 2)

	entry2, items2, err := menu.AddItems(context.Background(), userID, "2025-03-10", models.MealTypeBreakfast, testItems()[:1])
	require.NoError(t, err)
	require.Len(t, items2, 1)

	// Both calls attach to the same unique slot.
	assert.Equal(t, entry1.ID, entry2.ID)

	var count int64
	require.NoError(t, db.Model(&models.DailyMenuEntry{}).
		Where("user_id = ? AND menu_date = ? AND meal_type = ?", userID, "2025-03-10", models.MealTypeBreakfast).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	entries, err := menu.GetDay(context.Background(), userID, "2025-03-10")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Len(t, entries[0].Items, 3)
}

func TestAddItemsConcurrentSameSlot(t *testing.T) {
	db := newTestDB(t)
	menu := NewDailyMenuService(db, NewSavedMealService(db))
	userID := uuid.New()

	// Two simultaneous adds for the same slot must converge on one entry
	// with both items attached.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = menu.AddItems(context.Background(), userID, "2025-03-10", models.MealTypeDinner, testItems()[i:i+1])
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, db.Model(&models.DailyMenuEntry{}).
		Where("user_id = ? AND menu_date = ? AND meal_type = ?", userID, "2025-03-10", models.MealTypeDinner).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	entries, err := menu.GetDay(context.Background(), userID, "2025-03-10")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Len(t, entries[0].Items, 2)
}

func TestAddItemsValidation(t *testing.T) {
	db := newTestDB(t)
	menu := NewDailyMenuService(db, NewSavedMealService(db))
	userID := uuid.New()

	_, _, err := menu.AddItems(context.Background(), userID, "10/03/2025", models.MealTypeLunch, testItems())
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = menu.AddItems(context.Background(), userID, "2025-03-10", "brunch", testItems())
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = menu.AddItems(context.Background(), userID, "2025-03-10", models.MealTypeLunch, nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetDayOmitsAbsentSlots(t *testing.T) {
	db := newTestDB(t)
	menu := NewDailyMenuService(db, NewSavedMealService(db))
	userID := uuid.New()

	_, _, err := menu.AddItems(context.Background(), userID, "2025-03-10", models.MealTypeDinner, testItems())
	require.NoError(t, err)

	entries, err := menu.GetDay(context.Background(), userID, "2025-03-10")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.MealTypeDinner, entries[0].MealType)

	// A different date is empty, not materialized.
	empty, err := menu.GetDay(context.Background(), userID, "2025-03-11")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestAddFromSavedMealCopiesByValue(t *testing.T) {
	db := newTestDB(t)
	saved := NewSavedMealService(db)
	menu := NewDailyMenuService(db, saved)
	userID := uuid.New()

	meal, err := saved.Create(context.Background(), userID, "Template", "", testItems())
	require.NoError(t, err)

	entry, copied, err := menu.AddFromSavedMeal(context.Background(), userID, "2025-03-10", models.MealTypeLunch, meal.ID)
	require.NoError(t, err)
	require.Len(t, copied, 2)
	assert.Equal(t, models.MealTypeLunch, entry.MealType)

	for _, it := range copied {
		require.NotNil(t, it.SavedMealID)
		assert.Equal(t, meal.ID, *it.SavedMealID)
	}

	// Mutating the template afterwards must not touch the copies.
	require.NoError(t, db.Model(&models.SavedMealItem{}).
		Where("meal_id = ?", meal.ID).
		Update("calories", 9999).Error)

	var items []models.DailyMenuItem
	require.NoError(t, db.Where("daily_menu_id = ?", entry.ID).Find(&items).Error)
	for _, it := range items {
		assert.Less(t, it.Calories, 9999.0)
	}
}

func TestAddFromSavedMealForeignTemplate(t *testing.T) {
	db := newTestDB(t)
	saved := NewSavedMealService(db)
	menu := NewDailyMenuService(db, saved)

	meal, err := saved.Create(context.Background(), uuid.New(), "Not Yours", "", testItems())
	require.NoError(t, err)

	_, _, err = menu.AddFromSavedMeal(context.Background(), uuid.New(), "2025-03-10", models.MealTypeLunch, meal.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, _, err = menu.AddFromSavedMeal(context.Background(), uuid.New(), "2025-03-10", models.MealTypeLunch, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteItemOwnership(t *testing.T) {
	db := newTestDB(t)
	menu := NewDailyMenuService(db, NewSavedMealService(db))
	owner := uuid.New()
	stranger := uuid.New()

	entry, items, err := menu.AddItems(context.Background(), owner, "2025-03-10", models.MealTypeBreakfast, testItems())
	require.NoError(t, err)

	err = menu.DeleteItem(context.Background(), stranger, items[0].ID)
	assert.ErrorIs(t, err, ErrForbidden)

	err = menu.DeleteItem(context.Background(), owner, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, menu.DeleteItem(context.Background(), owner, items[0].ID))
	require.NoError(t, menu.DeleteItem(context.Background(), owner, items[1].ID))

	// The entry survives even when empty.
	var count int64
	require.NoError(t, db.Model(&models.DailyMenuEntry{}).Where("id = ?", entry.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDayTotalsAcrossSlots(t *testing.T) {
	db := newTestDB(t)
	menu := NewDailyMenuService(db, NewSavedMealService(db))
	userID := uuid.New()

	_, _, err := menu.AddItems(context.Background(), userID, "2025-03-10", models.MealTypeBreakfast, []LineItemInput{
		{ProductName: "Toast", PortionSize: 60, PortionUnit: "g", Calories: 160, Protein: 5, Carbs: 30, Fat: 2},
	})
	require.NoError(t, err)
	_, _, err = menu.AddItems(context.Background(), userID, "2025-03-10", models.MealTypeDinner, []LineItemInput{
		{ProductName: "Pasta", PortionSize: 120, PortionUnit: "g", Calories: 420, Protein: 14, Carbs: 80, Fat: 4},
	})
	require.NoError(t, err)
	// Another day must not leak in.
	_, _, err = menu.AddItems(context.Background(), userID, "2025-03-11", models.MealTypeLunch, []LineItemInput{
		{ProductName: "Soup", PortionSize: 300, PortionUnit: "ml", Calories: 90, Protein: 4, Carbs: 10, Fat: 3},
	})
	require.NoError(t, err)

	totals, err := menu.DayTotals(context.Background(), userID, "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, 580.0, totals.Calories)
	assert.Equal(t, 19.0, totals.Protein)
	assert.Equal(t, 110.0, totals.Carbs)
	assert.Equal(t, 6.0, totals.Fat)
}

func TestGoalProgressDefaultsAndClamp(t *testing.T) {
	db := newTestDB(t)
	menu := NewDailyMenuService(db, NewSavedMealService(db))
	userID := uuid.New()

	_, _, err := menu.AddItems(context.Background(), userID, "2025-03-10", models.MealTypeLunch, []LineItemInput{
		{ProductName: "Big Meal", PortionSize: 500, PortionUnit: "g", Calories: 1000, Protein: 300, Carbs: 125, Fat: 65},
	})
	require.NoError(t, err)

	progress, err := menu.GoalProgress(context.Background(), userID, "2025-03-10")
	require.NoError(t, err)

	// Default goals: 2000 kcal, 150g protein, 250g carbs, 65g fat.
	assert.Equal(t, 0.5, progress.Calories.Percent)
	assert.Equal(t, 1.0, progress.Protein.Percent, "over-consumption clamps to 1")
	assert.Equal(t, 0.5, progress.Carbs.Percent)
	assert.Equal(t, 1.0, progress.Fat.Percent)
	assert.Equal(t, 2000.0, progress.Calories.Goal)
}

func TestGoalProgressWithCustomGoals(t *testing.T) {
	db := newTestDB(t)
	menu := NewDailyMenuService(db, NewSavedMealService(db))
	goals := NewGoalsService(db)
	userID := uuid.New()

	_, err := goals.Upsert(context.Background(), userID, 1000, 100, 100, 50)
	require.NoError(t, err)

	_, _, err = menu.AddItems(context.Background(), userID, "2025-03-10", models.MealTypeLunch, []LineItemInput{
		{ProductName: "Lunch", PortionSize: 250, PortionUnit: "g", Calories: 250, Protein: 25, Carbs: 50, Fat: 10},
	})
	require.NoError(t, err)

	progress, err := menu.GoalProgress(context.Background(), userID, "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, 0.25, progress.Calories.Percent)
	assert.Equal(t, 0.25, progress.Protein.Percent)
	assert.Equal(t, 0.5, progress.Carbs.Percent)
	assert.Equal(t, 0.2, progress.Fat.Percent)
}

func TestGoalProgressEmptyDay(t *testing.T) {
	db := newTestDB(t)
	menu := NewDailyMenuService(db, NewSavedMealService(db))

	progress, err := menu.GoalProgress(context.Background(), uuid.New(), "2025-03-10")
	require.NoError(t, err)
	assert.Zero(t, progress.Totals.Calories)
	assert.Zero(t, progress.Calories.Percent)
}
