package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gleviosaa/expireTrack/internal/middleware"
	"github.com/gleviosaa/expireTrack/internal/service"
)

type MealHandler struct {
	savedMeals  *service.SavedMealService
	dailyMenu   *service.DailyMenuService
	goals       *service.GoalsService
	authService *service.AuthService
}

func NewMealHandler(savedMeals *service.SavedMealService, dailyMenu *service.DailyMenuService, goals *service.GoalsService, authService *service.AuthService) *MealHandler {
	return &MealHandler{
		savedMeals:  savedMeals,
		dailyMenu:   dailyMenu,
		goals:       goals,
		authService: authService,
	}
}

func (h *MealHandler) RegisterRoutes(router *gin.RouterGroup) {
	meals := router.Group("/meals", middleware.AuthMiddleware(h.authService))
	{
		meals.GET("/saved", h.ListSavedMeals)
		meals.POST("/saved", h.CreateSavedMeal)
		meals.DELETE("/saved/:id", h.DeleteSavedMeal)

		meals.GET("/daily/:date", h.GetDailyMenu)
		meals.GET("/daily/:date/totals", h.GetDayTotals)
		meals.GET("/daily/:date/progress", h.GetGoalProgress)
		meals.POST("/daily", h.AddDailyItems)
		meals.POST("/daily/from-saved", h.AddFromSavedMeal)
		meals.DELETE("/daily/item/:id", h.DeleteDailyItem)

		meals.GET("/goals", h.GetGoals)
		meals.PUT("/goals", h.UpsertGoals)
	}
}

func (h *MealHandler) ListSavedMeals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	meals, err := h.savedMeals.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meals)
}

type createSavedMealRequest struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Items       []service.LineItemInput `json:"items"`
}

func (h *MealHandler) CreateSavedMeal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req createSavedMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	meal, err := h.savedMeals.Create(c.Request.Context(), userID, req.Name, req.Description, req.Items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, meal)
}

func (h *MealHandler) DeleteSavedMeal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	mealID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}
	if err := h.savedMeals.Delete(c.Request.Context(), userID, mealID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Meal deleted successfully"})
}

func (h *MealHandler) GetDailyMenu(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	entries, err := h.dailyMenu.GetDay(c.Request.Context(), userID, c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

type addDailyItemsRequest struct {
	MenuDate string                  `json:"menuDate"`
	MealType string                  `json:"mealType"`
	Items    []service.LineItemInput `json:"items"`
}

func (h *MealHandler) AddDailyItems(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req addDailyItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entry, items, err := h.dailyMenu.AddItems(c.Request.Context(), userID, req.MenuDate, req.MealType, req.Items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":       entry.ID,
		"menuDate": entry.MenuDate,
		"mealType": entry.MealType,
		"items":    items,
	})
}

type addFromSavedMealRequest struct {
	MenuDate    string    `json:"menuDate"`
	MealType    string    `json:"mealType"`
	SavedMealID uuid.UUID `json:"savedMealId"`
}

func (h *MealHandler) AddFromSavedMeal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req addFromSavedMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entry, items, err := h.dailyMenu.AddFromSavedMeal(c.Request.Context(), userID, req.MenuDate, req.MealType, req.SavedMealID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":       entry.ID,
		"menuDate": entry.MenuDate,
		"mealType": entry.MealType,
		"items":    items,
	})
}

func (h *MealHandler) DeleteDailyItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}
	if err := h.dailyMenu.DeleteItem(c.Request.Context(), userID, itemID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}

func (h *MealHandler) GetDayTotals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	totals, err := h.dailyMenu.DayTotals(c.Request.Context(), userID, c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, totals)
}

func (h *MealHandler) GetGoalProgress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	progress, err := h.dailyMenu.GoalProgress(c.Request.Context(), userID, c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

func (h *MealHandler) GetGoals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	goals, err := h.goals.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goals)
}

type upsertGoalsRequest struct {
	DailyCalorieGoal float64 `json:"dailyCalorieGoal"`
	DailyProteinGoal float64 `json:"dailyProteinGoal"`
	DailyCarbsGoal   float64 `json:"dailyCarbsGoal"`
	DailyFatGoal     float64 `json:"dailyFatGoal"`
}

func (h *MealHandler) UpsertGoals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req upsertGoalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	goals, err := h.goals.Upsert(c.Request.Context(), userID, req.DailyCalorieGoal, req.DailyProteinGoal, req.DailyCarbsGoal, req.DailyFatGoal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goals)
}
