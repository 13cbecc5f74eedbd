package api

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gleviosaa/expireTrack/internal/database"
	"github.com/gleviosaa/expireTrack/internal/service"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// An in-memory sqlite database exists per connection; a second pooled
	// connection would see an empty schema.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))

	authService := service.NewAuthService(db, "test-secret", nil)
	imageCache := service.NewBarcodeImageService(db)
	savedMeals := service.NewSavedMealService(db)
	dailyMenu := service.NewDailyMenuService(db, savedMeals)
	goals := service.NewGoalsService(db)
	products := service.NewProductService(db, imageCache)

	router := gin.New()
	v1 := router.Group("/api/v1")
	NewAuthHandler(authService).RegisterRoutes(v1)
	NewProductHandler(products, imageCache, nil, authService).RegisterRoutes(v1)
	NewMealHandler(savedMeals, dailyMenu, goals, authService).RegisterRoutes(v1)
	return router, db
}

func createTestUserAndToken(t *testing.T, db *gorm.DB) string {
	t.Helper()
	authService := service.NewAuthService(db, "test-secret", nil)
	_, token, err := authService.Register("Test User", "test@example.com", "password123")
	require.NoError(t, err)
	return token
}
