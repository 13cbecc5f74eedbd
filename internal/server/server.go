package server

import (
	"context"
	"log"
	"net/http"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/gleviosaa/expireTrack/config"
	"github.com/gleviosaa/expireTrack/internal/api"
	"github.com/gleviosaa/expireTrack/internal/router"
	"github.com/gleviosaa/expireTrack/internal/service"
)

// Server wires the services and handlers behind one HTTP listener.
type Server struct {
	http *http.Server
	db   *gorm.DB
}

// New builds the full service graph. The S3 config may be nil in
// development; uploads then fail with a storage error instead of at boot.
func New(cfg *config.Config, db *gorm.DB, cache *redis.Client, s3cfg *config.S3Config) *Server {
	emailService := service.NewEmailService()
	authService := service.NewAuthService(db, cfg.JWTSecret, emailService)
	barcodeImages := service.NewBarcodeImageService(db)
	productService := service.NewProductService(db, barcodeImages)
	savedMeals := service.NewSavedMealService(db)
	dailyMenu := service.NewDailyMenuService(db, savedMeals)
	goals := service.NewGoalsService(db)
	catalog := service.NewCatalogService("", cache)
	imageService := service.NewImageService(s3cfg, barcodeImages)

	authHandler := api.NewAuthHandler(authService)
	productHandler := api.NewProductHandler(productService, barcodeImages, catalog, authService)
	mealHandler := api.NewMealHandler(savedMeals, dailyMenu, goals, authService)
	uploadHandler := api.NewUploadHandler(imageService, authService)

	engine := router.SetupRouter(authHandler, productHandler, mealHandler, uploadHandler)

	return &Server{
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: engine,
		},
		db: db,
	}
}

// Start blocks serving HTTP until Shutdown or a listener error.
func (s *Server) Start() error {
	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
