package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gleviosaa/expireTrack/internal/models"
)

// BarcodeImageService owns the global barcode -> canonical image URL table.
// The barcode unique index is the unit of atomicity: concurrent puts for the
// same new barcode are a benign race and the last upsert wins.
type BarcodeImageService struct {
	db *gorm.DB
}

func NewBarcodeImageService(db *gorm.DB) *BarcodeImageService {
	return &BarcodeImageService{db: db}
}

// Get returns the shared image URL for a barcode. A miss is an absent
// result, not an error.
func (s *BarcodeImageService) Get(ctx context.Context, barcode string) (string, bool, error) {
	var img models.BarcodeImage
	err := s.db.WithContext(ctx).Where("barcode = ?", barcode).First(&img).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return img.ImageURL, true, nil
}

// Put upserts the canonical image for a barcode. An existing entry has its
// URL replaced; otherwise a new row is created. The write is a single
// statement so it cannot partially apply.
func (s *BarcodeImageService) Put(ctx context.Context, barcode, imageURL string) error {
	if barcode == "" || imageURL == "" {
		return fmt.Errorf("%w: barcode and image url are required", ErrValidation)
	}
	img := models.BarcodeImage{Barcode: barcode, ImageURL: imageURL}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "barcode"}},
		DoUpdates: clause.AssignmentColumns([]string{"image_url", "updated_at"}),
	}).Create(&img).Error
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}
