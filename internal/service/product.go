package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gleviosaa/expireTrack/internal/expiry"
	"github.com/gleviosaa/expireTrack/internal/models"
)

// ProductService owns a user's pantry and derives the expiry watchlist.
type ProductService struct {
	db     *gorm.DB
	images *BarcodeImageService
}

func NewProductService(db *gorm.DB, images *BarcodeImageService) *ProductService {
	return &ProductService{db: db, images: images}
}

// ProductInput is the caller-supplied product data.
type ProductInput struct {
	Name       string `json:"name"`
	Barcode    string `json:"barcode"`
	ExpiryDate string `json:"expiryDate"`
	Notes      string `json:"notes"`
	ImageURL   string `json:"imageUrl"`
	Brand      string `json:"brand"`
}

// List returns the user's products, most recently added first.
func (s *ProductService) List(ctx context.Context, userID uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_date desc").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return products, nil
}

// Create registers a product. When an image URL is supplied it is also
// upserted into the shared barcode image table; that side effect failing
// never fails the create.
func (s *ProductService) Create(ctx context.Context, userID uuid.UUID, in ProductInput) (*models.Product, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Barcode) == "" || in.ExpiryDate == "" {
		return nil, fmt.Errorf("%w: name, barcode and expiry date are required", ErrValidation)
	}
	expiryDate, err := time.Parse("2006-01-02", in.ExpiryDate)
	if err != nil {
		return nil, fmt.Errorf("%w: expiry date must be YYYY-MM-DD", ErrValidation)
	}

	product := models.Product{
		UserID:     userID,
		Name:       in.Name,
		Barcode:    in.Barcode,
		ExpiryDate: expiryDate,
		Notes:      in.Notes,
		ImageURL:   in.ImageURL,
		Brand:      in.Brand,
		AddedDate:  time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	if in.ImageURL != "" {
		if err := s.images.Put(ctx, in.Barcode, in.ImageURL); err != nil {
			log.Printf("[ProductService] sharing image for barcode %s failed: %v", in.Barcode, err)
		}
	}
	return &product, nil
}

// Update edits the mutable fields of a product: notes and image only. A nil
// field was omitted by the caller and keeps its stored value.
func (s *ProductService) Update(ctx context.Context, userID, productID uuid.UUID, notes, imageURL *string) (*models.Product, error) {
	product, err := s.get(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if notes != nil {
		updates["notes"] = *notes
	}
	if imageURL != nil {
		updates["image_url"] = *imageURL
	}
	if len(updates) == 0 {
		return product, nil
	}
	if err := s.db.WithContext(ctx).Model(product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return product, nil
}

// Delete removes a product after distinguishing missing from foreign.
func (s *ProductService) Delete(ctx context.Context, userID, productID uuid.UUID) error {
	if _, err := s.get(ctx, userID, productID); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", productID).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

// Watchlist classifies the user's products against now and returns the
// expired and expiring ones, most urgent first.
func (s *ProductService) Watchlist(ctx context.Context, userID uuid.UUID, now time.Time) ([]expiry.Alert, error) {
	products, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return expiry.Watchlist(products, now), nil
}

func (s *ProductService) get(ctx context.Context, userID, productID uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).First(&product, "id = ?", productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product", ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if product.UserID != userID {
		return nil, fmt.Errorf("%w: product belongs to another user", ErrForbidden)
	}
	return &product, nil
}
