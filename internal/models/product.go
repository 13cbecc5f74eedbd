package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is a pantry item owned by exactly one user. ExpiryDate carries
// day granularity only; time-of-day is never compared.
type Product struct {
	ID         uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	UserID     uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Barcode    string    `gorm:"size:64;not null;index" json:"barcode"`
	ExpiryDate time.Time `gorm:"type:date;not null" json:"expiry_date"`
	Notes      string    `gorm:"type:text" json:"notes"`
	ImageURL   string    `gorm:"size:512" json:"image_url"`
	Brand      string    `gorm:"size:255" json:"brand"`
	AddedDate  time.Time `gorm:"not null" json:"added_date"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// BarcodeImage is the one deliberately-global table: a single canonical
// photo URL per barcode, shared across all users.
type BarcodeImage struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	Barcode   string    `gorm:"size:64;not null;uniqueIndex" json:"barcode"`
	ImageURL  string    `gorm:"size:512;not null" json:"image_url"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *BarcodeImage) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
