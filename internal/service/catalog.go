package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gleviosaa/expireTrack/internal/nutrition"
)

const catalogCacheTTL = 24 * time.Hour

// CatalogProduct is what the external catalog knows about a barcode.
type CatalogProduct struct {
	Name         string         `json:"name"`
	Brand        string         `json:"brand"`
	Barcode      string         `json:"barcode"`
	ImageURL     string         `json:"image_url"`
	NutritionPer nutrition.Item `json:"nutrition_per_100"`
}

// CatalogService looks up barcodes against the Open Food Facts API with a
// Redis read-through cache. An unknown barcode is a nil result, not an
// error; manual entry is the normal fallback.
type CatalogService struct {
	apiURL string
	client *http.Client
	cache  *redis.Client
}

func NewCatalogService(apiURL string, cache *redis.Client) *CatalogService {
	if apiURL == "" {
		apiURL = "https://world.openfoodfacts.org/api/v2/product"
	}
	return &CatalogService{
		apiURL: apiURL,
		client: &http.Client{Timeout: 10 * time.Second},
		cache:  cache,
	}
}

type offResponse struct {
	Status  int `json:"status"`
	Product struct {
		ProductName string `json:"product_name"`
		GenericName string `json:"generic_name"`
		Brands      string `json:"brands"`
		ImageURL    string `json:"image_url"`
		Nutriments  struct {
			EnergyKcal100g float64 `json:"energy-kcal_100g"`
			Proteins100g   float64 `json:"proteins_100g"`
			Carbs100g      float64 `json:"carbohydrates_100g"`
			Fat100g        float64 `json:"fat_100g"`
		} `json:"nutriments"`
	} `json:"product"`
}

// Lookup fetches catalog data for a barcode. Cache failures degrade to a
// direct fetch; they are logged, never surfaced.
func (s *CatalogService) Lookup(ctx context.Context, barcode string) (*CatalogProduct, error) {
	if barcode == "" {
		return nil, fmt.Errorf("%w: barcode is required", ErrValidation)
	}

	cacheKey := "catalog:" + barcode
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var p CatalogProduct
			if json.Unmarshal([]byte(cached), &p) == nil {
				return &p, nil
			}
		} else if err != redis.Nil {
			log.Printf("[CatalogService] cache read for %s failed: %v", barcode, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s.json", s.apiURL, barcode), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog request returned status %d", resp.StatusCode)
	}

	var off offResponse
	if err := json.NewDecoder(resp.Body).Decode(&off); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}
	if off.Status != 1 {
		return nil, nil
	}

	name := off.Product.ProductName
	if name == "" {
		name = off.Product.GenericName
	}
	product := &CatalogProduct{
		Name:     name,
		Brand:    off.Product.Brands,
		Barcode:  barcode,
		ImageURL: off.Product.ImageURL,
		NutritionPer: nutrition.Item{
			Calories: off.Product.Nutriments.EnergyKcal100g,
			Protein:  off.Product.Nutriments.Proteins100g,
			Carbs:    off.Product.Nutriments.Carbs100g,
			Fat:      off.Product.Nutriments.Fat100g,
		},
	}

	if s.cache != nil {
		if data, err := json.Marshal(product); err == nil {
			if err := s.cache.Set(ctx, cacheKey, data, catalogCacheTTL).Err(); err != nil {
				log.Printf("[CatalogService] cache write for %s failed: %v", barcode, err)
			}
		}
	}
	return product, nil
}
