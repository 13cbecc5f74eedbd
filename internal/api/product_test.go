package api

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndListProducts(t *testing.T) {
	router, db := setupTestRouter(t)
	token := createTestUserAndToken(t, db)

	product := map[string]interface{}{
		"name":       "Oat Milk",
		"barcode":    "7310865004703",
		"expiryDate": "2027-06-01",
		"notes":      "fridge door",
		"imageUrl":   "https://img.example.com/oat.jpg",
	}
	req := httptest.NewRequest("POST", "/api/v1/products", postJSON(t, product))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, 201, w.Code, w.Body.String())

	req = httptest.NewRequest("GET", "/api/v1/products", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)

	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Oat Milk", list[0]["name"])
}

func TestCreateProductRejectsMissingFields(t *testing.T) {
	router, db := setupTestRouter(t)
	token := createTestUserAndToken(t, db)

	req := httptest.NewRequest("POST", "/api/v1/products", postJSON(t, map[string]interface{}{
		"name": "No Barcode",
	}))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, 400, w.Code)
}

func TestExpiringEndpointFiltersFresh(t *testing.T) {
	router, db := setupTestRouter(t)
	token := createTestUserAndToken(t, db)

	day := func(offset int) string {
		return time.Now().AddDate(0, 0, offset).Format("2006-01-02")
	}
	for name, offset := range map[string]int{"Milk": 2, "Canned Corn": 60} {
		req := httptest.NewRequest("POST", "/api/v1/products", postJSON(t, map[string]interface{}{
			"name": name, "barcode": name, "expiryDate": day(offset),
		}))
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, 201, w.Code, w.Body.String())
	}

	req := httptest.NewRequest("GET", "/api/v1/products/expiring", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)

	var alerts []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &alerts))
	require.Len(t, alerts, 1)
	product := alerts[0]["product"].(map[string]interface{})
	assert.Equal(t, "Milk", product["name"])
	classification := alerts[0]["classification"].(map[string]interface{})
	assert.Equal(t, "imminent", classification["state"])
}

func TestBarcodeImageEndpoint(t *testing.T) {
	router, db := setupTestRouter(t)
	token := createTestUserAndToken(t, db)

	// Creating a product with an image seeds the shared barcode image table.
	req := httptest.NewRequest("POST", "/api/v1/products", postJSON(t, map[string]interface{}{
		"name": "Oat Milk", "barcode": "7310865004703", "expiryDate": "2027-06-01",
		"imageUrl": "https://img.example.com/oat.jpg",
	}))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, 201, w.Code, w.Body.String())

	req = httptest.NewRequest("GET", "/api/v1/products/barcode/7310865004703/image", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "https://img.example.com/oat.jpg", resp["imageUrl"])

	req = httptest.NewRequest("GET", "/api/v1/products/barcode/0000000000000/image", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, 404, w.Code)
}
