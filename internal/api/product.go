package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gleviosaa/expireTrack/internal/middleware"
	"github.com/gleviosaa/expireTrack/internal/service"
)

type ProductHandler struct {
	products    *service.ProductService
	images      *service.BarcodeImageService
	catalog     *service.CatalogService
	authService *service.AuthService
}

func NewProductHandler(products *service.ProductService, images *service.BarcodeImageService, catalog *service.CatalogService, authService *service.AuthService) *ProductHandler {
	return &ProductHandler{
		products:    products,
		images:      images,
		catalog:     catalog,
		authService: authService,
	}
}

func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup) {
	products := router.Group("/products", middleware.AuthMiddleware(h.authService))
	{
		products.GET("", h.ListProducts)
		products.POST("", h.CreateProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
		products.GET("/expiring", h.Watchlist)
		products.GET("/barcode/:barcode", h.LookupBarcode)
		products.GET("/barcode/:barcode/image", h.GetBarcodeImage)
	}
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	products, err := h.products.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var in service.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	product, err := h.products.Create(c.Request.Context(), userID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	// Pointer fields distinguish "omitted" from "set to empty".
	var req struct {
		Notes    *string `json:"notes"`
		ImageURL *string `json:"imageUrl"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	product, err := h.products.Update(c.Request.Context(), userID, productID, req.Notes, req.ImageURL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	if err := h.products.Delete(c.Request.Context(), userID, productID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// Watchlist returns the expired and expiring-within-seven-days products,
// most urgent first. The list is derived fresh on every request.
func (h *ProductHandler) Watchlist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	alerts, err := h.products.Watchlist(c.Request.Context(), userID, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}

func (h *ProductHandler) LookupBarcode(c *gin.Context) {
	product, err := h.catalog.Lookup(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		respondError(c, err)
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found in catalog"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) GetBarcodeImage(c *gin.Context) {
	imageURL, found, err := h.images.Get(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "No image found for this barcode"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"imageUrl": imageURL})
}
