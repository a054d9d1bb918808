package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/navalhaprime/barbershop-api/internal/audit"
	"github.com/navalhaprime/barbershop-api/internal/middleware"
	"github.com/navalhaprime/barbershop-api/internal/models"
	"github.com/navalhaprime/barbershop-api/internal/store"
)

type ProductHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	snaps *store.Store
}

func NewProductHandler(db *gorm.DB, auditDisp *audit.Dispatcher, snaps *store.Store) *ProductHandler {
	return &ProductHandler{db: db, audit: auditDisp, snaps: snaps}
}

// --------- Requests ---------

type CreateProductRequest struct {
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"required"`
	Stock    int     `json:"stock"`
	PhotoURL string  `json:"photo_url"`
}

type UpdateProductRequest struct {
	Name     *string  `json:"name,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Stock    *int     `json:"stock,omitempty"`
	PhotoURL *string  `json:"photo_url,omitempty"`
}

type AdjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// --------- Handlers ---------

func (h *ProductHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Session(&gorm.Session{})
	if query != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+query+"%")
	}

	var products []models.Product
	if err := q.Order("id ASC").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_products"})
		return
	}

	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Create(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_stock"})
		return
	}

	product := models.Product{
		Name:     req.Name,
		Price:    req.Price,
		Stock:    req.Stock,
		PhotoURL: req.PhotoURL,
	}

	if err := h.db.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_product"})
		return
	}

	h.snaps.Touch(c.Request.Context(), store.Products)
	h.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "product_created",
		Entity:   "product",
		EntityID: &product.ID,
	})

	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := paramID(c)
	if !ok {
		return
	}

	var product models.Product
	if err := h.db.First(&product, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "product_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_product"})
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_stock"})
			return
		}
		product.Stock = *req.Stock
	}
	if req.PhotoURL != nil {
		product.PhotoURL = *req.PhotoURL
	}

	if err := h.db.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_product"})
		return
	}

	h.snaps.Touch(c.Request.Context(), store.Products)
	h.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "product_updated",
		Entity:   "product",
		EntityID: &product.ID,
	})

	c.JSON(http.StatusOK, product)
}

// AdjustStock applies a signed delta without letting stock go negative.
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := paramID(c)
	if !ok {
		return
	}

	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	res := h.db.Model(&models.Product{}).
		Where("id = ? AND stock + ? >= 0", id, req.Delta).
		UpdateColumn("stock", gorm.Expr("stock + ?", req.Delta))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_product"})
		return
	}
	if res.RowsAffected == 0 {
		var exists int64
		h.db.Model(&models.Product{}).Where("id = ?", id).Count(&exists)
		if exists == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "product_not_found"})
			return
		}
		c.JSON(http.StatusConflict, gin.H{
			"error":   "insufficient_stock",
			"message": "Estoque insuficiente para essa operação.",
		})
		return
	}

	h.snaps.Touch(c.Request.Context(), store.Products)
	h.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "product_stock_adjusted",
		Entity:   "product",
		EntityID: &id,
	})

	var product models.Product
	if err := h.db.First(&product, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_product"})
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := paramID(c)
	if !ok {
		return
	}

	res := h.db.Delete(&models.Product{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_product"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "product_not_found"})
		return
	}

	h.snaps.Touch(c.Request.Context(), store.Products)
	h.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "product_deleted",
		Entity:   "product",
		EntityID: &id,
	})

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
