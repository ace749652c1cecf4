// internal/domain/catalog/service.go
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/your-org/storefront-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles catalog business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new catalog service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ProductListRequest represents product list query parameters
type ProductListRequest struct {
	Page       int    `form:"page,default=1"`
	Limit      int    `form:"limit,default=20"`
	CategoryID string `form:"category_id"`
	Category   string `form:"category"` // category name, case-insensitive
	Search     string `form:"search"`
	SortBy     string `form:"sort_by,default=created_at"`
	SortOrder  string `form:"sort_order,default=desc"`
	SellerID   uint   `form:"-"`
	IsActive   *bool  `form:"-"`
}

// PublicOnly restricts the listing to active products. The storefront route
// calls this after binding; seller and admin listings keep seeing hidden
// items. The field is never bound from the query string, so callers cannot
// opt back in from outside.
func (r *ProductListRequest) PublicOnly() {
	active := true
	r.IsActive = &active
}

// ProductCreateRequest represents product creation data
type ProductCreateRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	OfferPrice  *float64 `json:"offer_price"`
	CategoryID  string   `json:"category_id" binding:"required"`
	Images      []string `json:"images" binding:"required,min=1"`
}

// ProductUpdateRequest represents product update data
type ProductUpdateRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	OfferPrice  *float64 `json:"offer_price"`
	CategoryID  *string  `json:"category_id"`
	IsActive    *bool    `json:"is_active"`
	Images      []string `json:"images"`
}

// ProductListResponse represents product response with pagination
type ProductListResponse struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// GetProducts retrieves products with filtering and pagination
func (s *Service) GetProducts(ctx context.Context, req *ProductListRequest) (*ProductListResponse, error) {
	var products []Product
	var total int64

	query := s.db.WithContext(ctx).Model(&Product{}).
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		})

	if req.CategoryID != "" {
		query = query.Where("category_id = ?", req.CategoryID)
	}

	if req.Category != "" {
		query = query.Joins("JOIN categories ON categories.id = products.category_id").
			Where("LOWER(categories.name) = ?", strings.ToLower(req.Category))
	}

	if req.Search != "" {
		search := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where("LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ?", search, search)
	}

	if req.SellerID > 0 {
		query = query.Where("seller_id = ?", req.SellerID)
	}

	if req.IsActive != nil {
		query = query.Where("products.is_active = ?", *req.IsActive)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	query = query.Order(s.buildOrderClause(req.SortBy, req.SortOrder))

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}
	offset := (req.Page - 1) * req.Limit

	if err := query.Offset(offset).Limit(req.Limit).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))

	return &ProductListResponse{
		Products: products,
		Pagination: Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    req.Page < totalPages,
			HasPrev:    req.Page > 1,
		},
	}, nil
}

// GetProduct retrieves a single product by id, including inactive ones so
// sellers can inspect their own hidden listings
func (s *Service) GetProduct(ctx context.Context, id string) (*Product, error) {
	var prod Product
	err := s.db.WithContext(ctx).
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Where("id = ?", id).
		First(&prod).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}
	return &prod, nil
}

// CreateProduct creates a new product for the given seller
func (s *Service) CreateProduct(ctx context.Context, sellerID uint, req *ProductCreateRequest) (*Product, error) {
	if req.OfferPrice != nil && *req.OfferPrice >= req.Price {
		return nil, fmt.Errorf("offer price must be lower than the regular price")
	}

	var category Category
	if err := s.db.WithContext(ctx).Where("id = ? AND is_active = ?", req.CategoryID, true).First(&category).Error; err != nil {
		return nil, fmt.Errorf("category not found or inactive")
	}

	prod := Product{
		SellerID:    sellerID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		OfferPrice:  req.OfferPrice,
		CategoryID:  req.CategoryID,
		IsActive:    true,
	}
	for i, url := range req.Images {
		prod.Images = append(prod.Images, ProductImage{URL: url, SortOrder: i})
	}

	if err := s.db.WithContext(ctx).Create(&prod).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return s.GetProduct(ctx, prod.ID)
}

// UpdateProduct applies a partial update to a product. Non-admin sellers may
// only update their own listings.
func (s *Service) UpdateProduct(ctx context.Context, sellerID uint, isAdmin bool, id string, req *ProductUpdateRequest) (*Product, error) {
	prod, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if !isAdmin && prod.SellerID != sellerID {
		return nil, fmt.Errorf("product belongs to another seller")
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.OfferPrice != nil {
		updates["offer_price"] = *req.OfferPrice
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&Product{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}

	if req.Images != nil {
		if err := s.replaceImages(ctx, id, req.Images); err != nil {
			return nil, err
		}
	}

	return s.GetProduct(ctx, id)
}

// DeleteProduct soft-deletes a product. Carts referencing the id are swept
// separately by the cart service once deletion succeeds.
func (s *Service) DeleteProduct(ctx context.Context, sellerID uint, isAdmin bool, id string) error {
	prod, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}

	if !isAdmin && prod.SellerID != sellerID {
		return fmt.Errorf("product belongs to another seller")
	}

	if err := s.db.WithContext(ctx).Delete(&Product{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

func (s *Service) replaceImages(ctx context.Context, productID string, urls []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&ProductImage{}).Error; err != nil {
			return fmt.Errorf("failed to clear product images: %w", err)
		}
		for i, url := range urls {
			img := ProductImage{ProductID: productID, URL: url, SortOrder: i}
			if err := tx.Create(&img).Error; err != nil {
				return fmt.Errorf("failed to save product image: %w", err)
			}
		}
		return nil
	})
}

func (s *Service) buildOrderClause(sortBy, sortOrder string) string {
	allowed := map[string]bool{
		"created_at": true,
		"price":      true,
		"name":       true,
	}
	if !allowed[sortBy] {
		sortBy = "created_at"
	}
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}
	return fmt.Sprintf("products.%s %s", sortBy, sortOrder)
}
