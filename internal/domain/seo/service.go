// internal/domain/seo/service.go
package seo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/your-org/storefront-backend/internal/config"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrSeoNotFound is returned when no metadata exists for the slug or id.
var ErrSeoNotFound = errors.New("seo record not found")

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Service handles SEO metadata business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new SEO service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// UpsertSeoRequest represents SEO metadata written from the back office
type UpsertSeoRequest struct {
	Slug            string `json:"slug" binding:"required"`
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	Keywords        string `json:"keywords"`
	CanonicalURL    string `json:"canonical_url"`
	OGTitle         string `json:"og_title"`
	OGDescription   string `json:"og_description"`
	OGImageURL      string `json:"og_image_url"`
}

func (r *UpsertSeoRequest) validate() error {
	r.Slug = strings.ToLower(strings.TrimSpace(r.Slug))
	if !slugPattern.MatchString(r.Slug) {
		return fmt.Errorf("slug must contain only lowercase letters, numbers and hyphens")
	}
	return nil
}

// UpsertProductSeo creates or replaces the metadata for a product
func (s *Service) UpsertProductSeo(ctx context.Context, productID string, req *UpsertSeoRequest) (*ProductSeo, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	record := ProductSeo{
		ProductID:       productID,
		Slug:            req.Slug,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		Keywords:        req.Keywords,
		CanonicalURL:    req.CanonicalURL,
		OGTitle:         req.OGTitle,
		OGDescription:   req.OGDescription,
		OGImageURL:      req.OGImageURL,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"slug", "meta_title", "meta_description", "keywords",
			"canonical_url", "og_title", "og_description", "og_image_url", "updated_at",
		}),
	}).Create(&record).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save product seo: %w", err)
	}

	return &record, nil
}

// UpsertCategorySeo creates or replaces the metadata for a category
func (s *Service) UpsertCategorySeo(ctx context.Context, categoryID string, req *UpsertSeoRequest) (*CategorySeo, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	record := CategorySeo{
		CategoryID:      categoryID,
		Slug:            req.Slug,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		Keywords:        req.Keywords,
		CanonicalURL:    req.CanonicalURL,
		OGTitle:         req.OGTitle,
		OGDescription:   req.OGDescription,
		OGImageURL:      req.OGImageURL,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "category_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"slug", "meta_title", "meta_description", "keywords",
			"canonical_url", "og_title", "og_description", "og_image_url", "updated_at",
		}),
	}).Create(&record).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save category seo: %w", err)
	}

	return &record, nil
}

// GetProductSeo retrieves metadata for a product id
func (s *Service) GetProductSeo(ctx context.Context, productID string) (*ProductSeo, error) {
	var record ProductSeo
	err := s.db.WithContext(ctx).Where("product_id = ?", productID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeoNotFound
		}
		return nil, fmt.Errorf("failed to retrieve product seo: %w", err)
	}
	return &record, nil
}

// GetProductSeoBySlug retrieves metadata by public slug
func (s *Service) GetProductSeoBySlug(ctx context.Context, slug string) (*ProductSeo, error) {
	var record ProductSeo
	err := s.db.WithContext(ctx).Where("slug = ?", strings.ToLower(slug)).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeoNotFound
		}
		return nil, fmt.Errorf("failed to retrieve product seo: %w", err)
	}
	return &record, nil
}

// GetCategorySeo retrieves metadata for a category id
func (s *Service) GetCategorySeo(ctx context.Context, categoryID string) (*CategorySeo, error) {
	var record CategorySeo
	err := s.db.WithContext(ctx).Where("category_id = ?", categoryID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeoNotFound
		}
		return nil, fmt.Errorf("failed to retrieve category seo: %w", err)
	}
	return &record, nil
}

// GetCategorySeoBySlug retrieves metadata by public slug
func (s *Service) GetCategorySeoBySlug(ctx context.Context, slug string) (*CategorySeo, error) {
	var record CategorySeo
	err := s.db.WithContext(ctx).Where("slug = ?", strings.ToLower(slug)).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeoNotFound
		}
		return nil, fmt.Errorf("failed to retrieve category seo: %w", err)
	}
	return &record, nil
}

// DeleteProductSeo removes metadata for a product
func (s *Service) DeleteProductSeo(ctx context.Context, productID string) error {
	result := s.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&ProductSeo{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete product seo: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSeoNotFound
	}
	return nil
}

// DeleteCategorySeo removes metadata for a category
func (s *Service) DeleteCategorySeo(ctx context.Context, categoryID string) error {
	result := s.db.WithContext(ctx).Where("category_id = ?", categoryID).Delete(&CategorySeo{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete category seo: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSeoNotFound
	}
	return nil
}
