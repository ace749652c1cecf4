// internal/domain/seo/entity.go
package seo

import "time"

// ProductSeo holds search metadata for a product page
type ProductSeo struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ProductID       string    `gorm:"type:uuid;uniqueIndex;not null" json:"product_id"`
	Slug            string    `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	MetaTitle       string    `gorm:"size:255" json:"meta_title"`
	MetaDescription string    `gorm:"size:500" json:"meta_description"`
	Keywords        string    `gorm:"size:500" json:"keywords"`
	CanonicalURL    string    `gorm:"size:500" json:"canonical_url"`
	OGTitle         string    `gorm:"size:255" json:"og_title"`
	OGDescription   string    `gorm:"size:500" json:"og_description"`
	OGImageURL      string    `gorm:"size:500" json:"og_image_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CategorySeo holds search metadata for a category listing page
type CategorySeo struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	CategoryID      string    `gorm:"type:uuid;uniqueIndex;not null" json:"category_id"`
	Slug            string    `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	MetaTitle       string    `gorm:"size:255" json:"meta_title"`
	MetaDescription string    `gorm:"size:500" json:"meta_description"`
	Keywords        string    `gorm:"size:500" json:"keywords"`
	CanonicalURL    string    `gorm:"size:500" json:"canonical_url"`
	OGTitle         string    `gorm:"size:255" json:"og_title"`
	OGDescription   string    `gorm:"size:500" json:"og_description"`
	OGImageURL      string    `gorm:"size:500" json:"og_image_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName overrides the table name for ProductSeo
func (ProductSeo) TableName() string {
	return "product_seo"
}

// TableName overrides the table name for CategorySeo
func (CategorySeo) TableName() string {
	return "category_seo"
}
