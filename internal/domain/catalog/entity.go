// internal/domain/catalog/entity.go
package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents a catalog product
type Product struct {
	ID          string   `gorm:"type:uuid;primaryKey" json:"id"`
	SellerID    uint     `gorm:"not null;index" json:"seller_id"`
	Name        string   `gorm:"not null;size:255" json:"name"`
	Description string   `gorm:"type:text" json:"description"`
	Price       float64  `gorm:"not null" json:"price"`
	OfferPrice  *float64 `json:"offer_price,omitempty"` // Discounted price, nil when no offer
	CategoryID  string   `gorm:"type:uuid;not null;index" json:"category_id"`
	IsActive    bool     `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category Category       `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category"`
	Images   []ProductImage `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"images,omitempty"`
}

// Category represents a product category
type Category struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string         `gorm:"uniqueIndex;not null;size:255" json:"name"`
	CreatedBy uint           `gorm:"not null" json:"created_by"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// ProductImage represents a hosted product image
type ProductImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID string    `gorm:"type:uuid;not null;index" json:"product_id"`
	URL       string    `gorm:"not null;size:500" json:"url"`
	SortOrder int       `gorm:"default:0" json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides
func (Product) TableName() string      { return "products" }
func (Category) TableName() string     { return "categories" }
func (ProductImage) TableName() string { return "product_images" }

// BeforeCreate assigns a UUID when none was provided
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// BeforeCreate assigns a UUID when none was provided
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// EffectivePrice returns the offer price when it is set and strictly lower
// than the regular price, otherwise the regular price.
func (p *Product) EffectivePrice() float64 {
	if p.OfferPrice != nil && *p.OfferPrice < p.Price {
		return *p.OfferPrice
	}
	return p.Price
}

// HasOffer reports whether the product carries a real discount
func (p *Product) HasOffer() bool {
	return p.OfferPrice != nil && *p.OfferPrice < p.Price
}
