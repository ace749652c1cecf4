// internal/domain/user/entity.go
package user

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Role represents a user's role in the storefront
type Role string

const (
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
	RoleAdmin    Role = "admin"
)

// User represents the user entity
type User struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"not null;size:255" json:"name"`
	Email         string         `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Password      string         `gorm:"not null;size:255" json:"-"` // Don't return in JSON
	Role          Role           `gorm:"not null;default:'customer';size:20" json:"role"`
	ImageURL      string         `gorm:"size:500" json:"image_url"`
	IsActive      bool           `gorm:"default:true" json:"is_active"`
	EmailVerified bool           `gorm:"default:false" json:"email_verified"`
	LastLoginAt   *time.Time     `json:"last_login_at"`

	// Forgot-password flow
	ResetToken        string     `gorm:"size:255;index" json:"-"`
	ResetTokenExpires *time.Time `json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Addresses []Address `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"addresses,omitempty"`
}

// Address represents a user shipping address
type Address struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	FullName    string    `gorm:"not null;size:255" json:"full_name"`
	PhoneNumber string    `gorm:"not null;size:20" json:"phone_number"`
	PinCode     string    `gorm:"not null;size:20" json:"pin_code"`
	Area        string    `gorm:"not null;size:255" json:"area"`
	City        string    `gorm:"not null;size:100" json:"city"`
	State       string    `gorm:"not null;size:100" json:"state"`
	Landmark    string    `gorm:"size:255" json:"landmark"`
	IsDefault   bool      `gorm:"default:false" json:"is_default"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// TableName overrides the table name for Address
func (Address) TableName() string {
	return "addresses"
}

// BeforeCreate hook to handle business logic before user creation
func (u *User) BeforeCreate(tx *gorm.DB) error {
	// Email should be lowercase
	u.Email = strings.ToLower(u.Email)
	return nil
}

// IsStaff reports whether the user can access the seller back office
func (u *User) IsStaff() bool {
	return u.Role == RoleSeller || u.Role == RoleAdmin
}

// IsAdmin reports whether the user has full administrative access
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
