// internal/domain/user/admin_service.go
package user

import (
	"context"
	"fmt"

	"github.com/your-org/storefront-backend/internal/config"
	"gorm.io/gorm"
)

// AdminService handles administrative user management
type AdminService struct {
	db     *gorm.DB
	config *config.Config
}

// NewAdminService creates a new admin service
func NewAdminService(db *gorm.DB, cfg *config.Config) *AdminService {
	return &AdminService{
		db:     db,
		config: cfg,
	}
}

// UserListRequest represents user listing parameters
type UserListRequest struct {
	Page     int    `form:"page,default=1" binding:"min=1"`
	Limit    int    `form:"limit,default=20" binding:"min=1,max=100"`
	Search   string `form:"search"`
	Role     string `form:"role" binding:"omitempty,oneof=customer seller admin"`
	IsActive *bool  `form:"is_active"`
}

// UserListResponse represents paginated user listing
type UserListResponse struct {
	Users      []User `json:"users"`
	Total      int64  `json:"total"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"total_pages"`
}

// RoleUpdateRequest represents a role change
type RoleUpdateRequest struct {
	Role Role `json:"role" binding:"required,oneof=customer seller admin"`
}

// StatusUpdateRequest represents an account enable/disable change
type StatusUpdateRequest struct {
	IsActive bool `json:"is_active"`
}

// GetUsers retrieves users with pagination and filters
func (s *AdminService) GetUsers(ctx context.Context, req *UserListRequest) (*UserListResponse, error) {
	query := s.db.WithContext(ctx).Model(&User{})

	if req.Search != "" {
		search := "%" + req.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", search, search)
	}
	if req.Role != "" {
		query = query.Where("role = ?", req.Role)
	}
	if req.IsActive != nil {
		query = query.Where("is_active = ?", *req.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	var users []User
	offset := (req.Page - 1) * req.Limit
	err := query.Order("created_at DESC").
		Offset(offset).
		Limit(req.Limit).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve users: %w", err)
	}

	for i := range users {
		users[i].Password = ""
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))

	return &UserListResponse{
		Users:      users,
		Total:      total,
		Page:       req.Page,
		Limit:      req.Limit,
		TotalPages: totalPages,
	}, nil
}

// GetUser retrieves a single user by ID
func (s *AdminService) GetUser(ctx context.Context, userID uint) (*User, error) {
	var user User
	if err := s.db.WithContext(ctx).Preload("Addresses").First(&user, userID).Error; err != nil {
		return nil, fmt.Errorf("user not found")
	}
	user.Password = ""
	return &user, nil
}

// UpdateUserRole changes a user's role. Admins cannot demote themselves.
func (s *AdminService) UpdateUserRole(ctx context.Context, userID uint, req *RoleUpdateRequest, adminID uint) error {
	if userID == adminID && req.Role != RoleAdmin {
		return fmt.Errorf("cannot change your own admin role")
	}

	var user User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return fmt.Errorf("user not found")
	}

	return s.db.WithContext(ctx).Model(&user).Update("role", req.Role).Error
}

// UpdateUserStatus enables or disables a user account
func (s *AdminService) UpdateUserStatus(ctx context.Context, userID uint, req *StatusUpdateRequest, adminID uint) error {
	if userID == adminID && !req.IsActive {
		return fmt.Errorf("cannot deactivate your own account")
	}

	var user User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return fmt.Errorf("user not found")
	}

	return s.db.WithContext(ctx).Model(&user).Update("is_active", req.IsActive).Error
}
