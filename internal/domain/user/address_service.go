// internal/domain/user/address_service.go
package user

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrAddressNotFound is returned when an address does not exist or
// belongs to a different user.
var ErrAddressNotFound = errors.New("address not found")

// CreateAddressRequest represents address creation data
type CreateAddressRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	PinCode     string `json:"pin_code" binding:"required"`
	Area        string `json:"area" binding:"required"`
	City        string `json:"city" binding:"required"`
	State       string `json:"state" binding:"required"`
	Landmark    string `json:"landmark"`
	IsDefault   bool   `json:"is_default"`
}

// UpdateAddressRequest represents address update data
type UpdateAddressRequest struct {
	FullName    *string `json:"full_name"`
	PhoneNumber *string `json:"phone_number"`
	PinCode     *string `json:"pin_code"`
	Area        *string `json:"area"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	Landmark    *string `json:"landmark"`
	IsDefault   *bool   `json:"is_default"`
}

// GetAddresses retrieves all addresses for a user, default first
func (s *Service) GetAddresses(ctx context.Context, userID uint) ([]Address, error) {
	var addresses []Address
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC").
		Find(&addresses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve addresses: %w", err)
	}
	return addresses, nil
}

// GetAddress retrieves a specific address belonging to the user
func (s *Service) GetAddress(ctx context.Context, userID, addressID uint) (*Address, error) {
	var address Address
	result := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", addressID, userID).First(&address)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, fmt.Errorf("failed to retrieve address: %w", result.Error)
	}
	return &address, nil
}

// AddAddress creates a new shipping address for the user
func (s *Service) AddAddress(ctx context.Context, userID uint, req *CreateAddressRequest) (*Address, error) {
	address := Address{
		UserID:      userID,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		PinCode:     req.PinCode,
		Area:        req.Area,
		City:        req.City,
		State:       req.State,
		Landmark:    req.Landmark,
		IsDefault:   req.IsDefault,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// first address becomes the default
		var count int64
		if err := tx.Model(&Address{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			address.IsDefault = true
		} else if address.IsDefault {
			if err := s.unsetDefaultAddresses(tx, userID); err != nil {
				return err
			}
		}
		return tx.Create(&address).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create address: %w", err)
	}

	return &address, nil
}

// UpdateAddress updates an existing address belonging to the user
func (s *Service) UpdateAddress(ctx context.Context, userID, addressID uint, req *UpdateAddressRequest) (*Address, error) {
	address, err := s.GetAddress(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		address.FullName = *req.FullName
	}
	if req.PhoneNumber != nil {
		address.PhoneNumber = *req.PhoneNumber
	}
	if req.PinCode != nil {
		address.PinCode = *req.PinCode
	}
	if req.Area != nil {
		address.Area = *req.Area
	}
	if req.City != nil {
		address.City = *req.City
	}
	if req.State != nil {
		address.State = *req.State
	}
	if req.Landmark != nil {
		address.Landmark = *req.Landmark
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.IsDefault != nil && *req.IsDefault && !address.IsDefault {
			if err := s.unsetDefaultAddresses(tx, userID); err != nil {
				return err
			}
			address.IsDefault = true
		}
		return tx.Save(address).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update address: %w", err)
	}

	return address, nil
}

// DeleteAddress removes an address belonging to the user
func (s *Service) DeleteAddress(ctx context.Context, userID, addressID uint) error {
	result := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", addressID, userID).Delete(&Address{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete address: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAddressNotFound
	}
	return nil
}

func (s *Service) unsetDefaultAddresses(tx *gorm.DB, userID uint) error {
	return tx.Model(&Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error
}
