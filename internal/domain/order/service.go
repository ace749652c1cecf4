// internal/domain/order/service.go
package order

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/user"
	"github.com/your-org/storefront-backend/internal/pkg/email"
	"gorm.io/gorm"
)

// CartClearer is the cart operation the checkout flow depends on. Clearing
// is an explicit call made here after a confirmed order, not a side effect
// buried in a transport handler.
type CartClearer interface {
	ClearCart(ctx context.Context, userID *uint, sessionID string) error
}

// ConfirmationMailer delivers the post-checkout notification to the buyer
type ConfirmationMailer interface {
	SendOrderConfirmationEmail(ctx context.Context, userEmail, userName, orderNumber string, amount float64) error
}

// Service handles order business logic
type Service struct {
	db          *gorm.DB
	config      *config.Config
	logger      logrus.FieldLogger
	carts       CartClearer
	mailer      ConfirmationMailer
	userService *user.Service
}

// NewService creates a new order service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, logger logrus.FieldLogger) *Service {
	return &Service{
		db:          db,
		config:      cfg,
		logger:      logger,
		carts:       cart.NewService(db, redisClient, cfg, logger),
		mailer:      email.NewEmailService(cfg),
		userService: user.NewService(db, cfg),
	}
}

// CreateOrderRequest represents order creation data
type CreateOrderRequest struct {
	AddressID   uint               `json:"address_id" binding:"required"`
	PaymentType PaymentType        `json:"payment_type" binding:"omitempty,oneof=COD Online"`
	Items       []OrderItemRequest `json:"items" binding:"required,min=1"`
}

// OrderItemRequest represents one requested order line
type OrderItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// OrderListRequest represents order list query parameters
type OrderListRequest struct {
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=20"`
	Status string `form:"status"`
}

// UpdateStatusRequest represents an order status update
type UpdateStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required"`
}

// UpdatePaymentRequest represents an order payment update
type UpdatePaymentRequest struct {
	IsPaid bool `json:"is_paid"`
}

// CreateOrder places an order from the given items, re-resolving every
// product against the catalog at order time. The unit price is the offer
// price when strictly lower than the regular price. Tax is a floored
// percentage of the subtotal. On success the user's cart is cleared.
func (s *Service) CreateOrder(ctx context.Context, userID uint, sessionID string, req *CreateOrderRequest) (*Order, error) {
	address, err := s.userService.GetAddress(ctx, userID, req.AddressID)
	if err != nil {
		return nil, fmt.Errorf("address not found: %w", err)
	}

	var subtotal float64
	orderItems := make([]OrderItem, 0, len(req.Items))

	for _, item := range req.Items {
		var prod catalog.Product
		err := s.db.WithContext(ctx).Where("id = ? AND is_active = ?", item.ProductID, true).First(&prod).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %s is not available", item.ProductID)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to resolve product %s: %w", item.ProductID, err)
		}

		unitPrice := prod.EffectivePrice()
		subtotal += unitPrice * float64(item.Quantity)

		orderItems = append(orderItems, OrderItem{
			ProductID: prod.ID,
			Name:      prod.Name,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
		})
	}

	subtotal = cart.FloorAmount(subtotal)
	tax := ComputeTax(subtotal, s.config.Cart.TaxRate)

	paymentType := req.PaymentType
	if paymentType == "" {
		paymentType = PaymentTypeCOD
	}

	newOrder := Order{
		OrderNumber:    GenerateOrderNumber(strings.ToUpper(uuid.NewString()[:8])),
		UserID:         userID,
		Status:         OrderStatusPlaced,
		PaymentType:    paymentType,
		SubtotalAmount: subtotal,
		TaxAmount:      tax,
		Amount:         subtotal + tax,
		Address: ShippingAddress{
			FullName:    address.FullName,
			PhoneNumber: address.PhoneNumber,
			PinCode:     address.PinCode,
			Area:        address.Area,
			City:        address.City,
			State:       address.State,
			Landmark:    address.Landmark,
		},
		Items: orderItems,
	}

	if err := s.db.WithContext(ctx).Create(&newOrder).Error; err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Explicit clear through the cart consumer interface. A failure here
	// does not invalidate the order; the next reconciliation load will not
	// recreate purchased items, the user just sees a stale cart briefly.
	if err := s.carts.ClearCart(ctx, &userID, sessionID); err != nil {
		s.logger.WithError(err).WithField("order", newOrder.OrderNumber).
			Warn("failed to clear cart after order placement")
	}

	var buyer user.User
	if err := s.db.WithContext(ctx).Select("name", "email").First(&buyer, userID).Error; err != nil {
		s.logger.WithError(err).WithField("order", newOrder.OrderNumber).
			Warn("failed to load buyer for order confirmation email")
	} else {
		go s.sendOrderConfirmation(buyer.Email, buyer.Name, newOrder.OrderNumber, newOrder.Amount)
	}

	return &newOrder, nil
}

// sendOrderConfirmation delivers the confirmation mail off the request path.
// A failure is logged and does not affect the placed order.
func (s *Service) sendOrderConfirmation(userEmail, userName, orderNumber string, amount float64) {
	if s.mailer == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.mailer.SendOrderConfirmationEmail(ctx, userEmail, userName, orderNumber, amount); err != nil {
		s.logger.WithError(err).WithField("order", orderNumber).
			Warn("failed to send order confirmation email")
	}
}

// ComputeTax applies the configured rate to a subtotal, floored to a whole
// amount, matching the historical order arithmetic.
func ComputeTax(subtotal, rate float64) float64 {
	return math.Floor(subtotal * rate)
}

// GetOrders retrieves the user's orders, newest first
func (s *Service) GetOrders(ctx context.Context, userID uint, req *OrderListRequest) ([]Order, int64, error) {
	return s.listOrders(ctx, req, s.db.WithContext(ctx).Where("user_id = ?", userID))
}

// GetAllOrders retrieves all orders for the seller/admin back office
func (s *Service) GetAllOrders(ctx context.Context, req *OrderListRequest) ([]Order, int64, error) {
	return s.listOrders(ctx, req, s.db.WithContext(ctx))
}

func (s *Service) listOrders(ctx context.Context, req *OrderListRequest, query *gorm.DB) ([]Order, int64, error) {
	var orders []Order
	var total int64

	query = query.Model(&Order{}).Preload("Items")
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	err := query.Order("created_at DESC").
		Offset((req.Page - 1) * req.Limit).
		Limit(req.Limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve orders: %w", err)
	}
	return orders, total, nil
}

// GetOrder retrieves a single order. Non-admin callers only see their own.
func (s *Service) GetOrder(ctx context.Context, userID uint, isStaff bool, orderID uint) (*Order, error) {
	var ord Order
	query := s.db.WithContext(ctx).Preload("Items").Where("id = ?", orderID)
	if !isStaff {
		query = query.Where("user_id = ?", userID)
	}
	err := query.First(&ord).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("order not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve order: %w", err)
	}
	return &ord, nil
}

// CancelOrder cancels the caller's own order if it has not shipped yet
func (s *Service) CancelOrder(ctx context.Context, userID, orderID uint) (*Order, error) {
	var ord Order
	err := s.db.WithContext(ctx).Preload("Items").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&ord).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("order not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve order: %w", err)
	}

	if !ord.CanBeCancelled() {
		return nil, fmt.Errorf("order can no longer be cancelled")
	}

	if err := s.db.WithContext(ctx).Model(&ord).Update("status", OrderStatusCancelled).Error; err != nil {
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}
	ord.Status = OrderStatusCancelled
	return &ord, nil
}

// UpdateStatus moves an order to a new fulfilment status
func (s *Service) UpdateStatus(ctx context.Context, orderID uint, req *UpdateStatusRequest) (*Order, error) {
	valid := map[OrderStatus]bool{
		OrderStatusPlaced:         true,
		OrderStatusProcessing:     true,
		OrderStatusShipped:        true,
		OrderStatusOutForDelivery: true,
		OrderStatusDelivered:      true,
		OrderStatusCancelled:      true,
	}
	if !valid[req.Status] {
		return nil, fmt.Errorf("invalid order status %q", req.Status)
	}

	var ord Order
	if err := s.db.WithContext(ctx).Where("id = ?", orderID).First(&ord).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", err)
	}

	if err := s.db.WithContext(ctx).Model(&ord).Update("status", req.Status).Error; err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	ord.Status = req.Status
	return &ord, nil
}

// UpdatePayment marks an order's payment state
func (s *Service) UpdatePayment(ctx context.Context, orderID uint, req *UpdatePaymentRequest) (*Order, error) {
	var ord Order
	if err := s.db.WithContext(ctx).Where("id = ?", orderID).First(&ord).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", err)
	}

	if err := s.db.WithContext(ctx).Model(&ord).Update("is_paid", req.IsPaid).Error; err != nil {
		return nil, fmt.Errorf("failed to update order payment: %w", err)
	}
	ord.IsPaid = req.IsPaid
	return &ord, nil
}

// DeleteOrder soft-deletes an order (admin only)
func (s *Service) DeleteOrder(ctx context.Context, orderID uint) error {
	if err := s.db.WithContext(ctx).Delete(&Order{}, orderID).Error; err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}
