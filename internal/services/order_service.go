package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/vendora/internal/models"
)

// OrderService covers order reads and lifecycle administration after
// checkout: listing, status transitions and cancellation.
type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// OrderFilter narrows order listings.
type OrderFilter struct {
	Status   models.OrderStatus
	DateFrom *time.Time
	DateTo   *time.Time
	Limit    int
	Offset   int
}

func (f OrderFilter) apply(query *gorm.DB) *gorm.DB {
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.DateFrom != nil {
		query = query.Where("created_at >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		query = query.Where("created_at <= ?", *f.DateTo)
	}
	return query
}

// ListUserOrders returns the user's orders, newest first.
func (s *OrderService) ListUserOrders(userID uuid.UUID, filter OrderFilter) ([]models.Order, int64, error) {
	return s.list(filter, s.db.Where("user_id = ?", userID))
}

// ListSessionOrders returns guest orders placed under a session id.
func (s *OrderService) ListSessionOrders(sessionID string, filter OrderFilter) ([]models.Order, int64, error) {
	return s.list(filter, s.db.Where("session_id = ?", sessionID))
}

// ListAllOrders returns all orders for admin views.
func (s *OrderService) ListAllOrders(filter OrderFilter) ([]models.Order, int64, error) {
	return s.list(filter, s.db)
}

func (s *OrderService) list(filter OrderFilter, scope *gorm.DB) ([]models.Order, int64, error) {
	query := filter.apply(scope.Model(&models.Order{}))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := query.Preload("Items").Order("created_at desc").
		Limit(filter.Limit).Offset(filter.Offset).Find(&orders).Error
	return orders, total, err
}

// GetByID loads one order with its items.
func (s *OrderService) GetByID(orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").Preload("Payments").First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// GetByNumber loads one order by its human-readable number.
func (s *OrderService) GetByNumber(orderNumber string) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").First(&order, "order_number = ?", orderNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// UpdateStatus moves an order along the lifecycle graph. force bypasses the
// transition table for administrative overrides; timestamps are stamped either
// way.
func (s *OrderService) UpdateStatus(orderID uuid.UUID, status models.OrderStatus, force bool) (*models.Order, error) {
	order, err := s.GetByID(orderID)
	if err != nil {
		return nil, err
	}

	if !force && !order.Status.CanTransition(status) {
		return nil, &InvalidTransitionError{From: order.Status, To: status}
	}

	updates := map[string]any{"status": status}
	now := time.Now()
	switch status {
	case models.OrderShipped:
		updates["shipped_at"] = &now
	case models.OrderDelivered:
		updates["delivered_at"] = &now
	}

	if err := s.db.Model(order).Updates(updates).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// Cancel sets the order to CANCELLED and restores tracked stock. Only the
// owning user or an admin may cancel, and only while the order is still
// PENDING or CONFIRMED.
func (s *OrderService) Cancel(orderID uuid.UUID, requestorID uuid.UUID, isAdmin bool) (*models.Order, error) {
	var cancelled *models.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		owns := order.UserID != nil && *order.UserID == requestorID
		if !owns && !isAdmin {
			return ErrNotAuthorized
		}

		if !order.Status.Cancellable() {
			return &InvalidTransitionError{From: order.Status, To: models.OrderCancelled}
		}

		for _, item := range order.Items {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND track_inventory = ?", item.ProductID, true).
				UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", item.Quantity))
			if res.Error != nil {
				return fmt.Errorf("restore stock: %w", res.Error)
			}
		}

		if err := tx.Model(&order).Update("status", models.OrderCancelled).Error; err != nil {
			return err
		}

		order.Status = models.OrderCancelled
		cancelled = &order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}
