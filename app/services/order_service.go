package services

import (
	"context"
	"fmt"

	"github.com/kalash-creations/go-bangles/app/models"
	"github.com/kalash-creations/go-bangles/app/repositories"
	"github.com/kalash-creations/go-bangles/app/utils/apperr"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type OrderItemInput struct {
	BangleID        string          `json:"bangleId"`
	BangleName      string          `json:"bangleName"`
	ColorVariantID  string          `json:"colorVariantId"`
	ColorName       string          `json:"colorName"`
	SelectedSize    string          `json:"selectedSize"`
	Quantity        int             `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"priceAtPurchase"`
}

type CreateOrderInput struct {
	Items           []OrderItemInput       `json:"items"`
	CustomerDetails models.CustomerDetails `json:"customerDetails"`
}

type OrderService struct {
	db        *gorm.DB
	orderRepo repositories.OrderRepository
}

func NewOrderService(db *gorm.DB, orderRepo repositories.OrderRepository) *OrderService {
	return &OrderService{db: db, orderRepo: orderRepo}
}

// CreateOrder inserts the order and its item snapshots in one transaction.
// The total is computed here, once, and frozen: items are immutable afterwards.
func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if len(input.Items) == 0 || input.CustomerDetails == (models.CustomerDetails{}) {
		return nil, apperr.Validationf("Missing items or customer details")
	}

	totalAmount := decimal.Zero
	for _, item := range input.Items {
		if item.Quantity <= 0 || item.PriceAtPurchase.IsNegative() {
			return nil, apperr.Validationf("Invalid item price or quantity.")
		}
		totalAmount = totalAmount.Add(item.PriceAtPurchase.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	totalAmount = totalAmount.Round(2)

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("PANIC: Rolling back order create: %v", r)
			tx.Rollback()
			panic(r)
		}
	}()

	order := &models.Order{
		CustomerDetails: input.CustomerDetails,
		TotalAmount:     totalAmount,
		Status:          models.OrderStatusPending,
	}
	if err := s.orderRepo.Create(ctx, tx, order); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	for _, item := range input.Items {
		row := &models.OrderItem{
			OrderID:         order.ID,
			BangleID:        item.BangleID,
			BangleName:      item.BangleName,
			ColorVariantID:  item.ColorVariantID,
			ColorName:       item.ColorName,
			SelectedSize:    item.SelectedSize,
			Quantity:        item.Quantity,
			PriceAtPurchase: item.PriceAtPurchase,
		}
		if err := s.orderRepo.CreateItem(ctx, tx, row); err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to insert order item for bangle %s: %w", item.BangleID, err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit order create: %w", err)
	}

	return s.orderRepo.GetByID(ctx, order.ID)
}

// UpdateStatus moves an order along the lifecycle graph. Transitions outside
// the table are rejected, including every transition out of a terminal state.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, apperr.Validationf("Invalid order status")
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load order %d: %w", id, err)
	}
	if order == nil {
		return nil, apperr.NotFoundf("Order not found")
	}

	if !order.Status.CanTransitionTo(status) {
		return nil, apperr.Conflictf("Order status cannot change from %s to %s.", order.Status, status)
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("failed to update status of order %d: %w", id, err)
	}

	return s.orderRepo.GetByID(ctx, id)
}
