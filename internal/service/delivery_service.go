package service

import (
	"context"
	"database/sql"
	"errors"

	"restaurant-ordering/internal/domain"
)

var (
	ErrDeliveryNotFound = errors.New("delivery not found")
	ErrInvalidStatus    = errors.New("invalid delivery status")
)

var validDeliveryStatuses = map[string]bool{
	domain.DeliveryStatusAssigned:  true,
	domain.DeliveryStatusPickedUp:  true,
	domain.DeliveryStatusInTransit: true,
	domain.DeliveryStatusDelivered: true,
	domain.DeliveryStatusFailed:    true,
}

type DeliveryService struct {
	deliveries DeliveryRepository
}

func NewDeliveryService(deliveries DeliveryRepository) *DeliveryService {
	return &DeliveryService{deliveries: deliveries}
}

func (s *DeliveryService) GetByOrder(ctx context.Context, orderID int) (*domain.Delivery, error) {
	delivery, err := s.deliveries.GetDeliveryByOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDeliveryNotFound
		}
		return nil, err
	}
	return delivery, nil
}

func (s *DeliveryService) GetByID(ctx context.Context, id int) (*domain.Delivery, error) {
	delivery, err := s.deliveries.GetDelivery(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDeliveryNotFound
		}
		return nil, err
	}
	return delivery, nil
}

func (s *DeliveryService) UpdateStatus(ctx context.Context, deliveryID int, status string) error {
	if !validDeliveryStatuses[status] {
		return ErrInvalidStatus
	}

	if err := s.deliveries.UpdateDeliveryStatus(ctx, deliveryID, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrDeliveryNotFound
		}
		return err
	}
	return nil
}

var _ DeliveryServiceInterface = (*DeliveryService)(nil)
