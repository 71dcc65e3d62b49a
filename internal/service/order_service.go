package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"restaurant-ordering/internal/domain"

	"github.com/google/uuid"
)

var ErrOrderNotFound = errors.New("order not found")

// deliveryETA is the fixed offset between order creation and the
// estimated delivery time.
const deliveryETA = 30 * time.Minute

type OrderService struct {
	pricer    Pricer
	orders    OrderRepository
	drivers   DriverAssigner
	qr        QRGenerator
	publisher OrderPublisher
}

func NewOrderService(pricer Pricer, orders OrderRepository, drivers DriverAssigner, qr QRGenerator, publisher OrderPublisher) *OrderService {
	return &OrderService{
		pricer:    pricer,
		orders:    orders,
		drivers:   drivers,
		qr:        qr,
		publisher: publisher,
	}
}

// PlaceOrder prices the requested lines, assigns a driver and persists the
// order, its items, the payment and the delivery as one unit of work.
// Nothing is written before pricing and driver assignment have succeeded.
func (s *OrderService) PlaceOrder(ctx context.Context, req *domain.PlaceOrderRequest) (*domain.OrderView, error) {
	priced, err := s.pricer.Price(ctx, req.RestaurantID, req.Items)
	if err != nil {
		return nil, err
	}

	driverID, err := s.drivers.AssignDriver(ctx)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		UserID:             req.UserID,
		RestaurantID:       req.RestaurantID,
		Status:             domain.OrderStatusPending,
		Subtotal:           priced.Subtotal.Round(2),
		PlatformCommission: priced.Commission,
		ServiceFee:         priced.ServiceFee,
		TotalAmount:        priced.GrandTotal,
	}
	payment := &domain.Payment{
		Amount: priced.GrandTotal,
		Method: req.PaymentMethod,
		Status: domain.PaymentStatusCompleted,
	}
	delivery := &domain.Delivery{
		DriverID:      driverID,
		Address:       req.DeliveryAddress,
		Status:        domain.DeliveryStatusAssigned,
		EstimatedTime: time.Now().Add(deliveryETA),
		FeeTotal:      priced.DeliveryFee,
		PlatformCut:   priced.DeliveryPlatformCut,
	}

	orderID, err := s.orders.CreateOrder(ctx, order, priced.Lines, payment, delivery)
	if err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}

	// QR code and event publishing are best-effort; the order is already
	// committed and must not fail because of them.
	if s.qr != nil {
		if qr, err := s.qr.Generate(orderID); err == nil {
			if err := s.orders.SaveQRCode(ctx, orderID, qr); err != nil {
				log.Printf("[order-svc] failed to store QR code for order %d: %v", orderID, err)
			}
		}
	}

	if s.publisher != nil {
		event := domain.OrderEvent{
			EventID:      uuid.NewString(),
			Type:         "order_placed",
			OrderID:      orderID,
			UserID:       req.UserID,
			RestaurantID: req.RestaurantID,
			TotalAmount:  priced.GrandTotal.StringFixed(2),
			Timestamp:    time.Now(),
		}
		if err := s.publisher.PublishOrderPlaced(ctx, event); err != nil {
			log.Printf("[order-svc] failed to publish order event for order %d: %v", orderID, err)
		}
	}

	return s.GetOrder(ctx, orderID)
}

func (s *OrderService) GetOrder(ctx context.Context, orderID int) (*domain.OrderView, error) {
	view, err := s.orders.GetOrderView(ctx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return view, nil
}

func (s *OrderService) ListUserOrders(ctx context.Context, userID int) ([]domain.OrderSummary, error) {
	return s.orders.ListUserOrders(ctx, userID)
}

func (s *OrderService) QRCode(ctx context.Context, orderID int) ([]byte, error) {
	qr, err := s.orders.GetQRCode(ctx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if len(qr) == 0 && s.qr != nil {
		if regenerated, err := s.qr.Generate(orderID); err == nil {
			_ = s.orders.SaveQRCode(ctx, orderID, regenerated)
			return regenerated, nil
		}
	}
	return qr, nil
}

var _ OrderServiceInterface = (*OrderService)(nil)
