package tests

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"restaurant-ordering/internal/config"
	"restaurant-ordering/internal/domain"
	"restaurant-ordering/internal/mocks"
	"restaurant-ordering/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memOrderRepo is an in-memory OrderRepository. The whole order either
// lands or nothing does, mirroring the transactional contract.
type memOrderRepo struct {
	nextID      int
	views       map[int]*domain.OrderView
	failPayment bool
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{nextID: 1, views: map[int]*domain.OrderView{}}
}

func (r *memOrderRepo) CreateOrder(ctx context.Context, order *domain.Order, lines []domain.PricedLine, payment *domain.Payment, delivery *domain.Delivery) (int, error) {
	if r.failPayment {
		return 0, errors.New("insert payment: connection reset")
	}

	id := r.nextID
	r.nextID++
	order.ID = id
	payment.OrderID = id
	delivery.OrderID = id

	items := make([]domain.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, domain.OrderItem{
			OrderID:    id,
			MenuItemID: line.MenuItemID,
			Quantity:   line.Quantity,
			Price:      line.UnitPrice,
		})
	}

	orderCopy := *order
	paymentCopy := *payment
	deliveryCopy := *delivery
	r.views[id] = &domain.OrderView{
		Order:    orderCopy,
		Items:    items,
		Payment:  &paymentCopy,
		Delivery: &deliveryCopy,
	}
	return id, nil
}

func (r *memOrderRepo) GetOrderView(ctx context.Context, orderID int) (*domain.OrderView, error) {
	view, ok := r.views[orderID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return view, nil
}

func (r *memOrderRepo) ListUserOrders(ctx context.Context, userID int) ([]domain.OrderSummary, error) {
	summaries := []domain.OrderSummary{}
	for _, view := range r.views {
		if view.UserID == userID {
			summaries = append(summaries, domain.OrderSummary{Order: view.Order})
		}
	}
	return summaries, nil
}

func (r *memOrderRepo) SaveQRCode(ctx context.Context, orderID int, qr []byte) error { return nil }

func (r *memOrderRepo) GetQRCode(ctx context.Context, orderID int) ([]byte, error) {
	if _, ok := r.views[orderID]; !ok {
		return nil, sql.ErrNoRows
	}
	return nil, nil
}

var _ service.OrderRepository = (*memOrderRepo)(nil)

func roundTripService(t *testing.T, repo *memOrderRepo) *service.OrderService {
	t.Helper()
	menu := mocks.NewMenuRepository(t)
	menu.On("GetMenuItem", mock.Anything, 7).Return(menuItem(7, 1, "16.99"), nil).Maybe()
	menu.On("GetMenuItem", mock.Anything, 8).Return(menuItem(8, 1, "4.50"), nil).Maybe()

	pricer := service.NewPricingEngine(menu, config.DefaultFees())
	return service.NewOrderService(pricer, repo, service.FixedDriver{DriverID: 1}, nil, nil)
}

func TestPlaceOrder_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newMemOrderRepo()
	svc := roundTripService(t, repo)

	view, err := svc.PlaceOrder(ctx, &domain.PlaceOrderRequest{
		UserID:          2,
		RestaurantID:    1,
		PaymentMethod:   "card",
		DeliveryAddress: "1 Main St",
		Items: []domain.OrderLine{
			{MenuItemID: 7, Quantity: 2},
			{MenuItemID: 8, Quantity: 1},
		},
	})
	require.NoError(t, err)

	fetched, err := svc.GetOrder(ctx, view.ID)
	require.NoError(t, err)

	assert.Len(t, fetched.Items, 2)
	require.NotNil(t, fetched.Payment)
	assert.True(t, fetched.Payment.Amount.Equal(fetched.TotalAmount))
	require.NotNil(t, fetched.Delivery)
	assert.Equal(t, 1, fetched.Delivery.DriverID)
	assert.Equal(t, domain.DeliveryStatusAssigned, fetched.Delivery.Status)
}

func TestPlaceOrder_FailedWriteLeavesNoOrder(t *testing.T) {
	ctx := context.Background()
	repo := newMemOrderRepo()
	repo.failPayment = true
	svc := roundTripService(t, repo)

	_, err := svc.PlaceOrder(ctx, &domain.PlaceOrderRequest{
		UserID:       2,
		RestaurantID: 1,
		Items:        []domain.OrderLine{{MenuItemID: 7, Quantity: 2}},
	})
	require.Error(t, err)

	_, err = svc.GetOrder(ctx, 1)
	assert.ErrorIs(t, err, service.ErrOrderNotFound)
	assert.Empty(t, repo.views)
}
