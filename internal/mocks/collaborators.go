package mocks

import (
	"context"

	"restaurant-ordering/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MenuCache struct {
	mock.Mock
}

func NewMenuCache(t testingT) *MenuCache {
	m := &MenuCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MenuCache) GetMenu(ctx context.Context, restaurantID int) ([]domain.MenuItem, bool) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]domain.MenuItem), args.Bool(1)
}

func (m *MenuCache) SetMenu(ctx context.Context, restaurantID int, items []domain.MenuItem) error {
	args := m.Called(ctx, restaurantID, items)
	return args.Error(0)
}

func (m *MenuCache) InvalidateMenu(ctx context.Context, restaurantID int) error {
	args := m.Called(ctx, restaurantID)
	return args.Error(0)
}

type OrderPublisher struct {
	mock.Mock
}

func NewOrderPublisher(t testingT) *OrderPublisher {
	m := &OrderPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *OrderPublisher) PublishOrderPlaced(ctx context.Context, event domain.OrderEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type QRGenerator struct {
	mock.Mock
}

func NewQRGenerator(t testingT) *QRGenerator {
	m := &QRGenerator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *QRGenerator) Generate(orderID int) ([]byte, error) {
	args := m.Called(orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type DriverAssigner struct {
	mock.Mock
}

func NewDriverAssigner(t testingT) *DriverAssigner {
	m := &DriverAssigner{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *DriverAssigner) AssignDriver(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type Pricer struct {
	mock.Mock
}

func NewPricer(t testingT) *Pricer {
	m := &Pricer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Pricer) Price(ctx context.Context, restaurantID int, lines []domain.OrderLine) (*domain.PricedOrder, error) {
	args := m.Called(ctx, restaurantID, lines)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PricedOrder), args.Error(1)
}
