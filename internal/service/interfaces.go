package service

import (
	"context"

	"restaurant-ordering/internal/domain"
)

type MenuRepository interface {
	ListMenu(ctx context.Context, restaurantID int) ([]domain.MenuItem, error)
	GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error)
	CreateMenuItem(ctx context.Context, item *domain.MenuItem) error
}

type RestaurantRepository interface {
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
	GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUser(ctx context.Context, id int) (*domain.User, error)
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order, lines []domain.PricedLine, payment *domain.Payment, delivery *domain.Delivery) (int, error)
	GetOrderView(ctx context.Context, orderID int) (*domain.OrderView, error)
	ListUserOrders(ctx context.Context, userID int) ([]domain.OrderSummary, error)
	SaveQRCode(ctx context.Context, orderID int, qr []byte) error
	GetQRCode(ctx context.Context, orderID int) ([]byte, error)
}

type DeliveryRepository interface {
	GetDeliveryByOrder(ctx context.Context, orderID int) (*domain.Delivery, error)
	GetDelivery(ctx context.Context, id int) (*domain.Delivery, error)
	UpdateDeliveryStatus(ctx context.Context, deliveryID int, status string) error
}

type RevenueRepository interface {
	OrderProfitRows(ctx context.Context) ([]domain.OrderProfitRow, error)
}

type DriverRepository interface {
	NextAvailableDriver(ctx context.Context) (int, error)
}

type MenuCache interface {
	GetMenu(ctx context.Context, restaurantID int) ([]domain.MenuItem, bool)
	SetMenu(ctx context.Context, restaurantID int, items []domain.MenuItem) error
	InvalidateMenu(ctx context.Context, restaurantID int) error
}

type OrderPublisher interface {
	PublishOrderPlaced(ctx context.Context, event domain.OrderEvent) error
}

type QRGenerator interface {
	Generate(orderID int) ([]byte, error)
}

// DriverAssigner hands out a driver for a new delivery.
type DriverAssigner interface {
	AssignDriver(ctx context.Context) (int, error)
}

type Pricer interface {
	Price(ctx context.Context, restaurantID int, lines []domain.OrderLine) (*domain.PricedOrder, error)
}

type AuthServiceInterface interface {
	Register(ctx context.Context, user *domain.User) error
	Login(ctx context.Context, email, password string) (*domain.User, error)
	GetUser(ctx context.Context, id int) (*domain.User, error)
}

type CatalogServiceInterface interface {
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
	GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error)
	GetMenu(ctx context.Context, restaurantID int) ([]domain.MenuItem, error)
	CreateMenuItem(ctx context.Context, item *domain.MenuItem) error
}

type OrderServiceInterface interface {
	PlaceOrder(ctx context.Context, req *domain.PlaceOrderRequest) (*domain.OrderView, error)
	GetOrder(ctx context.Context, orderID int) (*domain.OrderView, error)
	ListUserOrders(ctx context.Context, userID int) ([]domain.OrderSummary, error)
	QRCode(ctx context.Context, orderID int) ([]byte, error)
}

type DeliveryServiceInterface interface {
	GetByOrder(ctx context.Context, orderID int) (*domain.Delivery, error)
	GetByID(ctx context.Context, id int) (*domain.Delivery, error)
	UpdateStatus(ctx context.Context, deliveryID int, status string) error
}

type RevenueServiceInterface interface {
	Report(ctx context.Context) ([]domain.RevenueRow, error)
	Details(ctx context.Context) ([]domain.OrderProfitRow, error)
	ExportReport(ctx context.Context) ([]byte, error)
}
