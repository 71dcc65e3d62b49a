package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses. The ordering core only ever writes StatusPending;
// downstream collaborators move orders through the rest of the lifecycle.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusPreparing = "PREPARING"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCancelled = "CANCELLED"
)

const (
	DeliveryStatusAssigned  = "ASSIGNED"
	DeliveryStatusPickedUp  = "PICKED_UP"
	DeliveryStatusInTransit = "IN_TRANSIT"
	DeliveryStatusDelivered = "DELIVERED"
	DeliveryStatusFailed    = "FAILED"
)

const (
	PaymentStatusCompleted = "COMPLETED"
	PaymentStatusCancelled = "CANCELLED"
)

type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type Restaurant struct {
	ID          int       `json:"id"`
	OwnerID     int       `json:"owner_id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Description string    `json:"description"`
	OwnerName   string    `json:"owner_name"`
	CreatedAt   time.Time `json:"created_at"`
}

type MenuItem struct {
	ID           int             `json:"id"`
	RestaurantID int             `json:"restaurant_id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	CreatedAt    time.Time       `json:"created_at"`
}

// OrderLine is a requested (menu item, quantity) pair before pricing.
type OrderLine struct {
	MenuItemID int `json:"menu_item_id"`
	Quantity   int `json:"quantity"`
}

type PlaceOrderRequest struct {
	UserID          int         `json:"user_id"`
	RestaurantID    int         `json:"restaurant_id"`
	PaymentMethod   string      `json:"payment_method"`
	DeliveryAddress string      `json:"delivery_address"`
	Items           []OrderLine `json:"items"`
}

// PricedLine is an order line with its unit price snapshotted at pricing
// time, decoupled from later menu price changes.
type PricedLine struct {
	MenuItemID int             `json:"menu_item_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

// PricedOrder carries every derived monetary value for an order. Each
// field is rounded to cents exactly once, at the point it is finalized.
type PricedOrder struct {
	RestaurantID        int             `json:"restaurant_id"`
	Lines               []PricedLine    `json:"lines"`
	Subtotal            decimal.Decimal `json:"subtotal"`
	Tax                 decimal.Decimal `json:"tax"`
	DeliveryFee         decimal.Decimal `json:"delivery_fee"`
	ServiceFee          decimal.Decimal `json:"service_fee"`
	Commission          decimal.Decimal `json:"platform_commission"`
	DeliveryPlatformCut decimal.Decimal `json:"delivery_platform_cut"`
	GrandTotal          decimal.Decimal `json:"grand_total"`
}

type Order struct {
	ID                 int             `json:"id"`
	UserID             int             `json:"user_id"`
	RestaurantID       int             `json:"restaurant_id"`
	Status             string          `json:"status"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	PlatformCommission decimal.Decimal `json:"platform_commission"`
	ServiceFee         decimal.Decimal `json:"service_fee"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	OrderDate          time.Time       `json:"order_date"`
}

type OrderItem struct {
	ID              int             `json:"id"`
	OrderID         int             `json:"order_id"`
	MenuItemID      int             `json:"menu_item_id"`
	ItemName        string          `json:"item_name"`
	ItemDescription string          `json:"item_description"`
	Quantity        int             `json:"quantity"`
	Price           decimal.Decimal `json:"price"`
}

type Payment struct {
	ID          int             `json:"id"`
	OrderID     int             `json:"order_id"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	Status      string          `json:"status"`
	PaymentDate time.Time       `json:"payment_date"`
}

type Delivery struct {
	ID            int             `json:"id"`
	OrderID       int             `json:"order_id"`
	DriverID      int             `json:"driver_id"`
	Address       string          `json:"address"`
	Status        string          `json:"status"`
	EstimatedTime time.Time       `json:"estimated_time"`
	ActualTime    *time.Time      `json:"actual_time,omitempty"`
	FeeTotal      decimal.Decimal `json:"delivery_fee_total"`
	PlatformCut   decimal.Decimal `json:"delivery_platform_cut"`
}

// OrderView is the composed read model: header plus denormalized items,
// payment and (if assigned) delivery.
type OrderView struct {
	Order
	UserName       string      `json:"user_name"`
	RestaurantName string      `json:"restaurant_name"`
	Items          []OrderItem `json:"items"`
	Payment        *Payment    `json:"payment,omitempty"`
	Delivery       *Delivery   `json:"delivery,omitempty"`
}

// OrderSummary is a per-user history row.
type OrderSummary struct {
	Order
	RestaurantName string `json:"restaurant_name"`
}

// OrderProfitRow is the per-order revenue detail. Both report variants
// derive from these rows so their totals agree by construction.
type OrderProfitRow struct {
	OrderID             int             `json:"order_id"`
	UserID              int             `json:"user_id"`
	RestaurantID        int             `json:"restaurant_id"`
	RestaurantName      string          `json:"restaurant_name"`
	OrderDate           time.Time       `json:"order_date"`
	TotalAmount         decimal.Decimal `json:"total_amount"`
	Commission          decimal.Decimal `json:"platform_commission"`
	ServiceFee          decimal.Decimal `json:"service_fee"`
	DeliveryPlatformCut decimal.Decimal `json:"delivery_platform_cut"`
	PlatformProfit      decimal.Decimal `json:"platform_profit"`
}

// RevenueRow is the per-restaurant aggregate. Derived, never persisted.
type RevenueRow struct {
	RestaurantID    int             `json:"restaurant_id"`
	RestaurantName  string          `json:"restaurant_name"`
	TotalOrders     int             `json:"total_orders"`
	GrossRevenue    decimal.Decimal `json:"gross_revenue"`
	AvgOrderValue   decimal.Decimal `json:"avg_order_value"`
	UniqueCustomers int             `json:"unique_customers"`
	Commission      decimal.Decimal `json:"platform_commission"`
	ServiceFees     decimal.Decimal `json:"service_fees"`
	DeliveryProfit  decimal.Decimal `json:"delivery_profit"`
	PlatformProfit  decimal.Decimal `json:"platform_profit"`
}

// OrderEvent is published to Kafka after an order commit.
type OrderEvent struct {
	EventID      string    `json:"event_id"`
	Type         string    `json:"type"`
	OrderID      int       `json:"order_id"`
	UserID       int       `json:"user_id"`
	RestaurantID int       `json:"restaurant_id"`
	TotalAmount  string    `json:"total_amount"`
	Timestamp    time.Time `json:"timestamp"`
}
