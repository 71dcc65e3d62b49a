package service

import (
	"context"
	"errors"
	"fmt"

	"restaurant-ordering/internal/config"
	"restaurant-ordering/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyOrder  = errors.New("order has no line items")
	ErrInvalidItem = errors.New("invalid menu item")
)

// PricingEngine turns requested order lines into a fully priced order.
// It has no side effects beyond menu lookups.
type PricingEngine struct {
	menu MenuRepository
	fees config.Fees
}

func NewPricingEngine(menu MenuRepository, fees config.Fees) *PricingEngine {
	return &PricingEngine{menu: menu, fees: fees}
}

// Price validates each line against the menu and derives the monetary
// totals. Rounding to cents happens exactly once per derived value, never
// on the running subtotal, so repeated additions cannot drift.
func (e *PricingEngine) Price(ctx context.Context, restaurantID int, lines []domain.OrderLine) (*domain.PricedOrder, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}

	priced := &domain.PricedOrder{
		RestaurantID: restaurantID,
		Lines:        make([]domain.PricedLine, 0, len(lines)),
		DeliveryFee:  e.fees.DeliveryFee,
		ServiceFee:   e.fees.ServiceFee,
	}

	subtotal := decimal.Zero
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, fmt.Errorf("%w: menu item %d has quantity %d", ErrInvalidItem, line.MenuItemID, line.Quantity)
		}

		item, err := e.menu.GetMenuItem(ctx, line.MenuItemID)
		if err != nil {
			return nil, fmt.Errorf("%w: menu item %d not found", ErrInvalidItem, line.MenuItemID)
		}
		if item.RestaurantID != restaurantID {
			return nil, fmt.Errorf("%w: menu item %d does not belong to restaurant %d", ErrInvalidItem, line.MenuItemID, restaurantID)
		}

		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		priced.Lines = append(priced.Lines, domain.PricedLine{
			MenuItemID: line.MenuItemID,
			Quantity:   line.Quantity,
			UnitPrice:  item.Price,
		})
	}

	priced.Subtotal = subtotal
	priced.Tax = subtotal.Mul(e.fees.TaxRate).Round(2)
	priced.Commission = subtotal.Mul(e.fees.CommissionRate).Round(2)
	priced.DeliveryPlatformCut = e.fees.DeliveryFee.Mul(e.fees.DeliveryPlatformRate).Round(2)
	priced.GrandTotal = subtotal.
		Add(e.fees.DeliveryFee).
		Add(e.fees.ServiceFee).
		Add(priced.Tax).
		Round(2)

	return priced, nil
}

var _ Pricer = (*PricingEngine)(nil)
