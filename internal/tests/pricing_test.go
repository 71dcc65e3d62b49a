package tests

import (
	"context"
	"testing"

	"restaurant-ordering/internal/config"
	"restaurant-ordering/internal/domain"
	"restaurant-ordering/internal/mocks"
	"restaurant-ordering/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func menuItem(id, restaurantID int, price string) *domain.MenuItem {
	return &domain.MenuItem{
		ID:           id,
		RestaurantID: restaurantID,
		Name:         "item",
		Price:        decimal.RequireFromString(price),
	}
}

func TestPricingEngine_Price(t *testing.T) {
	ctx := context.Background()

	t.Run("two_of_the_same_item", func(t *testing.T) {
		menu := mocks.NewMenuRepository(t)
		menu.On("GetMenuItem", ctx, 7).Return(menuItem(7, 1, "16.99"), nil).Once()

		engine := service.NewPricingEngine(menu, config.DefaultFees())
		priced, err := engine.Price(ctx, 1, []domain.OrderLine{{MenuItemID: 7, Quantity: 2}})
		require.NoError(t, err)

		assert.Equal(t, "33.98", priced.Subtotal.StringFixed(2))
		assert.Equal(t, "2.72", priced.Tax.StringFixed(2))
		assert.Equal(t, "3.99", priced.DeliveryFee.StringFixed(2))
		assert.Equal(t, "2.99", priced.ServiceFee.StringFixed(2))
		assert.Equal(t, "43.68", priced.GrandTotal.StringFixed(2))
		assert.Equal(t, "5.10", priced.Commission.StringFixed(2))
		assert.Equal(t, "0.60", priced.DeliveryPlatformCut.StringFixed(2))
	})

	t.Run("half_cent_rounds_up", func(t *testing.T) {
		menu := mocks.NewMenuRepository(t)
		menu.On("GetMenuItem", ctx, 3).Return(menuItem(3, 1, "3.335"), nil).Once()

		engine := service.NewPricingEngine(menu, config.DefaultFees())
		priced, err := engine.Price(ctx, 1, []domain.OrderLine{{MenuItemID: 3, Quantity: 3}})
		require.NoError(t, err)

		// Running subtotal stays exact at 10.005; only derived values round.
		assert.Equal(t, "10.005", priced.Subtotal.String())
		assert.Equal(t, "0.80", priced.Tax.StringFixed(2))
		assert.Equal(t, "17.79", priced.GrandTotal.StringFixed(2))
	})

	t.Run("deterministic_across_repeated_pricing", func(t *testing.T) {
		menu := mocks.NewMenuRepository(t)
		menu.On("GetMenuItem", ctx, 7).Return(menuItem(7, 1, "16.99"), nil).Times(2)

		engine := service.NewPricingEngine(menu, config.DefaultFees())
		lines := []domain.OrderLine{{MenuItemID: 7, Quantity: 2}}

		first, err := engine.Price(ctx, 1, lines)
		require.NoError(t, err)
		second, err := engine.Price(ctx, 1, lines)
		require.NoError(t, err)

		assert.True(t, first.GrandTotal.Equal(second.GrandTotal))
		assert.True(t, first.Commission.Equal(second.Commission))
	})

	t.Run("empty_order", func(t *testing.T) {
		menu := mocks.NewMenuRepository(t)
		engine := service.NewPricingEngine(menu, config.DefaultFees())

		_, err := engine.Price(ctx, 1, nil)
		assert.ErrorIs(t, err, service.ErrEmptyOrder)
	})

	t.Run("zero_quantity", func(t *testing.T) {
		menu := mocks.NewMenuRepository(t)
		engine := service.NewPricingEngine(menu, config.DefaultFees())

		_, err := engine.Price(ctx, 1, []domain.OrderLine{{MenuItemID: 7, Quantity: 0}})
		assert.ErrorIs(t, err, service.ErrInvalidItem)
	})

	t.Run("unknown_menu_item", func(t *testing.T) {
		menu := mocks.NewMenuRepository(t)
		menu.On("GetMenuItem", ctx, 999).Return(nil, assert.AnError).Once()

		engine := service.NewPricingEngine(menu, config.DefaultFees())
		_, err := engine.Price(ctx, 1, []domain.OrderLine{{MenuItemID: 999, Quantity: 1}})
		assert.ErrorIs(t, err, service.ErrInvalidItem)
	})

	t.Run("item_from_another_restaurant", func(t *testing.T) {
		menu := mocks.NewMenuRepository(t)
		menu.On("GetMenuItem", ctx, 7).Return(menuItem(7, 2, "16.99"), nil).Once()

		engine := service.NewPricingEngine(menu, config.DefaultFees())
		_, err := engine.Price(ctx, 1, []domain.OrderLine{{MenuItemID: 7, Quantity: 1}})
		assert.ErrorIs(t, err, service.ErrInvalidItem)
	})

	t.Run("unit_prices_snapshotted", func(t *testing.T) {
		menu := mocks.NewMenuRepository(t)
		menu.On("GetMenuItem", ctx, 7).Return(menuItem(7, 1, "16.99"), nil).Once()
		menu.On("GetMenuItem", ctx, 8).Return(menuItem(8, 1, "4.50"), nil).Once()

		engine := service.NewPricingEngine(menu, config.DefaultFees())
		priced, err := engine.Price(ctx, 1, []domain.OrderLine{
			{MenuItemID: 7, Quantity: 1},
			{MenuItemID: 8, Quantity: 2},
		})
		require.NoError(t, err)

		require.Len(t, priced.Lines, 2)
		assert.Equal(t, "16.99", priced.Lines[0].UnitPrice.StringFixed(2))
		assert.Equal(t, "4.50", priced.Lines[1].UnitPrice.StringFixed(2))
		assert.Equal(t, "25.99", priced.Subtotal.StringFixed(2))
	})
}
