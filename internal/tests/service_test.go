package tests

import (
	"context"
	"database/sql"
	"testing"

	"restaurant-ordering/internal/domain"
	"restaurant-ordering/internal/mocks"
	"restaurant-ordering/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		user          *domain.User
		prepareMocks  func(users *mocks.UserRepository)
		expectedError error
		expectedRole  string
	}{
		{
			name: "success_defaults_to_customer",
			user: &domain.User{Username: "alice", Email: "alice@example.com", Password: "secret"},
			prepareMocks: func(users *mocks.UserRepository) {
				users.On("GetUserByEmail", ctx, "alice@example.com").Return(nil, sql.ErrNoRows).Once()
				users.On("CreateUser", ctx, mock.Anything).Return(nil).Once()
			},
			expectedRole: "customer",
		},
		{
			name: "error_email_taken",
			user: &domain.User{Username: "bob", Email: "alice@example.com", Password: "secret"},
			prepareMocks: func(users *mocks.UserRepository) {
				users.On("GetUserByEmail", ctx, "alice@example.com").
					Return(&domain.User{ID: 1, Email: "alice@example.com"}, nil).Once()
			},
			expectedError: service.ErrEmailTaken,
		},
		{
			name: "explicit_role_kept",
			user: &domain.User{Username: "dan", Email: "dan@example.com", Password: "secret", Role: "driver"},
			prepareMocks: func(users *mocks.UserRepository) {
				users.On("GetUserByEmail", ctx, "dan@example.com").Return(nil, sql.ErrNoRows).Once()
				users.On("CreateUser", ctx, mock.Anything).Return(nil).Once()
			},
			expectedRole: "driver",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			users := mocks.NewUserRepository(t)
			testCase.prepareMocks(users)

			svc := service.NewAuthService(users)
			err := svc.Register(ctx, testCase.user)

			assert.ErrorIs(t, err, testCase.expectedError)
			if testCase.expectedError == nil {
				assert.Equal(t, testCase.expectedRole, testCase.user.Role)
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		users := mocks.NewUserRepository(t)
		users.On("GetUserByEmail", ctx, "alice@example.com").
			Return(&domain.User{ID: 1, Email: "alice@example.com", Password: "secret"}, nil).Once()

		svc := service.NewAuthService(users)
		user, err := svc.Login(ctx, "alice@example.com", "secret")
		require.NoError(t, err)
		assert.Equal(t, 1, user.ID)
	})

	t.Run("wrong_password", func(t *testing.T) {
		users := mocks.NewUserRepository(t)
		users.On("GetUserByEmail", ctx, "alice@example.com").
			Return(&domain.User{ID: 1, Email: "alice@example.com", Password: "secret"}, nil).Once()

		svc := service.NewAuthService(users)
		_, err := svc.Login(ctx, "alice@example.com", "wrong")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("unknown_email", func(t *testing.T) {
		users := mocks.NewUserRepository(t)
		users.On("GetUserByEmail", ctx, "nobody@example.com").Return(nil, sql.ErrNoRows).Once()

		svc := service.NewAuthService(users)
		_, err := svc.Login(ctx, "nobody@example.com", "secret")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestCatalogService_GetMenu(t *testing.T) {
	ctx := context.Background()
	cachedItems := []domain.MenuItem{{ID: 7, RestaurantID: 1, Name: "Carbonara", Price: decimal.RequireFromString("16.99")}}

	t.Run("cache_hit_skips_database", func(t *testing.T) {
		restaurants := mocks.NewRestaurantRepository(t)
		menu := mocks.NewMenuRepository(t)
		cache := mocks.NewMenuCache(t)

		cache.On("GetMenu", ctx, 1).Return(cachedItems, true).Once()

		svc := service.NewCatalogService(restaurants, menu, cache)
		items, err := svc.GetMenu(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, cachedItems, items)
		menu.AssertNotCalled(t, "ListMenu", mock.Anything, mock.Anything)
	})

	t.Run("cache_miss_repopulates", func(t *testing.T) {
		restaurants := mocks.NewRestaurantRepository(t)
		menu := mocks.NewMenuRepository(t)
		cache := mocks.NewMenuCache(t)

		cache.On("GetMenu", ctx, 1).Return(nil, false).Once()
		menu.On("ListMenu", ctx, 1).Return(cachedItems, nil).Once()
		cache.On("SetMenu", ctx, 1, cachedItems).Return(nil).Once()

		svc := service.NewCatalogService(restaurants, menu, cache)
		items, err := svc.GetMenu(ctx, 1)

		require.NoError(t, err)
		assert.Len(t, items, 1)
	})
}

func TestCatalogService_CreateMenuItem(t *testing.T) {
	ctx := context.Background()

	t.Run("invalidates_cache", func(t *testing.T) {
		restaurants := mocks.NewRestaurantRepository(t)
		menu := mocks.NewMenuRepository(t)
		cache := mocks.NewMenuCache(t)

		item := &domain.MenuItem{RestaurantID: 1, Name: "Tiramisu", Price: decimal.RequireFromString("6.50")}
		restaurants.On("GetRestaurant", ctx, 1).Return(&domain.Restaurant{ID: 1}, nil).Once()
		menu.On("CreateMenuItem", ctx, item).Return(nil).Once()
		cache.On("InvalidateMenu", ctx, 1).Return(nil).Once()

		svc := service.NewCatalogService(restaurants, menu, cache)
		err := svc.CreateMenuItem(ctx, item)
		assert.NoError(t, err)
	})

	t.Run("unknown_restaurant", func(t *testing.T) {
		restaurants := mocks.NewRestaurantRepository(t)
		menu := mocks.NewMenuRepository(t)
		cache := mocks.NewMenuCache(t)

		restaurants.On("GetRestaurant", ctx, 99).Return(nil, sql.ErrNoRows).Once()

		svc := service.NewCatalogService(restaurants, menu, cache)
		err := svc.CreateMenuItem(ctx, &domain.MenuItem{RestaurantID: 99, Name: "Ghost"})

		assert.ErrorIs(t, err, service.ErrRestaurantNotFound)
		menu.AssertNotCalled(t, "CreateMenuItem", mock.Anything, mock.Anything)
	})
}

func TestDeliveryService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("valid_status", func(t *testing.T) {
		deliveries := mocks.NewDeliveryRepository(t)
		deliveries.On("UpdateDeliveryStatus", ctx, 3, domain.DeliveryStatusInTransit).Return(nil).Once()

		svc := service.NewDeliveryService(deliveries)
		err := svc.UpdateStatus(ctx, 3, domain.DeliveryStatusInTransit)
		assert.NoError(t, err)
	})

	t.Run("invalid_status_rejected", func(t *testing.T) {
		deliveries := mocks.NewDeliveryRepository(t)

		svc := service.NewDeliveryService(deliveries)
		err := svc.UpdateStatus(ctx, 3, "TELEPORTED")

		assert.ErrorIs(t, err, service.ErrInvalidStatus)
		deliveries.AssertNotCalled(t, "UpdateDeliveryStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("not_found", func(t *testing.T) {
		deliveries := mocks.NewDeliveryRepository(t)
		deliveries.On("UpdateDeliveryStatus", ctx, 99, domain.DeliveryStatusPickedUp).Return(sql.ErrNoRows).Once()

		svc := service.NewDeliveryService(deliveries)
		err := svc.UpdateStatus(ctx, 99, domain.DeliveryStatusPickedUp)
		assert.ErrorIs(t, err, service.ErrDeliveryNotFound)
	})
}

func TestDriverAssigners(t *testing.T) {
	ctx := context.Background()

	t.Run("fixed_driver", func(t *testing.T) {
		id, err := service.FixedDriver{DriverID: 7}.AssignDriver(ctx)
		require.NoError(t, err)
		assert.Equal(t, 7, id)
	})

	t.Run("fixed_driver_unset", func(t *testing.T) {
		_, err := service.FixedDriver{}.AssignDriver(ctx)
		assert.ErrorIs(t, err, service.ErrDriverUnavailable)
	})

	t.Run("pool_empty", func(t *testing.T) {
		drivers := mocks.NewDriverRepository(t)
		drivers.On("NextAvailableDriver", ctx).Return(0, sql.ErrNoRows).Once()

		_, err := service.PoolAssigner{Drivers: drivers}.AssignDriver(ctx)
		assert.ErrorIs(t, err, service.ErrDriverUnavailable)
	})

	t.Run("pool_picks_driver", func(t *testing.T) {
		drivers := mocks.NewDriverRepository(t)
		drivers.On("NextAvailableDriver", ctx).Return(12, nil).Once()

		id, err := service.PoolAssigner{Drivers: drivers}.AssignDriver(ctx)
		require.NoError(t, err)
		assert.Equal(t, 12, id)
	})
}
