package service

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"restaurant-ordering/internal/domain"
)

var ErrRestaurantNotFound = errors.New("restaurant not found")

type CatalogService struct {
	restaurants RestaurantRepository
	menu        MenuRepository
	cache       MenuCache
}

func NewCatalogService(restaurants RestaurantRepository, menu MenuRepository, cache MenuCache) *CatalogService {
	return &CatalogService{
		restaurants: restaurants,
		menu:        menu,
		cache:       cache,
	}
}

func (s *CatalogService) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	return s.restaurants.ListRestaurants(ctx)
}

func (s *CatalogService) GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error) {
	rest, err := s.restaurants.GetRestaurant(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	return rest, nil
}

// GetMenu serves the menu from cache when possible, falling back to the
// database and repopulating on a miss.
func (s *CatalogService) GetMenu(ctx context.Context, restaurantID int) ([]domain.MenuItem, error) {
	if s.cache != nil {
		if items, ok := s.cache.GetMenu(ctx, restaurantID); ok {
			return items, nil
		}
	}

	items, err := s.menu.ListMenu(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetMenu(ctx, restaurantID, items); err != nil {
			log.Printf("[catalog-svc] failed to cache menu for restaurant %d: %v", restaurantID, err)
		}
	}
	return items, nil
}

func (s *CatalogService) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	if _, err := s.restaurants.GetRestaurant(ctx, item.RestaurantID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRestaurantNotFound
		}
		return err
	}

	if err := s.menu.CreateMenuItem(ctx, item); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateMenu(ctx, item.RestaurantID); err != nil {
			log.Printf("[catalog-svc] failed to invalidate menu cache for restaurant %d: %v", item.RestaurantID, err)
		}
	}
	return nil
}

var _ CatalogServiceInterface = (*CatalogService)(nil)
