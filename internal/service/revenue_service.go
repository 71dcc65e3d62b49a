package service

import (
	"context"
	"sort"

	"restaurant-ordering/internal/domain"

	"github.com/shopspring/decimal"
)

// RevenueService builds both report variants from the same per-order
// rows. Aggregating the details in one place is what guarantees that
// Σ(report platform profit) always equals Σ(details platform profit).
type RevenueService struct {
	revenue RevenueRepository
}

func NewRevenueService(revenue RevenueRepository) *RevenueService {
	return &RevenueService{revenue: revenue}
}

func (s *RevenueService) Details(ctx context.Context) ([]domain.OrderProfitRow, error) {
	return s.revenue.OrderProfitRows(ctx)
}

func (s *RevenueService) Report(ctx context.Context) ([]domain.RevenueRow, error) {
	details, err := s.revenue.OrderProfitRows(ctx)
	if err != nil {
		return nil, err
	}
	return aggregateByRestaurant(details), nil
}

func aggregateByRestaurant(details []domain.OrderProfitRow) []domain.RevenueRow {
	byRestaurant := map[int]*domain.RevenueRow{}
	customers := map[int]map[int]bool{}

	for _, row := range details {
		agg, ok := byRestaurant[row.RestaurantID]
		if !ok {
			agg = &domain.RevenueRow{
				RestaurantID:   row.RestaurantID,
				RestaurantName: row.RestaurantName,
			}
			byRestaurant[row.RestaurantID] = agg
			customers[row.RestaurantID] = map[int]bool{}
		}

		agg.TotalOrders++
		agg.GrossRevenue = agg.GrossRevenue.Add(row.TotalAmount)
		agg.Commission = agg.Commission.Add(row.Commission)
		agg.ServiceFees = agg.ServiceFees.Add(row.ServiceFee)
		agg.DeliveryProfit = agg.DeliveryProfit.Add(row.DeliveryPlatformCut)
		agg.PlatformProfit = agg.PlatformProfit.Add(row.PlatformProfit)
		customers[row.RestaurantID][row.UserID] = true
	}

	report := make([]domain.RevenueRow, 0, len(byRestaurant))
	for id, agg := range byRestaurant {
		agg.UniqueCustomers = len(customers[id])
		if agg.TotalOrders > 0 {
			agg.AvgOrderValue = agg.GrossRevenue.DivRound(decimal.NewFromInt(int64(agg.TotalOrders)), 2)
		}
		report = append(report, *agg)
	}

	sort.Slice(report, func(i, j int) bool {
		return report[i].GrossRevenue.GreaterThan(report[j].GrossRevenue)
	})
	return report
}

var _ RevenueServiceInterface = (*RevenueService)(nil)
