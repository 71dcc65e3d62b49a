package storage

import (
	"context"

	"restaurant-ordering/internal/domain"
)

// OrderProfitRows returns one row per completed order. Completed means the
// order reached DELIVERED and its payment COMPLETED; cancelled orders are
// excluded entirely. Every revenue view aggregates these same rows, which
// keeps the per-restaurant report and the per-order details in agreement.
func (r *PostgresRepository) OrderProfitRows(ctx context.Context) ([]domain.OrderProfitRow, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT o.id, o.user_id, o.restaurant_id, rst.name, o.order_date, o.total_amount,
		       o.platform_commission, o.service_fee, COALESCE(d.delivery_platform_cut, 0)
		FROM orders o
		JOIN restaurants rst ON o.restaurant_id = rst.id
		JOIN payments p ON p.order_id = o.id AND p.status = 'COMPLETED'
		LEFT JOIN deliveries d ON d.order_id = o.id
		WHERE o.status = 'DELIVERED'
		ORDER BY o.order_date DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.OrderProfitRow{}
	for rows.Next() {
		var row domain.OrderProfitRow
		if err := rows.Scan(&row.OrderID, &row.UserID, &row.RestaurantID, &row.RestaurantName,
			&row.OrderDate, &row.TotalAmount, &row.Commission, &row.ServiceFee,
			&row.DeliveryPlatformCut); err != nil {
			return nil, err
		}
		row.PlatformProfit = row.Commission.Add(row.ServiceFee).Add(row.DeliveryPlatformCut)
		result = append(result, row)
	}
	return result, rows.Err()
}
