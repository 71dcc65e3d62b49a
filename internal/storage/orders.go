package storage

import (
	"context"
	"database/sql"
	"fmt"

	"restaurant-ordering/internal/domain"
)

// CreateOrder persists the order header, its line items, the payment and
// the delivery assignment in a single transaction. A failure at any step
// rolls back every prior insert; the order is never visible half-written.
func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order, lines []domain.PricedLine, payment *domain.Payment, delivery *domain.Delivery) (int, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin order transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, restaurant_id, status, subtotal, platform_commission, service_fee, total_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, order_date
	`, order.UserID, order.RestaurantID, order.Status, order.Subtotal,
		order.PlatformCommission, order.ServiceFee, order.TotalAmount).
		Scan(&order.ID, &order.OrderDate)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}

	for _, line := range lines {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, menu_item_id, quantity, price)
			VALUES ($1, $2, $3, $4)
		`, order.ID, line.MenuItemID, line.Quantity, line.UnitPrice); err != nil {
			return 0, fmt.Errorf("insert order item %d: %w", line.MenuItemID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO payments (order_id, amount, method, status)
		VALUES ($1, $2, $3, $4)
	`, order.ID, payment.Amount, payment.Method, payment.Status); err != nil {
		return 0, fmt.Errorf("insert payment: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO deliveries (order_id, driver_id, delivery_address, status, estimated_time, delivery_fee_total, delivery_platform_cut)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, order.ID, delivery.DriverID, delivery.Address, delivery.Status,
		delivery.EstimatedTime, delivery.FeeTotal, delivery.PlatformCut); err != nil {
		return 0, fmt.Errorf("insert delivery: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit order: %w", err)
	}
	return order.ID, nil
}

func (r *PostgresRepository) GetOrderView(ctx context.Context, orderID int) (*domain.OrderView, error) {
	var view domain.OrderView
	err := r.DB.QueryRowContext(ctx, `
		SELECT o.id, o.user_id, o.restaurant_id, o.status, o.subtotal,
		       o.platform_commission, o.service_fee, o.total_amount, o.order_date,
		       u.username, r.name
		FROM orders o
		JOIN users u ON o.user_id = u.id
		JOIN restaurants r ON o.restaurant_id = r.id
		WHERE o.id = $1
	`, orderID).Scan(&view.ID, &view.UserID, &view.RestaurantID, &view.Status,
		&view.Subtotal, &view.PlatformCommission, &view.ServiceFee, &view.TotalAmount,
		&view.OrderDate, &view.UserName, &view.RestaurantName)
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.menu_item_id, m.name, COALESCE(m.description, ''),
		       oi.quantity, oi.price
		FROM order_items oi
		JOIN menu_items m ON oi.menu_item_id = m.id
		WHERE oi.order_id = $1
		ORDER BY oi.id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	view.Items = []domain.OrderItem{}
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID, &item.ItemName,
			&item.ItemDescription, &item.Quantity, &item.Price); err != nil {
			return nil, err
		}
		view.Items = append(view.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var payment domain.Payment
	err = r.DB.QueryRowContext(ctx, `
		SELECT id, order_id, amount, method, status, payment_date
		FROM payments
		WHERE order_id = $1
	`, orderID).Scan(&payment.ID, &payment.OrderID, &payment.Amount,
		&payment.Method, &payment.Status, &payment.PaymentDate)
	if err == nil {
		view.Payment = &payment
	} else if err != sql.ErrNoRows {
		return nil, err
	}

	delivery, err := r.GetDeliveryByOrder(ctx, orderID)
	if err == nil {
		view.Delivery = delivery
	} else if err != sql.ErrNoRows {
		return nil, err
	}

	return &view, nil
}

func (r *PostgresRepository) ListUserOrders(ctx context.Context, userID int) ([]domain.OrderSummary, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT o.id, o.user_id, o.restaurant_id, o.status, o.subtotal,
		       o.platform_commission, o.service_fee, o.total_amount, o.order_date, r.name
		FROM orders o
		JOIN restaurants r ON o.restaurant_id = r.id
		WHERE o.user_id = $1
		ORDER BY o.order_date DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.OrderSummary{}
	for rows.Next() {
		var summary domain.OrderSummary
		if err := rows.Scan(&summary.ID, &summary.UserID, &summary.RestaurantID,
			&summary.Status, &summary.Subtotal, &summary.PlatformCommission,
			&summary.ServiceFee, &summary.TotalAmount, &summary.OrderDate,
			&summary.RestaurantName); err != nil {
			return nil, err
		}
		orders = append(orders, summary)
	}
	return orders, rows.Err()
}

func (r *PostgresRepository) SaveQRCode(ctx context.Context, orderID int, qr []byte) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE orders SET qr_code = $1 WHERE id = $2`, qr, orderID)
	return err
}

func (r *PostgresRepository) GetQRCode(ctx context.Context, orderID int) ([]byte, error) {
	var qr []byte
	if err := r.DB.QueryRowContext(ctx, `SELECT qr_code FROM orders WHERE id = $1`, orderID).Scan(&qr); err != nil {
		return nil, err
	}
	return qr, nil
}

func (r *PostgresRepository) GetDeliveryByOrder(ctx context.Context, orderID int) (*domain.Delivery, error) {
	return r.scanDelivery(r.DB.QueryRowContext(ctx, `
		SELECT id, order_id, driver_id, COALESCE(delivery_address, ''), status,
		       estimated_time, actual_time, delivery_fee_total, delivery_platform_cut
		FROM deliveries
		WHERE order_id = $1
	`, orderID))
}

func (r *PostgresRepository) GetDelivery(ctx context.Context, id int) (*domain.Delivery, error) {
	return r.scanDelivery(r.DB.QueryRowContext(ctx, `
		SELECT id, order_id, driver_id, COALESCE(delivery_address, ''), status,
		       estimated_time, actual_time, delivery_fee_total, delivery_platform_cut
		FROM deliveries
		WHERE id = $1
	`, id))
}

func (r *PostgresRepository) scanDelivery(row *sql.Row) (*domain.Delivery, error) {
	var delivery domain.Delivery
	var actual sql.NullTime
	err := row.Scan(&delivery.ID, &delivery.OrderID, &delivery.DriverID, &delivery.Address,
		&delivery.Status, &delivery.EstimatedTime, &actual, &delivery.FeeTotal, &delivery.PlatformCut)
	if err != nil {
		return nil, err
	}
	if actual.Valid {
		delivery.ActualTime = &actual.Time
	}
	return &delivery, nil
}

// UpdateDeliveryStatus moves a delivery through its lifecycle. A DELIVERED
// update also stamps the actual time and completes the parent order, so
// the two records never disagree.
func (r *PostgresRepository) UpdateDeliveryStatus(ctx context.Context, deliveryID int, status string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delivery update: %w", err)
	}
	defer tx.Rollback()

	var orderID int
	if status == domain.DeliveryStatusDelivered {
		err = tx.QueryRowContext(ctx, `
			UPDATE deliveries SET status = $1, actual_time = NOW()
			WHERE id = $2
			RETURNING order_id
		`, status, deliveryID).Scan(&orderID)
	} else {
		err = tx.QueryRowContext(ctx, `
			UPDATE deliveries SET status = $1
			WHERE id = $2
			RETURNING order_id
		`, status, deliveryID).Scan(&orderID)
	}
	if err != nil {
		return err
	}

	if status == domain.DeliveryStatusDelivered {
		if _, err := tx.ExecContext(ctx, `
			UPDATE orders SET status = $1 WHERE id = $2
		`, domain.OrderStatusDelivered, orderID); err != nil {
			return fmt.Errorf("complete order %d: %w", orderID, err)
		}
	}

	return tx.Commit()
}
