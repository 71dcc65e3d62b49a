package storage

import (
	"context"
	"database/sql"
	"fmt"

	"restaurant-ordering/internal/domain"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			username VARCHAR(50) NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			phone TEXT,
			role TEXT NOT NULL DEFAULT 'customer',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS restaurants (
			id SERIAL PRIMARY KEY,
			owner_id INT NOT NULL REFERENCES users(id),
			name TEXT NOT NULL,
			address TEXT,
			description TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS menu_items (
			id SERIAL PRIMARY KEY,
			restaurant_id INT NOT NULL REFERENCES restaurants(id),
			name TEXT NOT NULL,
			description TEXT,
			price NUMERIC(10,2) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			user_id INT NOT NULL REFERENCES users(id),
			restaurant_id INT NOT NULL REFERENCES restaurants(id),
			status TEXT NOT NULL DEFAULT 'PENDING',
			subtotal NUMERIC(10,2) NOT NULL,
			platform_commission NUMERIC(10,2) NOT NULL DEFAULT 0,
			service_fee NUMERIC(10,2) NOT NULL DEFAULT 0,
			total_amount NUMERIC(10,2) NOT NULL,
			qr_code BYTEA,
			order_date TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id SERIAL PRIMARY KEY,
			order_id INT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			menu_item_id INT NOT NULL REFERENCES menu_items(id),
			quantity INT NOT NULL,
			price NUMERIC(10,2) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS payments (
			id SERIAL PRIMARY KEY,
			order_id INT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			amount NUMERIC(10,2) NOT NULL,
			method TEXT NOT NULL,
			status TEXT NOT NULL,
			payment_date TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS deliveries (
			id SERIAL PRIMARY KEY,
			order_id INT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			driver_id INT NOT NULL REFERENCES users(id),
			delivery_address TEXT,
			status TEXT NOT NULL DEFAULT 'ASSIGNED',
			estimated_time TIMESTAMPTZ,
			actual_time TIMESTAMPTZ,
			delivery_fee_total NUMERIC(10,2) NOT NULL DEFAULT 0,
			delivery_platform_cut NUMERIC(10,2) NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_restaurant ON orders(restaurant_id)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)`,
		`CREATE INDEX IF NOT EXISTS idx_deliveries_order ON deliveries(order_id)`,
	}

	for _, stmt := range statements {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) CreateUser(ctx context.Context, user *domain.User) error {
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO users (username, email, password, phone, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, user.Username, user.Email, user.Password, user.Phone, user.Role).
		Scan(&user.ID, &user.CreatedAt)
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, username, email, password, COALESCE(phone, ''), role, created_at
		FROM users
		WHERE email = $1
	`, email).Scan(&user.ID, &user.Username, &user.Email, &user.Password, &user.Phone, &user.Role, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) GetUser(ctx context.Context, id int) (*domain.User, error) {
	var user domain.User
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, username, email, password, COALESCE(phone, ''), role, created_at
		FROM users
		WHERE id = $1
	`, id).Scan(&user.ID, &user.Username, &user.Email, &user.Password, &user.Phone, &user.Role, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT r.id, r.owner_id, r.name, COALESCE(r.address, ''), COALESCE(r.description, ''),
		       u.username, r.created_at
		FROM restaurants r
		JOIN users u ON r.owner_id = u.id
		ORDER BY r.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	restaurants := []domain.Restaurant{}
	for rows.Next() {
		var rest domain.Restaurant
		if err := rows.Scan(&rest.ID, &rest.OwnerID, &rest.Name, &rest.Address,
			&rest.Description, &rest.OwnerName, &rest.CreatedAt); err != nil {
			return nil, err
		}
		restaurants = append(restaurants, rest)
	}
	return restaurants, rows.Err()
}

func (r *PostgresRepository) GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	err := r.DB.QueryRowContext(ctx, `
		SELECT r.id, r.owner_id, r.name, COALESCE(r.address, ''), COALESCE(r.description, ''),
		       u.username, r.created_at
		FROM restaurants r
		JOIN users u ON r.owner_id = u.id
		WHERE r.id = $1
	`, id).Scan(&rest.ID, &rest.OwnerID, &rest.Name, &rest.Address,
		&rest.Description, &rest.OwnerName, &rest.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *PostgresRepository) ListMenu(ctx context.Context, restaurantID int) ([]domain.MenuItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, restaurant_id, name, COALESCE(description, ''), price, created_at
		FROM menu_items
		WHERE restaurant_id = $1
		ORDER BY name
	`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.MenuItem{}
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.ID, &item.RestaurantID, &item.Name,
			&item.Description, &item.Price, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error) {
	var item domain.MenuItem
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, restaurant_id, name, COALESCE(description, ''), price, created_at
		FROM menu_items
		WHERE id = $1
	`, id).Scan(&item.ID, &item.RestaurantID, &item.Name, &item.Description, &item.Price, &item.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO menu_items (restaurant_id, name, description, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, item.RestaurantID, item.Name, item.Description, item.Price).
		Scan(&item.ID, &item.CreatedAt)
}

// NextAvailableDriver picks the driver with the fewest deliveries still in
// flight. sql.ErrNoRows means no driver account exists at all.
func (r *PostgresRepository) NextAvailableDriver(ctx context.Context) (int, error) {
	var driverID int
	err := r.DB.QueryRowContext(ctx, `
		SELECT u.id
		FROM users u
		LEFT JOIN deliveries d ON d.driver_id = u.id
			AND d.status IN ('ASSIGNED', 'PICKED_UP', 'IN_TRANSIT')
		WHERE u.role = 'driver'
		GROUP BY u.id
		ORDER BY COUNT(d.id), u.id
		LIMIT 1
	`).Scan(&driverID)
	if err != nil {
		return 0, err
	}
	return driverID, nil
}

func (r *PostgresRepository) ListTables(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		ORDER BY table_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}
