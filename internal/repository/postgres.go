package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"autoparts/internal/domain"
)

// OrdersSchema таблица архива заказов
const OrdersSchema = `
CREATE TABLE IF NOT EXISTS orders (
  id          BIGSERIAL PRIMARY KEY,
  number      TEXT NOT NULL UNIQUE,
  customer    JSONB NOT NULL,
  items       JSONB NOT NULL,
  status      TEXT NOT NULL,
  total       NUMERIC(14,2) NOT NULL,
  currency    TEXT NOT NULL,
  created_at  TIMESTAMPTZ NOT NULL,
  updated_at  TIMESTAMPTZ NOT NULL
)`

// ErrConflict заказ с таким номером уже есть
var ErrConflict = errors.New("conflict")

// PostgresOrders OrderRepository поверх PostgreSQL (lib/pq)
type PostgresOrders struct {
	DB  *sql.DB
	now func() time.Time
}

var _ OrderRepository = (*PostgresOrders)(nil)

func NewPostgresOrders(db *sql.DB) *PostgresOrders {
	return &PostgresOrders{DB: db, now: func() time.Time { return time.Now().UTC() }}
}

// OpenPostgres открывает пул соединений и проверяет доступность базы
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// Migrate создаёт таблицу заказов, если её нет
func (r *PostgresOrders) Migrate(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, OrdersSchema)
	return err
}

func (r *PostgresOrders) Create(ctx context.Context, o *domain.Order) error {
	customerJSON, itemsJSON, err := marshalOrder(o)
	if err != nil {
		return err
	}
	o.CreatedAt = r.now()
	o.UpdatedAt = o.CreatedAt

	const q = `
INSERT INTO orders (number, customer, items, status, total, currency, created_at, updated_at)
VALUES ($1, $2::jsonb, $3::jsonb, $4, $5, $6, $7, $8)
RETURNING id`
	err = r.DB.QueryRowContext(ctx, q,
		strings.TrimSpace(o.Number),
		string(customerJSON),
		string(itemsJSON),
		string(o.Status),
		o.Total.StringFixed(2),
		o.Currency,
		o.CreatedAt,
		o.UpdatedAt,
	).Scan(&o.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (r *PostgresOrders) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	const q = `
SELECT id, number, customer, items, status, total, currency, created_at, updated_at
FROM orders
WHERE id = $1`
	o, err := scanOrder(r.DB.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *PostgresOrders) Update(ctx context.Context, o *domain.Order) error {
	customerJSON, itemsJSON, err := marshalOrder(o)
	if err != nil {
		return err
	}
	o.UpdatedAt = r.now()

	const q = `
UPDATE orders
SET customer = $2::jsonb, items = $3::jsonb, status = $4, total = $5, currency = $6, updated_at = $7
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, q,
		o.ID,
		string(customerJSON),
		string(itemsJSON),
		string(o.Status),
		o.Total.StringFixed(2),
		o.Currency,
		o.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (domain.Order, error) {
	var (
		o                       domain.Order
		customerJSON, itemsJSON []byte
		status, total           string
	)
	if err := row.Scan(&o.ID, &o.Number, &customerJSON, &itemsJSON, &status, &total, &o.Currency, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return domain.Order{}, err
	}
	if err := json.Unmarshal(customerJSON, &o.Customer); err != nil {
		return domain.Order{}, fmt.Errorf("decode customer: %w", err)
	}
	if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
		return domain.Order{}, fmt.Errorf("decode items: %w", err)
	}
	d, err := decimal.NewFromString(total)
	if err != nil {
		return domain.Order{}, fmt.Errorf("decode total: %w", err)
	}
	o.Status = domain.OrderStatus(status)
	o.Total = d
	o.CreatedAt = o.CreatedAt.UTC()
	o.UpdatedAt = o.UpdatedAt.UTC()
	return o, nil
}

func marshalOrder(o *domain.Order) (customer, items []byte, err error) {
	if customer, err = json.Marshal(o.Customer); err != nil {
		return nil, nil, err
	}
	if items, err = json.Marshal(o.Items); err != nil {
		return nil, nil, err
	}
	return customer, items, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
