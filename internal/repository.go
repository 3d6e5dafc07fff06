package internal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/shopfront/checkout/internal/migrations"
	"github.com/shopfront/checkout/internal/model"
)

const orderFields = "charge_id, number, status, payment_status, amount_cents, currency, customer, items, tracking_number, notes, created_at, updated_at"

const recentOrdersLimit = 10

// Fixed-width RFC3339 so lexicographic order on the column is chronological.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type IRepository interface {
	CreateOrder(context.Context, model.Order) error
	UpdateOrderStatus(context.Context, string, model.OrderStatus, *string) (model.Order, error)
	GetOrder(context.Context, string) (model.Order, error)
	GetOrderByNumber(context.Context, string) (model.Order, error)
	OrderNumberExists(context.Context, string) (bool, error)
	GetAllOrders(context.Context) ([]model.Order, error)
	GetStats(context.Context) (model.Stats, error)
}

type Repository struct {
	Conn   *sql.DB
	Logger *zap.SugaredLogger
}

func NewRepository(path string, logger *zap.SugaredLogger) (*Repository, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	goose.SetBaseFS(migrations.FS)
	if err = goose.SetDialect("sqlite3"); err != nil {
		return nil, err
	}
	if err = goose.Up(conn, "."); err != nil {
		return nil, err
	}

	return &Repository{Conn: conn, Logger: logger}, nil
}

func (r Repository) CreateOrder(ctx context.Context, o model.Order) error {
	customer, err := json.Marshal(o.Customer)
	if err != nil {
		return err
	}
	items, err := json.Marshal(o.Items)
	if err != nil {
		return err
	}

	_, err = r.Conn.ExecContext(ctx,
		"INSERT INTO orders ("+orderFields+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		o.ChargeID, o.Number, string(o.Status), o.PaymentStatus, o.AmountCents, o.Currency,
		string(customer), string(items), o.TrackingNumber, o.Notes,
		o.CreatedAt.UTC().Format(timeLayout), o.UpdatedAt.UTC().Format(timeLayout))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDuplicateCharge
		}
		return err
	}
	return nil
}

func (r Repository) UpdateOrderStatus(ctx context.Context, chargeID string, status model.OrderStatus, trackingNumber *string) (model.Order, error) {
	o, err := r.GetOrder(ctx, chargeID)
	if err != nil {
		return model.Order{}, err
	}

	o.Status = status
	o.UpdatedAt = time.Now().UTC()
	if trackingNumber != nil {
		o.TrackingNumber = trackingNumber
	}

	_, err = r.Conn.ExecContext(ctx, "UPDATE orders SET status = ?, tracking_number = ?, updated_at = ? WHERE charge_id = ?",
		string(o.Status), o.TrackingNumber, o.UpdatedAt.Format(timeLayout), chargeID)
	if err != nil {
		return model.Order{}, err
	}

	return o, nil
}

func (r Repository) GetOrder(ctx context.Context, chargeID string) (model.Order, error) {
	row := r.Conn.QueryRowContext(ctx, "SELECT "+orderFields+" FROM orders WHERE charge_id = ?", chargeID)
	return scanOrder(row)
}

func (r Repository) GetOrderByNumber(ctx context.Context, number string) (model.Order, error) {
	row := r.Conn.QueryRowContext(ctx, "SELECT "+orderFields+" FROM orders WHERE number = ? LIMIT 1", number)
	return scanOrder(row)
}

func (r Repository) OrderNumberExists(ctx context.Context, number string) (bool, error) {
	exist := false

	row := r.Conn.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM orders WHERE number = ?)", number)
	err := row.Scan(&exist)
	if err != nil {
		return false, err
	}

	return exist, nil
}

func (r Repository) GetAllOrders(ctx context.Context) ([]model.Order, error) {
	return r.listOrders(ctx, "SELECT "+orderFields+" FROM orders ORDER BY created_at DESC, charge_id")
}

func (r Repository) GetStats(ctx context.Context) (model.Stats, error) {
	stats := model.Stats{
		Currency:       Currency,
		OrdersByStatus: map[model.OrderStatus]int{},
	}

	var revenueCents int64
	row := r.Conn.QueryRowContext(ctx, "SELECT COUNT(*), COALESCE(SUM(amount_cents), 0) FROM orders")
	if err := row.Scan(&stats.TotalOrders, &revenueCents); err != nil {
		return model.Stats{}, err
	}
	stats.TotalRevenue = decimal.New(revenueCents, -2)

	rows, err := r.Conn.QueryContext(ctx, "SELECT status, COUNT(*) FROM orders GROUP BY status")
	if err != nil {
		return model.Stats{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			status model.OrderStatus
			count  int
		)
		if err = rows.Scan(&status, &count); err != nil {
			return model.Stats{}, err
		}
		stats.OrdersByStatus[status] = count
	}
	if err = rows.Err(); err != nil {
		return model.Stats{}, err
	}

	recent, err := r.listOrders(ctx, "SELECT "+orderFields+" FROM orders ORDER BY created_at DESC, charge_id LIMIT ?", recentOrdersLimit)
	if err != nil {
		return model.Stats{}, err
	}
	stats.RecentOrders = recent

	return stats, nil
}

func (r Repository) listOrders(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.Conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (model.Order, error) {
	var (
		o                  model.Order
		customer, items    string
		tracking           sql.NullString
		createdAt, updated string
	)

	err := row.Scan(&o.ChargeID, &o.Number, &o.Status, &o.PaymentStatus, &o.AmountCents, &o.Currency,
		&customer, &items, &tracking, &o.Notes, &createdAt, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Order{}, ErrOrderNotFound
		}
		return model.Order{}, err
	}

	if err = json.Unmarshal([]byte(customer), &o.Customer); err != nil {
		return model.Order{}, err
	}
	if err = json.Unmarshal([]byte(items), &o.Items); err != nil {
		return model.Order{}, err
	}
	if tracking.Valid {
		o.TrackingNumber = &tracking.String
	}
	if o.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return model.Order{}, err
	}
	if o.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return model.Order{}, err
	}

	return o, nil
}
