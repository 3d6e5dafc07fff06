package internal

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/shopfront/checkout/internal/model"
)

const (
	orderNumberPrefix   = "SF"
	orderNumberAttempts = 5
)

type CheckoutInput struct {
	Items    []model.CartLine `json:"cartItems"`
	Customer model.Customer   `json:"customerInfo"`
}

type CheckoutOutput struct {
	Order        model.Order        `json:"order"`
	Lines        []model.PricedLine `json:"lines"`
	TotalCents   int64              `json:"totalCents"`
	Currency     string             `json:"currency"`
	ClientSecret string             `json:"clientSecret"`
}

type AdminOrdersOutput struct {
	Stats  model.Stats   `json:"stats"`
	Orders []model.Order `json:"orders"`
}

type IService interface {
	Checkout(context.Context, CheckoutInput) (CheckoutOutput, error)
	ConfirmPayment(context.Context, string) (model.Order, error)
	UpdateOrderStatus(context.Context, string, model.OrderStatus, *string) (model.Order, error)
	GetOrderByNumber(context.Context, string) (model.OrderOutput, error)
	AdminOrders(context.Context) (AdminOrdersOutput, error)
}

func NewService(repository IRepository, payment IPayment, catalog map[int]model.Product, logger *zap.SugaredLogger) *Service {
	return &Service{Repository: repository, Payment: payment, catalog: catalog, logger: logger}
}

type Service struct {
	Repository IRepository
	Payment    IPayment
	catalog    map[int]model.Product
	logger     *zap.SugaredLogger
}

func (s Service) Checkout(ctx context.Context, in CheckoutInput) (CheckoutOutput, error) {
	if in.Customer.Email == "" {
		return CheckoutOutput{}, ErrEmailRequired
	}

	cart, err := PriceCart(s.catalog, in.Items)
	if err != nil {
		return CheckoutOutput{}, err
	}

	intent, err := s.Payment.CreateIntent(ctx, cart.TotalCents, cart.Currency, in.Customer.Email)
	if err != nil {
		return CheckoutOutput{}, err
	}

	customer := in.Customer
	if customer.Address.Country == "" {
		customer.Address.Country = model.DefaultCountry
	}

	now := time.Now().UTC()
	order := model.Order{
		ChargeID:      intent.ID,
		Number:        s.newOrderNumber(ctx, now),
		Status:        model.OrderStatusPending,
		PaymentStatus: intent.Status,
		AmountCents:   cart.TotalCents,
		Currency:      cart.Currency,
		Customer:      customer,
		Items:         cart.Lines,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = s.Repository.CreateOrder(ctx, order)
	if err != nil {
		return CheckoutOutput{}, err
	}

	return CheckoutOutput{
		Order:        order,
		Lines:        cart.Lines,
		TotalCents:   cart.TotalCents,
		Currency:     cart.Currency,
		ClientSecret: intent.ClientSecret,
	}, nil
}

func (s Service) ConfirmPayment(ctx context.Context, chargeID string) (model.Order, error) {
	return s.UpdateOrderStatus(ctx, chargeID, model.OrderStatusPaid, nil)
}

func (s Service) UpdateOrderStatus(ctx context.Context, chargeID string, status model.OrderStatus, trackingNumber *string) (model.Order, error) {
	if status == "" {
		return model.Order{}, ErrEmptyStatus
	}

	return s.Repository.UpdateOrderStatus(ctx, chargeID, status, trackingNumber)
}

func (s Service) GetOrderByNumber(ctx context.Context, number string) (model.OrderOutput, error) {
	o, err := s.Repository.GetOrderByNumber(ctx, number)
	if err != nil {
		return model.OrderOutput{}, err
	}

	return model.OrderOutput{
		Number:         o.Number,
		Status:         o.Status,
		Items:          o.Items,
		AmountCents:    o.AmountCents,
		Currency:       o.Currency,
		CreatedAt:      o.CreatedAt,
		TrackingNumber: o.TrackingNumber,
	}, nil
}

func (s Service) AdminOrders(ctx context.Context) (AdminOrdersOutput, error) {
	stats, err := s.Repository.GetStats(ctx)
	if err != nil {
		return AdminOrdersOutput{}, err
	}

	orders, err := s.Repository.GetAllOrders(ctx)
	if err != nil {
		return AdminOrdersOutput{}, err
	}

	return AdminOrdersOutput{Stats: stats, Orders: orders}, nil
}

// newOrderNumber draws a fresh random suffix when the generated number is
// already taken that day. After the retry budget the duplicate is accepted:
// the number is advisory and the charge identifier stays the authoritative key.
func (s Service) newOrderNumber(ctx context.Context, now time.Time) string {
	var number string
	for i := 0; i < orderNumberAttempts; i++ {
		number = fmt.Sprintf("%s%s%03d", orderNumberPrefix, now.Format("060102"), rand.Intn(1000))

		exists, err := s.Repository.OrderNumberExists(ctx, number)
		if err != nil {
			s.logger.Errorf("order number uniqueness check: %s", err.Error())
			return number
		}
		if !exists {
			return number
		}
	}
	return number
}
