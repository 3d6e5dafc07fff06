package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is an open set: the well-known values get constants, but the
// admin caller may assign any non-empty string.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCancelled OrderStatus = "cancelled"
)

const DefaultCountry = "US"

type Address struct {
	Line1      string `json:"line1,omitempty"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	State      string `json:"state,omitempty"`
	Country    string `json:"country,omitempty"`
}

type Customer struct {
	Email   string  `json:"email"`
	Name    string  `json:"name,omitempty"`
	Phone   string  `json:"phone,omitempty"`
	Address Address `json:"address"`
}

// Order is keyed by the payment processor's charge identifier. Items and
// AmountCents are frozen at creation; later catalog changes never touch them.
type Order struct {
	ChargeID       string       `json:"chargeID"`
	Number         string       `json:"number"`
	Status         OrderStatus  `json:"status"`
	PaymentStatus  string       `json:"paymentStatus"`
	AmountCents    int64        `json:"amountCents"`
	Currency       string       `json:"currency"`
	Customer       Customer     `json:"customer"`
	Items          []PricedLine `json:"items"`
	TrackingNumber *string      `json:"trackingNumber"`
	Notes          string       `json:"notes,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// OrderOutput is the public lookup view: no customer data, no charge id.
type OrderOutput struct {
	Number         string       `json:"orderId"`
	Status         OrderStatus  `json:"status"`
	Items          []PricedLine `json:"items"`
	AmountCents    int64        `json:"amountCents"`
	Currency       string       `json:"currency"`
	CreatedAt      time.Time    `json:"createdAt"`
	TrackingNumber *string      `json:"trackingNumber"`
}

type Stats struct {
	TotalOrders    int                 `json:"totalOrders"`
	TotalRevenue   decimal.Decimal     `json:"totalRevenue"`
	Currency       string              `json:"currency"`
	OrdersByStatus map[OrderStatus]int `json:"ordersByStatus"`
	RecentOrders   []Order             `json:"recentOrders"`
}
