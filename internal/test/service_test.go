package test

import (
	"context"
	"errors"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/shopfront/checkout/internal"
	mock_internal "github.com/shopfront/checkout/internal/mock"
	"github.com/shopfront/checkout/internal/model"
)

var _ = Describe("Service", func() {
	var (
		srv  internal.IService
		ctrl *gomock.Controller
		rep  *mock_internal.MockIRepository
		pay  *mock_internal.MockIPayment
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())

		logger, err := zap.NewDevelopment()
		Expect(err).ShouldNot(HaveOccurred())

		rep = mock_internal.NewMockIRepository(ctrl)
		pay = mock_internal.NewMockIPayment(ctrl)

		catalog := catalogOf(
			model.Product{ID: 1, Name: "Mug", Price: decimal.RequireFromString("16.99"), Currency: internal.Currency},
		)

		srv = internal.NewService(rep, pay, catalog, logger.Sugar())
	})
	AfterEach(func() {
		ctrl.Finish()
	})

	Context("Checkout", func() {
		var (
			in     internal.CheckoutInput
			intent internal.Intent
		)

		BeforeEach(func() {
			in = internal.CheckoutInput{
				Items:    []model.CartLine{{ProductID: 1, Quantity: 2}},
				Customer: model.Customer{Email: "bob@example.com"},
			}
			intent = internal.Intent{ID: "pi_123", Status: "requires_payment_method", ClientSecret: "pi_123_secret"}
		})

		It("without error", func() {
			ctx := context.Background()

			pay.EXPECT().CreateIntent(ctx, int64(3398), internal.Currency, "bob@example.com").Return(intent, nil)
			rep.EXPECT().OrderNumberExists(ctx, gomock.Any()).Return(false, nil)

			var created model.Order
			rep.EXPECT().CreateOrder(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, o model.Order) error {
				created = o
				return nil
			})

			out, err := srv.Checkout(ctx, in)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(out.TotalCents).Should(Equal(int64(3398)))
			Expect(out.ClientSecret).Should(Equal("pi_123_secret"))
			Expect(out.Lines).Should(HaveLen(1))

			Expect(created.ChargeID).Should(Equal("pi_123"))
			Expect(created.Status).Should(Equal(model.OrderStatusPending))
			Expect(created.PaymentStatus).Should(Equal("requires_payment_method"))
			Expect(created.AmountCents).Should(Equal(int64(3398)))
			Expect(created.Customer.Address.Country).Should(Equal(model.DefaultCountry))
			Expect(created.Items).Should(HaveLen(1))
			Expect(created.Number).Should(HavePrefix("SF"))
			Expect(created.Number).Should(HaveLen(11))
			Expect(created.UpdatedAt).Should(Equal(created.CreatedAt))
		})

		It("retries a taken order number", func() {
			ctx := context.Background()

			pay.EXPECT().CreateIntent(ctx, int64(3398), internal.Currency, "bob@example.com").Return(intent, nil)
			gomock.InOrder(
				rep.EXPECT().OrderNumberExists(ctx, gomock.Any()).Return(true, nil),
				rep.EXPECT().OrderNumberExists(ctx, gomock.Any()).Return(false, nil),
			)
			rep.EXPECT().CreateOrder(ctx, gomock.Any()).Return(nil)

			_, err := srv.Checkout(ctx, in)
			Expect(err).ShouldNot(HaveOccurred())
		})

		It("with error unknown product", func() {
			ctx := context.Background()
			in.Items = []model.CartLine{{ProductID: 99, Quantity: 1}}

			_, err := srv.Checkout(ctx, in)
			Expect(err).Should(Equal(internal.ErrUnknownProduct))
		})

		It("with error missing email", func() {
			ctx := context.Background()
			in.Customer.Email = ""

			_, err := srv.Checkout(ctx, in)
			Expect(err).Should(Equal(internal.ErrEmailRequired))
		})

		It("with error from the processor", func() {
			ctx := context.Background()

			pay.EXPECT().CreateIntent(ctx, int64(3398), internal.Currency, "bob@example.com").Return(internal.Intent{}, internal.ErrPaymentRejected)

			_, err := srv.Checkout(ctx, in)
			Expect(err).Should(Equal(internal.ErrPaymentRejected))
		})

		It("with error duplicate charge", func() {
			ctx := context.Background()

			pay.EXPECT().CreateIntent(ctx, int64(3398), internal.Currency, "bob@example.com").Return(intent, nil)
			rep.EXPECT().OrderNumberExists(ctx, gomock.Any()).Return(false, nil)
			rep.EXPECT().CreateOrder(ctx, gomock.Any()).Return(internal.ErrDuplicateCharge)

			_, err := srv.Checkout(ctx, in)
			Expect(err).Should(Equal(internal.ErrDuplicateCharge))
		})
	})

	Context("Order lifecycle", func() {
		It("ConfirmPayment marks the order paid", func() {
			ctx := context.Background()

			rep.EXPECT().UpdateOrderStatus(ctx, "pi_123", model.OrderStatusPaid, nil).
				Return(model.Order{ChargeID: "pi_123", Status: model.OrderStatusPaid}, nil)

			o, err := srv.ConfirmPayment(ctx, "pi_123")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(o.Status).Should(Equal(model.OrderStatusPaid))
		})

		It("UpdateOrderStatus with error empty status", func() {
			ctx := context.Background()

			_, err := srv.UpdateOrderStatus(ctx, "pi_123", "", nil)
			Expect(err).Should(Equal(internal.ErrEmptyStatus))
		})

		It("UpdateOrderStatus passes through not found", func() {
			ctx := context.Background()

			rep.EXPECT().UpdateOrderStatus(ctx, "pi_missing", model.OrderStatusShipped, nil).
				Return(model.Order{}, internal.ErrOrderNotFound)

			_, err := srv.UpdateOrderStatus(ctx, "pi_missing", model.OrderStatusShipped, nil)
			Expect(err).Should(Equal(internal.ErrOrderNotFound))
		})
	})

	Context("Lookups", func() {
		It("GetOrderByNumber returns the redacted view", func() {
			ctx := context.Background()
			tracking := "TRACK123"
			stored := model.Order{
				ChargeID:       "pi_123",
				Number:         "SF260829042",
				Status:         model.OrderStatusShipped,
				AmountCents:    3398,
				Currency:       internal.Currency,
				Customer:       model.Customer{Email: "bob@example.com"},
				TrackingNumber: &tracking,
				CreatedAt:      time.Now(),
			}

			rep.EXPECT().GetOrderByNumber(ctx, stored.Number).Return(stored, nil)

			out, err := srv.GetOrderByNumber(ctx, stored.Number)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(out.Number).Should(Equal(stored.Number))
			Expect(out.Status).Should(Equal(stored.Status))
			Expect(out.AmountCents).Should(Equal(stored.AmountCents))
			Expect(out.TrackingNumber).Should(Equal(&tracking))
		})

		It("GetOrderByNumber with error not found", func() {
			ctx := context.Background()

			rep.EXPECT().GetOrderByNumber(ctx, "SF000000000").Return(model.Order{}, internal.ErrOrderNotFound)

			_, err := srv.GetOrderByNumber(ctx, "SF000000000")
			Expect(err).Should(Equal(internal.ErrOrderNotFound))
		})

		It("AdminOrders without error", func() {
			ctx := context.Background()
			stats := model.Stats{TotalOrders: 2, TotalRevenue: decimal.New(6796, -2), Currency: internal.Currency}
			orders := make([]model.Order, 2)

			rep.EXPECT().GetStats(ctx).Return(stats, nil)
			rep.EXPECT().GetAllOrders(ctx).Return(orders, nil)

			out, err := srv.AdminOrders(ctx)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(out.Stats.TotalOrders).Should(Equal(2))
			Expect(out.Orders).Should(HaveLen(2))
		})

		It("AdminOrders with error", func() {
			ctx := context.Background()
			e := errors.New("some error")

			rep.EXPECT().GetStats(ctx).Return(model.Stats{}, e)

			_, err := srv.AdminOrders(ctx)
			Expect(err).Should(Equal(e))
		})
	})
})
