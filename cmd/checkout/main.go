package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	. "github.com/shopfront/checkout/internal"
)

func main() {
	//decimals at json as string
	//https://github.com/shopspring/decimal/issues/21
	decimal.MarshalJSONWithoutQuotes = true

	cfg := NewConfig()
	z, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	sugaredLogger := z.Sugar()

	catalog, err := LoadCatalog(cfg.CatalogPath)
	if err != nil {
		sugaredLogger.Fatal(err)
	}

	repository, err := NewRepository(cfg.DatabasePath, sugaredLogger)
	if err != nil {
		sugaredLogger.Fatal(err)
	}

	payment := NewPaymentClient(cfg.PaymentAPIURL, cfg.PaymentAPIKey, sugaredLogger)
	service := NewService(repository, payment, catalog, sugaredLogger)
	handlers := NewHandlers(service, cfg.WebhookSecret, sugaredLogger)

	app := fiber.New()
	app.Use(logger.New())

	api := app.Group("/api")

	api.Post("/checkout", handlers.Checkout)
	api.Post("/payment/webhook", handlers.PaymentWebhook)
	api.Get("/orders/:number", handlers.GetOrder)

	admin := api.Group("/admin")
	admin.Get("/orders", handlers.AdminOrders)
	admin.Patch("/orders/:chargeID", handlers.UpdateOrderStatus)

	go func() {
		sugaredLogger.Fatal(app.Listen(cfg.RunAddress))
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	sugaredLogger.Info("Shutting down service...")
}
