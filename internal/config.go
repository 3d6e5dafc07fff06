package internal

import (
	"flag"
	"os"
)

var c *config

const (
	RunAddress    = "RUN_ADDRESS"
	DatabasePath  = "DATABASE_PATH"
	CatalogPath   = "CATALOG_PATH"
	PaymentAPIURL = "PAYMENT_API_URL"
	PaymentAPIKey = "PAYMENT_API_KEY"
	WebhookSecret = "WEBHOOK_SECRET"
)

const (
	defaultRunAddress    = "localhost:8080"
	defaultDatabasePath  = "checkout.db"
	defaultCatalogPath   = "catalog.json"
	defaultPaymentAPIURL = "https://api.stripe.com"
)

type config struct {
	RunAddress    string
	DatabasePath  string
	CatalogPath   string
	PaymentAPIURL string
	PaymentAPIKey string
	WebhookSecret string
}

func NewConfig() *config {
	c = new(config)

	flag.StringVar(&c.RunAddress, "a", setEnvOrDefault(RunAddress, defaultRunAddress), "host to listen on")
	flag.StringVar(&c.DatabasePath, "d", setEnvOrDefault(DatabasePath, defaultDatabasePath), "path to the sqlite database file")
	flag.StringVar(&c.CatalogPath, "c", setEnvOrDefault(CatalogPath, defaultCatalogPath), "path to the product catalog file")
	flag.StringVar(&c.PaymentAPIURL, "p", setEnvOrDefault(PaymentAPIURL, defaultPaymentAPIURL), "payment processor address")
	flag.StringVar(&c.PaymentAPIKey, "k", setEnvOrDefault(PaymentAPIKey, ""), "payment processor secret key")
	flag.StringVar(&c.WebhookSecret, "w", setEnvOrDefault(WebhookSecret, ""), "shared secret for the payment webhook")

	flag.Parse()
	return c
}

func setEnvOrDefault(env, def string) string {
	res, e := os.LookupEnv(env)
	if !e {
		res = def
	}
	return res
}
