package internal

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Intent is the processor's record of a single payment attempt. Its ID
// becomes the order's primary key.
type Intent struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	ClientSecret string `json:"client_secret"`
}

type IPayment interface {
	CreateIntent(ctx context.Context, amountCents int64, currency, receiptEmail string) (Intent, error)
}

type PaymentClient struct {
	client *http.Client
	logger *zap.SugaredLogger
	url    string
	key    string
}

func NewPaymentClient(url, key string, logger *zap.SugaredLogger) *PaymentClient {
	return &PaymentClient{client: &http.Client{}, logger: logger, url: url, key: key}
}

func (p *PaymentClient) CreateIntent(ctx context.Context, amountCents int64, currency, receiptEmail string) (Intent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountCents, 10))
	form.Set("currency", currency)
	if receiptEmail != "" {
		form.Set("receipt_email", receiptEmail)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url+"/v1/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return Intent{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+p.key)
	req.Header.Set("Idempotency-Key", uuid.NewString())

	res, err := p.client.Do(req)
	if err != nil {
		return Intent{}, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return Intent{}, err
	}

	if res.StatusCode != http.StatusOK {
		p.logger.Errorf("payment processor returned %d: %s", res.StatusCode, body)
		return Intent{}, ErrPaymentRejected
	}

	var intent Intent
	if err = json.Unmarshal(body, &intent); err != nil {
		return Intent{}, err
	}

	return intent, nil
}
