package internal

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/shopfront/checkout/internal/model"
)

type Handlers struct {
	Service       IService
	logger        *zap.SugaredLogger
	webhookSecret string
}

func NewHandlers(Service IService, webhookSecret string, logger *zap.SugaredLogger) *Handlers {
	return &Handlers{Service: Service, webhookSecret: webhookSecret, logger: logger}
}

func (h *Handlers) Checkout(c *fiber.Ctx) error {
	var in CheckoutInput

	if err := c.BodyParser(&in); err != nil {
		h.logger.Errorf("Error on checkout request: %s", err.Error())
		return c.SendStatus(fiber.StatusBadRequest)
	}

	out, err := h.Service.Checkout(c.Context(), in)
	if err != nil {
		h.logger.Errorf("Error on checkout request: %s", err.Error())
		if isValidationErr(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Error on checkout request", "data": err.Error()})
		}
		if errors.Is(err, ErrDuplicateCharge) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"status": "error", "message": "Error on checkout request", "data": err.Error()})
		}
		if errors.Is(err, ErrPaymentRejected) {
			return c.SendStatus(fiber.StatusBadGateway)
		}
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusCreated).JSON(out)
}

type webhookEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID string `json:"id"`
		} `json:"object"`
	} `json:"data"`
}

func (h *Handlers) PaymentWebhook(c *fiber.Ctx) error {
	if h.webhookSecret != "" && c.Get("Webhook-Secret") != h.webhookSecret {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	var e webhookEvent
	if err := c.BodyParser(&e); err != nil {
		h.logger.Errorf("Error on webhook request: %s", err.Error())
		return c.SendStatus(fiber.StatusBadRequest)
	}

	if e.Type != "payment_intent.succeeded" {
		return c.SendStatus(fiber.StatusOK)
	}

	_, err := h.Service.ConfirmPayment(c.Context(), e.Data.Object.ID)
	if err != nil {
		h.logger.Errorf("Error on webhook request: %s", err.Error())
		if errors.Is(err, ErrOrderNotFound) {
			return c.SendStatus(fiber.StatusNotFound)
		}
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.SendStatus(fiber.StatusOK)
}

type statusUpdateInput struct {
	Status         model.OrderStatus `json:"status"`
	TrackingNumber *string           `json:"trackingNumber"`
}

func (h *Handlers) UpdateOrderStatus(c *fiber.Ctx) error {
	var in statusUpdateInput

	if err := c.BodyParser(&in); err != nil {
		h.logger.Errorf("Error on status update request: %s", err.Error())
		return c.SendStatus(fiber.StatusBadRequest)
	}

	o, err := h.Service.UpdateOrderStatus(c.Context(), c.Params("chargeID"), in.Status, in.TrackingNumber)
	if err != nil {
		h.logger.Errorf("Error on status update request: %s", err.Error())
		if errors.Is(err, ErrEmptyStatus) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Error on status update request", "data": err.Error()})
		}
		if errors.Is(err, ErrOrderNotFound) {
			return c.SendStatus(fiber.StatusNotFound)
		}
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusOK).JSON(o)
}

func (h *Handlers) GetOrder(c *fiber.Ctx) error {
	o, err := h.Service.GetOrderByNumber(c.Context(), c.Params("number"))
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return c.SendStatus(fiber.StatusNotFound)
		}
		h.logger.Errorf("Error on order lookup request: %s", err.Error())
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusOK).JSON(o)
}

func (h *Handlers) AdminOrders(c *fiber.Ctx) error {
	out, err := h.Service.AdminOrders(c.Context())
	if err != nil {
		h.logger.Errorf("Error on admin listing request: %s", err.Error())
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusOK).JSON(out)
}

func isValidationErr(err error) bool {
	return errors.Is(err, ErrUnknownProduct) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrEmptyCart) ||
		errors.Is(err, ErrEmailRequired)
}
