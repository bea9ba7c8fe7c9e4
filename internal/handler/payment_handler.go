package handler

import (
	"errors"
	"net/http"

	"facturacion-service/internal/model"
	"facturacion-service/internal/store"
	"facturacion-service/pkg/logger"
	"facturacion-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// PaymentRequest defines the structure for payment creation requests
type PaymentRequest struct {
	InvoiceID uint    `json:"invoice_id"`
	Amount    float64 `json:"amount"`
	Date      string  `json:"date"`
	Status    string  `json:"status"`
}

// ListPayments handles retrieving all payments with invoice and client data
func (h *Handler) ListPayments(c echo.Context) error {
	log := logger.FromContext(c)

	rows, err := h.store.ListPaymentsJoined()
	if err != nil {
		log.Error("Failed to list payments", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve payments",
		})
	}

	payload := make([]echo.Map, 0, len(rows))
	for _, row := range rows {
		payload = append(payload, echo.Map{
			"id":           row.ID,
			"invoice_id":   row.InvoiceID,
			"client":       row.Client,
			"invoice_date": row.InvoiceDate.Format(dateLayout),
			"amount":       row.Amount,
			"date":         row.Date.Format(dateLayout),
			"status":       row.Status,
		})
	}

	log.Info("Payments retrieved", zap.Int("count", len(rows)))
	return c.JSON(http.StatusOK, payload)
}

// CreatePayment handles registering a payment against an invoice
func (h *Handler) CreatePayment(c echo.Context) error {
	log := logger.FromContext(c)

	var req PaymentRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if req.InvoiceID == 0 || req.Amount == 0 || req.Date == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "invoice_id, amount and date are required",
		})
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "date must be yyyy-mm-dd",
		})
	}

	if req.Status == "" {
		req.Status = model.PaymentPaid
	}

	payment := model.Payment{
		InvoiceID: req.InvoiceID,
		Amount:    req.Amount,
		Date:      date,
		Status:    req.Status,
	}

	if err := h.store.CreatePayment(&payment); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Invoice not found"})
		}
		log.Error("Failed to create payment", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create payment",
		})
	}

	prometheus.RecordEntityOperation("payment", "create")
	log.Info("Payment registered",
		zap.Uint("payment_id", payment.ID),
		zap.Uint("invoice_id", payment.InvoiceID),
		zap.Float64("amount", payment.Amount))
	return c.JSON(http.StatusCreated, payment)
}

// DeletePayment handles deleting a payment
func (h *Handler) DeletePayment(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid id"})
	}

	if err := h.store.DeletePayment(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Payment not found"})
		}
		log.Error("Failed to delete payment", zap.Uint("payment_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete payment",
		})
	}

	prometheus.RecordEntityOperation("payment", "delete")
	log.Info("Payment deleted", zap.Uint("payment_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Payment deleted successfully"})
}
