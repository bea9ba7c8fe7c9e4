package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"facturacion-service/internal/billing"
	"facturacion-service/internal/model"
	"facturacion-service/internal/store"
	"facturacion-service/pkg/logger"
	"facturacion-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// InvoiceRequest defines the structure for invoice creation requests
type InvoiceRequest struct {
	ContractID uint    `json:"contract_id"`
	Date       string  `json:"date"`
	Subtotal   float64 `json:"subtotal"`
}

// SendRequest defines the structure for single invoice delivery requests
type SendRequest struct {
	InvoiceID uint `json:"invoice_id"`
}

// SendBatchRequest defines the structure for batch delivery requests
type SendBatchRequest struct {
	InvoiceIDs []uint `json:"invoice_ids"`
}

// ListInvoices handles retrieving all invoices with resolved amounts
func (h *Handler) ListInvoices(c echo.Context) error {
	log := logger.FromContext(c)

	rows, err := h.store.ListInvoicesJoined()
	if err != nil {
		log.Error("Failed to list invoices", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve invoices",
		})
	}

	payload := make([]echo.Map, 0, len(rows))
	for _, row := range rows {
		payload = append(payload, echo.Map{
			"id":        row.ID,
			"client":    row.Client,
			"property":  row.Property,
			"date":      row.Date.Format(dateLayout),
			"subtotal":  row.Subtotal,
			"iva":       row.IVA,
			"total":     row.Total,
			"has_email": row.HasEmail,
		})
	}

	log.Info("Invoices retrieved", zap.Int("count", len(rows)))
	return c.JSON(http.StatusOK, payload)
}

// CreateInvoice handles creating a new invoice
func (h *Handler) CreateInvoice(c echo.Context) error {
	log := logger.FromContext(c)

	var req InvoiceRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if req.ContractID == 0 || req.Date == "" || req.Subtotal == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "contract_id, date and subtotal are required",
		})
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "date must be yyyy-mm-dd",
		})
	}

	invoice := model.Invoice{
		ContractID: req.ContractID,
		Date:       date,
		Subtotal:   req.Subtotal,
	}

	if err := h.store.CreateInvoice(&invoice); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Contract not found"})
		}
		log.Error("Failed to create invoice", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create invoice",
		})
	}

	prometheus.RecordEntityOperation("invoice", "create")
	log.Info("Invoice created",
		zap.Uint("invoice_id", invoice.ID),
		zap.Uint("contract_id", invoice.ContractID),
		zap.Float64("subtotal", invoice.Subtotal))
	return c.JSON(http.StatusCreated, invoice)
}

// DeleteInvoice handles deleting an invoice without payments
func (h *Handler) DeleteInvoice(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid id"})
	}

	if err := h.store.DeleteInvoice(id); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Invoice not found"})
		case errors.Is(err, store.ErrReferential):
			log.Warn("Invoice delete blocked by payments", zap.Uint("invoice_id", id))
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Cannot delete: invoice has associated payments",
			})
		default:
			log.Error("Failed to delete invoice", zap.Uint("invoice_id", id), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "Failed to delete invoice",
			})
		}
	}

	prometheus.RecordEntityOperation("invoice", "delete")
	log.Info("Invoice deleted", zap.Uint("invoice_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Invoice deleted successfully"})
}

// InvoiceDocument handles downloading the rendered PDF for one invoice
func (h *Handler) InvoiceDocument(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid id"})
	}

	invoice, err := h.store.GetInvoice(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Invoice not found"})
		}
		log.Error("Failed to load invoice", zap.Uint("invoice_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to load invoice",
		})
	}

	defer prometheus.TrackPdfRender()(time.Now())
	pdf, err := h.renderer.Render(invoice)
	if err != nil {
		log.Error("Failed to render invoice document",
			zap.Uint("invoice_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to render invoice document",
		})
	}

	log.Info("Invoice document rendered",
		zap.Uint("invoice_id", id),
		zap.Int("bytes", len(pdf)))
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="factura_%d.pdf"`, invoice.ID))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// SendInvoice handles emailing one invoice to its client
func (h *Handler) SendInvoice(c echo.Context) error {
	log := logger.FromContext(c)

	var req SendRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	if req.InvoiceID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invoice_id is required"})
	}

	invoice, err := h.store.GetInvoice(req.InvoiceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Invoice not found"})
		}
		log.Error("Failed to load invoice", zap.Uint("invoice_id", req.InvoiceID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to load invoice",
		})
	}

	if err := h.mailer.Send(invoice); err != nil {
		if errors.Is(err, billing.ErrNoEmail) {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Client has no email on file",
			})
		}
		prometheus.EmailsFailedCounter.Inc()
		log.Error("Invoice dispatch failed", zap.Uint("invoice_id", invoice.ID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	prometheus.EmailsSentCounter.Inc()
	log.Info("Invoice sent", zap.Uint("invoice_id", invoice.ID))
	return c.JSON(http.StatusOK, echo.Map{"message": "Invoice sent successfully"})
}

// SendInvoiceBatch handles the administrative bulk send path
func (h *Handler) SendInvoiceBatch(c echo.Context) error {
	log := logger.FromContext(c)

	var req SendBatchRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	if len(req.InvoiceIDs) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invoice_ids is required"})
	}

	invoices := make([]model.Invoice, 0, len(req.InvoiceIDs))
	missing := make([]billing.BatchResult, 0)
	for _, id := range req.InvoiceIDs {
		invoice, err := h.store.GetInvoice(id)
		if err != nil {
			missing = append(missing, billing.BatchResult{
				InvoiceID: id,
				Error:     "invoice not found",
			})
			continue
		}
		invoices = append(invoices, *invoice)
	}

	results := append(h.mailer.SendBatch(invoices), missing...)
	for _, r := range results {
		if r.Sent {
			prometheus.EmailsSentCounter.Inc()
		} else {
			prometheus.EmailsFailedCounter.Inc()
		}
	}

	log.Info("Invoice batch processed",
		zap.Int("requested", len(req.InvoiceIDs)),
		zap.Int("results", len(results)))
	return c.JSON(http.StatusOK, echo.Map{"results": results})
}

// ExportInvoices handles downloading all invoices as csv or xlsx
func (h *Handler) ExportInvoices(c echo.Context) error {
	log := logger.FromContext(c)

	format := c.QueryParam("format")
	if format == "" {
		format = "csv"
	}

	rows, err := h.store.ListInvoicesJoined()
	if err != nil {
		log.Error("Failed to list invoices for export", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve invoices",
		})
	}

	switch format {
	case "csv":
		data, err := h.exporter.CSV(rows)
		if err != nil {
			log.Error("CSV export failed", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Export failed"})
		}
		prometheus.RecordExport("csv")
		log.Info("Invoices exported", zap.String("format", "csv"), zap.Int("rows", len(rows)))
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="facturas.csv"`)
		return c.Blob(http.StatusOK, "text/csv", data)
	case "xlsx":
		data, err := h.exporter.XLSX(rows)
		if err != nil {
			log.Error("XLSX export failed", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Export failed"})
		}
		prometheus.RecordExport("xlsx")
		log.Info("Invoices exported", zap.String("format", "xlsx"), zap.Int("rows", len(rows)))
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="facturas.xlsx"`)
		return c.Blob(http.StatusOK, xlsxMIME, data)
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Unsupported format: " + format})
	}
}
