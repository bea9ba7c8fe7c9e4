package billing

import (
	"errors"
	"fmt"
	"io"

	"facturacion-service/internal/model"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// ErrNoEmail is returned when the invoice's client has no email on
// file. No dispatch is attempted in that case.
var ErrNoEmail = errors.New("client has no email on file")

// Dialer is the outbound SMTP boundary, satisfied by *gomail.Dialer.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer renders invoices and dispatches them as PDF attachments. All
// dispatch failures come back as plain error values.
type Mailer struct {
	renderer *DocumentRenderer
	dialer   Dialer
	from     string
	fallback string
	log      *zap.Logger
}

// NewMailer wires the renderer to an SMTP dialer. fallback is the
// internal address used by the batch path when a client has no email.
func NewMailer(renderer *DocumentRenderer, dialer Dialer, from, fallback string, log *zap.Logger) *Mailer {
	return &Mailer{renderer: renderer, dialer: dialer, from: from, fallback: fallback, log: log}
}

// Send renders and dispatches one invoice to its client. The invoice
// must be loaded with its contract and client.
func (m *Mailer) Send(invoice *model.Invoice) error {
	email := invoice.Contract.Client.Email
	if email == "" {
		return ErrNoEmail
	}
	return m.dispatch(invoice, email)
}

// BatchResult reports the outcome for one invoice of a batch send.
type BatchResult struct {
	InvoiceID uint   `json:"invoice_id"`
	Sent      bool   `json:"sent"`
	Error     string `json:"error,omitempty"`
}

// SendBatch dispatches a set of invoices, one result per item.
// Invoices without a persisted id are skipped; clients without an
// email fall back to the configured internal address. One failure
// never aborts the rest of the batch.
func (m *Mailer) SendBatch(invoices []model.Invoice) []BatchResult {
	results := make([]BatchResult, 0, len(invoices))
	for i := range invoices {
		invoice := &invoices[i]
		if invoice.ID == 0 {
			results = append(results, BatchResult{Error: "invoice has no persisted id"})
			continue
		}
		email := invoice.Contract.Client.Email
		if email == "" {
			email = m.fallback
		}
		if err := m.dispatch(invoice, email); err != nil {
			m.log.Warn("batch invoice dispatch failed",
				zap.Uint("invoice_id", invoice.ID),
				zap.Error(err))
			results = append(results, BatchResult{InvoiceID: invoice.ID, Error: err.Error()})
			continue
		}
		results = append(results, BatchResult{InvoiceID: invoice.ID, Sent: true})
	}
	return results
}

func (m *Mailer) dispatch(invoice *model.Invoice, recipient string) error {
	pdf, err := m.renderer.Render(invoice)
	if err != nil {
		return fmt.Errorf("render invoice %d: %w", invoice.ID, err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", fmt.Sprintf("Factura %d - %s", invoice.ID, invoice.Date.Format("02/01/2006")))
	msg.SetBody("text/plain", fmt.Sprintf(
		"Estimado/a %s,\n\nAdjuntamos su factura.\n\nSaludos cordiales.",
		invoice.Contract.Client.Name))
	msg.Attach(fmt.Sprintf("factura_%d.pdf", invoice.ID),
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(pdf)
			return err
		}))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("dispatch invoice %d: %w", invoice.ID, err)
	}
	m.log.Info("invoice dispatched",
		zap.Uint("invoice_id", invoice.ID),
		zap.String("recipient", recipient))
	return nil
}
