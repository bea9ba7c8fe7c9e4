package billing

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"facturacion-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type stubDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *stubDialer) DialAndSend(m ...*gomail.Message) error {
	if d.err != nil {
		return d.err
	}
	d.sent = append(d.sent, m...)
	return nil
}

func newTestMailer(dialer Dialer) *Mailer {
	resolver := NewTaxResolver(stubAmounts{})
	renderer := NewDocumentRenderer(resolver, "", zap.NewNop())
	return NewMailer(renderer, dialer, "facturacion@test.es", "administracion@test.es", zap.NewNop())
}

func messageBody(t *testing.T, m *gomail.Message) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	return buf.String()
}

func TestSendWithoutEmail(t *testing.T) {
	dialer := &stubDialer{}
	mailer := newTestMailer(dialer)

	invoice := testInvoice()
	invoice.Contract.Client.Email = ""

	err := mailer.Send(invoice)
	require.ErrorIs(t, err, ErrNoEmail)
	assert.Empty(t, dialer.sent, "no dispatch should be attempted")
}

func TestSendAttachesInvoicePDF(t *testing.T) {
	dialer := &stubDialer{}
	mailer := newTestMailer(dialer)

	err := mailer.Send(testInvoice())
	require.NoError(t, err)
	require.Len(t, dialer.sent, 1)

	raw := messageBody(t, dialer.sent[0])
	assert.Contains(t, raw, "Subject: Factura 7 - 01/05/2024")
	assert.Contains(t, raw, `filename="factura_7.pdf"`)
	assert.Equal(t, 1, strings.Count(raw, "Content-Disposition: attachment"),
		"exactly one attachment")
}

func TestSendDispatchFailureIsAnErrorValue(t *testing.T) {
	dialer := &stubDialer{err: errors.New("smtp refused")}
	mailer := newTestMailer(dialer)

	err := mailer.Send(testInvoice())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp refused")
}

func TestSendBatch(t *testing.T) {
	dialer := &stubDialer{}
	mailer := newTestMailer(dialer)

	withEmail := *testInvoice()
	noEmail := *testInvoice()
	noEmail.ID = 8
	noEmail.Contract.Client.Email = ""
	unsaved := *testInvoice()
	unsaved.ID = 0

	results := mailer.SendBatch([]model.Invoice{withEmail, noEmail, unsaved})
	require.Len(t, results, 3)

	assert.True(t, results[0].Sent)
	assert.Equal(t, uint(7), results[0].InvoiceID)

	// Client without email goes to the internal fallback address
	assert.True(t, results[1].Sent)
	raw := messageBody(t, dialer.sent[1])
	assert.Contains(t, raw, "To: administracion@test.es")

	// Unsaved invoice is skipped, not dispatched
	assert.False(t, results[2].Sent)
	assert.NotEmpty(t, results[2].Error)
	assert.Len(t, dialer.sent, 2)
}

func TestSendBatchContinuesAfterFailure(t *testing.T) {
	dialer := &stubDialer{err: errors.New("smtp down")}
	mailer := newTestMailer(dialer)

	first := *testInvoice()
	second := *testInvoice()
	second.ID = 9

	results := mailer.SendBatch([]model.Invoice{first, second})
	require.Len(t, results, 2)
	for _, r := range results {
		assert.False(t, r.Sent)
		assert.Contains(t, r.Error, "smtp down")
	}
}
