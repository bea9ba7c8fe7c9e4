package billing

import (
	"bytes"
	"testing"
	"time"

	"facturacion-service/internal/model"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testInvoice() *model.Invoice {
	return &model.Invoice{
		ID:       7,
		Date:     time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		Subtotal: 850,
		Contract: model.Contract{
			Client: model.Client{
				DNI:     "12345678Z",
				Name:    "María",
				Surname: "García López",
				Address: "Calle Alcalá 200, Madrid",
				Email:   "maria@example.com",
			},
			Property: model.Property{
				Address: "Calle Mayor 5, 2ºB, Madrid",
			},
		},
	}
}

func TestInvoiceNumber(t *testing.T) {
	tests := []struct {
		id   uint
		year int
		want string
	}{
		{7, 2024, "FAC-2024-0007"},
		{1, 2023, "FAC-2023-0001"},
		{12345, 2025, "FAC-2025-12345"},
	}

	for _, tt := range tests {
		invoice := &model.Invoice{
			ID:   tt.id,
			Date: time.Date(tt.year, time.January, 15, 0, 0, 0, 0, time.UTC),
		}
		if got := InvoiceNumber(invoice); got != tt.want {
			t.Errorf("InvoiceNumber(id=%d, year=%d) = %q, want %q", tt.id, tt.year, got, tt.want)
		}
	}
}

func TestConceptLine(t *testing.T) {
	invoice := &model.Invoice{
		Date: time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
	}
	if got := ConceptLine(invoice); got != "Alquiler mensual - Mayo 2024" {
		t.Errorf("ConceptLine() = %q", got)
	}
}

func TestRenderProducesPDF(t *testing.T) {
	resolver := NewTaxResolver(stubAmounts{})
	renderer := NewDocumentRenderer(resolver, "", zap.NewNop())

	pdf, err := renderer.Render(testInvoice())
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(pdf, []byte("%PDF")), "output should be a PDF document")
	require.Greater(t, len(pdf), 1000)
}

func TestRenderMissingWatermarkIsNonFatal(t *testing.T) {
	resolver := NewTaxResolver(stubAmounts{})
	renderer := NewDocumentRenderer(resolver, "testdata/does-not-exist.png", zap.NewNop())

	pdf, err := renderer.Render(testInvoice())
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestRenderDeterministicLayout(t *testing.T) {
	resolver := NewTaxResolver(stubAmounts{})
	renderer := NewDocumentRenderer(resolver, "", zap.NewNop())
	invoice := testInvoice()

	first, err := renderer.Render(invoice)
	require.NoError(t, err)
	second, err := renderer.Render(invoice)
	require.NoError(t, err)

	// The embedded creation timestamp varies, the layout must not.
	require.Equal(t, len(first), len(second))
}
