package billing

import (
	"errors"
	"testing"

	"facturacion-service/internal/model"

	"github.com/stretchr/testify/assert"
)

type stubAmounts struct {
	iva   *float64
	total *float64
	err   error
}

func (s stubAmounts) AuthoritativeAmounts(invoiceID uint) (*float64, *float64, error) {
	return s.iva, s.total, s.err
}

func fptr(v float64) *float64 { return &v }

func TestResolveAuthoritativeValues(t *testing.T) {
	resolver := NewTaxResolver(stubAmounts{iva: fptr(85), total: fptr(935)})

	iva, total := resolver.Resolve(&model.Invoice{ID: 1, Subtotal: 100})

	// Returned unchanged, not recomputed from the subtotal
	assert.Equal(t, 85.0, iva)
	assert.Equal(t, 935.0, total)
}

func TestResolveFallback(t *testing.T) {
	tests := []struct {
		name string
		src  stubAmounts
	}{
		{"both absent", stubAmounts{}},
		{"iva absent", stubAmounts{total: fptr(121)}},
		{"total absent", stubAmounts{iva: fptr(21)}},
		{"lookup failure", stubAmounts{err: errors.New("connection reset")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := NewTaxResolver(tt.src)
			iva, total := resolver.Resolve(&model.Invoice{ID: 1, Subtotal: 100})
			assert.InDelta(t, 21.0, iva, 1e-9)
			assert.InDelta(t, 121.0, total, 1e-9)
		})
	}
}
