package billing

import "facturacion-service/internal/model"

// IVARate is the fixed Spanish VAT rate applied when the store carries
// no authoritative amounts for an invoice.
const IVARate = 0.21

// AmountsSource looks up the authoritative iva/total columns for an
// invoice. Implemented by the store.
type AmountsSource interface {
	AuthoritativeAmounts(invoiceID uint) (iva, total *float64, err error)
}

// TaxResolver derives the tax and total for an invoice: authoritative
// store-side values first, fixed-rate fallback when either is absent.
type TaxResolver struct {
	src AmountsSource
}

func NewTaxResolver(src AmountsSource) *TaxResolver {
	return &TaxResolver{src: src}
}

// Resolve always returns a usable pair. Lookup failures count as
// absence and take the fallback path; resolution itself never fails.
func (r *TaxResolver) Resolve(invoice *model.Invoice) (iva, total float64) {
	if r.src != nil {
		a, t, err := r.src.AuthoritativeAmounts(invoice.ID)
		if err == nil && a != nil && t != nil {
			return *a, *t
		}
	}
	return invoice.Subtotal * IVARate, invoice.Subtotal * (1 + IVARate)
}
