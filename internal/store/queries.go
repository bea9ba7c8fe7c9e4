package store

import (
	"database/sql"
	"fmt"
	"time"
)

// InvoiceRow is one row of the invoice list/export join. IVA and Total
// already carry the authoritative values when present and the fixed
// 21% fallback otherwise (resolved by COALESCE in the query).
type InvoiceRow struct {
	ID       uint      `json:"id"`
	Client   string    `json:"client"`
	Property string    `json:"property"`
	Date     time.Time `json:"date"`
	Subtotal float64   `json:"subtotal"`
	IVA      float64   `json:"iva"`
	Total    float64   `json:"total"`
	HasEmail bool      `json:"has_email"`
}

// ContractRow is one row of the contract list join.
type ContractRow struct {
	ID        uint      `json:"id"`
	Client    string    `json:"client"`
	Property  string    `json:"property"`
	StartDate time.Time `json:"start_date"`
	Type      string    `json:"type"`
}

// PaymentRow is one row of the payment list join.
type PaymentRow struct {
	ID          uint      `json:"id"`
	InvoiceID   uint      `json:"invoice_id"`
	Client      string    `json:"client"`
	InvoiceDate time.Time `json:"invoice_date"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
	Status      string    `json:"status"`
}

// ListInvoicesJoined returns all invoices joined with their contract,
// client and property, newest invoice date first.
func (s *Store) ListInvoicesJoined() ([]InvoiceRow, error) {
	var rows []InvoiceRow
	err := s.db.Raw(`
		SELECT
			i.id,
			c.name || ' ' || c.surname AS client,
			p.address AS property,
			i.date,
			i.subtotal,
			COALESCE(i.iva, i.subtotal * 0.21) AS iva,
			COALESCE(i.total, i.subtotal * 1.21) AS total,
			(c.email IS NOT NULL AND c.email <> '') AS has_email
		FROM invoices i
		JOIN contracts ct ON i.contract_id = ct.id
		JOIN clients c ON ct.client_id = c.id
		JOIN properties p ON ct.property_id = p.id
		ORDER BY i.date DESC`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return rows, nil
}

// ListContractsJoined returns all contracts with client and property
// display fields, newest start date first.
func (s *Store) ListContractsJoined() ([]ContractRow, error) {
	var rows []ContractRow
	err := s.db.Raw(`
		SELECT
			ct.id,
			c.name || ' ' || c.surname AS client,
			p.address AS property,
			ct.start_date,
			ct.type
		FROM contracts ct
		JOIN clients c ON ct.client_id = c.id
		JOIN properties p ON ct.property_id = p.id
		ORDER BY ct.start_date DESC`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	return rows, nil
}

// ListPaymentsJoined returns all payments with their invoice and
// client display fields, newest payment date first.
func (s *Store) ListPaymentsJoined() ([]PaymentRow, error) {
	var rows []PaymentRow
	err := s.db.Raw(`
		SELECT
			pa.id,
			pa.invoice_id,
			c.name || ' ' || c.surname AS client,
			i.date AS invoice_date,
			pa.amount,
			pa.date,
			pa.status
		FROM payments pa
		JOIN invoices i ON pa.invoice_id = i.id
		JOIN contracts ct ON i.contract_id = ct.id
		JOIN clients c ON ct.client_id = c.id
		ORDER BY pa.date DESC`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return rows, nil
}

// AuthoritativeAmounts reads the store-side iva and total columns for
// one invoice. Either pointer is nil when the column is null; a nil
// pair with no error means the invoice row itself does not exist.
func (s *Store) AuthoritativeAmounts(invoiceID uint) (iva, total *float64, err error) {
	var rec struct {
		IVA   sql.NullFloat64
		Total sql.NullFloat64
	}
	err = s.db.Raw(`SELECT iva, total FROM invoices WHERE id = ?`, invoiceID).Scan(&rec).Error
	if err != nil {
		return nil, nil, fmt.Errorf("authoritative amounts for invoice %d: %w", invoiceID, err)
	}
	if rec.IVA.Valid {
		iva = &rec.IVA.Float64
	}
	if rec.Total.Valid {
		total = &rec.Total.Float64
	}
	return iva, total, nil
}
