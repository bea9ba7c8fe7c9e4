package model

import "time"

// Payment status values
const (
	PaymentPending = "pendiente"
	PaymentPaid    = "pagado"
)

// Payment records money received against an invoice.
type Payment struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	InvoiceID uint      `json:"invoice_id" gorm:"not null;index"`
	Invoice   Invoice   `json:"-" gorm:"constraint:OnDelete:RESTRICT"`
	Amount    float64   `json:"amount" gorm:"not null"`
	Date      time.Time `json:"date" gorm:"type:date;not null"`
	Status    string    `json:"status" gorm:"type:varchar(12);not null;default:pagado"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
