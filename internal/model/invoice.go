package model

import "time"

// Invoice is a billing record for one contract. Subtotal is the
// authoritative base amount written through the API. IVA and Total are
// nullable store-side columns maintained outside this service; the API
// never writes them and reads them only through the tax resolution
// path, which falls back to the fixed 21% rate when they are null.
type Invoice struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	ContractID uint      `json:"contract_id" gorm:"not null;index"`
	Contract   Contract  `json:"-" gorm:"constraint:OnDelete:RESTRICT"`
	Date       time.Time `json:"date" gorm:"type:date;not null"`
	Subtotal   float64   `json:"subtotal" gorm:"not null"`
	IVA        *float64  `json:"-" gorm:"column:iva"`
	Total      *float64  `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
