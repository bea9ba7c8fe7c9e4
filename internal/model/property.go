package model

import "time"

// Property operation types
const (
	OperationRental = "alquiler"
	OperationSale   = "venta"
)

// Property status values
const (
	StatusAvailable = "disponible"
	StatusOccupied  = "ocupado"
	StatusSold      = "vendido"
)

// Property represents a managed real-estate unit.
type Property struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	Address     string    `json:"address" gorm:"type:text;not null"`
	Area        float64   `json:"area_m2" gorm:"not null"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	Operation   string    `json:"operation" gorm:"type:varchar(10);not null;default:alquiler"`
	Status      string    `json:"status" gorm:"type:varchar(15);not null;default:disponible"`
	Price       float64   `json:"price" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
