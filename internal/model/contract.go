package model

import "time"

// Contract ties a client to a property. Deleting a client or property
// that still has contracts is blocked at the store layer.
type Contract struct {
	ID         uint       `json:"id" gorm:"primarykey"`
	ClientID   uint       `json:"client_id" gorm:"not null;index"`
	Client     Client     `json:"-" gorm:"constraint:OnDelete:RESTRICT"`
	PropertyID uint       `json:"property_id" gorm:"not null;index"`
	Property   Property   `json:"-" gorm:"constraint:OnDelete:RESTRICT"`
	StartDate  time.Time  `json:"start_date" gorm:"type:date;not null"`
	EndDate    *time.Time `json:"end_date,omitempty" gorm:"type:date"`
	Type       string     `json:"type" gorm:"type:varchar(10);not null;default:alquiler"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
