package model

import "time"

// Client represents a rental client. DNI is the national identity
// document and must be unique across all clients.
type Client struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	DNI       string    `json:"dni" gorm:"type:varchar(20);unique;not null"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	Surname   string    `json:"surname" gorm:"type:varchar(150);not null"`
	Phone     string    `json:"phone,omitempty" gorm:"type:varchar(20)"`
	Address   string    `json:"address,omitempty" gorm:"type:text"`
	Email     string    `json:"email,omitempty" gorm:"type:varchar(254)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName returns the display name used on invoices and list payloads.
func (c *Client) FullName() string {
	return c.Name + " " + c.Surname
}
