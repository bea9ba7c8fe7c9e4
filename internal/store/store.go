package store

import (
	"errors"
	"fmt"

	"facturacion-service/internal/model"

	"gorm.io/gorm"
)

// Store is the single data-access boundary for the five entities. All
// reads and writes, including the raw authoritative-amount lookups, go
// through it.
type Store struct {
	db *gorm.DB
}

// New wraps an open gorm handle.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// --- Clients ---

// ListClients returns all clients ordered by surname then name.
func (s *Store) ListClients() ([]model.Client, error) {
	var clients []model.Client
	if err := s.db.Order("surname, name").Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

// CreateClient inserts a client, rejecting duplicate DNIs.
func (s *Store) CreateClient(client *model.Client) error {
	var count int64
	s.db.Model(&model.Client{}).Where("dni = ?", client.DNI).Count(&count)
	if count > 0 {
		return fmt.Errorf("dni %q: %w", client.DNI, ErrDuplicate)
	}
	if err := s.db.Create(client).Error; err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	return nil
}

// DeleteClient removes a client. Clients referenced by a contract are
// not deleted; the caller gets ErrReferential instead.
func (s *Store) DeleteClient(id uint) error {
	var count int64
	s.db.Model(&model.Contract{}).Where("client_id = ?", id).Count(&count)
	if count > 0 {
		return fmt.Errorf("client %d: %w", id, ErrReferential)
	}
	result := s.db.Delete(&model.Client{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete client: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("client %d: %w", id, ErrNotFound)
	}
	return nil
}

// --- Properties ---

// ListProperties returns all properties ordered by address.
func (s *Store) ListProperties() ([]model.Property, error) {
	var properties []model.Property
	if err := s.db.Order("address").Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	return properties, nil
}

func (s *Store) CreateProperty(property *model.Property) error {
	if err := s.db.Create(property).Error; err != nil {
		return fmt.Errorf("create property: %w", err)
	}
	return nil
}

// DeleteProperty removes a property unless a contract references it.
func (s *Store) DeleteProperty(id uint) error {
	var count int64
	s.db.Model(&model.Contract{}).Where("property_id = ?", id).Count(&count)
	if count > 0 {
		return fmt.Errorf("property %d: %w", id, ErrReferential)
	}
	result := s.db.Delete(&model.Property{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete property: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("property %d: %w", id, ErrNotFound)
	}
	return nil
}

// --- Contracts ---

// CreateContract inserts a contract after checking that both the
// client and the property exist. The wrapped message names the missing
// parent so handlers can surface it.
func (s *Store) CreateContract(contract *model.Contract) error {
	if err := s.db.First(&model.Client{}, contract.ClientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("client %d: %w", contract.ClientID, ErrNotFound)
		}
		return fmt.Errorf("create contract: %w", err)
	}
	if err := s.db.First(&model.Property{}, contract.PropertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("property %d: %w", contract.PropertyID, ErrNotFound)
		}
		return fmt.Errorf("create contract: %w", err)
	}
	if err := s.db.Create(contract).Error; err != nil {
		return fmt.Errorf("create contract: %w", err)
	}
	return nil
}

// DeleteContract removes a contract unless invoices reference it.
func (s *Store) DeleteContract(id uint) error {
	var count int64
	s.db.Model(&model.Invoice{}).Where("contract_id = ?", id).Count(&count)
	if count > 0 {
		return fmt.Errorf("contract %d: %w", id, ErrReferential)
	}
	result := s.db.Delete(&model.Contract{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete contract: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("contract %d: %w", id, ErrNotFound)
	}
	return nil
}

// --- Invoices ---

// GetInvoice loads an invoice with its contract, client and property,
// which is everything document rendering and delivery need.
func (s *Store) GetInvoice(id uint) (*model.Invoice, error) {
	var invoice model.Invoice
	err := s.db.Preload("Contract.Client").Preload("Contract.Property").First(&invoice, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("invoice %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &invoice, nil
}

// CreateInvoice inserts an invoice after checking the contract exists.
func (s *Store) CreateInvoice(invoice *model.Invoice) error {
	if err := s.db.First(&model.Contract{}, invoice.ContractID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("contract %d: %w", invoice.ContractID, ErrNotFound)
		}
		return fmt.Errorf("create invoice: %w", err)
	}
	if err := s.db.Create(invoice).Error; err != nil {
		return fmt.Errorf("create invoice: %w", err)
	}
	return nil
}

// DeleteInvoice removes an invoice unless payments reference it.
func (s *Store) DeleteInvoice(id uint) error {
	var count int64
	s.db.Model(&model.Payment{}).Where("invoice_id = ?", id).Count(&count)
	if count > 0 {
		return fmt.Errorf("invoice %d: %w", id, ErrReferential)
	}
	result := s.db.Delete(&model.Invoice{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete invoice: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("invoice %d: %w", id, ErrNotFound)
	}
	return nil
}

// --- Payments ---

// CreatePayment inserts a payment after checking the invoice exists.
func (s *Store) CreatePayment(payment *model.Payment) error {
	if err := s.db.First(&model.Invoice{}, payment.InvoiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("invoice %d: %w", payment.InvoiceID, ErrNotFound)
		}
		return fmt.Errorf("create payment: %w", err)
	}
	if err := s.db.Create(payment).Error; err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

func (s *Store) DeletePayment(id uint) error {
	result := s.db.Delete(&model.Payment{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete payment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("payment %d: %w", id, ErrNotFound)
	}
	return nil
}
