package store

import (
	"testing"
	"time"

	"facturacion-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthoritativeAmounts(t *testing.T) {
	st := newTestStore(t)

	client := seedClient(t, st, "1A", "")
	property := seedProperty(t, st, "Calle Mayor 5")
	contract := seedContract(t, st, client.ID, property.ID)
	invoice := seedInvoice(t, st, contract.ID, date(2024, time.May, 1), 100)

	// Nothing authoritative yet
	iva, total, err := st.AuthoritativeAmounts(invoice.ID)
	require.NoError(t, err)
	assert.Nil(t, iva)
	assert.Nil(t, total)

	// Amounts written by the store-side process are preferred as-is
	require.NoError(t, st.db.Exec(
		`UPDATE invoices SET iva = ?, total = ? WHERE id = ?`, 10.0, 110.0, invoice.ID).Error)

	iva, total, err = st.AuthoritativeAmounts(invoice.ID)
	require.NoError(t, err)
	require.NotNil(t, iva)
	require.NotNil(t, total)
	assert.Equal(t, 10.0, *iva)
	assert.Equal(t, 110.0, *total)
}

func TestListInvoicesJoined(t *testing.T) {
	st := newTestStore(t)

	withEmail := seedClient(t, st, "1A", "maria@example.com")
	noEmail := seedClient(t, st, "2B", "")
	first := seedProperty(t, st, "Calle Mayor 5")
	second := seedProperty(t, st, "Avenida del Sol 12")
	contractA := seedContract(t, st, withEmail.ID, first.ID)
	contractB := seedContract(t, st, noEmail.ID, second.ID)

	older := seedInvoice(t, st, contractA.ID, date(2024, time.April, 1), 100)
	newer := seedInvoice(t, st, contractB.ID, date(2024, time.June, 1), 200)

	// Give the older invoice authoritative amounts
	require.NoError(t, st.db.Exec(
		`UPDATE invoices SET iva = ?, total = ? WHERE id = ?`, 15.0, 115.0, older.ID).Error)

	rows, err := st.ListInvoicesJoined()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Newest invoice date first
	assert.Equal(t, newer.ID, rows[0].ID)
	assert.Equal(t, older.ID, rows[1].ID)

	// Fallback 21% on the row without authoritative amounts
	assert.InDelta(t, 42.0, rows[0].IVA, 1e-9)
	assert.InDelta(t, 242.0, rows[0].Total, 1e-9)
	assert.False(t, rows[0].HasEmail)

	// Authoritative amounts returned unchanged
	assert.Equal(t, 15.0, rows[1].IVA)
	assert.Equal(t, 115.0, rows[1].Total)
	assert.True(t, rows[1].HasEmail)
	assert.Equal(t, "María García", rows[1].Client)
	assert.Equal(t, "Calle Mayor 5", rows[1].Property)
}

func TestListContractsJoined(t *testing.T) {
	st := newTestStore(t)

	client := seedClient(t, st, "1A", "")
	property := seedProperty(t, st, "Calle Mayor 5")

	early := &model.Contract{
		ClientID:   client.ID,
		PropertyID: property.ID,
		StartDate:  date(2023, time.March, 1),
		Type:       model.OperationRental,
	}
	require.NoError(t, st.CreateContract(early))
	late := &model.Contract{
		ClientID:   client.ID,
		PropertyID: property.ID,
		StartDate:  date(2024, time.February, 1),
		Type:       model.OperationSale,
	}
	require.NoError(t, st.CreateContract(late))

	rows, err := st.ListContractsJoined()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, late.ID, rows[0].ID)
	assert.Equal(t, "venta", rows[0].Type)
	assert.Equal(t, "María García", rows[0].Client)
}

func TestListPaymentsJoined(t *testing.T) {
	st := newTestStore(t)

	client := seedClient(t, st, "1A", "")
	property := seedProperty(t, st, "Calle Mayor 5")
	contract := seedContract(t, st, client.ID, property.ID)
	invoice := seedInvoice(t, st, contract.ID, date(2024, time.May, 1), 850)

	older := &model.Payment{InvoiceID: invoice.ID, Amount: 400, Date: date(2024, time.May, 5), Status: model.PaymentPaid}
	require.NoError(t, st.CreatePayment(older))
	newer := &model.Payment{InvoiceID: invoice.ID, Amount: 450, Date: date(2024, time.May, 20), Status: model.PaymentPending}
	require.NoError(t, st.CreatePayment(newer))

	rows, err := st.ListPaymentsJoined()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, newer.ID, rows[0].ID)
	assert.Equal(t, invoice.ID, rows[0].InvoiceID)
	assert.Equal(t, "pendiente", rows[0].Status)
	assert.Equal(t, 450.0, rows[0].Amount)
	assert.Equal(t, "María García", rows[0].Client)
}
