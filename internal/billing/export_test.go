package billing

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"testing"
	"time"

	"facturacion-service/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func exportRows() []store.InvoiceRow {
	return []store.InvoiceRow{
		{
			ID:       3,
			Client:   "María García López",
			Property: "Calle Mayor 5, Madrid",
			Date:     time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
			Subtotal: 850,
			IVA:      178.5,
			Total:    1028.5,
		},
		{
			ID:       1,
			Client:   "Juan Pérez Gómez",
			Property: "Avenida del Sol 12, Sevilla",
			Date:     time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
			Subtotal: 600,
			IVA:      126,
			Total:    726,
		},
	}
}

func TestExportCSVRoundTrip(t *testing.T) {
	rows := exportRows()

	data, err := Exporter{}.CSV(rows)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(rows)+1)

	assert.Equal(t, []string{"ID", "Cliente", "Inmueble", "Fecha", "Subtotal", "IVA", "Total"}, records[0])

	// Same ids in the same date-descending order as the source rows
	for i, row := range rows {
		record := records[i+1]
		assert.Equal(t, strconv.Itoa(int(row.ID)), record[0])
		assert.Equal(t, row.Client, record[1])
		assert.Equal(t, row.Date.Format("2006-01-02"), record[3])
	}
	assert.Equal(t, "178.5", records[1][5])
	assert.Equal(t, "726", records[2][6])
}

func TestExportCSVEmpty(t *testing.T) {
	data, err := Exporter{}.CSV(nil)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1, "header only")
}

func TestExportXLSX(t *testing.T) {
	rows := exportRows()

	data, err := Exporter{}.XLSX(rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	cells, err := f.GetRows("Facturas")
	require.NoError(t, err)
	require.Len(t, cells, len(rows)+1)
	assert.Equal(t, []string{"ID", "Cliente", "Inmueble", "Fecha", "Subtotal", "IVA", "Total"}, cells[0])
	assert.Equal(t, "3", cells[1][0])
	assert.Equal(t, "2024-06-01", cells[1][3])

	// Header row keeps its bold style
	styleID, err := f.GetCellStyle("Facturas", "A1")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
}
