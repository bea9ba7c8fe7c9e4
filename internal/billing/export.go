package billing

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"facturacion-service/internal/store"

	"github.com/xuri/excelize/v2"
)

// exportHeader is the column layout shared by both export formats.
var exportHeader = []string{"ID", "Cliente", "Inmueble", "Fecha", "Subtotal", "IVA", "Total"}

const exportSheet = "Facturas"

// Exporter writes the joined invoice rows as a complete in-memory
// file. Monetary values stay raw numbers; dates are yyyy-mm-dd.
type Exporter struct{}

// CSV writes the rows as comma-separated values with a header row.
func (Exporter) CSV(rows []store.InvoiceRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			strconv.FormatUint(uint64(row.ID), 10),
			row.Client,
			row.Property,
			row.Date.Format("2006-01-02"),
			strconv.FormatFloat(row.Subtotal, 'f', -1, 64),
			strconv.FormatFloat(row.IVA, 'f', -1, 64),
			strconv.FormatFloat(row.Total, 'f', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// XLSX writes the rows as a single-sheet workbook with a bold header.
func (Exporter) XLSX(rows []store.InvoiceRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write xlsx header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	if err := f.SetCellStyle(exportSheet, "A1", "G1", bold); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("row coordinates: %w", err)
		}
		record := []interface{}{
			row.ID,
			row.Client,
			row.Property,
			row.Date.Format("2006-01-02"),
			row.Subtotal,
			row.IVA,
			row.Total,
		}
		if err := f.SetSheetRow(exportSheet, cell, &record); err != nil {
			return nil, fmt.Errorf("write xlsx row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
