package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"color_robotics_site/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	sheetLeads   = "Leads"
	sheetSummary = "Summary"
)

var leadHeaders = []string{"Received (UTC)", "Variant", "Name", "Email", "Company", "Message", "Relay status", "Relay error"}

// ExportResult describes a finished lead export
type ExportResult struct {
	Rows    int
	Storage *StorageResult
}

// GenerateLeadsWorkbook writes the leads matching filter to an XLSX workbook
// with a Leads sheet and a per-variant Summary sheet
func GenerateLeadsWorkbook(dbConn *gorm.DB, filter LeadFilter) (*bytes.Buffer, int, error) {
	leads, err := ListLeads(dbConn, filter)
	if err != nil {
		return nil, 0, err
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetLeads)
	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})

	for i, header := range leadHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetLeads, cell, header)
	}
	f.SetCellStyle(sheetLeads, "A1", "H1", headerStyle)
	f.SetColWidth(sheetLeads, "A", "E", 22)
	f.SetColWidth(sheetLeads, "F", "F", 60)
	f.SetColWidth(sheetLeads, "G", "H", 18)

	perVariant := make(map[string][2]int) // total, relayed
	var variantOrder []string

	for i, lead := range leads {
		row := i + 2
		values := []interface{}{
			lead.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			lead.Variant,
			lead.Name,
			lead.Email,
			lead.Company,
			lead.Message,
			lead.RelayStatus,
			lead.RelayError,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheetLeads, cell, v)
		}

		counts, seen := perVariant[lead.Variant]
		if !seen {
			variantOrder = append(variantOrder, lead.Variant)
		}
		counts[0]++
		if lead.RelayStatus == models.RelayRelayed {
			counts[1]++
		}
		perVariant[lead.Variant] = counts
	}

	f.NewSheet(sheetSummary)
	for i, header := range []string{"Variant", "Leads", "Relayed"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetSummary, cell, header)
	}
	f.SetCellStyle(sheetSummary, "A1", "C1", headerStyle)
	f.SetColWidth(sheetSummary, "A", "A", 24)
	for i, variant := range variantOrder {
		row := i + 2
		counts := perVariant[variant]
		f.SetCellValue(sheetSummary, fmt.Sprintf("A%d", row), variant)
		f.SetCellValue(sheetSummary, fmt.Sprintf("B%d", row), counts[0])
		f.SetCellValue(sheetSummary, fmt.Sprintf("C%d", row), counts[1])
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, len(leads), nil
}

// ExportLeads generates the workbook and stores it under a dated key
func ExportLeads(ctx context.Context, dbConn *gorm.DB, storage StorageProvider, filter LeadFilter) (*ExportResult, error) {
	buf, rows, err := GenerateLeadsWorkbook(dbConn, filter)
	if err != nil {
		return nil, err
	}

	key := GenerateExportKey(time.Now())
	stored, err := storage.UploadReader(ctx, bytes.NewReader(buf.Bytes()), key, XLSXContentType, int64(buf.Len()))
	if err != nil {
		return nil, fmt.Errorf("failed to store export: %w", err)
	}
	return &ExportResult{Rows: rows, Storage: stored}, nil
}

// ExportLink returns a link to a stored export: the public URL when the
// storage has one, a signed URL valid for expiry otherwise
func ExportLink(ctx context.Context, storage StorageProvider, stored *StorageResult, expiry time.Duration) (string, error) {
	if stored.URL != "" {
		return stored.URL, nil
	}
	return storage.GetSignedURL(ctx, stored.Key, expiry)
}

// CopyExport writes a stored export to w and returns its content type
func CopyExport(ctx context.Context, storage StorageProvider, key string, w io.Writer) (string, int64, error) {
	reader, contentType, err := storage.Get(ctx, key)
	if err != nil {
		return "", 0, err
	}
	defer reader.Close()

	n, err := io.Copy(w, reader)
	if err != nil {
		return "", n, fmt.Errorf("failed to read export %s: %w", key, err)
	}
	return contentType, n, nil
}
