package export

import (
	"fmt"

	"github.com/sangkips/invoicely-api/internal/domain/entity"
	"github.com/xuri/excelize/v2"
)

const (
	// ItemsSheet is the name of the line item sheet
	ItemsSheet = "Line Items"

	// builtin number format "0.00"
	moneyNumFmt = 2
)

// ItemHeaders is the header row of the line item sheet
var ItemHeaders = []string{"Product Name", "Description", "Quantity", "Unit Price", "Tax Amount", "Line Total"}

// ExcelRenderer writes a two sheet workbook: document details and line items
type ExcelRenderer struct{}

// NewExcelRenderer creates an XLSX renderer
func NewExcelRenderer() *ExcelRenderer {
	return &ExcelRenderer{}
}

// DetailsSheet returns the name of the details sheet, e.g. "Invoice Details"
func DetailsSheet(rec *entity.ExportRecord) string {
	return rec.Title + " Details"
}

// Render produces the XLSX bytes for rec. Values are written unrounded.
func (r *ExcelRenderer) Render(rec *entity.ExportRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	details := DetailsSheet(rec)
	if err := f.SetSheetName("Sheet1", details); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(ItemsSheet); err != nil {
		return nil, err
	}

	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: moneyNumFmt})
	if err != nil {
		return nil, err
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	for i, field := range rec.Fields {
		row := i + 1
		if field.Label == "" {
			continue
		}
		if err := setRow(f, details, row, field.Label, field.Value); err != nil {
			return nil, err
		}
		if _, isNumber := field.Value.(float64); isNumber {
			if err := f.SetCellStyle(details, cell(2, row), cell(2, row), moneyStyle); err != nil {
				return nil, err
			}
		}
	}
	if err := f.SetColWidth(details, "A", "A", 18); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(details, "B", "B", 40); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(ItemHeaders))
	for i, h := range ItemHeaders {
		header[i] = h
	}
	if err := setRow(f, ItemsSheet, 1, header...); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(ItemsSheet, cell(1, 1), cell(len(ItemHeaders), 1), boldStyle); err != nil {
		return nil, err
	}

	for i, item := range rec.Items {
		row := i + 2
		err := setRow(f, ItemsSheet, row,
			item.ProductName,
			item.Description,
			item.Quantity,
			item.UnitPrice,
			item.TaxAmount,
			item.LineTotal,
		)
		if err != nil {
			return nil, err
		}
	}
	if len(rec.Items) > 0 {
		if err := f.SetCellStyle(ItemsSheet, cell(4, 2), cell(6, len(rec.Items)+1), moneyStyle); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(ItemsSheet, "A", "B", 30); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, row int, values ...interface{}) error {
	for i, v := range values {
		if err := f.SetCellValue(sheet, cell(i+1, row), v); err != nil {
			return err
		}
	}
	return nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
