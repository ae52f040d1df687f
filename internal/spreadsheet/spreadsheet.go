// Package spreadsheet reads product sheets and writes the sales ledger as XLSX.
package spreadsheet

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/minhasantafonte/santafonte-backend/internal/app/model"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const salesSheet = "Vendas"

var salesHeader = []interface{}{"Data", "Descrição", "Valor (R$)", "Status"}

// WriteSales writes the ledger with a header row and a closing total row.
func WriteSales(w io.Writer, sales []model.SaleEntry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), salesSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := f.SetSheetRow(salesSheet, "A1", &salesHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	total := decimal.Zero
	for i, sale := range sales {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{sale.Date, sale.Description, sale.Value, sale.Status.Label()}
		if err := f.SetSheetRow(salesSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
		total = total.Add(decimal.NewFromFloat(sale.Value))
	}

	cell, err := excelize.CoordinatesToCellName(1, len(sales)+3)
	if err != nil {
		return err
	}
	footer := []interface{}{"Total", "", total.Round(2).InexactFloat64()}
	if err := f.SetSheetRow(salesSheet, cell, &footer); err != nil {
		return fmt.Errorf("failed to write total: %w", err)
	}

	return f.Write(w)
}

// Product sheet columns, first row is the header.
const (
	colName = iota
	colCategory
	colPrice
	colDescription
	colStock
	colImage
	colFeatured
	productColumns
)

// ReadResult is the outcome of reading a product sheet.
type ReadResult struct {
	Products []model.Product
	Skipped  []string // one reason per rejected row
}

// ReadProducts parses the first sheet. Rows without a name or with an
// unparseable price or stock are skipped and reported.
func ReadProducts(r io.Reader) (*ReadResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	result := &ReadResult{}
	for i, row := range rows {
		if i == 0 {
			continue
		}
		line := i + 1
		for len(row) < productColumns {
			row = append(row, "")
		}

		name := strings.TrimSpace(row[colName])
		if name == "" {
			result.Skipped = append(result.Skipped, fmt.Sprintf("linha %d: nome vazio", line))
			continue
		}

		price, err := parsePrice(row[colPrice])
		if err != nil {
			result.Skipped = append(result.Skipped, fmt.Sprintf("linha %d: preço inválido %q", line, row[colPrice]))
			continue
		}

		stock := 0
		if s := strings.TrimSpace(row[colStock]); s != "" {
			if stock, err = strconv.Atoi(s); err != nil {
				result.Skipped = append(result.Skipped, fmt.Sprintf("linha %d: estoque inválido %q", line, s))
				continue
			}
		}

		result.Products = append(result.Products, model.Product{
			Name:        name,
			Category:    model.ProductCategory(strings.TrimSpace(row[colCategory])),
			Price:       price,
			Description: strings.TrimSpace(row[colDescription]),
			Image:       strings.TrimSpace(row[colImage]),
			Stock:       stock,
			IsFeatured:  parseFlag(row[colFeatured]),
		})
	}
	return result, nil
}

// parsePrice accepts "1234.5", "1.234,50" and "R$ 45,00".
func parsePrice(raw string) (float64, error) {
	s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "R$"))
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return strconv.ParseFloat(s, 64)
}

func parseFlag(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "sim", "s", "yes", "true", "1", "x":
		return true
	}
	return false
}
