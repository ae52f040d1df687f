package main

import (
	"fmt"
	"io"

	"github.com/minhasantafonte/santafonte-backend/internal/app/service"
	"github.com/minhasantafonte/santafonte-backend/internal/spreadsheet"
)

type importReport struct {
	Imported int
	Skipped  []string
}

// importProducts creates one product per valid sheet row. Rows rejected by
// the sheet parser or by product validation are reported, not fatal.
func importProducts(products service.ProductService, r io.Reader, dryRun bool) (*importReport, error) {
	sheet, err := spreadsheet.ReadProducts(r)
	if err != nil {
		return nil, err
	}

	report := &importReport{Skipped: append([]string(nil), sheet.Skipped...)}
	for _, p := range sheet.Products {
		if dryRun {
			report.Imported++
			continue
		}
		_, err := products.Create(service.ProductInput{
			Name:        p.Name,
			Category:    p.Category,
			Price:       p.Price,
			Description: p.Description,
			Image:       p.Image,
			Stock:       p.Stock,
			IsFeatured:  p.IsFeatured,
		})
		if err != nil {
			report.Skipped = append(report.Skipped, fmt.Sprintf("%s: %v", p.Name, err))
			continue
		}
		report.Imported++
	}
	return report, nil
}
