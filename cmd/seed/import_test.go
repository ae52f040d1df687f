package main

import (
	"bytes"
	"testing"

	"github.com/minhasantafonte/santafonte-backend/internal/app/repository"
	"github.com/minhasantafonte/santafonte-backend/internal/app/service"
	"github.com/minhasantafonte/santafonte-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func productSheet(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func setupProductService(t *testing.T) service.ProductService {
	t.Helper()
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	svc := service.NewProductService(repository.NewProductRepository(testDB))
	require.NoError(t, svc.Load())
	return svc
}

func TestImportProducts(t *testing.T) {
	svc := setupProductService(t)
	sheet := productSheet(t, [][]interface{}{
		{"Nome", "Categoria", "Preço", "Descrição", "Estoque", "Imagem", "Destaque"},
		{"Vela de Mirra", "Velas", "R$ 38,50", "Vela artesanal", "12", "https://img/vela.jpg", "sim"},
		{"Sem imagem", "Velas", "10", "Falta a imagem", "1", "", ""},
		{"Quadro", "Quadros Religiosos", "abc", "Preço ruim", "1", "https://img/q.jpg", ""},
	})

	report, err := importProducts(svc, sheet, false)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Imported)
	assert.Len(t, report.Skipped, 2)

	products := svc.List()
	require.Len(t, products, 1)
	assert.Equal(t, "Vela de Mirra", products[0].Name)
	assert.Equal(t, 38.5, products[0].Price)
	assert.True(t, products[0].IsFeatured)
}

func TestImportProducts_DryRun(t *testing.T) {
	svc := setupProductService(t)
	sheet := productSheet(t, [][]interface{}{
		{"Nome", "Categoria", "Preço", "Descrição", "Estoque", "Imagem", "Destaque"},
		{"Vela de Mirra", "Velas", "38,50", "Vela artesanal", "12", "https://img/vela.jpg", ""},
	})

	report, err := importProducts(svc, sheet, true)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Imported)
	assert.Empty(t, svc.List())
}
