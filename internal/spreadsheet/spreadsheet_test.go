package spreadsheet

import (
	"bytes"
	"testing"

	"github.com/minhasantafonte/santafonte-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteSales(t *testing.T) {
	sales := []model.SaleEntry{
		{ID: "s1", Date: "01/03/2024", Description: "Terço de cristal", Value: 77, Status: model.SalePending},
		{ID: "s2", Date: "02/03/2024", Description: "Imagem 30cm", Value: 189.9, Status: model.SaleDone},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSales(&buf, sales))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(salesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "Descrição", rows[0][1])
	assert.Equal(t, "Terço de cristal", rows[1][1])
	assert.Equal(t, "Pendente", rows[1][3])
	assert.Equal(t, "Concluído", rows[2][3])
	assert.Equal(t, "Total", rows[4][0])
	assert.Equal(t, "266.9", rows[4][2])
}

func buildSheet(t *testing.T, rows [][]interface{}) *bytes.Buffer {
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

func TestReadProducts(t *testing.T) {
	buf := buildSheet(t, [][]interface{}{
		{"Nome", "Categoria", "Preço", "Descrição", "Estoque", "Imagem", "Destaque"},
		{"Vela de Mirra", "Velas", "R$ 1.038,50", "Vela artesanal", "12", "https://img/vela.jpg", "sim"},
		{"", "Velas", "10", "sem nome", "1", "", ""},
		{"Quadro", "Quadros Religiosos", "abc", "preço ruim", "1", "", ""},
		{"Bíblia", "Bíblias", "120.00", "Capa couro", "", "", ""},
	})

	result, err := ReadProducts(buf)
	require.NoError(t, err)

	require.Len(t, result.Products, 2)
	assert.Equal(t, "Vela de Mirra", result.Products[0].Name)
	assert.Equal(t, model.CategoryCandles, result.Products[0].Category)
	assert.Equal(t, 1038.50, result.Products[0].Price)
	assert.Equal(t, 12, result.Products[0].Stock)
	assert.True(t, result.Products[0].IsFeatured)

	assert.Equal(t, 120.00, result.Products[1].Price)
	assert.Equal(t, 0, result.Products[1].Stock)
	assert.False(t, result.Products[1].IsFeatured)

	require.Len(t, result.Skipped, 2)
	assert.Contains(t, result.Skipped[0], "linha 3")
	assert.Contains(t, result.Skipped[1], "linha 4")
}

func TestParsePrice(t *testing.T) {
	for raw, want := range map[string]float64{
		"45":         45,
		"45.90":      45.90,
		"45,90":      45.90,
		"R$ 1.234,5": 1234.5,
	} {
		got, err := parsePrice(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
}
