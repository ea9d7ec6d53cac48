package export

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/carstats/internal/analysis"
	"github.com/KaramelBytes/carstats/internal/parser"
)

const fixture = `Brand,Model,Body,Color,Fuel,Year,Transmission,Engine,Kilometers,Gov,Region,Price
Fiat,Tipo,Sedan,White,Benzine,2019,Automatic,1.6,40000,Cairo,East,300000
Kia,Cerato,Sedan,Red,Benzine,2015,Automatic,2.0,120000,Cairo,East,200000
Kia,Rio,Hatchback
`

func TestWriteXLSX(t *testing.T) {
	ds := parser.Parse(strings.NewReader(fixture), parser.DefaultSchema())
	ds.Source = "cars.csv"
	rep := analysis.Build(ds)
	out := filepath.Join(t.TempDir(), "cars.xlsx")

	require.NoError(t, WriteXLSX(out, ds, rep))

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetListings, SheetSummary, SheetCorrelations}, f.GetSheetList())

	rows, err := f.GetRows(SheetListings)
	require.NoError(t, err)
	require.Len(t, rows, ds.Len()+1)
	assert.Equal(t, []string{"kilometers", "year", "engine", "price"}, rows[0])
	assert.Equal(t, []string{"40000", "2019", "1.6", "300000"}, rows[1])

	v, err := f.GetCellValue(SheetSummary, "B4")
	require.NoError(t, err)
	assert.Equal(t, "1", v)

	corr, err := f.GetRows(SheetCorrelations)
	require.NoError(t, err)
	require.Len(t, corr, 5)
	assert.Equal(t, "kilometers", corr[1][0])
}

func TestWriteXLSX_EmptyDataset(t *testing.T) {
	ds := parser.Parse(strings.NewReader(""), parser.DefaultSchema())
	rep := analysis.Build(ds)
	out := filepath.Join(t.TempDir(), "empty.xlsx")

	require.NoError(t, WriteXLSX(out, ds, rep))

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{SheetListings, SheetSummary}, f.GetSheetList())
	rows, err := f.GetRows(SheetListings)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestWriteXLSX_BadPath(t *testing.T) {
	ds := parser.Parse(strings.NewReader(fixture), parser.DefaultSchema())
	err := WriteXLSX(filepath.Join(t.TempDir(), "missing", "dir", "x.xlsx"), ds, analysis.Build(ds))
	assert.Error(t, err)
}
