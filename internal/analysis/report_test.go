package analysis

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/carstats/internal/parser"
)

var listingRows = []string{
	"Brand,Model,Body,Color,Fuel,Year,Transmission,Engine,Kilometers,Gov,Region,Price",
	"Fiat,Tipo,Sedan,White,Benzine,2019,Automatic,1.6,40000,Cairo,East,300000",
	"Fiat,Tipo,Sedan,Black,Benzine,2017,Automatic,1.6,80000,Giza,West,250000",
	"Kia,Cerato,Sedan,Red,Benzine,2015,Automatic,2.0,120000,Cairo,East,200000",
	"Kia,Rio,Hatchback,Blue,Benzine,2013,Manual,1.6,160000,Alex,North,150000",
	"Kia,Rio,Hatchback",
	"Kia,Rio,Hatchback,Blue,Benzine,2013,Manual,diesel,160000,Alex,North,150000",
}

func buildFixture(t *testing.T) *Report {
	t.Helper()
	ds := parser.Parse(strings.NewReader(strings.Join(listingRows, "\n")), parser.DefaultSchema())
	ds.Source = "cars.csv"
	return Build(ds)
}

func TestBuild_CountsAndColumns(t *testing.T) {
	rep := buildFixture(t)

	assert.Equal(t, "cars.csv", rep.Source)
	assert.Equal(t, 7, rep.Lines)
	assert.Equal(t, 4, rep.Parsed)
	assert.Equal(t, 2, rep.Skipped)
	assert.Equal(t, map[string]int{"too_few_fields": 1, "non_numeric": 1}, rep.SkipReasons)
	assert.NotEmpty(t, rep.RunID)

	require.Len(t, rep.Cols, 4)
	names := []string{rep.Cols[0].Name, rep.Cols[1].Name, rep.Cols[2].Name, rep.Cols[3].Name}
	assert.Equal(t, parser.ColumnNames, names)

	km, ok := rep.Column("kilometers")
	require.True(t, ok)
	assert.Equal(t, 4, km.Count)
	assert.Equal(t, 100000.0, km.Mean)
	assert.InDelta(t, 44721.3595, km.StdDev, 1e-3)
	assert.Equal(t, 40000.0, km.Min)
	assert.Equal(t, 160000.0, km.Max)

	price, _ := rep.Column("price")
	assert.Equal(t, 225000.0, price.Mean)

	require.NotNil(t, rep.Corr)
	r, ok := rep.Corr.Get("kilometers", "year")
	require.True(t, ok)
	assert.InDelta(t, -1.0, r, 1e-12)
	r, _ = rep.Corr.Get("kilometers", "price")
	assert.InDelta(t, -1.0, r, 1e-12)
}

func TestBuild_EmptyDataset(t *testing.T) {
	rep := Build(parser.Parse(strings.NewReader(""), parser.DefaultSchema()))
	assert.Equal(t, 0, rep.Parsed)
	assert.Nil(t, rep.Corr)
	require.Len(t, rep.Cols, 4)
	for _, c := range rep.Cols {
		assert.Equal(t, 0.0, c.Mean)
		assert.Equal(t, 0.0, c.StdDev)
	}
	assert.Contains(t, rep.Text(), "Rows parsed: 0")
	assert.NotContains(t, rep.Text(), "Pearson")

	nilRep := Build(nil)
	assert.Equal(t, 0, nilRep.Parsed)
}

func TestBuild_ZeroVarianceNote(t *testing.T) {
	rows := []string{
		listingRows[0],
		"a,b,c,d,e,2020,f,1.6,10000,i,j,100",
		"a,b,c,d,e,2020,f,1.8,20000,i,j,200",
	}
	rep := Build(parser.Parse(strings.NewReader(strings.Join(rows, "\n")), parser.DefaultSchema()))
	require.NotNil(t, rep.Corr)
	r, _ := rep.Corr.Get("year", "price")
	assert.Equal(t, 0.0, r)
	assert.Contains(t, strings.Join(rep.Notes, "\n"), "year has zero variance")
}

func TestReport_Markdown(t *testing.T) {
	rep := buildFixture(t)
	md := rep.Markdown()
	for _, want := range []string{
		"[DATASET SUMMARY]",
		"File: cars.csv",
		"Rows: 4 parsed, 2 skipped",
		"Skip reasons: non_numeric=1, too_few_fields=1",
		"[COLUMNS]",
		"| kilometers | 4 | 1e+05 |",
		"[CORRELATIONS]",
		"- kilometers ~ price: r=-1.000",
	} {
		assert.Contains(t, md, want)
	}
}

func TestReport_Text(t *testing.T) {
	out := buildFixture(t).Text()
	assert.True(t, strings.HasPrefix(out, "Rows parsed: 4\nRows skipped: 2\n"))
	assert.Contains(t, out, "price      mean=225000.0000")
	assert.Contains(t, out, "Pearson correlation:")
}

func TestReport_JSONAndYAML(t *testing.T) {
	old := now
	now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	defer func() { now = old }()

	rep := buildFixture(t)

	js, err := rep.Render("json")
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(js), &decoded))
	assert.Equal(t, rep.RunID, decoded["run_id"])
	assert.Equal(t, "2024-05-01T12:00:00Z", decoded["generated_at"])
	cols := decoded["columns"].([]any)
	first := cols[0].(map[string]any)
	assert.Equal(t, "kilometers", first["name"])
	assert.Equal(t, 100000.0, first["mean"])

	ym, err := rep.Render("yaml")
	require.NoError(t, err)
	var ydecoded map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(ym), &ydecoded))
	assert.Equal(t, rep.RunID, ydecoded["run_id"])
	assert.Contains(t, ym, "std_dev:")
}

func TestReport_RenderUnknownFormat(t *testing.T) {
	_, err := buildFixture(t).Render("html")
	assert.Error(t, err)
}
