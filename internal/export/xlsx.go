// Package export writes cleaned listings and their statistics to spreadsheet files.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/carstats/internal/analysis"
	"github.com/KaramelBytes/carstats/internal/parser"
)

// Sheet names used in exported workbooks.
const (
	SheetListings     = "Listings"
	SheetSummary      = "Summary"
	SheetCorrelations = "Correlations"
)

// WriteXLSX saves the validated records, column summaries and correlation
// matrix to a workbook at path.
func WriteXLSX(path string, ds *parser.Dataset, rep *analysis.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	// NewFile starts with Sheet1; rename it so the listings come first.
	if err := f.SetSheetName("Sheet1", SheetListings); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeListings(f, ds); err != nil {
		return err
	}
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return fmt.Errorf("new sheet %s: %w", SheetSummary, err)
	}
	if err := writeSummary(f, rep); err != nil {
		return err
	}
	if rep != nil && rep.Corr != nil {
		if _, err := f.NewSheet(SheetCorrelations); err != nil {
			return fmt.Errorf("new sheet %s: %w", SheetCorrelations, err)
		}
		if err := writeCorrelations(f, rep); err != nil {
			return err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeListings(f *excelize.File, ds *parser.Dataset) error {
	header := make([]any, len(parser.ColumnNames))
	for i, n := range parser.ColumnNames {
		header[i] = n
	}
	if err := setRow(f, SheetListings, 1, header); err != nil {
		return err
	}
	if ds == nil {
		return nil
	}
	for i, r := range ds.Records {
		v := r.Values()
		if err := setRow(f, SheetListings, i+2, []any{v[0], v[1], v[2], v[3]}); err != nil {
			return err
		}
	}
	return nil
}

func writeSummary(f *excelize.File, rep *analysis.Report) error {
	if rep == nil {
		return nil
	}
	rows := [][]any{
		{"source", rep.Source},
		{"run_id", rep.RunID},
		{"rows_parsed", rep.Parsed},
		{"rows_skipped", rep.Skipped},
		{},
		{"column", "count", "mean", "std_dev", "min", "max"},
	}
	for _, c := range rep.Cols {
		rows = append(rows, []any{c.Name, c.Count, c.Mean, c.StdDev, c.Min, c.Max})
	}
	for i, row := range rows {
		if err := setRow(f, SheetSummary, i+1, row); err != nil {
			return err
		}
	}
	return nil
}

func writeCorrelations(f *excelize.File, rep *analysis.Report) error {
	m := rep.Corr
	header := []any{""}
	for _, c := range m.Columns {
		header = append(header, c)
	}
	if err := setRow(f, SheetCorrelations, 1, header); err != nil {
		return err
	}
	for i, c := range m.Columns {
		row := []any{c}
		for _, v := range m.Values[i] {
			row = append(row, v)
		}
		if err := setRow(f, SheetCorrelations, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	if len(values) == 0 {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}
